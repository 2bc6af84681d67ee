package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/juanqui-art/inmo-app-sub002/internal/models"
	"github.com/juanqui-art/inmo-app-sub002/internal/repositories"
	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

// Fixed IDs for demo data so seeding stays idempotent across restarts
// and the mobile/web clients can hardcode them in dev builds.
const (
	DemoAgentID    = "aaaaaaaa-aaaa-4aaa-aaaa-aaaaaaaaaaa1"
	DemoAgentTwoID = "aaaaaaaa-aaaa-4aaa-aaaa-aaaaaaaaaaa2"
	DemoBuyerID    = "bbbbbbbb-bbbb-4bbb-bbbb-bbbbbbbbbbb1"
	DemoAdminID    = "cccccccc-cccc-4ccc-cccc-ccccccccccc1"

	// SentinelPropertyID is used to check if seeding has already occurred.
	SentinelPropertyID = "dddddddd-dddd-4ddd-dddd-ddddddddddd1"

	demoPassword = "demo-password-123"
)

// SeedTestData loads a pair of demo agents, a demo buyer, a demo admin
// and a handful of listings around Huntsville, AL. Idempotent: the
// sentinel property short-circuits re-runs.
func SeedTestData(
	ctx context.Context,
	userRepo repositories.UserRepository,
	propRepo repositories.PropertyRepository,
	imageRepo repositories.PropertyImageRepository,
) error {
	sentinelID := uuid.MustParse(SentinelPropertyID)

	if existing, err := propRepo.GetByID(ctx, sentinelID); err != nil {
		return fmt.Errorf("failed to check for sentinel property: %w", err)
	} else if existing != nil {
		utils.Logger.Info("Seed data already present; skipping seeding.")
		return nil
	}

	if err := seedDemoUsers(ctx, userRepo); err != nil {
		return err
	}
	if err := seedDemoProperties(ctx, propRepo, imageRepo); err != nil {
		return err
	}

	utils.Logger.Info("Seeding completed successfully.")
	return nil
}

func seedDemoUsers(ctx context.Context, userRepo repositories.UserRepository) error {
	hash, err := utils.HashPassword(demoPassword)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	// Admin logins require a TOTP code, so the demo admin gets a secret
	// generated here and printed once for local enrollment.
	totpSecret, err := utils.GenerateTOTPSecret(utils.OrganizationName, "demo.admin@example.com")
	if err != nil {
		return fmt.Errorf("failed to generate demo admin TOTP secret: %w", err)
	}

	agencyOne := "Rocket City Realty"
	licenseOne := "AL-000123"
	agencyTwo := "Tennessee Valley Homes"
	licenseTwo := "AL-000456"

	users := []models.User{
		{
			ID:           uuid.MustParse(DemoAgentID),
			Email:        "demo.agent@example.com",
			PhoneNumber:  "+12565550101",
			PasswordHash: hash,
			FirstName:    "Alice",
			LastName:     "Romero",
			Role:         models.UserRoleAgent,
			AgencyName:   &agencyOne,
			LicenseID:    &licenseOne,
		},
		{
			ID:           uuid.MustParse(DemoAgentTwoID),
			Email:        "demo.agent2@example.com",
			PhoneNumber:  "+12565550102",
			PasswordHash: hash,
			FirstName:    "Bruno",
			LastName:     "Castillo",
			Role:         models.UserRoleAgent,
			AgencyName:   &agencyTwo,
			LicenseID:    &licenseTwo,
		},
		{
			ID:           uuid.MustParse(DemoBuyerID),
			Email:        "demo.buyer@example.com",
			PhoneNumber:  "+12565550201",
			PasswordHash: hash,
			FirstName:    "Carla",
			LastName:     "Mendez",
			Role:         models.UserRoleBuyer,
		},
		{
			ID:           uuid.MustParse(DemoAdminID),
			Email:        "demo.admin@example.com",
			PhoneNumber:  "+12565550301",
			PasswordHash: hash,
			FirstName:    "Dana",
			LastName:     "Okafor",
			Role:         models.UserRoleAdmin,
			TOTPSecret:   totpSecret,
		},
	}

	for _, u := range users {
		if err := userRepo.Create(ctx, &u); err != nil {
			// Another instance may have won the race; existing demo
			// users are fine as-is.
			if strings.Contains(err.Error(), "duplicate key") {
				continue
			}
			return fmt.Errorf("failed to create demo user %s: %w", u.Email, err)
		}
		if u.Role == models.UserRoleAdmin {
			utils.Logger.Infof("Demo admin TOTP secret (enroll in your authenticator): %s", totpSecret)
		}
	}
	return nil
}

func seedDemoProperties(
	ctx context.Context,
	propRepo repositories.PropertyRepository,
	imageRepo repositories.PropertyImageRepository,
) error {
	agentOne := uuid.MustParse(DemoAgentID)
	agentTwo := uuid.MustParse(DemoAgentTwoID)

	props := []models.Property{
		{
			ID:          uuid.MustParse(SentinelPropertyID),
			AgentID:     agentOne,
			Title:       "Craftsman bungalow near Five Points",
			Description: "Renovated three-bedroom craftsman with a wraparound porch, original hardwoods and a detached garage, five minutes from downtown Huntsville.",
			Type:        models.PropertyTypeHouse,
			Transaction: models.TransactionSale,
			Status:      models.PropertyStatusPublished,
			Price:       389000,
			Bedrooms:    3,
			Bathrooms:   2,
			AreaM2:      168,
			Address:     "1204 Wellman Ave NE",
			City:        "Huntsville",
			State:       "AL",
			ZipCode:     "35801",
			Latitude:    34.7369,
			Longitude:   -86.5756,
			Features:    []string{"garage", "porch", "hardwood floors"},
			IsDemo:      true,
		},
		{
			ID:          uuid.MustParse("dddddddd-dddd-4ddd-dddd-ddddddddddd2"),
			AgentID:     agentOne,
			Title:       "Downtown loft with skyline views",
			Description: "Two-bedroom corner loft on the eighth floor with floor-to-ceiling windows, granite counters and two deeded parking spots.",
			Type:        models.PropertyTypeApartment,
			Transaction: models.TransactionRent,
			Status:      models.PropertyStatusPublished,
			Price:       2150,
			Bedrooms:    2,
			Bathrooms:   2,
			AreaM2:      104,
			Address:     "445 Clinton Ave W",
			City:        "Huntsville",
			State:       "AL",
			ZipCode:     "35801",
			Latitude:    34.7312,
			Longitude:   -86.5903,
			Features:    []string{"parking", "elevator", "city view"},
			IsDemo:      true,
		},
		{
			ID:          uuid.MustParse("dddddddd-dddd-4ddd-dddd-ddddddddddd3"),
			AgentID:     agentTwo,
			Title:       "Madison family home with pool",
			Description: "Four-bedroom brick home on a half-acre cul-de-sac lot with an in-ground pool, finished basement and a three-car garage.",
			Type:        models.PropertyTypeHouse,
			Transaction: models.TransactionSale,
			Status:      models.PropertyStatusPublished,
			Price:       512000,
			Bedrooms:    4,
			Bathrooms:   3,
			AreaM2:      245,
			Address:     "118 Cedar Springs Dr",
			City:        "Madison",
			State:       "AL",
			ZipCode:     "35758",
			Latitude:    34.7201,
			Longitude:   -86.7483,
			Features:    []string{"pool", "garage", "basement"},
			IsDemo:      true,
		},
		{
			ID:          uuid.MustParse("dddddddd-dddd-4ddd-dddd-ddddddddddd4"),
			AgentID:     agentTwo,
			Title:       "Commercial corner lot on University Dr",
			Description: "Cleared half-acre commercial lot with 120 feet of frontage on University Drive, zoned C-3, utilities at the street.",
			Type:        models.PropertyTypeLand,
			Transaction: models.TransactionSale,
			Status:      models.PropertyStatusDraft,
			Price:       275000,
			Bedrooms:    0,
			Bathrooms:   0,
			AreaM2:      2023,
			Address:     "4800 University Dr NW",
			City:        "Huntsville",
			State:       "AL",
			ZipCode:     "35816",
			Latitude:    34.7422,
			Longitude:   -86.6451,
			Features:    []string{"corner lot", "utilities"},
			IsDemo:      true,
		},
	}

	for i := range props {
		p := &props[i]
		if err := propRepo.Create(ctx, p); err != nil {
			if strings.Contains(err.Error(), "duplicate key") {
				continue
			}
			return fmt.Errorf("failed to create demo property %q: %w", p.Title, err)
		}

		cover := &models.PropertyImage{
			ID:         uuid.New(),
			PropertyID: p.ID,
			URL:        fmt.Sprintf("https://images.example.com/demo/%s/cover.jpg", p.ID),
			AltText:    p.Title,
			SortOrder:  0,
			IsCover:    true,
		}
		if err := imageRepo.Create(ctx, cover); err != nil {
			return fmt.Errorf("failed to create demo image for %q: %w", p.Title, err)
		}
	}
	return nil
}
