package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanqui-art/inmo-app-sub002/internal/models"
	"github.com/juanqui-art/inmo-app-sub002/internal/repositories"
)

// fakeSearchService records the filter it was called with and returns a
// canned result.
type fakeSearchService struct {
	lastFilter repositories.PropertyFilter
	props      []*models.Property
	total      int
}

func (f *fakeSearchService) Search(_ context.Context, filter repositories.PropertyFilter) ([]*models.Property, int, error) {
	f.lastFilter = filter
	return f.props, f.total, nil
}

func (f *fakeSearchService) GetVisible(context.Context, uuid.UUID, uuid.UUID, models.UserRoleType) (*models.Property, error) {
	return nil, nil
}

func (f *fakeSearchService) ListInBounds(context.Context, repositories.BoundingBox) ([]*models.Property, error) {
	return nil, nil
}

func (f *fakeSearchService) ListNearby(context.Context, float64, float64, float64) ([]NearbyResult, error) {
	return nil, nil
}

func TestAISearchWithoutClientFallsBackToKeyword(t *testing.T) {
	fake := &fakeSearchService{
		props: []*models.Property{{ID: uuid.New(), Title: "Loft downtown"}},
		total: 1,
	}
	svc := NewAISearchService("", fake)

	resp, err := svc.Search(context.Background(), "loft with a view")
	require.NoError(t, err)

	assert.False(t, resp.AIParseApplied)
	assert.Zero(t, resp.Confidence)
	assert.Nil(t, resp.Filters)
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Properties, 1)

	require.NotNil(t, fake.lastFilter.Keyword)
	assert.Equal(t, "loft with a view", *fake.lastFilter.Keyword)
}

func TestBuildFilterSkipsZeroValues(t *testing.T) {
	parsed := &parsedQuery{
		City:        "Madison",
		Transaction: "SALE",
		MaxPrice:    300000,
		MinBedrooms: 3,
		Features:    []string{"pool"},
		Confidence:  0.92,
	}

	f, d := buildFilter(parsed)

	require.NotNil(t, f.City)
	assert.Equal(t, "Madison", *f.City)
	require.NotNil(t, f.Transaction)
	assert.Equal(t, models.TransactionSale, *f.Transaction)
	require.NotNil(t, f.MaxPrice)
	assert.Equal(t, 300000.0, *f.MaxPrice)
	require.NotNil(t, f.MinBedrooms)
	assert.Equal(t, 3, *f.MinBedrooms)
	assert.Equal(t, []string{"pool"}, f.Features)

	// Unmentioned fields stay nil in both the filter and the echo DTO.
	assert.Nil(t, f.Type)
	assert.Nil(t, f.MinPrice)
	assert.Nil(t, f.MinBathrooms)
	assert.Nil(t, f.MinAreaM2)
	assert.Nil(t, d.Type)
	assert.Nil(t, d.MinPrice)

	assert.Equal(t, repositories.SortNewest, f.Sort)
}

func TestKeywordFallbackCarriesConfidence(t *testing.T) {
	fake := &fakeSearchService{}
	svc := &aiSearchService{client: nil, searchService: fake}

	resp, err := svc.keywordFallback(context.Background(), "cheap land", 0.41)
	require.NoError(t, err)

	assert.False(t, resp.AIParseApplied)
	assert.Equal(t, 0.41, resp.Confidence)
}
