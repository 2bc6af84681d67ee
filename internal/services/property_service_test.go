package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/juanqui-art/inmo-app-sub002/internal/dtos"
	"github.com/juanqui-art/inmo-app-sub002/internal/models"
	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

func TestTransitionAllowed(t *testing.T) {
	cases := []struct {
		from, to models.PropertyStatusType
		want     bool
	}{
		{models.PropertyStatusDraft, models.PropertyStatusPublished, true},
		{models.PropertyStatusDraft, models.PropertyStatusSold, false},
		{models.PropertyStatusDraft, models.PropertyStatusArchived, false},
		{models.PropertyStatusPublished, models.PropertyStatusArchived, true},
		{models.PropertyStatusPublished, models.PropertyStatusSold, true},
		{models.PropertyStatusPublished, models.PropertyStatusDraft, false},
		{models.PropertyStatusArchived, models.PropertyStatusPublished, true},
		{models.PropertyStatusArchived, models.PropertyStatusSold, false},
		{models.PropertyStatusSold, models.PropertyStatusPublished, false},
		{models.PropertyStatusSold, models.PropertyStatusArchived, false},
	}
	for _, c := range cases {
		assert.Equalf(t, c.want, transitionAllowed(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestApplyPropertyPatch(t *testing.T) {
	p := &models.Property{
		Title:    "Old title",
		Price:    100000,
		Bedrooms: 2,
		City:     "Huntsville",
		Features: []string{"garage"},
	}

	req := dtos.UpdatePropertyRequest{
		Title:    utils.Ptr("New title for the listing"),
		Price:    utils.Ptr(125000.0),
		Features: []string{"garage", "pool"},
	}
	applyPropertyPatch(p, req)

	assert.Equal(t, "New title for the listing", p.Title)
	assert.Equal(t, 125000.0, p.Price)
	assert.Equal(t, []string{"garage", "pool"}, p.Features)

	// Untouched fields keep their values.
	assert.Equal(t, 2, p.Bedrooms)
	assert.Equal(t, "Huntsville", p.City)
}
