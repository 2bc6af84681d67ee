package controllers

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanqui-art/inmo-app-sub002/internal/constants"
	"github.com/juanqui-art/inmo-app-sub002/internal/models"
	"github.com/juanqui-art/inmo-app-sub002/internal/repositories"
)

func TestFilterFromQueryDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/properties", nil)
	f := filterFromQuery(r)

	assert.Nil(t, f.City)
	assert.Nil(t, f.Type)
	assert.Nil(t, f.Keyword)
	assert.Empty(t, f.Features)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, constants.DefaultPageSize, f.Size)
}

func TestFilterFromQueryParsesEverything(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/api/v1/properties?city=Huntsville&type=house&transaction=sale"+
			"&min_price=100000&max_price=400000&min_bedrooms=3&min_bathrooms=2"+
			"&min_area_m2=120&q=garden&features=pool,%20garage&sort=price_asc&page=2&size=10",
		nil)
	f := filterFromQuery(r)

	require.NotNil(t, f.City)
	assert.Equal(t, "Huntsville", *f.City)
	require.NotNil(t, f.Type)
	assert.Equal(t, models.PropertyTypeHouse, *f.Type)
	require.NotNil(t, f.Transaction)
	assert.Equal(t, models.TransactionSale, *f.Transaction)
	require.NotNil(t, f.MinPrice)
	assert.Equal(t, 100000.0, *f.MinPrice)
	require.NotNil(t, f.MaxPrice)
	assert.Equal(t, 400000.0, *f.MaxPrice)
	require.NotNil(t, f.MinBedrooms)
	assert.Equal(t, 3, *f.MinBedrooms)
	require.NotNil(t, f.MinBathrooms)
	assert.Equal(t, 2, *f.MinBathrooms)
	require.NotNil(t, f.MinAreaM2)
	assert.Equal(t, 120.0, *f.MinAreaM2)
	require.NotNil(t, f.Keyword)
	assert.Equal(t, "garden", *f.Keyword)
	assert.Equal(t, []string{"pool", "garage"}, f.Features)
	assert.Equal(t, repositories.SortPriceAsc, f.Sort)
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, 10, f.Size)
}

func TestFilterFromQueryIgnoresInvalidNumbers(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/properties?min_price=cheap&min_bedrooms=-1&page=zero", nil)
	f := filterFromQuery(r)

	assert.Nil(t, f.MinPrice)
	assert.Nil(t, f.MinBedrooms)
	assert.Equal(t, 1, f.Page)
}

func TestQueryFloat(t *testing.T) {
	r := httptest.NewRequest("GET", "/?lat=34.73&lng=abc", nil)

	lat, ok := queryFloat(r, "lat")
	assert.True(t, ok)
	assert.Equal(t, 34.73, lat)

	_, ok = queryFloat(r, "lng")
	assert.False(t, ok)

	_, ok = queryFloat(r, "missing")
	assert.False(t, ok)
}
