package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanqui-art/inmo-app-sub002/internal/models"
	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

func TestBuildPropertyWhereEmptyFilter(t *testing.T) {
	where, args := BuildPropertyWhere(PropertyFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildPropertyWhereSingleCondition(t *testing.T) {
	published := models.PropertyStatusPublished
	where, args := BuildPropertyWhere(PropertyFilter{Status: &published})

	assert.Equal(t, "WHERE status=$1", where)
	require.Len(t, args, 1)
	assert.Equal(t, published, args[0])
}

func TestBuildPropertyWhereCombinesConditions(t *testing.T) {
	published := models.PropertyStatusPublished
	f := PropertyFilter{
		Status:      &published,
		City:        utils.Ptr("Huntsville"),
		MinPrice:    utils.Ptr(100000.0),
		MaxPrice:    utils.Ptr(400000.0),
		MinBedrooms: utils.Ptr(3),
	}

	where, args := BuildPropertyWhere(f)

	assert.Equal(t,
		"WHERE status=$1 AND city ILIKE $2 AND price >= $3 AND price <= $4 AND bedrooms >= $5",
		where)
	require.Len(t, args, 5)
	assert.Equal(t, "Huntsville", args[1])
	assert.Equal(t, 400000.0, args[3])
}

func TestBuildPropertyWhereKeywordReusesOneArg(t *testing.T) {
	where, args := BuildPropertyWhere(PropertyFilter{Keyword: utils.Ptr("loft")})

	assert.Equal(t, "WHERE (title ILIKE $1 OR description ILIKE $1 OR city ILIKE $1)", where)
	require.Len(t, args, 1)
	assert.Equal(t, "%loft%", args[0])
}

func TestBuildPropertyWhereFeaturesUseJSONBContainment(t *testing.T) {
	where, args := BuildPropertyWhere(PropertyFilter{Features: []string{"pool", "garage"}})

	assert.Equal(t, "WHERE features @> $1::jsonb", where)
	require.Len(t, args, 1)
	assert.JSONEq(t, `["pool","garage"]`, args[0].(string))
}

func TestBuildPropertyWhereEmptyKeywordIgnored(t *testing.T) {
	where, args := BuildPropertyWhere(PropertyFilter{Keyword: utils.Ptr("")})
	assert.Empty(t, where)
	assert.Empty(t, args)
}
