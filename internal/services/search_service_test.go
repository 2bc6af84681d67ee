package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanqui-art/inmo-app-sub002/internal/models"
	"github.com/juanqui-art/inmo-app-sub002/internal/repositories"
	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

// stubPropertyRepo overrides only the reads the search service touches.
type stubPropertyRepo struct {
	repositories.PropertyRepository
	byID  map[uuid.UUID]*models.Property
	inBox []*models.Property
}

func (s *stubPropertyRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Property, error) {
	return s.byID[id], nil
}

func (s *stubPropertyRepo) ListInBoundingBox(
	_ context.Context, _ repositories.BoundingBox, _ models.PropertyStatusType, _ int,
) ([]*models.Property, error) {
	return s.inBox, nil
}

func TestGetVisible(t *testing.T) {
	agentID := uuid.New()
	published := &models.Property{ID: uuid.New(), AgentID: agentID, Status: models.PropertyStatusPublished}
	draft := &models.Property{ID: uuid.New(), AgentID: agentID, Status: models.PropertyStatusDraft}

	svc := NewSearchService(&stubPropertyRepo{byID: map[uuid.UUID]*models.Property{
		published.ID: published,
		draft.ID:     draft,
	}})
	ctx := context.Background()

	// Anonymous viewers only see published listings.
	p, err := svc.GetVisible(ctx, published.ID, uuid.Nil, "")
	require.NoError(t, err)
	assert.Equal(t, published.ID, p.ID)

	_, err = svc.GetVisible(ctx, draft.ID, uuid.Nil, "")
	assert.ErrorIs(t, err, utils.ErrNotFound)

	// The owning agent can preview a draft; other agents cannot.
	p, err = svc.GetVisible(ctx, draft.ID, agentID, models.UserRoleAgent)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, p.ID)

	_, err = svc.GetVisible(ctx, draft.ID, uuid.New(), models.UserRoleAgent)
	assert.ErrorIs(t, err, utils.ErrNotFound)

	// Admins see everything.
	_, err = svc.GetVisible(ctx, draft.ID, uuid.New(), models.UserRoleAdmin)
	assert.NoError(t, err)

	_, err = svc.GetVisible(ctx, uuid.New(), agentID, models.UserRoleAgent)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestListNearbyOrdersByDistance(t *testing.T) {
	// Candidates around downtown Huntsville, AL.
	near := &models.Property{ID: uuid.New(), Latitude: 34.7312, Longitude: -86.5903}
	far := &models.Property{ID: uuid.New(), Latitude: 34.6993, Longitude: -86.7483}
	outside := &models.Property{ID: uuid.New(), Latitude: 33.5186, Longitude: -86.8104} // Birmingham

	svc := NewSearchService(&stubPropertyRepo{inBox: []*models.Property{far, outside, near}})

	results, err := svc.ListNearby(context.Background(), 34.7304, -86.5861, 25)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, near.ID, results[0].Property.ID)
	assert.Equal(t, far.ID, results[1].Property.ID)
	assert.Less(t, results[0].DistanceKm, results[1].DistanceKm)
}
