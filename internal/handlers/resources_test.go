package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibe-frontend/internal/grid"
)

func TestResourceDeletePolicies(t *testing.T) {
	rows := []grid.TrackedRow{{ID: -1, Status: grid.StatusAdded}}

	// Most grids drop unsaved rows as soon as they are delete-flagged.
	out := companySchema.ToggleDeleted(rows, -1, true, nil)
	assert.Empty(t, out)

	// Contract drafts are kept until save; the flag does not demote them.
	out = contractSchema.ToggleDeleted(rows, -1, true, nil)
	require.Len(t, out, 1)
	assert.Equal(t, grid.StatusAdded, out[0].Status)
}

func TestProxyRoutesBatchSurface(t *testing.T) {
	for _, route := range ProxyRoutes() {
		if route.Schema == nil {
			continue
		}
		assert.NotEmpty(t, route.Schema.Resource, route.LocalPrefix)
		assert.NotEmpty(t, route.Schema.Fields, route.LocalPrefix)
	}
}
