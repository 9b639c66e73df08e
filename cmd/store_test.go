package cmd

import (
	"context"
	"testing"

	"tgorders/application/session"
	"tgorders/config"
	"tgorders/domain/accesslevel"
	"tgorders/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore_Memory(t *testing.T) {
	store, err := OpenStore(context.Background(), &config.Config{Database: config.DatabaseConfig{Type: "memory"}})
	require.NoError(t, err)
	assert.Nil(t, store.DB)
	assert.Nil(t, store.Pinger())
	assert.NoError(t, store.Close())
}

func TestEnsureAdmins(t *testing.T) {
	ctx := context.Background()
	store, err := OpenStore(ctx, &config.Config{Database: config.DatabaseConfig{Type: "memory"}})
	require.NoError(t, err)
	dispatcher := shared.NewEventDispatcher(nil)

	require.NoError(t, EnsureAdmins(ctx, store.Factory, dispatcher, []int64{10, 11}))
	// idempotent
	require.NoError(t, EnsureAdmins(ctx, store.Factory, dispatcher, []int64{10}))

	err = session.Run(ctx, store.Factory, dispatcher, 10, func(s *session.Session) error {
		assert.True(t, s.Actor().IsAdmin())
		levels, err := s.AccessLevels().GetUserAccessLevels(ctx, 11)
		require.NoError(t, err)
		require.Len(t, levels, 1)
		assert.Equal(t, accesslevel.Administrator.ID(), levels[0].ID)
		return nil
	})
	require.NoError(t, err)
}
