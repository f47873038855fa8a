//go:build integration

package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hliosone/Permix/internal/audit"
	"github.com/hliosone/Permix/pkg/testutil/containers"
)

func TestPostgresStoreAppendAndList(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	ctx := context.Background()

	store, err := audit.NewPostgresStore(ctx, pg.DSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	alice := audit.Event{
		ID:        uuid.New(),
		Category:  audit.CategoryTrading,
		Timestamp: time.Now().UTC().Truncate(time.Microsecond),
		Actor:     "rAlice",
		Action:    "order.place",
		Decision:  "tesSUCCESS",
		TxHash:    "HASH1",
	}
	bob := audit.Event{
		ID:        uuid.New(),
		Category:  audit.CategoryCompliance,
		Timestamp: time.Now().UTC().Truncate(time.Microsecond),
		Actor:     "rBob",
		Action:    "credential.issue",
		Decision:  "tesSUCCESS",
		TxHash:    "HASH2",
	}

	require.NoError(t, store.Append(ctx, alice))
	require.NoError(t, store.Append(ctx, bob))

	events, err := store.ListByActor(ctx, "rAlice")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, alice.ID, events[0].ID)
	assert.Equal(t, "order.place", events[0].Action)
	assert.Equal(t, "HASH1", events[0].TxHash)
}

func TestPostgresStoreListUnknownActor(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	ctx := context.Background()

	store, err := audit.NewPostgresStore(ctx, pg.DSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	events, err := store.ListByActor(ctx, "rNobody")
	require.NoError(t, err)
	assert.Empty(t, events)
}
