package waitlist

import (
	"context"
	"testing"

	"github.com/obiano/waitlist-api/internal/models"
	apperrors "github.com/obiano/waitlist-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestRepository(t *testing.T) WaitlistRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.WaitlistEntry{}))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return NewWaitlistRepository(db)
}

func TestWaitlistRepository_CreateEntry_AssignsIDAndCreatedAt(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	entry, err := repo.CreateEntry(ctx, &models.WaitlistEntry{Name: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())
	assert.False(t, entry.IsJoined)
}

func TestWaitlistRepository_CreateEntry_DuplicateEmailIsConflict(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.CreateEntry(ctx, &models.WaitlistEntry{Name: "First", Email: "a@example.com"})
	require.NoError(t, err)

	_, err = repo.CreateEntry(ctx, &models.WaitlistEntry{Name: "Second", Email: "a@example.com"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.GetErrorType(err))
}

func TestWaitlistRepository_GetAllEntries_OrderedOldestFirst(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		_, err := repo.CreateEntry(ctx, &models.WaitlistEntry{Name: name, Email: name + "@x.com"})
		require.NoError(t, err)
	}

	entries, err := repo.GetAllEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "A", entries[0].Name)
	assert.Equal(t, "B", entries[1].Name)
	assert.Equal(t, "C", entries[2].Name)
}

func TestWaitlistRepository_UpdateEntry_PartialUpdateLeavesOtherFields(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	entry, err := repo.CreateEntry(ctx, &models.WaitlistEntry{Name: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateEntry(ctx, entry.ID, map[string]interface{}{"is_joined": true}))

	reloaded, err := repo.FindEntryByID(ctx, entry.ID)
	require.NoError(t, err)

	assert.True(t, reloaded.IsJoined)
	assert.Equal(t, "Ann", reloaded.Name)
	assert.Equal(t, "ann@x.com", reloaded.Email)
	assert.Equal(t, entry.CreatedAt.UTC(), reloaded.CreatedAt.UTC())
}

func TestWaitlistRepository_UpdateEntry_UnknownIDIsNotFound(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.UpdateEntry(context.Background(), "no-such-id", map[string]interface{}{"name": "X"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetErrorType(err))
}

func TestWaitlistRepository_DeleteEntry_ThenFindIsNotFound(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	entry, err := repo.CreateEntry(ctx, &models.WaitlistEntry{Name: "Del", Email: "del@x.com"})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteEntry(ctx, entry.ID))

	_, err = repo.FindEntryByID(ctx, entry.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetErrorType(err))

	err = repo.DeleteEntry(ctx, entry.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetErrorType(err))
}

func TestWaitlistRepository_FindEntryByEmail(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.CreateEntry(ctx, &models.WaitlistEntry{Name: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)

	found, err := repo.FindEntryByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.FindEntryByEmail(ctx, "nobody@x.com")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetErrorType(err))
}
