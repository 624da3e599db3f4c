package waitlist

import (
	"context"
	"testing"
	"time"

	"github.com/obiano/waitlist-api/internal/log"
	"github.com/obiano/waitlist-api/internal/models"
	apperrors "github.com/obiano/waitlist-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestWaitlistService_CreateEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockWaitlistRepository(ctrl)
	logger := log.NewLoggerWithJSONOutput()
	service := NewWaitlistService(logger, mockRepo)

	t.Run("successful creation defaults isJoined to false", func(t *testing.T) {
		req := &CreateWaitlistEntryRequest{
			Name:  "Ann",
			Email: "ann@x.com",
		}

		created := &models.WaitlistEntry{
			ID:        "7f9c36b1-54f2-4f5e-9a30-1be1e8f5c1dd",
			Name:      "Ann",
			Email:     "ann@x.com",
			CreatedAt: time.Now(),
		}

		mockRepo.EXPECT().
			FindEntryByEmail(gomock.Any(), "ann@x.com").
			Return(nil, NewEntryNotFoundError(nil))
		mockRepo.EXPECT().
			CreateEntry(gomock.Any(), gomock.Any()).
			Return(created, nil)

		result, err := service.CreateEntry(context.Background(), req)

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, created.ID, result.ID)
		assert.Equal(t, "Ann", result.Name)
		assert.Equal(t, "ann@x.com", result.Email)
		assert.False(t, result.IsJoined)
		assert.NotNil(t, result.CreatedAt)
	})

	t.Run("malformed email fails validation", func(t *testing.T) {
		malformed := []string{
			"not-an-email",
			"missing-domain@",
			"@missing-local.com",
			"no-tld@example",
			"short-tld@example.c",
			"two@@example.com",
		}

		for _, email := range malformed {
			req := &CreateWaitlistEntryRequest{Name: "Bob", Email: email}

			result, err := service.CreateEntry(context.Background(), req)

			assert.Error(t, err, "email %q should be rejected", email)
			assert.Nil(t, result)
			assert.Equal(t, apperrors.ErrorTypeInvalidRequest, apperrors.GetErrorType(err))
		}
	})

	t.Run("duplicate email fails with conflict", func(t *testing.T) {
		req := &CreateWaitlistEntryRequest{Name: "Bob", Email: "a@example.com"}

		mockRepo.EXPECT().
			FindEntryByEmail(gomock.Any(), "a@example.com").
			Return(&models.WaitlistEntry{ID: "existing", Email: "a@example.com"}, nil)

		result, err := service.CreateEntry(context.Background(), req)

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.GetErrorType(err))
	})

	t.Run("repository error propagates", func(t *testing.T) {
		req := &CreateWaitlistEntryRequest{Name: "Bob", Email: "bob@x.com"}

		mockRepo.EXPECT().
			FindEntryByEmail(gomock.Any(), "bob@x.com").
			Return(nil, NewEntryNotFoundError(nil))
		mockRepo.EXPECT().
			CreateEntry(gomock.Any(), gomock.Any()).
			Return(nil, apperrors.NewDatabaseError("database error", nil))

		result, err := service.CreateEntry(context.Background(), req)

		assert.Error(t, err)
		assert.Nil(t, result)
	})
}

func TestWaitlistService_FindEntryByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockWaitlistRepository(ctrl)
	logger := log.NewLoggerWithJSONOutput()
	service := NewWaitlistService(logger, mockRepo)

	t.Run("unknown id fails with not found", func(t *testing.T) {
		mockRepo.EXPECT().
			FindEntryByID(gomock.Any(), "b97cb627-0000-4ab1-8d21-4c3bbf2bd0a1").
			Return(nil, NewEntryNotFoundError(nil))

		result, err := service.FindEntryByID(context.Background(), "b97cb627-0000-4ab1-8d21-4c3bbf2bd0a1")

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetErrorType(err))
	})

	t.Run("empty id is rejected before the repository", func(t *testing.T) {
		result, err := service.FindEntryByID(context.Background(), "")

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrorTypeInvalidRequest, apperrors.GetErrorType(err))
	})
}

func TestWaitlistService_GetAllEntries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockWaitlistRepository(ctrl)
	logger := log.NewLoggerWithJSONOutput()
	service := NewWaitlistService(logger, mockRepo)

	t.Run("preserves repository ordering", func(t *testing.T) {
		base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		entries := []*models.WaitlistEntry{
			{ID: "a", Name: "A", Email: "a@x.com", CreatedAt: base},
			{ID: "b", Name: "B", Email: "b@x.com", CreatedAt: base.Add(time.Second)},
			{ID: "c", Name: "C", Email: "c@x.com", CreatedAt: base.Add(2 * time.Second)},
		}

		mockRepo.EXPECT().GetAllEntries(gomock.Any()).Return(entries, nil)

		result, err := service.GetAllEntries(context.Background())

		assert.NoError(t, err)
		assert.Len(t, result, 3)
		assert.Equal(t, "a", result[0].ID)
		assert.Equal(t, "b", result[1].ID)
		assert.Equal(t, "c", result[2].ID)
	})

	t.Run("empty waitlist is not an error", func(t *testing.T) {
		mockRepo.EXPECT().GetAllEntries(gomock.Any()).Return(nil, nil)

		result, err := service.GetAllEntries(context.Background())

		assert.NoError(t, err)
		assert.Empty(t, result)
	})
}

func TestWaitlistService_UpdateEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockWaitlistRepository(ctrl)
	logger := log.NewLoggerWithJSONOutput()
	service := NewWaitlistService(logger, mockRepo)

	entryID := "7f9c36b1-54f2-4f5e-9a30-1be1e8f5c1dd"
	stored := func() *models.WaitlistEntry {
		return &models.WaitlistEntry{
			ID:        entryID,
			Name:      "Ann",
			Email:     "ann@x.com",
			IsJoined:  false,
			CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		}
	}

	t.Run("only supplied fields are written", func(t *testing.T) {
		joined := true
		req := &UpdateWaitlistEntryRequest{IsJoined: &joined}

		after := stored()
		after.IsJoined = true

		mockRepo.EXPECT().FindEntryByID(gomock.Any(), entryID).Return(stored(), nil)
		mockRepo.EXPECT().
			UpdateEntry(gomock.Any(), entryID, map[string]interface{}{"is_joined": true}).
			Return(nil)
		mockRepo.EXPECT().FindEntryByID(gomock.Any(), entryID).Return(after, nil)

		result, err := service.UpdateEntry(context.Background(), entryID, req)

		assert.NoError(t, err)
		assert.True(t, result.IsJoined)
		assert.Equal(t, "Ann", result.Name)
		assert.Equal(t, "ann@x.com", result.Email)
	})

	t.Run("explicit false is distinguished from omitted", func(t *testing.T) {
		notJoined := false
		req := &UpdateWaitlistEntryRequest{IsJoined: &notJoined}

		mockRepo.EXPECT().FindEntryByID(gomock.Any(), entryID).Return(stored(), nil)
		mockRepo.EXPECT().
			UpdateEntry(gomock.Any(), entryID, map[string]interface{}{"is_joined": false}).
			Return(nil)
		mockRepo.EXPECT().FindEntryByID(gomock.Any(), entryID).Return(stored(), nil)

		_, err := service.UpdateEntry(context.Background(), entryID, req)

		assert.NoError(t, err)
	})

	t.Run("empty update returns the entry unchanged", func(t *testing.T) {
		mockRepo.EXPECT().FindEntryByID(gomock.Any(), entryID).Return(stored(), nil)

		result, err := service.UpdateEntry(context.Background(), entryID, &UpdateWaitlistEntryRequest{})

		assert.NoError(t, err)
		assert.Equal(t, "ann@x.com", result.Email)
	})

	t.Run("malformed email fails validation", func(t *testing.T) {
		bad := "not-an-email"
		req := &UpdateWaitlistEntryRequest{Email: &bad}

		mockRepo.EXPECT().FindEntryByID(gomock.Any(), entryID).Return(stored(), nil)

		result, err := service.UpdateEntry(context.Background(), entryID, req)

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrorTypeInvalidRequest, apperrors.GetErrorType(err))
	})

	t.Run("email held by another entry fails with conflict", func(t *testing.T) {
		email := "taken@x.com"
		req := &UpdateWaitlistEntryRequest{Email: &email}

		mockRepo.EXPECT().FindEntryByID(gomock.Any(), entryID).Return(stored(), nil)
		mockRepo.EXPECT().
			FindEntryByEmail(gomock.Any(), "taken@x.com").
			Return(&models.WaitlistEntry{ID: "someone-else", Email: "taken@x.com"}, nil)

		result, err := service.UpdateEntry(context.Background(), entryID, req)

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.GetErrorType(err))
	})

	t.Run("re-supplying the entry's own email is not a conflict", func(t *testing.T) {
		email := "ann@x.com"
		req := &UpdateWaitlistEntryRequest{Email: &email}

		mockRepo.EXPECT().FindEntryByID(gomock.Any(), entryID).Return(stored(), nil)
		mockRepo.EXPECT().FindEntryByEmail(gomock.Any(), "ann@x.com").Return(stored(), nil)
		mockRepo.EXPECT().
			UpdateEntry(gomock.Any(), entryID, map[string]interface{}{"email": "ann@x.com"}).
			Return(nil)
		mockRepo.EXPECT().FindEntryByID(gomock.Any(), entryID).Return(stored(), nil)

		_, err := service.UpdateEntry(context.Background(), entryID, req)

		assert.NoError(t, err)
	})

	t.Run("unknown id fails with not found", func(t *testing.T) {
		joined := true
		req := &UpdateWaitlistEntryRequest{IsJoined: &joined}

		mockRepo.EXPECT().
			FindEntryByID(gomock.Any(), "missing").
			Return(nil, NewEntryNotFoundError(nil))

		result, err := service.UpdateEntry(context.Background(), "missing", req)

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetErrorType(err))
	})
}

func TestWaitlistService_DeleteEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockWaitlistRepository(ctrl)
	logger := log.NewLoggerWithJSONOutput()
	service := NewWaitlistService(logger, mockRepo)

	t.Run("successful delete", func(t *testing.T) {
		mockRepo.EXPECT().DeleteEntry(gomock.Any(), "some-id").Return(nil)

		assert.NoError(t, service.DeleteEntry(context.Background(), "some-id"))
	})

	t.Run("unknown id fails with not found", func(t *testing.T) {
		mockRepo.EXPECT().
			DeleteEntry(gomock.Any(), "missing").
			Return(NewEntryNotFoundError(nil))

		err := service.DeleteEntry(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetErrorType(err))
	})
}
