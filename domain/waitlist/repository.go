package waitlist

import (
	"context"
	"errors"

	"github.com/obiano/waitlist-api/internal/models"
	apperrors "github.com/obiano/waitlist-api/pkg/errors"
	"gorm.io/gorm"
)

type WaitlistRepository interface {
	// CreateEntry persists a new waitlist entry to the database.
	CreateEntry(ctx context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error)
	// FindEntryByID retrieves a waitlist entry by its unique ID.
	FindEntryByID(ctx context.Context, id string) (*models.WaitlistEntry, error)
	// FindEntryByEmail retrieves a waitlist entry by its email address.
	FindEntryByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error)
	// GetAllEntries returns all waitlist entries ordered by creation time, oldest first.
	GetAllEntries(ctx context.Context) ([]*models.WaitlistEntry, error)
	// UpdateEntry updates fields of a waitlist entry identified by its ID.
	UpdateEntry(ctx context.Context, id string, updates map[string]interface{}) error
	// DeleteEntry removes a waitlist entry by its ID.
	DeleteEntry(ctx context.Context, id string) error
}

type waitlistRepository struct {
	db *gorm.DB
}

func NewWaitlistRepository(db *gorm.DB) WaitlistRepository {
	return &waitlistRepository{db: db}
}

func (wr *waitlistRepository) CreateEntry(ctx context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error) {
	if err := wr.db.WithContext(ctx).Create(entry).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, NewDuplicateEmailError(err)
		}
		return nil, apperrors.NewDatabaseError("unable to create waitlist entry", err)
	}

	return entry, nil
}

func (wr *waitlistRepository) FindEntryByID(ctx context.Context, id string) (*models.WaitlistEntry, error) {
	var entry models.WaitlistEntry

	if err := wr.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewEntryNotFoundError(err)
		}
		return nil, apperrors.NewDatabaseError("failed to fetch waitlist entry", err)
	}

	return &entry, nil
}

func (wr *waitlistRepository) FindEntryByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error) {
	var entry models.WaitlistEntry

	if err := wr.db.WithContext(ctx).First(&entry, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewEntryNotFoundError(err)
		}
		return nil, apperrors.NewDatabaseError("failed to fetch waitlist entry by email", err)
	}

	return &entry, nil
}

func (wr *waitlistRepository) GetAllEntries(ctx context.Context) ([]*models.WaitlistEntry, error) {
	var entries []*models.WaitlistEntry

	if err := wr.db.WithContext(ctx).Order("created_at ASC").Find(&entries).Error; err != nil {
		return nil, apperrors.NewDatabaseError("unable to fetch waitlist entries", err)
	}

	return entries, nil
}

func (wr *waitlistRepository) UpdateEntry(ctx context.Context, id string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	result := wr.db.WithContext(ctx).
		Model(&models.WaitlistEntry{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return NewDuplicateEmailError(result.Error)
		}
		return apperrors.NewDatabaseError("unable to update waitlist entry", result.Error)
	}

	if result.RowsAffected == 0 {
		return NewEntryNotFoundError(nil)
	}

	return nil
}

func (wr *waitlistRepository) DeleteEntry(ctx context.Context, id string) error {
	result := wr.db.WithContext(ctx).Delete(&models.WaitlistEntry{}, "id = ?", id)

	if result.Error != nil {
		return apperrors.NewDatabaseError("unable to delete waitlist entry", result.Error)
	}

	if result.RowsAffected == 0 {
		return NewEntryNotFoundError(nil)
	}

	return nil
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || apperrors.IsDuplicateKeyError(err)
}
