package waitlist

import (
	"context"
	"regexp"

	"github.com/obiano/waitlist-api/internal/log"
	apperrors "github.com/obiano/waitlist-api/pkg/errors"
)

// emailShapePattern accepts local@domain.tld: a non-empty local part of
// alphanumerics and ._%+-, a domain of alphanumerics, dots and hyphens, and
// a final label of at least two letters. Syntactic check only; no
// deliverability verification.
var emailShapePattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

type WaitlistService interface {
	// CreateEntry creates a new waitlist entry based on the provided request.
	CreateEntry(ctx context.Context, req *CreateWaitlistEntryRequest) (*WaitlistEntryResponse, error)

	// FindEntryByID retrieves a waitlist entry by its unique ID.
	FindEntryByID(ctx context.Context, id string) (*WaitlistEntryResponse, error)

	// GetAllEntries retrieves all waitlist entries, oldest first.
	GetAllEntries(ctx context.Context) ([]WaitlistEntryResponse, error)

	// UpdateEntry applies a partial update to the entry identified by ID and
	// returns the updated entry. Only supplied fields change.
	UpdateEntry(ctx context.Context, id string, req *UpdateWaitlistEntryRequest) (*WaitlistEntryResponse, error)

	// DeleteEntry removes a waitlist entry identified by its ID.
	DeleteEntry(ctx context.Context, id string) error
}

type waitlistService struct {
	logger     *log.Logger
	repository WaitlistRepository
}

func NewWaitlistService(logger *log.Logger, repository WaitlistRepository) WaitlistService {
	return &waitlistService{logger: logger, repository: repository}
}

func (s *waitlistService) CreateEntry(ctx context.Context, req *CreateWaitlistEntryRequest) (*WaitlistEntryResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		logger.Error("CreateEntry received empty request")
		return nil, apperrors.NewInvalidRequestError("request cannot be nil", nil)
	}

	if !emailShapePattern.MatchString(req.Email) {
		logger.Error("CreateEntry received invalid email format", "email", req.Email)
		return nil, NewInvalidEmailError()
	}

	// The unique index on email is the authoritative guard; this lookup only
	// produces a friendlier conflict before hitting the constraint.
	if _, err := s.repository.FindEntryByEmail(ctx, req.Email); err == nil {
		logger.Error("CreateEntry received email that is already on the waitlist", "email", req.Email)
		return nil, NewDuplicateEmailError(nil)
	} else if apperrors.GetErrorType(err) != apperrors.ErrorTypeNotFound {
		logger.Error("Failed to check email uniqueness", "error", err)
		return nil, err
	}

	entry, err := s.repository.CreateEntry(ctx, ToWaitlistEntryModel(req))
	if err != nil {
		logger.Error("Failed to create waitlist entry", "error", err)
		return nil, err
	}

	response := ToWaitlistEntryResponse(entry)
	return &response, nil
}

func (s *waitlistService) FindEntryByID(ctx context.Context, id string) (*WaitlistEntryResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if id == "" {
		logger.Error("FindEntryByID received empty ID")
		return nil, apperrors.NewInvalidRequestError("entry ID cannot be empty", nil)
	}

	entry, err := s.repository.FindEntryByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find waitlist entry", "id", id, "error", err)
		return nil, err
	}

	response := ToWaitlistEntryResponse(entry)
	return &response, nil
}

func (s *waitlistService) GetAllEntries(ctx context.Context) ([]WaitlistEntryResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	entries, err := s.repository.GetAllEntries(ctx)
	if err != nil {
		logger.Error("Failed to get all waitlist entries", "error", err)
		return nil, err
	}

	responses := make([]WaitlistEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, ToWaitlistEntryResponse(entry))
	}

	return responses, nil
}

func (s *waitlistService) UpdateEntry(ctx context.Context, id string, req *UpdateWaitlistEntryRequest) (*WaitlistEntryResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if id == "" {
		logger.Error("UpdateEntry received empty ID")
		return nil, apperrors.NewInvalidRequestError("entry ID cannot be empty", nil)
	}

	if req == nil {
		logger.Error("UpdateEntry received empty request")
		return nil, apperrors.NewInvalidRequestError("request cannot be nil", nil)
	}

	current, err := s.repository.FindEntryByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find waitlist entry for update", "id", id, "error", err)
		return nil, err
	}

	fieldsToUpdate := make(map[string]interface{})

	if req.Email != nil {
		if !emailShapePattern.MatchString(*req.Email) {
			logger.Error("UpdateEntry received invalid email format", "email", *req.Email)
			return nil, NewInvalidEmailError()
		}
		if other, findErr := s.repository.FindEntryByEmail(ctx, *req.Email); findErr == nil {
			if other.ID != id {
				logger.Error("UpdateEntry received email held by another entry", "email", *req.Email)
				return nil, NewDuplicateEmailError(nil)
			}
		} else if apperrors.GetErrorType(findErr) != apperrors.ErrorTypeNotFound {
			logger.Error("Failed to check email uniqueness", "error", findErr)
			return nil, findErr
		}
		fieldsToUpdate["email"] = *req.Email
	}
	if req.Name != nil {
		fieldsToUpdate["name"] = *req.Name
	}
	if req.IsJoined != nil {
		fieldsToUpdate["is_joined"] = *req.IsJoined
	}

	// Nothing supplied: a no-op that returns the entry unchanged.
	if len(fieldsToUpdate) == 0 {
		response := ToWaitlistEntryResponse(current)
		return &response, nil
	}

	if err := s.repository.UpdateEntry(ctx, id, fieldsToUpdate); err != nil {
		logger.Error("Failed to update waitlist entry", "id", id, "error", err)
		return nil, err
	}

	updated, err := s.repository.FindEntryByID(ctx, id)
	if err != nil {
		logger.Error("Failed to reload waitlist entry after update", "id", id, "error", err)
		return nil, err
	}

	response := ToWaitlistEntryResponse(updated)
	return &response, nil
}

func (s *waitlistService) DeleteEntry(ctx context.Context, id string) error {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if id == "" {
		logger.Error("DeleteEntry received empty ID")
		return apperrors.NewInvalidRequestError("entry ID cannot be empty", nil)
	}

	if err := s.repository.DeleteEntry(ctx, id); err != nil {
		logger.Error("Failed to delete waitlist entry", "id", id, "error", err)
		return err
	}

	return nil
}
