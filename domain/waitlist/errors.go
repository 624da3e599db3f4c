package waitlist

import (
	"errors"

	apperrors "github.com/obiano/waitlist-api/pkg/errors"
)

// Sentinel errors for the waitlist domain.
var (
	ErrEntryNotFound  = errors.New("waitlist entry not found")
	ErrDuplicateEmail = errors.New("an entry with this email already exists")
	ErrInvalidEmail   = errors.New("email must look like local@domain.tld")
)

func NewEntryNotFoundError(err error) error {
	if err == nil {
		err = ErrEntryNotFound
	}
	return apperrors.NewNotFoundError(ErrEntryNotFound.Error(), err)
}

func NewDuplicateEmailError(err error) error {
	if err == nil {
		err = ErrDuplicateEmail
	}
	return apperrors.NewConflictError(ErrDuplicateEmail.Error(), err)
}

func NewInvalidEmailError() error {
	return apperrors.NewInvalidRequestError(ErrInvalidEmail.Error(), ErrInvalidEmail)
}
