package waitlist

import (
	"github.com/obiano/waitlist-api/internal/models"
	"github.com/obiano/waitlist-api/pkg/constants"
)

type CreateWaitlistEntryRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=255"`
	Email    string `json:"email" binding:"required,max=255"`
	IsJoined *bool  `json:"isJoined" binding:"omitempty"`
}

// UpdateWaitlistEntryRequest carries a partial update. Pointer fields
// distinguish "omitted" from "explicitly set to the zero value": a nil
// field leaves the stored value unchanged, a non-nil one overwrites it.
type UpdateWaitlistEntryRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	Email    *string `json:"email" binding:"omitempty,max=255"`
	IsJoined *bool   `json:"isJoined" binding:"omitempty"`
}

type WaitlistEntryResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	IsJoined  bool    `json:"isJoined"`
	CreatedAt *string `json:"createdAt"`
}

// ========================================
// Mappers
// ========================================

func ToWaitlistEntryModel(req *CreateWaitlistEntryRequest) *models.WaitlistEntry {
	if req == nil {
		return nil
	}
	entry := &models.WaitlistEntry{
		Name:  req.Name,
		Email: req.Email,
	}
	if req.IsJoined != nil {
		entry.IsJoined = *req.IsJoined
	}
	return entry
}

func ToWaitlistEntryResponse(entry *models.WaitlistEntry) WaitlistEntryResponse {
	if entry == nil {
		return WaitlistEntryResponse{}
	}
	var createdAt *string
	if !entry.CreatedAt.IsZero() {
		formatted := entry.CreatedAt.Format(constants.RFC3339DateTimeFormat)
		createdAt = &formatted
	}
	return WaitlistEntryResponse{
		ID:        entry.ID,
		Name:      entry.Name,
		Email:     entry.Email,
		IsJoined:  entry.IsJoined,
		CreatedAt: createdAt,
	}
}
