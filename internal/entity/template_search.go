package entity

import (
	"time"

	"github.com/google/uuid"
)

// TemplateSearch records one answered template search request.
type TemplateSearch struct {
	ID             uuid.UUID `json:"id"`
	CompanyName    string    `json:"company_name"`
	Industry       string    `json:"industry"`
	Source         string    `json:"source"`
	FallbackReason *string   `json:"fallback_reason,omitempty"`
	TemplateCount  int       `json:"template_count"`
	CreatedAt      time.Time `json:"created_at"`
}
