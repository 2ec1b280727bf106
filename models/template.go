package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Channel is a notification transport with its own quota and delivery
// lifecycle.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
)

func (c Channel) Valid() bool {
	switch c {
	case ChannelEmail, ChannelWhatsApp:
		return true
	default:
		return false
	}
}

// TemplateApproval tracks provider pre-approval. Only WhatsApp requires
// an approved template before sending; email templates are created as
// approved.
type TemplateApproval string

const (
	TemplateDraft           TemplateApproval = "draft"
	TemplatePendingApproval TemplateApproval = "pending"
	TemplateApproved        TemplateApproval = "approved"
)

// MessageTemplate bodies carry named placeholders: {{customer_name}},
// {{amount}}, {{invoice_number}}, {{due_date}}, {{company_name}}.
type MessageTemplate struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	AccountID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name    string  `gorm:"not null"`
	Channel Channel `gorm:"type:varchar(20);not null"`
	Subject string  // email only
	Body    string  `gorm:"type:text;not null"`

	// At most one default per account+channel; enforced transactionally
	// on write in the template controller.
	IsDefault      bool             `gorm:"default:false"`
	ApprovalStatus TemplateApproval `gorm:"type:varchar(20);default:'draft'"`

	gorm.Model
}

func (t *MessageTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
