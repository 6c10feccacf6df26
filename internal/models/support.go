package models

import (
	"time"

	"gorm.io/gorm"
)

// Ticket is a support request raised by an employee
type Ticket struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	UserID        string    `json:"userId" gorm:"index;not null"`
	User          *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Subject       string    `json:"subject" gorm:"not null"`
	Category      string    `json:"category" gorm:"not null"`
	Description   string    `json:"description" gorm:"not null"`
	Status        string    `json:"status" gorm:"default:Open;not null"`
	AttachmentURL string    `json:"attachmentUrl"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Ticket categories
const (
	CategoryIT      = "IT"
	CategoryHR      = "HR"
	CategoryAdmin   = "Admin"
	CategoryPayroll = "Payroll"
	CategoryOther   = "Other"
)

// Ticket statuses
const (
	TicketStatusOpen       = "Open"
	TicketStatusInProgress = "In Progress"
	TicketStatusClosed     = "Closed"
)

var validCategories = map[string]bool{
	CategoryIT:      true,
	CategoryHR:      true,
	CategoryAdmin:   true,
	CategoryPayroll: true,
	CategoryOther:   true,
}

var validTicketStatuses = map[string]bool{
	TicketStatusOpen:       true,
	TicketStatusInProgress: true,
	TicketStatusClosed:     true,
}

func IsValidCategory(category string) bool {
	return validCategories[category]
}

func IsValidTicketStatus(status string) bool {
	return validTicketStatuses[status]
}

// BeforeCreate assigns the id and initial status
func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	t.Prepare()
	return nil
}

func (t *Ticket) Prepare() {
	if t.ID == "" {
		t.ID = NewID()
	}
	if t.Status == "" {
		t.Status = TicketStatusOpen
	}
}

// TicketDetail is a ticket joined with its owner, as admins see it
type TicketDetail struct {
	ID              string    `json:"id"`
	Subject         string    `json:"subject"`
	Category        string    `json:"category"`
	Description     string    `json:"description"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	AttachmentURL   string    `json:"attachmentUrl"`
	UserID          string    `json:"userId"`
	UserName        string    `json:"userName"`
	UserEmail       string    `json:"userEmail"`
	UserMobile      string    `json:"userMobile"`
	UserDepartment  string    `json:"userDepartment"`
	UserDesignation string    `json:"userDesignation"`
}

// NewTicketDetail joins a ticket with its owner; owner may be nil
func NewTicketDetail(t *Ticket, owner *User) *TicketDetail {
	d := &TicketDetail{
		ID:            t.ID,
		Subject:       t.Subject,
		Category:      t.Category,
		Description:   t.Description,
		Status:        t.Status,
		CreatedAt:     t.CreatedAt,
		AttachmentURL: t.AttachmentURL,
		UserID:        t.UserID,
	}
	if owner != nil {
		d.UserName = owner.Name
		d.UserEmail = owner.Email
		d.UserMobile = owner.Mobile
		d.UserDepartment = owner.Department
		d.UserDesignation = owner.Designation
	}
	return d
}
