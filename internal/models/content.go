package models

import (
	"time"

	"gorm.io/gorm"
)

// Policy is a company policy document
type Policy struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Version     string    `json:"version"`
	FileURL     string    `json:"fileUrl" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DefaultPolicyVersion is used when a policy is created without a version
const DefaultPolicyVersion = "1.0"

func (p *Policy) BeforeCreate(tx *gorm.DB) error {
	p.Prepare()
	return nil
}

func (p *Policy) Prepare() {
	if p.ID == "" {
		p.ID = NewID()
	}
	if p.Version == "" {
		p.Version = DefaultPolicyVersion
	}
}

// Holiday types
const (
	HolidayPublic   = "public"
	HolidayOptional = "optional"
)

type Holiday struct {
	ID   string    `json:"id" gorm:"primaryKey"`
	Name string    `json:"name" gorm:"not null"`
	Date time.Time `json:"date" gorm:"type:date;not null"`
	Type string    `json:"type" gorm:"default:public"`
}

func (h *Holiday) BeforeCreate(tx *gorm.DB) error {
	h.Prepare()
	return nil
}

func (h *Holiday) Prepare() {
	if h.ID == "" {
		h.ID = NewID()
	}
	if h.Type == "" {
		h.Type = HolidayPublic
	}
}

func IsValidHolidayType(t string) bool {
	return t == HolidayPublic || t == HolidayOptional
}

// Announcement is a news item shown on the dashboard
type Announcement struct {
	ID      string    `json:"id" gorm:"primaryKey"`
	Title   string    `json:"title" gorm:"not null"`
	Content string    `json:"content" gorm:"not null"`
	Date    time.Time `json:"date"`
}

func (a *Announcement) BeforeCreate(tx *gorm.DB) error {
	a.Prepare()
	return nil
}

func (a *Announcement) Prepare() {
	if a.ID == "" {
		a.ID = NewID()
	}
	if a.Date.IsZero() {
		a.Date = time.Now()
	}
}
