package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	DefaultProcessingFile   = "Unnamed File"
	DefaultProcessingStatus = "Pending"
)

// ProcessingLog records a file import run against a menu version.
type ProcessingLog struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	MenuVersionID *uint      `gorm:"index" json:"menu_version_id"`
	FileName      string     `gorm:"type:varchar(255);not null" json:"file_name"`
	Status        string     `gorm:"type:varchar(50);not null;index" json:"status"`
	StartedAt     time.Time  `gorm:"not null" json:"started_at"`
	CompletedAt   *time.Time `gorm:"index" json:"completed_at,omitempty"`
	ErrorMessage  string     `gorm:"type:text" json:"error_message,omitempty"`
}

func (p *ProcessingLog) GetID() uint { return p.ID }

func (p *ProcessingLog) BeforeCreate(tx *gorm.DB) error {
	if p.FileName == "" {
		p.FileName = DefaultProcessingFile
	}
	if p.Status == "" {
		p.Status = DefaultProcessingStatus
	}
	if p.StartedAt.IsZero() {
		p.StartedAt = time.Now()
	}
	return nil
}
