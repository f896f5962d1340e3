package models

import (
	"time"

	"gorm.io/gorm"
)

const DefaultVersionCreator = "System"

// MenuVersion is a point-in-time snapshot of a menu. At most one version per
// menu has IsActive set; writes that keep this true go through
// services.VersionService.
type MenuVersion struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	MenuID         uint            `gorm:"not null;index;uniqueIndex:idx_version_menu_number" json:"menu_id"`
	VersionNumber  int             `gorm:"not null;uniqueIndex:idx_version_menu_number" json:"version_number"`
	CreatedAt      time.Time       `gorm:"not null" json:"created_at"`
	CreatedBy      string          `gorm:"type:varchar(255);not null" json:"created_by"`
	Notes          string          `gorm:"type:text" json:"notes"`
	IsActive       bool            `gorm:"not null;index" json:"is_active"`
	Sections       []MenuSection   `gorm:"foreignKey:MenuVersionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"sections,omitempty"`
	ProcessingLogs []ProcessingLog `gorm:"foreignKey:MenuVersionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (v *MenuVersion) GetID() uint { return v.ID }

func (v *MenuVersion) BeforeCreate(tx *gorm.DB) error {
	if v.CreatedBy == "" {
		v.CreatedBy = DefaultVersionCreator
	}
	return nil
}
