package models

import (
	"time"

	"gorm.io/gorm"
)

const DefaultMenuName = "Unnamed Menu"

// Menu groups every version of one named menu ("Dinner", "Brunch") of a restaurant.
type Menu struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	RestaurantID uint          `gorm:"not null;uniqueIndex:idx_menu_restaurant_name" json:"restaurant_id"`
	Name         string        `gorm:"type:varchar(255);not null;uniqueIndex:idx_menu_restaurant_name" json:"name"`
	CreatedAt    time.Time     `gorm:"not null" json:"created_at"`
	Versions     []MenuVersion `gorm:"foreignKey:MenuID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"versions,omitempty"`
}

func (m *Menu) GetID() uint { return m.ID }

func (m *Menu) BeforeCreate(tx *gorm.DB) error {
	if m.Name == "" {
		m.Name = DefaultMenuName
	}
	return nil
}
