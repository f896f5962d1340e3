package models

import (
	"time"

	"gorm.io/gorm"
)

const DefaultRestaurantName = "Unnamed Restaurant"

type Restaurant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;index" json:"name"`
	Address   string    `gorm:"type:varchar(255)" json:"address"`
	Phone     string    `gorm:"type:varchar(255)" json:"phone_number"`
	Email     string    `gorm:"type:varchar(100)" json:"email"`
	Website   string    `gorm:"type:varchar(200)" json:"website"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
	Menus     []Menu    `gorm:"foreignKey:RestaurantID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"menus,omitempty"`
}

func (r *Restaurant) GetID() uint { return r.ID }

func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	if r.Name == "" {
		r.Name = DefaultRestaurantName
	}
	return nil
}
