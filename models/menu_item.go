package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const DefaultItemName = "Unnamed Item"

type MenuItem struct {
	ID           uint                         `gorm:"primaryKey" json:"id"`
	SectionID    uint                         `gorm:"not null;index;uniqueIndex:idx_item_section_name" json:"section_id"`
	Name         string                       `gorm:"type:varchar(255);not null;index;uniqueIndex:idx_item_section_name" json:"name"`
	Description  string                       `gorm:"type:text" json:"description"`
	Price        decimal.Decimal              `gorm:"type:decimal(10,2);not null;index" json:"price"`
	Position     int                          `gorm:"not null;default:0" json:"position"`
	DietaryLinks []MenuItemDietaryRestriction `gorm:"foreignKey:MenuItemID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (i *MenuItem) GetID() uint { return i.ID }

func (i *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if i.Name == "" {
		i.Name = DefaultItemName
	}
	if i.Position != 0 {
		return nil
	}
	var last int
	err := tx.Session(&gorm.Session{NewDB: true}).
		Model(&MenuItem{}).
		Where("section_id = ?", i.SectionID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&last).Error
	if err != nil {
		return err
	}
	i.Position = last + 1
	return nil
}
