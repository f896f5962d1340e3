package models

import "gorm.io/gorm"

const DefaultSectionName = "Unnamed Section"

type MenuSection struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	MenuVersionID uint       `gorm:"not null;index;uniqueIndex:idx_section_version_name" json:"menu_version_id"`
	Name          string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_section_version_name" json:"name"`
	Position      int        `gorm:"not null;default:0" json:"position"`
	Items         []MenuItem `gorm:"foreignKey:SectionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items,omitempty"`
}

func (s *MenuSection) GetID() uint { return s.ID }

// BeforeCreate places a new section after its siblings unless the caller
// picked a position.
func (s *MenuSection) BeforeCreate(tx *gorm.DB) error {
	if s.Name == "" {
		s.Name = DefaultSectionName
	}
	if s.Position != 0 {
		return nil
	}
	var last int
	err := tx.Session(&gorm.Session{NewDB: true}).
		Model(&MenuSection{}).
		Where("menu_version_id = ?", s.MenuVersionID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&last).Error
	if err != nil {
		return err
	}
	s.Position = last + 1
	return nil
}
