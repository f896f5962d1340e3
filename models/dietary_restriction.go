package models

type DietaryRestriction struct {
	ID          uint                         `gorm:"primaryKey" json:"id"`
	Name        string                       `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Description string                       `gorm:"type:text" json:"description"`
	ItemLinks   []MenuItemDietaryRestriction `gorm:"foreignKey:DietaryRestrictionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (d *DietaryRestriction) GetID() uint { return d.ID }

// MenuItemDietaryRestriction links an item to one of its tags. The composite
// key keeps each pair unique.
type MenuItemDietaryRestriction struct {
	MenuItemID           uint `gorm:"primaryKey;autoIncrement:false;index" json:"menu_item_id"`
	DietaryRestrictionID uint `gorm:"primaryKey;autoIncrement:false;index" json:"dietary_restriction_id"`
}
