package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yeremiapane/restaurant-menu/models"
	"github.com/yeremiapane/restaurant-menu/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogService manages the dietary tags attached to menu items.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// TagItem attaches the named restriction to an item, creating the
// restriction on first use. Tagging twice is a no-op.
func (s *CatalogService) TagItem(ctx context.Context, itemID uint, restrictionName string) (*models.DietaryRestriction, error) {
	name := strings.TrimSpace(restrictionName)
	if name == "" {
		return nil, utils.NewValidationError("restriction name is required")
	}

	var restriction models.DietaryRestriction
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.MenuItem
		if err := tx.Select("id").First(&item, itemID).Error; err != nil {
			return notFound(err, "Menu item not found")
		}

		if err := tx.Where(models.DietaryRestriction{Name: name}).FirstOrCreate(&restriction).Error; err != nil {
			return fmt.Errorf("find or create restriction %q: %w", name, err)
		}

		link := models.MenuItemDietaryRestriction{MenuItemID: item.ID, DietaryRestrictionID: restriction.ID}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
	})
	if err != nil {
		return nil, err
	}
	return &restriction, nil
}

func (s *CatalogService) UntagItem(ctx context.Context, itemID, restrictionID uint) error {
	result := s.DB.WithContext(ctx).
		Where("menu_item_id = ? AND dietary_restriction_id = ?", itemID, restrictionID).
		Delete(&models.MenuItemDietaryRestriction{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.NewNotFoundError("Dietary restriction is not attached to this item")
	}
	return nil
}

// ItemRestrictions lists the tags of an item by name.
func (s *CatalogService) ItemRestrictions(ctx context.Context, itemID uint) ([]models.DietaryRestriction, error) {
	db := s.DB.WithContext(ctx)
	var item models.MenuItem
	if err := db.Select("id").First(&item, itemID).Error; err != nil {
		return nil, notFound(err, "Menu item not found")
	}

	restrictions := make([]models.DietaryRestriction, 0)
	err := db.Joins("JOIN menu_item_dietary_restrictions ON menu_item_dietary_restrictions.dietary_restriction_id = dietary_restrictions.id").
		Where("menu_item_dietary_restrictions.menu_item_id = ?", item.ID).
		Order("dietary_restrictions.name").
		Find(&restrictions).Error
	if err != nil {
		return nil, fmt.Errorf("load restrictions of item %d: %w", item.ID, err)
	}
	return restrictions, nil
}
