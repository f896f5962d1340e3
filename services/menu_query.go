package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yeremiapane/restaurant-menu/models"
	"github.com/yeremiapane/restaurant-menu/utils"
	"gorm.io/gorm"
)

type SectionName struct {
	Name string `json:"name"`
}

type VersionSections struct {
	MenuName string        `json:"menu_name"`
	Version  int           `json:"version"`
	IsActive bool          `json:"is_active"`
	Sections []SectionName `json:"sections"`
}

type VersionSummary struct {
	VersionNumber int  `json:"version_number"`
	IsActive      bool `json:"is_active"`
}

type ItemView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

type SectionItems struct {
	SectionName string     `json:"section_name"`
	Items       []ItemView `json:"items"`
}

type MenuItems struct {
	RestaurantName string         `json:"restaurant_name"`
	MenuName       string         `json:"menu_name"`
	Version        int            `json:"version"`
	Sections       []SectionItems `json:"sections"`
}

// MenuQueryService composes the restaurant → menu → version → section → item
// hierarchy for the read endpoints.
type MenuQueryService struct {
	DB *gorm.DB
}

func NewMenuQueryService(db *gorm.DB) *MenuQueryService {
	return &MenuQueryService{DB: db}
}

// SectionsForRestaurant lists the sections of every version of every menu,
// active or not.
func (s *MenuQueryService) SectionsForRestaurant(ctx context.Context, restaurantID uint) ([]VersionSections, error) {
	db := s.DB.WithContext(ctx)
	if _, err := findRestaurant(db, restaurantID); err != nil {
		return nil, err
	}

	var menus []models.Menu
	err := db.Where("restaurant_id = ?", restaurantID).
		Order("id").
		Preload("Versions", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("version_number DESC")
		}).
		Preload("Versions.Sections", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position, id")
		}).
		Find(&menus).Error
	if err != nil {
		return nil, fmt.Errorf("load menus of restaurant %d: %w", restaurantID, err)
	}

	result := make([]VersionSections, 0)
	for _, menu := range menus {
		for _, version := range menu.Versions {
			entry := VersionSections{
				MenuName: menu.Name,
				Version:  version.VersionNumber,
				IsActive: version.IsActive,
				Sections: make([]SectionName, 0, len(version.Sections)),
			}
			for _, section := range version.Sections {
				entry.Sections = append(entry.Sections, SectionName{Name: section.Name})
			}
			result = append(result, entry)
		}
	}
	return result, nil
}

// ActiveSectionsForRestaurant flattens the sections of the active version of
// each menu.
func (s *MenuQueryService) ActiveSectionsForRestaurant(ctx context.Context, restaurantID uint) ([]SectionName, error) {
	db := s.DB.WithContext(ctx)
	if _, err := findRestaurant(db, restaurantID); err != nil {
		return nil, err
	}

	var sections []models.MenuSection
	err := db.Joins("JOIN menu_versions ON menu_versions.id = menu_sections.menu_version_id").
		Joins("JOIN menus ON menus.id = menu_versions.menu_id").
		Where("menus.restaurant_id = ? AND menu_versions.is_active = ?", restaurantID, true).
		Order("menus.id, menu_sections.position, menu_sections.id").
		Find(&sections).Error
	if err != nil {
		return nil, fmt.Errorf("load active sections of restaurant %d: %w", restaurantID, err)
	}

	result := make([]SectionName, 0, len(sections))
	for _, section := range sections {
		result = append(result, SectionName{Name: section.Name})
	}
	return result, nil
}

// VersionsForMenu lists the versions of a menu owned by the restaurant,
// newest first.
func (s *MenuQueryService) VersionsForMenu(ctx context.Context, restaurantID, menuID uint) ([]VersionSummary, error) {
	db := s.DB.WithContext(ctx)
	var menu models.Menu
	if err := db.Where("id = ? AND restaurant_id = ?", menuID, restaurantID).First(&menu).Error; err != nil {
		return nil, notFound(err, "Restaurant or Menu not found")
	}

	var versions []models.MenuVersion
	if err := db.Where("menu_id = ?", menu.ID).Order("version_number DESC").Find(&versions).Error; err != nil {
		return nil, fmt.Errorf("load versions of menu %d: %w", menu.ID, err)
	}

	result := make([]VersionSummary, 0, len(versions))
	for _, v := range versions {
		result = append(result, VersionSummary{VersionNumber: v.VersionNumber, IsActive: v.IsActive})
	}
	return result, nil
}

// ItemsByVersion returns the sections and items of one version. A nil
// versionNumber selects the active version.
func (s *MenuQueryService) ItemsByVersion(ctx context.Context, restaurantID, menuID uint, versionNumber *int) (*MenuItems, error) {
	data, _, err := s.itemsByVersion(s.DB.WithContext(ctx), restaurantID, menuID, versionNumber)
	return data, err
}

// ItemsByDietaryRestrictions is ItemsByVersion keeping only the items tagged
// with at least one of names. Without names nothing is filtered.
func (s *MenuQueryService) ItemsByDietaryRestrictions(ctx context.Context, restaurantID, menuID uint, versionNumber *int, names []string) (*MenuItems, error) {
	db := s.DB.WithContext(ctx)
	data, version, err := s.itemsByVersion(db, restaurantID, menuID, versionNumber)
	if err != nil || len(names) == 0 {
		return data, err
	}

	var tagged []uint
	err = db.Model(&models.MenuItem{}).
		Distinct().
		Joins("JOIN menu_sections ON menu_sections.id = menu_items.section_id").
		Joins("JOIN menu_item_dietary_restrictions ON menu_item_dietary_restrictions.menu_item_id = menu_items.id").
		Joins("JOIN dietary_restrictions ON dietary_restrictions.id = menu_item_dietary_restrictions.dietary_restriction_id").
		Where("menu_sections.menu_version_id = ? AND dietary_restrictions.name IN ?", version.ID, names).
		Pluck("menu_items.id", &tagged).Error
	if err != nil {
		return nil, fmt.Errorf("load tagged items of version %d: %w", version.ID, err)
	}

	keep := make(map[uint]struct{}, len(tagged))
	for _, id := range tagged {
		keep[id] = struct{}{}
	}
	for i := range data.Sections {
		filtered := make([]ItemView, 0, len(data.Sections[i].Items))
		for _, item := range data.Sections[i].Items {
			if _, ok := keep[item.ID]; ok {
				filtered = append(filtered, item)
			}
		}
		data.Sections[i].Items = filtered
	}
	return data, nil
}

func (s *MenuQueryService) itemsByVersion(db *gorm.DB, restaurantID, menuID uint, versionNumber *int) (*MenuItems, *models.MenuVersion, error) {
	restaurant, err := findRestaurant(db, restaurantID)
	if err != nil {
		return nil, nil, err
	}

	var menu models.Menu
	if err := db.Where("id = ? AND restaurant_id = ?", menuID, restaurant.ID).First(&menu).Error; err != nil {
		return nil, nil, notFound(err, "Menu not found")
	}

	version, err := resolveVersion(db, menu.ID, versionNumber)
	if err != nil {
		return nil, nil, err
	}

	var sections []models.MenuSection
	err = db.Where("menu_version_id = ?", version.ID).
		Order("position, id").
		Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position, id")
		}).
		Find(&sections).Error
	if err != nil {
		return nil, nil, fmt.Errorf("load sections of version %d: %w", version.ID, err)
	}

	data := &MenuItems{
		RestaurantName: restaurant.Name,
		MenuName:       menu.Name,
		Version:        version.VersionNumber,
		Sections:       make([]SectionItems, 0, len(sections)),
	}
	for _, section := range sections {
		entry := SectionItems{
			SectionName: section.Name,
			Items:       make([]ItemView, 0, len(section.Items)),
		}
		for _, item := range section.Items {
			entry.Items = append(entry.Items, ItemView{
				ID:          item.ID,
				Name:        item.Name,
				Description: item.Description,
				Price:       utils.FormatPrice(item.Price),
			})
		}
		data.Sections = append(data.Sections, entry)
	}
	return data, version, nil
}

func resolveVersion(db *gorm.DB, menuID uint, versionNumber *int) (*models.MenuVersion, error) {
	query := db.Where("menu_id = ?", menuID)
	if versionNumber != nil {
		query = query.Where("version_number = ?", *versionNumber)
	} else {
		query = query.Where("is_active = ?", true)
	}

	var version models.MenuVersion
	if err := query.First(&version).Error; err != nil {
		return nil, notFound(err, "Menu version not found")
	}
	return &version, nil
}

func findRestaurant(db *gorm.DB, restaurantID uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := db.First(&restaurant, restaurantID).Error; err != nil {
		return nil, notFound(err, "Restaurant not found")
	}
	return &restaurant, nil
}

// notFound turns gorm.ErrRecordNotFound into a NotFound AppError and passes
// every other error through.
func notFound(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NewNotFoundError(message)
	}
	return err
}
