package database

import (
	"context"
	"fmt"
	"os"

	"github.com/yeremiapane/restaurant-menu/models"
	"github.com/yeremiapane/restaurant-menu/services"
	"github.com/yeremiapane/restaurant-menu/utils"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seed is the YAML fixture format accepted by the seed command.
type Seed struct {
	DietaryRestrictions []SeedRestriction `yaml:"dietary_restrictions"`
	Restaurants         []SeedRestaurant  `yaml:"restaurants"`
}

type SeedRestriction struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type SeedRestaurant struct {
	Name    string     `yaml:"name"`
	Address string     `yaml:"address"`
	Phone   string     `yaml:"phone_number"`
	Email   string     `yaml:"email"`
	Website string     `yaml:"website"`
	Menus   []SeedMenu `yaml:"menus"`
}

type SeedMenu struct {
	Name     string        `yaml:"name"`
	Versions []SeedVersion `yaml:"versions"`
}

type SeedVersion struct {
	VersionNumber int           `yaml:"version_number"`
	IsActive      bool          `yaml:"is_active"`
	CreatedBy     string        `yaml:"created_by"`
	Notes         string        `yaml:"notes"`
	Sections      []SeedSection `yaml:"sections"`
}

type SeedSection struct {
	Name  string     `yaml:"name"`
	Items []SeedItem `yaml:"items"`
}

type SeedItem struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Price       string   `yaml:"price"`
	Dietary     []string `yaml:"dietary"`
}

func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(data)
}

func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &seed, nil
}

// ApplySeed inserts the whole fixture in one transaction. Versions are
// written in file order through the versioning rule, so a later active
// version wins.
func ApplySeed(ctx context.Context, db *gorm.DB, seed *Seed) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags := make(map[string]uint)
		for _, r := range seed.DietaryRestrictions {
			id, err := restrictionID(tx, r.Name, r.Description)
			if err != nil {
				return err
			}
			tags[r.Name] = id
		}

		for _, sr := range seed.Restaurants {
			restaurant := models.Restaurant{
				Name:    sr.Name,
				Address: sr.Address,
				Phone:   sr.Phone,
				Email:   sr.Email,
				Website: sr.Website,
			}
			if err := tx.Create(&restaurant).Error; err != nil {
				return fmt.Errorf("seed restaurant %q: %w", sr.Name, err)
			}

			for _, sm := range sr.Menus {
				menu := models.Menu{RestaurantID: restaurant.ID, Name: sm.Name}
				if err := tx.Create(&menu).Error; err != nil {
					return fmt.Errorf("seed menu %q: %w", sm.Name, err)
				}
				for _, sv := range sm.Versions {
					if err := seedVersion(tx, menu.ID, sv, tags); err != nil {
						return err
					}
				}
			}
		}

		utils.InfoLogger.WithField("restaurants", len(seed.Restaurants)).Info("seed applied")
		return nil
	})
}

func seedVersion(tx *gorm.DB, menuID uint, sv SeedVersion, tags map[string]uint) error {
	version := models.MenuVersion{
		MenuID:        menuID,
		VersionNumber: sv.VersionNumber,
		IsActive:      sv.IsActive,
		CreatedBy:     sv.CreatedBy,
		Notes:         sv.Notes,
	}
	if err := services.SaveVersion(tx, &version); err != nil {
		return fmt.Errorf("seed version %d: %w", sv.VersionNumber, err)
	}

	for _, ss := range sv.Sections {
		section := models.MenuSection{MenuVersionID: version.ID, Name: ss.Name}
		if err := tx.Create(&section).Error; err != nil {
			return fmt.Errorf("seed section %q: %w", ss.Name, err)
		}

		for _, si := range ss.Items {
			price, err := utils.ParsePrice(orZero(si.Price))
			if err != nil {
				return fmt.Errorf("seed item %q: %w", si.Name, err)
			}
			item := models.MenuItem{
				SectionID:   section.ID,
				Name:        si.Name,
				Description: si.Description,
				Price:       price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("seed item %q: %w", si.Name, err)
			}

			for _, name := range si.Dietary {
				id, ok := tags[name]
				if !ok {
					id, err = restrictionID(tx, name, "")
					if err != nil {
						return err
					}
					tags[name] = id
				}
				link := models.MenuItemDietaryRestriction{MenuItemID: item.ID, DietaryRestrictionID: id}
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
					return fmt.Errorf("tag item %q: %w", si.Name, err)
				}
			}
		}
	}
	return nil
}

func restrictionID(tx *gorm.DB, name, description string) (uint, error) {
	restriction := models.DietaryRestriction{Name: name}
	err := tx.Where(models.DietaryRestriction{Name: name}).
		Attrs(models.DietaryRestriction{Description: description}).
		FirstOrCreate(&restriction).Error
	if err != nil {
		return 0, fmt.Errorf("seed dietary restriction %q: %w", name, err)
	}
	return restriction.ID, nil
}

func orZero(price string) string {
	if price == "" {
		return "0"
	}
	return price
}
