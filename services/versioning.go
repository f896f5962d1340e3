package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yeremiapane/restaurant-menu/models"
	"github.com/yeremiapane/restaurant-menu/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Notifier is told about version activations after they commit.
type Notifier interface {
	VersionActivated(version models.MenuVersion)
}

type VersionService struct {
	DB       *gorm.DB
	Notifier Notifier
}

func NewVersionService(db *gorm.DB, notifier Notifier) *VersionService {
	return &VersionService{DB: db, Notifier: notifier}
}

// Save creates or updates a version in its own transaction, keeping at most
// one active version per menu.
func (s *VersionService) Save(ctx context.Context, version *models.MenuVersion) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return SaveVersion(tx, version)
	})
	if err != nil {
		return err
	}

	if version.IsActive && s.Notifier != nil {
		s.Notifier.VersionActivated(*version)
	}
	return nil
}

// Activate makes the version the active one of its menu.
func (s *VersionService) Activate(ctx context.Context, versionID uint) (*models.MenuVersion, error) {
	return s.setActive(ctx, versionID, true)
}

// Deactivate clears the active flag. The menu may be left without an active
// version; default-version lookups then report not found.
func (s *VersionService) Deactivate(ctx context.Context, versionID uint) (*models.MenuVersion, error) {
	return s.setActive(ctx, versionID, false)
}

func (s *VersionService) setActive(ctx context.Context, versionID uint, active bool) (*models.MenuVersion, error) {
	var version models.MenuVersion
	if err := s.DB.WithContext(ctx).First(&version, versionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Menu version not found")
		}
		return nil, err
	}

	version.IsActive = active
	if err := s.Save(ctx, &version); err != nil {
		return nil, err
	}
	return &version, nil
}

// SaveVersion is the versioning rule for callers that already hold a
// transaction. The parent menu row is locked first so that concurrent
// activations of the same menu run one after the other.
func SaveVersion(tx *gorm.DB, version *models.MenuVersion) error {
	var menu models.Menu
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&menu, version.MenuID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NewNotFoundError("Menu not found")
		}
		return fmt.Errorf("lock menu %d: %w", version.MenuID, err)
	}

	if version.VersionNumber == 0 {
		var last int
		err := tx.Model(&models.MenuVersion{}).
			Where("menu_id = ?", version.MenuID).
			Select("COALESCE(MAX(version_number), 0)").
			Scan(&last).Error
		if err != nil {
			return fmt.Errorf("next version number: %w", err)
		}
		version.VersionNumber = last + 1
	}

	if version.IsActive {
		siblings := tx.Model(&models.MenuVersion{}).
			Where("menu_id = ? AND is_active = ?", version.MenuID, true)
		if version.ID != 0 {
			siblings = siblings.Where("id <> ?", version.ID)
		}
		if err := siblings.Update("is_active", false).Error; err != nil {
			return fmt.Errorf("deactivate sibling versions: %w", err)
		}
	}

	if version.ID == 0 {
		return tx.Omit(clause.Associations).Create(version).Error
	}
	return tx.Omit(clause.Associations).Save(version).Error
}
