package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-menu/database"
	"github.com/yeremiapane/restaurant-menu/models"
	"github.com/yeremiapane/restaurant-menu/services"
	"github.com/yeremiapane/restaurant-menu/utils"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenInMemory(t.Name())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// fixture builds rows directly so each test states exactly the data it needs.
type fixture struct {
	t  *testing.T
	db *gorm.DB
}

func newFixture(t *testing.T) fixture {
	return fixture{t: t, db: setupTestDB(t)}
}

func (f fixture) restaurant(name, address string) models.Restaurant {
	f.t.Helper()
	r := models.Restaurant{Name: name, Address: address}
	require.NoError(f.t, f.db.Create(&r).Error)
	return r
}

func (f fixture) menu(restaurantID uint, name string) models.Menu {
	f.t.Helper()
	m := models.Menu{RestaurantID: restaurantID, Name: name}
	require.NoError(f.t, f.db.Create(&m).Error)
	return m
}

func (f fixture) version(menuID uint, number int, active bool) models.MenuVersion {
	f.t.Helper()
	v := models.MenuVersion{MenuID: menuID, VersionNumber: number, IsActive: active}
	require.NoError(f.t, services.NewVersionService(f.db, nil).Save(context.Background(), &v))
	return v
}

func (f fixture) section(versionID uint, name string) models.MenuSection {
	f.t.Helper()
	s := models.MenuSection{MenuVersionID: versionID, Name: name}
	require.NoError(f.t, f.db.Create(&s).Error)
	return s
}

func (f fixture) item(sectionID uint, name, price string, tags ...string) models.MenuItem {
	f.t.Helper()
	p, err := utils.ParsePrice(price)
	require.NoError(f.t, err)
	i := models.MenuItem{SectionID: sectionID, Name: name, Price: p}
	require.NoError(f.t, f.db.Create(&i).Error)

	catalog := services.NewCatalogService(f.db)
	for _, tag := range tags {
		_, err := catalog.TagItem(context.Background(), i.ID, tag)
		require.NoError(f.t, err)
	}
	return i
}

func (f fixture) activeVersions(menuID uint) []models.MenuVersion {
	f.t.Helper()
	var versions []models.MenuVersion
	require.NoError(f.t, f.db.Where("menu_id = ? AND is_active = ?", menuID, true).Find(&versions).Error)
	return versions
}

// recorder is a services.Notifier that remembers what it was told.
type recorder struct {
	mu       sync.Mutex
	versions []models.MenuVersion
}

func (r *recorder) VersionActivated(v models.MenuVersion) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.versions = append(r.versions, v)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.versions)
}

func intPtr(n int) *int { return &n }
