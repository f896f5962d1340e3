package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-menu/models"
	"github.com/yeremiapane/restaurant-menu/services"
	"github.com/yeremiapane/restaurant-menu/utils"
)

func TestSaveActiveVersionDeactivatesSiblings(t *testing.T) {
	f := newFixture(t)
	r := f.restaurant("Trattoria", "")
	m := f.menu(r.ID, "Dinner")

	v1 := f.version(m.ID, 1, true)
	v2 := f.version(m.ID, 2, true)

	active := f.activeVersions(m.ID)
	require.Len(t, active, 1)
	assert.Equal(t, v2.ID, active[0].ID)

	var reloaded models.MenuVersion
	require.NoError(t, f.db.First(&reloaded, v1.ID).Error)
	assert.False(t, reloaded.IsActive)
}

func TestSaveInactiveVersionLeavesActiveAlone(t *testing.T) {
	f := newFixture(t)
	r := f.restaurant("Trattoria", "")
	m := f.menu(r.ID, "Dinner")

	v1 := f.version(m.ID, 1, true)
	f.version(m.ID, 2, false)

	active := f.activeVersions(m.ID)
	require.Len(t, active, 1)
	assert.Equal(t, v1.ID, active[0].ID)
}

func TestActiveVersionIsPerMenu(t *testing.T) {
	f := newFixture(t)
	r := f.restaurant("Trattoria", "")
	dinner := f.menu(r.ID, "Dinner")
	lunch := f.menu(r.ID, "Lunch")

	f.version(dinner.ID, 1, true)
	f.version(lunch.ID, 1, true)

	assert.Len(t, f.activeVersions(dinner.ID), 1)
	assert.Len(t, f.activeVersions(lunch.ID), 1)
}

func TestSaveVersionAssignsNextNumber(t *testing.T) {
	f := newFixture(t)
	r := f.restaurant("Trattoria", "")
	m := f.menu(r.ID, "Dinner")

	first := f.version(m.ID, 0, false)
	second := f.version(m.ID, 0, true)
	assert.Equal(t, 1, first.VersionNumber)
	assert.Equal(t, 2, second.VersionNumber)
	assert.Equal(t, models.DefaultVersionCreator, second.CreatedBy)
}

func TestSaveVersionUnknownMenu(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewVersionService(db, nil)

	err := svc.Save(context.Background(), &models.MenuVersion{MenuID: 42, VersionNumber: 1, IsActive: true})
	require.Error(t, err)
	assert.True(t, utils.IsNotFoundError(err))
}

func TestSaveVersionDuplicateNumber(t *testing.T) {
	f := newFixture(t)
	r := f.restaurant("Trattoria", "")
	m := f.menu(r.ID, "Dinner")
	f.version(m.ID, 1, true)

	err := services.NewVersionService(f.db, nil).
		Save(context.Background(), &models.MenuVersion{MenuID: m.ID, VersionNumber: 1, IsActive: true})
	require.Error(t, err)
	assert.True(t, utils.IsDuplicateError(err))

	// the failed write rolled back the sibling deactivation
	assert.Len(t, f.activeVersions(m.ID), 1)
}

func TestActivateAndDeactivate(t *testing.T) {
	f := newFixture(t)
	r := f.restaurant("Trattoria", "")
	m := f.menu(r.ID, "Dinner")
	v1 := f.version(m.ID, 1, false)
	v2 := f.version(m.ID, 2, true)

	rec := &recorder{}
	svc := services.NewVersionService(f.db, rec)
	ctx := context.Background()

	activated, err := svc.Activate(ctx, v1.ID)
	require.NoError(t, err)
	assert.True(t, activated.IsActive)
	assert.Equal(t, 1, rec.count())

	active := f.activeVersions(m.ID)
	require.Len(t, active, 1)
	assert.Equal(t, v1.ID, active[0].ID)

	deactivated, err := svc.Deactivate(ctx, v1.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)
	assert.Empty(t, f.activeVersions(m.ID))
	assert.Equal(t, 1, rec.count())

	// without an active version the default lookup finds nothing
	_, err = services.NewMenuQueryService(f.db).ItemsByVersion(ctx, r.ID, m.ID, nil)
	require.Error(t, err)
	assert.Equal(t, "Menu version not found", utils.GetAppError(err).Message)

	// explicit versions stay reachable
	data, err := services.NewMenuQueryService(f.db).ItemsByVersion(ctx, r.ID, m.ID, intPtr(v2.VersionNumber))
	require.NoError(t, err)
	assert.Equal(t, 2, data.Version)
}

func TestActivateMissingVersion(t *testing.T) {
	db := setupTestDB(t)
	_, err := services.NewVersionService(db, nil).Activate(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, utils.IsNotFoundError(err))
	assert.Equal(t, "Menu version not found", utils.GetAppError(err).Message)
}

func TestConcurrentActivationsLeaveOneActive(t *testing.T) {
	f := newFixture(t)
	r := f.restaurant("Trattoria", "")
	m := f.menu(r.ID, "Dinner")

	var ids []uint
	for n := 1; n <= 6; n++ {
		ids = append(ids, f.version(m.ID, n, false).ID)
	}

	rec := &recorder{}
	svc := services.NewVersionService(f.db, rec)

	var wg sync.WaitGroup
	errs := make(chan error, len(ids))
	for _, id := range ids {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			_, err := svc.Activate(context.Background(), id)
			errs <- err
		}(id)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Len(t, f.activeVersions(m.ID), 1)
	assert.Equal(t, len(ids), rec.count())
}
