package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-menu/services"
	"github.com/yeremiapane/restaurant-menu/utils"
)

func TestDinnerMenuLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	query := services.NewMenuQueryService(f.db)

	a := f.restaurant("A", "")
	dinner := f.menu(a.ID, "Dinner")
	v1 := f.version(dinner.ID, 1, true)
	mains := f.section(v1.ID, "Mains")
	f.item(mains.ID, "Burger", "9.50")
	f.item(mains.ID, "Steak", "24.00")

	data, err := query.ItemsByVersion(ctx, a.ID, dinner.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, data.Version)
	require.Len(t, data.Sections, 1)
	assert.Equal(t, "Mains", data.Sections[0].SectionName)
	require.Len(t, data.Sections[0].Items, 2)
	assert.Equal(t, "Burger", data.Sections[0].Items[0].Name)
	assert.Equal(t, "9.50", data.Sections[0].Items[0].Price)
	assert.Equal(t, "Steak", data.Sections[0].Items[1].Name)
	assert.Equal(t, "24.00", data.Sections[0].Items[1].Price)

	f.version(dinner.ID, 2, true)

	versions, err := query.VersionsForMenu(ctx, a.ID, dinner.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []services.VersionSummary{
		{VersionNumber: 1, IsActive: false},
		{VersionNumber: 2, IsActive: true},
	}, versions)
}

func TestHighestAndLowestOfTwo(t *testing.T) {
	f := newFixture(t)
	f.priced("Ten", "", "10.00")
	f.priced("Thirty", "", "30.00")

	result, err := services.NewAnalyticsService(f.db).PriceAnalytics(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Thirty"}, restaurantNames(result.HighestAverage))
	assert.Equal(t, []string{"Ten"}, restaurantNames(result.LowestAverage))
}

func TestItemsByVersionWithoutVersions(t *testing.T) {
	f := newFixture(t)
	r := f.restaurant("New", "")
	m := f.menu(r.ID, "Draft")

	_, err := services.NewMenuQueryService(f.db).ItemsByVersion(context.Background(), r.ID, m.ID, nil)
	require.Error(t, err)
	assert.True(t, utils.IsNotFoundError(err))
}
