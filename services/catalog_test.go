package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-menu/models"
	"github.com/yeremiapane/restaurant-menu/services"
	"github.com/yeremiapane/restaurant-menu/utils"
)

func TestTagItemReusesRestrictions(t *testing.T) {
	f := newFixture(t)
	r := f.restaurant("Trattoria", "")
	s := f.section(f.version(f.menu(r.ID, "Dinner").ID, 1, true).ID, "Mains")
	first := f.item(s.ID, "Risotto", "18")
	second := f.item(s.ID, "Salad", "8")

	catalog := services.NewCatalogService(f.db)
	ctx := context.Background()

	a, err := catalog.TagItem(ctx, first.ID, " Vegan ")
	require.NoError(t, err)
	assert.Equal(t, "Vegan", a.Name)

	b, err := catalog.TagItem(ctx, second.ID, "Vegan")
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)

	// tagging twice is a no-op
	_, err = catalog.TagItem(ctx, first.ID, "Vegan")
	require.NoError(t, err)

	var links int64
	require.NoError(t, f.db.Model(&models.MenuItemDietaryRestriction{}).Count(&links).Error)
	assert.Equal(t, int64(2), links)
}

func TestItemRestrictionsSortedByName(t *testing.T) {
	f := newFixture(t)
	r := f.restaurant("Trattoria", "")
	s := f.section(f.version(f.menu(r.ID, "Dinner").ID, 1, true).ID, "Mains")
	item := f.item(s.ID, "Risotto", "18", "Vegetarian", "Gluten Free")

	restrictions, err := services.NewCatalogService(f.db).ItemRestrictions(context.Background(), item.ID)
	require.NoError(t, err)
	require.Len(t, restrictions, 2)
	assert.Equal(t, "Gluten Free", restrictions[0].Name)
	assert.Equal(t, "Vegetarian", restrictions[1].Name)
}

func TestUntagItem(t *testing.T) {
	f := newFixture(t)
	r := f.restaurant("Trattoria", "")
	s := f.section(f.version(f.menu(r.ID, "Dinner").ID, 1, true).ID, "Mains")
	item := f.item(s.ID, "Fries", "4", "Vegan")

	catalog := services.NewCatalogService(f.db)
	ctx := context.Background()
	restrictions, err := catalog.ItemRestrictions(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, restrictions, 1)

	require.NoError(t, catalog.UntagItem(ctx, item.ID, restrictions[0].ID))

	restrictions, err = catalog.ItemRestrictions(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, restrictions)

	err = catalog.UntagItem(ctx, item.ID, 999)
	assert.True(t, utils.IsNotFoundError(err))
}

func TestTagItemErrors(t *testing.T) {
	db := setupTestDB(t)
	catalog := services.NewCatalogService(db)
	ctx := context.Background()

	_, err := catalog.TagItem(ctx, 1, "   ")
	assert.True(t, utils.IsValidationError(err))

	_, err = catalog.TagItem(ctx, 1, "Vegan")
	assert.True(t, utils.IsNotFoundError(err))
	assert.Equal(t, "Menu item not found", utils.GetAppError(err).Message)

	_, err = catalog.ItemRestrictions(ctx, 1)
	assert.True(t, utils.IsNotFoundError(err))

	// the failed tag left no restriction behind
	var count int64
	require.NoError(t, db.Model(&models.DietaryRestriction{}).Count(&count).Error)
	assert.Zero(t, count)
}
