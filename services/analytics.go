package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-menu/utils"
	"gorm.io/gorm"
)

const addressNotAvailable = "Address not available"

type PricedItem struct {
	Name    string `json:"name"`
	Price   string `json:"price"`
	Section string `json:"section"`
	Menu    string `json:"menu"`
}

type PriceExtremes struct {
	MostExpensive  *PricedItem `json:"most_expensive"`
	LeastExpensive *PricedItem `json:"least_expensive"`
}

type RestaurantPriceStats struct {
	RestaurantID   uint          `json:"restaurant_id"`
	RestaurantName string        `json:"restaurant_name"`
	AveragePrice   string        `json:"average_price"`
	TotalItems     int64         `json:"total_items"`
	Address        string        `json:"address"`
	PriceExtremes  PriceExtremes `json:"price_extremes"`
}

type PriceAnalytics struct {
	HighestAverage []RestaurantPriceStats `json:"highest_average_restaurants"`
	LowestAverage  []RestaurantPriceStats `json:"lowest_average_restaurants"`
}

type AnalyticsService struct {
	DB *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{DB: db}
}

type restaurantAggregate struct {
	ID           uint
	Name         string
	Address      string
	TotalItems   int64
	AveragePrice decimal.Decimal
}

type extremeRow struct {
	Name    string
	Price   decimal.Decimal
	Section string
	Menu    string
}

// PriceAnalytics ranks restaurants that have items by average item price and
// returns the n highest and the n lowest. Ties keep restaurant id order.
func (s *AnalyticsService) PriceAnalytics(ctx context.Context, n int) (*PriceAnalytics, error) {
	if n < 1 {
		return nil, utils.NewValidationError("n must be a positive integer")
	}
	db := s.DB.WithContext(ctx)

	highest, err := s.ranked(db, "DESC", n)
	if err != nil {
		return nil, err
	}
	lowest, err := s.ranked(db, "ASC", n)
	if err != nil {
		return nil, err
	}
	return &PriceAnalytics{HighestAverage: highest, LowestAverage: lowest}, nil
}

// RestaurantAnalytics computes the same figures for a single restaurant.
func (s *AnalyticsService) RestaurantAnalytics(ctx context.Context, restaurantID uint) (*RestaurantPriceStats, error) {
	db := s.DB.WithContext(ctx)
	restaurant, err := findRestaurant(db, restaurantID)
	if err != nil {
		return nil, err
	}

	var rows []restaurantAggregate
	if err := aggregates(db).Where("restaurants.id = ?", restaurant.ID).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("aggregate prices of restaurant %d: %w", restaurant.ID, err)
	}

	agg := restaurantAggregate{ID: restaurant.ID, Name: restaurant.Name, Address: restaurant.Address}
	if len(rows) > 0 {
		agg = rows[0]
	}
	return s.describe(db, agg)
}

func (s *AnalyticsService) ranked(db *gorm.DB, direction string, n int) ([]RestaurantPriceStats, error) {
	var rows []restaurantAggregate
	err := aggregates(db).
		Having("COUNT(DISTINCT menu_items.id) > 0").
		Order("average_price " + direction).
		Order("restaurants.id ASC").
		Limit(n).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("rank restaurants by average price: %w", err)
	}

	result := make([]RestaurantPriceStats, 0, len(rows))
	for _, row := range rows {
		stats, err := s.describe(db, row)
		if err != nil {
			return nil, err
		}
		result = append(result, *stats)
	}
	return result, nil
}

func (s *AnalyticsService) describe(db *gorm.DB, agg restaurantAggregate) (*RestaurantPriceStats, error) {
	most, err := extremeItem(db, agg.ID, "DESC")
	if err != nil {
		return nil, err
	}
	least, err := extremeItem(db, agg.ID, "ASC")
	if err != nil {
		return nil, err
	}

	address := agg.Address
	if address == "" {
		address = addressNotAvailable
	}
	return &RestaurantPriceStats{
		RestaurantID:   agg.ID,
		RestaurantName: agg.Name,
		AveragePrice:   utils.FormatPrice(agg.AveragePrice.Round(2)),
		TotalItems:     agg.TotalItems,
		Address:        address,
		PriceExtremes:  PriceExtremes{MostExpensive: most, LeastExpensive: least},
	}, nil
}

// aggregates groups every item of every menu, version and section under its
// restaurant.
func aggregates(db *gorm.DB) *gorm.DB {
	return db.Table("restaurants").
		Select("restaurants.id AS id, restaurants.name AS name, restaurants.address AS address, " +
			"COUNT(DISTINCT menu_items.id) AS total_items, AVG(menu_items.price) AS average_price").
		Joins("JOIN menus ON menus.restaurant_id = restaurants.id").
		Joins("JOIN menu_versions ON menu_versions.menu_id = menus.id").
		Joins("JOIN menu_sections ON menu_sections.menu_version_id = menu_versions.id").
		Joins("JOIN menu_items ON menu_items.section_id = menu_sections.id").
		Group("restaurants.id, restaurants.name, restaurants.address")
}

// extremeItem returns the first item at the top (DESC) or bottom (ASC) price
// of a restaurant, or nil when it has no items.
func extremeItem(db *gorm.DB, restaurantID uint, direction string) (*PricedItem, error) {
	var rows []extremeRow
	err := db.Table("menu_items").
		Select("menu_items.name AS name, menu_items.price AS price, menu_sections.name AS section, menus.name AS menu").
		Joins("JOIN menu_sections ON menu_sections.id = menu_items.section_id").
		Joins("JOIN menu_versions ON menu_versions.id = menu_sections.menu_version_id").
		Joins("JOIN menus ON menus.id = menu_versions.menu_id").
		Where("menus.restaurant_id = ?", restaurantID).
		Order("menu_items.price " + direction).
		Order("menu_items.id ASC").
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find %s priced item of restaurant %d: %w", direction, restaurantID, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &PricedItem{
		Name:    rows[0].Name,
		Price:   utils.FormatPrice(rows[0].Price),
		Section: rows[0].Section,
		Menu:    rows[0].Menu,
	}, nil
}
