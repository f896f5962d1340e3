package models

// Entity is implemented by every model served through a generic resource.
type Entity interface {
	GetID() uint
}

// All lists every persisted model, parents first.
func All() []interface{} {
	return []interface{}{
		&Restaurant{},
		&Menu{},
		&MenuVersion{},
		&MenuSection{},
		&MenuItem{},
		&DietaryRestriction{},
		&MenuItemDietaryRestriction{},
		&ProcessingLog{},
	}
}
