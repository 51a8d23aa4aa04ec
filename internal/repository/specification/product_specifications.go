package specification

import "gorm.io/gorm"

// ByName filters products by exact name
type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}

// NameContains does a case-insensitive partial match on the product name
type NameContains struct {
	Term string
}

func (s NameContains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name ILIKE ?", "%"+s.Term+"%")
}

// ByCategory filters products by exact category
type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

// CategoryContains does a case-insensitive partial match on the category
type CategoryContains struct {
	Term string
}

func (s CategoryContains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category ILIKE ?", "%"+s.Term+"%")
}
