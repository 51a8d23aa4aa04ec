package specification

import "gorm.io/gorm"

// Specification is a composable query filter. Repositories apply any number
// of them onto the base query.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
