package specification

import "gorm.io/gorm"

// Specification narrows a users query. Repositories apply them in order, so
// placeholders are numbered by position.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
