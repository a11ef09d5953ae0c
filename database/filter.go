package database

import (
	"time"

	"gorm.io/gorm"
)

// PageSize is the fixed number of records returned by every listing.
const PageSize = 10

// Page selects one fixed-size listing window. Anything below 1 degrades to
// the first page; building a page never fails.
type Page struct {
	Number int
}

func (p Page) apply(db *gorm.DB) *gorm.DB {
	number := p.Number
	if number < 1 {
		number = 1
	}
	return db.Offset((number - 1) * PageSize).Limit(PageSize)
}

// ProjectFilter holds the optional listing constraints for projects. Zero
// values impose no constraint.
type ProjectFilter struct {
	User       string
	Difficulty string
	LikesFrom  *int
	LikesTo    *int
	DateFrom   *time.Time
	DateTo     *time.Time
}

func (f ProjectFilter) apply(db *gorm.DB) *gorm.DB {
	if f.User != "" {
		db = db.Where("user_id = ?", f.User)
	}
	if f.Difficulty != "" {
		db = db.Where("difficulty = ?", f.Difficulty)
	}
	if f.LikesFrom != nil {
		db = db.Where("likes >= ?", *f.LikesFrom)
	}
	if f.LikesTo != nil {
		db = db.Where("likes <= ?", *f.LikesTo)
	}
	if f.DateFrom != nil {
		db = db.Where("date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		db = db.Where("date <= ?", *f.DateTo)
	}
	return db
}

// UserFilter holds the optional listing constraints for users. Zero values
// impose no constraint.
type UserFilter struct {
	Username  string
	Email     string
	IdeasFrom *int
	IdeasTo   *int
}

func (f UserFilter) apply(db *gorm.DB) *gorm.DB {
	if f.Username != "" {
		db = db.Where("username = ?", f.Username)
	}
	if f.Email != "" {
		db = db.Where("email = ?", f.Email)
	}
	if f.IdeasFrom != nil {
		db = db.Where("ideas >= ?", *f.IdeasFrom)
	}
	if f.IdeasTo != nil {
		db = db.Where("ideas <= ?", *f.IdeasTo)
	}
	return db
}
