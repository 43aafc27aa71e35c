package model

import "time"

// Base contains common fields for all models
type Base struct {
	ID        int64     `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Timestamps adds the modification time for mutable records
type Timestamps struct {
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page represents offset/limit pagination parameters
type Page struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// NewPage clamps raw query values: a missing or non-positive page is 1, a
// missing or non-positive limit is DefaultPageSize and limit never exceeds
// MaxPageSize.
func NewPage(page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return Page{Page: page, Limit: limit}
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}
