package domain

import "time"

// Timestamps holds the standard row timestamps carried by all entities.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
