package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents the product entity
type Product struct {
	// ID is assigned by the persistence layer on insert and never changes.
	ID          uuid.UUID
	Name        string
	Description string
	UnitPrice   decimal.Decimal
}

// HasID reports whether the product has been assigned an identifier
func (p *Product) HasID() bool {
	return p != nil && p.ID != uuid.Nil
}
