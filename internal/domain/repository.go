package domain

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the contract for product storage.
//
// Every operation reports its outcome through a Result; implementations never
// return store faults any other way.
type ProductRepository interface {
	Insert(ctx context.Context, product *Product) Result[bool]
	Update(ctx context.Context, product *Product) Result[bool]
	Delete(ctx context.Context, id uuid.UUID) Result[bool]
	SelectAll(ctx context.Context) Result[[]*Product]
	SelectByID(ctx context.Context, id uuid.UUID) Result[*Product]
}
