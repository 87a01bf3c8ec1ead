package repository

import (
	"context"
	"errors"

	"github.com/storecore/catalog-service/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// ProductRepository is the persistence contract consumed by the service
// layer. Find methods return ErrProductNotFound when no entity matches.
// FindAll returns products in ascending id order so callers observe the
// same iteration order regardless of the backing store.
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	FindAll(ctx context.Context) ([]*domain.Product, error)
	FindByNameAndBrand(ctx context.Context, name, brand string) (*domain.Product, error)
	// Save persists the product and returns the stored state. A zero ID
	// marks a new entity; the repository assigns the next id and the
	// created_at timestamp. updated_at is refreshed on every save.
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, product *domain.Product) error
}
