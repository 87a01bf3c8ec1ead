package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/storecore/catalog-service/internal/domain"
)

// MemoryRepository keeps the catalog in process memory. It backs LOCAL_MODE
// runs and doubles as the test stand-in for the DynamoDB repository.
type MemoryRepository struct {
	mu       sync.RWMutex
	nextID   int64
	products map[int64]domain.Product
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		nextID:   1,
		products: make(map[int64]domain.Product),
	}
}

func (r *MemoryRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

func (r *MemoryRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		p := product
		products = append(products, &p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })

	return products, nil
}

func (r *MemoryRepository) FindByNameAndBrand(ctx context.Context, name, brand string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, product := range r.products {
		if product.Name == name && product.Brand == brand {
			p := product
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

func (r *MemoryRepository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if product.ID == 0 {
		product.ID = r.nextID
		product.CreatedAt = now
		r.nextID++
	}
	product.UpdatedAt = now

	r.products[product.ID] = *product
	return product, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return ErrProductNotFound
	}
	delete(r.products, product.ID)
	return nil
}
