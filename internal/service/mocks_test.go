package service

import (
	"context"
	"sync"

	"github.com/storecore/catalog-service/internal/domain"
)

// mockRepository implements repository.ProductRepository with
// per-method knobs plus call counters for the write paths.
type mockRepository struct {
	mu sync.RWMutex

	product  *domain.Product   // FindByID result
	products []*domain.Product // FindAll result
	existing *domain.Product   // FindByNameAndBrand result
	assignID int64             // id given to a product saved without one

	findByIDErr        error
	findAllErr         error
	findByNameBrandErr error
	saveErr            error
	deleteErr          error

	saveCalls   int
	deleteCalls int
	saved       *domain.Product // last product passed to Save
	deleted     *domain.Product // last product passed to Delete
}

func (m *mockRepository) FindByID(_ context.Context, _ int64) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.findByIDErr != nil {
		return nil, m.findByIDErr
	}
	return m.product, nil
}

func (m *mockRepository) FindAll(_ context.Context) ([]*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.findAllErr != nil {
		return nil, m.findAllErr
	}
	return m.products, nil
}

func (m *mockRepository) FindByNameAndBrand(_ context.Context, _, _ string) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.findByNameBrandErr != nil {
		return nil, m.findByNameBrandErr
	}
	return m.existing, nil
}

func (m *mockRepository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveCalls++
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	if product.ID == 0 {
		product.ID = m.assignID
	}
	m.saved = product
	return product, nil
}

func (m *mockRepository) Delete(_ context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteCalls++
	m.deleted = product
	return m.deleteErr
}

// mockPublisher implements EventPublisher and records every
// notification it receives.
type mockPublisher struct {
	mu  sync.RWMutex
	err error

	created []*domain.Product
	updated []*domain.Product
	deleted []*domain.Product
}

func (m *mockPublisher) ProductCreated(_ context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, product)
	return m.err
}

func (m *mockPublisher) ProductUpdated(_ context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updated = append(m.updated, product)
	return m.err
}

func (m *mockPublisher) ProductDeleted(_ context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, product)
	return m.err
}
