package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/storecore/catalog-service/internal/domain"
	"github.com/storecore/catalog-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testProduct() *domain.Product {
	return &domain.Product{
		ID:    1,
		Name:  "T-Shirt",
		Brand: "Levis",
		Price: 50.0,
		Stock: 20,
	}
}

func TestGetProductByID_Success(t *testing.T) {
	mockRepo := &mockRepository{product: testProduct()}

	sut := NewProductService(mockRepo, nil, zap.NewNop())
	ret, err := sut.GetProductByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, ret)
	assert.Equal(t, int64(1), ret.ID)
	assert.Equal(t, "T-Shirt", ret.Name)
	assert.Equal(t, "Levis", ret.Brand)
	assert.Equal(t, 50.0, ret.Price)
	assert.Equal(t, 20, ret.Stock)
}

func TestGetProductByID_NotFound(t *testing.T) {
	mockRepo := &mockRepository{findByIDErr: repository.ErrProductNotFound}

	sut := NewProductService(mockRepo, nil, zap.NewNop())
	ret, err := sut.GetProductByID(context.Background(), 99)
	require.ErrorIs(t, err, ErrProductNotFound)
	assert.Nil(t, ret)
}

func TestGetProductByID_RepoError(t *testing.T) {
	mockRepo := &mockRepository{findByIDErr: fmt.Errorf("database error")}

	sut := NewProductService(mockRepo, nil, zap.NewNop())
	ret, err := sut.GetProductByID(context.Background(), 1)
	require.ErrorContains(t, err, "database error")
	assert.Nil(t, ret)
}

func TestGetAllProducts_Success(t *testing.T) {
	mockRepo := &mockRepository{products: []*domain.Product{
		{ID: 1, Name: "T-Shirt", Brand: "Levis", Price: 50.0, Stock: 20},
		{ID: 2, Name: "Jeans", Brand: "Levis", Price: 80.0, Stock: 12},
	}}

	sut := NewProductService(mockRepo, nil, zap.NewNop())
	ret, err := sut.GetAllProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, ret, 2)
	assert.Equal(t, int64(1), ret[0].ID)
	assert.Equal(t, "T-Shirt", ret[0].Name)
	assert.Equal(t, int64(2), ret[1].ID)
	assert.Equal(t, "Jeans", ret[1].Name)
}

func TestGetAllProducts_EmptyCatalog(t *testing.T) {
	mockRepo := &mockRepository{products: []*domain.Product{}}

	// An empty catalog reports not found rather than an empty list.
	sut := NewProductService(mockRepo, nil, zap.NewNop())
	ret, err := sut.GetAllProducts(context.Background())
	require.ErrorIs(t, err, ErrProductNotFound)
	assert.Nil(t, ret)
}

func TestGetAllProducts_RepoError(t *testing.T) {
	mockRepo := &mockRepository{findAllErr: fmt.Errorf("database error")}

	sut := NewProductService(mockRepo, nil, zap.NewNop())
	ret, err := sut.GetAllProducts(context.Background())
	require.ErrorContains(t, err, "database error")
	assert.Nil(t, ret)
}

func TestCreateProduct_Success(t *testing.T) {
	mockRepo := &mockRepository{
		findByNameBrandErr: repository.ErrProductNotFound,
		assignID:           1,
	}

	sut := NewProductService(mockRepo, nil, zap.NewNop())
	ret, err := sut.CreateProduct(context.Background(), domain.ProductRequest{
		Name:  "T-Shirt",
		Brand: "Levis",
		Price: 50.0,
		Stock: 20,
	})
	require.NoError(t, err)
	require.NotNil(t, ret)
	assert.Equal(t, 1, mockRepo.saveCalls)
	assert.Equal(t, int64(1), ret.ID)
	assert.Equal(t, "T-Shirt", ret.Name)
	assert.Equal(t, "Levis", ret.Brand)
	assert.Equal(t, 50.0, ret.Price)
	assert.Equal(t, 20, ret.Stock)
}

func TestCreateProduct_AlreadyExists(t *testing.T) {
	mockRepo := &mockRepository{existing: testProduct()}

	sut := NewProductService(mockRepo, nil, zap.NewNop())
	ret, err := sut.CreateProduct(context.Background(), domain.ProductRequest{
		Name:  "T-Shirt",
		Brand: "Levis",
		Price: 50.0,
		Stock: 20,
	})
	require.ErrorIs(t, err, ErrProductExists)
	assert.Nil(t, ret)

	// The duplicate is detected before the write; save never runs.
	assert.Equal(t, 0, mockRepo.saveCalls)
}

func TestCreateProduct_DuplicateProbeError(t *testing.T) {
	mockRepo := &mockRepository{findByNameBrandErr: fmt.Errorf("database error")}

	sut := NewProductService(mockRepo, nil, zap.NewNop())
	ret, err := sut.CreateProduct(context.Background(), domain.ProductRequest{
		Name:  "T-Shirt",
		Brand: "Levis",
		Price: 50.0,
		Stock: 20,
	})
	require.ErrorContains(t, err, "database error")
	assert.Nil(t, ret)
	assert.Equal(t, 0, mockRepo.saveCalls)
}

func TestCreateProduct_SaveError(t *testing.T) {
	mockRepo := &mockRepository{
		findByNameBrandErr: repository.ErrProductNotFound,
		saveErr:            fmt.Errorf("database error"),
	}

	sut := NewProductService(mockRepo, nil, zap.NewNop())
	ret, err := sut.CreateProduct(context.Background(), domain.ProductRequest{
		Name:  "T-Shirt",
		Brand: "Levis",
		Price: 50.0,
		Stock: 20,
	})
	require.ErrorContains(t, err, "database error")
	assert.Nil(t, ret)
}

func TestCreateProduct_PublishesEvent(t *testing.T) {
	mockRepo := &mockRepository{
		findByNameBrandErr: repository.ErrProductNotFound,
		assignID:           7,
	}
	pub := &mockPublisher{}

	sut := NewProductService(mockRepo, pub, zap.NewNop())
	_, err := sut.CreateProduct(context.Background(), domain.ProductRequest{
		Name:  "T-Shirt",
		Brand: "Levis",
		Price: 50.0,
		Stock: 20,
	})
	require.NoError(t, err)
	require.Len(t, pub.created, 1)
	assert.Equal(t, int64(7), pub.created[0].ID)
}

func TestCreateProduct_PublishFailureDoesNotFailCreate(t *testing.T) {
	mockRepo := &mockRepository{
		findByNameBrandErr: repository.ErrProductNotFound,
		assignID:           1,
	}
	pub := &mockPublisher{err: fmt.Errorf("broker unreachable")}

	sut := NewProductService(mockRepo, pub, zap.NewNop())
	ret, err := sut.CreateProduct(context.Background(), domain.ProductRequest{
		Name:  "T-Shirt",
		Brand: "Levis",
		Price: 50.0,
		Stock: 20,
	})
	require.NoError(t, err)
	assert.NotNil(t, ret)
}

func TestUpdateProduct_Success(t *testing.T) {
	mockRepo := &mockRepository{product: testProduct()}

	sut := NewProductService(mockRepo, nil, zap.NewNop())
	ret, err := sut.UpdateProduct(context.Background(), 1, domain.ProductRequest{
		Name:  "Slim Jeans",
		Brand: "Levis",
		Price: 80.0,
		Stock: 12,
	})
	require.NoError(t, err)
	require.NotNil(t, ret)
	assert.Equal(t, 1, mockRepo.saveCalls)

	// Every writable field is replaced; the id survives.
	assert.Equal(t, int64(1), ret.ID)
	assert.Equal(t, "Slim Jeans", ret.Name)
	assert.Equal(t, "Levis", ret.Brand)
	assert.Equal(t, 80.0, ret.Price)
	assert.Equal(t, 12, ret.Stock)
	assert.Equal(t, int64(1), mockRepo.saved.ID)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	mockRepo := &mockRepository{findByIDErr: repository.ErrProductNotFound}

	sut := NewProductService(mockRepo, nil, zap.NewNop())
	ret, err := sut.UpdateProduct(context.Background(), 99, domain.ProductRequest{
		Name:  "Slim Jeans",
		Brand: "Levis",
		Price: 80.0,
		Stock: 12,
	})
	require.ErrorIs(t, err, ErrProductNotFound)
	assert.Nil(t, ret)
	assert.Equal(t, 0, mockRepo.saveCalls)
}

func TestUpdateProduct_SaveError(t *testing.T) {
	mockRepo := &mockRepository{
		product: testProduct(),
		saveErr: fmt.Errorf("database error"),
	}

	sut := NewProductService(mockRepo, nil, zap.NewNop())
	ret, err := sut.UpdateProduct(context.Background(), 1, domain.ProductRequest{
		Name:  "Slim Jeans",
		Brand: "Levis",
		Price: 80.0,
		Stock: 12,
	})
	require.ErrorContains(t, err, "database error")
	assert.Nil(t, ret)
}

func TestUpdateProduct_PublishesEvent(t *testing.T) {
	mockRepo := &mockRepository{product: testProduct()}
	pub := &mockPublisher{}

	sut := NewProductService(mockRepo, pub, zap.NewNop())
	_, err := sut.UpdateProduct(context.Background(), 1, domain.ProductRequest{
		Name:  "Slim Jeans",
		Brand: "Levis",
		Price: 80.0,
		Stock: 12,
	})
	require.NoError(t, err)
	require.Len(t, pub.updated, 1)
	assert.Equal(t, "Slim Jeans", pub.updated[0].Name)
}

func TestDeleteProduct_Success(t *testing.T) {
	mockRepo := &mockRepository{product: testProduct()}

	sut := NewProductService(mockRepo, nil, zap.NewNop())
	err := sut.DeleteProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, mockRepo.deleteCalls)

	// The loaded entity is what gets handed to the repository.
	require.NotNil(t, mockRepo.deleted)
	assert.Equal(t, int64(1), mockRepo.deleted.ID)
	assert.Equal(t, "T-Shirt", mockRepo.deleted.Name)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	mockRepo := &mockRepository{findByIDErr: repository.ErrProductNotFound}

	sut := NewProductService(mockRepo, nil, zap.NewNop())
	err := sut.DeleteProduct(context.Background(), 99)
	require.ErrorIs(t, err, ErrProductNotFound)
	assert.Equal(t, 0, mockRepo.deleteCalls)
}

func TestDeleteProduct_RepoError(t *testing.T) {
	mockRepo := &mockRepository{
		product:   testProduct(),
		deleteErr: fmt.Errorf("database error"),
	}

	sut := NewProductService(mockRepo, nil, zap.NewNop())
	err := sut.DeleteProduct(context.Background(), 1)
	require.ErrorContains(t, err, "database error")
	assert.Equal(t, 1, mockRepo.deleteCalls)
}

func TestDeleteProduct_PublishesEvent(t *testing.T) {
	mockRepo := &mockRepository{product: testProduct()}
	pub := &mockPublisher{}

	sut := NewProductService(mockRepo, pub, zap.NewNop())
	err := sut.DeleteProduct(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, pub.deleted, 1)
	assert.Equal(t, "T-Shirt", pub.deleted[0].Name)
}
