package service

import (
	"context"
	"errors"

	"github.com/storecore/catalog-service/internal/domain"
	"github.com/storecore/catalog-service/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrProductExists   = errors.New("product already exists")
)

// EventPublisher is notified after every committed catalog write. A nil
// publisher disables event emission; publish failures never fail the
// operation that triggered them.
type EventPublisher interface {
	ProductCreated(ctx context.Context, product *domain.Product) error
	ProductUpdated(ctx context.Context, product *domain.Product) error
	ProductDeleted(ctx context.Context, product *domain.Product) error
}

type ProductService struct {
	productRepo repository.ProductRepository
	events      EventPublisher
	logger      *zap.Logger
}

func NewProductService(productRepo repository.ProductRepository, events EventPublisher, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		events:      events,
		logger:      logger,
	}
}

func (s *ProductService) GetProductByID(ctx context.Context, id int64) (*domain.ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	return domain.ToProductResponse(product), nil
}

func (s *ProductService) GetAllProducts(ctx context.Context) ([]*domain.ProductResponse, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	// An empty catalog is a not-found condition, not an empty success.
	if len(products) == 0 {
		return nil, ErrProductNotFound
	}

	return domain.ToProductResponseList(products), nil
}

func (s *ProductService) CreateProduct(ctx context.Context, req domain.ProductRequest) (*domain.ProductResponse, error) {
	existing, err := s.productRepo.FindByNameAndBrand(ctx, req.Name, req.Brand)
	if err != nil && !errors.Is(err, repository.ErrProductNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrProductExists
	}

	product := &domain.Product{
		Name:  req.Name,
		Brand: req.Brand,
		Price: req.Price,
		Stock: req.Stock,
	}

	saved, err := s.productRepo.Save(ctx, product)
	if err != nil {
		s.logger.Error("Failed to save product",
			zap.String("name", req.Name),
			zap.String("brand", req.Brand),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Product created successfully",
		zap.Int64("product_id", saved.ID),
		zap.String("name", saved.Name),
		zap.String("brand", saved.Brand))

	if s.events != nil {
		if err := s.events.ProductCreated(ctx, saved); err != nil {
			s.logger.Warn("Failed to publish product created event",
				zap.Int64("product_id", saved.ID),
				zap.Error(err))
		}
	}

	return domain.ToProductResponse(saved), nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id int64, req domain.ProductRequest) (*domain.ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	// All writable fields are overwritten; identity never changes.
	product.Name = req.Name
	product.Brand = req.Brand
	product.Price = req.Price
	product.Stock = req.Stock

	saved, err := s.productRepo.Save(ctx, product)
	if err != nil {
		s.logger.Error("Failed to update product",
			zap.Int64("product_id", id),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Product updated successfully",
		zap.Int64("product_id", saved.ID),
		zap.String("name", saved.Name),
		zap.String("brand", saved.Brand))

	if s.events != nil {
		if err := s.events.ProductUpdated(ctx, saved); err != nil {
			s.logger.Warn("Failed to publish product updated event",
				zap.Int64("product_id", saved.ID),
				zap.Error(err))
		}
	}

	return domain.ToProductResponse(saved), nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if err := s.productRepo.Delete(ctx, product); err != nil {
		s.logger.Error("Failed to delete product",
			zap.Int64("product_id", id),
			zap.Error(err))
		return err
	}

	s.logger.Info("Product deleted successfully",
		zap.Int64("product_id", id),
		zap.String("name", product.Name),
		zap.String("brand", product.Brand))

	if s.events != nil {
		if err := s.events.ProductDeleted(ctx, product); err != nil {
			s.logger.Warn("Failed to publish product deleted event",
				zap.Int64("product_id", id),
				zap.Error(err))
		}
	}

	return nil
}
