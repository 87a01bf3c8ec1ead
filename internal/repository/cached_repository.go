package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/storecore/catalog-service/internal/cache"
	"github.com/storecore/catalog-service/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CachedRepository is a read-through decorator over another repository.
// Single-product reads are served from the cache when possible; writes go to
// the inner repository and invalidate the cached entry. Cache failures are
// logged and the call falls back to the inner repository, so callers never
// see a cache error.
type CachedRepository struct {
	inner  ProductRepository
	cache  cache.ProductCache
	logger *zap.Logger
	sfg    singleflight.Group // prevents cache stampede per product id
}

func NewCachedRepository(inner ProductRepository, cache cache.ProductCache, logger *zap.Logger) *CachedRepository {
	return &CachedRepository{
		inner:  inner,
		cache:  cache,
		logger: logger,
	}
}

func (r *CachedRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	v, err, _ := r.sfg.Do(strconv.FormatInt(id, 10), func() (interface{}, error) {
		product, err := r.cache.Get(ctx, id)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			r.logger.Warn("cache get failed",
				zap.Int64("product_id", id),
				zap.Error(err))
		}

		product, err = r.inner.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		go func() {
			setCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := r.cache.Set(setCtx, product); err != nil {
				r.logger.Warn("cache set failed",
					zap.Int64("product_id", product.ID),
					zap.Error(err))
			}
		}()

		return product, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*domain.Product), nil
}

// FindAll and FindByNameAndBrand bypass the cache: the catalog listing and
// the uniqueness probe must always observe the store.
func (r *CachedRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	return r.inner.FindAll(ctx)
}

func (r *CachedRepository) FindByNameAndBrand(ctx context.Context, name, brand string) (*domain.Product, error) {
	return r.inner.FindByNameAndBrand(ctx, name, brand)
}

func (r *CachedRepository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	saved, err := r.inner.Save(ctx, product)
	if err != nil {
		return nil, err
	}

	r.invalidate(saved.ID)
	return saved, nil
}

func (r *CachedRepository) Delete(ctx context.Context, product *domain.Product) error {
	if err := r.inner.Delete(ctx, product); err != nil {
		return err
	}

	r.invalidate(product.ID)
	return nil
}

func (r *CachedRepository) invalidate(id int64) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := r.cache.Delete(ctx, id); err != nil {
		r.logger.Warn("cache invalidate failed",
			zap.Int64("product_id", id),
			zap.Error(err))
	}
}
