package domain

import (
	"time"
)

// Product is the catalog entity. ID is assigned by the repository on the
// first save; CreatedAt/UpdatedAt are maintained by the repository as well.
type Product struct {
	ID        int64     `dynamodbav:"id"         json:"id"`
	Name      string    `dynamodbav:"name"       json:"name"`
	Brand     string    `dynamodbav:"brand"      json:"brand"`
	Price     float64   `dynamodbav:"price"      json:"price"`
	Stock     int       `dynamodbav:"stock"      json:"stock"`
	CreatedAt time.Time `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt time.Time `dynamodbav:"updated_at" json:"updated_at"`
}

// ProductRequest carries the writable product fields. The same payload is
// used for create and update; it never carries an id.
type ProductRequest struct {
	Name  string  `json:"name"  binding:"required"`
	Brand string  `json:"brand" binding:"required"`
	Price float64 `json:"price" binding:"gte=0"`
	Stock int     `json:"stock" binding:"gte=0"`
}

// ProductResponse is the projection returned to callers.
type ProductResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Brand string  `json:"brand"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// ToProductResponse copies an entity into a fresh response projection.
func ToProductResponse(p *Product) *ProductResponse {
	return &ProductResponse{
		ID:    p.ID,
		Name:  p.Name,
		Brand: p.Brand,
		Price: p.Price,
		Stock: p.Stock,
	}
}

// ToProductResponseList maps entities in the order they were given.
func ToProductResponseList(products []*Product) []*ProductResponse {
	responses := make([]*ProductResponse, len(products))
	for i, p := range products {
		responses[i] = ToProductResponse(p)
	}
	return responses
}
