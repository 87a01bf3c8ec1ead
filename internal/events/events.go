package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/storecore/catalog-service/internal/domain"
)

// Event types carried on the catalog topic.
const (
	TypeProductCreated = "product.created"
	TypeProductUpdated = "product.updated"
	TypeProductDeleted = "product.deleted"
)

// ProductEvent is published after every committed catalog write. Deleted
// events carry the last persisted state of the product.
type ProductEvent struct {
	EventID   string    `json:"event_id"`
	Type      string    `json:"type"`
	ProductID int64     `json:"product_id"`
	Name      string    `json:"name"`
	Brand     string    `json:"brand"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	Timestamp time.Time `json:"timestamp"`
}

func NewProductEvent(eventType string, product *domain.Product) ProductEvent {
	return ProductEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		ProductID: product.ID,
		Name:      product.Name,
		Brand:     product.Brand,
		Price:     product.Price,
		Stock:     product.Stock,
		Timestamp: time.Now().UTC(),
	}
}
