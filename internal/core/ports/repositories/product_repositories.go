package repositories

import (
	"context"

	"github.com/salescore/order_ledger_app/internal/core/domain"
)

// ProductReader defines read operations for catalog data
type ProductReader interface {
	// FindProductByID retrieves a product by its unique identifier.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// FindProductsByIDs retrieves multiple products keyed by ID. Missing IDs
	// are simply absent from the map.
	FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error)
}

// ProductWriter defines write operations for catalog data
type ProductWriter interface {
	// SaveProduct persists a new product.
	SaveProduct(ctx context.Context, product domain.Product) error
}

// ProductRepositoryFacade combines all product repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}
