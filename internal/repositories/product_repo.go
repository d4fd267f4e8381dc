package repositories

import (
	"errors"

	"katalog/internal/models"
)

// ErrProductNotFound is returned when a lookup, update, or delete targets a
// product that is not in the store. Callers should test with errors.Is.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
