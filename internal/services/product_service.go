package services

import (
	"fmt"
	"strings"

	"katalog/internal/models"
	"katalog/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo         repositories.ProductRepository
	shareBaseURL string
}

// NewProductService creates a new ProductService. shareBaseURL is the public
// origin used to build shareable product links, e.g. "https://shop.example.com".
func NewProductService(repo repositories.ProductRepository, shareBaseURL string) *ProductService {
	return &ProductService{
		repo:         repo,
		shareBaseURL: strings.TrimRight(shareBaseURL, "/"),
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new product.
func (s *ProductService) CreateProduct(product *models.Product) error {
	return s.repo.Create(product)
}

// UpdateProduct replaces the stored record for product.ID. The caller is
// responsible for setting product.ID to the intended record, which keeps the
// identity stable even when the payload carries a different id.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	return s.repo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}

// ShareLink returns the shareable deep link for a product. The product must
// exist; the route itself is a client-side convention, so no further
// verification happens here.
func (s *ProductService) ShareLink(id string) (string, error) {
	if _, err := s.repo.GetByID(id); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/product/%s", s.shareBaseURL, id), nil
}
