package handlers

import (
	"errors"
	"log"

	"katalog/internal/cart"
	"katalog/internal/models"
	"katalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the session cart and checkout.
type CartHandler struct {
	store    *cart.Store
	checkout *services.CheckoutService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(store *cart.Store, checkout *services.CheckoutService) *CartHandler {
	return &CartHandler{
		store:    store,
		checkout: checkout,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:productId", h.HandleUpdateQuantity)
	cartRoutes.Delete("/items/:productId", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
	cartRoutes.Post("/checkout", h.HandleCheckout)
}

// cartResponse wraps the current items with the derived total.
func (h *CartHandler) cartResponse(items []models.CartItem) fiber.Map {
	return fiber.Map{
		"items": items,
		"total": h.store.Total(),
	}
}

// HandleGetCart returns the current cart contents and total.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	return c.JSON(h.cartResponse(h.store.Items()))
}

// AddItemRequest is the body for adding a line item to the cart.
type AddItemRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"required,gte=1"`
}

// HandleAddItem adds a line item to the cart, merging quantities when the
// product is already present.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-item body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	items := h.store.Dispatch(cart.AddItem{
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		Quantity:  req.Quantity,
	})

	return c.JSON(h.cartResponse(items))
}

// UpdateQuantityRequest is the body for setting a line item quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// HandleUpdateQuantity sets the quantity on a line item. A quantity below 1
// removes the line item, matching the store's floor invariant.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update-quantity body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	items := h.store.Dispatch(cart.UpdateQuantity{
		ProductID: c.Params("productId"),
		Quantity:  req.Quantity,
	})

	return c.JSON(h.cartResponse(items))
}

// HandleRemoveItem deletes a line item. Removing an absent product is a
// no-op and still succeeds.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	items := h.store.Dispatch(cart.RemoveItem{ProductID: c.Params("productId")})
	return c.JSON(h.cartResponse(items))
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	items := h.store.Dispatch(cart.ClearCart{})
	return c.JSON(h.cartResponse(items))
}

// HandleCheckout validates the customer details, builds the order message
// and WhatsApp link, and clears the cart.
func (h *CartHandler) HandleCheckout(c *fiber.Ctx) error {
	var customer models.CustomerDetails
	if err := c.BodyParser(&customer); err != nil {
		log.Printf("Error parsing checkout body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(customer); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	result, err := h.checkout.Checkout(customer)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Cannot check out an empty cart",
			})
		}
		log.Printf("Error during checkout: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not complete checkout",
			"error":   err.Error(),
		})
	}

	return c.JSON(result)
}
