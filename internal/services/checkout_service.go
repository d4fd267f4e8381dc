package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"katalog/internal/cart"
	"katalog/internal/models"
	"katalog/pkg/rabbitmq"
)

// ErrEmptyCart is returned when checkout is attempted with no line items.
var ErrEmptyCart = errors.New("cart is empty")

// EventPublisher publishes checkout events to the message broker. A nil
// publisher disables event publication.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// CheckoutConfig holds the fixed destination of the outbound order message.
// The phone number identifies the receiving party and is configuration, not
// derived from the order.
type CheckoutConfig struct {
	WhatsAppBaseURL string
	WhatsAppPhone   string
}

// CheckoutService turns the cart plus customer details into an order message
// and a WhatsApp deep link, then clears the cart.
type CheckoutService struct {
	store     *cart.Store
	config    CheckoutConfig
	publisher EventPublisher
}

// NewCheckoutService creates a new CheckoutService. publisher may be nil.
func NewCheckoutService(store *cart.Store, config CheckoutConfig, publisher EventPublisher) *CheckoutService {
	return &CheckoutService{
		store:     store,
		config:    config,
		publisher: publisher,
	}
}

// CheckoutResult is the outcome of a successful checkout.
type CheckoutResult struct {
	Message     string  `json:"message"`
	WhatsAppURL string  `json:"whatsapp_url"`
	Total       float64 `json:"total"`
}

// BuildOrderMessage formats the order summary handed to the messaging
// channel. It is a pure function of its inputs; the asterisks are literal
// bold markers expected by the receiver.
func BuildOrderMessage(items []models.CartItem, customer models.CustomerDetails) string {
	lines := make([]string, 0, len(items))
	var total float64
	for _, item := range items {
		lineTotal := item.Price * float64(item.Quantity)
		lines = append(lines, fmt.Sprintf("%dx %s - $%.2f", item.Quantity, item.Name, lineTotal))
		total += lineTotal
	}

	return fmt.Sprintf("*New Order*\n\n"+
		"*Customer Details*\n"+
		"Name: %s\n"+
		"Phone: %s\n"+
		"Address: %s\n\n"+
		"*Order Items*\n%s\n\n"+
		"*Total: $%.2f*",
		customer.Name, customer.Phone, customer.Address,
		strings.Join(lines, "\n"), total)
}

// OrderURL builds the WhatsApp deep link carrying the message as an encoded
// query parameter.
func (s *CheckoutService) OrderURL(message string) string {
	return fmt.Sprintf("%s/%s?text=%s",
		strings.TrimRight(s.config.WhatsAppBaseURL, "/"),
		s.config.WhatsAppPhone,
		url.QueryEscape(message))
}

// Checkout builds the order message and deep link, publishes an order-placed
// event, and clears the cart. The cart is cleared only after construction
// succeeds; a publish failure is logged and does not fail the checkout, since
// the hand-off to the messaging channel is fire-and-forget.
func (s *CheckoutService) Checkout(customer models.CustomerDetails) (*CheckoutResult, error) {
	items := s.store.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	message := BuildOrderMessage(items, customer)
	result := &CheckoutResult{
		Message:     message,
		WhatsAppURL: s.OrderURL(message),
		Total:       s.store.Total(),
	}

	s.publishOrderPlaced(customer, items, result.Total)

	s.store.Dispatch(cart.ClearCart{})

	return result, nil
}

func (s *CheckoutService) publishOrderPlaced(customer models.CustomerDetails, items []models.CartItem, total float64) {
	if s.publisher == nil {
		return
	}

	event := map[string]interface{}{
		"customer":   customer.Name,
		"item_count": len(items),
		"items":      items,
		"total":      total,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal order-placed event: %v", err)
		return
	}
	if err := s.publisher.Publish("", rabbitmq.CheckoutQueue, body); err != nil {
		log.Printf("Warning: failed to publish order-placed event: %v", err)
	}
}
