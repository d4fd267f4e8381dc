package services_test

import (
	"fmt"
	"net/url"
	"testing"

	"katalog/internal/cart"
	"katalog/internal/models"
	"katalog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(exchange, routingKey string, body []byte) error {
	args := m.Called(exchange, routingKey, body)
	return args.Error(0)
}

var testCheckoutConfig = services.CheckoutConfig{
	WhatsAppBaseURL: "https://wa.me",
	WhatsAppPhone:   "5511952807174",
}

func TestBuildOrderMessage(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "w-1", Name: "Widget", Price: 5, Quantity: 2},
	}
	customer := models.CustomerDetails{Name: "Jo", Phone: "123", Address: "St 1"}

	message := services.BuildOrderMessage(items, customer)

	expected := "*New Order*\n\n" +
		"*Customer Details*\n" +
		"Name: Jo\n" +
		"Phone: 123\n" +
		"Address: St 1\n\n" +
		"*Order Items*\n" +
		"2x Widget - $10.00\n\n" +
		"*Total: $10.00*"
	assert.Equal(t, expected, message)
}

func TestBuildOrderMessage_MultipleItemsKeepCartOrder(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "b", Name: "Linen Tote", Price: 32, Quantity: 1},
		{ProductID: "a", Name: "Ceramic Mug", Price: 18.5, Quantity: 3},
	}
	customer := models.CustomerDetails{Name: "Ana", Phone: "555", Address: "Av 2"}

	message := services.BuildOrderMessage(items, customer)

	assert.Contains(t, message, "1x Linen Tote - $32.00\n3x Ceramic Mug - $55.50")
	assert.Contains(t, message, "*Total: $87.50*")
}

func TestBuildOrderMessage_IsPure(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "w-1", Name: "Widget", Price: 5, Quantity: 2},
	}
	customer := models.CustomerDetails{Name: "Jo", Phone: "123", Address: "St 1"}

	first := services.BuildOrderMessage(items, customer)
	second := services.BuildOrderMessage(items, customer)
	assert.Equal(t, first, second)
}

func TestCheckoutService_OrderURL(t *testing.T) {
	store := cart.NewStore()
	service := services.NewCheckoutService(store, testCheckoutConfig, nil)

	message := "*New Order*\n\nhello & goodbye"
	orderURL := service.OrderURL(message)

	assert.Equal(t, "https://wa.me/5511952807174?text="+url.QueryEscape(message), orderURL)

	// The encoded message round-trips through standard query parsing.
	parsed, err := url.Parse(orderURL)
	assert.NoError(t, err)
	assert.Equal(t, message, parsed.Query().Get("text"))
}

func TestCheckoutService_Checkout(t *testing.T) {
	store := cart.NewStore()
	store.Dispatch(cart.AddItem{ProductID: "w-1", Name: "Widget", Price: 5, Quantity: 2})

	mockPublisher := new(MockEventPublisher)
	mockPublisher.On("Publish", "", "checkout_queue", mock.Anything).Return(nil).Once()

	service := services.NewCheckoutService(store, testCheckoutConfig, mockPublisher)
	customer := models.CustomerDetails{Name: "Jo", Phone: "123", Address: "St 1"}

	result, err := service.Checkout(customer)
	assert.NoError(t, err)
	assert.Contains(t, result.Message, "2x Widget - $10.00")
	assert.Contains(t, result.Message, "*Total: $10.00*")
	assert.Contains(t, result.WhatsAppURL, "https://wa.me/5511952807174?text=")
	assert.Equal(t, 10.0, result.Total)

	// The cart is cleared after a successful checkout.
	assert.Empty(t, store.Items())
	mockPublisher.AssertExpectations(t)
}

func TestCheckoutService_CheckoutEmptyCart(t *testing.T) {
	store := cart.NewStore()
	service := services.NewCheckoutService(store, testCheckoutConfig, nil)

	result, err := service.Checkout(models.CustomerDetails{Name: "Jo", Phone: "123", Address: "St 1"})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, services.ErrEmptyCart)
}

func TestCheckoutService_PublishFailureDoesNotFailCheckout(t *testing.T) {
	store := cart.NewStore()
	store.Dispatch(cart.AddItem{ProductID: "w-1", Name: "Widget", Price: 5, Quantity: 1})

	mockPublisher := new(MockEventPublisher)
	mockPublisher.On("Publish", "", "checkout_queue", mock.Anything).
		Return(fmt.Errorf("broker unavailable")).Once()

	service := services.NewCheckoutService(store, testCheckoutConfig, mockPublisher)

	result, err := service.Checkout(models.CustomerDetails{Name: "Jo", Phone: "123", Address: "St 1"})
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, store.Items(), "cart should still be cleared when the event publish fails")
	mockPublisher.AssertExpectations(t)
}

func TestCheckoutService_NilPublisher(t *testing.T) {
	store := cart.NewStore()
	store.Dispatch(cart.AddItem{ProductID: "w-1", Name: "Widget", Price: 5, Quantity: 1})

	service := services.NewCheckoutService(store, testCheckoutConfig, nil)

	result, err := service.Checkout(models.CustomerDetails{Name: "Jo", Phone: "123", Address: "St 1"})
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, store.Items())
}
