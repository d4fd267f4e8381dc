package models

// CartItem is one line in the cart. Name and Price are snapshots taken when
// the product was added; later catalog edits do not change them.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// CustomerDetails holds the checkout form fields. It is consumed once to
// build the outbound order message and never persisted.
type CustomerDetails struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
}
