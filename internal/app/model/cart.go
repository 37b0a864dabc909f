package model

// CartItem is a value copy of a product plus a quantity, taken at the moment
// of first add. Later feed price changes never touch an existing item.
// Quantity is always >= 1; a quantity that would drop to zero removes the
// item instead.
type CartItem struct {
	ProductID int     `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Category  string  `json:"category"`
	Quantity  int     `json:"quantity"`
}

// Subtotal returns price * quantity for this line.
func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart is an ordered snapshot of a session's cart. Items keep the order they
// were first added in; quantity updates do not re-sort.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
}

// Count returns the sum of quantities across all items, not the number of
// distinct items.
func (c Cart) Count() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Total returns the sum of price * quantity across all items, recomputed
// fresh on every call.
func (c Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// NewCartItem derives a cart line from a product.
func NewCartItem(p Product, quantity int) CartItem {
	return CartItem{
		ProductID: p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Image:     p.Image,
		Category:  p.Category,
		Quantity:  quantity,
	}
}
