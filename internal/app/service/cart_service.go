package service

import (
	"errors"

	"github.com/hjyoon/storefront-backend/internal/app/model"
	"github.com/hjyoon/storefront-backend/internal/app/store"
	"github.com/hjyoon/storefront-backend/pkg/logger"
)

var ErrInvalidQuantity = errors.New("invalid quantity")

// CartView is the cart payload rendered back to the client: the ordered
// items plus the derived count and total.
type CartView struct {
	Items []model.CartItem `json:"items"`
	Count int              `json:"count"`
	Total float64          `json:"total"`
}

type CartService interface {
	GetCart(sessionID string) CartView
	AddToCart(sessionID string, productID, quantity int) (CartView, error)
	UpdateQuantity(sessionID string, productID, quantity int) (CartView, error)
	RemoveFromCart(sessionID string, productID int) CartView
	ClearCart(sessionID string) CartView
}

type cartService struct {
	carts   *store.CartStore
	catalog *store.CatalogStore
}

func NewCartService(carts *store.CartStore, catalog *store.CatalogStore) CartService {
	return &cartService{
		carts:   carts,
		catalog: catalog,
	}
}

func (s *cartService) GetCart(sessionID string) CartView {
	logger.Debug("Fetching session cart", map[string]interface{}{
		"session_id": sessionID,
	})
	return viewOf(s.carts.Get(sessionID))
}

// AddToCart resolves the product from the catalog snapshot and adds it with
// the given quantity (at least 1). The cart line copies title, price, image
// and category at this moment; later feed changes do not touch it.
func (s *cartService) AddToCart(sessionID string, productID, quantity int) (CartView, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"session_id": sessionID,
		"product_id": productID,
		"quantity":   quantity,
	})

	if quantity < 1 {
		return CartView{}, ErrInvalidQuantity
	}

	product, err := s.catalog.FindByID(productID)
	if err != nil {
		logger.Error("Cannot add to cart: catalog unavailable", err, map[string]interface{}{
			"session_id": sessionID,
			"product_id": productID,
		})
		return CartView{}, ErrCatalogUnavailable
	}
	if product == nil {
		logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
			"session_id": sessionID,
			"product_id": productID,
		})
		return CartView{}, ErrProductNotFound
	}

	cart := s.carts.Add(sessionID, *product, quantity)

	logger.Info("Cart item added successfully", map[string]interface{}{
		"session_id": sessionID,
		"product_id": productID,
		"count":      cart.Count(),
	})
	return viewOf(cart), nil
}

// UpdateQuantity sets the quantity of an existing cart line. The store
// enforces the quantity floor: values below 1 remove the line.
func (s *cartService) UpdateQuantity(sessionID string, productID, quantity int) (CartView, error) {
	logger.Info("Updating cart item", map[string]interface{}{
		"session_id": sessionID,
		"product_id": productID,
		"quantity":   quantity,
	})

	cart := s.carts.UpdateQuantity(sessionID, productID, quantity)
	return viewOf(cart), nil
}

// RemoveFromCart deletes a cart line. Removing twice is idempotent: the
// second call is a no-op and not an error.
func (s *cartService) RemoveFromCart(sessionID string, productID int) CartView {
	logger.Info("Removing cart item", map[string]interface{}{
		"session_id": sessionID,
		"product_id": productID,
	})
	return viewOf(s.carts.Remove(sessionID, productID))
}

func (s *cartService) ClearCart(sessionID string) CartView {
	logger.Info("Clearing session cart", map[string]interface{}{
		"session_id": sessionID,
	})
	return viewOf(s.carts.Clear(sessionID))
}

func viewOf(cart model.Cart) CartView {
	return CartView{
		Items: cart.Items,
		Count: cart.Count(),
		Total: cart.Total(),
	}
}
