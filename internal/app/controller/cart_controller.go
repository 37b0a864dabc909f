package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/hjyoon/storefront-backend/internal/app/service"
	apperrors "github.com/hjyoon/storefront-backend/internal/errors"
	"github.com/hjyoon/storefront-backend/internal/middleware"
	"github.com/hjyoon/storefront-backend/internal/ws"
)

type CartController struct {
	cartService service.CartService
	hub         *ws.Hub
	upgrader    websocket.Upgrader
}

func NewCartController(cartService service.CartService, hub *ws.Hub) *CartController {
	return &CartController{
		cartService: cartService,
		hub:         hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin checks are handled by the CORS layer; the socket only
			// ever pushes the session's own cart back to it.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

type AddToCartRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity" binding:"omitempty,gt=0"`
}

// UpdateCartRequest carries the new quantity. Zero and negative values are
// accepted and remove the line; the pointer keeps zero distinguishable from
// an absent field.
type UpdateCartRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetCart returns the session's cart
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		log.Warn("Cart access without session", nil)
		apperrors.BadRequest(c, apperrors.SessionMissing, "No cart session")
		return
	}

	view := ctrl.cartService.GetCart(sessionID)

	log.Info("Cart fetched successfully", map[string]interface{}{
		"session_id": sessionID,
		"count":      view.Count,
		"total":      view.Total,
	})

	c.JSON(http.StatusOK, gin.H{
		"items": view.Items,
		"count": view.Count,
		"total": view.Total,
	})
}

// AddToCart adds a product to the session's cart
// POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		log.Warn("Add to cart without session", nil)
		apperrors.BadRequest(c, apperrors.SessionMissing, "No cart session")
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	view, err := ctrl.cartService.AddToCart(sessionID, req.ProductID, quantity)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found for cart", map[string]interface{}{
				"session_id": sessionID,
				"product_id": req.ProductID,
			})
			apperrors.NotFound(c, apperrors.CatalogProductMissing, "Product not found")
			return
		}
		if errors.Is(err, service.ErrCatalogUnavailable) {
			log.Warn("Catalog not loaded yet", nil)
			apperrors.ServiceUnavailable(c, apperrors.CatalogUnavailable, "")
			return
		}
		if errors.Is(err, service.ErrInvalidQuantity) {
			apperrors.BadRequest(c, apperrors.CartInvalidQuantity, "Quantity must be at least 1")
			return
		}
		log.Error("Failed to add item to cart", err, map[string]interface{}{
			"session_id": sessionID,
			"product_id": req.ProductID,
		})
		info := apperrors.ParseError(err, "cart")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	log.Info("Item added to cart successfully", map[string]interface{}{
		"session_id": sessionID,
		"product_id": req.ProductID,
		"count":      view.Count,
	})

	c.JSON(http.StatusCreated, gin.H{
		"items": view.Items,
		"count": view.Count,
		"total": view.Total,
	})
}

// UpdateCartItem sets the quantity of a cart line. A quantity below 1
// removes the line instead of keeping it at zero.
// PUT /api/v1/cart/:product_id
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		log.Warn("Cart update without session", nil)
		apperrors.BadRequest(c, apperrors.SessionMissing, "No cart session")
		return
	}

	productID, ok := ctrl.productIDParam(c)
	if !ok {
		return
	}

	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update cart request", map[string]interface{}{
			"session_id": sessionID,
			"product_id": productID,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	view, err := ctrl.cartService.UpdateQuantity(sessionID, productID, *req.Quantity)
	if err != nil {
		log.Error("Failed to update cart item", err, map[string]interface{}{
			"session_id": sessionID,
			"product_id": productID,
		})
		apperrors.InternalError(c, "Failed to update cart item")
		return
	}

	log.Info("Cart item updated successfully", map[string]interface{}{
		"session_id": sessionID,
		"product_id": productID,
		"quantity":   *req.Quantity,
	})

	c.JSON(http.StatusOK, gin.H{
		"items": view.Items,
		"count": view.Count,
		"total": view.Total,
	})
}

// RemoveFromCart deletes a cart line. Removing an absent line is a no-op
// and still returns 200.
// DELETE /api/v1/cart/:product_id
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		log.Warn("Cart removal without session", nil)
		apperrors.BadRequest(c, apperrors.SessionMissing, "No cart session")
		return
	}

	productID, ok := ctrl.productIDParam(c)
	if !ok {
		return
	}

	view := ctrl.cartService.RemoveFromCart(sessionID, productID)

	log.Info("Cart item removed", map[string]interface{}{
		"session_id": sessionID,
		"product_id": productID,
	})

	c.JSON(http.StatusOK, gin.H{
		"items": view.Items,
		"count": view.Count,
		"total": view.Total,
	})
}

// ClearCart empties the session's cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		log.Warn("Cart clear without session", nil)
		apperrors.BadRequest(c, apperrors.SessionMissing, "No cart session")
		return
	}

	view := ctrl.cartService.ClearCart(sessionID)

	log.Info("Cart cleared successfully", map[string]interface{}{
		"session_id": sessionID,
	})

	c.JSON(http.StatusOK, gin.H{
		"items": view.Items,
		"count": view.Count,
		"total": view.Total,
	})
}

// Watch upgrades to a WebSocket that receives the session's cart snapshot
// after every mutation
// GET /api/v1/cart/ws
func (ctrl *CartController) Watch(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		log.Warn("Cart watch without session", nil)
		apperrors.BadRequest(c, apperrors.SessionMissing, "No cart session")
		return
	}

	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WebSocket upgrade failed", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return
	}

	client := &ws.Client{
		Hub:       ctrl.hub,
		Conn:      &ws.Conn{Conn: conn},
		SessionID: sessionID,
		Send:      make(chan []byte, 64),
	}
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

func (ctrl *CartController) productIDParam(c *gin.Context) (int, bool) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("product_id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Warn("Invalid product ID format", map[string]interface{}{
			"product_id": idStr,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return 0, false
	}
	return id, true
}
