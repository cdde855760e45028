package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/storefront/internal/buyerctx"
	cartdomain "github.com/smallbiznis/storefront/internal/cart/domain"
)

func (s *Server) GetCart(c *gin.Context) {
	email, ok := buyerctx.EmailFromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	cart, err := s.cartSvc.Get(c.Request.Context(), email)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

func (s *Server) AddCartItem(c *gin.Context) {
	email, ok := buyerctx.EmailFromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req cartdomain.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	cart, err := s.cartSvc.AddItem(c.Request.Context(), email, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

func (s *Server) UpdateCartItem(c *gin.Context) {
	email, ok := buyerctx.EmailFromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req cartdomain.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	cart, err := s.cartSvc.UpdateItem(c.Request.Context(), email, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

func (s *Server) ClearCart(c *gin.Context) {
	email, ok := buyerctx.EmailFromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	if err := s.cartSvc.Clear(c.Request.Context(), email); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
