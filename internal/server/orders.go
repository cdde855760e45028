package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/storefront/internal/buyerctx"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
)

func (s *Server) ListOrders(c *gin.Context) {
	email, ok := buyerctx.EmailFromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := s.orderSvc.ListByBuyer(c.Request.Context(), email)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetOrderByID(c *gin.Context) {
	email, ok := buyerctx.EmailFromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	order, err := s.orderSvc.GetByID(c.Request.Context(), orderdomain.GetOrderRequest{
		ID:         c.Param("id"),
		BuyerEmail: email,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}
