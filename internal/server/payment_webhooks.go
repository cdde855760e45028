package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const webhookSignatureHeader = "X-Signature"

// HandlePaymentWebhook ingests a payment provider webhook. Any failure maps
// to a generic 500 so the provider retries delivery.
func (s *Server) HandlePaymentWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	signature := c.GetHeader(webhookSignatureHeader)
	if err := s.webhookSvc.IngestWebhook(c.Request.Context(), payload, signature); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
