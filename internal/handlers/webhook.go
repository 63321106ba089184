// internal/handlers/webhook.go
package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/madeinfrance/mif-backend/internal/services"
	"github.com/madeinfrance/mif-backend/internal/utils"
)

type WebhookHandler struct {
	subscriptionService *services.SubscriptionService
}

func NewWebhookHandler(subscriptionService *services.SubscriptionService) *WebhookHandler {
	return &WebhookHandler{subscriptionService: subscriptionService}
}

// POST /webhooks/stripe
// Raw body is required for signature verification, so no JSON binding here.
func (h *WebhookHandler) HandleStripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<16))
	if err != nil {
		utils.BadRequestResponse(c, "failed to read webhook payload", nil)
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if err := h.subscriptionService.HandleWebhook(payload, signature); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"received": true})
}
