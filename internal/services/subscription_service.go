// internal/services/subscription_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"
	"github.com/stripe/stripe-go/v74/webhook"
	"gorm.io/gorm"

	"github.com/madeinfrance/mif-backend/internal/config"
	"github.com/madeinfrance/mif-backend/internal/models"
)

// SubscriptionService upgrades a brand's tier through Stripe Checkout. The
// tier gates studio features (featured placement, product count); the free
// tier needs no Stripe objects at all.
type SubscriptionService struct {
	db  *gorm.DB
	cfg *config.Config
}

type CheckoutRequest struct {
	Tier       models.SubscriptionTier `json:"tier" validate:"required"`
	SuccessURL string                  `json:"success_url" validate:"required,url"`
	CancelURL  string                  `json:"cancel_url" validate:"required,url"`
}

type CheckoutResponse struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

func NewSubscriptionService(db *gorm.DB, cfg *config.Config) *SubscriptionService {
	stripe.Key = cfg.Stripe.SecretKey
	return &SubscriptionService{
		db:  db,
		cfg: cfg,
	}
}

// CreateCheckoutSession opens a Stripe Checkout session for a paid tier. The
// brand slug rides along as metadata so the webhook can apply the upgrade.
func (s *SubscriptionService) CreateCheckoutSession(brand *models.Brand, req *CheckoutRequest) (*CheckoutResponse, error) {
	priceID, err := s.priceForTier(req.Tier)
	if err != nil {
		return nil, err
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.AddMetadata("brand_slug", brand.Slug)
	params.AddMetadata("tier", string(req.Tier))

	if brand.StripeCustomerID != "" {
		params.Customer = stripe.String(brand.StripeCustomerID)
	}

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return &CheckoutResponse{
		SessionID:   sess.ID,
		CheckoutURL: sess.URL,
	}, nil
}

// HandleWebhook verifies the Stripe signature and applies completed checkouts
// to the brand's tier.
func (s *SubscriptionService) HandleWebhook(payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.cfg.Stripe.WebhookSecret)
	if err != nil {
		return fmt.Errorf("invalid webhook signature: %w", err)
	}

	if event.Type != "checkout.session.completed" {
		// Other events are acknowledged and ignored
		return nil
	}

	meta, _ := event.Data.Object["metadata"].(map[string]interface{})
	slug, _ := meta["brand_slug"].(string)
	tier, _ := meta["tier"].(string)
	customerID, _ := event.Data.Object["customer"].(string)
	if slug == "" || tier == "" {
		return errors.New("checkout session is missing brand metadata")
	}

	return s.applyTier(slug, models.SubscriptionTier(tier), customerID)
}

func (s *SubscriptionService) applyTier(slug string, tier models.SubscriptionTier, customerID string) error {
	var brand models.Brand
	if err := s.db.Where("slug = ?", slug).First(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("brand %q %w", slug, ErrNotFound)
		}
		return fmt.Errorf("failed to load brand: %w", err)
	}

	updates := map[string]interface{}{"subscription_tier": tier}
	if customerID != "" {
		updates["stripe_customer_id"] = customerID
	}

	if err := s.db.Model(&brand).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to apply subscription tier: %w", err)
	}

	return nil
}

func (s *SubscriptionService) priceForTier(tier models.SubscriptionTier) (string, error) {
	switch tier {
	case models.SubscriptionTierStarter:
		return s.cfg.Stripe.PriceStarter, nil
	case models.SubscriptionTierStandard:
		return s.cfg.Stripe.PriceStandard, nil
	case models.SubscriptionTierPremium:
		return s.cfg.Stripe.PricePremium, nil
	default:
		return "", fmt.Errorf("tier %q is not purchasable", tier)
	}
}
