package gateway

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/price"

	"coursehub/internal/config"
	"coursehub/internal/models/db_models"
)

const ProviderStripe = "stripe"

type StripeConfig struct {
	SecretKey  string
	Currency   string
	SuccessURL string
	CancelURL  string
}

type stripeGateway struct {
	cfg      StripeConfig
	prices   price.Client
	sessions session.Client
	logger   zerolog.Logger
}

// NewStripeGateway uses the given backend, or Stripe's API backend when nil.
func NewStripeGateway(cfg StripeConfig, backend stripe.Backend, logger zerolog.Logger) PaymentGateway {
	if backend == nil {
		backend = stripe.GetBackend(stripe.APIBackend)
	}
	if cfg.SecretKey == "" {
		logger.Warn().Msg("STRIPE_SECRET_KEY is empty, checkout requests will be rejected by the provider")
	}

	return &stripeGateway{
		cfg:      cfg,
		prices:   price.Client{B: backend, Key: cfg.SecretKey},
		sessions: session.Client{B: backend, Key: cfg.SecretKey},
		logger:   logger,
	}
}

func NewStripeGatewayFromConfig(cfg *config.Config, logger zerolog.Logger) PaymentGateway {
	return NewStripeGateway(StripeConfig{
		SecretKey:  cfg.StripeSecretKey,
		Currency:   cfg.StripeCurrency,
		SuccessURL: cfg.CheckoutSuccessURL,
		CancelURL:  cfg.CheckoutCancelURL,
	}, nil, logger)
}

func (g *stripeGateway) CreatePrice(ctx context.Context, payment *db_models.Payment) (PriceHandle, error) {
	amount, err := ResolvePrice(payment)
	if err != nil {
		return PriceHandle{}, err
	}

	params := &stripe.PriceParams{
		Currency:   stripe.String(g.cfg.Currency),
		UnitAmount: stripe.Int64(amount),
		ProductData: &stripe.PriceProductDataParams{
			Name: stripe.String(productName(payment)),
		},
	}
	params.Context = ctx
	params.ProductData.AddMetadata("payment_id", payment.ID.String())

	p, err := g.prices.New(params)
	if err != nil {
		g.logger.Error().Err(err).Str("payment_id", payment.ID.String()).Msg("stripe price creation failed")
		return PriceHandle{}, err
	}

	return PriceHandle{
		Provider: ProviderStripe,
		PriceID:  p.ID,
		Amount:   amount,
		Currency: g.cfg.Currency,
	}, nil
}

func (g *stripeGateway) CreateCheckoutURL(ctx context.Context, handle PriceHandle) (string, error) {
	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(g.cfg.SuccessURL),
		CancelURL:  stripe.String(g.cfg.CancelURL),
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(handle.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx

	s, err := g.sessions.New(params)
	if err != nil {
		g.logger.Error().Err(err).Str("price_id", handle.PriceID).Msg("stripe checkout session failed")
		return "", err
	}
	if s.URL == "" {
		return "", errors.New("stripe returned an empty checkout url")
	}

	return s.URL, nil
}
