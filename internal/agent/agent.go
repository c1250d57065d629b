// Package agent composes the catalog, cart, pricing, stores, and mailer into
// the session-scoped operations the conversational layer calls.
package agent

import (
	"errors"
	"path/filepath"

	"github.com/grocymate/core/internal/catalog"
	"github.com/grocymate/core/internal/config"
	"github.com/grocymate/core/internal/mail"
	"github.com/grocymate/core/internal/orders"
	"github.com/grocymate/core/internal/pricing"
	"github.com/grocymate/core/internal/users"
)

var (
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrItemNotFound    = errors.New("item not found in catalog")
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrNoPendingOrder  = errors.New("no pending order to confirm")
	ErrDietaryMismatch = errors.New("item does not match dietary preference")
)

// Notifier is the confirmation side effect. Failures are a boolean, never an
// error: mail must not block or roll back an order.
type Notifier interface {
	SendConfirmation(o orders.Order, customerName string) bool
}

// Agent holds the process-wide pieces. Sessions share it; each session owns
// its cart and pending order exclusively.
type Agent struct {
	Catalog *catalog.Catalog
	Users   *users.Store
	Orders  *orders.Store
	Rules   pricing.Rules
	Mailer  Notifier
}

// New wires an Agent from config: catalog load-or-default, durable stores
// under the data dir, pricing rules, SMTP mailer.
func New(cfg config.Config) (*Agent, error) {
	us, err := users.Open(usersPath(cfg))
	if err != nil {
		return nil, err
	}
	os, err := orders.Open(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	return &Agent{
		Catalog: catalog.Load(cfg.CatalogPath),
		Users:   us,
		Orders:  os,
		Rules: pricing.Rules{
			DeliveryCharge:        cfg.DeliveryCharge,
			FreeDeliveryThreshold: cfg.FreeDeliveryThreshold,
			DiscountThreshold:     cfg.DiscountThreshold,
			DiscountPct:           cfg.DiscountPercentage,
		},
		Mailer: mail.New(cfg),
	}, nil
}

func usersPath(cfg config.Config) string {
	return filepath.Join(cfg.DataDir, "users.json")
}
