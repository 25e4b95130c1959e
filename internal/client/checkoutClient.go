package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"birthday-song-service/internal/model"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
)

var (
	ErrSessionNotFound  = errors.New("checkout session not found")
	ErrAlreadyCompleted = errors.New("checkout session already completed")
	ErrSessionExpired   = errors.New("checkout session expired")
	ErrUnknownTier      = errors.New("unknown pricing tier")
)

const currencyUSD = "usd"

// DefaultExpiryInterval is used when RunExpiry is given a non-positive interval.
const DefaultExpiryInterval = time.Minute

var pricingTiers = []model.PricingTier{
	{Tier: "basic", Label: "Birthday Song", AmountCents: 999, Currency: currencyUSD},
	{Tier: "premium", Label: "Song + Video", AmountCents: 1999, Currency: currencyUSD},
	{Tier: "deluxe", Label: "Song + Video + Keepsake Lyrics", AmountCents: 2999, Currency: currencyUSD},
}

// PricingTiers returns a copy of the fixed price table.
func PricingTiers() []model.PricingTier {
	out := make([]model.PricingTier, len(pricingTiers))
	copy(out, pricingTiers)
	return out
}

func LookupTier(tier string) (model.PricingTier, bool) {
	for _, t := range pricingTiers {
		if t.Tier == tier {
			return t, true
		}
	}
	return model.PricingTier{}, false
}

type CreatedSession struct {
	SessionID   string `json:"sessionId"`
	CheckoutURL string `json:"checkoutUrl"`
}

// CheckoutClient is the mock payment gateway. Sessions live in memory only.
type CheckoutClient interface {
	CreateSession(ctx context.Context, orderID, tier string) (*CreatedSession, error)
	CompleteSession(ctx context.Context, sessionID string) (*model.CompletedCheckout, error)
	LookupSession(ctx context.Context, sessionID string) (*model.CheckoutSession, bool)
	ReopenSession(ctx context.Context, sessionID, paymentIntentID string) bool
	ExpireStale(ctx context.Context) int
}

type mockCheckoutClientImpl struct {
	mu         sync.Mutex
	sessions   map[string]*model.CheckoutSession
	node       *snowflake.Node
	checkoutTo string
	ttl        time.Duration
	now        func() time.Time
}

// NewMockCheckoutClient builds the in-memory gateway. frontendURL is where
// the client-rendered mock checkout page lives; sessions left open longer
// than ttl are expired by ExpireStale.
func NewMockCheckoutClient(frontendURL string, ttl time.Duration, nodeID int64) (CheckoutClient, error) {
	return newMockCheckoutClient(frontendURL, ttl, nodeID, time.Now)
}

func newMockCheckoutClient(frontendURL string, ttl time.Duration, nodeID int64, now func() time.Time) (*mockCheckoutClientImpl, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("create snowflake node: %w", err)
	}

	return &mockCheckoutClientImpl{
		sessions:   make(map[string]*model.CheckoutSession),
		node:       node,
		checkoutTo: strings.TrimRight(frontendURL, "/") + "/mock-checkout",
		ttl:        ttl,
		now:        now,
	}, nil
}

func (c *mockCheckoutClientImpl) CreateSession(ctx context.Context, orderID, tier string) (*CreatedSession, error) {
	price, ok := LookupTier(tier)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}

	session := &model.CheckoutSession{
		SessionID:   "cs_mock_" + uuid.NewString(),
		OrderID:     orderID,
		Tier:        price.Tier,
		Label:       price.Label,
		AmountCents: price.AmountCents,
		Currency:    price.Currency,
		Status:      model.SessionOpen,
		CreatedAt:   c.now(),
	}

	c.mu.Lock()
	c.sessions[session.SessionID] = session
	c.mu.Unlock()

	checkoutURL := fmt.Sprintf("%s?session_id=%s&order_id=%s&amount=%d&label=%s",
		c.checkoutTo,
		url.QueryEscape(session.SessionID),
		url.QueryEscape(orderID),
		session.AmountCents,
		url.QueryEscape(session.Label),
	)

	return &CreatedSession{
		SessionID:   session.SessionID,
		CheckoutURL: checkoutURL,
	}, nil
}

func (c *mockCheckoutClientImpl) CompleteSession(ctx context.Context, sessionID string) (*model.CompletedCheckout, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	session, ok := c.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	switch session.Status {
	case model.SessionComplete:
		return nil, ErrAlreadyCompleted
	case model.SessionExpired:
		return nil, ErrSessionExpired
	}

	session.Status = model.SessionComplete
	session.PaymentIntentID = "pi_mock_" + c.node.Generate().String()

	return &model.CompletedCheckout{
		SessionID:       session.SessionID,
		OrderID:         session.OrderID,
		Tier:            session.Tier,
		AmountCents:     session.AmountCents,
		Currency:        session.Currency,
		PaymentIntentID: session.PaymentIntentID,
	}, nil
}

func (c *mockCheckoutClientImpl) LookupSession(ctx context.Context, sessionID string) (*model.CheckoutSession, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	session, ok := c.sessions[sessionID]
	if !ok {
		return nil, false
	}
	cp := *session
	return &cp, true
}

// ReopenSession rolls a completion back when the payment could not be
// recorded. Only the completion that produced paymentIntentID is undone.
func (c *mockCheckoutClientImpl) ReopenSession(ctx context.Context, sessionID, paymentIntentID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	session, ok := c.sessions[sessionID]
	if !ok || session.Status != model.SessionComplete || session.PaymentIntentID != paymentIntentID {
		return false
	}

	session.Status = model.SessionOpen
	session.PaymentIntentID = ""
	return true
}

// ExpireStale moves open sessions older than the TTL to expired.
func (c *mockCheckoutClientImpl) ExpireStale(ctx context.Context) int {
	if c.ttl <= 0 {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now().Add(-c.ttl)
	expired := 0
	for _, session := range c.sessions {
		if session.Status == model.SessionOpen && session.CreatedAt.Before(cutoff) {
			session.Status = model.SessionExpired
			expired++
		}
	}
	return expired
}

// RunExpiry calls ExpireStale every interval until ctx is cancelled.
func RunExpiry(ctx context.Context, checkout CheckoutClient, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultExpiryInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			checkout.ExpireStale(ctx)
		}
	}
}
