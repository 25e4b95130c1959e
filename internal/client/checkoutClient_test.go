package client

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"birthday-song-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestCheckout(t *testing.T) (*mockCheckoutClientImpl, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	c, err := newMockCheckoutClient("http://localhost:5173/", 30*time.Minute, 1, clock.Now)
	require.NoError(t, err)
	return c, clock
}

func TestCreateSession_URLAndPricing(t *testing.T) {
	c, _ := newTestCheckout(t)
	ctx := context.Background()

	for _, tier := range PricingTiers() {
		created, err := c.CreateSession(ctx, "order-1", tier.Tier)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(created.CheckoutURL, "http://localhost:5173/mock-checkout?session_id="))

		u, err := url.Parse(created.CheckoutURL)
		require.NoError(t, err)
		q := u.Query()
		assert.Equal(t, created.SessionID, q.Get("session_id"))
		assert.Equal(t, "order-1", q.Get("order_id"))
		assert.Equal(t, strconv.FormatInt(tier.AmountCents, 10), q.Get("amount"))
		assert.Equal(t, tier.Label, q.Get("label"))

		session, ok := c.LookupSession(ctx, created.SessionID)
		require.True(t, ok)
		assert.Equal(t, model.SessionOpen, session.Status)
		assert.Equal(t, tier.AmountCents, session.AmountCents)
		assert.Equal(t, tier.Label, session.Label)
		assert.Equal(t, "usd", session.Currency)
	}
}

func TestCreateSession_LabelIsEncoded(t *testing.T) {
	c, _ := newTestCheckout(t)

	created, err := c.CreateSession(context.Background(), "order-1", "premium")
	require.NoError(t, err)
	assert.Contains(t, created.CheckoutURL, "&label=Song+%2B+Video")
}

func TestCreateSession_UnknownTier(t *testing.T) {
	c, _ := newTestCheckout(t)

	_, err := c.CreateSession(context.Background(), "order-1", "platinum")
	assert.ErrorIs(t, err, ErrUnknownTier)
}

func TestCreateSession_UniqueIDs(t *testing.T) {
	c, _ := newTestCheckout(t)
	ctx := context.Background()

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		created, err := c.CreateSession(ctx, "order-1", "basic")
		require.NoError(t, err)
		seen[created.SessionID] = struct{}{}
	}
	assert.Len(t, seen, 1000)
}

func TestCompleteSession_OnlyOnce(t *testing.T) {
	c, _ := newTestCheckout(t)
	ctx := context.Background()

	created, err := c.CreateSession(ctx, "order-7", "deluxe")
	require.NoError(t, err)

	first, err := c.CompleteSession(ctx, created.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "order-7", first.OrderID)
	assert.Equal(t, "deluxe", first.Tier)
	assert.Equal(t, int64(2999), first.AmountCents)
	assert.Equal(t, "usd", first.Currency)
	assert.True(t, strings.HasPrefix(first.PaymentIntentID, "pi_mock_"))

	second, err := c.CompleteSession(ctx, created.SessionID)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.Nil(t, second)

	session, ok := c.LookupSession(ctx, created.SessionID)
	require.True(t, ok)
	assert.Equal(t, model.SessionComplete, session.Status)
	assert.Equal(t, first.PaymentIntentID, session.PaymentIntentID)
}

func TestCompleteSession_Concurrent(t *testing.T) {
	c, _ := newTestCheckout(t)
	ctx := context.Background()

	created, err := c.CreateSession(ctx, "order-1", "basic")
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.CompleteSession(ctx, created.SessionID); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
}

func TestCompleteSession_NotFound(t *testing.T) {
	c, _ := newTestCheckout(t)

	_, err := c.CompleteSession(context.Background(), "cs_mock_missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, ok := c.LookupSession(context.Background(), "cs_mock_missing")
	assert.False(t, ok)
}

func TestExpireStale(t *testing.T) {
	c, clock := newTestCheckout(t)
	ctx := context.Background()

	old, err := c.CreateSession(ctx, "order-1", "basic")
	require.NoError(t, err)
	paid, err := c.CreateSession(ctx, "order-2", "basic")
	require.NoError(t, err)
	_, err = c.CompleteSession(ctx, paid.SessionID)
	require.NoError(t, err)

	clock.Advance(20 * time.Minute)
	fresh, err := c.CreateSession(ctx, "order-3", "basic")
	require.NoError(t, err)

	clock.Advance(11 * time.Minute)
	assert.Equal(t, 1, c.ExpireStale(ctx))

	session, _ := c.LookupSession(ctx, old.SessionID)
	assert.Equal(t, model.SessionExpired, session.Status)
	session, _ = c.LookupSession(ctx, paid.SessionID)
	assert.Equal(t, model.SessionComplete, session.Status)
	session, _ = c.LookupSession(ctx, fresh.SessionID)
	assert.Equal(t, model.SessionOpen, session.Status)

	_, err = c.CompleteSession(ctx, old.SessionID)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestLookupSession_ReturnsCopy(t *testing.T) {
	c, _ := newTestCheckout(t)
	ctx := context.Background()

	created, err := c.CreateSession(ctx, "order-1", "basic")
	require.NoError(t, err)

	session, ok := c.LookupSession(ctx, created.SessionID)
	require.True(t, ok)
	session.Status = model.SessionComplete

	again, _ := c.LookupSession(ctx, created.SessionID)
	assert.Equal(t, model.SessionOpen, again.Status)
}

func TestReopenSession(t *testing.T) {
	c, _ := newTestCheckout(t)
	ctx := context.Background()

	created, err := c.CreateSession(ctx, "order-1", "basic")
	require.NoError(t, err)

	assert.False(t, c.ReopenSession(ctx, created.SessionID, ""), "open session has nothing to undo")

	first, err := c.CompleteSession(ctx, created.SessionID)
	require.NoError(t, err)

	assert.False(t, c.ReopenSession(ctx, created.SessionID, "pi_mock_other"))
	assert.True(t, c.ReopenSession(ctx, created.SessionID, first.PaymentIntentID))

	session, _ := c.LookupSession(ctx, created.SessionID)
	assert.Equal(t, model.SessionOpen, session.Status)
	assert.Empty(t, session.PaymentIntentID)

	second, err := c.CompleteSession(ctx, created.SessionID)
	require.NoError(t, err)
	assert.NotEqual(t, first.PaymentIntentID, second.PaymentIntentID)

	assert.False(t, c.ReopenSession(ctx, "cs_mock_missing", second.PaymentIntentID))
}

func TestRunExpiry_NonPositiveInterval(t *testing.T) {
	c, _ := newTestCheckout(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		RunExpiry(ctx, c, 0)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("RunExpiry did not return after cancel")
	}
}
