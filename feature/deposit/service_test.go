package deposit_test

import (
	"context"
	"testing"

	"koin-ledger/core/database"
	"koin-ledger/core/feed"
	"koin-ledger/feature/account"
	"koin-ledger/feature/deposit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubFeed is a test double for the donation platform: it always returns the
// same recent window, like the real platform does between new donations.
type stubFeed struct {
	events []feed.Event
	err    error
	calls  int
}

func (s *stubFeed) FetchRecent(ctx context.Context, pageSize, page int) ([]feed.Event, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.events, nil
}

func newTestService(t *testing.T, f feed.Client) (*deposit.Service, account.Store) {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	store := account.NewStore(db)
	require.NoError(t, store.Migrate(context.Background()))

	svc := deposit.NewService(store, f, zap.NewNop(), feed.Config{PageSize: 5, KoinRate: 15})
	return svc, store
}

func TestReconcileEndToEnd(t *testing.T) {
	ctx := context.Background()
	feedStub := &stubFeed{events: []feed.Event{
		{OrderID: "ord-1", AmountMinor: 3000, SupportMessage: "Z9Q3RT 555"},
	}}
	svc, store := newTestService(t, feedStub)

	_, err := store.CreateAccount(ctx, "555", "Z9Q3RT")
	require.NoError(t, err)

	// First pass credits 3000 / 15 = 200 koin.
	res, err := svc.Reconcile(ctx, "555")
	require.NoError(t, err)
	assert.Equal(t, int64(200), res.CreditedKoin)
	assert.Equal(t, int64(200), res.TotalBalance)

	// Second pass over the identical window credits nothing.
	res, err = svc.Reconcile(ctx, "555")
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.CreditedKoin)
	assert.Equal(t, int64(200), res.TotalBalance)
}

func TestReconcileConversion(t *testing.T) {
	ctx := context.Background()
	feedStub := &stubFeed{events: []feed.Event{
		{OrderID: "ord-1", AmountMinor: 1500, SupportMessage: "Z9Q3RT 555"},
		{OrderID: "ord-2", AmountMinor: 1509, SupportMessage: "Z9Q3RT 555"},
	}}
	svc, store := newTestService(t, feedStub)

	_, err := store.CreateAccount(ctx, "555", "Z9Q3RT")
	require.NoError(t, err)

	// 1500/15 = 100 and 1509/15 = 100: the remainder is discarded.
	res, err := svc.Reconcile(ctx, "555")
	require.NoError(t, err)
	assert.Equal(t, int64(200), res.CreditedKoin)
}

func TestReconcileMatching(t *testing.T) {
	ctx := context.Background()
	feedStub := &stubFeed{events: []feed.Event{
		{OrderID: "ord-1", AmountMinor: 1500, SupportMessage: "AB12CD 98765"},
		{OrderID: "ord-2", AmountMinor: 9000, SupportMessage: "some other donor"},
		{OrderID: "ord-3", AmountMinor: 4500, SupportMessage: ""},
	}}
	svc, store := newTestService(t, feedStub)

	_, err := store.CreateAccount(ctx, "98765", "AB12CD")
	require.NoError(t, err)

	// Containment match: surrounding free text doesn't matter, and the
	// unrelated events are ignored.
	res, err := svc.Reconcile(ctx, "98765")
	require.NoError(t, err)
	assert.Equal(t, int64(100), res.CreditedKoin)

	exists, err := store.OrderExists(ctx, "ord-2")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestReconcileLegacyEmailMatching(t *testing.T) {
	ctx := context.Background()
	feedStub := &stubFeed{events: []feed.Event{
		{OrderID: "ord-1", AmountMinor: 1500, SupportMessage: "donation from user@example.com"},
	}}
	svc, _ := newTestService(t, feedStub)

	require.NoError(t, svc.RegisterEmail(ctx, "555", "user@example.com"))

	res, err := svc.Reconcile(ctx, "555")
	require.NoError(t, err)
	assert.Equal(t, int64(100), res.CreditedKoin)
}

func TestReconcileZeroKoinEventStillRecorded(t *testing.T) {
	ctx := context.Background()
	feedStub := &stubFeed{events: []feed.Event{
		{OrderID: "ord-small", AmountMinor: 10, SupportMessage: "Z9Q3RT 555"},
	}}
	svc, store := newTestService(t, feedStub)

	_, err := store.CreateAccount(ctx, "555", "Z9Q3RT")
	require.NoError(t, err)

	res, err := svc.Reconcile(ctx, "555")
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.CreditedKoin)
	assert.Equal(t, int64(0), res.TotalBalance)

	// The sub-rate donation grants nothing but enters the ledger so the
	// next pass doesn't re-evaluate it.
	exists, err := store.OrderExists(ctx, "ord-small")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestReconcileNeverRecreditsForeignOrder(t *testing.T) {
	ctx := context.Background()
	feedStub := &stubFeed{events: []feed.Event{
		// A pathological token collision: this message would match both
		// accounts' codes.
		{OrderID: "ord-x", AmountMinor: 1500, SupportMessage: "AB12CD Z9Q3RT"},
	}}
	svc, store := newTestService(t, feedStub)

	_, err := store.CreateAccount(ctx, "555", "Z9Q3RT")
	require.NoError(t, err)
	_, err = store.CreateAccount(ctx, "777", "AB12CD")
	require.NoError(t, err)

	res, err := svc.Reconcile(ctx, "555")
	require.NoError(t, err)
	assert.Equal(t, int64(100), res.CreditedKoin)

	// The order id is spent globally; the other account gets nothing.
	res, err = svc.Reconcile(ctx, "777")
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.CreditedKoin)
	assert.Equal(t, int64(0), res.TotalBalance)
}

func TestReconcileFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("Unknown Account", func(t *testing.T) {
		svc, _ := newTestService(t, &stubFeed{})
		_, err := svc.Reconcile(ctx, "nobody")
		assert.ErrorIs(t, err, deposit.ErrUnknownAccount)
	})

	t.Run("Feed Unavailable", func(t *testing.T) {
		feedStub := &stubFeed{err: feed.ErrFeedUnavailable}
		svc, store := newTestService(t, feedStub)

		_, err := store.CreateAccount(ctx, "555", "Z9Q3RT")
		require.NoError(t, err)

		_, err = svc.Reconcile(ctx, "555")
		assert.ErrorIs(t, err, feed.ErrFeedUnavailable)

		// Transient and side-effect free: the balance is untouched.
		acc, err := store.GetAccount(ctx, "555")
		require.NoError(t, err)
		assert.Equal(t, int64(0), acc.Balance)
	})
}

func TestRequestDeposit(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, &stubFeed{})

	intent, err := svc.RequestDeposit(ctx, "555")
	require.NoError(t, err)
	assert.Len(t, intent.MatchCode, 6)
	assert.Equal(t, intent.MatchCode+" 555", intent.SupportMessage)
	assert.Contains(t, intent.Instructions, intent.SupportMessage)

	acc, err := store.GetAccount(ctx, "555")
	require.NoError(t, err)
	assert.Equal(t, int64(0), acc.Balance)
	assert.Equal(t, intent.MatchCode, acc.PendingMatchCode)

	// A new request replaces the pending code, redeemed or not.
	second, err := svc.RequestDeposit(ctx, "555")
	require.NoError(t, err)
	assert.NotEqual(t, intent.MatchCode, second.MatchCode)

	acc, err = store.GetAccount(ctx, "555")
	require.NoError(t, err)
	assert.Equal(t, second.MatchCode, acc.PendingMatchCode)
}

func TestRegisterEmail(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, &stubFeed{})

	t.Run("Invalid", func(t *testing.T) {
		assert.ErrorIs(t, svc.RegisterEmail(ctx, "555", "not-an-email"), deposit.ErrInvalidEmail)
		assert.ErrorIs(t, svc.RegisterEmail(ctx, "555", "a b@c.d"), deposit.ErrInvalidEmail)
	})

	t.Run("Creates Account", func(t *testing.T) {
		require.NoError(t, svc.RegisterEmail(ctx, "555", "user@example.com"))

		acc, err := store.GetAccount(ctx, "555")
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", acc.Email)
		assert.Equal(t, int64(0), acc.Balance)
	})

	t.Run("Updates Existing Account", func(t *testing.T) {
		require.NoError(t, svc.RegisterEmail(ctx, "555", "other@example.com"))

		acc, err := store.GetAccount(ctx, "555")
		require.NoError(t, err)
		assert.Equal(t, "other@example.com", acc.Email)
	})
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	feedStub := &stubFeed{events: []feed.Event{
		{OrderID: "ord-1", AmountMinor: 3000, SupportMessage: "Z9Q3RT 555"},
		{OrderID: "ord-2", AmountMinor: 1509, SupportMessage: "Z9Q3RT 555"},
	}}
	svc, store := newTestService(t, feedStub)

	_, err := store.CreateAccount(ctx, "555", "Z9Q3RT")
	require.NoError(t, err)

	_, err = svc.Reconcile(ctx, "555")
	require.NoError(t, err)

	profile, err := svc.Profile(ctx, "555")
	require.NoError(t, err)
	assert.Equal(t, "555", profile.UserID)
	assert.Equal(t, int64(300), profile.Balance)
	assert.Equal(t, int64(4509), profile.TotalDonated)
	assert.Equal(t, int64(300), profile.TotalKoinEarned)
	assert.Len(t, profile.RecentOrders, 2)

	_, err = svc.Profile(ctx, "nobody")
	assert.ErrorIs(t, err, deposit.ErrUnknownAccount)
}
