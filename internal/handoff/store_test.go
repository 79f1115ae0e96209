package handoff

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/transfer-calculator/internal/model"
)

func TestService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewService(NewMemoryStore(), time.Minute)

	t.Run("calculator data", func(t *testing.T) {
		want := model.CalculatorData{FromAmount: "100", ToAmount: "79.00", FromCurrency: "USD", ToCurrency: "GBP", ExchangeRate: 0.79}
		require.NoError(t, s.SaveCalculator(ctx, "s1", want))

		got, err := s.LoadCalculator(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("kinds are independent", func(t *testing.T) {
		require.NoError(t, s.SaveRecipient(ctx, "s2", model.SelectedRecipient{ID: "r1", Name: "Ana", Currency: "EUR"}))

		_, err := s.LoadCalculator(ctx, "s2")
		assert.ErrorIs(t, err, ErrNotFound)

		r, err := s.LoadRecipient(ctx, "s2")
		require.NoError(t, err)
		assert.Equal(t, "Ana", r.Name)
	})

	t.Run("sessions are independent", func(t *testing.T) {
		_, err := s.LoadCalculator(ctx, "other")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestService_MalformedPayloadIsIgnored(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := NewService(store, time.Minute)

	require.NoError(t, store.Put(ctx, Key("s1", KindHome), []byte(`{"balances": "lots"`), time.Minute))

	_, err := s.LoadHome(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Put(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, store.Put(ctx, "b", []byte("2"), time.Hour))

	now = now.Add(2 * time.Minute)
	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), got)

	now = now.Add(time.Hour)
	assert.Equal(t, 1, store.Purge())
}

// Integration test: requires running redis
func TestRedisStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := NewRedisClient(RedisConfig{Addr: addr})
	defer client.Close()

	store := NewRedisStore(client)
	ctx := context.Background()
	if err := store.Ping(ctx); err != nil {
		t.Skip("no redis available")
	}

	s := NewService(store, time.Minute)
	want := model.CalculatorData{FromAmount: "5", ToAmount: "4.60", FromCurrency: "USD", ToCurrency: "EUR", ExchangeRate: 0.92}
	require.NoError(t, s.SaveCalculator(ctx, "it-session", want))

	got, err := s.LoadCalculator(ctx, "it-session")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = store.Get(ctx, Key("missing", KindCalculator))
	assert.ErrorIs(t, err, ErrNotFound)
}
