package feed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"koin-ledger/core/feed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRecent(t *testing.T) {
	t.Run("Parses Envelope", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// The platform contract: limit/page params, key header.
			assert.Equal(t, "5", r.URL.Query().Get("limit"))
			assert.Equal(t, "1", r.URL.Query().Get("page"))
			assert.Equal(t, "secret", r.Header.Get("key"))
			assert.Equal(t, "XMLHttpRequest", r.Header.Get("X-Requested-With"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"status": "success",
				"result": {
					"data": [
						{"order_id": "ord-1", "amount": 3000, "support_message": "Z9Q3RT 555", "updated_at_diff_label": "2 minutes ago"},
						{"order_id": "ord-2", "amount": "1500", "support_message": "unrelated", "updated_at_diff_label": "1 hour ago"}
					]
				}
			}`))
		}))
		defer srv.Close()

		client := feed.NewClient(feed.Config{Endpoint: srv.URL, ApiKey: "secret"})
		events, err := client.FetchRecent(context.Background(), 5, 1)
		require.NoError(t, err)
		require.Len(t, events, 2)

		assert.Equal(t, "ord-1", events[0].OrderID)
		assert.Equal(t, int64(3000), events[0].AmountMinor)
		assert.Equal(t, "Z9Q3RT 555", events[0].SupportMessage)

		// Amount sent as a string still parses.
		assert.Equal(t, int64(1500), events[1].AmountMinor)
	})

	t.Run("HTTP Error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := feed.NewClient(feed.Config{Endpoint: srv.URL})
		_, err := client.FetchRecent(context.Background(), 5, 1)
		assert.ErrorIs(t, err, feed.ErrFeedUnavailable)
	})

	t.Run("Malformed Payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		client := feed.NewClient(feed.Config{Endpoint: srv.URL})
		_, err := client.FetchRecent(context.Background(), 5, 1)
		assert.ErrorIs(t, err, feed.ErrFeedUnavailable)
	})

	t.Run("Upstream Status Not Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status": "error", "result": {"data": []}}`))
		}))
		defer srv.Close()

		client := feed.NewClient(feed.Config{Endpoint: srv.URL})
		_, err := client.FetchRecent(context.Background(), 5, 1)
		assert.ErrorIs(t, err, feed.ErrFeedUnavailable)
	})

	t.Run("Unreachable Endpoint", func(t *testing.T) {
		client := feed.NewClient(feed.Config{Endpoint: "http://127.0.0.1:1", TimeoutSeconds: 1})
		_, err := client.FetchRecent(context.Background(), 5, 1)
		assert.ErrorIs(t, err, feed.ErrFeedUnavailable)
	})
}
