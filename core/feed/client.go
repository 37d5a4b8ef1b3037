package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"koin-ledger/core/utils"

	"github.com/go-resty/resty/v2"
)

// ErrFeedUnavailable marks transient feed failures: network errors, non-200
// responses and malformed payloads. Callers may retry; no state is written
// before the feed result is consumed.
var ErrFeedUnavailable = errors.New("donation feed unavailable")

// Event is one donation as reported by the platform. Events are ephemeral;
// only matched order ids are ever persisted.
type Event struct {
	OrderID        string
	AmountMinor    int64
	SupportMessage string
	UpdatedAtLabel string
}

// Client defines the interface for fetching recent donation events.
type Client interface {
	// FetchRecent returns the platform's most recent donations, one page per
	// call. The window is not restartable: there is no durable cursor.
	FetchRecent(ctx context.Context, pageSize, page int) ([]Event, error)
}

// NewClient creates a new feed client based on the configuration.
func NewClient(cfg Config) Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}

	rc := resty.New().
		SetTimeout(time.Duration(timeout) * time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("X-Requested-With", "XMLHttpRequest").
		SetHeader("key", cfg.ApiKey)

	return &client{http: rc, cfg: cfg}
}

type client struct {
	http *resty.Client
	cfg  Config
}

// envelope mirrors the platform's response wrapper.
type envelope struct {
	Status string `json:"status"`
	Result struct {
		Data []eventPayload `json:"data"`
	} `json:"result"`
}

// eventPayload keeps amount loosely typed; the platform has been seen
// returning it both as a number and as a string.
type eventPayload struct {
	OrderID        string `json:"order_id"`
	Amount         any    `json:"amount"`
	SupportMessage string `json:"support_message"`
	UpdatedAtLabel string `json:"updated_at_diff_label"`
}

func (c *client) FetchRecent(ctx context.Context, pageSize, page int) ([]Event, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"limit": strconv.Itoa(pageSize),
			"page":  strconv.Itoa(page),
		}).
		SetQueryParamsFromValues(url.Values{
			"include[]": {"order_id", "support_message", "updated_at_diff_label"},
		}).
		Get(c.cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrFeedUnavailable, resp.StatusCode())
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	if env.Status != "success" {
		return nil, fmt.Errorf("%w: status %q", ErrFeedUnavailable, env.Status)
	}

	events := make([]Event, 0, len(env.Result.Data))
	for _, p := range env.Result.Data {
		events = append(events, Event{
			OrderID:        p.OrderID,
			AmountMinor:    int64(utils.ToInt(p.Amount)),
			SupportMessage: p.SupportMessage,
			UpdatedAtLabel: p.UpdatedAtLabel,
		})
	}

	return events, nil
}
