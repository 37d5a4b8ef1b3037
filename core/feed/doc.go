// Package feed provides the client for the external donation platform.
//
// The platform offers no webhooks, only a paginated listing of recent
// donations. FetchRecent wraps one authenticated GET against that endpoint
// and returns the raw window, including donations unrelated to any tracked
// account; matching is the reconciliation engine's job.
//
// # Failure Model
//
// Every failure mode (transport error, non-200, unexpected envelope) is
// reported as ErrFeedUnavailable. The caller treats it as transient and
// retries later; no state is touched before the feed result is consumed.
//
// # Usage
//
//	client := feed.NewClient(cfg.Feed)
//	events, err := client.FetchRecent(ctx, cfg.Feed.PageSize, 1)
package feed
