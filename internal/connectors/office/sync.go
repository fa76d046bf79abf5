package office

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/raksonibs/waffle/internal/core/domain"
	"github.com/raksonibs/waffle/internal/core/ports/driven"
	"github.com/raksonibs/waffle/internal/logger"
)

// reauthenticator produces a fresh token bundle for a login hint without
// user interaction. Implemented by Authenticator.
type reauthenticator interface {
	Authenticate(ctx context.Context, existingUser string) (*domain.TokenBundle, error)
}

// syncState is the engine's position in one calendar-view run.
type syncState int

const (
	// stateFetching issues the current request and classifies its items.
	stateFetching syncState = iota
	// stateReauthenticating recovers from a 401 with a silent reauth.
	stateReauthenticating
	// stateResetting restarts the run from the original URL after the
	// provider invalidated the sync state (410).
	stateResetting
	// stateDone terminates the loop.
	stateDone
)

// Recovery bounds per run. The provider signalling 401 or 410 repeatedly is
// misbehaving; looping on it would never terminate.
const (
	maxReauthAttempts = 1
	maxResetAttempts  = 1
)

// Engine runs the paginated, delta-tracking calendar-view fetch for one
// account. One Engine may serve many accounts, but concurrent runs for the
// same account must be serialised by the caller.
type Engine struct {
	cfg      *Config
	auth     reauthenticator
	accounts driven.AccountStore
	limiter  *RateLimiter
	client   *http.Client
}

// NewEngine creates a sync engine. The account store is used to persist
// replacement token bundles obtained during reauthentication.
func NewEngine(cfg *Config, auth reauthenticator, accounts driven.AccountStore) *Engine {
	return &Engine{
		cfg:      cfg,
		auth:     auth,
		accounts: accounts,
		limiter:  NewRateLimiter(),
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

// fetchPass is the scratch state of one fetch pass: everything accumulated
// across its pages. Discarded wholesale when the pass restarts.
type fetchPass struct {
	events      []domain.Event
	masters     []*RawItem
	occurrences []*RawItem
	deltaToken  string
}

// apiPage is one page of a calendar-view response.
type apiPage struct {
	Value     []*RawItem `json:"value"`
	NextLink  string     `json:"@odata.nextLink"`
	DeltaLink string     `json:"@odata.deltaLink"`
}

// CalendarView fetches all events in the [start, end) window for an account,
// following pagination and delta continuation until a terminal page.
//
// A 401 mid-run triggers one silent reauthentication and a retry of the same
// request with the new token. A 410 discards all pass state and restarts
// from the original URL with change tracking forced on. Any other failure
// aborts the run with ErrSyncAborted.
func (e *Engine) CalendarView(
	ctx context.Context,
	start, end time.Time,
	account *domain.Account,
	opts domain.SyncOptions,
) (*domain.SyncResult, error) {
	if account.OAuth == nil || account.OAuth.AccessToken == "" {
		return nil, fmt.Errorf("%w: account %q has no access token",
			ErrUnauthorised, account.Username)
	}

	baseURL := e.buildViewURL(account.Username, start, end)

	// The pass starts from the stored token so a run that observes no new
	// delta link still reports the previous checkpoint.
	pass := &fetchPass{deltaToken: account.DeltaToken}
	currentURL := baseURL
	if opts.UseDelta && ValidDeltaToken(account.DeltaToken) {
		currentURL = baseURL + "&" + url.Values{"deltatoken": {account.DeltaToken}}.Encode()
	}

	token := account.OAuth.AccessToken
	track := opts.TrackChanges
	state := stateFetching
	var reauths, resets int

	logger.Debug("office: starting calendar view fetch for %s", account.Username)

	for state != stateDone {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch state {
		case stateFetching:
			page, status, err := e.fetchPage(ctx, currentURL, token, track)
			if err != nil {
				switch {
				case IsUnauthorised(status):
					state = stateReauthenticating
				case IsSyncStateGone(status):
					state = stateResetting
				default:
					logger.Warn("office: calendar view fetch failed: %v", err)
					return nil, fmt.Errorf("%w: %w", ErrSyncAborted, err)
				}
				continue
			}

			e.collect(pass, page.Value)

			switch {
			case page.NextLink != "":
				// More pages of the current window; plain pagination.
				currentURL = page.NextLink
				track = false
			case opts.TrackChanges && page.DeltaLink != "":
				if tok := ExtractDeltaToken(page.DeltaLink); tok != "" {
					pass.deltaToken = tok
				}
				currentURL = page.DeltaLink
				track = true
			default:
				state = stateDone
			}

		case stateReauthenticating:
			reauths++
			if reauths > maxReauthAttempts {
				return nil, fmt.Errorf("%w: attempt limit reached", ErrReauthFailed)
			}
			logger.Info("office: access token rejected, reauthenticating %s silently", account.Username)
			newToken, err := e.reauthenticate(ctx, account)
			if err != nil {
				logger.Warn("office: silent reauthentication failed: %v", err)
				if errors.Is(err, ErrReauthFailed) {
					return nil, err
				}
				return nil, fmt.Errorf("%w: %w", ErrReauthFailed, err)
			}
			token = newToken
			state = stateFetching

		case stateResetting:
			resets++
			if resets > maxResetAttempts {
				return nil, fmt.Errorf("%w: sync state reset loop", ErrSyncAborted)
			}
			logger.Info("office: sync state gone, restarting %s as full resync", account.Username)
			pass = &fetchPass{}
			currentURL = baseURL
			track = true
			state = stateFetching
		}
	}

	// End of pass: resolve occurrences against their series masters and
	// discard the masters.
	for _, occurrence := range pass.occurrences {
		pass.events = append(pass.events, NormalizeOccurrence(occurrence, pass.masters))
	}

	logger.Debug("office: calendar view fetch complete for %s: %d events",
		account.Username, len(pass.events))

	return &domain.SyncResult{
		Events:     pass.events,
		DeltaToken: pass.deltaToken,
	}, nil
}

// buildViewURL constructs the initial calendar-view request URL.
func (e *Engine) buildViewURL(username string, start, end time.Time) string {
	q := url.Values{
		"startDateTime": {start.UTC().Format(time.RFC3339)},
		"endDateTime":   {end.UTC().Format(time.RFC3339)},
	}
	return fmt.Sprintf("%s/users/%s/calendarview?%s",
		e.cfg.API.BaseURL, url.PathEscape(username), q.Encode())
}

// collect classifies one page of items into the pass accumulator. Series
// masters and occurrences are held back for end-of-pass reconciliation,
// deletion markers are skipped, everything else normalises immediately.
func (e *Engine) collect(pass *fetchPass, items []*RawItem) {
	for _, item := range items {
		switch {
		case item.Type == itemTypeSeriesMaster:
			pass.masters = append(pass.masters, item)
		case item.Type == itemTypeOccurrence:
			pass.occurrences = append(pass.occurrences, item)
		case item.IsDeleted():
			// Delta update for an event deleted upstream; nothing to emit.
		default:
			pass.events = append(pass.events, NormalizeItem(item))
		}
	}
}

// fetchPage issues one calendar-view request. The Prefer header selects
// change-tracking semantics when track is set, and always caps the
// server-side page size. The HTTP status is returned alongside the error so
// the caller can classify recoverable failures.
func (e *Engine) fetchPage(ctx context.Context, requestURL, token string, track bool) (*apiPage, int, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, http.NoBody)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", e.cfg.API.UserAgent)
	if track {
		req.Header.Set("Prefer", fmt.Sprintf("odata.track-changes, odata.maxpagesize=%d", e.cfg.API.MaxPageSize))
	} else {
		req.Header.Set("Prefer", fmt.Sprintf("odata.maxpagesize=%d", e.cfg.API.MaxPageSize))
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("calendar view request: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	logger.Debug("office: calendar view page status %d, body length %d", resp.StatusCode, len(body))

	if IsRateLimited(resp.StatusCode) {
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		e.limiter.RecordRateLimitError(retryAfter)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, fmt.Errorf("calendar view request failed: status %d: %w",
			resp.StatusCode, WrapError(resp.StatusCode))
	}

	var page apiPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("decode calendar view response: %w", err)
	}

	return &page, resp.StatusCode, nil
}

// reauthenticate runs a silent authorization round-trip for the account's
// login hint, persists the replacement token bundle, and returns the new
// access token.
func (e *Engine) reauthenticate(ctx context.Context, account *domain.Account) (string, error) {
	bundle, err := e.auth.Authenticate(ctx, account.Username)
	if err != nil {
		return "", err
	}
	if bundle == nil || bundle.AccessToken == "" {
		return "", fmt.Errorf("%w: no access token in response", ErrReauthFailed)
	}

	account.OAuth = bundle
	if bundle.IDToken != "" {
		if email, err := EmailFromIDToken(bundle.IDToken); err == nil {
			account.Username = email
		}
	}

	if err := e.accounts.Update(ctx, account); err != nil {
		logger.Warn("office: persisting refreshed token for %s failed: %v", account.Username, err)
	}

	return bundle.AccessToken, nil
}
