// internal/adapters/platform/client.go
package platform

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"homestay_wizard/internal/adapters/observability"
	"homestay_wizard/internal/domain"
)

// Client talks to the homestay platform API. Writes return the platform's
// {success, message, data} envelope unchanged; a business rejection
// (success:false) is not an error and is never retried. Transient transport
// failures (429/5xx) are retried with backoff.
type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- Public API ----

func (c *Client) CreateHomestay(ctx context.Context, p domain.HomestayPayload) (domain.Envelope, error) {
	var env domain.Envelope
	err := c.do(ctx, http.MethodPost, c.base+"/homestays", p, &env, "create")
	return env, err
}

func (c *Client) UpdateHomestay(ctx context.Context, id string, p domain.HomestayPayload) (domain.Envelope, error) {
	var env domain.Envelope
	err := c.do(ctx, http.MethodPut, c.base+"/homestays/"+id, p, &env, "update")
	return env, err
}

func (c *Client) GetHomestay(ctx context.Context, id string) (domain.HomestayDetail, error) {
	var env domain.Envelope
	if err := c.do(ctx, http.MethodGet, c.base+"/homestays/"+id, nil, &env, "get"); err != nil {
		return domain.HomestayDetail{}, err
	}
	if !env.Success {
		return domain.HomestayDetail{}, fmt.Errorf("platform: %s", orMsg(env.Message, "get homestay failed"))
	}
	var det domain.HomestayDetail
	if err := json.Unmarshal(env.Data, &det); err != nil {
		return domain.HomestayDetail{}, fmt.Errorf("decode homestay detail: %w", err)
	}
	return det, nil
}

// ---- Internals ----

var (
	ErrUnauthorized = errors.New("platform: unauthorized")
	ErrForbidden    = errors.New("platform: forbidden")
)

func orMsg(s, def string) string {
	if s != "" {
		return s
	}
	return def
}

// do performs one call with client-side rate limiting, retries and JSON
// decode into out. Retries on 429 and transient 5xx, honoring Retry-After
// when provided. The body is re-marshaled per attempt so retries never reuse
// a consumed reader.
func (c *Client) do(ctx context.Context, method, url string, body, out any, endpoint string) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = b
	}

	start := time.Now()
	var lastErr error
	for i := 0; i < 4; i++ {
		var rd io.Reader
		if payload != nil {
			rd = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, rd)
		if err != nil {
			return err
		}
		if c.key != "" {
			req.Header.Set("X-API-Key", c.key)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "homestay-wizard/1.0")

		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			observability.ObserveExternal("platform", endpoint, 0, time.Since(start))
			return lastErr
		}

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated, http.StatusAccepted:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			observability.ObserveExternal("platform", endpoint, resp.StatusCode, time.Since(start))
			return err

		case http.StatusNoContent:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			observability.ObserveExternal("platform", endpoint, resp.StatusCode, time.Since(start))
			return nil

		case http.StatusNotFound:
			resp.Body.Close()
			observability.ObserveExternal("platform", endpoint, resp.StatusCode, time.Since(start))
			return domain.ErrNotFound

		case http.StatusUnauthorized:
			resp.Body.Close()
			observability.ObserveExternal("platform", endpoint, resp.StatusCode, time.Since(start))
			return ErrUnauthorized

		case http.StatusForbidden:
			resp.Body.Close()
			observability.ObserveExternal("platform", endpoint, resp.StatusCode, time.Since(start))
			return ErrForbidden

		case http.StatusUnprocessableEntity, http.StatusBadRequest:
			// Business rejection delivered with a non-2xx status. Surface the
			// envelope so the caller sees the server's message verbatim.
			derr := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			observability.ObserveExternal("platform", endpoint, resp.StatusCode, time.Since(start))
			if derr != nil {
				return fmt.Errorf("remote %d", resp.StatusCode)
			}
			return nil

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			observability.ObserveExternal("platform", endpoint, resp.StatusCode, time.Since(start))
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			observability.ObserveExternal("platform", endpoint, resp.StatusCode, time.Since(start))
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if
// absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential delay (200ms, 400ms, 800ms...) with up to
// +50% jitter from crypto/rand to avoid thundering herds.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
