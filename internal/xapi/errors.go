package xapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dghubble/go-twitter/twitter"

	"github.com/mikequentel/xengage/internal/model"
)

const maxExcerptRunes = 200

// Error is returned for every failed call. StatusCode is zero when the request
// never produced a response.
type Error struct {
	Op         string // e.g. "POST /2/tweets"
	StatusCode int
	Message    string
	Ratelimit  *RatelimitInfo
	Wrapped    error
}

func (e *Error) Error() string {
	if e.IsTransport() {
		return fmt.Sprintf("%s: transport error: %v", e.Op, e.Wrapped)
	}
	if e.IsThrottled() && e.Ratelimit != nil && !e.Ratelimit.Reset.IsZero() {
		return fmt.Sprintf("%s (rate limit resets at %s)", e.Message, e.Ratelimit.Reset.UTC().Format(time.RFC3339))
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

// IsAuth reports a 401: credentials are invalid or expired.
func (e *Error) IsAuth() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsThrottled reports a 429. Callers never retry it.
func (e *Error) IsThrottled() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

func (e *Error) IsTransport() bool {
	return e.StatusCode == 0
}

type RatelimitInfo struct {
	Limit     int
	Remaining int
	Reset     time.Time
}

func parseRatelimit(h http.Header) *RatelimitInfo {
	if h.Get("x-rate-limit-limit") == "" && h.Get("x-rate-limit-reset") == "" {
		return nil
	}
	r := &RatelimitInfo{}
	if n, err := strconv.Atoi(h.Get("x-rate-limit-limit")); err == nil {
		r.Limit = n
	}
	if n, err := strconv.Atoi(h.Get("x-rate-limit-remaining")); err == nil {
		r.Remaining = n
	}
	if n, err := strconv.ParseInt(h.Get("x-rate-limit-reset"), 10, 64); err == nil {
		r.Reset = time.Unix(n, 0)
	}
	return r
}

func errorFromResponse(op string, resp *http.Response, body []byte) *Error {
	return &Error{
		Op:         op,
		StatusCode: resp.StatusCode,
		Message:    diagnoseHTTPError(resp, body, op),
		Ratelimit:  parseRatelimit(resp.Header),
	}
}

// diagnoseHTTPError turns an error body into one readable line. v2 endpoints
// answer with a problem document, v1.1 endpoints with a list of coded errors;
// anything else is reported as a raw excerpt.
func diagnoseHTTPError(resp *http.Response, body []byte, op string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: HTTP %d", op, resp.StatusCode)

	var problem model.Problem
	var v1 twitter.APIError
	switch {
	case json.Unmarshal(body, &problem) == nil && (problem.Title != "" || problem.Detail != ""):
		if problem.Title != "" {
			b.WriteString(" " + problem.Title)
		}
		if problem.Detail != "" {
			b.WriteString(": " + problem.Detail)
		}
	case json.Unmarshal(body, &v1) == nil && len(v1.Errors) > 0:
		for i, e := range v1.Errors {
			if i == 0 {
				b.WriteString(": ")
			} else {
				b.WriteString("; ")
			}
			if e.Code != 0 {
				fmt.Fprintf(&b, "code %d: ", e.Code)
			}
			b.WriteString(e.Message)
		}
	default:
		if s := excerpt(body); s != "" {
			b.WriteString(": " + s)
		}
	}

	if lvl := resp.Header.Get("x-access-level"); lvl != "" {
		fmt.Fprintf(&b, " (access level: %s)", lvl)
	}
	return b.String()
}

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	r := []rune(s)
	if len(r) > maxExcerptRunes {
		return string(r[:maxExcerptRunes])
	}
	return s
}
