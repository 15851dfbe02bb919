package xapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dghubble/go-twitter/twitter"
)

// Account is the identity behind the configured access token.
type Account struct {
	ID             string `json:"id"`
	ScreenName     string `json:"screen_name"`
	Name           string `json:"name"`
	FollowersCount int    `json:"followers_count"`
}

// VerifyCredentials asks the v1.1 account endpoint who the token belongs to.
// It shares the signed transport, so proxy and timeout settings apply.
func (c *Client) VerifyCredentials(ctx context.Context) (*Account, error) {
	const op = "GET /1.1/account/verify_credentials.json"

	if err := ctx.Err(); err != nil {
		return nil, &Error{Op: op, Wrapped: err}
	}

	user, resp, err := c.v1.Accounts.VerifyCredentials(&twitter.AccountVerifyParams{
		SkipStatus:   twitter.Bool(true),
		IncludeEmail: twitter.Bool(false),
	})
	if resp == nil {
		return nil, &Error{Op: op, Wrapped: err}
	}
	if resp.StatusCode != http.StatusOK {
		msg := fmt.Sprintf("%s: HTTP %d", op, resp.StatusCode)
		if err != nil {
			msg += ": " + err.Error()
		}
		return nil, &Error{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    msg,
			Ratelimit:  parseRatelimit(resp.Header),
			Wrapped:    err,
		}
	}
	if err != nil {
		return nil, &Error{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("%s: HTTP %d: decoding response: %v", op, resp.StatusCode, err),
			Wrapped:    err,
		}
	}

	return &Account{
		ID:             user.IDStr,
		ScreenName:     user.ScreenName,
		Name:           user.Name,
		FollowersCount: user.FollowersCount,
	}, nil
}
