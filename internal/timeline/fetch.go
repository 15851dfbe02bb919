package timeline

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/mikequentel/xengage/internal/model"
)

// MaxResults is the per-call cap of the timeline endpoint.
const MaxResults = 100

const (
	tweetFields = "id,text,author_id,lang,public_metrics,created_at,referenced_tweets"
	userFields  = "id,username,name,public_metrics"
	expansions  = "author_id"
)

var ErrInvalidCount = errors.New("count must be at least 1")

// Getter is the read side of the signed API client.
type Getter interface {
	GetJSON(ctx context.Context, path string, query any, out any) error
}

type Fetcher struct {
	Client Getter
	Log    *logrus.Logger
}

type timelineQuery struct {
	MaxResults  int    `url:"max_results"`
	TweetFields string `url:"tweet.fields"`
	UserFields  string `url:"user.fields"`
	Expansions  string `url:"expansions"`
}

// ClampCount reduces n to the endpoint maximum.
func ClampCount(n int) int {
	return min(n, MaxResults)
}

// Fetch issues one request for userID's home timeline and returns at most
// maxCount items in the order the platform sent them.
func (f *Fetcher) Fetch(ctx context.Context, userID string, maxCount int) ([]Item, error) {
	if maxCount < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidCount, maxCount)
	}

	q := timelineQuery{
		MaxResults:  ClampCount(maxCount),
		TweetFields: tweetFields,
		UserFields:  userFields,
		Expansions:  expansions,
	}
	var resp model.TimelineResp
	path := "users/" + url.PathEscape(userID) + "/timelines/reverse_chronological"
	if err := f.Client.GetJSON(ctx, path, q, &resp); err != nil {
		return nil, err
	}

	if f.Log != nil {
		for _, p := range resp.Errors {
			f.Log.WithFields(logrus.Fields{"title": p.Title, "detail": p.Detail}).Debug("partial error in timeline response")
		}
		f.Log.Debugf("fetched %d items (requested %d)", len(resp.Data), q.MaxResults)
	}

	return itemsFromResponse(&resp), nil
}

func itemsFromResponse(resp *model.TimelineResp) []Item {
	authors := make(map[string]AuthorSummary, len(resp.Includes.Users))
	for _, u := range resp.Includes.Users {
		authors[u.ID] = AuthorSummary{
			Username:       u.Username,
			Name:           u.Name,
			FollowersCount: u.PublicMetrics.FollowersCount,
		}
	}

	items := make([]Item, 0, len(resp.Data))
	for _, t := range resp.Data {
		var refs []Reference
		for _, r := range t.ReferencedTweets {
			refs = append(refs, Reference{Type: r.Type, ID: r.ID})
		}
		items = append(items, Item{
			ID:       t.ID,
			Text:     decodeText(t.Text),
			AuthorID: t.AuthorID,
			Lang:     t.Lang,
			Metrics: Metrics{
				Likes:    t.PublicMetrics.LikeCount,
				Retweets: t.PublicMetrics.RetweetCount,
				Replies:  t.PublicMetrics.ReplyCount,
				Quotes:   t.PublicMetrics.QuoteCount,
			},
			CreatedAt:  t.CreatedAt,
			References: refs,
			Author:     authors[t.AuthorID],
		})
	}
	return items
}

// decodeText undoes the entity escaping the API applies to &, < and >. The
// HTML tokenizer rewrites carriage returns and drops leading whitespace, so
// each \r-separated piece is decoded on its own with its surrounding
// whitespace passed through untouched.
func decodeText(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	parts := strings.Split(s, "\r")
	for i, p := range parts {
		parts[i] = decodeFragment(p)
	}
	return strings.Join(parts, "\r")
}

func decodeFragment(s string) string {
	inner := strings.TrimSpace(s)
	if !strings.Contains(inner, "&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(inner))
	if err != nil {
		return s
	}
	lead := len(s) - len(strings.TrimLeftFunc(s, unicode.IsSpace))
	return s[:lead] + doc.Text() + s[lead+len(inner):]
}
