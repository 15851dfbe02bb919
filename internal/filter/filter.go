// Package filter applies the fixed rule chain that decides which timeline
// items are worth engaging with.
package filter

import (
	"strings"
	"unicode/utf8"

	"github.com/mikequentel/xengage/internal/timeline"
)

const (
	mediaOnlyMaxRunes = 20
	shortLinkToken    = "https://t.co/"
)

type Config struct {
	Language string // empty disables the language rule
	MinLikes int    // 0 disables the like threshold
}

type Rejection struct {
	Item   timeline.Item
	Reason Reason
}

// Skipped is the output form of a Rejection.
type Skipped struct {
	TweetID string `json:"tweet_id"`
	Reason  Reason `json:"reason"`
}

type Result struct {
	Accepted []timeline.Item
	Rejected []Rejection
}

func (r Result) Skipped() []Skipped {
	out := make([]Skipped, 0, len(r.Rejected))
	for _, rej := range r.Rejected {
		out = append(out, Skipped{TweetID: rej.Item.ID, Reason: rej.Reason})
	}
	return out
}

// Apply partitions items, keeping input order in both halves.
func Apply(items []timeline.Item, cfg Config) Result {
	res := Result{
		Accepted: make([]timeline.Item, 0, len(items)),
	}
	for _, it := range items {
		if reason, rejected := Check(it, cfg); rejected {
			res.Rejected = append(res.Rejected, Rejection{Item: it, Reason: reason})
		} else {
			res.Accepted = append(res.Accepted, it)
		}
	}
	return res
}

// Check runs the rules in order and returns the first that matches.
func Check(it timeline.Item, cfg Config) (Reason, bool) {
	switch {
	case it.IsRetweet():
		return Reason{Kind: Retweet}, true
	case it.IsReply():
		return Reason{Kind: Reply}, true
	case cfg.Language != "" && it.Lang != cfg.Language:
		return Reason{Kind: LanguageMismatch, Lang: it.Lang}, true
	case cfg.MinLikes > 0 && it.Metrics.Likes < cfg.MinLikes:
		return Reason{Kind: BelowLikeThreshold, Likes: it.Metrics.Likes, MinLikes: cfg.MinLikes}, true
	case isMediaOnly(it.Text):
		return Reason{Kind: MediaOnly}, true
	}
	return Reason{}, false
}

// isMediaOnly catches posts whose text is just an attachment link.
func isMediaOnly(text string) bool {
	t := strings.TrimSpace(text)
	if utf8.RuneCountInString(t) >= mediaOnlyMaxRunes {
		return false
	}
	return t == "" || strings.Contains(t, shortLinkToken)
}
