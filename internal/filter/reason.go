package filter

import (
	"fmt"
	"strings"
)

type Kind int

const (
	Retweet Kind = iota + 1
	Reply
	LanguageMismatch
	BelowLikeThreshold
	MediaOnly
)

// Reason explains why an item was rejected. Lang is set for
// LanguageMismatch; Likes and MinLikes for BelowLikeThreshold.
type Reason struct {
	Kind     Kind
	Lang     string
	Likes    int
	MinLikes int
}

func (r Reason) String() string {
	switch r.Kind {
	case Retweet:
		return "retweet"
	case Reply:
		return "reply"
	case LanguageMismatch:
		lang := r.Lang
		if lang == "" {
			lang = "unknown"
		}
		return "language:" + lang
	case BelowLikeThreshold:
		return fmt.Sprintf("min_likes:%d<%d", r.Likes, r.MinLikes)
	case MediaOnly:
		return "media_only"
	default:
		return fmt.Sprintf("unknown(%d)", int(r.Kind))
	}
}

func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText parses the form produced by String.
func (r *Reason) UnmarshalText(b []byte) error {
	s := string(b)
	switch {
	case s == "retweet":
		*r = Reason{Kind: Retweet}
	case s == "reply":
		*r = Reason{Kind: Reply}
	case s == "media_only":
		*r = Reason{Kind: MediaOnly}
	case strings.HasPrefix(s, "language:"):
		lang := strings.TrimPrefix(s, "language:")
		if lang == "unknown" {
			lang = ""
		}
		*r = Reason{Kind: LanguageMismatch, Lang: lang}
	case strings.HasPrefix(s, "min_likes:"):
		var likes, minLikes int
		if _, err := fmt.Sscanf(strings.TrimPrefix(s, "min_likes:"), "%d<%d", &likes, &minLikes); err != nil {
			return fmt.Errorf("invalid skip reason %q: %w", s, err)
		}
		*r = Reason{Kind: BelowLikeThreshold, Likes: likes, MinLikes: minLikes}
	default:
		return fmt.Errorf("invalid skip reason %q", s)
	}
	return nil
}
