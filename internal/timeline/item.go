// Package timeline fetches the reverse-chronological home timeline and turns
// the wire records into Items with their authors already joined.
package timeline

// Reference types as reported in referenced_tweets.
const (
	RefRetweeted = "retweeted"
	RefRepliedTo = "replied_to"
	RefQuoted    = "quoted"
)

type Reference struct {
	Type string
	ID   string
}

type Metrics struct {
	Likes    int
	Retweets int
	Replies  int
	Quotes   int
}

// AuthorSummary is the zero value when the response did not include the
// author.
type AuthorSummary struct {
	Username       string
	Name           string
	FollowersCount int
}

// Item is one timeline post. Treat it as immutable once Fetch returns it.
type Item struct {
	ID         string
	Text       string
	AuthorID   string
	Lang       string
	Metrics    Metrics
	CreatedAt  string
	References []Reference
	Author     AuthorSummary
}

func (it Item) hasReference(typ string) bool {
	for _, r := range it.References {
		if r.Type == typ {
			return true
		}
	}
	return false
}

func (it Item) IsRetweet() bool { return it.hasReference(RefRetweeted) }
func (it Item) IsReply() bool   { return it.hasReference(RefRepliedTo) }

// IsQuote is informational; no filter rule looks at it.
func (it Item) IsQuote() bool { return it.hasReference(RefQuoted) }
