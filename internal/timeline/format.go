package timeline

// Formatted is the record handed to the comment generator.
type Formatted struct {
	TweetID         string `json:"tweet_id"`
	Text            string `json:"text"`
	AuthorID        string `json:"author_id"`
	AuthorUsername  string `json:"author_username"`
	AuthorName      string `json:"author_name"`
	AuthorFollowers int    `json:"author_followers"`
	Lang            string `json:"lang"`
	Likes           int    `json:"likes"`
	Retweets        int    `json:"retweets"`
	Replies         int    `json:"replies"`
	CreatedAt       string `json:"created_at"`
	IsQuote         bool   `json:"is_quote"`
}

func Format(it Item) Formatted {
	return Formatted{
		TweetID:         it.ID,
		Text:            it.Text,
		AuthorID:        it.AuthorID,
		AuthorUsername:  it.Author.Username,
		AuthorName:      it.Author.Name,
		AuthorFollowers: it.Author.FollowersCount,
		Lang:            it.Lang,
		Likes:           it.Metrics.Likes,
		Retweets:        it.Metrics.Retweets,
		Replies:         it.Metrics.Replies,
		CreatedAt:       it.CreatedAt,
		IsQuote:         it.IsQuote(),
	}
}

func FormatAll(items []Item) []Formatted {
	out := make([]Formatted, 0, len(items))
	for _, it := range items {
		out = append(out, Format(it))
	}
	return out
}
