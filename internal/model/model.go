package model

// --- v2 reverse-chronological home timeline ---

type TimelineResp struct {
	Data     []Tweet `json:"data"`
	Includes struct {
		Users []User `json:"users"`
	} `json:"includes"`
	Meta struct {
		ResultCount int    `json:"result_count"`
		NextToken   string `json:"next_token,omitempty"`
	} `json:"meta"`
	Errors []Problem `json:"errors,omitempty"` // partial errors, e.g. deleted authors
}

type Tweet struct {
	ID               string            `json:"id"`
	Text             string            `json:"text"`
	AuthorID         string            `json:"author_id"`
	Lang             string            `json:"lang"`
	CreatedAt        string            `json:"created_at"`
	PublicMetrics    TweetMetrics      `json:"public_metrics"`
	ReferencedTweets []ReferencedTweet `json:"referenced_tweets,omitempty"`
}

type TweetMetrics struct {
	LikeCount    int `json:"like_count"`
	RetweetCount int `json:"retweet_count"`
	ReplyCount   int `json:"reply_count"`
	QuoteCount   int `json:"quote_count"`
}

type ReferencedTweet struct {
	Type string `json:"type"` // retweeted | replied_to | quoted
	ID   string `json:"id"`
}

type User struct {
	ID            string      `json:"id"`
	Username      string      `json:"username"`
	Name          string      `json:"name"`
	PublicMetrics UserMetrics `json:"public_metrics"`
}

type UserMetrics struct {
	FollowersCount int `json:"followers_count"`
	FollowingCount int `json:"following_count"`
	TweetCount     int `json:"tweet_count"`
}

// --- v2 create tweet (used for replies) ---

type TweetReq struct {
	Text  string      `json:"text"`
	Reply *TweetReply `json:"reply,omitempty"`
}
type TweetReply struct {
	InReplyToTweetID string `json:"in_reply_to_tweet_id"`
}
type TweetResp struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

// --- v2 like ---

type LikeReq struct {
	TweetID string `json:"tweet_id"`
}
type LikeResp struct {
	Data struct {
		Liked bool `json:"liked"`
	} `json:"data"`
}

// Problem is a v2 error document. Top-level problems carry title/detail/type;
// partial errors inside a 200 response carry message/resource fields.
type Problem struct {
	Title   string `json:"title,omitempty"`
	Detail  string `json:"detail,omitempty"`
	Type    string `json:"type,omitempty"`
	Status  int    `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}
