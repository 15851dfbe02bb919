package timeline

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItem() Item {
	return Item{
		ID:        "99",
		Text:      "Small tools compose better than big ones.",
		AuthorID:  "u9",
		Lang:      "en",
		Metrics:   Metrics{Likes: 40, Retweets: 4, Replies: 2, Quotes: 1},
		CreatedAt: "2026-10-18T10:00:00.000Z",
		References: []Reference{
			{Type: RefQuoted, ID: "98"},
		},
		Author: AuthorSummary{Username: "unixfan", Name: "Unix Fan", FollowersCount: 1200},
	}
}

func TestFormat(t *testing.T) {
	got := Format(sampleItem())
	assert.Equal(t, Formatted{
		TweetID:         "99",
		Text:            "Small tools compose better than big ones.",
		AuthorID:        "u9",
		AuthorUsername:  "unixfan",
		AuthorName:      "Unix Fan",
		AuthorFollowers: 1200,
		Lang:            "en",
		Likes:           40,
		Retweets:        4,
		Replies:         2,
		CreatedAt:       "2026-10-18T10:00:00.000Z",
		IsQuote:         true,
	}, got)
}

func TestFormat_Idempotent(t *testing.T) {
	it := sampleItem()
	a, err := json.Marshal(Format(it))
	require.NoError(t, err)
	b, err := json.Marshal(Format(it))
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestFormat_JSONKeys(t *testing.T) {
	b, err := json.Marshal(Format(Item{ID: "1"}))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	for _, k := range []string{
		"tweet_id", "text", "author_id", "author_username", "author_name", "author_followers",
		"lang", "likes", "retweets", "replies", "created_at", "is_quote",
	} {
		assert.Contains(t, m, k)
	}
}

func TestClassification(t *testing.T) {
	it := Item{References: []Reference{{Type: RefRepliedTo, ID: "1"}, {Type: RefQuoted, ID: "2"}}}
	assert.True(t, it.IsReply())
	assert.True(t, it.IsQuote())
	assert.False(t, it.IsRetweet())
	assert.Empty(t, FormatAll(nil))
}
