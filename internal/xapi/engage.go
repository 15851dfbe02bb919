package xapi

import (
	"context"
	"net/url"

	"github.com/mikequentel/xengage/internal/model"
)

// Like marks tweetID as liked by userID.
func (c *Client) Like(ctx context.Context, userID, tweetID string) error {
	var resp model.LikeResp
	return c.PostJSON(ctx, "users/"+url.PathEscape(userID)+"/likes", model.LikeReq{TweetID: tweetID}, &resp)
}

// Reply posts text as a reply to tweetID and returns the id of the new tweet.
func (c *Client) Reply(ctx context.Context, tweetID, text string) (string, error) {
	var resp model.TweetResp
	req := model.TweetReq{
		Text:  text,
		Reply: &model.TweetReply{InReplyToTweetID: tweetID},
	}
	if err := c.PostJSON(ctx, "tweets", req, &resp); err != nil {
		return "", err
	}
	return resp.Data.ID, nil
}
