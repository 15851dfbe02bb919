package publish

import "time"

type Status string

const (
	StatusPublished Status = "published"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

const skippedReason = "missing tweet_id or comment text"

type LikeResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type ReplyResult struct {
	Success bool   `json:"success"`
	ReplyID string `json:"reply_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Outcome is the record of one task. Like is nil when liking is disabled
// or the task was skipped; Reply is nil only for skipped tasks.
type Outcome struct {
	TweetID string       `json:"tweet_id"`
	Comment string       `json:"comment,omitempty"`
	Like    *LikeResult  `json:"like_result,omitempty"`
	Reply   *ReplyResult `json:"reply_result,omitempty"`
	Status  Status       `json:"status"`
	ReplyID string       `json:"reply_id,omitempty"`
	Error   string       `json:"error,omitempty"`
	Reason  string       `json:"reason,omitempty"`
}

// Report is the terminal artifact of a publish run.
type Report struct {
	Timestamp    string    `json:"timestamp"`
	Total        int       `json:"total"`
	SuccessCount int       `json:"success_count"`
	FailureCount int       `json:"failure_count"`
	Results      []Outcome `json:"results"`
}

func newReport(now time.Time, results []Outcome) *Report {
	r := &Report{
		Timestamp: now.UTC().Format(time.RFC3339),
		Total:     len(results),
		Results:   results,
	}
	for _, o := range results {
		if o.Status == StatusPublished {
			r.SuccessCount++
		} else {
			r.FailureCount++
		}
	}
	return r
}
