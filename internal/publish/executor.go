// Package publish likes and replies to a batch of tweets, one at a time, with
// a randomized pause between writes.
package publish

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Engager is the write side of the signed API client.
type Engager interface {
	Like(ctx context.Context, userID, tweetID string) error
	Reply(ctx context.Context, tweetID, text string) (string, error)
}

type Config struct {
	BatchCap        int
	MinDelay        time.Duration
	MaxDelay        time.Duration
	LikeBeforeReply bool
}

func DefaultConfig() Config {
	return Config{
		BatchCap:        10,
		MinDelay:        30 * time.Second,
		MaxDelay:        120 * time.Second,
		LikeBeforeReply: true,
	}
}

func (c Config) Validate() error {
	if c.BatchCap < 1 {
		return fmt.Errorf("batch cap must be at least 1, got %d", c.BatchCap)
	}
	if c.MinDelay < 0 || c.MaxDelay < 0 {
		return errors.New("delays must not be negative")
	}
	if c.MinDelay > c.MaxDelay {
		return fmt.Errorf("min delay %s exceeds max delay %s", c.MinDelay, c.MaxDelay)
	}
	return nil
}

type Executor struct {
	Client Engager
	UserID string
	Log    *logrus.Logger

	// Delay, Sleep and Now default to UniformDelay, SleepContext and
	// time.Now.
	Delay DelayFunc
	Sleep SleepFunc
	Now   func() time.Time
}

// Plan is a batch after the cap has been applied.
type Plan struct {
	Tasks   []Task
	Dropped int
}

// Plan truncates tasks to the batch cap. Nothing is sent.
func (e *Executor) Plan(tasks []Task, cfg Config) (Plan, error) {
	if err := cfg.Validate(); err != nil {
		return Plan{}, err
	}
	p := Plan{Tasks: tasks}
	if len(tasks) > cfg.BatchCap {
		p.Tasks = tasks[:cfg.BatchCap]
		p.Dropped = len(tasks) - cfg.BatchCap
		e.logger().Warnf("trimming batch from %d to %d (max per batch)", len(tasks), cfg.BatchCap)
	}
	if len(p.Tasks) == 0 {
		return Plan{}, ErrNoTasks
	}
	return p, nil
}

// Publish runs the batch sequentially. Per-task failures are recorded in the
// report and never stop the loop. An error is returned only when there is
// nothing to publish or the pause between tasks is interrupted; in the latter
// case the report covers the tasks processed so far.
func (e *Executor) Publish(ctx context.Context, tasks []Task, cfg Config) (*Report, error) {
	plan, err := e.Plan(tasks, cfg)
	if err != nil {
		return nil, err
	}

	log := e.logger()
	delay := e.Delay
	if delay == nil {
		delay = UniformDelay
	}
	sleep := e.Sleep
	if sleep == nil {
		sleep = SleepContext
	}

	results := make([]Outcome, 0, len(plan.Tasks))
	for i, task := range plan.Tasks {
		out := e.run(ctx, task.Normalized(), cfg)
		results = append(results, out)

		if out.Status == StatusSkipped || i == len(plan.Tasks)-1 {
			continue
		}
		d := delay(cfg.MinDelay, cfg.MaxDelay)
		log.Infof("waiting %.1fs before next post", d.Seconds())
		if err := sleep(ctx, d); err != nil {
			return newReport(e.now(), results), fmt.Errorf("interrupted after %d of %d tasks: %w", i+1, len(plan.Tasks), err)
		}
	}

	return newReport(e.now(), results), nil
}

func (e *Executor) run(ctx context.Context, task Task, cfg Config) Outcome {
	log := e.logger().WithField("tweet_id", task.TweetID)

	if task.TweetID == "" || task.Comment == "" {
		log.Warn("skipping task: " + skippedReason)
		return Outcome{TweetID: task.TweetID, Comment: task.Comment, Status: StatusSkipped, Reason: skippedReason}
	}

	out := Outcome{TweetID: task.TweetID, Comment: task.Comment}

	if cfg.LikeBeforeReply {
		out.Like = &LikeResult{Success: true}
		if err := e.Client.Like(ctx, e.UserID, task.TweetID); err != nil {
			out.Like = &LikeResult{Error: err.Error()}
			log.WithError(err).Warn("failed to like tweet")
		}
	}

	replyID, err := e.Client.Reply(ctx, task.TweetID, task.Comment)
	if err != nil {
		out.Reply = &ReplyResult{Error: err.Error()}
		out.Status = StatusFailed
		out.Error = err.Error()
		log.WithError(err).Error("failed to reply to tweet")
		return out
	}

	out.Reply = &ReplyResult{Success: true, ReplyID: replyID}
	out.Status = StatusPublished
	out.ReplyID = replyID
	log.WithField("reply_id", replyID).Info("reply published")
	return out
}

func (e *Executor) logger() *logrus.Logger {
	if e.Log == nil {
		return logrus.StandardLogger()
	}
	return e.Log
}

func (e *Executor) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}
