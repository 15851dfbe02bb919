package publish

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

var (
	ErrCommentsNotFound = errors.New("comments file not found")
	ErrMalformed        = errors.New("invalid comments file format")
	ErrNoTasks          = errors.New("no comments to publish")
)

// Task is one reply to publish, as written by the comment generator.
type Task struct {
	TweetID string `json:"tweet_id"`
	Comment string `json:"generated_comment"`
}

// Normalized returns the task with surrounding whitespace removed.
func (t Task) Normalized() Task {
	return Task{TweetID: strings.TrimSpace(t.TweetID), Comment: strings.TrimSpace(t.Comment)}
}

// Valid reports whether both fields are non-empty after trimming.
func (t Task) Valid() bool {
	n := t.Normalized()
	return n.TweetID != "" && n.Comment != ""
}

// looseString accepts a JSON string or number; null decodes to "".
// Generators sometimes emit tweet ids as numbers.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*s = ""
	case len(b) > 0 && b[0] == '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = looseString(v)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", b)
		}
		*s = looseString(n.String())
	}
	return nil
}

type rawTask struct {
	TweetID looseString `json:"tweet_id"`
	Comment looseString `json:"generated_comment"`
}

// LoadTasks reads a comments file. Both a bare JSON array and an object
// holding the array under "comments" are accepted.
func LoadTasks(path string) ([]Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCommentsNotFound, path)
		}
		return nil, fmt.Errorf("reading comments file: %w", err)
	}
	tasks, err := ParseTasks(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tasks, nil
}

func ParseTasks(data []byte) ([]Task, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrNoTasks
	}

	var raw []rawTask
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	case '{':
		var wrapper struct {
			Comments []rawTask `json:"comments"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		raw = wrapper.Comments
	default:
		return nil, fmt.Errorf("%w: expected an array or an object with a comments array", ErrMalformed)
	}

	if len(raw) == 0 {
		return nil, ErrNoTasks
	}
	tasks := make([]Task, 0, len(raw))
	for _, r := range raw {
		tasks = append(tasks, Task{TweetID: string(r.TweetID), Comment: string(r.Comment)})
	}
	return tasks, nil
}
