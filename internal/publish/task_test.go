package publish

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const commentsArray = `[
  {"tweet_id": "1850000000000000001", "generated_comment": "This is a great breakdown."},
  {"tweet_id": 1850000000000000002, "generated_comment": "Thanks for sharing!"},
  {"tweet_id": "1850000000000000003", "generated_comment": ""}
]`

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "comments.json")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadTasks_ArrayAndWrapperMatch(t *testing.T) {
	fromArray, err := LoadTasks(writeFile(t, commentsArray))
	require.NoError(t, err)
	fromWrapper, err := LoadTasks(writeFile(t, `{"comments": `+commentsArray+`, "model": "whatever"}`))
	require.NoError(t, err)

	assert.Equal(t, fromArray, fromWrapper)
	assert.Equal(t, []Task{
		{TweetID: "1850000000000000001", Comment: "This is a great breakdown."},
		{TweetID: "1850000000000000002", Comment: "Thanks for sharing!"},
		{TweetID: "1850000000000000003", Comment: ""},
	}, fromArray)
}

func TestLoadTasks_NotFound(t *testing.T) {
	_, err := LoadTasks(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, ErrCommentsNotFound)
}

func TestParseTasks_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"empty file", "  \n", ErrNoTasks},
		{"empty array", "[]", ErrNoTasks},
		{"wrapper without comments", `{"other": []}`, ErrNoTasks},
		{"wrapper with empty comments", `{"comments": []}`, ErrNoTasks},
		{"scalar", `"hello"`, ErrMalformed},
		{"truncated", `[{"tweet_id": "1"`, ErrMalformed},
		{"non-object items", `[1, 2]`, ErrMalformed},
		{"boolean id", `[{"tweet_id": true, "generated_comment": "x"}]`, ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTasks([]byte(tt.body))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseTasks_NullFields(t *testing.T) {
	tasks, err := ParseTasks([]byte(`[{"tweet_id": null, "generated_comment": "hi"}, {}]`))
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.False(t, tasks[0].Valid())
	assert.False(t, tasks[1].Valid())
}

func TestTask_Valid(t *testing.T) {
	assert.True(t, Task{TweetID: "1", Comment: "ok"}.Valid())
	assert.False(t, Task{TweetID: " ", Comment: "ok"}.Valid())
	assert.False(t, Task{TweetID: "1", Comment: "\t\n"}.Valid())
	assert.Equal(t, Task{TweetID: "1", Comment: "ok"}, Task{TweetID: " 1 ", Comment: " ok "}.Normalized())
}
