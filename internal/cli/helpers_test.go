package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// testFrames yields a primary batch (100/1, 102/2), a timestamp batch and a
// session batch at seq 50.
const testFrames = `frames:
  - date: 1000
    records:
      - {kind: read_history_inbox, pts: 100, pts_count: 1, peer_id: 12, max_id: 7}
      - {kind: delete_messages, pts: 102, pts_count: 2, message_ids: [3, 4]}
  - date: 1001
    seq: [50, 50]
    records:
      - {kind: chat_user_typing, chat_id: 12, user_id: 3, action: typing}
`

// gapFrames jumps the primary counter from 100 to 105.
const gapFrames = `frames:
  - date: 1000
    records:
      - {kind: read_history_inbox, pts: 100, pts_count: 1, peer_id: 12, max_id: 7}
      - {kind: delete_messages, pts: 105, pts_count: 2, message_ids: [3, 4]}
`

const invalidFrames = "frames:\n  - date: 1\n    records:\n      - kind: new_message\n        message: {id: 1, peer_id: 2}\n"

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// isolateEnv points HOME at a temp dir and clears UPDSEQ_* variables.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"UPDSEQ_FORMAT", "UPDSEQ_LOG_LEVEL", "UPDSEQ_DB", "UPDSEQ_VERBOSE"} {
		t.Setenv(k, "")
	}
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// response is a CLIResponse with a typed payload.
type response[T any] struct {
	Status string    `json:"status"`
	Data   T         `json:"data"`
	Error  *CLIError `json:"error"`
}

func decodeResponse[T any](t *testing.T, out string) response[T] {
	t.Helper()
	var r response[T]
	require.NoError(t, json.Unmarshal([]byte(out), &r), "output: %s", out)
	return r
}
