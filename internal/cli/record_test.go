package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/updseq/internal/frame"
	"github.com/roach88/updseq/internal/store"
)

func TestRecordCommand(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	path := writeTestFile(t, dir, "frames.yaml", testFrames)
	db := filepath.Join(dir, "updseq.db")

	out, _, err := execute(t, "record", path, "--db", db, "--window", "w1", "--format", "json")
	require.NoError(t, err)

	r := decodeResponse[RecordResult](t, out)
	assert.Equal(t, "w1", r.Data.Window)
	assert.Equal(t, 2, r.Data.Frames)
	assert.Equal(t, 3, r.Data.Groups)

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()

	frames, err := st.ReadFrames(context.Background(), "w1")
	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.Equal(t, int64(1), frames[0].Seq)
	assert.Equal(t, []string{
		"primary(readHistoryInbox(peer: 12, maxId: 7, pts: 100, ptsCount: 1), deleteMessages(ids: [3, 4], pts: 102, ptsCount: 2))",
		"timestamp(date 1000)",
	}, frames[0].Groups)
	assert.Len(t, frames[1].Groups, 1)
}

func TestRecordCommand_RequiresDatabase(t *testing.T) {
	isolateEnv(t)
	path := writeTestFile(t, t.TempDir(), "frames.yaml", testFrames)

	_, _, err := execute(t, "record", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "--db is required")
}

func TestRecordCommand_DatabaseFromEnv(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	path := writeTestFile(t, dir, "frames.yaml", testFrames)
	db := filepath.Join(dir, "env.db")
	t.Setenv("UPDSEQ_DB", db)

	out, _, err := execute(t, "record", path, "--window", "w1")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ recorded 2 frames (3 groups) under window w1")
	assert.True(t, FileExists(db))
}

func TestRecordReplay_RoundTrip(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	db := filepath.Join(dir, "updseq.db")
	first := writeTestFile(t, dir, "frames.yaml", testFrames)
	second := writeTestFile(t, dir, "gap.yaml", gapFrames)

	_, _, err := execute(t, "record", first, "--db", db, "--window", "w1")
	require.NoError(t, err)
	_, _, err = execute(t, "record", second, "--db", db, "--window", "w2")
	require.NoError(t, err)

	out, _, err := execute(t, "replay", "--db", db, "--format", "json")
	require.NoError(t, err)

	r := decodeResponse[ReplayResult](t, out)
	assert.Equal(t, "ok", r.Status)
	assert.True(t, r.Data.AllMatch)
	assert.Equal(t, 2, r.Data.Total)
	require.Len(t, r.Data.Windows, 2)
	assert.Equal(t, "w1", r.Data.Windows[0].Window)
	assert.Equal(t, 3, r.Data.Windows[0].Groups)
	assert.True(t, r.Data.Windows[0].Deterministic)
	assert.True(t, r.Data.Windows[0].MatchesRecord)
	assert.Equal(t, "w2", r.Data.Windows[1].Window)
}

func TestReplayCommand_SingleWindow(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	db := filepath.Join(dir, "updseq.db")
	path := writeTestFile(t, dir, "frames.yaml", testFrames)

	_, _, err := execute(t, "record", path, "--db", db, "--window", "w1")
	require.NoError(t, err)

	out, _, err := execute(t, "replay", "--db", db, "--window", "w1")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ w1: 2 frames, 3 groups")
	assert.Contains(t, out, "1 window(s) replayed")

	_, _, err = execute(t, "replay", "--db", db, "--window", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "window not found")
}

func TestReplayCommand_MissingDatabase(t *testing.T) {
	isolateEnv(t)

	out, _, err := execute(t, "replay", "--db", filepath.Join(t.TempDir(), "nope.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]")
}

func TestReplayCommand_DetectsDivergence(t *testing.T) {
	isolateEnv(t)
	db := filepath.Join(t.TempDir(), "updseq.db")
	ctx := context.Background()

	st, err := store.Open(db)
	require.NoError(t, err)
	require.NoError(t, st.WriteWindow(ctx, store.WindowRecord{ID: "tampered", CreatedSeq: 1}))
	_, err = st.WriteFrame(ctx, "tampered", 1, frame.Doc{Date: 5}, []string{"timestamp(date 6)"})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, _, err := execute(t, "replay", "--db", db, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	r := decodeResponse[ReplayResult](t, out)
	require.NotNil(t, r.Error)
	assert.Equal(t, ErrCodeDiverged, r.Error.Code)
	assert.False(t, r.Data.AllMatch)
	require.Len(t, r.Data.Windows, 1)
	assert.True(t, r.Data.Windows[0].Deterministic)
	assert.False(t, r.Data.Windows[0].MatchesRecord)
	require.Len(t, r.Data.Windows[0].Mismatches, 1)
	assert.Contains(t, r.Data.Windows[0].Mismatches[0], "timestamp(date 5)")
}

func TestRecordReplay_DecomposedText(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	db := filepath.Join(dir, "updseq.db")
	nfd := "frames:\n  - date: 1000\n    records:\n      - {kind: new_message, pts: 101, pts_count: 1, message: {id: 7, peer_id: 12, text: \"cafe\u0301\"}}\n"
	path := writeTestFile(t, dir, "nfd.yaml", nfd)

	_, _, err := execute(t, "record", path, "--db", db, "--window", "w1")
	require.NoError(t, err)

	st, err := store.Open(db)
	require.NoError(t, err)
	frames, err := st.ReadFrames(context.Background(), "w1")
	require.NoError(t, err)
	require.NoError(t, st.Close())
	require.Len(t, frames, 1)
	assert.Equal(t, "caf\u00e9", frames[0].Doc.Records[0].Message.Text)
	assert.Contains(t, frames[0].Groups[0], "caf\u00e9")

	out, _, err := execute(t, "replay", "--db", db)
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ w1: 1 frames, 2 groups (deterministic=true, matches_record=true)")
}

func TestRecordCommand_ResumesExistingWindow(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	db := filepath.Join(dir, "updseq.db")
	first := writeTestFile(t, dir, "frames.yaml", testFrames)
	second := writeTestFile(t, dir, "gap.yaml", gapFrames)

	out, _, err := execute(t, "record", first, "--db", db, "--window", "w1", "--format", "json")
	require.NoError(t, err)
	r := decodeResponse[RecordResult](t, out)
	assert.False(t, r.Data.Resumed)
	assert.Equal(t, int64(1), r.Data.FirstSeq)
	assert.Equal(t, int64(2), r.Data.LastSeq)

	out, _, err = execute(t, "record", second, "--db", db, "--window", "w1", "--format", "json")
	require.NoError(t, err)
	r = decodeResponse[RecordResult](t, out)
	assert.True(t, r.Data.Resumed)
	assert.Equal(t, int64(3), r.Data.FirstSeq)
	assert.Equal(t, int64(3), r.Data.LastSeq)

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	windows, err := st.ListWindows(context.Background())
	require.NoError(t, err)
	assert.Len(t, windows, 1)
	frames, err := st.ReadFrames(context.Background(), "w1")
	require.NoError(t, err)
	assert.Len(t, frames, 3)

	out, _, err = execute(t, "replay", "--db", db, "--window", "w1")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ w1: 3 frames, 5 groups")
}
