package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/updseq/internal/frame"
)

// createTestStore creates a new store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestWindow records a window row.
func createTestWindow(t *testing.T, s *Store, id string, seq int64) {
	t.Helper()
	if err := s.WriteWindow(context.Background(), WindowRecord{ID: id, Source: "frames.yaml", CreatedSeq: seq}); err != nil {
		t.Fatalf("WriteWindow() failed: %v", err)
	}
}

// messageDoc builds a frame with a single new_message record.
func messageDoc(pts int32) frame.Doc {
	return frame.Doc{
		Date: 1000,
		Records: []frame.RecordDoc{{
			Kind:     "new_message",
			Pts:      pts,
			PtsCount: 1,
			Message:  &frame.MessageDoc{ID: 7, PeerID: 12, FromID: 3, Date: 990, Text: "hi"},
		}},
		Users: []frame.UserDoc{{ID: 3, FirstName: "Ada"}},
	}
}
