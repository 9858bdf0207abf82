package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/roach88/updseq/internal/canon"
)

// ListWindows returns every recorded window ordered by creation seq.
//
// Returns an empty slice (not nil) if nothing was recorded.
func (s *Store) ListWindows(ctx context.Context) ([]WindowRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, created_seq
		FROM windows
		ORDER BY created_seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query windows: %w", err)
	}
	defer rows.Close()

	windows := []WindowRecord{}
	for rows.Next() {
		var w WindowRecord
		if err := rows.Scan(&w.ID, &w.Source, &w.CreatedSeq); err != nil {
			return nil, fmt.Errorf("scan window: %w", err)
		}
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate windows: %w", err)
	}
	return windows, nil
}

// ReadFrames returns the frames recorded under windowID.
// Results are ordered deterministically: ORDER BY seq ASC, id ASC COLLATE BINARY.
//
// Each body is checked against its content ID; a mismatch is an error.
// Returns an empty slice (not nil) if no frames exist for the window.
func (s *Store) ReadFrames(ctx context.Context, windowID string) ([]FrameRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, window_id, seq, body, groups
		FROM frames
		WHERE window_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, windowID)
	if err != nil {
		return nil, fmt.Errorf("query frames: %w", err)
	}
	defer rows.Close()

	frames := []FrameRecord{}
	for rows.Next() {
		var (
			fr     FrameRecord
			body   string
			groups string
		)
		if err := rows.Scan(&fr.ID, &fr.WindowID, &fr.Seq, &body, &groups); err != nil {
			return nil, fmt.Errorf("scan frame: %w", err)
		}
		if got := canon.Hash(canon.DomainFrame, []byte(body)); got != fr.ID {
			return nil, fmt.Errorf("frame %d of window %s: body hash %s does not match id %s", fr.Seq, windowID, got, fr.ID)
		}
		if err := json.Unmarshal([]byte(body), &fr.Doc); err != nil {
			return nil, fmt.Errorf("unmarshal frame %d: %w", fr.Seq, err)
		}
		if err := json.Unmarshal([]byte(groups), &fr.Groups); err != nil {
			return nil, fmt.Errorf("unmarshal groups of frame %d: %w", fr.Seq, err)
		}
		if len(fr.Groups) == 0 {
			fr.Groups = nil
		}
		frames = append(frames, fr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate frames: %w", err)
	}
	return frames, nil
}

// LastSeq returns the highest arrival seq recorded under windowID, or 0 when
// the window has no frames.
func (s *Store) LastSeq(ctx context.Context, windowID string) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0)
		FROM frames
		WHERE window_id = ?
	`, windowID).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("query last seq: %w", err)
	}
	return seq, nil
}
