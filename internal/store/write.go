package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/roach88/updseq/internal/canon"
	"github.com/roach88/updseq/internal/frame"
)

// WindowRecord is a recorded window token.
type WindowRecord struct {
	ID         string `json:"id"`
	Source     string `json:"source"`
	CreatedSeq int64  `json:"created_seq"`
}

// FrameRecord is one recorded frame and the groups it produced.
type FrameRecord struct {
	ID       string    `json:"id"`
	WindowID string    `json:"window_id"`
	Seq      int64     `json:"seq"`
	Doc      frame.Doc `json:"doc"`
	Groups   []string  `json:"groups"`
}

// WriteWindow inserts a window row.
// Uses ON CONFLICT(id) DO NOTHING for idempotency.
func (s *Store) WriteWindow(ctx context.Context, w WindowRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO windows (id, source, created_seq)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, w.ID, w.Source, w.CreatedSeq)
	if err != nil {
		return fmt.Errorf("write window: %w", err)
	}
	return nil
}

// WriteFrame stores doc under windowID at arrival seq, together with the
// descriptions of the groups it produced. It returns the frame's content ID.
//
// Writes are idempotent on (window_id, seq): a second write at the same seq
// is silently ignored. The window must already exist (foreign key).
func (s *Store) WriteFrame(ctx context.Context, windowID string, seq int64, doc frame.Doc, groups []string) (string, error) {
	id, body, err := canon.MarshalHash(canon.DomainFrame, doc)
	if err != nil {
		return "", fmt.Errorf("write frame: %w", err)
	}

	encodedGroups, err := json.Marshal(groups)
	if err != nil {
		return "", fmt.Errorf("write frame: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO frames (id, window_id, seq, body, groups)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(window_id, seq) DO NOTHING
	`, id, windowID, seq, string(body), string(encodedGroups))
	if err != nil {
		return "", fmt.Errorf("write frame: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		s.log.Debug().Str("window", windowID).Int64("seq", seq).Msg("frame already recorded")
	}
	return id, nil
}
