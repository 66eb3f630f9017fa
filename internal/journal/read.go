package journal

import (
	"context"
	"database/sql"
	"fmt"
)

// Pass summarizes one recorded drain pass.
type Pass struct {
	ID          int64  `json:"id"`
	StartedAt   string `json:"started_at"`
	CompletedAt string `json:"completed_at,omitempty"` // empty for abandoned passes
	Planned     int    `json:"planned"`
	Sent        int    `json:"sent"`
}

// Completed reports whether the pass reached its end-of-transmission.
func (p Pass) Completed() bool { return p.CompletedAt != "" }

// SentEvent is one journaled delivery.
type SentEvent struct {
	PassID   int64   `json:"pass_id"`
	Position int     `json:"position"`
	EventID  string  `json:"event_id"`
	Kind     string  `json:"kind"`
	Target   string  `json:"target,omitempty"`
	Start    float64 `json:"start"`
	Params   string  `json:"params"` // JSON array of [key, value] pairs
}

// Passes returns all recorded passes, oldest first.
func (j *Journal) Passes(ctx context.Context) ([]Pass, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, started_at, completed_at, planned, sent
		FROM passes ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("journal: list passes: %w", err)
	}
	defer rows.Close()

	var passes []Pass
	for rows.Next() {
		var p Pass
		var completedAt sql.NullString
		var sent sql.NullInt64
		if err := rows.Scan(&p.ID, &p.StartedAt, &completedAt, &p.Planned, &sent); err != nil {
			return nil, fmt.Errorf("journal: scan pass: %w", err)
		}
		p.CompletedAt = completedAt.String
		p.Sent = int(sent.Int64)
		passes = append(passes, p)
	}
	return passes, rows.Err()
}

// Events returns the deliveries of one pass in send order.
func (j *Journal) Events(ctx context.Context, passID int64) ([]SentEvent, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT pass_id, position, event_id, kind, target, start_time, params
		FROM sent_events WHERE pass_id = ? ORDER BY position ASC
	`, passID)
	if err != nil {
		return nil, fmt.Errorf("journal: list events: %w", err)
	}
	defer rows.Close()

	var events []SentEvent
	for rows.Next() {
		var e SentEvent
		if err := rows.Scan(&e.PassID, &e.Position, &e.EventID, &e.Kind, &e.Target, &e.Start, &e.Params); err != nil {
			return nil, fmt.Errorf("journal: scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
