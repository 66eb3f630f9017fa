package journal

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/roach88/cadenza/internal/event"
)

// BeginPass opens a pass record and returns its ID.
// planned is the snapshot size the pass intends to deliver.
func (j *Journal) BeginPass(ctx context.Context, planned int) (int64, error) {
	res, err := j.db.ExecContext(ctx,
		`INSERT INTO passes (planned) VALUES (?)`, planned)
	if err != nil {
		return 0, fmt.Errorf("journal: begin pass: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("journal: begin pass: %w", err)
	}
	return id, nil
}

// RecordSent appends one delivered event to a pass.
// position is the event's index within the pass snapshot.
//
// Parameters are serialized as a JSON array of [key, value] pairs so the
// wire order survives round-tripping through the journal.
func (j *Journal) RecordSent(ctx context.Context, passID int64, position int, ev event.Event) error {
	params, err := marshalParams(ev.Params)
	if err != nil {
		return fmt.Errorf("journal: record sent: %w", err)
	}
	_, err = j.db.ExecContext(ctx, `
		INSERT INTO sent_events (pass_id, position, event_id, kind, target, start_time, params)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(pass_id, position) DO NOTHING
	`, passID, position, ev.ID, ev.Kind.String(), ev.Target, ev.Start, params)
	if err != nil {
		return fmt.Errorf("journal: record sent: %w", err)
	}
	return nil
}

// CompletePass marks a pass as normally completed with its final sent count.
// Abandoned passes are never completed; their completed_at stays NULL.
func (j *Journal) CompletePass(ctx context.Context, passID int64, sent int) error {
	_, err := j.db.ExecContext(ctx, `
		UPDATE passes
		SET completed_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now'), sent = ?
		WHERE id = ?
	`, sent, passID)
	if err != nil {
		return fmt.Errorf("journal: complete pass: %w", err)
	}
	return nil
}

func marshalParams(params []event.Param) (string, error) {
	pairs := make([][2]any, len(params))
	for i, p := range params {
		switch v := p.Value.(type) {
		case event.Number:
			pairs[i] = [2]any{p.Key, float64(v)}
		case event.String:
			pairs[i] = [2]any{p.Key, string(v)}
		}
	}
	b, err := json.Marshal(pairs)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
