package store

import (
	"context"
	"fmt"

	"github.com/erazemk/assetdesk/internal/model"
)

const historyColumns = `h.id, h.asset_ref, h.asset_id, h.asset_name, h.date, h.type,
	h.assigned_from, h.assigned_to, h.notes`

// AppendHistory appends entries to an asset's assignment log. Existing
// entries are never touched.
func AppendHistory(ctx context.Context, db DBTX, assetRef string, entries []model.AssignmentHistory) error {
	for _, e := range entries {
		_, err := db.ExecContext(ctx,
			`INSERT INTO assignment_history (id, asset_ref, asset_id, asset_name, date, type,
			     assigned_from, assigned_to, notes)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, assetRef, e.AssetID, e.AssetName, e.Date, e.Type,
			e.AssignedFrom, e.AssignedTo, e.Notes,
		)
		if err != nil {
			return fmt.Errorf("appending history: %w", err)
		}
		for _, userID := range e.UserIDs {
			_, err := db.ExecContext(ctx,
				`INSERT OR IGNORE INTO history_users (history_id, user_id) VALUES (?, ?)`,
				e.ID, userID,
			)
			if err != nil {
				return fmt.Errorf("linking history user: %w", err)
			}
		}
	}
	return nil
}

// ListAssetHistory returns an asset's log in append order.
func ListAssetHistory(ctx context.Context, db DBTX, assetRef string) ([]model.AssignmentHistory, error) {
	history, err := listHistory(ctx, db, assetRef)
	if err != nil {
		return nil, err
	}
	if history[assetRef] == nil {
		return []model.AssignmentHistory{}, nil
	}
	return history[assetRef], nil
}

// ListUserHistory returns every entry that concerns a user, across assets,
// in append order.
func ListUserHistory(ctx context.Context, db DBTX, userID string) ([]model.AssignmentHistory, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+historyColumns+`
		 FROM assignment_history h
		 JOIN history_users hu ON hu.history_id = h.id
		 WHERE hu.user_id = ?
		 ORDER BY h.seq`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing user history: %w", err)
	}
	defer rows.Close()

	entries := []model.AssignmentHistory{}
	for rows.Next() {
		var ref string
		var e model.AssignmentHistory
		if err := rows.Scan(&e.ID, &ref, &e.AssetID, &e.AssetName, &e.Date, &e.Type,
			&e.AssignedFrom, &e.AssignedTo, &e.Notes); err != nil {
			return nil, fmt.Errorf("scanning history: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// listHistory returns history keyed by asset. An empty assetRef loads the
// log of every asset.
func listHistory(ctx context.Context, db DBTX, assetRef string) (map[string][]model.AssignmentHistory, error) {
	query := `SELECT ` + historyColumns + ` FROM assignment_history h`
	var args []any
	if assetRef != "" {
		query += ` WHERE h.asset_ref = ?`
		args = append(args, assetRef)
	}
	query += ` ORDER BY h.seq`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	history := make(map[string][]model.AssignmentHistory)
	for rows.Next() {
		var ref string
		var e model.AssignmentHistory
		if err := rows.Scan(&e.ID, &ref, &e.AssetID, &e.AssetName, &e.Date, &e.Type,
			&e.AssignedFrom, &e.AssignedTo, &e.Notes); err != nil {
			return nil, fmt.Errorf("scanning history: %w", err)
		}
		history[ref] = append(history[ref], e)
	}
	return history, rows.Err()
}
