package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/erazemk/assetdesk/internal/model"
)

// GetTableView returns a user's saved view of a table, or nil if the user
// never adjusted it.
func GetTableView(ctx context.Context, db DBTX, userID, table string) (*model.TableView, error) {
	var columns, settings string
	err := db.QueryRowContext(ctx,
		`SELECT columns, settings FROM table_views WHERE user_id = ? AND table_name = ?`,
		userID, table,
	).Scan(&columns, &settings)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting table view: %w", err)
	}

	view := &model.TableView{UserID: userID, Table: table, Settings: model.DefaultViewSettings()}
	if err := json.Unmarshal([]byte(columns), &view.Columns); err != nil {
		return nil, fmt.Errorf("decoding table columns: %w", err)
	}
	if err := json.Unmarshal([]byte(settings), &view.Settings); err != nil {
		return nil, fmt.Errorf("decoding table settings: %w", err)
	}
	return view, nil
}

// SaveTableView stores a user's view of a table, replacing any previous one.
func SaveTableView(ctx context.Context, db DBTX, view *model.TableView) error {
	columns := view.Columns
	if columns == nil {
		columns = []model.ColumnConfig{}
	}
	columnData, err := json.Marshal(columns)
	if err != nil {
		return fmt.Errorf("encoding table columns: %w", err)
	}
	settingsData, err := json.Marshal(view.Settings)
	if err != nil {
		return fmt.Errorf("encoding table settings: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO table_views (user_id, table_name, columns, settings) VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id, table_name) DO UPDATE
		 SET columns = excluded.columns, settings = excluded.settings, updated_at = CURRENT_TIMESTAMP`,
		view.UserID, view.Table, string(columnData), string(settingsData),
	)
	if err != nil {
		return fmt.Errorf("saving table view: %w", err)
	}
	return nil
}
