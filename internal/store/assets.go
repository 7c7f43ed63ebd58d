package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/assetdesk/internal/model"
)

const assetSelect = `SELECT a.id, a.asset_id, a.family_id, a.title, a.asset_type, a.status,
	        a.variant_type, a.license_key, a.email, a.serial_number, a.mac_address, a.location,
	        a.condition, a.purchase_date, a.renewal_date, a.warranty_expiry_date, a.cost,
	        a.compliance_status, a.created_by, a.modified_by, a.created_at, a.updated_at,
	        u.id, u.full_name, u.email, u.department
	 FROM assets a
	 LEFT JOIN users u ON u.id = a.assigned_user_id`

func scanAsset(s rowScanner) (*model.Asset, error) {
	a := &model.Asset{}
	var userID, userName, userEmail, userDept sql.NullString
	err := s.Scan(&a.ID, &a.AssetID, &a.FamilyID, &a.Title, &a.AssetType, &a.Status,
		&a.VariantType, &a.LicenseKey, &a.Email, &a.SerialNumber, &a.MacAddress, &a.Location,
		&a.Condition, &a.PurchaseDate, &a.RenewalDate, &a.WarrantyExpiryDate, &a.Cost,
		&a.ComplianceStatus, &a.CreatedBy, &a.ModifiedBy, &a.Created, &a.Modified,
		&userID, &userName, &userEmail, &userDept)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		a.AssignedUser = &model.UserRef{
			ID:         userID.String,
			FullName:   userName.String,
			Email:      userEmail.String,
			Department: userDept.String,
		}
	}
	return a, nil
}

// AssetFilter narrows ListAssets. Zero values match everything.
type AssetFilter struct {
	FamilyID  string
	AssetType string
}

// CreateAsset inserts an asset with its assignee and active-user sets.
// History entries are appended separately.
func CreateAsset(ctx context.Context, db DBTX, a *model.Asset) error {
	var assignedUserID *string
	if a.AssignedUser != nil {
		assignedUserID = &a.AssignedUser.ID
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO assets (id, asset_id, family_id, title, asset_type, status, variant_type,
		     license_key, email, serial_number, mac_address, location, condition, purchase_date,
		     renewal_date, warranty_expiry_date, cost, compliance_status, assigned_user_id,
		     created_by, modified_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.AssetID, a.FamilyID, a.Title, a.AssetType, a.Status, a.VariantType,
		a.LicenseKey, a.Email, a.SerialNumber, a.MacAddress, a.Location, a.Condition,
		a.PurchaseDate, a.RenewalDate, a.WarrantyExpiryDate, a.Cost, a.ComplianceStatus,
		assignedUserID, a.CreatedBy, a.ModifiedBy,
	)
	if err != nil {
		return fmt.Errorf("creating asset: %w", err)
	}
	return replaceAssetUsers(ctx, db, a)
}

// GetAsset returns an asset with its users and history.
func GetAsset(ctx context.Context, db DBTX, id string) (*model.Asset, error) {
	a, err := scanAsset(db.QueryRowContext(ctx, assetSelect+` WHERE a.id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting asset: %w", err)
	}

	assets := []model.Asset{*a}
	if err := attachAssetRelations(ctx, db, assets, id); err != nil {
		return nil, err
	}
	return &assets[0], nil
}

// ListAssets returns assets in creation order with their users and history.
func ListAssets(ctx context.Context, db DBTX, filter AssetFilter) ([]model.Asset, error) {
	query := assetSelect + ` WHERE 1=1`
	var args []any
	if filter.FamilyID != "" {
		query += ` AND a.family_id = ?`
		args = append(args, filter.FamilyID)
	}
	if filter.AssetType != "" {
		query += ` AND a.asset_type = ?`
		args = append(args, filter.AssetType)
	}
	query += ` ORDER BY a.rowid`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}

	// Rows must be drained and closed before the relation queries run:
	// an in-memory database has a single connection.
	var assets []model.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning asset: %w", err)
		}
		assets = append(assets, *a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}

	if err := attachAssetRelations(ctx, db, assets, ""); err != nil {
		return nil, err
	}
	return assets, nil
}

// UpdateAsset replaces an asset's fields and user sets. History entries are
// appended separately.
func UpdateAsset(ctx context.Context, db DBTX, a *model.Asset) error {
	var assignedUserID *string
	if a.AssignedUser != nil {
		assignedUserID = &a.AssignedUser.ID
	}

	result, err := db.ExecContext(ctx,
		`UPDATE assets SET asset_id = ?, title = ?, status = ?, variant_type = ?, license_key = ?,
		     email = ?, serial_number = ?, mac_address = ?, location = ?, condition = ?,
		     purchase_date = ?, renewal_date = ?, warranty_expiry_date = ?, cost = ?,
		     compliance_status = ?, assigned_user_id = ?, modified_by = ?,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		a.AssetID, a.Title, a.Status, a.VariantType, a.LicenseKey, a.Email, a.SerialNumber,
		a.MacAddress, a.Location, a.Condition, a.PurchaseDate, a.RenewalDate,
		a.WarrantyExpiryDate, a.Cost, a.ComplianceStatus, assignedUserID, a.ModifiedBy, a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating asset: %w", err)
	}
	if err := requireRow(result, "asset"); err != nil {
		return err
	}
	return replaceAssetUsers(ctx, db, a)
}

// CountAssets returns the number of assets across all families.
func CountAssets(ctx context.Context, db DBTX) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM assets`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting assets: %w", err)
	}
	return n, nil
}

func replaceAssetUsers(ctx context.Context, db DBTX, a *model.Asset) error {
	sets := []struct {
		table string
		users []model.UserRef
	}{
		{"asset_assignees", a.AssignedUsers},
		{"asset_active_users", a.ActiveUsers},
	}

	for _, set := range sets {
		if _, err := db.ExecContext(ctx, `DELETE FROM `+set.table+` WHERE asset_ref = ?`, a.ID); err != nil {
			return fmt.Errorf("clearing %s: %w", set.table, err)
		}
		for i, u := range set.users {
			_, err := db.ExecContext(ctx,
				`INSERT OR IGNORE INTO `+set.table+` (asset_ref, user_id, position) VALUES (?, ?, ?)`,
				a.ID, u.ID, i,
			)
			if err != nil {
				return fmt.Errorf("writing %s: %w", set.table, err)
			}
		}
	}
	return nil
}

// attachAssetRelations loads the multi-assignee set, the active users and the
// history of the given assets. An empty assetRef loads them for all assets.
func attachAssetRelations(ctx context.Context, db DBTX, assets []model.Asset, assetRef string) error {
	assignees, err := listAssetUsers(ctx, db, "asset_assignees", assetRef)
	if err != nil {
		return err
	}
	active, err := listAssetUsers(ctx, db, "asset_active_users", assetRef)
	if err != nil {
		return err
	}
	history, err := listHistory(ctx, db, assetRef)
	if err != nil {
		return err
	}

	for i := range assets {
		id := assets[i].ID
		assets[i].AssignedUsers = nonNilRefs(assignees[id])
		assets[i].ActiveUsers = nonNilRefs(active[id])
		assets[i].AssignmentHistory = history[id]
		if assets[i].AssignmentHistory == nil {
			assets[i].AssignmentHistory = []model.AssignmentHistory{}
		}
	}
	return nil
}

func listAssetUsers(ctx context.Context, db DBTX, table, assetRef string) (map[string][]model.UserRef, error) {
	query := `SELECT x.asset_ref, u.id, u.full_name, u.email, u.department
	          FROM ` + table + ` x
	          JOIN users u ON u.id = x.user_id`
	var args []any
	if assetRef != "" {
		query += ` WHERE x.asset_ref = ?`
		args = append(args, assetRef)
	}
	query += ` ORDER BY x.asset_ref, x.position`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", table, err)
	}
	defer rows.Close()

	users := make(map[string][]model.UserRef)
	for rows.Next() {
		var ref string
		var u model.UserRef
		if err := rows.Scan(&ref, &u.ID, &u.FullName, &u.Email, &u.Department); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", table, err)
		}
		users[ref] = append(users[ref], u)
	}
	return users, rows.Err()
}

func nonNilRefs(refs []model.UserRef) []model.UserRef {
	if refs == nil {
		return []model.UserRef{}
	}
	return refs
}
