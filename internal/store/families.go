package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/assetdesk/internal/model"
)

const familyColumns = `id, asset_type, name, product_code, category, vendor, manufacturer,
	model_number, description, assignment_model, created_at, updated_at`

func scanFamily(s rowScanner) (*model.AssetFamily, error) {
	f := &model.AssetFamily{}
	err := s.Scan(&f.ID, &f.AssetType, &f.Name, &f.ProductCode, &f.Category, &f.Vendor,
		&f.Manufacturer, &f.ModelNumber, &f.Description, &f.AssignmentModel,
		&f.CreatedDate, &f.LastModifiedDate)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// CreateFamily inserts a family and its variants.
func CreateFamily(ctx context.Context, db DBTX, f *model.AssetFamily) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO families (id, asset_type, name, product_code, category, vendor, manufacturer,
		     model_number, description, assignment_model)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.AssetType, f.Name, f.ProductCode, f.Category, f.Vendor, f.Manufacturer,
		f.ModelNumber, f.Description, f.AssignmentModel,
	)
	if err != nil {
		return fmt.Errorf("creating family: %w", err)
	}
	return insertVariants(ctx, db, f.ID, f.Variants)
}

// GetFamily returns a family with its variants.
func GetFamily(ctx context.Context, db DBTX, id string) (*model.AssetFamily, error) {
	f, err := scanFamily(db.QueryRowContext(ctx,
		`SELECT `+familyColumns+` FROM families WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting family: %w", err)
	}

	variants, err := listVariants(ctx, db, id)
	if err != nil {
		return nil, err
	}
	f.Variants = variants[id]
	return f, nil
}

// FindFamilyByName returns the family of the given type whose name matches
// case-insensitively.
func FindFamilyByName(ctx context.Context, db DBTX, name, assetType string) (*model.AssetFamily, error) {
	var id string
	err := db.QueryRowContext(ctx,
		`SELECT id FROM families WHERE lower(name) = lower(?) AND asset_type = ? ORDER BY rowid LIMIT 1`,
		name, assetType,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding family: %w", err)
	}
	return GetFamily(ctx, db, id)
}

// ListFamilies returns families in creation order, optionally filtered by
// asset type.
func ListFamilies(ctx context.Context, db DBTX, assetType string) ([]model.AssetFamily, error) {
	query := `SELECT ` + familyColumns + ` FROM families`
	var args []any
	if assetType != "" {
		query += ` WHERE asset_type = ?`
		args = append(args, assetType)
	}
	query += ` ORDER BY rowid`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing families: %w", err)
	}

	var families []model.AssetFamily
	for rows.Next() {
		f, err := scanFamily(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning family: %w", err)
		}
		families = append(families, *f)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing families: %w", err)
	}

	variants, err := listVariants(ctx, db, "")
	if err != nil {
		return nil, err
	}
	for i := range families {
		families[i].Variants = variants[families[i].ID]
	}
	return families, nil
}

// UpdateFamily replaces a family's fields and variants.
func UpdateFamily(ctx context.Context, db DBTX, f *model.AssetFamily) error {
	result, err := db.ExecContext(ctx,
		`UPDATE families SET asset_type = ?, name = ?, product_code = ?, category = ?, vendor = ?,
		     manufacturer = ?, model_number = ?, description = ?, assignment_model = ?,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		f.AssetType, f.Name, f.ProductCode, f.Category, f.Vendor, f.Manufacturer, f.ModelNumber,
		f.Description, f.AssignmentModel, f.ID,
	)
	if err != nil {
		return fmt.Errorf("updating family: %w", err)
	}
	if err := requireRow(result, "family"); err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM variants WHERE family_id = ?`, f.ID); err != nil {
		return fmt.Errorf("clearing variants: %w", err)
	}
	return insertVariants(ctx, db, f.ID, f.Variants)
}

// CountFamilyAssets returns how many assets belong to a family.
func CountFamilyAssets(ctx context.Context, db DBTX, familyID string) (int, error) {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM assets WHERE family_id = ?`, familyID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting family assets: %w", err)
	}
	return n, nil
}

func insertVariants(ctx context.Context, db DBTX, familyID string, variants []model.Variant) error {
	for i, v := range variants {
		_, err := db.ExecContext(ctx,
			`INSERT INTO variants (id, family_id, name, license_type, cost, position)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			v.ID, familyID, v.Name, v.LicenseType, v.Cost, i,
		)
		if err != nil {
			return fmt.Errorf("creating variant %q: %w", v.Name, err)
		}
	}
	return nil
}

// listVariants returns variants keyed by family ID. An empty familyID loads
// every family's variants.
func listVariants(ctx context.Context, db DBTX, familyID string) (map[string][]model.Variant, error) {
	query := `SELECT family_id, id, name, license_type, cost FROM variants`
	var args []any
	if familyID != "" {
		query += ` WHERE family_id = ?`
		args = append(args, familyID)
	}
	query += ` ORDER BY family_id, position`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing variants: %w", err)
	}
	defer rows.Close()

	variants := make(map[string][]model.Variant)
	for rows.Next() {
		var fid string
		var v model.Variant
		if err := rows.Scan(&fid, &v.ID, &v.Name, &v.LicenseType, &v.Cost); err != nil {
			return nil, fmt.Errorf("scanning variant: %w", err)
		}
		variants[fid] = append(variants[fid], v)
	}
	return variants, rows.Err()
}
