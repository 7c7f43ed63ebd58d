package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/assetdesk/internal/model"
)

// CreateVendor inserts a new vendor.
func CreateVendor(ctx context.Context, db DBTX, v *model.Vendor) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO vendors (id, name, contact_name, email, website) VALUES (?, ?, ?, ?, ?)`,
		v.ID, v.Name, v.ContactName, v.Email, v.Website,
	)
	if err != nil {
		return fmt.Errorf("creating vendor: %w", err)
	}
	return nil
}

// GetVendor returns a live vendor by ID.
func GetVendor(ctx context.Context, db DBTX, id string) (*model.Vendor, error) {
	var v model.Vendor
	err := db.QueryRowContext(ctx,
		`SELECT id, name, contact_name, email, website FROM vendors WHERE id = ? AND deleted_at IS NULL`, id,
	).Scan(&v.ID, &v.Name, &v.ContactName, &v.Email, &v.Website)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting vendor: %w", err)
	}
	return &v, nil
}

// ListVendors returns live vendors sorted by name.
func ListVendors(ctx context.Context, db DBTX) ([]model.Vendor, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, contact_name, email, website FROM vendors
		 WHERE deleted_at IS NULL ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing vendors: %w", err)
	}
	defer rows.Close()

	vendors := []model.Vendor{}
	for rows.Next() {
		var v model.Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.ContactName, &v.Email, &v.Website); err != nil {
			return nil, fmt.Errorf("scanning vendor: %w", err)
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}

// UpdateVendor replaces a live vendor's fields.
func UpdateVendor(ctx context.Context, db DBTX, v *model.Vendor) error {
	result, err := db.ExecContext(ctx,
		`UPDATE vendors SET name = ?, contact_name = ?, email = ?, website = ?
		 WHERE id = ? AND deleted_at IS NULL`,
		v.Name, v.ContactName, v.Email, v.Website, v.ID,
	)
	if err != nil {
		return fmt.Errorf("updating vendor: %w", err)
	}
	return requireRow(result, "vendor")
}

// DeleteVendor soft-deletes a vendor.
func DeleteVendor(ctx context.Context, db DBTX, id string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE vendors SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`, id,
	)
	if err != nil {
		return fmt.Errorf("deleting vendor: %w", err)
	}
	return requireRow(result, "vendor")
}
