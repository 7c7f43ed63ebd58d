package desk

import (
	"context"
	"database/sql"
	"strings"

	"github.com/erazemk/assetdesk/internal/model"
	"github.com/erazemk/assetdesk/internal/store"
)

// ListVendors returns the vendors that were not deleted.
func (d *Desk) ListVendors(ctx context.Context) ([]model.Vendor, error) {
	vendors, err := store.ListVendors(ctx, d.db)
	if err != nil {
		return nil, err
	}
	if vendors == nil {
		vendors = []model.Vendor{}
	}
	return vendors, nil
}

// SaveVendor creates a vendor when v has no ID and updates it otherwise.
func (d *Desk) SaveVendor(ctx context.Context, v *model.Vendor) (*model.Vendor, error) {
	v.Name = strings.TrimSpace(v.Name)
	if v.Name == "" {
		return nil, invalid("vendor name is required")
	}

	err := d.write(ctx, func(tx *sql.Tx) error {
		if v.ID == "" {
			v.ID = d.NewID("v")
			return store.CreateVendor(ctx, tx, v)
		}
		return store.UpdateVendor(ctx, tx, v)
	})
	if err != nil {
		return nil, err
	}
	return store.GetVendor(ctx, d.db, v.ID)
}

// DeleteVendor hides a vendor from the list. Families keep their vendor
// name.
func (d *Desk) DeleteVendor(ctx context.Context, id string) error {
	return d.write(ctx, func(tx *sql.Tx) error {
		return store.DeleteVendor(ctx, tx, id)
	})
}
