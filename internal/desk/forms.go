package desk

import (
	"context"
	"errors"

	"github.com/erazemk/assetdesk/internal/layout"
	"github.com/erazemk/assetdesk/internal/model"
	"github.com/erazemk/assetdesk/internal/table"
)

// layoutTypes maps asset layouts to the asset type whose categories they
// offer.
var layoutTypes = map[string]string{
	model.LayoutLicenseFamily:    model.AssetTypeLicense,
	model.LayoutLicenseInstance:  model.AssetTypeLicense,
	model.LayoutHardwareFamily:   model.AssetTypeHardware,
	model.LayoutHardwareInstance: model.AssetTypeHardware,
}

// formEnv collects what form option sources draw from. familyID may be
// empty.
func (d *Desk) formEnv(ctx context.Context, name, familyID string) (layout.Env, error) {
	cfg, err := d.Config(ctx)
	if err != nil {
		return layout.Env{}, err
	}
	vendors, err := d.ListVendors(ctx)
	if err != nil {
		return layout.Env{}, err
	}
	env := layout.Env{Config: cfg, AssetType: layoutTypes[name], Vendors: vendors}
	if familyID != "" {
		if env.Family, err = d.GetFamily(ctx, familyID); err != nil {
			return layout.Env{}, err
		}
	}
	return env, nil
}

func layoutErr(err error, name string) error {
	if errors.Is(err, layout.ErrUnknownLayout) {
		return notFound("layout", name)
	}
	return err
}

// Form resolves a named layout, filled from the entity with the given ID
// when there is one. Instance layouts draw variants from the asset's family.
func (d *Desk) Form(ctx context.Context, viewer *model.User, name, id string) (*layout.Form, error) {
	var (
		entity   any
		familyID string
	)
	if id != "" {
		switch name {
		case model.LayoutLicenseFamily, model.LayoutHardwareFamily:
			f, err := d.GetFamily(ctx, id)
			if err != nil {
				return nil, err
			}
			entity, familyID = f, f.ID
		case model.LayoutLicenseInstance, model.LayoutHardwareInstance:
			a, err := d.GetAsset(ctx, viewer, id)
			if err != nil {
				return nil, err
			}
			entity, familyID = a, a.FamilyID
		case model.LayoutUserProfile:
			u, err := d.GetUser(ctx, viewer, id)
			if err != nil {
				return nil, err
			}
			entity = u
		}
	}

	env, err := d.formEnv(ctx, name, familyID)
	if err != nil {
		return nil, err
	}
	var values map[string]any
	if entity != nil {
		rows, err := table.RowsOf([]any{entity})
		if err != nil {
			return nil, err
		}
		values = rows[0]
	}
	form, err := layout.Resolve(name, env, values)
	if err != nil {
		return nil, layoutErr(err, name)
	}
	return form, nil
}

// ValidateForm checks submitted values against a named layout. The problems
// are keyed by field identifier and empty when the values are fine.
func (d *Desk) ValidateForm(ctx context.Context, name, familyID string, values map[string]any) (map[string]string, error) {
	env, err := d.formEnv(ctx, name, familyID)
	if err != nil {
		return nil, err
	}
	problems, err := layout.Validate(name, env, values)
	if err != nil {
		return nil, layoutErr(err, name)
	}
	return problems, nil
}
