package desk

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/erazemk/assetdesk/internal/assetid"
	"github.com/erazemk/assetdesk/internal/layout"
	"github.com/erazemk/assetdesk/internal/model"
	"github.com/erazemk/assetdesk/internal/store"
)

// Config returns the desk configuration.
func (d *Desk) Config(ctx context.Context) (*model.Config, error) {
	return store.GetConfig(ctx, d.db)
}

// ReplaceConfig stores a whole new configuration. Layouts that reference
// unknown fields are refused.
func (d *Desk) ReplaceConfig(ctx context.Context, cfg *model.Config) (*model.Config, error) {
	if err := checkConfig(cfg); err != nil {
		return nil, err
	}
	err := d.write(ctx, func(tx *sql.Tx) error {
		return store.SaveConfig(ctx, tx, cfg)
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func checkConfig(cfg *model.Config) error {
	if err := layout.CheckConfig(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	for _, s := range cfg.IDConfiguration {
		if !model.ValidIDSectionType(s.Type) {
			return invalid("id section %s has unknown type %q", s.ID, s.Type)
		}
	}
	return nil
}

// editConfig applies fn to the stored configuration and saves the result.
func (d *Desk) editConfig(ctx context.Context, fn func(cfg *model.Config) error) (*model.Config, error) {
	var cfg *model.Config
	err := d.write(ctx, func(tx *sql.Tx) error {
		var err error
		if cfg, err = store.GetConfig(ctx, tx); err != nil {
			return err
		}
		if err := fn(cfg); err != nil {
			return err
		}
		return store.SaveConfig(ctx, tx, cfg)
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// sectionErr maps ID editor errors onto desk errors.
func sectionErr(err error, id string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, assetid.ErrSectionNotFound):
		return notFound("id section", id)
	default:
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
}

// AddIDSection appends a new section of the given type to the ID format.
func (d *Desk) AddIDSection(ctx context.Context, sectionType, value, label string) (*model.Config, error) {
	s, err := assetid.NewSection(d.NewID("sec"), sectionType, value, label)
	if err != nil {
		return nil, sectionErr(err, "")
	}
	return d.editConfig(ctx, func(cfg *model.Config) error {
		assetid.AddSection(cfg, s)
		return nil
	})
}

// UpdateIDSection patches one section of the ID format.
func (d *Desk) UpdateIDSection(ctx context.Context, id string, p assetid.SectionPatch) (*model.Config, error) {
	return d.editConfig(ctx, func(cfg *model.Config) error {
		return sectionErr(assetid.UpdateSection(cfg, id, p), id)
	})
}

// RemoveIDSection drops one section of the ID format.
func (d *Desk) RemoveIDSection(ctx context.Context, id string) (*model.Config, error) {
	return d.editConfig(ctx, func(cfg *model.Config) error {
		return sectionErr(assetid.RemoveSection(cfg, id), id)
	})
}

// MoveIDSection swaps a section with its neighbour.
func (d *Desk) MoveIDSection(ctx context.Context, id string, dir assetid.Direction) (*model.Config, error) {
	return d.editConfig(ctx, func(cfg *model.Config) error {
		return sectionErr(assetid.MoveSection(cfg, id, dir), id)
	})
}

// ResetIDFormat restores the built-in ID sections and separator.
func (d *Desk) ResetIDFormat(ctx context.Context) (*model.Config, error) {
	return d.editConfig(ctx, func(cfg *model.Config) error {
		assetid.Reset(cfg)
		return nil
	})
}

// SetIDSeparator changes the string between ID sections.
func (d *Desk) SetIDSeparator(ctx context.Context, sep string) (*model.Config, error) {
	return d.editConfig(ctx, func(cfg *model.Config) error {
		cfg.IDSeparator = sep
		return nil
	})
}

// IDPreview renders a sample ID in the configured format.
func (d *Desk) IDPreview(ctx context.Context) (string, error) {
	cfg, err := store.GetConfig(ctx, d.db)
	if err != nil {
		return "", err
	}
	return assetid.Preview(cfg, d.Now().UTC()), nil
}
