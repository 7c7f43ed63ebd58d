package desk

import (
	"context"
	"database/sql"
	"time"

	"github.com/erazemk/assetdesk/internal/assetid"
	"github.com/erazemk/assetdesk/internal/history"
	"github.com/erazemk/assetdesk/internal/model"
	"github.com/erazemk/assetdesk/internal/store"
)

// ListAssets returns the assets viewer may see, optionally of one family.
func (d *Desk) ListAssets(ctx context.Context, viewer *model.User, familyID string) ([]model.Asset, error) {
	assets, err := store.ListAssets(ctx, d.db, store.AssetFilter{FamilyID: familyID})
	if err != nil {
		return nil, err
	}
	if assets == nil {
		assets = []model.Asset{}
	}
	return VisibleAssets(assets, viewer), nil
}

// GetAsset returns an asset viewer may see.
func (d *Desk) GetAsset(ctx context.Context, viewer *model.User, id string) (*model.Asset, error) {
	a, err := store.GetAsset(ctx, d.db, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, notFound("asset", id)
	}
	if !CanSeeAsset(a, viewer) {
		return nil, ErrForbidden
	}
	return a, nil
}

// AssetHistory returns the assignment log of an asset viewer may see.
func (d *Desk) AssetHistory(ctx context.Context, viewer *model.User, id string) ([]model.AssignmentHistory, error) {
	a, err := d.GetAsset(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	return a.AssignmentHistory, nil
}

// CreateAsset adds an asset to a family and seeds its history. The asset ID
// is generated unless one is given.
func (d *Desk) CreateAsset(ctx context.Context, actor *model.User, a *model.Asset) (*model.Asset, error) {
	if a.FamilyID == "" {
		return nil, invalid("familyId is required")
	}
	if a.Status == "" {
		a.Status = model.AssetStatusAvailable
	}
	if err := validateAsset(a); err != nil {
		return nil, err
	}

	err := d.write(ctx, func(tx *sql.Tx) error {
		fam, err := store.GetFamily(ctx, tx, a.FamilyID)
		if err != nil {
			return err
		}
		if fam == nil {
			return notFound("family", a.FamilyID)
		}
		a.AssetType = fam.AssetType
		if err := resolveAssignees(ctx, tx, fam, a); err != nil {
			return err
		}

		if a.AssetID == "" {
			count, err := store.CountFamilyAssets(ctx, tx, fam.ID)
			if err != nil {
				return err
			}
			a.AssetID = assetid.Tag(fam.AssetType, fam.ProductCode, assetid.FallbackCode, count+1)
		}
		a.ID = d.NewID("inst")
		a.CreatedBy = actorName(actor)
		a.ModifiedBy = a.CreatedBy

		if err := store.CreateAsset(ctx, tx, a); err != nil {
			return err
		}
		return store.AppendHistory(ctx, tx, a.ID, d.recorder().Seed(a))
	})
	if err != nil {
		return nil, err
	}
	return store.GetAsset(ctx, d.db, a.ID)
}

// UpdateAsset replaces an asset's editable fields and appends the history
// entries its assignment changes produce. The family, type and creator of an
// asset never change.
func (d *Desk) UpdateAsset(ctx context.Context, actor *model.User, a *model.Asset) (*model.Asset, error) {
	if a.Status == "" {
		a.Status = model.AssetStatusAvailable
	}
	if err := validateAsset(a); err != nil {
		return nil, err
	}

	err := d.write(ctx, func(tx *sql.Tx) error {
		prev, err := store.GetAsset(ctx, tx, a.ID)
		if err != nil {
			return err
		}
		if prev == nil {
			return notFound("asset", a.ID)
		}
		fam, err := store.GetFamily(ctx, tx, prev.FamilyID)
		if err != nil {
			return err
		}
		if fam == nil {
			return notFound("family", prev.FamilyID)
		}

		a.FamilyID = prev.FamilyID
		a.AssetType = prev.AssetType
		a.CreatedBy = prev.CreatedBy
		if a.AssetID == "" {
			a.AssetID = prev.AssetID
		}
		if err := resolveAssignees(ctx, tx, fam, a); err != nil {
			return err
		}
		a.ModifiedBy = actorName(actor)

		if err := store.UpdateAsset(ctx, tx, a); err != nil {
			return err
		}
		return store.AppendHistory(ctx, tx, a.ID, d.recorder().Diff(history.SnapshotOf(prev), a))
	})
	if err != nil {
		return nil, err
	}
	return store.GetAsset(ctx, d.db, a.ID)
}

func validateAsset(a *model.Asset) error {
	if a.Title == "" {
		return invalid("title is required")
	}
	if !model.ValidAssetStatus(a.Status) {
		return invalid("unknown status %q", a.Status)
	}
	if a.Cost < 0 {
		return invalid("cost must not be negative")
	}
	dates := []struct{ field, value string }{
		{"purchaseDate", a.PurchaseDate},
		{"renewalDate", a.RenewalDate},
		{"warrantyExpiryDate", a.WarrantyExpiryDate},
	}
	for _, date := range dates {
		if date.value == "" {
			continue
		}
		if _, err := time.Parse(model.DateLayout, date.value); err != nil {
			return invalid("%s must be a date in YYYY-MM-DD form", date.field)
		}
	}
	return nil
}

// resolveAssignees checks the asset's assignment against the family's
// assignment model and replaces every user reference with the stored user.
func resolveAssignees(ctx context.Context, tx *sql.Tx, fam *model.AssetFamily, a *model.Asset) error {
	switch fam.AssignmentModel {
	case model.AssignmentSingle:
		if len(a.AssignedUsers) > 0 {
			return invalid("family %s assigns a single user", fam.Name)
		}
	case model.AssignmentMultiple:
		if a.AssignedUser != nil {
			return invalid("family %s assigns multiple users", fam.Name)
		}
	}

	if a.AssignedUser != nil {
		refs, err := resolveRefs(ctx, tx, []model.UserRef{*a.AssignedUser})
		if err != nil {
			return err
		}
		a.AssignedUser = &refs[0]
	}
	var err error
	if a.AssignedUsers, err = resolveRefs(ctx, tx, a.AssignedUsers); err != nil {
		return err
	}
	if a.ActiveUsers, err = resolveRefs(ctx, tx, a.ActiveUsers); err != nil {
		return err
	}
	return nil
}

// resolveRefs loads the users behind a list of references, dropping
// duplicates. A reference to an unknown user is invalid.
func resolveRefs(ctx context.Context, db store.DBTX, refs []model.UserRef) ([]model.UserRef, error) {
	out := make([]model.UserRef, 0, len(refs))
	seen := make(map[string]bool, len(refs))
	for _, r := range refs {
		if r.ID == "" {
			return nil, invalid("user reference without id")
		}
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		u, err := store.GetUser(ctx, db, r.ID)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, invalid("unknown user %s", r.ID)
		}
		out = append(out, u.Ref())
	}
	return out, nil
}
