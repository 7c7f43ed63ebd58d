package desk

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/erazemk/assetdesk/internal/assetid"
	"github.com/erazemk/assetdesk/internal/model"
	"github.com/erazemk/assetdesk/internal/store"
)

// MaxBulkQuantity is the most assets one bulk create makes.
const MaxBulkQuantity = 500

// ListFamilies returns families, optionally of one asset type.
func (d *Desk) ListFamilies(ctx context.Context, assetType string) ([]model.AssetFamily, error) {
	families, err := store.ListFamilies(ctx, d.db, assetType)
	if err != nil {
		return nil, err
	}
	if families == nil {
		families = []model.AssetFamily{}
	}
	return families, nil
}

// GetFamily returns a family by ID.
func (d *Desk) GetFamily(ctx context.Context, id string) (*model.AssetFamily, error) {
	f, err := store.GetFamily(ctx, d.db, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, notFound("family", id)
	}
	return f, nil
}

func validateFamily(f *model.AssetFamily) error {
	if !model.ValidAssetType(f.AssetType) {
		return invalid("unknown asset type %q", f.AssetType)
	}
	if strings.TrimSpace(f.Name) == "" {
		return invalid("family name is required")
	}
	if f.AssignmentModel == "" {
		f.AssignmentModel = model.AssignmentSingle
		if f.AssetType == model.AssetTypeLicense {
			f.AssignmentModel = model.AssignmentMultiple
		}
	}
	if !model.ValidAssignmentModel(f.AssignmentModel) {
		return invalid("unknown assignment model %q", f.AssignmentModel)
	}
	for _, v := range f.Variants {
		if v.Name == "" {
			return invalid("variant name is required")
		}
		if v.Cost < 0 {
			return invalid("variant %s: cost must not be negative", v.Name)
		}
	}
	return nil
}

// SaveFamily creates a family when f has no ID and updates it otherwise.
// A new family's product code is always derived from its name.
func (d *Desk) SaveFamily(ctx context.Context, f *model.AssetFamily) (*model.AssetFamily, error) {
	if err := validateFamily(f); err != nil {
		return nil, err
	}
	for i := range f.Variants {
		if f.Variants[i].ID == "" {
			f.Variants[i].ID = d.NewID("var")
		}
	}

	creating := f.ID == ""
	err := d.write(ctx, func(tx *sql.Tx) error {
		if creating {
			f.ID = d.NewID("fam")
			f.ProductCode = assetid.ProductCode(f.Name, assetid.FamilyCodeLength)
			return store.CreateFamily(ctx, tx, f)
		}
		existing, err := store.GetFamily(ctx, tx, f.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return notFound("family", f.ID)
		}
		// Instances carry the type, so it is fixed at creation.
		f.AssetType = existing.AssetType
		if f.ProductCode == "" {
			f.ProductCode = existing.ProductCode
		}
		return store.UpdateFamily(ctx, tx, f)
	})
	if err != nil {
		if creating {
			f.ID = ""
		}
		return nil, err
	}
	return d.GetFamily(ctx, f.ID)
}

// BulkCreate adds quantity unassigned assets of one family variant. Common
// fields are copied into every asset before the generated ones are set.
func (d *Desk) BulkCreate(ctx context.Context, familyID, variantName string, quantity int, common model.Asset) ([]model.Asset, error) {
	if quantity < 1 || quantity > MaxBulkQuantity {
		return nil, invalid("quantity must be between 1 and %d", MaxBulkQuantity)
	}

	var created []model.Asset
	err := d.write(ctx, func(tx *sql.Tx) error {
		fam, err := store.GetFamily(ctx, tx, familyID)
		if err != nil {
			return err
		}
		if fam == nil {
			return notFound("family", familyID)
		}
		if variantName != "" && fam.AssetType == model.AssetTypeLicense && fam.VariantByName(variantName) == nil {
			return invalid("family %s has no variant %q", fam.Name, variantName)
		}

		count, err := store.CountFamilyAssets(ctx, tx, fam.ID)
		if err != nil {
			return err
		}

		for i := range quantity {
			seq := count + 1 + i
			a := common
			if a.PurchaseDate == "" {
				a.PurchaseDate = d.today()
			}
			a.ID = d.NewID("inst")
			a.AssetID = assetid.Tag(fam.AssetType, fam.ProductCode, assetid.FallbackCode, seq)
			a.FamilyID = fam.ID
			a.Title = fmt.Sprintf("%s %d", fam.Name, seq)
			a.Status = model.AssetStatusAvailable
			a.AssetType = fam.AssetType
			a.VariantType = variantName
			a.AssignedUser = nil
			a.AssignedUsers = []model.UserRef{}
			a.ActiveUsers = []model.UserRef{}
			a.AssignmentHistory = []model.AssignmentHistory{}
			a.CreatedBy = "Admin (Bulk)"
			a.ModifiedBy = "Admin (Bulk)"
			if err := store.CreateAsset(ctx, tx, &a); err != nil {
				return err
			}
			created = append(created, a)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// FamilySummaries returns families with their instance counts. An instance
// counts as assigned when it has any assignee.
func (d *Desk) FamilySummaries(ctx context.Context, assetType string) ([]model.FamilySummary, error) {
	families, err := store.ListFamilies(ctx, d.db, assetType)
	if err != nil {
		return nil, err
	}
	assets, err := store.ListAssets(ctx, d.db, store.AssetFilter{AssetType: assetType})
	if err != nil {
		return nil, err
	}
	return Summarize(families, assets), nil
}

// Summarize counts instances per family.
func Summarize(families []model.AssetFamily, assets []model.Asset) []model.FamilySummary {
	type counts struct{ total, assigned int }
	byFamily := make(map[string]*counts, len(families))
	for _, a := range assets {
		c := byFamily[a.FamilyID]
		if c == nil {
			c = &counts{}
			byFamily[a.FamilyID] = c
		}
		c.total++
		if a.IsAssigned() {
			c.assigned++
		}
	}

	summaries := make([]model.FamilySummary, 0, len(families))
	for _, f := range families {
		s := model.FamilySummary{AssetFamily: f}
		if c := byFamily[f.ID]; c != nil {
			s.Total, s.Assigned, s.Available = c.total, c.assigned, c.total-c.assigned
		}
		summaries = append(summaries, s)
	}
	return summaries
}
