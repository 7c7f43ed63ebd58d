package desk

import (
	"bytes"
	"cmp"
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/erazemk/assetdesk/internal/assetid"
	"github.com/erazemk/assetdesk/internal/model"
	"github.com/erazemk/assetdesk/internal/store"
)

// Import kinds.
const (
	ImportUsers    = "users"
	ImportHardware = "hardware"
	ImportLicenses = "licenses"
)

// importedBy is the creator stamped on imported records.
const importedBy = "Import"

// Export is a full snapshot of the desk.
type Export struct {
	GeneratedAt time.Time           `json:"generatedAt"`
	Users       []model.User        `json:"users"`
	Assets      []model.Asset       `json:"assets"`
	Families    []model.AssetFamily `json:"families"`
	Vendors     []model.Vendor      `json:"vendors"`
	Config      *model.Config       `json:"config"`
}

// Export collects everything the desk holds.
func (d *Desk) Export(ctx context.Context) (*Export, error) {
	e := &Export{GeneratedAt: d.Now().UTC()}
	var err error
	if e.Users, err = d.ListUsers(ctx); err != nil {
		return nil, err
	}
	if e.Assets, err = store.ListAssets(ctx, d.db, store.AssetFilter{}); err != nil {
		return nil, err
	}
	if e.Assets == nil {
		e.Assets = []model.Asset{}
	}
	if e.Families, err = d.ListFamilies(ctx, ""); err != nil {
		return nil, err
	}
	if e.Vendors, err = d.ListVendors(ctx); err != nil {
		return nil, err
	}
	if e.Config, err = d.Config(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// WriteExport writes an export as JSON indented by two spaces.
func WriteExport(w io.Writer, e *Export) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(e); err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	return nil
}

// ParseRows reads import rows from a JSON array of objects or from CSV with
// a header row.
func ParseRows(data []byte) ([]map[string]any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []map[string]any{}, nil
	}
	if trimmed[0] == '[' {
		var rows []map[string]any
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, invalid("decoding JSON rows: %v", err)
		}
		return rows, nil
	}

	r := csv.NewReader(bytes.NewReader(trimmed))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, invalid("reading CSV rows: %v", err)
	}
	header := records[0]
	rows := make([]map[string]any, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]any, len(header))
		for i, key := range header {
			if i < len(rec) {
				row[strings.TrimSpace(key)] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

type userRow struct {
	FullName      string `mapstructure:"fullName"`
	Email         string `mapstructure:"email"`
	JobTitle      string `mapstructure:"jobTitle"`
	Department    string `mapstructure:"department"`
	BusinessPhone string `mapstructure:"businessPhone"`
	Location      string `mapstructure:"location"`
}

type assetRow struct {
	FamilyName        string `mapstructure:"familyName"`
	Title             string `mapstructure:"title"`
	Status            string `mapstructure:"status"`
	PurchaseDate      string `mapstructure:"purchaseDate"`
	Cost              string `mapstructure:"cost"`
	SerialNumber      string `mapstructure:"serialNumber"`
	Manufacturer      string `mapstructure:"manufacturer"`
	Location          string `mapstructure:"location"`
	LicenseKey        string `mapstructure:"licenseKey"`
	RenewalDate       string `mapstructure:"renewalDate"`
	VariantType       string `mapstructure:"variantType"`
	AssignedUserEmail string `mapstructure:"assignedUserEmail"`
}

// decodeRow coerces a loose row into a typed one. Values of the wrong type
// are converted to strings where possible and dropped otherwise.
func decodeRow(row map[string]any, out any) {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return
	}
	if err := dec.Decode(row); err == nil {
		return
	}
	// A single bad value must not cost the whole row.
	for k, v := range row {
		_ = dec.Decode(map[string]any{k: v})
	}
}

// Import loads rows of one kind and returns how many records were created.
func (d *Desk) Import(ctx context.Context, kind string, rows []map[string]any) (int, error) {
	switch kind {
	case ImportUsers:
		return d.importUsers(ctx, rows)
	case ImportHardware:
		return d.importAssets(ctx, model.AssetTypeHardware, rows)
	case ImportLicenses:
		return d.importAssets(ctx, model.AssetTypeLicense, rows)
	}
	return 0, invalid("unknown import kind %q", kind)
}

// importUsers creates a user per row. Rows without an email and emails that
// are already in use are skipped.
func (d *Desk) importUsers(ctx context.Context, rows []map[string]any) (int, error) {
	imported := 0
	err := d.write(ctx, func(tx *sql.Tx) error {
		ids, err := nextUserIDs(ctx, tx)
		if err != nil {
			return err
		}
		existing, err := store.ListUsers(ctx, tx)
		if err != nil {
			return err
		}
		taken := make(map[string]bool, len(existing)+len(rows))
		for _, u := range existing {
			taken[strings.ToLower(u.Email)] = true
		}

		for i, raw := range rows {
			var row userRow
			decodeRow(raw, &row)
			email := strings.TrimSpace(row.Email)
			if email == "" || taken[strings.ToLower(email)] {
				continue
			}
			taken[strings.ToLower(email)] = true

			first, last := splitName(strings.TrimSpace(row.FullName))
			u := &model.User{
				ID:            ids(i),
				FullName:      cmp.Or(strings.TrimSpace(row.FullName), "Unknown"),
				FirstName:     first,
				LastName:      last,
				Email:         email,
				Role:          model.RoleUser,
				JobTitle:      cmp.Or(row.JobTitle, "Staff"),
				Department:    cmp.Or(row.Department, DefaultDepartment),
				Organization:  "Company",
				Site:          []string{},
				BusinessPhone: row.BusinessPhone,
				Address:       row.Location,
				UserStatus:    model.UserStatusActive,
				DateOfJoining: d.today(),
				CreatedBy:     importedBy,
				ModifiedBy:    importedBy,
			}
			if row.Location != "" {
				u.Site = []string{row.Location}
			}
			if err := store.CreateUser(ctx, tx, u); err != nil {
				return err
			}
			imported++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return imported, nil
}

// importAssets creates an asset per row, synthesising families that do not
// exist yet.
func (d *Desk) importAssets(ctx context.Context, assetType string, rows []map[string]any) (int, error) {
	imported := 0
	err := d.write(ctx, func(tx *sql.Tx) error {
		count, err := store.CountAssets(ctx, tx)
		if err != nil {
			return err
		}
		rec := d.recorder()

		for _, raw := range rows {
			var row assetRow
			decodeRow(raw, &row)

			fam, err := d.importFamily(ctx, tx, assetType, row)
			if err != nil {
				return err
			}

			seq := count + imported + 1
			a := &model.Asset{
				ID:            d.NewID("inst"),
				AssetID:       assetid.Tag(assetType, fam.ProductCode, assetid.ImportFallbackCode, seq),
				FamilyID:      fam.ID,
				Title:         cmp.Or(row.Title, fam.Name+" "+assetid.Sequence(seq)),
				AssetType:     assetType,
				Status:        model.AssetStatusAvailable,
				PurchaseDate:  coerceDate(row.PurchaseDate, d.today()),
				RenewalDate:   coerceDate(row.RenewalDate, ""),
				Cost:          coerceCost(row.Cost),
				SerialNumber:  row.SerialNumber,
				Location:      row.Location,
				LicenseKey:    row.LicenseKey,
				VariantType:   cmp.Or(row.VariantType, "Standard"),
				Email:         row.AssignedUserEmail,
				AssignedUsers: []model.UserRef{},
				ActiveUsers:   []model.UserRef{},
				CreatedBy:     importedBy,
				ModifiedBy:    importedBy,
			}
			if model.ValidAssetStatus(row.Status) {
				a.Status = row.Status
			}

			if row.AssignedUserEmail != "" {
				u, err := store.GetUserByEmail(ctx, tx, row.AssignedUserEmail)
				if err != nil {
					return err
				}
				if u != nil {
					if fam.AssignmentModel == model.AssignmentMultiple {
						a.AssignedUsers = []model.UserRef{u.Ref()}
					} else {
						ref := u.Ref()
						a.AssignedUser = &ref
					}
				}
			}

			if err := store.CreateAsset(ctx, tx, a); err != nil {
				return err
			}
			if err := store.AppendHistory(ctx, tx, a.ID, rec.Seed(a)); err != nil {
				return err
			}
			imported++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return imported, nil
}

// importFamily finds the family a row names, or creates it.
func (d *Desk) importFamily(ctx context.Context, tx *sql.Tx, assetType string, row assetRow) (*model.AssetFamily, error) {
	hardware := assetType == model.AssetTypeHardware
	name := strings.TrimSpace(row.FamilyName)
	if name == "" {
		name = "Imported Software"
		if hardware {
			name = "Imported Hardware"
		}
	}

	fam, err := store.FindFamilyByName(ctx, tx, name, assetType)
	if err != nil || fam != nil {
		return fam, err
	}

	maker := cmp.Or(row.Manufacturer, "Unknown")
	fam = &model.AssetFamily{
		ID:              d.NewID("fam"),
		AssetType:       assetType,
		Name:            name,
		ProductCode:     assetid.ProductCode(name, assetid.ImportCodeLength),
		Category:        "External",
		Vendor:          maker,
		Manufacturer:    maker,
		Description:     "Imported via Excel",
		AssignmentModel: model.AssignmentMultiple,
	}
	if hardware {
		fam.Category = "Accessory"
		fam.AssignmentModel = model.AssignmentSingle
	} else {
		fam.Variants = []model.Variant{{
			ID:          d.NewID("var"),
			Name:        "Standard",
			LicenseType: "Subscription",
		}}
	}
	if err := store.CreateFamily(ctx, tx, fam); err != nil {
		return nil, err
	}
	return fam, nil
}

// coerceDate keeps a value that parses as a date and falls back otherwise.
func coerceDate(v, fallback string) string {
	v = strings.TrimSpace(v)
	if _, err := time.Parse(model.DateLayout, v); err != nil {
		return fallback
	}
	return v
}

// coerceCost reads a cost, treating anything unreadable or negative as 0.
func coerceCost(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}
