package desk

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/assetdesk/internal/model"
)

func TestParseRows(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []map[string]any
	}{
		{
			name: "csv",
			data: "fullName,email\nAda Lovelace, ada@example.com\nShort\n",
			want: []map[string]any{
				{"fullName": "Ada Lovelace", "email": "ada@example.com"},
				{"fullName": "Short"},
			},
		},
		{
			name: "json",
			data: ` [{"title": "Dock 1", "cost": 80}]`,
			want: []map[string]any{{"title": "Dock 1", "cost": 80.0}},
		},
		{
			name: "empty",
			data: "\n",
			want: []map[string]any{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ParseRows([]byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, rows)
		})
	}

	_, err := ParseRows([]byte("[{"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestImportUsers(t *testing.T) {
	ctx := context.Background()
	d := seededDesk(t)

	rows := []map[string]any{
		{"fullName": "Dup", "email": "KAMAL.KISHORE@hochhuth-consulting.de"},
		{"fullName": "No Mail"},
		{"fullName": "Ada Lovelace", "email": "ada@example.com", "location": "GMBH", "businessPhone": 4912345},
		{"email": "ADA@example.com"},
		{"email": "anon@example.com", "department": "QA"},
	}
	n, err := d.Import(ctx, ImportUsers, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	ada := user(t, d, "user-130")
	assert.Equal(t, "Ada Lovelace", ada.FullName)
	assert.Equal(t, "Ada", ada.FirstName)
	assert.Equal(t, "Lovelace", ada.LastName)
	assert.Equal(t, model.RoleUser, ada.Role)
	assert.Equal(t, "Staff", ada.JobTitle)
	assert.Equal(t, DefaultDepartment, ada.Department)
	assert.Equal(t, []string{"GMBH"}, ada.Site)
	assert.Equal(t, "GMBH", ada.Address)
	assert.Equal(t, "4912345", ada.BusinessPhone)
	assert.Equal(t, "Import", ada.CreatedBy)
	assert.Equal(t, "2026-05-04", ada.DateOfJoining)

	anon := user(t, d, "user-132")
	assert.Equal(t, "Unknown", anon.FullName)
	assert.Equal(t, "QA", anon.Department)
}

func TestImportHardware(t *testing.T) {
	ctx := context.Background()
	d := seededDesk(t)

	rows, err := ParseRows([]byte(strings.Join([]string{
		"familyName,title,status,cost,assignedUserEmail,serialNumber,purchaseDate,manufacturer",
		"macbook,,Active,2100.50,deepak.trivedi@example.com,C02XYZ,2025-01-10,",
		"Dock,,Broken,cheap,,,yesterday,Anker",
	}, "\n")))
	require.NoError(t, err)

	n, err := d.Import(ctx, ImportHardware, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	boss := admin(t, d)
	macs, err := d.ListAssets(ctx, boss, "repo-mbp")
	require.NoError(t, err)
	require.Len(t, macs, 3)
	mac := macs[2]
	assert.Equal(t, "HARD-MM-0011", mac.AssetID)
	assert.Equal(t, "MacBook 0011", mac.Title)
	assert.Equal(t, model.AssetStatusActive, mac.Status)
	assert.Equal(t, 2100.5, mac.Cost)
	assert.Equal(t, "2025-01-10", mac.PurchaseDate)
	assert.Equal(t, "C02XYZ", mac.SerialNumber)
	assert.Equal(t, "deepak.trivedi@example.com", mac.Email)
	require.NotNil(t, mac.AssignedUser)
	assert.Equal(t, "user-2", mac.AssignedUser.ID)
	require.Len(t, mac.AssignmentHistory, 1)

	families, err := d.ListFamilies(ctx, model.AssetTypeHardware)
	require.NoError(t, err)
	require.Len(t, families, 3)
	dock := families[2]
	assert.Equal(t, "Dock", dock.Name)
	assert.Equal(t, "DOC", dock.ProductCode)
	assert.Equal(t, "Accessory", dock.Category)
	assert.Equal(t, "Anker", dock.Vendor)
	assert.Equal(t, "Imported via Excel", dock.Description)
	assert.Equal(t, model.AssignmentSingle, dock.AssignmentModel)

	docks, err := d.ListAssets(ctx, boss, dock.ID)
	require.NoError(t, err)
	require.Len(t, docks, 1)
	assert.Equal(t, "HARD-DOC-0012", docks[0].AssetID)
	assert.Equal(t, "Dock 0012", docks[0].Title)
	assert.Equal(t, model.AssetStatusAvailable, docks[0].Status)
	assert.Zero(t, docks[0].Cost)
	assert.Equal(t, "2026-05-04", docks[0].PurchaseDate)
	assert.Empty(t, docks[0].AssignmentHistory)
}

func TestImportLicensesSynthesisesFamily(t *testing.T) {
	ctx := context.Background()
	d := seededDesk(t)

	n, err := d.Import(ctx, ImportLicenses, []map[string]any{
		{"assignedUserEmail": "garima.arya@hochhuth-consulting.de", "licenseKey": "K-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	families, err := d.ListFamilies(ctx, model.AssetTypeLicense)
	require.NoError(t, err)
	fam := families[len(families)-1]
	assert.Equal(t, "Imported Software", fam.Name)
	assert.Equal(t, "IMP", fam.ProductCode)
	assert.Equal(t, "External", fam.Category)
	assert.Equal(t, "Unknown", fam.Vendor)
	assert.Equal(t, model.AssignmentMultiple, fam.AssignmentModel)
	require.Len(t, fam.Variants, 1)
	assert.Equal(t, "Standard", fam.Variants[0].Name)

	assets, err := d.ListAssets(ctx, admin(t, d), fam.ID)
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "Standard", assets[0].VariantType)
	assert.Equal(t, "K-1", assets[0].LicenseKey)
	assert.Nil(t, assets[0].AssignedUser)
	require.Len(t, assets[0].AssignedUsers, 1)
	assert.Equal(t, "user-3", assets[0].AssignedUsers[0].ID)
}

func TestImportUnknownKind(t *testing.T) {
	_, err := newDesk(t).Import(context.Background(), "vendors", nil)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	d := seededDesk(t)

	e, err := d.Export(ctx)
	require.NoError(t, err)
	assert.Len(t, e.Users, 127)
	assert.Len(t, e.Assets, 10)
	assert.Len(t, e.Families, 5)
	assert.Len(t, e.Vendors, 8)
	require.NotNil(t, e.Config)

	var buf bytes.Buffer
	require.NoError(t, WriteExport(&buf, e))
	assert.Contains(t, buf.String(), "\n  \"generatedAt\": \"2026-05-04T09:30:00Z\"")
	assert.NotContains(t, buf.String(), "password")

	var back map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.ElementsMatch(t, []string{"generatedAt", "users", "assets", "families", "vendors", "config"}, keys(back))
}

func keys(m map[string]json.RawMessage) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
