package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/assetdesk/internal/model"
)

func env(t *testing.T) Env {
	t.Helper()
	cfg, err := model.DefaultConfig()
	require.NoError(t, err)
	return Env{
		Config:    cfg,
		AssetType: model.AssetTypeLicense,
		Family: &model.AssetFamily{
			Variants: []model.Variant{{Name: "Standard"}, {Name: "Enterprise"}},
		},
		Vendors: []model.Vendor{{Name: "OpenAI"}, {Name: "Apple"}},
	}
}

func TestDefaultLayoutsUseKnownFields(t *testing.T) {
	assert.NoError(t, CheckConfig(env(t).Config))
}

func TestCheckConfigReportsUnknownFields(t *testing.T) {
	e := env(t)
	l := e.Config.ModalLayouts[model.LayoutUserProfile]
	l.Tabs[0].Sections[0].Fields = append(l.Tabs[0].Sections[0].Fields, "facebook")
	e.Config.ModalLayouts[model.LayoutUserProfile] = l

	err := CheckConfig(e.Config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "userProfile.facebook")
}

func TestResolveLicenseInstance(t *testing.T) {
	values := map[string]any{
		"title":       "ChatGPT 1",
		"status":      "Active",
		"variantType": "Standard",
		"cost":        20.0,
	}

	form, err := Resolve(model.LayoutLicenseInstance, env(t), values)
	require.NoError(t, err)
	require.NotEmpty(t, form.Tabs)
	assert.Equal(t, "general", form.Tabs[0].ID)

	fields := map[string]FormField{}
	for _, tab := range form.Tabs {
		for _, sec := range tab.Sections {
			for _, f := range sec.Fields {
				fields[f.ID] = f
			}
		}
	}

	assert.Equal(t, "ChatGPT 1", fields["title"].Value)
	assert.True(t, fields["title"].Required)
	assert.Equal(t, KindSelect, fields["status"].Kind)
	assert.Equal(t, model.AssetStatuses, fields["status"].Options)
	assert.Equal(t, []string{"Standard", "Enterprise"}, fields["variantType"].Options)
	assert.Equal(t, KindCurrency, fields["currencyTool"].Kind)
	assert.Equal(t, 20.0, fields["currencyTool"].Value)
	assert.Equal(t, KindHistory, fields["assignmentHistory"].Kind)
	assert.Nil(t, fields["licenseKey"].Value)
}

func TestResolveUnknownLayout(t *testing.T) {
	_, err := Resolve("taskBoard", env(t), nil)
	assert.ErrorIs(t, err, ErrUnknownLayout)
}

func TestResolveCategoriesFollowAssetType(t *testing.T) {
	e := env(t)
	e.AssetType = model.AssetTypeHardware

	form, err := Resolve(model.LayoutHardwareFamily, e, nil)
	require.NoError(t, err)
	category := form.Tabs[0].Sections[1].Fields[0]
	assert.Equal(t, "category", category.ID)
	assert.Equal(t, e.Config.HardwareCategories, category.Options)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		layout string
		values map[string]any
		want   map[string]string
	}{
		{
			name:   "valid hardware instance",
			layout: model.LayoutHardwareInstance,
			values: map[string]any{
				"title":        "MacBook 1",
				"status":       "In Repair",
				"purchaseDate": "2026-01-31",
				"assignedUser": map[string]any{"id": "user-1"},
				"activeUsers":  []any{"user-1", map[string]any{"id": "user-2"}},
				"cost":         "1200.50",
			},
			want: map[string]string{},
		},
		{
			name:   "missing required and bad values",
			layout: model.LayoutHardwareInstance,
			values: map[string]any{
				"status":             "Lost",
				"purchaseDate":       "31/01/2026",
				"warrantyExpiryDate": "",
				"cost":               -5.0,
				"assignedUser":       map[string]any{"name": "x"},
			},
			want: map[string]string{
				"title":        "is required",
				"status":       `"Lost" is not one of the options`,
				"purchaseDate": "must be a date in YYYY-MM-DD form",
				"currencyTool": "must not be negative",
				"assignedUser": "must reference a user",
			},
		},
		{
			name:   "user profile",
			layout: model.LayoutUserProfile,
			values: map[string]any{
				"email":      "not-an-address",
				"department": "QA",
				"site":       []any{"HR", "Atlantis"},
			},
			want: map[string]string{
				"email": "must be a valid email address",
				"site":  `"Atlantis" is not one of the options`,
			},
		},
		{
			name:   "license family variant select",
			layout: model.LayoutLicenseFamily,
			values: map[string]any{
				"name":            "ChatGPT",
				"productCode":     "CHAT",
				"assignmentModel": "Multiple",
				"vendor":          "Nobody",
			},
			want: map[string]string{
				"vendor": `"Nobody" is not one of the options`,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.layout, env(t), tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectWithoutOptionsAcceptsAnything(t *testing.T) {
	e := env(t)
	e.Vendors = nil

	got, err := Validate(model.LayoutLicenseFamily, e, map[string]any{
		"name": "X", "productCode": "X", "assignmentModel": "Single", "vendor": "Anyone",
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}
