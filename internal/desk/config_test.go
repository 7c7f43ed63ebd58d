package desk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/assetdesk/internal/assetid"
	"github.com/erazemk/assetdesk/internal/layout"
	"github.com/erazemk/assetdesk/internal/model"
)

func TestIDFormatEditing(t *testing.T) {
	ctx := context.Background()
	d := newDesk(t)

	preview, err := d.IDPreview(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ATTR-ATTR-ATTR-0012", preview)

	cfg, err := d.AddIDSection(ctx, model.IDSectionDate, "year", "Year")
	require.NoError(t, err)
	require.Len(t, cfg.IDConfiguration, 5)
	added := cfg.IDConfiguration[4].ID

	_, err = d.MoveIDSection(ctx, added, assetid.Up)
	require.NoError(t, err)
	_, err = d.SetIDSeparator(ctx, "/")
	require.NoError(t, err)
	preview, err = d.IDPreview(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ATTR/ATTR/ATTR/2026/0012", preview)

	static := "X"
	_, err = d.UpdateIDSection(ctx, "sec-1", assetid.SectionPatch{Value: &static})
	require.NoError(t, err)
	_, err = d.RemoveIDSection(ctx, "sec-3")
	require.NoError(t, err)
	cfg, err = d.Config(ctx)
	require.NoError(t, err)
	assert.Len(t, cfg.IDConfiguration, 4)
	assert.Equal(t, "X", cfg.IDConfiguration[0].Value)

	_, err = d.RemoveIDSection(ctx, "sec-3")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = d.MoveIDSection(ctx, "sec-1", "sideways")
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = d.AddIDSection(ctx, "random", "", "")
	assert.ErrorIs(t, err, ErrInvalid)

	cfg, err = d.ResetIDFormat(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultIDConfiguration(), cfg.IDConfiguration)
	assert.Equal(t, assetid.DefaultSeparator, cfg.IDSeparator)
}

func TestReplaceConfig(t *testing.T) {
	ctx := context.Background()
	d := newDesk(t)

	cfg, err := d.Config(ctx)
	require.NoError(t, err)
	cfg.Sites = append(cfg.Sites, "REMOTE")
	_, err = d.ReplaceConfig(ctx, cfg)
	require.NoError(t, err)

	stored, err := d.Config(ctx)
	require.NoError(t, err)
	assert.Contains(t, stored.Sites, "REMOTE")

	bad, err := d.Config(ctx)
	require.NoError(t, err)
	l := bad.ModalLayouts[model.LayoutUserProfile]
	l.Tabs[0].Sections[0].Fields = append(l.Tabs[0].Sections[0].Fields, "shoeSize")
	bad.ModalLayouts[model.LayoutUserProfile] = l
	_, err = d.ReplaceConfig(ctx, bad)
	assert.ErrorIs(t, err, ErrInvalid)

	bad, err = d.Config(ctx)
	require.NoError(t, err)
	bad.IDConfiguration[0].Type = "hash"
	_, err = d.ReplaceConfig(ctx, bad)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestForm(t *testing.T) {
	ctx := context.Background()
	d := seededDesk(t)
	boss := admin(t, d)

	form, err := d.Form(ctx, boss, model.LayoutLicenseInstance, "repo-1-inst-1")
	require.NoError(t, err)
	fields := formFields(form)
	assert.Equal(t, "ChatGPT 1", fields["title"].Value)
	assert.Equal(t, []string{"Standard", "Enterprise"}, fields["variantType"].Options)

	form, err = d.Form(ctx, boss, model.LayoutHardwareFamily, "")
	require.NoError(t, err)
	fields = formFields(form)
	assert.Nil(t, fields["name"].Value)
	assert.Contains(t, fields["manufacturer"].Options, "Apple")
	assert.Contains(t, fields["category"].Options, "Laptop")

	_, err = d.Form(ctx, boss, "kanban", "")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = d.Form(ctx, user(t, d, "user-2"), model.LayoutHardwareInstance, "repo-mbp-inst-1")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestValidateForm(t *testing.T) {
	d := seededDesk(t)
	problems, err := d.ValidateForm(context.Background(), model.LayoutLicenseInstance, "repo-1", map[string]any{
		"title":       "",
		"status":      "Active",
		"variantType": "Platinum",
	})
	require.NoError(t, err)
	assert.Contains(t, problems, "title")
	assert.Contains(t, problems, "variantType")
	assert.NotContains(t, problems, "status")
}

func formFields(form *layout.Form) map[string]layout.FormField {
	fields := map[string]layout.FormField{}
	for _, tab := range form.Tabs {
		for _, sec := range tab.Sections {
			for _, f := range sec.Fields {
				fields[f.ID] = f
			}
		}
	}
	return fields
}
