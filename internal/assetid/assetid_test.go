package assetid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/assetdesk/internal/model"
)

func TestProductCode(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want string
	}{
		{"ChatGPT", 4, "CHAT"},
		{"Mac", 4, "MAC"},
		{"  perplexity ", 4, "PERP"},
		{"", 4, "GEN"},
		{"   ", 3, "GEN"},
		{"Imported Hardware", 3, "IMP"},
		{"Über", 2, "ÜB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ProductCode(tt.name, tt.n), "ProductCode(%q, %d)", tt.name, tt.n)
	}
}

func TestTag(t *testing.T) {
	assert.Equal(t, "SOFT-CHAT-0001", Tag(model.AssetTypeLicense, "CHAT", FallbackCode, 1))
	assert.Equal(t, "HARD-GEN-0042", Tag(model.AssetTypeHardware, "", FallbackCode, 42))
	assert.Equal(t, "HARD-IMP-0007", Tag(model.AssetTypeHardware, "", ImportFallbackCode, 7))
	assert.Equal(t, "SOFT-X-12345", Tag(model.AssetTypeLicense, "X", FallbackCode, 12345))
}

func newConfig(t *testing.T) *model.Config {
	t.Helper()
	cfg, err := model.DefaultConfig()
	require.NoError(t, err)
	return cfg
}

func TestNewSection(t *testing.T) {
	seq, err := NewSection("sec-a", model.IDSectionSequence, "sequence", "Seq")
	require.NoError(t, err)
	assert.Equal(t, 4, seq.Length)
	assert.Equal(t, "0", seq.PaddingChar)
	assert.True(t, seq.Uppercase)

	static, err := NewSection("sec-b", model.IDSectionStatic, "FIX", "Fixed Text")
	require.NoError(t, err)
	assert.Zero(t, static.Length)
	assert.Empty(t, static.PaddingChar)

	_, err = NewSection("sec-c", "emoji", "", "")
	assert.Error(t, err)
}

func TestSectionEditing(t *testing.T) {
	cfg := newConfig(t)
	original := len(cfg.IDConfiguration)

	s, err := NewSection("sec-new", model.IDSectionStatic, "FIX", "Fixed Text")
	require.NoError(t, err)
	AddSection(cfg, s)
	require.Len(t, cfg.IDConfiguration, original+1)

	label := "Company"
	require.NoError(t, UpdateSection(cfg, "sec-new", SectionPatch{Label: &label}))
	assert.Equal(t, "Company", cfg.IDConfiguration[original].Label)
	assert.Equal(t, "FIX", cfg.IDConfiguration[original].Value)

	require.NoError(t, MoveSection(cfg, "sec-new", Up))
	assert.Equal(t, "sec-new", cfg.IDConfiguration[original-1].ID)

	// Moving the last section down is a no-op.
	last := cfg.IDConfiguration[original].ID
	require.NoError(t, MoveSection(cfg, last, Down))
	assert.Equal(t, last, cfg.IDConfiguration[original].ID)

	require.NoError(t, RemoveSection(cfg, "sec-new"))
	assert.Len(t, cfg.IDConfiguration, original)

	assert.ErrorIs(t, RemoveSection(cfg, "sec-new"), ErrSectionNotFound)
	assert.ErrorIs(t, UpdateSection(cfg, "nope", SectionPatch{}), ErrSectionNotFound)
	assert.Error(t, MoveSection(cfg, cfg.IDConfiguration[0].ID, "sideways"))
}

func TestResetRestoresDefaults(t *testing.T) {
	cfg := newConfig(t)
	cfg.IDSeparator = "/"
	require.NoError(t, RemoveSection(cfg, cfg.IDConfiguration[0].ID))

	Reset(cfg)
	assert.Equal(t, "-", cfg.IDSeparator)
	assert.Equal(t, model.DefaultIDConfiguration(), cfg.IDConfiguration)
}

func TestPreview(t *testing.T) {
	cfg := &model.Config{
		IDConfiguration: []model.IDSection{
			{ID: "1", Type: model.IDSectionStatic, Value: "ACME"},
			{ID: "2", Type: model.IDSectionAttribute, Value: "productCode"},
			{ID: "3", Type: model.IDSectionDate},
			{ID: "4", Type: model.IDSectionSequence},
		},
	}
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "ACME-ATTR-2026-0012", Preview(cfg, now))

	cfg.IDSeparator = "_"
	assert.Equal(t, "ACME_ATTR_2026_0012", Preview(cfg, now))
}
