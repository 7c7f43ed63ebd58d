package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/assetdesk/internal/db"
	"github.com/erazemk/assetdesk/internal/desk"
	"github.com/erazemk/assetdesk/internal/model"
)

func TestCommandStructure(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"serve", "export", "import", "report"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.NotEmpty(t, cmd.Short, name)
	}
	for _, flag := range []string{"config", "db", "seed", "log-level", "log-file"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestGeneratePassword(t *testing.T) {
	p, err := generatePassword(16)
	require.NoError(t, err)
	assert.Len(t, p, 16)

	other, err := generatePassword(16)
	require.NoError(t, err)
	assert.NotEqual(t, p, other)
}

func TestEnsureAdminSeeded(t *testing.T) {
	ctx := context.Background()
	d := desk.New(db.NewTestDB(t))
	_, err := d.Seed(ctx)
	require.NoError(t, err)

	creds, err := ensureAdmin(ctx, d, "admin@assetdesk.local")
	require.NoError(t, err)
	require.NotNil(t, creds)
	assert.False(t, creds.Created)
	assert.Equal(t, "kamal.kishore@hochhuth-consulting.de", creds.Email)

	u, err := d.Authenticate(ctx, creds.Email)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(creds.Password)))

	// Second start leaves the password alone.
	creds, err = ensureAdmin(ctx, d, "admin@assetdesk.local")
	require.NoError(t, err)
	assert.Nil(t, creds)
}

func TestEnsureAdminEmptyDatabase(t *testing.T) {
	ctx := context.Background()
	d := desk.New(db.NewTestDB(t))

	creds, err := ensureAdmin(ctx, d, "ops@example.com")
	require.NoError(t, err)
	require.NotNil(t, creds)
	assert.True(t, creds.Created)
	assert.Equal(t, "Admin", creds.Name)

	admin, err := d.FirstAdmin(ctx)
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, "ops@example.com", admin.Email)
	assert.Equal(t, model.RoleAdmin, admin.Role)

	var buf bytes.Buffer
	printInitResult(&buf, db.MemoryPath, creds)
	assert.Contains(t, buf.String(), "Admin account created:")
	assert.Contains(t, buf.String(), creds.Password)
}

func TestRenderReport(t *testing.T) {
	out := renderReport([]model.FamilySummary{
		{AssetFamily: model.AssetFamily{Name: "MacBook", AssetType: model.AssetTypeHardware, ProductCode: "MM"}, Total: 2, Assigned: 1, Available: 1},
		{AssetFamily: model.AssetFamily{Name: "ChatGPT", AssetType: model.AssetTypeLicense, ProductCode: "GPT"}, Total: 3, Assigned: 3},
	})
	assert.Contains(t, out, "MacBook")
	assert.Contains(t, out, "ChatGPT")
	assert.Contains(t, out, "Available")

	var totals string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Total ") && strings.Contains(line, "5") {
			totals = line
		}
	}
	assert.NotEmpty(t, totals, out)

	assert.Contains(t, renderReport(nil), "No families.")
}

func TestExportAndImportCommands(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	dbPath := filepath.Join(dir, "desk.db")
	out := filepath.Join(dir, "export.json")

	root := newRootCmd()
	root.SetArgs([]string{"export", "--db", dbPath, "-o", out, "--log-level", "error"})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"generatedAt"`)

	csv := filepath.Join(dir, "users.csv")
	require.NoError(t, os.WriteFile(csv, []byte("fullName,email\nAda Lovelace,ada@example.com\n"), 0o600))

	var stdout bytes.Buffer
	root = newRootCmd()
	root.SetOut(&stdout)
	root.SetArgs([]string{"import", "users", csv, "--db", dbPath, "--log-level", "error"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "Imported 1 of 1 users rows.\n", stdout.String())

	root = newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"import", "users", filepath.Join(dir, "missing.csv"), "--db", dbPath, "--log-level", "error"})
	assert.Error(t, root.Execute())
}
