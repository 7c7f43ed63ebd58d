package desk

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/assetdesk/internal/model"
)

func TestSaveUserCreate(t *testing.T) {
	ctx := context.Background()
	d := seededDesk(t)
	boss := admin(t, d)

	u, err := d.SaveUser(ctx, boss, &model.User{FullName: "  Nina Rao ", Email: "nina@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "user-128", u.ID)
	assert.Equal(t, "Nina Rao", u.FullName)
	assert.Equal(t, "Nina", u.FirstName)
	assert.Equal(t, "Rao", u.LastName)
	assert.Equal(t, model.RoleUser, u.Role)
	assert.Equal(t, DefaultDepartment, u.Department)
	assert.Equal(t, model.UserStatusActive, u.UserStatus)
	assert.Equal(t, "Kamal Kishore", u.CreatedBy)

	_, err = d.SaveUser(ctx, boss, &model.User{FullName: "Copy", Email: "NINA@example.com"})
	assert.ErrorIs(t, err, ErrConflict)
	_, err = d.SaveUser(ctx, boss, &model.User{FullName: "No Mail"})
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = d.SaveUser(ctx, boss, &model.User{FullName: "Bad Role", Email: "r@example.com", Role: "root"})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestSaveUserUpdateFollowsReferences(t *testing.T) {
	ctx := context.Background()
	d := seededDesk(t)
	boss := admin(t, d)

	edit := *boss
	edit.FullName = "Kamal K."
	edit.Role = ""
	saved, err := d.SaveUser(ctx, boss, &edit)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, saved.Role)
	assert.Equal(t, "Kamal K.", saved.FullName)

	a, err := d.GetAsset(ctx, saved, "repo-mbp-inst-1")
	require.NoError(t, err)
	assert.Equal(t, "Kamal K.", a.AssignedUser.FullName)

	_, err = d.SaveUser(ctx, boss, &model.User{ID: "user-999", FullName: "Ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetUserScope(t *testing.T) {
	ctx := context.Background()
	d := seededDesk(t)
	deepak := user(t, d, "user-2")

	assert.Len(t, deepak.PlatformAccounts, 3)

	_, err := d.GetUser(ctx, deepak, "user-1")
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = d.UserHistory(ctx, deepak, "user-1")
	assert.ErrorIs(t, err, ErrForbidden)

	u, err := d.GetUser(ctx, admin(t, d), "user-2")
	require.NoError(t, err)
	assert.Equal(t, "Deepak Trivedi", u.FullName)

	_, err = d.GetUser(ctx, admin(t, d), "user-999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFirstAdmin(t *testing.T) {
	ctx := context.Background()

	none, err := newDesk(t).FirstAdmin(ctx)
	require.NoError(t, err)
	assert.Nil(t, none)

	first, err := seededDesk(t).FirstAdmin(ctx)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "user-1", first.ID)
}

func TestPlatformAccounts(t *testing.T) {
	ctx := context.Background()
	d := seededDesk(t)

	acc, err := d.AddPlatformAccount(ctx, "user-3", &model.PlatformAccount{Platform: "Slack", Email: "garima@slack.test"})
	require.NoError(t, err)
	assert.Equal(t, model.UserStatusActive, acc.Status)

	accounts, err := d.PlatformAccounts(ctx, "user-3")
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Slack", accounts[0].Platform)

	_, err = d.AddPlatformAccount(ctx, "user-3", &model.PlatformAccount{})
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = d.AddPlatformAccount(ctx, "user-999", &model.PlatformAccount{Platform: "Slack"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAvatar(t *testing.T) {
	ctx := context.Background()
	d := seededDesk(t)
	garima := user(t, d, "user-3")

	_, _, err := d.Avatar(ctx, "user-3")
	assert.ErrorIs(t, err, ErrNotFound)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 30))))
	require.NoError(t, d.SetAvatar(ctx, garima, "user-3", buf.Bytes()))

	data, mime, err := d.Avatar(ctx, "user-3")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)
	assert.NotEmpty(t, data)

	assert.ErrorIs(t, d.SetAvatar(ctx, garima, "user-3", []byte("plain text")), ErrInvalid)
	assert.ErrorIs(t, d.SetAvatar(ctx, garima, "user-4", buf.Bytes()), ErrForbidden)
}

func TestSplitName(t *testing.T) {
	tests := []struct{ full, first, last string }{
		{"Kamal Kishore", "Kamal", "Kishore"},
		{"Mononym", "Mononym", ""},
		{"Anna Maria Lopez", "Anna", "Maria Lopez"},
		{"", "", ""},
	}
	for _, tt := range tests {
		first, last := splitName(tt.full)
		assert.Equal(t, tt.first, first, tt.full)
		assert.Equal(t, tt.last, last, tt.full)
	}
}
