package desk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/assetdesk/internal/model"
)

func TestComputeAdminStats(t *testing.T) {
	a, b := model.UserRef{ID: "a"}, model.UserRef{ID: "b"}
	assets := []model.Asset{
		{AssignedUser: &a, RenewalDate: "2026-05-20"},
		{AssignedUsers: []model.UserRef{a, b}, RenewalDate: "2026-06-03"},
		{RenewalDate: "2026-06-04"},
		{RenewalDate: "2026-05-04"},
		{RenewalDate: "2026-04-01"},
		{RenewalDate: "soon"},
		{},
	}
	users := []model.User{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	requests := []model.Request{
		{Status: model.RequestPending},
		{Status: model.RequestRejected},
		{Status: model.RequestPending},
	}

	got := ComputeAdminStats(assets, users, requests, testNow)
	assert.Equal(t, AdminStats{
		TotalAssets:     7,
		TotalUsers:      3,
		PendingRequests: 2,
		ActiveUsers:     2,
		ExpiringSoon:    2,
	}, got)
}

func TestComputeUserStats(t *testing.T) {
	me := &model.User{ID: "me", Role: model.RoleUser}
	ref := model.UserRef{ID: "me"}
	assets := []model.Asset{
		{AssetType: model.AssetTypeHardware, AssignedUser: &ref},
		{AssetType: model.AssetTypeLicense, AssignedUsers: []model.UserRef{ref}},
		{AssetType: model.AssetTypeLicense, AssignedUsers: []model.UserRef{ref, {ID: "x"}}},
		{AssetType: model.AssetTypeLicense},
	}
	requests := []model.Request{{RequestedBy: ref}, {RequestedBy: model.UserRef{ID: "x"}}}

	assert.Equal(t, UserStats{MyAssets: 3, MyRequests: 1, MyLicenses: 2, MyHardware: 1},
		ComputeUserStats(assets, requests, me))
}

func TestDepartmentStats(t *testing.T) {
	users := []model.User{
		{Department: "QA"}, {Department: "Cloud"}, {Department: ""},
		{Department: "QA"}, {Department: "Cloud"}, {Department: "Ops"},
	}
	assert.Equal(t, []DepartmentCount{
		{Name: "Cloud", Count: 2},
		{Name: "QA", Count: 2},
		{Name: "Ops", Count: 1},
	}, DepartmentStats(users, 3))
	assert.Contains(t, DepartmentStats(users, 5), DepartmentCount{Name: "Unassigned", Count: 1})
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	d := seededDesk(t)

	dash, err := d.Dashboard(ctx, admin(t, d))
	require.NoError(t, err)
	require.NotNil(t, dash.Admin)
	assert.Nil(t, dash.User)
	assert.Equal(t, 10, dash.Admin.TotalAssets)
	assert.Equal(t, 127, dash.Admin.TotalUsers)
	assert.Equal(t, 1, dash.Admin.PendingRequests)
	assert.Equal(t, 2, dash.Admin.ActiveUsers)
	assert.Equal(t, []DepartmentCount{
		{Name: "General", Count: 86},
		{Name: "SPFX", Count: 19},
		{Name: "Management", Count: 14},
		{Name: "QA", Count: 5},
		{Name: "SPFx", Count: 3},
	}, dash.Departments)

	dash, err = d.Dashboard(ctx, user(t, d, "user-2"))
	require.NoError(t, err)
	assert.Nil(t, dash.Admin)
	assert.Equal(t, &UserStats{MyAssets: 3, MyLicenses: 3}, dash.User)
}

func TestSearch(t *testing.T) {
	users := []model.User{
		{FullName: "Amit Kumar", Email: "amit@x"},
		{FullName: "Santosh Kumar", Email: "s@x"},
		{FullName: "Pravesh Kumar", Email: "p@x"},
		{FullName: "Udbhav Kumar", Email: "u@x"},
		{FullName: "Juli", Email: "kumar.juli@x"},
	}
	me := model.UserRef{ID: "me"}
	assets := []model.Asset{
		{Title: "MacBook 1", AssetID: "MM-0001", AssignedUser: &me},
		{Title: "Headphones 1", AssetID: "SHA-0001"},
	}
	families := []model.AssetFamily{{Name: "MacBook"}, {Name: "Headphones"}}
	boss := &model.User{ID: "boss", Role: model.RoleAdmin}

	res := Search("KUMAR", users, assets, families, boss)
	assert.Len(t, res.Users, SearchLimit)
	assert.Empty(t, res.Assets)

	res = Search("sha-", users, assets, families, boss)
	require.Len(t, res.Assets, 1)
	assert.Equal(t, "Headphones 1", res.Assets[0].Title)

	res = Search("o", users, assets, families, &model.User{ID: "me"})
	assert.Empty(t, res.Users)
	require.Len(t, res.Assets, 1)
	assert.Equal(t, "MacBook 1", res.Assets[0].Title)
	assert.Len(t, res.Families, 2)

	res = Search("  ", users, assets, families, boss)
	assert.Empty(t, res.Users)
	assert.Empty(t, res.Families)
}

func TestGlobalSearch(t *testing.T) {
	d := seededDesk(t)
	res, err := d.GlobalSearch(context.Background(), admin(t, d), "deepak")
	require.NoError(t, err)
	require.Len(t, res.Users, 1)
	assert.Equal(t, "user-2", res.Users[0].ID)
}
