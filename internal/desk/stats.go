package desk

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/erazemk/assetdesk/internal/model"
	"github.com/erazemk/assetdesk/internal/store"
)

// ExpiryWindow is how far ahead a renewal counts as expiring soon.
const ExpiryWindow = 30 * 24 * time.Hour

// TopDepartments is how many departments the dashboard ranks.
const TopDepartments = 5

// SearchLimit caps each group of global search results.
const SearchLimit = 3

// AdminStats are the admin dashboard counters.
type AdminStats struct {
	TotalAssets     int `json:"totalAssets"`
	TotalUsers      int `json:"totalUsers"`
	PendingRequests int `json:"pendingRequests"`
	ActiveUsers     int `json:"activeUsers"`
	ExpiringSoon    int `json:"expiringSoon"`
}

// UserStats are the counters of a regular user's dashboard.
type UserStats struct {
	MyAssets   int `json:"myAssets"`
	MyRequests int `json:"myRequests"`
	MyLicenses int `json:"myLicenses"`
	MyHardware int `json:"myHardware"`
}

// DepartmentCount is the number of users in one department.
type DepartmentCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Dashboard is what the landing page shows. Admins get the admin counters
// and the department ranking, everybody else their own counters.
type Dashboard struct {
	Admin       *AdminStats       `json:"admin,omitempty"`
	User        *UserStats        `json:"user,omitempty"`
	Departments []DepartmentCount `json:"departments,omitempty"`
}

// ComputeAdminStats derives the admin counters at a point in time.
// Renewal dates that do not parse are skipped.
func ComputeAdminStats(assets []model.Asset, users []model.User, requests []model.Request, now time.Time) AdminStats {
	stats := AdminStats{TotalAssets: len(assets), TotalUsers: len(users)}
	for _, r := range requests {
		if r.Status == model.RequestPending {
			stats.PendingRequests++
		}
	}

	active := mapset.NewThreadUnsafeSet[string]()
	horizon := now.Add(ExpiryWindow)
	for _, a := range assets {
		if a.AssignedUser != nil {
			active.Add(a.AssignedUser.ID)
		}
		for _, u := range a.AssignedUsers {
			active.Add(u.ID)
		}
		if a.RenewalDate == "" {
			continue
		}
		renewal, err := time.Parse(model.DateLayout, a.RenewalDate)
		if err != nil {
			continue
		}
		if renewal.After(now) && !renewal.After(horizon) {
			stats.ExpiringSoon++
		}
	}
	stats.ActiveUsers = active.Cardinality()
	return stats
}

// ComputeUserStats counts what viewer can see of assets and requests.
func ComputeUserStats(assets []model.Asset, requests []model.Request, viewer *model.User) UserStats {
	mine := VisibleAssets(assets, viewer)
	stats := UserStats{
		MyAssets:   len(mine),
		MyRequests: len(VisibleRequests(requests, viewer)),
	}
	for _, a := range mine {
		switch a.AssetType {
		case model.AssetTypeLicense:
			stats.MyLicenses++
		case model.AssetTypeHardware:
			stats.MyHardware++
		}
	}
	return stats
}

// DepartmentStats ranks departments by head count, ties by name. Users
// without a department count as "Unassigned".
func DepartmentStats(users []model.User, limit int) []DepartmentCount {
	counts := map[string]int{}
	for _, u := range users {
		counts[cmp.Or(u.Department, "Unassigned")]++
	}
	out := make([]DepartmentCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, DepartmentCount{Name: name, Count: n})
	}
	slices.SortFunc(out, func(a, b DepartmentCount) int {
		return cmp.Or(b.Count-a.Count, strings.Compare(a.Name, b.Name))
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Dashboard computes the landing page for viewer.
func (d *Desk) Dashboard(ctx context.Context, viewer *model.User) (*Dashboard, error) {
	assets, err := store.ListAssets(ctx, d.db, store.AssetFilter{})
	if err != nil {
		return nil, err
	}
	requests, err := store.ListRequests(ctx, d.db, "")
	if err != nil {
		return nil, err
	}

	if !isAdmin(viewer) {
		stats := ComputeUserStats(assets, requests, viewer)
		return &Dashboard{User: &stats}, nil
	}

	users, err := store.ListUsers(ctx, d.db)
	if err != nil {
		return nil, err
	}
	stats := ComputeAdminStats(assets, users, requests, d.Now().UTC())
	return &Dashboard{
		Admin:       &stats,
		Departments: DepartmentStats(users, TopDepartments),
	}, nil
}

// SearchResults are the grouped hits of a global search.
type SearchResults struct {
	Users    []model.User        `json:"users"`
	Assets   []model.Asset       `json:"assets"`
	Families []model.AssetFamily `json:"families"`
}

// Search matches q case-insensitively as a substring of user names and
// emails, asset titles and IDs, and family names. Only admins search users.
// Each group holds at most SearchLimit hits.
func Search(q string, users []model.User, assets []model.Asset, families []model.AssetFamily, viewer *model.User) SearchResults {
	res := SearchResults{
		Users:    []model.User{},
		Assets:   []model.Asset{},
		Families: []model.AssetFamily{},
	}
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return res
	}
	match := func(fields ...string) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), q) {
				return true
			}
		}
		return false
	}

	if isAdmin(viewer) {
		for _, u := range users {
			if len(res.Users) == SearchLimit {
				break
			}
			if match(u.FullName, u.Email) {
				res.Users = append(res.Users, u)
			}
		}
	}
	for _, a := range VisibleAssets(assets, viewer) {
		if len(res.Assets) == SearchLimit {
			break
		}
		if match(a.Title, a.AssetID) {
			res.Assets = append(res.Assets, a)
		}
	}
	for _, f := range families {
		if len(res.Families) == SearchLimit {
			break
		}
		if match(f.Name) {
			res.Families = append(res.Families, f)
		}
	}
	return res
}

// GlobalSearch runs Search over the whole catalog.
func (d *Desk) GlobalSearch(ctx context.Context, viewer *model.User, q string) (*SearchResults, error) {
	var users []model.User
	if isAdmin(viewer) {
		var err error
		if users, err = store.ListUsers(ctx, d.db); err != nil {
			return nil, err
		}
	}
	assets, err := store.ListAssets(ctx, d.db, store.AssetFilter{})
	if err != nil {
		return nil, err
	}
	families, err := store.ListFamilies(ctx, d.db, "")
	if err != nil {
		return nil, err
	}
	res := Search(q, users, assets, families, viewer)
	return &res, nil
}
