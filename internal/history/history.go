// Package history derives assignment log entries from asset edits.
package history

import (
	"fmt"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/erazemk/assetdesk/internal/model"
)

// Snapshot is the assignment state of an asset at one point in time.
type Snapshot struct {
	AssignedUser  *model.UserRef
	AssignedUsers []model.UserRef
	ActiveUsers   []model.UserRef
}

// SnapshotOf captures an asset's assignment state.
func SnapshotOf(a *model.Asset) Snapshot {
	return Snapshot{
		AssignedUser:  a.AssignedUser,
		AssignedUsers: a.AssignedUsers,
		ActiveUsers:   a.ActiveUsers,
	}
}

// Recorder builds entries for one asset save.
type Recorder struct {
	// NewID returns a fresh entry ID.
	NewID func() string
	// Now dates the entries.
	Now func() time.Time
}

func (r Recorder) entry(a *model.Asset, typ, notes string, users ...model.UserRef) model.AssignmentHistory {
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return model.AssignmentHistory{
		ID:        r.NewID(),
		AssetID:   a.AssetID,
		AssetName: a.Title,
		Date:      r.Now().UTC().Format(model.DateLayout),
		Type:      typ,
		Notes:     notes,
		UserIDs:   ids,
	}
}

// Diff returns the entries an edit from prev to the asset's current state
// appends. It returns nil when nothing assignment-related changed.
func (r Recorder) Diff(prev Snapshot, a *model.Asset) []model.AssignmentHistory {
	var entries []model.AssignmentHistory
	next := SnapshotOf(a)

	oldUser, newUser := prev.AssignedUser, next.AssignedUser
	if refID(oldUser) != refID(newUser) {
		switch {
		case oldUser != nil:
			to, dest := "Unassigned", "Inventory"
			users := []model.UserRef{*oldUser}
			if newUser != nil {
				to, dest = newUser.FullName, newUser.FullName
				users = append(users, *newUser)
			}
			e := r.entry(a, model.HistoryReassigned,
				fmt.Sprintf("Reassigned from %s to %s", oldUser.FullName, dest), users...)
			e.AssignedFrom = oldUser.FullName
			e.AssignedTo = to
			entries = append(entries, e)
		case newUser != nil:
			e := r.entry(a, model.HistoryAssigned, "Assigned to "+newUser.FullName, *newUser)
			e.AssignedTo = newUser.FullName
			entries = append(entries, e)
		}
	}

	if !idSet(prev.AssignedUsers).Equal(idSet(next.AssignedUsers)) && len(next.AssignedUsers) > 0 {
		notes := fmt.Sprintf("License assignment updated. Now assigned to %d users.", len(next.AssignedUsers))
		involved := append(append([]model.UserRef{}, prev.AssignedUsers...), next.AssignedUsers...)
		entries = append(entries, r.entry(a, model.HistoryReassigned, notes, involved...))
	}

	oldActive, newActive := idSet(prev.ActiveUsers), idSet(next.ActiveUsers)
	if !oldActive.Equal(newActive) {
		added := filter(next.ActiveUsers, newActive.Difference(oldActive))
		removed := filter(prev.ActiveUsers, oldActive.Difference(newActive))

		var changes []string
		if len(added) > 0 {
			changes = append(changes, "Added: "+names(added))
		}
		if len(removed) > 0 {
			changes = append(changes, "Removed: "+names(removed))
		}
		notes := "Active users updated. " + strings.Join(changes, "; ")
		entries = append(entries, r.entry(a, model.HistoryUsageUpdate, notes, append(added, removed...)...))
	}

	return entries
}

// Seed returns the entries a newly created asset starts with.
func (r Recorder) Seed(a *model.Asset) []model.AssignmentHistory {
	var entries []model.AssignmentHistory

	if a.IsAssigned() {
		to := "Multiple Users"
		users := a.AssignedUsers
		if a.AssignedUser != nil {
			to = a.AssignedUser.FullName
			users = []model.UserRef{*a.AssignedUser}
		}
		e := r.entry(a, model.HistoryAssigned, "Initial Assignment", users...)
		e.AssignedTo = to
		entries = append(entries, e)
	}

	if len(a.ActiveUsers) > 0 {
		notes := "Initial active users: " + names(a.ActiveUsers)
		entries = append(entries, r.entry(a, model.HistoryUsageUpdate, notes, a.ActiveUsers...))
	}

	return entries
}

func refID(u *model.UserRef) string {
	if u == nil {
		return ""
	}
	return u.ID
}

func idSet(users []model.UserRef) mapset.Set[string] {
	s := mapset.NewThreadUnsafeSet[string]()
	for _, u := range users {
		s.Add(u.ID)
	}
	return s
}

// filter keeps the users whose IDs are in keep, in their original order.
func filter(users []model.UserRef, keep mapset.Set[string]) []model.UserRef {
	var out []model.UserRef
	for _, u := range users {
		if keep.Contains(u.ID) {
			out = append(out, u)
		}
	}
	return out
}

func names(users []model.UserRef) string {
	parts := make([]string, len(users))
	for i, u := range users {
		parts[i] = u.FullName
	}
	return strings.Join(parts, ", ")
}
