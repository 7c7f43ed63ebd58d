package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/assetdesk/internal/model"
)

var (
	alice = model.UserRef{ID: "user-1", FullName: "Alice"}
	bob   = model.UserRef{ID: "user-2", FullName: "Bob"}
	carol = model.UserRef{ID: "user-3", FullName: "Carol"}
)

func recorder() Recorder {
	n := 0
	return Recorder{
		NewID: func() string {
			n++
			return fmt.Sprintf("hist-%d", n)
		},
		Now: func() time.Time { return time.Date(2026, 5, 4, 15, 0, 0, 0, time.UTC) },
	}
}

func asset() *model.Asset {
	return &model.Asset{ID: "inst-1", AssetID: "HARD-MACB-0001", Title: "MacBook 1"}
}

func ref(u model.UserRef) *model.UserRef { return &u }

func TestDiffReassigned(t *testing.T) {
	a := asset()
	a.AssignedUser = ref(bob)

	entries := recorder().Diff(Snapshot{AssignedUser: ref(alice)}, a)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, model.HistoryReassigned, e.Type)
	assert.Equal(t, "Alice", e.AssignedFrom)
	assert.Equal(t, "Bob", e.AssignedTo)
	assert.Equal(t, "Reassigned from Alice to Bob", e.Notes)
	assert.Equal(t, "2026-05-04", e.Date)
	assert.Equal(t, "HARD-MACB-0001", e.AssetID)
	assert.Equal(t, "MacBook 1", e.AssetName)
	assert.ElementsMatch(t, []string{"user-1", "user-2"}, e.UserIDs)
}

func TestDiffUnassigned(t *testing.T) {
	entries := recorder().Diff(Snapshot{AssignedUser: ref(alice)}, asset())
	require.Len(t, entries, 1)
	assert.Equal(t, "Unassigned", entries[0].AssignedTo)
	assert.Equal(t, "Reassigned from Alice to Inventory", entries[0].Notes)
}

func TestDiffAssigned(t *testing.T) {
	a := asset()
	a.AssignedUser = ref(alice)

	entries := recorder().Diff(Snapshot{}, a)
	require.Len(t, entries, 1)
	assert.Equal(t, model.HistoryAssigned, entries[0].Type)
	assert.Equal(t, "Alice", entries[0].AssignedTo)
	assert.Empty(t, entries[0].AssignedFrom)
	assert.Equal(t, "Assigned to Alice", entries[0].Notes)
}

func TestDiffNoChange(t *testing.T) {
	a := asset()
	a.AssignedUser = ref(alice)
	a.AssignedUsers = []model.UserRef{bob, carol}
	a.ActiveUsers = []model.UserRef{carol}

	prev := Snapshot{
		AssignedUser:  ref(alice),
		AssignedUsers: []model.UserRef{carol, bob},
		ActiveUsers:   []model.UserRef{carol},
	}
	assert.Empty(t, recorder().Diff(prev, a))
}

func TestDiffMultipleAssignees(t *testing.T) {
	a := asset()
	a.AssignedUsers = []model.UserRef{alice, bob}

	entries := recorder().Diff(Snapshot{AssignedUsers: []model.UserRef{alice}}, a)
	require.Len(t, entries, 1)
	assert.Equal(t, model.HistoryReassigned, entries[0].Type)
	assert.Equal(t, "License assignment updated. Now assigned to 2 users.", entries[0].Notes)
	assert.Empty(t, entries[0].AssignedTo)

	// Emptying the set records nothing.
	a.AssignedUsers = nil
	assert.Empty(t, recorder().Diff(Snapshot{AssignedUsers: []model.UserRef{alice}}, a))
}

func TestDiffActiveUsers(t *testing.T) {
	a := asset()
	a.ActiveUsers = []model.UserRef{bob, carol}

	entries := recorder().Diff(Snapshot{ActiveUsers: []model.UserRef{alice, bob}}, a)
	require.Len(t, entries, 1)
	assert.Equal(t, model.HistoryUsageUpdate, entries[0].Type)
	assert.Equal(t, "Active users updated. Added: Carol; Removed: Alice", entries[0].Notes)

	a.ActiveUsers = []model.UserRef{alice, bob, carol}
	entries = recorder().Diff(Snapshot{ActiveUsers: []model.UserRef{alice}}, a)
	require.Len(t, entries, 1)
	assert.Equal(t, "Active users updated. Added: Bob, Carol", entries[0].Notes)

	a.ActiveUsers = nil
	entries = recorder().Diff(Snapshot{ActiveUsers: []model.UserRef{alice}}, a)
	require.Len(t, entries, 1)
	assert.Equal(t, "Active users updated. Removed: Alice", entries[0].Notes)
}

func TestDiffOrderAndDistinctIDs(t *testing.T) {
	a := asset()
	a.AssignedUser = ref(bob)
	a.AssignedUsers = []model.UserRef{carol}
	a.ActiveUsers = []model.UserRef{alice}

	entries := recorder().Diff(Snapshot{AssignedUser: ref(alice)}, a)
	require.Len(t, entries, 3)
	assert.Equal(t, model.HistoryReassigned, entries[0].Type)
	assert.Equal(t, model.HistoryReassigned, entries[1].Type)
	assert.Equal(t, model.HistoryUsageUpdate, entries[2].Type)
	assert.Equal(t, []string{"hist-1", "hist-2", "hist-3"}, []string{entries[0].ID, entries[1].ID, entries[2].ID})
}

func TestSeed(t *testing.T) {
	single := asset()
	single.AssignedUser = ref(alice)
	single.ActiveUsers = []model.UserRef{alice, bob}

	entries := recorder().Seed(single)
	require.Len(t, entries, 2)
	assert.Equal(t, model.HistoryAssigned, entries[0].Type)
	assert.Equal(t, "Alice", entries[0].AssignedTo)
	assert.Equal(t, "Initial Assignment", entries[0].Notes)
	assert.Equal(t, model.HistoryUsageUpdate, entries[1].Type)
	assert.Equal(t, "Initial active users: Alice, Bob", entries[1].Notes)

	multi := asset()
	multi.AssignedUsers = []model.UserRef{alice, bob}
	entries = recorder().Seed(multi)
	require.Len(t, entries, 1)
	assert.Equal(t, "Multiple Users", entries[0].AssignedTo)
	assert.Equal(t, []string{"user-1", "user-2"}, entries[0].UserIDs)

	assert.Empty(t, recorder().Seed(asset()))
}

func TestDiffDateIsUTC(t *testing.T) {
	r := recorder()
	r.Now = func() time.Time { return time.Date(2026, 5, 5, 1, 0, 0, 0, time.FixedZone("CEST", 2*60*60)) }
	a := asset()
	a.AssignedUser = ref(bob)

	entries := r.Diff(Snapshot{AssignedUser: ref(alice)}, a)
	require.Len(t, entries, 1)
	assert.Equal(t, "2026-05-04", entries[0].Date)
}
