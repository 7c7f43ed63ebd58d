package desk

import (
	"bytes"
	"cmp"
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/erazemk/assetdesk/internal/imaging"
	"github.com/erazemk/assetdesk/internal/model"
	"github.com/erazemk/assetdesk/internal/store"
)

// DefaultDepartment is the department of users created without one.
const DefaultDepartment = "General"

// ListUsers returns every user in creation order.
func (d *Desk) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := store.ListUsers(ctx, d.db)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

// GetUser returns a user profile with platform accounts and history. Users
// other than admins may only load their own profile.
func (d *Desk) GetUser(ctx context.Context, viewer *model.User, id string) (*model.User, error) {
	if !canSeeUser(viewer, id) {
		return nil, ErrForbidden
	}
	u, err := store.GetUser(ctx, d.db, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, notFound("user", id)
	}
	if u.PlatformAccounts, err = store.ListPlatformAccounts(ctx, d.db, id); err != nil {
		return nil, err
	}
	if u.History, err = store.ListUserHistory(ctx, d.db, id); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate returns the user behind an email address, or nil.
func (d *Desk) Authenticate(ctx context.Context, email string) (*model.User, error) {
	return store.GetUserByEmail(ctx, d.db, email)
}

// UserHistory returns the assignment entries that concern a user.
func (d *Desk) UserHistory(ctx context.Context, viewer *model.User, id string) ([]model.AssignmentHistory, error) {
	if !canSeeUser(viewer, id) {
		return nil, ErrForbidden
	}
	u, err := store.GetUser(ctx, d.db, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, notFound("user", id)
	}
	entries, err := store.ListUserHistory(ctx, d.db, id)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.AssignmentHistory{}
	}
	return entries, nil
}

func canSeeUser(viewer *model.User, id string) bool {
	return viewer != nil && (isAdmin(viewer) || viewer.ID == id)
}

// SaveUser creates a user when u has no ID and updates the profile
// otherwise. Assets, requests and tasks embed users by reference, so an edit
// shows up everywhere at once.
func (d *Desk) SaveUser(ctx context.Context, actor *model.User, u *model.User) (*model.User, error) {
	u.FullName = strings.TrimSpace(u.FullName)
	u.Email = strings.TrimSpace(u.Email)
	if u.Role != "" && !model.ValidRole(u.Role) {
		return nil, invalid("unknown role %q", u.Role)
	}
	if u.Site == nil {
		u.Site = []string{}
	}
	if u.FirstName == "" && u.LastName == "" {
		u.FirstName, u.LastName = splitName(u.FullName)
	}

	creating := u.ID == ""
	if creating && (u.FullName == "" || u.Email == "") {
		return nil, invalid("fullName and email are required")
	}

	err := d.write(ctx, func(tx *sql.Tx) error {
		if u.Email != "" {
			other, err := store.GetUserByEmail(ctx, tx, u.Email)
			if err != nil {
				return err
			}
			if other != nil && other.ID != u.ID {
				return fmt.Errorf("%w: email %s is already in use", ErrConflict, u.Email)
			}
		}

		if creating {
			ids, err := nextUserIDs(ctx, tx)
			if err != nil {
				return err
			}
			u.ID = ids(0)
			u.Role = cmp.Or(u.Role, model.RoleUser)
			u.Department = cmp.Or(u.Department, DefaultDepartment)
			u.UserStatus = cmp.Or(u.UserStatus, model.UserStatusActive)
			u.CreatedBy = actorName(actor)
			u.ModifiedBy = u.CreatedBy
			return store.CreateUser(ctx, tx, u)
		}

		existing, err := store.GetUser(ctx, tx, u.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return notFound("user", u.ID)
		}
		u.FullName = cmp.Or(u.FullName, existing.FullName)
		u.Email = cmp.Or(u.Email, existing.Email)
		u.Role = cmp.Or(u.Role, existing.Role)
		u.Department = cmp.Or(u.Department, existing.Department)
		u.UserStatus = cmp.Or(u.UserStatus, existing.UserStatus)
		u.CreatedBy = existing.CreatedBy
		u.ModifiedBy = actorName(actor)
		return store.UpdateUser(ctx, tx, u)
	})
	if err != nil {
		if creating {
			u.ID = ""
		}
		return nil, err
	}
	return store.GetUser(ctx, d.db, u.ID)
}

// SetPasswordHash stores a user's password hash.
func (d *Desk) SetPasswordHash(ctx context.Context, id, hash string) error {
	return d.write(ctx, func(tx *sql.Tx) error {
		return store.UpdateUserPassword(ctx, tx, id, hash)
	})
}

// FirstAdmin returns the earliest created admin, or nil when there is none.
func (d *Desk) FirstAdmin(ctx context.Context) (*model.User, error) {
	users, err := store.ListUsers(ctx, d.db)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Role == model.RoleAdmin {
			return &users[i], nil
		}
	}
	return nil, nil
}

// AddPlatformAccount records an external account for a user.
func (d *Desk) AddPlatformAccount(ctx context.Context, userID string, a *model.PlatformAccount) (*model.PlatformAccount, error) {
	if strings.TrimSpace(a.Platform) == "" {
		return nil, invalid("platform is required")
	}
	if a.Status == "" {
		a.Status = model.UserStatusActive
	}
	a.UserID = userID

	err := d.write(ctx, func(tx *sql.Tx) error {
		u, err := store.GetUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		if u == nil {
			return notFound("user", userID)
		}
		a.ID = d.NewID("acc")
		return store.CreatePlatformAccount(ctx, tx, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// PlatformAccounts lists the external accounts of a user.
func (d *Desk) PlatformAccounts(ctx context.Context, userID string) ([]model.PlatformAccount, error) {
	accounts, err := store.ListPlatformAccounts(ctx, d.db, userID)
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []model.PlatformAccount{}
	}
	return accounts, nil
}

// SetAvatar processes an uploaded picture and stores it as a user's avatar.
func (d *Desk) SetAvatar(ctx context.Context, viewer *model.User, id string, data []byte) error {
	if !canSeeUser(viewer, id) {
		return ErrForbidden
	}
	avatar, err := imaging.Process(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return d.write(ctx, func(tx *sql.Tx) error {
		return store.SetUserAvatar(ctx, tx, id, avatar.Data, avatar.MIME)
	})
}

// Avatar returns a user's avatar image and its MIME type.
func (d *Desk) Avatar(ctx context.Context, id string) ([]byte, string, error) {
	data, mime, err := store.GetUserAvatar(ctx, d.db, id)
	if err != nil {
		return nil, "", err
	}
	if data == nil {
		return nil, "", notFound("avatar", id)
	}
	return data, mime, nil
}

// splitName splits a full name at its first space.
func splitName(full string) (first, last string) {
	first, last, _ = strings.Cut(full, " ")
	return first, strings.TrimSpace(last)
}

// nextUserIDs returns a generator of user IDs continuing after the highest
// numeric "user-N" ID in use.
func nextUserIDs(ctx context.Context, db store.DBTX) (func(i int) string, error) {
	users, err := store.ListUsers(ctx, db)
	if err != nil {
		return nil, err
	}
	highest := 0
	for _, u := range users {
		if n, err := strconv.Atoi(strings.TrimPrefix(u.ID, "user-")); err == nil && n > highest {
			highest = n
		}
	}
	return func(i int) string {
		return fmt.Sprintf("user-%d", highest+i+1)
	}, nil
}
