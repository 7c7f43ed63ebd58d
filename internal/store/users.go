package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/assetdesk/internal/model"
)

const userColumns = `id, full_name, first_name, last_name, email, role, job_title, department,
	organization, site, business_phone, mobile_no, address, city, postal_code, linkedin,
	twitter, user_status, date_of_joining, notes, avatar_mime, password_hash,
	created_by, modified_by, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(s rowScanner) (*model.User, error) {
	u := &model.User{}
	var site string
	var avatarMime, passwordHash sql.NullString
	err := s.Scan(&u.ID, &u.FullName, &u.FirstName, &u.LastName, &u.Email, &u.Role, &u.JobTitle,
		&u.Department, &u.Organization, &site, &u.BusinessPhone, &u.MobileNo, &u.Address, &u.City,
		&u.PostalCode, &u.LinkedIn, &u.Twitter, &u.UserStatus, &u.DateOfJoining, &u.Notes,
		&avatarMime, &passwordHash, &u.CreatedBy, &u.ModifiedBy, &u.CreatedDate, &u.ModifiedDate)
	if err != nil {
		return nil, err
	}
	u.Site = decodeStrings(site)
	u.AvatarMime = avatarMime.String
	u.PasswordHash = passwordHash.String
	return u, nil
}

// CreateUser inserts a new user. The caller assigns the ID.
func CreateUser(ctx context.Context, db DBTX, u *model.User) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO users (id, full_name, first_name, last_name, email, role, job_title, department,
		     organization, site, business_phone, mobile_no, address, city, postal_code, linkedin,
		     twitter, user_status, date_of_joining, notes, password_hash, created_by, modified_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.FullName, u.FirstName, u.LastName, u.Email, u.Role, u.JobTitle, u.Department,
		u.Organization, encodeStrings(u.Site), u.BusinessPhone, u.MobileNo, u.Address, u.City,
		u.PostalCode, u.LinkedIn, u.Twitter, u.UserStatus, u.DateOfJoining, u.Notes,
		nullString(u.PasswordHash), u.CreatedBy, u.ModifiedBy,
	)
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

// GetUser returns a user by ID.
func GetUser(ctx context.Context, db DBTX, id string) (*model.User, error) {
	u, err := scanUser(db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// GetUserByEmail returns a user by email, compared case-insensitively.
func GetUserByEmail(ctx context.Context, db DBTX, email string) (*model.User, error) {
	u, err := scanUser(db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower(?)`, email,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	return u, nil
}

// ListUsers returns all users in creation order.
func ListUsers(ctx context.Context, db DBTX) ([]model.User, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// CountUsers returns the number of users.
func CountUsers(ctx context.Context, db DBTX) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return n, nil
}

// UpdateUser replaces a user's profile fields. Password and avatar are
// changed through their own functions.
func UpdateUser(ctx context.Context, db DBTX, u *model.User) error {
	result, err := db.ExecContext(ctx,
		`UPDATE users SET full_name = ?, first_name = ?, last_name = ?, email = ?, role = ?,
		     job_title = ?, department = ?, organization = ?, site = ?, business_phone = ?,
		     mobile_no = ?, address = ?, city = ?, postal_code = ?, linkedin = ?, twitter = ?,
		     user_status = ?, date_of_joining = ?, notes = ?, modified_by = ?,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		u.FullName, u.FirstName, u.LastName, u.Email, u.Role, u.JobTitle, u.Department,
		u.Organization, encodeStrings(u.Site), u.BusinessPhone, u.MobileNo, u.Address, u.City,
		u.PostalCode, u.LinkedIn, u.Twitter, u.UserStatus, u.DateOfJoining, u.Notes, u.ModifiedBy,
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	return requireRow(result, "user")
}

// UpdateUserPassword sets a user's password hash.
func UpdateUserPassword(ctx context.Context, db DBTX, id, passwordHash string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("updating user password: %w", err)
	}
	return requireRow(result, "user")
}

// SetUserAvatar stores a user's avatar image.
func SetUserAvatar(ctx context.Context, db DBTX, id string, image []byte, mime string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE users SET avatar = ?, avatar_mime = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		image, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting user avatar: %w", err)
	}
	return requireRow(result, "user")
}

// GetUserAvatar returns a user's avatar data and MIME type.
func GetUserAvatar(ctx context.Context, db DBTX, id string) ([]byte, string, error) {
	var image []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT avatar, avatar_mime FROM users WHERE id = ?`, id,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting user avatar: %w", err)
	}
	return image, mime.String, nil
}

// CreatePlatformAccount records an external account for a user.
func CreatePlatformAccount(ctx context.Context, db DBTX, a *model.PlatformAccount) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO platform_accounts (id, user_id, platform, account_type, email, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.Platform, a.AccountType, a.Email, a.Status,
	)
	if err != nil {
		return fmt.Errorf("creating platform account: %w", err)
	}
	return nil
}

// ListPlatformAccounts returns the accounts held by a user.
func ListPlatformAccounts(ctx context.Context, db DBTX, userID string) ([]model.PlatformAccount, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, user_id, platform, account_type, email, status, created_at
		 FROM platform_accounts WHERE user_id = ? ORDER BY rowid`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing platform accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.PlatformAccount
	for rows.Next() {
		var a model.PlatformAccount
		if err := rows.Scan(&a.ID, &a.UserID, &a.Platform, &a.AccountType, &a.Email, &a.Status, &a.CreatedDate); err != nil {
			return nil, fmt.Errorf("scanning platform account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// requireRow turns an update that touched nothing into an error.
func requireRow(result sql.Result, what string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %w", what, ErrNotFound)
	}
	return nil
}
