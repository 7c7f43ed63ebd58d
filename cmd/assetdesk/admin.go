package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/assetdesk/internal/desk"
	"github.com/erazemk/assetdesk/internal/model"
)

// adminCredentials are the login details of an admin whose password was
// just generated.
type adminCredentials struct {
	Name     string
	Email    string
	Password string
	Created  bool
}

// ensureAdmin makes sure some admin can log in. When no admin has a
// password the earliest admin gets a generated one; when there is no admin
// at all one is created first. It returns nil when nothing changed.
func ensureAdmin(ctx context.Context, d *desk.Desk, email string) (*adminCredentials, error) {
	users, err := d.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Role == model.RoleAdmin && u.PasswordHash != "" {
			return nil, nil
		}
	}

	admin, err := d.FirstAdmin(ctx)
	if err != nil {
		return nil, err
	}
	created := false
	if admin == nil {
		admin, err = d.SaveUser(ctx, nil, &model.User{
			FullName: "Admin",
			Email:    email,
			Role:     model.RoleAdmin,
		})
		if err != nil {
			return nil, fmt.Errorf("creating admin user: %w", err)
		}
		created = true
	}

	password, err := generatePassword(16)
	if err != nil {
		return nil, fmt.Errorf("generating password: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	if err := d.SetPasswordHash(ctx, admin.ID, string(hash)); err != nil {
		return nil, fmt.Errorf("storing admin password: %w", err)
	}

	return &adminCredentials{Name: admin.FullName, Email: admin.Email, Password: password, Created: created}, nil
}

// printInitResult prints the generated admin login.
func printInitResult(w io.Writer, dbPath string, c *adminCredentials) {
	fmt.Fprintf(w, "Database: %s\n", dbPath)
	fmt.Fprintln(w)
	if c.Created {
		fmt.Fprintln(w, "Admin account created:")
	} else {
		fmt.Fprintln(w, "Admin password set:")
	}
	fmt.Fprintf(w, "  Name:     %s\n", c.Name)
	fmt.Fprintf(w, "  Email:    %s\n", c.Email)
	fmt.Fprintf(w, "  Password: %s\n", c.Password)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Save this password, it cannot be recovered.")
	fmt.Fprintln(w, "The admin can change it after logging in.")
	fmt.Fprintln(w)
}

// generatePassword creates a random password of the given length.
func generatePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}
