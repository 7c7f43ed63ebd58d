package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id              TEXT PRIMARY KEY,
    full_name       TEXT NOT NULL,
    first_name      TEXT NOT NULL DEFAULT '',
    last_name       TEXT NOT NULL DEFAULT '',
    email           TEXT NOT NULL,
    role            TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'user')),
    job_title       TEXT NOT NULL DEFAULT '',
    department      TEXT NOT NULL DEFAULT '',
    organization    TEXT NOT NULL DEFAULT '',
    site            TEXT NOT NULL DEFAULT '[]',
    business_phone  TEXT NOT NULL DEFAULT '',
    mobile_no       TEXT NOT NULL DEFAULT '',
    address         TEXT NOT NULL DEFAULT '',
    city            TEXT NOT NULL DEFAULT '',
    postal_code     TEXT NOT NULL DEFAULT '',
    linkedin        TEXT NOT NULL DEFAULT '',
    twitter         TEXT NOT NULL DEFAULT '',
    user_status     TEXT NOT NULL DEFAULT 'Active',
    date_of_joining TEXT NOT NULL DEFAULT '',
    notes           TEXT NOT NULL DEFAULT '',
    avatar          BLOB,
    avatar_mime     TEXT,
    password_hash   TEXT,
    created_by      TEXT NOT NULL DEFAULT '',
    modified_by     TEXT NOT NULL DEFAULT '',
    created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(lower(email));

CREATE TABLE IF NOT EXISTS platform_accounts (
    id           TEXT PRIMARY KEY,
    user_id      TEXT NOT NULL REFERENCES users(id),
    platform     TEXT NOT NULL,
    account_type TEXT NOT NULL DEFAULT '',
    email        TEXT NOT NULL DEFAULT '',
    status       TEXT NOT NULL DEFAULT 'Active',
    created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS vendors (
    id           TEXT PRIMARY KEY,
    name         TEXT NOT NULL,
    contact_name TEXT NOT NULL DEFAULT '',
    email        TEXT NOT NULL DEFAULT '',
    website      TEXT NOT NULL DEFAULT '',
    created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at   DATETIME
);

CREATE TABLE IF NOT EXISTS families (
    id               TEXT PRIMARY KEY,
    asset_type       TEXT NOT NULL CHECK (asset_type IN ('License', 'Hardware')),
    name             TEXT NOT NULL,
    product_code     TEXT NOT NULL DEFAULT '',
    category         TEXT NOT NULL DEFAULT '',
    vendor           TEXT NOT NULL DEFAULT '',
    manufacturer     TEXT NOT NULL DEFAULT '',
    model_number     TEXT NOT NULL DEFAULT '',
    description      TEXT NOT NULL DEFAULT '',
    assignment_model TEXT NOT NULL CHECK (assignment_model IN ('Single', 'Multiple')),
    created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS variants (
    id           TEXT PRIMARY KEY,
    family_id    TEXT NOT NULL REFERENCES families(id),
    name         TEXT NOT NULL,
    license_type TEXT NOT NULL DEFAULT '',
    cost         REAL NOT NULL DEFAULT 0,
    position     INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS assets (
    id                   TEXT PRIMARY KEY,
    asset_id             TEXT NOT NULL,
    family_id            TEXT NOT NULL REFERENCES families(id),
    title                TEXT NOT NULL,
    asset_type           TEXT NOT NULL,
    status               TEXT NOT NULL DEFAULT 'Available',
    variant_type         TEXT NOT NULL DEFAULT '',
    license_key          TEXT NOT NULL DEFAULT '',
    email                TEXT NOT NULL DEFAULT '',
    serial_number        TEXT NOT NULL DEFAULT '',
    mac_address          TEXT NOT NULL DEFAULT '',
    location             TEXT NOT NULL DEFAULT '',
    condition            TEXT NOT NULL DEFAULT '',
    purchase_date        TEXT NOT NULL DEFAULT '',
    renewal_date         TEXT NOT NULL DEFAULT '',
    warranty_expiry_date TEXT NOT NULL DEFAULT '',
    cost                 REAL NOT NULL DEFAULT 0,
    compliance_status    TEXT NOT NULL DEFAULT '',
    assigned_user_id     TEXT REFERENCES users(id),
    created_by           TEXT NOT NULL DEFAULT '',
    modified_by          TEXT NOT NULL DEFAULT '',
    created_at           DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at           DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_assets_family ON assets(family_id);

CREATE TABLE IF NOT EXISTS asset_assignees (
    asset_ref TEXT NOT NULL REFERENCES assets(id),
    user_id   TEXT NOT NULL REFERENCES users(id),
    position  INTEGER NOT NULL,
    PRIMARY KEY (asset_ref, user_id)
);

CREATE TABLE IF NOT EXISTS asset_active_users (
    asset_ref TEXT NOT NULL REFERENCES assets(id),
    user_id   TEXT NOT NULL REFERENCES users(id),
    position  INTEGER NOT NULL,
    PRIMARY KEY (asset_ref, user_id)
);

CREATE TABLE IF NOT EXISTS assignment_history (
    seq           INTEGER PRIMARY KEY,
    id            TEXT NOT NULL UNIQUE,
    asset_ref     TEXT NOT NULL REFERENCES assets(id),
    asset_id      TEXT NOT NULL,
    asset_name    TEXT NOT NULL,
    date          TEXT NOT NULL,
    type          TEXT NOT NULL CHECK (type IN ('Assigned', 'Reassigned', 'Usage Update')),
    assigned_from TEXT NOT NULL DEFAULT '',
    assigned_to   TEXT NOT NULL DEFAULT '',
    notes         TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_history_asset ON assignment_history(asset_ref);

CREATE TABLE IF NOT EXISTS requests (
    id             TEXT PRIMARY KEY,
    type           TEXT NOT NULL,
    item           TEXT NOT NULL,
    requested_by   TEXT NOT NULL REFERENCES users(id),
    status         TEXT NOT NULL DEFAULT 'Pending',
    request_date   TEXT NOT NULL,
    notes          TEXT NOT NULL DEFAULT '',
    family_id      TEXT NOT NULL DEFAULT '',
    linked_task_id TEXT,
    created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS tasks (
    id          TEXT PRIMARY KEY,
    request_id  TEXT NOT NULL UNIQUE REFERENCES requests(id),
    title       TEXT NOT NULL,
    assigned_to TEXT REFERENCES users(id),
    status      TEXT NOT NULL DEFAULT 'Todo',
    priority    TEXT NOT NULL DEFAULT 'Medium' CHECK (priority IN ('High', 'Medium', 'Low')),
    due_date    TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL,
    expires_at DATETIME NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist,
// then applies migrations.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return Migrate(db)
}
