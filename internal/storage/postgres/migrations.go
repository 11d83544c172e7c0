package postgres

import "database/sql"

// schema sets up the documents table plus the users and verification tables
// the account layer reads through database/sql directly.
// These run on startup to ensure tables exist.
const schema = `
CREATE TABLE IF NOT EXISTS documents (
    user_id    TEXT  NOT NULL,
    collection TEXT  NOT NULL,
    id         TEXT  NOT NULL,
    data       JSONB NOT NULL,
    PRIMARY KEY (user_id, collection, id)
);

CREATE INDEX IF NOT EXISTS idx_documents_user_collection ON documents(user_id, collection);

CREATE TABLE IF NOT EXISTS users (
    id                 UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    email              TEXT NOT NULL UNIQUE,
    name               TEXT NOT NULL,
    password_hash      TEXT NOT NULL,
    budget             BIGINT NOT NULL DEFAULT 0,
    two_factor_enabled BOOLEAN NOT NULL DEFAULT FALSE,
    two_factor_secret  TEXT NOT NULL DEFAULT '',
    hash_token         TEXT NOT NULL,
    is_verified        BOOLEAN NOT NULL DEFAULT FALSE,
    created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS email_verification_codes (
    user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    code       TEXT NOT NULL,
    code_type  TEXT NOT NULL,
    expires_at TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (user_id, code_type)
);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
