package repository

// SchemaStatements creates the authors table; every statement is idempotent
var SchemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS authors (
		id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		first_name    VARCHAR(100) NOT NULL CHECK (btrim(first_name) <> ''),
		family_name   VARCHAR(100) NOT NULL CHECK (btrim(family_name) <> ''),
		date_of_birth DATE,
		date_of_death DATE,
		version       INTEGER NOT NULL DEFAULT 0,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_authors_family_name ON authors (family_name, first_name)`,
}
