package cache

const schema = `
CREATE TABLE resolution_cache (
	name TEXT PRIMARY KEY,
	year INTEGER NOT NULL DEFAULT 0,
	missing BOOLEAN NOT NULL DEFAULT 0,
	image_url TEXT NOT NULL DEFAULT '',
	file_page_url TEXT NOT NULL DEFAULT '',
	credit TEXT NOT NULL DEFAULT '',
	license_name TEXT NOT NULL DEFAULT '',
	license_url TEXT NOT NULL DEFAULT '',
	file_name TEXT NOT NULL DEFAULT '',
	fetched_at TIMESTAMP NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX idx_missing ON resolution_cache(missing);
CREATE INDEX idx_fetched_at ON resolution_cache(fetched_at);
`

// migrations contains incremental schema changes applied in order based on
// the current user_version. migrations[0] is empty because version 0 uses
// the base schema.
var migrations = []string{
	"",
}
