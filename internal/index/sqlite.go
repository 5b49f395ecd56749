package index

import (
	"database/sql"
)

const (
	metaSourceHash = "source_hash"
	metaLastSync   = "last_sync"
)

// schemaDDL creates the mirror tables. seq is the 1-based position of the
// record in the archive, since Index values are not unique.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS records (
  seq INTEGER PRIMARY KEY,
  index_code TEXT NOT NULL,
  title TEXT,
  time TEXT,
  author_or_publisher TEXT,
  content_mode TEXT,
  content TEXT,
  created_at TEXT
)`,
	`CREATE INDEX IF NOT EXISTS idx_records_index_code ON records(index_code)`,
	`CREATE TABLE IF NOT EXISTS record_fields (
  seq INTEGER NOT NULL REFERENCES records(seq),
  name TEXT NOT NULL,
  value TEXT,
  PRIMARY KEY (seq, name)
)`,
	`CREATE TABLE IF NOT EXISTS schema_fields (
  kind TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT,
  position INTEGER,
  PRIMARY KEY (kind, name)
)`,
	`CREATE VIRTUAL TABLE IF NOT EXISTS records_fts USING fts5(
  seq UNINDEXED,
  index_code,
  title,
  author_or_publisher,
  content
)`,
	`CREATE TABLE IF NOT EXISTS _meta (
  key TEXT PRIMARY KEY,
  value TEXT
)`,
}

// getMeta reads a value from the _meta table, returning "" when absent.
func (ix *Index) getMeta(key string) (string, error) {
	var value sql.NullString
	err := ix.db.QueryRow("SELECT value FROM _meta WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value.String, nil
}

// setMeta stores a value in the _meta table.
func setMeta(tx *sql.Tx, key, value string) error {
	_, err := tx.Exec(`INSERT OR REPLACE INTO _meta (key, value) VALUES (?, ?)`, key, value)
	return err
}
