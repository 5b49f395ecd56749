// Package index builds a SQLite mirror of an archive document so it can be
// read by external SQL tools. The JSON archive file stays the source of truth;
// the mirror is rebuilt from it and remembers the hash of the file it came from.
package index

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/matsen/archive/internal/archive"
	_ "modernc.org/sqlite"
)

// Index is an open SQLite mirror.
type Index struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the mirror at path and ensures its tables exist.
func Open(path string) (*Index, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	ix := &Index{db: db, path: path}
	if err := ix.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}
	return ix, nil
}

// Close closes the database.
func (ix *Index) Close() error {
	return ix.db.Close()
}

// Path returns the database file path.
func (ix *Index) Path() string {
	return ix.path
}

func (ix *Index) createTables() error {
	for _, ddl := range schemaDDL {
		if _, err := ix.db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}

// ComputeFileHash computes a SHA256 hash of a file's contents.
// A missing file hashes like an empty one.
func ComputeFileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			h := sha256.Sum256([]byte{})
			return hex.EncodeToString(h[:]), nil
		}
		return "", fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// NeedsSync reports whether the mirror was built from something other than
// the file with the given hash.
func (ix *Index) NeedsSync(sourceHash string) (bool, error) {
	stored, err := ix.getMeta(metaSourceHash)
	if err != nil {
		return true, err
	}
	return stored != sourceHash, nil
}

// LastSync returns when the mirror was last rebuilt, or the zero time.
func (ix *Index) LastSync() (time.Time, error) {
	value, err := ix.getMeta(metaLastSync)
	if err != nil || value == "" {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, value)
}

// Rebuild clears the mirror and reloads it from doc in one transaction.
func (ix *Index) Rebuild(doc archive.Document, sourceHash string, now time.Time) error {
	tx, err := ix.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"records", "record_fields", "schema_fields", "records_fts"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if err := insertSchema(tx, doc.Schema); err != nil {
		return err
	}
	for i, rec := range doc.Records {
		if err := insertRecord(tx, i+1, rec); err != nil {
			return fmt.Errorf("inserting record %d: %w", i+1, err)
		}
	}

	if err := setMeta(tx, metaSourceHash, sourceHash); err != nil {
		return fmt.Errorf("updating hash: %w", err)
	}
	if err := setMeta(tx, metaLastSync, now.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("updating sync time: %w", err)
	}

	return tx.Commit()
}

// Count returns the number of mirrored records.
func (ix *Index) Count() (int, error) {
	var n int
	err := ix.db.QueryRow("SELECT COUNT(*) FROM records").Scan(&n)
	return n, err
}

func insertSchema(tx *sql.Tx, schema archive.Schema) error {
	sections := []struct {
		kind   string
		fields archive.Fields
	}{
		{"basic", schema.BasicFields},
		{"custom", schema.CustomFields},
	}

	pos := 0
	for _, section := range sections {
		for name, desc := range section.fields.All() {
			pos++
			if _, err := tx.Exec(
				`INSERT INTO schema_fields (kind, name, description, position) VALUES (?, ?, ?, ?)`,
				section.kind, name, desc, pos); err != nil {
				return fmt.Errorf("inserting %s field %q: %w", section.kind, name, err)
			}
		}
	}
	return nil
}

func insertRecord(tx *sql.Tx, seq int, rec archive.Record) error {
	if _, err := tx.Exec(`INSERT INTO records
  (seq, index_code, title, time, author_or_publisher, content_mode, content, created_at)
  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		seq, rec.Index, rec.Title, rec.Time, rec.AuthorOrPublisher,
		string(rec.ContentMode), rec.Content, rec.CreatedAt); err != nil {
		return err
	}

	for name, value := range rec.CustomFields.All() {
		if _, err := tx.Exec(`INSERT INTO record_fields (seq, name, value) VALUES (?, ?, ?)`,
			seq, name, value); err != nil {
			return err
		}
	}

	// Only literal text is searchable; file-mode content is a path.
	text := ""
	if rec.ContentMode == archive.ContentText {
		text = rec.Content
	}
	_, err := tx.Exec(`INSERT INTO records_fts (seq, index_code, title, author_or_publisher, content)
  VALUES (?, ?, ?, ?, ?)`, seq, rec.Index, rec.Title, rec.AuthorOrPublisher, text)
	return err
}
