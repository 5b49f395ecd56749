package archive

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Database holds one archive document in memory and mirrors it to a single
// JSON file. Every mutation rewrites the whole file.
//
// A Database is not safe for concurrent use, and two processes sharing one
// file will overwrite each other's changes.
type Database struct {
	path   string
	doc    Document
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Database.
type Option func(*Database)

// WithClock sets the clock used to stamp records that lack created_at.
func WithClock(now func() time.Time) Option {
	return func(db *Database) {
		db.now = now
	}
}

// WithLogger sets the logger for load and save events.
func WithLogger(logger *slog.Logger) Option {
	return func(db *Database) {
		db.logger = logger
	}
}

// New creates a Database backed by path holding the default document.
// It does not touch the filesystem.
func New(path string, opts ...Option) *Database {
	db := &Database{
		path:   path,
		doc:    NewDocument(),
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// Open creates a Database backed by path and loads it.
// A missing file yields the default document.
func Open(path string, opts ...Option) (*Database, error) {
	db := New(path, opts...)
	if err := db.Load(); err != nil {
		return nil, err
	}
	return db, nil
}

// Path returns the backing file path.
func (db *Database) Path() string {
	return db.path
}

// Len returns the number of records.
func (db *Database) Len() int {
	return len(db.doc.Records)
}

// Load replaces the in-memory document with the contents of the backing file.
// If the file does not exist the current document is kept.
func (db *Database) Load() error {
	data, err := os.ReadFile(db.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			db.logger.Debug("archive file not found, using empty archive", "path", db.path)
			return nil
		}
		return fmt.Errorf("reading archive: %w", err)
	}

	doc, err := DecodeDocument(data)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrMalformedStore, db.path, err)
	}
	db.doc = doc
	db.logger.Debug("loaded archive", "path", db.path, "records", len(doc.Records),
		"custom_fields", doc.Schema.CustomFields.Len())
	return nil
}

// Save writes the whole document to the backing file.
func (db *Database) Save() error {
	data, err := EncodeDocument(db.doc)
	if err != nil {
		return fmt.Errorf("encoding archive: %w", err)
	}
	if err := writeFileAtomic(db.path, data); err != nil {
		return fmt.Errorf("saving archive: %w", err)
	}
	db.logger.Debug("saved archive", "path", db.path, "bytes", len(data))
	return nil
}

// AddCustomField declares a custom field, replacing the description of an
// existing field with the same name, then saves.
func (db *Database) AddCustomField(name, description string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyFieldName
	}

	custom := &db.doc.Schema.CustomFields
	prev, existed := custom.Set(name, description)
	if err := db.Save(); err != nil {
		if existed {
			custom.Set(name, prev)
		} else {
			custom.Delete(name)
		}
		return err
	}
	return nil
}

// AddRecord appends rec and saves. A record without created_at is stamped
// with the database clock. It returns the record as stored.
func (db *Database) AddRecord(rec Record) (Record, error) {
	if err := rec.Validate(); err != nil {
		return Record{}, err
	}
	if rec.CreatedAt == "" {
		rec.CreatedAt = db.now().Format(CreatedAtLayout)
	}

	n := len(db.doc.Records)
	db.doc.Records = append(db.doc.Records, rec)
	if err := db.Save(); err != nil {
		db.doc.Records = db.doc.Records[:n]
		return Record{}, err
	}
	return rec, nil
}

// Import appends several records with a single save. All records are
// validated first, so an invalid record leaves the archive unchanged.
func (db *Database) Import(records []Record) (int, error) {
	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			return 0, fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	if len(records) == 0 {
		return 0, nil
	}

	n := len(db.doc.Records)
	stamp := db.now().Format(CreatedAtLayout)
	for _, rec := range records {
		if rec.CreatedAt == "" {
			rec.CreatedAt = stamp
		}
		db.doc.Records = append(db.doc.Records, rec)
	}
	if err := db.Save(); err != nil {
		db.doc.Records = db.doc.Records[:n]
		return 0, err
	}
	return len(records), nil
}

// FindByIndex returns the first record whose Index equals index exactly.
func (db *Database) FindByIndex(index string) (Record, bool) {
	for _, rec := range db.doc.Records {
		if rec.Index == index {
			return rec, true
		}
	}
	return Record{}, false
}

// ListRecords returns the records in insertion order. The returned slice is
// a copy; custom field values are shared with the database.
func (db *Database) ListRecords() []Record {
	records := make([]Record, len(db.doc.Records))
	copy(records, db.doc.Records)
	return records
}

// Schema returns a copy of the current schema.
func (db *Database) Schema() Schema {
	return db.doc.Schema.Clone()
}

// Document returns the current document. Records are copied as in ListRecords.
func (db *Database) Document() Document {
	return Document{
		Schema:  db.Schema(),
		Records: db.ListRecords(),
	}
}

// EncodeDocument renders doc as indented JSON with non-ASCII text kept literal.
func EncodeDocument(doc Document) ([]byte, error) {
	if doc.Records == nil {
		doc.Records = []Record{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeDocument parses a whole archive document. The top level must be a
// JSON object.
func DecodeDocument(data []byte) (Document, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '{' {
		return Document{}, errors.New("top level is not a JSON object")
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, err
	}
	doc.normalize()
	return doc, nil
}
