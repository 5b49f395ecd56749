// Package archive implements the JSON-backed archive catalog: a document
// holding a field schema and an append-only sequence of records.
package archive

import (
	"fmt"
	"strings"
	"time"
)

// Basic field names. They are always present on a record.
const (
	FieldIndex             = "Index"
	FieldTitle             = "Title"
	FieldTime              = "time"
	FieldAuthorOrPublisher = "author_or_publisher"
)

// CreatedAtLayout is the ISO 8601 local timestamp layout used for created_at.
const CreatedAtLayout = "2006-01-02T15:04:05"

// ContentMode tells how a record's content is interpreted.
type ContentMode string

const (
	ContentText ContentMode = "text" // content is literal text
	ContentFile ContentMode = "file" // content is a filesystem path, never checked
)

// Valid reports whether m is one of the recognized content modes.
func (m ContentMode) Valid() bool {
	return m == ContentText || m == ContentFile
}

// ParseContentMode normalizes user input into a ContentMode.
func ParseContentMode(s string) (ContentMode, error) {
	m := ContentMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidContentMode, s)
	}
	return m, nil
}

// DefaultBasicFields returns the fixed basic field descriptions.
func DefaultBasicFields() Fields {
	return NewFields(
		FieldIndex, "Archival index code",
		FieldTitle, "Document title",
		FieldTime, "Published time",
		FieldAuthorOrPublisher, "Author or publication name",
	)
}

// Schema lists the field names and descriptions a record may carry.
type Schema struct {
	BasicFields  Fields `json:"basic_fields"`
	CustomFields Fields `json:"custom_fields"`
}

// Clone returns a copy that does not share storage with s.
func (s Schema) Clone() Schema {
	return Schema{
		BasicFields:  s.BasicFields.Clone(),
		CustomFields: s.CustomFields.Clone(),
	}
}

// Equal reports whether both schemas hold the same fields in the same order.
func (s Schema) Equal(other Schema) bool {
	return s.BasicFields.Equal(other.BasicFields) && s.CustomFields.Equal(other.CustomFields)
}

// Record is one archived item.
// CustomFields is a snapshot taken at creation and is not checked against the schema.
type Record struct {
	Index             string      `json:"Index"`
	Title             string      `json:"Title"`
	Time              string      `json:"time"`
	AuthorOrPublisher string      `json:"author_or_publisher"`
	ContentMode       ContentMode `json:"content_mode"`
	Content           string      `json:"content"`
	CustomFields      Fields      `json:"custom_fields"`
	CreatedAt         string      `json:"created_at"`
}

// NewRecord builds a record stamped with the current local time.
func NewRecord(index, title, published, author string, mode ContentMode, content string, custom Fields) Record {
	return Record{
		Index:             index,
		Title:             title,
		Time:              published,
		AuthorOrPublisher: author,
		ContentMode:       mode,
		Content:           content,
		CustomFields:      custom,
		CreatedAt:         time.Now().Format(CreatedAtLayout),
	}
}

// Validate checks the parts of a record the store enforces.
func (r Record) Validate() error {
	if !r.ContentMode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidContentMode, r.ContentMode)
	}
	return nil
}

// Equal reports whether both records hold the same values.
func (r Record) Equal(other Record) bool {
	return r.Index == other.Index &&
		r.Title == other.Title &&
		r.Time == other.Time &&
		r.AuthorOrPublisher == other.AuthorOrPublisher &&
		r.ContentMode == other.ContentMode &&
		r.Content == other.Content &&
		r.CreatedAt == other.CreatedAt &&
		r.CustomFields.Equal(other.CustomFields)
}

// Document is the whole persisted state.
type Document struct {
	Schema  Schema   `json:"schema"`
	Records []Record `json:"records"`
}

// NewDocument returns the state of an archive that has never been saved.
func NewDocument() Document {
	return Document{
		Schema: Schema{
			BasicFields:  DefaultBasicFields(),
			CustomFields: Fields{},
		},
		Records: []Record{},
	}
}

// normalize fills in sections missing from a decoded document.
func (d *Document) normalize() {
	if d.Schema.BasicFields.Len() == 0 {
		d.Schema.BasicFields = DefaultBasicFields()
	}
	if d.Records == nil {
		d.Records = []Record{}
	}
}

// Equal reports whether both documents are deeply equal.
func (d Document) Equal(other Document) bool {
	if !d.Schema.Equal(other.Schema) || len(d.Records) != len(other.Records) {
		return false
	}
	for i := range d.Records {
		if !d.Records[i].Equal(other.Records[i]) {
			return false
		}
	}
	return true
}
