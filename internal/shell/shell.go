// Package shell implements the interactive archive menu. It only collects
// input and prints results; every change goes through the Store.
package shell

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/matsen/archive/internal/archive"
	"github.com/matsen/archive/internal/pdf"
)

// DOIField is the custom field that is prefilled from a PDF's DOI.
const DOIField = "doi"

// Store is the part of archive.Database the shell uses.
type Store interface {
	Schema() archive.Schema
	AddCustomField(name, description string) error
	AddRecord(rec archive.Record) (archive.Record, error)
	ListRecords() []archive.Record
	FindByIndex(index string) (archive.Record, bool)
}

// Shell is a menu loop over a Store.
type Shell struct {
	store   Store
	in      *bufio.Reader
	out     io.Writer
	inspect func(path string) pdf.Hints
}

// Option configures a Shell.
type Option func(*Shell)

// WithInspector replaces the function used to read hints from file content.
func WithInspector(inspect func(path string) pdf.Hints) Option {
	return func(s *Shell) {
		s.inspect = inspect
	}
}

// New creates a shell reading from in and writing to out.
func New(store Store, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		store:   store,
		in:      bufio.NewReader(in),
		out:     out,
		inspect: pdf.Inspect,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type action func() error

// Run shows the menu until the user exits or input ends. Only input errors
// are returned; store errors are reported and the loop continues.
func (s *Shell) Run() error {
	menu := map[string]action{
		"1": s.showSchema,
		"2": s.createCustomField,
		"3": s.createRecord,
		"4": s.showRecords,
		"5": s.searchByIndex,
	}

	for {
		s.printf("\nArchive Management Menu\n")
		s.printf("1) Show current field schema\n")
		s.printf("2) Add custom field\n")
		s.printf("3) Add archive record\n")
		s.printf("4) List records\n")
		s.printf("5) Find record by Index\n")
		s.printf("0) Exit\n")

		choice, err := s.prompt("Select an option: ")
		if errors.Is(err, io.EOF) || choice == "0" {
			s.printf("Bye.\n")
			return nil
		}
		if err != nil {
			return err
		}

		act, ok := menu[choice]
		if !ok {
			s.printf("Invalid choice.\n")
			continue
		}
		if err := act(); err != nil {
			if errors.Is(err, io.EOF) {
				s.printf("\nBye.\n")
				return nil
			}
			if isInputError(err) {
				return err
			}
			s.printf("error: %v\n", err)
		}
	}
}

func (s *Shell) showSchema() error {
	schema := s.store.Schema()

	s.printf("\nBasic fields:\n")
	for name, desc := range schema.BasicFields.All() {
		s.printf("- %s: %s\n", name, desc)
	}

	s.printf("Custom fields:\n")
	if schema.CustomFields.Len() == 0 {
		s.printf("- (none)\n")
		return nil
	}
	for name, desc := range schema.CustomFields.All() {
		s.printf("- %s: %s\n", name, desc)
	}
	return nil
}

func (s *Shell) createCustomField() error {
	name, err := s.prompt("Custom field varname (e.g., department): ")
	if err != nil {
		return err
	}
	description, err := s.prompt("Description: ")
	if err != nil {
		return err
	}

	if err := s.store.AddCustomField(name, description); err != nil {
		if errors.Is(err, archive.ErrEmptyFieldName) {
			s.printf("Field varname cannot be empty.\n")
			return nil
		}
		return err
	}
	s.printf("Custom field '%s' saved.\n", name)
	return nil
}

func (s *Shell) createRecord() error {
	s.printf("\nFill in basic fields\n")
	var rec archive.Record
	for _, f := range []struct {
		label string
		dst   *string
	}{
		{"Index: ", &rec.Index},
		{"Title: ", &rec.Title},
		{"Published time: ", &rec.Time},
		{"Author or publisher: ", &rec.AuthorOrPublisher},
	} {
		value, err := s.prompt(f.label)
		if err != nil {
			return err
		}
		*f.dst = value
	}

	modeInput, err := s.prompt("Store content as (text/file): ")
	if err != nil {
		return err
	}
	mode, err := archive.ParseContentMode(modeInput)
	if err != nil {
		s.printf("Invalid content mode; choose 'text' or 'file'.\n")
		return nil
	}
	rec.ContentMode = mode

	label := "Enter text content: "
	if mode == archive.ContentFile {
		label = "Enter local file path: "
	}
	if rec.Content, err = s.prompt(label); err != nil {
		return err
	}

	schema := s.store.Schema()
	var hints pdf.Hints
	if mode == archive.ContentFile && rec.Content != "" {
		_, wantDOI := schema.CustomFields.Get(DOIField)
		if rec.Title == "" || wantDOI {
			hints = s.inspect(rec.Content)
		}
	}
	if rec.Title == "" && hints.Title != "" {
		rec.Title = hints.Title
		s.printf("Title taken from file: %s\n", rec.Title)
	}

	for name := range schema.CustomFields.All() {
		value, err := s.prompt(name + ": ")
		if err != nil {
			return err
		}
		if value == "" && name == DOIField && hints.DOI != "" {
			value = hints.DOI
			s.printf("%s taken from file: %s\n", name, value)
		}
		rec.CustomFields.Set(name, value)
	}

	if _, err := s.store.AddRecord(rec); err != nil {
		return err
	}
	s.printf("Record saved.\n")
	return nil
}

func (s *Shell) showRecords() error {
	records := s.store.ListRecords()
	if len(records) == 0 {
		s.printf("No records yet.\n")
		return nil
	}

	for i, rec := range records {
		s.printf("\n[%d] %s | %s\n", i+1, rec.Index, rec.Title)
		if err := s.printRecord(rec); err != nil {
			return err
		}
	}
	return nil
}

func (s *Shell) searchByIndex() error {
	index, err := s.prompt("Index to find: ")
	if err != nil {
		return err
	}

	rec, ok := s.store.FindByIndex(index)
	if !ok {
		s.printf("Not found.\n")
		return nil
	}
	return s.printRecord(rec)
}

func (s *Shell) printRecord(rec archive.Record) error {
	data, err := FormatRecord(rec)
	if err != nil {
		return err
	}
	s.printf("%s\n", data)
	return nil
}

// FormatRecord renders a record as 2-space indented JSON with non-ASCII
// text kept literal.
func FormatRecord(rec archive.Record) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return "", fmt.Errorf("encoding record: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// inputError marks a failure reading from the input stream.
type inputError struct{ err error }

func (e inputError) Error() string { return "reading input: " + e.err.Error() }
func (e inputError) Unwrap() error { return e.err }

func isInputError(err error) bool {
	var ie inputError
	return errors.As(err, &ie)
}

// prompt prints label and returns the next trimmed input line. Lines have
// no length limit.
func (s *Shell) prompt(label string) (string, error) {
	s.printf("%s", label)
	line, err := s.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", inputError{err}
		}
		// A final line without a newline still counts.
		if line == "" {
			return "", io.EOF
		}
	}
	return strings.TrimSpace(line), nil
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
