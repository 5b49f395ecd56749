package shell

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matsen/archive/internal/archive"
	"github.com/matsen/archive/internal/pdf"
)

// runShell feeds the given input lines to a shell over a fresh database.
func runShell(t *testing.T, db *archive.Database, lines []string, opts ...Option) string {
	t.Helper()
	var out strings.Builder
	sh := New(db, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, opts...)
	if err := sh.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}

func setupTestDatabase(t *testing.T) *archive.Database {
	t.Helper()
	db, err := archive.Open(filepath.Join(t.TempDir(), "archive_db.json"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return db
}

func noHints(string) pdf.Hints { return pdf.Hints{} }

func TestExit(t *testing.T) {
	out := runShell(t, setupTestDatabase(t), []string{"0"})
	if !strings.Contains(out, "Archive Management Menu") {
		t.Errorf("menu not shown:\n%s", out)
	}
	if !strings.HasSuffix(out, "Bye.\n") {
		t.Errorf("missing farewell:\n%s", out)
	}
}

func TestEOFExits(t *testing.T) {
	var out strings.Builder
	sh := New(setupTestDatabase(t), strings.NewReader(""), &out)
	if err := sh.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "Bye.") {
		t.Errorf("EOF should exit cleanly:\n%s", out.String())
	}
}

func TestInvalidChoice(t *testing.T) {
	out := runShell(t, setupTestDatabase(t), []string{"9", "0"})
	if !strings.Contains(out, "Invalid choice.") {
		t.Errorf("missing invalid choice message:\n%s", out)
	}
	if n := strings.Count(out, "Archive Management Menu"); n != 2 {
		t.Errorf("menu shown %d times, want 2", n)
	}
}

func TestShowSchema(t *testing.T) {
	db := setupTestDatabase(t)
	out := runShell(t, db, []string{"1", "0"})
	for _, want := range []string{
		"Basic fields:\n- Index: Archival index code\n- Title: Document title\n",
		"- time: Published time\n- author_or_publisher: Author or publication name\n",
		"Custom fields:\n- (none)\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if err := db.AddCustomField("box", "Storage box"); err != nil {
		t.Fatalf("AddCustomField: %v", err)
	}
	out = runShell(t, db, []string{"1", "0"})
	if !strings.Contains(out, "Custom fields:\n- box: Storage box\n") {
		t.Errorf("custom field not listed:\n%s", out)
	}
}

func TestCreateCustomField(t *testing.T) {
	db := setupTestDatabase(t)
	out := runShell(t, db, []string{
		"2", "department", "Owning department",
		"2", "   ", "ignored",
		"0",
	})

	if !strings.Contains(out, "Custom field 'department' saved.") {
		t.Errorf("missing confirmation:\n%s", out)
	}
	if !strings.Contains(out, "Field varname cannot be empty.") {
		t.Errorf("missing empty-name message:\n%s", out)
	}
	custom := db.Schema().CustomFields
	if custom.Len() != 1 {
		t.Fatalf("custom fields = %v", custom.Names())
	}
	if desc, _ := custom.Get("department"); desc != "Owning department" {
		t.Errorf("description = %q", desc)
	}
}

func TestCreateRecord(t *testing.T) {
	db := setupTestDatabase(t)
	if err := db.AddCustomField("box", "Storage box"); err != nil {
		t.Fatalf("AddCustomField: %v", err)
	}

	out := runShell(t, db, []string{
		"3", " A01 ", "Harbour minutes", "1921", "Harbour Commission", "TEXT", "dredging schedule", "12",
		"0",
	}, WithInspector(noHints))

	if !strings.Contains(out, "Record saved.") {
		t.Fatalf("record not saved:\n%s", out)
	}
	rec, ok := db.FindByIndex("A01")
	if !ok {
		t.Fatal("record not found by trimmed index")
	}
	if rec.ContentMode != archive.ContentText || rec.Content != "dredging schedule" {
		t.Errorf("content = %q/%q", rec.ContentMode, rec.Content)
	}
	if v, _ := rec.CustomFields.Get("box"); v != "12" {
		t.Errorf("box = %q", v)
	}
	if rec.CreatedAt == "" {
		t.Error("created_at not set")
	}
}

func TestCreateRecordLongContent(t *testing.T) {
	db := setupTestDatabase(t)
	content := strings.Repeat("dredging schedule ", 4096) + "end"

	out := runShell(t, db, []string{
		"3", "A01", "Harbour minutes", "1921", "Harbour Commission", "text", content,
		"5", "A01",
		"0",
	}, WithInspector(noHints))

	if !strings.Contains(out, "Record saved.") {
		t.Fatalf("record not saved:\n%.200s", out)
	}
	rec, ok := db.FindByIndex("A01")
	if !ok {
		t.Fatal("record not found")
	}
	if rec.Content != content {
		t.Errorf("content length = %d, want %d", len(rec.Content), len(content))
	}
	if !strings.Contains(out, `end"`) {
		t.Error("find did not print the full content")
	}
}

func TestLastLineWithoutNewline(t *testing.T) {
	var out strings.Builder
	sh := New(setupTestDatabase(t), strings.NewReader("9\n0"), &out)
	if err := sh.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "Invalid choice.") {
		t.Errorf("first line not read:\n%s", out.String())
	}
	if !strings.HasSuffix(out.String(), "Bye.\n") {
		t.Errorf("missing farewell:\n%s", out.String())
	}
}

func TestCreateRecordInvalidMode(t *testing.T) {
	db := setupTestDatabase(t)
	out := runShell(t, db, []string{
		"3", "A01", "t", "1921", "a", "url",
		"0",
	})
	if !strings.Contains(out, "Invalid content mode; choose 'text' or 'file'.") {
		t.Errorf("missing invalid mode message:\n%s", out)
	}
	if len(db.ListRecords()) != 0 {
		t.Error("record should not be added")
	}
}

func TestCreateRecordFileHints(t *testing.T) {
	db := setupTestDatabase(t)
	if err := db.AddCustomField(DOIField, "Digital object identifier"); err != nil {
		t.Fatalf("AddCustomField: %v", err)
	}

	var inspected string
	inspect := func(path string) pdf.Hints {
		inspected = path
		return pdf.Hints{Title: "A Survey of the Inner Basin", DOI: "10.1234/basin.1925"}
	}

	runShell(t, db, []string{
		"3", "M1", "", "1925", "Survey Office", "file", "/scans/basin.pdf", "",
		"0",
	}, WithInspector(inspect))

	if inspected != "/scans/basin.pdf" {
		t.Errorf("inspected %q", inspected)
	}
	rec, ok := db.FindByIndex("M1")
	if !ok {
		t.Fatal("record not saved")
	}
	if rec.Title != "A Survey of the Inner Basin" {
		t.Errorf("Title = %q", rec.Title)
	}
	if v, _ := rec.CustomFields.Get(DOIField); v != "10.1234/basin.1925" {
		t.Errorf("doi = %q", v)
	}
}

func TestCreateRecordTypedValuesWin(t *testing.T) {
	db := setupTestDatabase(t)
	if err := db.AddCustomField(DOIField, ""); err != nil {
		t.Fatalf("AddCustomField: %v", err)
	}
	inspect := func(string) pdf.Hints {
		return pdf.Hints{Title: "From file", DOI: "10.1234/from.file"}
	}

	runShell(t, db, []string{
		"3", "M2", "Typed title", "1925", "a", "file", "/x.pdf", "10.9999/typed",
		"0",
	}, WithInspector(inspect))

	rec, _ := db.FindByIndex("M2")
	if rec.Title != "Typed title" {
		t.Errorf("Title = %q", rec.Title)
	}
	if v, _ := rec.CustomFields.Get(DOIField); v != "10.9999/typed" {
		t.Errorf("doi = %q", v)
	}
}

func TestShowRecords(t *testing.T) {
	db := setupTestDatabase(t)
	out := runShell(t, db, []string{"4", "0"})
	if !strings.Contains(out, "No records yet.") {
		t.Errorf("missing empty message:\n%s", out)
	}

	for _, idx := range []string{"A01", "A02"} {
		rec := archive.Record{Index: idx, Title: "Café " + idx, ContentMode: archive.ContentText}
		if _, err := db.AddRecord(rec); err != nil {
			t.Fatalf("AddRecord: %v", err)
		}
	}
	out = runShell(t, db, []string{"4", "0"})
	if !strings.Contains(out, "[1] A01 | Café A01") || !strings.Contains(out, "[2] A02 | Café A02") {
		t.Errorf("records not listed:\n%s", out)
	}
	if !strings.Contains(out, "  \"Index\": \"A01\",") {
		t.Errorf("record JSON not indented:\n%s", out)
	}
}

func TestSearchByIndex(t *testing.T) {
	db := setupTestDatabase(t)
	for _, title := range []string{"X", "Y"} {
		if _, err := db.AddRecord(archive.Record{Index: "A01", Title: title, ContentMode: archive.ContentText}); err != nil {
			t.Fatalf("AddRecord: %v", err)
		}
	}

	out := runShell(t, db, []string{"5", "A01", "5", "B02", "0"})
	if !strings.Contains(out, `"Title": "X"`) {
		t.Errorf("first match not shown:\n%s", out)
	}
	if strings.Contains(out, `"Title": "Y"`) {
		t.Errorf("second match should not be shown:\n%s", out)
	}
	if !strings.Contains(out, "Not found.") {
		t.Errorf("missing not found message:\n%s", out)
	}
}

// failingStore rejects every write.
type failingStore struct {
	*archive.Database
}

func (failingStore) AddCustomField(string, string) error {
	return errors.New("disk full")
}

func TestStoreErrorKeepsLoopRunning(t *testing.T) {
	store := failingStore{setupTestDatabase(t)}
	var out strings.Builder
	sh := New(store, strings.NewReader("2\nbox\nd\n0\n"), &out)
	if err := sh.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "error: disk full") {
		t.Errorf("store error not reported:\n%s", out.String())
	}
	if !strings.HasSuffix(out.String(), "Bye.\n") {
		t.Errorf("loop should continue to exit:\n%s", out.String())
	}
}

func TestFormatRecord(t *testing.T) {
	rec := archive.Record{
		Index: "A<1>", Title: "档案", ContentMode: archive.ContentFile, Content: "/a&b.pdf",
		CustomFields: archive.NewFields("box", "3"), CreatedAt: "2024-01-01T00:00:00",
	}
	got, err := FormatRecord(rec)
	if err != nil {
		t.Fatalf("FormatRecord: %v", err)
	}
	for _, want := range []string{`"Index": "A<1>"`, `"Title": "档案"`, `"content": "/a&b.pdf"`, `"box": "3"`} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %s in:\n%s", want, got)
		}
	}
	if strings.HasSuffix(got, "\n") {
		t.Error("trailing newline should be trimmed")
	}
}
