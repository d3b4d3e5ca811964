package journal

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func decodeLines(t *testing.T, data []byte) []Entry {
	t.Helper()
	var entries []Entry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("invalid journal line %q: %v", scanner.Text(), err)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestRecordFillsDefaults(t *testing.T) {
	var buf bytes.Buffer
	j := New(&buf, "sess-1")

	if err := j.Record(Entry{Action: ActionAdd, Title: "Heat", Year: 1995, Position: 1, Success: true}); err != nil {
		t.Fatal(err)
	}
	if err := j.Record(Entry{Action: ActionSave, Count: 1, Success: true}); err != nil {
		t.Fatal(err)
	}

	entries := decodeLines(t, buf.Bytes())
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	e := entries[0]
	if !strings.HasPrefix(e.ID, "evt_") || len(e.ID) != 4+26 {
		t.Errorf("ID = %q, want evt_<ulid>", e.ID)
	}
	if e.Session != "sess-1" {
		t.Errorf("Session = %q, want 'sess-1'", e.Session)
	}
	if e.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
	if e.Action != ActionAdd || e.Title != "Heat" || e.Year != 1995 {
		t.Errorf("entry = %+v", e)
	}
	if entries[0].ID == entries[1].ID {
		t.Error("entries share an ID")
	}
}

func TestRecordKeepsExplicitValues(t *testing.T) {
	var buf bytes.Buffer
	j := New(&buf, "sess")
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	j.Record(Entry{ID: "fixed", Timestamp: ts, Session: "other", Action: ActionDelete})

	e := decodeLines(t, buf.Bytes())[0]
	if e.ID != "fixed" || e.Session != "other" || !e.Timestamp.Equal(ts) {
		t.Errorf("entry = %+v", e)
	}
}

func TestNilJournalIsNoop(t *testing.T) {
	var j *Journal
	if err := j.Record(Entry{Action: ActionLoad}); err != nil {
		t.Errorf("Record() on nil = %v", err)
	}
	if err := j.Close(); err != nil {
		t.Errorf("Close() on nil = %v", err)
	}
	if j.Session() != "" {
		t.Error("Session() on nil should be empty")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("boom") }

func TestRecordWriteError(t *testing.T) {
	j := New(failingWriter{}, "s")
	if err := j.Record(Entry{Action: ActionSave}); err == nil {
		t.Error("Record() error = nil, want error")
	}
}

func TestOpenWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log", "journal.log")
	j := Open(path, "sess", 0, 0)

	if err := j.Record(Entry{Action: ActionLoad, Count: 3, Success: true}); err != nil {
		t.Fatal(err)
	}
	if err := j.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	entries := decodeLines(t, data)
	if len(entries) != 1 || entries[0].Count != 3 {
		t.Errorf("entries = %+v", entries)
	}
}

func TestCloseTwice(t *testing.T) {
	j := Open(filepath.Join(t.TempDir(), "journal.log"), "sess", 0, 0)
	if err := j.Record(Entry{Action: ActionSave, Success: true}); err != nil {
		t.Fatal(err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("first Close() = %v", err)
	}
	if err := j.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}
