// Package journal writes an append-only JSON-lines record of catalog changes
package journal

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Action identifies a catalog event
type Action string

const (
	ActionLoad    Action = "catalog.load"
	ActionAdd     Action = "movie.add"
	ActionDelete  Action = "movie.delete"
	ActionSave    Action = "catalog.save"
	ActionConvert Action = "catalog.convert"
	ActionRestore Action = "catalog.restore"
)

// Entry is one journal line
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Session   string    `json:"session,omitempty"`
	Action    Action    `json:"action"`
	Store     string    `json:"store,omitempty"`
	Position  int       `json:"position,omitempty"`
	Title     string    `json:"title,omitempty"`
	Year      int       `json:"year,omitempty"`
	Count     int       `json:"count,omitempty"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
}

// Journal serializes entries to a writer. A nil *Journal discards everything.
type Journal struct {
	mu      sync.Mutex
	out     io.Writer
	closer  io.Closer
	session string
	now     func() time.Time
}

// New returns a journal writing to out
func New(out io.Writer, session string) *Journal {
	j := &Journal{out: out, session: session, now: time.Now}
	if c, ok := out.(io.Closer); ok {
		j.closer = c
	}
	return j
}

// Open returns a journal appending to path with size-based rotation
func Open(path, session string, maxSizeMB, maxFiles int) *Journal {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	if maxFiles <= 0 {
		maxFiles = 5
	}
	return New(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxFiles,
		MaxAge:     90, // days
		Compress:   true,
	}, session)
}

// Session returns the session id stamped on entries
func (j *Journal) Session() string {
	if j == nil {
		return ""
	}
	return j.session
}

// Record writes one entry, filling ID, Timestamp and Session when unset
func (j *Journal) Record(entry Entry) error {
	if j == nil {
		return nil
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = j.now()
	}
	if entry.ID == "" {
		entry.ID = "evt_" + ulid.MustNew(ulid.Timestamp(entry.Timestamp), ulid.DefaultEntropy()).String()
	}
	if entry.Session == "" {
		entry.Session = j.session
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode journal entry: %w", err)
	}
	if _, err := j.out.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write journal entry: %w", err)
	}
	return nil
}

// Close closes the underlying writer if it is closable. It is safe to call more than
// once and concurrently with Record.
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closer == nil {
		return nil
	}
	c := j.closer
	j.closer = nil
	return c.Close()
}
