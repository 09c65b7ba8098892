// Package report writes per-row diagnostics to a JSONL event log. Console
// logging stays human-oriented; anything worth auditing after a run (dropped
// rows, match failures, load steps) goes here.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EventType represents the pipeline stage an event belongs to.
type EventType string

const (
	EventFetch     EventType = "fetch"
	EventNormalize EventType = "normalize"
	EventMatch     EventType = "match"
	EventSkip      EventType = "skip"
	EventLoad      EventType = "load"
	EventError     EventType = "error"
)

// EventLevel represents the severity level.
type EventLevel string

const (
	LevelDebug   EventLevel = "debug"
	LevelInfo    EventLevel = "info"
	LevelWarning EventLevel = "warning"
	LevelError   EventLevel = "error"
)

var levelPriority = map[EventLevel]int{
	LevelDebug:   0,
	LevelInfo:    1,
	LevelWarning: 2,
	LevelError:   3,
}

// Event is a single line of the event log.
type Event struct {
	Timestamp time.Time  `json:"ts"`
	Level     EventLevel `json:"level"`
	Event     EventType  `json:"event"`
	Date      string     `json:"date,omitempty"`
	Venue     string     `json:"venue,omitempty"`
	Title     string     `json:"title,omitempty"`
	ShowID    int        `json:"show_id,omitempty"`
	SongID    int        `json:"song_id,omitempty"`
	Rows      int        `json:"rows,omitempty"`
	Method    string     `json:"method,omitempty"`
	Reason    string     `json:"reason,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// EventLogger appends events to a timestamped JSONL file.
type EventLogger struct {
	file     *os.File
	encoder  *json.Encoder
	mu       sync.Mutex
	path     string
	minLevel EventLevel
}

// NewEventLogger creates the output directory if needed and opens a fresh
// events-<timestamp>.jsonl inside it. Events below minLevel are dropped.
func NewEventLogger(outputDir string, minLevel EventLevel) (*EventLogger, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	path := filepath.Join(outputDir, fmt.Sprintf("events-%s.jsonl", timestamp))

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create event log: %w", err)
	}

	return &EventLogger{
		file:     file,
		encoder:  json.NewEncoder(file),
		path:     path,
		minLevel: minLevel,
	}, nil
}

// Log writes one event if it meets the minimum level. A nil logger is a
// valid no-op so callers don't have to guard every call site.
func (l *EventLogger) Log(e Event) error {
	if l == nil {
		return nil
	}
	if levelPriority[e.Level] < levelPriority[l.minLevel] {
		return nil
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.encoder.Encode(e)
}

// LogSkip records a row dropped during linking.
func (l *EventLogger) LogSkip(date, venue, songTitle, reason string) {
	_ = l.Log(Event{
		Level:  LevelWarning,
		Event:  EventSkip,
		Date:   date,
		Venue:  venue,
		Title:  songTitle,
		Reason: reason,
	})
}

// LogMatch records a resolved row and the method that resolved it.
func (l *EventLogger) LogMatch(songTitle string, showID, songID int, method string) {
	_ = l.Log(Event{
		Level:  LevelDebug,
		Event:  EventMatch,
		Title:  songTitle,
		ShowID: showID,
		SongID: songID,
		Method: method,
	})
}

// LogLoad records a persistence step.
func (l *EventLogger) LogLoad(table string, rows int) {
	_ = l.Log(Event{
		Level:  LevelInfo,
		Event:  EventLoad,
		Method: table,
		Rows:   rows,
	})
}

// Path returns the log file location.
func (l *EventLogger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Close flushes and closes the log file.
func (l *EventLogger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}
