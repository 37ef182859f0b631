package game

import (
	"fmt"
	"strings"
)

// EventLogEntry is one recorded simulation event.
type EventLogEntry struct {
	Tick     int
	Subject  string  // "dog", "S0".."S4", or "--" for round-wide events
	Category string  // collision, round, scroll
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // score delta, scroll, etc.
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] S3   collision sheep_injured    bramble at (212,340)
func (e EventLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Subject, e.Category, e.Key, e.Value)
}

// EventLog collects structured events for the headless harness and the
// report, which read it back after a run. A nil *EventLog records nothing,
// which is what the windowed game uses.
type EventLog struct {
	entries []EventLogEntry
	verbose bool // also record per-tick positions
}

// NewEventLog creates an EventLog. If verbose is true, per-tick position
// entries are also recorded.
func NewEventLog(verbose bool) *EventLog {
	return &EventLog{verbose: verbose}
}

// Add records a new entry.
func (el *EventLog) Add(tick int, subject, category, key, value string, numVal float64) {
	if el == nil {
		return
	}
	el.entries = append(el.entries, EventLogEntry{
		Tick:     tick,
		Subject:  subject,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (el *EventLog) AddVerbose(tick int, subject, category, key, value string, numVal float64) {
	if el == nil || !el.verbose {
		return
	}
	el.Add(tick, subject, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (el *EventLog) Entries() []EventLogEntry {
	if el == nil {
		return nil
	}
	return el.entries
}

// Len returns the number of recorded entries.
func (el *EventLog) Len() int {
	return len(el.Entries())
}

// Since returns the entries recorded after the first n.
func (el *EventLog) Since(n int) []EventLogEntry {
	all := el.Entries()
	if n >= len(all) {
		return nil
	}
	return all[n:]
}

// matches reports whether e has the category and key; empty matches any.
func (e EventLogEntry) matches(category, key string) bool {
	return (category == "" || e.Category == category) && (key == "" || e.Key == key)
}

// CountCategory counts entries with the given category and key.
func (el *EventLog) CountCategory(category, key string) int {
	n := 0
	for _, e := range el.Entries() {
		if e.matches(category, key) {
			n++
		}
	}
	return n
}

// HasEntry reports whether an entry matches category, key and contains
// valueSubstr in its value.
func (el *EventLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range el.Entries() {
		if e.matches(category, key) && strings.Contains(e.Value, valueSubstr) {
			return true
		}
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (el *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range el.Entries() {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the world.
func (el *EventLog) Summary(w *World) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Round %d at T=%03d (%s) ---\n", w.Round, w.Tick, w.Phase)
	fmt.Fprintf(&sb, "Score: %d  Sheep: %d/%d  Scroll: %.0f\n",
		w.Score, w.ActiveSheep(), len(w.Flock), w.Scroll)

	lost, injured := 0, 0
	for _, s := range w.Flock {
		if s.Lost {
			lost++
		}
		if s.Injured {
			injured++
		}
	}
	fmt.Fprintf(&sb, "Lost: %d  Injured: %d\n", lost, injured)

	inert := 0
	for _, o := range w.Obstacles {
		if o.Inert {
			inert++
		}
	}
	fmt.Fprintf(&sb, "Obstacles cleared: %d/%d\n", inert, len(w.Obstacles))
	if w.Outcome != OutcomeNone {
		fmt.Fprintf(&sb, "Outcome: %s\n", w.Outcome)
	}
	return sb.String()
}
