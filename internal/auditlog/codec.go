// Package auditlog encodes and decodes the chronological event log
// embedded in a solicitation's free-text notes field. Log lines share
// the field with user-written notes; anything not shaped like a log
// entry is left untouched and skipped during decoding.
package auditlog

import (
	"iter"
	"strings"
	"time"
)

// Messages appended by the transition engine. Kept in the product's
// language because the raw field is shown verbatim on the dashboard.
const (
	ReopenedMessage     = "Solicitação reaberta."
	statusChangedPrefix = "Status alterado:"
)

// TimestampLayout is the layout used when appending new entries.
const TimestampLayout = "02/01/2006 15:04:05"

// Entry is one decoded log event.
type Entry struct {
	// RawTimestamp is the bracketed text exactly as it appears in the
	// field. It doubles as the display fallback when parsing fails.
	RawTimestamp string
	// Time is the parsed timestamp; valid only when TimeValid is set.
	Time      time.Time
	TimeValid bool
	Message   string
}

// Kind is the canonical timeline category of a log message.
type Kind string

const (
	KindStatusChange Kind = "status-change"
	KindReopened     Kind = "reopened"
	KindInProduction Kind = "in-production"
	KindCompleted    Kind = "completed"
	KindArchived     Kind = "archived"
	KindUnknown      Kind = "unknown"
)

// Append concatenates a new timestamped event to the existing field
// content. Prior content is never reordered or truncated.
func Append(notes, message string, at time.Time) string {
	return notes + "\n[" + at.Format(TimestampLayout) + "] " + message
}

// StatusChangedMessage renders the canonical status-change log line.
func StatusChangedMessage(from, to string) string {
	return statusChangedPrefix + " " + from + " → " + to
}

// Entries returns a lazy, restartable sequence over the log events
// embedded in raw. Only lines starting with '[' are events; everything
// else is free-form user text and is skipped.
func Entries(raw string) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, line := range strings.Split(raw, "\n") {
			line = strings.TrimSpace(line)
			if !strings.HasPrefix(line, "[") {
				continue
			}
			end := strings.Index(line, "]")
			if end < 0 {
				continue
			}
			rawTS := line[1:end]
			entry := Entry{
				RawTimestamp: rawTS,
				Message:      strings.TrimSpace(line[end+1:]),
			}
			if ts, ok := parseTimestamp(rawTS); ok {
				entry.Time = ts
				entry.TimeValid = true
			}
			if !yield(entry) {
				return
			}
		}
	}
}

// Decode collects every embedded log event in original order.
func Decode(raw string) []Entry {
	var entries []Entry
	for e := range Entries(raw) {
		entries = append(entries, e)
	}
	return entries
}

var timestampLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006, 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006, 15:04",
	"02/01/2006",
}

var monthNames = map[string]time.Month{
	"janeiro":   time.January,
	"fevereiro": time.February,
	"março":     time.March,
	"abril":     time.April,
	"maio":      time.May,
	"junho":     time.June,
	"julho":     time.July,
	"agosto":    time.August,
	"setembro":  time.September,
	"outubro":   time.October,
	"novembro":  time.November,
	"dezembro":  time.December,
}

func parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return ts, true
		}
	}
	return parseLongForm(raw)
}

// parseLongForm handles "2 de março de 2024" style timestamps.
func parseLongForm(raw string) (time.Time, bool) {
	parts := strings.Fields(strings.ToLower(raw))
	if len(parts) != 5 || parts[1] != "de" || parts[3] != "de" {
		return time.Time{}, false
	}
	month, ok := monthNames[parts[2]]
	if !ok {
		return time.Time{}, false
	}
	day, err := atoiStrict(parts[0])
	if err != nil {
		return time.Time{}, false
	}
	year, err := atoiStrict(parts[4])
	if err != nil {
		return time.Time{}, false
	}
	if day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local), true
}

func atoiStrict(s string) (int, error) {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, errNotANumber
		}
		n = n*10 + int(r-'0')
	}
	if s == "" {
		return 0, errNotANumber
	}
	return n, nil
}

var errNotANumber = &parseError{"not a number"}

type parseError struct{ msg string }

func (e *parseError) Error() string { return e.msg }

// Classify maps a log message onto its canonical timeline category.
// Status-change lines additionally return their from/to statuses.
// Unrecognized messages classify as KindUnknown and are expected to be
// omitted from rendered timelines while remaining in the raw field.
func Classify(message string) (kind Kind, from, to string) {
	lower := strings.ToLower(message)

	for _, prefix := range []string{strings.ToLower(statusChangedPrefix), "status changed:"} {
		if strings.HasPrefix(lower, prefix) {
			rest := strings.TrimSpace(message[len(prefix):])
			for _, arrow := range []string{"→", "->"} {
				if f, t, ok := strings.Cut(rest, arrow); ok {
					return KindStatusChange, strings.TrimSpace(f), strings.TrimSpace(t)
				}
			}
			return KindStatusChange, "", ""
		}
	}

	switch {
	case strings.Contains(lower, "reaberta") || strings.Contains(lower, "reopened"):
		return KindReopened, "", ""
	case strings.Contains(lower, "em produção") || strings.Contains(lower, "in production"):
		return KindInProduction, "", ""
	case strings.Contains(lower, "concluída") || strings.Contains(lower, "completed"):
		return KindCompleted, "", ""
	case strings.Contains(lower, "arquivada") || strings.Contains(lower, "archived"):
		return KindArchived, "", ""
	}
	return KindUnknown, "", ""
}
