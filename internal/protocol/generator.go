// Package protocol derives the human-readable code stamped on every
// solicitation at intake. Codes are not unique identifiers; collisions
// between similar requests are accepted.
package protocol

import (
	"strings"
	"time"
	"unicode"
)

const prefix = "7BD"

// Generate builds a protocol code of the form
// 7BD-<channelInitials>-<dept3>-<ddMMyyyy>. The code is computed once
// at creation and never recomputed, so Generate must stay
// deterministic for a given input and clock value.
func Generate(channels []string, department, dueDate string, now time.Time) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte('-')
	b.WriteString(channelInitials(channels))
	b.WriteByte('-')
	b.WriteString(departmentSegment(department))
	b.WriteByte('-')
	b.WriteString(dateSegment(dueDate, now))
	return b.String()
}

func channelInitials(channels []string) string {
	if len(channels) == 0 {
		return "X"
	}
	var b strings.Builder
	for _, ch := range channels {
		for _, r := range ch {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
	}
	if b.Len() == 0 {
		return "X"
	}
	return b.String()
}

func departmentSegment(department string) string {
	if department == "" {
		return "XXX"
	}
	runes := []rune(department)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.ToUpper(string(runes))
}

func dateSegment(dueDate string, now time.Time) string {
	if dueDate == "" {
		return now.Format("02012006")
	}
	parts := strings.Split(dueDate, "-")
	if len(parts) == 3 {
		// YYYY-MM-DD reordered to DDMMYYYY.
		return parts[2] + parts[1] + parts[0]
	}
	var b strings.Builder
	for _, r := range dueDate {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
