package storage

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestUniqueFilenameShape(t *testing.T) {
	now := time.Date(2024, time.March, 7, 12, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^\d+-\d{1,9}\.pdf$`)

	name := UniqueFilename("briefing final.pdf", now)
	if !pattern.MatchString(name) {
		t.Fatalf("filename %q does not match <unixmilli>-<random>.pdf", name)
	}
	if !strings.HasPrefix(name, "1709812800000-") {
		t.Errorf("filename %q does not start with the unix millisecond timestamp", name)
	}
}

func TestUniqueFilenameKeepsOnlyExtension(t *testing.T) {
	now := time.Now()
	tests := []struct {
		original string
		wantExt  string
	}{
		{"arte-campanha.PNG", ".PNG"},
		{"planilha.xlsx", ".xlsx"},
		{"sem-extensao", ""},
		{"../../etc/passwd", ""},
		{"nome com espaços.jpg", ".jpg"},
	}
	for _, tc := range tests {
		name := UniqueFilename(tc.original, now)
		if !strings.HasSuffix(name, tc.wantExt) {
			t.Errorf("UniqueFilename(%q) = %q, want suffix %q", tc.original, name, tc.wantExt)
		}
		if strings.ContainsAny(name, "/ ") {
			t.Errorf("UniqueFilename(%q) = %q contains unsafe characters", tc.original, name)
		}
		base := strings.TrimSuffix(name, tc.wantExt)
		if matched, _ := regexp.MatchString(`^\d+-\d{1,9}$`, base); !matched {
			t.Errorf("UniqueFilename(%q) base = %q, want <unixmilli>-<random>", tc.original, base)
		}
	}
}

func TestUniqueFilenameDiverges(t *testing.T) {
	now := time.Now()
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		seen[UniqueFilename("foto.jpg", now)] = struct{}{}
	}
	// same millisecond, distinct random suffixes
	if len(seen) < 2 {
		t.Fatalf("expected diverging names for the same timestamp, got %d unique of 50", len(seen))
	}
}
