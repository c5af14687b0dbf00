package domain

import (
	"testing"
	"time"
)

func TestNormalizeStatusAlias(t *testing.T) {
	if got := NormalizeStatus(StatusInProgressAlias); got != StatusDoing {
		t.Fatalf("NormalizeStatus(in-progress) = %q, want %q", got, StatusDoing)
	}
	if got := NormalizeStatus(StatusArt); got != StatusArt {
		t.Fatalf("NormalizeStatus(arte) = %q, want unchanged", got)
	}
}

func TestStatusSets(t *testing.T) {
	tests := []struct {
		status       Status
		known        bool
		inProduction bool
		terminal     bool
	}{
		{StatusTodo, true, false, false},
		{StatusVideoMaterials, true, true, false},
		{StatusEventCoverage, true, true, false},
		{StatusArt, true, true, false},
		{StatusDoing, true, true, false},
		{StatusApproval, true, true, false},
		{StatusStalled, true, true, false},
		{StatusDone, true, false, true},
		{StatusArchived, true, false, true},
		{StatusInProgressAlias, true, true, false},
		{Status("deleted"), false, false, false},
		{Status(""), false, false, false},
	}
	for _, tc := range tests {
		if got := IsKnownStatus(tc.status); got != tc.known {
			t.Errorf("IsKnownStatus(%q) = %v, want %v", tc.status, got, tc.known)
		}
		if got := IsInProduction(tc.status); got != tc.inProduction {
			t.Errorf("IsInProduction(%q) = %v, want %v", tc.status, got, tc.inProduction)
		}
		if got := IsTerminal(tc.status); got != tc.terminal {
			t.Errorf("IsTerminal(%q) = %v, want %v", tc.status, got, tc.terminal)
		}
	}
}

func TestDueAt(t *testing.T) {
	loc := time.UTC

	sol := &Solicitation{DueDate: "2024-03-07", DueTime: "14:30"}
	due, ok := sol.DueAt(loc)
	if !ok {
		t.Fatal("DueAt failed for valid date and time")
	}
	if want := time.Date(2024, time.March, 7, 14, 30, 0, 0, loc); !due.Equal(want) {
		t.Errorf("DueAt = %v, want %v", due, want)
	}

	sol = &Solicitation{DueDate: "2024-03-07"}
	due, ok = sol.DueAt(loc)
	if !ok {
		t.Fatal("DueAt failed for date without time")
	}
	if want := time.Date(2024, time.March, 7, 23, 59, 59, 0, loc); !due.Equal(want) {
		t.Errorf("DueAt without time = %v, want end of day %v", due, want)
	}

	sol = &Solicitation{DueDate: "07/03/2024"}
	if _, ok := sol.DueAt(loc); ok {
		t.Error("DueAt accepted a non-ISO date")
	}

	// unparseable time falls back to end of day rather than failing
	sol = &Solicitation{DueDate: "2024-03-07", DueTime: "manhã"}
	due, ok = sol.DueAt(loc)
	if !ok || due.Hour() != 23 {
		t.Errorf("DueAt with bad time = %v, %v; want end-of-day fallback", due, ok)
	}
}

func TestCatalogMembership(t *testing.T) {
	if !IsKnownDepartment("Secretaria") || !IsKnownDepartment("Outros") {
		t.Error("catalog departments not recognized")
	}
	if IsKnownDepartment("Marketing Digital") {
		t.Error("unknown department accepted")
	}
	if !IsKnownRequestType("Vídeo (30 dias)") {
		t.Error("catalog request type not recognized")
	}
	if !IsKnownRequestType("  Vídeo (30 dias)  ") {
		t.Error("request type with surrounding whitespace rejected")
	}
	if IsKnownRequestType("Outdoor (90 dias)") {
		t.Error("unknown request type accepted")
	}
}
