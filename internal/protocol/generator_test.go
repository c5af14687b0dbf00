package protocol

import (
	"testing"
	"time"
)

var fixedNow = time.Date(2024, time.March, 7, 12, 0, 0, 0, time.UTC)

func TestGenerateFullInput(t *testing.T) {
	got := Generate([]string{"Digital", "Print"}, "Marketing", "2023-12-25", fixedNow)
	want := "7BD-DP-MAR-25122023"
	if got != want {
		t.Fatalf("Generate = %q, want %q", got, want)
	}
}

func TestGenerateEmptyInput(t *testing.T) {
	got := Generate(nil, "", "", fixedNow)
	want := "7BD-X-XXX-07032024"
	if got != want {
		t.Fatalf("Generate = %q, want %q", got, want)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cases := [][]string{
		{"Digital"},
		{"Digital", "Impresso"},
		{"Impresso"},
		nil,
	}
	for _, channels := range cases {
		first := Generate(channels, "Secretaria", "2024-01-31", fixedNow)
		for i := 0; i < 5; i++ {
			if again := Generate(channels, "Secretaria", "2024-01-31", fixedNow); again != first {
				t.Fatalf("Generate not deterministic for %v: %q vs %q", channels, first, again)
			}
		}
	}
}

func TestGenerateSegments(t *testing.T) {
	tests := []struct {
		name       string
		channels   []string
		department string
		dueDate    string
		want       string
	}{
		{
			name:       "single channel",
			channels:   []string{"Digital"},
			department: "Marketing",
			dueDate:    "2023-12-25",
			want:       "7BD-D-MAR-25122023",
		},
		{
			name:       "lowercase channel initial uppercased",
			channels:   []string{"digital", "impresso"},
			department: "Tesouraria",
			dueDate:    "2024-06-01",
			want:       "7BD-DI-TES-01062024",
		},
		{
			name:       "short department kept as-is uppercased",
			channels:   []string{"Digital"},
			department: "TI",
			dueDate:    "2024-06-01",
			want:       "7BD-D-TI-01062024",
		},
		{
			name:       "non ISO due date stripped to digits",
			channels:   []string{"Digital"},
			department: "Marketing",
			dueDate:    "25/12/2023",
			want:       "7BD-D-MAR-25122023",
		},
		{
			name:       "accented department",
			channels:   []string{"Digital"},
			department: "Educação",
			dueDate:    "2024-02-10",
			want:       "7BD-D-EDU-10022024",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Generate(tc.channels, tc.department, tc.dueDate, fixedNow); got != tc.want {
				t.Fatalf("Generate = %q, want %q", got, tc.want)
			}
		})
	}
}
