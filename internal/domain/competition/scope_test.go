package competition

import "testing"

func TestNewScope(t *testing.T) {
	t.Run("normalizes code", func(t *testing.T) {
		scope, err := NewScope(" elc ", 2025)
		if err != nil {
			t.Fatalf("new scope: %v", err)
		}
		if scope.CompetitionCode != "ELC" {
			t.Fatalf("unexpected code: %q", scope.CompetitionCode)
		}
		if scope.Key() != "ELC:2025" {
			t.Fatalf("unexpected key: %q", scope.Key())
		}
	})

	t.Run("rejects empty code", func(t *testing.T) {
		if _, err := NewScope("  ", 2025); err == nil {
			t.Fatalf("expected error for empty code")
		}
	})

	t.Run("rejects implausible season", func(t *testing.T) {
		if _, err := NewScope("PL", 25); err == nil {
			t.Fatalf("expected error for season 25")
		}
	})
}

func TestParseScope(t *testing.T) {
	scope, err := ParseScope("pl", "2024")
	if err != nil {
		t.Fatalf("parse scope: %v", err)
	}
	if scope.CompetitionCode != "PL" || scope.SeasonStartYear != 2024 {
		t.Fatalf("unexpected scope: %+v", scope)
	}

	if _, err := ParseScope("pl", "twenty"); err == nil {
		t.Fatalf("expected error for non-numeric season")
	}
}
