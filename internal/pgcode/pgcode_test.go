package pgcode

import "testing"

func TestIsUndefinedTable(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected bool
	}{
		{"undefined table", "42P01", true},
		{"duplicate table", "42P07", false},
		{"unique violation", "23505", false},
		{"empty", "", false},
		{"lowercase", "42p01", false},
		{"syntax error", "42601", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUndefinedTable(tt.code); got != tt.expected {
				t.Errorf("IsUndefinedTable(%q) = %v, want %v", tt.code, got, tt.expected)
			}
		})
	}
}

func TestIsBenignCreate(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected bool
	}{
		{"duplicate table", "42P07", true},
		{"duplicate object", "42710", true},
		{"unique violation", "23505", true},
		{"undefined table", "42P01", false},
		{"empty", "", false},
		{"connection failure", "08006", false},
		{"insufficient privilege", "42501", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBenignCreate(tt.code); got != tt.expected {
				t.Errorf("IsBenignCreate(%q) = %v, want %v", tt.code, got, tt.expected)
			}
		})
	}
}

func TestConstantsMatchSQLSTATE(t *testing.T) {
	// The classifier depends on these exact values; they come from the
	// PostgreSQL error code appendix and never change between releases.
	if UndefinedTable != "42P01" {
		t.Errorf("UndefinedTable = %q, want 42P01", UndefinedTable)
	}
	if DuplicateTable != "42P07" {
		t.Errorf("DuplicateTable = %q, want 42P07", DuplicateTable)
	}
	if DuplicateObject != "42710" {
		t.Errorf("DuplicateObject = %q, want 42710", DuplicateObject)
	}
	if UniqueViolation != "23505" {
		t.Errorf("UniqueViolation = %q, want 23505", UniqueViolation)
	}
}
