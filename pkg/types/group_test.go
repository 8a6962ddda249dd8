package types

import (
	"testing"
)

func TestValidateGroupName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr error
	}{
		{"ab", nil},
		{"test", nil},
		{"docs-build", nil},
		{"a1-b2-c3", nil},
		{"00", nil},
		{"a", ErrInvalidGroupName},   // too short
		{"", ErrInvalidGroupName},    // empty
		{"A-b", ErrInvalidGroupName}, // uppercase
		{"-ab", ErrInvalidGroupName}, // leading hyphen
		{"ab-", ErrInvalidGroupName}, // trailing hyphen
		{"a_b", ErrInvalidGroupName}, // underscore
		{"a.b", ErrInvalidGroupName}, // period
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateGroupName(tt.name); err != tt.wantErr {
				t.Errorf("ValidateGroupName(%q) = %v, want %v", tt.name, err, tt.wantErr)
			}
		})
	}
}

func TestGroupsNamesSorted(t *testing.T) {
	g := Groups{
		"web":  nil,
		"dev":  nil,
		"docs": nil,
	}
	names := g.Names()
	want := []string{"dev", "docs", "web"}
	if len(names) != len(want) {
		t.Fatalf("Names() returned %d names, want %d", len(names), len(want))
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], name)
		}
	}
}

func TestGroupsGet(t *testing.T) {
	g := Groups{"dev": {NewSpecifier("pytest")}}

	entries, err := g.Get("dev")
	if err != nil {
		t.Fatalf("Get(dev) error = %v", err)
	}
	if len(entries) != 1 || entries[0].Specifier != "pytest" {
		t.Errorf("Get(dev) = %v, want single pytest specifier", entries)
	}

	if _, err := g.Get("missing"); err != ErrGroupNotFound {
		t.Errorf("Get(missing) error = %v, want %v", err, ErrGroupNotFound)
	}
}

func TestEntryValidate(t *testing.T) {
	tests := []struct {
		name    string
		entry   Entry
		wantErr error
	}{
		{"specifier", NewSpecifier("pytest>=7"), nil},
		{"empty specifier", NewSpecifier(""), ErrInvalidEntry},
		{"include", NewInclude("test"), nil},
		{"include bad name", NewInclude("-ab"), ErrInvalidGroupName},
		{"path", NewPath(PathDependency{Path: "."}), nil},
		{"path empty", NewPath(PathDependency{}), ErrInvalidEntry},
		{"unknown kind", Entry{Kind: "wheel"}, ErrInvalidEntry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.entry.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
