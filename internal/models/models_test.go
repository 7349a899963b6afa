package models

import (
	"errors"
	"testing"
)

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"simple", "researcher", false},
		{"with hyphen", "claude-code", false},
		{"with underscore", "my_action", false},
		{"with digits", "task2", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"uppercase", "Researcher", true},
		{"leading digit", "2tasks", true},
		{"leading hyphen", "-task", true},
		{"trailing hyphen", "task-", true},
		{"trailing underscore", "task_", true},
		{"inner space", "my task", true},
		{"dot", "my.task", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier(tt.id, "identifier")
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIdentifier(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("error should wrap ErrValidation, got %v", err)
			}
		})
	}
}

func TestNewPersona(t *testing.T) {
	p, err := NewPersona("researcher", "You are a researcher.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "researcher" {
		t.Errorf("expected name researcher, got %s", p.Name)
	}

	if _, err := NewPersona("researcher", "   "); err == nil {
		t.Error("expected error for empty content")
	}
	if _, err := NewPersona("Bad Name", "content"); err == nil {
		t.Error("expected error for invalid name")
	}
}

func TestNewAction(t *testing.T) {
	a, err := NewAction("research", "Do research as {{ persona }}.", "researcher")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.PersonaName != "researcher" {
		t.Errorf("expected persona researcher, got %s", a.PersonaName)
	}

	if _, err := NewAction("research", "", "researcher"); err == nil {
		t.Error("expected error for empty template")
	}
	if _, err := NewAction("research", "x", "BAD"); err == nil {
		t.Error("expected error for invalid persona name")
	}
}

func TestNewExample(t *testing.T) {
	e, err := NewExample("report", "# Report", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.IsTemplate {
		t.Error("expected IsTemplate=false")
	}

	if _, err := NewExample("report", "", false); err == nil {
		t.Error("expected error for empty content")
	}
}
