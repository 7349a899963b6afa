// Package models defines the value types shared across pareidolia: personas,
// action templates, and examples.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation is returned when an identifier or component fails validation.
var ErrValidation = errors.New("validation error")

// ValidateIdentifier checks that name is a valid pareidolia identifier.
// Identifiers must start with a lowercase letter, contain only lowercase
// letters, digits, hyphens, and underscores, and must not end with a hyphen
// or underscore.
func ValidateIdentifier(name, field string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrValidation, field)
	}
	if name[0] < 'a' || name[0] > 'z' {
		return fmt.Errorf("%w: %s must start with a lowercase letter: %s", ErrValidation, field, name)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return fmt.Errorf(
				"%w: %s must contain only lowercase letters, digits, hyphens, and underscores: %s",
				ErrValidation, field, name)
		}
	}
	if strings.HasSuffix(name, "-") || strings.HasSuffix(name, "_") {
		return fmt.Errorf("%w: %s must not end with a hyphen or underscore: %s", ErrValidation, field, name)
	}
	return nil
}

// Persona is a reusable text block describing an assistant's role and voice.
// Immutable once constructed.
type Persona struct {
	Name    string
	Content string
}

// NewPersona validates and constructs a Persona.
func NewPersona(name, content string) (Persona, error) {
	if err := ValidateIdentifier(name, "persona name"); err != nil {
		return Persona{}, err
	}
	if strings.TrimSpace(content) == "" {
		return Persona{}, fmt.Errorf("%w: persona content cannot be empty", ErrValidation)
	}
	return Persona{Name: name, Content: content}, nil
}

// Action is a named task template bound to a persona. Template holds the raw
// template source, not rendered output.
type Action struct {
	Name        string
	Template    string
	PersonaName string
}

// NewAction validates and constructs an Action.
func NewAction(name, template, personaName string) (Action, error) {
	if err := ValidateIdentifier(name, "action name"); err != nil {
		return Action{}, err
	}
	if err := ValidateIdentifier(personaName, "persona name"); err != nil {
		return Action{}, err
	}
	if strings.TrimSpace(template) == "" {
		return Action{}, fmt.Errorf("%w: action template cannot be empty", ErrValidation)
	}
	return Action{Name: name, Template: template, PersonaName: personaName}, nil
}

// Example is a sample output included in composed prompts. When IsTemplate is
// set the content is re-rendered with the composition context before use.
type Example struct {
	Name       string
	Content    string
	IsTemplate bool
}

// NewExample validates and constructs an Example.
func NewExample(name, content string, isTemplate bool) (Example, error) {
	if err := ValidateIdentifier(name, "example name"); err != nil {
		return Example{}, err
	}
	if strings.TrimSpace(content) == "" {
		return Example{}, fmt.Errorf("%w: example content cannot be empty", ErrValidation)
	}
	return Example{Name: name, Content: content, IsTemplate: isTemplate}, nil
}
