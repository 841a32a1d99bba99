package course

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/noah-isme/automated-attendance/internal/models"
)

type instructorKind uint8

const (
	kindRaw instructorKind = iota
	kindSelected
)

// InstructorRef is the course form's instructor field: either a raw
// identifier typed or loaded as-is, or a selection made from the search list.
// The zero value is an empty raw reference.
type InstructorRef struct {
	kind     instructorKind
	raw      string
	name     string
	idNumber string
}

// RawInstructor wraps a plain identifier. It stands for both id and name.
func RawInstructor(s string) InstructorRef {
	return InstructorRef{kind: kindRaw, raw: s}
}

// SelectedInstructor wraps a pick from the instructor search.
func SelectedInstructor(name, idNumber string) InstructorRef {
	return InstructorRef{kind: kindSelected, name: name, idNumber: idNumber}
}

// Resolve returns the canonical identifier and display name.
func (r InstructorRef) Resolve() (id, name string) {
	if r.kind == kindSelected {
		return r.idNumber, r.name
	}
	return r.raw, r.raw
}

// Selected reports whether the reference came from the search list.
func (r InstructorRef) Selected() bool {
	return r.kind == kindSelected
}

// IsZero reports whether no identifier is set.
func (r InstructorRef) IsZero() bool {
	id, _ := r.Resolve()
	return strings.TrimSpace(id) == ""
}

func (r InstructorRef) String() string {
	id, name := r.Resolve()
	if r.kind == kindSelected && name != "" && name != id {
		return fmt.Sprintf("%s (%s)", name, id)
	}
	return id
}

type selectionJSON struct {
	Name     string `json:"name"`
	IDNumber string `json:"idNumber"`
}

// InstructorRefFromValue reads the instructor field as it arrives from a
// form: a JSON string or a {name, idNumber} object. null yields an empty
// raw reference.
func InstructorRefFromValue(data []byte) (InstructorRef, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return RawInstructor(""), nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return InstructorRef{}, fmt.Errorf("course: decode instructor: %w", err)
		}
		return RawInstructor(s), nil
	}
	var sel selectionJSON
	if err := json.Unmarshal(data, &sel); err != nil {
		return InstructorRef{}, fmt.Errorf("course: decode instructor: %w", err)
	}
	return SelectedInstructor(sel.Name, sel.IDNumber), nil
}

// UnmarshalJSON implements json.Unmarshaler via InstructorRefFromValue.
func (r *InstructorRef) UnmarshalJSON(data []byte) error {
	ref, err := InstructorRefFromValue(data)
	if err != nil {
		return err
	}
	*r = ref
	return nil
}

// MarshalJSON writes the same shape InstructorRefFromValue reads.
func (r InstructorRef) MarshalJSON() ([]byte, error) {
	if r.kind == kindSelected {
		return json.Marshal(selectionJSON{Name: r.name, IDNumber: r.idNumber})
	}
	return json.Marshal(r.raw)
}

// InstructorOption is one entry of the instructor search results.
type InstructorOption struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IDNumber string `json:"idNumber"`
}

// Ref turns the option into a selected reference.
func (o InstructorOption) Ref() InstructorRef {
	return SelectedInstructor(o.Name, o.IDNumber)
}

// MinSearchLength is the shortest query, in characters, that triggers a search.
const MinSearchLength = 2

// SearchInstructors filters instructors by full name (case-insensitive) or
// idNumber (case-sensitive substring). Queries shorter than MinSearchLength
// return nothing.
func SearchInstructors(instructors []models.Account, query string) []InstructorOption {
	if utf8.RuneCountInString(query) < MinSearchLength {
		return nil
	}
	lowered := strings.ToLower(query)
	out := make([]InstructorOption, 0)
	for _, in := range instructors {
		if strings.Contains(strings.ToLower(in.FullName), lowered) || strings.Contains(in.IDNumber, query) {
			out = append(out, InstructorOption{ID: in.ID, Name: in.FullName, IDNumber: in.IDNumber})
		}
	}
	return out
}
