// Package form holds the server-configuration-driven form model shared by the
// create-listing and edit-listing flows.
package form

// FieldType enumerates the supported custom-field input types.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldURL      FieldType = "url"
	FieldNumber   FieldType = "number"
	FieldSelect   FieldType = "select"
	FieldRadio    FieldType = "radio"
	FieldCheckbox FieldType = "checkbox"
	FieldDate     FieldType = "date"
)

// DateKind refines fields of type date.
type DateKind string

const (
	DateOnly      DateKind = "date"
	DateTime      DateKind = "date_time"
	DateRange     DateKind = "date_range"
	DateTimeRange DateKind = "date_time_range"
)

// Operator is a dependency-rule comparison operator.
type Operator string

const (
	OpEmpty    Operator = "==empty"
	OpNotEmpty Operator = "!=empty"
	OpEqual    Operator = "=="
	OpNotEqual Operator = "!="
	OpPattern  Operator = "==pattern"
	OpContains Operator = "==contains"
)

// Choice is one selectable option of a select/radio/checkbox field.
type Choice struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Rule gates a field's visibility on another field's current value. Value is
// the optional comparison operand; it is kept as text and coerced numerically
// at evaluation time when it parses as a finite number.
type Rule struct {
	FieldID  int64    `json:"field_id"`
	Operator Operator `json:"operator"`
	Value    string   `json:"value,omitempty"`
}

// RuleGroup is an AND-conjunction of rules. A field's dependency is an OR of
// rule groups.
type RuleGroup []Rule

// FieldDefinition describes one configured custom field. Definitions are
// fetched once per form session and are immutable for its lifetime.
type FieldDefinition struct {
	ID         int64       `json:"id"`
	MetaKey    string      `json:"meta_key"`
	Type       FieldType   `json:"type"`
	Required   bool        `json:"required"`
	Choices    []Choice    `json:"choices,omitempty"`
	DateKind   DateKind    `json:"date_kind,omitempty"`
	Dependency []RuleGroup `json:"dependency,omitempty"`
}

// FieldByID resolves a field definition by its stable id.
func FieldByID(fields []FieldDefinition, id int64) (FieldDefinition, bool) {
	for _, f := range fields {
		if f.ID == id {
			return f, true
		}
	}
	return FieldDefinition{}, false
}
