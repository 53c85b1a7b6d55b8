// Package validate derives the set of failing required fields from the
// current form state. Validation output is derived state for the caller to
// render, never an error or a panic.
package validate

import (
	"github.com/guptabinit/listform/internal/form"
	"github.com/samber/lo"
)

// Missing returns the ids of custom fields that are required, currently
// visible, and empty. The emptiness check is type-aware: checkbox fields fail
// on a zero-length selection list, everything else on a blank value.
func Missing(fields []form.FieldDefinition, visible map[int64]bool, state form.State) []int64 {
	return lo.FilterMap(fields, func(f form.FieldDefinition, _ int) (int64, bool) {
		if !f.Required || !visible[f.ID] {
			return 0, false
		}
		v := state.Get(f.MetaKey)
		if f.Type == form.FieldCheckbox {
			return f.ID, len(v.List()) < 1
		}
		return f.ID, v.IsEmpty()
	})
}
