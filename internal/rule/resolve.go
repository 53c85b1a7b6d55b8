package rule

import "github.com/guptabinit/listform/internal/form"

// Visible decides whether a field is currently shown. A field with no
// dependency is always visible; otherwise at least one rule group must have
// all of its rules pass. A rule whose controller id is unknown fails its
// group.
//
// Resolution reads the controller's raw current value even when the
// controller is itself hidden: a hidden controller's stale value still drives
// its dependents. Auto-hiding dependents of hidden fields would be a
// behavioral change; callers wanting that can re-run Visible over a pruned
// state.
func Visible(field form.FieldDefinition, fields []form.FieldDefinition, state form.State) bool {
	if len(field.Dependency) == 0 {
		return true
	}

	for _, group := range field.Dependency {
		if groupPasses(group, fields, state) {
			return true
		}
	}
	return false
}

// groupPasses reports whether every rule in the group is true. An empty group
// is vacuously true.
func groupPasses(group form.RuleGroup, fields []form.FieldDefinition, state form.State) bool {
	for _, r := range group {
		controller, ok := form.FieldByID(fields, r.FieldID)
		if !ok {
			return false
		}
		if !Evaluate(r, state.Get(controller.MetaKey)) {
			return false
		}
	}
	return true
}

// VisibleIDs recomputes the set of visible field ids from scratch. It is
// called after every form-state mutation; field counts are small enough that
// no caching is warranted.
func VisibleIDs(fields []form.FieldDefinition, state form.State) map[int64]bool {
	visible := make(map[int64]bool, len(fields))
	for _, f := range fields {
		if Visible(f, fields, state) {
			visible[f.ID] = true
		}
	}
	return visible
}
