package validate

import (
	"testing"

	"github.com/guptabinit/listform/internal/form"
	"github.com/stretchr/testify/assert"
)

func TestMissing(t *testing.T) {
	fields := []form.FieldDefinition{
		{ID: 1, MetaKey: "_area", Type: form.FieldNumber, Required: true},
		{ID: 2, MetaKey: "_amenities", Type: form.FieldCheckbox, Required: true},
		{ID: 3, MetaKey: "_note", Type: form.FieldText, Required: false},
		{ID: 4, MetaKey: "_parking", Type: form.FieldRadio, Required: true},
	}
	allVisible := map[int64]bool{1: true, 2: true, 3: true, 4: true}

	t.Run("empty state reports every required visible field", func(t *testing.T) {
		got := Missing(fields, allVisible, form.State{})
		assert.Equal(t, []int64{1, 2, 4}, got)
	})

	t.Run("checkbox needs at least one selection", func(t *testing.T) {
		state := form.State{
			"_area":      form.String("42"),
			"_amenities": form.Strings(),
			"_parking":   form.String("street"),
		}
		assert.Equal(t, []int64{2}, Missing(fields, allVisible, state))

		state.Set("_amenities", form.Strings("7"))
		assert.Empty(t, Missing(fields, allVisible, state))
	})

	t.Run("hidden fields are skipped even when empty", func(t *testing.T) {
		visible := map[int64]bool{1: true, 3: true}
		got := Missing(fields, visible, form.State{})
		assert.Equal(t, []int64{1}, got)
	})

	t.Run("optional fields never fail", func(t *testing.T) {
		state := form.State{
			"_area":      form.String("42"),
			"_amenities": form.Strings("7"),
			"_parking":   form.String("garage"),
		}
		assert.Empty(t, Missing(fields, allVisible, state))
	})
}
