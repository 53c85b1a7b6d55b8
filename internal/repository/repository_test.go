package repository

import (
	"testing"

	"github.com/guptabinit/listform/internal/form"
	"github.com/stretchr/testify/assert"
)

func TestNewFormRepository(t *testing.T) {
	t.Run("nil pool returns error", func(t *testing.T) {
		repo, err := NewFormRepository(nil)
		assert.Nil(t, repo)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "database pool is required")
	})
}

func TestNewSubmissionRepository(t *testing.T) {
	t.Run("nil pool returns error", func(t *testing.T) {
		repo, err := NewSubmissionRepository(nil)
		assert.Nil(t, repo)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "database pool is required")
	})
}

func TestBuildDependency(t *testing.T) {
	t.Run("no rows means no dependency", func(t *testing.T) {
		assert.Nil(t, buildDependency(nil))
	})

	t.Run("rows group by group_index in order", func(t *testing.T) {
		rows := []ruleRow{
			{fieldID: 10, groupIndex: 0, position: 0, rule: form.Rule{FieldID: 1, Operator: form.OpEqual, Value: "rent"}},
			{fieldID: 10, groupIndex: 0, position: 1, rule: form.Rule{FieldID: 2, Operator: form.OpNotEmpty}},
			{fieldID: 10, groupIndex: 1, position: 0, rule: form.Rule{FieldID: 3, Operator: form.OpEmpty}},
		}

		groups := buildDependency(rows)
		assert.Equal(t, []form.RuleGroup{
			{
				{FieldID: 1, Operator: form.OpEqual, Value: "rent"},
				{FieldID: 2, Operator: form.OpNotEmpty},
			},
			{
				{FieldID: 3, Operator: form.OpEmpty},
			},
		}, groups)
	})
}
