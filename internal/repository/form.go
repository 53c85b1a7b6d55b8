package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	sq "github.com/Masterminds/squirrel"
	"github.com/guptabinit/listform/internal/database"
	"github.com/guptabinit/listform/internal/form"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// ErrFormNotFound is returned when no form exists for the requested slug.
var ErrFormNotFound = errors.New("form not found")

// FormConfig is one form's full server-driven configuration: the listing
// category's custom fields plus the common-field settings.
type FormConfig struct {
	ID           int64
	Slug         string
	Title        string
	PricingTypes []string
	HiddenFields []string
	GalleryLimit int
	DateFormat   string
	TimeFormat   string
	Fields       []form.FieldDefinition
}

// FormRepository handles form-configuration data access.
type FormRepository struct {
	pool *pgxpool.Pool
}

// NewFormRepository creates a new form repository.
// Returns error if pool is nil.
func NewFormRepository(pool *pgxpool.Pool) (*FormRepository, error) {
	if pool == nil {
		return nil, errors.New("database pool is required")
	}
	return &FormRepository{pool: pool}, nil
}

// GetForm loads a form's configuration by slug. Fields, choices and
// dependency rules are fetched in parallel and stitched together.
func (r *FormRepository) GetForm(ctx context.Context, slug string) (*FormConfig, error) {
	cfg, err := r.getFormRow(ctx, slug)
	if err != nil {
		return nil, err
	}

	var (
		fields  []form.FieldDefinition
		choices map[int64][]form.Choice
		rules   map[int64][]ruleRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fields, err = r.getFields(gctx, cfg.ID)
		return err
	})
	g.Go(func() error {
		var err error
		choices, err = r.getChoices(gctx, cfg.ID)
		return err
	})
	g.Go(func() error {
		var err error
		rules, err = r.getRules(gctx, cfg.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range fields {
		fields[i].Choices = choices[fields[i].ID]
		fields[i].Dependency = buildDependency(rules[fields[i].ID])
	}
	cfg.Fields = fields
	return cfg, nil
}

func (r *FormRepository) getFormRow(ctx context.Context, slug string) (*FormConfig, error) {
	query, args, err := database.QB.
		Select("id", "title", "pricing_types", "hidden_fields", "gallery_limit", "date_format", "time_format").
		From("forms").
		Where(sq.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build form query: %w", err)
	}

	cfg := &FormConfig{Slug: slug}
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&cfg.ID, &cfg.Title, &cfg.PricingTypes, &cfg.HiddenFields,
		&cfg.GalleryLimit, &cfg.DateFormat, &cfg.TimeFormat,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrFormNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query form %q: %w", slug, err)
	}
	return cfg, nil
}

func (r *FormRepository) getFields(ctx context.Context, formID int64) ([]form.FieldDefinition, error) {
	query, args, err := database.QB.
		Select("field_id", "meta_key", "field_type", "required", "date_kind").
		From("form_fields").
		Where(sq.Eq{"form_id": formID}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build fields query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query fields: %w", err)
	}
	defer rows.Close()

	var fields []form.FieldDefinition
	for rows.Next() {
		var f form.FieldDefinition
		if err := rows.Scan(&f.ID, &f.MetaKey, &f.Type, &f.Required, &f.DateKind); err != nil {
			return nil, fmt.Errorf("scan field: %w", err)
		}
		fields = append(fields, f)
	}
	return fields, rows.Err()
}

func (r *FormRepository) getChoices(ctx context.Context, formID int64) (map[int64][]form.Choice, error) {
	query, args, err := database.QB.
		Select("field_id", "choice_id", "name").
		From("field_choices").
		Where(sq.Eq{"form_id": formID}).
		OrderBy("field_id", "position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build choices query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query choices: %w", err)
	}
	defer rows.Close()

	choices := make(map[int64][]form.Choice)
	for rows.Next() {
		var fieldID int64
		var c form.Choice
		if err := rows.Scan(&fieldID, &c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan choice: %w", err)
		}
		choices[fieldID] = append(choices[fieldID], c)
	}
	return choices, rows.Err()
}

type ruleRow struct {
	fieldID    int64
	groupIndex int
	position   int
	rule       form.Rule
}

func (r *FormRepository) getRules(ctx context.Context, formID int64) (map[int64][]ruleRow, error) {
	query, args, err := database.QB.
		Select("field_id", "group_index", "controller_id", "operator", "value", "position").
		From("field_rules").
		Where(sq.Eq{"form_id": formID}).
		OrderBy("field_id", "group_index", "position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build rules query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query rules: %w", err)
	}
	defer rows.Close()

	rules := make(map[int64][]ruleRow)
	for rows.Next() {
		var rr ruleRow
		if err := rows.Scan(&rr.fieldID, &rr.groupIndex, &rr.rule.FieldID, &rr.rule.Operator, &rr.rule.Value, &rr.position); err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		rules[rr.fieldID] = append(rules[rr.fieldID], rr)
	}
	return rules, rows.Err()
}

// buildDependency turns flat rule rows into the OR-of-AND-groups expression.
// Rows arrive ordered by (group_index, position).
func buildDependency(rows []ruleRow) []form.RuleGroup {
	if len(rows) == 0 {
		return nil
	}

	grouped := lo.GroupBy(rows, func(rr ruleRow) int { return rr.groupIndex })
	indexes := lo.Keys(grouped)
	sort.Ints(indexes)

	groups := make([]form.RuleGroup, 0, len(indexes))
	for _, idx := range indexes {
		group := lo.Map(grouped[idx], func(rr ruleRow, _ int) form.Rule { return rr.rule })
		groups = append(groups, group)
	}
	return groups
}
