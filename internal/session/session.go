// Package session holds the per-form-session state shared by the
// create-listing and edit-listing flows: current values, the derived visible
// and missing sets, the business-hours model, and media descriptors. Both
// flows consume one Session through injection, so their behavior cannot
// drift.
//
// A session has exactly one mutator (the UI event loop); it does no locking.
package session

import (
	"errors"
	"sort"
	"strconv"

	"github.com/guptabinit/listform/internal/config"
	"github.com/guptabinit/listform/internal/form"
	"github.com/guptabinit/listform/internal/payload"
	"github.com/guptabinit/listform/internal/rule"
	"github.com/guptabinit/listform/internal/schedule"
	"github.com/guptabinit/listform/internal/validate"
	"github.com/samber/lo"
)

// FloorPlan is one floor-plan record plus its image descriptors.
type FloorPlan struct {
	Title       string            `json:"title"`
	Size        string            `json:"size,omitempty"`
	Description string            `json:"description,omitempty"`
	Images      []payload.FileRef `json:"images,omitempty"`
}

// SocialProfile is one contact link on the listing.
type SocialProfile struct {
	Network string `json:"network"`
	URL     string `json:"url"`
}

// Session is the live state of one open listing form.
type Session struct {
	fields       []form.FieldDefinition
	baseRequired []string
	galleryLimit int
	transport    Transport

	state form.State
	hours *schedule.Model

	gallery    []payload.FileRef
	panorama   []payload.FileRef
	floorPlans []FloorPlan
	social     []SocialProfile

	visible        map[int64]bool
	missingFields  []int64
	requiredCommon []string
	missingCommon  []string
}

// Option configures a Session.
type Option func(*Session)

// WithTransport injects the submission transport.
func WithTransport(t Transport) Option {
	return func(s *Session) { s.transport = t }
}

// WithBaseRequired overrides the base common-field required list (already
// reflecting configuration-hidden fields).
func WithBaseRequired(keys []string) Option {
	return func(s *Session) { s.baseRequired = keys }
}

// WithGalleryLimit caps the number of gallery images.
func WithGalleryLimit(n int) Option {
	return func(s *Session) { s.galleryLimit = n }
}

// WithDatetimeFormats sets the moment-style formats the schedule model uses.
func WithDatetimeFormats(dateFmt, timeFmt string) Option {
	return func(s *Session) { s.hours = schedule.New(dateFmt, timeFmt) }
}

// DefaultBaseRequired returns the stock base required list for common fields,
// before any configuration-hidden fields are subtracted.
func DefaultBaseRequired() []string {
	return []string{
		validate.KeyTitle,
		validate.KeyPricingType,
		validate.KeyGallery,
		validate.KeyContactName,
		validate.KeyContactEmail,
	}
}

// New opens a session over the given immutable field definitions.
func New(fields []form.FieldDefinition, opts ...Option) *Session {
	s := &Session{
		fields:       fields,
		baseRequired: DefaultBaseRequired(),
		galleryLimit: config.DefaultGalleryLimit,
		state:        form.State{},
		hours:        schedule.New("", ""),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.recompute()
	return s
}

// SetValue writes a field value and synchronously recomputes visibility and
// the missing sets.
func (s *Session) SetValue(metaKey string, v form.Value) {
	s.state.Set(metaKey, v)
	s.recompute()
}

// ClearValue removes a field value and recomputes.
func (s *Session) ClearValue(metaKey string) {
	s.state.Delete(metaKey)
	s.recompute()
}

// Value reads a field's current value.
func (s *Session) Value(metaKey string) form.Value {
	return s.state.Get(metaKey)
}

// Hours exposes the business-hours model for mutation.
func (s *Session) Hours() *schedule.Model {
	return s.hours
}

// Visible returns the current visible field-id set.
func (s *Session) Visible() map[int64]bool {
	return s.visible
}

// MissingFields returns the ids of required visible custom fields that are
// still empty.
func (s *Session) MissingFields() []int64 {
	return s.missingFields
}

// MissingCommon returns the required common-field keys that are still empty.
func (s *Session) MissingCommon() []string {
	return s.missingCommon
}

// SetGallery replaces the gallery descriptors, enforcing the configured cap.
func (s *Session) SetGallery(refs []payload.FileRef) error {
	if len(refs) > s.galleryLimit {
		return errors.New("gallery exceeds the configured image limit")
	}
	s.gallery = refs
	s.state.Set(validate.KeyGallery, form.Strings(lo.Map(refs, func(r payload.FileRef, _ int) string {
		return r.Name
	})...))
	s.recompute()
	return nil
}

// SetPanorama replaces the panorama image descriptors.
func (s *Session) SetPanorama(refs []payload.FileRef) {
	s.panorama = refs
}

// SetFloorPlans replaces the floor-plan records.
func (s *Session) SetFloorPlans(plans []FloorPlan) {
	s.floorPlans = plans
}

// SetSocialProfiles replaces the social-profile links.
func (s *Session) SetSocialProfiles(profiles []SocialProfile) {
	s.social = profiles
}

// recompute rederives visibility, the dynamic common required set, and both
// missing sets. Runs after every mutation; field counts are tens, not
// thousands, so recomputing from scratch is cheap.
func (s *Session) recompute() {
	s.visible = rule.VisibleIDs(s.fields, s.state)
	s.missingFields = validate.Missing(s.fields, s.visible, s.state)
	s.requiredCommon = validate.RequiredCommon(
		s.baseRequired,
		s.state.Get(validate.KeyPricingType).Scalar(),
		s.state.Get(validate.KeyPriceType).Scalar(),
	)
	s.missingCommon = validate.MissingCommon(s.requiredCommon, s.state)
}

// commonKeys is the canonical encoding order of the common scalar fields.
var commonKeys = []string{
	validate.KeyTitle,
	validate.KeyPricingType,
	validate.KeyPriceType,
	validate.KeyPrice,
	validate.KeyMaxPrice,
	validate.KeyContactName,
	validate.KeyContactEmail,
}

// BuildPayload assembles the submission tree. It is called once at submit
// time; the tree is write-once and never read back.
func (s *Session) BuildPayload() payload.Value {
	var entries []payload.Entry

	for _, key := range commonKeys {
		if v := s.state.Get(key); v.Kind() == form.Scalar && v.Scalar() != "" {
			entries = append(entries, payload.Field(key, payload.Text(v.Scalar())))
		}
	}

	if custom := s.customFieldEntries(); len(custom) > 0 {
		entries = append(entries, payload.Field(payload.KeyCustomFields, payload.RecordOf(custom...)))
	}

	entries = append(entries, payload.Field(payload.KeyHours, s.hoursRecord()))
	if s.hours.SpecialEnabled() {
		entries = append(entries, payload.Field(payload.KeySpecialHours, s.specialRecord()))
	}

	if len(s.gallery) > 0 {
		entries = append(entries, payload.Field("gallery", attachList(s.gallery)))
	}
	if len(s.panorama) > 0 {
		entries = append(entries, payload.Field("panorama_img", attachList(s.panorama)))
	}
	entries = append(entries, s.floorPlanEntries()...)

	if len(s.social) > 0 {
		profiles := lo.Map(s.social, func(p SocialProfile, _ int) payload.Entry {
			return payload.Field(p.Network, payload.Text(p.URL))
		})
		entries = append(entries, payload.Field("social_profiles", payload.RecordOf(profiles...)))
	}

	return payload.RecordOf(entries...)
}

// customFieldEntries collects the visible custom-field values, keyed by
// metaKey in sorted order for deterministic encoding.
func (s *Session) customFieldEntries() []payload.Entry {
	visibleFields := lo.Filter(s.fields, func(f form.FieldDefinition, _ int) bool {
		return s.visible[f.ID] && !s.state.Get(f.MetaKey).IsEmpty()
	})
	sort.Slice(visibleFields, func(i, j int) bool {
		return visibleFields[i].MetaKey < visibleFields[j].MetaKey
	})

	return lo.Map(visibleFields, func(f form.FieldDefinition, _ int) payload.Entry {
		v := s.state.Get(f.MetaKey)
		switch v.Kind() {
		case form.List:
			vals := lo.Map(v.List(), func(el string, _ int) payload.Value {
				return payload.Text(el)
			})
			return payload.Field(f.MetaKey, payload.ListOf(vals...))
		case form.Range:
			start, end := v.Span()
			return payload.Field(f.MetaKey, payload.ListOf(payload.Text(start), payload.Text(end)))
		default:
			return payload.Field(f.MetaKey, payload.Text(v.Scalar()))
		}
	})
}

func (s *Session) hoursRecord() payload.Value {
	week := s.hours.Week()
	days := make([]payload.Entry, 0, len(week))
	for i, day := range week {
		days = append(days, payload.Field(strconv.Itoa(i), dayRecord(day.Open, "", day.Times)))
	}
	return payload.RecordOf(days...)
}

func (s *Session) specialRecord() payload.Value {
	special := s.hours.Special()
	days := make([]payload.Entry, 0, len(special))
	for i, entry := range special {
		days = append(days, payload.Field(strconv.Itoa(i), dayRecord(entry.Open, entry.Date, entry.Times)))
	}
	return payload.RecordOf(days...)
}

func dayRecord(open bool, date string, times []schedule.TimeSlot) payload.Value {
	entries := []payload.Entry{payload.Field("open", payload.Bool(open))}
	if date != "" {
		entries = append(entries, payload.Field("date", payload.Text(date)))
	}
	if len(times) > 0 {
		slots := lo.Map(times, func(slot schedule.TimeSlot, _ int) payload.Value {
			return payload.RecordOf(
				payload.Field("start", payload.Text(slot.Start)),
				payload.Field("end", payload.Text(slot.End)),
			)
		})
		entries = append(entries, payload.Field("times", payload.ListOf(slots...)))
	}
	return payload.RecordOf(entries...)
}

func (s *Session) floorPlanEntries() []payload.Entry {
	if len(s.floorPlans) == 0 {
		return nil
	}

	records := make([]payload.Value, 0, len(s.floorPlans))
	var entries []payload.Entry
	for i, plan := range s.floorPlans {
		fields := []payload.Entry{payload.Field("title", payload.Text(plan.Title))}
		if plan.Size != "" {
			fields = append(fields, payload.Field("size", payload.Text(plan.Size)))
		}
		if plan.Description != "" {
			fields = append(fields, payload.Field("description", payload.Text(plan.Description)))
		}
		records = append(records, payload.RecordOf(fields...))

		if len(plan.Images) > 0 {
			entries = append(entries, payload.Field("floor_plan_imgs_"+strconv.Itoa(i), attachList(plan.Images)))
		}
	}
	return append([]payload.Entry{payload.Field(payload.KeyFloorPlans, payload.ListOf(records...))}, entries...)
}

func attachList(refs []payload.FileRef) payload.Value {
	vals := lo.Map(refs, func(r payload.FileRef, _ int) payload.Value {
		return payload.Attach(r)
	})
	return payload.ListOf(vals...)
}
