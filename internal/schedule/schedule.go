// Package schedule models a listing's business hours: a weekly schedule of
// seven day records plus an index-addressed list of special dates. Both follow
// the same open/slot-mode transition rules; operations that would break an
// invariant return an error and leave state untouched.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/guptabinit/listform/internal/config"
)

// Errors returned by mutation operations.
var (
	ErrDayClosed       = errors.New("day is closed")
	ErrNoSlots         = errors.New("slot mode is off for this day")
	ErrLastSlot        = errors.New("cannot remove the last time slot")
	ErrLastSpecialDay  = errors.New("cannot remove the last special day")
	ErrSpecialDisabled = errors.New("special hours are disabled")
)

// TimeSlot is one open interval within a day. Start and End are formatted with
// the configured time format.
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayRecord is one weekly day. Times is present iff slot mode is on; a closed
// day never carries Times.
type DayRecord struct {
	Open  bool       `json:"open"`
	Times []TimeSlot `json:"times,omitempty"`
}

// SpecialEntry is one special-date record, addressed by its list index.
type SpecialEntry struct {
	Open  bool       `json:"open"`
	Date  string     `json:"date"`
	Times []TimeSlot `json:"times,omitempty"`
}

// Bound selects which end of a slot SetSlotTime writes.
type Bound int

const (
	Start Bound = iota
	End
)

// Model holds the business-hours state for one form session. It has a single
// mutator (the UI event loop) and therefore does no locking.
type Model struct {
	dateFmt string
	timeFmt string
	now     func() time.Time

	week    [7]DayRecord
	special []SpecialEntry
}

// Option configures a Model.
type Option func(*Model)

// WithNow overrides the clock used for new special-day dates.
func WithNow(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

// New creates a schedule model with all seven weekdays closed and the
// special-date feature disabled. Blank format strings fall back to the
// configured defaults.
func New(dateFmt, timeFmt string, opts ...Option) *Model {
	if dateFmt == "" {
		dateFmt = config.DefaultDateFormat
	}
	if timeFmt == "" {
		timeFmt = config.DefaultTimeFormat
	}
	m := &Model{
		dateFmt: dateFmt,
		timeFmt: timeFmt,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load replaces the model's state from stored records, as the edit flow does
// when reopening an existing listing. Records are normalized back onto the
// invariants: a closed day loses its times, and an empty times list means
// slot mode is off.
func (m *Model) Load(week [7]DayRecord, special []SpecialEntry) {
	for i := range week {
		week[i] = normalizeDay(week[i])
	}
	m.week = week

	m.special = nil
	for _, entry := range special {
		rec := normalizeDay(DayRecord{Open: entry.Open, Times: entry.Times})
		m.special = append(m.special, SpecialEntry{Open: rec.Open, Date: entry.Date, Times: rec.Times})
	}
}

func normalizeDay(rec DayRecord) DayRecord {
	if !rec.Open || len(rec.Times) == 0 {
		rec.Times = nil
		return rec
	}
	rec.Times = append([]TimeSlot(nil), rec.Times...)
	return rec
}

// Week returns a copy of the weekly records, indexed 0 (Sunday) through 6.
func (m *Model) Week() [7]DayRecord {
	week := m.week
	for i := range week {
		week[i].Times = append([]TimeSlot(nil), week[i].Times...)
	}
	return week
}

// Special returns a copy of the special-date records.
func (m *Model) Special() []SpecialEntry {
	out := make([]SpecialEntry, len(m.special))
	for i, e := range m.special {
		out[i] = e
		out[i].Times = append([]TimeSlot(nil), e.Times...)
	}
	return out
}

// SpecialEnabled reports whether the special-hours feature is on; the feature
// is carried by the list being non-empty.
func (m *Model) SpecialEnabled() bool {
	return len(m.special) > 0
}

// defaultSlot renders the seed slot in the configured time format.
func (m *Model) defaultSlot() TimeSlot {
	day := time.Date(2000, 1, 1, 8, 0, 0, 0, time.UTC)
	return TimeSlot{
		Start: Format(day, m.timeFmt),
		End:   Format(day.Add(12*time.Hour), m.timeFmt),
	}
}

// Weekly operations.

// ToggleOpen flips a weekday's open flag. Closing a day removes its time
// slots entirely, not merely empties them.
func (m *Model) ToggleOpen(day int) error {
	rec, err := m.weekday(day)
	if err != nil {
		return err
	}
	toggleOpen(rec)
	return nil
}

// ToggleSlots switches a weekday between all-day open and explicit slot mode.
func (m *Model) ToggleSlots(day int) error {
	rec, err := m.weekday(day)
	if err != nil {
		return err
	}
	return m.toggleSlots(rec)
}

// AddSlot appends a default slot after the last one.
func (m *Model) AddSlot(day int) error {
	rec, err := m.weekday(day)
	if err != nil {
		return err
	}
	return m.addSlot(rec)
}

// RemoveSlot removes the slot at index. The first slot is never removable.
func (m *Model) RemoveSlot(day, index int) error {
	rec, err := m.weekday(day)
	if err != nil {
		return err
	}
	return removeSlot(rec, index)
}

// SetSlotTime writes one end of a slot, formatted with the configured time
// format.
func (m *Model) SetSlotTime(day, index int, bound Bound, value time.Time) error {
	rec, err := m.weekday(day)
	if err != nil {
		return err
	}
	return m.setSlotTime(rec, index, bound, value)
}

func (m *Model) weekday(day int) (*DayRecord, error) {
	if day < 0 || day > 6 {
		return nil, fmt.Errorf("weekday index %d out of range", day)
	}
	return &m.week[day], nil
}

// Special-date operations.

// SetSpecialEnabled turns the special-hours feature on or off. Enabling seeds
// one closed entry dated today; disabling clears the whole list.
func (m *Model) SetSpecialEnabled(on bool) {
	if !on {
		m.special = nil
		return
	}
	if len(m.special) == 0 {
		m.AddDay()
	}
}

// AddDay appends a new closed special entry dated today in the configured
// date format.
func (m *Model) AddDay() {
	m.special = append(m.special, SpecialEntry{
		Open: false,
		Date: Format(m.now(), m.dateFmt),
	})
}

// RemoveDay splices the entry at index out of the list. The last remaining
// entry can only go away through SetSpecialEnabled(false).
func (m *Model) RemoveDay(index int) error {
	if err := m.checkSpecial(index); err != nil {
		return err
	}
	if len(m.special) <= 1 {
		return ErrLastSpecialDay
	}
	m.special = append(m.special[:index], m.special[index+1:]...)
	return nil
}

// SetDate writes a special entry's date in the configured date format.
func (m *Model) SetDate(index int, value time.Time) error {
	if err := m.checkSpecial(index); err != nil {
		return err
	}
	m.special[index].Date = Format(value, m.dateFmt)
	return nil
}

// ToggleSpecialOpen flips a special entry's open flag, with the same
// times-removal rule as weekdays.
func (m *Model) ToggleSpecialOpen(index int) error {
	return m.mutateSpecial(index, func(rec *DayRecord) error {
		toggleOpen(rec)
		return nil
	})
}

// ToggleSpecialSlots switches a special entry between all-day and slot mode.
func (m *Model) ToggleSpecialSlots(index int) error {
	return m.mutateSpecial(index, m.toggleSlots)
}

// AddSpecialSlot appends a default slot to a special entry.
func (m *Model) AddSpecialSlot(index int) error {
	return m.mutateSpecial(index, m.addSlot)
}

// RemoveSpecialSlot removes a slot from a special entry, never below one.
func (m *Model) RemoveSpecialSlot(index, slot int) error {
	return m.mutateSpecial(index, func(rec *DayRecord) error {
		return removeSlot(rec, slot)
	})
}

// SetSpecialSlotTime writes one end of a special entry's slot.
func (m *Model) SetSpecialSlotTime(index, slot int, bound Bound, value time.Time) error {
	return m.mutateSpecial(index, func(rec *DayRecord) error {
		return m.setSlotTime(rec, slot, bound, value)
	})
}

func (m *Model) checkSpecial(index int) error {
	if len(m.special) == 0 {
		return ErrSpecialDisabled
	}
	if index < 0 || index >= len(m.special) {
		return fmt.Errorf("special day index %d out of range", index)
	}
	return nil
}

// mutateSpecial runs a day-record operation against a special entry, keeping
// the weekly and special transition rules identical.
func (m *Model) mutateSpecial(index int, op func(*DayRecord) error) error {
	if err := m.checkSpecial(index); err != nil {
		return err
	}
	entry := &m.special[index]
	rec := DayRecord{Open: entry.Open, Times: entry.Times}
	if err := op(&rec); err != nil {
		return err
	}
	entry.Open, entry.Times = rec.Open, rec.Times
	return nil
}

// Shared day-record transitions.

func toggleOpen(rec *DayRecord) {
	rec.Open = !rec.Open
	if !rec.Open {
		rec.Times = nil
	}
}

func (m *Model) toggleSlots(rec *DayRecord) error {
	if rec.Times != nil {
		rec.Times = nil
		return nil
	}
	if !rec.Open {
		return ErrDayClosed
	}
	rec.Times = []TimeSlot{m.defaultSlot()}
	return nil
}

func (m *Model) addSlot(rec *DayRecord) error {
	if !rec.Open {
		return ErrDayClosed
	}
	if rec.Times == nil {
		return ErrNoSlots
	}
	rec.Times = append(rec.Times, m.defaultSlot())
	return nil
}

func removeSlot(rec *DayRecord, index int) error {
	if rec.Times == nil {
		return ErrNoSlots
	}
	if index < 0 || index >= len(rec.Times) {
		return fmt.Errorf("slot index %d out of range", index)
	}
	if len(rec.Times) <= 1 {
		return ErrLastSlot
	}
	rec.Times = append(rec.Times[:index], rec.Times[index+1:]...)
	return nil
}

func (m *Model) setSlotTime(rec *DayRecord, index int, bound Bound, value time.Time) error {
	if rec.Times == nil {
		return ErrNoSlots
	}
	if index < 0 || index >= len(rec.Times) {
		return fmt.Errorf("slot index %d out of range", index)
	}
	formatted := Format(value, m.timeFmt)
	if bound == Start {
		rec.Times[index].Start = formatted
	} else {
		rec.Times[index].End = formatted
	}
	return nil
}
