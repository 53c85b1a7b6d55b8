package api

import (
	"encoding/json"
	"errors"

	"github.com/guptabinit/listform/internal/form"
	"github.com/guptabinit/listform/internal/schedule"
	"github.com/guptabinit/listform/internal/session"
)

// FormResponse is the full configuration of one listing form.
type FormResponse struct {
	Slug         string                 `json:"slug"`
	Title        string                 `json:"title"`
	PricingTypes []string               `json:"pricing_types"`
	HiddenFields []string               `json:"hidden_fields,omitempty"`
	GalleryLimit int                    `json:"gallery_limit"`
	DateFormat   string                 `json:"date_format"`
	TimeFormat   string                 `json:"time_format"`
	Fields       []form.FieldDefinition `json:"fields"`
}

// SubmissionRequest carries the state of a filled-in form. Values and Common
// are keyed by meta key; media entries reference previously uploaded files by
// name.
type SubmissionRequest struct {
	Values         map[string]ValueInput   `json:"values"`
	Common         map[string]ValueInput   `json:"common"`
	Gallery        []string                `json:"gallery,omitempty"`
	Panorama       []string                `json:"panorama,omitempty"`
	Hours          *HoursInput             `json:"hours,omitempty"`
	FloorPlans     []FloorPlanInput        `json:"floor_plans,omitempty"`
	SocialProfiles []session.SocialProfile `json:"social_profiles,omitempty"`
}

// HoursInput is the business-hours portion of a submission.
type HoursInput struct {
	Week    [7]schedule.DayRecord   `json:"week"`
	Special []schedule.SpecialEntry `json:"special,omitempty"`
}

// FloorPlanInput is one floor-plan record in a submission.
type FloorPlanInput struct {
	Title       string   `json:"title"`
	Size        string   `json:"size,omitempty"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
}

// ValueInput decodes one field value from request JSON. Accepted shapes:
// a string, a list of strings (checkbox selections), an object with start
// and end (range dates), or null for an absent value.
type ValueInput struct {
	value form.Value
}

func (in *ValueInput) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return errors.New("empty value")
	}
	switch data[0] {
	case 'n': // null
		in.value = form.Value{}
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		in.value = form.String(s)
		return nil
	case '[':
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		in.value = form.Strings(list...)
		return nil
	case '{':
		var span struct {
			Start string `json:"start"`
			End   string `json:"end"`
		}
		if err := json.Unmarshal(data, &span); err != nil {
			return err
		}
		in.value = form.Span(span.Start, span.End)
		return nil
	default:
		return errors.New("value must be a string, a list of strings, or a start/end object")
	}
}

// ValidationResponse reports the derived state of a submission attempt.
type ValidationResponse struct {
	Valid         bool     `json:"valid"`
	VisibleFields []int64  `json:"visible_fields"`
	MissingFields []int64  `json:"missing_fields"`
	MissingCommon []string `json:"missing_common"`
}

// SubmissionResponse confirms a stored submission.
type SubmissionResponse struct {
	ID int64 `json:"id"`
}

// PreviewRequest carries a markdown listing description to render.
type PreviewRequest struct {
	Markdown string `json:"markdown"`
}

// PreviewResponse is the sanitized HTML rendering of a description.
type PreviewResponse struct {
	HTML string `json:"html"`
}

// GeocodeResponse is a resolved address.
type GeocodeResponse struct {
	FormattedAddress string `json:"formatted_address"`
	PostalCode       string `json:"postal_code,omitempty"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
