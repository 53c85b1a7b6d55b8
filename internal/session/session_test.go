package session

import (
	"testing"

	"github.com/guptabinit/listform/internal/form"
	"github.com/guptabinit/listform/internal/payload"
	"github.com/guptabinit/listform/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionFields() []form.FieldDefinition {
	return []form.FieldDefinition{
		{ID: 1, MetaKey: "_offer", Type: form.FieldRadio},
		{
			ID: 10, MetaKey: "_deposit", Type: form.FieldText, Required: true,
			Dependency: []form.RuleGroup{
				{{FieldID: 1, Operator: form.OpEqual, Value: "yes"}},
			},
		},
	}
}

func TestSession_VisibilityAndRequired(t *testing.T) {
	s := New(sessionFields())

	// Field 1 set to "yes" makes field 10 visible; empty value means it is
	// reported missing.
	s.SetValue("_offer", form.String("yes"))
	assert.True(t, s.Visible()[10])
	assert.Contains(t, s.MissingFields(), int64(10))

	// Setting field 1 to "no" hides field 10 and removes it from the missing
	// set even though its value is still empty.
	s.SetValue("_offer", form.String("no"))
	assert.False(t, s.Visible()[10])
	assert.NotContains(t, s.MissingFields(), int64(10))
}

func TestSession_CommonRequiredTracksPricingMode(t *testing.T) {
	s := New(nil)

	assert.Contains(t, s.MissingCommon(), validate.KeyTitle)
	assert.NotContains(t, s.MissingCommon(), validate.KeyPrice)

	s.SetValue(validate.KeyPricingType, form.String(validate.PricingPrice))
	s.SetValue(validate.KeyPriceType, form.String(validate.PriceFixed))
	assert.Contains(t, s.MissingCommon(), validate.KeyPrice)

	s.SetValue(validate.KeyPriceType, form.String(validate.PriceOnCall))
	assert.NotContains(t, s.MissingCommon(), validate.KeyPrice)

	s.SetValue(validate.KeyPricingType, form.String(validate.PricingRange))
	assert.Contains(t, s.MissingCommon(), validate.KeyPrice)
	assert.Contains(t, s.MissingCommon(), validate.KeyMaxPrice)
}

func TestSession_GalleryLimit(t *testing.T) {
	s := New(nil, WithGalleryLimit(2))

	refs := []payload.FileRef{
		{Name: "a.jpg", Path: "/tmp/a.jpg"},
		{Name: "b.jpg", Path: "/tmp/b.jpg"},
	}
	require.NoError(t, s.SetGallery(refs))

	refs = append(refs, payload.FileRef{Name: "c.jpg", Path: "/tmp/c.jpg"})
	assert.Error(t, s.SetGallery(refs))

	// Gallery participates in the required check as a list value.
	assert.NotContains(t, s.MissingCommon(), validate.KeyGallery)
}

func TestSession_BuildPayload(t *testing.T) {
	s := New(sessionFields())
	s.SetValue(validate.KeyTitle, form.String("Sunny 2BR near the park"))
	s.SetValue(validate.KeyPricingType, form.String(validate.PricingPrice))
	s.SetValue(validate.KeyPriceType, form.String(validate.PriceFixed))
	s.SetValue(validate.KeyPrice, form.String("1250.50"))
	s.SetValue("_offer", form.String("yes"))
	s.SetValue("_deposit", form.String("500"))

	require.NoError(t, s.Hours().ToggleOpen(1))
	require.NoError(t, s.Hours().ToggleSlots(1))

	require.NoError(t, s.SetGallery([]payload.FileRef{{Name: "a.jpg", Path: "/tmp/a.jpg"}}))
	s.SetFloorPlans([]FloorPlan{{
		Title:  "Ground floor",
		Size:   "85",
		Images: []payload.FileRef{{Name: "plan.png", Path: "/tmp/plan.png"}},
	}})
	s.SetSocialProfiles([]SocialProfile{{Network: "facebook", URL: "https://fb.example/x"}})

	parts := payload.Encode(s.BuildPayload())
	byKey := map[string]payload.Pair{}
	for _, p := range parts {
		byKey[p.Key] = p
	}

	assert.Equal(t, "Sunny 2BR near the park", byKey["listing_title"].Value)
	assert.Equal(t, "1250.50", byKey["price"].Value)
	assert.Equal(t, "yes", byKey["custom_fields[_offer]"].Value)
	assert.Equal(t, "500", byKey["custom_fields[_deposit]"].Value)
	assert.Equal(t, "true", byKey["bhs[1][open]"].Value)
	assert.Equal(t, "8:00 am", byKey["bhs[1][times][0][start]"].Value)
	assert.Equal(t, "false", byKey["bhs[0][open]"].Value)
	assert.Equal(t, "Ground floor", byKey["floor_plans[0][title]"].Value)
	assert.Equal(t, "https://fb.example/x", byKey["social_profiles[facebook]"].Value)
	require.NotNil(t, byKey["gallery[]"].File)
	assert.Equal(t, "a.jpg", byKey["gallery[]"].File.Name)
	require.NotNil(t, byKey["floor_plan_imgs_0[]"].File)

	// Hidden fields never reach the payload.
	s.SetValue("_offer", form.String("no"))
	parts = payload.Encode(s.BuildPayload())
	for _, p := range parts {
		assert.NotEqual(t, "custom_fields[_deposit]", p.Key)
	}
}

func TestSession_BuildPayloadDeterministic(t *testing.T) {
	build := func() []payload.Pair {
		s := New(sessionFields())
		s.SetValue("_offer", form.String("yes"))
		s.SetValue("_deposit", form.String("500"))
		s.SetValue(validate.KeyTitle, form.String("x"))
		return payload.Encode(s.BuildPayload())
	}

	first := build()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, build())
	}
}

func TestSession_RangeValueEncodesAsJSONList(t *testing.T) {
	fields := []form.FieldDefinition{
		{ID: 5, MetaKey: "_available", Type: form.FieldDate, DateKind: form.DateRange},
	}
	s := New(fields)
	s.SetValue("_available", form.Span("2026-09-01", "2026-09-30"))

	parts := payload.Encode(s.BuildPayload())
	byKey := map[string]string{}
	for _, p := range parts {
		byKey[p.Key] = p.Value
	}
	assert.Equal(t, `["2026-09-01","2026-09-30"]`, byKey["custom_fields[_available]"])
}
