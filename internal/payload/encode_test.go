package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_Scalars(t *testing.T) {
	root := RecordOf(
		Field("listing_title", Text("Sunny 2BR near the park")),
		Field("price", Text("1250.50")),
		Field("featured", Bool(true)),
	)

	pairs := Encode(root)
	assert.Equal(t, []Pair{
		{Key: "listing_title", Value: "Sunny 2BR near the park"},
		{Key: "price", Value: "1250.50"},
		{Key: "featured", Value: "true"},
	}, pairs)
}

func TestEncode_GenericLists(t *testing.T) {
	gallery := ListOf(
		Attach(FileRef{Name: "a.jpg", Path: "/tmp/a.jpg", ContentType: "image/jpeg"}),
		Attach(FileRef{Name: "b.jpg", Path: "/tmp/b.jpg", ContentType: "image/jpeg"}),
	)
	root := RecordOf(
		Field("gallery", gallery),
		Field("panorama_img", ListOf(Attach(FileRef{Name: "p.jpg", Path: "/tmp/p.jpg"}))),
		Field("floor_plan_imgs_0", ListOf(Attach(FileRef{Name: "f.png", Path: "/tmp/f.png"}))),
	)

	pairs := Encode(root)
	require.Len(t, pairs, 4)
	assert.Equal(t, "gallery[]", pairs[0].Key)
	require.NotNil(t, pairs[0].File)
	assert.Equal(t, "a.jpg", pairs[0].File.Name)
	assert.Equal(t, "gallery[]", pairs[1].Key)
	assert.Equal(t, "b.jpg", pairs[1].File.Name)
	assert.Equal(t, "panorama_img[]", pairs[2].Key)
	assert.Equal(t, "floor_plan_imgs_0[]", pairs[3].Key)
}

func TestEncode_PlainRecordOneLevel(t *testing.T) {
	root := RecordOf(
		Field("social_profiles", RecordOf(
			Field("facebook", Text("https://fb.example/x")),
			Field("twitter", Text("https://tw.example/x")),
		)),
	)

	pairs := Encode(root)
	assert.Equal(t, []Pair{
		{Key: "social_profiles[facebook]", Value: "https://fb.example/x"},
		{Key: "social_profiles[twitter]", Value: "https://tw.example/x"},
	}, pairs)
}

func TestEncode_CustomFields(t *testing.T) {
	t.Run("scalar round-trip", func(t *testing.T) {
		root := RecordOf(
			Field(KeyCustomFields, RecordOf(Field("_field_3", Text("abc")))),
		)
		pairs := Encode(root)
		assert.Equal(t, []Pair{{Key: "custom_fields[_field_3]", Value: "abc"}}, pairs)
	})

	t.Run("checkbox list is JSON-serialized", func(t *testing.T) {
		root := RecordOf(
			Field(KeyCustomFields, RecordOf(
				Field("_amenities", ListOf(Text("3"), Text("7"))),
			)),
		)
		pairs := Encode(root)
		assert.Equal(t, []Pair{{Key: "custom_fields[_amenities]", Value: `["3","7"]`}}, pairs)
	})
}

func TestEncode_BusinessHours(t *testing.T) {
	t.Run("open day with one slot yields exactly three pairs", func(t *testing.T) {
		root := RecordOf(
			Field(KeyHours, RecordOf(
				Field("1", RecordOf(
					Field("open", Bool(true)),
					Field("times", ListOf(RecordOf(
						Field("start", Text("8:00 am")),
						Field("end", Text("8:00 pm")),
					))),
				)),
			)),
		)

		pairs := Encode(root)
		assert.Equal(t, []Pair{
			{Key: "bhs[1][open]", Value: "true"},
			{Key: "bhs[1][times][0][start]", Value: "8:00 am"},
			{Key: "bhs[1][times][0][end]", Value: "8:00 pm"},
		}, pairs)
	})

	t.Run("slot missing an end is skipped", func(t *testing.T) {
		root := RecordOf(
			Field(KeyHours, RecordOf(
				Field("2", RecordOf(
					Field("open", Bool(true)),
					Field("times", ListOf(
						RecordOf(Field("start", Text("9:00 am"))),
						RecordOf(Field("start", Text("1:00 pm")), Field("end", Text("6:00 pm"))),
					)),
				)),
			)),
		)

		pairs := Encode(root)
		assert.Equal(t, []Pair{
			{Key: "bhs[2][open]", Value: "true"},
			{Key: "bhs[2][times][1][start]", Value: "1:00 pm"},
			{Key: "bhs[2][times][1][end]", Value: "6:00 pm"},
		}, pairs)
	})

	t.Run("closed day encodes only the open flag", func(t *testing.T) {
		root := RecordOf(
			Field(KeySpecialHours, RecordOf(
				Field("0", RecordOf(
					Field("open", Bool(false)),
					Field("date", Text("August 31, 2026")),
				)),
			)),
		)

		pairs := Encode(root)
		assert.Equal(t, []Pair{
			{Key: "special_bhs[0][open]", Value: "false"},
			{Key: "special_bhs[0][date]", Value: "August 31, 2026"},
		}, pairs)
	})
}

func TestEncode_FloorPlans(t *testing.T) {
	root := RecordOf(
		Field(KeyFloorPlans, ListOf(
			RecordOf(
				Field("title", Text("Ground floor")),
				Field("size", Text("85")),
			),
			RecordOf(
				Field("title", Text("First floor")),
			),
		)),
	)

	pairs := Encode(root)
	assert.Equal(t, []Pair{
		{Key: "floor_plans[0][title]", Value: "Ground floor"},
		{Key: "floor_plans[0][size]", Value: "85"},
		{Key: "floor_plans[1][title]", Value: "First floor"},
	}, pairs)
}

func TestEncode_Deterministic(t *testing.T) {
	build := func() Value {
		return RecordOf(
			Field("listing_title", Text("x")),
			Field(KeyCustomFields, RecordOf(
				Field("_a", Text("1")),
				Field("_b", ListOf(Text("2"))),
			)),
			Field(KeyHours, RecordOf(
				Field("1", RecordOf(Field("open", Bool(true)))),
			)),
		)
	}

	first := Encode(build())
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Encode(build()))
	}
}
