package payload

import (
	"encoding/json"
	"fmt"
)

// Top-level keys with dedicated encoding rules.
const (
	KeyCustomFields = "custom_fields"
	KeyHours        = "bhs"
	KeySpecialHours = "special_bhs"
	KeyFloorPlans   = "floor_plans"
)

// Pair is one flattened multipart part. Exactly one of Value/File carries the
// content; File is non-zero for binary parts.
type Pair struct {
	Key   string
	Value string
	File  *FileRef
}

// Encode flattens the submission tree into ordered multipart pairs.
//
// Grammar, applied one object level at a time:
//   - scalar at k            -> (k, v)
//   - list at k              -> (k[], element) per element, in order
//   - record at k            -> (k[ik], inner) per entry, one level only
//   - custom_fields          -> custom_fields[metaKey]; list values are
//     JSON-serialized before encoding (checkbox selections)
//   - bhs / special_bhs      -> bhs[dk][open] boolean-coerced, and
//     bhs[dk][times][i][start|end] per slot when both ends are present
//   - floor_plans            -> floor_plans[i][ik] per record field
func Encode(root Value) []Pair {
	var pairs []Pair
	for _, e := range root.entries {
		switch e.Key {
		case KeyCustomFields:
			pairs = append(pairs, encodeCustomFields(e.Value)...)
		case KeyHours, KeySpecialHours:
			pairs = append(pairs, encodeHours(e.Key, e.Value)...)
		case KeyFloorPlans:
			pairs = append(pairs, encodeFloorPlans(e.Value)...)
		default:
			pairs = append(pairs, encodeGeneric(e.Key, e.Value)...)
		}
	}
	return pairs
}

func encodeGeneric(key string, v Value) []Pair {
	switch v.kind {
	case Scalar:
		return []Pair{{Key: key, Value: v.scalar}}
	case File:
		ref := v.file
		return []Pair{{Key: key, File: &ref}}
	case List:
		pairs := make([]Pair, 0, len(v.list))
		for _, el := range v.list {
			pairs = append(pairs, leaf(key+"[]", el))
		}
		return pairs
	case Record:
		pairs := make([]Pair, 0, len(v.entries))
		for _, e := range v.entries {
			// One level only; nested collections are not recursed.
			pairs = append(pairs, leaf(fmt.Sprintf("%s[%s]", key, e.Key), e.Value))
		}
		return pairs
	default:
		return nil
	}
}

func encodeCustomFields(fields Value) []Pair {
	pairs := make([]Pair, 0, len(fields.entries))
	for _, e := range fields.entries {
		key := fmt.Sprintf("%s[%s]", KeyCustomFields, e.Key)
		if e.Value.kind == List {
			// Checkbox selections travel as one JSON-serialized part.
			vals := make([]string, len(e.Value.list))
			for i, el := range e.Value.list {
				vals[i] = el.scalar
			}
			data, err := json.Marshal(vals)
			if err != nil {
				continue
			}
			pairs = append(pairs, Pair{Key: key, Value: string(data)})
			continue
		}
		pairs = append(pairs, leaf(key, e.Value))
	}
	return pairs
}

func encodeHours(key string, days Value) []Pair {
	var pairs []Pair
	for _, day := range days.entries {
		if day.Value.kind != Record {
			pairs = append(pairs, leaf(fmt.Sprintf("%s[%s]", key, day.Key), day.Value))
			continue
		}
		for _, inner := range day.Value.entries {
			prefix := fmt.Sprintf("%s[%s]", key, day.Key)
			switch {
			case inner.Key == "times" && inner.Value.kind == List && len(inner.Value.list) > 0:
				pairs = append(pairs, encodeSlots(prefix, inner.Value)...)
			case inner.Key == "open":
				pairs = append(pairs, Pair{
					Key:   prefix + "[open]",
					Value: boolText(inner.Value),
				})
			default:
				pairs = append(pairs, leaf(fmt.Sprintf("%s[%s]", prefix, inner.Key), inner.Value))
			}
		}
	}
	return pairs
}

func encodeSlots(prefix string, times Value) []Pair {
	var pairs []Pair
	for i, slot := range times.list {
		start, okStart := slot.get("start")
		end, okEnd := slot.get("end")
		if !okStart || !okEnd || start.scalar == "" || end.scalar == "" {
			continue
		}
		pairs = append(pairs,
			Pair{Key: fmt.Sprintf("%s[times][%d][start]", prefix, i), Value: start.scalar},
			Pair{Key: fmt.Sprintf("%s[times][%d][end]", prefix, i), Value: end.scalar},
		)
	}
	return pairs
}

func encodeFloorPlans(plans Value) []Pair {
	var pairs []Pair
	for i, plan := range plans.list {
		for _, e := range plan.entries {
			pairs = append(pairs, leaf(fmt.Sprintf("%s[%d][%s]", KeyFloorPlans, i, e.Key), e.Value))
		}
	}
	return pairs
}

// leaf encodes a terminal node, carrying file references through untouched.
func leaf(key string, v Value) Pair {
	if v.kind == File {
		ref := v.file
		return Pair{Key: key, File: &ref}
	}
	return Pair{Key: key, Value: v.scalar}
}

// boolText coerces a scalar to "true"/"false" the way the transport expects.
func boolText(v Value) string {
	switch v.scalar {
	case "", "false", "0":
		return "false"
	default:
		return "true"
	}
}
