package normalize

import "google.golang.org/protobuf/types/known/structpb"

// Object unwraps "data" envelopes around an object payload (stats,
// acknowledgements) and returns it as a plain map. When field is set and
// present, the object under it is returned instead. Non-objects yield an
// empty map.
func Object(v *structpb.Value, field string) map[string]any {
	s := v.GetStructValue()
	for layer := 0; s != nil && layer < MaxLayers; layer++ {
		if field != "" {
			if inner := s.GetFields()[field].GetStructValue(); inner != nil {
				return inner.AsMap()
			}
		}
		inner := s.GetFields()["data"].GetStructValue()
		if inner == nil {
			break
		}
		s = inner
	}
	if s == nil {
		return map[string]any{}
	}
	return s.AsMap()
}

// String finds a string field by name at the top level or inside "data"
// envelopes, e.g. the token of a login response or the message of an error
// body.
func String(v *structpb.Value, name string) (string, bool) {
	s := v.GetStructValue()
	for layer := 0; s != nil && layer <= MaxLayers; layer++ {
		if sv, ok := s.GetFields()[name].GetKind().(*structpb.Value_StringValue); ok {
			return sv.StringValue, true
		}
		s = s.GetFields()["data"].GetStructValue()
	}
	return "", false
}
