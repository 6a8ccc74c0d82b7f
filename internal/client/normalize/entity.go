package normalize

import (
	"strconv"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/models"
)

type entityStrategy func(v *structpb.Value, field string, layer int) (models.Entity, bool)

var entityStrategies []entityStrategy

func init() {
	entityStrategies = []entityStrategy{directEntity, dataEntity, fieldEntity}
}

// Entity normalizes a single-resource envelope. field names the key the
// endpoint may nest the resource under ("user"); it may be empty. The
// boolean is false when no strategy found an object carrying an id.
func Entity(v *structpb.Value, field string) (models.Entity, bool) {
	return entityAt(v, field, 0)
}

func entityAt(v *structpb.Value, field string, layer int) (models.Entity, bool) {
	if v == nil || layer > MaxLayers {
		return models.Entity{}, false
	}
	for _, try := range entityStrategies {
		if e, ok := try(v, field, layer); ok {
			return e, true
		}
	}
	return models.Entity{}, false
}

func directEntity(v *structpb.Value, _ string, _ int) (models.Entity, bool) {
	s := v.GetStructValue()
	if s == nil || idOf(s) == "" {
		return models.Entity{}, false
	}
	return entity(s), true
}

func dataEntity(v *structpb.Value, field string, layer int) (models.Entity, bool) {
	inner, ok := v.GetStructValue().GetFields()["data"]
	if !ok {
		return models.Entity{}, false
	}
	return entityAt(inner, field, layer+1)
}

func fieldEntity(v *structpb.Value, field string, layer int) (models.Entity, bool) {
	if field == "" {
		return models.Entity{}, false
	}
	inner, ok := v.GetStructValue().GetFields()[field]
	if !ok {
		return models.Entity{}, false
	}
	return directEntity(inner, field, layer)
}

func entity(s *structpb.Struct) models.Entity {
	attrs := s.AsMap()
	e := models.Entity{ID: idOf(s), Attrs: attrs}
	for _, key := range []string{"expiresAt", "expires_at"} {
		if v, ok := attrs[key]; ok {
			e.ExpiresAt = models.ParseTime(v)
			break
		}
	}
	return e
}

func idOf(s *structpb.Struct) string {
	for _, key := range []string{"_id", "id"} {
		switch k := s.GetFields()[key].GetKind().(type) {
		case *structpb.Value_StringValue:
			if k.StringValue != "" {
				return k.StringValue
			}
		case *structpb.Value_NumberValue:
			return strconv.FormatFloat(k.NumberValue, 'f', -1, 64)
		}
	}
	return ""
}

func attrsWithID(e models.Entity) map[string]any {
	out := make(map[string]any, len(e.Attrs)+1)
	for k, v := range e.Attrs {
		out[k] = v
	}
	if _, ok := out["_id"]; !ok {
		if _, ok := out["id"]; !ok && e.ID != "" {
			out["_id"] = e.ID
		}
	}
	return out
}
