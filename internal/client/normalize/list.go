package normalize

import (
	"math"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/models"
)

// MaxLayers bounds how many "data" envelopes are peeled off.
const MaxLayers = 3

// Via names the strategy that recognized a list.
type Via int

const (
	ViaNone  Via = iota // nothing recognized
	ViaList             // bare JSON array
	ViaItems            // canonical {"items": [...], "total": n}
	ViaField            // array under the named collection field
)

func (v Via) String() string {
	switch v {
	case ViaList:
		return "list"
	case ViaItems:
		return "items"
	case ViaField:
		return "field"
	default:
		return "none"
	}
}

// Page is the canonical list result.
type Page struct {
	Items []models.Entity
	Total int

	Via    Via
	Layers int // "data" envelopes unwrapped before the match
}

// Matched reports whether any strategy recognized the envelope.
func (p Page) Matched() bool { return p.Via != ViaNone }

// Empty is the result for unrecognized envelopes.
func Empty() Page {
	return Page{Items: []models.Entity{}}
}

type listStrategy func(v *structpb.Value, field string, layer int) (Page, bool)

// listStrategies are tried in order at each layer.
var listStrategies []listStrategy

func init() {
	listStrategies = []listStrategy{bareList, itemsList, dataList, fieldList}
}

// List normalizes a list envelope. field names the collection key used by
// the endpoint ("users", "reports"); it may be empty.
func List(v *structpb.Value, field string) Page {
	if p, ok := listAt(v, field, 0); ok {
		return p
	}
	return Empty()
}

func listAt(v *structpb.Value, field string, layer int) (Page, bool) {
	if v == nil || layer > MaxLayers {
		return Page{}, false
	}
	for _, try := range listStrategies {
		if p, ok := try(v, field, layer); ok {
			return p, true
		}
	}
	return Page{}, false
}

func bareList(v *structpb.Value, _ string, layer int) (Page, bool) {
	lv := v.GetListValue()
	if lv == nil {
		return Page{}, false
	}
	items := entities(lv)
	return Page{Items: items, Total: len(items), Via: ViaList, Layers: layer}, true
}

func itemsList(v *structpb.Value, _ string, layer int) (Page, bool) {
	return fieldPage(v.GetStructValue(), "items", ViaItems, layer)
}

func fieldList(v *structpb.Value, field string, layer int) (Page, bool) {
	if field == "" {
		return Page{}, false
	}
	return fieldPage(v.GetStructValue(), field, ViaField, layer)
}

func dataList(v *structpb.Value, field string, layer int) (Page, bool) {
	s := v.GetStructValue()
	if s == nil {
		return Page{}, false
	}
	inner, ok := s.GetFields()["data"]
	if !ok {
		return Page{}, false
	}
	p, ok := listAt(inner, field, layer+1)
	if !ok {
		return Page{}, false
	}
	// {"data": [...], "total": n} keeps the sibling count.
	if p.Via == ViaList {
		if n, ok := total(s); ok {
			p.Total = n
		}
	}
	return p, true
}

func fieldPage(s *structpb.Struct, key string, via Via, layer int) (Page, bool) {
	if s == nil {
		return Page{}, false
	}
	lv := s.GetFields()[key].GetListValue()
	if lv == nil {
		return Page{}, false
	}
	items := entities(lv)
	n, ok := total(s)
	if !ok {
		n = len(items)
	}
	return Page{Items: items, Total: n, Via: via, Layers: layer}, true
}

func total(s *structpb.Struct) (int, bool) {
	v, ok := s.GetFields()["total"]
	if !ok {
		return 0, false
	}
	nv, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, false
	}
	// Counts that do not fit an int are treated as absent.
	f := nv.NumberValue
	if f < 0 || math.IsNaN(f) || f >= float64(math.MaxInt) {
		return 0, false
	}
	return int(f), true
}

// entities keeps the object elements of lv; anything else is dropped.
func entities(lv *structpb.ListValue) []models.Entity {
	out := make([]models.Entity, 0, len(lv.GetValues()))
	for _, item := range lv.GetValues() {
		if s := item.GetStructValue(); s != nil {
			out = append(out, entity(s))
		}
	}
	return out
}

// Canonical renders p as {"items": [...], "total": n}. List on the result
// yields the same Items and Total.
func Canonical(p Page) (*structpb.Value, error) {
	items := make([]any, len(p.Items))
	for i, e := range p.Items {
		items[i] = attrsWithID(e)
	}
	return structpb.NewValue(map[string]any{
		"items": items,
		"total": float64(p.Total),
	})
}
