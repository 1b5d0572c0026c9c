package object

import (
	"net/netip"

	"github.com/goccy/go-json"
)

// ToMap renders the entity as a plain nested map for diagnostics. Related
// entities are rendered as their repr instead of being expanded.
func (e *Entity) ToMap() map[string]any {
	data := make(map[string]any, len(e.attrs))
	for k, v := range e.attrs {
		data[k] = reprValue(v)
	}

	var source any
	if e.source != nil {
		source = e.source.Name()
	}

	changed := e.Changed()
	if changed == nil {
		changed = []string{}
	}
	unset := e.PendingUnset()
	if unset == nil {
		unset = []string{}
	}

	return map[string]any{
		"type":          string(e.schema.Type),
		"name":          e.schema.Name,
		"api_path":      e.schema.APIPath,
		"primary_key":   e.schema.PrimaryKey,
		"secondary_key": e.schema.SecondaryKey,
		"display_name":  e.DisplayName(false),
		"remote_id":     e.remoteID,
		"is_new":        e.isNew,
		"prune":         e.schema.Prune,
		"source":        source,
		"changed":       changed,
		"unset":         unset,
		"data":          data,
		"schema":        e.schema.Describe(),
	}
}

// JSON returns ToMap as indented JSON with sorted keys.
func (e *Entity) JSON() string {
	out, err := json.MarshalIndent(e.ToMap(), "", "    ")
	if err != nil {
		return e.Repr()
	}
	return string(out)
}

func reprValue(v any) any {
	switch x := v.(type) {
	case *Entity:
		return x.Repr()
	case *Collection:
		items := make([]string, 0, x.Len())
		for _, item := range x.Items() {
			items = append(items, item.Repr())
		}
		return items
	case Unresolved:
		return x.Key
	case netip.Prefix:
		return x.String()
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = reprValue(item)
		}
		return out
	}
	return v
}
