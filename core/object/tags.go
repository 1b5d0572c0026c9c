package object

import (
	"netbox-sync/core/schema"
	"netbox-sync/core/utils"

	"go.uber.org/zap"
)

// TagNames returns the names of the entity's tags in stored order.
func (e *Entity) TagNames() []string {
	c := e.tagCollection()
	names := make([]string, 0, c.Len())
	for _, tag := range c.Items() {
		names = append(names, tag.DisplayName(false))
	}
	return names
}

// AddTags adds tags given as a name, a {"name": ...} map, a tag entity or a
// list of those. Present tags are kept.
func (e *Entity) AddTags(tags any) {
	e.updateTags(tags, false)
}

// RemoveTags removes the given tags. Unknown tags are ignored.
func (e *Entity) RemoveTags(tags any) {
	e.updateTags(tags, true)
}

func (e *Entity) updateTags(tags any, remove bool) {
	if tags == nil || !e.schema.HasTags() {
		return
	}

	current := e.tagCollection()
	next := e.compileTags(tags, remove)
	if current.DisplayName() == next.DisplayName() {
		return
	}

	e.attrs[schema.AttrTags] = next
	e.changed = append(e.changed, schema.AttrTags)

	zap.L().Info("Attribute changed",
		zap.String("object_type", e.schema.Name),
		zap.String("object", e.DisplayName(false)),
		zap.String("attribute", schema.AttrTags),
		zap.String("from", current.DisplayName()),
		zap.String("to", next.DisplayName()))
}

// tagCollection returns the current tags as a collection. Raw values left
// over from remote data are looked up without being stored.
func (e *Entity) tagCollection() *Collection {
	value := e.attrs[schema.AttrTags]
	if c, ok := value.(*Collection); ok {
		return c
	}

	c := NewCollection(schema.Tag)
	items, _ := utils.ToSlice(value)
	for _, item := range items {
		if tag, ok := item.(*Entity); ok {
			c.Append(tag)
			continue
		}
		if key, ok := lookupKey(item); ok {
			c.Append(e.inv.FindByData(schema.Tag, key))
		}
	}
	return c
}

// compileTags returns a new collection with tags added or removed. The
// current collection is not modified.
func (e *Entity) compileTags(tags any, remove bool) *Collection {
	current := e.tagCollection()
	names := tagNames(tags)

	present := make(map[string]bool, current.Len())
	for _, tag := range current.Items() {
		present[tag.DisplayName(false)] = true
	}

	next := NewCollection(schema.Tag)
	if remove {
		drop := make(map[string]bool, len(names))
		for _, name := range names {
			drop[name] = true
		}
		for _, tag := range current.Items() {
			if !drop[tag.DisplayName(false)] {
				next.Append(tag)
			}
		}
		return next
	}

	for _, tag := range current.Items() {
		next.Append(tag)
	}
	for _, name := range names {
		if present[name] {
			continue
		}
		tag, err := e.inv.GetOrCreate(schema.Tag, map[string]any{schema.AttrName: name}, nil)
		if err != nil || tag == nil {
			zap.L().Error("Unable to create tag", zap.String("tag", name), zap.Error(err))
			continue
		}
		present[name] = true
		next.Append(tag)
	}
	return next
}

// tagNames normalizes tag-like input to bare names.
func tagNames(tags any) []string {
	var names []string
	extract := func(tag any) {
		switch v := tag.(type) {
		case string:
			if v != "" {
				names = append(names, v)
			}
		case *Entity:
			if v.Type() == schema.Tag {
				names = append(names, v.DisplayName(false))
			}
		default:
			if m, ok := utils.ToMap(tag); ok {
				if name := utils.ToString(m[schema.AttrName]); name != "" {
					names = append(names, name)
				}
			}
		}
	}

	if c, ok := tags.(*Collection); ok {
		for _, tag := range c.Items() {
			extract(tag)
		}
		return names
	}
	if _, isString := tags.(string); !isString {
		if items, ok := utils.ToSlice(tags); ok {
			for _, tag := range items {
				extract(tag)
			}
			return names
		}
	}
	extract(tags)
	return names
}
