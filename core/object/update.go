package object

import (
	"errors"
	"fmt"
	"net/netip"
	"reflect"
	"sort"
	"strings"

	"netbox-sync/core/schema"
	"netbox-sync/core/slug"
	"netbox-sync/core/utils"

	"go.uber.org/zap"
)

// Update merges data into the entity.
//
// Remote data (fromRemote) is trusted: it replaces the attribute map, marks the
// entity as existing and clears the change log. Source data is validated per
// attribute; offending keys are logged and skipped. Only ErrInvalidDiscriminator,
// ErrMalformedPrimaryKey and ErrCreateUnsupported abort the update.
func (e *Entity) Update(data map[string]any, fromRemote bool, source Source) error {
	if data == nil {
		return nil
	}

	data, err := e.parseNetworks(data)
	if err != nil {
		return err
	}

	if id, ok := utils.ToInt(data["id"]); ok && id > 0 && fromRemote {
		e.remoteID = id
	}

	if fromRemote {
		e.hydrate(data)
		return nil
	}

	if source != nil {
		e.source = source
	}

	if e.schema.CreateUnsupported {
		return fmt.Errorf("%w: %s", ErrCreateUnsupported, e.schema.Name)
	}

	if e.schema.SiteScoped {
		if current, ok := e.attrs[schema.AttrName]; ok && current != nil {
			if _, given := data[schema.AttrName]; given {
				data = copyMap(data)
				data[schema.AttrName] = current
			}
		}
	}

	displayName := DisplayNameOf(e.schema, data, false)
	if displayName == "" {
		displayName = e.DisplayName(false)
	}

	log := zap.L().With(zap.String("object_type", e.schema.Name), zap.String("object", displayName))
	log.Debug("Parsing data structure")

	for _, key := range unknownKeys(e.schema, data) {
		log.Error("Found undefined data model key", zap.String("attribute", key))
	}

	parsed := make(map[string]any, len(data))
	for _, attr := range e.schema.Attributes {
		value, ok := data[attr.Name]
		if !ok {
			continue
		}
		if value == nil {
			log.Info("Found unset key, skipping it", zap.String("attribute", attr.Name))
			continue
		}

		accepted, keep, err := e.parseValue(log, attr, value, data, parsed, source)
		if err != nil {
			return err
		}
		if keep {
			parsed[attr.Name] = accepted
		}
	}

	if e.schema.HasSlug() && parsed[schema.AttrSlug] == nil {
		if name, ok := parsed[e.schema.PrimaryKey].(string); ok && name != "" {
			d, _ := e.schema.Descriptor(schema.AttrSlug)
			if s, err := slug.Format(name, d.MaxLen); err == nil {
				parsed[schema.AttrSlug] = s
			}
		}
	}

	return e.apply(log, parsed)
}

// hydrate replaces the attribute map with confirmed remote state.
func (e *Entity) hydrate(data map[string]any) {
	attrs := make(map[string]any, len(e.schema.Attributes))
	for _, attr := range e.schema.Attributes {
		value, ok := data[attr.Name]
		if !ok {
			if attr.Descriptor.Kind == schema.KindReferenceList {
				attrs[attr.Name] = NewCollection(attr.Descriptor.Target)
			}
			continue
		}
		attrs[attr.Name] = wrapRemote(attr.Descriptor, value)
	}

	e.isNew = false
	e.attrs = attrs
	e.changed = nil
	e.unset = nil
}

// wrapRemote marks raw reference values as unresolved so that the resolver
// can tell them apart from handles.
func wrapRemote(d schema.Descriptor, value any) any {
	if value == nil || !d.IsReference() {
		return value
	}

	if d.Kind == schema.KindReferenceList {
		items, ok := utils.ToSlice(value)
		if !ok {
			return value
		}
		out := make([]any, 0, len(items))
		for _, item := range items {
			out = append(out, wrapRemote(schema.Reference(d.Target), item))
		}
		return out
	}

	switch value.(type) {
	case *Entity, *Collection, Unresolved:
		return value
	}
	if key, ok := lookupKey(value); ok {
		return Unresolved{Key: key}
	}
	return value
}

// parseNetworks parses network literals. A malformed primary key abandons the
// whole update, any other malformed network is dropped.
func (e *Entity) parseNetworks(data map[string]any) (map[string]any, error) {
	var out map[string]any
	for _, attr := range e.schema.Attributes {
		if attr.Descriptor.Kind != schema.KindNetwork {
			continue
		}
		raw, ok := data[attr.Name].(string)
		if !ok {
			continue
		}

		if out == nil {
			out = copyMap(data)
		}

		prefix, err := netip.ParsePrefix(strings.TrimSpace(raw))
		if err != nil {
			zap.L().Error("Failed to parse network",
				zap.String("object_type", e.schema.Name),
				zap.String("attribute", attr.Name),
				zap.String("value", raw),
				zap.Error(err))
			if attr.Name == e.schema.PrimaryKey {
				return nil, fmt.Errorf("%w: %s %q: %v", ErrMalformedPrimaryKey, e.schema.Name, raw, err)
			}
			delete(out, attr.Name)
			continue
		}
		out[attr.Name] = prefix.Masked()
	}

	if out == nil {
		return data, nil
	}
	return out, nil
}

// parseValue validates one source value against its descriptor. It reports
// whether the value is kept.
func (e *Entity) parseValue(log *zap.Logger, attr schema.Attribute, value any, data, parsed map[string]any, source Source) (any, bool, error) {
	d := attr.Descriptor
	invalid := func(want string) (any, bool, error) {
		log.Error("Invalid data type",
			zap.String("attribute", attr.Name),
			zap.String("expected", want),
			zap.String("got", fmt.Sprintf("%v", value)))
		return nil, false, nil
	}

	switch d.Kind {
	case schema.KindBoundedString:
		s, ok := value.(string)
		if !ok {
			return invalid("string")
		}
		if attr.Name == schema.AttrSlug {
			formatted, err := slug.Format(s, d.MaxLen)
			if err != nil {
				log.Error("Unable to format slug", zap.String("value", s), zap.Error(err))
				return nil, false, nil
			}
			return formatted, true, nil
		}
		return truncate(s, d.MaxLen), true, nil

	case schema.KindFreeString:
		s, ok := value.(string)
		if !ok {
			return invalid("string")
		}
		return s, true, nil

	case schema.KindBool:
		b, ok := value.(bool)
		if !ok {
			return invalid("bool")
		}
		return b, true, nil

	case schema.KindInteger:
		i, ok := utils.ToInt(value)
		if !ok {
			return invalid("integer")
		}
		return i, true, nil

	case schema.KindFloat:
		f, ok := utils.ToFloat(value)
		if !ok {
			return invalid("float")
		}
		return f, true, nil

	case schema.KindChoice:
		s, ok := value.(string)
		if !ok || !d.Allows(s) {
			return invalid(d.String())
		}
		return s, true, nil

	case schema.KindNetwork:
		p, ok := value.(netip.Prefix)
		if !ok {
			return invalid("network")
		}
		return p, true, nil

	case schema.KindReferenceList:
		if d.Policy == schema.PolicyMerge {
			return e.compileTags(value, false), true, nil
		}
		vlans, err := e.compileVLANs(d.Target, value, source)
		if err != nil {
			log.Error("Unable to parse list", zap.String("attribute", attr.Name), zap.Error(err))
			return nil, false, nil
		}
		return vlans, true, nil

	case schema.KindReference:
		return e.parseReference(log, attr.Name, d.Target, value, source)

	case schema.KindPolymorphic:
		return e.parsePolymorphic(log, attr.Name, d, value, data, parsed, source)
	}

	return value, true, nil
}

func (e *Entity) parseReference(log *zap.Logger, name string, target schema.ObjectType, value any, source Source) (any, bool, error) {
	if handle, ok := value.(*Entity); ok {
		if handle.Type() != target {
			log.Error("Invalid reference type",
				zap.String("attribute", name),
				zap.String("expected", string(target)),
				zap.String("got", string(handle.Type())))
			return nil, false, nil
		}
		return handle, true, nil
	}

	if u, ok := value.(Unresolved); ok {
		return u, true, nil
	}

	if id, ok := utils.ToInt(value); ok {
		if handle := e.inv.FindByRemoteID(target, id); handle != nil {
			return handle, true, nil
		}
		return Unresolved{Key: map[string]any{"id": id}}, true, nil
	}

	key, ok := utils.ToMap(value)
	if !ok {
		log.Error("Invalid reference value",
			zap.String("attribute", name),
			zap.String("got", fmt.Sprintf("%v", value)))
		return nil, false, nil
	}

	handle, err := e.inv.GetOrCreate(target, key, source)
	if err != nil {
		if errors.Is(err, ErrInvalidDiscriminator) {
			return nil, false, err
		}
		log.Error("Unable to create referenced object", zap.String("attribute", name), zap.Error(err))
		return nil, false, nil
	}
	if handle.source == nil {
		handle.source = source
	}
	return handle, true, nil
}

func (e *Entity) parsePolymorphic(log *zap.Logger, name string, d schema.Descriptor, value any, data, parsed map[string]any, source Source) (any, bool, error) {
	if handle, ok := value.(*Entity); ok {
		disc, ok := d.Relation.NameFor(handle.Type())
		if !ok {
			log.Error("Invalid reference type",
				zap.String("attribute", name),
				zap.Strings("expected", d.Relation.Names()),
				zap.String("got", string(handle.Type())))
			return nil, false, nil
		}
		parsed[d.Discriminator] = disc
		return handle, true, nil
	}

	var disc string
	if v, ok := data[d.Discriminator].(string); ok {
		disc = v
	} else if v, ok := e.attrs[d.Discriminator].(string); ok {
		disc = v
	}

	target, ok := d.Relation.TypeFor(disc)
	if !ok {
		log.Error("Invalid polymorphic discriminator",
			zap.String("attribute", d.Discriminator),
			zap.String("value", disc))
		return nil, false, fmt.Errorf("%w: %s.%s=%q", ErrInvalidDiscriminator, e.schema.Type, d.Discriminator, disc)
	}

	return e.parseReference(log, name, target, value, source)
}

// apply stores all parsed values that differ from the current ones.
// Resolution runs once all values are stored.
func (e *Entity) apply(log *zap.Logger, parsed map[string]any) error {
	var changed []string
	for _, attr := range e.schema.Attributes {
		next, ok := parsed[attr.Name]
		if !ok {
			continue
		}
		current := e.attrs[attr.Name]
		if equivalent(attr.Descriptor, current, next) {
			continue
		}

		e.attrs[attr.Name] = next
		changed = append(changed, attr.Name)

		if !e.isNew {
			log.Info("Attribute changed",
				zap.String("attribute", attr.Name),
				zap.String("from", render(attr.Descriptor, current)),
				zap.String("to", strings.ReplaceAll(render(attr.Descriptor, next), "\n", " ")))
		}
	}

	if len(changed) == 0 {
		return nil
	}
	e.changed = append(e.changed, changed...)

	for _, attr := range e.schema.Attributes {
		if attr.Descriptor.Kind == schema.KindPolymorphic && contains(changed, attr.Name) {
			e.changed = append(e.changed, attr.Descriptor.Discriminator)
		}
	}

	return e.ResolveRelations()
}

// equivalent reports whether next doesn't change current.
func equivalent(d schema.Descriptor, current, next any) bool {
	if current == nil {
		return next == nil
	}
	if next == nil {
		return false
	}

	if isHandle(current) || isHandle(next) {
		return sameHandle(current, next) || render(d, current) == render(d, next)
	}
	if reflect.DeepEqual(current, next) {
		return true
	}

	if d.IsNumeric() {
		a, okA := utils.ToFloat(current)
		b, okB := utils.ToFloat(next)
		if okA && okB {
			return a == b
		}
	}

	return render(d, current) == render(d, next)
}

func isHandle(v any) bool {
	switch v.(type) {
	case *Entity, *Collection:
		return true
	}
	return false
}

func sameHandle(a, b any) bool {
	switch x := a.(type) {
	case *Entity:
		y, ok := b.(*Entity)
		return ok && x == y
	case *Collection:
		y, ok := b.(*Collection)
		return ok && x == y
	}
	return false
}

// render returns the comparable display form of a value.
func render(d schema.Descriptor, value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case *Entity:
		return v.DisplayName(false)
	case *Collection:
		return v.DisplayName()
	case Unresolved:
		if d.CompareField != "" {
			if field, ok := v.Key[d.CompareField]; ok {
				return utils.ToString(field)
			}
		}
		return v.String()
	case map[string]any:
		if choice, ok := v["value"]; ok {
			return utils.ToString(choice)
		}
	}
	return strings.ReplaceAll(utils.ToString(value), "\r", "")
}

func unknownKeys(sc *schema.Schema, data map[string]any) []string {
	var keys []string
	for key := range data {
		if key == "id" || sc.Has(key) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
