package object

import (
	"fmt"

	"netbox-sync/core/schema"
	"netbox-sync/core/utils"

	"go.uber.org/zap"
)

// DisplayName returns the primary key value, suffixed with " (secondary)"
// when the schema enforces the secondary key or includeSecondary is set.
// Site scoped types use the site as secondary key whenever one is set.
func (e *Entity) DisplayName(includeSecondary bool) string {
	return displayName(e.schema, e.attrs, includeSecondary, true)
}

// DisplayNameOf renders the display name data would have as an entity of sc.
// It returns "" when the primary key is missing.
func DisplayNameOf(sc *schema.Schema, data map[string]any, includeSecondary bool) string {
	return displayName(sc, data, includeSecondary, false)
}

func displayName(sc *schema.Schema, data map[string]any, includeSecondary, logMissing bool) string {
	primary, ok := data[sc.PrimaryKey]
	if !ok || primary == nil {
		return ""
	}
	name := plain(primary)

	if sc.SiteScoped {
		if site := siteName(data[schema.AttrSite]); site != "" {
			return fmt.Sprintf("%s (%s)", name, site)
		}
	}

	if sc.SecondaryKey == "" || !(sc.EnforceSecondaryKey || includeSecondary) {
		return name
	}

	secondary := secondaryName(sc, data[sc.SecondaryKey])
	if secondary == "" {
		if logMissing && sc.EnforceSecondaryKey && !sc.SiteScoped {
			zap.L().Error("Unable to determine secondary key, object relations may be assigned wrongly",
				zap.String("object_type", sc.Name),
				zap.String("object", name),
				zap.String("secondary_key", sc.SecondaryKey),
				zap.String("got", fmt.Sprintf("%v", data[sc.SecondaryKey])))
		}
		return name
	}
	return fmt.Sprintf("%s (%s)", name, secondary)
}

func siteName(site any) string {
	switch v := site.(type) {
	case nil:
		return ""
	case *Entity:
		return v.DisplayName(false)
	case Unresolved:
		return utils.ToString(v.Key[schema.AttrName])
	}
	if m, ok := utils.ToMap(site); ok {
		return utils.ToString(m[schema.AttrName])
	}
	return ""
}

func secondaryName(sc *schema.Schema, value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case *Entity:
		return v.DisplayName(false)
	case Unresolved:
		return utils.ToString(v.Key[schema.AttrName])
	case string:
		return v
	}
	if m, ok := utils.ToMap(value); ok {
		return utils.ToString(m[schema.AttrName])
	}
	if d, ok := sc.Descriptor(sc.SecondaryKey); ok && !d.IsReference() {
		return utils.ToString(value)
	}
	return ""
}

// plain renders a primary key value.
func plain(v any) string {
	switch x := v.(type) {
	case *Entity:
		return x.DisplayName(false)
	case Unresolved:
		return x.String()
	}
	return utils.ToString(v)
}
