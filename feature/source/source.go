package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"netbox-sync/core/inventory"
	"netbox-sync/core/object"
	"netbox-sync/core/schema"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Object is one entry of a source file.
type Object struct {
	Type       schema.ObjectType `yaml:"type"`
	Data       map[string]any    `yaml:"data"`
	AddTags    []string          `yaml:"add_tags"`
	RemoveTags []string          `yaml:"remove_tags"`
	Unset      []string          `yaml:"unset"`
}

// Source is a YAML inventory file. It identifies itself to the entities it
// creates or updates.
type Source struct {
	SourceName string   `yaml:"name"`
	Objects    []Object `yaml:"objects"`
}

// Name returns the source name.
func (s *Source) Name() string {
	return s.SourceName
}

// Load reads and parses a source file. Without a name in the document the
// file name (sans extension) is used.
func Load(path string) (*Source, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source %s: %w", path, err)
	}

	s, err := Parse(raw, schema.Default())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.SourceName == "" {
		base := filepath.Base(path)
		s.SourceName = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return s, nil
}

// Parse decodes a source document and validates its object types.
func Parse(raw []byte, reg *schema.Registry) (*Source, error) {
	var s Source
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("invalid source document: %w", err)
	}

	for i, obj := range s.Objects {
		if obj.Type == "" {
			return nil, fmt.Errorf("object %d: missing type", i)
		}
		if _, err := reg.Get(obj.Type); err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		if len(obj.Data) == 0 {
			return nil, fmt.Errorf("object %d (%s): missing data", i, obj.Type)
		}
	}
	return &s, nil
}

// Apply pushes every object into the inventory. Objects rejected by the
// object model are logged and skipped; an invalid polymorphic discriminator
// aborts the pass. It returns the number of applied objects.
func (s *Source) Apply(inv *inventory.Inventory, logger *zap.Logger) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.With(zap.String("source", s.Name()))

	applied := 0
	for i, obj := range s.Objects {
		e, err := inv.GetOrCreate(obj.Type, obj.Data, s)
		if errors.Is(err, object.ErrInvalidDiscriminator) {
			return applied, fmt.Errorf("object %d (%s): %w", i, obj.Type, err)
		}
		if err != nil {
			log.Error("Unable to apply object", zap.Int("index", i), zap.String("object_type", string(obj.Type)), zap.Error(err))
			continue
		}

		if len(obj.AddTags) > 0 {
			e.AddTags(obj.AddTags)
		}
		if len(obj.RemoveTags) > 0 {
			e.RemoveTags(obj.RemoveTags)
		}
		for _, name := range obj.Unset {
			// unknown names are reported by the entity itself
			_ = e.Unset(name)
		}
		applied++
	}

	log.Info("Source applied", zap.Int("objects", applied), zap.Int("skipped", len(s.Objects)-applied))
	return applied, nil
}
