package dsl

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/multistate/pkg/domain"
)

// document is the YAML schema of a definition file.
type document struct {
	States      []stateDoc      `yaml:"states"`
	Groups      []groupDoc      `yaml:"groups"`
	Transitions []transitionDoc `yaml:"transitions"`
}

type stateDoc struct {
	ID       string           `yaml:"id"`
	Name     string           `yaml:"name"`
	Elements []map[string]any `yaml:"elements"`
	Weight   *float64         `yaml:"weight"`
	Cost     *float64         `yaml:"cost"`
	Blocking bool             `yaml:"blocking"`
	Blocks   []string         `yaml:"blocks"`
	Metadata map[string]any   `yaml:"metadata"`
}

type groupDoc struct {
	ID     string   `yaml:"id"`
	Name   string   `yaml:"name"`
	States []string `yaml:"states"`
}

type transitionDoc struct {
	ID             string         `yaml:"id"`
	Name           string         `yaml:"name"`
	From           []string       `yaml:"from"`
	Activate       []string       `yaml:"activate"`
	Exit           []string       `yaml:"exit"`
	ActivateGroups []string       `yaml:"activate_groups"`
	ExitGroups     []string       `yaml:"exit_groups"`
	Cost           *float64       `yaml:"cost"`
	Visibility     string         `yaml:"visibility"`
	Guard          string         `yaml:"guard"`
	Metadata       map[string]any `yaml:"metadata"`
}

// elementDoc decodes an element entry. Known keys map to fields; anything
// else lands in the element's metadata via mapstructure's remain capture.
type elementDoc struct {
	ID   string         `mapstructure:"id"`
	Name string         `mapstructure:"name"`
	Type string         `mapstructure:"type"`
	Rest map[string]any `mapstructure:",remain"`
}

// Load parses a YAML definition document and compiles it through the
// builder, so declarative and in-code definitions share one validation
// path. Unlike the fluent builder, where redeclaring an id deliberately
// extends the earlier declaration, a document declaring the same id twice
// is a copy mistake and fails with ErrDuplicateID.
func Load(data []byte) (*Definition, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode definition: %w", err)
	}

	var dupErrs []error
	seen := map[string]map[string]bool{}
	declare := func(kind, id string) {
		ids := seen[kind]
		if ids == nil {
			ids = map[string]bool{}
			seen[kind] = ids
		}
		if ids[id] {
			dupErrs = append(dupErrs, &ConfigError{
				Kind: kind, ID: id, Reason: "declared twice", Err: domain.ErrDuplicateID,
			})
		}
		ids[id] = true
	}

	b := New()
	for _, sd := range doc.States {
		if sd.ID == "" {
			return nil, &ConfigError{Kind: "state", ID: "(empty)", Reason: "missing id"}
		}
		declare("state", sd.ID)
		sb := b.State(sd.ID)
		if sd.Name != "" {
			sb.Name(sd.Name)
		}
		if sd.Weight != nil {
			sb.Weight(*sd.Weight)
		}
		if sd.Cost != nil {
			sb.Cost(*sd.Cost)
		}
		if sd.Blocking {
			sb.Blocking()
		}
		sb.Blocks(sd.Blocks...)
		for k, v := range sd.Metadata {
			sb.Meta(k, v)
		}
		for _, raw := range sd.Elements {
			var ed elementDoc
			if err := mapstructure.Decode(raw, &ed); err != nil {
				return nil, fmt.Errorf("state %q: decode element: %w", sd.ID, err)
			}
			if ed.ID == "" {
				return nil, &ConfigError{Kind: "state", ID: sd.ID, Reason: "element missing id"}
			}
			sb.ElementValue(domain.Element{
				ID:       ed.ID,
				Name:     ed.Name,
				Type:     ed.Type,
				Metadata: ed.Rest,
			})
		}
	}

	for _, gd := range doc.Groups {
		if gd.ID == "" {
			return nil, &ConfigError{Kind: "group", ID: "(empty)", Reason: "missing id"}
		}
		declare("group", gd.ID)
		gb := b.Group(gd.ID, gd.States...)
		if gd.Name != "" {
			gb.Name(gd.Name)
		}
	}

	for _, td := range doc.Transitions {
		if td.ID == "" {
			return nil, &ConfigError{Kind: "transition", ID: "(empty)", Reason: "missing id"}
		}
		declare("transition", td.ID)
		tb := b.Transition(td.ID)
		if td.Name != "" {
			tb.Name(td.Name)
		}
		tb.From(td.From...)
		tb.Activate(td.Activate...)
		tb.Exit(td.Exit...)
		tb.ActivateGroups(td.ActivateGroups...)
		tb.ExitGroups(td.ExitGroups...)
		if td.Cost != nil {
			tb.Cost(*td.Cost)
		}
		if td.Guard != "" {
			tb.Guard(td.Guard)
		}
		for k, v := range td.Metadata {
			tb.Meta(k, v)
		}
		v, err := parseVisibility(td.Visibility)
		if err != nil {
			return nil, &ConfigError{Kind: "transition", ID: td.ID, Reason: err.Error()}
		}
		tb.Visibility(v)
	}

	if len(dupErrs) > 0 {
		return nil, &AggregateError{Errors: dupErrs}
	}
	return b.Build()
}

// LoadFile reads and parses a YAML definition file.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition: %w", err)
	}
	return Load(data)
}

func parseVisibility(s string) (domain.StaysVisible, error) {
	switch s {
	case "", "inherit":
		return domain.VisibilityInherit, nil
	case "show_source":
		return domain.VisibilityShow, nil
	case "hide_source":
		return domain.VisibilityHide, nil
	default:
		return "", fmt.Errorf("unknown visibility %q", s)
	}
}
