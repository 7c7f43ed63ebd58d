package layout

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/erazemk/assetdesk/internal/model"
)

// ErrUnknownLayout is returned for a layout name missing from the config.
var ErrUnknownLayout = errors.New("unknown layout")

// Form is a resolved layout, ready to render.
type Form struct {
	Layout string `json:"layout"`
	Tabs   []Tab  `json:"tabs"`
}

// Tab is a resolved layout tab.
type Tab struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Sections []Section `json:"sections"`
}

// Section is a resolved layout section.
type Section struct {
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	Columns int         `json:"columns"`
	Fields  []FormField `json:"fields"`
}

// FormField is one field with its definition, options and current value.
type FormField struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Kind     Kind     `json:"kind"`
	Required bool     `json:"required,omitempty"`
	Multiple bool     `json:"multiple,omitempty"`
	Options  []string `json:"options,omitempty"`
	Value    any      `json:"value"`
}

// Resolve builds the form of a named layout, filling values from an entity
// row. A nil values map yields an empty form.
func Resolve(name string, env Env, values map[string]any) (*Form, error) {
	l, ok := env.Config.ModalLayouts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLayout, name)
	}

	form := &Form{Layout: name, Tabs: make([]Tab, 0, len(l.Tabs))}
	for _, tab := range l.Tabs {
		t := Tab{ID: tab.ID, Label: tab.Label, Sections: make([]Section, 0, len(tab.Sections))}
		for _, sec := range tab.Sections {
			s := Section{ID: sec.ID, Title: sec.Title, Columns: sec.Columns, Fields: make([]FormField, 0, len(sec.Fields))}
			for _, id := range sec.Fields {
				f, ok := Lookup(id)
				if !ok {
					return nil, fmt.Errorf("layout %s: unknown field %q", name, id)
				}
				s.Fields = append(s.Fields, FormField{
					ID:       f.ID,
					Label:    f.Label,
					Kind:     f.Kind,
					Required: f.Required,
					Multiple: f.Multiple,
					Options:  f.Source.Options(env),
					Value:    values[f.Key],
				})
			}
			t.Sections = append(t.Sections, s)
		}
		form.Tabs = append(form.Tabs, t)
	}
	return form, nil
}

// Validate checks submitted values against a named layout and returns the
// problems keyed by field identifier. Values for fields the layout does not
// show are ignored.
func Validate(name string, env Env, values map[string]any) (map[string]string, error) {
	l, ok := env.Config.ModalLayouts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLayout, name)
	}

	problems := map[string]string{}
	for _, tab := range l.Tabs {
		for _, sec := range tab.Sections {
			for _, id := range sec.Fields {
				f, ok := Lookup(id)
				if !ok {
					problems[id] = "unknown field"
					continue
				}
				v := values[f.Key]
				if empty(v) {
					if f.Required {
						problems[id] = "is required"
					}
					continue
				}
				if err := f.check(env, v); err != nil {
					problems[id] = err.Error()
				}
			}
		}
	}
	return problems, nil
}

// CheckConfig reports every field identifier of every layout that the
// registry does not know.
func CheckConfig(cfg *model.Config) error {
	var unknown []string
	for name, l := range cfg.ModalLayouts {
		for _, tab := range l.Tabs {
			for _, sec := range tab.Sections {
				for _, id := range sec.Fields {
					if _, ok := Lookup(id); !ok {
						unknown = append(unknown, name+"."+id)
					}
				}
			}
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return fmt.Errorf("unknown layout fields: %s", strings.Join(unknown, ", "))
	}
	return nil
}
