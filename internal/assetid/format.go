package assetid

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/erazemk/assetdesk/internal/model"
)

// ErrSectionNotFound is returned for an unknown section ID.
var ErrSectionNotFound = errors.New("id section not found")

// DefaultSeparator joins sections when none is configured.
const DefaultSeparator = "-"

// Direction of a section move.
type Direction string

// Section move directions.
const (
	Up   Direction = "up"
	Down Direction = "down"
)

// SectionPatch is a partial update of a section. Nil fields are left as is.
type SectionPatch struct {
	Value       *string `json:"value"`
	Label       *string `json:"label"`
	Length      *int    `json:"length"`
	Uppercase   *bool   `json:"uppercase"`
	PaddingChar *string `json:"paddingChar"`
}

// NewSection builds a section of the given type. Non-static sections get a
// length of 4, sequences pad with zeros.
func NewSection(id, sectionType, value, label string) (model.IDSection, error) {
	if !model.ValidIDSectionType(sectionType) {
		return model.IDSection{}, fmt.Errorf("unknown section type %q", sectionType)
	}
	s := model.IDSection{
		ID:        id,
		Type:      sectionType,
		Value:     value,
		Label:     label,
		Uppercase: true,
	}
	if sectionType != model.IDSectionStatic {
		s.Length = 4
	}
	if sectionType == model.IDSectionSequence {
		s.PaddingChar = "0"
	}
	return s, nil
}

// AddSection appends a section.
func AddSection(cfg *model.Config, s model.IDSection) {
	cfg.IDConfiguration = append(slices.Clone(cfg.IDConfiguration), s)
}

// UpdateSection applies a patch to the section with the given ID.
func UpdateSection(cfg *model.Config, id string, p SectionPatch) error {
	i := sectionIndex(cfg, id)
	if i < 0 {
		return ErrSectionNotFound
	}
	sections := slices.Clone(cfg.IDConfiguration)
	s := &sections[i]
	if p.Value != nil {
		s.Value = *p.Value
	}
	if p.Label != nil {
		s.Label = *p.Label
	}
	if p.Length != nil {
		if *p.Length < 0 {
			return errors.New("length must not be negative")
		}
		s.Length = *p.Length
	}
	if p.Uppercase != nil {
		s.Uppercase = *p.Uppercase
	}
	if p.PaddingChar != nil {
		s.PaddingChar = *p.PaddingChar
	}
	cfg.IDConfiguration = sections
	return nil
}

// RemoveSection drops the section with the given ID.
func RemoveSection(cfg *model.Config, id string) error {
	i := sectionIndex(cfg, id)
	if i < 0 {
		return ErrSectionNotFound
	}
	cfg.IDConfiguration = slices.Delete(slices.Clone(cfg.IDConfiguration), i, i+1)
	return nil
}

// MoveSection swaps a section with its neighbour. Moving past either end is
// a no-op.
func MoveSection(cfg *model.Config, id string, dir Direction) error {
	i := sectionIndex(cfg, id)
	if i < 0 {
		return ErrSectionNotFound
	}
	j := i + 1
	switch dir {
	case Up:
		j = i - 1
	case Down:
	default:
		return fmt.Errorf("unknown direction %q", dir)
	}
	if j < 0 || j >= len(cfg.IDConfiguration) {
		return nil
	}
	sections := slices.Clone(cfg.IDConfiguration)
	sections[i], sections[j] = sections[j], sections[i]
	cfg.IDConfiguration = sections
	return nil
}

// Reset restores the built-in sections and separator.
func Reset(cfg *model.Config) {
	cfg.IDConfiguration = model.DefaultIDConfiguration()
	cfg.IDSeparator = DefaultSeparator
}

// Preview renders a sample ID for the configured format.
func Preview(cfg *model.Config, now time.Time) string {
	sep := cfg.IDSeparator
	if sep == "" {
		sep = DefaultSeparator
	}
	parts := make([]string, len(cfg.IDConfiguration))
	for i, s := range cfg.IDConfiguration {
		switch s.Type {
		case model.IDSectionStatic:
			parts[i] = s.Value
		case model.IDSectionAttribute:
			parts[i] = "ATTR"
		case model.IDSectionSequence:
			parts[i] = "0012"
		case model.IDSectionDate:
			parts[i] = strconv.Itoa(now.Year())
		}
	}
	return strings.Join(parts, sep)
}

func sectionIndex(cfg *model.Config, id string) int {
	return slices.IndexFunc(cfg.IDConfiguration, func(s model.IDSection) bool { return s.ID == id })
}
