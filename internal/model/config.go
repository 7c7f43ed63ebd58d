package model

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config is the process-wide settings object edited by admins.
type Config struct {
	SoftwareCategories []string               `json:"softwareCategories" yaml:"softwareCategories"`
	HardwareCategories []string               `json:"hardwareCategories" yaml:"hardwareCategories"`
	Sites              []string               `json:"sites" yaml:"sites"`
	Departments        []string               `json:"departments" yaml:"departments"`
	IDConfiguration    []IDSection            `json:"idConfiguration" yaml:"idConfiguration"`
	IDSeparator        string                 `json:"idSeparator" yaml:"idSeparator"`
	AssetTypes         []AssetTypeDef         `json:"assetTypes" yaml:"assetTypes"`
	ModalLayouts       map[string]ModalLayout `json:"modalLayouts" yaml:"modalLayouts"`
}

// IDSection is one segment of the configurable asset ID format.
type IDSection struct {
	ID          string `json:"id" yaml:"id"`
	Type        string `json:"type" yaml:"type"`
	Value       string `json:"value" yaml:"value"`
	Label       string `json:"label" yaml:"label"`
	Length      int    `json:"length,omitempty" yaml:"length,omitempty"`
	Uppercase   bool   `json:"uppercase,omitempty" yaml:"uppercase,omitempty"`
	PaddingChar string `json:"paddingChar,omitempty" yaml:"paddingChar,omitempty"`
}

// ID section types.
const (
	IDSectionAttribute = "attribute"
	IDSectionSequence  = "sequence"
	IDSectionStatic    = "static"
	IDSectionDate      = "date"
)

// ValidIDSectionType reports whether t is a known ID section type.
func ValidIDSectionType(t string) bool {
	switch t {
	case IDSectionAttribute, IDSectionSequence, IDSectionStatic, IDSectionDate:
		return true
	}
	return false
}

// AssetTypeDef names an asset type and its short prefix.
type AssetTypeDef struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Prefix string `json:"prefix" yaml:"prefix"`
}

// ModalLayout is the tab/section/field structure of an editor form.
type ModalLayout struct {
	Tabs []LayoutTab `json:"tabs" yaml:"tabs"`
}

// LayoutTab is one tab of a modal layout.
type LayoutTab struct {
	ID       string          `json:"id" yaml:"id"`
	Label    string          `json:"label" yaml:"label"`
	Sections []LayoutSection `json:"sections" yaml:"sections"`
}

// LayoutSection groups field identifiers into a grid.
type LayoutSection struct {
	ID      string   `json:"id" yaml:"id"`
	Title   string   `json:"title" yaml:"title"`
	Columns int      `json:"columns" yaml:"columns"`
	Fields  []string `json:"fields" yaml:"fields"`
}

// Layout names.
const (
	LayoutLicenseFamily    = "licenseFamily"
	LayoutHardwareFamily   = "hardwareFamily"
	LayoutLicenseInstance  = "licenseInstance"
	LayoutHardwareInstance = "hardwareInstance"
	LayoutUserProfile      = "userProfile"
)

// CategoriesFor returns the categories valid for an asset type.
func (c *Config) CategoriesFor(assetType string) []string {
	if assetType == AssetTypeHardware {
		return c.HardwareCategories
	}
	return c.SoftwareCategories
}

//go:embed defaults.yaml
var defaultsYAML []byte

// DefaultConfig returns a fresh copy of the built-in configuration.
func DefaultConfig() (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		return nil, fmt.Errorf("parsing default config: %w", err)
	}
	return &cfg, nil
}

// DefaultIDConfiguration returns the built-in ID format sections.
func DefaultIDConfiguration() []IDSection {
	cfg, err := DefaultConfig()
	if err != nil {
		// The embedded file is covered by tests.
		panic(err)
	}
	return cfg.IDConfiguration
}
