package model

import "time"

// AssetFamily is a catalog-level product definition. Asset instances refer
// back to it through FamilyID.
type AssetFamily struct {
	ID               string    `json:"id"`
	AssetType        string    `json:"assetType"`
	Name             string    `json:"name"`
	ProductCode      string    `json:"productCode"`
	Category         string    `json:"category"`
	Vendor           string    `json:"vendor"`
	Manufacturer     string    `json:"manufacturer"`
	ModelNumber      string    `json:"modelNumber"`
	Description      string    `json:"description"`
	AssignmentModel  string    `json:"assignmentModel"`
	Variants         []Variant `json:"variants,omitempty"`
	CreatedDate      time.Time `json:"createdDate"`
	LastModifiedDate time.Time `json:"lastModifiedDate"`
}

// Variant is a license tier within a family.
type Variant struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	LicenseType string  `json:"licenseType"`
	Cost        float64 `json:"cost"`
}

// VariantByName returns the family variant with the given name, or nil.
func (f *AssetFamily) VariantByName(name string) *Variant {
	for i := range f.Variants {
		if f.Variants[i].Name == name {
			return &f.Variants[i]
		}
	}
	return nil
}

// FamilySummary is a family with instance counts.
type FamilySummary struct {
	AssetFamily
	Total     int `json:"total"`
	Assigned  int `json:"assigned"`
	Available int `json:"available"`
}

// Asset types.
const (
	AssetTypeLicense  = "License"
	AssetTypeHardware = "Hardware"
)

// ValidAssetType reports whether t is a known asset type.
func ValidAssetType(t string) bool {
	return t == AssetTypeLicense || t == AssetTypeHardware
}

// Assignment models.
const (
	AssignmentSingle   = "Single"
	AssignmentMultiple = "Multiple"
)

// ValidAssignmentModel reports whether m is a known assignment model.
func ValidAssignmentModel(m string) bool {
	return m == AssignmentSingle || m == AssignmentMultiple
}
