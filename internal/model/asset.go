package model

import "time"

// Asset is one concrete, assignable unit of a family: a license seat or a
// physical device.
type Asset struct {
	ID                 string  `json:"id"`
	AssetID            string  `json:"assetId"`
	FamilyID           string  `json:"familyId"`
	Title              string  `json:"title"`
	AssetType          string  `json:"assetType"`
	Status             string  `json:"status"`
	VariantType        string  `json:"variantType"`
	LicenseKey         string  `json:"licenseKey"`
	Email              string  `json:"email"`
	SerialNumber       string  `json:"serialNumber"`
	MacAddress         string  `json:"macAddress"`
	Location           string  `json:"location"`
	Condition          string  `json:"condition"`
	PurchaseDate       string  `json:"purchaseDate"`
	RenewalDate        string  `json:"renewalDate"`
	WarrantyExpiryDate string  `json:"warrantyExpiryDate"`
	Cost               float64 `json:"cost"`
	ComplianceStatus   string  `json:"complianceStatus"`

	AssignedUser  *UserRef  `json:"assignedUser"`
	AssignedUsers []UserRef `json:"assignedUsers"`
	ActiveUsers   []UserRef `json:"activeUsers"`

	AssignmentHistory []AssignmentHistory `json:"assignmentHistory"`

	CreatedBy  string    `json:"createdBy"`
	ModifiedBy string    `json:"modifiedBy"`
	Created    time.Time `json:"created"`
	Modified   time.Time `json:"modified"`
}

// IsAssigned reports whether the asset has any assignee.
func (a *Asset) IsAssigned() bool {
	return a.AssignedUser != nil || len(a.AssignedUsers) > 0
}

// AssignedTo reports whether userID is the single assignee or one of the
// multiple assignees.
func (a *Asset) AssignedTo(userID string) bool {
	if a.AssignedUser != nil && a.AssignedUser.ID == userID {
		return true
	}
	for _, u := range a.AssignedUsers {
		if u.ID == userID {
			return true
		}
	}
	return false
}

// Asset statuses.
const (
	AssetStatusAvailable = "Available"
	AssetStatusActive    = "Active"
	AssetStatusExpired   = "Expired"
	AssetStatusRetired   = "Retired"
	AssetStatusInRepair  = "In Repair"
	AssetStatusStorage   = "Storage"
	AssetStatusPending   = "Pending"
	AssetStatusInactive  = "Inactive"
)

// AssetStatuses lists every asset status in display order.
var AssetStatuses = []string{
	AssetStatusAvailable,
	AssetStatusActive,
	AssetStatusExpired,
	AssetStatusRetired,
	AssetStatusInRepair,
	AssetStatusStorage,
	AssetStatusPending,
	AssetStatusInactive,
}

// ValidAssetStatus reports whether s is a known asset status.
func ValidAssetStatus(s string) bool {
	for _, st := range AssetStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// AssignmentHistory is an immutable entry of an asset's assignment log.
type AssignmentHistory struct {
	ID           string `json:"id"`
	AssetID      string `json:"assetId"`
	AssetName    string `json:"assetName"`
	Date         string `json:"date"`
	Type         string `json:"type"`
	AssignedFrom string `json:"assignedFrom,omitempty"`
	AssignedTo   string `json:"assignedTo,omitempty"`
	Notes        string `json:"notes"`

	// UserIDs are the users the entry concerns. Not serialized.
	UserIDs []string `json:"-"`
}

// History entry types.
const (
	HistoryAssigned    = "Assigned"
	HistoryReassigned  = "Reassigned"
	HistoryUsageUpdate = "Usage Update"
)

// DateLayout is the day-granularity date format used throughout.
const DateLayout = "2006-01-02"
