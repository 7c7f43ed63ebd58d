// Package layout turns the configurable modal layouts into typed form
// descriptors and validates submitted form values against them.
package layout

import (
	"errors"
	"fmt"
	"net/mail"
	"slices"
	"strconv"
	"time"

	"github.com/erazemk/assetdesk/internal/model"
)

// Kind is the input type of a field.
type Kind string

// Field kinds.
const (
	KindText     Kind = "text"
	KindTextarea Kind = "textarea"
	KindSelect   Kind = "select"
	KindDate     Kind = "date"
	KindNumber   Kind = "number"
	KindUser     Kind = "user"
	KindUsers    Kind = "users"
	KindVariants Kind = "variants"
	KindHistory  Kind = "history"
	KindCurrency Kind = "currency"
	KindAvatar   Kind = "avatar"
)

// Source names where a select field takes its options from.
type Source string

// Option sources.
const (
	SourceNone             Source = ""
	SourceAssetStatuses    Source = "assetStatuses"
	SourceAssignmentModels Source = "assignmentModels"
	SourceCategories       Source = "categories"
	SourceDepartments      Source = "departments"
	SourceSites            Source = "sites"
	SourceVendors          Source = "vendors"
	SourceVariants         Source = "variants"
	SourcePriorities       Source = "priorities"
)

// Env is what option sources draw from.
type Env struct {
	Config    *model.Config
	AssetType string
	Family    *model.AssetFamily
	Vendors   []model.Vendor
}

// Options resolves a source against an environment.
func (s Source) Options(env Env) []string {
	switch s {
	case SourceAssetStatuses:
		return slices.Clone(model.AssetStatuses)
	case SourceAssignmentModels:
		return []string{model.AssignmentSingle, model.AssignmentMultiple}
	case SourceCategories:
		if env.Config != nil {
			return slices.Clone(env.Config.CategoriesFor(env.AssetType))
		}
	case SourceDepartments:
		if env.Config != nil {
			return slices.Clone(env.Config.Departments)
		}
	case SourceSites:
		if env.Config != nil {
			return slices.Clone(env.Config.Sites)
		}
	case SourceVendors:
		names := make([]string, len(env.Vendors))
		for i, v := range env.Vendors {
			names[i] = v.Name
		}
		return names
	case SourceVariants:
		if env.Family != nil {
			names := make([]string, len(env.Family.Variants))
			for i, v := range env.Family.Variants {
				names[i] = v.Name
			}
			return names
		}
	case SourcePriorities:
		return []string{model.PriorityHigh, model.PriorityMedium, model.PriorityLow}
	}
	return nil
}

// Field is the typed definition of a layout field identifier.
type Field struct {
	ID       string
	Label    string
	Kind     Kind
	Required bool

	// Multiple allows a select to hold several options.
	Multiple bool
	Source   Source

	// Check validates a non-empty value beyond what the kind implies.
	Check func(v any) error

	// Key is the entity JSON key holding the value. It defaults to ID.
	Key string
}

var registry = map[string]Field{}

func register(fields ...Field) {
	for _, f := range fields {
		if f.Key == "" {
			f.Key = f.ID
		}
		registry[f.ID] = f
	}
}

// Lookup returns the definition of a field identifier.
func Lookup(id string) (Field, bool) {
	f, ok := registry[id]
	return f, ok
}

func init() {
	register(
		// Families.
		Field{ID: "name", Label: "Name", Kind: KindText, Required: true},
		Field{ID: "productCode", Label: "Product Code", Kind: KindText, Required: true},
		Field{ID: "vendor", Label: "Vendor", Kind: KindSelect, Source: SourceVendors},
		Field{ID: "manufacturer", Label: "Manufacturer", Kind: KindSelect, Source: SourceVendors},
		Field{ID: "modelNumber", Label: "Model Number", Kind: KindText},
		Field{ID: "assignmentModel", Label: "Assignment Model", Kind: KindSelect, Required: true, Source: SourceAssignmentModels},
		Field{ID: "category", Label: "Category", Kind: KindSelect, Source: SourceCategories},
		Field{ID: "description", Label: "Description", Kind: KindTextarea},
		Field{ID: "variants", Label: "Variants", Kind: KindVariants},

		// Instances.
		Field{ID: "title", Label: "Title", Kind: KindText, Required: true},
		Field{ID: "assetId", Label: "Asset ID", Kind: KindText},
		Field{ID: "status", Label: "Status", Kind: KindSelect, Required: true, Source: SourceAssetStatuses},
		Field{ID: "variantType", Label: "Variant", Kind: KindSelect, Source: SourceVariants},
		Field{ID: "licenseKey", Label: "License Key", Kind: KindText},
		Field{ID: "serialNumber", Label: "Serial Number", Kind: KindText},
		Field{ID: "macAddress", Label: "MAC Address", Kind: KindText},
		Field{ID: "location", Label: "Location", Kind: KindText},
		Field{ID: "condition", Label: "Condition", Kind: KindText},
		Field{ID: "assignedUser", Label: "Assignment", Kind: KindUser},
		Field{ID: "assignedUsers", Label: "Assignment", Kind: KindUsers},
		Field{ID: "activeUsers", Label: "Active Users", Kind: KindUsers},
		Field{ID: "currencyTool", Label: "Cost", Kind: KindCurrency, Key: "cost"},
		Field{ID: "purchaseDate", Label: "Purchase Date", Kind: KindDate},
		Field{ID: "renewalDate", Label: "Renewal Date", Kind: KindDate},
		Field{ID: "warrantyExpiryDate", Label: "Warranty Expiry", Kind: KindDate},
		Field{ID: "complianceStatus", Label: "Compliance Status", Kind: KindText},
		Field{ID: "assignmentHistory", Label: "Assignment History", Kind: KindHistory},

		// User profile.
		Field{ID: "firstName", Label: "First Name", Kind: KindText},
		Field{ID: "lastName", Label: "Last Name", Kind: KindText},
		Field{ID: "jobTitle", Label: "Job Title", Kind: KindText},
		Field{ID: "department", Label: "Department", Kind: KindSelect, Source: SourceDepartments},
		Field{ID: "site", Label: "Site", Kind: KindSelect, Multiple: true, Source: SourceSites},
		Field{ID: "linkedin", Label: "LinkedIn", Kind: KindText},
		Field{ID: "twitter", Label: "Twitter", Kind: KindText},
		Field{ID: "businessPhone", Label: "Business Phone", Kind: KindText},
		Field{ID: "mobileNo", Label: "Mobile No.", Kind: KindText},
		Field{ID: "email", Label: "Email", Kind: KindText, Check: checkEmail},
		Field{ID: "address", Label: "Address", Kind: KindText},
		Field{ID: "city", Label: "City", Kind: KindText},
		Field{ID: "postalCode", Label: "Postal Code", Kind: KindText},
		Field{ID: "notes", Label: "Comments", Kind: KindTextarea},
		Field{ID: "avatarUpload", Label: "Avatar", Kind: KindAvatar, Key: "avatarMime"},

		// Tasks.
		Field{ID: "priority", Label: "Priority", Kind: KindSelect, Source: SourcePriorities},
		Field{ID: "dueDate", Label: "Due Date", Kind: KindDate},
	)
}

func checkEmail(v any) error {
	s, _ := v.(string)
	if _, err := mail.ParseAddress(s); err != nil {
		return errors.New("must be a valid email address")
	}
	return nil
}

// empty reports whether a submitted value counts as absent.
func empty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case []any:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	}
	return false
}

// check validates a non-empty value against the field's kind and options.
func (f Field) check(env Env, v any) error {
	switch f.Kind {
	case KindText, KindTextarea:
		if _, ok := v.(string); !ok {
			return errors.New("must be text")
		}
	case KindDate:
		s, ok := v.(string)
		if !ok {
			return errors.New("must be a date")
		}
		if _, err := time.Parse(model.DateLayout, s); err != nil {
			return errors.New("must be a date in YYYY-MM-DD form")
		}
	case KindNumber, KindCurrency:
		switch x := v.(type) {
		case float64:
			if x < 0 && f.Kind == KindCurrency {
				return errors.New("must not be negative")
			}
		case string:
			n, err := strconv.ParseFloat(x, 64)
			if err != nil {
				return errors.New("must be a number")
			}
			if n < 0 && f.Kind == KindCurrency {
				return errors.New("must not be negative")
			}
		default:
			return errors.New("must be a number")
		}
	case KindSelect:
		if err := f.checkOptions(env, v); err != nil {
			return err
		}
	case KindUser:
		if _, ok := userID(v); !ok {
			return errors.New("must reference a user")
		}
	case KindUsers:
		list, ok := v.([]any)
		if !ok {
			return errors.New("must be a list of users")
		}
		for _, u := range list {
			if _, ok := userID(u); !ok {
				return errors.New("must be a list of users")
			}
		}
	}

	if f.Check != nil {
		return f.Check(v)
	}
	return nil
}

func (f Field) checkOptions(env Env, v any) error {
	options := f.Source.Options(env)
	var values []any
	if f.Multiple {
		list, ok := v.([]any)
		if !ok {
			return errors.New("must be a list of options")
		}
		values = list
	} else {
		values = []any{v}
	}

	for _, val := range values {
		s, ok := val.(string)
		if !ok {
			return errors.New("must be one of the options")
		}
		// Selects fed by empty sources accept anything.
		if len(options) > 0 && !slices.Contains(options, s) {
			return fmt.Errorf("%q is not one of the options", s)
		}
	}
	return nil
}

// userID extracts the ID of a user reference given as an ID string or an
// object with an id field.
func userID(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, x != ""
	case map[string]any:
		id, ok := x["id"].(string)
		return id, ok && id != ""
	}
	return "", false
}
