// Package seed generates the demo data set a fresh desk starts with.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/erazemk/assetdesk/internal/history"
	"github.com/erazemk/assetdesk/internal/model"
	"github.com/erazemk/assetdesk/internal/store"
)

// AdminID is the ID of the seeded administrator.
const AdminID = "user-1"

// Data is a complete demo data set.
type Data struct {
	Vendors  []model.Vendor
	Families []model.AssetFamily
	Users    []model.User
	Accounts []model.PlatformAccount
	Assets   []model.Asset
	Requests []model.Request
}

// departments lists the seeded user departments with their head counts, in
// generation order.
var departments = []struct {
	name  string
	count int
}{
	{"General", 86},
	{"SPFX", 19},
	{"Management", 14},
	{"QA", 5},
	{"SPFx", 3},
}

// namedUsers are the people behind the first generated user IDs. Index 0 is
// the administrator.
var namedUsers = []struct{ name, email string }{
	{"Kamal Kishore", "kamal.kishore@hochhuth-consulting.de"},
	{"Deepak Trivedi", "deepak.trivedi@example.com"},
	{"Garima Arya", "garima.arya@hochhuth-consulting.de"},
	{"Piyoosh Bharadwaj", "piyoosh.bhardwaj@hochhuth-consulting.de"},
	{"Pravesh Kumar", "Pravesh.Kumar@hochhuth-consulting.de"},
	{"Ranu Trivedi", "ranu.trivedi@hochhuth-consulting.de"},
	{"Santosh Kumar", "santosh.kumar@hochhuth-consulting.de"},
	{"Abhishek Tiwari", "abhishek.tiwari@hochhuth-consulting.de"},
	{"Aditi Mishra", "aditi.mishra@hochhuth-consulting.de"},
	{"Aman Munjal", "aman.munjal@hochhuth-consulting.de"},
	{"Amit Kumar", "amit.kumar@hochhuth-consulting.de"},
	{"Juli Kumari", "juli@example.com"},
	{"Shivdutt Mishra", "shivdutt@example.com"},
	{"Udbhav Sharma", "udbhav@example.com"},
}

// Users returns the seeded users. The first one is the administrator.
func Users() []model.User {
	var users []model.User
	idx := 0
	for _, dept := range departments {
		for range dept.count {
			users = append(users, generateUser(idx, dept.name))
			idx++
		}
	}
	return users
}

func generateUser(idx int, department string) model.User {
	if idx == 0 {
		return model.User{
			ID:            AdminID,
			FullName:      "Kamal Kishore",
			FirstName:     "Kamal",
			LastName:      "Kishore",
			Email:         "kamal.kishore@hochhuth-consulting.de",
			Role:          model.RoleAdmin,
			JobTitle:      "Junior Developer",
			Department:    department,
			Organization:  "Smalsus Infolabs Pvt Ltd",
			Site:          []string{"SMALSUS"},
			BusinessPhone: "7042269388",
			MobileNo:      "9350006744",
			Address:       "100C Jagriti Appartment sector 71 Noida",
			City:          "Noida",
			PostalCode:    "201307",
			LinkedIn:      "kamal-kishore-77385921b",
			Twitter:       "@kamal_kishore",
			UserStatus:    model.UserStatusActive,
			DateOfJoining: "2022-05-15",
			CreatedBy:     "Admin",
			ModifiedBy:    "Admin",
		}
	}

	u := model.User{
		ID:            fmt.Sprintf("user-%d", idx+1),
		FullName:      fmt.Sprintf("User %d", idx),
		FirstName:     "User",
		LastName:      fmt.Sprintf("%d", idx),
		Email:         fmt.Sprintf("user%d@example.com", idx),
		Role:          model.RoleUser,
		JobTitle:      "Junior Developer",
		Department:    department,
		Organization:  "Smalsus Infolabs",
		Site:          []string{"SMALSUS"},
		UserStatus:    model.UserStatusActive,
		DateOfJoining: "2023-05-20",
		CreatedBy:     "Admin",
		ModifiedBy:    "Admin",
	}
	if idx < len(namedUsers) {
		named := namedUsers[idx]
		first, last, _ := strings.Cut(named.name, " ")
		u.FullName, u.FirstName, u.LastName, u.Email = named.name, first, last, named.email
	}
	if idx < 4 {
		u.JobTitle = "Team Member"
		u.DateOfJoining = "2023-01-10"
	}
	return u
}

// Vendors returns the seeded vendors.
func Vendors() []model.Vendor {
	return []model.Vendor{
		{ID: "v-1", Name: "Apple", Website: "https://apple.com", ContactName: "Business Support", Email: "business@apple.com"},
		{ID: "v-2", Name: "Dell", Website: "https://dell.com", ContactName: "Sales Rep", Email: "sales@dell.com"},
		{ID: "v-3", Name: "Microsoft", Website: "https://microsoft.com", ContactName: "Licensing Team", Email: "licenses@microsoft.com"},
		{ID: "v-4", Name: "Lenovo", Website: "https://lenovo.com"},
		{ID: "v-5", Name: "Logitech", Website: "https://logitech.com"},
		{ID: "v-6", Name: "OpenAI", Website: "https://openai.com"},
		{ID: "v-7", Name: "Perplexity", Website: "https://perplexity.ai"},
		{ID: "v-8", Name: "TechSmith", Website: "https://techsmith.com"},
	}
}

type catalogItem struct {
	id, name, code, assetType, vendor, description string
}

var catalog = []catalogItem{
	{"repo-1", "ChatGPT", "GPT", model.AssetTypeLicense, "OpenAI", "ChatGPT has diverse use cases..."},
	{"repo-pex", "Perplexity", "PPX", model.AssetTypeLicense, "Perplexity", "Perplexity AI can be used for a wide range of tasks..."},
	{"repo-snap17", "Snap17", "S17", model.AssetTypeLicense, "TechSmith", "Professional screen capturing..."},
	{"repo-mbp", "MacBook", "MM", model.AssetTypeHardware, "Apple", "High performance laptop"},
	{"repo-sha", "Headphones", "SHA", model.AssetTypeHardware, "Logitech", "Standard issue headphones"},
}

// Families returns the seeded families. Licenses come with a Standard and an
// Enterprise tier.
func Families() []model.AssetFamily {
	families := make([]model.AssetFamily, 0, len(catalog))
	for _, item := range catalog {
		f := model.AssetFamily{
			ID:          item.id,
			AssetType:   item.assetType,
			Name:        item.name,
			ProductCode: item.code,
			Description: item.description,
		}
		if item.assetType == model.AssetTypeLicense {
			f.Category = "External"
			f.Vendor = item.vendor
			f.AssignmentModel = model.AssignmentMultiple
			f.Variants = []model.Variant{
				{ID: "var-" + item.id + "-1", Name: "Standard", LicenseType: "Subscription", Cost: 20},
				{ID: "var-" + item.id + "-2", Name: "Enterprise", LicenseType: "Subscription", Cost: 60},
			}
		} else {
			f.Category = "Laptop"
			f.Manufacturer = item.vendor
			f.AssignmentModel = model.AssignmentSingle
		}
		families = append(families, f)
	}
	return families
}

// Assets returns two instances per family. The first instance of each is
// assigned: hardware to users[0], licenses to users[0] and users[1].
func Assets(families []model.AssetFamily, users []model.User) []model.Asset {
	var assets []model.Asset
	for _, fam := range families {
		isLicense := fam.AssetType == model.AssetTypeLicense
		for i := 1; i <= 2; i++ {
			a := model.Asset{
				ID:            fmt.Sprintf("%s-inst-%d", fam.ID, i),
				AssetID:       fmt.Sprintf("%s-%04d", fam.ProductCode, i),
				FamilyID:      fam.ID,
				Title:         fmt.Sprintf("%s %d", fam.Name, i),
				AssetType:     fam.AssetType,
				Status:        model.AssetStatusActive,
				PurchaseDate:  "2024-02-15",
				Cost:          1500,
				AssignedUsers: []model.UserRef{},
				ActiveUsers:   []model.UserRef{},
				CreatedBy:     "Admin",
				ModifiedBy:    "Admin",
			}
			if isLicense {
				a.Cost = 150
				a.VariantType = "Standard"
				if i == 1 && len(users) > 1 {
					a.AssignedUsers = []model.UserRef{users[0].Ref(), users[1].Ref()}
				}
			} else {
				a.SerialNumber = fmt.Sprintf("S/N-%s-%dXYZ", fam.ProductCode, i)
				if i == 1 && len(users) > 0 {
					ref := users[0].Ref()
					a.AssignedUser = &ref
				}
			}
			assets = append(assets, a)
		}
	}
	return assets
}

// PlatformAccounts returns the external accounts of the first two users.
func PlatformAccounts() []model.PlatformAccount {
	return []model.PlatformAccount{
		{ID: "acc-1", UserID: "user-1", Platform: "SharePoint", AccountType: "Internal", Email: "kamal.kishore@test.com", Status: "Active"},
		{ID: "acc-2", UserID: "user-1", Platform: "Gmail", AccountType: "Internal", Email: "kamal.kishore@smalsus.com", Status: "Active"},
		{ID: "acc-3", UserID: "user-2", Platform: "SharePoint", AccountType: "Internal", Email: "deepak@example.com", Status: "Active"},
		{ID: "acc-4", UserID: "user-2", Platform: "Dogado", AccountType: "Internal", Email: "deepak.trivedi@dogado.de", Status: "Active"},
		{ID: "acc-5", UserID: "user-2", Platform: "Gmail", AccountType: "Guest", Email: "deepak.t.guest@gmail.com", Status: "Disabled"},
	}
}

// Requests returns one pending and one approved request.
func Requests(users []model.User) []model.Request {
	if len(users) < 4 {
		return nil
	}
	return []model.Request{
		{
			ID:          "req-1",
			Type:        model.RequestTypeSoftware,
			Item:        "Perplexity Pro",
			RequestedBy: users[2].Ref(),
			Status:      model.RequestPending,
			RequestDate: "2024-05-22",
			Notes:       "Needed for research automation",
			FamilyID:    "repo-pex",
		},
		{
			ID:          "req-2",
			Type:        model.RequestTypeHardware,
			Item:        "MacBook Pro M2",
			RequestedBy: users[3].Ref(),
			Status:      model.RequestApproved,
			RequestDate: "2024-05-20",
			Notes:       "Replacement for damaged unit",
			FamilyID:    "repo-mbp",
		},
	}
}

// Generate builds the full demo data set.
func Generate() *Data {
	users := Users()
	families := Families()
	return &Data{
		Vendors:  Vendors(),
		Families: families,
		Users:    users,
		Accounts: PlatformAccounts(),
		Assets:   Assets(families, users),
		Requests: Requests(users),
	}
}

// Load writes the demo data set in one transaction. Assets get their
// creation history from rec.
func Load(ctx context.Context, db *sql.DB, data *Data, rec history.Recorder) error {
	return store.InTx(ctx, db, func(tx *sql.Tx) error {
		for i := range data.Vendors {
			if err := store.CreateVendor(ctx, tx, &data.Vendors[i]); err != nil {
				return err
			}
		}
		for i := range data.Users {
			if err := store.CreateUser(ctx, tx, &data.Users[i]); err != nil {
				return err
			}
		}
		for i := range data.Accounts {
			if err := store.CreatePlatformAccount(ctx, tx, &data.Accounts[i]); err != nil {
				return err
			}
		}
		for i := range data.Families {
			if err := store.CreateFamily(ctx, tx, &data.Families[i]); err != nil {
				return err
			}
		}
		for i := range data.Assets {
			a := &data.Assets[i]
			if err := store.CreateAsset(ctx, tx, a); err != nil {
				return err
			}
			if err := store.AppendHistory(ctx, tx, a.ID, rec.Seed(a)); err != nil {
				return err
			}
		}
		for i := range data.Requests {
			if err := store.CreateRequest(ctx, tx, &data.Requests[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// Seeded reports whether the database already holds users.
func Seeded(ctx context.Context, db store.DBTX) (bool, error) {
	n, err := store.CountUsers(ctx, db)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
