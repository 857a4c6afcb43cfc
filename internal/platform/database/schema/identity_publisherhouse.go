package schema

import "github.com/taibuivan/inkwell/internal/platform/constants"

// IdentityPublisherHouseTable represents the 'identity.publisherhouse' table
type IdentityPublisherHouseTable struct {
	Table        string
	ID           string
	Name         string
	Email        string
	Password     string
	LicenseImage string
	LogoImage    string
	Address      string
	ContactInfo  string
	IsActive     string
	IsVerified   string
	CreatedAt    string
	UpdatedAt    string
}

// IdentityPublisherHouse is the schema definition for identity.publisherhouse
var IdentityPublisherHouse = IdentityPublisherHouseTable{
	Table:        constants.SchemaIdentity + ".publisherhouse",
	ID:           "id",
	Name:         "name",
	Email:        "email",
	Password:     "passwordhash",
	LicenseImage: "licenseimage",
	LogoImage:    "logoimage",
	Address:      "address",
	ContactInfo:  "contactinfo",
	IsActive:     "isactive",
	IsVerified:   "isverified",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns all standard column names
func (t IdentityPublisherHouseTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Email, t.Password, t.LicenseImage, t.LogoImage, t.Address,
		t.ContactInfo, t.IsActive, t.IsVerified, t.CreatedAt, t.UpdatedAt,
	}
}
