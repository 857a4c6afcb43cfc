package schema

import "github.com/taibuivan/inkwell/internal/platform/constants"

// IdentityAdminTable represents the 'identity.admin' table
type IdentityAdminTable struct {
	Table               string
	ID                  string
	Username            string
	Email               string
	PhoneNumber         string
	Password            string
	Role                string
	IsSuperAdmin        string
	CanManageUsers      string
	CanManagePublishers string
	CanManageContent    string
	CanManageSystem     string
	IsActive            string
	LastLoginAt         string
	CreatedAt           string
	UpdatedAt           string
}

// IdentityAdmin is the schema definition for identity.admin
var IdentityAdmin = IdentityAdminTable{
	Table:               constants.SchemaIdentity + ".admin",
	ID:                  "id",
	Username:            "username",
	Email:               "email",
	PhoneNumber:         "phonenumber",
	Password:            "passwordhash",
	Role:                "role",
	IsSuperAdmin:        "issuperadmin",
	CanManageUsers:      "canmanageusers",
	CanManagePublishers: "canmanagepublishers",
	CanManageContent:    "canmanagecontent",
	CanManageSystem:     "canmanagesystem",
	IsActive:            "isactive",
	LastLoginAt:         "lastloginat",
	CreatedAt:           "createdat",
	UpdatedAt:           "updatedat",
}

// Columns returns all standard column names
func (t IdentityAdminTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.PhoneNumber, t.Password, t.Role,
		t.IsSuperAdmin, t.CanManageUsers, t.CanManagePublishers, t.CanManageContent, t.CanManageSystem,
		t.IsActive, t.LastLoginAt, t.CreatedAt, t.UpdatedAt,
	}
}
