package schema

import "github.com/taibuivan/inkwell/internal/platform/constants"

// IdentityUserTable represents the 'identity.user' table
type IdentityUserTable struct {
	Table        string
	ID           string
	Username     string
	FullName     string
	PhoneNumber  string
	Email        string
	Password     string
	Role         string
	IsActive     string
	IsVerified   string
	Bio          string
	ProfileImage string
	SocialLinks  string
	CreatedAt    string
	UpdatedAt    string
}

// IdentityUser is the schema definition for identity.user
var IdentityUser = IdentityUserTable{
	Table:        constants.SchemaIdentity + `."user"`,
	ID:           "id",
	Username:     "username",
	FullName:     "fullname",
	PhoneNumber:  "phonenumber",
	Email:        "email",
	Password:     "passwordhash",
	Role:         "role",
	IsActive:     "isactive",
	IsVerified:   "isverified",
	Bio:          "bio",
	ProfileImage: "profileimage",
	SocialLinks:  "sociallinks",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns all standard column names
func (t IdentityUserTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.FullName, t.PhoneNumber, t.Email, t.Password, t.Role,
		t.IsActive, t.IsVerified, t.Bio, t.ProfileImage, t.SocialLinks,
		t.CreatedAt, t.UpdatedAt,
	}
}
