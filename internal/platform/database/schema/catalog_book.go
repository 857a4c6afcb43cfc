package schema

import "github.com/taibuivan/inkwell/internal/platform/constants"

// CatalogBookTable represents the 'catalog.book' table
type CatalogBookTable struct {
	Table            string
	ID               string
	Title            string
	Description      string
	IsFree           string
	Price            string
	CoverURL         string
	AuthorID         string
	PublisherHouseID string
	CreatedAt        string
	UpdatedAt        string
}

// CatalogBook is the schema definition for catalog.book
var CatalogBook = CatalogBookTable{
	Table:            constants.SchemaCatalog + ".book",
	ID:               "id",
	Title:            "title",
	Description:      "description",
	IsFree:           "isfree",
	Price:            "price",
	CoverURL:         "coverurl",
	AuthorID:         "authorid",
	PublisherHouseID: "publisherhouseid",
	CreatedAt:        "createdat",
	UpdatedAt:        "updatedat",
}

// Columns returns all standard column names
func (t CatalogBookTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Description, t.IsFree, t.Price, t.CoverURL,
		t.AuthorID, t.PublisherHouseID, t.CreatedAt, t.UpdatedAt,
	}
}
