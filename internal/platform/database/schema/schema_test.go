// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/inkwell/internal/platform/database/schema"
)

func TestTableNames(t *testing.T) {
	assert.Equal(t, `identity."user"`, schema.IdentityUser.Table)
	assert.Equal(t, "identity.publisherhouse", schema.IdentityPublisherHouse.Table)
	assert.Equal(t, "identity.admin", schema.IdentityAdmin.Table)
	assert.Equal(t, "catalog.book", schema.CatalogBook.Table)
}
