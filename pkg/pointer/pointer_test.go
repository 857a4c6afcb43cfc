// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/pkg/pointer"
)

func TestTo(t *testing.T) {
	value := pointer.To(42)
	require.NotNil(t, value)
	assert.Equal(t, 42, *value)
}

func TestNonEmpty(t *testing.T) {
	assert.Nil(t, pointer.NonEmpty(""))
	assert.Nil(t, pointer.NonEmpty("  \t"))

	phone := pointer.NonEmpty("+84901234567")
	require.NotNil(t, phone)
	assert.Equal(t, "+84901234567", *phone)
}
