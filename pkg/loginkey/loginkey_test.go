// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package loginkey_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/inkwell/pkg/loginkey"
)

/*
TestUsername verifies composition and trimming while preserving case.
*/
func TestUsername(t *testing.T) {
	precomposed := "Jos\u00e9"
	decomposed := "Jose\u0301"

	assert.Equal(t, precomposed, loginkey.Username("  "+decomposed+"\t"))
	assert.Equal(t, "Alice", loginkey.Username("Alice"))
}

/*
TestEmail verifies case folding on top of normalization.
*/
func TestEmail(t *testing.T) {
	assert.Equal(t, "alice@inkwell.app", loginkey.Email(" Alice@Inkwell.APP "))
	assert.Equal(t, loginkey.Email("jose\u0301@inkwell.app"), loginkey.Email("JOS\u00c9@inkwell.app"))
}
