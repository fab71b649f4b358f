// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=19456,t=2,p=1$"))

	// Salted: hashing the same password twice gives different output.
	hash2, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("segreto")
	require.NoError(t, err)

	ok, err := CheckPassword("segreto", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword("sbagliato", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckPasswordMalformed(t *testing.T) {
	_, err := CheckPassword("x", "not-a-hash")
	assert.Error(t, err)

	_, err = CheckPassword("x", "$bcrypt$v=19$m=1,t=1,p=1$aaaa$bbbb")
	assert.Error(t, err)
}

func TestNeedsRehash(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)
	assert.False(t, NeedsRehash(hash))

	assert.True(t, NeedsRehash("$argon2id$v=19$m=65536,t=3,p=4$aaaa$bbbb"))
	assert.True(t, NeedsRehash("garbage"))
}
