package account_test

import (
	"strings"
	"testing"

	"koin-ledger/feature/account"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMatchCode(t *testing.T) {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code, err := account.GenerateMatchCode()
		require.NoError(t, err)

		assert.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(alphabet, r), "unexpected character %q in %q", r, code)
		}
		seen[code] = struct{}{}
	}

	// Not a uniqueness guarantee, just a sanity check that the generator
	// isn't returning a constant.
	assert.Greater(t, len(seen), 90)
}
