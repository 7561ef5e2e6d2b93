package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CentTolerance is the largest difference accepted between two currency
// amounts computed through different paths.
const CentTolerance = 0.01

// RequireNoError fails the test immediately if err is not nil.
func RequireNoError(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	require.NoError(t, err, msgAndArgs...)
}

// AssertErrorContains checks that err contains the expected substring.
func AssertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), expected)
	}
}

// AssertAmount compares two currency amounts to the cent.
func AssertAmount(t *testing.T, expected, actual float64, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, expected, actual, CentTolerance, msgAndArgs...)
}
