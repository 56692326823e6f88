package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoBruxo/PTbotKND/internal/testutil"
)

func TestVerifyOperatorToken(t *testing.T) {
	hash, err := HashToken("hunter2")
	require.NoError(t, err)

	svc := New(hash, testutil.NopLogger())
	require.True(t, svc.Enabled())

	assert.NoError(t, svc.VerifyOperatorToken("hunter2"))
	assert.ErrorIs(t, svc.VerifyOperatorToken("wrong"), ErrInvalidToken)
	assert.ErrorIs(t, svc.VerifyOperatorToken(""), ErrInvalidToken)
}

func TestNoTokenConfigured(t *testing.T) {
	svc := New("", testutil.NopLogger())

	assert.False(t, svc.Enabled())
	assert.ErrorIs(t, svc.VerifyOperatorToken("anything"), ErrNotEnabled)
}

func TestHashTokenProducesDistinctHashes(t *testing.T) {
	a, err := HashToken("token")
	require.NoError(t, err)
	b, err := HashToken("token")
	require.NoError(t, err)

	// bcrypt salts every hash, but both must verify
	assert.NotEqual(t, a, b)
	assert.NoError(t, New(a, testutil.NopLogger()).VerifyOperatorToken("token"))
	assert.NoError(t, New(b, testutil.NopLogger()).VerifyOperatorToken("token"))
}
