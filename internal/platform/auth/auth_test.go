package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionTokenIssuer(t *testing.T) {
	issuer := NewActionTokenIssuer("test-secret", time.Hour)

	t.Run("issue and verify roundtrip", func(t *testing.T) {
		token, err := issuer.Issue(ActionApprove, 42)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		assert.NoError(t, issuer.Verify(token, ActionApprove, 42))
	})

	t.Run("token is bound to the action", func(t *testing.T) {
		token, err := issuer.Issue(ActionApprove, 42)
		require.NoError(t, err)

		err = issuer.Verify(token, ActionReject, 42)
		assert.ErrorIs(t, err, ErrInvalidActionToken)
	})

	t.Run("token is bound to the booking", func(t *testing.T) {
		token, err := issuer.Issue(ActionApprove, 42)
		require.NoError(t, err)

		err = issuer.Verify(token, ActionApprove, 43)
		assert.ErrorIs(t, err, ErrInvalidActionToken)
	})

	t.Run("foreign secret is rejected", func(t *testing.T) {
		other := NewActionTokenIssuer("other-secret", time.Hour)

		token, err := other.Issue(ActionApprove, 42)
		require.NoError(t, err)

		err = issuer.Verify(token, ActionApprove, 42)
		assert.ErrorIs(t, err, ErrInvalidActionToken)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		expired := NewActionTokenIssuer("test-secret", -time.Minute)

		token, err := expired.Issue(ActionApprove, 42)
		require.NoError(t, err)

		err = issuer.Verify(token, ActionApprove, 42)
		assert.ErrorIs(t, err, ErrInvalidActionToken)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		assert.ErrorIs(t, issuer.Verify("not-a-jwt", ActionApprove, 42), ErrInvalidActionToken)
		assert.ErrorIs(t, issuer.Verify("", ActionApprove, 42), ErrInvalidActionToken)
	})
}

func TestSessionIssuer(t *testing.T) {
	issuer := NewSessionIssuer("test-secret", time.Hour)

	t.Run("issue and verify roundtrip", func(t *testing.T) {
		token, err := issuer.Issue()
		require.NoError(t, err)
		require.NotEmpty(t, token)

		assert.NoError(t, issuer.Verify(token))
	})

	t.Run("foreign secret is rejected", func(t *testing.T) {
		other := NewSessionIssuer("other-secret", time.Hour)

		token, err := other.Issue()
		require.NoError(t, err)

		assert.ErrorIs(t, issuer.Verify(token), ErrInvalidSession)
	})

	t.Run("expired session is rejected", func(t *testing.T) {
		expired := NewSessionIssuer("test-secret", -time.Minute)

		token, err := expired.Issue()
		require.NoError(t, err)

		assert.ErrorIs(t, issuer.Verify(token), ErrInvalidSession)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		assert.ErrorIs(t, issuer.Verify(""), ErrInvalidSession)
		assert.ErrorIs(t, issuer.Verify("not-a-jwt"), ErrInvalidSession)
	})
}

func TestCancellationToken(t *testing.T) {
	t.Run("tokens are 64 hex chars and unique", func(t *testing.T) {
		first, err := NewCancellationToken()
		require.NoError(t, err)
		assert.Len(t, first, 64)
		assert.Regexp(t, "^[0-9a-f]+$", first)

		second, err := NewCancellationToken()
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("verify", func(t *testing.T) {
		assert.True(t, VerifyCancellationToken("abc123", "abc123"))
		assert.False(t, VerifyCancellationToken("abc123", "abc124"))
		assert.False(t, VerifyCancellationToken("abc123", ""))
		assert.False(t, VerifyCancellationToken("", "abc123"))
		assert.False(t, VerifyCancellationToken("", ""))
	})
}
