package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJWTProvider_IssueAndVerify(t *testing.T) {
	issuer, verifier := NewJWTProvider("test-secret")

	token, err := issuer.Issue("user-1", "ada@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", userID)
}

func TestJWTProvider_Verify_rejectsBadTokens(t *testing.T) {
	issuer, _ := NewJWTProvider("test-secret")
	_, otherVerifier := NewJWTProvider("other-secret")

	t.Run("wrong secret", func(t *testing.T) {
		token, err := issuer.Issue("user-1", "ada@example.com", time.Hour)
		require.NoError(t, err)
		_, err = otherVerifier.Verify(token)
		require.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		_, verifier := NewJWTProvider("test-secret")
		token, err := issuer.Issue("user-1", "ada@example.com", -time.Minute)
		require.NoError(t, err)
		_, err = verifier.Verify(token)
		require.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, verifier := NewJWTProvider("test-secret")
		_, err := verifier.Verify("not.a.jwt")
		require.Error(t, err)
	})
}
