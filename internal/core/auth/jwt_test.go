package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTerRoundtrip(t *testing.T) {
	j := &JWTer{Secret: []byte("s3cret"), Issuer: "test", TTL: time.Hour}

	tok, err := j.Issue("uid-1", "lawyer")
	require.NoError(t, err)

	claims, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", claims.UID)
	assert.Equal(t, "lawyer", claims.Role)
	assert.Equal(t, "test", claims.Issuer)
}

func TestJWTerWrongSecret(t *testing.T) {
	j := &JWTer{Secret: []byte("s3cret"), Issuer: "test", TTL: time.Hour}
	tok, err := j.Issue("uid-1", "lawyer")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("different"), Issuer: "test", TTL: time.Hour}
	_, err = other.Parse(tok)
	assert.Error(t, err)
}

func TestJWTerExpired(t *testing.T) {
	// Parse 留了 60s leeway，TTL 要压得更早
	j := &JWTer{Secret: []byte("s3cret"), Issuer: "test", TTL: -2 * time.Minute}
	tok, err := j.Issue("uid-1", "lawyer")
	require.NoError(t, err)

	_, err = j.Parse(tok)
	assert.Error(t, err)
}

func TestJWTerWrongIssuer(t *testing.T) {
	j := &JWTer{Secret: []byte("s3cret"), Issuer: "issuer-a", TTL: time.Hour}
	tok, err := j.Issue("uid-1", "lawyer")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("s3cret"), Issuer: "issuer-b", TTL: time.Hour}
	_, err = other.Parse(tok)
	assert.Error(t, err)
}
