package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"folio/shared/password"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "regular password", password: "correct horse battery staple"},
		{name: "unicode password", password: "pässwörd-写真"},
		{name: "exactly the limit", password: strings.Repeat("a", password.MaxLength)},
		{name: "empty password", password: "", wantErr: password.ErrEmptyPassword},
		{name: "over the limit", password: strings.Repeat("a", password.MaxLength+1), wantErr: password.ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashed, err := password.Hash(tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hashed)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hashed)
			assert.NoError(t, password.Verify(tt.password, hashed))

			cost, err := bcrypt.Cost([]byte(hashed))
			require.NoError(t, err)
			assert.Equal(t, password.Cost, cost)
		})
	}
}

func TestHash_Salted(t *testing.T) {
	first, err := password.Hash("same-password")
	require.NoError(t, err)

	second, err := password.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerify(t *testing.T) {
	hashed, err := password.Hash("s3cret-pass")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  error
		otherErr bool
	}{
		{name: "match", password: "s3cret-pass", hash: hashed},
		{name: "mismatch", password: "wrong", hash: hashed, wantErr: password.ErrInvalidPassword},
		{name: "case matters", password: "S3CRET-PASS", hash: hashed, wantErr: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: hashed, wantErr: password.ErrInvalidPassword},
		{name: "empty hash", password: "s3cret-pass", hash: "", wantErr: password.ErrInvalidPassword},
		{name: "malformed hash", password: "s3cret-pass", hash: "not-a-hash", otherErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.otherErr:
				require.Error(t, err)
				assert.NotErrorIs(t, err, password.ErrInvalidPassword)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestNeedsRehash(t *testing.T) {
	weak, err := bcrypt.GenerateFromPassword([]byte("photo"), bcrypt.MinCost)
	require.NoError(t, err)

	current, err := password.Hash("photo")
	require.NoError(t, err)

	rehash, err := password.NeedsRehash(string(weak))
	require.NoError(t, err)
	assert.True(t, rehash)

	rehash, err = password.NeedsRehash(current)
	require.NoError(t, err)
	assert.False(t, rehash)

	_, err = password.NeedsRehash("garbage")
	assert.ErrorIs(t, err, password.ErrMalformedHash)
}
