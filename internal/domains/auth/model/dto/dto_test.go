package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/infras/jwt"
	"folio/internal/domains/auth/model/dto"
	userDto "folio/internal/domains/user/model/dto"
)

func TestLoginResponse_FlattensTokens(t *testing.T) {
	res := dto.LoginResponse{User: userDto.UserResponse{ID: "user-1"}}
	res.FromTokenPair(&jwt.TokenPair{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer", ExpiresIn: 900})

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.Equal(t, "a", body["access_token"])
	assert.Equal(t, "r", body["refresh_token"])
	assert.Equal(t, "Bearer", body["token_type"])
	assert.InDelta(t, 900, body["expires_in"], 0)
	assert.Contains(t, body, "user")
}

func TestTokenResponse_FromTokenPairOverwrites(t *testing.T) {
	res := dto.RefreshTokenResponse{TokenResponse: dto.TokenResponse{TokenType: "stale", ExpiresIn: 1}}
	res.FromTokenPair(&jwt.TokenPair{AccessToken: "new-access"})

	assert.Equal(t, "new-access", res.AccessToken)
	assert.Empty(t, res.TokenType)
	assert.Zero(t, res.ExpiresIn)
}
