package passwordhasher

import (
	"pwreset/internal/core/domain/user"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Low costs keep the suite fast; the production minimum is covered below.
const testCost = 4

func TestHashRoundTrip(t *testing.T) {
	cases := []struct {
		id       string
		secret   string
		password user.RawPassword
	}{
		{id: "plain", secret: "pepper", password: "NewPass1!"},
		{id: "no secret", secret: "", password: "NewPass1!"},
		{id: "empty password", secret: "pepper", password: ""},
		{id: "surrounding spaces", secret: "  s  ", password: "  spaced out  "},
		{id: "unicode", secret: "pepper", password: "пароль-密码"},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			h := NewBcrypt(testcase.secret, testCost)

			hash, err := h.HashPassword(testcase.password)

			require.Nil(t, err)
			require.NotEmpty(t, hash)
			require.True(t, h.ValidatePassword(testcase.password, hash))
		})
	}
}

func TestHashIsSalted(t *testing.T) {
	h := NewBcrypt("pepper", testCost)

	first, err := h.HashPassword("NewPass1!")
	require.Nil(t, err)
	second, err := h.HashPassword("NewPass1!")
	require.Nil(t, err)

	require.NotEqual(t, first, second)
	require.True(t, h.ValidatePassword("NewPass1!", first))
	require.True(t, h.ValidatePassword("NewPass1!", second))
}

func TestValidatePasswordRejects(t *testing.T) {
	cases := []struct {
		id            string
		hashSecret    string
		checkSecret   string
		hashPassword  user.RawPassword
		checkPassword user.RawPassword
	}{
		{id: "trailing space", hashSecret: "pepper", checkSecret: "pepper", hashPassword: "NewPass1!", checkPassword: "NewPass1! "},
		{id: "other case", hashSecret: "pepper", checkSecret: "pepper", hashPassword: "NewPass1!", checkPassword: "newpass1!"},
		{id: "empty against blank", hashSecret: "", checkSecret: "", hashPassword: "", checkPassword: " "},
		{id: "other secret", hashSecret: "pepper", checkSecret: "salt", hashPassword: "NewPass1!", checkPassword: "NewPass1!"},
		{id: "secret added later", hashSecret: "", checkSecret: "pepper", hashPassword: "NewPass1!", checkPassword: "NewPass1!"},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			hash, err := NewBcrypt(testcase.hashSecret, testCost).HashPassword(testcase.hashPassword)
			require.Nil(t, err)

			ok := NewBcrypt(testcase.checkSecret, testCost).ValidatePassword(testcase.checkPassword, hash)

			require.False(t, ok)
		})
	}
}

func TestValidatePasswordMalformedHash(t *testing.T) {
	h := NewBcrypt("pepper", testCost)

	require.False(t, h.ValidatePassword("NewPass1!", user.PasswordHash("")))
	require.False(t, h.ValidatePassword("NewPass1!", user.PasswordHash("not-a-bcrypt-hash")))
}

func TestProductionCost(t *testing.T) {
	_, err := NewProductionBcrypt("", MinCost-1)
	require.Error(t, err)

	h, err := NewProductionBcrypt("pepper", MinCost)
	require.Nil(t, err)
	hash, err := h.HashPassword(user.RawPassword("NewPass1!"))
	require.Nil(t, err)
	require.True(t, strings.HasPrefix(string(hash), "$2a$10$"))
	require.NotContains(t, string(hash), "NewPass1!")
	require.True(t, h.ValidatePassword(user.RawPassword("NewPass1!"), hash))
}
