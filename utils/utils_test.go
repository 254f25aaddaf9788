package utils

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("s3cret", 42, "ann@example.com", time.Hour)
	require.NoError(t, err)

	id, email, err := ParseJWT("s3cret", token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
	assert.Equal(t, "ann@example.com", email)

	_, _, err = ParseJWT("other", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTRejects(t *testing.T) {
	expired, err := GenerateJWT("s3cret", 1, "a@b.c", -time.Minute)
	require.NoError(t, err)
	_, _, err = ParseJWT("s3cret", expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "a@b.c",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)
	_, _, err = ParseJWT("s3cret", noUser)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = GenerateJWT("", 1, "a@b.c", time.Hour)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("hunter22", hash))
	assert.False(t, CheckPasswordHash("hunter23", hash))
}

func TestGenerateRandomToken(t *testing.T) {
	a, b := GenerateRandomToken(6), GenerateRandomToken(6)
	assert.Len(t, a, 6)
	assert.NotEqual(t, a, b)
	for _, r := range a {
		assert.Contains(t, tokenCharset, string(r))
	}
}

func TestDates(t *testing.T) {
	_, err := ParseDay("2025-02-30")
	assert.Error(t, err)
	_, err = ParseDay("2025-01-15")
	assert.NoError(t, err)

	assert.NoError(t, ValidRange("2025-01-15", "2025-01-15"))
	assert.Error(t, ValidRange("2025-01-16", "2025-01-15"))
	assert.Error(t, ValidRange("x", "2025-01-15"))

	_, err = ParseDay(Today())
	assert.NoError(t, err)
}

func TestDayOf_UsesUTC(t *testing.T) {
	eastern := time.FixedZone("UTC-5", -5*60*60)
	late := time.Date(2025, 1, 15, 23, 30, 0, 0, eastern)
	assert.Equal(t, "2025-01-16", DayOf(late))

	tokyo := time.FixedZone("UTC+9", 9*60*60)
	early := time.Date(2025, 1, 15, 3, 0, 0, 0, tokyo)
	assert.Equal(t, "2025-01-14", DayOf(early))
}

func TestHTMLToText(t *testing.T) {
	assert.Equal(t, "Pasta with fresh basil.", HTMLToText("<p>Pasta with <b>fresh</b>\n basil.</p>"))
	assert.Equal(t, "", HTMLToText("   "))
	assert.Equal(t, "plain", HTMLToText("plain"))
}

type recordingMailer struct{ to, subject, body string }

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.to, m.subject, m.body = to, subject, body
	return nil
}

func TestSendResetEmail(t *testing.T) {
	m := &recordingMailer{}
	require.NoError(t, SendResetEmail(context.Background(), m, "ann@example.com", "AbC123"))
	assert.Equal(t, "ann@example.com", m.to)
	assert.Equal(t, "Password Reset Code", m.subject)
	assert.Contains(t, m.body, "AbC123")
}
