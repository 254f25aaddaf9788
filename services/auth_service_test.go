package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"recipehub/models"
	"recipehub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct{ to, subject, body string }

type captureMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *captureMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

func newAuth(t *testing.T) (*AuthService, *captureMailer) {
	t.Helper()
	m := &captureMailer{}
	return NewAuthService(setupTestDB(t), m, "secret", time.Hour, 15*time.Minute), m
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuth(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, " Ann@Example.com ", "hunter22", "Ann")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", res.User.Email)
	assert.NotEqual(t, "hunter22", res.User.Password)

	id, email, err := utils.ParseJWT("secret", res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, id)
	assert.Equal(t, "ann@example.com", email)

	_, err = svc.Register(ctx, "ann@example.com", "another1", "")
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Register(ctx, "bob@example.com", "short", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Login(ctx, "ANN@example.com", "hunter22")
	require.NoError(t, err)
	_, err = svc.Login(ctx, "ann@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPasswordReset(t *testing.T) {
	svc, mailer := newAuth(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ann@example.com", "hunter22", "Ann")
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(ctx, "nobody@example.com"))
	assert.Empty(t, mailer.sent)

	require.NoError(t, svc.ForgotPassword(ctx, "ann@example.com"))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ann@example.com", mailer.sent[0].to)

	user, err := svc.FindUserByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	require.Len(t, user.ResetToken, 6)
	assert.True(t, strings.Contains(mailer.sent[0].body, user.ResetToken))

	assert.ErrorIs(t, svc.ResetPassword(ctx, "nope00", "newpass1"), ErrInvalidResetToken)
	assert.ErrorIs(t, svc.ResetPassword(ctx, user.ResetToken, "x"), ErrInvalidInput)
	require.NoError(t, svc.ResetPassword(ctx, user.ResetToken, "newpass1"))

	_, err = svc.Login(ctx, "ann@example.com", "newpass1")
	require.NoError(t, err)
	assert.ErrorIs(t, svc.ResetPassword(ctx, user.ResetToken, "newpass2"), ErrInvalidResetToken, "token is single use")
}

func TestResetPassword_Expired(t *testing.T) {
	svc, _ := newAuth(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, "ann@example.com", "hunter22", "Ann")
	require.NoError(t, err)
	require.NoError(t, svc.db.Model(&models.User{}).Where("id = ?", res.User.ID).
		Updates(map[string]any{"reset_token": "abc123", "reset_token_exp": time.Now().Add(-time.Minute)}).Error)

	assert.ErrorIs(t, svc.ResetPassword(ctx, "abc123", "newpass1"), ErrInvalidResetToken)
}
