package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"recipehub/models"
	"recipehub/utils"

	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidResetToken  = errors.New("invalid or expired token")
)

const minPasswordLen = 6

type AuthService struct {
	db        *gorm.DB
	mailer    utils.Mailer
	jwtSecret string
	tokenTTL  time.Duration
	resetTTL  time.Duration
}

func NewAuthService(db *gorm.DB, mailer utils.Mailer, jwtSecret string, tokenTTL, resetTTL time.Duration) *AuthService {
	return &AuthService{db: db, mailer: mailer, jwtSecret: jwtSecret, tokenTTL: tokenTTL, resetTTL: resetTTL}
}

type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func normalizeEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || len(password) < minPasswordLen {
		return nil, fmt.Errorf("email and a password of at least %d characters are required: %w", minPasswordLen, ErrInvalidInput)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := models.User{Email: email, Password: hashed, FullName: strings.TrimSpace(fullName)}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return s.issue(&user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := utils.GenerateJWT(s.jwtSecret, user.ID, user.Email, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ForgotPassword stores a 6 character reset code and mails it. Unknown
// emails succeed silently.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.FindUserByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	user.ResetToken = utils.GenerateRandomToken(6)
	user.ResetTokenExp = time.Now().Add(s.resetTTL)
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return err
	}
	return utils.SendResetEmail(ctx, s.mailer, user.Email, user.ResetToken)
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return ErrInvalidResetToken
	}
	if len(newPassword) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters: %w", minPasswordLen, ErrInvalidInput)
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("reset_token = ?", token).First(&user).Error
	if err != nil || time.Now().After(user.ResetTokenExp) {
		return ErrInvalidResetToken
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	user.ResetToken = ""
	user.ResetTokenExp = time.Time{}
	return s.db.WithContext(ctx).Save(&user).Error
}
