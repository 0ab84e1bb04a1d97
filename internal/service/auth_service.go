package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"taskdeck/internal/domain"
	"taskdeck/internal/email"
	"taskdeck/internal/repository"
)

var (
	ErrMissingFields    = errors.New("missing required fields")
	ErrEmailTaken       = errors.New("user already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrInvalidCode      = errors.New("invalid verification code")
	ErrEmailSendFailure = errors.New("email send failed")
	ErrRateLimited      = errors.New("rate limited")
)

const codeRequestWindow = 10 * time.Minute

// AuthService coordina registro, verificación y credenciales.
type AuthService struct {
	logger      *zap.Logger
	users       repository.UserRepository
	profiles    repository.ProfileRepository
	emailSender email.Sender
	limiter     RateLimiter
}

func NewAuthService(logger *zap.Logger, users repository.UserRepository, profiles repository.ProfileRepository, emailSender email.Sender, limiter RateLimiter) *AuthService {
	if limiter == nil {
		limiter = NewMemoryRateLimiter(codeRequestWindow, 3)
	}
	return &AuthService{
		logger:      logger,
		users:       users,
		profiles:    profiles,
		emailSender: emailSender,
		limiter:     limiter,
	}
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Bio       *string
}

// Register crea usuario y perfil, pero solo persiste después de que
// el correo de verificación salió: si el envío falla no queda nada guardado.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) error {
	emailAddr := normalizeEmail(input.Email)
	password := strings.TrimSpace(input.Password)
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)

	if emailAddr == "" || password == "" || firstName == "" || lastName == "" {
		return ErrMissingFields
	}

	if s.limiter != nil && !s.limiter.Allow(emailAddr) {
		return ErrRateLimited
	}

	_, err := s.users.GetByEmail(ctx, emailAddr)
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	code, err := NewVerificationCode()
	if err != nil {
		return err
	}

	profile := domain.Profile{
		ID:        uuid.NewString(),
		FirstName: firstName,
		LastName:  lastName,
		Bio:       input.Bio,
	}
	user := domain.User{
		ID:               uuid.NewString(),
		Email:            emailAddr,
		PasswordHash:     string(hashBytes),
		Roles:            []string{"USER"},
		VerificationCode: &code,
		ProfileID:        &profile.ID,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.emailSender.SendVerificationCode(ctx, emailAddr, code); err != nil {
		if s.logger != nil {
			s.logger.Warn("send verification code failed", zap.Error(err), zap.String("email", emailAddr))
		}
		return ErrEmailSendFailure
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		return err
	}
	return s.users.Create(ctx, user)
}

// Login valida credenciales y devuelve el usuario autenticado.
func (s *AuthService) Login(ctx context.Context, emailAddr, password string) (domain.User, error) {
	emailAddr = normalizeEmail(emailAddr)
	password = strings.TrimSpace(password)
	if emailAddr == "" || password == "" {
		return domain.User{}, ErrMissingFields
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, ErrInvalidPassword
	}
	return user, nil
}

// VerifyEmail consume el código pendiente del usuario.
func (s *AuthService) VerifyEmail(ctx context.Context, emailAddr, code string) error {
	emailAddr = normalizeEmail(emailAddr)

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvalidCode
		}
		return err
	}
	if !CheckVerificationCode(user.VerificationCode, code) {
		return ErrInvalidCode
	}
	return s.users.ClearVerificationCode(ctx, user.ID)
}

// ForgotPassword emite un código de reset, pisando el que hubiera.
// Persiste antes de enviar; los tokens de sesión vigentes no se tocan.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" {
		return ErrUserNotFound
	}

	if s.limiter != nil && !s.limiter.Allow(emailAddr) {
		return ErrRateLimited
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}

	code, err := NewVerificationCode()
	if err != nil {
		return err
	}
	if err := s.users.SetVerificationCode(ctx, user.ID, code); err != nil {
		return err
	}

	if err := s.emailSender.SendPasswordReset(ctx, emailAddr, code); err != nil {
		if s.logger != nil {
			s.logger.Warn("send password reset failed", zap.Error(err), zap.String("email", emailAddr))
		}
		return ErrEmailSendFailure
	}
	return nil
}

// ChangePassword rehashea la nueva contraseña si el código coincide.
func (s *AuthService) ChangePassword(ctx context.Context, emailAddr, code, newPassword string) error {
	emailAddr = normalizeEmail(emailAddr)
	newPassword = strings.TrimSpace(newPassword)
	if newPassword == "" {
		return ErrMissingFields
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvalidCode
		}
		return err
	}
	if !CheckVerificationCode(user.VerificationCode, code) {
		return ErrInvalidCode
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, string(hashBytes)); err != nil {
		return err
	}
	return s.users.ClearVerificationCode(ctx, user.ID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
