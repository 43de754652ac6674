package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"github.com/coverpoint/clubhouse/internal/apperrors"
	"github.com/coverpoint/clubhouse/internal/mailer"
	"github.com/coverpoint/clubhouse/internal/models"
	"github.com/coverpoint/clubhouse/internal/repository"
	"github.com/coverpoint/clubhouse/internal/utils"
	"github.com/coverpoint/clubhouse/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^[0-9+][0-9 -]{5,19}$`)
)

type AuthService struct {
	accounts      *repository.AccountRepository
	codes         *repository.VerificationRepository
	mail          mailer.Mailer
	jwtSecret     string
	jwtExpiration time.Duration
	codeTTL       time.Duration
}

func NewAuthService(
	accounts *repository.AccountRepository,
	codes *repository.VerificationRepository,
	mail mailer.Mailer,
	jwtSecret string,
	jwtExpiration time.Duration,
	codeTTL time.Duration,
) *AuthService {
	return &AuthService{
		accounts:      accounts,
		codes:         codes,
		mail:          mail,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		codeTTL:       codeTTL,
	}
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Name         string
	Phone        string
	Email        string
	Password     string
	Category     string
	Specialties  string
	BattingStyle string
	BowlingStyle string
	Age          int
}

// Register creates a pending account with a unique derived username.
func (s *AuthService) Register(in RegisterInput) (*models.Account, error) {
	start := time.Now()

	logger.Log.Debug("Processing registration",
		zap.String("name", in.Name),
		zap.String("phone", in.Phone),
	)

	if err := s.validateRegisterInput(in); err != nil {
		logger.Log.Warn("Registration validation failed",
			zap.String("phone", in.Phone),
			zap.Error(err),
		)
		return nil, err
	}

	// Registration fails on an existing phone or email; usernames
	// instead get a numeric suffix until free.
	existing, err := s.accounts.GetByPhone(in.Phone)
	if err != nil {
		logger.Log.Error("Failed to check phone existence",
			zap.String("phone", in.Phone),
			zap.Error(err),
		)
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrDuplicateCredential
	}

	if in.Email != "" {
		existing, err = s.accounts.GetByEmail(in.Email)
		if err != nil {
			logger.Log.Error("Failed to check email existence",
				zap.String("email", in.Email),
				zap.Error(err),
			)
			return nil, err
		}
		if existing != nil {
			return nil, apperrors.ErrDuplicateCredential
		}
	}

	username, err := s.deriveUsername(in.Name)
	if err != nil {
		return nil, err
	}

	hashStart := time.Now()
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		logger.Log.Error("Failed to hash password", zap.Error(err))
		return nil, err
	}
	hashDuration := time.Since(hashStart)

	account := &models.Account{
		ID:           uuid.New(),
		Name:         in.Name,
		Username:     username,
		Phone:        in.Phone,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         models.RolePlayer,
		Category:     in.Category,
		Specialties:  in.Specialties,
		BattingStyle: in.BattingStyle,
		BowlingStyle: in.BowlingStyle,
		Age:          in.Age,
		Status:       models.StatusPending,
		LikeCount:    0,
	}

	if err := s.accounts.Create(account); err != nil {
		logger.Log.Error("Failed to create account",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Account registered",
		zap.String("account_id", account.ID.String()),
		zap.String("username", username),
		zap.Duration("hash_duration", hashDuration),
		zap.Duration("total_duration", time.Since(start)),
	)

	return account, nil
}

// deriveUsername slugs the name and probes suffixed variants
// (name, name-1, name-2, ...) until one is free. Usernames are
// immutable once assigned.
func (s *AuthService) deriveUsername(name string) (string, error) {
	base := utils.SlugifyName(name)
	if base == "" {
		return "", apperrors.Validationf("name must contain letters or digits")
	}

	candidate := base
	for i := 1; ; i++ {
		existing, err := s.accounts.GetByUsername(candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// Login verifies phone+password and issues a session token. Unknown
// phone and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(phone, password string) (*models.Account, string, error) {
	start := time.Now()

	account, err := s.accounts.GetByPhone(phone)
	if err != nil {
		logger.Log.Error("Failed to get account by phone",
			zap.String("phone", phone),
			zap.Error(err),
		)
		return nil, "", err
	}
	if account == nil {
		logger.Log.Warn("Login failed: account not found", zap.String("phone", phone))
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if !utils.VerifyPassword(password, account.PasswordHash) {
		logger.Log.Warn("Login failed: invalid password",
			zap.String("account_id", account.ID.String()),
		)
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(account, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		logger.Log.Error("Failed to generate session token",
			zap.String("account_id", account.ID.String()),
			zap.Error(err),
		)
		return nil, "", err
	}

	logger.Log.Info("Login successful",
		zap.String("account_id", account.ID.String()),
		zap.String("username", account.Username),
		zap.Duration("total_duration", time.Since(start)),
	)

	return account, token, nil
}

// ForgotPassword creates a reset code for the email and dispatches it.
func (s *AuthService) ForgotPassword(email string) error {
	account, err := s.accounts.GetByEmail(email)
	if err != nil {
		return err
	}
	if account == nil {
		logger.Log.Warn("Reset requested for unregistered email", zap.String("email", email))
		return apperrors.ErrAccountNotFound
	}

	code, err := generateResetCode()
	if err != nil {
		logger.Log.Error("Failed to generate reset code", zap.Error(err))
		return err
	}

	expiresAt := time.Now().Add(s.codeTTL)
	if err := s.codes.Replace(email, code, expiresAt); err != nil {
		logger.Log.Error("Failed to store reset code",
			zap.String("email", email),
			zap.Error(err),
		)
		return err
	}

	if err := s.mail.SendResetCode(email, code); err != nil {
		logger.Log.Error("Failed to send reset email",
			zap.String("email", email),
			zap.Error(err),
		)
		return apperrors.ErrUpstream
	}

	logger.Log.Info("Reset code sent",
		zap.String("email", email),
		zap.Time("expires_at", expiresAt),
	)

	return nil
}

// VerifyCode checks the code without consuming it, so the client can
// gate the new-password form before committing.
func (s *AuthService) VerifyCode(email, code string) error {
	_, err := s.activeCode(email, code)
	return err
}

// ResetPassword re-validates the code, replaces the stored hash and
// consumes the code. A consumed code cannot be replayed.
func (s *AuthService) ResetPassword(email, code, newPassword string) error {
	if len(newPassword) < 8 {
		return apperrors.Validationf("password must be at least 8 characters")
	}

	vc, err := s.activeCode(email, code)
	if err != nil {
		return err
	}

	account, err := s.accounts.GetByEmail(email)
	if err != nil {
		return err
	}
	if account == nil {
		return apperrors.ErrAccountNotFound
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.accounts.UpdatePasswordHash(account.ID, hash); err != nil {
		logger.Log.Error("Failed to update password hash",
			zap.String("account_id", account.ID.String()),
			zap.Error(err),
		)
		return err
	}

	if err := s.codes.Consume(vc.ID); err != nil {
		logger.Log.Error("Failed to consume reset code",
			zap.String("email", email),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("Password reset completed",
		zap.String("account_id", account.ID.String()),
	)

	return nil
}

func (s *AuthService) activeCode(email, code string) (*models.VerificationCode, error) {
	vc, err := s.codes.GetActive(email, time.Now())
	if err != nil {
		return nil, err
	}
	if vc == nil || vc.Code != code {
		return nil, apperrors.ErrInvalidCode
	}
	return vc, nil
}

// generateResetCode draws a 6-digit code from a cryptographically
// strong source.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func (s *AuthService) validateRegisterInput(in RegisterInput) error {
	if len(in.Name) < 2 || len(in.Name) > 100 {
		return apperrors.Validationf("name must be between 2 and 100 characters")
	}
	if !phoneRegex.MatchString(in.Phone) {
		return apperrors.Validationf("invalid phone number")
	}
	if in.Email != "" && !emailRegex.MatchString(in.Email) {
		return apperrors.Validationf("invalid email format")
	}
	if len(in.Password) < 8 {
		return apperrors.Validationf("password must be at least 8 characters")
	}
	if len(in.Password) > 128 {
		return apperrors.Validationf("password too long")
	}
	if in.Age != 0 && (in.Age < 15 || in.Age > 50) {
		return apperrors.Validationf("age must be between 15 and 50")
	}
	return nil
}
