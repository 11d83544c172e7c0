package user

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/badoux/checkmail"
	"golang.org/x/crypto/bcrypt"

	emailService "github.com/sing9814/smartshopper-sub000/internal/email"
)

const (
	maxEmailLength     = 254
	minEmailLength     = 3
	maxNameLength      = 30
	minNameLength      = 2
	bcryptCost         = 12
	defaultCodeTimeout = 2
	codeTTL            = 10 * time.Minute

	CodeVerifyType = "verify"
	Code2FAType    = "2fa"
)

var (
	ErrInvalidEmail             = errors.New("email address is not valid")
	ErrEmailLength              = fmt.Errorf("email address is too long or too short, max length: %d, min length: %d", maxEmailLength, minEmailLength)
	ErrNameLength               = fmt.Errorf("name is too long or too short, max length: %d, min length: %d", maxNameLength, minNameLength)
	ErrEmailAlreadyExists       = errors.New("email already exists")
	ErrInternalError            = errors.New("internal Server Error")
	ErrUserAlreadyVerified      = errors.New("user already verified")
	ErrInvalidVerificationCode  = errors.New("invalid verification code")
	ErrVerificationCodeExpired  = errors.New("verification code expired")
	ErrTooManyEmailCodeRequests = errors.New("too many email code requests")
	ErrNegativeBudget           = errors.New("budget cannot be negative")
)

type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Budget           int64     `json:"budget"`
	PasswordHash     string    `json:"-"`
	TwoFactorEnabled bool      `json:"two_factor_enabled"`
	TwoFactorSecret  string    `json:"-"`
	HashToken        string    `json:"-"`
	IsVerified       bool      `json:"is_verified"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type Service interface {
	Register(email, name, password string) (*User, error)
	VerifyRegistrationCode(email, code string) error
	ResendVerificationCode(user *User) error
	GetUserByID(userID string) (*User, error)
	GetUserByEmail(email string) (*User, error)
	UpdateBudget(userID string, budget int64) error
	SendTwoFactorCode(user *User) error
	VerifyTwoFactorEmailCode(userID, code string) error
}

type service struct {
	repo         Repository
	emailService emailService.EmailSender
}

func NewUserService(repo Repository, emailService emailService.EmailSender) Service {
	return &service{
		repo:         repo,
		emailService: emailService,
	}
}

func hashPassword(password string) (string, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hashedPasswordBytes), err
}

func GenerateVerificationCode() (string, error) {
	code := make([]byte, 6)
	_, err := rand.Read(code)
	if err != nil {
		return "", fmt.Errorf("could not generate verification code: %v", err)
	}
	for i := range code {
		code[i] = '0' + (code[i] % 10)
	}

	return string(code), nil
}

func generateHashToken() (string, error) {
	token := make([]byte, 32)
	_, err := rand.Read(token)
	if err != nil {
		return "", fmt.Errorf("could not generate hash token: %v", err)
	}
	return hex.EncodeToString(token), nil
}

func validateEmailAddress(email string) error {
	err := checkmail.ValidateFormat(email)
	if err != nil {
		return ErrInvalidEmail
	}

	err = checkmail.ValidateHost(email)
	if err != nil {
		if !strings.Contains(err.Error(), "timeout") {
			slog.Debug("Email host check failed", "error", err)
			return ErrInvalidEmail
		}
	}
	if len(email) > maxEmailLength || len(email) <= minEmailLength {
		return ErrEmailLength
	}
	return nil
}

func (s *service) Register(email, name, password string) (*User, error) {
	err := validateEmailAddress(email)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if len(name) == 0 {
		parts := strings.Split(email, "@")
		if len(parts) < 2 {
			return nil, ErrInvalidEmail
		}
		name = parts[0]
	} else if len(name) > maxNameLength || len(name) < minNameLength {
		return nil, ErrNameLength
	}

	existingUser, err := s.repo.getUserByEmail(email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		slog.Error("Failed to check for existing user", "error", err)
		return nil, ErrInternalError
	}
	if existingUser != nil {
		return nil, ErrEmailAlreadyExists
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		slog.Error("Failed to hash password", "error", err)
		return nil, ErrInternalError
	}

	hashToken, err := generateHashToken()
	if err != nil {
		slog.Error("Failed to generate a hash token", "error", err)
		return nil, ErrInternalError
	}

	user := &User{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		HashToken:    hashToken,
	}

	err = s.repo.createUser(user)
	if err != nil {
		slog.Error("Failed to create user", "error", err)
		return nil, ErrInternalError
	}

	err = s.sendVerificationCode(user)
	if err != nil {
		slog.Error("Failed to send verification email", "error", err)
		return nil, ErrInternalError
	}

	return user, nil
}

func (s *service) sendVerificationCode(user *User) error {
	newCode, err := GenerateVerificationCode()
	if err != nil {
		return fmt.Errorf("could not generate verification code: %v", err)
	}

	expirationTime := time.Now().UTC().Add(codeTTL)
	err = s.repo.saveEmailVerificationCode(user.ID, newCode, CodeVerifyType, expirationTime)
	if err != nil {
		return fmt.Errorf("could not save verification code: %v", err)
	}

	s.emailService.QueueEmail(user.Email, emailService.RegistrationConfirmationData{
		UserName: user.Name,
		Code:     newCode,
	})

	return nil
}

func (s *service) VerifyRegistrationCode(email, code string) error {
	user, err := s.repo.getUserByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUserNotFound
		}
		return ErrInternalError
	}

	if user.IsVerified {
		return ErrUserAlreadyVerified
	}

	storedCode, expiryTime, _, err := s.repo.getEmailVerificationCode(user.ID, CodeVerifyType)
	if err != nil {
		return ErrInvalidVerificationCode
	}

	if storedCode != code {
		return ErrInvalidVerificationCode
	}

	if time.Now().UTC().After(expiryTime) {
		return ErrVerificationCodeExpired
	}

	err = s.repo.updateEmailVerified(user.ID, true)
	if err != nil {
		slog.Error("Failed to mark user verified", "error", err)
		return ErrInternalError
	}

	_ = s.repo.deleteEmailVerificationCode(user.ID, CodeVerifyType)
	return nil
}

func (s *service) ResendVerificationCode(user *User) error {
	_, _, createdAt, err := s.repo.getEmailVerificationCode(user.ID, CodeVerifyType)
	if err != nil && !errors.Is(err, ErrNoVerificationCode) {
		return ErrInternalError
	}

	if err == nil {
		timeSinceLastCode := time.Now().UTC().Sub(createdAt.UTC())
		if timeSinceLastCode.Minutes() < defaultCodeTimeout {
			return ErrTooManyEmailCodeRequests
		}
	}

	return s.sendVerificationCode(user)
}

// SendTwoFactorCode emails a short-lived code used to confirm 2FA changes
// when the authenticator app is unavailable.
func (s *service) SendTwoFactorCode(user *User) error {
	_, _, createdAt, err := s.repo.getEmailVerificationCode(user.ID, Code2FAType)
	if err != nil && !errors.Is(err, ErrNoVerificationCode) {
		return ErrInternalError
	}
	if err == nil {
		timeSinceLastCode := time.Now().UTC().Sub(createdAt.UTC())
		if timeSinceLastCode.Minutes() < defaultCodeTimeout {
			return ErrTooManyEmailCodeRequests
		}
	}

	newCode, err := GenerateVerificationCode()
	if err != nil {
		return fmt.Errorf("could not generate verification code: %v", err)
	}

	expirationTime := time.Now().UTC().Add(codeTTL)
	err = s.repo.saveEmailVerificationCode(user.ID, newCode, Code2FAType, expirationTime)
	if err != nil {
		return fmt.Errorf("could not save verification code: %v", err)
	}

	s.emailService.QueueEmail(user.Email, emailService.TwoFactorCodeData{
		UserName: user.Name,
		Code:     newCode,
	})

	return nil
}

func (s *service) VerifyTwoFactorEmailCode(userID, code string) error {
	storedCode, expiryTime, _, err := s.repo.getEmailVerificationCode(userID, Code2FAType)
	if err != nil {
		if errors.Is(err, ErrNoVerificationCode) {
			return ErrNoVerificationCode
		}
		return ErrInternalError
	}

	if storedCode != code {
		return ErrInvalidVerificationCode
	}

	if time.Now().UTC().After(expiryTime) {
		return ErrVerificationCodeExpired
	}

	_ = s.repo.deleteEmailVerificationCode(userID, Code2FAType)
	return nil
}

func (s *service) GetUserByID(userID string) (*User, error) {
	return s.repo.getUserByID(userID)
}

func (s *service) GetUserByEmail(email string) (*User, error) {
	return s.repo.getUserByEmail(email)
}

func (s *service) UpdateBudget(userID string, budget int64) error {
	if budget < 0 {
		return ErrNegativeBudget
	}
	return s.repo.updateBudget(userID, budget)
}
