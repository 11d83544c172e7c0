package user

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrNoVerificationCode = errors.New("no verification code generated")
)

type Repository interface {
	createUser(user *User) error
	getUserByEmail(email string) (*User, error)
	getUserByID(id string) (*User, error)
	updateEmailVerified(userID string, verified bool) error
	updateBudget(userID string, budget int64) error
	saveEmailVerificationCode(userID, code, codeType string, expiresAt time.Time) error
	getEmailVerificationCode(userID, codeType string) (string, time.Time, time.Time, error)
	deleteEmailVerificationCode(userID, codeType string) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) Repository {
	return &userRepository{
		db: db,
	}
}

const userColumns = `id, email, name, password_hash, budget, two_factor_enabled, two_factor_secret, hash_token, is_verified, created_at, updated_at`

func scanUser(row *sql.Row) (*User, error) {
	var user User
	err := row.Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.Budget,
		&user.TwoFactorEnabled, &user.TwoFactorSecret, &user.HashToken,
		&user.IsVerified, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("could not find user: %v", err)
	}
	return &user, nil
}

func (r *userRepository) createUser(user *User) error {
	query := `
		INSERT INTO users (email, name, password_hash, budget, hash_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id;
	`
	var id string
	err := r.db.QueryRow(query, user.Email, user.Name, user.PasswordHash, user.Budget, user.HashToken).Scan(&id)
	if err != nil {
		return fmt.Errorf("could not create user: %v", err)
	}

	user.ID = id
	return nil
}

func (r *userRepository) getUserByEmail(email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(query, email))
}

func (r *userRepository) getUserByID(id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(query, id))
}

func (r *userRepository) updateEmailVerified(userID string, verified bool) error {
	query := `
        UPDATE users
        SET is_verified = $2, updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.Exec(query, userID, verified)
	if err != nil {
		return fmt.Errorf("could not update email verification status: %v", err)
	}
	return nil
}

func (r *userRepository) updateBudget(userID string, budget int64) error {
	query := `
        UPDATE users
        SET budget = $2, updated_at = NOW()
        WHERE id = $1
    `
	result, err := r.db.Exec(query, userID, budget)
	if err != nil {
		return fmt.Errorf("could not update budget: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not update budget: %v", err)
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) saveEmailVerificationCode(userID, code, codeType string, expiresAt time.Time) error {
	query := `
        INSERT INTO email_verification_codes (user_id, code, code_type, expires_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (user_id, code_type) DO UPDATE
        SET code = $2, expires_at = $4, created_at = NOW()
    `
	_, err := r.db.Exec(query, userID, code, codeType, expiresAt)
	if err != nil {
		return fmt.Errorf("could not save verification code: %v", err)
	}
	return nil
}

func (r *userRepository) getEmailVerificationCode(userID, codeType string) (string, time.Time, time.Time, error) {
	query := `
        SELECT code, expires_at, created_at
        FROM email_verification_codes
        WHERE user_id = $1 AND code_type = $2
    `

	var code string
	var expiresAt time.Time
	var createdAt time.Time
	err := r.db.QueryRow(query, userID, codeType).Scan(&code, &expiresAt, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", time.Time{}, time.Time{}, ErrNoVerificationCode
		}
		return "", time.Time{}, time.Time{}, fmt.Errorf("could not retrieve verification code: %v", err)
	}

	return code, expiresAt, createdAt, nil
}

func (r *userRepository) deleteEmailVerificationCode(userID, codeType string) error {
	query := `
        DELETE FROM email_verification_codes
        WHERE user_id = $1 AND code_type = $2
    `
	_, err := r.db.Exec(query, userID, codeType)
	if err != nil {
		return fmt.Errorf("could not delete verification code: %v", err)
	}
	return nil
}
