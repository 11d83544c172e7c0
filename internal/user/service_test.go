package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	emailService "github.com/sing9814/smartshopper-sub000/internal/email"
)

type queuedEmail struct {
	to   string
	data emailService.EmailData
}

type mockEmailSender struct {
	queued []queuedEmail
}

func (m *mockEmailSender) QueueEmail(to string, data emailService.EmailData) {
	m.queued = append(m.queued, queuedEmail{to: to, data: data})
}

type storedCode struct {
	code      string
	expiresAt time.Time
	createdAt time.Time
}

type mockRepository struct {
	users     map[string]*User
	codes     map[string]storedCode
	updateErr error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users: make(map[string]*User),
		codes: make(map[string]storedCode),
	}
}

func (m *mockRepository) createUser(user *User) error {
	user.ID = "u-1"
	m.users[user.ID] = user
	return nil
}

func (m *mockRepository) getUserByEmail(email string) (*User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *mockRepository) getUserByID(id string) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (m *mockRepository) updateEmailVerified(userID string, verified bool) error {
	u, ok := m.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.IsVerified = verified
	return nil
}

func (m *mockRepository) updateBudget(userID string, budget int64) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	u, ok := m.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.Budget = budget
	return nil
}

func (m *mockRepository) saveEmailVerificationCode(userID, code, codeType string, expiresAt time.Time) error {
	m.codes[userID+"/"+codeType] = storedCode{code: code, expiresAt: expiresAt, createdAt: time.Now().UTC()}
	return nil
}

func (m *mockRepository) getEmailVerificationCode(userID, codeType string) (string, time.Time, time.Time, error) {
	c, ok := m.codes[userID+"/"+codeType]
	if !ok {
		return "", time.Time{}, time.Time{}, ErrNoVerificationCode
	}
	return c.code, c.expiresAt, c.createdAt, nil
}

func (m *mockRepository) deleteEmailVerificationCode(userID, codeType string) error {
	delete(m.codes, userID+"/"+codeType)
	return nil
}

func TestGenerateVerificationCode_SixDigits(t *testing.T) {
	code, err := GenerateVerificationCode()
	require.NoError(t, err)
	require.Len(t, code, 6)
	for _, c := range code {
		assert.True(t, c >= '0' && c <= '9')
	}
}

func TestVerifyRegistrationCode_Success(t *testing.T) {
	repo := newMockRepository()
	repo.users["u-1"] = &User{ID: "u-1", Email: "a@b.com", Name: "Ana"}
	repo.codes["u-1/"+CodeVerifyType] = storedCode{
		code:      "123456",
		expiresAt: time.Now().UTC().Add(time.Minute),
		createdAt: time.Now().UTC(),
	}

	service := NewUserService(repo, &mockEmailSender{})
	require.NoError(t, service.VerifyRegistrationCode("a@b.com", "123456"))
	assert.True(t, repo.users["u-1"].IsVerified)

	_, _, _, err := repo.getEmailVerificationCode("u-1", CodeVerifyType)
	assert.ErrorIs(t, err, ErrNoVerificationCode)
}

func TestVerifyRegistrationCode_WrongCode(t *testing.T) {
	repo := newMockRepository()
	repo.users["u-1"] = &User{ID: "u-1", Email: "a@b.com"}
	repo.codes["u-1/"+CodeVerifyType] = storedCode{
		code:      "123456",
		expiresAt: time.Now().UTC().Add(time.Minute),
	}

	service := NewUserService(repo, &mockEmailSender{})
	err := service.VerifyRegistrationCode("a@b.com", "000000")
	assert.ErrorIs(t, err, ErrInvalidVerificationCode)
	assert.False(t, repo.users["u-1"].IsVerified)
}

func TestVerifyRegistrationCode_Expired(t *testing.T) {
	repo := newMockRepository()
	repo.users["u-1"] = &User{ID: "u-1", Email: "a@b.com"}
	repo.codes["u-1/"+CodeVerifyType] = storedCode{
		code:      "123456",
		expiresAt: time.Now().UTC().Add(-time.Minute),
	}

	service := NewUserService(repo, &mockEmailSender{})
	err := service.VerifyRegistrationCode("a@b.com", "123456")
	assert.ErrorIs(t, err, ErrVerificationCodeExpired)
}

func TestVerifyRegistrationCode_AlreadyVerified(t *testing.T) {
	repo := newMockRepository()
	repo.users["u-1"] = &User{ID: "u-1", Email: "a@b.com", IsVerified: true}

	service := NewUserService(repo, &mockEmailSender{})
	err := service.VerifyRegistrationCode("a@b.com", "123456")
	assert.ErrorIs(t, err, ErrUserAlreadyVerified)
}

func TestResendVerificationCode_Throttled(t *testing.T) {
	repo := newMockRepository()
	user := &User{ID: "u-1", Email: "a@b.com", Name: "Ana"}
	repo.users["u-1"] = user
	repo.codes["u-1/"+CodeVerifyType] = storedCode{
		code:      "123456",
		expiresAt: time.Now().UTC().Add(time.Minute),
		createdAt: time.Now().UTC(),
	}

	sender := &mockEmailSender{}
	service := NewUserService(repo, sender)
	err := service.ResendVerificationCode(user)
	assert.ErrorIs(t, err, ErrTooManyEmailCodeRequests)
	assert.Empty(t, sender.queued)
}

func TestSendTwoFactorCode_QueuesEmail(t *testing.T) {
	repo := newMockRepository()
	user := &User{ID: "u-1", Email: "a@b.com", Name: "Ana"}
	repo.users["u-1"] = user

	sender := &mockEmailSender{}
	service := NewUserService(repo, sender)
	require.NoError(t, service.SendTwoFactorCode(user))

	require.Len(t, sender.queued, 1)
	assert.Equal(t, "a@b.com", sender.queued[0].to)
	_, ok := sender.queued[0].data.(emailService.TwoFactorCodeData)
	assert.True(t, ok)
}

func TestUpdateBudget(t *testing.T) {
	repo := newMockRepository()
	repo.users["u-1"] = &User{ID: "u-1", Email: "a@b.com"}

	service := NewUserService(repo, &mockEmailSender{})
	require.NoError(t, service.UpdateBudget("u-1", 25000))
	assert.Equal(t, int64(25000), repo.users["u-1"].Budget)

	assert.ErrorIs(t, service.UpdateBudget("u-1", -1), ErrNegativeBudget)
	assert.ErrorIs(t, service.UpdateBudget("missing", 100), ErrUserNotFound)
}
