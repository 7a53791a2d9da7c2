package service

import (
	"testing"
	"time"

	"github.com/alihfala/mando-articles/internal/common"
	"github.com/alihfala/mando-articles/internal/domain"
	"github.com/alihfala/mando-articles/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func testTokenManager() *jwt.Manager {
	return jwt.NewManager("test-secret", 15*time.Minute, 7*24*time.Hour, "mando-articles-test")
}

func TestRegister_CreatesUserAndIssuesTokens(t *testing.T) {
	users := new(MockUserRepository)
	users.On("ExistsByEmail", "ali@example.com").Return(false, nil)
	users.On("ExistsByUsername", "ali").Return(false, nil)
	users.On("Create", mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*domain.User).ID = 1
		}).
		Return(nil)

	svc := NewAuthService(users, testTokenManager())
	result, err := svc.Register(RegisterRequest{
		FullName: "Ali H",
		Username: "ali",
		Email:    "ali@example.com",
		Password: "correct-horse",
	})

	assert.NoError(t, err)
	assert.Equal(t, "ali", result.User.Username)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)

	// stored password is hashed, never plaintext
	created := users.Calls[2].Arguments.Get(0).(*domain.User)
	assert.NotEqual(t, "correct-horse", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("correct-horse")))
}

func TestRegister_DuplicateEmailRejected(t *testing.T) {
	users := new(MockUserRepository)
	users.On("ExistsByEmail", "ali@example.com").Return(true, nil)

	svc := NewAuthService(users, testTokenManager())
	_, err := svc.Register(RegisterRequest{
		FullName: "Ali H",
		Username: "ali",
		Email:    "ali@example.com",
		Password: "correct-horse",
	})

	assert.ErrorIs(t, err, common.ErrEmailTaken)
	users.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRegister_ShortPasswordRejected(t *testing.T) {
	svc := NewAuthService(new(MockUserRepository), testTokenManager())
	_, err := svc.Register(RegisterRequest{
		FullName: "Ali H",
		Username: "ali",
		Email:    "ali@example.com",
		Password: "short",
	})

	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	users := new(MockUserRepository)
	users.On("FindByEmail", "ali@example.com").Return(&domain.User{
		ID:       1,
		Username: "ali",
		Email:    "ali@example.com",
		Password: string(hash),
	}, nil)

	svc := NewAuthService(users, testTokenManager())
	_, err := svc.Login(LoginRequest{Email: "ali@example.com", Password: "wrong"})

	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByEmail", "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

	svc := NewAuthService(users, testTokenManager())
	_, err := svc.Login(LoginRequest{Email: "nobody@example.com", Password: "whatever"})

	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestGuestSession_MarksUserAsGuest(t *testing.T) {
	users := new(MockUserRepository)
	users.On("Create", mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*domain.User).ID = 99
		}).
		Return(nil)

	svc := NewAuthService(users, testTokenManager())
	result, err := svc.GuestSession()

	assert.NoError(t, err)
	assert.True(t, result.User.IsGuest)

	// the guest claim rides inside the access token
	claims, err := testTokenManager().VerifyAccess(result.Tokens.AccessToken)
	assert.NoError(t, err)
	assert.True(t, claims.IsGuest)
	assert.Equal(t, uint64(99), claims.UserID)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	users := new(MockUserRepository)
	mgr := testTokenManager()
	pair, err := mgr.GeneratePair(1, "ali", false)
	assert.NoError(t, err)

	svc := NewAuthService(users, mgr)
	_, err = svc.Refresh(pair.AccessToken)

	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestRefresh_IssuesNewPair(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByID", uint64(1)).Return(&domain.User{ID: 1, Username: "ali"}, nil)

	mgr := testTokenManager()
	pair, err := mgr.GeneratePair(1, "ali", false)
	assert.NoError(t, err)

	svc := NewAuthService(users, mgr)
	fresh, err := svc.Refresh(pair.RefreshToken)

	assert.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)

	claims, err := mgr.VerifyAccess(fresh.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), claims.UserID)
}
