package userservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"govidly/internal/domain"
	apperror "govidly/internal/errors"
	"govidly/internal/pkg/logger"
	"govidly/internal/pkg/validation"
	"govidly/internal/service/userservice"
)

// MockUserRepository é uma implementação mock da interface UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) SetAdmin(ctx context.Context, email string, isAdmin bool) (domain.User, error) {
	args := m.Called(ctx, email, isAdmin)
	return args.Get(0).(domain.User), args.Error(1)
}

// MockTokenService é uma implementação mock de TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateToken(identity domain.Identity) (string, error) {
	args := m.Called(identity)
	return args.String(0), args.Error(1)
}

func newService() (*userservice.UserService, *MockUserRepository, *MockTokenService) {
	repo := new(MockUserRepository)
	tokens := new(MockTokenService)
	svc := userservice.NewService(repo, tokens, validation.New(), logger.NewNop()).WithHashCost(bcrypt.MinCost)
	return svc, repo, tokens
}

var registration = domain.UserRegistration{Name: "Alice Smith", Email: "alice@example.com", Password: "secret123"}

func TestRegister_HashesPasswordAndIssuesToken(t *testing.T) {
	svc, repo, tokens := newService()
	id := uuid.NewString()

	repo.On("FindByEmail", mock.Anything, registration.Email).Return(domain.User{}, apperror.NewNotFoundError("x"))
	repo.On("Save", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == registration.Email && !u.IsAdmin &&
			u.PasswordHash != registration.Password &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(registration.Password)) == nil
	})).Return(domain.User{ID: id, Name: "Alice Smith", Email: registration.Email}, nil)
	tokens.On("GenerateToken", domain.Identity{ID: id, Name: "Alice Smith", Email: registration.Email}).Return("signed", nil)

	user, token, err := svc.Register(context.Background(), registration)

	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "signed", token)
	repo.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, repo, _ := newService()

	repo.On("FindByEmail", mock.Anything, registration.Email).Return(domain.User{ID: "u1"}, nil)

	_, _, err := svc.Register(context.Background(), registration)

	assert.True(t, apperror.HasCategory(err, apperror.CategoryDuplicateEmail))
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRegister_InvalidEmail(t *testing.T) {
	svc, repo, _ := newService()

	_, _, err := svc.Register(context.Background(), domain.UserRegistration{Name: "Alice Smith", Email: "not-an-email", Password: "secret123"})

	assert.IsType(t, &apperror.ValidationError{}, err)
	repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	svc, repo, tokens := newService()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := domain.User{ID: "u1", Name: "Alice Smith", Email: "alice@example.com", PasswordHash: string(hash), IsAdmin: true}

	repo.On("FindByEmail", mock.Anything, "alice@example.com").Return(user, nil)
	tokens.On("GenerateToken", user.Identity()).Return("signed", nil)

	token, err := svc.Login(context.Background(), domain.Credentials{Email: "alice@example.com", Password: "secret123"})

	require.NoError(t, err)
	assert.Equal(t, "signed", token)
}

func TestLogin_WrongPasswordIs400(t *testing.T) {
	svc, repo, tokens := newService()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo.On("FindByEmail", mock.Anything, "alice@example.com").Return(domain.User{ID: "u1", PasswordHash: string(hash)}, nil)

	_, err = svc.Login(context.Background(), domain.Credentials{Email: "alice@example.com", Password: "wrong-pass"})

	assert.IsType(t, &apperror.ValidationError{}, err)
	tokens.AssertNotCalled(t, "GenerateToken", mock.Anything)
}

func TestLogin_UnknownEmailIs400(t *testing.T) {
	svc, repo, _ := newService()

	repo.On("FindByEmail", mock.Anything, "bob@example.com").Return(domain.User{}, apperror.NewNotFoundError("x"))

	_, err := svc.Login(context.Background(), domain.Credentials{Email: "bob@example.com", Password: "secret123"})

	assert.IsType(t, &apperror.ValidationError{}, err)
}

func TestLogin_RepoFailurePropagates(t *testing.T) {
	svc, repo, _ := newService()

	repo.On("FindByEmail", mock.Anything, "bob@example.com").Return(domain.User{}, apperror.NewDBError("falha", errors.New("down")))

	_, err := svc.Login(context.Background(), domain.Credentials{Email: "bob@example.com", Password: "secret123"})

	assert.IsType(t, &apperror.InternalError{}, err)
}

func TestDelete_MalformedID(t *testing.T) {
	svc, repo, _ := newService()

	_, err := svc.Delete(context.Background(), "42")

	assert.IsType(t, &apperror.NotFoundError{}, err)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestSetAdmin_Promotes(t *testing.T) {
	svc, repo, _ := newService()

	repo.On("SetAdmin", mock.Anything, "alice@example.com", true).Return(domain.User{ID: "u1", IsAdmin: true}, nil)

	user, err := svc.SetAdmin(context.Background(), "alice@example.com", true)

	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
}
