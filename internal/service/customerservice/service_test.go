package customerservice_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"govidly/internal/domain"
	apperror "govidly/internal/errors"
	"govidly/internal/pkg/logger"
	"govidly/internal/pkg/validation"
	"govidly/internal/service/customerservice"
)

// MockCustomerRepository é uma implementação mock da interface CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Save(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id string) (domain.Customer, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id string) (domain.Customer, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Customer), args.Error(1)
}

func newService() (*customerservice.Service, *MockCustomerRepository) {
	repo := new(MockCustomerRepository)
	return customerservice.NewService(repo, validation.New(), logger.NewNop()), repo
}

func TestCreate_Success(t *testing.T) {
	svc, repo := newService()
	input := domain.CustomerInput{Name: "Alice Smith", Phone: "12345678901", IsGold: true}
	expected := domain.Customer{ID: uuid.NewString(), Name: "Alice Smith", Phone: "12345678901", IsGold: true}

	repo.On("Save", mock.Anything, domain.Customer{Name: "Alice Smith", Phone: "12345678901", IsGold: true}).Return(expected, nil)

	customer, err := svc.Create(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, expected, customer)
	repo.AssertExpectations(t)
}

func TestCreate_ShortPhoneReportsViolation(t *testing.T) {
	svc, repo := newService()

	_, err := svc.Create(context.Background(), domain.CustomerInput{Name: "Alice Smith", Phone: "123"})

	assert.IsType(t, &apperror.ValidationError{}, err)
	violations := apperror.Violations(err)
	require.Len(t, violations, 1)
	assert.Equal(t, "phone", violations[0].Field)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestGetByID_MalformedIDIsNotFound(t *testing.T) {
	svc, repo := newService()

	_, err := svc.GetByID(context.Background(), "not-a-uuid")

	assert.IsType(t, &apperror.NotFoundError{}, err)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestUpdate_PropagatesNotFound(t *testing.T) {
	svc, repo := newService()
	id := uuid.NewString()

	repo.On("Update", mock.Anything, domain.Customer{ID: id, Name: "Alice Smith", Phone: "12345678901"}).
		Return(domain.Customer{}, apperror.NewNotFoundError("não encontrado"))

	_, err := svc.Update(context.Background(), id, domain.CustomerInput{Name: "Alice Smith", Phone: "12345678901"})

	assert.IsType(t, &apperror.NotFoundError{}, err)
	repo.AssertExpectations(t)
}

func TestDelete_Success(t *testing.T) {
	svc, repo := newService()
	id := uuid.NewString()

	repo.On("Delete", mock.Anything, id).Return(domain.Customer{ID: id, Name: "Alice Smith"}, nil)

	customer, err := svc.Delete(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, customer.ID)
	repo.AssertExpectations(t)
}
