package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/festarent/rental_mgmt_app/internal/apperrors"
	"github.com/festarent/rental_mgmt_app/internal/core/domain"
	portssvc "github.com/festarent/rental_mgmt_app/internal/core/ports/services"
	"github.com/festarent/rental_mgmt_app/internal/core/services"
	"github.com/festarent/rental_mgmt_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockClientRepository is a mock type for the ClientRepositoryFacade interface
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListClientsByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Client, *string, error) {
	args := m.Called(ctx, tenantID, limit, nextToken)
	var page []domain.Client
	if args.Get(0) != nil {
		page = args.Get(0).([]domain.Client)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return page, token, args.Error(2)
}

func (m *MockClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) DeactivateClient(ctx context.Context, clientID string, updatedBy string) error {
	args := m.Called(ctx, clientID, updatedBy)
	return args.Error(0)
}

// --- Test Suite Setup ---

type ReservationServiceTestSuite struct {
	suite.Suite
	mockReservationRepo *MockReservationRepository
	mockClientRepo      *MockClientRepository
	service             portssvc.ReservationSvcFacade
	tenantID            string
	userID              string
}

func (suite *ReservationServiceTestSuite) SetupTest() {
	suite.mockReservationRepo = new(MockReservationRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.service = services.NewReservationService(suite.mockReservationRepo, suite.mockClientRepo)
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *ReservationServiceTestSuite) activeClient() *domain.Client {
	return &domain.Client{
		ClientID: uuid.NewString(),
		TenantID: suite.tenantID,
		Name:     "Eventos La Sabana",
		IsActive: true,
	}
}

func (suite *ReservationServiceTestSuite) createRequest(clientID string) dto.CreateReservationRequest {
	return dto.CreateReservationRequest{
		Code:      "RES-042",
		ClientID:  clientID,
		EventDate: time.Now().AddDate(0, 1, 0),
		Subtotal:  dto.Money{Amount: 500_000, Currency: "COP"},
		Discount:  &dto.Money{Amount: 50_000, Currency: "COP"},
		Deposit:   &dto.Money{Amount: 100_000, Currency: "COP"},
	}
}

// --- Test Cases ---

func (suite *ReservationServiceTestSuite) TestCreateReservation_Success() {
	ctx := context.Background()
	client := suite.activeClient()
	req := suite.createRequest(client.ClientID)

	suite.mockClientRepo.On("FindClientByID", ctx, client.ClientID).Return(client, nil).Once()
	suite.mockReservationRepo.On("FindReservationByCode", ctx, suite.tenantID, req.Code).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockReservationRepo.On("SaveReservation", ctx, mock.AnythingOfType("domain.Reservation")).Return(nil).Once()

	created, err := suite.service.CreateReservation(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(created.ReservationID)
	suite.Equal(domain.StatusRequested, created.Status)
	suite.Equal(domain.PaymentPending, created.PaymentStatus)
	suite.Equal(int64(450_000), created.Total.Amount, "total derived from subtotal - discount")
	suite.Equal(int64(1), created.Version)
	suite.Equal(suite.userID, created.CreatedBy)
	suite.WithinDuration(time.Now(), created.CreatedAt, time.Second)
	suite.mockReservationRepo.AssertExpectations(suite.T())
}

func (suite *ReservationServiceTestSuite) TestCreateReservation_DuplicateCode() {
	ctx := context.Background()
	client := suite.activeClient()
	req := suite.createRequest(client.ClientID)

	existing := &domain.Reservation{ReservationID: uuid.NewString(), Code: req.Code, TenantID: suite.tenantID}
	suite.mockClientRepo.On("FindClientByID", ctx, client.ClientID).Return(client, nil).Once()
	suite.mockReservationRepo.On("FindReservationByCode", ctx, suite.tenantID, req.Code).Return(existing, nil).Once()

	_, err := suite.service.CreateReservation(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockReservationRepo.AssertNotCalled(suite.T(), "SaveReservation", mock.Anything, mock.Anything)
}

func (suite *ReservationServiceTestSuite) TestCreateReservation_DiscountExceedsSubtotal() {
	ctx := context.Background()
	client := suite.activeClient()
	req := suite.createRequest(client.ClientID)
	req.Discount = &dto.Money{Amount: 600_000, Currency: "COP"}

	suite.mockClientRepo.On("FindClientByID", ctx, client.ClientID).Return(client, nil).Once()
	suite.mockReservationRepo.On("FindReservationByCode", ctx, suite.tenantID, req.Code).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateReservation(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReservationServiceTestSuite) TestCreateReservation_InactiveClient() {
	ctx := context.Background()
	client := suite.activeClient()
	client.IsActive = false
	req := suite.createRequest(client.ClientID)

	suite.mockClientRepo.On("FindClientByID", ctx, client.ClientID).Return(client, nil).Once()

	_, err := suite.service.CreateReservation(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReservationServiceTestSuite) TestCreateReservation_ClientFromOtherTenant() {
	ctx := context.Background()
	client := suite.activeClient()
	client.TenantID = uuid.NewString()
	req := suite.createRequest(client.ClientID)

	suite.mockClientRepo.On("FindClientByID", ctx, client.ClientID).Return(client, nil).Once()

	_, err := suite.service.CreateReservation(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReservationServiceTestSuite) TestGetReservationByID_WrongTenant() {
	ctx := context.Background()
	res := &domain.Reservation{ReservationID: uuid.NewString(), TenantID: uuid.NewString()}

	suite.mockReservationRepo.On("FindReservationByID", ctx, res.ReservationID).Return(res, nil).Once()

	_, err := suite.service.GetReservationByID(ctx, suite.tenantID, res.ReservationID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReservationServiceTestSuite) TestListReservations_DefaultsLimit() {
	ctx := context.Background()

	suite.mockReservationRepo.On("ListReservationsByTenant", ctx, suite.tenantID, 20, (*string)(nil)).Return([]domain.Reservation{}, nil, nil).Once()

	page, err := suite.service.ListReservations(ctx, suite.tenantID, dto.ListReservationsParams{})

	suite.Require().NoError(err)
	suite.Empty(page.Reservations)
	suite.Nil(page.NextToken)
	suite.mockReservationRepo.AssertExpectations(suite.T())
}

func TestReservationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReservationServiceTestSuite))
}
