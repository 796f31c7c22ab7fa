package services_test

import (
	"context"
	"testing"

	"github.com/festarent/rental_mgmt_app/internal/apperrors"
	"github.com/festarent/rental_mgmt_app/internal/core/domain"
	portssvc "github.com/festarent/rental_mgmt_app/internal/core/ports/services"
	"github.com/festarent/rental_mgmt_app/internal/core/services"
	"github.com/festarent/rental_mgmt_app/internal/dto"
	"github.com/festarent/rental_mgmt_app/internal/platform/events"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockReservationRepository is a mock type for the ReservationRepositoryFacade interface
type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) FindReservationByID(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindReservationByCode(ctx context.Context, tenantID, code string) (*domain.Reservation, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ListReservationsByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Reservation, *string, error) {
	args := m.Called(ctx, tenantID, limit, nextToken)
	var page []domain.Reservation
	if args.Get(0) != nil {
		page = args.Get(0).([]domain.Reservation)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return page, token, args.Error(2)
}

func (m *MockReservationRepository) SaveReservation(ctx context.Context, reservation domain.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockReservationRepository) UpdateReservationState(ctx context.Context, reservation domain.Reservation, expectedVersion int64) error {
	args := m.Called(ctx, reservation, expectedVersion)
	return args.Error(0)
}

func (m *MockReservationRepository) FindTransactionsByReservationID(ctx context.Context, reservationID string) ([]domain.RentalTransaction, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RentalTransaction), args.Error(1)
}

func (m *MockReservationRepository) AppendTransaction(ctx context.Context, txn domain.RentalTransaction, reservation domain.Reservation, expectedVersion int64) error {
	args := m.Called(ctx, txn, reservation, expectedVersion)
	return args.Error(0)
}

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	statusChanged   []events.StatusChangedEvent
	paymentRecorded []events.PaymentRecordedEvent
}

func (p *recordingPublisher) PublishStatusChanged(_ context.Context, e events.StatusChangedEvent) error {
	p.statusChanged = append(p.statusChanged, e)
	return nil
}

func (p *recordingPublisher) PublishPaymentRecorded(_ context.Context, e events.PaymentRecordedEvent) error {
	p.paymentRecorded = append(p.paymentRecorded, e)
	return nil
}

// --- Test Suite Setup ---

type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockReservationRepository
	publisher *recordingPublisher
	service   portssvc.ReconciliationSvcFacade
	tenantID  string
	userID    string
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReservationRepository)
	suite.publisher = &recordingPublisher{}
	suite.service = services.NewReconciliationService(suite.mockRepo, suite.publisher)
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *ReconciliationServiceTestSuite) reservation(status domain.ReservationStatus, totalMinor int64) *domain.Reservation {
	return &domain.Reservation{
		ReservationID: uuid.NewString(),
		Code:          "RES-001",
		TenantID:      suite.tenantID,
		ClientID:      uuid.NewString(),
		Subtotal:      domain.NewMoney(totalMinor, "COP"),
		Discount:      domain.Zero("COP"),
		Total:         domain.NewMoney(totalMinor, "COP"),
		Deposit:       domain.Zero("COP"),
		Status:        status,
		PaymentStatus: domain.PaymentPending,
		Version:       3,
	}
}

// --- Test Cases ---

func (suite *ReconciliationServiceTestSuite) TestGetSummary_Success() {
	ctx := context.Background()
	res := suite.reservation(domain.StatusRequested, 500_000)

	suite.mockRepo.On("FindReservationByID", ctx, res.ReservationID).Return(res, nil).Once()
	suite.mockRepo.On("FindTransactionsByReservationID", ctx, res.ReservationID).Return([]domain.RentalTransaction{
		{Kind: domain.KindPayment, Amount: domain.NewMoney(200_000, "COP")},
	}, nil).Once()

	summary, err := suite.service.GetSummary(ctx, suite.tenantID, res.ReservationID)

	suite.Require().NoError(err)
	suite.Equal(int64(200_000), summary.TotalPaid.Amount)
	suite.Equal(int64(300_000), summary.Outstanding.Amount)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestGetSummary_WrongTenantObscuresExistence() {
	ctx := context.Background()
	res := suite.reservation(domain.StatusRequested, 500_000)

	suite.mockRepo.On("FindReservationByID", ctx, res.ReservationID).Return(res, nil).Once()

	_, err := suite.service.GetSummary(ctx, uuid.NewString(), res.ReservationID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindTransactionsByReservationID", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestRecordTransaction_Success() {
	ctx := context.Background()
	res := suite.reservation(domain.StatusConfirmed, 500_000)

	suite.mockRepo.On("FindReservationByID", ctx, res.ReservationID).Return(res, nil).Once()
	suite.mockRepo.On("FindTransactionsByReservationID", ctx, res.ReservationID).Return([]domain.RentalTransaction{}, nil).Once()
	suite.mockRepo.On("AppendTransaction", ctx, mock.AnythingOfType("domain.RentalTransaction"), mock.AnythingOfType("domain.Reservation"), res.Version).Return(nil).Once()

	req := dto.RecordTransactionRequest{
		Kind:   domain.KindPayment,
		Amount: dto.Money{Amount: 200_000, Currency: "COP"},
		Method: "Cash",
	}
	updated, summary, err := suite.service.RecordTransaction(ctx, suite.tenantID, res.ReservationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPartial, updated.PaymentStatus)
	suite.Equal(res.Version+1, updated.Version)
	suite.Equal(int64(300_000), summary.Outstanding.Amount)
	suite.Require().Len(suite.publisher.paymentRecorded, 1)
	suite.Equal(res.ReservationID, suite.publisher.paymentRecorded[0].ReservationID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestRecordTransaction_Conflict() {
	ctx := context.Background()
	res := suite.reservation(domain.StatusConfirmed, 500_000)

	suite.mockRepo.On("FindReservationByID", ctx, res.ReservationID).Return(res, nil).Once()
	suite.mockRepo.On("FindTransactionsByReservationID", ctx, res.ReservationID).Return([]domain.RentalTransaction{}, nil).Once()
	suite.mockRepo.On("AppendTransaction", ctx, mock.Anything, mock.Anything, res.Version).Return(apperrors.ErrConflict).Once()

	req := dto.RecordTransactionRequest{
		Kind:   domain.KindPayment,
		Amount: dto.Money{Amount: 200_000, Currency: "COP"},
		Method: "Cash",
	}
	_, _, err := suite.service.RecordTransaction(ctx, suite.tenantID, res.ReservationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Empty(suite.publisher.paymentRecorded, "no event on failed write")
}

func (suite *ReconciliationServiceTestSuite) TestRecordTransaction_InvalidAmount() {
	ctx := context.Background()
	res := suite.reservation(domain.StatusConfirmed, 500_000)

	suite.mockRepo.On("FindReservationByID", ctx, res.ReservationID).Return(res, nil).Once()
	suite.mockRepo.On("FindTransactionsByReservationID", ctx, res.ReservationID).Return([]domain.RentalTransaction{}, nil).Once()

	req := dto.RecordTransactionRequest{
		Kind:   domain.KindPayment,
		Amount: dto.Money{Amount: 0, Currency: "COP"},
		Method: "Cash",
	}
	_, _, err := suite.service.RecordTransaction(ctx, suite.tenantID, res.ReservationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.mockRepo.AssertNotCalled(suite.T(), "AppendTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestRecordTransaction_CancelledAcceptsRefundOnly() {
	ctx := context.Background()
	res := suite.reservation(domain.StatusCancelled, 500_000)

	suite.mockRepo.On("FindReservationByID", ctx, res.ReservationID).Return(res, nil).Twice()
	suite.mockRepo.On("FindTransactionsByReservationID", ctx, res.ReservationID).Return([]domain.RentalTransaction{
		{Kind: domain.KindPayment, Amount: domain.NewMoney(200_000, "COP")},
	}, nil).Twice()
	suite.mockRepo.On("AppendTransaction", ctx, mock.Anything, mock.Anything, res.Version).Return(nil).Once()

	payment := dto.RecordTransactionRequest{Kind: domain.KindPayment, Amount: dto.Money{Amount: 100, Currency: "COP"}, Method: "Cash"}
	_, _, err := suite.service.RecordTransaction(ctx, suite.tenantID, res.ReservationID, payment, suite.userID)
	suite.ErrorIs(err, apperrors.ErrTerminalReservation)

	refund := dto.RecordTransactionRequest{Kind: domain.KindRefund, Amount: dto.Money{Amount: 200_000, Currency: "COP"}, Method: "Transfer"}
	updated, _, err := suite.service.RecordTransaction(ctx, suite.tenantID, res.ReservationID, refund, suite.userID)
	suite.Require().NoError(err)
	suite.Equal(domain.PaymentCancelled, updated.PaymentStatus, "cancelled status is never overwritten by the ledger")
}

func (suite *ReconciliationServiceTestSuite) TestChangeStatus_Success() {
	ctx := context.Background()
	res := suite.reservation(domain.StatusRequested, 500_000)

	suite.mockRepo.On("FindReservationByID", ctx, res.ReservationID).Return(res, nil).Once()
	suite.mockRepo.On("FindTransactionsByReservationID", ctx, res.ReservationID).Return([]domain.RentalTransaction{}, nil).Once()
	suite.mockRepo.On("UpdateReservationState", ctx, mock.AnythingOfType("domain.Reservation"), res.Version).Return(nil).Once()

	updated, err := suite.service.ChangeStatus(ctx, suite.tenantID, res.ReservationID, dto.ChangeStatusRequest{Target: domain.StatusConfirmed}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusConfirmed, updated.Status)
	suite.Equal(res.Version+1, updated.Version)
	suite.Require().Len(suite.publisher.statusChanged, 1)
	suite.Equal(domain.StatusRequested, suite.publisher.statusChanged[0].From)
	suite.Equal(domain.StatusConfirmed, suite.publisher.statusChanged[0].To)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestChangeStatus_PaymentRequired() {
	ctx := context.Background()
	res := suite.reservation(domain.StatusConfirmed, 500_000)

	suite.mockRepo.On("FindReservationByID", ctx, res.ReservationID).Return(res, nil).Once()
	suite.mockRepo.On("FindTransactionsByReservationID", ctx, res.ReservationID).Return([]domain.RentalTransaction{}, nil).Once()

	_, err := suite.service.ChangeStatus(ctx, suite.tenantID, res.ReservationID, dto.ChangeStatusRequest{Target: domain.StatusDelivered}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPaymentRequired)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateReservationState", mock.Anything, mock.Anything, mock.Anything)
	suite.Empty(suite.publisher.statusChanged)
}

func (suite *ReconciliationServiceTestSuite) TestChangeStatus_PartialPaymentRequiresOverride() {
	ctx := context.Background()
	res := suite.reservation(domain.StatusConfirmed, 500_000)

	suite.mockRepo.On("FindReservationByID", ctx, res.ReservationID).Return(res, nil).Twice()
	suite.mockRepo.On("FindTransactionsByReservationID", ctx, res.ReservationID).Return([]domain.RentalTransaction{
		{Kind: domain.KindPayment, Amount: domain.NewMoney(200_000, "COP")},
	}, nil).Twice()
	suite.mockRepo.On("UpdateReservationState", ctx, mock.AnythingOfType("domain.Reservation"), res.Version).Return(nil).Once()

	_, err := suite.service.ChangeStatus(ctx, suite.tenantID, res.ReservationID, dto.ChangeStatusRequest{Target: domain.StatusDelivered}, suite.userID)
	suite.ErrorIs(err, apperrors.ErrPaymentRequired)

	updated, err := suite.service.ChangeStatus(ctx, suite.tenantID, res.ReservationID, dto.ChangeStatusRequest{Target: domain.StatusDelivered, AllowUnpaidDelivery: true}, suite.userID)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusDelivered, updated.Status)
	suite.Equal(domain.PaymentPartial, updated.PaymentStatus)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestChangeStatus_Conflict() {
	ctx := context.Background()
	res := suite.reservation(domain.StatusRequested, 500_000)

	suite.mockRepo.On("FindReservationByID", ctx, res.ReservationID).Return(res, nil).Once()
	suite.mockRepo.On("FindTransactionsByReservationID", ctx, res.ReservationID).Return([]domain.RentalTransaction{}, nil).Once()
	suite.mockRepo.On("UpdateReservationState", ctx, mock.Anything, res.Version).Return(apperrors.ErrConflict).Once()

	_, err := suite.service.ChangeStatus(ctx, suite.tenantID, res.ReservationID, dto.ChangeStatusRequest{Target: domain.StatusConfirmed}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Empty(suite.publisher.statusChanged)
}

func (suite *ReconciliationServiceTestSuite) TestChangeStatus_InvalidTransition() {
	ctx := context.Background()
	res := suite.reservation(domain.StatusReturned, 500_000)

	suite.mockRepo.On("FindReservationByID", ctx, res.ReservationID).Return(res, nil).Once()
	suite.mockRepo.On("FindTransactionsByReservationID", ctx, res.ReservationID).Return([]domain.RentalTransaction{}, nil).Once()

	_, err := suite.service.ChangeStatus(ctx, suite.tenantID, res.ReservationID, dto.ChangeStatusRequest{Target: domain.StatusConfirmed}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
