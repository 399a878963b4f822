package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/loteriaimperatriz/caixa_backend/internal/apperrors"
	"github.com/loteriaimperatriz/caixa_backend/internal/core/domain"
	portssvc "github.com/loteriaimperatriz/caixa_backend/internal/core/ports/services"
	"github.com/loteriaimperatriz/caixa_backend/internal/dto"
	"github.com/loteriaimperatriz/caixa_backend/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TillService ---
type MockTillService struct {
	mock.Mock
}

func (m *MockTillService) GetTillDetail(ctx context.Context, till int, date time.Time) (*domain.TillDetail, error) {
	args := m.Called(ctx, till, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TillDetail), args.Error(1)
}

func (m *MockTillService) ResolveOpeningBalance(ctx context.Context, date time.Time, till int) (decimal.Decimal, error) {
	args := m.Called(ctx, date, till)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTillService) AddMovement(ctx context.Context, till int, req dto.AddMovementRequest) (*domain.Movement, error) {
	args := m.Called(ctx, till, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movement), args.Error(1)
}

func (m *MockTillService) DeleteMovement(ctx context.Context, till int, movementID string) error {
	args := m.Called(ctx, till, movementID)
	return args.Error(0)
}

func (m *MockTillService) SaveClosing(ctx context.Context, till int, req dto.SaveClosingRequest) (*domain.ClosingView, error) {
	args := m.Called(ctx, till, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosingView), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.TillSvcFacade = (*MockTillService)(nil)

// --- Test Suite ---
type TillHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockTillService *MockTillService
}

func (suite *TillHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	decimal.MarshalJSONWithoutQuotes = true
	dto.RegisterValidations()
	suite.router = gin.New()
	suite.mockTillService = new(MockTillService)

	noLimit := func(c *gin.Context) { c.Next() }
	api := suite.router.Group("/api")
	handlers.RegisterTillRoutes(api, suite.mockTillService, noLimit)
}

func (suite *TillHandlerTestSuite) serve(method, url, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TillHandlerTestSuite) decode(w *httptest.ResponseRecorder) dto.APIResponse {
	var envelope dto.APIResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

// --- Test Cases ---

func (suite *TillHandlerTestSuite) TestGetTillDetail_Success() {
	date, _ := domain.ParseDate("2024-03-15")
	detail := &domain.TillDetail{
		Till:           2,
		Date:           date,
		OpeningBalance: decimal.NewFromFloat(842.50),
		Supplies: []domain.Movement{
			{MovementID: uuid.NewString(), Date: date, Till: 2, Kind: domain.KindSupply, Description: "Troco", Amount: decimal.NewFromInt(100), Sequence: 1},
		},
		Withdrawals: []domain.Movement{},
	}

	suite.mockTillService.On("GetTillDetail", mock.Anything, 2, date).Return(detail, nil).Once()

	w := suite.serve(http.MethodGet, "/api/caixa/2?data=2024-03-15", "")

	suite.Equal(http.StatusOK, w.Code)
	envelope := suite.decode(w)
	suite.True(envelope.Success)
	suite.Empty(envelope.Error)

	data := envelope.Data.(map[string]any)
	suite.Equal(float64(2), data["caixa"])
	suite.Equal("2024-03-15", data["data"])
	suite.Equal(842.50, data["saldo_inicial"])
	suite.Len(data["suprimentos"], 1)
	suite.Empty(data["sangrias"])
	suite.Nil(data["fechamento"])
	suite.mockTillService.AssertExpectations(suite.T())
}

func (suite *TillHandlerTestSuite) TestGetTillDetail_TillOutOfRange() {
	w := suite.serve(http.MethodGet, "/api/caixa/7?data=2024-03-15", "")

	suite.Equal(http.StatusBadRequest, w.Code)
	envelope := suite.decode(w)
	suite.False(envelope.Success)
	suite.NotEmpty(envelope.Error)
	suite.mockTillService.AssertNotCalled(suite.T(), "GetTillDetail", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TillHandlerTestSuite) TestGetTillDetail_BadDate() {
	w := suite.serve(http.MethodGet, "/api/caixa/2?data=15-03-2024", "")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.False(suite.decode(w).Success)
}

func (suite *TillHandlerTestSuite) TestAddMovement_Success() {
	date, _ := domain.ParseDate("2024-03-15")
	movement := &domain.Movement{
		MovementID:  uuid.NewString(),
		Date:        date,
		Till:        1,
		Kind:        domain.KindSupply,
		Description: "Reforço de troco",
		Amount:      decimal.NewFromFloat(150.50),
		Sequence:    3,
		CreatedAt:   time.Now().UTC(),
	}

	suite.mockTillService.On("AddMovement", mock.Anything, 1, mock.MatchedBy(func(req dto.AddMovementRequest) bool {
		return req.Data == "2024-03-15" &&
			req.Tipo == "suprimento" &&
			req.Descricao == "Reforço de troco" &&
			req.Valor.Equal(decimal.NewFromFloat(150.50))
	})).Return(movement, nil).Once()

	body := `{"data":"2024-03-15","tipo":"suprimento","descricao":"Reforço de troco","valor":150.50}`
	w := suite.serve(http.MethodPost, "/api/caixa/1/movimentacao", body)

	suite.Equal(http.StatusCreated, w.Code)
	envelope := suite.decode(w)
	suite.True(envelope.Success)

	data := envelope.Data.(map[string]any)
	suite.Equal(movement.MovementID, data["id"])
	suite.Equal("suprimento", data["tipo"])
	suite.Equal(float64(3), data["ordem"])
	suite.mockTillService.AssertExpectations(suite.T())
}

func (suite *TillHandlerTestSuite) TestAddMovement_RejectsUnknownKind() {
	body := `{"data":"2024-03-15","tipo":"deposito","descricao":"x","valor":10}`
	w := suite.serve(http.MethodPost, "/api/caixa/1/movimentacao", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.False(suite.decode(w).Success)
	suite.mockTillService.AssertNotCalled(suite.T(), "AddMovement", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TillHandlerTestSuite) TestAddMovement_RejectsNonPositiveAmount() {
	body := `{"data":"2024-03-15","tipo":"sangria","descricao":"x","valor":0}`
	w := suite.serve(http.MethodPost, "/api/caixa/1/movimentacao", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.False(suite.decode(w).Success)
	suite.mockTillService.AssertNotCalled(suite.T(), "AddMovement", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TillHandlerTestSuite) TestDeleteMovement_Success() {
	movementID := uuid.NewString()
	suite.mockTillService.On("DeleteMovement", mock.Anything, 4, movementID).Return(nil).Once()

	w := suite.serve(http.MethodDelete, "/api/caixa/4/movimentacao/"+movementID, "")

	suite.Equal(http.StatusOK, w.Code)
	suite.True(suite.decode(w).Success)
	suite.mockTillService.AssertExpectations(suite.T())
}

func (suite *TillHandlerTestSuite) TestDeleteMovement_NotFound() {
	movementID := uuid.NewString()
	suite.mockTillService.On("DeleteMovement", mock.Anything, 4, movementID).Return(apperrors.ErrNotFound).Once()

	w := suite.serve(http.MethodDelete, "/api/caixa/4/movimentacao/"+movementID, "")

	suite.Equal(http.StatusNotFound, w.Code)
	suite.False(suite.decode(w).Success)
}

func (suite *TillHandlerTestSuite) TestSaveClosing_Success() {
	date, _ := domain.ParseDate("2024-03-15")
	view := &domain.ClosingView{
		Closing: domain.Closing{
			ClosingID:      uuid.NewString(),
			Date:           date,
			Till:           5,
			OpeningBalance: decimal.NewFromInt(500),
			MachineValue:   decimal.NewFromInt(700),
			CreatedAt:      time.Now().UTC(),
		},
		TotalSupplies:     decimal.NewFromInt(300),
		TotalWithdrawals:  decimal.NewFromInt(50),
		CalculatedBalance: decimal.NewFromInt(750),
		Discrepancy:       decimal.NewFromInt(-50),
		Status:            domain.StatusVerify,
	}

	suite.mockTillService.On("SaveClosing", mock.Anything, 5, mock.MatchedBy(func(req dto.SaveClosingRequest) bool {
		return req.Data == "2024-03-15" &&
			req.ValorMaquina != nil && req.ValorMaquina.Equal(decimal.NewFromInt(700)) &&
			req.SaldoInicial == nil
	})).Return(view, nil).Once()

	body := `{"data":"2024-03-15","valor_maquina":700}`
	w := suite.serve(http.MethodPost, "/api/caixa/5/fechamento", body)

	suite.Equal(http.StatusOK, w.Code)
	envelope := suite.decode(w)
	suite.True(envelope.Success)

	data := envelope.Data.(map[string]any)
	suite.Equal("VERIFICAR", data["status"])
	suite.Equal(float64(-50), data["diferenca"])
	suite.Equal(float64(750), data["saldo_calculado"])
	suite.Contains(data, "observacoes")
	suite.Equal("", data["observacoes"])
	suite.mockTillService.AssertExpectations(suite.T())
}

func (suite *TillHandlerTestSuite) TestSaveClosing_RejectsNegativeMachineValue() {
	body := `{"data":"2024-03-15","valor_maquina":-1}`
	w := suite.serve(http.MethodPost, "/api/caixa/5/fechamento", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.False(suite.decode(w).Success)
	suite.mockTillService.AssertNotCalled(suite.T(), "SaveClosing", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TillHandlerTestSuite) TestSaveClosing_MissingDate() {
	body := `{"valor_maquina":700}`
	w := suite.serve(http.MethodPost, "/api/caixa/5/fechamento", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.False(suite.decode(w).Success)
}

func TestTillHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TillHandlerTestSuite))
}
