package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/cafehnd/cafehnd_backend/internal/apperrors"
	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
	"github.com/cafehnd/cafehnd_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PurchaseHandlerTestSuite struct {
	handlerSuite
}

var purchaseDate = time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)

func purchaseBody() map[string]any {
	return map[string]any{
		"fecha":      "2025-09-15",
		"exp_qic":    "048",
		"cosecha":    "2025-2026",
		"sacos46l":   20,
		"valorlemp":  5000,
		"sacos46c":   0,
		"valorelemp": 0,
	}
}

func washedEntry() domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:            11,
		ReportNumber:       "0001/048",
		SequenceNumber:     "1",
		ExporterCode:       "048",
		HarvestYear:        "2025-2026",
		PurchaseDate:       purchaseDate,
		SacksWashed:        decimal.NewFromInt(20),
		ValueWashedLocal:   decimal.NewFromInt(5000),
		SacksUnwashed:      decimal.Zero,
		ValueUnwashedLocal: decimal.Zero,
		Class:              domain.PurchaseClassWashed,
		ThisEntrySacks:     decimal.NewFromInt(20),
		CreatedAt:          time.Now().UTC(),
	}
}

// --- Register ---

func (s *PurchaseHandlerTestSuite) TestRegisterPurchase_Success() {
	userID := uuid.NewString()
	actor := domain.Identity{UserID: userID, Role: domain.RoleExporterEditor, ExporterCode: "048"}
	registration := &domain.PurchaseRegistration{
		ReportNumber: "0001/048",
		Entries:      []domain.LedgerEntry{washedEntry()},
		PayDetail:    domain.CalculatePayDetail(decimal.NewFromInt(20), decimal.RequireFromString("24.56"), decimal.RequireFromString("10.50")),
	}

	s.purchaseSvc.On("RegisterPurchase", mock.Anything, mock.MatchedBy(func(sub domain.PurchaseSubmission) bool {
		return sub.ExporterCode == "048" &&
			sub.PurchaseDate.Equal(purchaseDate) &&
			sub.SacksWashed.Equal(decimal.NewFromInt(20)) &&
			sub.ValueWashedLocal.Equal(decimal.NewFromInt(5000)) &&
			sub.SacksUnwashed.IsZero()
	}), actor).Return(registration, nil).Once()

	w := s.do(http.MethodPost, "/registro_compras_nac/", s.tokenFor(userID, domain.RoleExporterEditor, "048"), purchaseBody())

	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.PurchaseRegistrationResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(dto.MsgPurchaseRegistered, resp.Message)
	s.Equal("0001/048", resp.ReportNumber)
	s.Require().Len(resp.Entries, 1)
	s.Equal("Lavado", resp.Entries[0].Class)
	s.Equal("2025-09-15", resp.Entries[0].Date)
	s.True(decimal.RequireFromString("5157.60").Equal(resp.PayDetail.Amount), resp.PayDetail.Amount.String())
	s.True(decimal.RequireFromString("24.56").Equal(resp.PayDetail.ExchangeRate))
	s.purchaseSvc.AssertExpectations(s.T())
}

func (s *PurchaseHandlerTestSuite) TestRegisterPurchase_ServiceErrors() {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"rate not found", apperrors.ErrRateNotFound, http.StatusBadRequest, "RATE_NOT_FOUND"},
		{"no valid data", apperrors.ErrNoValidData, http.StatusBadRequest, "NO_VALID_DATA"},
		{"other exporter", apperrors.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"store fault", errors.New("connection reset by peer"), http.StatusInternalServerError, "STORE_FAULT"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			s.purchaseSvc.On("RegisterPurchase", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			w := s.do(http.MethodPost, "/registro_compras_nac/", s.tokenFor("admin-1", domain.RoleAdmin, ""), purchaseBody())

			s.assertError(w, tt.status, tt.code)
		})
	}
}

func (s *PurchaseHandlerTestSuite) TestRegisterPurchase_StoreFaultHidesDetails() {
	s.purchaseSvc.On("RegisterPurchase", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("pq: relation does not exist")).Once()

	w := s.do(http.MethodPost, "/registro_compras_nac/", s.tokenFor("admin-1", domain.RoleAdmin, ""), purchaseBody())

	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal("Failed to register purchase", s.errorBody(w)["error"])
}

func (s *PurchaseHandlerTestSuite) TestRegisterPurchase_ManagerIsReadOnly() {
	w := s.do(http.MethodPost, "/registro_compras_nac/", s.tokenFor("mgr-1", domain.RoleManager, "048"), purchaseBody())

	s.assertError(w, http.StatusForbidden, "FORBIDDEN")
	s.purchaseSvc.AssertNotCalled(s.T(), "RegisterPurchase", mock.Anything, mock.Anything, mock.Anything)
}

func (s *PurchaseHandlerTestSuite) TestRegisterPurchase_RequiresToken() {
	w := s.do(http.MethodPost, "/registro_compras_nac/", "", purchaseBody())

	s.assertError(w, http.StatusUnauthorized, "UNAUTHORIZED")
}

func (s *PurchaseHandlerTestSuite) TestRegisterPurchase_InvalidBody() {
	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"bad date", func(b map[string]any) { b["fecha"] = "15/09/2025" }},
		{"missing date", func(b map[string]any) { delete(b, "fecha") }},
		{"bad exporter code", func(b map[string]any) { b["exp_qic"] = "04 8" }},
		{"missing exporter code", func(b map[string]any) { delete(b, "exp_qic") }},
		{"missing harvest year", func(b map[string]any) { delete(b, "cosecha") }},
		{"empty harvest year", func(b map[string]any) { b["cosecha"] = "" }},
		{"non numeric sacks", func(b map[string]any) { b["sacos46l"] = "veinte" }},
	}
	token := s.tokenFor("admin-1", domain.RoleAdmin, "")
	for _, tt := range tests {
		s.Run(tt.name, func() {
			body := purchaseBody()
			tt.mutate(body)

			w := s.do(http.MethodPost, "/registro_compras_nac/", token, body)

			s.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR")
		})
	}
	s.purchaseSvc.AssertNotCalled(s.T(), "RegisterPurchase", mock.Anything, mock.Anything, mock.Anything)
}

// --- Pay detail preview ---

func (s *PurchaseHandlerTestSuite) TestCalculatePayDetail() {
	detail := domain.CalculatePayDetail(decimal.NewFromInt(25), decimal.RequireFromString("24.56"), decimal.RequireFromString("10.50"))
	s.purchaseSvc.On("CalculatePayDetail", mock.Anything, mock.MatchedBy(func(total decimal.Decimal) bool {
		return total.Equal(decimal.NewFromInt(25))
	}), purchaseDate).Return(&detail, nil).Once()

	body := purchaseBody()
	body["sacos46c"] = 5
	body["valorelemp"] = 1000
	w := s.do(http.MethodPost, "/registro_compras_nac/calcular_detalle_pago", s.tokenFor("u-1", domain.RoleManager, ""), body)

	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.PayDetailResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.True(decimal.RequireFromString("6447").Equal(resp.Amount), resp.Amount.String())
	s.True(decimal.NewFromInt(25).Equal(resp.TotalSacks))
}

func (s *PurchaseHandlerTestSuite) TestCalculatePayDetail_RateNotFound() {
	s.purchaseSvc.On("CalculatePayDetail", mock.Anything, mock.Anything, purchaseDate).Return(nil, apperrors.ErrRateNotFound).Once()

	w := s.do(http.MethodPost, "/registro_compras_nac/calcular_detalle_pago", s.tokenFor("u-1", domain.RoleManager, ""), purchaseBody())

	s.assertError(w, http.StatusBadRequest, "RATE_NOT_FOUND")
}

// --- Readers ---

func (s *PurchaseHandlerTestSuite) TestPreviewNextReportNumber() {
	s.purchaseSvc.On("PreviewNextReportNumber", mock.Anything, "048").Return("0007/048", nil).Once()

	w := s.do(http.MethodGet, "/registro_compras_nac/proximo_reg_compa?exp_qic=048", s.tokenFor("u-1", domain.RoleExporterEditor, "048"), nil)

	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"proximo_reg_compa":"0007/048"}`, w.Body.String())
}

func (s *PurchaseHandlerTestSuite) TestPreviewNextReportNumber_MissingCode() {
	w := s.do(http.MethodGet, "/registro_compras_nac/proximo_reg_compa", s.tokenFor("u-1", domain.RoleExporterEditor, "048"), nil)

	s.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR")
}

func (s *PurchaseHandlerTestSuite) TestListPurchasesByDate() {
	s.purchaseSvc.On("ListPurchasesByDate", mock.Anything, purchaseDate, "048").Return([]domain.LedgerEntry{washedEntry()}, nil).Once()

	w := s.do(http.MethodGet, "/registro_compras_nac/por_fecha?fecha=2025-09-15&exp_qic=048", s.tokenFor("u-1", domain.RoleManager, ""), nil)

	s.Require().Equal(http.StatusOK, w.Code)
	var resp []dto.LedgerEntryResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().Len(resp, 1)
	s.Equal("0001/048", resp[0].ReportNumber)
}

func (s *PurchaseHandlerTestSuite) TestListPurchasesByDate_NoneFound() {
	s.purchaseSvc.On("ListPurchasesByDate", mock.Anything, purchaseDate, "048").Return([]domain.LedgerEntry{}, nil).Once()

	w := s.do(http.MethodGet, "/registro_compras_nac/por_fecha?fecha=2025-09-15&exp_qic=048", s.tokenFor("u-1", domain.RoleManager, ""), nil)

	s.assertError(w, http.StatusNotFound, "NOT_FOUND")
}

func (s *PurchaseHandlerTestSuite) TestListPurchases_Paging() {
	s.purchaseSvc.On("ListPurchases", mock.Anything, 10, 20).Return([]domain.LedgerEntry{washedEntry()}, nil).Once()

	w := s.do(http.MethodGet, "/registro_compras_nac/?skip=20&limit=10", s.tokenFor("u-1", domain.RoleManager, ""), nil)

	s.Equal(http.StatusOK, w.Code)
	s.purchaseSvc.AssertExpectations(s.T())
}

func (s *PurchaseHandlerTestSuite) TestListPurchases_Defaults() {
	s.purchaseSvc.On("ListPurchases", mock.Anything, 100, 0).Return([]domain.LedgerEntry{}, nil).Once()

	w := s.do(http.MethodGet, "/registro_compras_nac/", s.tokenFor("u-1", domain.RoleManager, ""), nil)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())
}

func (s *PurchaseHandlerTestSuite) TestListPurchases_ExplicitZeroLimit() {
	s.purchaseSvc.On("ListPurchases", mock.Anything, 0, 0).Return([]domain.LedgerEntry{}, nil).Once()

	w := s.do(http.MethodGet, "/registro_compras_nac/?limit=0", s.tokenFor("u-1", domain.RoleManager, ""), nil)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())
	s.purchaseSvc.AssertExpectations(s.T())
}

func (s *PurchaseHandlerTestSuite) TestListPurchases_BadPaging() {
	s.purchaseSvc.On("ListPurchases", mock.Anything, 10, -1).Return(nil, apperrors.ErrValidation).Once()

	w := s.do(http.MethodGet, "/registro_compras_nac/?skip=-1&limit=10", s.tokenFor("u-1", domain.RoleManager, ""), nil)
	s.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR")

	w = s.do(http.MethodGet, "/registro_compras_nac/?skip=abc", s.tokenFor("u-1", domain.RoleManager, ""), nil)
	s.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR")
}

func (s *PurchaseHandlerTestSuite) TestGetPurchase() {
	entry := washedEntry()
	s.purchaseSvc.On("GetPurchase", mock.Anything, int64(11)).Return(&entry, nil).Once()

	w := s.do(http.MethodGet, "/registro_compras_nac/11", s.tokenFor("u-1", domain.RoleManager, ""), nil)

	s.Require().Equal(http.StatusOK, w.Code)
	var resp dto.LedgerEntryResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(int64(11), resp.EntryID)
	s.True(decimal.NewFromInt(20).Equal(resp.ThisEntrySacks))
}

func (s *PurchaseHandlerTestSuite) TestGetPurchase_NotFoundAndBadID() {
	s.purchaseSvc.On("GetPurchase", mock.Anything, int64(404)).Return(nil, apperrors.ErrNotFound).Once()
	token := s.tokenFor("u-1", domain.RoleManager, "")

	s.assertError(s.do(http.MethodGet, "/registro_compras_nac/404", token, nil), http.StatusNotFound, "NOT_FOUND")
	s.assertError(s.do(http.MethodGet, "/registro_compras_nac/once", token, nil), http.StatusBadRequest, "VALIDATION_ERROR")
}

// --- Export ---

func (s *PurchaseHandlerTestSuite) TestExportPurchases() {
	workbook := []byte("PK\x03\x04fake")
	s.purchaseSvc.On("ExportPurchases", mock.Anything, mock.MatchedBy(func(f domain.PurchaseExportFilter) bool {
		return f.From.Equal(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)) &&
			f.To.Equal(time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)) &&
			f.ExporterCode != nil && *f.ExporterCode == "048"
	})).Return(workbook, nil).Once()

	w := s.do(http.MethodGet, "/registro_compras_nac/exportar?desde=2025-09-01&hasta=2025-09-30&exp_qic=048", s.tokenFor("u-1", domain.RoleManager, ""), nil)

	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	s.Contains(w.Header().Get("Content-Disposition"), "compras_2025-09-01_2025-09-30.xlsx")
	s.Equal(workbook, w.Body.Bytes())
}

func (s *PurchaseHandlerTestSuite) TestExportPurchases_MissingRange() {
	w := s.do(http.MethodGet, "/registro_compras_nac/exportar?desde=2025-09-01", s.tokenFor("u-1", domain.RoleManager, ""), nil)

	s.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR")
	s.purchaseSvc.AssertNotCalled(s.T(), "ExportPurchases", mock.Anything, mock.Anything)
}

func TestPurchaseHandler(t *testing.T) {
	suite.Run(t, new(PurchaseHandlerTestSuite))
}
