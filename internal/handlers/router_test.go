package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"time"

	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
	portssvc "github.com/cafehnd/cafehnd_backend/internal/core/ports/services"
	"github.com/cafehnd/cafehnd_backend/internal/handlers"
	"github.com/cafehnd/cafehnd_backend/internal/platform/config"
	"github.com/cafehnd/cafehnd_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

// handlerSuite builds the full router over mocked services.
type handlerSuite struct {
	suite.Suite
	router           *gin.Engine
	cfg              *config.Config
	purchaseSvc      *MockPurchaseService
	marketCloseSvc   *MockMarketCloseService
	userSvc          *MockUserService
	accessRequestSvc *MockAccessRequestService
}

func (s *handlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.purchaseSvc = new(MockPurchaseService)
	s.marketCloseSvc = new(MockMarketCloseService)
	s.userSvc = new(MockUserService)
	s.accessRequestSvc = new(MockAccessRequestService)

	if s.cfg == nil {
		s.cfg = &config.Config{
			JWTSecret:              testJWTSecret,
			JWTIssuer:              "cafehnd-test",
			IsProduction:           true,
			CORSAllowedOrigins:     []string{"http://localhost:3000"},
			LoginRateLimit:         "1000-M",
			AccessRequestRateLimit: "1000-M",
		}
	}

	s.router = gin.New()
	err := handlers.RegisterRoutes(s.router, s.cfg, &portssvc.ServiceContainer{
		User:          s.userSvc,
		AccessRequest: s.accessRequestSvc,
		MarketClose:   s.marketCloseSvc,
		Purchase:      s.purchaseSvc,
	})
	s.Require().NoError(err)
}

// tokenFor creates a signed token for a user with the given role.
func (s *handlerSuite) tokenFor(userID string, role domain.Role, exporterCode string) string {
	user := domain.User{UserID: userID, Role: role}
	if exporterCode != "" {
		user.ExporterCode = &exporterCode
	}
	token, err := utils.GenerateJWT(user, testJWTSecret, time.Hour, "cafehnd-test")
	s.Require().NoError(err)
	return token
}

// do serves a request, attaching token when non-empty and JSON-encoding body when non-nil.
func (s *handlerSuite) do(method, url, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// doWithAuthHeader serves a bodiless request with a raw Authorization header.
func (s *handlerSuite) doWithAuthHeader(method, url, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, nil)
	req.Header.Set("Authorization", header)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// errorBody decodes an error response.
func (s *handlerSuite) errorBody(w *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (s *handlerSuite) assertError(w *httptest.ResponseRecorder, status int, code string) {
	s.Equal(status, w.Code, w.Body.String())
	s.Equal(code, s.errorBody(w)["code"])
}
