package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/smartbash/brgy_dispatch/internal/config"
	"github.com/smartbash/brgy_dispatch/internal/models"
	"github.com/smartbash/brgy_dispatch/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
)

const (
	testJWTSecret     = "test-jwt-secret"
	testAPIKey        = "test-api-key"
	testOfficialEmail = "captain@brgy.example"
	testServiceEmail  = "bfp@station.example"
)

type handlerMocks struct {
	dispatch  *mocks.MockDispatchService
	official  *mocks.MockOfficialService
	responder *mocks.MockResponderService
}

// newTestHandler builds a Handler on mocked services behind a test router
func newTestHandler(t *testing.T) (*Handler, handlerMocks, *gin.Engine) {
	ctrl := gomock.NewController(t)
	m := handlerMocks{
		dispatch:  mocks.NewMockDispatchService(ctrl),
		official:  mocks.NewMockOfficialService(ctrl),
		responder: mocks.NewMockResponderService(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys:   []string{testAPIKey},
		JWTSecret: testJWTSecret,
	}

	handler := NewHandler(m.dispatch, m.official, m.responder, logger, cfg)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return handler, m, router
}

func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func bearerFor(t *testing.T, claims jwt.MapClaims, secret string) map[string]string {
	t.Helper()
	if _, ok := claims["exp"]; !ok {
		claims["exp"] = time.Now().Add(time.Hour).Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func officialHeaders(t *testing.T) map[string]string {
	return bearerFor(t, jwt.MapClaims{"email": testOfficialEmail}, testJWTSecret)
}

func serviceHeaders(t *testing.T) map[string]string {
	return bearerFor(t, jwt.MapClaims{"sub": testServiceEmail}, testJWTSecret)
}

func testOfficial() *models.BrgyOfficial {
	return &models.BrgyOfficial{ID: 1, Email: testOfficialEmail, Barangay: "San Isidro", IsActive: true}
}

func testService() *models.ResponseService {
	return &models.ResponseService{ID: 7, Name: "BFP Station 3", Email: testServiceEmail, Location: "San Isidro", IsActive: true}
}

func expectOfficial(m handlerMocks) *models.BrgyOfficial {
	official := testOfficial()
	m.official.EXPECT().ResolveOfficial(gomock.Any(), testOfficialEmail).Return(official, nil)
	return official
}

func expectService(m handlerMocks) *models.ResponseService {
	svc := testService()
	m.responder.EXPECT().ResolveService(gomock.Any(), testServiceEmail).Return(svc, nil)
	return svc
}

func TestBearerAuth_MissingToken(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, http.MethodGet, "/api/v1/officials/dashboard", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "bearer token required")
}

func TestBearerAuth_WrongSecret(t *testing.T) {
	_, _, router := newTestHandler(t)

	headers := bearerFor(t, jwt.MapClaims{"email": testOfficialEmail}, "another-secret")
	w := makeRequest(router, http.MethodGet, "/api/v1/officials/dashboard", nil, headers)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or expired token")
}

func TestBearerAuth_ExpiredToken(t *testing.T) {
	_, _, router := newTestHandler(t)

	headers := bearerFor(t, jwt.MapClaims{
		"email": testOfficialEmail,
		"exp":   time.Now().Add(-time.Minute).Unix(),
	}, testJWTSecret)
	w := makeRequest(router, http.MethodGet, "/api/v1/officials/dashboard", nil, headers)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBearerAuth_TokenWithoutEmail(t *testing.T) {
	_, _, router := newTestHandler(t)

	headers := bearerFor(t, jwt.MapClaims{"role": "official"}, testJWTSecret)
	w := makeRequest(router, http.MethodGet, "/api/v1/officials/dashboard", nil, headers)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token claims")
}

func TestOfficialAuth_Rejected(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.official.EXPECT().ResolveOfficial(gomock.Any(), testOfficialEmail).
		Return(nil, fmt.Errorf("service: %w", models.ErrUnauthorized))

	w := makeRequest(router, http.MethodGet, "/api/v1/officials/dashboard", nil, officialHeaders(t))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOfficialAuth_LookupFailure(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.official.EXPECT().ResolveOfficial(gomock.Any(), testOfficialEmail).
		Return(nil, errors.New("db down"))

	w := makeRequest(router, http.MethodGet, "/api/v1/officials/dashboard", nil, officialHeaders(t))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestDispatchReport_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	expectOfficial(m)
	m.dispatch.EXPECT().DispatchReport(gomock.Any(), int64(42), false).Return(&models.DispatchResult{
		Status:                models.ReportInProgress,
		ReportCountAtLocation: 3,
		Summary: models.DispatchSummary{
			ServicesMatched:      2,
			NotificationsCreated: 2,
			SMSSent:              1,
			SMSFailed:            1,
			Errors:               []string{"Rescue 1: provider rejected message"},
		},
	}, nil)

	w := makeRequest(router, http.MethodPost, "/api/v1/officials/reports/42/dispatch", nil, officialHeaders(t))

	require.Equal(t, http.StatusOK, w.Code)
	var resp DispatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "In Progress", resp.Status)
	assert.Equal(t, 3, resp.ReportCountAtLocation)
	assert.Equal(t, 2, resp.ServicesMatched)
	assert.Equal(t, 2, resp.NotificationsCreated)
	assert.Equal(t, 1, resp.SMSSent)
	assert.Equal(t, 1, resp.SMSFailed)
	assert.Equal(t, []string{"Rescue 1: provider rejected message"}, resp.Errors)
}

func TestDispatchReport_Force(t *testing.T) {
	_, m, router := newTestHandler(t)
	expectOfficial(m)
	m.dispatch.EXPECT().DispatchReport(gomock.Any(), int64(42), true).Return(&models.DispatchResult{
		Status:                models.ReportInProgress,
		ReportCountAtLocation: 1,
	}, nil)

	w := makeRequest(router, http.MethodPost, "/api/v1/officials/reports/42/dispatch",
		strings.NewReader(`{"force":true}`), officialHeaders(t))

	require.Equal(t, http.StatusOK, w.Code)
	var resp DispatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Errors)
	assert.Empty(t, resp.Errors)
}

func TestDispatchReport_InvalidID(t *testing.T) {
	_, m, router := newTestHandler(t)

	for _, id := range []string{"abc", "0", "-5"} {
		expectOfficial(m)
		w := makeRequest(router, http.MethodPost, "/api/v1/officials/reports/"+id+"/dispatch", nil, officialHeaders(t))
		assert.Equal(t, http.StatusBadRequest, w.Code, id)
	}
}

func TestDispatchReport_InvalidBody(t *testing.T) {
	_, m, router := newTestHandler(t)
	expectOfficial(m)

	w := makeRequest(router, http.MethodPost, "/api/v1/officials/reports/42/dispatch",
		strings.NewReader(`{"force":`), officialHeaders(t))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDispatchReport_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", fmt.Errorf("service: %w", models.ErrNotFound), http.StatusNotFound},
		{"completed", fmt.Errorf("service: %w", models.ErrReportCompleted), http.StatusConflict},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, m, router := newTestHandler(t)
			expectOfficial(m)
			m.dispatch.EXPECT().DispatchReport(gomock.Any(), int64(9), false).Return(nil, tt.err)

			w := makeRequest(router, http.MethodPost, "/api/v1/officials/reports/9/dispatch", nil, officialHeaders(t))

			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestDispatchPending_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	official := expectOfficial(m)
	m.dispatch.EXPECT().DispatchPending(gomock.Any(), official).Return(&models.BulkDispatchResult{
		ReportsDispatched: 2,
		Summary: models.DispatchSummary{
			ServicesMatched:      4,
			NotificationsCreated: 4,
			SMSSent:              3,
			AlreadyNotified:      1,
		},
	}, nil)

	w := makeRequest(router, http.MethodPost, "/api/v1/officials/reports/dispatch-pending", nil, officialHeaders(t))

	require.Equal(t, http.StatusOK, w.Code)
	var resp BulkDispatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.ReportsDispatched)
	assert.Equal(t, 4, resp.ServicesMatched)
	assert.Equal(t, 3, resp.SMSSent)
	assert.Equal(t, 1, resp.AlreadyNotified)
}

func TestIncidentMap_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	official := expectOfficial(m)
	lat, lng := 14.5995, 120.9842
	m.official.EXPECT().MapClusters(gomock.Any(), official).Return([]models.Cluster{
		{ID: 3, Type: models.IncidentFire, ReportCount: 4, Latitude: &lat, Longitude: &lng, ReportIDs: []int64{3, 4, 5, 6}, Urgency: models.UrgencyCritical},
	}, nil)

	w := makeRequest(router, http.MethodGet, "/api/v1/officials/incidents/map", nil, officialHeaders(t))

	require.Equal(t, http.StatusOK, w.Code)
	var resp []ClusterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Fire", resp[0].Type)
	assert.Equal(t, "Critical", resp[0].Urgency)
	assert.Equal(t, []int64{3, 4, 5, 6}, resp[0].ReportIDs)
	assert.InDelta(t, lat, *resp[0].Latitude, 1e-9)
}

func TestDashboard_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	official := expectOfficial(m)
	m.official.EXPECT().Dashboard(gomock.Any(), official).Return(&models.ReportSummary{
		TotalReports: 5, FireReports: 3, FloodReports: 2, PendingReports: 1, InProgressReports: 2, ResolvedReports: 2,
	}, nil)

	w := makeRequest(router, http.MethodGet, "/api/v1/officials/dashboard", nil, officialHeaders(t))

	require.Equal(t, http.StatusOK, w.Code)
	var resp DashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.TotalReports)
	assert.Equal(t, 2, resp.ResolvedReports)
}

func TestRecentReports_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	official := expectOfficial(m)
	m.official.EXPECT().RecentReports(gomock.Any(), official).Return([]*models.IncidentReport{
		{ID: 2, IncidentType: models.IncidentFlood, Barangay: "San Isidro", Status: models.ReportPending},
	}, nil)

	w := makeRequest(router, http.MethodGet, "/api/v1/officials/reports/recent", nil, officialHeaders(t))

	require.Equal(t, http.StatusOK, w.Code)
	var resp []ReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Flood", resp[0].IncidentType)
	assert.Equal(t, []string{}, resp[0].Images)
}

func TestListReports_Error(t *testing.T) {
	_, m, router := newTestHandler(t)
	official := expectOfficial(m)
	m.official.EXPECT().Reports(gomock.Any(), official).Return(nil, errors.New("db down"))

	w := makeRequest(router, http.MethodGet, "/api/v1/officials/reports", nil, officialHeaders(t))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestListServices_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	official := expectOfficial(m)
	m.official.EXPECT().Services(gomock.Any(), official).Return([]*models.ResponseService{
		{ID: 7, Name: "BFP Station 3", IsActive: true},
		{ID: 8, Name: "Flood Rescue Team", IsDeleted: true},
	}, nil)

	w := makeRequest(router, http.MethodGet, "/api/v1/officials/services", nil, officialHeaders(t))

	require.Equal(t, http.StatusOK, w.Code)
	var resp []ServiceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "Fire", resp[0].Type)
	assert.Equal(t, "Active", resp[0].Status)
	assert.Equal(t, "Rescue", resp[1].Type)
	assert.Equal(t, "Inactive", resp[1].Status)
}

func TestListDispatches_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	svc := expectService(m)
	id := uuid.New()
	m.responder.EXPECT().ListDispatches(gomock.Any(), svc).Return([]*models.ServiceDispatchNotification{
		{ID: id, ServiceID: svc.ID, ReportID: 42, IncidentType: models.IncidentFire, Status: models.DispatchDispatched, SMSSent: true},
	}, nil)

	w := makeRequest(router, http.MethodGet, "/api/v1/services/dispatches", nil, serviceHeaders(t))

	require.Equal(t, http.StatusOK, w.Code)
	var resp []NotificationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, id, resp[0].ID)
	assert.Equal(t, "Dispatched", resp[0].Status)
	assert.True(t, resp[0].SMSSent)
}

func TestServiceAuth_Rejected(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.responder.EXPECT().ResolveService(gomock.Any(), testServiceEmail).
		Return(nil, fmt.Errorf("service: %w", models.ErrUnauthorized))

	w := makeRequest(router, http.MethodGet, "/api/v1/services/dispatches", nil, serviceHeaders(t))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExportDispatches_Workbook(t *testing.T) {
	_, m, router := newTestHandler(t)
	svc := expectService(m)
	smsErr := "provider timeout"
	created := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)
	first, second := uuid.New(), uuid.New()
	m.responder.EXPECT().ListDispatches(gomock.Any(), svc).Return([]*models.ServiceDispatchNotification{
		{ID: first, ServiceID: svc.ID, ReportID: 42, IncidentType: models.IncidentFire, Barangay: "San Isidro",
			LocationText: "Purok 4", Status: models.DispatchCompleted, SMSSent: true, CreatedAt: created, UpdatedAt: created},
		{ID: second, ServiceID: svc.ID, ReportID: 43, IncidentType: models.IncidentFlood, Barangay: "San Isidro",
			Status: models.DispatchDispatched, SMSError: &smsErr, CreatedAt: created, UpdatedAt: created},
	}, nil)

	w := makeRequest(router, http.MethodGet, "/api/v1/services/dispatches/export", nil, serviceHeaders(t))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxMIME, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "dispatches-7.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Dispatches")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, dispatchHeaders, rows[0])
	assert.Equal(t, first.String(), rows[1][0])
	assert.Equal(t, "42", rows[1][1])
	assert.Equal(t, "Completed", rows[1][5])
	assert.Equal(t, "Yes", rows[1][6])
	assert.Equal(t, "No", rows[2][6])
	assert.Equal(t, smsErr, rows[2][7])
	assert.Equal(t, "2026-03-01 08:30:00", rows[2][8])
}

func TestExportDispatches_Empty(t *testing.T) {
	_, m, router := newTestHandler(t)
	svc := expectService(m)
	m.responder.EXPECT().ListDispatches(gomock.Any(), svc).Return(nil, nil)

	w := makeRequest(router, http.MethodGet, "/api/v1/services/dispatches/export", nil, serviceHeaders(t))

	require.Equal(t, http.StatusOK, w.Code)
	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Dispatches")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestCompleteDispatch_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	svc := expectService(m)
	id := uuid.New()
	m.responder.EXPECT().CompleteDispatch(gomock.Any(), svc, id).Return(&models.ServiceDispatchNotification{
		ID: id, ServiceID: svc.ID, ReportID: 42, Status: models.DispatchCompleted,
	}, nil)

	w := makeRequest(router, http.MethodPost, "/api/v1/services/dispatches/"+id.String()+"/complete", nil, serviceHeaders(t))

	require.Equal(t, http.StatusOK, w.Code)
	var resp NotificationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Completed", resp.Status)
}

func TestCompleteDispatch_InvalidID(t *testing.T) {
	_, m, router := newTestHandler(t)
	expectService(m)

	w := makeRequest(router, http.MethodPost, "/api/v1/services/dispatches/not-a-uuid/complete", nil, serviceHeaders(t))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompleteDispatch_NotFound(t *testing.T) {
	_, m, router := newTestHandler(t)
	svc := expectService(m)
	id := uuid.New()
	m.responder.EXPECT().CompleteDispatch(gomock.Any(), svc, id).
		Return(nil, fmt.Errorf("service: %w", models.ErrNotFound))

	w := makeRequest(router, http.MethodPost, "/api/v1/services/dispatches/"+id.String()+"/complete", nil, serviceHeaders(t))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "dispatch not found")
}

func TestReportNotifications_APIKey(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.dispatch.EXPECT().ReportNotifications(gomock.Any(), int64(42)).Return([]*models.ServiceDispatchNotification{
		{ID: uuid.New(), ServiceID: 7, ReportID: 42, Status: models.DispatchDispatched},
		{ID: uuid.New(), ServiceID: 8, ReportID: 42, Status: models.DispatchDispatched},
	}, nil)

	w := makeRequest(router, http.MethodGet, "/api/v1/admin/reports/42/notifications", nil,
		map[string]string{"X-API-Key": testAPIKey})

	require.Equal(t, http.StatusOK, w.Code)
	var resp []NotificationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestReportNotifications_Unauthorized(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, http.MethodGet, "/api/v1/admin/reports/42/notifications", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = makeRequest(router, http.MethodGet, "/api/v1/admin/reports/42/notifications", nil,
		map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthCheck(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, http.MethodGet, "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
