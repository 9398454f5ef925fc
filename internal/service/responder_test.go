package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/smartbash/brgy_dispatch/internal/models"
	"github.com/smartbash/brgy_dispatch/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestResponderService(t *testing.T) (*responderService, *mocks.MockResponseServiceRepository, *mocks.MockNotificationRepository, *mocks.MockReportRepository) {
	ctrl := gomock.NewController(t)
	services := mocks.NewMockResponseServiceRepository(ctrl)
	notifications := mocks.NewMockNotificationRepository(ctrl)
	reports := mocks.NewMockReportRepository(ctrl)

	svc := NewResponderService(services, notifications, reports, newTestLogger())
	return svc.(*responderService), services, notifications, reports
}

func TestResolveService_Unauthorized(t *testing.T) {
	service, services, _, _ := newTestResponderService(t)
	pending := &models.ResponseService{ID: 3, Email: "new@rescue.ph"}
	services.EXPECT().GetByEmail(gomock.Any(), "new@rescue.ph").Return(pending, nil)
	services.EXPECT().GetByEmail(gomock.Any(), "ghost@rescue.ph").Return(nil, fmt.Errorf("service: %w", models.ErrNotFound))

	_, err := service.ResolveService(context.Background(), "new@rescue.ph")
	assert.True(t, errors.Is(err, models.ErrUnauthorized))

	_, err = service.ResolveService(context.Background(), "ghost@rescue.ph")
	assert.True(t, errors.Is(err, models.ErrUnauthorized))
}

func TestResolveService_Success(t *testing.T) {
	service, services, _, _ := newTestResponderService(t)
	active := activeService(3, "BFP Pahina", "Pahina")
	services.EXPECT().GetByEmail(gomock.Any(), "bfp@pahina.ph").Return(active, nil)

	got, err := service.ResolveService(context.Background(), " bfp@pahina.ph ")

	require.NoError(t, err)
	assert.Equal(t, active, got)
}

func TestListDispatches(t *testing.T) {
	service, _, notifications, _ := newTestResponderService(t)
	caller := activeService(3, "BFP Pahina", "Pahina")
	list := []*models.ServiceDispatchNotification{{ID: uuid.New(), ServiceID: 3}}
	notifications.EXPECT().ListByService(gomock.Any(), int64(3)).Return(list, nil)

	got, err := service.ListDispatches(context.Background(), caller)

	require.NoError(t, err)
	assert.Equal(t, list, got)
}

func TestCompleteDispatch_CompletesParentReport(t *testing.T) {
	service, _, notifications, reports := newTestResponderService(t)
	caller := activeService(3, "BFP Pahina", "Pahina")
	id := uuid.New()
	n := &models.ServiceDispatchNotification{ID: id, ServiceID: 3, ReportID: 42, Status: models.DispatchDispatched}
	report := fireReport(42, "Pahina", "Elm St")
	report.Status = models.ReportInProgress

	notifications.EXPECT().GetByID(gomock.Any(), id).Return(n, nil)
	notifications.EXPECT().MarkCompleted(gomock.Any(), id).Return(nil)
	reports.EXPECT().GetByID(gomock.Any(), int64(42)).Return(report, nil)
	reports.EXPECT().UpdateStatus(gomock.Any(), int64(42), models.ReportCompleted).Return(nil)
	reports.EXPECT().InvalidateReportCache(gomock.Any(), int64(42)).Return(nil)

	got, err := service.CompleteDispatch(context.Background(), caller, id)

	require.NoError(t, err)
	assert.Equal(t, models.DispatchCompleted, got.Status)
	assert.Equal(t, models.ReportCompleted, report.Status)
}

func TestCompleteDispatch_CompletedReportUntouched(t *testing.T) {
	service, _, notifications, reports := newTestResponderService(t)
	caller := activeService(3, "BFP Pahina", "Pahina")
	id := uuid.New()
	n := &models.ServiceDispatchNotification{ID: id, ServiceID: 3, ReportID: 42, Status: models.DispatchCompleted}
	report := fireReport(42, "Pahina", "Elm St")
	report.Status = models.ReportCompleted

	notifications.EXPECT().GetByID(gomock.Any(), id).Return(n, nil)
	notifications.EXPECT().MarkCompleted(gomock.Any(), gomock.Any()).Times(0)
	reports.EXPECT().GetByID(gomock.Any(), int64(42)).Return(report, nil)
	reports.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	got, err := service.CompleteDispatch(context.Background(), caller, id)

	require.NoError(t, err)
	assert.Equal(t, models.DispatchCompleted, got.Status)
	assert.Equal(t, models.ReportCompleted, report.Status)
}

func TestCompleteDispatch_MissingReportStillCompletes(t *testing.T) {
	service, _, notifications, reports := newTestResponderService(t)
	caller := activeService(3, "BFP Pahina", "Pahina")
	id := uuid.New()
	n := &models.ServiceDispatchNotification{ID: id, ServiceID: 3, ReportID: 42, Status: models.DispatchDispatched}

	notifications.EXPECT().GetByID(gomock.Any(), id).Return(n, nil)
	notifications.EXPECT().MarkCompleted(gomock.Any(), id).Return(nil)
	reports.EXPECT().GetByID(gomock.Any(), int64(42)).Return(nil, fmt.Errorf("report 42: %w", models.ErrNotFound))

	got, err := service.CompleteDispatch(context.Background(), caller, id)

	require.NoError(t, err)
	assert.Equal(t, models.DispatchCompleted, got.Status)
}

func TestCompleteDispatch_ReportLookupFailureLeavesDispatchOpen(t *testing.T) {
	service, _, notifications, reports := newTestResponderService(t)
	caller := activeService(3, "BFP Pahina", "Pahina")
	id := uuid.New()
	n := &models.ServiceDispatchNotification{ID: id, ServiceID: 3, ReportID: 42, Status: models.DispatchDispatched}

	notifications.EXPECT().GetByID(gomock.Any(), id).Return(n, nil)
	reports.EXPECT().GetByID(gomock.Any(), int64(42)).Return(nil, errors.New("db down"))
	notifications.EXPECT().MarkCompleted(gomock.Any(), gomock.Any()).Times(0)

	got, err := service.CompleteDispatch(context.Background(), caller, id)

	require.Error(t, err)
	assert.Nil(t, got)
	assert.Equal(t, models.DispatchDispatched, n.Status)
}

func TestCompleteDispatch_OtherServicesDispatchIsNotFound(t *testing.T) {
	service, _, notifications, reports := newTestResponderService(t)
	caller := activeService(3, "BFP Pahina", "Pahina")
	id := uuid.New()

	notifications.EXPECT().GetByID(gomock.Any(), id).Return(&models.ServiceDispatchNotification{ID: id, ServiceID: 99}, nil)
	notifications.EXPECT().MarkCompleted(gomock.Any(), gomock.Any()).Times(0)
	reports.EXPECT().GetByID(gomock.Any(), gomock.Any()).Times(0)

	got, err := service.CompleteDispatch(context.Background(), caller, id)

	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestCompleteDispatch_UnknownID(t *testing.T) {
	service, _, notifications, _ := newTestResponderService(t)
	id := uuid.New()
	notifications.EXPECT().GetByID(gomock.Any(), id).Return(nil, fmt.Errorf("dispatch: %w", models.ErrNotFound))

	_, err := service.CompleteDispatch(context.Background(), activeService(3, "BFP", ""), id)

	assert.True(t, errors.Is(err, models.ErrNotFound))
}
