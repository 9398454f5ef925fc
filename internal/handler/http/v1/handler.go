package v1

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/smartbash/brgy_dispatch/internal/config"
	"github.com/smartbash/brgy_dispatch/internal/models"
	"github.com/smartbash/brgy_dispatch/internal/service"
)

type Handler struct {
	dispatchService  service.DispatchService
	officialService  service.OfficialService
	responderService service.ResponderService
	logger           *logrus.Logger
	validate         *validator.Validate
	cfg              *config.Config
}

func NewHandler(
	dispatchService service.DispatchService,
	officialService service.OfficialService,
	responderService service.ResponderService,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		dispatchService:  dispatchService,
		officialService:  officialService,
		responderService: responderService,
		logger:           logger,
		validate:         validator.New(),
		cfg:              cfg,
	}
}

// respondError maps service errors to HTTP statuses
func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error, notFound string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		log.WithError(err).Warn("Resource not found")
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	case errors.Is(err, models.ErrUnauthorized):
		log.WithError(err).Warn("Unauthorized")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, models.ErrReportCompleted):
		log.WithError(err).Warn("Report already completed")
		c.JSON(http.StatusConflict, gin.H{"error": "report already completed"})
	default:
		log.WithError(err).Error("Service call failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *Handler) bindReportID(c *gin.Context, log *logrus.Entry) (int64, bool) {
	var uri reportURI
	if err := c.ShouldBindUri(&uri); err != nil {
		log.WithError(err).Warn("Invalid report ID")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report ID"})
		return 0, false
	}
	if err := h.validate.Struct(uri); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report ID"})
		return 0, false
	}
	return uri.ID, true
}

// @Summary Dispatch a report
// @Description Alert matching response services about a report and move it to In Progress.
// @Description By default each service is alerted at most once per report; set force to re-send.
// @Tags Officials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Param options body DispatchRequest false "Dispatch options"
// @Success 200 {object} DispatchResponse
// @Failure 400 {object} map[string]string "Invalid report ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 409 {object} map[string]string "Report already completed"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /officials/reports/{id}/dispatch [post]
func (h *Handler) dispatchReport(c *gin.Context) {
	log := h.logger.WithField("method", "dispatchReport")

	id, ok := h.bindReportID(c, log)
	if !ok {
		return
	}
	log = log.WithField("id", id)

	var input DispatchRequest
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.dispatchService.DispatchReport(c.Request.Context(), id, input.Force)
	if err != nil {
		h.respondError(c, log, err, "report not found")
		return
	}
	c.JSON(http.StatusOK, ModelToDispatchResponse(result))
}

// @Summary Dispatch all pending reports
// @Description Dispatch every pending report in the caller's jurisdiction.
// @Tags Officials
// @Produce json
// @Security BearerAuth
// @Success 200 {object} BulkDispatchResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /officials/reports/dispatch-pending [post]
func (h *Handler) dispatchPending(c *gin.Context) {
	log := h.logger.WithField("method", "dispatchPending")

	result, err := h.dispatchService.DispatchPending(c.Request.Context(), currentOfficial(c))
	if err != nil {
		h.respondError(c, log, err, "not found")
		return
	}
	c.JSON(http.StatusOK, ModelToBulkDispatchResponse(result))
}

// @Summary Incident map
// @Description Clusters of open reports in the caller's jurisdiction, largest first.
// @Tags Officials
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ClusterResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /officials/incidents/map [get]
func (h *Handler) incidentMap(c *gin.Context) {
	log := h.logger.WithField("method", "incidentMap")

	clusters, err := h.officialService.MapClusters(c.Request.Context(), currentOfficial(c))
	if err != nil {
		h.respondError(c, log, err, "not found")
		return
	}
	c.JSON(http.StatusOK, ModelsToClusterResponses(clusters))
}

// @Summary Official dashboard
// @Description Report counters by type and status for the caller's jurisdiction.
// @Tags Officials
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DashboardResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /officials/dashboard [get]
func (h *Handler) dashboard(c *gin.Context) {
	log := h.logger.WithField("method", "dashboard")

	summary, err := h.officialService.Dashboard(c.Request.Context(), currentOfficial(c))
	if err != nil {
		h.respondError(c, log, err, "not found")
		return
	}
	c.JSON(http.StatusOK, ModelToDashboardResponse(summary))
}

// @Summary Recent reports
// @Description The five newest reports in the caller's jurisdiction.
// @Tags Officials
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ReportResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /officials/reports/recent [get]
func (h *Handler) recentReports(c *gin.Context) {
	log := h.logger.WithField("method", "recentReports")

	reports, err := h.officialService.RecentReports(c.Request.Context(), currentOfficial(c))
	if err != nil {
		h.respondError(c, log, err, "not found")
		return
	}
	c.JSON(http.StatusOK, ModelsToReportResponses(reports))
}

// @Summary All reports
// @Description Every report in the caller's jurisdiction, newest first.
// @Tags Officials
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ReportResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /officials/reports [get]
func (h *Handler) listReports(c *gin.Context) {
	log := h.logger.WithField("method", "listReports")

	reports, err := h.officialService.Reports(c.Request.Context(), currentOfficial(c))
	if err != nil {
		h.respondError(c, log, err, "not found")
		return
	}
	c.JSON(http.StatusOK, ModelsToReportResponses(reports))
}

// @Summary Response services
// @Description Response services located in the caller's barangay with derived type and status.
// @Tags Officials
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ServiceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /officials/services [get]
func (h *Handler) listServices(c *gin.Context) {
	log := h.logger.WithField("method", "listServices")

	services, err := h.officialService.Services(c.Request.Context(), currentOfficial(c))
	if err != nil {
		h.respondError(c, log, err, "not found")
		return
	}
	c.JSON(http.StatusOK, ModelsToServiceResponses(services))
}

// @Summary Service dispatch list
// @Description Dispatch notifications received by the calling response service, newest first.
// @Tags Services
// @Produce json
// @Security BearerAuth
// @Success 200 {array} NotificationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /services/dispatches [get]
func (h *Handler) listDispatches(c *gin.Context) {
	log := h.logger.WithField("method", "listDispatches")

	list, err := h.responderService.ListDispatches(c.Request.Context(), currentService(c))
	if err != nil {
		h.respondError(c, log, err, "not found")
		return
	}
	c.JSON(http.StatusOK, ModelsToNotificationResponses(list))
}

// @Summary Export service dispatches
// @Description Download the calling service's dispatch history as an XLSX workbook.
// @Tags Services
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /services/dispatches/export [get]
func (h *Handler) exportDispatches(c *gin.Context) {
	svc := currentService(c)
	log := h.logger.WithField("method", "exportDispatches").WithField("response_service_id", svc.ID)

	list, err := h.responderService.ListDispatches(c.Request.Context(), svc)
	if err != nil {
		h.respondError(c, log, err, "not found")
		return
	}

	data, err := dispatchesWorkbook(list)
	if err != nil {
		log.WithError(err).Error("Failed to build workbook")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="dispatches-%d.xlsx"`, svc.ID))
	c.Data(http.StatusOK, xlsxMIME, data)
}

// @Summary Complete a dispatch
// @Description Mark one of the caller's dispatches completed. The parent report is completed too.
// @Tags Services
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dispatch ID"
// @Success 200 {object} NotificationResponse
// @Failure 400 {object} map[string]string "Invalid dispatch ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Dispatch not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /services/dispatches/{id}/complete [post]
func (h *Handler) completeDispatch(c *gin.Context) {
	log := h.logger.WithField("method", "completeDispatch")

	var uri dispatchURI
	if err := c.ShouldBindUri(&uri); err != nil {
		log.WithError(err).Warn("Invalid dispatch ID")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dispatch ID"})
		return
	}
	if err := h.validate.Struct(uri); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dispatch ID"})
		return
	}
	id := uuid.MustParse(uri.ID)
	log = log.WithField("id", id)

	n, err := h.responderService.CompleteDispatch(c.Request.Context(), currentService(c), id)
	if err != nil {
		h.respondError(c, log, err, "dispatch not found")
		return
	}
	c.JSON(http.StatusOK, ModelToNotificationResponse(n))
}

// @Summary Report notification audit
// @Description Every dispatch notification recorded for a report. Requires API key.
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Report ID"
// @Success 200 {array} NotificationResponse
// @Failure 400 {object} map[string]string "Invalid report ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/reports/{id}/notifications [get]
func (h *Handler) reportNotifications(c *gin.Context) {
	log := h.logger.WithField("method", "reportNotifications")

	id, ok := h.bindReportID(c, log)
	if !ok {
		return
	}

	list, err := h.dispatchService.ReportNotifications(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log.WithField("id", id), err, "report not found")
		return
	}
	c.JSON(http.StatusOK, ModelsToNotificationResponses(list))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
