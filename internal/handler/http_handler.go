package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/Krimson/growth-monitory/internal/service"
	"github.com/Krimson/growth-monitory/pkg/models"
)

// HTTPHandler exposes GrowthService over JSON/HTTP.
type HTTPHandler struct {
	service *service.GrowthService
	logger  *zap.Logger
}

func NewHTTPHandler(svc *service.GrowthService, logger *zap.Logger) *HTTPHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPHandler{
		service: svc,
		logger:  logger,
	}
}

// RegisterRoutes mounts the API, health and Swagger routes on router.
func (h *HTTPHandler) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/calculate-zscore", h.CalculateZScore).Methods(http.MethodPost)
	api.HandleFunc("/kpsp-evaluate", h.EvaluateKPSP).Methods(http.MethodPost)
	api.HandleFunc("/kpsp/questions", h.KPSPQuestions).Methods(http.MethodGet)
	api.HandleFunc("/growth-data", h.GrowthData).Methods(http.MethodGet)
	api.HandleFunc("/info", h.Info).Methods(http.MethodGet)

	api.HandleFunc("/assessments/{id}", h.GetAssessment).Methods(http.MethodGet)
	api.HandleFunc("/assessments/{id}/decision", h.HandleDecision).Methods(http.MethodPost)
	api.HandleFunc("/children/{child_id}/assessments", h.ListAssessments).Methods(http.MethodGet)

	router.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))
}

// CalculateZScore computes and classifies a growth index
// @Summary Calculate a WHO z-score
// @Description Validates the measurement, computes the z-score for the requested index (wfa, hfa, wfh, bfa, hcfa) and classifies it per Permenkes No. 2/2020. With child_id the result is also recorded in the assessment journal.
// @Tags Growth
// @Accept json
// @Produce json
// @Param request body models.CalculateRequest true "Measurement"
// @Success 200 {object} models.CalculateResponse
// @Failure 400 {object} models.ErrorResponse "Missing or invalid input"
// @Failure 500 {object} models.ErrorResponse "Index not computable"
// @Router /api/calculate-zscore [post]
func (h *HTTPHandler) CalculateZScore(w http.ResponseWriter, r *http.Request) {
	var req models.CalculateRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.service.CalculateZScore(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// EvaluateKPSP scores a KPSP questionnaire
// @Summary Evaluate KPSP screening
// @Description Picks the age band (3, 6, ... 24 months) and grades the yes-count of the answers.
// @Tags KPSP
// @Accept json
// @Produce json
// @Param request body models.KPSPRequest true "Age and answers"
// @Success 200 {object} models.KPSPResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/kpsp-evaluate [post]
func (h *HTTPHandler) EvaluateKPSP(w http.ResponseWriter, r *http.Request) {
	var req models.KPSPRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.service.EvaluateKPSP(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// KPSPQuestions lists the question bank
// @Summary KPSP question bank
// @Tags KPSP
// @Produce json
// @Success 200 {object} models.QuestionBankResponse
// @Router /api/kpsp/questions [get]
func (h *HTTPHandler) KPSPQuestions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.KPSPQuestions())
}

// GrowthData returns the demo chart series
// @Summary Sample growth series
// @Tags Growth
// @Produce json
// @Success 200 {object} models.GrowthData
// @Router /api/growth-data [get]
func (h *HTTPHandler) GrowthData(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.GrowthData())
}

// Info describes the service
// @Summary Service information
// @Tags Meta
// @Produce json
// @Success 200 {object} models.InfoResponse
// @Router /api/info [get]
func (h *HTTPHandler) Info(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.Info())
}

// Health reports dependency status
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Failure 503 {object} models.HealthResponse
// @Router /healthz [get]
func (h *HTTPHandler) Health(w http.ResponseWriter, r *http.Request) {
	health := h.service.Health(r.Context())
	status := http.StatusOK
	if health.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, health)
}

// GetAssessment returns a pending or saved assessment
// @Summary Get assessment
// @Tags Journal
// @Produce json
// @Param id path string true "Assessment ID"
// @Success 200 {object} journal.Assessment
// @Failure 404 {object} models.ErrorResponse
// @Router /api/assessments/{id} [get]
func (h *HTTPHandler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	a, err := h.service.GetAssessment(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, a)
}

// HandleDecision saves or discards a pending assessment
// @Summary Decide on an assessment
// @Description save=true persists the assessment, save=false deletes it from the cache.
// @Tags Journal
// @Accept json
// @Produce json
// @Param id path string true "Assessment ID"
// @Param request body models.DecisionRequest true "Decision"
// @Success 200 {object} models.DecisionResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/assessments/{id}/decision [post]
func (h *HTTPHandler) HandleDecision(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.DecisionRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.service.HandleDecision(r.Context(), id, req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// ListAssessments returns the saved history of a child
// @Summary Assessment history
// @Tags Journal
// @Produce json
// @Param child_id path string true "Child ID"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} map[string]interface{}
// @Router /api/children/{child_id}/assessments [get]
func (h *HTTPHandler) ListAssessments(w http.ResponseWriter, r *http.Request) {
	childID := mux.Vars(r)["child_id"]
	limit := getQueryInt(r, "limit", 20)
	offset := getQueryInt(r, "offset", 0)

	list, err := h.service.History(r.Context(), childID, limit, offset)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"child_id":    childID,
		"assessments": list,
		"limit":       limit,
		"offset":      offset,
		"count":       len(list),
	})
}

// ===== Utilities =====

func (h *HTTPHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (h *HTTPHandler) respondServiceError(w http.ResponseWriter, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Int("status", status), zap.Error(err))
	}
	respondError(w, status, message)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("failed to encode JSON response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, models.ErrorResponse{
		Error:  message,
		Status: status,
	})
}

func getQueryInt(r *http.Request, key string, defaultValue int) int {
	valueStr := r.URL.Query().Get(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
