package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "cfemdash/internal/errors"
	"cfemdash/internal/validation"
	"cfemdash/pkg/contracts/domain"
)

var validate = validator.New()

// DatasetHandler serves the dataset API: upload, summary, filtered
// queries, strategic analyses, simulation and CSV export.
type DatasetHandler struct {
	service      DatasetServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	metrics      *Metrics
	validator    *validation.UploadValidator
	maxUpload    int64
}

// NewDatasetHandler creates a dataset handler.
func NewDatasetHandler(service DatasetServiceInterface, logger *slog.Logger,
	errorHandler *apierrors.ErrorHandler, metrics *Metrics, maxUpload int64) *DatasetHandler {
	return &DatasetHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dataset_handler")),
		errorHandler: errorHandler,
		metrics:      metrics,
		validator:    validation.NewUploadValidator(maxUpload, logger),
		maxUpload:    maxUpload,
	}
}

// Routes returns the dataset routes.
func (h *DatasetHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.Upload)
	r.Delete("/", h.Reset)
	r.Get("/summary", h.Summary)
	r.Get("/options", h.Options)
	r.Post("/query", h.Query)
	r.Get("/strategic", h.Strategic)
	r.Post("/simulate", h.Simulate)
	r.Post("/export", h.Export)

	return r
}

// bindError maps a failed bind to an API error. Field-level validator
// failures become a VALIDATION_FAILED response naming each bad field;
// anything else (malformed JSON, bound checks) is an invalid request.
func bindError(err error) *apierrors.APIError {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make([]apierrors.ValidationError, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, apierrors.ValidationError{
				Field:   fe.Field(),
				Message: fmt.Sprintf("failed %q validation", fe.Tag()),
			})
		}
		return apierrors.ValidationFailed(fields)
	}
	return apierrors.InvalidRequestWithError(err)
}

// QueryRequest is the body of POST /query and /export.
type QueryRequest struct {
	domain.FilterSpec
}

// Bind validates the filter payload.
func (q *QueryRequest) Bind(r *http.Request) error {
	if err := validate.Struct(q.FilterSpec); err != nil {
		return err
	}
	if q.RoyaltyRange != nil && q.RoyaltyRange.Min > q.RoyaltyRange.Max {
		return fmt.Errorf("royalty_range: min must not exceed max")
	}
	return nil
}

// SimulateRequest is the body of POST /simulate. CapturePercent is the
// share of the unmapped royalty base to capture, in percent.
type SimulateRequest struct {
	Filter         domain.FilterSpec `json:"filter"`
	CapturePercent float64           `json:"capture_percent"`
}

// Bind validates the simulation payload.
func (s *SimulateRequest) Bind(r *http.Request) error {
	if s.CapturePercent <= 0 || s.CapturePercent > 100 {
		return fmt.Errorf("capture_percent must be in (0, 100]")
	}
	return validate.Struct(s.Filter)
}

// Upload ingests a CSV or .xlsx dataset as multipart form field "file"
// and replaces the session dataset.
func (h *DatasetHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			h.metrics.LoadFailures.Inc()
			h.errorHandler.HandleError(w, r, apierrors.ErrUploadTooLarge)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(
			fmt.Errorf("multipart field 'file' required: %w", err)))
		return
	}
	defer file.Close()

	if err := h.validator.Validate(file, header.Filename, header.Size); err != nil {
		h.metrics.LoadFailures.Inc()
		if errors.Is(err, validation.ErrFileTooLarge) {
			h.errorHandler.HandleError(w, r, apierrors.ErrUploadTooLarge)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	summary, err := h.service.Load(r.Context(), file, header.Filename)
	if err != nil {
		h.metrics.LoadFailures.Inc()
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.metrics.Loads.Inc()
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, summary)
}

// Summary returns the loaded-dataset metadata.
func (h *DatasetHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// Reset destroys the session dataset.
func (h *DatasetHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.service.Reset(r.Context())
	render.NoContent(w, r)
}

// Query returns a filtered view with its KPI summary. An empty result
// is a 200 with zero rows.
func (h *DatasetHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := render.Bind(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, bindError(err))
		return
	}

	result, err := h.service.Query(r.Context(), req.FilterSpec)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.metrics.Queries.Inc()
	render.JSON(w, r, result)
}

// Options returns the selectable filter universes.
func (h *DatasetHandler) Options(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.Options(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, opts)
}

// Strategic returns the pareto and opportunity analyses over the whole
// loaded table.
func (h *DatasetHandler) Strategic(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Strategic(r.Context(), domain.FilterSpec{})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, view)
}

// Simulate projects revenue potential for a capture percentage.
func (h *DatasetHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	if err := render.Bind(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, bindError(err))
		return
	}

	sim, err := h.service.Simulate(r.Context(), req.Filter, req.CapturePercent/100)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, sim)
}

// Export streams the filtered view as a CSV download.
func (h *DatasetHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := render.Bind(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, bindError(err))
		return
	}

	filename := fmt.Sprintf("cfem_export_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.service.Export(r.Context(), req.FilterSpec, w); err != nil {
		// Headers may already be out; reset them only if nothing was
		// written yet by handing the error to the central handler.
		w.Header().Del("Content-Disposition")
		w.Header().Set("Content-Type", "application/json")
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.metrics.Exports.Inc()
}
