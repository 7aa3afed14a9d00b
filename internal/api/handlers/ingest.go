package handlers

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Ahlonzo124/job-application-tracker/internal/api/middleware"
	"github.com/Ahlonzo124/job-application-tracker/internal/config"
	"github.com/Ahlonzo124/job-application-tracker/internal/ingest"
	"github.com/Ahlonzo124/job-application-tracker/internal/logging"
	"github.com/Ahlonzo124/job-application-tracker/pkg/models"
)

var validate = validator.New()

// bindAndValidate decodes the request body into out and runs struct
// validation, answering the request itself on failure.
func bindAndValidate(c echo.Context, requestID string, out interface{}) bool {
	if err := c.Bind(out); err != nil {
		_ = c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "invalid_request",
			Message:   "Invalid request format",
			RequestID: requestID,
			Timestamp: time.Now(),
		})
		return false
	}
	if err := validate.Struct(out); err != nil {
		_ = c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "validation_failed",
			Message:   err.Error(),
			RequestID: requestID,
			Timestamp: time.Now(),
		})
		return false
	}
	return true
}

// pipelineError renders a stage-tagged failure.
func pipelineError(c echo.Context, requestID string, err error) error {
	se := ingest.AsStageError(err)

	logging.LogWithRequestID(requestID).Error("Pipeline stage failed", map[string]interface{}{
		"step":   string(se.Step),
		"status": se.Status,
		"error":  se.Err.Error(),
	})

	return c.JSON(se.Status, models.PipelineErrorResponse{
		OK:      false,
		Step:    string(se.Step),
		Status:  se.Status,
		Error:   se.Err.Error(),
		Extract: se.Extract,
	})
}

// ExtractHandler runs extraction only. A login-walled page is a success
// response with blocked fields set so the caller can offer the paste
// fallback.
func ExtractHandler(cfg *config.Config, pipeline *ingest.Pipeline) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := middleware.RequestID(c)
		logger := logging.LogWithRequestID(requestID)

		var req models.IngestRequest
		if !bindAndValidate(c, requestID, &req) {
			return nil
		}

		logger.Info("Extract request received", map[string]interface{}{
			"url":        req.URL,
			"has_pasted": req.PastedText != "",
		})

		result, err := pipeline.Extract(c.Request().Context(), &req)
		if err != nil {
			return pipelineError(c, requestID, err)
		}

		return c.JSON(http.StatusOK, models.ExtractResponse{OK: true, Extract: result})
	}
}

// ParseHandler runs the structured parser on caller-supplied text.
func ParseHandler(cfg *config.Config, pipeline *ingest.Pipeline) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := middleware.RequestID(c)
		logger := logging.LogWithRequestID(requestID)

		var req models.ParseRequest
		if !bindAndValidate(c, requestID, &req) {
			return nil
		}

		logger.Info("Parse request received", map[string]interface{}{
			"url":         req.URL,
			"text_length": len(req.ExtractedText),
		})

		fields, err := pipeline.Parse(c.Request().Context(), req.ExtractedText, models.ParseHints{
			URL:       req.URL,
			PageTitle: req.PageTitle,
		})
		if err != nil {
			return pipelineError(c, requestID, err)
		}

		return c.JSON(http.StatusOK, models.ParseResponse{OK: true, Data: fields})
	}
}

// IngestHandler runs extract and parse without persisting.
func IngestHandler(cfg *config.Config, pipeline *ingest.Pipeline) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := middleware.RequestID(c)
		logger := logging.LogWithRequestID(requestID)

		var req models.IngestRequest
		if !bindAndValidate(c, requestID, &req) {
			return nil
		}

		logger.Info("Ingest request received", map[string]interface{}{
			"url":        req.URL,
			"has_pasted": req.PastedText != "",
		})

		result, err := pipeline.Run(c.Request().Context(), &req)
		if err != nil {
			return pipelineError(c, requestID, err)
		}

		return c.JSON(http.StatusOK, result)
	}
}

// IngestSaveHandler runs the full pipeline and persists the result for the
// authenticated owner.
func IngestSaveHandler(cfg *config.Config, pipeline *ingest.Pipeline) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := middleware.RequestID(c)
		logger := logging.LogWithRequestID(requestID)

		ownerID, err := middleware.OwnerID(c)
		if err != nil {
			return errorJSON(c, http.StatusUnauthorized, "unauthorized", err.Error(), requestID)
		}

		var req models.IngestRequest
		if !bindAndValidate(c, requestID, &req) {
			return nil
		}

		logger.Info("Ingest-and-save request received", map[string]interface{}{
			"url":        req.URL,
			"has_pasted": req.PastedText != "",
		})

		result, err := pipeline.RunAndSave(c.Request().Context(), ownerID, &req)
		if err != nil {
			return pipelineError(c, requestID, err)
		}

		if result.Duplicate {
			logger.Info("Duplicate posting detected", map[string]interface{}{
				"reason": result.Reason,
			})
		}

		return c.JSON(http.StatusOK, result)
	}
}
