package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Ahlonzo124/job-application-tracker/internal/api/middleware"
	"github.com/Ahlonzo124/job-application-tracker/internal/config"
	"github.com/Ahlonzo124/job-application-tracker/internal/logging"
	"github.com/Ahlonzo124/job-application-tracker/internal/store"
	"github.com/Ahlonzo124/job-application-tracker/pkg/models"
	"github.com/Ahlonzo124/job-application-tracker/pkg/utils"
)

func errorJSON(c echo.Context, status int, code, msg, requestID string) error {
	return c.JSON(status, models.ErrorResponse{
		Error:     code,
		Message:   msg,
		RequestID: requestID,
		Timestamp: time.Now(),
	})
}

func storeError(c echo.Context, requestID string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return errorJSON(c, http.StatusNotFound, "not_found", "Application not found", requestID)
	}
	logging.LogWithRequestID(requestID).Error("Store operation failed", map[string]interface{}{
		"error": err.Error(),
	})
	return errorJSON(c, http.StatusInternalServerError, "store_error", "Storage operation failed", requestID)
}

// ListApplicationsHandler returns the owner's applications in board order.
func ListApplicationsHandler(cfg *config.Config, appStore store.ApplicationStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := middleware.RequestID(c)
		ownerID, err := middleware.OwnerID(c)
		if err != nil {
			return errorJSON(c, http.StatusUnauthorized, "unauthorized", err.Error(), requestID)
		}

		apps, err := appStore.List(c.Request().Context(), ownerID)
		if err != nil {
			return storeError(c, requestID, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"ok":           true,
			"applications": apps,
		})
	}
}

// CreateApplicationHandler creates an application from manual entry,
// bypassing the pipeline.
func CreateApplicationHandler(cfg *config.Config, appStore store.ApplicationStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := middleware.RequestID(c)
		ownerID, err := middleware.OwnerID(c)
		if err != nil {
			return errorJSON(c, http.StatusUnauthorized, "unauthorized", err.Error(), requestID)
		}

		var req models.ApplicationCreateRequest
		if !bindAndValidate(c, requestID, &req) {
			return nil
		}

		stage := models.StageApplied
		if req.Stage != nil {
			stage, err = models.ParseStage(*req.Stage)
			if err != nil {
				return errorJSON(c, http.StatusBadRequest, "invalid_stage", err.Error(), requestID)
			}
		}

		var normalizedURL *string
		if req.URL != nil {
			normalizedURL = utils.StringOrNil(utils.NormalizeURL(*req.URL))
		}

		app := &models.Application{
			OwnerID:             ownerID,
			Company:             strings.TrimSpace(req.Company),
			Title:               strings.TrimSpace(req.Title),
			Location:            utils.PtrStringOrNil(req.Location),
			URL:                 normalizedURL,
			JobType:             utils.PtrStringOrNil(req.JobType),
			WorkMode:            utils.PtrStringOrNil(req.WorkMode),
			Seniority:           utils.PtrStringOrNil(req.Seniority),
			SalaryMin:           utils.FiniteOrNil(req.SalaryMin),
			SalaryMax:           utils.FiniteOrNil(req.SalaryMax),
			SalaryCurrency:      utils.PtrStringOrNil(req.SalaryCurrency),
			SalaryPeriod:        utils.PtrStringOrNil(req.SalaryPeriod),
			DescriptionSummary:  utils.PtrStringOrNil(req.DescriptionSummary),
			KeyRequirements:     utils.CleanStringSlice(req.KeyRequirements),
			KeyResponsibilities: utils.CleanStringSlice(req.KeyResponsibilities),
			Stage:               stage,
			Notes:               utils.PtrStringOrNil(req.Notes),
		}

		if err := appStore.Create(c.Request().Context(), app); err != nil {
			return storeError(c, requestID, err)
		}
		return c.JSON(http.StatusCreated, map[string]interface{}{
			"ok":          true,
			"application": app,
		})
	}
}

// GetApplicationHandler returns one application by id.
func GetApplicationHandler(cfg *config.Config, appStore store.ApplicationStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := middleware.RequestID(c)
		ownerID, err := middleware.OwnerID(c)
		if err != nil {
			return errorJSON(c, http.StatusUnauthorized, "unauthorized", err.Error(), requestID)
		}

		app, err := appStore.Get(c.Request().Context(), ownerID, c.Param("id"))
		if err != nil {
			return storeError(c, requestID, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"ok":          true,
			"application": app,
		})
	}
}

// UpdateApplicationHandler applies a partial update.
func UpdateApplicationHandler(cfg *config.Config, appStore store.ApplicationStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := middleware.RequestID(c)
		ownerID, err := middleware.OwnerID(c)
		if err != nil {
			return errorJSON(c, http.StatusUnauthorized, "unauthorized", err.Error(), requestID)
		}

		var req models.ApplicationUpdateRequest
		if !bindAndValidate(c, requestID, &req) {
			return nil
		}

		if req.URL != nil {
			normalized := utils.NormalizeURL(*req.URL)
			req.URL = &normalized
		}

		app, err := appStore.Update(c.Request().Context(), ownerID, c.Param("id"), &req)
		if err != nil {
			if strings.Contains(err.Error(), "invalid stage") {
				return errorJSON(c, http.StatusBadRequest, "invalid_stage", err.Error(), requestID)
			}
			return storeError(c, requestID, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"ok":          true,
			"application": app,
		})
	}
}

// DeleteApplicationHandler removes an application.
func DeleteApplicationHandler(cfg *config.Config, appStore store.ApplicationStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := middleware.RequestID(c)
		ownerID, err := middleware.OwnerID(c)
		if err != nil {
			return errorJSON(c, http.StatusUnauthorized, "unauthorized", err.Error(), requestID)
		}

		if err := appStore.Delete(c.Request().Context(), ownerID, c.Param("id")); err != nil {
			return storeError(c, requestID, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"ok": true})
	}
}
