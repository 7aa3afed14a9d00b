package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Ahlonzo124/job-application-tracker/internal/api/middleware"
	"github.com/Ahlonzo124/job-application-tracker/internal/config"
	"github.com/Ahlonzo124/job-application-tracker/internal/store"
	"github.com/Ahlonzo124/job-application-tracker/pkg/models"
)

// BoardHandler returns the owner's applications grouped into kanban columns.
// Every stage is present in the response even when its column is empty.
func BoardHandler(cfg *config.Config, appStore store.ApplicationStore) echo.HandlerFunc {
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

		columns := make(map[string][]models.Application, len(models.Stages))
		for _, stage := range models.Stages {
			columns[string(stage)] = []models.Application{}
		}
		for _, app := range apps {
			columns[string(app.Stage)] = append(columns[string(app.Stage)], app)
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"ok":      true,
			"columns": columns,
		})
	}
}

// ReorderHandler rewrites stage and position for the submitted columns.
func ReorderHandler(cfg *config.Config, appStore store.ApplicationStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := middleware.RequestID(c)
		ownerID, err := middleware.OwnerID(c)
		if err != nil {
			return errorJSON(c, http.StatusUnauthorized, "unauthorized", err.Error(), requestID)
		}

		var req models.ReorderRequest
		if !bindAndValidate(c, requestID, &req) {
			return nil
		}

		if err := appStore.Reorder(c.Request().Context(), ownerID, req.Columns); err != nil {
			if strings.Contains(err.Error(), "invalid stage") {
				return errorJSON(c, http.StatusBadRequest, "invalid_stage", err.Error(), requestID)
			}
			return storeError(c, requestID, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"ok": true})
	}
}
