package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ahlonzo124/job-application-tracker/internal/api/middleware"
	"github.com/Ahlonzo124/job-application-tracker/internal/config"
	"github.com/Ahlonzo124/job-application-tracker/internal/inbox"
	"github.com/Ahlonzo124/job-application-tracker/internal/logging"
	"github.com/Ahlonzo124/job-application-tracker/pkg/models"
	"github.com/Ahlonzo124/job-application-tracker/pkg/utils"
)

// InboxPostHandler accepts a posting pushed by the browser extension and
// parks it under a pickup token. This endpoint is unauthenticated by design:
// the extension has no session, so the token is the only handle.
func InboxPostHandler(cfg *config.Config, inboxStore inbox.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := middleware.RequestID(c)
		logger := logging.LogWithRequestID(requestID)

		var req models.InboxPostRequest
		if !bindAndValidate(c, requestID, &req) {
			return nil
		}

		item := &models.InboxItem{
			URL:       utils.StringOrNil(req.URL),
			PageTitle: utils.StringOrNil(req.PageTitle),
			Text:      req.ExtractedText,
		}

		token, err := inboxStore.Put(c.Request().Context(), item)
		if err != nil {
			logger.Error("Inbox store failed", map[string]interface{}{"error": err.Error()})
			return errorJSON(c, http.StatusInternalServerError, "inbox_error", "Failed to store submission", requestID)
		}

		logger.Info("Inbox submission stored", map[string]interface{}{
			"token":       token,
			"text_length": len(req.ExtractedText),
		})

		return c.JSON(http.StatusOK, models.InboxPostResponse{OK: true, Token: token})
	}
}

// InboxGetHandler returns a parked submission by token.
func InboxGetHandler(cfg *config.Config, inboxStore inbox.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := middleware.RequestID(c)

		token := c.Param("token")
		if token == "" {
			token = c.QueryParam("token")
		}
		if token == "" {
			return errorJSON(c, http.StatusBadRequest, "missing_token", "token is required", requestID)
		}

		item, err := inboxStore.Get(c.Request().Context(), token)
		if errors.Is(err, inbox.ErrNotFound) {
			return errorJSON(c, http.StatusNotFound, "not_found", "No submission for this token (it may have expired)", requestID)
		}
		if err != nil {
			return errorJSON(c, http.StatusInternalServerError, "inbox_error", "Failed to read submission", requestID)
		}

		return c.JSON(http.StatusOK, models.InboxGetResponse{OK: true, Item: item})
	}
}
