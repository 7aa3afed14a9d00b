package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Ahlonzo124/job-application-tracker/internal/api/middleware"
	"github.com/Ahlonzo124/job-application-tracker/internal/config"
	"github.com/Ahlonzo124/job-application-tracker/internal/store"
)

var exportHeader = []string{
	"company", "title", "location", "url", "stage",
	"job_type", "work_mode", "seniority",
	"salary_min", "salary_max", "salary_currency", "salary_period",
	"applied_date", "notes",
}

// ExportCSVHandler streams the owner's applications as a CSV download.
func ExportCSVHandler(cfg *config.Config, appStore store.ApplicationStore) echo.HandlerFunc {
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

		filename := fmt.Sprintf("applications-%s.csv", time.Now().UTC().Format("2006-01-02"))
		c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
		c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
		c.Response().WriteHeader(http.StatusOK)

		w := csv.NewWriter(c.Response())
		if err := w.Write(exportHeader); err != nil {
			return err
		}
		for _, app := range apps {
			record := []string{
				app.Company,
				app.Title,
				strDeref(app.Location),
				strDeref(app.URL),
				string(app.Stage),
				strDeref(app.JobType),
				strDeref(app.WorkMode),
				strDeref(app.Seniority),
				floatDeref(app.SalaryMin),
				floatDeref(app.SalaryMax),
				strDeref(app.SalaryCurrency),
				strDeref(app.SalaryPeriod),
				app.AppliedDate.UTC().Format(time.RFC3339),
				strDeref(app.Notes),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	}
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func floatDeref(f *float64) string {
	if f == nil {
		return ""
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", *f), "0"), ".")
}
