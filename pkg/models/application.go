package models

import (
	"fmt"
	"time"
)

// Stage is the kanban column a saved application sits in.
type Stage string

const (
	StageApplied   Stage = "APPLIED"
	StageInterview Stage = "INTERVIEW"
	StageOffer     Stage = "OFFER"
	StageHired     Stage = "HIRED"
	StageRejected  Stage = "REJECTED"
)

// Stages lists all valid stages in board order.
var Stages = []Stage{StageApplied, StageInterview, StageOffer, StageHired, StageRejected}

// ParseStage validates a stage string.
func ParseStage(s string) (Stage, error) {
	for _, stage := range Stages {
		if string(stage) == s {
			return stage, nil
		}
	}
	return "", fmt.Errorf("invalid stage: %q", s)
}

// Application is the persisted record produced by a successful pipeline run.
// URL always stores the normalized form, never the raw caller-supplied string.
type Application struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`

	Company  string  `json:"company"`
	Title    string  `json:"title"`
	Location *string `json:"location"`
	URL      *string `json:"url"`

	JobType   *string `json:"job_type"`
	WorkMode  *string `json:"work_mode"`
	Seniority *string `json:"seniority"`

	SalaryMin      *float64 `json:"salary_min"`
	SalaryMax      *float64 `json:"salary_max"`
	SalaryCurrency *string  `json:"salary_currency"`
	SalaryPeriod   *string  `json:"salary_period"`

	DescriptionSummary  *string  `json:"description_summary"`
	KeyRequirements     []string `json:"key_requirements"`
	KeyResponsibilities []string `json:"key_responsibilities"`

	Stage     Stage   `json:"stage"`
	SortOrder int     `json:"sort_order"`
	Notes     *string `json:"notes"`

	AppliedDate time.Time `json:"applied_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// InboxItem is an extension-submitted posting parked for pickup by token.
type InboxItem struct {
	Token      string    `json:"token"`
	URL        *string   `json:"url"`
	PageTitle  *string   `json:"page_title"`
	Text       string    `json:"extracted_text"`
	ReceivedAt time.Time `json:"received_at"`
}
