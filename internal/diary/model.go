// Package diary defines the canonical Daily Diary record produced by the
// extraction pipeline, its map interchange form, and its validation rules.
package diary

import (
	"fmt"
	"strings"
	"time"

	"github.com/samuel-girma/site-diary/constants"
)

// Activity is one row of the major-activities section.
type Activity struct {
	SN          int    `json:"sn"`
	Description string `json:"description"`
	Location    string `json:"location,omitempty"`
	Quantity    string `json:"quantity,omitempty"`
	Unit        string `json:"unit,omitempty"`
}

// Equipment is one row of the contractor's-equipment section.
type Equipment struct {
	SN             int    `json:"sn"`
	Equipment      string `json:"equipment"`
	No             string `json:"no"`
	OperatingHours string `json:"operating_hours,omitempty"`
	IdleHours      string `json:"idle_hours,omitempty"`
	Status         string `json:"status,omitempty"`
	Remarks        string `json:"remarks,omitempty"`
}

// Personnel is one row of the contractor's-personnel section.
type Personnel struct {
	SN        int    `json:"sn"`
	Personnel string `json:"personnel"`
	No        string `json:"no"`
	Hours     string `json:"hours,omitempty"`
	Role      string `json:"role,omitempty"`
}

// Material is one row of the materials section. Materials carry no serial
// number on the printed form.
type Material struct {
	Type     string `json:"type"`
	Unit     string `json:"unit"`
	Quantity string `json:"quantity"`
	Location string `json:"location,omitempty"`
}

// UnsafeAct is one row of the unsafe-acts/conditions section.
type UnsafeAct struct {
	SN          int    `json:"sn"`
	Description string `json:"description"`
	Severity    string `json:"severity,omitempty"`
	ActionTaken string `json:"action_taken,omitempty"`
}

// Diary is the canonical Daily Diary record. Serial numbers within each
// section are 1-based, contiguous display indexes recomputed by Normalize;
// they are not stable identifiers.
type Diary struct {
	Project    string `json:"project"`
	Employer   string `json:"employer"`
	Consultant string `json:"consultant"`
	Contractor string `json:"contractor"`

	Date          string `json:"date"` // DD-MM-YYYY once normalized
	TimeMorning   bool   `json:"time_morning"`
	TimeAfternoon bool   `json:"time_afternoon"`

	Location string `json:"location"`
	Weather  string `json:"weather"`

	Activities []Activity  `json:"activities"`
	Equipment  []Equipment `json:"equipment"`
	Personnel  []Personnel `json:"personnel"`
	Materials  []Material  `json:"materials"`

	UnsafeActs    []UnsafeAct `json:"unsafe_acts"`
	NearMiss      string      `json:"near_miss"`
	Obstruction   string      `json:"obstruction"`
	EngineersNote string      `json:"engineers_note"`

	PreparedBy string `json:"prepared_by"`
	CheckedBy  string `json:"checked_by"`
	ApprovedBy string `json:"approved_by"`

	DocumentNumber string `json:"document_number"`
	PageNumber     string `json:"page_number"`
	Revision       string `json:"revision"`
}

// New returns an empty record with form defaults applied.
func New() Diary {
	return Diary{Weather: constants.DefaultWeather}
}

// Validate reports business-rule violations as human-readable messages.
// It never mutates the record; an empty slice means the record is valid.
// Unlike normalization, the date check here is strict.
func (d Diary) Validate() []string {
	var errs []string

	if strings.TrimSpace(d.Project) == "" {
		errs = append(errs, "Project name is required")
	}
	if strings.TrimSpace(d.Date) == "" {
		errs = append(errs, "Date is required")
	} else if _, err := time.Parse("02-01-2006", d.Date); err != nil {
		errs = append(errs, "Date must be in DD-MM-YYYY format")
	}
	for i, a := range d.Activities {
		if strings.TrimSpace(a.Description) == "" {
			errs = append(errs, fmt.Sprintf("Activity %d description is required", i+1))
		}
	}
	return errs
}

// Summary returns display statistics for the record, including any current
// validation findings.
func (d Diary) Summary() map[string]any {
	return map[string]any{
		"total_activities":  len(d.Activities),
		"total_equipment":   len(d.Equipment),
		"total_personnel":   len(d.Personnel),
		"total_unsafe_acts": len(d.UnsafeActs),
		"has_morning_work":  d.TimeMorning,
		"has_afternoon_work": d.TimeAfternoon,
		"weather_condition": d.Weather,
		"validation_errors": d.Validate(),
	}
}
