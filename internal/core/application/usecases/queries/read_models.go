// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Handlers run raw SQL through GORM and return read models shaped for the
// board, the operator screens and the metrics report.
package queries

import (
	"database/sql"
	"time"

	"shopfloor/internal/adapters/out/postgres/pgerr"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/part"
	"shopfloor/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// TrackingView is a task tracking joined with its part and operator.
type TrackingView struct {
	ID                 int64       `json:"id"`
	PartID             kernel.UUID `json:"partId"`
	PartTypeName       string      `json:"partTypeName"`
	ProjectID          int64       `json:"projectId"`
	OperatorID         int64       `json:"operatorId"`
	OperatorName       string      `json:"operatorName"`
	StateAtStart       part.State  `json:"stateAtStart"`
	StateAtCompletion  *part.State `json:"stateAtCompletion,omitempty"`
	StartTime          time.Time   `json:"startTime"`
	EndTime            *time.Time  `json:"endTime,omitempty"`
	DurationMinutes    *int64      `json:"durationMinutes,omitempty"`
	IsActive           bool        `json:"isActive"`
	OutcomeDescription string      `json:"outcomeDescription,omitempty"`
}

// PartSummary is one line of the work board.
type PartSummary struct {
	ID               kernel.UUID `json:"id"`
	ProjectID        int64       `json:"projectId"`
	ClientAlias      string      `json:"clientAlias"`
	InstallationDate *time.Time  `json:"installationDate,omitempty"`
	PartTypeName     string      `json:"partTypeName"`
	MaterialName     string      `json:"materialName"`
	WeightKg         *float64    `json:"weightKg,omitempty"`
	State            part.State  `json:"state"`
	Observations     string      `json:"observations,omitempty"`
	ReadyForDelivery bool        `json:"readyForDelivery"`
	ReceivedAt       *time.Time  `json:"receivedAt,omitempty"`
	HasPackingCode   bool        `json:"hasPackingCode"`
	ActiveOperatorID *int64      `json:"activeOperatorId,omitempty"`
}

const trackingViewSelect = `
	SELECT
		t.id,
		t.part_id,
		p.part_type_name,
		p.project_id,
		t.operator_id,
		o.display_name,
		t.state_at_start,
		t.state_at_completion,
		t.start_time,
		t.end_time,
		t.duration_minutes,
		t.is_active,
		t.outcome_description
	FROM task_trackings t
	JOIN parts p ON p.id = t.part_id
	JOIN operators o ON o.id = t.operator_id
`

const partSummarySelect = `
	SELECT
		p.id,
		p.project_id,
		pr.client_alias,
		pr.installation_date,
		p.part_type_name,
		p.material_name,
		p.weight_kg,
		p.state,
		p.observations,
		p.ready_for_delivery,
		p.received_at,
		p.packing_code_path <> '' AS has_packing_code,
		t.operator_id
	FROM parts p
	JOIN projects pr ON pr.id = p.project_id
	LEFT JOIN task_trackings t ON t.part_id = p.id AND t.is_active
`

func scanTrackingViews(rows *sql.Rows) ([]TrackingView, error) {
	views := make([]TrackingView, 0)

	for rows.Next() {
		var (
			view              TrackingView
			partID            uuid.UUID
			stateAtStart      string
			stateAtCompletion *string
		)

		err := rows.Scan(
			&view.ID,
			&partID,
			&view.PartTypeName,
			&view.ProjectID,
			&view.OperatorID,
			&view.OperatorName,
			&stateAtStart,
			&stateAtCompletion,
			&view.StartTime,
			&view.EndTime,
			&view.DurationMinutes,
			&view.IsActive,
			&view.OutcomeDescription,
		)
		if err != nil {
			return nil, pgerr.Classify("scan tracking", err)
		}

		if view.PartID, err = kernel.UUIDFromBytes(partID[:]); err != nil {
			return nil, err
		}
		if view.StateAtStart, err = part.ParseState(stateAtStart); err != nil {
			return nil, err
		}
		if stateAtCompletion != nil {
			completion, err := part.ParseState(*stateAtCompletion)
			if err != nil {
				return nil, err
			}
			view.StateAtCompletion = &completion
		}
		view.StartTime = view.StartTime.UTC()
		view.EndTime = utc(view.EndTime)

		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, pgerr.Classify("read trackings", err)
	}
	return views, nil
}

func scanPartSummaries(rows *sql.Rows) ([]PartSummary, error) {
	summaries := make([]PartSummary, 0)

	for rows.Next() {
		var (
			summary PartSummary
			id      uuid.UUID
			state   string
		)

		err := rows.Scan(
			&id,
			&summary.ProjectID,
			&summary.ClientAlias,
			&summary.InstallationDate,
			&summary.PartTypeName,
			&summary.MaterialName,
			&summary.WeightKg,
			&state,
			&summary.Observations,
			&summary.ReadyForDelivery,
			&summary.ReceivedAt,
			&summary.HasPackingCode,
			&summary.ActiveOperatorID,
		)
		if err != nil {
			return nil, pgerr.Classify("scan part", err)
		}

		if summary.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if summary.State, err = part.ParseState(state); err != nil {
			return nil, err
		}
		summary.InstallationDate = utc(summary.InstallationDate)
		summary.ReceivedAt = utc(summary.ReceivedAt)

		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, pgerr.Classify("read parts", err)
	}
	return summaries, nil
}

// toTracking rebuilds the entity behind a view for domain services.
func (v TrackingView) toTracking() (*tracking.TaskTracking, error) {
	var completion part.State
	if v.StateAtCompletion != nil {
		completion = *v.StateAtCompletion
	}
	return tracking.RestoreTaskTracking(
		v.ID,
		v.PartID,
		v.OperatorID,
		v.StateAtStart,
		completion,
		v.StartTime,
		v.EndTime,
		v.DurationMinutes,
		v.IsActive,
		v.OutcomeDescription,
	)
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
