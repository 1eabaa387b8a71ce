package http

import (
	"time"

	"shopfloor/internal/core/application/usecases/commands"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/operator"
	"shopfloor/internal/core/domain/model/part"
	"shopfloor/internal/core/domain/model/project"
	"shopfloor/internal/core/domain/model/tracking"
	"shopfloor/internal/core/domain/services"
)

type operatorRequest struct {
	OperatorID int64 `json:"operatorId"`
}

type transitionRequest struct {
	OperatorID  int64  `json:"operatorId"`
	TargetState string `json:"targetState"`
	Description string `json:"description"`
}

type scanRequest struct {
	Payload string `json:"payload"`
}

type partSpecRequest struct {
	PartTypeName string   `json:"partTypeName"`
	MaterialName string   `json:"materialName"`
	WeightKg     *float64 `json:"weightKg"`
	Observations string   `json:"observations"`
}

type projectRequest struct {
	ClientAlias      string            `json:"clientAlias"`
	Contact          string            `json:"contact"`
	InstallationDate *time.Time        `json:"installationDate"`
	Parts            []partSpecRequest `json:"parts"`
}

func (r projectRequest) specs() []commands.PartSpec {
	specs := make([]commands.PartSpec, len(r.Parts))
	for i, p := range r.Parts {
		specs[i] = commands.PartSpec{
			PartTypeName: p.PartTypeName,
			MaterialName: p.MaterialName,
			WeightKg:     p.WeightKg,
			Observations: p.Observations,
		}
	}
	return specs
}

type operatorCreateRequest struct {
	DisplayName string `json:"displayName"`
}

type operatorActiveRequest struct {
	Active bool `json:"active"`
}

type TrackingResponse struct {
	ID                 int64       `json:"id"`
	PartID             kernel.UUID `json:"partId"`
	OperatorID         int64       `json:"operatorId"`
	StateAtStart       part.State  `json:"stateAtStart"`
	StateAtCompletion  *part.State `json:"stateAtCompletion,omitempty"`
	StartTime          time.Time   `json:"startTime"`
	EndTime            *time.Time  `json:"endTime,omitempty"`
	DurationMinutes    *int64      `json:"durationMinutes,omitempty"`
	IsActive           bool        `json:"isActive"`
	OutcomeDescription string      `json:"outcomeDescription,omitempty"`
}

func newTrackingResponse(t *tracking.TaskTracking) TrackingResponse {
	resp := TrackingResponse{
		ID:                 t.ID(),
		PartID:             t.PartID(),
		OperatorID:         t.OperatorID(),
		StateAtStart:       t.StateAtStart(),
		StartTime:          t.StartTime(),
		EndTime:            t.EndTime(),
		DurationMinutes:    t.DurationMinutes(),
		IsActive:           t.IsActive(),
		OutcomeDescription: t.OutcomeDescription(),
	}
	if !t.IsActive() {
		completed := t.StateAtCompletion()
		resp.StateAtCompletion = &completed
	}
	return resp
}

type PartResponse struct {
	ID               kernel.UUID `json:"id"`
	ProjectID        int64       `json:"projectId"`
	PartTypeName     string      `json:"partTypeName"`
	MaterialName     string      `json:"materialName"`
	WeightKg         *float64    `json:"weightKg,omitempty"`
	State            part.State  `json:"state"`
	Observations     string      `json:"observations,omitempty"`
	ReadyForDelivery bool        `json:"readyForDelivery"`
	ReceivedAt       *time.Time  `json:"receivedAt,omitempty"`
	PackingCodePath  string      `json:"packingCodePath,omitempty"`
}

func newPartResponse(p *part.Part) PartResponse {
	d := p.Descriptor()
	return PartResponse{
		ID:               p.ID(),
		ProjectID:        p.ProjectID(),
		PartTypeName:     d.PartTypeName(),
		MaterialName:     d.MaterialName(),
		WeightKg:         d.WeightKg(),
		State:            p.State(),
		Observations:     p.Observations(),
		ReadyForDelivery: p.IsReadyForDelivery(),
		ReceivedAt:       p.ReceivedAt(),
		PackingCodePath:  p.PackingCodePath(),
	}
}

type CompletionResponse struct {
	ProjectID int64 `json:"projectId"`
	InTransit int   `json:"inTransit"`
	Ready     int   `json:"ready"`
	Advanced  bool  `json:"advanced"`
}

func newCompletionResponse(r commands.ProjectCompletionResult) CompletionResponse {
	return CompletionResponse{
		ProjectID: r.ProjectID,
		InTransit: r.InTransit,
		Ready:     r.Ready,
		Advanced:  r.Advanced,
	}
}

type ScanResponse struct {
	Part       PartResponse        `json:"part"`
	Completion *CompletionResponse `json:"completion,omitempty"`
}

type ProjectResponse struct {
	ID               int64         `json:"id"`
	ClientAlias      string        `json:"clientAlias"`
	Contact          string        `json:"contact,omitempty"`
	InstallationDate *time.Time    `json:"installationDate,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
	PartIDs          []kernel.UUID `json:"partIds"`
}

func newProjectResponse(p *project.Project) ProjectResponse {
	return ProjectResponse{
		ID:               p.ID(),
		ClientAlias:      p.ClientAlias(),
		Contact:          p.Contact(),
		InstallationDate: p.InstallationDate(),
		CreatedAt:        p.CreatedAt(),
		PartIDs:          p.PartIDs(),
	}
}

type OperatorResponse struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"displayName"`
	Active      bool   `json:"active"`
}

func newOperatorResponse(o *operator.Operator) OperatorResponse {
	return OperatorResponse{ID: o.ID(), DisplayName: o.DisplayName(), Active: o.IsActive()}
}

type PeriodCountsResponse struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

type MetricsResponse struct {
	OperatorID             int64                  `json:"operatorId"`
	From                   time.Time              `json:"from"`
	To                     time.Time              `json:"to"`
	TotalTasks             int                    `json:"totalTasks"`
	AverageDurationMinutes float64                `json:"averageDurationMinutes"`
	FormattedAverage       string                 `json:"formattedAverage"`
	AverageDurationByState map[part.State]float64 `json:"averageDurationByState"`
	CountsByInitialState   map[part.State]int     `json:"countsByInitialState"`
	CountsByPeriod         PeriodCountsResponse   `json:"countsByPeriod"`
}

func newMetricsResponse(m services.OperatorMetrics) MetricsResponse {
	return MetricsResponse{
		OperatorID:             m.OperatorID,
		From:                   m.Window.From,
		To:                     m.Window.To,
		TotalTasks:             m.TotalTasks,
		AverageDurationMinutes: m.AverageDurationMinutes,
		FormattedAverage:       m.FormattedAverage(),
		AverageDurationByState: m.AverageDurationByState,
		CountsByInitialState:   m.CountsByInitialState,
		CountsByPeriod: PeriodCountsResponse{
			Day:   m.CountsByPeriod.Day,
			Month: m.CountsByPeriod.Month,
			Year:  m.CountsByPeriod.Year,
		},
	}
}
