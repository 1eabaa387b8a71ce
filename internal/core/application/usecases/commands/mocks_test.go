package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"shopfloor/internal/core/application/usecases/commands"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/operator"
	"shopfloor/internal/core/domain/model/part"
	"shopfloor/internal/core/domain/model/project"
	"shopfloor/internal/core/domain/model/tracking"
	"shopfloor/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockPartRepository struct{ mock.Mock }

func (m *MockPartRepository) Add(ctx context.Context, p *part.Part) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartRepository) Update(ctx context.Context, p *part.Part) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartRepository) Get(ctx context.Context, id kernel.UUID) (*part.Part, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*part.Part), args.Error(1)
}

func (m *MockPartRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*part.Part, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*part.Part), args.Error(1)
}

func (m *MockPartRepository) GetByProjectAndState(ctx context.Context, projectID int64, state part.State) ([]*part.Part, error) {
	args := m.Called(ctx, projectID, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*part.Part), args.Error(1)
}

func (m *MockPartRepository) GetPackedWithoutCode(ctx context.Context, limit int) ([]*part.Part, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*part.Part), args.Error(1)
}

func (m *MockPartRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTrackingRepository struct{ mock.Mock }

func (m *MockTrackingRepository) Add(ctx context.Context, t *tracking.TaskTracking) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTrackingRepository) Update(ctx context.Context, t *tracking.TaskTracking) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTrackingRepository) Get(ctx context.Context, id int64) (*tracking.TaskTracking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracking.TaskTracking), args.Error(1)
}

func (m *MockTrackingRepository) GetActiveByPart(ctx context.Context, partID kernel.UUID) (*tracking.TaskTracking, error) {
	args := m.Called(ctx, partID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracking.TaskTracking), args.Error(1)
}

func (m *MockTrackingRepository) GetActiveByOperator(ctx context.Context, operatorID int64) (*tracking.TaskTracking, error) {
	args := m.Called(ctx, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracking.TaskTracking), args.Error(1)
}

func (m *MockTrackingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProjectRepository struct{ mock.Mock }

func (m *MockProjectRepository) Add(ctx context.Context, p *project.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepository) Get(ctx context.Context, id int64) (*project.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

func (m *MockProjectRepository) GetIDsWithPartsInState(ctx context.Context, state part.State) ([]int64, error) {
	args := m.Called(ctx, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

type MockOperatorRepository struct{ mock.Mock }

func (m *MockOperatorRepository) Add(ctx context.Context, o *operator.Operator) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOperatorRepository) Update(ctx context.Context, o *operator.Operator) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOperatorRepository) Get(ctx context.Context, id int64) (*operator.Operator, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*operator.Operator), args.Error(1)
}

func (m *MockOperatorRepository) GetForUpdate(ctx context.Context, id int64) (*operator.Operator, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*operator.Operator), args.Error(1)
}

// MockUoW satisfies every unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) PartRepository() ports.PartRepository {
	args := m.Called()
	return args.Get(0).(ports.PartRepository)
}

func (m *MockUoW) TaskTrackingRepository() ports.TaskTrackingRepository {
	args := m.Called()
	return args.Get(0).(ports.TaskTrackingRepository)
}

func (m *MockUoW) ProjectRepository() ports.ProjectRepository {
	args := m.Called()
	return args.Get(0).(ports.ProjectRepository)
}

func (m *MockUoW) OperatorRepository() ports.OperatorRepository {
	args := m.Called()
	return args.Get(0).(ports.OperatorRepository)
}

type MockAssignmentUoWFactory struct{ mock.Mock }

func (m *MockAssignmentUoWFactory) Create() commands.AssignmentUoW {
	args := m.Called()
	return args.Get(0).(commands.AssignmentUoW)
}

type MockPartUoWFactory struct{ mock.Mock }

func (m *MockPartUoWFactory) Create() commands.PartUoW {
	args := m.Called()
	return args.Get(0).(commands.PartUoW)
}

type MockProjectUoWFactory struct{ mock.Mock }

func (m *MockProjectUoWFactory) Create() commands.ProjectUoW {
	args := m.Called()
	return args.Get(0).(commands.ProjectUoW)
}

type MockOperatorUoWFactory struct{ mock.Mock }

func (m *MockOperatorUoWFactory) Create() commands.OperatorUoW {
	args := m.Called()
	return args.Get(0).(commands.OperatorUoW)
}

type MockTrackingUoWFactory struct{ mock.Mock }

func (m *MockTrackingUoWFactory) Create() commands.TrackingUoW {
	args := m.Called()
	return args.Get(0).(commands.TrackingUoW)
}

type MockCodeRenderer struct{ mock.Mock }

func (m *MockCodeRenderer) Render(ctx context.Context, payload string, width, height int, filename string) (string, error) {
	args := m.Called(ctx, payload, width, height, filename)
	return args.String(0), args.Error(1)
}

func (m *MockCodeRenderer) Delete(ctx context.Context, filename string) error {
	args := m.Called(ctx, filename)
	return args.Error(0)
}

type MockPackingCodeMinter struct{ mock.Mock }

func (m *MockPackingCodeMinter) Handle(
	ctx context.Context,
	command commands.MintPackingCodeCommand,
) (commands.MintPackingCodeResult, error) {
	args := m.Called(ctx, command)
	return args.Get(0).(commands.MintPackingCodeResult), args.Error(1)
}

type MockCompletionChecker struct{ mock.Mock }

func (m *MockCompletionChecker) Handle(
	ctx context.Context,
	command commands.CheckProjectCompletionCommand,
) (commands.ProjectCompletionResult, error) {
	args := m.Called(ctx, command)
	return args.Get(0).(commands.ProjectCompletionResult), args.Error(1)
}

func newTestPart(t *testing.T, projectID int64, state part.State, ready bool) *part.Part {
	t.Helper()
	w := 12.5
	d, err := part.NewDescriptor("Bracket A", "S275", &w)
	require.NoError(t, err)
	p, err := part.RestorePart(kernel.NewUUID(), projectID, d, state, "", ready, nil, "")
	require.NoError(t, err)
	return p
}

func newTestOperator(t *testing.T, id int64, active bool) *operator.Operator {
	t.Helper()
	o, err := operator.RestoreOperator(id, "Rosa Paz", active)
	require.NoError(t, err)
	return o
}

func newTestProject(t *testing.T, id int64, partIDs ...kernel.UUID) *project.Project {
	t.Helper()
	p, err := project.RestoreProject(id, "ACME North", "", nil, testNow.AddDate(0, -1, 0), partIDs)
	require.NoError(t, err)
	return p
}

func newOpenTracking(t *testing.T, partID kernel.UUID, operatorID int64, state part.State, start time.Time) *tracking.TaskTracking {
	t.Helper()
	task, err := tracking.RestoreTaskTracking(31, partID, operatorID, state, part.Unknown, start, nil, nil, true, "")
	require.NoError(t, err)
	return task
}
