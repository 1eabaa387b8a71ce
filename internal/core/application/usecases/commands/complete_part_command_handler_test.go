package commands_test

import (
	"errors"
	"testing"
	"time"

	"shopfloor/internal/core/application/usecases/commands"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/part"
	"shopfloor/internal/core/domain/services"
	"shopfloor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCompleteHandler(factory commands.AssignmentUoWFactory, minter commands.PackingCodeMinter) commands.CompletePartCommandHandler {
	return commands.NewCompletePartCommandHandler(
		factory,
		kernel.NewFixedClock(testNow),
		services.NewTransitionResolver(part.DefaultCatalog()),
		minter,
		discardLogger(),
	)
}

type completeFixture struct {
	partRepo     *MockPartRepository
	trackingRepo *MockTrackingRepository
	uow          *MockUoW
	factory      *MockAssignmentUoWFactory
	minter       *MockPackingCodeMinter
}

func newCompleteFixture() completeFixture {
	return completeFixture{
		partRepo:     new(MockPartRepository),
		trackingRepo: new(MockTrackingRepository),
		uow:          new(MockUoW),
		factory:      new(MockAssignmentUoWFactory),
		minter:       new(MockPackingCodeMinter),
	}
}

func TestCompletePartCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	p := newTestPart(t, 1, part.QualityCheck, false)
	task := newOpenTracking(t, p.ID(), 7, part.QualityCheck, testNow.Add(-95*time.Minute-59*time.Second))
	cmd, err := commands.NewCompletePartCommand(p.ID(), 7)
	require.NoError(t, err)

	f := newCompleteFixture()
	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("PartRepository").Return(f.partRepo).Once(),
		f.uow.On("TaskTrackingRepository").Return(f.trackingRepo).Once(),
		f.partRepo.On("GetForUpdate", ctx, p.ID()).Return(p, nil).Once(),
		f.trackingRepo.On("GetActiveByPart", ctx, p.ID()).Return(task, nil).Once(),
		f.trackingRepo.On("Update", ctx, task).Return(nil).Once(),
		f.partRepo.On("Update", ctx, p).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	got, err := newCompleteHandler(f.factory, f.minter).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, got.IsActive())
	assert.Equal(t, part.WeldedFlapped, got.StateAtCompletion())
	assert.Equal(t, part.WeldedFlapped, p.State())
	require.NotNil(t, got.DurationMinutes())
	assert.Equal(t, int64(95), *got.DurationMinutes())
	assert.Equal(t, testNow, *got.EndTime())

	f.uow.AssertExpectations(t)
	f.partRepo.AssertExpectations(t)
	f.trackingRepo.AssertExpectations(t)
	f.minter.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestCompletePartCommandHandler_Handle_PaintedAlwaysPacks(t *testing.T) {
	// Started a minute ago: far short of the cure window, still packed.
	for _, started := range []time.Time{testNow.Add(-time.Minute), testNow.Add(-13 * time.Hour)} {
		ctx := t.Context()
		p := newTestPart(t, 1, part.Painted, false)
		task := newOpenTracking(t, p.ID(), 7, part.Painted, started)
		cmd, _ := commands.NewCompletePartCommand(p.ID(), 7)

		f := newCompleteFixture()
		mock.InOrder(
			f.factory.On("Create").Return(f.uow).Once(),
			f.uow.On("Begin", ctx).Return(nil).Once(),
			f.uow.On("PartRepository").Return(f.partRepo).Once(),
			f.uow.On("TaskTrackingRepository").Return(f.trackingRepo).Once(),
			f.partRepo.On("GetForUpdate", ctx, p.ID()).Return(p, nil).Once(),
			f.trackingRepo.On("GetActiveByPart", ctx, p.ID()).Return(task, nil).Once(),
			f.trackingRepo.On("Update", ctx, task).Return(nil).Once(),
			f.partRepo.On("Update", ctx, p).Return(nil).Once(),
			f.uow.On("Commit", ctx).Return(nil).Once(),
			f.minter.On("Handle", ctx, mock.MatchedBy(func(c commands.MintPackingCodeCommand) bool {
				return c.PartID().IsEqual(p.ID())
			})).Return(commands.MintPackingCodeResult{Path: "codes/x.png"}, nil).Once(),
			f.uow.On("Rollback", ctx).Return(nil).Once(),
		)

		got, err := newCompleteHandler(f.factory, f.minter).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, part.Packed, got.StateAtCompletion())
		assert.Equal(t, part.Packed, p.State())
		f.minter.AssertExpectations(t)
	}
}

func TestCompletePartCommandHandler_Handle_MintFailureKeepsCompletion(t *testing.T) {
	ctx := t.Context()
	p := newTestPart(t, 1, part.Painted, false)
	task := newOpenTracking(t, p.ID(), 7, part.Painted, testNow.Add(-time.Hour))
	cmd, _ := commands.NewCompletePartCommand(p.ID(), 7)

	f := newCompleteFixture()
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("PartRepository").Return(f.partRepo).Once()
	f.uow.On("TaskTrackingRepository").Return(f.trackingRepo).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.partRepo.On("GetForUpdate", ctx, p.ID()).Return(p, nil).Once()
	f.partRepo.On("Update", ctx, p).Return(nil).Once()
	f.trackingRepo.On("GetActiveByPart", ctx, p.ID()).Return(task, nil).Once()
	f.trackingRepo.On("Update", ctx, task).Return(nil).Once()
	f.minter.On("Handle", ctx, mock.Anything).
		Return(commands.MintPackingCodeResult{}, errs.NewStorageUnavailableError("render", errors.New("bucket down"))).Once()

	got, err := newCompleteHandler(f.factory, f.minter).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, part.Packed, got.StateAtCompletion())
	f.minter.AssertExpectations(t)
}

func TestCompletePartCommandHandler_Handle_NoActiveTask(t *testing.T) {
	tests := []struct {
		name   string
		active func(t *testing.T, partID kernel.UUID) (any, error)
	}{
		{"no_open_task", func(_ *testing.T, partID kernel.UUID) (any, error) {
			return nil, errs.NewObjectNotFoundError("taskTracking", partID)
		}},
		{"task_of_other_operator", func(t *testing.T, partID kernel.UUID) (any, error) {
			return newOpenTracking(t, partID, 8, part.QualityCheck, testNow), nil
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			p := newTestPart(t, 1, part.QualityCheck, false)
			cmd, _ := commands.NewCompletePartCommand(p.ID(), 7)

			f := newCompleteFixture()
			f.factory.On("Create").Return(f.uow).Once()
			f.uow.On("Begin", ctx).Return(nil).Once()
			f.uow.On("PartRepository").Return(f.partRepo).Once()
			f.uow.On("TaskTrackingRepository").Return(f.trackingRepo).Once()
			f.uow.On("Rollback", ctx).Return(nil).Once()
			f.partRepo.On("GetForUpdate", ctx, p.ID()).Return(p, nil).Once()
			active, activeErr := tt.active(t, p.ID())
			f.trackingRepo.On("GetActiveByPart", ctx, p.ID()).Return(active, activeErr).Once()

			_, err := newCompleteHandler(f.factory, f.minter).Handle(ctx, cmd)

			require.ErrorIs(t, err, errs.ErrNoActiveTask)
			assert.Equal(t, part.QualityCheck, p.State())
			f.uow.AssertNotCalled(t, "Commit", mock.Anything)
			f.partRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestCompletePartCommandHandler_Handle_NoDefaultSuccessor(t *testing.T) {
	ctx := t.Context()
	p := newTestPart(t, 1, part.Missing, false)
	task := newOpenTracking(t, p.ID(), 7, part.Missing, testNow.Add(-time.Hour))
	cmd, _ := commands.NewCompletePartCommand(p.ID(), 7)

	f := newCompleteFixture()
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("PartRepository").Return(f.partRepo).Once()
	f.uow.On("TaskTrackingRepository").Return(f.trackingRepo).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.partRepo.On("GetForUpdate", ctx, p.ID()).Return(p, nil).Once()
	f.trackingRepo.On("GetActiveByPart", ctx, p.ID()).Return(task, nil).Once()

	_, err := newCompleteHandler(f.factory, f.minter).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidState)
	assert.True(t, task.IsActive())
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCompletePartCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	p := newTestPart(t, 1, part.Painted, false)
	task := newOpenTracking(t, p.ID(), 7, part.Painted, testNow.Add(-time.Hour))
	cmd, _ := commands.NewCompletePartCommand(p.ID(), 7)

	f := newCompleteFixture()
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("PartRepository").Return(f.partRepo).Once()
	f.uow.On("TaskTrackingRepository").Return(f.trackingRepo).Once()
	f.uow.On("Commit", ctx).Return(errors.New("commit error")).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.partRepo.On("GetForUpdate", ctx, p.ID()).Return(p, nil).Once()
	f.partRepo.On("Update", ctx, p).Return(nil).Once()
	f.trackingRepo.On("GetActiveByPart", ctx, p.ID()).Return(task, nil).Once()
	f.trackingRepo.On("Update", ctx, task).Return(nil).Once()

	_, err := newCompleteHandler(f.factory, f.minter).Handle(ctx, cmd)

	require.EqualError(t, err, "commit error")
	f.minter.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestCompletePartCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockAssignmentUoWFactory)

	_, err := newCompleteHandler(factory, nil).Handle(t.Context(), commands.CompletePartCommand{})

	require.ErrorIs(t, err, commands.ErrCompletePartCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
