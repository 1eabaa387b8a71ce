package commands_test

import (
	"errors"
	"testing"

	"shopfloor/internal/core/application/usecases/commands"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/operator"
	"shopfloor/internal/core/domain/model/part"
	"shopfloor/internal/core/domain/model/project"
	"shopfloor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReceivePartCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	p := newTestPart(t, 1, part.Created, false)
	cmd, err := commands.NewReceivePartCommand(p.ID())
	require.NoError(t, err)

	partRepo := new(MockPartRepository)
	uow := new(MockUoW)
	factory := new(MockPartUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PartRepository").Return(partRepo).Once(),
		partRepo.On("GetForUpdate", ctx, p.ID()).Return(p, nil).Once(),
		partRepo.On("Update", ctx, p).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	got, err := commands.NewReceivePartCommandHandler(factory, kernel.NewFixedClock(testNow)).Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, got.ReceivedAt())
	assert.Equal(t, testNow, *got.ReceivedAt())
	uow.AssertExpectations(t)
}

func TestRegisterProjectCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	install := testNow.AddDate(0, 1, 0)
	w := 3.25
	cmd, err := commands.NewRegisterProjectCommand("ACME North", "ops@acme.test", &install, []commands.PartSpec{
		{PartTypeName: "Bracket A", MaterialName: "S275", WeightKg: &w},
		{PartTypeName: "Beam B", MaterialName: "S355", Observations: "long"},
	})
	require.NoError(t, err)

	partRepo := new(MockPartRepository)
	projectRepo := new(MockProjectRepository)
	uow := new(MockUoW)
	factory := new(MockProjectUoWFactory)

	var added []*part.Part
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProjectRepository").Return(projectRepo).Once(),
		projectRepo.On("Add", ctx, mock.AnythingOfType("*project.Project")).
			Run(func(args mock.Arguments) {
				_ = args.Get(1).(*project.Project).AssignID(11)
			}).
			Return(nil).Once(),
		uow.On("PartRepository").Return(partRepo).Once(),
		partRepo.On("Add", ctx, mock.AnythingOfType("*part.Part")).
			Run(func(args mock.Arguments) {
				added = append(added, args.Get(1).(*part.Part))
			}).
			Return(nil).Twice(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	prj, err := commands.NewRegisterProjectCommandHandler(factory, kernel.NewFixedClock(testNow)).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, int64(11), prj.ID())
	assert.Equal(t, testNow, prj.CreatedAt())
	require.Len(t, added, 2)
	require.Len(t, prj.PartIDs(), 2)
	for i, p := range added {
		assert.Equal(t, part.Created, p.State())
		assert.Equal(t, int64(11), p.ProjectID())
		assert.True(t, p.ID().IsEqual(prj.PartIDs()[i]))
	}
	assert.Equal(t, "Beam B", added[1].Descriptor().PartTypeName())
	assert.Equal(t, "long", added[1].Observations())
	uow.AssertExpectations(t)
}

func TestRegisterProjectCommandHandler_Handle_InvalidAlias(t *testing.T) {
	cmd, err := commands.NewRegisterProjectCommand("AB", "", nil, []commands.PartSpec{{PartTypeName: "x", MaterialName: "y"}})
	require.NoError(t, err)

	factory := new(MockProjectUoWFactory)
	_, err = commands.NewRegisterProjectCommandHandler(factory, kernel.NewFixedClock(testNow)).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	factory.AssertNotCalled(t, "Create")
}

func TestRegisterProjectCommandHandler_Handle_PartAddFails(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewRegisterProjectCommand("ACME North", "", nil, []commands.PartSpec{
		{PartTypeName: "Bracket A", MaterialName: "S275"},
	})

	partRepo := new(MockPartRepository)
	projectRepo := new(MockProjectRepository)
	uow := new(MockUoW)
	factory := new(MockProjectUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ProjectRepository").Return(projectRepo).Once()
	uow.On("PartRepository").Return(partRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	projectRepo.On("Add", ctx, mock.Anything).
		Run(func(args mock.Arguments) { _ = args.Get(1).(*project.Project).AssignID(11) }).
		Return(nil).Once()
	partRepo.On("Add", ctx, mock.Anything).Return(errs.NewStorageUnavailableError("insert part", errors.New("conn reset"))).Once()

	_, err := commands.NewRegisterProjectCommandHandler(factory, kernel.NewFixedClock(testNow)).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStorageUnavailable)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestRegisterOperatorCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRegisterOperatorCommand("  Rosa Paz ")
	require.NoError(t, err)

	operatorRepo := new(MockOperatorRepository)
	uow := new(MockUoW)
	factory := new(MockOperatorUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OperatorRepository").Return(operatorRepo).Once(),
		operatorRepo.On("Add", ctx, mock.AnythingOfType("*operator.Operator")).
			Run(func(args mock.Arguments) { _ = args.Get(1).(*operator.Operator).AssignID(3) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	o, err := commands.NewRegisterOperatorCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, int64(3), o.ID())
	assert.Equal(t, "Rosa Paz", o.DisplayName())
	assert.True(t, o.IsActive())
}

func TestSetOperatorActiveCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	o := newTestOperator(t, 3, true)
	cmd, err := commands.NewSetOperatorActiveCommand(3, false)
	require.NoError(t, err)

	operatorRepo := new(MockOperatorRepository)
	uow := new(MockUoW)
	factory := new(MockOperatorUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OperatorRepository").Return(operatorRepo).Once(),
		operatorRepo.On("GetForUpdate", ctx, int64(3)).Return(o, nil).Once(),
		operatorRepo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	got, err := commands.NewSetOperatorActiveCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, got.IsActive())
}

func TestDeletePartCommandHandler_Handle(t *testing.T) {
	t.Run("removes_image_after_commit", func(t *testing.T) {
		ctx := t.Context()
		p := newTestPart(t, 1, part.Packed, false)
		require.NoError(t, p.AttachPackingCode("codes/"+p.ID().String()+"_packing_qr.png"))
		cmd, err := commands.NewDeletePartCommand(p.ID())
		require.NoError(t, err)

		partRepo := new(MockPartRepository)
		renderer := new(MockCodeRenderer)
		uow := new(MockUoW)
		factory := new(MockPartUoWFactory)

		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("PartRepository").Return(partRepo).Once(),
			partRepo.On("GetForUpdate", ctx, p.ID()).Return(p, nil).Once(),
			partRepo.On("Delete", ctx, p.ID()).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			renderer.On("Delete", ctx, p.ID().String()+"_packing_qr.png").Return(errors.New("gone")).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		err = commands.NewDeletePartCommandHandler(factory, renderer, discardLogger()).Handle(ctx, cmd)

		require.NoError(t, err)
		renderer.AssertExpectations(t)
	})

	t.Run("no_image", func(t *testing.T) {
		ctx := t.Context()
		p := newTestPart(t, 1, part.Created, false)
		cmd, _ := commands.NewDeletePartCommand(p.ID())

		partRepo := new(MockPartRepository)
		renderer := new(MockCodeRenderer)
		uow := new(MockUoW)
		factory := new(MockPartUoWFactory)

		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("PartRepository").Return(partRepo).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		partRepo.On("GetForUpdate", ctx, p.ID()).Return(p, nil).Once()
		partRepo.On("Delete", ctx, p.ID()).Return(nil).Once()

		err := commands.NewDeletePartCommandHandler(factory, renderer, discardLogger()).Handle(ctx, cmd)

		require.NoError(t, err)
		renderer.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("not_found", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		cmd, _ := commands.NewDeletePartCommand(id)

		partRepo := new(MockPartRepository)
		uow := new(MockUoW)
		factory := new(MockPartUoWFactory)

		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("PartRepository").Return(partRepo).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		partRepo.On("GetForUpdate", ctx, id).Return(nil, errs.NewObjectNotFoundError("part", id)).Once()

		err := commands.NewDeletePartCommandHandler(factory, new(MockCodeRenderer), discardLogger()).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestDeleteTaskTrackingCommandHandler_Handle(t *testing.T) {
	for _, repoErr := range []error{nil, errs.NewObjectNotFoundError("taskTracking", 5)} {
		ctx := t.Context()
		cmd, err := commands.NewDeleteTaskTrackingCommand(5)
		require.NoError(t, err)

		trackingRepo := new(MockTrackingRepository)
		uow := new(MockUoW)
		factory := new(MockTrackingUoWFactory)

		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("TaskTrackingRepository").Return(trackingRepo).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Maybe()
		trackingRepo.On("Delete", ctx, int64(5)).Return(repoErr).Once()

		err = commands.NewDeleteTaskTrackingCommandHandler(factory).Handle(ctx, cmd)

		if repoErr == nil {
			require.NoError(t, err)
			uow.AssertCalled(t, "Commit", ctx)
		} else {
			require.ErrorIs(t, err, errs.ErrObjectNotFound)
			uow.AssertNotCalled(t, "Commit", mock.Anything)
		}
	}
}

func TestRetryPackingCodesCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	ok := newTestPart(t, 1, part.Packed, false)
	broken := newTestPart(t, 1, part.Packed, false)
	cmd, err := commands.NewRetryPackingCodesCommand(10)
	require.NoError(t, err)

	partRepo := new(MockPartRepository)
	minter := new(MockPackingCodeMinter)
	uow := new(MockUoW)
	factory := new(MockPartUoWFactory)

	forPart := func(id kernel.UUID) any {
		return mock.MatchedBy(func(c commands.MintPackingCodeCommand) bool { return c.PartID().IsEqual(id) })
	}

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PartRepository").Return(partRepo).Once(),
		partRepo.On("GetPackedWithoutCode", ctx, 10).Return([]*part.Part{ok, broken}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		minter.On("Handle", ctx, forPart(ok.ID())).Return(commands.MintPackingCodeResult{Path: "a"}, nil).Once(),
		minter.On("Handle", ctx, forPart(broken.ID())).Return(commands.MintPackingCodeResult{}, errors.New("render failed")).Once(),
	)

	minted, err := commands.NewRetryPackingCodesCommandHandler(factory, minter).Handle(ctx, cmd)

	assert.Equal(t, 1, minted)
	require.ErrorContains(t, err, "render failed")
	require.ErrorContains(t, err, broken.ID().String())
	minter.AssertExpectations(t)
}

func TestSweepDeliveriesCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	projectRepo := new(MockProjectRepository)
	checker := new(MockCompletionChecker)
	uow := new(MockUoW)
	factory := new(MockProjectUoWFactory)

	forProject := func(id int64) any {
		return mock.MatchedBy(func(c commands.CheckProjectCompletionCommand) bool { return c.ProjectID() == id })
	}

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProjectRepository").Return(projectRepo).Once(),
		projectRepo.On("GetIDsWithPartsInState", ctx, part.InTransitToSite).Return([]int64{4, 5}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		checker.On("Handle", ctx, forProject(4)).
			Return(commands.ProjectCompletionResult{ProjectID: 4, InTransit: 2, Ready: 1}, nil).Once(),
		checker.On("Handle", ctx, forProject(5)).
			Return(commands.ProjectCompletionResult{ProjectID: 5, InTransit: 1, Ready: 1, Advanced: true}, nil).Once(),
	)

	advanced, err := commands.NewSweepDeliveriesCommandHandler(factory, checker).
		Handle(ctx, commands.NewSweepDeliveriesCommand())

	require.NoError(t, err)
	require.Len(t, advanced, 1)
	assert.Equal(t, int64(5), advanced[0].ProjectID)
	checker.AssertExpectations(t)
}

func TestCommandConstructors_Validation(t *testing.T) {
	tests := []struct {
		name    string
		build   func() error
		wantErr error
	}{
		{"take_part_nil_uuid", func() error {
			_, err := commands.NewTakePartCommand(kernel.UUID{}, 7)
			return err
		}, kernel.ErrUUIDIsNotConstructed},
		{"take_part_bad_operator", func() error {
			_, err := commands.NewTakePartCommand(kernel.NewUUID(), 0)
			return err
		}, errs.ErrValueIsInvalid},
		{"complete_part_bad_operator", func() error {
			_, err := commands.NewCompletePartCommand(kernel.NewUUID(), -1)
			return err
		}, errs.ErrValueIsInvalid},
		{"manual_transition_unknown_state", func() error {
			_, err := commands.NewManualTransitionCommand(kernel.NewUUID(), 7, part.Unknown, "why")
			return err
		}, errs.ErrValueIsInvalid},
		{"register_project_without_parts", func() error {
			_, err := commands.NewRegisterProjectCommand("ACME", "", nil, nil)
			return err
		}, errs.ErrValueIsRequired},
		{"register_project_bad_part", func() error {
			_, err := commands.NewRegisterProjectCommand("ACME", "", nil, []commands.PartSpec{{PartTypeName: "x"}})
			return err
		}, errs.ErrValueIsRequired},
		{"register_operator_blank", func() error {
			_, err := commands.NewRegisterOperatorCommand(" ")
			return err
		}, errs.ErrValueIsRequired},
		{"check_completion_bad_project", func() error {
			_, err := commands.NewCheckProjectCompletionCommand(0)
			return err
		}, errs.ErrValueIsInvalid},
		{"delete_tracking_bad_id", func() error {
			_, err := commands.NewDeleteTaskTrackingCommand(0)
			return err
		}, errs.ErrValueIsInvalid},
		{"retry_batch_size", func() error {
			_, err := commands.NewRetryPackingCodesCommand(0)
			return err
		}, errs.ErrValueIsOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.build(), tt.wantErr)
		})
	}

}
