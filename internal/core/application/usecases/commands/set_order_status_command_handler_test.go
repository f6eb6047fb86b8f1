package commands_test

import (
	"context"
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// expectOrderUoW wires a factory returning one unit of work over repo. Rollback
// is always deferred by the handlers, so it is allowed on every path.
func expectOrderUoW(ctx context.Context, repo *MockOrderRepository) (*MockUoW, *MockOrderUoWFactory) {
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil).Maybe()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	return uow, factory
}

func TestSetOrderStatusCommandHandler_Handle_NeedsReviewStoresReason(t *testing.T) {
	ctx := t.Context()
	o := newOrder(t, kernel.NewUUID(), []string{"MUG"}, nil)
	reason := "address could not be verified"
	cmd, err := commands.NewSetOrderStatusCommand(o.ID(), "needs_review", &reason)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow, factory := expectOrderUoW(ctx, repo)
	mock.InOrder(
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
	)

	h := commands.NewSetOrderStatusCommandHandler(factory, testClock())
	got, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.NeedsReview, got.Status())
	require.NotNil(t, got.ReviewReason())
	assert.Equal(t, reason, *got.ReviewReason())
	require.Len(t, got.DomainEvents(), 1)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSetOrderStatusCommandHandler_Handle_LeavingReviewClearsReason(t *testing.T) {
	ctx := t.Context()
	reason := "check"
	o := newOrder(t, kernel.NewUUID(), []string{"MUG"}, nil)
	require.NoError(t, o.SetStatus(order.NeedsReview, &reason, testNow))

	cmd, err := commands.NewSetOrderStatusCommand(o.ID(), "ready_for_design", &reason)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow, factory := expectOrderUoW(ctx, repo)
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	repo.On("Update", ctx, o).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()

	h := commands.NewSetOrderStatusCommandHandler(factory, testClock())
	got, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.ReadyForDesign, got.Status())
	assert.Nil(t, got.ReviewReason())
}

func TestSetOrderStatusCommandHandler_Handle_LoadedWithoutLabel(t *testing.T) {
	ctx := t.Context()
	o := newOrder(t, kernel.NewUUID(), []string{"MUG"}, nil, withStatus(order.LabelsGenerated))
	cmd, err := commands.NewSetOrderStatusCommand(o.ID(), "loaded_for_shipment", nil)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow, factory := expectOrderUoW(ctx, repo)
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()

	h := commands.NewSetOrderStatusCommandHandler(factory, testClock())
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestSetOrderStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewSetOrderStatusCommand(id, "in_transit", nil)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	_, factory := expectOrderUoW(ctx, repo)
	repo.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()

	h := commands.NewSetOrderStatusCommandHandler(factory, testClock())
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestSetOrderStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	h := commands.NewSetOrderStatusCommandHandler(factory, testClock())
	_, err := h.Handle(t.Context(), commands.SetOrderStatusCommand{})
	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestSetOrderStatusCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSetOrderStatusCommand(kernel.NewUUID(), "in_transit", nil)
	require.NoError(t, err)

	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewSetOrderStatusCommandHandler(factory, testClock())
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestSetOrderStatusCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	o := newOrder(t, kernel.NewUUID(), []string{"MUG"}, nil)
	cmd, err := commands.NewSetOrderStatusCommand(o.ID(), "ready_for_design", nil)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow, factory := expectOrderUoW(ctx, repo)
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	repo.On("Update", ctx, o).Return(nil).Once()
	uow.On("Commit", ctx).Return(errors.New("commit error")).Once()

	h := commands.NewSetOrderStatusCommandHandler(factory, testClock())
	_, err = h.Handle(ctx, cmd)
	require.EqualError(t, err, "commit error")
	uow.AssertCalled(t, "Rollback", ctx)
}
