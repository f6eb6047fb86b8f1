package commands_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const blobTimeout = 2 * time.Second

// bounded matches a context derived from the request with a blob deadline.
func bounded() any {
	return mock.MatchedBy(func(ctx context.Context) bool {
		deadline, ok := ctx.Deadline()
		return ok && time.Until(deadline) <= blobTimeout
	})
}

func TestBulkDeleteOrdersCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	storeA, storeB := kernel.NewUUID(), kernel.NewUUID()
	id1, id2, id3, missing := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()

	cmd, err := commands.NewBulkDeleteOrdersCommand([]kernel.UUID{id1, id2, id3, missing})
	require.NoError(t, err)

	scanRepo := new(MockOrderRepository)
	scanRepo.On("FindRefs", ctx, cmd.OrderIDs()).Return([]ports.OrderRef{
		{ID: id1, StoreID: storeA, DesignFilePaths: []string{"MUG/1.pdf"}},
		{ID: id2, StoreID: storeA, DesignFilePaths: []string{"MUG/2.pdf", "TEE/2.pdf"}},
		{ID: id3, StoreID: storeB},
	}, nil).Once()
	scanUoW := new(MockUoW)
	scanUoW.On("OrderRepository").Return(scanRepo).Once()

	blobs := new(MockBlobStorage)
	blobs.On("Remove", bounded(), "MUG/1.pdf").Return(nil).Once()
	blobs.On("Remove", bounded(), "MUG/2.pdf").Return(errors.New("access denied")).Once()
	blobs.On("Remove", bounded(), "TEE/2.pdf").Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	storeRepo := new(MockStoreRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("StoreRepository").Return(storeRepo)
	uow.On("Rollback", ctx).Return(nil).Maybe()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("DeleteByIDs", ctx, []kernel.UUID{id1, id2, id3}).Return(int64(3), nil).Once(),
		storeRepo.On("ResetSyncCheckpoints", ctx, []kernel.UUID{storeA, storeB}).Return(int64(2), nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(scanUoW).Once()
	factory.On("Create").Return(uow).Once()

	h := commands.NewBulkDeleteOrdersCommandHandler(factory, blobs, blobTimeout, slog.Default())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, commands.DeleteResult{Deleted: 3, DeletedFiles: 2}, result)
	blobs.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	storeRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

// An order whose payload no longer restores is still deleted: the handler
// never asks for aggregates, only for the raw references.
func TestBulkDeleteOrdersCommandHandler_Handle_DoesNotNeedRestorableOrders(t *testing.T) {
	ctx := t.Context()
	store, unreadable := kernel.NewUUID(), kernel.NewUUID()
	cmd, err := commands.NewBulkDeleteOrdersCommand([]kernel.UUID{unreadable})
	require.NoError(t, err)

	scanRepo := new(MockOrderRepository)
	scanRepo.On("FindRefs", ctx, cmd.OrderIDs()).
		Return([]ports.OrderRef{{ID: unreadable, StoreID: store, DesignFilePaths: []string{"MUG/9.pdf"}}}, nil).Once()
	scanUoW := new(MockUoW)
	scanUoW.On("OrderRepository").Return(scanRepo).Once()

	blobs := new(MockBlobStorage)
	blobs.On("Remove", bounded(), "MUG/9.pdf").Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("DeleteByIDs", ctx, []kernel.UUID{unreadable}).Return(int64(1), nil).Once()
	storeRepo := new(MockStoreRepository)
	storeRepo.On("ResetSyncCheckpoints", ctx, []kernel.UUID{store}).Return(int64(1), nil).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("StoreRepository").Return(storeRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Maybe()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(scanUoW).Once()
	factory.On("Create").Return(uow).Once()

	h := commands.NewBulkDeleteOrdersCommandHandler(factory, blobs, blobTimeout, slog.Default())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, commands.DeleteResult{Deleted: 1, DeletedFiles: 1}, result)
	scanRepo.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
	scanRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestBulkDeleteOrdersCommandHandler_Handle_RowDeleteFailureKeepsCheckpoints(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewBulkDeleteOrdersCommand([]kernel.UUID{id})
	require.NoError(t, err)

	scanRepo := new(MockOrderRepository)
	scanRepo.On("FindRefs", ctx, mock.Anything).Return([]ports.OrderRef{{ID: id, StoreID: kernel.NewUUID()}}, nil).Once()
	scanUoW := new(MockUoW)
	scanUoW.On("OrderRepository").Return(scanRepo).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("DeleteByIDs", ctx, mock.Anything).Return(int64(0), errors.New("fk violation")).Once()
	storeRepo := new(MockStoreRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("StoreRepository").Return(storeRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(scanUoW).Once()
	factory.On("Create").Return(uow).Once()

	h := commands.NewBulkDeleteOrdersCommandHandler(factory, new(MockBlobStorage), blobTimeout, slog.Default())
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	storeRepo.AssertNotCalled(t, "ResetSyncCheckpoints", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestBulkDeleteOrdersCommandHandler_Handle_NothingMatched(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewBulkDeleteOrdersCommand([]kernel.UUID{kernel.NewUUID()})
	require.NoError(t, err)

	scanRepo := new(MockOrderRepository)
	scanRepo.On("FindRefs", ctx, mock.Anything).Return([]ports.OrderRef{}, nil).Once()
	scanUoW := new(MockUoW)
	scanUoW.On("OrderRepository").Return(scanRepo).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(scanUoW).Once()

	h := commands.NewBulkDeleteOrdersCommandHandler(factory, new(MockBlobStorage), 0, slog.Default())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, commands.DeleteResult{}, result)
	factory.AssertNumberOfCalls(t, "Create", 1)
}

func TestClearAllOrdersCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewClearAllOrdersCommand(commands.ClearAllConfirmation)
	require.NoError(t, err)

	blobs := new(MockBlobStorage)
	blobs.On("List", bounded(), "designs").Return([]string{"designs/a.pdf", "designs/b/c.pdf", "designs/d.pdf"}, nil).Once()
	blobs.On("Remove", bounded(), "designs/a.pdf").Return(nil).Once()
	blobs.On("Remove", bounded(), "designs/b/c.pdf").Return(context.DeadlineExceeded).Once()
	blobs.On("Remove", bounded(), "designs/d.pdf").Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	storeRepo := new(MockStoreRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("StoreRepository").Return(storeRepo)
	uow.On("Rollback", ctx).Return(nil).Maybe()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("DeleteAll", ctx).Return(int64(12), nil).Once(),
		storeRepo.On("ResetAllSyncCheckpoints", ctx).Return(int64(2), nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewClearAllOrdersCommandHandler(factory, blobs, "designs", blobTimeout, slog.Default())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, commands.DeleteResult{Deleted: 12, DeletedFiles: 2}, result)
	blobs.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestClearAllOrdersCommandHandler_Handle_ListFailureAborts(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewClearAllOrdersCommand(commands.ClearAllConfirmation)
	require.NoError(t, err)

	blobs := new(MockBlobStorage)
	blobs.On("List", bounded(), "").Return(nil, context.DeadlineExceeded).Once()
	factory := new(MockUoWFactory)

	h := commands.NewClearAllOrdersCommandHandler(factory, blobs, "", blobTimeout, slog.Default())
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrUpstream)
	factory.AssertNotCalled(t, "Create")
}

func TestClearAllOrdersCommandHandler_Handle_NotConstructed(t *testing.T) {
	h := commands.NewClearAllOrdersCommandHandler(new(MockUoWFactory), new(MockBlobStorage), "", 0, slog.Default())
	_, err := h.Handle(t.Context(), commands.ClearAllOrdersCommand{})
	require.ErrorIs(t, err, commands.ErrClearAllOrdersCommandIsNotConstructed)
}
