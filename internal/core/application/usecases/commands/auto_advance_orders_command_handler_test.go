package commands_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func template(t *testing.T, sku string, ptype product.PersonalizationType) *product.Template {
	t.Helper()
	tpl, err := product.NewTemplate(product.Params{SKU: sku, Name: sku, PersonalizationType: ptype})
	require.NoError(t, err)
	return tpl
}

var pendingFilter = ports.OrderFilter{Statuses: []order.Status{order.PendingEnrichment}, OldestFirst: true}

func TestAutoAdvanceOrdersCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	store := kernel.NewUUID()

	plain := newOrder(t, store, []string{"TEE"}, nil)
	withNotes := newOrder(t, store, []string{"MUG"}, []order.Variation{{Name: "Personalization", Value: "Happy birthday"}})
	placeholder := newOrder(t, store, []string{"MUG"}, []order.Variation{{Name: "Personalization", Value: "Not requested on this item"}})
	full := newOrder(t, store, []string{"PORTRAIT"}, nil)
	unknown := newOrder(t, store, []string{"GHOST"}, nil)
	broken := newOrder(t, store, []string{"TEE", "MUG"}, []order.Variation{{Name: "Name", Value: "Ava"}})

	scanRepo := new(MockOrderRepository)
	scanRepo.On("Find", mock.Anything, pendingFilter).
		Return([]*order.Order{plain, withNotes, placeholder, full, unknown, broken}, nil).Once()
	scanUoW := new(MockUoW)
	scanUoW.On("OrderRepository").Return(scanRepo).Once()

	templates := new(MockTemplateReader)
	templates.On("FindBySKUs", mock.Anything, mock.MatchedBy(func(skus []string) bool {
		return assert.ElementsMatch(t, []string{"TEE", "MUG", "PORTRAIT", "GHOST"}, skus)
	})).Return([]*product.Template{
		template(t, "TEE", product.PersonalizationNone),
		template(t, "MUG", product.PersonalizationNotes),
		template(t, "PORTRAIT", product.PersonalizationFull),
	}, nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(scanUoW).Once()

	for _, o := range []*order.Order{plain, withNotes, broken} {
		repo := new(MockOrderRepository)
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(repo).Once()
		uow.On("Rollback", ctx).Return(nil).Maybe()
		if o == broken {
			repo.On("Update", ctx, o).Return(errors.New("deadlock detected")).Once()
		} else {
			repo.On("Update", ctx, o).Return(nil).Once()
			uow.On("Commit", ctx).Return(nil).Once()
		}
		factory.On("Create").Return(uow).Once()
	}

	h := commands.NewAutoAdvanceOrdersCommandHandler(factory, templates, testClock(), time.Second, slog.Default())
	result, err := h.Handle(ctx, commands.NewAutoAdvanceOrdersCommand())
	require.NoError(t, err)

	assert.Equal(t, commands.AutoAdvanceResult{Promoted: 2, Skipped: 3, Failed: 1}, result)
	assert.Equal(t, order.ReadyForDesign, plain.Status())
	assert.Equal(t, order.ReadyForDesign, withNotes.Status())
	assert.Equal(t, order.PendingEnrichment, placeholder.Status())
	assert.Equal(t, order.PendingEnrichment, full.Status())
	templates.AssertNumberOfCalls(t, "FindBySKUs", 1)
	factory.AssertExpectations(t)
}

func TestAutoAdvanceOrdersCommandHandler_Handle_OrderMovedSinceScan(t *testing.T) {
	ctx := t.Context()
	scanned := newOrder(t, kernel.NewUUID(), []string{"TEE"}, nil)
	current := newOrder(t, scanned.StoreID(), []string{"TEE"}, nil, withStatus(order.NeedsReview))

	scanRepo := new(MockOrderRepository)
	scanRepo.On("Find", mock.Anything, pendingFilter).Return([]*order.Order{scanned}, nil).Once()
	scanUoW := new(MockUoW)
	scanUoW.On("OrderRepository").Return(scanRepo).Once()

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, scanned.ID()).Return(current, nil).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(scanUoW).Once()
	factory.On("Create").Return(uow).Once()

	templates := new(MockTemplateReader)
	templates.On("FindBySKUs", mock.Anything, []string{"TEE"}).
		Return([]*product.Template{template(t, "TEE", product.PersonalizationNone)}, nil).Once()

	h := commands.NewAutoAdvanceOrdersCommandHandler(factory, templates, testClock(), time.Second, slog.Default())
	result, err := h.Handle(ctx, commands.NewAutoAdvanceOrdersCommand())
	require.NoError(t, err)
	assert.Equal(t, commands.AutoAdvanceResult{Skipped: 1}, result)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAutoAdvanceOrdersCommandHandler_Handle_NoPendingOrders(t *testing.T) {
	ctx := t.Context()
	scanRepo := new(MockOrderRepository)
	scanRepo.On("Find", mock.Anything, pendingFilter).Return([]*order.Order{}, nil).Once()
	scanUoW := new(MockUoW)
	scanUoW.On("OrderRepository").Return(scanRepo).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(scanUoW).Once()
	templates := new(MockTemplateReader)

	h := commands.NewAutoAdvanceOrdersCommandHandler(factory, templates, testClock(), 0, slog.Default())
	result, err := h.Handle(ctx, commands.NewAutoAdvanceOrdersCommand())
	require.NoError(t, err)
	assert.Equal(t, commands.AutoAdvanceResult{}, result)
	templates.AssertNotCalled(t, "FindBySKUs", mock.Anything, mock.Anything)
}

func TestAutoAdvanceOrdersCommandHandler_Handle_LookupFailure(t *testing.T) {
	ctx := t.Context()
	scanRepo := new(MockOrderRepository)
	scanRepo.On("Find", mock.Anything, pendingFilter).
		Return([]*order.Order{newOrder(t, kernel.NewUUID(), []string{"TEE"}, nil)}, nil).Once()
	scanUoW := new(MockUoW)
	scanUoW.On("OrderRepository").Return(scanRepo).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(scanUoW).Once()

	templates := new(MockTemplateReader)
	templates.On("FindBySKUs", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused")).Once()

	h := commands.NewAutoAdvanceOrdersCommandHandler(factory, templates, testClock(), time.Second, slog.Default())
	_, err := h.Handle(ctx, commands.NewAutoAdvanceOrdersCommand())
	require.ErrorIs(t, err, errs.ErrUpstream)
	factory.AssertNumberOfCalls(t, "Create", 1)
}
