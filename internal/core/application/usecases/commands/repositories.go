// Package commands contains the operations that change orders: status
// overrides, workstation actions, auto-advancement and cascade deletion.
// Every command is built by a validating constructor and executed by a
// handler that owns its unit of work.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	StoreRepoFactory interface {
		StoreRepository() ports.StoreRepository
	}

	// OrderUoW is used by commands that touch only orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW spans orders and stores; deletions reset store sync checkpoints in
	// the same transaction that removes the rows.
	UoW interface {
		TxManager
		OrderRepoFactory
		StoreRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
