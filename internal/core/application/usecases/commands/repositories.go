// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"mealdelivery/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	TransactionRepoFactory interface {
		TransactionRepository() ports.TransactionRepository
	}

	PriceRepoFactory interface {
		PriceRepository() ports.PriceRepository
	}

	// CatalogRepoFactory gives read access to dishes and menus.
	CatalogRepoFactory interface {
		DishRepository() ports.DishRepository
		MenuRepository() ports.MenuRepository
	}

	// OrderUoW is used by commands that change a single order and nothing else.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// PaymentUoW covers an order together with its owner's ledger: paying,
	// canceling and rejecting may move money.
	PaymentUoW interface {
		TxManager
		OrderRepoFactory
		UserRepoFactory
		TransactionRepoFactory
	}

	PaymentUoWFactory interface {
		Create() PaymentUoW
	}

	// LedgerUoW covers a user's balance and transactions.
	LedgerUoW interface {
		TxManager
		UserRepoFactory
		TransactionRepoFactory
	}

	LedgerUoWFactory interface {
		Create() LedgerUoW
	}

	PriceUoW interface {
		TxManager
		PriceRepoFactory
	}

	PriceUoWFactory interface {
		Create() PriceUoW
	}

	// UoW exposes every repository. Order creation needs the catalog, the price
	// list, the owner and the order repository in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   owner, err := uow.UserRepository().Get(ctx, userID)
	//   prices, err := uow.PriceRepository().GetValidOn(ctx, shipmentDate)
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		UserRepoFactory
		TransactionRepoFactory
		PriceRepoFactory
		CatalogRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
