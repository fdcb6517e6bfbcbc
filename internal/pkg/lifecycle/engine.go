// Package lifecycle enforces creation uniqueness, ownership-scoped access
// and the order/offer status transitions. It talks to persistence through
// the Store interface and reports webhook-driven mutations through the
// Notifier, both injected, so instances are isolated and testable.
package lifecycle

import (
	"context"
	"errors"

	"github.com/MrE-Fog/grindery-delight-api/internal/pkg/database"
)

// Sentinel errors double as the wire-level {msg} bodies, so the texts are
// part of the API contract.
var (
	ErrOrderExists        = errors.New("This order already exists.")
	ErrOfferExists        = errors.New("This offer already exists.")
	ErrBlockchainExists   = errors.New("This blockchain already exists.")
	ErrOrderNotFound      = errors.New("No order found.")
	ErrOfferNotFound      = errors.New("No offer found.")
	ErrBlockchainNotFound = errors.New("No blockchain found.")
	ErrWalletNotFound     = errors.New("No liquidity wallet found.")
)

// Store is the record-store surface the engine needs. database.MongoStore is
// the production implementation.
type Store interface {
	InsertOrder(ctx context.Context, order *database.Order) (string, error)
	FindOrderByOrderID(ctx context.Context, orderID string) (*database.Order, error)
	FindOrderByHash(ctx context.Context, hash string) (*database.Order, error)
	FindOrderByID(ctx context.Context, hexID string) (*database.Order, error)
	FindOrdersByUser(ctx context.Context, userID string, offset, limit int64) ([]database.Order, error)
	FindOrdersByOffers(ctx context.Context, offerIDs []string, offset, limit int64) ([]database.Order, error)
	MarkOrderSuccess(ctx context.Context, hash, orderID string) (database.UpdateOutcome, error)
	MarkOrderStatusByHash(ctx context.Context, hash, from, to string) (database.UpdateOutcome, error)
	CompleteOrder(ctx context.Context, userID, orderID, completionHash string) (database.UpdateOutcome, error)
	DeleteOrder(ctx context.Context, userID, orderID string) (int64, error)

	InsertOffer(ctx context.Context, offer *database.Offer) (string, error)
	FindOfferByOfferID(ctx context.Context, offerID string) (*database.Offer, error)
	FindOfferByHash(ctx context.Context, hash string) (*database.Offer, error)
	FindActiveOffers(ctx context.Context, offset, limit int64) ([]database.Offer, error)
	FindOffersByUser(ctx context.Context, userID string, active *bool) ([]database.Offer, error)
	SetOfferField(ctx context.Context, offerID, field string, value interface{}) (database.UpdateOutcome, error)
	AssignOfferID(ctx context.Context, hash, offerID, status string) (database.UpdateOutcome, error)
	DeleteOffer(ctx context.Context, userID, offerID string) (int64, error)

	InsertBlockchain(ctx context.Context, chain *database.Blockchain) (string, error)
	FindBlockchainByCaipID(ctx context.Context, caipID string) (*database.Blockchain, error)
	FindBlockchainByID(ctx context.Context, hexID string) (*database.Blockchain, error)
	FindBlockchains(ctx context.Context, activeOnly bool) ([]database.Blockchain, error)
	DeleteBlockchain(ctx context.Context, hexID string) (int64, error)
	UpsertUsefulAddress(ctx context.Context, hexID, contract, address string) (database.UpdateOutcome, error)
	DeleteUsefulAddress(ctx context.Context, hexID, contract string) (database.UpdateOutcome, error)

	UpsertWalletToken(ctx context.Context, userID, walletAddress, chainID, token string, amount float64) (database.UpdateOutcome, error)
	FindWalletsByChain(ctx context.Context, userID, chainID string) ([]database.LiquidityWallet, error)
	DeleteWallet(ctx context.Context, userID, walletAddress, chainID string) (int64, error)
}

// Event is the fire-and-forget payload dispatched after a webhook-driven
// mutation actually modified a record.
type Event struct {
	Method string      `json:"method"`
	Params EventParams `json:"params"`
}

type EventParams struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Notifier delivery is best effort: failures are not retried and never fail
// the request.
type Notifier interface {
	Publish(event Event)
}

type Engine struct {
	store    Store
	notifier Notifier
}

func NewEngine(store Store, notifier Notifier) *Engine {
	return &Engine{store: store, notifier: notifier}
}

func (e *Engine) notify(recordType, id string) {
	if e.notifier == nil {
		return
	}
	e.notifier.Publish(Event{
		Method: "update",
		Params: EventParams{Type: recordType, ID: id},
	})
}
