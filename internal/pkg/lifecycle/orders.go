package lifecycle

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MrE-Fog/grindery-delight-api/internal/pkg/database"
)

// CreateOrder inserts a new PENDING order owned by userID. The existence
// check only exists to produce the friendly duplicate message; the unique
// index on orderId is what actually prevents double insertion under
// concurrent creation.
func (e *Engine) CreateOrder(ctx context.Context, userID string, order *database.Order) (string, error) {
	if order.OrderID != "" {
		existing, err := e.store.FindOrderByOrderID(ctx, order.OrderID)
		if err != nil {
			return "", err
		}
		if existing != nil {
			return "", ErrOrderExists
		}
	}
	order.UserID = userID
	order.Status = database.OrderStatusPending
	order.IsComplete = false
	order.CompletionHash = ""
	order.Date = database.CreationTime()
	insertedID, err := e.store.InsertOrder(ctx, order)
	if mongo.IsDuplicateKeyError(err) {
		return "", ErrOrderExists
	}
	return insertedID, err
}

// GetOrder is a point lookup by external id; a nil order means no match and
// the caller answers with an empty object, not 404.
func (e *Engine) GetOrder(ctx context.Context, orderID string) (*database.Order, error) {
	return e.store.FindOrderByOrderID(ctx, orderID)
}

// GetOrderByID looks an order up by its store-assigned id.
func (e *Engine) GetOrderByID(ctx context.Context, hexID string) (*database.Order, error) {
	return e.store.FindOrderByID(ctx, hexID)
}

func (e *Engine) OrdersByUser(ctx context.Context, userID string, offset, limit int64) ([]database.Order, error) {
	return e.store.FindOrdersByUser(ctx, userID, offset, limit)
}

// OrdersByLiquidityProvider is the application-level join: the caller's
// offers first, then orders referencing those offers. The two queries share
// no snapshot, so an offer created between them is simply not represented.
func (e *Engine) OrdersByLiquidityProvider(ctx context.Context, userID string, active *bool, offset, limit int64) ([]database.Order, error) {
	offers, err := e.store.FindOffersByUser(ctx, userID, active)
	if err != nil {
		return nil, err
	}
	offerIDs := []string{}
	for _, offer := range offers {
		if offer.OfferID != "" {
			offerIDs = append(offerIDs, offer.OfferID)
		}
	}
	if len(offerIDs) == 0 {
		return []database.Order{}, nil
	}
	return e.store.FindOrdersByOffers(ctx, offerIDs, offset, limit)
}

// OrderSuccess handles the settlement webhook: the order is located by its
// deposit hash since the external orderId is only assigned by the
// counterparty at settlement time. Re-delivery for an already-successful
// order matches but modifies nothing, so the call is idempotent and does
// not re-notify.
func (e *Engine) OrderSuccess(ctx context.Context, hash, orderID string) error {
	order, err := e.store.FindOrderByHash(ctx, hash)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	out, err := e.store.MarkOrderSuccess(ctx, hash, orderID)
	if mongo.IsDuplicateKeyError(err) {
		return ErrOrderExists
	}
	if err != nil {
		return err
	}
	if out.Modified > 0 {
		e.notify("order", order.ID.Hex())
	}
	return nil
}

// ConfirmOrderDeposit is the wallet-monitor path to the same transition the
// success webhook performs, for deposits observed directly on chain. The
// external orderId stays as created since no counterparty assignment is
// involved.
func (e *Engine) ConfirmOrderDeposit(ctx context.Context, hash string) (*database.Order, error) {
	order, err := e.store.FindOrderByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	out, err := e.store.MarkOrderStatusByHash(ctx, hash, database.OrderStatusPending, database.OrderStatusSuccess)
	if err != nil {
		return nil, err
	}
	if out.Modified > 0 {
		order.Status = database.OrderStatusSuccess
		e.notify("order", order.ID.Hex())
	}
	return order, nil
}

// OrderFailure moves a PENDING order to FAILURE. An order in any other
// state is left untouched and not re-notified.
func (e *Engine) OrderFailure(ctx context.Context, hash string) error {
	return e.orderStatusByHash(ctx, hash, database.OrderStatusPending, database.OrderStatusFailure)
}

// OrderCompletionFailure moves a SUCCESS order to COMPLETION_FAILURE.
func (e *Engine) OrderCompletionFailure(ctx context.Context, hash string) error {
	return e.orderStatusByHash(ctx, hash, database.OrderStatusSuccess, database.OrderStatusCompletionFailure)
}

func (e *Engine) orderStatusByHash(ctx context.Context, hash, from, to string) error {
	order, err := e.store.FindOrderByHash(ctx, hash)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	out, err := e.store.MarkOrderStatusByHash(ctx, hash, from, to)
	if err != nil {
		return err
	}
	if out.Modified > 0 {
		e.notify("order", order.ID.Hex())
	}
	return nil
}

// CompleteOrder requires ownership and current SUCCESS status.
func (e *Engine) CompleteOrder(ctx context.Context, userID, orderID, completionHash string) error {
	out, err := e.store.CompleteOrder(ctx, userID, orderID, completionHash)
	if err != nil {
		return err
	}
	if out.Matched == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (e *Engine) DeleteOrder(ctx context.Context, userID, orderID string) error {
	deleted, err := e.store.DeleteOrder(ctx, userID, orderID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrOrderNotFound
	}
	return nil
}
