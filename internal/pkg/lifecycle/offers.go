package lifecycle

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MrE-Fog/grindery-delight-api/internal/pkg/database"
)

// CreateOffer inserts a new offer owned by userID. The deposit hash is the
// creation-time uniqueness key; the external offerId only arrives later via
// the settlement webhook. Offers start inactive until activation.
func (e *Engine) CreateOffer(ctx context.Context, userID string, offer *database.Offer) (string, error) {
	existing, err := e.store.FindOfferByHash(ctx, offer.Hash)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrOfferExists
	}
	offer.UserID = userID
	offer.OfferID = ""
	offer.IsActive = false
	offer.Status = database.OfferStatusPending
	offer.Date = database.CreationTime()
	insertedID, err := e.store.InsertOffer(ctx, offer)
	if mongo.IsDuplicateKeyError(err) {
		return "", ErrOfferExists
	}
	return insertedID, err
}

func (e *Engine) GetOffer(ctx context.Context, offerID string) (*database.Offer, error) {
	return e.store.FindOfferByOfferID(ctx, offerID)
}

func (e *Engine) ActiveOffers(ctx context.Context, offset, limit int64) ([]database.Offer, error) {
	return e.store.FindActiveOffers(ctx, offset, limit)
}

func (e *Engine) OffersByUser(ctx context.Context, userID string, active *bool) ([]database.Offer, error) {
	return e.store.FindOffersByUser(ctx, userID, active)
}

// Webhook single-field mutations, keyed by offerId. A missing offer returns
// ErrOfferNotFound immediately; nothing is updated and nothing dispatched.

func (e *Engine) SetOfferMaxPrice(ctx context.Context, offerID string, max float64) error {
	return e.setOfferField(ctx, offerID, "max", max)
}

func (e *Engine) SetOfferMinPrice(ctx context.Context, offerID string, min float64) error {
	return e.setOfferField(ctx, offerID, "min", min)
}

func (e *Engine) SetOfferToken(ctx context.Context, offerID, token string) error {
	return e.setOfferField(ctx, offerID, "token", token)
}

func (e *Engine) SetOfferChain(ctx context.Context, offerID, chainID string) error {
	return e.setOfferField(ctx, offerID, "chainId", chainID)
}

func (e *Engine) SetOfferActivation(ctx context.Context, offerID string, isActive bool) error {
	return e.setOfferField(ctx, offerID, "isActive", isActive)
}

func (e *Engine) setOfferField(ctx context.Context, offerID, field string, value interface{}) error {
	offer, err := e.store.FindOfferByOfferID(ctx, offerID)
	if err != nil {
		return err
	}
	if offer == nil {
		return ErrOfferNotFound
	}
	out, err := e.store.SetOfferField(ctx, offerID, field, value)
	if err != nil {
		return err
	}
	if out.Modified > 0 {
		e.notify("offer", offer.ID.Hex())
	}
	return nil
}

// AssignOfferID is the settlement-time assignment keyed by the creation
// hash: the counterparty reports the final external id and status.
func (e *Engine) AssignOfferID(ctx context.Context, hash, offerID, status string) error {
	offer, err := e.store.FindOfferByHash(ctx, hash)
	if err != nil {
		return err
	}
	if offer == nil {
		return ErrOfferNotFound
	}
	out, err := e.store.AssignOfferID(ctx, hash, offerID, status)
	if mongo.IsDuplicateKeyError(err) {
		return ErrOfferExists
	}
	if err != nil {
		return err
	}
	if out.Modified > 0 {
		e.notify("offer", offer.ID.Hex())
	}
	return nil
}

func (e *Engine) DeleteOffer(ctx context.Context, userID, offerID string) error {
	deleted, err := e.store.DeleteOffer(ctx, userID, offerID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrOfferNotFound
	}
	return nil
}
