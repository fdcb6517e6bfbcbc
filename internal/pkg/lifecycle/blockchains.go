package lifecycle

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MrE-Fog/grindery-delight-api/internal/pkg/database"
)

func (e *Engine) CreateBlockchain(ctx context.Context, chain *database.Blockchain) (string, error) {
	existing, err := e.store.FindBlockchainByCaipID(ctx, chain.CaipID)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrBlockchainExists
	}
	if chain.UsefulAddresses == nil {
		chain.UsefulAddresses = map[string]string{}
	}
	insertedID, err := e.store.InsertBlockchain(ctx, chain)
	if mongo.IsDuplicateKeyError(err) {
		return "", ErrBlockchainExists
	}
	return insertedID, err
}

func (e *Engine) Blockchains(ctx context.Context, activeOnly bool) ([]database.Blockchain, error) {
	return e.store.FindBlockchains(ctx, activeOnly)
}

func (e *Engine) GetBlockchain(ctx context.Context, hexID string) (*database.Blockchain, error) {
	return e.store.FindBlockchainByID(ctx, hexID)
}

// DeleteBlockchain reports the deleted count instead of failing on a
// no-match: deleting an absent chain by well-formed id is a 200 with
// deletedCount 0 under the point-lookup contract.
func (e *Engine) DeleteBlockchain(ctx context.Context, hexID string) (int64, error) {
	return e.store.DeleteBlockchain(ctx, hexID)
}

func (e *Engine) UpsertUsefulAddress(ctx context.Context, hexID, contract, address string) error {
	out, err := e.store.UpsertUsefulAddress(ctx, hexID, contract, address)
	if err != nil {
		return err
	}
	if out.Matched == 0 {
		return ErrBlockchainNotFound
	}
	return nil
}

func (e *Engine) DeleteUsefulAddress(ctx context.Context, hexID, contract string) error {
	out, err := e.store.DeleteUsefulAddress(ctx, hexID, contract)
	if err != nil {
		return err
	}
	if out.Matched == 0 {
		return ErrBlockchainNotFound
	}
	return nil
}
