package lifecycle

import (
	"context"

	"github.com/MrE-Fog/grindery-delight-api/internal/pkg/database"
)

// UpsertWalletToken records a provider's liquidity for one token on one
// chain, creating the wallet document on first use.
func (e *Engine) UpsertWalletToken(ctx context.Context, userID, walletAddress, chainID, token string, amount float64) error {
	_, err := e.store.UpsertWalletToken(ctx, userID, walletAddress, chainID, token, amount)
	return err
}

func (e *Engine) WalletsByChain(ctx context.Context, userID, chainID string) ([]database.LiquidityWallet, error) {
	return e.store.FindWalletsByChain(ctx, userID, chainID)
}

func (e *Engine) DeleteWallet(ctx context.Context, userID, walletAddress, chainID string) error {
	deleted, err := e.store.DeleteWallet(ctx, userID, walletAddress, chainID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrWalletNotFound
	}
	return nil
}
