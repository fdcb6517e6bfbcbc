package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrE-Fog/grindery-delight-api/internal/pkg/database"
)

func newTestEngine() (*Engine, *memStore, *recordingNotifier) {
	store := newMemStore()
	notifier := &recordingNotifier{}
	return NewEngine(store, notifier), store, notifier
}

func pendingOrder(hash string) *database.Order {
	return &database.Order{
		AmountTokenDeposit:  0.5,
		AddressTokenDeposit: "0x0",
		ChainIDTokenDeposit: "eip155:5",
		DestAddr:            "0xdest",
		OfferID:             "",
		AmountTokenOffer:    100,
		Hash:                hash,
	}
}

func TestCreateOrderDuplicate(t *testing.T) {
	engine, store, _ := newTestEngine()
	ctx := context.Background()

	order := pendingOrder("0xaaa")
	order.OrderID = "ORD-1"
	insertedID, err := engine.CreateOrder(ctx, "user-a", order)
	require.NoError(t, err)
	assert.NotEmpty(t, insertedID)

	again := pendingOrder("0xbbb")
	again.OrderID = "ORD-1"
	_, err = engine.CreateOrder(ctx, "user-a", again)
	assert.ErrorIs(t, err, ErrOrderExists)
	assert.Len(t, store.orders, 1)
}

func TestCreateOrderSetsOwnershipAndStatus(t *testing.T) {
	engine, store, _ := newTestEngine()
	ctx := context.Background()

	order := pendingOrder("0xccc")
	order.Status = "completion"
	order.IsComplete = true
	order.CompletionHash = "0xstale"
	_, err := engine.CreateOrder(ctx, "user-a", order)
	require.NoError(t, err)

	stored := store.orders[0]
	assert.Equal(t, "user-a", stored.UserID)
	assert.Equal(t, database.OrderStatusPending, stored.Status)
	assert.False(t, stored.IsComplete)
	assert.Empty(t, stored.CompletionHash)
	assert.False(t, stored.Date.IsZero())
}

func TestOrderSuccessAssignsIDAndNotifiesOnce(t *testing.T) {
	engine, store, notifier := newTestEngine()
	ctx := context.Background()

	_, err := engine.CreateOrder(ctx, "user-a", pendingOrder("0xdeposit"))
	require.NoError(t, err)

	require.NoError(t, engine.OrderSuccess(ctx, "0xdeposit", "EXT-7"))
	stored := store.orders[0]
	assert.Equal(t, "EXT-7", stored.OrderID)
	assert.Equal(t, database.OrderStatusSuccess, stored.Status)

	events := notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "update", events[0].Method)
	assert.Equal(t, "order", events[0].Params.Type)
	assert.Equal(t, stored.ID.Hex(), events[0].Params.ID)

	// Re-delivery matches but modifies nothing: same answer, no new event.
	require.NoError(t, engine.OrderSuccess(ctx, "0xdeposit", "EXT-7"))
	assert.Len(t, notifier.Events(), 1)
}

func TestOrderSuccessUnknownHash(t *testing.T) {
	engine, _, notifier := newTestEngine()

	err := engine.OrderSuccess(context.Background(), "0xnope", "EXT-1")
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Empty(t, notifier.Events())
}

func TestOrderFailureOnlyFromPending(t *testing.T) {
	engine, store, notifier := newTestEngine()
	ctx := context.Background()

	_, err := engine.CreateOrder(ctx, "user-a", pendingOrder("0x1"))
	require.NoError(t, err)

	require.NoError(t, engine.OrderFailure(ctx, "0x1"))
	assert.Equal(t, database.OrderStatusFailure, store.orders[0].Status)
	assert.Len(t, notifier.Events(), 1)

	// Already failed: matched nothing, no transition, no event.
	require.NoError(t, engine.OrderFailure(ctx, "0x1"))
	assert.Equal(t, database.OrderStatusFailure, store.orders[0].Status)
	assert.Len(t, notifier.Events(), 1)
}

func TestOrderCompletionFailureRequiresSuccess(t *testing.T) {
	engine, store, _ := newTestEngine()
	ctx := context.Background()

	_, err := engine.CreateOrder(ctx, "user-a", pendingOrder("0x2"))
	require.NoError(t, err)

	// Still pending: no-op.
	require.NoError(t, engine.OrderCompletionFailure(ctx, "0x2"))
	assert.Equal(t, database.OrderStatusPending, store.orders[0].Status)

	require.NoError(t, engine.OrderSuccess(ctx, "0x2", "EXT-2"))
	require.NoError(t, engine.OrderCompletionFailure(ctx, "0x2"))
	assert.Equal(t, database.OrderStatusCompletionFailure, store.orders[0].Status)
}

func TestCompleteOrderOwnershipAndStatus(t *testing.T) {
	engine, store, _ := newTestEngine()
	ctx := context.Background()

	_, err := engine.CreateOrder(ctx, "user-a", pendingOrder("0x3"))
	require.NoError(t, err)

	// Not yet successful.
	err = engine.CompleteOrder(ctx, "user-a", "EXT-3", "0xdone")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	require.NoError(t, engine.OrderSuccess(ctx, "0x3", "EXT-3"))

	// Someone else's order.
	err = engine.CompleteOrder(ctx, "user-b", "EXT-3", "0xdone")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	require.NoError(t, engine.CompleteOrder(ctx, "user-a", "EXT-3", "0xdone"))
	stored := store.orders[0]
	assert.Equal(t, database.OrderStatusCompletion, stored.Status)
	assert.True(t, stored.IsComplete)
	assert.Equal(t, "0xdone", stored.CompletionHash)

	// Case-insensitive owner match, same account.
	_, err = engine.CreateOrder(ctx, "User-A", pendingOrder("0x4"))
	require.NoError(t, err)
	require.NoError(t, engine.OrderSuccess(ctx, "0x4", "EXT-4"))
	require.NoError(t, engine.CompleteOrder(ctx, "user-a", "EXT-4", "0xdone2"))
}

func TestDeleteOrderScopedToOwner(t *testing.T) {
	engine, store, _ := newTestEngine()
	ctx := context.Background()

	order := pendingOrder("0x5")
	order.OrderID = "ORD-5"
	_, err := engine.CreateOrder(ctx, "user-a", order)
	require.NoError(t, err)

	assert.ErrorIs(t, engine.DeleteOrder(ctx, "user-b", "ORD-5"), ErrOrderNotFound)
	require.NoError(t, engine.DeleteOrder(ctx, "user-a", "ORD-5"))
	assert.Empty(t, store.orders)
}

func TestOrdersByUserSortedAndPaged(t *testing.T) {
	engine, store, _ := newTestEngine()
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		order := pendingOrder("0xpage" + string(rune('a'+i)))
		_, err := engine.CreateOrder(ctx, "user-a", order)
		require.NoError(t, err)
		store.orders[i].Date = base.Add(time.Duration(i) * time.Hour)
	}

	orders, err := engine.OrdersByUser(ctx, "USER-A", 0, 0)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.True(t, orders[0].Date.After(orders[1].Date))
	assert.True(t, orders[1].Date.After(orders[2].Date))

	paged, err := engine.OrdersByUser(ctx, "user-a", 1, 1)
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, orders[1].Hash, paged[0].Hash)
}

func TestOrdersByLiquidityProviderExcludesOtherOffers(t *testing.T) {
	engine, _, _ := newTestEngine()
	ctx := context.Background()

	mine := &database.Offer{Hash: "0xoffer-mine"}
	_, err := engine.CreateOffer(ctx, "provider", mine)
	require.NoError(t, err)
	require.NoError(t, engine.AssignOfferID(ctx, "0xoffer-mine", "OFF-MINE", database.OfferStatusSuccess))

	theirs := &database.Offer{Hash: "0xoffer-theirs"}
	_, err = engine.CreateOffer(ctx, "someone-else", theirs)
	require.NoError(t, err)
	require.NoError(t, engine.AssignOfferID(ctx, "0xoffer-theirs", "OFF-THEIRS", database.OfferStatusSuccess))

	onMine := pendingOrder("0xo1")
	onMine.OfferID = "OFF-MINE"
	_, err = engine.CreateOrder(ctx, "buyer", onMine)
	require.NoError(t, err)

	onTheirs := pendingOrder("0xo2")
	onTheirs.OfferID = "OFF-THEIRS"
	_, err = engine.CreateOrder(ctx, "buyer", onTheirs)
	require.NoError(t, err)

	orders, err := engine.OrdersByLiquidityProvider(ctx, "provider", nil, 0, 0)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "OFF-MINE", orders[0].OfferID)
}

func TestOrdersByLiquidityProviderNoOffers(t *testing.T) {
	engine, _, _ := newTestEngine()

	orders, err := engine.OrdersByLiquidityProvider(context.Background(), "provider", nil, 0, 0)
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestCreateOfferDuplicateHash(t *testing.T) {
	engine, store, _ := newTestEngine()
	ctx := context.Background()

	offer := &database.Offer{Hash: "0xoffer", IsActive: true, Status: "success", OfferID: "smuggled"}
	_, err := engine.CreateOffer(ctx, "provider", offer)
	require.NoError(t, err)

	stored := store.offers[0]
	assert.Empty(t, stored.OfferID)
	assert.False(t, stored.IsActive)
	assert.Equal(t, database.OfferStatusPending, stored.Status)

	_, err = engine.CreateOffer(ctx, "provider", &database.Offer{Hash: "0xoffer"})
	assert.ErrorIs(t, err, ErrOfferExists)
	assert.Len(t, store.offers, 1)
}

func TestOfferFieldUpdates(t *testing.T) {
	engine, store, notifier := newTestEngine()
	ctx := context.Background()

	_, err := engine.CreateOffer(ctx, "provider", &database.Offer{Hash: "0xf"})
	require.NoError(t, err)
	require.NoError(t, engine.AssignOfferID(ctx, "0xf", "OFF-1", database.OfferStatusSuccess))
	assert.Len(t, notifier.Events(), 1)

	require.NoError(t, engine.SetOfferMaxPrice(ctx, "OFF-1", 5.5))
	require.NoError(t, engine.SetOfferMinPrice(ctx, "OFF-1", 0.1))
	require.NoError(t, engine.SetOfferToken(ctx, "OFF-1", "USDC"))
	require.NoError(t, engine.SetOfferChain(ctx, "OFF-1", "eip155:1"))
	require.NoError(t, engine.SetOfferActivation(ctx, "OFF-1", true))

	stored := store.offers[0]
	assert.Equal(t, 5.5, stored.Max)
	assert.Equal(t, 0.1, stored.Min)
	assert.Equal(t, "USDC", stored.Token)
	assert.Equal(t, "eip155:1", stored.ChainID)
	assert.True(t, stored.IsActive)
	assert.Len(t, notifier.Events(), 6)

	// Unknown offerId fails before any write and dispatches nothing.
	assert.ErrorIs(t, engine.SetOfferMaxPrice(ctx, "OFF-MISSING", 9), ErrOfferNotFound)
	assert.Len(t, notifier.Events(), 6)
}

func TestAssignOfferIDIdempotent(t *testing.T) {
	engine, _, notifier := newTestEngine()
	ctx := context.Background()

	_, err := engine.CreateOffer(ctx, "provider", &database.Offer{Hash: "0xg"})
	require.NoError(t, err)

	require.NoError(t, engine.AssignOfferID(ctx, "0xg", "OFF-2", database.OfferStatusSuccess))
	require.NoError(t, engine.AssignOfferID(ctx, "0xg", "OFF-2", database.OfferStatusSuccess))
	assert.Len(t, notifier.Events(), 1)

	assert.ErrorIs(t, engine.AssignOfferID(ctx, "0xmissing", "OFF-3", database.OfferStatusSuccess), ErrOfferNotFound)
}

func TestCreateBlockchainDuplicateCaipID(t *testing.T) {
	engine, store, _ := newTestEngine()
	ctx := context.Background()

	chain := &database.Blockchain{CaipID: "eip155:5", ChainID: "5", Label: "Goerli"}
	_, err := engine.CreateBlockchain(ctx, chain)
	require.NoError(t, err)
	assert.NotNil(t, store.chains[0].UsefulAddresses)

	_, err = engine.CreateBlockchain(ctx, &database.Blockchain{CaipID: "eip155:5"})
	assert.ErrorIs(t, err, ErrBlockchainExists)
	assert.Len(t, store.chains, 1)
}

func TestUsefulAddressLifecycle(t *testing.T) {
	engine, store, _ := newTestEngine()
	ctx := context.Background()

	_, err := engine.CreateBlockchain(ctx, &database.Blockchain{CaipID: "eip155:1"})
	require.NoError(t, err)
	hexID := store.chains[0].ID.Hex()

	require.NoError(t, engine.UpsertUsefulAddress(ctx, hexID, "router", "0xrouter"))
	assert.Equal(t, "0xrouter", store.chains[0].UsefulAddresses["router"])

	require.NoError(t, engine.UpsertUsefulAddress(ctx, hexID, "router", "0xrouter2"))
	assert.Equal(t, "0xrouter2", store.chains[0].UsefulAddresses["router"])

	require.NoError(t, engine.DeleteUsefulAddress(ctx, hexID, "router"))
	assert.NotContains(t, store.chains[0].UsefulAddresses, "router")

	missing := "ffffffffffffffffffffffff"
	assert.ErrorIs(t, engine.UpsertUsefulAddress(ctx, missing, "router", "0x"), ErrBlockchainNotFound)
	assert.ErrorIs(t, engine.DeleteUsefulAddress(ctx, missing, "router"), ErrBlockchainNotFound)
}

func TestDeleteBlockchainReportsCount(t *testing.T) {
	engine, store, _ := newTestEngine()
	ctx := context.Background()

	_, err := engine.CreateBlockchain(ctx, &database.Blockchain{CaipID: "eip155:10"})
	require.NoError(t, err)
	hexID := store.chains[0].ID.Hex()

	deleted, err := engine.DeleteBlockchain(ctx, hexID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	// Well-formed id with no match is not an error.
	deleted, err = engine.DeleteBlockchain(ctx, "ffffffffffffffffffffffff")
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func TestLiquidityWalletLifecycle(t *testing.T) {
	engine, store, _ := newTestEngine()
	ctx := context.Background()

	require.NoError(t, engine.UpsertWalletToken(ctx, "provider", "0xwallet", "eip155:1", "USDC", 1000))
	require.NoError(t, engine.UpsertWalletToken(ctx, "provider", "0xwallet", "eip155:1", "DAI", 50))
	require.Len(t, store.wallets, 1)
	assert.Equal(t, float64(50), store.wallets[0].Tokens["DAI"])

	wallets, err := engine.WalletsByChain(ctx, "provider", "eip155:1")
	require.NoError(t, err)
	require.Len(t, wallets, 1)

	wallets, err = engine.WalletsByChain(ctx, "provider", "eip155:2")
	require.NoError(t, err)
	assert.Empty(t, wallets)

	assert.ErrorIs(t, engine.DeleteWallet(ctx, "provider", "0xother", "eip155:1"), ErrWalletNotFound)
	require.NoError(t, engine.DeleteWallet(ctx, "provider", "0xwallet", "eip155:1"))
	assert.Empty(t, store.wallets)
}

func TestConfirmOrderDeposit(t *testing.T) {
	engine, _, notifier := newTestEngine()
	ctx := context.Background()

	_, err := engine.CreateOrder(ctx, "user-a", pendingOrder("0xchain"))
	require.NoError(t, err)

	order, err := engine.ConfirmOrderDeposit(ctx, "0xchain")
	require.NoError(t, err)
	assert.Equal(t, database.OrderStatusSuccess, order.Status)
	assert.Len(t, notifier.Events(), 1)

	// Seen again on chain: already successful, nothing dispatched.
	_, err = engine.ConfirmOrderDeposit(ctx, "0xchain")
	require.NoError(t, err)
	assert.Len(t, notifier.Events(), 1)

	_, err = engine.ConfirmOrderDeposit(ctx, "0xunknown")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
