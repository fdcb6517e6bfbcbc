package lifecycle

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MrE-Fog/grindery-delight-api/internal/pkg/database"
)

// memStore is an in-memory Store with the same observable behavior as the
// Mongo implementation, including duplicate-key reporting from the unique
// indexes, so engine tests run isolated without a database.
type memStore struct {
	mu      sync.Mutex
	orders  []*database.Order
	offers  []*database.Offer
	chains  []*database.Blockchain
	wallets []*database.LiquidityWallet
}

func newMemStore() *memStore {
	return &memStore{}
}

func dupKeyErr() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
}

func equalFold(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Orders

func (m *memStore) InsertOrder(ctx context.Context, order *database.Order) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if order.OrderID != "" {
		for _, existing := range m.orders {
			if existing.OrderID == order.OrderID {
				return "", dupKeyErr()
			}
		}
	}
	stored := *order
	stored.ID = primitive.NewObjectID()
	m.orders = append(m.orders, &stored)
	return stored.ID.Hex(), nil
}

func (m *memStore) FindOrderByOrderID(ctx context.Context, orderID string) (*database.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, order := range m.orders {
		if order.OrderID == orderID {
			copied := *order
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memStore) FindOrderByHash(ctx context.Context, hash string) (*database.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, order := range m.orders {
		if order.Hash == hash {
			copied := *order
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memStore) FindOrderByID(ctx context.Context, hexID string) (*database.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, order := range m.orders {
		if order.ID.Hex() == hexID {
			copied := *order
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memStore) FindOrdersByUser(ctx context.Context, userID string, offset, limit int64) ([]database.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := []database.Order{}
	for _, order := range m.orders {
		if equalFold(order.UserID, userID) {
			matched = append(matched, *order)
		}
	}
	return page(matched, offset, limit), nil
}

func (m *memStore) FindOrdersByOffers(ctx context.Context, offerIDs []string, offset, limit int64) ([]database.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := map[string]struct{}{}
	for _, id := range offerIDs {
		wanted[id] = struct{}{}
	}
	matched := []database.Order{}
	for _, order := range m.orders {
		if _, ok := wanted[order.OfferID]; ok {
			matched = append(matched, *order)
		}
	}
	return page(matched, offset, limit), nil
}

func page(orders []database.Order, offset, limit int64) []database.Order {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Date.After(orders[j].Date)
	})
	if offset >= int64(len(orders)) {
		return []database.Order{}
	}
	orders = orders[offset:]
	if limit > 0 && limit < int64(len(orders)) {
		orders = orders[:limit]
	}
	return orders
}

func (m *memStore) MarkOrderSuccess(ctx context.Context, hash, orderID string) (database.UpdateOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, order := range m.orders {
		if order.Hash == hash {
			if order.OrderID == orderID && order.Status == database.OrderStatusSuccess {
				return database.UpdateOutcome{Matched: 1, Modified: 0}, nil
			}
			order.OrderID = orderID
			order.Status = database.OrderStatusSuccess
			return database.UpdateOutcome{Matched: 1, Modified: 1}, nil
		}
	}
	return database.UpdateOutcome{}, nil
}

func (m *memStore) MarkOrderStatusByHash(ctx context.Context, hash, from, to string) (database.UpdateOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, order := range m.orders {
		if order.Hash == hash && order.Status == from {
			order.Status = to
			return database.UpdateOutcome{Matched: 1, Modified: 1}, nil
		}
	}
	return database.UpdateOutcome{}, nil
}

func (m *memStore) CompleteOrder(ctx context.Context, userID, orderID, completionHash string) (database.UpdateOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, order := range m.orders {
		if order.OrderID == orderID && equalFold(order.UserID, userID) && order.Status == database.OrderStatusSuccess {
			order.Status = database.OrderStatusCompletion
			order.IsComplete = true
			order.CompletionHash = completionHash
			return database.UpdateOutcome{Matched: 1, Modified: 1}, nil
		}
	}
	return database.UpdateOutcome{}, nil
}

func (m *memStore) DeleteOrder(ctx context.Context, userID, orderID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, order := range m.orders {
		if order.OrderID == orderID && equalFold(order.UserID, userID) {
			m.orders = append(m.orders[:i], m.orders[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// Offers

func (m *memStore) InsertOffer(ctx context.Context, offer *database.Offer) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if offer.OfferID != "" {
		for _, existing := range m.offers {
			if existing.OfferID == offer.OfferID {
				return "", dupKeyErr()
			}
		}
	}
	stored := *offer
	stored.ID = primitive.NewObjectID()
	m.offers = append(m.offers, &stored)
	return stored.ID.Hex(), nil
}

func (m *memStore) FindOfferByOfferID(ctx context.Context, offerID string) (*database.Offer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, offer := range m.offers {
		if offer.OfferID == offerID && offerID != "" {
			copied := *offer
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memStore) FindOfferByHash(ctx context.Context, hash string) (*database.Offer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, offer := range m.offers {
		if offer.Hash == hash {
			copied := *offer
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memStore) FindActiveOffers(ctx context.Context, offset, limit int64) ([]database.Offer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := []database.Offer{}
	for _, offer := range m.offers {
		if offer.IsActive {
			matched = append(matched, *offer)
		}
	}
	return matched, nil
}

func (m *memStore) FindOffersByUser(ctx context.Context, userID string, active *bool) ([]database.Offer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := []database.Offer{}
	for _, offer := range m.offers {
		if !equalFold(offer.UserID, userID) {
			continue
		}
		if active != nil && offer.IsActive != *active {
			continue
		}
		matched = append(matched, *offer)
	}
	return matched, nil
}

func (m *memStore) SetOfferField(ctx context.Context, offerID, field string, value interface{}) (database.UpdateOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, offer := range m.offers {
		if offer.OfferID != offerID || offerID == "" {
			continue
		}
		modified := int64(1)
		switch field {
		case "max":
			offer.Max = value.(float64)
		case "min":
			offer.Min = value.(float64)
		case "token":
			offer.Token = value.(string)
		case "chainId":
			offer.ChainID = value.(string)
		case "isActive":
			if offer.IsActive == value.(bool) {
				modified = 0
			}
			offer.IsActive = value.(bool)
		}
		return database.UpdateOutcome{Matched: 1, Modified: modified}, nil
	}
	return database.UpdateOutcome{}, nil
}

func (m *memStore) AssignOfferID(ctx context.Context, hash, offerID, status string) (database.UpdateOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.offers {
		if existing.OfferID == offerID && existing.Hash != hash {
			return database.UpdateOutcome{}, dupKeyErr()
		}
	}
	for _, offer := range m.offers {
		if offer.Hash == hash {
			if offer.OfferID == offerID && offer.Status == status {
				return database.UpdateOutcome{Matched: 1, Modified: 0}, nil
			}
			offer.OfferID = offerID
			offer.Status = status
			return database.UpdateOutcome{Matched: 1, Modified: 1}, nil
		}
	}
	return database.UpdateOutcome{}, nil
}

func (m *memStore) DeleteOffer(ctx context.Context, userID, offerID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, offer := range m.offers {
		if offer.OfferID == offerID && equalFold(offer.UserID, userID) {
			m.offers = append(m.offers[:i], m.offers[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// Blockchains

func (m *memStore) InsertBlockchain(ctx context.Context, chain *database.Blockchain) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.chains {
		if existing.CaipID == chain.CaipID {
			return "", dupKeyErr()
		}
	}
	stored := *chain
	stored.ID = primitive.NewObjectID()
	m.chains = append(m.chains, &stored)
	return stored.ID.Hex(), nil
}

func (m *memStore) FindBlockchainByCaipID(ctx context.Context, caipID string) (*database.Blockchain, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, chain := range m.chains {
		if chain.CaipID == caipID {
			copied := *chain
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memStore) FindBlockchainByID(ctx context.Context, hexID string) (*database.Blockchain, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, chain := range m.chains {
		if chain.ID.Hex() == hexID {
			copied := *chain
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memStore) FindBlockchains(ctx context.Context, activeOnly bool) ([]database.Blockchain, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := []database.Blockchain{}
	for _, chain := range m.chains {
		if activeOnly && !chain.IsActive {
			continue
		}
		matched = append(matched, *chain)
	}
	return matched, nil
}

func (m *memStore) DeleteBlockchain(ctx context.Context, hexID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, chain := range m.chains {
		if chain.ID.Hex() == hexID {
			m.chains = append(m.chains[:i], m.chains[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *memStore) UpsertUsefulAddress(ctx context.Context, hexID, contract, address string) (database.UpdateOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, chain := range m.chains {
		if chain.ID.Hex() == hexID {
			if chain.UsefulAddresses == nil {
				chain.UsefulAddresses = map[string]string{}
			}
			chain.UsefulAddresses[contract] = address
			return database.UpdateOutcome{Matched: 1, Modified: 1}, nil
		}
	}
	return database.UpdateOutcome{}, nil
}

func (m *memStore) DeleteUsefulAddress(ctx context.Context, hexID, contract string) (database.UpdateOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, chain := range m.chains {
		if chain.ID.Hex() == hexID {
			delete(chain.UsefulAddresses, contract)
			return database.UpdateOutcome{Matched: 1, Modified: 1}, nil
		}
	}
	return database.UpdateOutcome{}, nil
}

// Liquidity wallets

func (m *memStore) UpsertWalletToken(ctx context.Context, userID, walletAddress, chainID, token string, amount float64) (database.UpdateOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, wallet := range m.wallets {
		if wallet.WalletAddress == walletAddress && wallet.ChainID == chainID && equalFold(wallet.UserID, userID) {
			wallet.Tokens[token] = amount
			return database.UpdateOutcome{Matched: 1, Modified: 1}, nil
		}
	}
	m.wallets = append(m.wallets, &database.LiquidityWallet{
		ID:            primitive.NewObjectID(),
		WalletAddress: walletAddress,
		ChainID:       chainID,
		UserID:        userID,
		Tokens:        map[string]float64{token: amount},
	})
	return database.UpdateOutcome{Matched: 1, Modified: 1}, nil
}

func (m *memStore) FindWalletsByChain(ctx context.Context, userID, chainID string) ([]database.LiquidityWallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := []database.LiquidityWallet{}
	for _, wallet := range m.wallets {
		if !equalFold(wallet.UserID, userID) {
			continue
		}
		if chainID != "" && wallet.ChainID != chainID {
			continue
		}
		matched = append(matched, *wallet)
	}
	return matched, nil
}

func (m *memStore) DeleteWallet(ctx context.Context, userID, walletAddress, chainID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, wallet := range m.wallets {
		if wallet.WalletAddress == walletAddress && wallet.ChainID == chainID && equalFold(wallet.UserID, userID) {
			m.wallets = append(m.wallets[:i], m.wallets[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// recordingNotifier captures dispatched events for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (n *recordingNotifier) Publish(event Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) Events() []Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Event{}, n.events...)
}
