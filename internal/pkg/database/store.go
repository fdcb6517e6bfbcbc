package database

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore is the Mongo-backed record store. Handlers never touch it
// directly; the lifecycle engine consumes it through its Store interface so
// tests can substitute an in-memory implementation.
type MongoStore struct {
	client *mongo.Client
	dbName string
}

func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	return &MongoStore{client: client, dbName: dbName}
}

func (s *MongoStore) collection(name string) *mongo.Collection {
	return s.client.Database(s.dbName).Collection(name)
}

// caseInsensitive builds an anchored case-insensitive equality filter, used
// for userId scoping since token issuers are not consistent about casing.
func caseInsensitive(value string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(value) + "$", Options: "i"}
}

func pageOptions(offset, limit int64) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if offset > 0 {
		opts.SetSkip(offset)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return opts
}

func outcome(res *mongo.UpdateResult) UpdateOutcome {
	return UpdateOutcome{Matched: res.MatchedCount, Modified: res.ModifiedCount}
}

// Orders

func (s *MongoStore) InsertOrder(ctx context.Context, order *Order) (string, error) {
	res, err := s.collection(OrderCollection).InsertOne(ctx, order)
	if err != nil {
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (s *MongoStore) FindOrderByOrderID(ctx context.Context, orderID string) (*Order, error) {
	return s.findOrder(ctx, bson.M{"orderId": orderID})
}

func (s *MongoStore) FindOrderByHash(ctx context.Context, hash string) (*Order, error) {
	return s.findOrder(ctx, bson.M{"hash": hash})
}

func (s *MongoStore) FindOrderByID(ctx context.Context, hexID string) (*Order, error) {
	objectID, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil, err
	}
	return s.findOrder(ctx, bson.M{"_id": objectID})
}

func (s *MongoStore) findOrder(ctx context.Context, filter bson.M) (*Order, error) {
	order := Order{}
	err := s.collection(OrderCollection).FindOne(ctx, filter).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *MongoStore) FindOrdersByUser(ctx context.Context, userID string, offset, limit int64) ([]Order, error) {
	filter := bson.M{"userId": caseInsensitive(userID)}
	cursor, err := s.collection(OrderCollection).Find(ctx, filter, pageOptions(offset, limit))
	if err != nil {
		return nil, err
	}
	orders := []Order{}
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *MongoStore) FindOrdersByOffers(ctx context.Context, offerIDs []string, offset, limit int64) ([]Order, error) {
	filter := bson.M{"offerId": bson.M{"$in": offerIDs}}
	cursor, err := s.collection(OrderCollection).Find(ctx, filter, pageOptions(offset, limit))
	if err != nil {
		return nil, err
	}
	orders := []Order{}
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *MongoStore) MarkOrderSuccess(ctx context.Context, hash, orderID string) (UpdateOutcome, error) {
	res, err := s.collection(OrderCollection).UpdateOne(ctx,
		bson.M{"hash": hash},
		bson.M{"$set": bson.M{"orderId": orderID, "status": OrderStatusSuccess}})
	if err != nil {
		return UpdateOutcome{}, err
	}
	return outcome(res), nil
}

func (s *MongoStore) MarkOrderStatusByHash(ctx context.Context, hash, from, to string) (UpdateOutcome, error) {
	res, err := s.collection(OrderCollection).UpdateOne(ctx,
		bson.M{"hash": hash, "status": from},
		bson.M{"$set": bson.M{"status": to}})
	if err != nil {
		return UpdateOutcome{}, err
	}
	return outcome(res), nil
}

func (s *MongoStore) CompleteOrder(ctx context.Context, userID, orderID, completionHash string) (UpdateOutcome, error) {
	filter := bson.M{
		"orderId": orderID,
		"userId":  caseInsensitive(userID),
		"status":  OrderStatusSuccess,
	}
	update := bson.M{"$set": bson.M{
		"status":         OrderStatusCompletion,
		"isComplete":     true,
		"completionHash": completionHash,
	}}
	res, err := s.collection(OrderCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return UpdateOutcome{}, err
	}
	return outcome(res), nil
}

func (s *MongoStore) DeleteOrder(ctx context.Context, userID, orderID string) (int64, error) {
	res, err := s.collection(OrderCollection).DeleteOne(ctx,
		bson.M{"orderId": orderID, "userId": caseInsensitive(userID)})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Offers

func (s *MongoStore) InsertOffer(ctx context.Context, offer *Offer) (string, error) {
	res, err := s.collection(OfferCollection).InsertOne(ctx, offer)
	if err != nil {
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (s *MongoStore) FindOfferByOfferID(ctx context.Context, offerID string) (*Offer, error) {
	return s.findOffer(ctx, bson.M{"offerId": offerID})
}

func (s *MongoStore) FindOfferByHash(ctx context.Context, hash string) (*Offer, error) {
	return s.findOffer(ctx, bson.M{"hash": hash})
}

func (s *MongoStore) findOffer(ctx context.Context, filter bson.M) (*Offer, error) {
	offer := Offer{}
	err := s.collection(OfferCollection).FindOne(ctx, filter).Decode(&offer)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

func (s *MongoStore) FindActiveOffers(ctx context.Context, offset, limit int64) ([]Offer, error) {
	cursor, err := s.collection(OfferCollection).Find(ctx, bson.M{"isActive": true}, pageOptions(offset, limit))
	if err != nil {
		return nil, err
	}
	offers := []Offer{}
	if err = cursor.All(ctx, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

func (s *MongoStore) FindOffersByUser(ctx context.Context, userID string, active *bool) ([]Offer, error) {
	filter := bson.M{"userId": caseInsensitive(userID)}
	if active != nil {
		filter["isActive"] = *active
	}
	cursor, err := s.collection(OfferCollection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	offers := []Offer{}
	if err = cursor.All(ctx, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

// SetOfferField applies one of the webhook single-field mutations keyed by
// offerId. The field name must be one of the updatable bson fields; callers
// pass it from a fixed set, never from request input.
func (s *MongoStore) SetOfferField(ctx context.Context, offerID, field string, value interface{}) (UpdateOutcome, error) {
	res, err := s.collection(OfferCollection).UpdateOne(ctx,
		bson.M{"offerId": offerID},
		bson.M{"$set": bson.M{field: value}})
	if err != nil {
		return UpdateOutcome{}, err
	}
	return outcome(res), nil
}

func (s *MongoStore) AssignOfferID(ctx context.Context, hash, offerID, status string) (UpdateOutcome, error) {
	res, err := s.collection(OfferCollection).UpdateOne(ctx,
		bson.M{"hash": hash},
		bson.M{"$set": bson.M{"offerId": offerID, "status": status}})
	if err != nil {
		return UpdateOutcome{}, err
	}
	return outcome(res), nil
}

func (s *MongoStore) DeleteOffer(ctx context.Context, userID, offerID string) (int64, error) {
	res, err := s.collection(OfferCollection).DeleteOne(ctx,
		bson.M{"offerId": offerID, "userId": caseInsensitive(userID)})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Blockchains

func (s *MongoStore) InsertBlockchain(ctx context.Context, chain *Blockchain) (string, error) {
	res, err := s.collection(BlockchainCollection).InsertOne(ctx, chain)
	if err != nil {
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (s *MongoStore) FindBlockchainByCaipID(ctx context.Context, caipID string) (*Blockchain, error) {
	return s.findBlockchain(ctx, bson.M{"caipId": caipID})
}

func (s *MongoStore) FindBlockchainByID(ctx context.Context, hexID string) (*Blockchain, error) {
	objectID, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil, err
	}
	return s.findBlockchain(ctx, bson.M{"_id": objectID})
}

func (s *MongoStore) findBlockchain(ctx context.Context, filter bson.M) (*Blockchain, error) {
	chain := Blockchain{}
	err := s.collection(BlockchainCollection).FindOne(ctx, filter).Decode(&chain)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &chain, nil
}

func (s *MongoStore) FindBlockchains(ctx context.Context, activeOnly bool) ([]Blockchain, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}
	cursor, err := s.collection(BlockchainCollection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	chains := []Blockchain{}
	if err = cursor.All(ctx, &chains); err != nil {
		return nil, err
	}
	return chains, nil
}

func (s *MongoStore) DeleteBlockchain(ctx context.Context, hexID string) (int64, error) {
	objectID, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return 0, err
	}
	res, err := s.collection(BlockchainCollection).DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *MongoStore) UpsertUsefulAddress(ctx context.Context, hexID, contract, address string) (UpdateOutcome, error) {
	objectID, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return UpdateOutcome{}, err
	}
	res, err := s.collection(BlockchainCollection).UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"usefulAddresses." + contract: address}})
	if err != nil {
		return UpdateOutcome{}, err
	}
	return outcome(res), nil
}

func (s *MongoStore) DeleteUsefulAddress(ctx context.Context, hexID, contract string) (UpdateOutcome, error) {
	objectID, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return UpdateOutcome{}, err
	}
	res, err := s.collection(BlockchainCollection).UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$unset": bson.M{"usefulAddresses." + contract: ""}})
	if err != nil {
		return UpdateOutcome{}, err
	}
	return outcome(res), nil
}

// Liquidity wallets

func (s *MongoStore) UpsertWalletToken(ctx context.Context, userID, walletAddress, chainID, token string, amount float64) (UpdateOutcome, error) {
	filter := bson.M{
		"walletAddress": walletAddress,
		"chainId":       chainID,
		"userId":        caseInsensitive(userID),
	}
	update := bson.M{
		"$set":         bson.M{"tokens." + token: amount},
		"$setOnInsert": bson.M{"userId": userID},
	}
	res, err := s.collection(LiquidityWalletCollection).UpdateOne(ctx, filter, update,
		options.Update().SetUpsert(true))
	if err != nil {
		return UpdateOutcome{}, err
	}
	out := outcome(res)
	if res.UpsertedCount > 0 {
		out.Matched = 1
		out.Modified = 1
	}
	return out, nil
}

func (s *MongoStore) FindWalletsByChain(ctx context.Context, userID, chainID string) ([]LiquidityWallet, error) {
	filter := bson.M{"userId": caseInsensitive(userID)}
	if chainID != "" {
		filter["chainId"] = chainID
	}
	cursor, err := s.collection(LiquidityWalletCollection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	wallets := []LiquidityWallet{}
	if err = cursor.All(ctx, &wallets); err != nil {
		return nil, err
	}
	return wallets, nil
}

func (s *MongoStore) DeleteWallet(ctx context.Context, userID, walletAddress, chainID string) (int64, error) {
	res, err := s.collection(LiquidityWalletCollection).DeleteOne(ctx, bson.M{
		"walletAddress": walletAddress,
		"chainId":       chainID,
		"userId":        caseInsensitive(userID),
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CreationTime is the single clock source for record timestamps.
func CreationTime() time.Time {
	return time.Now().UTC()
}
