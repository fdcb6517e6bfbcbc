package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func NewMongoDB(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// EnsureIndexes creates the unique indexes that back the application-level
// duplicate checks. The pre-insert existence checks only produce friendly
// error messages; these constraints are what actually guarantees uniqueness
// under concurrent creation. orderId and offerId are partial since both are
// empty until settlement assigns them on some records.
func EnsureIndexes(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)
	nonEmpty := func(field string) bson.M {
		return bson.M{field: bson.M{"$exists": true, "$gt": ""}}
	}
	_, err := db.Collection(OrderCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "orderId", Value: 1}},
		Options: options.Index().SetUnique(true).
			SetPartialFilterExpression(nonEmpty("orderId")),
	})
	if err != nil {
		return err
	}
	_, err = db.Collection(OfferCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "offerId", Value: 1}},
		Options: options.Index().SetUnique(true).
			SetPartialFilterExpression(nonEmpty("offerId")),
	})
	if err != nil {
		return err
	}
	_, err = db.Collection(BlockchainCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "caipId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
