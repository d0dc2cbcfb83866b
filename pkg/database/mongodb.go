package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDB wraps the MongoDB client and database
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// Connect establishes a connection to MongoDB
func Connect(ctx context.Context, uri, dbName string) (*MongoDB, error) {
	clientOptions := options.Client().ApplyURI(uri)

	// Set connection timeout
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(dbName)

	mongoDB := &MongoDB{
		Client:   client,
		Database: db,
	}

	// Create indexes
	if err := mongoDB.CreateIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return mongoDB, nil
}

// CreateIndexes creates all necessary indexes for the application
func (m *MongoDB) CreateIndexes(ctx context.Context) error {
	// Create unique index on profiles.user_id: one profile per user
	profilesCollection := m.Database.Collection("profiles")
	userIDIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("profile_user_unique"),
	}
	if _, err := profilesCollection.Indexes().CreateOne(ctx, userIDIndex); err != nil {
		return fmt.Errorf("failed to create profile user index: %w", err)
	}

	// Create index on transactions.profile_id for ledger listings
	transactionsCollection := m.Database.Collection("transactions")
	profileIDIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "profile_id", Value: 1}, {Key: "received_at", Value: -1}},
		Options: options.Index().SetName("transaction_profile_index"),
	}
	if _, err := transactionsCollection.Indexes().CreateOne(ctx, profileIDIndex); err != nil {
		return fmt.Errorf("failed to create transaction profile index: %w", err)
	}

	// Create index on redemptions.user_id for receipt history
	redemptionsCollection := m.Database.Collection("redemptions")
	redemptionUserIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "redeemed_at", Value: -1}},
		Options: options.Index().SetName("redemption_user_index"),
	}
	if _, err := redemptionsCollection.Indexes().CreateOne(ctx, redemptionUserIndex); err != nil {
		return fmt.Errorf("failed to create redemption user index: %w", err)
	}

	// Create index on rewards.listed_at for catalog ordering
	rewardsCollection := m.Database.Collection("rewards")
	listedAtIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "listed_at", Value: -1}},
		Options: options.Index().SetName("reward_listed_index"),
	}
	if _, err := rewardsCollection.Indexes().CreateOne(ctx, listedAtIndex); err != nil {
		return fmt.Errorf("failed to create reward listed index: %w", err)
	}

	return nil
}

// Disconnect closes the MongoDB connection
func (m *MongoDB) Disconnect(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
