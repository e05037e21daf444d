package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"harborview/internal/config"
)

// Collection names
const (
	CollectionMessages      = "messages"
	CollectionBusinessSales = "businesssales"
	CollectionBusinessBuys  = "businessbuys"
	CollectionArticles      = "articles"
	CollectionServices      = "services"
	CollectionContacts      = "contacts"
	CollectionAdmins        = "admins"
)

const (
	pingTimeout  = 5 * time.Second
	indexTimeout = 10 * time.Second
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// Init opens the process-wide Mongo client and prepares indexes. The client
// is shared by every request; handlers never open their own connections.
func Init(cfg *config.DatabaseConfig) error {
	log.Println("[DB] Connecting to MongoDB...")

	opts := options.Client().ApplyURI(cfg.URI)
	c, err := mongo.Connect(opts)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := c.Ping(ctx, nil); err != nil {
		return fmt.Errorf("MongoDB ping failed: %w", err)
	}

	client = c
	db = c.Database(cfg.Name)

	if err := ensureIndexes(); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Printf("[DB] Database connected: %s", cfg.Name)
	return nil
}

// ensureIndexes creates the indexes the handlers rely on. Creation is
// idempotent, so running it on every start is safe.
func ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	// Admin usernames are unique; enforced here rather than in application code.
	_, err := db.Collection(CollectionAdmins).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	articleIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "isPublished", Value: 1}, {Key: "publishedAt", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "isPublished", Value: 1}}},
	}
	if _, err := db.Collection(CollectionArticles).Indexes().CreateMany(ctx, articleIndexes); err != nil {
		return err
	}

	for _, name := range []string{CollectionMessages, CollectionBusinessSales, CollectionBusinessBuys} {
		_, err := db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// GetDB returns the database handle
func GetDB() *mongo.Database {
	if db == nil {
		log.Fatal("Database not initialized. Call database.Init() first.")
	}
	return db
}

// HealthCheck performs a database health check
func HealthCheck() error {
	if client == nil {
		return fmt.Errorf("database not initialized")
	}
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return client.Ping(ctx, nil)
}

// Close disconnects the client
func Close(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
