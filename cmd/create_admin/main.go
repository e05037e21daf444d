package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"harborview/internal/config"
	"harborview/internal/database"
	"harborview/internal/domain"
	"harborview/internal/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = database.Close(ctx)
	}()

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("ADMIN_PASSWORD must be set")
	}
	if len(password) < 8 {
		log.Fatal("ADMIN_PASSWORD must be at least 8 characters")
	}

	db := database.GetDB()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	coll := db.Collection(database.CollectionAdmins)

	var existing domain.Admin
	err = coll.FindOne(ctx, bson.D{{Key: "username", Value: username}}).Decode(&existing)
	if err == nil {
		fmt.Printf("Admin user '%s' already exists!\n", username)
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		log.Fatalf("Failed to check for existing admin: %v", err)
	}

	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	now := time.Now()
	admin := domain.Admin{
		Username:       username,
		HashedPassword: hashedPassword,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := coll.InsertOne(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	fmt.Println("Admin user created successfully!")
	fmt.Printf("Username: %s\n", username)
	fmt.Println("Please store the password securely!")
}
