// Package main implements a standalone seed script that inserts login users
// into the phonebook database. There is no registration endpoint, so seed
// data is the only way accounts come into existence.
//
// Usage:
//
//	SEED_USERNAME=admin SEED_PASSWORD=admin go run ./cmd/seed
//
// Passwords are stored bcrypt-hashed unless SEED_PLAINTEXT=true is set,
// which writes the legacy plaintext form the login flow still accepts.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/mpopescu/phonebook/internal/config"
	"github.com/mpopescu/phonebook/internal/domain"
	"github.com/mpopescu/phonebook/internal/repository/mongodb"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	username := getEnv("SEED_USERNAME", "admin")
	password := getEnv("SEED_PASSWORD", "admin")

	if getEnv("SEED_PLAINTEXT", "") != "true" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		password = string(hashed)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("connect to mongodb: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	users := mongodb.NewUserRepository(client.Database(cfg.MongoDB))
	if err := users.Create(ctx, &domain.User{Username: username, Password: password}); err != nil {
		log.Fatalf("seed user: %v", err)
	}

	log.Printf("seeded user %q into database %q", username, cfg.MongoDB)
}
