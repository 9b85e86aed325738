package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"codeberg.org/interprep/server/internal/auth"
	"codeberg.org/interprep/server/internal/config"
	"codeberg.org/interprep/server/internal/logger"
	"codeberg.org/interprep/server/internal/storage"
	"codeberg.org/interprep/server/interprep/users"
	"github.com/google/uuid"
)

const (
	testUsername = "test-user"
	testEmail    = "test@interprep.dev"
)

func main() {
	config.LoadDotEnv()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL not set")
	}

	ctx := context.Background()

	db, err := storage.NewClient(ctx, dbURL)
	if err != nil {
		logger.FatalErr(err, "failed to connect to database")
	}
	defer db.Close()

	repo := users.NewRepository(db.Pool())

	user, err := repo.FindByUsername(ctx, testUsername)
	if errors.Is(err, users.ErrUserNotFound) {
		// random password: the account is only reachable through the printed token
		hash, hashErr := auth.HashPassword(uuid.NewString())
		if hashErr != nil {
			logger.FatalErr(hashErr, "failed to hash password")
		}

		user, err = repo.Create(ctx, testUsername, testEmail, hash)
		if err != nil {
			logger.FatalErr(err, "failed to create test user")
		}

		fmt.Printf("created test user %s (id %d)\n", user.Username, user.ID)
	} else if err != nil {
		logger.FatalErr(err, "failed to look up test user")
	} else {
		fmt.Printf("using existing test user %s (id %d)\n", user.Username, user.ID)
	}

	token, err := auth.GenerateJWT(user.ID, user.Email, user.Username)
	if err != nil {
		logger.FatalErr(err, "failed to generate JWT")
	}

	fmt.Printf("\ntest JWT:\n%s\n\n", token)
	fmt.Printf("export TEST_TOKEN=%q\n", token)
}
