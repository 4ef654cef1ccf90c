package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"profilehub/internal/config"
	"profilehub/internal/db"
	"profilehub/internal/model"
	"profilehub/internal/repository"
)

// demoUser is a user plus profile seeded for local development.
type demoUser struct {
	Name      string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Username  string
}

var demoUsers = []demoUser{
	{Name: "Ada Lovelace", Email: "ada@example.com", Password: "password123", FirstName: "Ada", LastName: "Lovelace", Username: "ada"},
	{Name: "Grace Hopper", Email: "grace@example.com", Password: "password123", FirstName: "Grace", LastName: "Hopper", Username: "grace"},
	{Name: "Alan Turing", Email: "alan@example.com", Password: "password123", FirstName: "Alan", LastName: "Turing", Username: "alan"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Profile{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	profileRepo := repository.NewProfileRepository(gormDB)

	ctx := context.Background()
	created := 0
	skipped := 0

	for _, d := range demoUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(d.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", d.Email, err)
		}

		user := &model.User{
			Name:         d.Name,
			Email:        d.Email,
			PasswordHash: string(hash),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				log.Printf("User %s already exists, skipping", d.Email)
				skipped++
				continue
			}
			log.Fatalf("Failed to create user %s: %v", d.Email, err)
		}

		profile := &model.Profile{
			UserID:    user.ID,
			FirstName: d.FirstName,
			LastName:  d.LastName,
			Username:  d.Username,
		}
		if err := profileRepo.Create(ctx, profile); err != nil {
			log.Fatalf("Failed to create profile for %s: %v", d.Email, err)
		}
		created++
	}

	log.Printf("Seed complete: %d created, %d skipped", created, skipped)
}
