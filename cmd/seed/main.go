// Command seed fills the database with demo authors and posts.
package main

import (
	"flag"
	"log"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	users := flag.Int("users", 5, "number of demo authors to create")
	posts := flag.Int("posts", 4, "posts per author")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; relying on environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, *users, *posts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users with %d posts each (password %q)", *users, *posts, seed.DemoPassword)
}
