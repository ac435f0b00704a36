// Command seed fills the development database with generated data.
package main

import (
	"flag"
	"log"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/seed"
)

func main() {
	users := flag.Int("users", seed.DefaultOptions.Users, "number of users to create")
	posts := flag.Int("posts", seed.DefaultOptions.PostsPerUser, "posts per user")
	comments := flag.Int("comments", seed.DefaultOptions.CommentsPerPost, "comments per post")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	if err := seed.Run(db, seed.Options{
		Users:           *users,
		PostsPerUser:    *posts,
		CommentsPerPost: *comments,
	}); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Printf("seeded %d users", *users)
}
