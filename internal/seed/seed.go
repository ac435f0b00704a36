package seed

import (
	"fmt"

	"gorm.io/gorm"
)

// Options controls how much data Run generates.
type Options struct {
	Users           int
	PostsPerUser    int
	CommentsPerPost int
}

// DefaultOptions is a small data set suitable for local development.
var DefaultOptions = Options{
	Users:           10,
	PostsPerUser:    3,
	CommentsPerPost: 2,
}

// Run populates the database with generated users, posts and comments.
func Run(db *gorm.DB, opts Options) error {
	f := NewFactory(db)

	for i := 0; i < opts.Users; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}

		for j := 0; j < opts.PostsPerUser; j++ {
			post, err := f.CreatePost(user)
			if err != nil {
				return fmt.Errorf("seed post: %w", err)
			}

			for k := 0; k < opts.CommentsPerPost; k++ {
				if _, err := f.CreateComment(user, post); err != nil {
					return fmt.Errorf("seed comment: %w", err)
				}
			}
		}
	}

	return nil
}
