package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wirefeed/wirefeed/internal/auth"
	"github.com/wirefeed/wirefeed/internal/db"
	"github.com/wirefeed/wirefeed/internal/models"
)

var seedPassword string

// seedCmd populates the database with demo data
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with demo data",
	Long: `Populate the database with a small set of demo users, posts,
follows and likes. Intended for local development only.

Examples:
  wirefeedctl seed
  wirefeedctl seed --password hunter2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed()
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedPassword, "password", "wirefeed", "Password assigned to every demo user")
	rootCmd.AddCommand(seedCmd)
}

func runSeed() error {
	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	ctx := context.Background()
	repo := db.NewRepository(database.DB)
	users := db.NewUserRepository(repo)
	follows := db.NewFollowRepository(repo)
	posts := db.NewPostRepository(repo)
	likes := db.NewLikeRepository(repo)

	hash, err := auth.HashPassword(seedPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	usernames := []string{"alice", "bob", "carol"}
	seeded := make([]*models.User, 0, len(usernames))
	for _, name := range usernames {
		existing, err := users.GetUserByUsername(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			seeded = append(seeded, existing)
			continue
		}
		user := &models.User{
			Username:     name,
			Email:        name + "@wirefeed.local",
			PasswordHash: hash,
		}
		if err := users.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("failed to create user %s: %w", name, err)
		}
		seeded = append(seeded, user)
	}

	alice, bob, carol := seeded[0], seeded[1], seeded[2]

	edges := []*models.Follow{
		{SourceID: alice.ID, DestinationID: bob.ID},
		{SourceID: alice.ID, DestinationID: carol.ID},
		{SourceID: bob.ID, DestinationID: alice.ID},
	}
	for _, edge := range edges {
		exists, err := follows.HasFollow(ctx, edge.SourceID, edge.DestinationID)
		if err != nil {
			return err
		}
		if !exists {
			if err := follows.CreateFollow(ctx, edge); err != nil {
				return err
			}
		}
	}

	texts := map[*models.User]string{
		alice: "Hello from alice",
		bob:   "First post on wirefeed",
		carol: "Trying this out",
	}
	for author, text := range texts {
		post := &models.Post{Text: text, CreatedByID: author.ID}
		if err := posts.CreatePost(ctx, post); err != nil {
			return err
		}
		if err := likes.CreateLike(ctx, &models.Like{UserID: alice.ID, PostID: post.ID}); err != nil {
			return err
		}
	}

	fmt.Printf("Seeded %d users (password %q)\n", len(seeded), seedPassword)
	return nil
}
