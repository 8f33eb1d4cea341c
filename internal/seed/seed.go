// Package seed populates the database with demo authors and posts.
package seed

import (
	"context"
	"fmt"
	"log"
	"strings"

	"inkwell/internal/auth"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// DemoPassword is the login password for every seeded account.
const DemoPassword = "inkwell-demo-pass"

// Run inserts userCount demo authors, each with postsPerUser posts. Existing
// rows are left alone; a username collision just retries with a new name.
func Run(db *gorm.DB, userCount, postsPerUser int) error {
	ctx := context.Background()
	users := repository.NewUserRepository(db)
	posts := repository.NewPostRepository(db)

	digest, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return err
	}

	for i := 0; i < userCount; i++ {
		username, err := freshUsername(ctx, users)
		if err != nil {
			return err
		}

		user := &models.User{Username: username, Password: digest}
		if err := users.Create(ctx, user); err != nil {
			return err
		}

		for j := 0; j < postsPerUser; j++ {
			post := &models.Post{
				Title:    gofakeit.Sentence(5),
				Body:     fakeBody(),
				AuthorID: user.ID,
			}
			if err := posts.Create(ctx, post); err != nil {
				return err
			}
		}

		log.Printf("seeded %s with %d posts", username, postsPerUser)
	}

	return nil
}

// freshUsername generates a name that fits the registration rules: 3-10
// alphanumeric characters, not already taken.
func freshUsername(ctx context.Context, users repository.UserRepository) (string, error) {
	for attempt := 0; attempt < 50; attempt++ {
		word := strings.ToLower(gofakeit.Word())
		word = strings.Map(func(r rune) rune {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				return r
			}
			return -1
		}, word)
		if len(word) > 8 {
			word = word[:8]
		}
		if len(word) < 3 {
			continue
		}
		username := fmt.Sprintf("%s%d", word, gofakeit.Number(0, 9))
		if len(username) > 10 {
			username = username[:10]
		}

		existing, err := users.GetByUsername(ctx, username)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return username, nil
		}
	}
	return "", fmt.Errorf("could not find a free username after 50 attempts")
}

func fakeBody() string {
	paragraphs := []string{
		gofakeit.Paragraph(1, 3, 12, "\n\n"),
		"## " + gofakeit.Sentence(3),
		gofakeit.Paragraph(1, 2, 10, "\n\n"),
	}
	return strings.Join(paragraphs, "\n\n")
}
