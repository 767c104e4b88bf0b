package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/framezhq/framez/internal/client/models"
)

// renderPost prints one feed entry. A dangling author is shown as Unknown.
func renderPost(p *models.Post) {
	author := "Unknown"
	if p.User != nil {
		author = p.User.Name
	}
	when := time.UnixMilli(p.CreatedAt).Format("02 Jan 06 15:04")

	printlnFn(fmt.Sprintf("[%s] %s", when, author))
	printlnFn("  " + p.Content)
	if p.ImageURL != "" {
		printlnFn("  image: " + p.ImageURL)
	}
}

// Feed fetches and prints the global feed, newest first.
func (a *App) Feed(ctx context.Context) error {
	posts, err := a.postService.Feed(ctx)
	if err != nil {
		log.Printf("error fetching feed: %s", err.Error())
		return err
	}

	if len(posts) == 0 {
		printlnFn("The feed is empty. Be the first to post!")
		return nil
	}

	for i := range posts {
		renderPost(&posts[i])
	}
	return nil
}

// Profile prints the logged-in user and their posts.
func (a *App) Profile(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in")
		return nil
	}

	printlnFn(fmt.Sprintf("%s <%s>", a.user.Name, a.user.Email))
	if a.user.Avatar != "" {
		printlnFn("avatar: " + a.user.Avatar)
	}

	posts, err := a.postService.UserPosts(ctx, a.user.ID)
	if err != nil {
		log.Printf("error fetching posts: %s", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("%d post(s)", len(posts)))
	for i := range posts {
		renderPost(&posts[i])
	}
	return nil
}
