package cli

import (
	"context"
	"log"
	"os"
)

// Post interactively publishes a new post, optionally attaching a local
// image file that is uploaded through the presigned handshake.
func (a *App) Post(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("You must be logged in to post")
		return nil
	}

	content, err := GetMultiline(a.reader, "What's on your mind?", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	imagePath, err := GetSimpleText(a.reader, "Image file (leave empty to skip)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	id, err := a.postService.CreatePost(ctx, a.user.ID, content, imagePath)
	if err != nil {
		log.Printf("error creating post: %s", err.Error())
		return err
	}

	log.Printf("Post created: %s", id)
	return nil
}
