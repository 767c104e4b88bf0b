package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/framezhq/framez/internal/common"
)

// Register interactively creates an account. On success the session is
// stored locally and the user is logged in right away.
func (a *App) Register(ctx context.Context) error {

	name, err := GetSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	password, err := GetPassword(os.Stdout, "Enter password")
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := GetPassword(os.Stdout, "Confirm password")
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(password) != string(confirm) {
		fmt.Println("Passwords do not match")
		return nil
	}

	user, err := a.authService.Register(ctx, email, name, string(password))
	if err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	a.user = user
	log.Printf("Welcome to Framez, %s!", user.Name)
	return nil
}

// Login interactively authenticates against the server and stores the
// session locally.
func (a *App) Login(ctx context.Context) error {

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	password, err := GetPassword(os.Stdout, "Enter password")
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.authService.Login(ctx, email, string(password))
	if err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	a.user = user
	log.Printf("Login successful")
	return nil
}

// Logout drops the local session. The server keeps no per-session state.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		log.Printf("Logout error: %s", err.Error())
		return err
	}
	a.user = nil
	log.Printf("Logged out")
	return nil
}
