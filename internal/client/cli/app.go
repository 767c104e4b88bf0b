// Package cli implements the interactive Framez command-line client.
package cli

import (
	"bufio"
	"context"
	"log"
	"os"
	"sync"
	"time"

	"github.com/framezhq/framez/internal/client/api"
	"github.com/framezhq/framez/internal/client/config"
	"github.com/framezhq/framez/internal/client/models"
	"github.com/framezhq/framez/internal/client/services"
	"github.com/framezhq/framez/internal/client/store"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	postService services.PostService
	user        *models.User
	reader      *bufio.Reader

	// mode is written by the status watcher goroutine and read by the REPL
	// on every prompt render.
	modeMu sync.RWMutex
	mode   Mode
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	db, err := store.InitDatabase(ctx, c.SessionDBPath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.ServerURL)

	as := services.NewAuthService(apiClient, db)
	ps := services.NewPostService(apiClient)

	app := &App{config: c, authService: as, postService: ps, reader: bufio.NewReader(os.Stdin)}

	// restore the previous session, if any
	app.user = as.Current(ctx)

	return app, nil
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) currentMode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

func (a *App) Run(ctx context.Context) {
	defer a.authService.Close(ctx)
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.authService.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
