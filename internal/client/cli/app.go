package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/tripmate/internal/client/client"
	"github.com/dmitrijs2005/tripmate/internal/client/config"
	"github.com/dmitrijs2005/tripmate/internal/client/services"
	"github.com/dmitrijs2005/tripmate/internal/client/storage"
	"github.com/dmitrijs2005/tripmate/internal/filex"
	"github.com/dmitrijs2005/tripmate/internal/logging"
)

// App wires the services behind the REPL commands.
type App struct {
	config  *config.Config
	auth    services.AuthService
	trips   services.TripService
	places  services.PlacesService
	metrics prometheus.Gatherer
	log     logging.Logger
	db      *sql.DB
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp builds the production App: SQLite-backed encrypted storage with an
// in-memory fallback, the resilient HTTP caller and the REST client.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(os.Stderr, c.DebugNetwork)

	var primary storage.Storage
	db, err := openDatabase(ctx, c.StoragePath)
	if err != nil {
		log.Warn(ctx, "local database unavailable, session will not survive restart",
			"path", c.StoragePath, "error", err)
	} else {
		primary = storage.NewSQLite(db)
	}

	store, err := storage.NewEncrypted(ctx, storage.NewResilient(primary, log), c.SecretKey)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, fmt.Errorf("init storage: %w", err)
	}

	reg := prometheus.NewRegistry()
	callerOpts := []client.CallerOption{
		client.WithTimeout(c.RequestTimeout),
		client.WithDebug(c.DebugNetwork),
		client.WithLogger(log),
		client.WithMetrics(client.NewMetrics(reg)),
	}
	if c.DebugNetwork {
		callerOpts = append(callerOpts, client.WithTransitionHook(func(tr client.Transition) {
			log.Debug(ctx, "http state", "request_id", tr.RequestID, "attempt", tr.Attempt, "from", tr.From, "to", tr.To)
		}))
	}
	api := client.NewRESTClient(client.NewCaller(callerOpts...), c.APIBaseURL, c.AuthURL(), "")

	auth := services.NewAuthService(api, store,
		services.WithDevMode(c.DevMode),
		services.WithAuthLogger(log),
		services.WithOnChange(func(s services.Session) {
			log.Debug(ctx, "session changed", "authenticated", s.Authenticated(), "loading", s.Loading, "hydrated", s.Hydrated)
		}),
	)

	app := newApp(c, auth, services.NewTripService(api, c.CoinsDefault), services.NewPlacesService(api, c.PlacesAPIKey),
		reg, log, bufio.NewReader(os.Stdin), os.Stdout)
	app.db = db
	return app, nil
}

func openDatabase(ctx context.Context, path string) (*sql.DB, error) {
	path, err := filex.EnsureParentDir(path)
	if err != nil {
		return nil, err
	}
	return client.InitDatabase(ctx, path)
}

func newApp(c *config.Config, auth services.AuthService, trips services.TripService, places services.PlacesService,
	metrics prometheus.Gatherer, log logging.Logger, reader *bufio.Reader, out io.Writer) *App {
	return &App{
		config:  c,
		auth:    auth,
		trips:   trips,
		places:  places,
		metrics: metrics,
		log:     log,
		reader:  reader,
		out:     out,
	}
}

// Run hydrates the session, asks for a login when none was restored and
// then serves the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.auth.Hydrate(ctx)
	fmt.Fprintln(a.out, "Welcome to tripmate (type 'help' for commands)")
	if !a.isLoggedIn() {
		_ = a.Login(ctx)
	} else {
		fmt.Fprintf(a.out, "Signed in as %s\n", a.userName())
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

// Close waits for background session work and releases the database.
func (a *App) Close() {
	a.auth.Wait()
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.auth.State().Authenticated()
}

func (a *App) userName() string {
	if u := a.auth.State().User; u != nil {
		return u.Name
	}
	return ""
}

func (a *App) token() string {
	return a.auth.State().Token
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return "(guest)"
	}
	return fmt.Sprintf("(%s)", a.userName())
}
