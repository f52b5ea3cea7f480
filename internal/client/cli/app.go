package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/dmitrijs2005/donatello/internal/client/avatar"
	"github.com/dmitrijs2005/donatello/internal/client/client"
	"github.com/dmitrijs2005/donatello/internal/client/config"
	"github.com/dmitrijs2005/donatello/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/donatello/internal/client/services"
	"github.com/dmitrijs2005/donatello/internal/client/session"
	"github.com/dmitrijs2005/donatello/internal/logging"
)

const appName = "DONATello"

type App struct {
	config    *config.Config
	logger    logging.Logger
	session   services.SessionView
	auth      services.AuthService
	profile   services.ProfileService
	charities services.CharityService
	posts     services.PostService
	reader    *bufio.Reader
	out       io.Writer
	userName  string
	closers   []func() error
}

// NewApp builds the full client stack from c: logger, session storage,
// session, HTTP client, optional avatar store and services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogFormat, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	a := &App{
		config: c,
		logger: logger,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	opts := metadata.Options{
		Driver:        c.StorageDriver,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
		RedisDB:       c.RedisDB,
		Passphrase:    []byte(c.StoragePassphrase),
	}
	if c.StorageDriver == metadata.DriverSQLite || c.StorageDriver == "" {
		opts.DSN = c.DatabaseDSN
	}
	repo, closeRepo, err := metadata.Open(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("error opening session storage: %w", err)
	}
	a.closers = append(a.closers, closeRepo)

	sess := session.New(repo, logger)
	if err := sess.Load(ctx); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("error loading session: %w", err)
	}
	a.session = sess

	apiClient, err := client.New(sess, client.Options{
		BaseURL:        c.APIBaseURL,
		Timeout:        c.RequestTimeout,
		CredentialMode: client.CredentialMode(c.CredentialMode),
		AuthScheme:     c.AuthScheme,
		Navigator:      a,
		Logger:         logger,
	})
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	var store avatar.Store
	if c.AvatarsEnabled() {
		s3Store, err := avatar.NewS3Store(ctx, avatar.Config{
			Region:       c.S3Region,
			Bucket:       c.S3Bucket,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
			URLExpiry:    c.AvatarURLExpiry,
		})
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("error configuring avatar storage: %w", err)
		}
		store = s3Store
	}

	a.auth = services.NewAuthService(apiClient, sess)
	a.profile = services.NewProfileService(apiClient, sess, store)
	a.charities = services.NewCharityService(apiClient)
	a.posts = services.NewPostService(apiClient)
	return a, nil
}

// Run prints the banner and blocks in the REPL until the user exits or
// stdin is closed.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.auth.Close(ctx); err != nil {
			a.logger.Warn(ctx, "client close failed", "error", err)
		}
		if err := a.Close(); err != nil {
			a.logger.Warn(ctx, "storage close failed", "error", err)
		}
	}()

	printBanner(a.out)
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Restored saved session.")
	}
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

// Close releases storage handles. It is safe to call more than once.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) isLoggedIn() bool {
	return a.session != nil && a.session.State() != session.Anonymous
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return "(anonymous)"
	}
	name := a.userName
	if name == "" {
		name = "logged in"
		if id := a.session.UserID(); id != "" {
			name = "user " + id
		}
	}
	return fmt.Sprintf("(%s)", name)
}

func printBanner(w io.Writer) {
	fig := figure.NewFigure(appName, "cybermedium", true)
	fmt.Fprintln(w, fig.String())
	fmt.Fprintln(w, "Type 'help' for commands.")
}
