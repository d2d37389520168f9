package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/ghaniswara/people-swipe/internal/config"
	"github.com/ghaniswara/people-swipe/internal/datastore/postgres"
	redisClient "github.com/ghaniswara/people-swipe/internal/datastore/redis"
	peopleRepo "github.com/ghaniswara/people-swipe/internal/repository/people"
	"github.com/ghaniswara/people-swipe/internal/seed"
	"github.com/ghaniswara/people-swipe/internal/usecase/popular"
	"github.com/ghaniswara/people-swipe/pkg/mail"
	"github.com/go-redis/redis"
	"github.com/spf13/pflag"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

type options struct {
	command string
	env     string
	count   int
}

func parseArgs(w io.Writer, args []string) (options, error) {
	name := "people-swipe"
	if len(args) > 0 {
		name = args[0]
		args = args[1:]
	}

	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() {
		fmt.Fprintf(w, "Usage: %s [serve|migrate|seed|email-popular] [flags]\n", name)
		fs.PrintDefaults()
	}

	opts := options{}
	fs.StringVar(&opts.env, "env", "dev", "config prefix to read (dev, test, prod)")
	fs.IntVar(&opts.count, "count", seed.DefaultCount, "number of people created by seed")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.command = "serve"
	if fs.NArg() > 0 {
		opts.command = fs.Arg(0)
	}

	switch opts.command {
	case "serve", "migrate", "seed", "email-popular":
	default:
		fs.Usage()
		return opts, fmt.Errorf("unknown command %q", opts.command)
	}

	if opts.count <= 0 {
		return opts, fmt.Errorf("--count must be positive, got %d", opts.count)
	}

	return opts, nil
}

// Run executes the command named in args (os.Args style) until it finishes
// or ctx is cancelled.
func Run(ctx context.Context, w io.Writer, args []string) error {
	opts, err := parseArgs(w, args)
	if err != nil {
		return err
	}

	cfg, err := config.NewConfig(opts.env)
	if err != nil {
		return fmt.Errorf("could not load configuration: %w", err)
	}

	logLevel := logger.Warn
	if cfg.IsDev() {
		logLevel = logger.Info
	}

	database, err := postgres.InitializeDB(
		cfg.Get("POSTGRES_USER"),
		cfg.Get("POSTGRES_PASSWORD"),
		cfg.Get("POSTGRES_DB_NAME"),
		cfg.Get("POSTGRES_HOST"),
		cfg.Get("POSTGRES_PORT"),
		logLevel,
	)
	if err != nil {
		return err
	}

	switch opts.command {
	case "migrate":
		if err := postgres.Migrate(database); err != nil {
			return err
		}
		fmt.Fprintln(w, "Migrations applied.")
		return nil

	case "seed":
		people, err := seed.People(ctx, peopleRepo.New(database), opts.count, rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)))
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Seeded %d people.\n", len(people))
		return nil

	case "email-popular":
		return runEmailPopular(ctx, w, cfg, database)

	default:
		return serve(ctx, w, cfg, database)
	}
}

func runEmailPopular(ctx context.Context, w io.Writer, cfg *config.Config, database *gorm.DB) error {
	mailer := mail.NewSMTPMailer(
		cfg.Get("SMTP_HOST"),
		cfg.Get("SMTP_PORT"),
		cfg.Get("SMTP_USER"),
		cfg.Get("SMTP_PASSWORD"),
		cfg.Get("MAIL_FROM"),
	)

	report, err := popular.NewPopularUseCase(
		peopleRepo.New(database),
		mailer,
		cfg.Get("ADMIN_EMAIL"),
		cfg.GetInt("POPULAR_LIKES_THRESHOLD", popular.DefaultThreshold),
	).Notify(ctx)

	if err != nil {
		return err
	}

	if !report.Sent {
		fmt.Fprintln(w, "No popular people found.")
		return nil
	}

	fmt.Fprintf(w, "Email sent to admin (%d people).\n", len(report.People))
	return nil
}

func serve(ctx context.Context, w io.Writer, cfg *config.Config, database *gorm.DB) error {
	var cache *redis.Client

	if host := cfg.Get("REDIS_HOST"); host != "" {
		rdb, err := redisClient.Connect(host, cfg.Get("REDIS_PORT"), cfg.Get("REDIS_PASSWORD"))
		if err != nil {
			return err
		}
		defer rdb.Close()
		cache = rdb.Client
	} else {
		fmt.Fprintln(w, "REDIS_HOST not set, liked people cache disabled")
	}

	server := NewServer(w, cfg, database, cache)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.StartServer()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	fmt.Fprintln(w, "Server shutting down")
	return server.Shutdown(shutdownCtx)
}
