package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pet-adoption-hub/internal/adapters/petapi"
	"pet-adoption-hub/internal/infra/config"
	applog "pet-adoption-hub/internal/infra/log"
	"pet-adoption-hub/internal/infra/store"
	"pet-adoption-hub/internal/usecase/donations"
	"pet-adoption-hub/internal/usecase/matchcache"
	"pet-adoption-hub/internal/usecase/matching"
)

// app собирает зависимости команд после разбора флагов.
type app struct {
	cfg       config.AppConfig
	log       zerolog.Logger
	api       *petapi.Client
	cache     *matchcache.Service
	donations *donations.Service
	matching  *matching.Service
	out       io.Writer
	close     func()
}

var (
	apiFlag   string
	tokenFlag string
	storeFlag string
)

func newApp(ctx context.Context, out io.Writer) (*app, error) {
	cfg, err := config.Parse()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if apiFlag != "" {
		cfg.API.BaseURL = apiFlag
	}
	if tokenFlag != "" {
		cfg.API.Token = tokenFlag
	}
	if storeFlag != "" {
		cfg.Store.Driver = storeFlag
	} else if _, set := os.LookupEnv("STORE_DRIVER"); !set {
		cfg.Store.Driver = store.DriverSQLite
	}
	if cfg.Store.Driver == store.DriverSQLite && cfg.Store.SQLitePath == "" {
		path, err := defaultSQLitePath()
		if err != nil {
			return nil, err
		}
		cfg.Store.SQLitePath = path
	}
	logger := applog.New(cfg.AppEnv, os.Stderr)

	kv, closeStore, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	api, err := petapi.New(cfg.API.BaseURL,
		petapi.WithTimeout(cfg.API.Timeout),
		petapi.WithLogger(applog.Component(logger, "petapi")),
	)
	if err != nil {
		closeStore()
		return nil, err
	}
	cache := matchcache.NewService(kv, matchcache.WithLogger(applog.Component(logger, "matchcache")))
	return &app{
		cfg:       cfg,
		log:       logger,
		api:       api,
		cache:     cache,
		donations: donations.NewService(kv, applog.Component(logger, "donations")),
		matching:  matching.NewService(api, api, cache, applog.Component(logger, "matching")),
		out:       out,
		close:     closeStore,
	}, nil
}

// defaultSQLitePath указывает на файл в пользовательском каталоге кэша,
// чтобы снимок оценок переживал запуск команды.
func defaultSQLitePath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	dir = filepath.Join(dir, "petctl")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}
	return filepath.Join(dir, "store.db"), nil
}

func (a *app) token() string {
	return a.cfg.API.Token
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// withApp оборачивает RunE: создаёт app и закрывает хранилище по завершении.
func withApp(run func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer a.close()
		return run(cmd, a, args)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "petctl",
		Short:         "CLI for the pet adoption API and local match cache",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&apiFlag, "api", "a", "", "API base URL (overrides API_BASE_URL)")
	root.PersistentFlags().StringVarP(&tokenFlag, "token", "t", "", "Bearer token (overrides API_TOKEN)")
	root.PersistentFlags().StringVar(&storeFlag, "store", "", "Store driver: sqlite (default), memory, redis, postgres, disabled")

	root.AddCommand(
		newRecommendationsCmd(),
		newScoreCmd(),
		newAdoptCmd(),
		newCategoriesCmd(),
		newOrdersCmd(),
		newDonationsCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
