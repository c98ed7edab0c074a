package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/musaihq/holdings/internal/api"
	"github.com/musaihq/holdings/internal/broker/kis"
	"github.com/musaihq/holdings/internal/broker/kiwoom"
	"github.com/musaihq/holdings/internal/collector"
	"github.com/musaihq/holdings/internal/config"
	"github.com/musaihq/holdings/internal/domain"
	"github.com/musaihq/holdings/internal/export"
	"github.com/musaihq/holdings/internal/portfolio"
	"github.com/musaihq/holdings/internal/ratefx"
	"github.com/musaihq/holdings/internal/token"
	"github.com/musaihq/holdings/internal/worker"
)

func main() {
	app := &cli.App{
		Name:  "holdings",
		Usage: "aggregate holdings across brokerage accounts into one portfolio",
		Commands: []*cli.Command{
			collectCommand(),
			serveCommand(),
			ratesCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// buildPortfolio wires broker clients, the collector, and the rate service
// from configuration.
func buildPortfolio(cfg config.Config) (*portfolio.Service, error) {
	var store token.Store = token.NewMemoryStore()
	if cfg.TokenStoreDir != "" {
		fileStore, err := token.NewFileStore(cfg.TokenStoreDir)
		if err != nil {
			return nil, fmt.Errorf("opening token store: %w", err)
		}
		store = fileStore
	}
	tokens := token.NewCache(store)

	accounts := make([]collector.DomesticFetcher, 0, len(cfg.Accounts))
	for _, a := range cfg.Accounts {
		switch a.Broker {
		case domain.BrokerKIS:
			accounts = append(accounts, kis.New(kis.Config{
				BaseURL:     cfg.KISBaseURL,
				AppKey:      a.AppKey,
				AppSecret:   a.AppSecret,
				AccountNo:   a.AccountNo,
				AccountType: a.AccountType,
				Label:       a.Label,
				DebugDir:    cfg.DebugDir,
			}, tokens))
		case domain.BrokerKiwoom:
			accounts = append(accounts, kiwoom.New(kiwoom.Config{
				BaseURL:     cfg.KiwoomBaseURL,
				AppKey:      a.AppKey,
				AppSecret:   a.AppSecret,
				AccountNo:   a.AccountNo,
				AccountType: a.AccountType,
				Label:       a.Label,
				DebugDir:    cfg.DebugDir,
			}, tokens))
		}
	}

	rates := ratefx.NewService(
		ratefx.NewClient(cfg.RateAPIURL, cfg.RateRetryDelay, cfg.RateRetryMax),
		cfg.HomeCurrency,
	)

	return portfolio.NewService(collector.NewService(accounts...), rates, cfg.HomeCurrency), nil
}

// buildHooks assembles the post-refresh exporters enabled by configuration.
func buildHooks(ctx context.Context, cfg config.Config) ([]worker.AfterRefreshHook, error) {
	hooks := []worker.AfterRefreshHook{
		export.FileExporter{JSONPath: cfg.SnapshotPath, XLSXPath: cfg.XLSXPath},
	}

	if cfg.SheetsCredFile != "" && cfg.SpreadsheetID != "" {
		creds, err := os.ReadFile(cfg.SheetsCredFile)
		if err != nil {
			return nil, fmt.Errorf("reading sheets credentials: %w", err)
		}
		writer, err := export.NewSheetsWriter(ctx, cfg.SpreadsheetID, string(creds))
		if err != nil {
			return nil, fmt.Errorf("creating sheets writer: %w", err)
		}
		hooks = append(hooks, writer)
	}

	return hooks, nil
}

func collectCommand() *cli.Command {
	return &cli.Command{
		Name:  "collect",
		Usage: "run one aggregation pass and write the configured exports",
		Action: func(c *cli.Context) error {
			cfg := config.Load()

			svc, err := buildPortfolio(cfg)
			if err != nil {
				return err
			}
			hooks, err := buildHooks(c.Context, cfg)
			if err != nil {
				return err
			}

			snap, err := svc.Refresh(c.Context)
			if err != nil {
				return err
			}
			for _, hook := range hooks {
				if err := hook.Export(c.Context, snap); err != nil {
					slog.Error("export failed", "error", err)
				}
			}

			fmt.Printf("collected %d records from %d accounts (%d failures)\n",
				len(snap.Records), len(cfg.Accounts), len(snap.Failures))
			fmt.Printf("total eval: %.0f %s, return: %.2f%%\n",
				snap.Summary.TotalEval, snap.BaseCurrency, snap.Summary.ReturnRate)
			return nil
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the refresh worker and HTTP API",
		Action: func(c *cli.Context) error {
			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg := config.Load()

			svc, err := buildPortfolio(cfg)
			if err != nil {
				return err
			}
			hooks, err := buildHooks(ctx, cfg)
			if err != nil {
				return err
			}

			refreshWorker := worker.NewRefreshWorker(svc, cfg.RefreshInterval, hooks...)
			go refreshWorker.Run(ctx)

			if cfg.APIKey == "" {
				slog.Warn("HOLDINGS_API_KEY not set, refresh endpoint is unprotected")
			}

			srv := api.NewServer(cfg.HTTPPort, svc, cfg.APIKey)

			go func() {
				log.Printf("HTTP server listening on :%s", cfg.HTTPPort)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Printf("HTTP server error: %v", err)
					stop()
				}
			}()

			<-ctx.Done()
			log.Println("Shutting down...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("HTTP server shutdown error: %v", err)
			}

			log.Println("Shutdown complete")
			return nil
		},
	}
}

func ratesCommand() *cli.Command {
	return &cli.Command{
		Name:  "rates",
		Usage: "fetch and print the current exchange-rate table",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print the full table as JSON"},
		},
		Action: func(c *cli.Context) error {
			cfg := config.Load()

			rates := ratefx.NewService(
				ratefx.NewClient(cfg.RateAPIURL, cfg.RateRetryDelay, cfg.RateRetryMax),
				cfg.HomeCurrency,
			)
			table := rates.Rates(c.Context)

			if c.Bool("json") {
				return json.NewEncoder(os.Stdout).Encode(table.Rates)
			}

			if table.Fallback {
				fmt.Println("provider unreachable, static fallback table:")
			}
			currencies := make([]string, 0, len(table.Rates))
			for ccy := range table.Rates {
				currencies = append(currencies, ccy)
			}
			sort.Strings(currencies)
			for _, ccy := range currencies {
				fmt.Printf("%s: %.6f per %s\n", ccy, table.Rates[ccy], table.Base)
			}
			return nil
		},
	}
}
