package cmd

import (
	"context"
	"net/http"
	"time"

	"github.com/MinterTeam/taxtoken/api"
	"github.com/MinterTeam/taxtoken/coreV2/statistics"
	"github.com/MinterTeam/taxtoken/coreV2/token"
	"github.com/MinterTeam/taxtoken/coreV2/types"
	"github.com/MinterTeam/taxtoken/genesis"
	"github.com/MinterTeam/taxtoken/log"
	"github.com/MinterTeam/taxtoken/version"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	tmLog "github.com/tendermint/tendermint/libs/log"
	tmOS "github.com/tendermint/tendermint/libs/os"
	dbm "github.com/tendermint/tm-db"
	"golang.org/x/sync/errgroup"
)

// RunNode is the command that allows the CLI to start a node.
var RunNode = &cobra.Command{
	Use:   "node",
	Short: "Run the token node",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runNode(cmd.Context())
	},
}

func runNode(ctx context.Context) error {
	logger, err := log.NewLogger(cfg)
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	var appState *types.AppState
	if tmOS.FileExists(cfg.GenesisFile()) {
		if appState, err = genesis.Read(cfg.GenesisFile()); err != nil {
			return err
		}
	}

	metrics := statistics.NopMetrics()
	if cfg.Instrumentation.Prometheus {
		metrics = statistics.PrometheusMetrics(cfg.Instrumentation.Namespace)
	}

	tok, err := token.New(db, appState, token.Options{
		StateCacheSize: cfg.StateCacheSize,
		KeepLastStates: cfg.KeepLastStates,
		Logger:         logger,
		Metrics:        metrics,
	})
	if err != nil {
		return err
	}
	defer tok.Close()

	logger.Info("Starting node", "version", version.Version, "home", cfg.RootDir)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return api.NewService(tok, logger.With("module", "api"), metrics).Run(ctx, cfg.APIListenAddress)
	})

	if cfg.Instrumentation.Prometheus {
		g.Go(func() error {
			return runPrometheus(ctx, cfg.Instrumentation.PrometheusListenAddr, cfg.Instrumentation.MaxOpenConnections, logger)
		})
	}

	return g.Wait()
}

func runPrometheus(ctx context.Context, addr string, maxOpenConnections int, logger tmLog.Logger) error {
	srv := &http.Server{
		Addr: addr,
		Handler: promhttp.InstrumentMetricHandler(
			prometheus.DefaultRegisterer, promhttp.HandlerFor(
				prometheus.DefaultGatherer,
				promhttp.HandlerOpts{MaxRequestsInFlight: maxOpenConnections},
			),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Prometheus HTTP server Shutdown", "err", err)
		}
	}()

	logger.Info("Starting prometheus", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "prometheus HTTP server")
	}

	return nil
}

func openDB() (dbm.DB, error) {
	if err := tmOS.EnsureDir(cfg.DBDir(), 0700); err != nil {
		return nil, err
	}

	db, err := dbm.NewDB("state", dbm.BackendType(cfg.DBBackend), cfg.DBDir())
	if err != nil {
		return nil, errors.Wrapf(err, "open %s db", cfg.DBBackend)
	}

	return db, nil
}
