package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gallerix/artwork-marketplace/internal/config"
	"github.com/gallerix/artwork-marketplace/internal/config/di"
	"github.com/gallerix/artwork-marketplace/internal/entity"
	"github.com/gorilla/mux"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var container *di.Container

func main() {
	config.Init("marketd")

	app := &cli.App{
		Name:   "marketd",
		Usage:  "artwork marketplace daemon",
		Action: serve,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "no-publish", Usage: "disable the outbound SQS event feed"},
			&cli.BoolFlag{Name: "no-audit", Usage: "disable the durable audit index (local development only)"},
		},
	}

	if err := app.Run(os.Args); err != nil {
		zap.L().With(zap.Error(err)).Fatal("marketd failed")
	}
}

func serve(c *cli.Context) error {
	var err error
	container, err = di.NewContainer()
	if err != nil {
		return err
	}

	// Listeners must be registered before the executor is built so the
	// genesis admin event is not lost.
	if !c.Bool("no-audit") {
		container.GetElastic().InstallMappings()
		container.GetAuditIndexer().Subscribe()
	}
	if !c.Bool("no-publish") && config.Get().Aws.QueueUrl != "" {
		container.GetPublisher().Subscribe()
	}

	executor := container.GetExecutor()

	if maxPrice := config.Get().MaxPriceValue(); maxPrice != nil {
		owner := entity.NewAddress(config.Get().Owner)
		if err := executor.SetMaxPrice(owner, maxPrice); err != nil {
			return err
		}
	}

	go health()

	zap.L().With(
		zap.String("port", config.Get().ServerPort),
		zap.Uint64("totalMinted", executor.TotalMinted()),
	).Info("Marketplace started")

	return http.ListenAndServe(":"+config.Get().ServerPort, container.GetServer().Router())
}

func health() {
	if err := http.ListenAndServe(":"+config.Get().HealthPort, healthRouter()); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to start health endpoint")
	}
}

func healthRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, "OK")
	}).Methods("GET")

	return r
}
