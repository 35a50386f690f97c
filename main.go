package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/matst80/slask-table/pkg/common"
	"github.com/matst80/slask-table/pkg/config"
	"github.com/matst80/slask-table/pkg/demo"
	"github.com/matst80/slask-table/pkg/messaging"
	"github.com/matst80/slask-table/pkg/server"
	"github.com/matst80/slask-table/pkg/storage"
	"github.com/matst80/slask-table/pkg/tracking"
	"github.com/matst80/slask-table/pkg/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func loadItems(itemsFile string, saver server.DiskItemSaver) []demo.Item {
	if itemsFile != "" {
		items, err := demo.LoadItems(itemsFile)
		if err != nil {
			log.Fatalf("Failed to load items from %s: %v", itemsFile, err)
		}
		log.Printf("Loaded %d items from %s", len(items), itemsFile)
		return items
	}
	items, err := saver.LoadItems()
	if err == nil {
		log.Printf("Loaded %d saved items", len(items))
		return items
	}
	if !errors.Is(err, storage.ErrNoData) {
		log.Printf("Failed to load saved items: %v", err)
	}
	log.Println("Using demo catalog")
	return demo.Catalog()
}

func loadColumns(path string) (*config.TableConfig, []types.Column[demo.Item]) {
	cfg, err := config.LoadOptional(path)
	if err != nil {
		log.Fatalf("Failed to load table config: %v", err)
	}
	base, err := types.NewColumnSet(demo.Columns()...)
	if err != nil {
		log.Fatalf("Invalid columns: %v", err)
	}
	set, err := config.Apply(cfg, base)
	if err != nil {
		log.Fatalf("Invalid table config %s: %v", path, err)
	}
	return cfg, set.Columns()
}

func main() {
	common.LoadEnv()

	listenAddress := common.EnvOr("LISTEN_ADDRESS", ":8080")
	debugAddress := common.EnvOr("DEBUG_ADDRESS", ":8081")
	redisUrl := common.EnvOr("REDIS_URL", "")
	redisPassword := common.EnvOr("REDIS_PASSWORD", "")
	rabbitUrl := common.EnvOr("RABBIT_URL", "")
	dataDir := common.EnvOr("DATA_DIR", "data")
	sessionIdle := time.Duration(common.EnvInt("SESSION_IDLE_MINUTES", 30)) * time.Minute

	cfg, columns := loadColumns(common.EnvOr("TABLE_CONFIG", "table.yaml"))
	saver := server.DiskItemSaver{Disk: storage.NewDiskStorage(dataDir)}
	items := loadItems(common.EnvOr("ITEMS_FILE", ""), saver)

	var selections storage.SelectionStore = storage.NewMemorySelectionStore()
	if redisUrl != "" {
		redisStore := storage.NewRedisSelectionStore(redisUrl, redisPassword, 0, 24*time.Hour)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisStore.Ping(ctx); err != nil {
			log.Printf("Redis not reachable at %s: %v", redisUrl, err)
		}
		cancel()
		selections = redisStore
		log.Printf("Storing selections in redis, url: %s", redisUrl)
	}

	var trk tracking.Tracking = tracking.LogTracking{}
	if rabbitUrl != "" {
		rabbit, err := tracking.NewRabbitTracking(rabbitUrl, messaging.DefaultPrefix)
		if err != nil {
			log.Printf("Failed to connect to rabbitmq for tracking: %v", err)
		} else {
			trk = rabbit
		}
	}

	ws, err := server.NewWebServer(server.Options{
		Columns:         columns,
		SelectionMode:   cfg.SelectionMode,
		SelectionMethod: cfg.SelectionMethod,
		Items:           items,
		Selections:      selections,
		Saver:           saver,
		Tracking:        trk,
	})
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}
	log.Printf("Serving %d items, selection %s by %s", len(items), cfg.SelectionMode, cfg.SelectionMethod)

	pruneCtx, stopPruning := context.WithCancel(context.Background())
	ws.StartPruning(pruneCtx, time.Minute, sessionIdle)

	debugMux := http.NewServeMux()
	debugMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	debugMux.Handle("/metrics", promhttp.Handler())
	debugMux.HandleFunc("/debug/pprof/", pprof.Index)
	debugMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	debugMux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	debugServer := &http.Server{Addr: debugAddress, Handler: debugMux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Printf("starting debug server on %s", debugAddress)
		if err := debugServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("debug server error: %v", err)
		}
	}()

	timeouts := common.LoadTimeoutConfig(common.TimeoutConfig{
		ReadHeader: 5 * time.Second,
		Read:       15 * time.Second,
		Write:      15 * time.Second,
		Idle:       60 * time.Second,
		Shutdown:   15 * time.Second,
		Hook:       5 * time.Second,
	})
	srv := common.NewServerWithTimeouts(&http.Server{Addr: listenAddress, Handler: ws.Handler()}, timeouts)

	common.RunServerWithShutdown(srv, "table server", timeouts.Shutdown, timeouts.Hook,
		func(ctx context.Context) error {
			stopPruning()
			return debugServer.Shutdown(ctx)
		},
		func(ctx context.Context) error {
			return trk.Close()
		},
		func(ctx context.Context) error {
			return selections.Close()
		},
	)
}
