/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the savings ledger server: configuration,
  dependency wiring, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load env config (.env supported), apply flag overrides
  2. Initialize SQLite store
  3. Create services and API handler
  4. Configure HTTP router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides PORT)
  -db      SQLite database path (overrides DATABASE_PATH)
           Use ":memory:" for an in-memory database

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Environment configuration
  - store/sqlite: Database implementation
*/
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/savings-ledger/api"
	"github.com/warp/savings-ledger/budgets"
	"github.com/warp/savings-ledger/config"
	"github.com/warp/savings-ledger/goals"
	"github.com/warp/savings-ledger/store/sqlite"
)

func main() {
	cfg := config.Load()

	port := flag.String("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DatabasePath, "SQLite database path")
	flag.Parse()

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	handler := api.NewHandler(
		goals.NewService(store.Goals()),
		budgets.NewService(store.Budgets()),
	)
	router := api.NewRouter(handler, cfg.CORSOrigins)

	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%s", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
