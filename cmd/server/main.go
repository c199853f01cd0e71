/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the calculator engine HTTP server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags into a calc.Config
  2. Open the history archive (CSV file, or SQLite with -db)
  3. Open the audit log sink
  4. Build the calculator facade and load any persisted history
  5. Start the HTTP server with graceful shutdown

COMMAND-LINE FLAGS:
  -port         HTTP server port (default: 8080)
  -history      CSV history file path (default: data/history.csv)
  -db           SQLite archive path; overrides -history when set.
                Use ":memory:" for an in-memory database
  -audit-log    Audit log file path (default: data/calculator.log)
  -max-history  Maximum history entries before FIFO eviction
  -precision    Decimal places for rounding results
  -max-value    Maximum operand magnitude
  -autosave     Persist history on every mutation

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Save the history one last time
  4. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - calc/calculator.go: The facade being served
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/calc-engine/api"
	"github.com/warp/calc-engine/calc"
	"github.com/warp/calc-engine/calc/archive"
	"github.com/warp/calc-engine/store/sqlite"
)

func main() {
	defaults := calc.DefaultConfig()

	port := flag.Int("port", 8080, "HTTP server port")
	historyPath := flag.String("history", "data/history.csv", "CSV history file path")
	dbPath := flag.String("db", "", "SQLite archive path (overrides -history)")
	auditPath := flag.String("audit-log", "data/calculator.log", "audit log file path")
	maxHistory := flag.Int("max-history", defaults.MaxHistorySize, "maximum history entries")
	precision := flag.Int("precision", int(defaults.Precision), "decimal places for results")
	maxValue := flag.String("max-value", defaults.MaxInputValue.String(), "maximum operand magnitude")
	autoSave := flag.Bool("autosave", defaults.AutoSave, "persist history on every mutation")
	flag.Parse()

	cfg := defaults
	cfg.MaxHistorySize = *maxHistory
	cfg.Precision = int32(*precision)
	cfg.AutoSave = *autoSave

	bound, err := decimal.NewFromString(*maxValue)
	if err != nil {
		log.Fatalf("Invalid -max-value: %v", err)
	}
	cfg.MaxInputValue = bound

	// Archive: SQLite when -db is set, CSV file otherwise.
	var store calc.Archive
	if *dbPath != "" {
		db, err := sqlite.New(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open SQLite archive: %v", err)
		}
		defer db.Close()
		store = db
	} else {
		store = archive.NewCSVFile(*historyPath)
	}

	auditFile, err := openAuditLog(*auditPath)
	if err != nil {
		log.Fatalf("Failed to open audit log: %v", err)
	}
	defer auditFile.Close()

	calculator, err := calc.NewCalculator(cfg, store, auditFile)
	if err != nil {
		log.Fatalf("Failed to initialize calculator: %v", err)
	}

	// Pick up any history from a previous session.
	if err := calculator.Load(context.Background()); err != nil {
		log.Printf("Warning: Failed to load persisted history: %v", err)
	}

	handler := api.NewHandler(calculator)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Calculator server starting on http://localhost:%d", *port)
		log.Printf("📊 API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := calculator.Save(ctx); err != nil {
		log.Printf("Warning: Could not save history: %v", err)
	}

	log.Println("Server stopped")
}

func openAuditLog(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
