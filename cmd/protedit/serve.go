package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/philipparndt/protedit/internal/saveserver"
)

var (
	servePort string
	serveDB   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the save endpoint the editor posts scenes to",
	Long:  "Serve POST /save, GET /scenes/:id and GET /health/live, storing every received scene in SQLite.",
	Args:  cobra.NoArgs,
	Run:   runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "listen port (default from config)")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "SQLite database path (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	if servePort != "" {
		cfg.Server.Port = servePort
	}
	if serveDB != "" {
		cfg.Server.DBPath = serveDB
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := saveserver.OpenSQLite(cfg.Server.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	store := saveserver.NewStore(db)
	if err := store.Init(ctx); err != nil {
		log.Fatalf("Failed to initialise database: %v", err)
	}
	if n, err := store.Count(ctx); err == nil {
		log.Printf("[SAVE] %d scene(s) stored in %s", n, cfg.Server.DBPath)
	}

	app := saveserver.NewApp(store, saveserver.Options{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	go func() {
		<-ctx.Done()
		log.Printf("Shutting down save server")
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Starting save server on %s", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
