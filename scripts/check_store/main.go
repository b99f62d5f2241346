package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"quickbite/internal/config"
	"quickbite/internal/database"

	"github.com/jackc/pgx/v5"
)

// check_store verifies that the configured meal plan store is reachable.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	switch cfg.Store.Driver {
	case config.StorePostgres:
		conn, err := pgx.Connect(ctx, cfg.Database.ConnectionString())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
			os.Exit(1)
		}
		defer conn.Close(ctx)

		var dbName string
		if err := conn.QueryRow(ctx, "SELECT current_database()").Scan(&dbName); err != nil {
			fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Successfully connected to database: %s\n", dbName)

	case config.StoreMongo:
		db, err := database.ConnectMongo(ctx, cfg.Mongo, config.NewLogger(cfg.Logger))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to connect to MongoDB: %v\n", err)
			os.Exit(1)
		}
		defer database.DisconnectMongo(db)

		fmt.Printf("Successfully connected to MongoDB database: %s\n", db.Name())

	default:
		fmt.Printf("Store driver %q needs no connection\n", cfg.Store.Driver)
	}
}
