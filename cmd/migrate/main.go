package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fekuna/agritrace-service/config"
	"github.com/fekuna/agritrace-service/internal/schema"
	"github.com/fekuna/agritrace-service/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	driver := flag.String("driver", "", "store driver (postgres|sqlite); defaults to STORE_DRIVER")
	path := flag.String("sqlite-path", "", "sqlite database path; defaults to SQLITE_PATH")
	dryRun := flag.Bool("print", false, "print the statements instead of applying them")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.LoadEnv()
	if *driver != "" {
		cfg.Store.Driver = *driver
	}
	if *path != "" {
		cfg.SQLite.Path = *path
	}
	if cfg.Store.Driver == config.StoreMemory {
		log.Fatal("the memory store has no schema; pass -driver postgres or -driver sqlite")
	}

	if *dryRun {
		stmts, err := schema.Statements(cfg.Store.Driver)
		if err != nil {
			log.Fatal(err)
		}
		for _, s := range stmts {
			fmt.Fprintf(os.Stdout, "%s;\n\n", s)
		}
		return
	}

	st, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := st.Migrate(ctx); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Printf("schema applied to %s store", cfg.Store.Driver)
}
