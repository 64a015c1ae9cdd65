package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"luxfur/internal/config"
	"luxfur/internal/database"
)

func main() {
	var status bool
	flag.BoolVar(&status, "status", false, "show migration status instead of applying")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	migrator := database.NewMigrator(db)

	if status {
		state, err := migrator.Status()
		if err != nil {
			slog.Error("failed to read migration status", "error", err)
			os.Exit(1)
		}
		names := make([]string, 0, len(state))
		for name := range state {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			mark := " "
			if state[name] {
				mark = "x"
			}
			fmt.Printf("[%s] %s\n", mark, name)
		}
		return
	}

	if err := migrator.Run(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied")
}
