package cmd

import (
	"fmt"
	"io"
	"strconv"

	"lotto/config"
	"lotto/database"
)

// runMigration handles "lotto migrate up|down [steps]|status"
func runMigration(cfg *config.Config, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: lotto migrate [up|down|status] [args...]")
	}
	url := cfg.GetDatabaseURL()
	if url == "" {
		return fmt.Errorf("DATABASE_URL is required for migrations")
	}

	switch args[0] {
	case "up":
		return database.MigrateUp(url)
	case "down":
		steps := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid number of steps: %s", args[1])
			}
			steps = n
		}
		return database.MigrateDown(url, steps)
	case "status":
		status, err := database.GetMigrationStatus(url)
		if err != nil {
			return err
		}
		if !status.Applied {
			fmt.Fprintln(stdout, "No migrations applied")
			return nil
		}
		fmt.Fprintf(stdout, "Version: %d, dirty: %t\n", status.Version, status.Dirty)
		return nil
	default:
		return fmt.Errorf("unknown migration command: %s", args[0])
	}
}
