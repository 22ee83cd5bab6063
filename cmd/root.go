package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/content"
	"github.com/abhisek/quizdeck/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizdeck",
	Short: "Courses and lesson quizzes in the terminal",
	Long:  "Quizdeck is a terminal e-learning front-end: browse courses, watch lessons and take their quizzes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "SQLite file or Postgres DSN (overrides QUIZDECK_DB env var)")
	rootCmd.PersistentFlags().String("driver", "", "Database driver: sqlite or postgres (overrides QUIZDECK_DB_DRIVER)")
	rootCmd.PersistentFlags().String("content", "", "Content pack file (overrides QUIZDECK_CONTENT; built-in courses when unset)")

	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(courseCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(contentCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDB returns the driver and DSN using flags first, then
// QUIZDECK_DB_DRIVER / QUIZDECK_DB, then the default SQLite path.
func resolveDB(cmd *cobra.Command) (store.Driver, string, error) {
	name, _ := cmd.Flags().GetString("driver")
	if name == "" {
		name = os.Getenv("QUIZDECK_DB_DRIVER")
	}
	driver, err := store.ParseDriver(name)
	if err != nil {
		return "", "", err
	}

	dsn, _ := cmd.Flags().GetString("db")
	if driver == store.DriverPostgres {
		if dsn == "" {
			dsn = os.Getenv("QUIZDECK_DB")
		}
		if dsn == "" {
			return "", "", fmt.Errorf("postgres driver needs a DSN via --db or QUIZDECK_DB")
		}
		return driver, dsn, nil
	}

	if dsn != "" {
		return driver, dsn, store.EnsureDir(dsn)
	}
	p, err := store.DefaultDBPath()
	return driver, p, err
}

// openStore opens the configured database.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	driver, dsn, err := resolveDB(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database: %w", err)
	}
	st, err := store.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// loadCatalog returns the catalog from --content / QUIZDECK_CONTENT, or the
// built-in courses.
func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	path, _ := cmd.Flags().GetString("content")
	if path == "" {
		path = os.Getenv("QUIZDECK_CONTENT")
	}
	if path == "" {
		return catalog.Default(), nil
	}
	cat, err := content.LoadCatalog(path)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	return cat, nil
}
