package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/app"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/screen"
)

// runApp opens the store, loads the catalog, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	return app.Run(screen.Env{
		Catalog:   cat,
		Repo:      st.EventRepo(),
		Threshold: quiz.DefaultPassThreshold,
		Now:       time.Now,
	})
}
