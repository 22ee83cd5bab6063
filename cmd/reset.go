package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete stored quiz results",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		withLLM, _ := cmd.Flags().GetBool("llm")

		out := cmd.OutOrStdout()
		if !yes {
			fmt.Fprint(out, "Delete all quiz results? [y/N] ")
			sc := bufio.NewScanner(cmd.InOrStdin())
			if !sc.Scan() || !strings.EqualFold(strings.TrimSpace(sc.Text()), "y") {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		repo := st.EventRepo()
		n, err := repo.DeleteQuizResults(cmd.Context())
		if err != nil {
			return fmt.Errorf("delete quiz results: %w", err)
		}
		fmt.Fprintf(out, "Deleted %d quiz results.\n", n)

		if withLLM {
			n, err := repo.DeleteLLMEvents(cmd.Context())
			if err != nil {
				return fmt.Errorf("delete LLM events: %w", err)
			}
			fmt.Fprintf(out, "Deleted %d LLM events.\n", n)
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	resetCmd.Flags().Bool("llm", false, "Also delete recorded LLM events")
}
