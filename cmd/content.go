package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/content"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Work with content pack files",
}

var contentValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a content pack against the schema and catalog rules",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		cat, err := content.LoadCatalog(args[0])
		if err != nil {
			fmt.Fprintf(out, "%s: invalid\n", args[0])
			for _, p := range content.Problems(err) {
				fmt.Fprintf(out, "  - %s\n", p)
			}
			return fmt.Errorf("content pack %s failed validation", args[0])
		}
		fmt.Fprintf(out, "%s: ok (%d courses, %d lessons)\n", args[0], cat.Len(), cat.LessonCount())
		return nil
	},
}

var contentExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the active catalog as a content pack",
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("out")
		title, _ := cmd.Flags().GetString("title")

		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		data, err := content.Encode(title, cat.Courses())
		if err != nil {
			return err
		}
		return writeOutput(cmd, outPath, data)
	},
}

// writeOutput writes data to path, or to stdout when path is empty or "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	return nil
}

func init() {
	contentExportCmd.Flags().StringP("out", "o", "", "Output file (stdout when unset)")
	contentExportCmd.Flags().String("title", "Quizdeck courses", "Pack title")

	contentCmd.AddCommand(contentValidateCmd)
	contentCmd.AddCommand(contentExportCmd)
}
