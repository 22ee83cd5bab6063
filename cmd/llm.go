package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/llm"
	"github.com/abhisek/quizdeck/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded question-generation requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query llm events: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No model requests recorded.")
			return nil
		}

		rows := make([][]string, len(events))
		for i, e := range events {
			rows[i] = []string{
				strconv.Itoa(e.ID),
				e.Timestamp.Local().Format(timeLayout),
				e.Purpose,
				truncate(e.Model, 28),
				strconv.Itoa(e.InputTokens),
				strconv.Itoa(e.OutputTokens),
				strconv.FormatInt(e.LatencyMs, 10),
				checkmark(e.Success),
			}
		}
		printTable(out, []string{"ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK"}, rows)
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full prompt and model output of one request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid event id %q", args[0])
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get llm event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("llm event %d not found", id)
		}

		out := cmd.OutOrStdout()
		printFields(out,
			field{"ID", e.ID},
			field{"Time", e.Timestamp.Local().Format(timeLayout)},
			field{"Provider", e.Provider},
			field{"Model", e.Model},
			field{"Purpose", e.Purpose},
			field{"Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens)},
			field{"Cost", eventCost(e.Model, e.InputTokens, e.OutputTokens)},
			field{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
			field{"Success", e.Success},
			field{"Error", e.ErrorMessage},
		)
		section(out, "Request", e.RequestBody)
		section(out, "Response", e.ResponseBody)
		return nil
	},
}

func section(w io.Writer, title, body string) {
	if body == "" {
		body = "(not captured)"
	}
	fmt.Fprintf(w, "\n── %s %s\n%s\n", title, strings.Repeat("─", max(56-len(title), 4)), strings.TrimRight(body, "\n"))
}

func eventCost(model string, in, out int) string {
	if c := llm.LookupCost(model); c != nil {
		return formatCost(c.Cost(in, out))
	}
	return ""
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage per purpose and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("usage by purpose: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(byPurpose) == 0 {
			fmt.Fprintln(out, "No model usage recorded yet.")
			return nil
		}
		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("usage by model: %w", err)
		}

		fmt.Fprintln(out, "Usage by purpose")
		printTable(out, []string{"Purpose", "Calls", "Input", "Output", "Avg ms"}, purposeRows(byPurpose))
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Estimated cost (USD)")
		rows, unpriced := modelRows(byModel)
		printTable(out, []string{"Model", "Calls", "Input", "Output", "Cost"}, rows)
		if len(unpriced) > 0 {
			fmt.Fprintf(out, "\nNo pricing for: %s\n", strings.Join(unpriced, ", "))
		}
		return nil
	},
}

func purposeRows(stats []store.LLMUsage) [][]string {
	var calls, in, out int
	rows := make([][]string, 0, len(stats)+1)
	for _, st := range stats {
		rows = append(rows, []string{st.Purpose, strconv.Itoa(st.Calls), strconv.Itoa(st.InputTokens),
			strconv.Itoa(st.OutputTokens), strconv.FormatInt(st.AvgLatencyMs, 10)})
		calls += st.Calls
		in += st.InputTokens
		out += st.OutputTokens
	}
	return append(rows, []string{"total", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(out), ""})
}

func modelRows(usage []store.LLMUsage) (rows [][]string, unpriced []string) {
	var total float64
	for _, mu := range usage {
		cost := "?"
		if c := llm.LookupCost(mu.Model); c != nil {
			usd := c.Cost(mu.InputTokens, mu.OutputTokens)
			total += usd
			cost = formatCost(usd)
		} else {
			unpriced = append(unpriced, mu.Model)
		}
		rows = append(rows, []string{truncate(mu.Model, 32), strconv.Itoa(mu.Calls),
			strconv.Itoa(mu.InputTokens), strconv.Itoa(mu.OutputTokens), cost})
	}
	label := "total"
	if len(unpriced) > 0 {
		label = "total (partial)"
	}
	return append(rows, []string{label, "", "", "", formatCost(total)}), unpriced
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only requests with this purpose (e.g. "+llm.PurposeQuizGen+")")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
