package cmd

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/playarcade/internal/llm"
	"github.com/abhisek/playarcade/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the tutor's LLM requests",
}

var errNoJournal = errors.New("the request log is only kept with the sqlite store")

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()
		if rt.journal == nil {
			return errNoJournal
		}

		events, err := rt.journal.Query(cmd.Context(), store.QueryOpts{Kind: store.KindLLMRequest, Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM requests found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-10s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"Seq", "Timestamp", "Provider", "Model", "In", "Out", "Ms", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		for _, e := range events {
			d, ok := store.ParseLLMRequest(e)
			if !ok {
				continue
			}
			mark := "✓"
			if !d.Success {
				mark = "✗ " + d.ErrorMessage
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-10s  %-28s  %-6d  %-6d  %-7d  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				d.Provider,
				truncate(d.Model, 28),
				d.InputTokens,
				d.OutputTokens,
				d.LatencyMs,
				mark,
			)
		}
		return nil
	},
}

type modelUsage struct {
	model   string
	calls   int
	in, out int
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()
		if rt.journal == nil {
			return errNoJournal
		}

		events, err := rt.journal.Query(cmd.Context(), store.QueryOpts{Kind: store.KindLLMRequest})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		byModel := map[string]*modelUsage{}
		for _, e := range events {
			d, ok := store.ParseLLMRequest(e)
			if !ok {
				continue
			}
			u := byModel[d.Model]
			if u == nil {
				u = &modelUsage{model: d.Model}
				byModel[d.Model] = u
			}
			u.calls++
			u.in += d.InputTokens
			u.out += d.OutputTokens
		}

		out := cmd.OutOrStdout()
		if len(byModel) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}

		usage := make([]*modelUsage, 0, len(byModel))
		for _, u := range byModel {
			usage = append(usage, u)
		}
		sort.Slice(usage, func(i, j int) bool { return usage[i].calls > usage[j].calls })

		fmt.Fprintln(out, "Estimated Cost (USD)")
		fmt.Fprintln(out, strings.Repeat("─", 72))
		fmt.Fprintf(out, "%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
		fmt.Fprintln(out, strings.Repeat("─", 72))

		var total float64
		var unknown []string
		for _, u := range usage {
			cost := llm.LookupCost(u.model)
			if cost == nil {
				unknown = append(unknown, u.model)
				fmt.Fprintf(out, "%-32s  %6d  %10d  %10d  %10s\n", truncate(u.model, 32), u.calls, u.in, u.out, "?")
				continue
			}
			c := cost.Cost(u.in, u.out)
			total += c
			fmt.Fprintf(out, "%-32s  %6d  %10d  %10d  %10s\n", truncate(u.model, 32), u.calls, u.in, u.out, formatCost(c))
		}

		fmt.Fprintln(out, strings.Repeat("─", 72))
		label := "TOTAL"
		if len(unknown) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Fprintf(out, "%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(total))
		if len(unknown) > 0 {
			fmt.Fprintf(out, "\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
		}
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
