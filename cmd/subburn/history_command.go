package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"subburn/internal/config"
	"subburn/internal/history"
)

func newHistoryCommand(configFlag *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent job outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := config.Load(*configFlag)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			store, err := history.Open(cfg.Paths.HistoryDB)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No jobs recorded yet")
				return nil
			}
			fmt.Fprintln(out, renderHistoryTable(entries))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries to show")
	return cmd
}

func renderHistoryTable(entries []history.Entry) string {
	headers := []string{"Finished", "Status", "Chat", "File", "Segments", "Elapsed", "Detail"}

	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			entry.FinishedAt.Local().Format("2006-01-02 15:04:05"),
			entry.Status,
			strconv.FormatInt(entry.ChatID, 10),
			entry.Filename,
			strconv.Itoa(entry.Segments),
			formatElapsed(entry.StartedAt, entry.FinishedAt),
			truncateDetail(entry.Detail, 60),
		})
	}
	return renderTable(headers, rows, 2, 4, 5)
}

func formatElapsed(start, finish time.Time) string {
	if start.IsZero() || finish.IsZero() || finish.Before(start) {
		return "-"
	}
	return finish.Sub(start).Round(time.Second).String()
}

// truncateDetail shortens detail to at most max runes. Details can carry
// Hebrew notices, so the cut must never split a multi-byte rune.
func truncateDetail(detail string, max int) string {
	detail = strings.TrimSpace(detail)
	runes := []rune(detail)
	if len(runes) <= max {
		return detail
	}
	return string(runes[:max-3]) + "..."
}
