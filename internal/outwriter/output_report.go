package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/huangsam/codequal/internal/contract"
	"github.com/huangsam/codequal/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writeTextReport writes the human-readable report: overall metrics
// followed by a table of the most complex files.
func writeTextReport(w io.Writer, report *schema.Report, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	s := report.Summary
	lines := []string{
		"--- Code Quality Report ---",
		fmt.Sprintf("Overall Metrics for %s:", displayName(report.Language)),
	}
	if s.TotalFiles == 0 {
		lines = append(lines, "Could not analyze any files.")
	} else {
		lines = append(lines,
			fmt.Sprintf("  - Total Files Analyzed: %d", s.TotalFiles),
			fmt.Sprintf("  - Total Lines of Code:  %d", s.TotalLOC),
			fmt.Sprintf("  - Average Complexity:   %.2f", s.AverageComplexity),
			fmt.Sprintf("  - 95th Percentile Avg:  %.2f (Avg. of worst 5%%)", s.Percentile95Complexity),
		)
	}
	if _, err := fmt.Fprintln(w, strings.Join(lines, "\n")); err != nil {
		return err
	}

	top := report.Top(cfg.ResultLimit)
	if len(top) > 0 {
		if _, err := fmt.Fprintf(w, "\nTop %d Most Complex Files:\n", len(top)); err != nil {
			return err
		}
		if err := writeScoreTable(w, top, report.Bands, cfg, fmtFloat); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "Analysis completed in %v with %d workers using %q. Cache backend: %s\n",
		duration.Round(time.Millisecond), cfg.Workers, report.Tool, cfg.CacheBackend)
	return err
}

// writeScoreTable renders ranked entries with colored labels.
func writeScoreTable(w io.Writer, entries []schema.ScoreEntry, bands schema.ScoreBands, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Path", "Score", "Label", "LOC"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	maxWidth := GetMaxTablePathWidth(cfg)
	var data [][]string
	for i, e := range entries {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(e.Path, maxWidth),
			fmtFloat(e.Score),
			contract.GetColorLabel(e.Score, bands),
			formatLines(e.Lines),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeCSVReport writes the top entries as CSV rows.
func writeCSVReport(w io.Writer, report *schema.Report, limit int, fmtFloat func(float64) string) error {
	header := []string{"rank", "path", "score", "label", "lines", "language"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, e := range report.Top(limit) {
			rec := []string{
				strconv.Itoa(i + 1),
				e.Path,
				fmtFloat(e.Score),
				report.Bands.Label(e.Score),
				strconv.Itoa(e.Lines),
				report.Language,
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// jsonReport replaces the report's entries with ranked, labelled ones.
type jsonReport struct {
	*schema.Report
	FileScores []schema.EnrichedScoreEntry `json:"file_scores"`
}

// writeJSONReport writes the report with the top entries as JSON.
func writeJSONReport(w io.Writer, report *schema.Report, limit int) error {
	entries := schema.EnrichEntries(report.Top(limit), report.Bands)
	return writeJSON(w, jsonReport{Report: report, FileScores: entries})
}

// writeLanguageTable renders the registered languages.
func writeLanguageTable(w io.Writer, infos []schema.LanguageInfo) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Language", "Name", "Mode", "Extensions", "Tool", "Available"})

	var data [][]string
	for _, info := range infos {
		data = append(data, []string{
			info.ID,
			info.Name,
			string(info.Mode),
			strings.Join(info.Extensions, " "),
			info.Tool,
			availability(info.Available),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeCSVLanguages writes the registered languages as CSV rows.
func writeCSVLanguages(w io.Writer, infos []schema.LanguageInfo) error {
	header := []string{"id", "name", "mode", "extensions", "tool", "available"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, info := range infos {
			rec := []string{
				info.ID,
				info.Name,
				string(info.Mode),
				strings.Join(info.Extensions, "|"),
				info.Tool,
				strconv.FormatBool(info.Available),
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// displayName capitalizes a language id for headings.
func displayName(id string) string {
	r, size := utf8.DecodeRuneInString(id)
	if r == utf8.RuneError {
		return id
	}
	return string(unicode.ToUpper(r)) + id[size:]
}

// formatLines renders a line count, leaving unknown counts blank.
func formatLines(n int) string {
	if n <= 0 {
		return "-"
	}
	return strconv.Itoa(n)
}

func availability(ok bool) string {
	if ok {
		return contract.LowColor.Sprint("yes")
	}
	return contract.CriticalColor.Sprint("missing")
}
