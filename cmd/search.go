package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docreader/internal/search"
)

var (
	searchLimit int
	searchJSON  bool
)

var matchStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the documentation from the command line",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := loadDocuments(cfg)
		if err != nil {
			return err
		}

		engine := searchEngine(cfg)
		if searchLimit > 0 {
			engine.MaxResults = searchLimit
		}
		query := strings.Join(args, " ")
		if engine.TooShort(query) {
			return fmt.Errorf("query %q is too short", query)
		}
		results := engine.Search(store.All(), query)

		if searchJSON {
			return printResultsJSON(results)
		}
		if len(results) == 0 {
			fmt.Printf("No results found for %q\n", query)
			return nil
		}
		for i, r := range results {
			fmt.Printf("%d. %s  %s\n", i+1, highlightMatches(r.Document.Title, query), r.Route())
			if r.Snippet != "" {
				fmt.Printf("   %s\n", highlightMatches(strings.ReplaceAll(r.Snippet, "\n", " "), query))
			}
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func highlightMatches(text, query string) string {
	var b strings.Builder
	for _, seg := range search.Highlight(text, query) {
		if seg.Match {
			b.WriteString(matchStyle.Render(seg.Text))
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}

type jsonResult struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Route      string `json:"route"`
	MatchType  string `json:"match_type"`
	MatchCount int    `json:"match_count"`
	Snippet    string `json:"snippet,omitempty"`
}

func printResultsJSON(results []search.Result) error {
	out := make([]jsonResult, len(results))
	for i, r := range results {
		out[i] = jsonResult{
			ID:         r.Document.ID,
			Title:      r.Document.Title,
			Route:      r.Route(),
			MatchType:  string(r.MatchType),
			MatchCount: r.MatchCount,
			Snippet:    r.Snippet,
		}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
