package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LUMNISEDUCACIONAL/leadhunter/internal/export"
	"github.com/LUMNISEDUCACIONAL/leadhunter/internal/model"
)

var (
	huntNiche    string
	huntCountry  string
	huntAreaCode string
	huntQuantity int
	huntJSON     bool
	huntCSV      bool
)

var huntCmd = &cobra.Command{
	Use:   "hunt",
	Short: "Run a single lead search",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		criteria := model.SearchCriteria{
			Niche:    huntNiche,
			Country:  huntCountry,
			AreaCode: huntAreaCode,
			Quantity: huntQuantity,
		}
		if err := criteria.Validate(); err != nil {
			return err
		}

		searcher := newSearcher(cfg)
		result, err := runSearch(ctx, searcher, cfg, criteria)
		if err != nil {
			return err
		}

		if huntCSV {
			path := filepath.Join(cfg.Export.Dir, export.Filename(huntNiche))
			if err := writeCSVFile(path, result); err != nil {
				return err
			}
			zap.L().Info("csv written", zap.String("path", path), zap.Int("leads", len(result.Leads)))
		}

		if huntJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		printResult(result)
		return nil
	},
}

func writeCSVFile(path string, result model.SearchResult) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}

	if err := export.WriteCSV(f, result.Leads); err != nil {
		_ = f.Close()
		return err
	}
	return eris.Wrapf(f.Close(), "close %s", path)
}

func printResult(result model.SearchResult) {
	if len(result.Leads) == 0 {
		fmt.Println("No leads extracted. Raw response:")
		fmt.Println(result.RawText)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPHONE\tADDRESS\tWEBSITE")
	for _, l := range result.Leads {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", l.Name, l.Phone, l.Address, l.Website)
	}
	w.Flush()

	if len(result.SourceURLs) > 0 {
		fmt.Println("\nSources:")
		for _, u := range result.SourceURLs {
			fmt.Printf("  %s\n", u)
		}
	}
}

func init() {
	huntCmd.Flags().StringVar(&huntNiche, "niche", "", "market niche to search (required)")
	huntCmd.Flags().StringVar(&huntCountry, "country", "", "country (defaults from config)")
	huntCmd.Flags().StringVar(&huntAreaCode, "area-code", "", "phone area code / DDD")
	huntCmd.Flags().IntVar(&huntQuantity, "quantity", 0, "number of leads to request (1-30)")
	huntCmd.Flags().BoolVar(&huntJSON, "json", false, "print the full result as JSON")
	huntCmd.Flags().BoolVar(&huntCSV, "csv", false, "also write a CSV file to the export dir")
	_ = huntCmd.MarkFlagRequired("niche")
	rootCmd.AddCommand(huntCmd)
}
