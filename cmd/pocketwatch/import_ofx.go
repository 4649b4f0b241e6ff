package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/jmturner/pocketwatch/internal/cli"
	"github.com/jmturner/pocketwatch/internal/model"
	"github.com/jmturner/pocketwatch/internal/ofx"
)

func importOFXCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX (Quicken) files exported from your bank.

Examples:
  # Import single file
  pocketwatch import-ofx ~/Downloads/chase_jan_2024.qfx

  # Import multiple files
  pocketwatch import-ofx ~/Downloads/chase_*.qfx ~/Downloads/ally_*.ofx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImportOFX(cmd, args, dryRun)
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Preview import without saving")

	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string, dryRun bool) error {
	ctx := cmd.Context()

	// Expand globs and collect all files
	var allFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			// If no glob matches, check if it's a direct file
			if _, err := os.Stat(pattern); err == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			allFiles = append(allFiles, matches...)
		}
	}

	if len(allFiles) == 0 {
		return fmt.Errorf("no files found to import")
	}

	slog.Info("Importing OFX files", "file_count", len(allFiles), "dry_run", dryRun)

	var imported []model.Transaction
	seen := make(map[string]bool)
	parser := ofx.NewParser()

	bar := progressbar.NewOptions(len(allFiles),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Parsing files..."),
	)

	for _, filePath := range allFiles {
		transactions, err := parseOFXFile(parser, filePath)
		_ = bar.Add(1)
		if err != nil {
			slog.Error("Failed to parse OFX file", "file", filePath, "error", err)
			continue
		}

		added := 0
		for _, tx := range transactions {
			if tx.ID != "" && seen[tx.ID] {
				continue
			}
			if tx.ID != "" {
				seen[tx.ID] = true
			}
			imported = append(imported, tx)
			added++
		}
		slog.Info("Processed file",
			"file", filepath.Base(filePath),
			"transactions_found", len(transactions),
			"added", added,
			"duplicates", len(transactions)-added)
	}
	fmt.Fprintln(os.Stderr)

	if len(imported) == 0 {
		slog.Warn("No transactions found in any file")
		return nil
	}

	if dryRun {
		fmt.Println(cli.FormatTitle("Dry run: transactions that would be imported"))
		for _, tx := range imported {
			fmt.Printf("%s  %-32s %-16s %s\n",
				tx.Date, tx.Description, cli.SubtleStyle.Render(tx.Category), cli.SignedMoney(tx))
		}
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("%d transactions, nothing saved", len(imported))))
		return nil
	}

	s, kv, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer kv.Close()

	// Skip transactions already imported in a previous run.
	existing := make(map[string]bool)
	for _, tx := range s.Snapshot().Transactions {
		existing[tx.ID] = true
	}

	saved := 0
	for _, tx := range imported {
		if tx.ID != "" && existing[tx.ID] {
			continue
		}
		s.AddTransaction(ctx, tx)
		saved++
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d transactions (%d already present)", saved, len(imported)-saved)))
	return nil
}

func parseOFXFile(parser *ofx.Parser, path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return parser.ParseFile(f)
}
