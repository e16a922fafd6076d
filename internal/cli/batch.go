package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/ethicswatch/ethicswatch/internal/render"
	"github.com/ethicswatch/ethicswatch/internal/worker"
)

var (
	batchWorkers   int
	batchOutputDir string
	batchTimeout   time.Duration
	batchTopK      int
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Assess multiple texts from a file in parallel",
	Long: `Batch assesses texts concurrently:
- Read texts from the input file (one per line, # comments skipped)
- Assess them in parallel under a shared LLM rate limit
- Write an individual JSON report per line to the output directory

Example:
  ethicswatch batch texts.txt
  ethicswatch batch texts.txt --workers 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "number of concurrent workers (0 = configured default)")
	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", "", "output directory for reports (default from config)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().IntVarP(&batchTopK, "top-k", "k", 0, "number of similar incidents to retrieve per text")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	cfg := a.cfg.Batch
	if batchWorkers > 0 {
		cfg.Workers = batchWorkers
	}
	outDir := cfg.OutputDir
	if batchOutputDir != "" {
		outDir = batchOutputDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	processor := worker.NewBatchProcessor(a.watchdog, cfg, a.cfg.LLM.Provider, batchTopK)
	results, err := processor.ProcessFile(ctx, args[0])
	if err != nil {
		return err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Line < results[j].Line })

	var failed int
	for _, r := range results {
		if r.Err() != nil {
			failed++
			fmt.Fprintf(os.Stderr, "line %d: %v\n", r.Line, r.Err())
			continue
		}

		out, err := render.JSON(r.Report)
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "line %d: %v\n", r.Line, err)
			continue
		}

		path := filepath.Join(outDir, fmt.Sprintf("report-%04d.json", r.Line))
		if err := os.WriteFile(path, []byte(out+"\n"), 0o644); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "line %d: write report: %v\n", r.Line, err)
		}
	}

	fmt.Printf("Assessed %d texts, %d failed, reports in %s\n", len(results), failed, outDir)
	if failed > 0 {
		return fmt.Errorf("%d of %d assessments failed", failed, len(results))
	}
	return nil
}
