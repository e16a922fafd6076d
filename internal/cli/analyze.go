package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ethicswatch/ethicswatch/internal/analyze"
)

var (
	analyzeTopK    int
	analyzeModel   string
	analyzeStream  bool
	analyzeTimeout time.Duration
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <use-case>",
	Short: "Analyze an AI use case for ethical risks",
	Long: `Analyze retrieves past incidents similar to a prospective AI use case
and generates a grounded risk analysis with mitigations.

Example:
  ethicswatch analyze "facial recognition for retail loss prevention"
  ethicswatch analyze "LLM resume screening" -k 5 --stream`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().IntVarP(&analyzeTopK, "top-k", "k", 0, "number of similar incidents to retrieve (0 = configured default)")
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "", "override the generation model")
	analyzeCmd.Flags().BoolVar(&analyzeStream, "stream", false, "stream the analysis to stdout as it is generated")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 2*time.Minute, "overall analysis timeout")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	useCase := strings.TrimSpace(args[0])
	if useCase == "" {
		return fmt.Errorf("no use case to analyze")
	}

	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	opts := analyze.Options{
		TopK:  analyzeTopK,
		Model: analyzeModel,
	}
	if analyzeStream {
		opts.Stream = os.Stdout
	}

	result, err := a.analyzer.Analyze(ctx, useCase, opts)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	if analyzeStream {
		fmt.Println()
		return nil
	}

	fmt.Println(result)
	return nil
}
