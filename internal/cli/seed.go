package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ethicswatch/ethicswatch/internal/index"
)

var seedTimeout time.Duration

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed <file.jsonl>",
	Short: "Seed the incident index from a JSONL file",
	Long: `Seed loads incident records into the local similarity index.

Each line is a JSON object:
  {"id": "inc-001", "page_content": "what happened", "metadata": {"source": "..."}}

Missing ids get generated ones. Malformed lines abort the load with the
offending line number. Embeddings are computed through the configured
embedding provider and cached.

Example:
  ethicswatch seed incidents.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().DurationVar(&seedTimeout, "timeout", 10*time.Minute, "total seeding timeout")
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	n, err := index.SeedFromJSONL(ctx, a.store, args[0])
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	fmt.Printf("Seeded %d incidents (index now holds %d)\n", n, a.store.Count())
	return nil
}
