package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ethicswatch/ethicswatch/internal/render"
	"github.com/ethicswatch/ethicswatch/internal/watchdog"
)

var (
	assessTopK    int
	assessModel   string
	assessStream  bool
	assessJSON    bool
	assessTimeout time.Duration
)

// assessCmd represents the assess command
var assessCmd = &cobra.Command{
	Use:   "assess [text]",
	Short: "Assess a text for misinformation risk",
	Long: `Assess runs the full watchdog pipeline on a text:
- Extract check-worthy claims
- Score heuristic risk signals (sensational language, missing sources, vague timing)
- Retrieve similar past incidents from the local index
- Generate a grounded reasoning summary
- Aggregate an overall risk score and label

The text is read from the argument, or from stdin when omitted.

Example:
  ethicswatch assess "BREAKING: Secret AI plan exposed!"
  cat article.txt | ethicswatch assess --json
  ethicswatch assess "..." --stream --model llama3.1:8b`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAssess,
}

func init() {
	rootCmd.AddCommand(assessCmd)

	assessCmd.Flags().IntVarP(&assessTopK, "top-k", "k", 0, "number of similar incidents to retrieve (0 = configured default)")
	assessCmd.Flags().StringVar(&assessModel, "model", "", "override the generation model")
	assessCmd.Flags().BoolVar(&assessStream, "stream", false, "stream the summary to stdout as it is generated")
	assessCmd.Flags().BoolVar(&assessJSON, "json", false, "print the report as JSON")
	assessCmd.Flags().DurationVar(&assessTimeout, "timeout", 2*time.Minute, "overall assessment timeout")
}

func runAssess(cmd *cobra.Command, args []string) error {
	text, err := textFromArgsOrStdin(args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no text to assess")
	}

	ctx, cancel := context.WithTimeout(context.Background(), assessTimeout)
	defer cancel()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	opts := watchdog.Options{
		TopK:  assessTopK,
		Model: assessModel,
	}
	if assessStream {
		if assessJSON {
			return fmt.Errorf("--stream and --json are mutually exclusive")
		}
		opts.Stream = os.Stdout
	}

	report, err := a.watchdog.Run(ctx, text, opts)
	if err != nil {
		return fmt.Errorf("assess failed: %w", err)
	}

	if assessStream {
		// Tokens already went to stdout; just finish with the verdict.
		fmt.Printf("\n\nRisk: %.2f (%s)\n", report.OverallRisk, report.Label)
		return nil
	}

	if assessJSON {
		out, err := render.JSON(report)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	fmt.Print(render.Text(report))
	return nil
}

func textFromArgsOrStdin(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
