package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tadata-org/tadata-sdk-go/errors"
	"github.com/tadata-org/tadata-sdk-go/openapi"
)

// validateConcurrency bounds how many files are parsed at once.
const validateConcurrency = 4

var validateJSONOut bool

func init() {
	validateCmd.Flags().BoolVar(&validateJSONOut, "json", false,
		"output results as JSON")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate OpenAPI specification files without deploying",
	Long: `Validate parses each file and checks the fields a deployment requires:
an OpenAPI version, an info block with a non-empty title and version,
and a paths mapping. All violations are reported, not just the first.

Use --json for machine-readable output.

Exit codes:
  0 - All specs are valid
  1 - At least one spec failed validation`,
	Example: `  tadata validate openapi.yaml
  tadata validate api/*.yaml --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

// specReport represents one file's validation outcome.
type specReport struct {
	Path       string   `json:"path"`
	Valid      bool     `json:"valid"`
	Title      string   `json:"title,omitempty"`
	Version    string   `json:"version,omitempty"`
	PathCount  int      `json:"path_count,omitempty"`
	Violations []string `json:"violations,omitempty"`
	Error      string   `json:"error,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	reports := make([]specReport, len(args))

	var g errgroup.Group
	g.SetLimit(validateConcurrency)
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			reports[i] = validateSpecFile(path)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range reports {
		if !r.Valid {
			failed++
		}
	}

	if validateJSONOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return errors.Wrap(err, "encoding JSON")
		}
	} else {
		printSpecReports(cmd.OutOrStdout(), reports)
	}

	if failed > 0 {
		return NewUserError(errors.Newf("%d of %d specs failed validation", failed, len(args)), "")
	}
	return nil
}

func validateSpecFile(path string) specReport {
	spec, err := openapi.FromFile(path)
	if err != nil {
		report := specReport{Path: path}
		var specErr *errors.SpecInvalidError
		if errors.As(err, &specErr) && len(specErr.Details) > 0 {
			report.Violations = specErr.Details
		} else {
			report.Error = err.Error()
		}
		return report
	}

	return specReport{
		Path:      path,
		Valid:     true,
		Title:     spec.Title(),
		Version:   spec.Version(),
		PathCount: spec.PathCount(),
	}
}

func printSpecReports(w io.Writer, reports []specReport) {
	for _, r := range reports {
		if r.Valid {
			if quiet {
				continue
			}
			fmt.Fprintf(w, "✓ %s (%s %s, %d paths)\n", r.Path, r.Title, r.Version, r.PathCount)
			continue
		}

		fmt.Fprintf(w, "✗ %s\n", r.Path)
		for _, v := range r.Violations {
			fmt.Fprintf(w, "    - %s\n", v)
		}
		if r.Error != "" {
			fmt.Fprintf(w, "    - %s\n", r.Error)
		}
	}
}
