package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/briandowns/spinner"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	tadata "github.com/tadata-org/tadata-sdk-go"
	"github.com/tadata-org/tadata-sdk-go/errors"
	"github.com/tadata-org/tadata-sdk-go/internal/config"
	"github.com/tadata-org/tadata-sdk-go/internal/credentials"
	"github.com/tadata-org/tadata-sdk-go/internal/logging"
)

// errAborted indicates the user cancelled an interactive prompt.
var errAborted = errors.New("aborted")

// deployOptions collects the deploy command's flag values.
type deployOptions struct {
	file    string
	url     string
	name    string
	baseURL string
	apiKey  string
	dev     bool
	timeout time.Duration

	passHeaders        []string
	passQueryParams    []string
	passJSONBodyParams []string
	passFormDataParams []string
}

var deployOpts deployOptions

func init() {
	deployCmd.Flags().StringVarP(&deployOpts.file, "file", "f", "",
		"path to an OpenAPI spec file (JSON or YAML)")
	deployCmd.Flags().StringVarP(&deployOpts.url, "url", "u", "",
		"URL of an OpenAPI spec to fetch")
	deployCmd.MarkFlagsMutuallyExclusive("file", "url")

	deployCmd.Flags().StringVar(&deployOpts.name, "name", "",
		"deployment name (the service assigns one when omitted)")
	deployCmd.Flags().StringVar(&deployOpts.baseURL, "base-url", "",
		"deployment service base URL")
	deployCmd.Flags().BoolVar(&deployOpts.dev, "dev", false,
		"target the development deployment service")
	deployCmd.Flags().StringVar(&deployOpts.apiKey, "api-key", "",
		"API key (overrides TADATA_API_KEY and stored credentials)")
	deployCmd.Flags().DurationVar(&deployOpts.timeout, "timeout", 0,
		"per-request timeout (default 30s)")

	deployCmd.Flags().StringArrayVar(&deployOpts.passHeaders, "pass-header", nil,
		"header to forward to the upstream API (repeatable)")
	deployCmd.Flags().StringArrayVar(&deployOpts.passQueryParams, "pass-query-param", nil,
		"query parameter to forward to the upstream API (repeatable)")
	deployCmd.Flags().StringArrayVar(&deployOpts.passJSONBodyParams, "pass-json-body-param", nil,
		"JSON body field to forward to the upstream API (repeatable)")
	deployCmd.Flags().StringArrayVar(&deployOpts.passFormDataParams, "pass-form-data-param", nil,
		"form field to forward to the upstream API (repeatable)")

	rootCmd.AddCommand(deployCmd)
}

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy an MCP server from an OpenAPI specification",
	Long: `Deploy validates an OpenAPI specification and uploads it to the Tadata
deployment service, which hosts an MCP server exposing the API's
operations as tools.

The spec comes from --file or --url. When neither is given and the
session is interactive, deploy offers a picker over the spec files in
the current directory.`,
	Example: `  tadata deploy -f openapi.yaml
  tadata deploy -u https://example.com/openapi.json --name orders-api
  tadata deploy -f openapi.json --pass-header Authorization --dev`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		err := runDeploy(cmd, deployOpts)
		if errors.Is(err, errAborted) {
			return nil
		}
		return err
	},
}

func runDeploy(cmd *cobra.Command, opts deployOptions) error {
	if opts.file == "" && opts.url == "" {
		if !logging.IsTTY(os.Stdin) {
			return NewUserError(errors.New("a spec source is required"),
				"Provide one with --file or --url.")
		}
		picked, err := pickSpecFile(".")
		if err != nil {
			return err
		}
		opts.file = picked
	}

	cfgv := loadedConfig()
	key, storedBaseURL, err := resolveAuth(opts.apiKey, cfgv, credentials.Load)
	if err != nil {
		return err
	}

	req := opts.request(cfgv, key, storedBaseURL, logging.FromContext(cmd.Context()))

	spin := startSpinner(cmd.ErrOrStderr(), " Deploying MCP server...")
	res, err := tadata.Deploy(cmd.Context(), req)
	stopSpinner(spin)
	if err != nil {
		return asExitError(err)
	}

	printDeployResult(cmd.OutOrStdout(), res)
	return nil
}

// request assembles the SDK request from flags, config, and stored
// credentials. Flags win over config, which wins over credentials.
func (o deployOptions) request(cfg *config.Config, apiKey, storedBaseURL string, logger *slog.Logger) tadata.DeployRequest {
	var source tadata.SpecSource
	switch {
	case o.file != "":
		source = tadata.SourceFromFile(o.file)
	case o.url != "":
		source = tadata.SourceFromURL(o.url)
	}

	baseURL := o.baseURL
	if baseURL == "" {
		baseURL = cfg.BaseURL
	}
	if baseURL == "" {
		baseURL = storedBaseURL
	}

	timeout := o.timeout
	if timeout == 0 {
		timeout = cfg.Timeout
	}

	var auth *tadata.AuthConfig
	if len(o.passHeaders)+len(o.passQueryParams)+len(o.passJSONBodyParams)+len(o.passFormDataParams) > 0 {
		auth = &tadata.AuthConfig{
			PassHeaders:        o.passHeaders,
			PassQueryParams:    o.passQueryParams,
			PassJSONBodyParams: o.passJSONBodyParams,
			PassFormDataParams: o.passFormDataParams,
		}
	}

	return tadata.DeployRequest{
		Source:     source,
		APIKey:     apiKey,
		Name:       o.name,
		BaseURL:    baseURL,
		Dev:        o.dev || cfg.Dev,
		AuthConfig: auth,
		Timeout:    timeout,
		Logger:     logger,
	}
}

// resolveAuth returns the API key and any stored base URL override. The key
// comes from the flag, then config (which includes TADATA_API_KEY), then
// stored credentials.
func resolveAuth(flagKey string, cfg *config.Config, load func() (*credentials.Credentials, error)) (key, storedBaseURL string, err error) {
	if flagKey != "" {
		return flagKey, "", nil
	}
	if cfg.APIKey != "" {
		return cfg.APIKey, "", nil
	}

	creds, err := load()
	if err != nil {
		if errors.Is(err, credentials.ErrNoCredentials) {
			return "", "", NewUserError(err, "Run 'tadata auth login' or set TADATA_API_KEY.")
		}
		return "", "", err
	}
	return creds.APIKey, creds.BaseURL, nil
}

// pickSpecFile interactively selects a spec file from dir.
func pickSpecFile(dir string) (string, error) {
	candidates, err := findSpecFiles(dir)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", NewUserError(errors.New("no spec files found in the current directory"),
			"Provide one explicitly with --file or --url.")
	}

	idx, err := fuzzyfinder.Find(
		candidates,
		func(i int) string { return candidates[i] },
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return previewFile(candidates[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", errAborted
		}
		return "", errors.Wrap(err, "selecting spec file")
	}
	return candidates[idx], nil
}

// findSpecFiles lists JSON and YAML files directly under dir.
func findSpecFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, errors.Wrap(err, "scanning for spec files")
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// previewFile returns the head of a file for the picker's preview pane.
func previewFile(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	buf := make([]byte, 2048)
	n, _ := f.Read(buf)
	return string(buf[:n])
}

// startSpinner shows a progress spinner on w unless quiet mode is enabled or
// stderr is not a terminal. Returns nil when no spinner is shown.
func startSpinner(w io.Writer, suffix string) *spinner.Spinner {
	if quiet || !logging.IsTTY(os.Stderr) {
		return nil
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = suffix
	s.Start()
	return s
}

func stopSpinner(s *spinner.Spinner) {
	if s != nil {
		s.Stop()
	}
}

func printDeployResult(w io.Writer, res *tadata.DeployResult) {
	if quiet {
		fmt.Fprintln(w, res.ID)
		return
	}

	verb := "Created"
	if res.Updated {
		verb = "Updated"
	}
	fmt.Fprintf(w, "%s deployment %s", verb, res.ID)
	if res.Status != "" {
		fmt.Fprintf(w, " (%s)", res.Status)
	}
	fmt.Fprintln(w)

	if res.Name != "" {
		fmt.Fprintf(w, "  Name:       %s\n", res.Name)
	}
	if res.MCPServerID != "" {
		fmt.Fprintf(w, "  MCP server: %s\n", res.MCPServerID)
	}
	if res.SpecHash != "" {
		fmt.Fprintf(w, "  Spec hash:  %s\n", res.SpecHash)
	}
}
