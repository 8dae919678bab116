package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tadata-org/tadata-sdk-go/errors"
	"github.com/tadata-org/tadata-sdk-go/internal/credentials"
	"github.com/tadata-org/tadata-sdk-go/internal/logging"
	"github.com/tadata-org/tadata-sdk-go/internal/paths"
	"github.com/tadata-org/tadata-sdk-go/internal/redact"
)

var (
	loginAPIKey  string
	loginBaseURL string
)

func init() {
	authLoginCmd.Flags().StringVar(&loginAPIKey, "api-key", "",
		"API key to store (prompted when omitted)")
	authLoginCmd.Flags().StringVar(&loginBaseURL, "base-url", "",
		"optional deployment service base URL to store alongside the key")

	authCmd.AddCommand(authLoginCmd, authStatusCmd, authLogoutCmd)
	rootCmd.AddCommand(authCmd)
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage stored credentials",
	Long: `Auth stores the deployment service API key in ` + "`" + `credentials.toml` + "`" + `
under the user config directory, written with owner-only permissions.
Stored credentials are used by deploy when neither --api-key nor
TADATA_API_KEY is set.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store an API key for future deployments",
	Args:  cobra.NoArgs,
	RunE:  runAuthLogin,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored credentials, with the key masked",
	Args:  cobra.NoArgs,
	RunE:  runAuthStatus,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove stored credentials",
	Args:  cobra.NoArgs,
	RunE:  runAuthLogout,
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	key := strings.TrimSpace(loginAPIKey)
	if key == "" {
		var err error
		key, err = promptAPIKey(cmd)
		if err != nil {
			return err
		}
	}
	if key == "" {
		return NewUserError(errors.New("no API key provided"),
			"Pass one with --api-key or enter it at the prompt.")
	}

	creds := &credentials.Credentials{APIKey: key, BaseURL: loginBaseURL}
	if err := credentials.Save(creds); err != nil {
		return errors.Wrap(err, "saving credentials")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Credentials saved to %s\n", paths.CredentialsPath())
	return nil
}

// promptAPIKey reads the key without echo on a terminal, or as a single
// line when stdin is piped.
func promptAPIKey(cmd *cobra.Command) (string, error) {
	if logging.IsTTY(os.Stdin) {
		fmt.Fprint(cmd.ErrOrStderr(), "API key: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", errors.Wrap(err, "reading API key")
		}
		return strings.TrimSpace(string(raw)), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", errors.Wrap(err, "reading API key from stdin")
	}
	return strings.TrimSpace(line), nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	creds, err := credentials.Load()
	if err != nil {
		if errors.Is(err, credentials.ErrNoCredentials) {
			fmt.Fprintln(w, "Not logged in.")
			fmt.Fprintln(w, "Run 'tadata auth login' to store an API key.")
			return nil
		}
		return err
	}

	fmt.Fprintln(w, "Logged in.")
	fmt.Fprintf(w, "  API key:  %s\n", redact.MaskValue(creds.APIKey))
	if creds.BaseURL != "" {
		fmt.Fprintf(w, "  Base URL: %s\n", creds.BaseURL)
	}
	fmt.Fprintf(w, "  Location: %s\n", paths.CredentialsPath())
	return nil
}

func runAuthLogout(cmd *cobra.Command, _ []string) error {
	_, err := credentials.Load()
	if errors.Is(err, credentials.ErrNoCredentials) {
		fmt.Fprintln(cmd.OutOrStdout(), "No stored credentials.")
		return nil
	}

	// Unreadable credentials should still be removable
	if err := credentials.Remove(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Removed stored credentials.")
	return nil
}
