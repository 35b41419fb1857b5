package cmd

import (
	"errors"
	"fmt"

	"connstring/internal/client"
	domainerrors "connstring/internal/domain/errors/domain"
	"connstring/internal/domain/normalization"

	"github.com/spf13/cobra"
)

// Machine-readable error codes used in the output envelope.
const (
	codeInvalidConnectionString = "INVALID_CONNECTION_STRING"
	codeInvalidArgument         = "INVALID_ARGUMENT"
)

// resolveOutput is the data payload of a successful resolve invocation.
type resolveOutput struct {
	Input    string `json:"input"              yaml:"input"`
	Endpoint string `json:"endpoint"           yaml:"endpoint"`
	API      string `json:"api"                yaml:"api"`
	Display  string `json:"display"            yaml:"display"`
	Scheme   string `json:"scheme"             yaml:"scheme"`
	Host     string `json:"host"               yaml:"host"`
	Port     int    `json:"port"               yaml:"port"`
	Path     string `json:"path"               yaml:"path"`
	Query    string `json:"query,omitempty"    yaml:"query,omitempty"`
	Fragment string `json:"fragment,omitempty" yaml:"fragment,omitempty"`
}

// newResolveCmd creates and returns the resolve command.
func newResolveCmd() *cobra.Command {
	var (
		output     string
		appendPath string
		stripQuery bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <connection-string>",
		Short: "Resolve a connection string into a fully-specified endpoint",
		Long: `Resolve a connection string into a fully-specified http/https endpoint.

Components missing from the input (scheme, host, port, path, query,
fragment) are filled from the configured defaults. Inputs as bare as "host"
or "host:9200" are accepted and resolve to scheme http.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args, output, appendPath, stripQuery)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", client.FormatJSON, "Output format (json, yaml)")
	cmd.Flags().StringVar(&appendPath, "append", "", "Append a path segment to the resolved endpoint")
	cmd.Flags().BoolVar(&stripQuery, "strip-query", false, "Remove the query component from the resolved endpoint")
	return cmd
}

func runResolve(cmd *cobra.Command, args []string, output, appendPath string, stripQuery bool) error {
	appCfg := GetConfig()
	if appCfg == nil {
		return errors.New("configuration not initialized")
	}

	clientCfg, err := client.LoadConfig()
	if err != nil {
		return writeResolveError(cmd, output, codeInvalidArgument, err)
	}
	if appCfg.Client.APIPath != "" {
		clientCfg.APIPath = appCfg.Client.APIPath
	}
	if appCfg.Client.Timeout > 0 {
		clientCfg.Timeout = appCfg.Client.Timeout
	}

	connectionString := clientCfg.ConnectionString
	if len(args) == 1 {
		connectionString = args[0]
	}

	defaults, err := appCfg.Defaults.Endpoint()
	if err != nil {
		return writeResolveError(cmd, output, codeInvalidArgument, err)
	}

	resolver := client.NewResolver(defaults, *clientCfg)
	resolved, err := resolver.Resolve(cmd.Context(), connectionString)
	if err != nil {
		return writeResolveError(cmd, output, errorCode(err), err)
	}

	endpoint := resolved.Endpoint
	if stripQuery {
		endpoint, err = normalization.StripQuery(endpoint, connectionString, defaults)
		if err != nil {
			return writeResolveError(cmd, output, errorCode(err), err)
		}
	}
	if appendPath != "" {
		endpoint, err = normalization.AppendSegment(&endpoint, appendPath)
		if err != nil {
			return writeResolveError(cmd, output, errorCode(err), err)
		}
	}

	query, _ := endpoint.RawQuery()
	fragment, _ := endpoint.RawFragment()
	data := resolveOutput{
		Input:    connectionString,
		Endpoint: endpoint.String(),
		API:      resolved.API.String(),
		Display:  resolved.Display,
		Scheme:   endpoint.Scheme(),
		Host:     endpoint.Host(),
		Port:     endpoint.Port(),
		Path:     endpoint.Path(),
		Query:    query,
		Fragment: fragment,
	}
	return client.WriteSuccess(cmd.OutOrStdout(), output, data)
}

// errorCode maps a domain error to its machine-readable envelope code.
func errorCode(err error) string {
	if errors.Is(err, domainerrors.ErrInvalidArgument) {
		return codeInvalidArgument
	}
	return codeInvalidConnectionString
}

func writeResolveError(cmd *cobra.Command, output, code string, err error) error {
	if writeErr := client.WriteError(cmd.OutOrStdout(), output, code, err.Error(), nil); writeErr != nil {
		return fmt.Errorf("writing error response: %w", writeErr)
	}
	return err
}

func init() { //nolint:gochecknoinits // Standard Cobra CLI pattern for command registration
	rootCmd.AddCommand(newResolveCmd())
}
