package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cdmlens/cdmlens/pkg/catalog"
	"github.com/cdmlens/cdmlens/pkg/config"
)

const (
	exportCSV  = "csv"
	exportJSON = "json"
)

// exportCommand creates the export command for dumping catalog objects.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		configPath string
		output     string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export catalog objects from the store as CSV or JSON",
		Long: `Export catalog objects from the store as CSV or JSON.

CSV output round-trips through 'cdmlens import', which makes it the bulk
editing format. Objects are sorted by id.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != exportCSV && format != exportJSON {
				return fmt.Errorf("invalid format: %s (must be 'csv' or 'json')", format)
			}
			return c.runExport(cmd.Context(), configPath, output, format)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to TOML config file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", exportCSV, "output format: csv (default), json")

	return cmd
}

// runExport lists the store's objects and writes them in the chosen format.
func (c *CLI) runExport(ctx context.Context, configPath, output, format string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	st, err := openStore(ctx, cfg, c.Logger)
	if err != nil {
		return err
	}
	defer st.Close(ctx)

	objects, err := st.ListObjects(ctx)
	if err != nil {
		return fmt.Errorf("list objects: %w", err)
	}

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()

	switch format {
	case exportJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		err = enc.Encode(objects)
	default:
		err = catalog.WriteCSV(objects, out)
	}
	if err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	if output != "" {
		printSuccess("Exported %d objects", len(objects))
		printFile(output)
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method, making os.Stdout
// usable where an io.WriteCloser is expected.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
