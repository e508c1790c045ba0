package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cdmlens/cdmlens/pkg/catalog"
	"github.com/cdmlens/cdmlens/pkg/config"
)

// importCommand creates the import command for loading catalog objects.
func (c *CLI) importCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "import [objects.csv]",
		Short: "Import catalog objects from a CSV file into the store",
		Long: `Import catalog objects from a CSV file into the store.

Rows are validated before any write happens; a bad row aborts the import
with its line number. Existing objects with the same id are replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(cmd.Context(), args[0], configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to TOML config file")

	return cmd
}

// runImport parses the CSV file and writes every object to the store.
func (c *CLI) runImport(ctx context.Context, input, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open %s: %w", input, err)
	}
	defer f.Close()

	objects, err := catalog.ReadCSV(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", input, err)
	}

	st, err := openStore(ctx, cfg, c.Logger)
	if err != nil {
		return err
	}
	defer st.Close(ctx)

	prog := newProgress(c.Logger)
	for _, o := range objects {
		if err := st.PutObject(ctx, o); err != nil {
			return fmt.Errorf("import object %s: %w", o.ID, err)
		}
	}
	prog.done(fmt.Sprintf("Imported %d objects", len(objects)))

	printSuccess("Imported %d objects", len(objects))
	printDetail("Source: %s", input)
	printNewline()
	printNextStep("Inspect", "cdmlens export")

	return nil
}
