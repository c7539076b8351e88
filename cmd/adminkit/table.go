package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-adminkit/pkg/export"
	"github.com/goliatone/go-adminkit/pkg/renderers/terminal"
	"github.com/goliatone/go-adminkit/pkg/table"
)

type tableFlags struct {
	data        string
	columns     string
	sort        string
	hide        string
	exportPath  string
	exportDir   string
	interactive bool
	height      int
}

func newTableCmd(a *app) *cobra.Command {
	var flags tableFlags
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print or browse a dataset as a table",
		Long: `Print a JSON, CSV or YAML dataset as a table described by a column spec.

Examples:
  adminkit table --data students.json --columns columns.yaml --sort score:desc
  adminkit table --data students.csv --columns columns.yaml --hide email -i
  adminkit table --data students.json --columns columns.yaml --export -

Interactive keys: left/right pick a column, s sorts, m adds a sort key,
v toggles visibility, e exports, q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.table(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	}
	cmd.Flags().StringVar(&flags.data, "data", "", "dataset file (.json, .csv, .yaml)")
	cmd.Flags().StringVar(&flags.columns, "columns", "", "column spec file (JSON or YAML)")
	cmd.Flags().StringVar(&flags.sort, "sort", "", "sort keys, e.g. score:desc,name:asc")
	cmd.Flags().StringVar(&flags.hide, "hide", "", "comma separated columns to hide")
	cmd.Flags().StringVar(&flags.exportPath, "export", "", "write every row as CSV to this file, - for stdout")
	cmd.Flags().StringVar(&flags.exportDir, "export-dir", ".", "directory for exports started from the interactive view")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "browse the table interactively")
	cmd.Flags().IntVar(&flags.height, "height", 0, "visible rows in interactive mode")
	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("columns")
	return cmd
}

func (a *app) table(ctx context.Context, out io.Writer, flags tableFlags) error {
	specData, err := os.ReadFile(flags.columns)
	if err != nil {
		return fmt.Errorf("table: %w", err)
	}
	spec, err := table.ParseSpec(specData)
	if err != nil {
		return err
	}
	columns, err := table.ColumnsFromSpecs(spec.Columns)
	if err != nil {
		return err
	}
	rows, err := loadRows(flags.data)
	if err != nil {
		return err
	}
	state, err := tableState(spec, flags)
	if err != nil {
		return err
	}
	model, err := table.Build(rows, columns, state, table.WithLogger(a.logger))
	if err != nil {
		return err
	}
	a.logger.Debug().Int("rows", model.Len()).Str("data", flags.data).Msg("table loaded")

	if flags.exportPath != "" {
		return writeExport(out, flags.exportPath, model)
	}
	if !flags.interactive {
		_, err := fmt.Fprintln(out, terminal.Render(model, terminal.DefaultStyles()))
		return err
	}

	caps := export.Capabilities{FileDownload: a.cfg.ClientDownloads}
	view := terminal.NewModel(model,
		terminal.WithTitle(spec.Name),
		terminal.WithHeight(flags.height),
		terminal.WithExport(caps, func(keys []string, records []table.Record) error {
			return exportFile(filepath.Join(flags.exportDir, export.Filename(spec.Name)), keys, records)
		}),
	)
	_, err = tea.NewProgram(view, tea.WithContext(ctx), tea.WithOutput(out)).Run()
	return err
}

// tableState starts from the column document's sort; --sort and --hide use the same
// syntax as the HTML query string.
func tableState(spec table.TableSpec, flags tableFlags) (table.State, error) {
	state := spec.InitialState()
	if flags.sort == "" && flags.hide == "" {
		return state, nil
	}
	keys := make([]string, 0, len(spec.Columns))
	for _, col := range spec.Columns {
		keys = append(keys, col.Key)
	}
	query := url.Values{}
	if flags.sort != "" {
		query.Set(table.QuerySort, flags.sort)
	}
	if flags.hide != "" {
		query.Set(table.QueryHide, flags.hide)
	}
	decoded, err := table.DecodeQuery(query.Encode(), keys)
	if err != nil {
		return table.State{}, err
	}
	if flags.sort == "" {
		decoded.Sort = state.Sort
	}
	return decoded, nil
}

func writeExport(out io.Writer, path string, model *table.Model[table.MapRow]) error {
	if path == "-" {
		return model.WriteCSV(out)
	}
	return exportFile(path, model.ExportKeys(), model.Export())
}

func exportFile(path string, keys []string, records []table.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := table.WriteCSV(f, keys, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
