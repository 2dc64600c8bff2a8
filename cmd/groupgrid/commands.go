package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leengari/groupgrid/internal/config"
	"github.com/leengari/groupgrid/internal/domain/data"
	"github.com/leengari/groupgrid/internal/engine"
	"github.com/leengari/groupgrid/internal/format"
	"github.com/leengari/groupgrid/internal/logging"
	"github.com/leengari/groupgrid/internal/network"
	"github.com/leengari/groupgrid/internal/render"
	"github.com/leengari/groupgrid/internal/storage"
)

type renderOptions struct {
	dataDir    string
	rowsFile   string
	configFile string
	format     string
	merge      []string
	extra      []string
	mergeType  string
	position   string
	nullText   string
	dateLayout string
}

func newRootCmd() *cobra.Command {
	var (
		seqURL   string
		logLevel string
		closeLog = func() {}
	)

	root := &cobra.Command{
		Use:           "groupgrid",
		Short:         "Render tables with merged group cells and summary rows",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger, closeFn := logging.SetupLogger(logging.Options{
				SeqURL: seqURL,
				Level:  logging.ParseLevel(logLevel),
				Output: cmd.ErrOrStderr(),
			})
			slog.SetDefault(logger)
			closeLog = closeFn
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeLog()
		},
	}
	root.PersistentFlags().StringVar(&seqURL, "seq-url", "", "Seq server URL for structured logs (console only when empty)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	root.AddCommand(newRenderCmd(), newServeCmd(), newSampleCmd())
	return root
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Group a dataset and print it",
		Long: `Render reads rows from a dataset directory (meta.json + data.json) or a
JSON rows file, applies the grid settings and prints the result.
Flags override the values from --config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.dataDir, "data", "d", "", "dataset directory containing meta.json and data.json")
	f.StringVarP(&opts.rowsFile, "rows", "r", "", "JSON file holding an array of row objects")
	f.StringVarP(&opts.configFile, "config", "c", "", "grid settings in YAML")
	f.StringVarP(&opts.format, "format", "f", "text", fmt.Sprintf("output format %v", render.Formats()))
	f.StringSliceVar(&opts.merge, "merge", nil, "merge columns, in grouping order")
	f.StringSliceVar(&opts.extra, "extra", nil, "columns whose change inserts a summary row")
	f.StringVar(&opts.mergeType, "merge-type", "", "simple, nested or firstrow")
	f.StringVar(&opts.position, "position", "", "summary row placement: before or after")
	f.StringVar(&opts.nullText, "null", "", "text shown for missing values")
	f.StringVar(&opts.dateLayout, "date-layout", "", "Go time layout for date columns (default 2006-01-02)")
	cmd.MarkFlagsMutuallyExclusive("data", "rows")
	cmd.MarkFlagsOneRequired("data", "rows")
	return cmd
}

func runRender(cmd *cobra.Command, opts *renderOptions) error {
	grid := &config.Grid{}
	if opts.configFile != "" {
		loaded, err := config.Load(opts.configFile)
		if err != nil {
			return err
		}
		grid = loaded
	}

	f := cmd.Flags()
	if f.Changed("merge") {
		grid.MergeColumns = opts.merge
	}
	if f.Changed("extra") {
		grid.ExtraRowColumns = opts.extra
	}
	if f.Changed("merge-type") {
		grid.MergeType = opts.mergeType
	}
	if f.Changed("position") {
		grid.ExtraRowPosition = opts.position
	}
	if f.Changed("null") {
		grid.NullDisplay = opts.nullText
	}

	var req engine.Request
	if opts.dataDir != "" {
		table, err := storage.LoadTable(opts.dataDir, slog.Default())
		if err != nil {
			return err
		}
		req = engine.Request{Rows: table.Rows, Columns: table.Columns}
	} else {
		rows, err := storage.LoadRows(opts.rowsFile)
		if err != nil {
			return err
		}
		req = engine.Request{Rows: rows}
	}
	req.Grid = grid
	req.Format = opts.format

	formatter := format.New()
	if opts.dateLayout != "" {
		formatter.DateLayout = opts.dateLayout
	}
	eng := engine.New(engine.WithFormatter(formatter))
	eng.AddObserver(engine.NewLoggingObserver())

	result, err := eng.Run(req)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), result.Output)
	return err
}

func newServeCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve grid rendering over TCP with JSON requests",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			slog.Info("Starting Server mode...")
			network.Start(port)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 4444, "port to listen on")
	return cmd
}

func newSampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample <dir>",
		Short: "Write a demo dataset and grid.yaml into dir",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tablePath, configPath, err := writeSample(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "dataset: %s\nconfig:  %s\n", tablePath, configPath)
			fmt.Fprintf(cmd.OutOrStdout(), "try: groupgrid render --data %s --config %s\n", tablePath, configPath)
			return nil
		},
	}
}

// sampleRows is the demo dataset, already sorted by its grouping columns
var sampleRows = []data.Row{
	{"region": "North", "city": "Oslo", "product": "Coffee", "units": int64(120), "revenue": 1440.5, "updated": "2024-03-01"},
	{"region": "North", "city": "Oslo", "product": "Tea", "units": int64(80), "revenue": 640.0, "updated": "2024-03-02"},
	{"region": "North", "city": "Bergen", "product": "Coffee", "units": int64(95), "revenue": 1140.0, "updated": "2024-03-02"},
	{"region": "North", "city": "Bergen", "product": "Cocoa", "units": nil, "revenue": nil, "updated": "2024-03-04"},
	{"region": "South", "city": "Rome", "product": "Coffee", "units": int64(210), "revenue": 2730.25, "updated": "2024-03-01"},
	{"region": "South", "city": "Rome", "product": "Tea", "units": int64(45), "revenue": 405.0, "updated": "2024-03-03"},
	{"region": "South", "city": "Madrid", "product": "Coffee", "units": int64(150), "revenue": 1875.0, "updated": "2024-03-05"},
}
