package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jsvensson/hexfilter"
	"github.com/jsvensson/hexfilter/internal/config"
	"github.com/jsvensson/hexfilter/internal/format"
	"github.com/jsvensson/hexfilter/internal/report"
	"github.com/jsvensson/hexfilter/internal/search"
	"github.com/jsvensson/hexfilter/internal/solver"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var (
	flagPrecision  string
	flagIterations string
	flagSeed       uint64
	flagConfig     string
	flagOut        string
	flagTemplates  string
	flagOutDir     string
	flagOnly       []string
	flagCheck      bool
	flagVerbose    int
	flagNoColor    bool
	version        = "dev" // Injected at build time via ldflags
)

var rootCmd = &cobra.Command{
	Use:     "hexfilter",
	Short:   "Find CSS filter chains that turn black into a given color",
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commonlog.Configure(flagVerbose, nil)
	},
	SilenceUsage: true,
}

var convertCmd = &cobra.Command{
	Use:     "convert <color>",
	Aliases: []string{"c"},
	Short:   "Convert a hex color into a CSS filter",
	Long: "Convert a hex color (#rgb or #rrggbb, the # is optional) into a CSS filter " +
		"that recolors a black element. The search keeps trying until the loss is " +
		"within --precision or --iterations attempts have been made.",
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Convert every color of a config file",
	Long: "Convert every entry of the colors block of a config file, in order. " +
		"Results can be written as an HCL document with --out, or rendered through " +
		"Go templates with --templates.",
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Format hexfilter config files",
	Long:  "Format one or more config files in-place. Prints the name of each file that was modified.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "increase log verbosity (can be repeated)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")

	addSearchFlags(convertCmd)
	addSearchFlags(batchCmd)

	batchCmd.Flags().StringVar(&flagOut, "out", "", "write results as HCL to this file")
	batchCmd.Flags().StringVar(&flagTemplates, "templates", "", "render .tmpl files from this directory")
	batchCmd.Flags().StringVar(&flagOutDir, "out-dir", "output", "output directory for rendered templates")
	batchCmd.Flags().StringArrayVar(&flagOnly, "only", nil, "render only these templates (can be repeated)")

	fmtCmd.Flags().BoolVarP(&flagCheck, "check", "c", false, "check if files are formatted (do not write changes)")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(versionCmd)
}

// addSearchFlags binds the options shared by every command that runs a search.
func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagPrecision, "precision", "p", config.DefaultPrecision, "stop once the loss is at or below this value (empty disables retries)")
	cmd.Flags().StringVarP(&flagIterations, "iterations", "i", config.DefaultIterations, "maximum number of attempts")
	cmd.Flags().Uint64Var(&flagSeed, "seed", 0, "seed the solver for reproducible results")
	cmd.Flags().StringVar(&flagConfig, "config", "", "path to config file (default "+config.DefaultPath+" if present)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(flagConfig, false)
	if err != nil {
		return err
	}

	opts, seed, err := resolveOptions(cmd, cfg)
	if err != nil {
		return err
	}

	conv, err := hexfilter.Convert(args[0], opts, solverOptions(seed)...)
	if err != nil {
		return err
	}

	report.NewPrinter(cmd.OutOrStdout(), flagNoColor).Result(conv.Target, conv.Result)
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	path := flagConfig
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		path = config.DefaultPath
	}

	cfg, err := loadConfig(path, true)
	if err != nil {
		return err
	}
	if len(cfg.Colors) == 0 {
		return fmt.Errorf("%s: no colors to convert", path)
	}

	opts, seed, err := resolveOptions(cmd, cfg)
	if err != nil {
		return err
	}

	convs, err := hexfilter.ConvertAll(cfg, opts, solverOptions(seed)...)
	if err != nil {
		return err
	}

	p := report.NewPrinter(cmd.OutOrStdout(), flagNoColor)
	for _, conv := range convs {
		p.Named(conv.Name, conv.Target, conv.Result)
	}

	if flagOut != "" {
		if err := os.WriteFile(flagOut, format.Results(entries(convs)), 0o644); err != nil {
			return fmt.Errorf("writing results: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote results to %s\n", flagOut)
	}

	if flagTemplates != "" {
		e := &hexfilter.Engine{
			TemplatesDir: flagTemplates,
			OutputDir:    flagOutDir,
			Only:         flagOnly,
		}
		if err := e.Run(convs); err != nil {
			return fmt.Errorf("rendering templates: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Rendered templates in %s\n", flagOutDir)
	}

	return nil
}

// loadConfig loads the config at path. With an empty path the default file
// is used if it exists; required makes a missing file an error.
func loadConfig(path string, required bool) (*config.Config, error) {
	if path == "" {
		path = config.DefaultPath
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && !required {
			return nil, nil
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// resolveOptions merges flags and config file. Flags win only when set
// explicitly; otherwise the file's values replace the flag defaults. The
// returned seed is nil when neither names one.
func resolveOptions(cmd *cobra.Command, cfg *config.Config) (search.Options, *uint64, error) {
	opts, err := config.ParseOptions(flagPrecision, flagIterations)
	if err != nil {
		return search.Options{}, nil, err
	}

	flags := cmd.Flags()
	var seed *uint64

	if cfg != nil {
		fileOpts, err := cfg.Options(opts)
		if err != nil {
			return search.Options{}, nil, err
		}
		if !flags.Changed("precision") {
			opts.Precision = fileOpts.Precision
		}
		if !flags.Changed("iterations") {
			opts.Iterations = fileOpts.Iterations
		}
		seed = cfg.Seed
	}

	if flags.Changed("seed") {
		s := flagSeed
		seed = &s
	}

	return opts, seed, nil
}

// solverOptions seeds the solver when a seed was given.
func solverOptions(seed *uint64) []solver.Option {
	if seed == nil {
		return nil
	}
	return []solver.Option{solver.WithSeed(*seed)}
}

func entries(convs []hexfilter.Conversion) []format.Entry {
	out := make([]format.Entry, 0, len(convs))
	for _, c := range convs {
		out = append(out, format.Entry{
			Name:     c.Name,
			Target:   c.Target.Hex(),
			Rendered: c.Rendered().Hex(),
			Loss:     c.Loss,
			CSS:      c.Values.CSS(),
		})
	}
	return out
}

func runFmt(cmd *cobra.Command, args []string) error {
	hasErrors := false
	needsFormatting := false

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error reading %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		content := string(data)
		formatted, err := format.Format(content)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error formatting %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		if formatted == content {
			continue
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		needsFormatting = true

		if !flagCheck {
			if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error writing %s: %v\n", path, err)
				hasErrors = true
			}
		}
	}

	if hasErrors || (flagCheck && needsFormatting) {
		os.Exit(1)
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
