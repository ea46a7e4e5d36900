package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/toyz/artist/internal/cli"
	"github.com/toyz/artist/internal/errors"
	"github.com/toyz/artist/internal/utils"
)

// errStale is returned by check when the output directory needs regenerating
var errStale = stderrors.New("generated sources are out of date")

type app struct {
	configFile string
	verbose    bool
	quiet      bool

	v           *viper.Viper
	cfg         *cli.Config
	diagnostics *utils.DiagnosticSystem
	stdout      io.Writer
	stderr      io.Writer
}

func main() {
	a := &app{stdout: os.Stdout, stderr: os.Stderr}
	if err := a.rootCmd().Execute(); err != nil {
		if !stderrors.Is(err, errStale) {
			a.reporter().ReportError(err)
		}
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	a.v = cli.NewViper()

	root := &cobra.Command{
		Use:   "artist",
		Short: "Generate Android widget subclasses from stencils",
		Long: `artist turns stencil declarations (YAML, TOML or .stencil manifests) into
Java or Kotlin subclasses of Android widgets, with the canonical constructor
ladder and the code contributed by traits.

Configuration is read from artist.yaml, artist.toml or artist.json in the
working directory, from --config, and from ARTIST_* environment variables.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.diagnostics = a.newDiagnostics()
			cfg, err := cli.LoadConfig(a.v, a.configFile)
			if err != nil {
				return err
			}
			if cfg.File != "" {
				a.diagnostics.Verbose("using config %s", cfg.File)
			}
			a.cfg = cfg
			return nil
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default ./artist.{yaml,toml,json})")
	flags.BoolVar(&a.verbose, "verbose", false, "Enable verbose output and detailed error reporting")
	flags.BoolVar(&a.quiet, "quiet", false, "Only show errors")
	flags.String("output-dir", "", "directory generated sources are written under")
	flags.String("package", "", "package of the application's R class")
	flags.String("view-package", "", "package of the generated classes (defaults to --package)")
	flags.String("prefix", "", "prefix for derived class names")
	flags.String("dialect", "", "output language: java or kotlin")
	flags.StringSlice("manifest", nil, "stencil manifest file or directory (repeatable)")
	flags.Bool("format", true, "pretty-print generated sources")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	for key, flag := range map[string]string{
		cli.KeyOutputDir:       "output-dir",
		cli.KeyPackageName:     "package",
		cli.KeyViewPackageName: "view-package",
		cli.KeyViewNamePrefix:  "prefix",
		cli.KeyDialect:         "dialect",
		cli.KeyManifests:       "manifest",
		cli.KeyFormatSource:    "format",
	} {
		// A flag given on the command line overrides file and environment
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(a.generateCmd(), a.checkCmd(), a.cleanCmd(), a.listCmd())
	return root
}

func (a *app) newDiagnostics() *utils.DiagnosticSystem {
	var d *utils.DiagnosticSystem
	switch {
	case a.quiet:
		d = utils.NewQuietDiagnostics()
	case a.verbose:
		d = utils.NewVerboseDiagnostics()
	default:
		d = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	if a.stdout != os.Stdout || a.stderr != os.Stderr {
		d.WithOutput(a.stdout, a.stderr)
	}
	return d
}

func (a *app) reporter() *cli.DiagnosticReporter {
	return cli.NewDiagnosticReporter(a.stderr, a.verbose)
}

func (a *app) generateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate widget classes for every registered stencil",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.diagnostics.ArtistHeader(fmt.Sprintf("generating %s sources into %s", dialectName(a.cfg), a.cfg.OutputDir))

			g := cli.NewGenerator(a.diagnostics)
			summary, err := g.Run(a.cfg)
			if err != nil {
				return err
			}
			g.ReportSummary(summary)
			a.diagnostics.GenerationComplete()
			return nil
		},
	}
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Exit non-zero when the generated sources are out of date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := cli.NewChecker(cli.NewGenerator(a.diagnostics)).Check(a.cfg)
			if err != nil {
				return err
			}
			if result.UpToDate() {
				a.diagnostics.Success("%s is up to date (%s)", result.OutputDir, result.Actual)
				return nil
			}

			a.diagnostics.Error("%s is out of date", result.OutputDir)
			for _, group := range []struct {
				label string
				paths []string
			}{
				{"missing", result.Missing},
				{"changed", result.Changed},
				{"not generated any more", result.Extra},
			} {
				for _, p := range group.paths {
					a.diagnostics.Error("  %s: %s", group.label, p)
				}
			}
			a.diagnostics.Error("run 'artist generate' to update it")
			return errStale
		},
	}
}

func (a *app) cleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Delete generated sources from the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.OutputDir == "" {
				return errors.ConfigurationError(cli.KeyOutputDir, "output directory is required")
			}
			dialects := cli.NewDialectRegistry()
			removed, err := cli.NewCleaner(dialects.Extensions()...).Clean(a.cfg.OutputDir)
			if err != nil {
				return err
			}
			for _, p := range removed {
				a.diagnostics.Verbose("removed %s", p)
			}
			a.diagnostics.Success("removed %d generated files from %s", len(removed), a.cfg.OutputDir)
			return nil
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print registered traits and stencils",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lister := cli.NewLister(cli.NewGenerator(a.diagnostics))
			listing, err := lister.List(a.cfg)
			if err != nil {
				return err
			}
			lister.Print(listing)
			return nil
		},
	}
}

func dialectName(cfg *cli.Config) string {
	if cfg.Dialect == "" {
		return cli.DefaultDialect
	}
	return cfg.Dialect
}
