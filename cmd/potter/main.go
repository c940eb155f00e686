// Command potter generates printable vessel meshes from a profile design.
package main

import (
	"os"

	"github.com/chazu/potter/internal/config"
	"github.com/chazu/potter/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// globalFlags are the persistent flags of the root command.
type globalFlags struct {
	configPath string
	debug      bool
	logFile    string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "potter",
		Short: "Generate 3D-printable vessel meshes from a profile curve",
		Long: `potter turns a vessel design (a base and a list of profile control points)
into a closed triangle mesh and writes it as STL. Designs are read from YAML
files or from small Lisp scripts.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "Path to config file")
	root.PersistentFlags().BoolVar(&g.debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&g.logFile, "log-file", "", "Also write logs to this file")

	root.AddCommand(
		newGenerateCmd(g),
		newInfoCmd(g),
		newProfileCmd(g),
		newVersionCmd(),
	)
	return root
}

// setup loads the configuration, applies flag overrides and starts the
// logger. Every mesh command calls it first.
func (g *globalFlags) setup(flags *config.Flags) (*config.Config, *App, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, nil, err
	}
	flags.Apply(cfg)
	if g.debug {
		cfg.Logging.Level = "debug"
	}
	if g.logFile != "" {
		cfg.Logging.LogFile = g.logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, nil, err
	}
	app, err := NewApp(cfg, logger.Log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, app, nil
}

func main() {
	_ = logger.Init("info", "")
	if err := newRootCmd().Execute(); err != nil {
		logger.Error("potter failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}
