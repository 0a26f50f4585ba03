package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"sense-logger/controller"
	"sense-logger/models"
	"sense-logger/services/hardware"
	"sense-logger/utils"
)

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          utils.AppName,
		Short:        "log Sense HAT readings to CSV, driven by the joystick",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "", "configuration file path")
	root.PersistentFlags().Bool("debug", false, "toggle debug logging")
	root.PersistentFlags().Bool("simulate", false, "use simulated hardware, joystick commands from stdin")

	root.AddCommand(newRunCmd(), newInitCmd(), newSampleCmd())
	return root
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:        "run",
		SuggestFor: []string{"ru", "serve"},
		Short:      "run the logger until shutdown or a signal",
		Long: `run starts the polling loop using the configuration found, in order, at:
1. the path in the --config flag
2. the path in the SENSELOGGER_CONFIG environment variable
3. $HOME/.config/sense-logger/config.yaml, /etc/sense-logger/config.yaml, ./config.yaml
Values are then overridden by SENSELOGGER_* environment variables and flags.

Joystick: LEFT starts a log, RIGHT finishes it, UP toggles low light,
MIDDLE shows the IP address, DOWN shuts the device down.
SIGUSR1 toggles debug logging.`,
		Example: `  sense-logger run
  sense-logger run --simulate --debug`,
		RunE: runE,
	}
	cmd.Flags().String("dir", "", "working directory for active logs")
	return cmd
}

func runE(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Close()

	utils.L().Info("═══════════════════════════════════════════════════")
	utils.L().Info("  Sense-Logger")
	utils.L().Info("  GOMAXPROCS=%d  ·  PID=%d", runtime.GOMAXPROCS(0), os.Getpid())
	utils.L().Info("  logs=%s  finished=%s", cfg.Storage.WorkingDir, cfg.Storage.FinishedDir)
	utils.L().Info("═══════════════════════════════════════════════════")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	usr1 := make(chan os.Signal, 1)
	signal.Notify(usr1, syscall.SIGUSR1)
	defer signal.Stop(usr1)
	go watchDebugToggle(ctx, logger, utils.ParseLogLevel(cfg.Log.Level), usr1)

	hw, err := openHardware(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := hw.Close(); err != nil {
			utils.L().Warn("close hardware: %v", err)
		}
	}()

	dev := controller.NewDeviceController(cfg, hw, nil)
	if err := dev.Run(ctx); err != nil {
		return err
	}
	dev.LogStats()
	return nil
}

// watchDebugToggle flips the logger between base and DEBUG on every signal
// received from sigs until ctx is done. A DEBUG base flips to INFO.
func watchDebugToggle(ctx context.Context, logger *utils.Logger, base utils.LogLevel, sigs <-chan os.Signal) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sigs:
			next := utils.DEBUG
			if logger.Enabled(utils.DEBUG) {
				next = base
				if next == utils.DEBUG {
					next = utils.INFO
				}
			}
			logger.SetLevel(next)
			logger.Info("log level set to %s", next)
		}
	}
}

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:        "init",
		SuggestFor: []string{"ini", "in"},
		Short:      "init creates a configuration template",
		Long: `init creates a configuration template holding the defaults.
If --print is present the configuration is printed to stdout.
If --check is given the file at that path is parsed and validated instead.
If --output / -o is present it is saved to that path,
otherwise to $HOME/.config/sense-logger/config.yaml.
An existing file is only replaced with --yes / -y.`,
		Example: `  sense-logger init --print
  sense-logger init -o /etc/sense-logger/config.yaml -y
  sense-logger init --check /etc/sense-logger/config.yaml`,
		RunE: initE,
	}
	cmd.Flags().Bool("print", false, "print config to stdout")
	cmd.Flags().String("check", "", "validate an existing config file")
	cmd.Flags().BoolP("yes", "y", false, "overwrite")
	cmd.Flags().StringP("output", "o", "", "output path")
	return cmd
}

func initE(cmd *cobra.Command, _ []string) error {
	if path, _ := cmd.Flags().GetString("check"); path != "" {
		if _, err := utils.LoadConfigFile(path); err != nil {
			return errors.WithMessagef(err, "config %s", path)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "config %s is valid\n", path)
		return nil
	}

	cfg := utils.NewDefaultConfig()
	if printOnly, _ := cmd.Flags().GetBool("print"); printOnly {
		buf, err := utils.DumpConfig(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(buf)
		return err
	}

	out, _ := cmd.Flags().GetString("output")
	if out == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.Wrap(err, "locate home dir")
		}
		out = filepath.Join(home, ".config", utils.AppName, utils.DefaultConfigName+".yaml")
	}
	overwrite, _ := cmd.Flags().GetBool("yes")
	if err := utils.WriteConfig(cfg, out, overwrite); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "config written to %s\n", out)
	return nil
}

func newSampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:        "sample",
		SuggestFor: []string{"samp", "sa", "read"},
		Short:      "sample reads every sensor once and prints the result",
		Long: `sample opens the board, takes one reading from every sensor and prints
it as a CSV header and row. Use it to check the wiring before installing the service.`,
		Example: `  sense-logger sample`,
		RunE:    sampleE,
	}
}

func sampleE(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hw, err := openHardware(ctx, cfg)
	if err != nil {
		return err
	}
	defer hw.Close()

	r, err := hw.ReadSensors(ctx)
	if err != nil {
		return errors.Wrap(err, "read sensors")
	}
	rec := models.NewSenseRecord(time.Now(), r)
	return writeSample(cmd.OutOrStdout(), rec)
}

func writeSample(w io.Writer, rec models.SenseRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rec.CSVHeader()); err != nil {
		return err
	}
	if err := cw.Write(rec.CSVRow()); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// setup loads the configuration and installs the global logger.
func setup(cmd *cobra.Command) (*utils.Config, *utils.Logger, error) {
	cfg, err := utils.LoadConfig(cmd)
	if err != nil {
		return nil, nil, errors.Wrap(err, "load config")
	}
	if err := cfg.ResolvePaths(); err != nil {
		return nil, nil, err
	}

	level := utils.ParseLogLevel(cfg.Log.Level)
	if cfg.Debug {
		level = utils.DEBUG
	}
	logger := utils.InitLogger(level, utils.LogFileOptions{
		Path:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	return cfg, logger, nil
}

func openHardware(ctx context.Context, cfg *utils.Config) (hardware.Hardware, error) {
	opts := hardware.Options{
		Config:          cfg.Hardware,
		ScrollStep:      utils.Millis(cfg.Display.ScrollStepMs),
		ShutdownCommand: cfg.Shutdown.Command,
	}
	if cfg.Hardware.Simulate {
		return hardware.OpenSimHAT(ctx, opts, os.Stdin), nil
	}
	hat, err := hardware.OpenSenseHAT(ctx, opts)
	if err != nil {
		return nil, errors.WithMessage(err, "open sense hat (use --simulate without the board)")
	}
	return hat, nil
}
