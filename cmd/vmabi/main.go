package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/vm-abi/codec"
	"github.com/wippyai/vm-abi/errors"
)

type globalFlags struct {
	configPath string
	logLevel   string
}

// app is the state shared by every subcommand once the root pre-run has finished.
type app struct {
	log   *zap.Logger
	flags globalFlags
	cfg   codec.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: codec.DefaultConfig(), log: zap.NewNop()}

	root := &cobra.Command{
		Use:           "vmabi",
		Short:         "Encode and decode VM ABI data",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `vmabi encodes call arguments into the VM's binary layout and decodes them back.

Types are JSON descriptors: leaves are kind names ("u64", "bool", "string", "b256")
and composites are objects such as {"kind":"vector","elem":"u8"} or
{"kind":"struct","name":"Point","fields":[{"name":"x","type":"u64"}]}.
Flags that take JSON accept either a file path or the JSON text itself.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configPath, "config", "", "YAML file with decoding limits")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "warn", "log level: debug|info|warn|error")

	root.AddCommand(
		newEncodeCmd(a),
		newDecodeCmd(a),
		newSelectorCmd(a),
		newInspectCmd(a),
		newInteractiveCmd(a),
	)
	return root
}

func (a *app) setup() error {
	level, err := zapcore.ParseLevel(a.flags.logLevel)
	if err != nil {
		return errors.Wrap(errors.PhaseCLI, errors.KindInvalidInput, err, "parse --log-level")
	}
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{"stderr"}
	log, err := zcfg.Build()
	if err != nil {
		return errors.Wrap(errors.PhaseCLI, errors.KindInvalidInput, err, "build logger")
	}
	a.log = log
	codec.SetLogger(log)

	if a.flags.configPath != "" {
		cfg, err := codec.LoadConfig(a.flags.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
		log.Debug("loaded limits", zap.String("path", a.flags.configPath),
			zap.Uint64("max_depth", cfg.MaxDepth), zap.Uint64("max_tokens", cfg.MaxTokens))
	}
	return nil
}
