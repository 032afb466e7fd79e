package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-flashcrc/crc"
	"github.com/moffa90/go-flashcrc/hexfile"
	"github.com/moffa90/go-flashcrc/internal/config"
	"github.com/moffa90/go-flashcrc/internal/logging"
	"github.com/moffa90/go-flashcrc/internal/metrics"
	"github.com/moffa90/go-flashcrc/sink"
)

// app is the state shared by all subcommands of one invocation.
type app struct {
	configPath string

	cfg     *config.Config
	log     *logging.Logger
	metrics *metrics.Metrics
	engine  *crc.Engine
}

// NewRootCmd builds the flashcrc command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "flashcrc",
		Short: "Segment firmware images and checksum them for flashing",
		Long: `flashcrc reads Intel HEX and Motorola S-record images, splits them into
contiguous memory segments, computes a configurable CRC per segment and
replays segments as UDS TransferData chunks.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	flags.String("crcspec", "", "CRC spec file (overrides crc.spec)")
	flags.String("preset", "", "CRC preset name (overrides crc.preset)")
	flags.String("log-level", "", "log level: debug, info, error")
	flags.String("log-file", "", "rotating log file")
	flags.String("metrics-textfile", "", "write prometheus metrics to this file on exit")
	flags.String("sink", "", "segment sink backend: memory, file, pebble")
	flags.String("sink-dir", "", "directory for file and pebble sinks")

	rootCmd.AddCommand(
		newSegmentsCmd(a),
		newChunksCmd(a),
		newConvertCmd(a),
		newTableCmd(a),
		newChecksumCmd(a),
		newPresetsCmd(),
	)

	// Post-run hooks do not run after a failed RunE
	for _, sub := range rootCmd.Commands() {
		sub.RunE = withTeardown(a, sub.RunE)
	}
	return rootCmd
}

func withTeardown(a *app, run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if terr := a.teardown(); err == nil {
				err = terr
			}
		}()
		return run(cmd, args)
	}
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.DefaultConfig()
	if a.configPath != "" {
		loaded, err := config.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	override := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	override("log-level", &cfg.Logging.Level)
	override("log-file", &cfg.Logging.File)
	override("metrics-textfile", &cfg.Metrics.Textfile)
	override("sink", &cfg.Sink.Backend)
	override("sink-dir", &cfg.Sink.Dir)
	if flags.Changed("crcspec") {
		cfg.CRC.Spec, _ = flags.GetString("crcspec")
	}
	if flags.Changed("preset") {
		cfg.CRC.Preset, _ = flags.GetString("preset")
		cfg.CRC.Spec = ""
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.Open(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.log = logger
	a.metrics = metrics.New()

	engine, err := a.loadEngine()
	if err != nil {
		_ = logger.Close()
		return err
	}
	a.engine = engine
	return nil
}

func (a *app) loadEngine() (*crc.Engine, error) {
	if a.cfg.CRC.Spec != "" {
		spec, err := crc.LoadSpec(a.cfg.CRC.Spec)
		if err != nil {
			return nil, err
		}
		for _, key := range spec.Ignored {
			a.log.Info("ignoring unknown crcspec key", "key", key)
		}
		a.log.Debug("loaded crcspec", "path", a.cfg.CRC.Spec, "config", spec.Config)
		return crc.New(spec.Config)
	}

	cfg, ok := crc.Preset(a.cfg.CRC.Preset)
	if !ok {
		return nil, fmt.Errorf("unknown CRC preset %q", a.cfg.CRC.Preset)
	}
	return crc.New(cfg)
}

func (a *app) teardown() error {
	if a.metrics != nil && a.cfg.Metrics.Textfile != "" {
		if err := a.metrics.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
			a.log.Error("failed to write metrics", "path", a.cfg.Metrics.Textfile, "error", err)
		}
	}
	if a.log != nil {
		return a.log.Close()
	}
	return nil
}

// parsedImage is an image together with the sink store it was parsed into.
type parsedImage struct {
	*hexfile.Image
	store sink.Store
}

// Close removes the segment payloads and closes the store.
func (p *parsedImage) Close() error {
	err := p.Image.Close()
	if cerr := p.store.Close(); err == nil {
		err = cerr
	}
	return err
}

// parse reads path with the configured engine, sink and strictness and
// records the outcome.
func (a *app) parse(path string) (*parsedImage, error) {
	store, err := sink.Open(a.cfg.Sink.Backend, a.cfg.Sink.Dir)
	if err != nil {
		return nil, err
	}

	img, err := hexfile.ParseFile(path, a.engine,
		hexfile.WithLogger(a.log),
		hexfile.WithStrict(a.cfg.Parse.Strict),
		hexfile.WithStore(store),
	)
	if err != nil {
		_ = store.Close()
		a.log.Error("failed to parse image", "path", path, "error", err)
		a.metrics.RecordParse(hexfile.FormatUnknown.String(), 0, 0, 0, false)
		return nil, err
	}

	a.metrics.RecordParse(img.Format.String(), img.Len(), img.TotalSize(), img.Skipped, true)
	a.log.Info("parsed image", "path", path, "format", img.Format, "segments", img.Len(), "skipped", img.Skipped)
	return &parsedImage{Image: img, store: store}, nil
}
