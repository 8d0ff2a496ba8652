package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/toxicwind/ComfyUI-Manager/internal/branding"
	"github.com/toxicwind/ComfyUI-Manager/internal/channel"
	"github.com/toxicwind/ComfyUI-Manager/internal/config"
	"github.com/toxicwind/ComfyUI-Manager/internal/datasource"
	"github.com/toxicwind/ComfyUI-Manager/internal/gitops"
	"github.com/toxicwind/ComfyUI-Manager/internal/logging"
	"github.com/toxicwind/ComfyUI-Manager/internal/registry"
	"github.com/toxicwind/ComfyUI-Manager/internal/tracing"
	"github.com/toxicwind/ComfyUI-Manager/internal/userdata"
)

// Replaced in tests.
var (
	newSource = func(logger *slog.Logger) datasource.Source {
		return datasource.NewClient(userdata.GetManagerRoot(), userdata.GetCacheDir(), config.FetchTimeout(), logger)
	}
	newExecutor = func() gitops.Executor { return gitops.RealExecutor{} }
)

// session carries the per-invocation logger and tracer.
type session struct {
	logger  *slog.Logger
	tracing *tracing.Provider
}

func newSession(cmd *cobra.Command) (*session, error) {
	config.Load()
	logger := logging.New(cmd.ErrOrStderr(), logging.Options{Verbose: flagVerbose, Quiet: flagQuiet})

	cfg := tracing.Config{
		Exporter: config.Get(config.KeyTracingExporter),
		FilePath: config.Get(config.KeyTracingFile),
	}
	cfg.Enabled = flagTrace || (cfg.Exporter != "" && cfg.Exporter != tracing.ExporterNone)
	if flagTrace && cfg.Exporter == tracing.ExporterNone {
		cfg.Exporter = tracing.ExporterStderr
	}
	provider, err := tracing.NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	return &session{logger: logger, tracing: provider}, nil
}

func (s *session) close(ctx context.Context) {
	if err := s.tracing.Shutdown(ctx); err != nil {
		s.logger.Warn("flushing traces", "error", err)
	}
}

// resolve builds the mapping for the given channel and mode, falling back
// to the configured defaults for empty values.
func (s *session) resolve(ctx context.Context, channelName, mode string) (*registry.Mapping, error) {
	if channelName == "" {
		channelName = config.Channel()
	}
	if mode == "" {
		mode = config.Mode()
	}
	r := &registry.Resolver{
		Channels: &channel.FileDirectory{Path: userdata.GetChannelsListPath(), Logger: s.logger},
		Source:   newSource(s.logger),
		Hosts:    config.GitHosts(),
		Logger:   s.logger,
		Tracer:   s.tracing.Tracer(),
	}
	return r.Resolve(ctx, channelName, mode)
}

// nodesDir returns the custom nodes directory, warning on stderr when the
// host root was taken from the working directory.
func (s *session) nodesDir(cmd *cobra.Command) (string, error) {
	dir, assumed, err := userdata.LocateCustomNodes()
	if err != nil {
		return "", err
	}
	if assumed {
		fmt.Fprintf(cmd.ErrOrStderr(), "WARN: The %s environment variable is not set. Using '%s' as the custom nodes directory.\n",
			branding.HostPathEnv(), dir)
	}
	return dir, nil
}

// registryFlags are the --channel and --mode flags shared by node and show
// commands.
type registryFlags struct {
	channel string
	mode    string
}

func (f *registryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.channel, "channel", "", "Registry channel (default from config, else \"default\")")
	cmd.Flags().StringVar(&f.mode, "mode", "", "Registry fetch mode: remote, local or cache (default from config, else \"remote\")")
}
