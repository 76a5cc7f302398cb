package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/naverflow/naverflow/cache"
	"github.com/naverflow/naverflow/internal/config"
	"github.com/naverflow/naverflow/naver"
	"github.com/naverflow/naverflow/plugins"
)

var (
	version = "0.1.0"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// run executes one workflow invocation. Extra client options are applied
// after the configured ones.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, opts ...naver.Option) error {
	wf := &workflow{
		stdout: stdout,
		logger: zerolog.New(stderr).With().Timestamp().Logger(),
	}
	defer wf.close()

	root := newRootCmd(wf, opts...)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		wf.logger.Error().Err(err).Strs("args", args).Msg("workflow failed")
		return err
	}
	return nil
}

// workflow holds what every source subcommand needs once the
// configuration has been read.
type workflow struct {
	cfg      *config.Config
	registry *plugins.Registry
	stdout   io.Writer
	logger   zerolog.Logger
	cancel   context.CancelFunc
}

func (wf *workflow) close() {
	if wf.cancel != nil {
		wf.cancel()
	}
}

// setup reads the configuration and wires the plugins. The invocation
// deadline covers a location lookup plus one search request.
func (wf *workflow) setup(cmd *cobra.Command, opts []naver.Option) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	wf.cfg = cfg

	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	wf.logger = wf.logger.Level(level).With().Str("cmd", cmd.Name()).Logger()

	ctx, cancel := context.WithTimeout(wf.logger.WithContext(cmd.Context()), 3*cfg.HTTPTimeout)
	wf.cancel = cancel
	cmd.SetContext(ctx)

	fc, err := cache.NewFileCache(cfg.Cache.Dir)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}

	clientOpts := append([]naver.Option{naver.WithTimeout(cfg.HTTPTimeout)}, opts...)
	wf.registry = plugins.NewRegistry()
	naver.Register(wf.registry, &naver.Deps{
		Client: naver.New(clientOpts...),
		Cache:  fc,
		Config: cfg,
	})
	return nil
}

func newRootCmd(wf *workflow, opts ...naver.Option) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "naverflow",
		Short:         "Naver search, dictionary, map, finance and shopping for Alfred",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return wf.setup(cmd, opts)
		},
	}

	// Source subcommands take the launcher query verbatim. Flag parsing is
	// off so queries such as "-1" or "-h" reach Naver instead of cobra.

	// map subcommand
	mapCmd := &cobra.Command{
		Use:                "map <useIP|noIP> <query...>",
		Short:              "Search places, addresses and bus routes",
		Args:               cobra.MinimumNArgs(1),
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			args = queryArgs(args)
			if len(args) == 0 {
				return fmt.Errorf("first argument must be useIP or noIP")
			}
			useIP, err := parseIPMode(args[0])
			if err != nil {
				return err
			}
			q := plugins.NewQuery(args[1:])
			q.UseIP = &useIP
			return wf.runPlugin(cmd.Context(), "map", q)
		},
	}

	// dict subcommand
	dictCmd := &cobra.Command{
		Use:                "dict [--lang code] <query...>",
		Short:              "Complete words from a Naver dictionary",
		Long:               "Complete words from a Naver dictionary.\n\n--lang (or -l) is only read as the first argument; every later word is query text.",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, rest := splitLang(args)
			q := plugins.NewQuery(queryArgs(rest))
			q.Lang = lang
			if q.Lang == "" {
				q.Lang = wf.cfg.DictLang
			}
			return wf.runPlugin(cmd.Context(), "dict", q)
		},
	}

	// version subcommand
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "naverflow v%s\n", version)
		},
	}

	rootCmd.AddCommand(mapCmd, dictCmd, versionCmd)
	rootCmd.AddCommand(
		wf.sourceCmd("map-hub", "Show the results of the configured map_type"),
		wf.sourceCmd("place", "Search places around the default coordinates"),
		wf.sourceCmd("address", "Search addresses"),
		wf.sourceCmd("finance", "Look up stocks, indices and market indicators"),
		wf.sourceCmd("shopping", "Complete Naver Shopping keywords"),
		wf.sourceCmd("search", "Complete Naver web search queries"),
	)
	return rootCmd
}

// sourceCmd builds a subcommand that passes its arguments as the query to
// the plugin of the same name.
func (wf *workflow) sourceCmd(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:                name + " <query...>",
		Short:              short,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return wf.runPlugin(cmd.Context(), name, plugins.NewQuery(queryArgs(args)))
		},
	}
}

// runPlugin executes the named plugin and writes its feedback
func (wf *workflow) runPlugin(ctx context.Context, name string, q plugins.Query) error {
	plugin, exists := wf.registry.GetPlugin(name)
	if !exists {
		return fmt.Errorf("plugin '%s' not found. Available plugins: %v", name, wf.registry.List())
	}

	zerolog.Ctx(ctx).Debug().Str("query", q.Text).Str("lang", q.Lang).Msg("running")
	fb, err := plugin.Run(ctx, q)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return fb.Send(wf.stdout)
}

// parseIPMode reads the first argument of the map command.
func parseIPMode(arg string) (bool, error) {
	switch strings.ToLower(arg) {
	case "useip":
		return true, nil
	case "noip":
		return false, nil
	}
	return false, fmt.Errorf("first argument must be useIP or noIP, got %q", arg)
}

// queryArgs drops a leading "--" separator, which callers may still pass
// out of habit.
func queryArgs(args []string) []string {
	if len(args) > 0 && args[0] == "--" {
		return args[1:]
	}
	return args
}

// splitLang reads a dictionary code given as the first argument in the
// forms "--lang code", "--lang=code", "-l code" or "-l=code". Anything
// else, including a later "--lang", is left as query text.
func splitLang(args []string) (string, []string) {
	if len(args) == 0 {
		return "", args
	}
	switch first := args[0]; {
	case first == "--lang" || first == "-l":
		if len(args) < 2 {
			return "", args[1:]
		}
		return args[1], args[2:]
	case strings.HasPrefix(first, "--lang="):
		return strings.TrimPrefix(first, "--lang="), args[1:]
	case strings.HasPrefix(first, "-l="):
		return strings.TrimPrefix(first, "-l="), args[1:]
	}
	return "", args
}
