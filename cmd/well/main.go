// Package main provides the well command: a chat about the repository in the
// current directory, with the model reading files and git history through
// a fixed set of read-only tools.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Cyclone1070/well/internal/config"
	"github.com/Cyclone1070/well/internal/provider"
	"github.com/Cyclone1070/well/internal/provider/gemini"
	"github.com/Cyclone1070/well/internal/provider/openai"
	"github.com/Cyclone1070/well/internal/tool"
	"github.com/Cyclone1070/well/internal/tool/directory"
	"github.com/Cyclone1070/well/internal/tool/file"
	"github.com/Cyclone1070/well/internal/tool/history"
	"github.com/Cyclone1070/well/internal/tool/outline"
	"github.com/Cyclone1070/well/internal/tool/service/fs"
	"github.com/Cyclone1070/well/internal/tool/service/git"
	"github.com/Cyclone1070/well/internal/tool/service/path"
	"github.com/Cyclone1070/well/internal/ui"
	"github.com/Cyclone1070/well/internal/workflow/conversation"
	"github.com/Cyclone1070/well/internal/workflow/loop"
	"github.com/Cyclone1070/well/internal/workflow/toolmanager"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

type modelClient interface {
	Complete(ctx context.Context, model string, messages []provider.Message, tools []tool.Declaration) (*provider.Completion, error)
}

// Dependencies holds the components required to run the application.
type Dependencies struct {
	In          io.Reader
	Out         io.Writer
	Interactive bool
	Width       int

	Loader          *config.Loader
	Getwd           func() (string, error)
	ProviderFactory func(context.Context, *config.Config, *zap.Logger) (modelClient, error)
}

type flags struct {
	provider string
	model    string
	baseURL  string
	verbose  bool
}

func newRootCmd(deps Dependencies) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "well [prompt...]",
		Short: "Ask questions about the repository in the current directory",
		Long: `well starts a conversation with a language model that can list, read and
outline files under the current directory and inspect its git history.

Words given on the command line become the first message. An empty line
ends the session.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), deps, f, args)
		},
	}

	cmd.Flags().StringVar(&f.provider, "provider", "", "model provider (openai or gemini)")
	cmd.Flags().StringVar(&f.model, "model", "", "model name")
	cmd.Flags().StringVar(&f.baseURL, "base-url", "", "base URL of the model API")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "log at debug level")

	return cmd
}

func run(ctx context.Context, deps Dependencies, f flags, args []string) error {
	overrides := config.Overrides{
		Provider: f.provider,
		Model:    f.model,
		BaseURL:  f.baseURL,
	}
	if f.verbose {
		overrides.LogLevel = "debug"
	}

	cfg, err := deps.Loader.Load(overrides)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log.Level, deps.Out)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("session", uuid.NewString()))

	workingDir, err := deps.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	tools, err := createTools(cfg, workingDir, logger)
	if err != nil {
		return err
	}

	client, err := deps.ProviderFactory(ctx, cfg, logger)
	if err != nil {
		return err
	}

	var renderer ui.MarkdownRenderer
	if cfg.UI.Markdown && deps.Interactive {
		renderer, err = ui.NewGlamourRenderer(deps.Width)
		if err != nil {
			logger.Warn("markdown rendering disabled", zap.Error(err))
			renderer = nil
		}
	}

	terminal := ui.New(ui.Options{
		In:          deps.In,
		Out:         deps.Out,
		Interactive: deps.Interactive,
		Renderer:    renderer,
	})
	defer terminal.Close()

	log := conversation.Seed(conversation.ContextPrompt)
	if prompt := strings.TrimSpace(strings.Join(args, " ")); prompt != "" {
		log.AppendUser(prompt)
		terminal.ShowUserInput(prompt)
	}

	logger.Debug("starting session",
		zap.String("provider", cfg.Provider.Name),
		zap.String("model", cfg.Provider.Model),
		zap.String("workspace", workingDir),
	)

	l := loop.NewLoop(client, tools, terminal, logger, cfg.Provider.Model, cfg.Orchestrator.MaxConsecutiveRecoveries)
	return l.Run(ctx, log)
}

func createTools(cfg *config.Config, workingDir string, logger *zap.Logger) (*toolmanager.ToolManager, error) {
	canonicalRoot, err := path.CanonicaliseRoot(workingDir)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize workspace root: %w", err)
	}

	osFS := fs.NewOSFileSystem()
	resolver := path.NewResolver(canonicalRoot)

	var ignore interface {
		ShouldIgnore(relativePath string, isDir bool) bool
	}
	matcher, err := git.NewIgnoreMatcher(canonicalRoot, osFS)
	if err != nil {
		logger.Warn("failed to load .gitignore, outlining every file", zap.Error(err))
		ignore = &git.NoOpMatcher{}
	} else {
		ignore = matcher
	}

	manager := toolmanager.NewToolManager(logger, cfg.Orchestrator.ToolConcurrency,
		directory.NewListTool(osFS, resolver),
		file.NewReadTool(osFS, resolver, cfg),
		outline.NewOutlineTool(osFS, resolver, ignore, cfg),
		history.NewLogTool(canonicalRoot),
		history.NewShowTool(canonicalRoot),
	)
	if missing := manager.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("tools not registered: %v", missing)
	}
	return manager, nil
}

func newModelClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (modelClient, error) {
	httpClient := &http.Client{Timeout: cfg.Provider.Timeout}

	switch cfg.Provider.Name {
	case config.ProviderGemini:
		client, err := gemini.NewRealGeminiClient(ctx, cfg.Provider.APIKey, cfg.Provider.BaseURL, httpClient)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return gemini.New(client, logger), nil
	default:
		return openai.New(httpClient, cfg.Provider.BaseURL, cfg.Provider.APIKey, logger), nil
	}
}

func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.Lock(zapcore.AddSync(w)), lvl)
	return zap.New(core), nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func terminalWidth(f *os.File) int {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

func execute(ctx context.Context, deps Dependencies, args []string, stderr io.Writer) int {
	cmd := newRootCmd(deps)
	cmd.SetArgs(args)
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "well: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	deps := Dependencies{
		In:              os.Stdin,
		Out:             os.Stderr,
		Interactive:     isTerminal(os.Stdin) && isTerminal(os.Stderr),
		Width:           terminalWidth(os.Stderr),
		Loader:          config.NewLoader(),
		Getwd:           os.Getwd,
		ProviderFactory: newModelClient,
	}

	code := execute(ctx, deps, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}
