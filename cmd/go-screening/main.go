package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-screening/internal/config"
	"github.com/tartampluch/go-screening/internal/server"
	"github.com/tartampluch/go-screening/internal/ui"
)

// main delegates to runMain so deferred cleanups run before os.Exit.
func main() {
	os.Exit(runMain())
}

// runMain builds the command tree and maps its outcome to an exit code.
func runMain() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var logCloser io.Closer
	defer func() {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	}()

	var debugMode bool
	rootCmd := &cobra.Command{
		Use:           config.CmdRoot,
		Short:         config.CmdDescRoot,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logCloser = setupLogging(debugMode)
			logStartupInfo()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	rootCmd.PersistentFlags().BoolVar(&debugMode, config.FlagDebug, false, config.FlagDescDebug)
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		fmt.Fprintln(os.Stderr, err)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run starts the desktop application and blocks until it quits.
func run(ctx context.Context) error {
	a := app.NewWithID(config.AppID)
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	port := a.Preferences().StringWithFallback(config.PrefServerPort, config.DefaultPort)
	srv := server.NewFeedServer(port)

	gui := ui.NewScreeningApp(a, ctx, srv)
	gui.Run()
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdVersion,
		Short: config.CmdDescVersion,
		// Printing the version needs no log file.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), config.MsgVersionOutput,
				config.AppName,
				config.Version,
				runtime.GOOS,
				runtime.GOARCH,
			)
		},
	}
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging installs a JSON slog handler writing to stderr and, when
// possible, to a log file in the user cache directory. Stdout is left to
// the generate command's checklist.
func setupLogging(debugMode bool) io.Closer {
	writers := []io.Writer{os.Stderr}
	var logFile *os.File

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath returns the log location inside the app's cache directory.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
