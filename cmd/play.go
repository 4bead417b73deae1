package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordmath/internal/app"
	"github.com/abhisek/wordmath/internal/client"
	"github.com/abhisek/wordmath/internal/logging"
	"github.com/abhisek/wordmath/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Practice word problems in the terminal",
	Long: "Starts the terminal client. With --server it talks to a running\n" +
		"\"wordmath serve\"; otherwise problems are generated and graded in-process.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// runPlay builds a backend and launches the TUI.
func runPlay(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	serverURL, _ := cmd.Flags().GetString("server")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	if serverURL != "" {
		c := client.New(serverURL, client.WithTimeout(timeout))
		checkServerVersion(ctx, c)
		return app.Run(c, app.Options{RequestTimeout: timeout})
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !cfg.LLMKeyFound {
		return fmt.Errorf("no LLM API key found; set GEMINI_API_KEY (or another provider key) or pass --server")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration:\n%w", err)
	}

	// The TUI owns the terminal, so logs go to a file when requested.
	logger, closeLog := playLogger(cfg.LogLevel)
	defer closeLog()
	slog.SetDefault(logger)

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	svc, err := newPracticeService(ctx, cfg, st)
	if err != nil {
		return err
	}

	return app.Run(session.NewLocal(svc), app.Options{RequestTimeout: timeout})
}

// checkServerVersion warns on stderr when the server's major version
// differs from ours. An unreachable server is left for the TUI to report.
func checkServerVersion(ctx context.Context, c *client.Client) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	sv, err := c.Version(ctx)
	if err != nil {
		return
	}
	if err := client.CheckCompatible(version, sv); err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}
}

// playLogger returns the logger for in-process play and a func that
// releases its log file.
func playLogger(level string) (*slog.Logger, func() error) {
	noop := func() error { return nil }

	path := os.Getenv("WORDMATH_LOG_FILE")
	if path == "" {
		return logging.Discard(), noop
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return logging.Discard(), noop
	}
	return logging.New(f, level, "text"), f.Close
}

func init() {
	playCmd.Flags().String("server", "", "Base URL of a running wordmath server (e.g. http://localhost:8080)")
	playCmd.Flags().Duration("timeout", client.DefaultTimeout, "Timeout for each problem or grading request")
}
