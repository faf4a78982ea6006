package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/law-makers/reviewscrape/internal/app"
	"github.com/law-makers/reviewscrape/internal/config"
	"github.com/law-makers/reviewscrape/internal/ui"
)

// reportedError marks an error the console reporter has already printed
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviewscrape",
		Short: "Build a rewriting dataset from product review pages",
		Long: `Reviewscrape fetches product review pages, extracts the substantive
paragraphs under each heading and appends them to a JSON Lines dataset,
skipping paragraphs that are already present.`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	config.RegisterFlags(cmd)
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetHelpFunc(customHelpFunc)

	// Initialize the application lazily so -h and --version never touch config
	cmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		if GetApp(c) != nil {
			return nil
		}
		cfg, err := config.Load(c)
		if err != nil {
			return err
		}
		ui.Enabled = !cfg.JSONLog && os.Getenv("NO_COLOR") == ""

		a, err := app.New(cfg)
		if err != nil {
			return err
		}
		SetApp(c, a)
		return nil
	}
	return cmd
}

// Execute runs the root command under ctx and returns the process exit code.
func Execute(ctx context.Context) int {
	return execute(ctx, rootCmd, os.Stderr)
}

func execute(ctx context.Context, root *cobra.Command, stderr io.Writer) int {
	cmd, err := root.ExecuteContextC(ctx)
	if a := GetApp(cmd); a != nil {
		a.Close()
		SetApp(cmd, nil)
	}
	if err != nil {
		log.Debug().Err(err).Str("command", cmd.Name()).Msg("Command failed")
	}
	return exitCode(err, stderr)
}

// exitCode maps a command error to the process exit code, printing it to
// stderr unless the console already reported it.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var reported reportedError
	if !errors.As(err, &reported) {
		fmt.Fprintf(stderr, "%s %v\n", ui.Error("[ERROR]"), err)
	}
	return 1
}

// customHelpFunc provides a colorized help output
func customHelpFunc(cmd *cobra.Command, args []string) {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "\n%s\n", ui.Title(strings.ToUpper(cmd.Name())))
	if cmd.Short != "" {
		fmt.Fprintf(w, "%s\n", cmd.Short)
	}
	if cmd.Long != "" && cmd.Long != cmd.Short {
		fmt.Fprintf(w, "\n%s\n", cmd.Long)
	}

	fmt.Fprintf(w, "\n%s\n", ui.Section("Usage"))
	if cmd.Runnable() {
		fmt.Fprintf(w, "  %s\n", cmd.UseLine())
	}
	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(w, "  %s <command> [flags]\n", cmd.CommandPath())
	}

	if cmd.HasExample() {
		fmt.Fprintf(w, "\n%s\n", ui.Section("Examples"))
		for _, line := range strings.Split(cmd.Example, "\n") {
			trimmed := strings.TrimSpace(line)
			switch {
			case trimmed == "":
			case strings.HasPrefix(trimmed, "#"):
				fmt.Fprintf(w, "  %s\n", ui.Info(trimmed))
			default:
				fmt.Fprintf(w, "  %s\n", ui.Success("$ "+trimmed))
			}
		}
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(w, "\n%s\n", ui.Section("Commands"))
		maxLen := 0
		var available []*cobra.Command
		for _, c := range cmd.Commands() {
			if c.IsAvailableCommand() && c.Name() != "help" {
				available = append(available, c)
				maxLen = max(maxLen, len(c.Name()))
			}
		}
		for _, c := range available {
			padding := strings.Repeat(" ", maxLen-len(c.Name())+2)
			fmt.Fprintf(w, "  %s%s%s\n", c.Name(), padding, c.Short)
		}
	}

	if cmd.HasAvailableLocalFlags() {
		fmt.Fprintf(w, "\n%s\n%s", ui.Section("Flags"), cmd.LocalFlags().FlagUsages())
	}
	if cmd.HasAvailableInheritedFlags() {
		fmt.Fprintf(w, "\n%s\n%s", ui.Section("Global Flags"), cmd.InheritedFlags().FlagUsages())
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(w, "\nUse \"%s <command> --help\" for more information about a command.\n", cmd.CommandPath())
	}
	fmt.Fprintln(w)
}
