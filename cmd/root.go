package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/clems4ever/mavtraits/converter"
	"github.com/spf13/cobra"
)

// ExitUsage is returned on a wrong argument count. POSIX shells report it
// as 255.
const ExitUsage = -1

const usage = "\nUsage: mavtraits <source_xml_path> <destination_path>\n"

var errUsage = errors.New("usage")

func newRootCmd(log *slog.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mavtraits <source_xml_path> <destination_path>",
		Short: "Convert a MAVLink command dictionary into a trait schema",
		Long: `mavtraits reads a MAVLink dialect XML file, extracts the MAV_CMD
enumeration and writes the commands and their parameters as a YAML
trait schema at the destination path, replacing its contents.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errUsage
			}
			return nil
		},
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := converter.DefaultOptions()
			opts.Logger = log
			conv, err := converter.New(opts)
			if err != nil {
				return err
			}
			stats, err := conv.ConvertFile(args[0], args[1])
			if err != nil {
				return err
			}
			if stats.Skipped > 0 {
				log.Info("skipped unrecognised records", "count", stats.Skipped)
			}
			return nil
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	return rootCmd
}

// Run executes the command line and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	rootCmd := newRootCmd(log)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprint(stdout, usage)
		return ExitUsage
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}
