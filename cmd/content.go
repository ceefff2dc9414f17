package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"bizsite/content"
)

var (
	showFormat    string
	watchInterval time.Duration
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Inspect and edit the site content",
}

var contentShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current site content",
	Args:  cobra.NoArgs,
	RunE:  runContentShow,
}

var contentSetCmd = &cobra.Command{
	Use:   "set <path> <value>",
	Short: "Set one field by dotted path",
	Long: `Set one field by dotted path, for example:

  bizsite content set contact.address.city '"Denver"'
  bizsite content set homepage.features.0.title "Fast Delivery"
  bizsite content set about.values '["Honesty","Care"]'

A value that is not valid JSON is taken as a string.`,
	Args: cobra.ExactArgs(2),
	RunE: runContentSet,
}

var contentResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop the saved content and go back to the defaults",
	Args:  cobra.NoArgs,
	RunE:  runContentReset,
}

var contentWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the content each time it changes",
	Args:  cobra.NoArgs,
	RunE:  runContentWatch,
}

func init() {
	contentShowCmd.Flags().StringVarP(&showFormat, "format", "f", "json", "Output format: json or yaml")
	contentWatchCmd.Flags().DurationVarP(&watchInterval, "interval", "i", 0, "Poll interval (defaults to poll_interval_ms)")

	contentCmd.AddCommand(contentShowCmd)
	contentCmd.AddCommand(contentSetCmd)
	contentCmd.AddCommand(contentResetCmd)
	contentCmd.AddCommand(contentWatchCmd)
}

func runContentShow(cmd *cobra.Command, args []string) error {
	if showFormat != "json" && showFormat != "yaml" {
		return fmt.Errorf("invalid format: %s. Use 'json' or 'yaml'", showFormat)
	}
	st, err := openStores()
	if err != nil {
		return err
	}
	defer st.Close()

	return writeContent(cmd.OutOrStdout(), st.content.Load(), showFormat)
}

func writeContent(w io.Writer, c content.BusinessConfig, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	}
}

// parseValue reads arg as JSON, falling back to the raw string.
func parseValue(arg string) any {
	dec := json.NewDecoder(strings.NewReader(arg))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil || dec.More() {
		return arg
	}
	return v
}

func runContentSet(cmd *cobra.Command, args []string) error {
	st, err := openStores()
	if err != nil {
		return err
	}
	defer st.Close()

	updated, err := content.ApplyPath(st.content.Load(), args[0], parseValue(args[1]))
	if err != nil {
		return err
	}
	if err := st.content.Save(updated); err != nil {
		return err
	}
	logger.Info("Content updated", zap.String("path", args[0]))
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", args[0])
	return nil
}

func runContentReset(cmd *cobra.Command, args []string) error {
	st, err := openStores()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.content.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Content reset to defaults")
	return nil
}

func runContentWatch(cmd *cobra.Command, args []string) error {
	st, err := openStores()
	if err != nil {
		return err
	}
	defer st.Close()

	interval := watchInterval
	if interval <= 0 {
		interval = cfg.PollInterval()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	content.NewWatcher(st.content, interval, logger).Run(ctx, func(c content.BusinessConfig) {
		if err := enc.Encode(c); err != nil {
			logger.Warn("Cannot print content", zap.Error(err))
		}
	})
	return nil
}
