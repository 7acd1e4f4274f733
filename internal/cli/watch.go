package cli

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ariel-frischer/kacl/internal/changelog"
	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// watchDebounce coalesces the write bursts editors produce when saving.
const watchDebounce = 200 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Revalidate the changelog on every save",
	Long: `Watch the changelog file and reparse it whenever it changes, printing
validation results continuously. Useful while hand-editing a changelog.

The parent directory is watched rather than the file itself, so editors
that replace the file on save (rename-over-write) keep being tracked.`,
	Example:      `  kacl watch --file CHANGELOG.md`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command) error {
	s, err := resolveSettings()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(s.Path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "watching %s (ctrl-c to stop)\n", s.Path)
	reportCheck(cmd, s)

	var debounce *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pending:
			reportCheck(cmd, s)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.Path) {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
		}
	}
}

// reportCheck parses the file and prints a one-line verdict with a
// timestamp. Parse failures are reported but never stop the watch loop.
func reportCheck(cmd *cobra.Command, s *settings) {
	stamp := time.Now().Format("15:04:05")
	cl, err := changelog.ParseFile(s.Path, &s.Opts)
	if err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s %v\n", stamp, color.RedString("✗"), err)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %d releases, %d links\n",
		stamp, color.GreenString("✓"), len(cl.Releases), len(cl.Links))
}
