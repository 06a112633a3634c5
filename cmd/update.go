package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vstratful/rshell/internal/tui"
	"github.com/vstratful/rshell/internal/update"
)

func newUpdateCmd() *cobra.Command {
	var (
		checkOnly bool
		force     bool
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update rshell to the latest release",
		Long: `Check for and install updates from GitHub Releases.

Examples:
  update              # Check and install interactively
  update --check      # Only check for updates
  update --force      # Update without confirmation`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			console := tui.NewConsole(cmd.OutOrStdout())
			updater := update.New(version)

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			console.Write("Checking for updates...")
			console.Write("Current version: " + updater.Current())

			release, err := updater.Check(ctx)
			if err != nil {
				if errors.Is(err, update.ErrDevVersion) {
					console.Warning("this is a development build; auto-update only works for released versions.")
					console.Write("Install a release from: " + update.ReleasesURL)
					return nil
				}
				return fmt.Errorf("failed to check for updates: %w", err)
			}
			if release == nil {
				console.Color("You are running the latest version.", "green")
				return nil
			}

			console.Write(latestLine(release))
			if release.Notes != "" {
				console.Write("\nRelease notes:")
				for _, line := range strings.Split(release.Notes, "\n") {
					console.Write("  " + line)
				}
			}

			if checkOnly {
				console.Write("\nRun 'update' to install it.")
				return nil
			}

			if !force {
				console.Markup("\nDo you want to update? [[y/N]]: ")
				response, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil {
					return fmt.Errorf("failed to read response: %w", err)
				}
				response = strings.ToLower(strings.TrimSpace(response))
				if response != "y" && response != "yes" {
					console.Write("Update cancelled.")
					return nil
				}
			}

			console.Write("Downloading " + release.AssetName + "...")

			// The download gets its own, longer deadline
			cancel()
			dlCtx, dlCancel := context.WithTimeout(cmd.Context(), timeout*2)
			defer dlCancel()

			if err := updater.Apply(dlCtx, release); err != nil {
				// go-selfupdate has no typed errors for these cases
				msg := err.Error()
				switch {
				case strings.Contains(msg, "permission denied"), strings.Contains(msg, "access is denied"):
					console.Warning("permission denied. Try again with elevated privileges: " + update.ElevationHint())
				case strings.Contains(msg, update.ChecksumFile), strings.Contains(msg, "checksum"):
					console.Warning("checksum verification failed. Download manually from: " + update.ReleasesURL)
				}
				return err
			}

			console.Color(fmt.Sprintf("Updated to v%s.", release.Version), "green")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&checkOnly, "check", "c", false, "Only check for updates, don't install")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Update without confirmation")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Timeout for network operations")
	return cmd
}

// latestLine describes the newest release, with its date when known.
func latestLine(rel *update.Release) string {
	line := "Latest version:  " + rel.Version
	if rel.Published != "" {
		line += " (released " + rel.Published + ")"
	}
	return line
}
