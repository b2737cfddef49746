// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lazycatapps/downloadhub/internal/gate"
	"github.com/lazycatapps/downloadhub/internal/models"
	"github.com/lazycatapps/downloadhub/internal/pkg/validator"
	"github.com/lazycatapps/downloadhub/internal/repository"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// fetchCmd runs the download gate in the terminal and prints the resolved link.
var fetchCmd = &cobra.Command{
	Use:   "fetch <software-id> <part>",
	Short: "Resolve a download part through the countdown gate",
	Long: `Fetch resolves a software part from the catalog file, shows the countdown
and prints the download link once it is handed off. Ctrl+C cancels the
countdown and nothing is printed.`,
	Args: cobra.ExactArgs(2),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().Bool("now", false, "Skip the countdown and hand off immediately")
}

func runFetch(cmd *cobra.Command, args []string) error {
	if err := validator.ValidateSoftwareID(args[0]); err != nil {
		return err
	}
	part, err := validator.ParsePartNumber(args[1])
	if err != nil {
		return err
	}
	now, _ := cmd.Flags().GetBool("now")

	catalog, err := repository.LoadCatalog(afero.NewOsFs(), viper.GetString("data-file"))
	if err != nil {
		return err
	}

	resolution, err := gate.Resolve(catalog.Software, args[0], part)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	link, err := fetchLink(ctx, cmd.ErrOrStderr(), resolution,
		viper.GetInt("countdown-seconds"), viper.GetDuration("tick-interval"), now)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Download cancelled")
			return nil
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), link)
	return nil
}

// fetchLink drives a countdown for the resolution and returns its link once
// handed off. Progress goes to w. Cancelling ctx before the hand-off returns
// the context error and no link.
func fetchLink(ctx context.Context, w io.Writer, resolution *models.Resolution, seconds int, interval time.Duration, now bool) (string, error) {
	handedOff := make(chan struct{})
	countdown := gate.NewCountdown(seconds, func() { close(handedOff) })

	fmt.Fprintf(w, "%s - %s, part %d of %d", resolution.SoftwareName, resolution.VersionName,
		resolution.Part, resolution.TotalParts)
	if resolution.Size != "" {
		fmt.Fprintf(w, " (%s)", resolution.Size)
	}
	fmt.Fprintln(w)

	if now {
		countdown.DownloadNow()
		return resolution.Link, nil
	}

	total := countdown.Snapshot().Total
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(fmt.Sprintf("starting in %ds", total)),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionThrottle(0),
	)

	err := countdown.Run(ctx, interval, func(snap models.GateSnapshot) {
		if snap.State == models.GateStateCounting {
			bar.Describe(fmt.Sprintf("starting in %ds", snap.Remaining))
		} else {
			bar.Describe("opening")
		}
		_ = bar.Set(snap.Total - snap.Remaining)
	})
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}

	select {
	case <-handedOff:
		return resolution.Link, nil
	default:
		return "", context.Canceled
	}
}
