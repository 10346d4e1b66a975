package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/mdlayher/wapi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var scanCmd = &cobra.Command{
	Use:   "scan <ifname>",
	Short: "Scan for wireless networks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		aps, err := scan(ctx, c, args[0], v.GetInt("scan.retries"))
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		fmt.Fprintln(tw, "BSSID\tESSID\tMODE\tFREQUENCY\tBITRATE")
		for _, ap := range aps {
			fmt.Fprintf(tw, "%s\t%q\t%s\t%s\t%s\n",
				ap.BSSID, ap.ESSID, optional(ap.HasMode, ap.Mode),
				optional(ap.HasFrequency, ap.Frequency),
				optional(ap.HasBitrate, ap.Bitrate))
		}

		return tw.Flush()
	},
}

// A scanner runs complete scan cycles.
type scanner interface {
	Scan(ctx context.Context, ifname string) ([]*wapi.AccessPoint, error)
}

// scan runs a scan cycle on ifname, starting a new cycle up to retries times
// when results are not ready in time.
func scan(ctx context.Context, s scanner, ifname string, retries int) ([]*wapi.AccessPoint, error) {
	for attempt := 0; ; attempt++ {
		aps, err := s.Scan(ctx, ifname)
		if !errors.Is(err, wapi.ErrScanTimeout) || attempt >= retries {
			return aps, err
		}

		logger.Warn("scan timed out, retrying",
			zap.String("ifname", ifname),
			zap.Int("attempt", attempt+1),
			zap.Int("retries", retries),
		)
	}
}

func optional(ok bool, v interface{}) string {
	if !ok {
		return "-"
	}

	return fmt.Sprint(v)
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
