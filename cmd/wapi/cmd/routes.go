package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the IPv4 routing table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		routes, err := c.Routes()
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		fmt.Fprintln(tw, "DESTINATION\tGATEWAY\tNETMASK\tFLAGS\tMETRIC\tIFACE")
		for _, r := range routes {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%#04x\t%d\t%s\n",
				r.Destination, r.Gateway, r.Netmask, r.Flags, r.Metric, r.Interface)
		}

		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
}
