package cmd

import (
	"fmt"
	"io"

	"github.com/mdlayher/wapi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var confCmd = &cobra.Command{
	Use:   "conf <ifname>",
	Short: "Print the wireless configuration of an interface",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		printConf(cmd.OutOrStdout(), c, args[0])
		return nil
	},
}

// printConf prints each setting of ifname. Settings which cannot be read are
// logged and skipped.
func printConf(w io.Writer, c *wapi.Client, ifname string) {
	show := func(name string, err error, format string, a ...interface{}) {
		if err != nil {
			logger.Warn("failed to read setting",
				zap.String("ifname", ifname),
				zap.String("setting", name),
				zap.Error(err),
			)
			return
		}

		fmt.Fprintf(w, "%-10s "+format+"\n", append([]interface{}{name + ":"}, a...)...)
	}

	proto, err := c.Protocol(ifname)
	show("protocol", err, "%s", proto)

	up, err := c.Up(ifname)
	show("up", err, "%t", up)

	ip, err := c.IP(ifname)
	show("ip", err, "%s", ip)

	mask, err := c.Netmask(ifname)
	show("netmask", err, "%s", mask)

	freq, fflag, err := c.Frequency(ifname)
	show("frequency", err, "%g Hz (%s)", freq, fflag)

	if err == nil {
		ch, err := c.FrequencyToChannel(ifname, freq)
		show("channel", err, "%d", ch)
	}

	essid, eflag, err := c.ESSID(ifname)
	show("essid", err, "%q (%s)", essid, eflag)

	mode, err := c.Mode(ifname)
	show("mode", err, "%s", mode)

	ap, err := c.AccessPoint(ifname)
	show("ap", err, "%s", ap)

	rate, bflag, err := c.Bitrate(ifname)
	show("bitrate", err, "%d b/s (%s)", rate, bflag)

	power, pflag, err := c.TxPower(ifname)
	show("txpower", err, "%d (%s)", power, pflag)
}

func init() {
	rootCmd.AddCommand(confCmd)
}
