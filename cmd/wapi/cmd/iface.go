package cmd

import (
	"fmt"

	"github.com/mdlayher/wapi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var ifaddCmd = &cobra.Command{
	Use:   "ifadd <ifname> <name> <mode>",
	Short: "Create a virtual interface on the device of ifname",
	Long: "Create a virtual interface on the device of ifname. Mode is one of " +
		"auto, adhoc, managed, master or monitor.",
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := wapi.ParseMode(args[2])
		if err != nil {
			return err
		}

		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.AddInterface(args[0], args[1], mode); err != nil {
			return err
		}

		logger.Info("added interface",
			zap.String("ifname", args[0]),
			zap.String("name", args[1]),
			zap.Stringer("mode", mode),
		)
		return nil
	},
}

var ifdelCmd = &cobra.Command{
	Use:   "ifdel <ifname>",
	Short: "Delete a virtual interface",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.DeleteInterface(args[0]); err != nil {
			return err
		}

		logger.Info("deleted interface", zap.String("ifname", args[0]))
		return nil
	},
}

var ifnamesCmd = &cobra.Command{
	Use:   "ifnames",
	Short: "List interfaces with wireless extensions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		names, err := c.InterfaceNames()
		if err != nil {
			return err
		}

		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(ifaddCmd)
	rootCmd.AddCommand(ifdelCmd)
	rootCmd.AddCommand(ifnamesCmd)
}
