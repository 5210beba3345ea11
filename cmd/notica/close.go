package main

import (
	"fmt"
	"strconv"

	godbus "github.com/godbus/dbus/v5"
	"github.com/spf13/cobra"

	"github.com/notica/notica/internal/dbus"
)

var closeCmd = &cobra.Command{
	Use:   "close ID",
	Short: "Close an active notification",
	Long: `Ask the daemon to close a notification by its D-Bus ID.

The banner exits with its close animation and the daemon emits
NotificationClosed with the "closed by a call" reason.`,
	Args: cobra.ExactArgs(1),
	RunE: runClose,
}

func init() {
	rootCmd.AddCommand(closeCmd)
}

func runClose(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid notification ID %q: %w", args[0], err)
	}

	conn, err := godbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}

	obj := conn.Object(dbus.DBusBusName, godbus.ObjectPath(dbus.DBusPath))
	if call := obj.Call(dbus.DBusInterface+".CloseNotification", 0, uint32(id)); call.Err != nil {
		return fmt.Errorf("close call failed: %w", call.Err)
	}
	return nil
}
