package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	godbus "github.com/godbus/dbus/v5"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/notica/notica/internal/dbus"
)

var statusOpts struct {
	format string
}

// DaemonStatus describes the notification service currently owning the bus
// name, if any.
type DaemonStatus struct {
	Running      bool     `yaml:"running" json:"running"`
	Owner        string   `yaml:"owner,omitempty" json:"owner,omitempty"`
	Name         string   `yaml:"name,omitempty" json:"name,omitempty"`
	Vendor       string   `yaml:"vendor,omitempty" json:"vendor,omitempty"`
	Version      string   `yaml:"version,omitempty" json:"version,omitempty"`
	SpecVersion  string   `yaml:"spec_version,omitempty" json:"spec_version,omitempty"`
	Capabilities []string `yaml:"capabilities,omitempty" json:"capabilities,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Query the running notification daemon",
	Long: `Query whoever owns the org.freedesktop.Notifications bus name and print
its server information and capabilities.

Works against noticad or any other spec-compliant notification daemon.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVarP(&statusOpts.format, "format", "f", "yaml",
		"Output format (yaml, json)")
}

func runStatus(cmd *cobra.Command, args []string) error {
	conn, err := godbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}

	status := DaemonStatus{}

	var owner string
	err = conn.BusObject().Call("org.freedesktop.DBus.GetNameOwner", 0,
		dbus.DBusBusName).Store(&owner)
	if err != nil {
		// Nobody owns the name; report not running rather than failing.
		return outputStatus(status)
	}
	status.Running = true
	status.Owner = owner

	obj := conn.Object(dbus.DBusBusName, godbus.ObjectPath(dbus.DBusPath))
	if err := obj.Call(dbus.DBusInterface+".GetServerInformation", 0).Store(
		&status.Name, &status.Vendor, &status.Version, &status.SpecVersion); err != nil {
		logger.Warn("failed to query server information", "error", err)
	}
	if err := obj.Call(dbus.DBusInterface+".GetCapabilities", 0).Store(
		&status.Capabilities); err != nil {
		logger.Warn("failed to query capabilities", "error", err)
	}

	return outputStatus(status)
}

// outputStatus writes the status in the requested format.
func outputStatus(status DaemonStatus) error {
	switch strings.ToLower(statusOpts.format) {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	default:
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(status)
	}
}
