package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	godbus "github.com/godbus/dbus/v5"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/notica/notica/internal/dbus"
	"github.com/notica/notica/internal/model"
)

var sendOpts struct {
	app       string
	urgency   string
	icon      string
	category  string
	soundFile string
	timeout   int
	replaces  uint32
	transient bool
	resident  bool
	actions   []string
	wait      bool
}

var sendCmd = &cobra.Command{
	Use:   "send SUMMARY [BODY]",
	Short: "Send a notification over D-Bus",
	Long: `Send a notification to the running notification daemon.

Examples:
  # Simple notification
  notica send "Build finished"

  # With body, urgency, and actions
  notica send "Incoming call" "Alice" --urgency critical \
    --action accept="Accept" --action decline="Decline"

  # Replace a previous notification
  notica send "Progress" "50%" --replaces 3

  # Block until the banner leaves the screen and report why
  notica send "Hello" --wait`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().StringVar(&sendOpts.app, "app", "notica",
		"Application name to send as")
	sendCmd.Flags().StringVarP(&sendOpts.urgency, "urgency", "u", "normal",
		"Urgency level (low, normal, critical)")
	sendCmd.Flags().StringVar(&sendOpts.icon, "icon", "",
		"Icon name or path")
	sendCmd.Flags().StringVar(&sendOpts.category, "category", "",
		"Notification category hint")
	sendCmd.Flags().StringVar(&sendOpts.soundFile, "sound-file", "",
		"Sound file hint to play instead of the configured urgency sound")
	sendCmd.Flags().IntVarP(&sendOpts.timeout, "timeout", "t", -1,
		"Expire timeout in milliseconds (-1 = daemon default, 0 = never)")
	sendCmd.Flags().Uint32Var(&sendOpts.replaces, "replaces", 0,
		"ID of a notification to replace")
	sendCmd.Flags().BoolVar(&sendOpts.transient, "transient", false,
		"Mark the notification transient (never stacked)")
	sendCmd.Flags().BoolVar(&sendOpts.resident, "resident", false,
		"Keep the notification after an action is invoked")
	sendCmd.Flags().StringArrayVar(&sendOpts.actions, "action", nil,
		"Action as key=label (repeatable)")
	sendCmd.Flags().BoolVarP(&sendOpts.wait, "wait", "w", false,
		"Wait for the banner to close and report the outcome")
}

// sendResult is the YAML document printed by --wait.
type sendResult struct {
	ID     uint32 `yaml:"id"`
	Event  string `yaml:"event"`
	Reason string `yaml:"reason,omitempty"`
	Action string `yaml:"action,omitempty"`
	After  string `yaml:"after"`
}

func runSend(cmd *cobra.Command, args []string) error {
	summary := args[0]
	body := ""
	if len(args) > 1 {
		body = args[1]
	}

	urgency, err := parseUrgency(sendOpts.urgency)
	if err != nil {
		return err
	}

	actions, err := parseActions(sendOpts.actions)
	if err != nil {
		return err
	}

	hints := map[string]godbus.Variant{
		"urgency": godbus.MakeVariant(byte(urgency)),
	}
	if sendOpts.category != "" {
		hints["category"] = godbus.MakeVariant(sendOpts.category)
	}
	if sendOpts.soundFile != "" {
		hints["sound-file"] = godbus.MakeVariant(sendOpts.soundFile)
	}
	if sendOpts.transient {
		hints["transient"] = godbus.MakeVariant(true)
	}
	if sendOpts.resident {
		hints["resident"] = godbus.MakeVariant(true)
	}

	conn, err := godbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}

	start := time.Now()
	obj := conn.Object(dbus.DBusBusName, godbus.ObjectPath(dbus.DBusPath))
	call := obj.Call(dbus.DBusInterface+".Notify", 0,
		sendOpts.app, sendOpts.replaces, sendOpts.icon, summary, body,
		actions, hints, int32(sendOpts.timeout))

	var id uint32
	if err := call.Store(&id); err != nil {
		return fmt.Errorf("notify call failed: %w", err)
	}

	if !sendOpts.wait {
		fmt.Println(id)
		return nil
	}
	return waitForOutcome(conn, id, start)
}

// waitForOutcome blocks until the daemon reports the notification closed or
// an action invoked, then prints the outcome as YAML.
func waitForOutcome(conn *godbus.Conn, id uint32, start time.Time) error {
	if err := conn.AddMatchSignal(
		godbus.WithMatchInterface(dbus.DBusInterface),
		godbus.WithMatchObjectPath(godbus.ObjectPath(dbus.DBusPath)),
	); err != nil {
		return fmt.Errorf("failed to subscribe to signals: %w", err)
	}

	sigCh := make(chan *godbus.Signal, 8)
	conn.Signal(sigCh)

	for sig := range sigCh {
		if len(sig.Body) < 2 {
			continue
		}
		sigID, ok := sig.Body[0].(uint32)
		if !ok || sigID != id {
			continue
		}

		result := sendResult{
			ID:    id,
			After: time.Since(start).Round(time.Millisecond).String(),
		}
		switch sig.Name {
		case dbus.DBusInterface + ".NotificationClosed":
			reason, _ := sig.Body[1].(uint32)
			result.Event = "closed"
			result.Reason = dbus.CloseReason(reason).String()
		case dbus.DBusInterface + ".ActionInvoked":
			key, _ := sig.Body[1].(string)
			result.Event = "action"
			result.Action = key
		default:
			continue
		}

		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(result)
	}
	return fmt.Errorf("signal stream closed before notification %d resolved", id)
}

// parseUrgency accepts the urgency names or raw levels 0-2.
func parseUrgency(s string) (int, error) {
	switch strings.ToLower(s) {
	case "low", "0":
		return model.UrgencyLow, nil
	case "normal", "1", "":
		return model.UrgencyNormal, nil
	case "critical", "2":
		return model.UrgencyCritical, nil
	default:
		return 0, fmt.Errorf("invalid urgency %q (want low, normal, or critical)", s)
	}
}

// parseActions converts key=label pairs into the flat wire list.
func parseActions(pairs []string) ([]string, error) {
	actions := make([]string, 0, len(pairs)*2)
	for _, pair := range pairs {
		key, label, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid action %q (want key=label)", pair)
		}
		if label == "" {
			label = key
		}
		actions = append(actions, key, label)
	}
	return actions, nil
}
