// Package action holds the side-effecting leaves the guard invokes: showing
// a notification to the user and forcing the machine off. Both are single
// attempts, no retries.
package action

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// Notifier displays a message to the user. The guard treats the call as
// synchronous and reads the wall clock before and after it, so a blocking
// implementation is acceptable.
type Notifier interface {
	Notify(title, body string) error
}

// DesktopNotifier sends notifications over the session bus via
// org.freedesktop.Notifications. Notifications are sent with critical
// urgency and no expiry so they stay up until dismissed.
type DesktopNotifier struct {
	appName string
}

// NewDesktopNotifier returns a notifier identifying itself as appName.
func NewDesktopNotifier(appName string) *DesktopNotifier {
	return &DesktopNotifier{appName: appName}
}

func (n *DesktopNotifier) Notify(title, body string) error {
	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("connect session bus: %w", err)
	}

	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		n.appName,        // app_name
		uint32(0),        // replaces_id
		"dialog-warning", // app_icon
		title,            // summary
		body,             // body
		[]string{},       // actions
		map[string]dbus.Variant{
			"urgency": dbus.MakeVariant(byte(2)), // critical: not dismissed by timeout
		},
		int32(0), // expire_timeout: never
	)
	if call.Err != nil {
		return fmt.Errorf("send notification: %w", call.Err)
	}
	return nil
}
