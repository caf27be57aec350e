package action

import (
	"fmt"
	"os/exec"

	"github.com/godbus/dbus/v5"
)

// Shutdown powers the machine off. The guard treats a successful call as
// terminal and stops ticking.
type Shutdown interface {
	Now() error
}

// SystemShutdown asks logind to power off via the system bus, falling back
// to systemctl when the bus call fails.
type SystemShutdown struct{}

func (SystemShutdown) Now() error {
	if err := powerOffViaLogind(); err == nil {
		return nil
	}
	if err := exec.Command("systemctl", "poweroff").Run(); err != nil {
		return fmt.Errorf("poweroff: %w", err)
	}
	return nil
}

func powerOffViaLogind() error {
	conn, err := dbus.SystemBus()
	if err != nil {
		return fmt.Errorf("connect system bus: %w", err)
	}
	obj := conn.Object("org.freedesktop.login1", "/org/freedesktop/login1")
	// false: do not prompt for interactive authorization.
	call := obj.Call("org.freedesktop.login1.Manager.PowerOff", 0, false)
	if call.Err != nil {
		return fmt.Errorf("logind PowerOff: %w", call.Err)
	}
	return nil
}
