package hardware

import (
	"context"
	"net"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// interfaceIPv4 returns the first IPv4 address bound to iface.
func interfaceIPv4(iface string) (string, error) {
	ifi, err := net.InterfaceByName(iface)
	if err != nil {
		return "", errors.Wrapf(err, "interface %s", iface)
	}
	addrs, err := ifi.Addrs()
	if err != nil {
		return "", errors.Wrapf(err, "addresses of %s", iface)
	}
	for _, a := range addrs {
		if ipn, ok := a.(*net.IPNet); ok {
			if ip4 := ipn.IP.To4(); ip4 != nil {
				return ip4.String(), nil
			}
		}
	}
	return "", errors.Errorf("interface %s has no IPv4 address", iface)
}

// runShutdown executes the configured power-off command.
func runShutdown(ctx context.Context, command []string) error {
	if len(command) == 0 {
		return errors.New("no shutdown command configured")
	}
	out, err := exec.CommandContext(ctx, command[0], command[1:]...).CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "%s: %s", strings.Join(command, " "), strings.TrimSpace(string(out)))
	}
	return nil
}
