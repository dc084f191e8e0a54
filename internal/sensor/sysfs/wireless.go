// internal/sensor/sysfs/wireless.go
package sysfs

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tamzrod/linkstat/internal/sensor"
)

// Wireless implements sensor.API for a Linux wireless interface.
// Link state comes from /sys/class/net, signal level from
// /proc/net/wireless. sysfs carries no network name, so Name is filled
// only when an attribution file is configured (typically written by a
// privileged helper); the empty-name answer is the normal degraded path
// and exactly mirrors a withheld permission-gated attribute.
type Wireless struct {
	Interface     string
	Root          string // defaults to /sys/class/net
	WirelessStats string // defaults to /proc/net/wireless
	NameFile      string // optional attribution source
	Security      string // optional configured classification
}

const (
	defaultRoot          = "/sys/class/net"
	defaultWirelessStats = "/proc/net/wireless"
)

func (w *Wireless) root() string {
	if w.Root != "" {
		return w.Root
	}
	return defaultRoot
}

func (w *Wireless) stats() string {
	if w.WirelessStats != "" {
		return w.WirelessStats
	}
	return defaultWirelessStats
}

// Query implements sensor.API. Synchronous, one sysfs read set per call.
func (w *Wireless) Query() (sensor.Association, error) {
	if w.Interface == "" {
		return sensor.Association{}, fmt.Errorf("%w: interface not configured", sensor.ErrUnavailable)
	}

	base := filepath.Join(w.root(), w.Interface)
	oper, err := os.ReadFile(filepath.Join(base, "operstate"))
	if err != nil {
		return sensor.Association{}, fmt.Errorf("%w: %s", sensor.ErrUnavailable, w.Interface)
	}

	// Administratively down reads as powered off.
	if strings.TrimSpace(string(oper)) == "down" {
		return sensor.Association{PowerOn: false}, nil
	}

	assoc := sensor.Association{
		PowerOn:        true,
		Classification: w.Security,
	}

	if carrier, err := os.ReadFile(filepath.Join(base, "carrier")); err == nil {
		if strings.TrimSpace(string(carrier)) != "1" {
			// Powered but not associated: no name, no signal.
			return assoc, nil
		}
	}

	assoc.Name = w.readName()
	if level, ok := signalFor(w.stats(), w.Interface); ok {
		assoc.Signal = level
		assoc.HasSignal = true
	}
	return assoc, nil
}

// readName is best-effort: any read failure reads as "withheld".
func (w *Wireless) readName() string {
	if w.NameFile == "" {
		return ""
	}
	data, err := os.ReadFile(w.NameFile)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// ProbeNameAccess reports whether the attribution file is readable.
// This is the process's one privileged access request: the caller feeds
// the outcome to the permission tracker. granted=false denied=false
// means indeterminate (file absent, state not yet settled).
func ProbeNameAccess(path string) (granted, denied bool) {
	if path == "" {
		return false, false
	}
	_, err := os.ReadFile(path)
	switch {
	case err == nil:
		return true, false
	case os.IsPermission(err):
		return false, true
	default:
		return false, false
	}
}

// signalFor extracts the level column for one interface from a
// /proc/net/wireless style table. Level is dBm with a trailing dot.
func signalFor(statsPath, iface string) (float64, bool) {
	data, err := os.ReadFile(statsPath)
	if err != nil {
		return 0, false
	}
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		if strings.TrimSuffix(fields[0], ":") != iface {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSuffix(fields[3], "."), 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}
