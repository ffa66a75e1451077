package bar

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultPowerSupplyRoot is where the kernel exposes batteries and adapters.
const DefaultPowerSupplyRoot = "/sys/class/power_supply"

// ErrNoPowerReading is returned when a supply exposes neither power_now nor
// the current/voltage pair.
var ErrNoPowerReading = errors.New("no power reading")

// PowerSupply reads the instantaneous draw of one power_supply device.
type PowerSupply struct {
	Dir string
}

// NewPowerSupply returns the supply called name under root.
func NewPowerSupply(root, name string) PowerSupply {
	if root == "" {
		root = DefaultPowerSupplyRoot
	}
	return PowerSupply{Dir: filepath.Join(root, name)}
}

// Watts returns the current draw. power_now is in microwatts; when it is
// absent the draw is current_now (µA) times voltage_now (µV).
func (p PowerSupply) Watts() (float64, error) {
	if uw, err := p.read("power_now"); err == nil {
		return uw / 1e6, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return 0, err
	}

	ua, err := p.read("current_now")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, ErrNoPowerReading
		}
		return 0, err
	}
	uv, err := p.read("voltage_now")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, ErrNoPowerReading
		}
		return 0, err
	}
	return ua * uv / 1e12, nil
}

// Charging reports whether the supply's status is "Charging". A supply
// without a status file, such as an AC adapter, is never charging.
func (p PowerSupply) Charging() (bool, error) {
	data, err := os.ReadFile(filepath.Join(p.Dir, "status"))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(string(data)) == "Charging", nil
}

func (p PowerSupply) read(name string) (float64, error) {
	data, err := os.ReadFile(filepath.Join(p.Dir, name))
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	// Some drivers report discharge as a negative value.
	if v < 0 {
		v = -v
	}
	return v, nil
}
