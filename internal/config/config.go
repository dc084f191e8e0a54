// internal/config/config.go
package config

type Config struct {
	Resolver ResolverConfig `yaml:"resolver"`
}

type ResolverConfig struct {
	Wireless   WirelessConfig   `yaml:"wireless"`
	Thermal    []ThermalConfig  `yaml:"thermal"`
	Server     ServerConfig     `yaml:"server"`
	History    HistoryConfig    `yaml:"history"`
	Webhooks   []WebhookConfig  `yaml:"webhooks"`
	Permission PermissionConfig `yaml:"permission"`
}

// ---- WIRELESS ----

type WirelessConfig struct {
	Interface     string `yaml:"interface"`
	SysfsRoot     string `yaml:"sysfs_root"`
	WirelessStats string `yaml:"wireless_stats"`

	// NameFile is the privileged attribution source (optional).
	NameFile string `yaml:"name_file"`
	Security string `yaml:"security"`

	// Signal range in dBm; readings outside are clamped.
	SignalFloor *float64 `yaml:"signal_floor"`
	SignalCeil  *float64 `yaml:"signal_ceil"`

	PathWaitMs     int    `yaml:"path_wait_ms"`
	PollIntervalMs int    `yaml:"poll_interval_ms"`
	StatePath      string `yaml:"state_path"`

	// ClassPatterns identifies the wireless interface class by name.
	// Hardware-revision-specific; override on non-default hardware.
	ClassPatterns []string `yaml:"class_patterns"`
}

// ---- THERMAL ----

type ThermalConfig struct {
	ID         string   `yaml:"id"`
	Endpoint   string   `yaml:"endpoint"`
	UnitID     uint8    `yaml:"unit_id"`
	Register   uint16   `yaml:"register"`
	Scale      float64  `yaml:"scale"` // register units per degree
	TimeoutMs  int      `yaml:"timeout_ms"`
	IntervalMs int      `yaml:"interval_ms"`
	FloorC     *float64 `yaml:"floor_c"`
	CeilC      *float64 `yaml:"ceil_c"`
}

// ---- SURFACES ----

type ServerConfig struct {
	// ListenAddr empty means the HTTP surface stays off.
	ListenAddr string `yaml:"listen_addr"`
}

type HistoryConfig struct {
	// Path empty means runs are not persisted.
	Path string `yaml:"path"`
}

type WebhookConfig struct {
	URL     string            `yaml:"url"`
	Events  []string          `yaml:"events"`
	Headers map[string]string `yaml:"headers"`
}

// ---- PERMISSION ----

type PermissionConfig struct {
	RetriggerDelayMs int `yaml:"retrigger_delay_ms"`
}
