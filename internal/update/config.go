package update

import (
	"os"
	"strconv"
	"strings"
)

type RuntimeConfig struct {
	DesktopNotifications bool
	DataDir              string
	PopupSeconds         int
	HistoryLimit         int
	QueueSize            int
	DrainMillis          int
	TickMillis           int
	RetentionDays        int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DesktopNotifications: false,
		PopupSeconds:         10,
		HistoryLimit:         50,
		QueueSize:            64,
		DrainMillis:          250,
		TickMillis:           1000,
		RetentionDays:        90,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvBool("REMINDD_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v := strings.TrimSpace(os.Getenv("REMINDD_DATA_DIR")); v != "" {
		cfg.DataDir = v
	}
	if v, ok := getEnvInt("REMINDD_POPUP_SECONDS"); ok && v > 0 {
		cfg.PopupSeconds = v
	}
	if v, ok := getEnvInt("REMINDD_HISTORY_LIMIT"); ok && v > 0 {
		cfg.HistoryLimit = v
	}
	if v, ok := getEnvInt("REMINDD_QUEUE_SIZE"); ok && v > 0 {
		cfg.QueueSize = v
	}
	if v, ok := getEnvInt("REMINDD_DRAIN_MILLIS"); ok && v > 0 {
		cfg.DrainMillis = v
	}
	if v, ok := getEnvInt("REMINDD_TICK_MILLIS"); ok && v > 0 {
		cfg.TickMillis = v
	}
	if v, ok := getEnvInt("REMINDD_HISTORY_RETENTION_DAYS"); ok && v > 0 {
		cfg.RetentionDays = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
