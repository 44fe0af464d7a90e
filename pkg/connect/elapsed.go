package connect

import (
	"fmt"
	"time"
)

// TimeSinceConfig renders how long ago the provider console was
// changed, in the coarse buckets the mismatch remediation text uses.
// A zero timestamp renders as empty.
func TimeSinceConfig(configTimestamp time.Time) string {
	if configTimestamp.IsZero() {
		return ""
	}

	minutes := int(time.Since(configTimestamp).Minutes())

	if minutes < 1 {
		return "menos de 1 minuto"
	}

	if minutes == 1 {
		return "1 minuto"
	}

	if minutes < 60 {
		return fmt.Sprintf("%d minutos", minutes)
	}

	hours := minutes / 60

	if hours == 1 {
		return "1 hora"
	}

	return fmt.Sprintf("%d horas", hours)
}
