package connect_test

import (
	"testing"
	"time"

	"github.com/digirioh/hub/pkg/connect"

	"gotest.tools/v3/assert"
)

func TestTimeSinceConfig(t *testing.T) {
	now := time.Now()

	assert.Equal(t, "", connect.TimeSinceConfig(time.Time{}))
	assert.Equal(t, "menos de 1 minuto", connect.TimeSinceConfig(now.Add(-30*time.Second)))
	assert.Equal(t, "1 minuto", connect.TimeSinceConfig(now.Add(-70*time.Second)))
	assert.Equal(t, "5 minutos", connect.TimeSinceConfig(now.Add(-5*time.Minute-time.Second)))
	assert.Equal(t, "1 hora", connect.TimeSinceConfig(now.Add(-90*time.Minute)))
	assert.Equal(t, "3 horas", connect.TimeSinceConfig(now.Add(-3*time.Hour-time.Minute)))
}
