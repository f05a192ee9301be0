package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPadLine(t *testing.T) {
	assert.Equal(t, "A:1611,B:402\r\n", FormatPadLine(1611, 402))
	assert.Equal(t, "A:0,B:0\r\n", FormatPadLine(0, 0))
	assert.Equal(t, "A:3300,B:3300\r\n", FormatPadLine(3300, 3300))
}

func TestFormatScopeLine(t *testing.T) {
	assert.Equal(t, "1611\r\n", FormatScopeLine(1611))
	assert.Equal(t, "0\r\n", FormatScopeLine(0))
}
