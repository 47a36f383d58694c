package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{"debug", true, true},
		{"INFO", false, true},
		{"warn", false, false},
		{"nonsense", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(tt.level, &buf)

			logger.Debug().Msg("debug line")
			logger.Info().Msg("info line")

			require.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("debug line")))
			require.Equal(t, tt.wantInfo, bytes.Contains(buf.Bytes(), []byte("info line")))
		})
	}
}

func TestNewFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New("info", &buf)
	logger.Info().Str("path", "out.xlsx").Msg("wrote workbook")

	require.Contains(t, buf.String(), "INF")
	require.Contains(t, buf.String(), "wrote workbook")
	require.Contains(t, buf.String(), "path=out.xlsx")
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Error().Msg("dropped")
}
