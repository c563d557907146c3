package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{name: "quiet", verbose: false, wantDebug: false},
		{name: "verbose", verbose: true, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(&buf, tt.verbose)

			logger.Debug("catalog loaded", "services", 4)
			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("catalog loaded")))

			logger.Warn("catalog is corrupt")
			assert.Contains(t, buf.String(), "catalog is corrupt")
			assert.Contains(t, buf.String(), "dk")
		})
	}
}
