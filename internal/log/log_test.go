package log

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(fn func()) string {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	fn()
	return buf.String()
}

func TestInfoFormatsKeyValues(t *testing.T) {
	out := capture(func() {
		Info("expanding rules", "rule_count", 3, "span", "2024-2025")
	})
	assert.Contains(t, out, "[INFO] expanding rules rule_count=3 span=2024-2025")
}

func TestErrorPrependsErr(t *testing.T) {
	out := capture(func() {
		Error("fetch failed", errors.New("boom"), "id", "work")
	})
	assert.Contains(t, out, "[ERROR] fetch failed err=boom id=work")
}

func TestDebugSuppressedAtInfoLevel(t *testing.T) {
	SetLevel(LevelInfo)
	out := capture(func() {
		Debug("noisy detail")
	})
	assert.Empty(t, out)
}

func TestUnpairedValueDropped(t *testing.T) {
	out := capture(func() {
		Info("msg", "key", "value", "dangling")
	})
	assert.Contains(t, out, "key=value")
	assert.NotContains(t, out, "dangling")
}
