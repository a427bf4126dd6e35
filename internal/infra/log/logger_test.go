package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := New("dev", &buf)
	logger.Debug().Msg("debug line")
	if !strings.Contains(buf.String(), "debug line") {
		t.Fatalf("ожидали debug сообщение в dev окружении")
	}

	buf.Reset()
	logger = New("prod", &buf)
	logger.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug не должен попадать в лог вне dev: %q", buf.String())
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := Component(New("prod", &buf), "matchcache")
	logger.Info().Msg("hello")
	if !strings.Contains(buf.String(), `"component":"matchcache"`) {
		t.Fatalf("ожидали поле component, получили %q", buf.String())
	}
}
