package config

import "testing"

func TestEnvDefaults(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int
	}{
		{"unset", "", DefaultBaudRate},
		{"set", "115200", 115200},
		{"garbage falls back", "fast", DefaultBaudRate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ROVER_BAUD", tt.env)
			if got := BaudRate(DefaultBaudRate); got != tt.want {
				t.Errorf("BaudRate() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWebPort(t *testing.T) {
	t.Setenv("ROVER_WEB_PORT", "")
	if WebRequested() {
		t.Error("WebRequested() with empty env should be false")
	}
	if got := WebPort(DefaultWebPort); got != DefaultWebPort {
		t.Errorf("WebPort() = %q, want %q", got, DefaultWebPort)
	}

	t.Setenv("ROVER_WEB_PORT", "9090")
	if !WebRequested() {
		t.Error("WebRequested() should be true when ROVER_WEB_PORT is set")
	}
	if got := WebPort(DefaultWebPort); got != "9090" {
		t.Errorf("WebPort() = %q, want 9090", got)
	}
}
