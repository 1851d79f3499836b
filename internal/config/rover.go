// Package config provides environment defaults for go-rover commands.
package config

import (
	"os"
	"strconv"
)

// Default rover configuration.
const (
	DefaultSerialPort = "/dev/ttyUSB0"
	DefaultBaudRate   = 9600
	DefaultCamera     = 0
	DefaultWebPort    = "8080"
)

// SerialPort returns the actuator port from ROVER_PORT.
// Falls back to the provided default if not set.
// A ws:// or wss:// URL selects the websocket transport.
func SerialPort(defaultPort string) string {
	if p := os.Getenv("ROVER_PORT"); p != "" {
		return p
	}
	return defaultPort
}

// BaudRate returns the serial baud rate from ROVER_BAUD or the default.
func BaudRate(defaultBaud int) int {
	return envInt("ROVER_BAUD", defaultBaud)
}

// CameraDevice returns the capture device index from ROVER_CAMERA or the default.
func CameraDevice(defaultDevice int) int {
	return envInt("ROVER_CAMERA", defaultDevice)
}

// WebPort returns the dashboard port from ROVER_WEB_PORT or the default.
func WebPort(defaultPort string) string {
	if p := os.Getenv("ROVER_WEB_PORT"); p != "" {
		return p
	}
	return defaultPort
}

// WebRequested reports whether ROVER_WEB_PORT is set, which turns the
// dashboard on without the -web flag.
func WebRequested() bool {
	return os.Getenv("ROVER_WEB_PORT") != ""
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
