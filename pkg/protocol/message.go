// Package protocol defines the JSON messages pushed to dashboard clients.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"
)

// MessageType identifies the type of WebSocket message
type MessageType string

const (
	TypeState   MessageType = "state"   // Per-frame tracking state
	TypeCommand MessageType = "command" // A command sent to the rover
	TypeLog     MessageType = "log"     // Operator-facing log line
)

// Message is the base wrapper for all WebSocket messages
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(msgType MessageType, data interface{}) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// Bytes returns the JSON-encoded message
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// Point is a pixel position.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// StateData is the tracking state after one frame.
type StateData struct {
	Session      string   `json:"session"`
	Phase        string   `json:"phase"`
	Frame        uint64   `json:"frame"`
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	Candidates   int      `json:"candidates"`
	Area         float64  `json:"area"`
	PreviousArea float64  `json:"previous_area"`
	Centroid     *Point   `json:"centroid,omitempty"`
	Zone         string   `json:"zone,omitempty"` // left, center, right
	Commands     []string `json:"commands"`
	Simulate     bool     `json:"simulate"`
}

// CommandData records one command handed to the link.
type CommandData struct {
	Session string `json:"session"`
	Frame   uint64 `json:"frame"`
	Command string `json:"command"`
}

// LogData is a single dashboard log line.
type LogData struct {
	Level   string `json:"level"` // info, warn, error, command
	Message string `json:"message"`
}
