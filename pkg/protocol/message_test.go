package protocol

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewMessage(t *testing.T) {
	tests := []struct {
		name    string
		msgType MessageType
		data    interface{}
		wantErr bool
	}{
		{
			name:    "state message",
			msgType: TypeState,
			data:    StateData{Session: "s1", Area: 5000},
		},
		{
			name:    "nil data",
			msgType: TypeLog,
			data:    nil,
		},
		{
			name:    "unmarshalable data",
			msgType: TypeLog,
			data:    make(chan int),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := NewMessage(tt.msgType, tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewMessage() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if msg.Type != tt.msgType {
				t.Errorf("NewMessage() type = %v, want %v", msg.Type, tt.msgType)
			}
			if msg.Timestamp == 0 {
				t.Error("NewMessage() timestamp should be set")
			}
		})
	}
}

func TestStateMessage(t *testing.T) {
	msg, err := NewStateMessage(StateData{
		Session:  "abc",
		Frame:    7,
		Area:     9801,
		Centroid: &Point{X: 99, Y: 239},
		Zone:     "left",
		Commands: []string{"forward", "left"},
	})
	if err != nil {
		t.Fatalf("NewStateMessage() error = %v", err)
	}

	raw, err := msg.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}

	var parsed Message
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if parsed.Type != TypeState {
		t.Fatalf("Type = %q, want %q", parsed.Type, TypeState)
	}
	var state StateData
	if err := json.Unmarshal(parsed.Data, &state); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}

	if state.Centroid == nil || state.Centroid.X != 99 {
		t.Errorf("Centroid = %+v, want x=99", state.Centroid)
	}
	if len(state.Commands) != 2 || state.Commands[0] != "forward" {
		t.Errorf("Commands = %v", state.Commands)
	}
}

func TestStateMessage_EmptyCommandsEncodeAsArray(t *testing.T) {
	msg, err := NewStateMessage(StateData{Session: "abc"})
	if err != nil {
		t.Fatalf("NewStateMessage() error = %v", err)
	}
	if !strings.Contains(string(msg.Data), `"commands":[]`) {
		t.Errorf("data = %s, want commands:[]", msg.Data)
	}
	if strings.Contains(string(msg.Data), "centroid") {
		t.Errorf("data = %s, centroid should be omitted", msg.Data)
	}
}

func TestCommandMessage(t *testing.T) {
	msg, err := NewCommandMessage("abc", 3, "stop")
	if err != nil {
		t.Fatalf("NewCommandMessage() error = %v", err)
	}
	if msg.Type != TypeCommand {
		t.Errorf("Type = %q, want %q", msg.Type, TypeCommand)
	}
	var cmd CommandData
	if err := json.Unmarshal(msg.Data, &cmd); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if cmd.Command != "stop" || cmd.Frame != 3 || cmd.Session != "abc" {
		t.Errorf("CommandData = %+v", cmd)
	}
}
