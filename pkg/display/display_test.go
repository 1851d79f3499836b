package display

import (
	"testing"

	"gocv.io/x/gocv"

	"github.com/teslashibe/go-rover/pkg/robot"
	"github.com/teslashibe/go-rover/pkg/tracking"
)

func TestMultiFanOut(t *testing.T) {
	var order []string
	record := func(name string) tracking.Sink {
		return SinkFunc(func(_ gocv.Mat, res tracking.Result) {
			if len(res.Commands) != 1 || res.Commands[0] != robot.Stop {
				t.Errorf("%s got commands %v", name, res.Commands)
			}
			order = append(order, name)
		})
	}

	m := Multi{record("a"), nil, record("b")}

	frame := gocv.NewMat()
	defer frame.Close()
	m.Show(frame, tracking.Result{Commands: []robot.Command{robot.Stop}})

	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("order = %v, want [a b]", order)
	}
}

func TestIsStopKey(t *testing.T) {
	tests := []struct {
		key  int
		want bool
	}{
		{'q', true},
		{'Q', true},
		{27, true},
		{-1, false},
		{'w', false},
		{' ', false},
	}
	for _, tt := range tests {
		if got := IsStopKey(tt.key); got != tt.want {
			t.Errorf("IsStopKey(%d) = %v, want %v", tt.key, got, tt.want)
		}
	}
}
