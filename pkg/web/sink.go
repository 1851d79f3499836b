package web

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/teslashibe/go-rover/pkg/protocol"
	"github.com/teslashibe/go-rover/pkg/tracking"
)

// Show publishes one tracking iteration. It runs on the tracker goroutine,
// so everything here is non-blocking: slow clients lose frames.
func (s *Server) Show(frame gocv.Mat, res tracking.Result) {
	s.stateMu.Lock()
	frameNo := s.state.Frame + 1
	s.state = stateFromResult(res)
	s.state.Session = s.opts.Session
	s.state.Simulate = s.opts.Simulate
	s.state.Phase = tracking.PhaseRunning.String()
	s.state.Frame = frameNo
	state := s.state
	s.stateMu.Unlock()

	s.broadcastState(state)

	for _, cmd := range res.Commands {
		s.broadcastCommand(frameNo, cmd.String())
		s.AddLog("command", fmt.Sprintf("frame %d: %s", frameNo, cmd))
	}

	if s.cameraHub.ClientCount() == 0 || frame.Empty() {
		return
	}
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, frame)
	if err != nil {
		s.logger.Warn("jpeg encode", "error", err)
		return
	}
	data := append([]byte(nil), buf.GetBytes()...)
	buf.Close()
	s.cameraHub.BroadcastBinary(data)
}

// broadcastCommand pushes one emitted command to status clients, in emit order.
func (s *Server) broadcastCommand(frameNo uint64, cmd string) {
	msg, err := protocol.NewCommandMessage(s.opts.Session, frameNo, cmd)
	if err != nil {
		s.logger.Warn("encode command message", "error", err)
		return
	}
	s.statusHub.BroadcastMessage(msg)
}

func stateFromResult(res tracking.Result) protocol.StateData {
	d := protocol.StateData{
		Width:        res.Width,
		Height:       res.Height,
		Candidates:   res.Candidates,
		Area:         res.State.Area,
		PreviousArea: res.State.PreviousArea,
		Commands:     make([]string, 0, len(res.Commands)),
	}
	if c := res.State.Centroid; c != nil {
		d.Centroid = &protocol.Point{X: c.X, Y: c.Y}
		d.Zone = string(tracking.ZoneOf(float64(c.X), res.Thresholds))
	}
	for _, cmd := range res.Commands {
		d.Commands = append(d.Commands, cmd.String())
	}
	return d
}
