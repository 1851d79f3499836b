package tracking

import "fmt"

// TuningParams holds the parameters an operator may adjust while the
// tracker runs. Nil fields keep their current value.
type TuningParams struct {
	TargetHue         *int     `json:"target_hue,omitempty"`
	HueTolerance      *int     `json:"hue_tolerance,omitempty"`
	LeftMargin        *float64 `json:"left_margin,omitempty"`
	RightMargin       *float64 `json:"right_margin,omitempty"`
	AreaStopThreshold *float64 `json:"area_stop_threshold,omitempty"`
	TargetFPS         *float64 `json:"target_fps,omitempty"`
}

// IsEmpty reports whether p changes nothing.
func (p TuningParams) IsEmpty() bool {
	return p.TargetHue == nil && p.HueTolerance == nil &&
		p.LeftMargin == nil && p.RightMargin == nil &&
		p.AreaStopThreshold == nil && p.TargetFPS == nil
}

// Apply returns cfg with the set fields of p replaced.
func (p TuningParams) Apply(cfg Config) Config {
	if p.TargetHue != nil {
		cfg.TargetHue = *p.TargetHue
	}
	if p.HueTolerance != nil {
		cfg.HueTolerance = *p.HueTolerance
	}
	if p.LeftMargin != nil {
		cfg.LeftMargin = *p.LeftMargin
	}
	if p.RightMargin != nil {
		cfg.RightMargin = *p.RightMargin
	}
	if p.AreaStopThreshold != nil {
		cfg.AreaStopThreshold = *p.AreaStopThreshold
	}
	if p.TargetFPS != nil {
		cfg.TargetFPS = *p.TargetFPS
	}
	return cfg
}

// Tuning returns the configuration the next iteration will use.
func (t *Tracker) Tuning() Config {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pipeline.Config()
}

// SetTuning applies p and returns the resulting configuration. The change
// takes effect from the next iteration; an iteration in progress finishes
// with the old values. An invalid result leaves the tracker unchanged.
func (t *Tracker) SetTuning(p TuningParams) (Config, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cfg := p.Apply(t.pipeline.Config())
	pipeline, err := NewPipeline(cfg)
	if err != nil {
		return t.pipeline.Config(), fmt.Errorf("tuning rejected: %w", err)
	}
	t.pipeline = pipeline

	t.logger.Info("tuning updated",
		"target_hue", cfg.TargetHue,
		"tolerance", cfg.HueTolerance,
		"left_margin", cfg.LeftMargin,
		"right_margin", cfg.RightMargin,
		"stop_area", cfg.AreaStopThreshold,
		"fps", cfg.TargetFPS)
	return cfg, nil
}
