package domain

// TriageConfig is the singleton runtime knob set for the decision engine.
// It is read fresh at decision time, so administrative updates take effect
// on the next triage run rather than retroactively.
type TriageConfig struct {
	AutoCloseEnabled    bool
	ConfidenceThreshold float64
	SLAHours            int
}

// DefaultTriageConfig returns the values used when nothing has been persisted.
func DefaultTriageConfig() TriageConfig {
	return TriageConfig{
		AutoCloseEnabled:    true,
		ConfidenceThreshold: 0.75,
		SLAHours:            24,
	}
}
