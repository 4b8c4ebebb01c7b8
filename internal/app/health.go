package app

// Per-source ingestion is considered degraded below this success rate.
const degradedSuccessRate = 50.0

// ComponentHealth describes one component's health check result.
type ComponentHealth struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// SourceHealth summarizes one source's ingestion health.
type SourceHealth struct {
	Degraded    bool    `json:"degraded"`
	SuccessRate float64 `json:"success_rate_percent"`
	LastError   string  `json:"last_error,omitempty"`
}

// HealthStatus is the on-demand health object exposed by the serving layer.
type HealthStatus struct {
	Status     string                  `json:"status"`
	Classifier ComponentHealth         `json:"classifier"`
	Smoothing  SmoothingHealth         `json:"smoothing"`
	Sources    map[string]SourceHealth `json:"sources"`
	LastScore  *float64                `json:"last_score,omitempty"`
}

// SmoothingHealth reports the smoother's lineage state.
type SmoothingHealth struct {
	Status     string   `json:"status"`
	HasHistory bool     `json:"has_history"`
	LastScore  *float64 `json:"last_score,omitempty"`
}

// Health assembles the system health summary: classifier availability,
// smoother lineage, and per-source degradation from the metrics tracker.
func (s *Service) Health() HealthStatus {
	health := HealthStatus{
		Status:     "healthy",
		Classifier: ComponentHealth{Status: "ok"},
		Smoothing:  SmoothingHealth{Status: "ok"},
		Sources:    make(map[string]SourceHealth),
	}

	if !s.classifier.Ready() {
		health.Classifier = ComponentHealth{Status: "error", Detail: "classifier not loaded"}
		health.Status = "degraded"
	}

	health.Smoothing.HasHistory = s.smoother.HasHistory()
	if last, ok := s.smoother.LastScore(); ok {
		health.Smoothing.LastScore = &last
		health.LastScore = &last
	}

	snap := s.tracker.Snapshot()
	for name, src := range snap.Sources {
		degraded := src.FetchCount > 0 && src.SuccessRate < degradedSuccessRate
		health.Sources[name] = SourceHealth{
			Degraded:    degraded,
			SuccessRate: src.SuccessRate,
			LastError:   src.LastError,
		}
		if degraded {
			health.Status = "degraded"
		}
	}

	return health
}
