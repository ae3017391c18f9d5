package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded means text search works but proximity search cannot resolve landmarks.
	Degraded Status = "degraded"
	// Unhealthy means the listing store is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckEmpty indicates a component with no data loaded.
	CheckEmpty CheckResult = "empty"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db        DBPinger
	landmarks LandmarkCounter
}

// New creates a Service. landmarks can be nil.
func New(db DBPinger, landmarks LandmarkCounter) *Service {
	return &Service{db: db, landmarks: landmarks}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 2)
	status := Healthy

	if s.landmarks != nil {
		if s.landmarks.Len() > 0 {
			checks["landmarks"] = CheckOK
		} else {
			checks["landmarks"] = CheckEmpty
			status = Degraded
		}
	}

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
		status = Unhealthy
	} else {
		checks["database"] = CheckOK
	}

	return Report{Status: status, Checks: checks}
}
