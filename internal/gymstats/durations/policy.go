package durations

type Scope int

const (
	ScopeAll Scope = iota
	ScopeStale
)

func (s Scope) String() string {
	if s == ScopeStale {
		return "stale"
	}
	return "all"
}

// DefaultBatchSize limits how many stale workouts one scheduled run handles.
const DefaultBatchSize = 100

// Policy configures a recompute run.
type Policy struct {
	// Trigger names the run in logs and metrics.
	Trigger string
	Scope   Scope
	Bounds  Bounds
	Anomaly AnomalyPolicy
	// BatchSize caps the number of workouts per run, 0 means no cap.
	BatchSize int
	// OwnerID restricts the run to one user's workouts, 0 means all users.
	OwnerID int
}

// GeneralPolicy recomputes every workout with uncapped fences.
func GeneralPolicy(anomaly AnomalyPolicy) Policy {
	return Policy{
		Trigger: "on_demand",
		Scope:   ScopeAll,
		Bounds:  GeneralBounds,
		Anomaly: anomaly,
	}
}

// ScheduledPolicy recomputes the newest stale workouts with the 10s..600s
// fence clamp.
func ScheduledPolicy(anomaly AnomalyPolicy, batchSize int) Policy {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return Policy{
		Trigger:   "scheduled",
		Scope:     ScopeStale,
		Bounds:    ScheduledBounds,
		Anomaly:   anomaly,
		BatchSize: batchSize,
	}
}

func (p Policy) ForOwner(ownerID int) Policy {
	p.OwnerID = ownerID
	return p
}
