package entities

import "time"

// Phase is derived from ViewState; it is never stored.
type Phase string

const (
	PhaseCold              Phase = "cold"
	PhaseLoading           Phase = "loading"
	PhaseReadyFresh        Phase = "ready_fresh"
	PhaseReadyStaleOffline Phase = "ready_stale_offline"
	PhaseRefreshing        Phase = "refreshing"
	PhaseFailed            Phase = "failed"
)

// ViewState es el estado observable que el controlador publica al Presenter
type ViewState struct {
	Snapshot      *Snapshot  `json:"snapshot,omitempty"`
	LastUpdatedAt *time.Time `json:"last_updated_at,omitempty"`
	IsLoading     bool       `json:"is_loading"`
	IsRefreshing  bool       `json:"is_refreshing"`
	IsOffline     bool       `json:"is_offline"`
	ErrorMessage  string     `json:"error_message,omitempty"`
}

// HasData reports whether there are quotes to show.
func (v ViewState) HasData() bool {
	return v.Snapshot.Len() > 0
}

// Phase derives the controller state machine position from the view fields.
func (v ViewState) Phase() Phase {
	switch {
	case v.IsRefreshing:
		return PhaseRefreshing
	case v.IsLoading:
		return PhaseLoading
	case v.HasData() && v.IsOffline:
		return PhaseReadyStaleOffline
	case v.HasData():
		return PhaseReadyFresh
	case v.ErrorMessage != "" || v.IsOffline:
		return PhaseFailed
	case v.Snapshot != nil:
		// a successful fetch that returned no complete quotes
		return PhaseReadyFresh
	default:
		return PhaseCold
	}
}

// Clone copies the state so subscribers never share controller memory.
func (v ViewState) Clone() ViewState {
	out := v
	out.Snapshot = v.Snapshot.Clone()
	if v.LastUpdatedAt != nil {
		t := *v.LastUpdatedAt
		out.LastUpdatedAt = &t
	}
	return out
}
