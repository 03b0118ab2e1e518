package seek

// ReadyState mirrors the HTML media readiness levels.
type ReadyState int

const (
	// HaveNothing means no information about the media is available.
	HaveNothing ReadyState = iota

	// HaveMetadata means duration and dimensions are known.
	HaveMetadata

	// HaveCurrentData means data for the current position is available.
	HaveCurrentData

	// HaveFutureData means data beyond the current position is available.
	HaveFutureData

	// HaveEnoughData means playback can proceed without stalling.
	HaveEnoughData
)

// String returns the state name.
func (s ReadyState) String() string {
	switch s {
	case HaveNothing:
		return "nothing"
	case HaveMetadata:
		return "metadata"
	case HaveCurrentData:
		return "current-data"
	case HaveFutureData:
		return "future-data"
	case HaveEnoughData:
		return "enough-data"
	default:
		return "unknown"
	}
}

// Media is a seekable playback element.
type Media interface {
	CurrentTime() float64
	SetCurrentTime(t float64)
	Paused() bool
	ReadyState() ReadyState
	Duration() float64
}

// SelectTarget picks the element a seek should apply to:
//
//  1. the first element that is playing with current data loaded
//  2. else the first element with current data loaded and a known duration
//  3. else the first element
//
// It returns nil for an empty pool.
func SelectTarget(pool []Media) Media {
	for _, m := range pool {
		if !m.Paused() && m.ReadyState() >= HaveCurrentData {
			return m
		}
	}
	for _, m := range pool {
		if m.ReadyState() >= HaveCurrentData && m.Duration() > 0 {
			return m
		}
	}
	if len(pool) > 0 {
		return pool[0]
	}
	return nil
}

// Seek moves m by delta seconds and returns the new position.
func Seek(m Media, delta float64) float64 {
	pos := Apply(m.CurrentTime(), delta)
	m.SetCurrentTime(pos)
	return m.CurrentTime()
}
