package mode

// Mode is the discovery strategy.
type Mode string

// Search mode constants.
const (
	// Text filters listings by a free-text query.
	Text Mode = "text"
	// Proximity ranks listings by distance from a landmark.
	Proximity Mode = "proximity"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Text || m == Proximity
}
