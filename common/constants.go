package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TPS is the fixed simulation rate; all frame counts assume it.
	TPS = 60
)

// Frames converts seconds to whole simulation ticks, never less than one.
func Frames(seconds float64) int {
	n := int(seconds*TPS + 0.5)
	if n < 1 {
		return 1
	}
	return n
}
