package attractor

import (
	"go.uber.org/zap"

	"github.com/Faultbox/attractor-viewer/internal/logger"
)

// DivergenceMask reports, per trajectory index, whether the second trajectory
// is farther than threshold from the first. Once the two paths run within the
// threshold of each other the second one adds nothing visible and is skipped.
//
// Both trajectories are expected to have the same length. If they do not, the
// mask has the length of second and every index past the end of first is
// marked divergent.
func DivergenceMask(first, second Trajectory, threshold float32) []bool {
	if len(first) != len(second) {
		logger.Warn("trajectory lengths differ, divergence mask follows the second",
			zap.Int("first", len(first)),
			zap.Int("second", len(second)),
		)
	}

	mask := make([]bool, len(second))
	for i := range second {
		if i >= len(first) {
			mask[i] = true
			continue
		}
		mask[i] = first[i].Sub(second[i]).Len() > threshold
	}
	return mask
}
