package surprise

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	updateTime time.Duration
	drawTime   time.Duration
	nodeCount  int
	drawCount  int
}

// debugLogEvery throttles debug output to once per N frames.
const debugLogEvery = 60

// debugLog prints timing stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug || s.frame%debugLogEvery != 0 {
		return
	}
	if stats.drawTime > 0 {
		_, _ = fmt.Fprintf(os.Stderr, "[surprise] draw: %v | draws: %d\n", stats.drawTime, stats.drawCount)
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[surprise] frame %d update: %v | nodes: %d | lights: %d\n",
		s.frame, stats.updateTime, stats.nodeCount, len(s.lights.lights))
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("surprise debug: %s on disposed node %q", op, n.Name))
	}
}

func countNodes(n *Node) int {
	c := 1
	for _, child := range n.children {
		c += countNodes(child)
	}
	return c
}
