package surprise

// pointerSample is one queued synthetic pointer state in screen space.
type pointerSample struct {
	x, y float64
	down bool
}

// InjectPress queues a left-button press at (x, y) for the next frame.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, pointerSample{x: x, y: y, down: true})
}

// InjectRelease queues a left-button release at (x, y).
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, pointerSample{x: x, y: y})
}

// InjectHover moves the pointer with no button held, which drives enter and
// leave without ever clicking.
func (s *Scene) InjectHover(x, y float64) {
	s.InjectRelease(x, y)
}

// InjectClick queues a press and a release at the same point. It takes two
// frames to play out.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// PendingInjections reports how many synthetic samples are still queued.
func (s *Scene) PendingInjections() int {
	return len(s.injectQueue)
}

// processInjectedInput feeds at most one queued sample to the pointer state
// machine. It reports whether one was used, in which case the real mouse is
// ignored this frame.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	next := s.injectQueue[0]
	s.injectQueue = append(s.injectQueue[:0], s.injectQueue[1:]...)
	s.processPointer(0, next.x, next.y, next.down, MouseButtonLeft)
	return true
}
