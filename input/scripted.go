package input

// Scripted replays a fixed sequence of raw samples, one per Poll. Once the
// script runs out the last sample repeats; an empty script yields idle input.
type Scripted struct {
	frames  []Raw
	next    int
	tracker Tracker
}

func NewScripted(frames ...Raw) *Scripted {
	return &Scripted{frames: frames}
}

// Push appends samples to the script.
func (s *Scripted) Push(frames ...Raw) {
	s.frames = append(s.frames, frames...)
}

func (s *Scripted) Poll() State {
	var raw Raw
	switch {
	case s.next < len(s.frames):
		raw = s.frames[s.next]
		s.next++
	case len(s.frames) > 0:
		raw = s.frames[len(s.frames)-1]
	}
	return s.tracker.Advance(raw)
}

// Func adapts a sampling function into a Source.
type Func struct {
	Sample  func() Raw
	tracker Tracker
}

func (f *Func) Poll() State {
	if f.Sample == nil {
		return f.tracker.Advance(Raw{})
	}
	return f.tracker.Advance(f.Sample())
}
