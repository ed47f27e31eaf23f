package render

import "sync"

// BufferSurface is an in-memory surface that records every frame written to it
// Used for headless rendering and tests
type BufferSurface struct {
	mu     sync.Mutex
	text   string
	frames []string
	limit  int
}

// NewBufferSurface creates a recorder keeping at most limit frames, 0 keeps all
func NewBufferSurface(limit int) *BufferSurface {
	return &BufferSurface{limit: limit}
}

// SetText stores text as the current content and appends it to the history
func (b *BufferSurface) SetText(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.text = text
	b.frames = append(b.frames, text)
	if b.limit > 0 && len(b.frames) > b.limit {
		// Drop oldest
		b.frames = append(b.frames[:0], b.frames[len(b.frames)-b.limit:]...)
	}
}

// Text returns the current content
func (b *BufferSurface) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

// Frames returns a copy of the recorded history, oldest first
func (b *BufferSurface) Frames() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.frames))
	copy(out, b.frames)
	return out
}

// Len returns the number of recorded frames
func (b *BufferSurface) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.frames)
}

// Reset clears content and history
func (b *BufferSurface) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = ""
	b.frames = nil
}
