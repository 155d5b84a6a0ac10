package notify

import (
	"context"
	"slices"
	"sync"
)

// MemoryNotifier collects prompts in memory.
// Useful for testing or when prompts are polled by the UI in-process.
type MemoryNotifier struct {
	mu      sync.Mutex
	prompts []Prompt
}

// NewMemoryNotifier creates an empty in-memory notifier.
func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{}
}

// PromptUpgrade records the prompt.
func (n *MemoryNotifier) PromptUpgrade(ctx context.Context, p Prompt) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.prompts = append(n.prompts, p)
	return nil
}

// Prompts returns a copy of all recorded prompts.
func (n *MemoryNotifier) Prompts() []Prompt {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.prompts)
}

// Reset discards all recorded prompts.
func (n *MemoryNotifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.prompts = nil
}
