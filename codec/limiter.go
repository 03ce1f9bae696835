package codec

import (
	"github.com/wippyai/vm-abi/errors"
)

// Limiter bounds one traversal. Depth counts composites currently entered;
// tokens count every node visited. A Limiter is owned by a single call.
type Limiter struct {
	phase     errors.Phase
	maxDepth  uint64
	maxTokens uint64
	depth     uint64
	tokens    uint64
}

func NewLimiter(cfg Config, phase errors.Phase) *Limiter {
	return &Limiter{
		phase:     phase,
		maxDepth:  cfg.MaxDepth,
		maxTokens: cfg.MaxTokens,
	}
}

// Visit counts one node.
func (l *Limiter) Visit(path []string) error {
	l.tokens++
	if l.tokens > l.maxTokens {
		return errors.TokenCountExceeded(l.phase, clonePath(path), l.maxTokens)
	}
	return nil
}

// Enter descends into a composite. Every successful Enter must be paired
// with a Leave.
func (l *Limiter) Enter(path []string) error {
	if l.depth+1 > l.maxDepth {
		return errors.DepthExceeded(l.phase, clonePath(path), l.maxDepth)
	}
	l.depth++
	return nil
}

func (l *Limiter) Leave() {
	if l.depth > 0 {
		l.depth--
	}
}

func (l *Limiter) Depth() uint64  { return l.depth }
func (l *Limiter) Tokens() uint64 { return l.tokens }

func clonePath(path []string) []string {
	if len(path) == 0 {
		return nil
	}
	return append([]string(nil), path...)
}
