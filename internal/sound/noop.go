package sound

import (
	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/logger"
)

// Compile-time interface check.
var _ domain.SoundPlayer = (*NoOp)(nil)

// NoOp is a player that does nothing. Used when audio is disabled or the
// device could not be opened.
type NoOp struct {
	log *logger.Logger
}

// NewNoOp creates a silent player.
func NewNoOp(log *logger.Logger) *NoOp {
	return &NoOp{log: log}
}

// Play only logs the cue.
func (n *NoOp) Play(cue domain.Cue) {
	n.log.Debug("sound no-op: would play %s", cue)
}

// Stop does nothing.
func (n *NoOp) Stop() {}
