package conversation

import (
	"context"

	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*AlertNotifier)(nil)

// Printer is where alerts are written. display.UI satisfies it.
type Printer interface {
	PrintChat(text string)
	PrintUrgent(text string)
}

// AlertNotifier raises the machine's alerts: a line in the scrollback
// plus a chime. Normal alerts ring the done chime, urgent ones buzz.
type AlertNotifier struct {
	out    Printer
	player domain.SoundPlayer
	log    *logger.Logger
}

// NewAlertNotifier creates a notifier writing to out and chiming on player.
func NewAlertNotifier(out Printer, player domain.SoundPlayer, log *logger.Logger) *AlertNotifier {
	return &AlertNotifier{out: out, player: player, log: log}
}

// Notify prints message and rings the done chime.
func (n *AlertNotifier) Notify(ctx context.Context, message string) error {
	n.log.Info("alert: %s", message)
	n.out.PrintChat(message)
	n.player.Play(domain.CueDone)
	return nil
}

// NotifyUrgent prints message as an error and sounds the alert buzz.
func (n *AlertNotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Warn("urgent alert: %s", message)
	n.out.PrintUrgent(message)
	n.player.Play(domain.CueAlert)
	return nil
}
