// Package notify delivers operator alerts. Delivery is best-effort:
// a failed notification is logged and reported as false, never as an
// error that could interrupt a discovery cycle.
package notify

import "context"

// Notifier delivers a text alert. Returns true when the message was
// accepted by the channel.
type Notifier interface {
	Notify(ctx context.Context, text string) bool
}

// Nop is a Notifier that drops every message. Useful when no channel
// is configured.
type Nop struct{}

// Notify reports success without delivering anything.
func (Nop) Notify(context.Context, string) bool { return true }

// Compile-time interface check.
var _ Notifier = Nop{}
