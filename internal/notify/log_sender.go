package notify

import "log"

// LogSender prints messages instead of delivering them. Default in
// development; swap in a gateway-backed Sender in production wiring.
type LogSender struct {
	Channel string
}

func (s LogSender) Send(to, message string) error {
	log.Printf("[NOTIFY] channel=%s to=%s msg=%q", s.Channel, to, message)
	return nil
}
