// internal/transport/mqttrtu/exchange.go
package mqttrtu

import (
	"time"

	"github.com/tamzrod/agrisense/internal/transport"
)

// exchange correlates one published request with its eventual response.
// The channel replaces a shared last-response slot: each exchange owns its
// own delivery path, so a stale frame can never satisfy a later request.
type exchange struct {
	resp chan []byte
}

func newExchange() *exchange {
	return &exchange{resp: make(chan []byte, 1)}
}

// deliver hands a response payload to the waiter. Only the first frame
// counts; later deliveries for the same exchange are dropped.
func (ex *exchange) deliver(payload []byte) {
	select {
	case ex.resp <- payload:
	default:
	}
}

// await blocks until a response arrives or the budget elapses.
func (ex *exchange) await(timeout time.Duration) ([]byte, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case raw := <-ex.resp:
		return raw, nil
	case <-timer.C:
		return nil, transport.ErrTimeout
	}
}
