// internal/transport/mqttrtu/mqttrtu_test.go
package mqttrtu

import (
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/tamzrod/agrisense/internal/rtu"
	"github.com/tamzrod/agrisense/internal/transport"
)

// ---- fakes ----

type fakeToken struct{ err error }

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t *fakeToken) Error() error { return t.err }

// fakeClient answers each publish with the payload produced by respond.
// A nil respond simulates a bridge that never answers.
type fakeClient struct {
	published [][]byte
	respond   func(req []byte) []byte
	deliver   func(payload []byte)
}

func (f *fakeClient) Connect() mqtt.Token     { return &fakeToken{} }
func (f *fakeClient) Disconnect(quiesce uint) {}

func (f *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	req := payload.([]byte)
	f.published = append(f.published, req)
	if f.respond != nil {
		f.deliver(f.respond(req))
	}
	return &fakeToken{}
}

func (f *fakeClient) Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token {
	return &fakeToken{}
}

func newTestTransport(respond func(req []byte) []byte) (*Transport, *fakeClient) {
	cli := &fakeClient{respond: respond}
	tr := &Transport{
		cfg: Config{
			Broker:        "tcp://test:1883",
			RequestTopic:  "sensors/request",
			ResponseTopic: "sensors/response",
			QoS:           1,
			Timeout:       100 * time.Millisecond,
		},
		cli: cli,
	}
	cli.deliver = tr.deliver
	return tr, cli
}

// ---- tests ----

func TestReadRegisters_EndToEnd(t *testing.T) {
	// Soil "all" reply: moisture=658, temp=-101, ec=1000, ph=56.
	reply := rtu.Append([]byte{
		0x01, 0x03, 0x08,
		0x02, 0x92,
		0xFF, 0x9B,
		0x03, 0xE8,
		0x00, 0x38,
	})

	tr, cli := newTestTransport(func(req []byte) []byte { return reply })

	words, err := tr.ReadRegisters(0x0000, 4, 1)
	if err != nil {
		t.Fatalf("ReadRegisters err=%v", err)
	}

	want := []uint16{658, 0xFF9B, 1000, 56}
	for i, w := range want {
		if words[i] != w {
			t.Fatalf("word %d: got=%d want=%d", i, words[i], w)
		}
	}

	if len(cli.published) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(cli.published))
	}
	if !rtu.Verify(cli.published[0]) {
		t.Fatalf("published request carries invalid crc: % X", cli.published[0])
	}
}

func TestReadRegisters_Timeout(t *testing.T) {
	tr, _ := newTestTransport(nil) // bridge never answers

	start := time.Now()
	_, err := tr.ReadRegisters(0x0000, 4, 1)
	if !errors.Is(err, transport.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("timeout took too long: %v", time.Since(start))
	}
}

func TestReadRegisters_Exception(t *testing.T) {
	reply := rtu.Append([]byte{0x01, 0x83, 0x02})

	tr, _ := newTestTransport(func(req []byte) []byte { return reply })

	_, err := tr.ReadRegisters(0x0000, 4, 1)

	var exc rtu.Exception
	if !errors.As(err, &exc) {
		t.Fatalf("expected rtu.Exception, got %v", err)
	}
	if exc.Code() != 2 {
		t.Fatalf("exception code: got=%d want=2", exc.Code())
	}
}

func TestReadRegisters_InvalidCRC(t *testing.T) {
	reply := []byte{0x01, 0x03, 0x02, 0x00, 0x01, 0x00, 0x00} // bogus crc

	tr, _ := newTestTransport(func(req []byte) []byte { return reply })

	_, err := tr.ReadRegisters(0x0000, 1, 1)
	if !errors.Is(err, rtu.ErrInvalidCRC) {
		t.Fatalf("expected ErrInvalidCRC, got %v", err)
	}
}

func TestWriteRegister_EchoVerified(t *testing.T) {
	tr, cli := newTestTransport(func(req []byte) []byte {
		return req // well-behaved device echoes the write frame
	})

	if err := tr.WriteRegister(0x07D0, 2, 1); err != nil {
		t.Fatalf("WriteRegister err=%v", err)
	}

	want := []byte{0x01, 0x06, 0x07, 0xD0, 0x00, 0x02, 0x08, 0x86}
	got := cli.published[0]
	if len(got) != len(want) {
		t.Fatalf("request length: got=%d want=%d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("request: got=% X want=% X", got, want)
		}
	}
}

func TestWriteRegister_EchoMismatch(t *testing.T) {
	tr, _ := newTestTransport(func(req []byte) []byte {
		return rtu.Append([]byte{0x01, 0x06, 0x07, 0xD0, 0x00, 0x09})
	})

	if err := tr.WriteRegister(0x07D0, 2, 1); err == nil {
		t.Fatalf("expected echo mismatch error")
	}
}

func TestExchange_LateFrameDropped(t *testing.T) {
	ex := newExchange()

	ex.deliver([]byte{0x01})
	ex.deliver([]byte{0x02}) // dropped: exchange already satisfied

	raw, err := ex.await(time.Second)
	if err != nil {
		t.Fatalf("await err=%v", err)
	}
	if raw[0] != 0x01 {
		t.Fatalf("expected first delivery to win, got % X", raw)
	}
}

func TestDeliver_NoExchangeOutstanding(t *testing.T) {
	tr, _ := newTestTransport(nil)

	// Must not panic or block when nothing is waiting.
	tr.deliver([]byte{0x01, 0x03, 0x00})
}
