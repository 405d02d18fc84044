// internal/transport/serialrtu/serialrtu_test.go
package serialrtu

import (
	"bytes"
	"errors"
	"testing"
	"time"

	goserial "github.com/goburrow/serial"

	"github.com/tamzrod/agrisense/internal/rtu"
	"github.com/tamzrod/agrisense/internal/transport"
)

// fakePort scripts one response, delivered in small chunks to exercise the
// partial-read loop.
type fakePort struct {
	resp  []byte
	pos   int
	chunk int

	wrote [][]byte
}

func (f *fakePort) Write(p []byte) (int, error) {
	f.wrote = append(f.wrote, append([]byte(nil), p...))
	return len(p), nil
}

func (f *fakePort) Read(p []byte) (int, error) {
	if f.pos >= len(f.resp) {
		return 0, goserial.ErrTimeout
	}
	end := f.pos + f.chunk
	if end > len(f.resp) {
		end = len(f.resp)
	}
	n := copy(p, f.resp[f.pos:end])
	f.pos += n
	return n, nil
}

func (f *fakePort) Close() error { return nil }

func (f *fakePort) Open(*goserial.Config) error { return nil }

func newTestTransport(port *fakePort) *Transport {
	return &Transport{
		cfg:  Config{Port: "/dev/ttyUSB0", BaudRate: 4800, Timeout: 100 * time.Millisecond},
		port: port,
	}
}

// ---- tests ----

func TestReadRegisters_ChunkedResponse(t *testing.T) {
	reply := rtu.Append([]byte{
		0x01, 0x03, 0x08,
		0x02, 0x92,
		0xFF, 0x9B,
		0x03, 0xE8,
		0x00, 0x38,
	})
	port := &fakePort{resp: reply, chunk: 3}

	tr := newTestTransport(port)

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

	wantReq := []byte{0x01, 0x03, 0x00, 0x00, 0x00, 0x04, 0x44, 0x09}
	if len(port.wrote) != 1 || !bytes.Equal(port.wrote[0], wantReq) {
		t.Fatalf("request: got=% X want=% X", port.wrote[0], wantReq)
	}
}

func TestReadRegisters_ExceptionShrinksExpectation(t *testing.T) {
	// 5-byte exception frame while 13 bytes were expected.
	reply := rtu.Append([]byte{0x01, 0x83, 0x02})
	port := &fakePort{resp: reply, chunk: 2}

	tr := newTestTransport(port)

	_, err := tr.ReadRegisters(0x0000, 4, 1)

	var exc rtu.Exception
	if !errors.As(err, &exc) {
		t.Fatalf("expected rtu.Exception, got %v", err)
	}
	if exc.Code() != 2 {
		t.Fatalf("exception code: got=%d want=2", exc.Code())
	}
}

func TestReadRegisters_LineTimeout(t *testing.T) {
	port := &fakePort{} // never answers

	tr := newTestTransport(port)

	_, err := tr.ReadRegisters(0x0000, 4, 1)
	if !errors.Is(err, transport.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestReadRegisters_CorruptCRC(t *testing.T) {
	reply := []byte{0x01, 0x03, 0x02, 0x00, 0x01, 0x00, 0x00}
	port := &fakePort{resp: reply, chunk: 7}

	tr := newTestTransport(port)

	_, err := tr.ReadRegisters(0x0000, 1, 1)
	if !errors.Is(err, rtu.ErrInvalidCRC) {
		t.Fatalf("expected ErrInvalidCRC, got %v", err)
	}
}

func TestWriteRegister_Echo(t *testing.T) {
	reply := rtu.Append([]byte{0x01, 0x06, 0x07, 0xD0, 0x00, 0x02})
	port := &fakePort{resp: reply, chunk: 8}

	tr := newTestTransport(port)

	if err := tr.WriteRegister(0x07D0, 2, 1); err != nil {
		t.Fatalf("WriteRegister err=%v", err)
	}

	want := []byte{0x01, 0x06, 0x07, 0xD0, 0x00, 0x02, 0x08, 0x86}
	if !bytes.Equal(port.wrote[0], want) {
		t.Fatalf("request: got=% X want=% X", port.wrote[0], want)
	}
}

func TestNotConnected(t *testing.T) {
	tr, err := New(Config{Port: "/dev/ttyUSB0"})
	if err != nil {
		t.Fatalf("New err=%v", err)
	}

	if _, err := tr.ReadRegisters(0, 1, 1); !errors.Is(err, transport.ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
}
