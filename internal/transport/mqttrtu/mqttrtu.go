// internal/transport/mqttrtu/mqttrtu.go
package mqttrtu

import (
	"errors"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/tamzrod/agrisense/internal/rtu"
	"github.com/tamzrod/agrisense/internal/transport"
)

// Config is the MQTT request/response bridge configuration.
// Raw RTU frames travel as message payloads: requests on RequestTopic,
// responses on ResponseTopic.
type Config struct {
	Broker        string // e.g. tcp://localhost:1883
	ClientID      string
	RequestTopic  string
	ResponseTopic string
	Username      string
	Password      string
	QoS           byte
	Timeout       time.Duration
}

// client is the slice of the paho API the transport uses.
type client interface {
	Connect() mqtt.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token
}

// Transport speaks Modbus RTU over an MQTT request/response topic pair.
// Exchanges are serialized: the operation mutex is held for the full
// publish-and-wait, so at most one request is ever outstanding.
type Transport struct {
	cfg Config
	cli client

	opMu sync.Mutex // serializes exchanges

	exMu    sync.Mutex
	current *exchange // correlation slot for the in-flight exchange
}

// New creates an unconnected MQTT transport.
func New(cfg Config) (*Transport, error) {
	if cfg.Broker == "" {
		return nil, errors.New("mqttrtu: broker required")
	}
	if cfg.RequestTopic == "" || cfg.ResponseTopic == "" {
		return nil, errors.New("mqttrtu: request and response topics required")
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	return &Transport{cfg: cfg, cli: mqtt.NewClient(opts)}, nil
}

// Connect connects to the broker and subscribes to the response topic.
func (t *Transport) Connect() error {
	if tok := t.cli.Connect(); tok.Wait() && tok.Error() != nil {
		return fmt.Errorf("mqttrtu: connect %s: %w", t.cfg.Broker, tok.Error())
	}

	tok := t.cli.Subscribe(t.cfg.ResponseTopic, t.cfg.QoS, func(_ mqtt.Client, msg mqtt.Message) {
		t.deliver(msg.Payload())
	})
	if tok.Wait() && tok.Error() != nil {
		return fmt.Errorf("mqttrtu: subscribe %s: %w", t.cfg.ResponseTopic, tok.Error())
	}
	return nil
}

// Close disconnects from the broker.
func (t *Transport) Close() error {
	t.cli.Disconnect(250)
	return nil
}

// ReadRegisters publishes a read request and waits for the correlated reply.
func (t *Transport) ReadRegisters(address, quantity uint16, unit uint8) ([]uint16, error) {
	req := rtu.BuildReadRequest(address, quantity, unit)

	raw, err := t.roundTrip(req)
	if err != nil {
		return nil, err
	}

	resp, err := parseVerified(raw)
	if err != nil {
		return nil, err
	}
	if resp.UnitID != unit {
		return nil, fmt.Errorf("mqttrtu: unit mismatch: got=%d want=%d", resp.UnitID, unit)
	}

	words, err := rtu.ExtractRegisters(resp.Payload)
	if err != nil {
		return nil, err
	}
	if len(words) != int(quantity) {
		return nil, fmt.Errorf("%w: got %d registers, want %d", rtu.ErrMalformedPayload, len(words), quantity)
	}
	return words, nil
}

// WriteRegister publishes a write request and checks the echoed reply.
func (t *Transport) WriteRegister(address, value uint16, unit uint8) error {
	req := rtu.BuildWriteRequest(address, value, unit)

	raw, err := t.roundTrip(req)
	if err != nil {
		return err
	}

	resp, err := parseVerified(raw)
	if err != nil {
		return err
	}

	echoAddr, echoValue, err := resp.WriteEcho()
	if err != nil {
		return err
	}
	if echoAddr != address || echoValue != value {
		return fmt.Errorf("mqttrtu: write echo mismatch: got=(0x%04X, %d) want=(0x%04X, %d)",
			echoAddr, echoValue, address, value)
	}
	return nil
}

// roundTrip publishes one frame and waits up to the configured budget for its
// response. One outstanding exchange per transport instance.
func (t *Transport) roundTrip(frame []byte) ([]byte, error) {
	t.opMu.Lock()
	defer t.opMu.Unlock()

	ex := newExchange()
	t.setCurrent(ex)
	defer t.setCurrent(nil)

	if tok := t.cli.Publish(t.cfg.RequestTopic, t.cfg.QoS, false, frame); tok.Wait() && tok.Error() != nil {
		return nil, fmt.Errorf("mqttrtu: publish: %w", tok.Error())
	}

	raw, err := ex.await(t.cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (t *Transport) setCurrent(ex *exchange) {
	t.exMu.Lock()
	t.current = ex
	t.exMu.Unlock()
}

// deliver routes a response payload to the in-flight exchange, if any.
// Frames arriving with no exchange outstanding are dropped.
func (t *Transport) deliver(payload []byte) {
	t.exMu.Lock()
	ex := t.current
	t.exMu.Unlock()

	if ex != nil {
		ex.deliver(payload)
	}
}

// parseVerified checks the CRC, parses the frame, and surfaces exceptions.
// An invalid CRC means the frame must be discarded, never parsed.
func parseVerified(raw []byte) (rtu.Response, error) {
	if !rtu.Verify(raw) {
		return rtu.Response{}, rtu.ErrInvalidCRC
	}

	resp, err := rtu.ParseResponse(raw)
	if err != nil {
		return rtu.Response{}, err
	}
	if resp.Exception != nil {
		return rtu.Response{}, *resp.Exception
	}
	return resp, nil
}

var _ transport.Transport = (*Transport)(nil)
