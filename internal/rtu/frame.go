// internal/rtu/frame.go
package rtu

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Modbus function codes used on the wire.
const (
	FuncReadHoldingRegisters uint8 = 0x03
	FuncReadInputRegisters   uint8 = 0x04
	FuncWriteSingleRegister  uint8 = 0x06
)

// exceptionFlag marks an exception response (set on the echoed function code).
const exceptionFlag uint8 = 0x80

var (
	ErrFrameTooShort    = errors.New("rtu: frame too short")
	ErrInvalidCRC       = errors.New("rtu: crc mismatch")
	ErrMalformedPayload = errors.New("rtu: malformed register payload")
)

// Exception is a Modbus exception code carried by an error response.
type Exception uint8

// Standard exception codes.
const (
	ExcIllegalFunction    Exception = 0x01
	ExcIllegalDataAddress Exception = 0x02
	ExcIllegalDataValue   Exception = 0x03
	ExcServerFailure      Exception = 0x04
	ExcAcknowledge        Exception = 0x05
	ExcServerBusy         Exception = 0x06
)

func (e Exception) Error() string {
	switch e {
	case ExcIllegalFunction:
		return "rtu: exception 0x01 illegal function"
	case ExcIllegalDataAddress:
		return "rtu: exception 0x02 illegal data address"
	case ExcIllegalDataValue:
		return "rtu: exception 0x03 illegal data value"
	case ExcServerFailure:
		return "rtu: exception 0x04 server failure"
	case ExcAcknowledge:
		return "rtu: exception 0x05 acknowledge"
	case ExcServerBusy:
		return "rtu: exception 0x06 server busy"
	}
	return fmt.Sprintf("rtu: exception 0x%02X", uint8(e))
}

// Code exposes the exception code as uint16 for error-code extraction.
func (e Exception) Code() uint16 {
	return uint16(e)
}

// Response is one parsed RTU response frame.
// It is constructed fresh per received frame and holds no wire state.
type Response struct {
	UnitID   uint8
	Function uint8

	// Exception is non-nil when the response function code has the high bit
	// set. Payload is not register data in that case.
	Exception *Exception

	// Payload is the function-specific body, CRC excluded.
	Payload []byte
}

// BuildReadRequest builds a read-holding-registers (0x03) request frame:
// [unit, fc, addr hi, addr lo, count hi, count lo, crc lo, crc hi].
func BuildReadRequest(address, count uint16, unit uint8) []byte {
	req := make([]byte, 6)
	req[0] = unit
	req[1] = FuncReadHoldingRegisters
	binary.BigEndian.PutUint16(req[2:4], address)
	binary.BigEndian.PutUint16(req[4:6], count)

	return Append(req)
}

// BuildWriteRequest builds a write-single-register (0x06) request frame:
// [unit, fc, addr hi, addr lo, value hi, value lo, crc lo, crc hi].
func BuildWriteRequest(address, value uint16, unit uint8) []byte {
	req := make([]byte, 6)
	req[0] = unit
	req[1] = FuncWriteSingleRegister
	binary.BigEndian.PutUint16(req[2:4], address)
	binary.BigEndian.PutUint16(req[4:6], value)

	return Append(req)
}

// ParseResponse splits an RTU frame into its typed parts.
// CRC is NOT checked here; callers verify with Verify before trusting Payload.
func ParseResponse(frame []byte) (Response, error) {
	if len(frame) < 3 {
		return Response{}, ErrFrameTooShort
	}

	resp := Response{
		UnitID:   frame[0],
		Function: frame[1],
	}

	// Exception response: [unit, fc|0x80, code, crc, crc]
	if resp.Function&exceptionFlag != 0 {
		exc := Exception(frame[2])
		resp.Exception = &exc
		resp.Payload = frame[2:3]
		return resp, nil
	}

	switch resp.Function {
	case FuncReadHoldingRegisters, FuncReadInputRegisters:
		// [unit, fc, byte count, data..., crc, crc]
		byteCount := int(frame[2])
		if len(frame) < 3+byteCount {
			return Response{}, ErrFrameTooShort
		}
		resp.Payload = frame[3 : 3+byteCount]

	case FuncWriteSingleRegister:
		// [unit, fc, addr hi, addr lo, value hi, value lo, crc, crc]
		if len(frame) < 8 {
			return Response{}, ErrFrameTooShort
		}
		resp.Payload = frame[2:6]

	default:
		// Unknown function: body is everything between header and CRC.
		if len(frame) >= 4 {
			resp.Payload = frame[2 : len(frame)-2]
		}
	}

	return resp, nil
}

// WriteEcho reports the echoed (address, value) pair of a write-single-register
// response payload.
func (r Response) WriteEcho() (address, value uint16, err error) {
	if r.Function != FuncWriteSingleRegister || len(r.Payload) < 4 {
		return 0, 0, ErrMalformedPayload
	}
	return binary.BigEndian.Uint16(r.Payload[0:2]), binary.BigEndian.Uint16(r.Payload[2:4]), nil
}

// ExtractRegisters decodes a register payload into 16-bit words,
// big-endian, in strict pairs. Odd-length payloads are malformed.
func ExtractRegisters(payload []byte) ([]uint16, error) {
	if len(payload)%2 != 0 {
		return nil, ErrMalformedPayload
	}

	words := make([]uint16, len(payload)/2)
	for i := range words {
		words[i] = binary.BigEndian.Uint16(payload[2*i : 2*i+2])
	}

	return words, nil
}
