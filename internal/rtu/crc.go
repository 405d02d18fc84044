// internal/rtu/crc.go
package rtu

// Checksum computes the Modbus RTU CRC16 over data.
// Polynomial 0xA001 (reflected 0x8005), init 0xFFFF.
func Checksum(data []byte) uint16 {
	crc := uint16(0xFFFF)

	for _, b := range data {
		crc ^= uint16(b)

		for i := 0; i < 8; i++ {
			if crc&0x0001 != 0 {
				crc >>= 1
				crc ^= 0xA001
			} else {
				crc >>= 1
			}
		}
	}

	return crc
}

// Append returns data with its CRC appended low byte first (Modbus wire order).
func Append(data []byte) []byte {
	crc := Checksum(data)

	out := make([]byte, len(data)+2)
	copy(out, data)
	out[len(data)] = byte(crc)
	out[len(data)+1] = byte(crc >> 8)

	return out
}

// Verify reports whether the trailing two bytes of frame match the CRC of the
// rest. Frames shorter than 3 bytes cannot carry a CRC and always fail.
func Verify(frame []byte) bool {
	if len(frame) < 3 {
		return false
	}

	got := uint16(frame[len(frame)-2]) | uint16(frame[len(frame)-1])<<8
	return got == Checksum(frame[:len(frame)-2])
}
