package protocol

// crcPoly is the CCITT polynomial 0x1021 bit-reversed; the frame CRC
// processes bits least significant first
const crcPoly = 0x8408

// CRC16Update folds one byte into a running checksum
func CRC16Update(crc uint16, b byte) uint16 {
	crc ^= uint16(b)
	for i := 0; i < 8; i++ {
		if crc&1 != 0 {
			crc = crc>>1 ^ crcPoly
		} else {
			crc >>= 1
		}
	}
	return crc
}

// CRC16 is the frame checksum over the header and payload, starting
// from 0xFFFF with no final inversion
func CRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc = CRC16Update(crc, b)
	}
	return crc
}
