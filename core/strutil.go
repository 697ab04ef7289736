package core

const hexDigits = "0123456789ABCDEF"

// itoa converts an integer to a string without using fmt package
// This is a lightweight alternative for embedded systems
func itoa(n int) string {
	if n < 0 {
		return "-" + utoa(uint32(-n))
	}
	return utoa(uint32(n))
}

// utoa converts an unsigned integer to a string
func utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	var buf [10]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}

// hexByte formats b as 0xNN
func hexByte(b uint8) string {
	return string([]byte{'0', 'x', hexDigits[b>>4], hexDigits[b&0x0F]})
}

// Itoa is the exported form of itoa for application packages
func Itoa(n int) string {
	return itoa(n)
}

// HexByte is the exported form of hexByte
func HexByte(b uint8) string {
	return hexByte(b)
}

// HexDump formats data as space separated hex pairs, 16 per line
func HexDump(data []byte) []string {
	var lines []string
	for off := 0; off < len(data); off += 16 {
		end := off + 16
		if end > len(data) {
			end = len(data)
		}
		line := make([]byte, 0, 4+3*16)
		line = append(line, hexDigits[(off>>8)&0x0F], hexDigits[(off>>4)&0x0F], hexDigits[off&0x0F], ':')
		for _, b := range data[off:end] {
			line = append(line, ' ', hexDigits[b>>4], hexDigits[b&0x0F])
		}
		lines = append(lines, string(line))
	}
	return lines
}
