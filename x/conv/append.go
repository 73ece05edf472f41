package conv

// AppendUint appends the base-10 representation of n to dst and returns the
// extended slice. No allocations beyond dst growth; no fmt/strconv dependency,
// so it stays cheap on MCU builds.
func AppendUint(dst []byte, n uint) []byte {
	if n == 0 {
		return append(dst, '0')
	}
	var tmp [20]byte
	i := len(tmp)
	for n > 0 {
		i--
		tmp[i] = byte('0' + n%10)
		n /= 10
	}
	return append(dst, tmp[i:]...)
}

// AppendInt appends the base-10 representation of n to dst.
// Negative numbers supported.
func AppendInt(dst []byte, n int) []byte {
	if n < 0 {
		dst = append(dst, '-')
		return AppendUint(dst, uint(-n))
	}
	return AppendUint(dst, uint(n))
}

// Utoa returns the base-10 string for n. Convenience wrapper for log lines;
// hot paths should use AppendUint.
func Utoa(n uint) string {
	var buf [20]byte
	return string(AppendUint(buf[:0], n))
}

// Itoa returns the base-10 string for n.
func Itoa(n int) string {
	var buf [21]byte
	return string(AppendInt(buf[:0], n))
}
