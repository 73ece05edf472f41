// services/deck/frame.go
package deck

import "mixdeck-go/x/conv"

// Wire framing. The host splits on '|' and expects one decimal magnitude per
// channel, every cycle, newline terminated.
const (
	frameDelim = '|'
	frameTerm  = '\n'
)

// AppendFrame appends the wire encoding of values to dst and returns the
// extended slice: decimal magnitudes in index order joined by '|', no leading
// or trailing delimiter, '\n' terminated. Zero values encodes a bare newline.
func AppendFrame(dst []byte, values []uint16) []byte {
	for i, v := range values {
		if i > 0 {
			dst = append(dst, frameDelim)
		}
		dst = conv.AppendUint(dst, uint(v))
	}
	return append(dst, frameTerm)
}

// AppendEventLine appends a switch slot's literal event line to dst.
func AppendEventLine(dst []byte, label string) []byte {
	dst = append(dst, label...)
	return append(dst, frameTerm)
}
