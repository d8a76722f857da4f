package export

import (
	"bytes"
	"io"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// QRLevel is the error correction used for share links.
const QRLevel = qrcode.Medium

// WriteQRPNG writes content as a size x size PNG QR code, black on white.
func WriteQRPNG(w io.Writer, content string, size int) error {
	q, err := qrcode.New(content, QRLevel)
	if err != nil {
		return err
	}
	png, err := q.PNG(size)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, bytes.NewReader(png))
	return err
}

// QRText renders content as a QR code in half-block characters, two modules
// per character row. Dark modules print as spaces so the code reads on a
// dark terminal.
func QRText(content string) (string, error) {
	q, err := qrcode.New(content, QRLevel)
	if err != nil {
		return "", err
	}
	bits := q.Bitmap()

	var sb strings.Builder
	for y := 0; y < len(bits); y += 2 {
		for x := range bits[y] {
			top := !bits[y][x]
			bottom := y+1 < len(bits) && !bits[y+1][x]
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteRune(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
