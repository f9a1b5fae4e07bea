package imaging

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"
)

// DecodeHDR reads a Radiance RGBE picture into a 3 channel float image.
// Flat and new-style run length encoded scanlines are supported.
func DecodeHDR(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)

	magic, err := readLine(br)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(magic, "#?") {
		return nil, fmt.Errorf("%w: missing radiance signature", ErrUnsupportedFormat)
	}
	for {
		line, err := readLine(br)
		if err != nil {
			return nil, err
		}
		if line == "" {
			break
		}
		if v, ok := strings.CutPrefix(line, "FORMAT="); ok && v != "32-bit_rle_rgbe" {
			return nil, fmt.Errorf("%w: pixel format %q", ErrUnsupportedFormat, v)
		}
	}

	res, err := readLine(br)
	if err != nil {
		return nil, err
	}
	var yAxis, xAxis string
	var height, width int
	if _, err := fmt.Sscanf(res, "%s %d %s %d", &yAxis, &height, &xAxis, &width); err != nil {
		return nil, fmt.Errorf("%w: resolution %q", ErrUnsupportedFormat, res)
	}
	if xAxis != "+X" || (yAxis != "-Y" && yAxis != "+Y") {
		return nil, fmt.Errorf("%w: orientation %q", ErrUnsupportedFormat, res)
	}

	img, err := NewFloat(width, height, 3)
	if err != nil {
		return nil, err
	}
	scan := make([]byte, width*4)
	for y := 0; y < height; y++ {
		if err := readScanline(br, scan, width); err != nil {
			return nil, fmt.Errorf("scanline %d: %w", y, err)
		}
		row := img.Float[y*width*3 : (y+1)*width*3]
		for x := 0; x < width; x++ {
			r, g, b := rgbeToFloat(scan[x*4], scan[x*4+1], scan[x*4+2], scan[x*4+3])
			row[x*3], row[x*3+1], row[x*3+2] = r, g, b
		}
	}
	// +Y stores the bottom row first; normalize to top-down like every other decoder.
	if yAxis == "+Y" {
		img.FlipVertical()
	}
	return img, nil
}

func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("%w: truncated header: %v", ErrUnsupportedFormat, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readScanline fills scan with width RGBE quadruplets.
func readScanline(br *bufio.Reader, scan []byte, width int) error {
	head, err := br.Peek(4)
	if err != nil {
		return err
	}
	rle := width >= 8 && width < 0x8000 && head[0] == 2 && head[1] == 2 && head[2]&0x80 == 0
	if !rle {
		_, err := io.ReadFull(br, scan)
		return err
	}
	if n := int(head[2])<<8 | int(head[3]); n != width {
		return fmt.Errorf("%w: scanline width %d, want %d", ErrUnsupportedFormat, n, width)
	}
	if _, err := br.Discard(4); err != nil {
		return err
	}

	// channels are stored planar, one run-length stream each
	for c := 0; c < 4; c++ {
		for x := 0; x < width; {
			count, err := br.ReadByte()
			if err != nil {
				return err
			}
			if count > 128 {
				n := int(count) - 128
				if x+n > width {
					return fmt.Errorf("%w: run overflows scanline", ErrUnsupportedFormat)
				}
				v, err := br.ReadByte()
				if err != nil {
					return err
				}
				for ; n > 0; n-- {
					scan[x*4+c] = v
					x++
				}
				continue
			}
			n := int(count)
			if n == 0 || x+n > width {
				return fmt.Errorf("%w: bad literal run", ErrUnsupportedFormat)
			}
			for ; n > 0; n-- {
				v, err := br.ReadByte()
				if err != nil {
					return err
				}
				scan[x*4+c] = v
				x++
			}
		}
	}
	return nil
}

func rgbeToFloat(r, g, b, e byte) (float32, float32, float32) {
	if e == 0 {
		return 0, 0, 0
	}
	f := float32(math.Ldexp(1, int(e)-(128+8)))
	return float32(r) * f, float32(g) * f, float32(b) * f
}
