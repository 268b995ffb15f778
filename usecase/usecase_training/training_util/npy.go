package training_util

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strings"
)

// WriteNpyFloat32 writes data as a numpy .npy v1.0 file with dtype <f4.
// The extractors emit this format for the f0 tracks and features, and the
// fixed mute records have to sit next to them in the same shape.
func WriteNpyFloat32(path string, shape []int, data []float32) error {
	n := 1
	dims := make([]string, len(shape))
	for i, d := range shape {
		n *= d
		dims[i] = fmt.Sprintf("%d", d)
	}
	if n != len(data) {
		return fmt.Errorf("npy shape %v does not match %d values", shape, len(data))
	}

	shapeRepr := strings.Join(dims, ", ")
	if len(shape) == 1 {
		shapeRepr += ","
	}
	header := fmt.Sprintf("{'descr': '<f4', 'fortran_order': False, 'shape': (%s), }", shapeRepr)
	// total header (magic + version + len + dict + '\n') pads to 64 bytes
	padded := ((10+len(header)+1)/64+1)*64 - 10
	header = header + strings.Repeat(" ", padded-len(header)-1) + "\n"

	buf := make([]byte, 0, 10+len(header)+4*len(data))
	buf = append(buf, 0x93)
	buf = append(buf, "NUMPY"...)
	buf = append(buf, 1, 0)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(header)))
	buf = append(buf, header...)
	for _, v := range data {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	return os.WriteFile(path, buf, 0o644)
}
