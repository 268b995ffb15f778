package training_util

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteNpyFloat32Layout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feat.npy")
	require.NoError(t, WriteNpyFloat32(path, []int{2, 3}, []float32{1, 2, 3, 4, 5, 6}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, append([]byte{0x93}, "NUMPY"...), data[:6])
	assert.Equal(t, byte(1), data[6])
	assert.Equal(t, byte(0), data[7])

	headerLen := int(binary.LittleEndian.Uint16(data[8:10]))
	assert.Zero(t, (10+headerLen)%64, "header must pad to a 64-byte boundary")

	header := string(data[10 : 10+headerLen])
	assert.Contains(t, header, "'descr': '<f4'")
	assert.Contains(t, header, "'fortran_order': False")
	assert.Contains(t, header, "'shape': (2, 3)")
	assert.Equal(t, byte('\n'), data[10+headerLen-1])

	payload := data[10+headerLen:]
	require.Len(t, payload, 4*6)
	for i, want := range []float32{1, 2, 3, 4, 5, 6} {
		got := math.Float32frombits(binary.LittleEndian.Uint32(payload[4*i:]))
		assert.Equal(t, want, got)
	}
}

func TestWriteNpyFloat32OneDimTrailingComma(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f0.npy")
	require.NoError(t, WriteNpyFloat32(path, []int{300}, make([]float32, 300)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	headerLen := int(binary.LittleEndian.Uint16(data[8:10]))
	assert.Contains(t, string(data[10:10+headerLen]), "'shape': (300,)")
}

func TestWriteNpyFloat32ShapeMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.npy")
	err := WriteNpyFloat32(path, []int{2, 2}, []float32{1, 2, 3})
	assert.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
