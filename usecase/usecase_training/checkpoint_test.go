package usecase_training

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murasame-lab/voxtrain/domain/domain_training"
)

func sampleState() map[string]domain_training.Tensor {
	return map[string]domain_training.Tensor{
		"dec.conv_pre.weight": {Shape: []int64{2, 2}, Data: []float32{0.5, -1.5, 2.0, 0.25}},
		"enc_p.proj.bias":     {Shape: []int64{3}, Data: []float32{1, 2, 3}},
		"enc_q.proj.weight":   {Shape: []int64{2}, Data: []float32{4, 5}},
		"flow.enc_q_post":     {Shape: []int64{1}, Data: []float32{6}},
	}
}

func TestPackageCheckpoint40k(t *testing.T) {
	ckpt := PackageCheckpoint(sampleState(), "40k", true, 20)

	require.NotNil(t, ckpt.Params)
	assert.Equal(t, 40000, ckpt.Params.SR)
	assert.Equal(t, 1025, ckpt.Params.SpecChannels)
	assert.Equal(t, []int{10, 10, 2, 2}, ckpt.Params.UpsampleRates)
	assert.Equal(t, []int{16, 16, 4, 4}, ckpt.Params.UpsampleKernelSizes)

	require.Len(t, ckpt.Config, 18)
	assert.Equal(t, 1025, ckpt.Config[0])
	assert.Equal(t, 40000, ckpt.Config[17])

	assert.Equal(t, "20epoch", ckpt.Info)
	assert.Equal(t, "40k", ckpt.SR)
	assert.Equal(t, 1, ckpt.F0)
}

func TestPackageCheckpoint48k(t *testing.T) {
	ckpt := PackageCheckpoint(sampleState(), "48k", false, 1)

	require.NotNil(t, ckpt.Params)
	assert.Equal(t, 48000, ckpt.Params.SR)
	assert.Equal(t, 1025, ckpt.Params.SpecChannels)
	assert.Equal(t, []int{10, 6, 2, 2, 2}, ckpt.Params.UpsampleRates)
	assert.Equal(t, "1epoch", ckpt.Info)
	assert.Equal(t, 0, ckpt.F0)
}

func TestPackageCheckpoint32k(t *testing.T) {
	ckpt := PackageCheckpoint(sampleState(), "32k", true, 300)

	require.NotNil(t, ckpt.Params)
	assert.Equal(t, 32000, ckpt.Params.SR)
	assert.Equal(t, 513, ckpt.Params.SpecChannels)
	assert.Equal(t, []int{10, 4, 2, 2, 2}, ckpt.Params.UpsampleRates)
	assert.Equal(t, 513, ckpt.Config[0])
}

func TestPackageCheckpointDropsVariationalEncoderKeys(t *testing.T) {
	ckpt := PackageCheckpoint(sampleState(), "40k", true, 10)

	assert.Contains(t, ckpt.Weight, "dec.conv_pre.weight")
	assert.Contains(t, ckpt.Weight, "enc_p.proj.bias")
	assert.NotContains(t, ckpt.Weight, "enc_q.proj.weight")
	assert.NotContains(t, ckpt.Weight, "flow.enc_q_post")
	assert.Len(t, ckpt.Weight, 2)
}

func TestPackageCheckpointHalvesTensors(t *testing.T) {
	ckpt := PackageCheckpoint(sampleState(), "40k", true, 10)

	w := ckpt.Weight["dec.conv_pre.weight"]
	assert.Equal(t, []int64{2, 2}, w.Shape)
	assert.Equal(t, 8, len(w.Data)) // two bytes per element
	assert.Equal(t, []float32{0.5, -1.5, 2.0, 0.25}, w.Values())
}

func TestPackageCheckpointUnknownTagIsSilentPartial(t *testing.T) {
	// unrecognized tag still produces a record, just without the
	// architecture entries
	ckpt := PackageCheckpoint(sampleState(), "44k", true, 5)

	assert.Nil(t, ckpt.Params)
	assert.Nil(t, ckpt.Config)
	assert.Equal(t, "5epoch", ckpt.Info)
	assert.Equal(t, "44k", ckpt.SR)
	assert.Equal(t, 1, ckpt.F0)
	assert.NotEmpty(t, ckpt.Weight)
}

func TestPackageCheckpointIdempotentNonTensorFields(t *testing.T) {
	a := PackageCheckpoint(sampleState(), "40k", true, 100)
	b := PackageCheckpoint(sampleState(), "40k", true, 100)

	assert.Equal(t, a.Config, b.Config)
	assert.Equal(t, a.Params, b.Params)
	assert.Equal(t, a.Info, b.Info)
	assert.Equal(t, a.SR, b.SR)
	assert.Equal(t, a.F0, b.F0)
}
