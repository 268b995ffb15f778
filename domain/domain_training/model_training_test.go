package domain_training

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() TrainingParams {
	return TrainingParams{
		ModelName:  "demo",
		DatasetDir: "/data/voices",
	}
}

func TestNormalizeDefaults(t *testing.T) {
	p := validParams()
	require.NoError(t, p.Normalize("/models"))

	assert.Equal(t, SampleRate40k, p.SampleRate)
	assert.Equal(t, 40000, p.SampleRateHz())
	assert.Equal(t, PitchAlgoHarvest, p.PitchAlgo)
	assert.Equal(t, 4, p.BatchSize)
	assert.Equal(t, 100, p.Epochs)
	assert.Equal(t, 10, p.SaveEveryEpoch)
	assert.Positive(t, p.CPUProcessCount)
	assert.Equal(t, filepath.Join("/models", "pretrained", "f0G40k.pth"), p.PretrainedG)
	assert.Equal(t, filepath.Join("/models", "pretrained", "f0D40k.pth"), p.PretrainedD)
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	p := validParams()
	p.SampleRate = SampleRate48k
	p.PitchAlgo = PitchAlgoDio
	p.BatchSize = 16
	p.PretrainedG = "/seeds/G.pth"
	require.NoError(t, p.Normalize("/models"))

	assert.Equal(t, 48000, p.SampleRateHz())
	assert.Equal(t, PitchAlgoDio, p.PitchAlgo)
	assert.Equal(t, 16, p.BatchSize)
	assert.Equal(t, "/seeds/G.pth", p.PretrainedG)
	assert.Equal(t, filepath.Join("/models", "pretrained", "f0D48k.pth"), p.PretrainedD)
}

func TestNormalizeRejectsUnknownEnums(t *testing.T) {
	p := validParams()
	p.SampleRate = "44k"
	assert.True(t, errors.Is(p.Normalize("/models"), ErrUnknownSampleRate))

	p = validParams()
	p.PitchAlgo = "crepe"
	assert.True(t, errors.Is(p.Normalize("/models"), ErrUnknownPitchAlgo))

	p = validParams()
	p.ModelName = "   "
	assert.True(t, errors.Is(p.Normalize("/models"), ErrModelNameEmpty))

	p = validParams()
	p.DatasetDir = ""
	assert.True(t, errors.Is(p.Normalize("/models"), ErrDatasetDirEmpty))
}

func TestGPUList(t *testing.T) {
	p := TrainingParams{GPUIDs: "0, 1,2"}
	assert.Equal(t, []string{"0", "1", "2"}, p.GPUList())

	p.GPUIDs = ""
	assert.Empty(t, p.GPUList())

	p.GPUIDs = "0,cuda,1"
	assert.Equal(t, []string{"0", "1"}, p.GPUList())
}

func TestLayoutPaths(t *testing.T) {
	assert.Equal(t,
		filepath.Join("/models", "training", "models", "demo"),
		TrainingDir("/models", "demo"))
	assert.Equal(t,
		filepath.Join("/models", "training", "mute"),
		MuteDir("/models"))
	assert.Equal(t,
		filepath.Join("/models", "checkpoints", "demo.pth"),
		CheckpointPath("/models", "demo"))
}

func TestPresetForUnknownTag(t *testing.T) {
	_, ok := PresetFor("22k")
	assert.False(t, ok)
}

func TestHyperParamsValuesOrder(t *testing.T) {
	h, ok := PresetFor(SampleRate40k)
	require.True(t, ok)

	values := h.Values()
	require.Len(t, values, 18)
	assert.Equal(t, h.SpecChannels, values[0])
	assert.Equal(t, h.SegmentSize, values[1])
	assert.Equal(t, h.Resblock, values[9])
	assert.Equal(t, h.UpsampleRates, values[12])
	assert.Equal(t, h.SR, values[17])
}
