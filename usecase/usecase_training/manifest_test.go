package usecase_training

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murasame-lab/voxtrain/domain/domain_training"
)

func writeStageFiles(t *testing.T, trainingDir, stage, suffix string, names ...string) {
	t.Helper()
	dir := filepath.Join(trainingDir, stage)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+suffix), []byte("x"), 0o644))
	}
}

func readManifest(t *testing.T, trainingDir string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(trainingDir, domain_training.ManifestFileName))
	require.NoError(t, err)
	return strings.Split(string(data), "\n")
}

func TestBuildManifestIntersectionWithPitch(t *testing.T) {
	modelsRoot := t.TempDir()
	trainingDir := filepath.Join(modelsRoot, "training", "models", "demo")

	writeStageFiles(t, trainingDir, domain_training.DirGTWavs, ".wav", "a", "b", "c")
	writeStageFiles(t, trainingDir, domain_training.DirFeature256, ".npy", "a", "b")
	writeStageFiles(t, trainingDir, domain_training.DirF0, ".wav.npy", "a", "b")
	writeStageFiles(t, trainingDir, domain_training.DirF0NSF, ".wav.npy", "b")

	count, err := BuildManifest(modelsRoot, trainingDir, "40k", true, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	lines := readManifest(t, trainingDir)
	require.Len(t, lines, 2)

	// only "b" survives the intersection
	fields := strings.Split(lines[0], "|")
	require.Len(t, fields, 5)
	assert.Equal(t, filepath.Join(trainingDir, domain_training.DirGTWavs, "b.wav"), fields[0])
	assert.Equal(t, filepath.Join(trainingDir, domain_training.DirFeature256, "b.npy"), fields[1])
	assert.Equal(t, filepath.Join(trainingDir, domain_training.DirF0, "b.wav.npy"), fields[2])
	assert.Equal(t, filepath.Join(trainingDir, domain_training.DirF0NSF, "b.wav.npy"), fields[3])
	assert.Equal(t, "2", fields[4])

	muteFields := strings.Split(lines[1], "|")
	require.Len(t, muteFields, 5)
	muteDir := domain_training.MuteDir(modelsRoot)
	assert.Equal(t, filepath.Join(muteDir, domain_training.DirGTWavs, "mute40k.wav"), muteFields[0])
	assert.Equal(t, filepath.Join(muteDir, domain_training.DirFeature256, "mute.npy"), muteFields[1])
	assert.Equal(t, filepath.Join(muteDir, domain_training.DirF0, "mute.wav.npy"), muteFields[2])
	assert.Equal(t, filepath.Join(muteDir, domain_training.DirF0NSF, "mute.wav.npy"), muteFields[3])
	assert.Equal(t, "2", muteFields[4])
}

func TestBuildManifestWithoutPitch(t *testing.T) {
	modelsRoot := t.TempDir()
	trainingDir := filepath.Join(modelsRoot, "training", "models", "demo")

	writeStageFiles(t, trainingDir, domain_training.DirGTWavs, ".wav", "a", "b")
	writeStageFiles(t, trainingDir, domain_training.DirFeature256, ".npy", "a", "b")
	// no f0 folders at all: they must not be consulted

	count, err := BuildManifest(modelsRoot, trainingDir, "48k", false, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	lines := readManifest(t, trainingDir)
	require.Len(t, lines, 3)
	for _, line := range lines {
		fields := strings.Split(line, "|")
		assert.Len(t, fields, 3)
		assert.Equal(t, "0", fields[len(fields)-1])
	}
	assert.Contains(t, lines[2], "mute48k.wav")
}

func TestBuildManifestEmptyIntersection(t *testing.T) {
	modelsRoot := t.TempDir()
	trainingDir := filepath.Join(modelsRoot, "training", "models", "demo")

	writeStageFiles(t, trainingDir, domain_training.DirGTWavs, ".wav", "a")
	writeStageFiles(t, trainingDir, domain_training.DirFeature256, ".npy", "b")

	// empty intersection is not an error, the manifest still carries the
	// mute record
	count, err := BuildManifest(modelsRoot, trainingDir, "32k", false, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	lines := readManifest(t, trainingDir)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "mute32k.wav")
}

func TestBuildManifestRemovingOneFolderEntryExcludesSample(t *testing.T) {
	modelsRoot := t.TempDir()
	trainingDir := filepath.Join(modelsRoot, "training", "models", "demo")

	writeStageFiles(t, trainingDir, domain_training.DirGTWavs, ".wav", "a", "b")
	writeStageFiles(t, trainingDir, domain_training.DirFeature256, ".npy", "a", "b")
	writeStageFiles(t, trainingDir, domain_training.DirF0, ".wav.npy", "a", "b")
	writeStageFiles(t, trainingDir, domain_training.DirF0NSF, ".wav.npy", "a", "b")

	count, err := BuildManifest(modelsRoot, trainingDir, "40k", true, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, os.Remove(filepath.Join(trainingDir, domain_training.DirF0NSF, "a.wav.npy")))

	count, err = BuildManifest(modelsRoot, trainingDir, "40k", true, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	for _, line := range readManifest(t, trainingDir) {
		assert.NotContains(t, line, string(filepath.Separator)+"a.wav")
	}
}

func TestBuildManifestMissingRequiredFolder(t *testing.T) {
	modelsRoot := t.TempDir()
	trainingDir := filepath.Join(modelsRoot, "training", "models", "demo")

	writeStageFiles(t, trainingDir, domain_training.DirGTWavs, ".wav", "a")
	// feature folder never created

	_, err := BuildManifest(modelsRoot, trainingDir, "40k", false, 0)
	assert.Error(t, err)
}

func TestSampleNamesCutAtFirstDot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "song.wav.npy"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "take.1.wav"), nil, 0o644))

	names, err := sampleNames(dir)
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"song": {}, "take": {}}, names)
}
