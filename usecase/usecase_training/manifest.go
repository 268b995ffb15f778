package usecase_training

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/murasame-lab/voxtrain/domain/domain_training"
)

// sampleNames lists the sample identifiers in a stage output folder: the
// file name up to the first dot, so "sample1.wav" and "sample1.wav.npy"
// both map to "sample1".
func sampleNames(dir string) (map[string]struct{}, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list stage folder: %w", err)
	}
	names := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, _, _ := strings.Cut(entry.Name(), ".")
		names[name] = struct{}{}
	}
	return names, nil
}

func intersect(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for name := range a {
		if _, ok := b[name]; ok {
			out[name] = struct{}{}
		}
	}
	return out
}

// BuildManifest computes the intersection of sample names across the
// required stage folders, emits one pipe-delimited line per surviving
// sample plus the fixed mute line, and writes the result to filelist.txt
// in the training directory. An empty intersection is not an error: the
// manifest then holds only the mute line. Sample line order is undefined.
//
// Line layout with pitch guidance:    gt_wav|feature|f0|f0nsf|speaker_id
// Line layout without pitch guidance: gt_wav|feature|speaker_id
//
// Returns the number of sample lines written, mute line excluded.
func BuildManifest(modelsRoot, trainingDir, srTag string, pitchGuidance bool, speakerID int) (int, error) {
	gtWavsDir := filepath.Join(trainingDir, domain_training.DirGTWavs)
	featureDir := filepath.Join(trainingDir, domain_training.DirFeature256)

	names, err := sampleNames(gtWavsDir)
	if err != nil {
		return 0, err
	}
	featureNames, err := sampleNames(featureDir)
	if err != nil {
		return 0, err
	}
	names = intersect(names, featureNames)

	f0Dir := filepath.Join(trainingDir, domain_training.DirF0)
	f0nsfDir := filepath.Join(trainingDir, domain_training.DirF0NSF)
	if pitchGuidance {
		f0Names, err := sampleNames(f0Dir)
		if err != nil {
			return 0, err
		}
		f0nsfNames, err := sampleNames(f0nsfDir)
		if err != nil {
			return 0, err
		}
		names = intersect(intersect(names, f0Names), f0nsfNames)
	}

	opt := make([]string, 0, len(names)+1)
	for name := range names {
		gtWavPath := filepath.Join(gtWavsDir, name+".wav")
		featurePath := filepath.Join(featureDir, name+".npy")
		if pitchGuidance {
			f0Path := filepath.Join(f0Dir, name+".wav.npy")
			f0nsfPath := filepath.Join(f0nsfDir, name+".wav.npy")
			opt = append(opt, fmt.Sprintf("%s|%s|%s|%s|%d", gtWavPath, featurePath, f0Path, f0nsfPath, speakerID))
		} else {
			opt = append(opt, fmt.Sprintf("%s|%s|%d", gtWavPath, featurePath, speakerID))
		}
	}

	// fixed silence padding record
	muteDir := domain_training.MuteDir(modelsRoot)
	muteGTWav := filepath.Join(muteDir, domain_training.DirGTWavs, domain_training.MuteSampleName+srTag+".wav")
	muteFeature := filepath.Join(muteDir, domain_training.DirFeature256, domain_training.MuteSampleName+".npy")
	if pitchGuidance {
		muteF0 := filepath.Join(muteDir, domain_training.DirF0, domain_training.MuteSampleName+".wav.npy")
		muteF0nsf := filepath.Join(muteDir, domain_training.DirF0NSF, domain_training.MuteSampleName+".wav.npy")
		opt = append(opt, fmt.Sprintf("%s|%s|%s|%s|%d", muteGTWav, muteFeature, muteF0, muteF0nsf, speakerID))
	} else {
		opt = append(opt, fmt.Sprintf("%s|%s|%d", muteGTWav, muteFeature, speakerID))
	}

	manifestPath := filepath.Join(trainingDir, domain_training.ManifestFileName)
	if err := os.WriteFile(manifestPath, []byte(strings.Join(opt, "\n")), 0o644); err != nil {
		return 0, fmt.Errorf("failed to write manifest: %w", err)
	}
	return len(names), nil
}
