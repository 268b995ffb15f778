package training_util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abema/go-mp4"
	"github.com/dhowden/tag"
	"github.com/tidwall/gjson"
	ffmpeggo "github.com/u2takey/ffmpeg-go"
	"go.senan.xyz/taglib"
)

// DatasetFile is one audio file found in a dataset directory.
type DatasetFile struct {
	Path       string  `json:"path"`
	Title      string  `json:"title,omitempty"`
	Artist     string  `json:"artist,omitempty"`
	Duration   float64 `json:"duration_seconds"`
	SampleRate int     `json:"sample_rate"`
	Channels   int     `json:"channels"`
}

// DatasetReport summarizes a dataset directory before training starts.
type DatasetReport struct {
	Dir           string        `json:"dir"`
	FileCount     int           `json:"file_count"`
	TotalDuration float64       `json:"total_duration_seconds"`
	SampleRates   map[int]int   `json:"sample_rates"`
	Files         []DatasetFile `json:"files"`
}

// DatasetInspector reads audio metadata for every detected file in a
// dataset directory. taglib is the primary reader; dhowden/tag fills the
// tag fields when taglib fails, m4a duration comes from the mp4 boxes and
// ffprobe is the last resort.
type DatasetInspector struct{}

func NewDatasetInspector() *DatasetInspector {
	return &DatasetInspector{}
}

func (ins *DatasetInspector) Inspect(dir string) (*DatasetReport, error) {
	paths, err := collectAudioFiles(dir)
	if err != nil {
		return nil, err
	}

	report := &DatasetReport{
		Dir:         dir,
		FileCount:   len(paths),
		SampleRates: make(map[int]int),
		Files:       make([]DatasetFile, 0, len(paths)),
	}
	for _, path := range paths {
		file := ins.probe(path)
		report.TotalDuration += file.Duration
		if file.SampleRate > 0 {
			report.SampleRates[file.SampleRate]++
		}
		report.Files = append(report.Files, file)
	}
	return report, nil
}

func (ins *DatasetInspector) probe(path string) DatasetFile {
	file := DatasetFile{Path: path}

	if props, err := taglib.ReadProperties(path); err == nil {
		file.Duration = props.Length.Seconds()
		file.SampleRate = int(props.SampleRate)
		file.Channels = int(props.Channels)
	}
	if tags, err := taglib.ReadTags(path); err == nil {
		file.Title = firstTag(tags, taglib.Title)
		file.Artist = firstTag(tags, taglib.Artist)
	} else if meta := readTagFallback(path); meta != nil {
		file.Title = meta.Title()
		file.Artist = meta.Artist()
	}

	if file.Duration == 0 && strings.EqualFold(filepath.Ext(path), ".m4a") {
		if dur, err := mp4Duration(path); err == nil {
			file.Duration = dur
		}
	}
	if file.Duration == 0 {
		if dur, err := ffprobeDuration(path); err == nil {
			file.Duration = dur
		}
	}
	return file
}

func firstTag(tags map[string][]string, key string) string {
	if vals := tags[key]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

func readTagFallback(path string) tag.Metadata {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	meta, err := tag.ReadFrom(f)
	if err != nil {
		return nil
	}
	return meta
}

func mp4Duration(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := mp4.Probe(f)
	if err != nil {
		return 0, fmt.Errorf("failed to probe mp4 boxes: %w", err)
	}
	if info.Timescale == 0 {
		return 0, fmt.Errorf("mp4 timescale missing in %s", path)
	}
	return float64(info.Duration) / float64(info.Timescale), nil
}

func ffprobeDuration(path string) (float64, error) {
	out, err := ffmpeggo.Probe(path)
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}
	dur := gjson.Get(out, "format.duration")
	if !dur.Exists() {
		return 0, fmt.Errorf("ffprobe reported no duration for %s", path)
	}
	return dur.Float(), nil
}
