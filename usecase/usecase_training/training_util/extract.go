package training_util

import (
	"context"
	"strconv"
)

// ScriptPitchExtractor shells out to the external f0 extraction tool. The
// tool receives the training directory, the process count and the chosen
// algorithm, and fills 2a_f0 and 2b_f0nsf on its own.
type ScriptPitchExtractor struct {
	interpreter string
	script      string
}

func NewScriptPitchExtractor(interpreter, script string) *ScriptPitchExtractor {
	return &ScriptPitchExtractor{interpreter: interpreter, script: script}
}

func (e *ScriptPitchExtractor) ExtractF0(ctx context.Context, trainingDir string, cpuCount int, algo string) error {
	return RunScript(ctx, e.interpreter, e.script,
		trainingDir,
		strconv.Itoa(cpuCount),
		algo,
	)
}

// ScriptFeatureExtractor shells out to the external content-feature
// extraction tool, which fills 3_feature256 from the 16 kHz copies.
type ScriptFeatureExtractor struct {
	interpreter string
	script      string
}

func NewScriptFeatureExtractor(interpreter, script string) *ScriptFeatureExtractor {
	return &ScriptFeatureExtractor{interpreter: interpreter, script: script}
}

func (e *ScriptFeatureExtractor) ExtractFeature(ctx context.Context, trainingDir string) error {
	return RunScript(ctx, e.interpreter, e.script, trainingDir)
}
