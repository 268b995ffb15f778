package training_util

import (
	"context"
	"strconv"
	"strings"

	"github.com/murasame-lab/voxtrain/domain/domain_training"
)

// ScriptTrainer invokes the external training routine. Multi-GPU and
// batch caching are the tool's concern; this adapter only forwards the
// options as positional arguments.
type ScriptTrainer struct {
	interpreter string
	script      string
}

func NewScriptTrainer(interpreter, script string) *ScriptTrainer {
	return &ScriptTrainer{interpreter: interpreter, script: script}
}

func (t *ScriptTrainer) Train(ctx context.Context, opts domain_training.TrainOptions) error {
	pitch := "0"
	if opts.PitchGuidance {
		pitch = "1"
	}
	cache := "0"
	if opts.CacheBatch {
		cache = "1"
	}
	return RunScript(ctx, t.interpreter, t.script,
		strings.Join(opts.GPUIDs, ","),
		opts.TrainingDir,
		opts.ModelName,
		opts.SampleRate,
		pitch,
		strconv.Itoa(opts.BatchSize),
		cache,
		strconv.Itoa(opts.Epochs),
		strconv.Itoa(opts.SaveEveryEpoch),
		opts.PretrainedG,
		opts.PretrainedD,
	)
}
