package domain_training

// HyperParams is the generator architecture description embedded in every
// packaged checkpoint. Field order matters: the checkpoint's "config"
// entry is the ordered sequence of these values, and downstream loaders
// pass it positionally to the model constructor.
type HyperParams struct {
	SpecChannels           int     `bson:"spec_channels" json:"spec_channels"`
	SegmentSize            int     `bson:"segment_size" json:"segment_size"`
	InterChannels          int     `bson:"inter_channels" json:"inter_channels"`
	HiddenChannels         int     `bson:"hidden_channels" json:"hidden_channels"`
	FilterChannels         int     `bson:"filter_channels" json:"filter_channels"`
	NHeads                 int     `bson:"n_heads" json:"n_heads"`
	NLayers                int     `bson:"n_layers" json:"n_layers"`
	KernelSize             int     `bson:"kernel_size" json:"kernel_size"`
	PDropout               float64 `bson:"p_dropout" json:"p_dropout"`
	Resblock               string  `bson:"resblock" json:"resblock"`
	ResblockKernelSizes    []int   `bson:"resblock_kernel_sizes" json:"resblock_kernel_sizes"`
	ResblockDilationSizes  [][]int `bson:"resblock_dilation_sizes" json:"resblock_dilation_sizes"`
	UpsampleRates          []int   `bson:"upsample_rates" json:"upsample_rates"`
	UpsampleInitialChannel int     `bson:"upsample_initial_channel" json:"upsample_initial_channel"`
	UpsampleKernelSizes    []int   `bson:"upsample_kernel_sizes" json:"upsample_kernel_sizes"`
	SpkEmbedDim            int     `bson:"spk_embed_dim" json:"spk_embed_dim"`
	GinChannels            int     `bson:"gin_channels" json:"gin_channels"`
	SR                     int     `bson:"sr" json:"sr"`
}

// Values flattens the hyperparameters into the positional "config"
// sequence, in declaration order.
func (h HyperParams) Values() []interface{} {
	return []interface{}{
		h.SpecChannels,
		h.SegmentSize,
		h.InterChannels,
		h.HiddenChannels,
		h.FilterChannels,
		h.NHeads,
		h.NLayers,
		h.KernelSize,
		h.PDropout,
		h.Resblock,
		h.ResblockKernelSizes,
		h.ResblockDilationSizes,
		h.UpsampleRates,
		h.UpsampleInitialChannel,
		h.UpsampleKernelSizes,
		h.SpkEmbedDim,
		h.GinChannels,
		h.SR,
	}
}

func basePreset() HyperParams {
	return HyperParams{
		SegmentSize:            32,
		InterChannels:          192,
		HiddenChannels:         192,
		FilterChannels:         768,
		NHeads:                 2,
		NLayers:                6,
		KernelSize:             3,
		PDropout:               0,
		Resblock:               "1",
		ResblockKernelSizes:    []int{3, 7, 11},
		ResblockDilationSizes:  [][]int{{1, 3, 5}, {1, 3, 5}, {1, 3, 5}},
		UpsampleInitialChannel: 512,
		SpkEmbedDim:            109,
		GinChannels:            256,
	}
}

// PresetFor returns the fixed architecture preset for a sampling-rate tag.
// The three tags differ only in spectral channel count and the upsampling
// rate/kernel schedules. Unrecognized tags return ok=false.
func PresetFor(srTag string) (HyperParams, bool) {
	h := basePreset()
	switch srTag {
	case SampleRate32k:
		h.SpecChannels = 513
		h.UpsampleRates = []int{10, 4, 2, 2, 2}
		h.UpsampleKernelSizes = []int{16, 16, 4, 4, 4}
		h.SR = 32000
	case SampleRate40k:
		h.SpecChannels = 1025
		h.UpsampleRates = []int{10, 10, 2, 2}
		h.UpsampleKernelSizes = []int{16, 16, 4, 4}
		h.SR = 40000
	case SampleRate48k:
		h.SpecChannels = 1025
		h.UpsampleRates = []int{10, 6, 2, 2, 2}
		h.UpsampleKernelSizes = []int{16, 16, 4, 4, 4}
		h.SR = 48000
	default:
		return HyperParams{}, false
	}
	return h, true
}

// Checkpoint is the packaged snapshot written for a trained model. Config
// and Params stay nil when the sampling-rate tag was not recognized; the
// serializer then omits both entries while still writing Info, SR and F0.
type Checkpoint struct {
	Weight map[string]HalfTensor
	Config []interface{}
	Params *HyperParams
	Info   string
	SR     string
	F0     int
}
