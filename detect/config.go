package detect

// Config collects every tuned threshold of the detection heuristics in one
// place. Durations carry their unit in the field name.
type Config struct {
	// SampleRate is the mono PCM rate the signal accessor expects.
	SampleRate int `json:"sample_rate" mapstructure:"sample_rate"`

	// EarlyWindowSec drops any candidate whose qualifying span starts this
	// close to the beginning of the recording. Mic activation and breath
	// noise make the first moments unreliable for every detector.
	EarlyWindowSec float64 `json:"early_window_sec" mapstructure:"early_window_sec"`

	// Lexical repetition.
	MinRepeatCount        int `json:"min_repeat_count" mapstructure:"min_repeat_count"`                 // run length to qualify
	SingleCharRepeatCount int `json:"single_char_repeat_count" mapstructure:"single_char_repeat_count"` // stricter run length for 1-char tokens other than "i"

	// Acoustic burst clustering. The gap window brackets stutter-like
	// cadence: faster is one continuous sound, slower is normal speech.
	OnsetDelta             float64 `json:"onset_delta" mapstructure:"onset_delta"` // strict; normal syllable boundaries must not trigger
	MinBurstGapMs          float64 `json:"min_burst_gap_ms" mapstructure:"min_burst_gap_ms"`
	MaxBurstGapMs          float64 `json:"max_burst_gap_ms" mapstructure:"max_burst_gap_ms"`
	MinBursts              int     `json:"min_bursts" mapstructure:"min_bursts"`
	TargetWordLookaheadSec float64 `json:"target_word_lookahead_sec" mapstructure:"target_word_lookahead_sec"`

	// Prolongation gates.
	ProlongMinVoicedMs float64 `json:"prolong_min_voiced_ms" mapstructure:"prolong_min_voiced_ms"` // longest voiced run to count as vowel prolongation
	ProlongMinWordMs   float64 `json:"prolong_min_word_ms" mapstructure:"prolong_min_word_ms"`     // words shorter than this are never prolonged
	ProlongVoicedRatio float64 `json:"prolong_voiced_ratio" mapstructure:"prolong_voiced_ratio"`   // voiced duration over word duration
	SilenceRMS         float64 `json:"silence_rms" mapstructure:"silence_rms"`                     // below this the timestamp likely swallowed silence
	GapMedianFactor    float64 `json:"gap_median_factor" mapstructure:"gap_median_factor"`         // preceding gap over median gap signals a block instead
	LongWordFactor     float64 `json:"long_word_factor" mapstructure:"long_word_factor"`           // word over median duration by this factor is block territory
	TightGapSec        float64 `json:"tight_gap_sec" mapstructure:"tight_gap_sec"`                 // below this the word directly follows its predecessor

	// Sustained-energy test for consonant prolongations, where voicing
	// detection under-detects fricatives like a held "sss".
	SustainedEnergyFrac  float64 `json:"sustained_energy_frac" mapstructure:"sustained_energy_frac"`   // frame counts when above this fraction of mean RMS
	SparseVoicingWordMs  float64 `json:"sparse_voicing_word_ms" mapstructure:"sparse_voicing_word_ms"` // long word...
	SparseVoicingMaxMs   float64 `json:"sparse_voicing_max_ms" mapstructure:"sparse_voicing_max_ms"`   // ...with little voicing needs the energy test
	SparseVoicingMinFrac float64 `json:"sparse_voicing_min_frac" mapstructure:"sparse_voicing_min_frac"`
	ConsonantMinWordMs   float64 `json:"consonant_min_word_ms" mapstructure:"consonant_min_word_ms"`
	ConsonantEnergyFrac  float64 `json:"consonant_energy_frac" mapstructure:"consonant_energy_frac"`
	ConsonantMinRMS      float64 `json:"consonant_min_rms" mapstructure:"consonant_min_rms"`

	// In-word repetition reclassification: a "prolonged" word whose slice
	// contains evenly spaced onsets is really a sound repetition.
	InWordCheckMinMs float64 `json:"in_word_check_min_ms" mapstructure:"in_word_check_min_ms"`
	InWordOnsetDelta float64 `json:"in_word_onset_delta" mapstructure:"in_word_onset_delta"`
	InWordGapLowMs   float64 `json:"in_word_gap_low_ms" mapstructure:"in_word_gap_low_ms"`
	InWordGapHighMs  float64 `json:"in_word_gap_high_ms" mapstructure:"in_word_gap_high_ms"`
	InWordMinOnsets  int     `json:"in_word_min_onsets" mapstructure:"in_word_min_onsets"`
	InWordMinGaps    int     `json:"in_word_min_gaps" mapstructure:"in_word_min_gaps"`

	// Block thresholds. The gap threshold is absolute on purpose: a
	// distribution-relative threshold gets skewed by one long pause.
	BlockGapSec             float64 `json:"block_gap_sec" mapstructure:"block_gap_sec"`
	BlockMaxGapSec          float64 `json:"block_max_gap_sec" mapstructure:"block_max_gap_sec"` // beyond this it is dead air, not a block
	BlockWordDurationFactor float64 `json:"block_word_duration_factor" mapstructure:"block_word_duration_factor"`
	BlockMinWordSec         float64 `json:"block_min_word_sec" mapstructure:"block_min_word_sec"`

	// OverlapEpsilonSec pads prolongation spans when suppressing acoustic
	// repetition candidates; prolongations shed spurious energy bursts
	// slightly outside their own span.
	OverlapEpsilonSec float64 `json:"overlap_epsilon_sec" mapstructure:"overlap_epsilon_sec"`

	// Stopwords are function words and contractions too short to
	// meaningfully prolong. Compared in normalized form.
	Stopwords []string `json:"stopwords" mapstructure:"stopwords"`
}

// DefaultConfig returns the tuned default thresholds
func DefaultConfig() Config {
	return Config{
		SampleRate:     16000,
		EarlyWindowSec: 1.5,

		MinRepeatCount:        3,
		SingleCharRepeatCount: 4,

		OnsetDelta:             0.10,
		MinBurstGapMs:          80,
		MaxBurstGapMs:          250,
		MinBursts:              5,
		TargetWordLookaheadSec: 0.5,

		ProlongMinVoicedMs: 650,
		ProlongMinWordMs:   500,
		ProlongVoicedRatio: 0.70,
		SilenceRMS:         0.001,
		GapMedianFactor:    2.0,
		LongWordFactor:     4.0,
		TightGapSec:        0.1,

		SustainedEnergyFrac:  0.30,
		SparseVoicingWordMs:  1000,
		SparseVoicingMaxMs:   800,
		SparseVoicingMinFrac: 0.50,
		ConsonantMinWordMs:   1000,
		ConsonantEnergyFrac:  0.60,
		ConsonantMinRMS:      0.002,

		InWordCheckMinMs: 500,
		InWordOnsetDelta: 0.08,
		InWordGapLowMs:   90,
		InWordGapHighMs:  240,
		InWordMinOnsets:  3,
		InWordMinGaps:    2,

		BlockGapSec:             1.5,
		BlockMaxGapSec:          3.0,
		BlockWordDurationFactor: 5.0,
		BlockMinWordSec:         2.0,

		OverlapEpsilonSec: 0.2,

		Stopwords: []string{
			"i", "to", "the", "a", "an", "and", "is", "of", "in", "it",
			"at", "or", "for", "but", "not", "can", "will", "that",
			"these", "those", "very", "difficult",
			"isn't", "aren't", "wasn't", "weren't", "don't", "doesn't",
			"didn't", "can't", "won't", "wouldn't", "shouldn't",
			"couldn't", "haven't", "hasn't", "hadn't",
		},
	}
}

// stopwordSet builds a lookup of normalized stopwords
func (c Config) stopwordSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.Stopwords))
	for _, w := range c.Stopwords {
		set[NormalizeToken(w)] = struct{}{}
	}
	return set
}
