package detect

import (
	"context"
	"fmt"

	"github.com/Atifue/hacknight-2025-fall/logging"
	"github.com/Atifue/hacknight-2025-fall/transcode"
)

// Transcriber produces timestamped words for an audio file. Implementations
// live in the transcribe package.
type Transcriber interface {
	Transcribe(ctx context.Context, filename string) ([]Word, error)
}

// Analyzer runs the full detection pipeline: transcribe, decode, analyze.
type Analyzer struct {
	cfg         Config
	decoder     *transcode.Decoder
	transcriber Transcriber
	logger      logging.Logger
}

func NewAnalyzer(cfg Config, decoder *transcode.Decoder, transcriber Transcriber, logger logging.Logger) *Analyzer {
	if logger == nil {
		logger = logging.WithFields(logging.Fields{"component": "analyzer"})
	}
	return &Analyzer{cfg: cfg, decoder: decoder, transcriber: transcriber, logger: logger}
}

// DetectAll analyzes one recording end to end. Upstream failures degrade to
// an empty result instead of an error: the caller asked "what disfluencies
// are here" and "none found" is the honest answer when transcription or
// decoding gives us nothing to work with.
func (a *Analyzer) DetectAll(ctx context.Context, filename string) (*Result, error) {
	words, err := a.transcriber.Transcribe(ctx, filename)
	if err != nil {
		a.logger.Warn("transcription failed, returning empty result", logging.Fields{
			"file": filename, "error": err.Error(),
		})
		return &Result{}, nil
	}
	if len(words) < 2 {
		a.logger.Debug("too few words for analysis", logging.Fields{"words": len(words)})
		return &Result{Words: words}, nil
	}

	audio, err := a.decoder.DecodeFile(ctx, filename)
	if err != nil {
		a.logger.Warn("audio decode failed, skipping acoustic analysis", logging.Fields{
			"file": filename, "error": err.Error(),
		})
		return &Result{Words: words, Events: a.lexicalEvents(words)}, nil
	}

	feats, err := NewSignalAccessor(audio, a.cfg)
	if err != nil {
		a.logger.Warn("signal analysis failed, skipping acoustic analysis", logging.Fields{
			"file": filename, "error": err.Error(),
		})
		return &Result{Words: words, Events: a.lexicalEvents(words)}, nil
	}

	return &Result{Words: words, Events: a.AnalyzeWords(words, feats)}, nil
}

// lexicalEvents runs only the transcript-based repetition scan, for
// recordings whose audio is unusable.
func (a *Analyzer) lexicalEvents(words []Word) []Event {
	return a.safeDetect("repetition", func() []Event {
		return NewRepetitionDetector(a.cfg).Detect(words)
	})
}

// AnalyzeWords runs the detectors over an existing transcript and feature
// set. Each detector is fenced off: a panic in one logs a warning and
// contributes no events, the others still run.
func (a *Analyzer) AnalyzeWords(words []Word, feats Features) []Event {
	if len(words) < 2 {
		return nil
	}

	reps := a.safeDetect("repetition", func() []Event {
		return NewRepetitionDetector(a.cfg).Detect(words)
	})

	var prolongs []Event
	reclassified := a.safeDetect("prolongation", func() []Event {
		p, r := NewProlongationDetector(a.cfg).Detect(words, feats)
		prolongs = p
		return r
	})
	reps = append(reps, reclassified...)

	acoustic := a.safeDetect("acoustic_repetition", func() []Event {
		return NewAcousticRepetitionDetector(a.cfg).Detect(words, feats)
	})

	prior := make([]Event, 0, len(reps)+len(prolongs))
	prior = append(prior, reps...)
	prior = append(prior, prolongs...)
	blocks := a.safeDetect("block", func() []Event {
		return NewBlockDetector(a.cfg).Detect(words, prior)
	})

	suppress := make([]Event, 0, len(prolongs)+len(reclassified))
	suppress = append(suppress, prolongs...)
	suppress = append(suppress, reclassified...)

	return mergeEvents(a.cfg, reps, acoustic, prolongs, blocks, suppress)
}

func (a *Analyzer) safeDetect(name string, fn func() []Event) (events []Event) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Warn("detector panicked", logging.Fields{
				"detector": name, "panic": fmt.Sprint(r),
			})
			events = nil
		}
	}()
	return fn()
}
