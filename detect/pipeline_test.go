package detect

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/Atifue/hacknight-2025-fall/logging"
	"github.com/Atifue/hacknight-2025-fall/transcode"
)

type fixedTranscriber struct {
	words []Word
	err   error
}

func (f *fixedTranscriber) Transcribe(_ context.Context, _ string) ([]Word, error) {
	return f.words, f.err
}

func newTestAnalyzer(tr Transcriber) *Analyzer {
	return NewAnalyzer(DefaultConfig(), transcode.NewDecoder(nil), tr, &logging.NoOpLogger{})
}

func TestDetectAllTranscriptionFailureIsEmptyNotError(t *testing.T) {
	a := newTestAnalyzer(&fixedTranscriber{err: errors.New("asr down")})
	result, err := a.DetectAll(context.Background(), "missing.wav")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Words) != 0 || len(result.Events) != 0 {
		t.Errorf("result not empty: %+v", result)
	}
}

func TestDetectAllTooFewWords(t *testing.T) {
	a := newTestAnalyzer(&fixedTranscriber{words: []Word{{Text: "hi", Start: 0.1, End: 0.3}}})
	result, err := a.DetectAll(context.Background(), "short.wav")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Words) != 1 {
		t.Errorf("words = %d, want 1", len(result.Words))
	}
	if len(result.Events) != 0 {
		t.Errorf("events = %d, want 0", len(result.Events))
	}
}

func TestDetectAllDecodeFailureStillFindsRepetitions(t *testing.T) {
	words := wordSeq(2.0, 0.3, 0.1, "can", "can", "can", "we", "go")
	dcfg := transcode.DefaultDecoderConfig()
	dcfg.FFprobePath = "/nonexistent/ffprobe"
	dcfg.FFmpegPath = "/nonexistent/ffmpeg"
	a := NewAnalyzer(DefaultConfig(), transcode.NewDecoder(dcfg), &fixedTranscriber{words: words}, &logging.NoOpLogger{})

	result, err := a.DetectAll(context.Background(), "missing.wav")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Events) != 1 {
		t.Fatalf("got %d events, want 1: %+v", len(result.Events), result.Events)
	}
	if result.Events[0].Kind != KindRepetition || result.Events[0].Word != "can" {
		t.Errorf("unexpected event: %+v", result.Events[0])
	}
}

func TestAnalyzeWordsCombinesDetectors(t *testing.T) {
	a := newTestAnalyzer(nil)

	// A word repetition run and a 1.7s gap block in one transcript.
	words := wordSeq(2.0, 0.3, 0.1, "can", "can", "can", "we")
	last := words[len(words)-1]
	words = append(words, Word{Text: "go", Start: last.End + 1.7, End: last.End + 2.0})

	feats := &stubFeatures{}
	events := a.AnalyzeWords(words, feats)

	counts := map[Kind]int{}
	for _, ev := range events {
		counts[ev.Kind]++
	}
	if counts[KindRepetition] != 1 {
		t.Errorf("repetitions = %d, want 1: %+v", counts[KindRepetition], events)
	}
	if counts[KindBlock] != 1 {
		t.Errorf("blocks = %d, want 1: %+v", counts[KindBlock], events)
	}

	for i, ev := range events {
		if ev.Start > ev.End {
			t.Errorf("event %d has start %v after end %v", i, ev.Start, ev.End)
		}
		if ev.Start < words[0].Start || ev.End > words[len(words)-1].End {
			t.Errorf("event %d spans [%v, %v], outside the transcript", i, ev.Start, ev.End)
		}
		if i > 0 && ev.Start < events[i-1].Start {
			t.Errorf("events not sorted by start: %+v", events)
		}
	}
}

func TestAnalyzeWordsIsDeterministic(t *testing.T) {
	a := newTestAnalyzer(nil)
	words := wordSeq(2.0, 0.3, 0.1, "can", "can", "can", "we", "go")
	feats := &stubFeatures{onsets: burstTrain(6.0, 0.12, 5)}

	first := a.AnalyzeWords(words, feats)
	second := a.AnalyzeWords(words, feats)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated analysis differs:\n%+v\n%+v", first, second)
	}
}

func TestAnalyzeWordsTooFew(t *testing.T) {
	a := newTestAnalyzer(nil)
	if events := a.AnalyzeWords([]Word{{Text: "hi", Start: 0, End: 0.2}}, &stubFeatures{}); events != nil {
		t.Errorf("got %v, want nil", events)
	}
}

type panickyFeatures struct{ stubFeatures }

func (p *panickyFeatures) RMSProfile(_, _ float64) ([]float64, float64) {
	panic("bad slice math")
}

func TestDetectorPanicIsContained(t *testing.T) {
	a := newTestAnalyzer(nil)
	words := wordSeq(2.0, 0.6, 0.1, "can", "can", "can", "wheel")

	events := a.AnalyzeWords(words, &panickyFeatures{})

	// The prolongation detector dies on RMSProfile; the repetition
	// detector still reports its run.
	found := false
	for _, ev := range events {
		if ev.Kind == KindRepetition {
			found = true
		}
		if ev.Kind == KindProlongation {
			t.Errorf("prolongation event from a panicked detector: %+v", ev)
		}
	}
	if !found {
		t.Errorf("repetition missing after detector panic: %+v", events)
	}
}
