package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Atifue/hacknight-2025-fall/detect"
	"github.com/Atifue/hacknight-2025-fall/transcode"
	"github.com/Atifue/hacknight-2025-fall/transcribe"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <audio-file>",
	Short: "Analyze a recording for disfluencies",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

var (
	jsonOutput      bool
	transcriberKind string
	asrURL          string
	transcriptPath  string
	languageCode    string
	ffmpegPath      string
	ffprobePath     string
)

func init() {
	analyzeCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the result as JSON instead of a summary")
	analyzeCmd.Flags().StringVar(&transcriberKind, "transcriber", "whisper", "transcriber backend: whisper, google, static")
	analyzeCmd.Flags().StringVar(&asrURL, "asr-url", "http://localhost:9000", "Whisper-compatible ASR service URL")
	analyzeCmd.Flags().StringVar(&transcriptPath, "transcript", "", "JSON word list for the static transcriber")
	analyzeCmd.Flags().StringVar(&languageCode, "language", "en-US", "language code for Google STT")
	analyzeCmd.Flags().StringVar(&ffmpegPath, "ffmpeg", "ffmpeg", "path to the ffmpeg binary")
	analyzeCmd.Flags().StringVar(&ffprobePath, "ffprobe", "ffprobe", "path to the ffprobe binary")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	inputPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("input file: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	transcriber, cleanup, err := buildTranscriber(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	decoderCfg := transcode.DefaultDecoderConfig()
	decoderCfg.TargetSampleRate = cfg.SampleRate
	decoderCfg.FFmpegPath = ffmpegPath
	decoderCfg.FFprobePath = ffprobePath
	decoder := transcode.NewDecoder(decoderCfg)
	if err := decoder.ValidateConfig(); err != nil {
		return err
	}

	analyzer := detect.NewAnalyzer(cfg, decoder, transcriber, nil)
	result, err := analyzer.DetectAll(ctx, inputPath)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	printSummary(inputPath, result)
	return nil
}

func buildTranscriber(ctx context.Context) (detect.Transcriber, func(), error) {
	noop := func() {}
	switch transcriberKind {
	case "whisper":
		return transcribe.NewWhisperClient(asrURL, 2*time.Minute), noop, nil
	case "google":
		c, err := transcribe.NewGoogleClient(ctx, languageCode)
		if err != nil {
			return nil, nil, err
		}
		return c, func() { _ = c.Close() }, nil
	case "static":
		if transcriptPath == "" {
			return nil, nil, fmt.Errorf("--transcript is required with the static transcriber")
		}
		s, err := transcribe.LoadStatic(transcriptPath)
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown transcriber %q", transcriberKind)
	}
}

func printSummary(inputPath string, result *detect.Result) {
	fmt.Printf("Analysis of %s\n", filepath.Base(inputPath))
	fmt.Printf("  words: %d, events: %d\n", len(result.Words), len(result.Events))

	counts := result.CountByKind()
	for _, kind := range []detect.Kind{
		detect.KindRepetition, detect.KindAcousticRepetition,
		detect.KindProlongation, detect.KindBlock,
	} {
		if counts[kind] > 0 {
			fmt.Printf("  %-20s %d\n", kind, counts[kind])
		}
	}
	if len(result.Events) == 0 {
		fmt.Println("  no disfluencies detected")
		return
	}

	fmt.Println()
	for _, ev := range result.Events {
		fmt.Printf("  [%6.2fs - %6.2fs] %-20s conf=%.2f%s\n",
			ev.Start, ev.End, ev.Kind, ev.Confidence, eventDetail(ev))
	}
}

func eventDetail(ev detect.Event) string {
	switch ev.Kind {
	case detect.KindRepetition:
		return fmt.Sprintf(" %q x%d", ev.Word, ev.Count)
	case detect.KindAcousticRepetition:
		return fmt.Sprintf(" %q x%d before %q", ev.InferredSound, ev.Count, ev.TargetWord)
	case detect.KindProlongation:
		return fmt.Sprintf(" %q voiced=%.0fms (%.0f%%)", ev.Word, ev.VoicedMs, ev.VoicedRatio*100)
	case detect.KindBlock:
		if ev.GapSeconds > 0 {
			return fmt.Sprintf(" %.2fs pause before %q", ev.GapSeconds, ev.Word)
		}
		return fmt.Sprintf(" stuck on %q", ev.Word)
	}
	return ""
}
