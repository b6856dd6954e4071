// Package transcribe provides Transcriber implementations for the detection
// pipeline: a Whisper-compatible HTTP service, Google Cloud Speech-to-Text,
// and a static replay source for pre-existing transcripts.
package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Atifue/hacknight-2025-fall/detect"
	"github.com/Atifue/hacknight-2025-fall/logging"
)

type whisperWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type whisperSegment struct {
	Start float64       `json:"start"`
	End   float64       `json:"end"`
	Text  string        `json:"text"`
	Words []whisperWord `json:"words"`
}

type whisperResponse struct {
	Segments []whisperSegment `json:"segments"`
	Language string           `json:"language"`
}

// WhisperClient talks to a Whisper-compatible ASR service that accepts a
// multipart file upload and returns segments with word-level timestamps.
type WhisperClient struct {
	url    string
	client *http.Client
	logger logging.Logger
}

var _ detect.Transcriber = (*WhisperClient)(nil)

func NewWhisperClient(url string, timeout time.Duration) *WhisperClient {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &WhisperClient{
		url:    strings.TrimRight(url, "/"),
		client: &http.Client{Timeout: timeout},
		logger: logging.WithFields(logging.Fields{"component": "whisper_client"}),
	}
}

func (c *WhisperClient) Transcribe(ctx context.Context, filename string) ([]detect.Word, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	fw, err := w.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, err
	}
	fd, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	if _, err = io.Copy(fw, fd); err != nil {
		return nil, err
	}
	if err = w.WriteField("word_timestamps", "true"); err != nil {
		return nil, err
	}
	if err = w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/transcribe", &b)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("asr %s: %s", resp.Status, string(body))
	}

	var out whisperResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("asr decode: %w", err)
	}

	words := flattenSegments(out.Segments)
	c.logger.Debug("transcription complete", logging.Fields{
		"file": filepath.Base(filename), "words": len(words), "language": out.Language,
	})
	return words, nil
}

// flattenSegments collects word entries across segments into a single list
// sorted by start time. Whisper occasionally emits overlapping segment
// boundaries, so the sort is not optional.
func flattenSegments(segments []whisperSegment) []detect.Word {
	var words []detect.Word
	for _, seg := range segments {
		for _, w := range seg.Words {
			text := strings.TrimSpace(w.Word)
			if text == "" {
				continue
			}
			words = append(words, detect.Word{Text: text, Start: w.Start, End: w.End})
		}
	}
	sort.SliceStable(words, func(i, j int) bool { return words[i].Start < words[j].Start })
	return words
}
