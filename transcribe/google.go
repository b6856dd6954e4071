package transcribe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"

	"github.com/Atifue/hacknight-2025-fall/detect"
	"github.com/Atifue/hacknight-2025-fall/logging"
)

// GoogleClient transcribes via Google Cloud Speech-to-Text batch
// recognition. Requires GOOGLE_APPLICATION_CREDENTIALS to be set.
type GoogleClient struct {
	client       *speech.Client
	languageCode string
	logger       logging.Logger
}

var _ detect.Transcriber = (*GoogleClient)(nil)

func NewGoogleClient(ctx context.Context, languageCode string) (*GoogleClient, error) {
	c, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("speech client: %w", err)
	}
	if languageCode == "" {
		languageCode = "en-US"
	}
	return &GoogleClient{
		client:       c,
		languageCode: languageCode,
		logger:       logging.WithFields(logging.Fields{"component": "google_stt"}),
	}, nil
}

func (c *GoogleClient) Close() error {
	return c.client.Close()
}

func (c *GoogleClient) Transcribe(ctx context.Context, filename string) ([]detect.Word, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			// Encoding left unspecified so the service reads it from the
			// container header; the CLI hands over files as-is.
			LanguageCode:          c.languageCode,
			EnableWordTimeOffsets: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: data},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("recognize: %w", err)
	}

	var words []detect.Word
	for _, result := range resp.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		for _, wi := range result.Alternatives[0].Words {
			words = append(words, detect.Word{
				Text:  wi.Word,
				Start: wi.StartTime.AsDuration().Seconds(),
				End:   wi.EndTime.AsDuration().Seconds(),
			})
		}
	}

	c.logger.Debug("transcription complete", logging.Fields{
		"file": filepath.Base(filename), "words": len(words),
	})
	return words, nil
}
