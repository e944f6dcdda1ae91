package stt

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"go.uber.org/zap"

	"github.com/satriahrh/bhasha/domain"
	"github.com/satriahrh/bhasha/domain/repositories"
)

// StreamingRecognize rejects audio messages above roughly 25KB
const maxStreamingFrame = 16 * 1024

// GoogleSpeechToText implements SpeechToText for Google Cloud.
// A client is opened per session and closed when the session ends.
type GoogleSpeechToText struct {
	logger *zap.Logger
}

var _ repositories.SpeechToText = (*GoogleSpeechToText)(nil)

func NewGoogleSpeechToText(logger *zap.Logger) *GoogleSpeechToText {
	return &GoogleSpeechToText{logger: logger}
}

func (g *GoogleSpeechToText) InitTranscribeStreaming(ctx context.Context, config repositories.AudioConfig) (repositories.SpeechToTextStreaming, error) {
	// Validate before dialing so an unsupported encoding never opens a client
	encoding, err := getAudioEncoding(config.Encoding)
	if err != nil {
		return nil, err
	}

	client, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create speech client: %w", domain.ErrTranscriptionServiceUnavailable, err)
	}

	stream, err := client.StreamingRecognize(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: failed to create streaming recognize: %w", domain.ErrTranscriptionServiceUnavailable, err)
	}

	recognitionConfig := &speechpb.RecognitionConfig{
		Encoding:        encoding,
		SampleRateHertz: int32(config.SampleRate),
		LanguageCode:    config.Language,
	}

	if err := stream.Send(&speechpb.StreamingRecognizeRequest{
		StreamingRequest: &speechpb.StreamingRecognizeRequest_StreamingConfig{
			StreamingConfig: &speechpb.StreamingRecognitionConfig{
				Config:          recognitionConfig,
				InterimResults:  false, // We only want final results
				SingleUtterance: true,  // Stop at end of utterance
			},
		},
	}); err != nil {
		stream.CloseSend()
		client.Close()
		return nil, fmt.Errorf("%w: failed to send streaming config: %w", domain.ErrTranscriptionServiceUnavailable, err)
	}

	g.logger.Debug("Google streaming recognition started",
		zap.String("encoding", config.Encoding),
		zap.Int("sampleRate", config.SampleRate),
		zap.String("language", config.Language))

	return &GoogleSpeechToTextStream{
		client:     client,
		stream:     stream,
		ctx:        ctx,
		resultChan: make(chan string, 1),
		errorChan:  make(chan error, 1),
	}, nil
}

type GoogleSpeechToTextStream struct {
	client         *speech.Client
	stream         speechpb.Speech_StreamingRecognizeClient
	ctx            context.Context
	audioReceived  bool
	resultChan     chan string
	errorChan      chan error
	receiverActive bool
	closeOnce      sync.Once
}

func (g *GoogleSpeechToTextStream) Stream(data []byte) error {
	// Start the result receiver goroutine only once
	if !g.receiverActive {
		g.receiverActive = true
		go g.receiveResults()
	}

	if len(data) == 0 {
		return nil
	}
	g.audioReceived = true

	if err := g.stream.Send(&speechpb.StreamingRecognizeRequest{
		StreamingRequest: &speechpb.StreamingRecognizeRequest_AudioContent{
			AudioContent: data,
		},
	}); err != nil {
		return fmt.Errorf("%w: failed to send audio data: %w", domain.ErrTranscriptionServiceUnavailable, err)
	}

	return nil
}

func (g *GoogleSpeechToTextStream) End() (string, error) {
	defer g.cleanup()

	if !g.audioReceived {
		g.stream.CloseSend()
		return "", fmt.Errorf("%w: no audio data received", domain.ErrTranscriptionUnintelligible)
	}

	if err := g.stream.CloseSend(); err != nil {
		return "", fmt.Errorf("%w: failed to close send stream: %w", domain.ErrTranscriptionServiceUnavailable, err)
	}

	select {
	case <-g.ctx.Done():
		return "", fmt.Errorf("%w: %w", domain.ErrTranscriptionServiceUnavailable, g.ctx.Err())
	case err := <-g.errorChan:
		if err != nil {
			return "", err
		}
	case result := <-g.resultChan:
		if strings.TrimSpace(result) == "" {
			return "", fmt.Errorf("%w: no speech detected in audio", domain.ErrTranscriptionUnintelligible)
		}
		return result, nil
	}

	return "", fmt.Errorf("%w: unexpected end of transcription", domain.ErrTranscriptionServiceUnavailable)
}

func (g *GoogleSpeechToTextStream) receiveResults() {
	var finalTranscription string

	for {
		resp, err := g.stream.Recv()
		if err == io.EOF {
			g.resultChan <- finalTranscription
			return
		}
		if err != nil {
			g.errorChan <- fmt.Errorf("%w: failed to receive response: %w", domain.ErrTranscriptionServiceUnavailable, err)
			return
		}

		for _, result := range resp.Results {
			if result.IsFinal && len(result.Alternatives) > 0 {
				// Take the best alternative
				finalTranscription += result.Alternatives[0].Transcript
			}
		}
	}
}

// Close abandons the session, releasing the client without waiting for a result
func (g *GoogleSpeechToTextStream) Close() error {
	g.stream.CloseSend()
	g.cleanup()
	return nil
}

func (g *GoogleSpeechToTextStream) cleanup() {
	g.closeOnce.Do(func() {
		if g.client != nil {
			g.client.Close()
		}
	})
}

// TranscribeAudio converts a complete recording to text using a single streaming session
func (g *GoogleSpeechToText) TranscribeAudio(ctx context.Context, audioData []byte, config repositories.AudioConfig) (string, error) {
	stream, err := g.InitTranscribeStreaming(ctx, config)
	if err != nil {
		return "", err
	}

	for _, frame := range splitFrames(audioData, maxStreamingFrame) {
		if err := stream.Stream(frame); err != nil {
			stream.Close()
			return "", err
		}
	}

	return stream.End()
}

// splitFrames cuts a recording into consecutive frames of at most size bytes
func splitFrames(data []byte, size int) [][]byte {
	frames := make([][]byte, 0, (len(data)+size-1)/size)
	for len(data) > size {
		frames = append(frames, data[:size])
		data = data[size:]
	}
	if len(data) > 0 {
		frames = append(frames, data)
	}
	return frames
}

// getAudioEncoding converts string encoding to Google Speech API enum
func getAudioEncoding(encoding string) (speechpb.RecognitionConfig_AudioEncoding, error) {
	switch strings.ToUpper(encoding) {
	case "WAV", "LINEAR16", "PCM":
		return speechpb.RecognitionConfig_LINEAR16, nil
	case "FLAC":
		return speechpb.RecognitionConfig_FLAC, nil
	case "MULAW":
		return speechpb.RecognitionConfig_MULAW, nil
	case "AMR":
		return speechpb.RecognitionConfig_AMR, nil
	case "AMR_WB":
		return speechpb.RecognitionConfig_AMR_WB, nil
	case "OGG_OPUS":
		return speechpb.RecognitionConfig_OGG_OPUS, nil
	case "SPEEX_WITH_HEADER_BYTE":
		return speechpb.RecognitionConfig_SPEEX_WITH_HEADER_BYTE, nil
	case "WEBM_OPUS":
		return speechpb.RecognitionConfig_WEBM_OPUS, nil
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED, fmt.Errorf("unsupported audio encoding: %s", encoding)
	}
}
