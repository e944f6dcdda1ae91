package websocket

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/satriahrh/bhasha/domain/repositories"
	"github.com/satriahrh/bhasha/usecase"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed between frames from the peer.
	readWait = 60 * time.Second

	// Maximum message size allowed from peer.
	maxMessageSize = 512 * 1024 // 512KB for audio chunks
)

var upgrader = websocket.Upgrader{
	// Allow connections from any origin
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Handler streams microphone audio from the page into a transcription session.
// Each connection owns at most one session at a time and nothing is shared across
// connections.
type Handler struct {
	transcription *usecase.TranscriptionService
	logger        *zap.Logger
}

func NewHandler(transcription *usecase.TranscriptionService, logger *zap.Logger) *Handler {
	return &Handler{transcription: transcription, logger: logger}
}

// HandleTranscribe upgrades the request and serves the connection until it closes
func (h *Handler) HandleTranscribe(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection", zap.Error(err))
		return err
	}

	session := &connection{
		conn:          conn,
		transcription: h.transcription,
		logger:        h.logger.With(zap.String("remote", c.RealIP())),
	}
	session.serve(c.Request().Context())
	return nil
}

type connection struct {
	conn          *websocket.Conn
	transcription *usecase.TranscriptionService
	stream        repositories.SpeechToTextStreaming
	logger        *zap.Logger
}

func (c *connection) serve(parent context.Context) {
	defer func() {
		c.abort()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)

	for {
		c.conn.SetReadDeadline(time.Now().Add(readWait))
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("WebSocket error", zap.Error(err))
			}
			return
		}

		switch messageType {
		case websocket.TextMessage:
			c.processMessage(parent, message)
		case websocket.BinaryMessage:
			c.processAudioChunk(parent, message)
		}
	}
}

func (c *connection) processMessage(parent context.Context, message []byte) {
	msg, err := ParseControlMessage(message)
	if err != nil {
		c.write(CreateProtocolErrorMessage(err.Error()))
		return
	}

	switch m := msg.(type) {
	case *ListeningStartMessage:
		c.abort()
		if err := c.open(parent, m.Encoding, m.SampleRate); err != nil {
			c.write(CreateErrorMessage(err))
		}
	case *ListeningEndMessage:
		c.finish()
	case *PingMessage:
		c.write(CreatePongMessage(m.Data))
	}
}

// processAudioChunk opens a session with default audio settings if the page
// skipped listening_start
func (c *connection) processAudioChunk(parent context.Context, data []byte) {
	if c.stream == nil {
		if err := c.open(parent, "", 0); err != nil {
			c.write(CreateErrorMessage(err))
			return
		}
	}

	if err := c.stream.Stream(data); err != nil {
		c.logger.Warn("Failed to forward audio chunk", zap.Error(err))
		c.abort()
		c.write(CreateErrorMessage(err))
	}
}

func (c *connection) open(parent context.Context, encoding string, sampleRate int) error {
	stream, err := c.transcription.OpenStream(parent, encoding, sampleRate)
	if err != nil {
		return err
	}
	c.stream = stream
	c.logger.Info("Transcription session opened", zap.String("encoding", encoding), zap.Int("sampleRate", sampleRate))
	return nil
}

func (c *connection) finish() {
	if c.stream == nil {
		c.write(CreateProtocolErrorMessage("no active transcription session"))
		return
	}

	stream := c.stream
	c.stream = nil

	text, err := stream.End()
	if err != nil {
		c.logger.Warn("Transcription failed", zap.Error(err))
		c.write(CreateErrorMessage(err))
		return
	}
	c.write(CreateTranscriptionMessage(text))
}

// abort releases the current session, if any, without waiting for a result
func (c *connection) abort() {
	if c.stream == nil {
		return
	}
	if err := c.stream.Close(); err != nil {
		c.logger.Warn("Failed to close transcription session", zap.Error(err))
	}
	c.stream = nil
}

func (c *connection) write(v interface{}) {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(v); err != nil {
		c.logger.Warn("Failed to write message", zap.Error(err))
	}
}
