package controllers

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"cgmd/internal/poller"
	"cgmd/internal/providers"
)

const streamWriteTimeout = 10 * time.Second

type StreamController struct {
	logger   providers.Logger
	stream   poller.StreamInterface
	upgrader websocket.Upgrader
}

func NewStreamController(logger providers.Logger, stream poller.StreamInterface) *StreamController {
	return &StreamController{
		logger: logger,
		stream: stream,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Stream upgrades to a websocket and bridges one poll-loop subscription to
// the socket. Closing the socket cancels the subscription, which
// interrupts any in-progress wait.
func (sc *StreamController) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := sc.upgrader.Upgrade(w, r, nil)
	if err != nil {
		sc.logger.Warnf(providers.TypeGet, "websocket upgrade failed: %s", err)
		return
	}
	defer conn.Close()

	sub := sc.stream.Subscribe(r.Context())
	defer sub.Cancel()

	// Read pump: the consumer sends nothing meaningful, but reading is
	// required to notice the close frame.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				sub.Cancel()
				return
			}
		}
	}()

	for emission := range sub.Emissions() {
		payload, err := json.Marshal(emission)
		if err != nil {
			sc.logger.Errorf(providers.TypeGet, "stream %s: marshal: %s", sub.ID, err)
			return
		}
		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			sc.logger.Debugf(providers.TypeGet, "stream %s: write failed, closing: %s", sub.ID, err)
			return
		}
	}
}
