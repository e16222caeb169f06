package handlers

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/jobboard/internal/listing"
	"github.com/yoockh/jobboard/internal/models"
	"github.com/yoockh/jobboard/internal/services"
)

const (
	liveReadTimeout  = 60 * time.Second
	liveWriteTimeout = 10 * time.Second
	liveMaxMessage   = 4 << 10
)

// LiveHandler serves the as-you-type filter: every {"q": "..."} message
// from the client is answered with the rendered card list for that filter.
type LiveHandler struct {
	jobs      services.JobService
	logoToken string
	log       *logrus.Logger
	upgrader  websocket.Upgrader

	readTimeout time.Duration
	pingPeriod  time.Duration // must be shorter than readTimeout
}

func NewLiveHandler(jobs services.JobService, logoToken string, log *logrus.Logger) *LiveHandler {
	return &LiveHandler{
		jobs:      jobs,
		logoToken: logoToken,
		log:       log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		readTimeout: liveReadTimeout,
		pingPeriod:  liveReadTimeout * 9 / 10,
	}
}

// WithReadTimeout replaces the idle read deadline. Pings go out at 9/10 of it.
func (h *LiveHandler) WithReadTimeout(d time.Duration) *LiveHandler {
	h.readTimeout = d
	h.pingPeriod = d * 9 / 10
	return h
}

type liveQuery struct {
	Q string `json:"q"`
}

func (h *LiveHandler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response
		return
	}
	defer conn.Close()

	conn.SetReadLimit(liveMaxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(h.readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.readTimeout))
	})

	done := make(chan struct{})
	defer close(done)
	go h.ping(conn, done)

	ctx := c.Request.Context()
	var buf bytes.Buffer
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.WithError(err).Debug("live search connection closed")
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(h.readTimeout))

		var msg liveQuery
		if err := json.Unmarshal(data, &msg); err != nil {
			// plain text is taken as the query itself
			msg.Q = string(data)
		}

		cards := listing.Build(h.jobs.List(ctx), models.KeywordFilter(msg.Q), h.logoToken)
		buf.Reset()
		if err := listing.RenderFragment(&buf, cards); err != nil {
			return
		}

		_ = conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, buf.Bytes()); err != nil {
			return
		}
	}
}

// ping keeps an idle connection inside its read deadline. WriteControl is
// safe to call alongside the reader loop's writes.
func (h *LiveHandler) ping(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(h.pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(liveWriteTimeout)); err != nil {
				return
			}
		}
	}
}
