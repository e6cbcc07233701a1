package realtime

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/BruksfildServices01/coach-calendar/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 32
)

var ErrSlowConsumer = errors.New("realtime: slow consumer")

// NewUpgrader accepts same-host requests and the configured origins.
func NewUpgrader(allowedOrigins []string) *websocket.Upgrader {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}

	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			if _, ok := allowed[origin]; ok {
				return true
			}
			return origin == "http://"+r.Host || origin == "https://"+r.Host
		},
	}
}

// Stream is one WebSocket connection with a read pump and a write pump.
type Stream struct {
	conn *websocket.Conn
	kind string
	send chan []byte

	done      chan struct{}
	closeOnce sync.Once
}

func Upgrade(up *websocket.Upgrader, w http.ResponseWriter, r *http.Request, kind string) (*Stream, error) {
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}

	metrics.OpenStreams.WithLabelValues(kind).Inc()

	return &Stream{
		conn: conn,
		kind: kind,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}, nil
}

// Start launches both pumps. onMessage runs on the read pump goroutine.
func (s *Stream) Start(onMessage func([]byte)) {
	go s.writePump()
	go s.readPump(onMessage)
}

// Done is closed when the stream ends for any reason.
func (s *Stream) Done() <-chan struct{} {
	return s.done
}

// Send queues v as a JSON text frame. A consumer that falls behind the send
// buffer is disconnected.
func (s *Stream) Send(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	select {
	case <-s.done:
		return ErrClosed
	default:
	}

	select {
	case s.send <- b:
		return nil
	case <-s.done:
		return ErrClosed
	default:
		s.Close()
		return ErrSlowConsumer
	}
}

// CloseWith sends a close frame carrying code and reason, then closes.
func (s *Stream) CloseWith(code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	s.Close()
}

func (s *Stream) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.conn.Close()
		metrics.OpenStreams.WithLabelValues(s.kind).Dec()
	})
}

func (s *Stream) readPump(onMessage func([]byte)) {
	defer s.Close()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("stream closed unexpectedly", "kind", s.kind, "error", err)
			}
			return
		}

		if onMessage != nil {
			onMessage(raw)
		}
	}
}

func (s *Stream) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.Close()
	}()

	for {
		select {
		case <-s.done:
			return

		case msg := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
