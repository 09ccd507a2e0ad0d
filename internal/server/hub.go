package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"gocv.io/x/gocv"

	"github.com/ayusman/signdata/internal/feedback"
)

const (
	clientBuffer = 16
	writeTimeout = 2 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// feedbackMessage is what websocket clients receive for every frame.
type feedbackMessage struct {
	feedback.Overlay
	Timestamp int64 `json:"timestamp"`
}

type client struct {
	send chan []byte
}

// Hub broadcasts capture feedback to websocket clients and keeps the latest
// annotated frame for the MJPEG preview. It implements feedback.Sink; Render
// never blocks on a client, slow clients just miss messages.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	last    []byte

	frameMu    sync.Mutex
	frame      []byte
	frameReady chan struct{}
	viewers    atomic.Int32
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]struct{}),
		frameReady: make(chan struct{}),
	}
}

// Render sends the overlay to every connected client and, when someone is
// watching the preview, publishes the frame as JPEG.
func (h *Hub) Render(frame *gocv.Mat, o feedback.Overlay) error {
	msg, err := json.Marshal(feedbackMessage{Overlay: o, Timestamp: time.Now().UnixMilli()})
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.last = msg
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
		}
	}
	h.mu.Unlock()

	if frame == nil || frame.Empty() || h.viewers.Load() == 0 {
		return nil
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, *frame)
	if err != nil {
		return err
	}
	defer buf.Close()
	h.publishFrame(buf.GetBytes())
	return nil
}

// Clients returns the number of connected websocket clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request to a websocket and streams feedback to it
// until either side closes. New clients first receive the latest overlay.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	c := &client{send: make(chan []byte, clientBuffer)}

	h.mu.Lock()
	if h.last != nil {
		c.send <- h.last
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
	}()

	// Reads only detect the peer going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case msg := <-c.send:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}
}

// publishFrame stores the latest JPEG and wakes every preview stream.
func (h *Hub) publishFrame(jpeg []byte) {
	data := make([]byte, len(jpeg))
	copy(data, jpeg)

	h.frameMu.Lock()
	h.frame = data
	close(h.frameReady)
	h.frameReady = make(chan struct{})
	h.frameMu.Unlock()
}

// latestFrame returns the current JPEG and a channel closed when it is replaced.
func (h *Hub) latestFrame() ([]byte, <-chan struct{}) {
	h.frameMu.Lock()
	defer h.frameMu.Unlock()
	return h.frame, h.frameReady
}
