// Package events fans session-change notifications out to connected
// clients over WebSocket.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"golang.org/x/time/rate"
)

// Server broadcasts messages to every subscribed WebSocket client.
type Server struct {
	// Window size of each subscriber's message queue. A subscriber whose
	// queue is full is closed as too slow.
	subscriberMessageBuffer int

	// Rate limit applied to broadcasts.
	publishLimiter *rate.Limiter

	logf func(format string, v ...any)

	subscribersMu sync.Mutex
	subscribers   map[int]*subscriber
	nextID        int
}

type subscriber struct {
	id        int
	messc     chan []byte
	closeSlow func()
}

func NewServer() *Server {
	return &Server{
		subscriberMessageBuffer: 12,
		publishLimiter:          rate.NewLimiter(rate.Every(time.Millisecond*100), 8),
		logf:                    log.Printf,
		subscribers:             make(map[int]*subscriber),
	}
}

// Publish broadcasts v as JSON to all subscribers. Subscribers that
// cannot keep up are disconnected.
func (s *Server) Publish(v any) {
	msg, err := json.Marshal(v)
	if err != nil {
		s.logf("events: marshal: %v", err)
		return
	}

	s.publishLimiter.Wait(context.Background())

	s.subscribersMu.Lock()
	defer s.subscribersMu.Unlock()

	for _, sub := range s.subscribers {
		select {
		case sub.messc <- msg:
		default:
			go sub.closeSlow()
		}
	}
}

// SubscriberCount returns the number of connected subscribers.
func (s *Server) SubscriberCount() int {
	s.subscribersMu.Lock()
	defer s.subscribersMu.Unlock()
	return len(s.subscribers)
}

func (s *Server) addSubscriber(sub *subscriber) {
	s.subscribersMu.Lock()
	defer s.subscribersMu.Unlock()
	sub.id = s.nextID
	s.nextID++
	s.subscribers[sub.id] = sub
}

func (s *Server) removeSubscriber(sub *subscriber) {
	s.subscribersMu.Lock()
	defer s.subscribersMu.Unlock()
	delete(s.subscribers, sub.id)
}

// SubscribeHandler upgrades the request to a WebSocket and streams
// broadcast messages to it until the client goes away.
func (s *Server) SubscribeHandler(w http.ResponseWriter, r *http.Request) {
	err := s.subscribe(w, r)
	if errors.Is(err, context.Canceled) {
		return
	}
	if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
		websocket.CloseStatus(err) == websocket.StatusGoingAway {
		return
	}
	if err != nil {
		s.logf("events: subscribe: %v", err)
	}
}

func (s *Server) subscribe(w http.ResponseWriter, r *http.Request) error {
	var mu sync.Mutex
	var conn *websocket.Conn
	var closed bool

	sub := &subscriber{
		messc: make(chan []byte, s.subscriberMessageBuffer),
		closeSlow: func() {
			mu.Lock()
			defer mu.Unlock()
			closed = true
			if conn != nil {
				conn.Close(websocket.StatusPolicyViolation, "connection too slow to keep up with events")
			}
		},
	}
	s.addSubscriber(sub)
	defer s.removeSubscriber(sub)

	connRes, err := websocket.Accept(w, r, nil)
	if err != nil {
		return err
	}

	// closeSlow may have fired from a broadcast before the connection was
	// recorded; don't adopt a connection that is already condemned.
	mu.Lock()
	if closed {
		mu.Unlock()
		return net.ErrClosed
	}
	conn = connRes
	mu.Unlock()
	defer conn.CloseNow()

	// CloseRead keeps consuming control frames and cancels the context
	// when the client stops reading.
	ctx := conn.CloseRead(r.Context())

	for {
		select {
		case msg := <-sub.messc:
			if err := writeTimeout(ctx, time.Second*5, conn, msg); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func writeTimeout(ctx context.Context, timeout time.Duration, conn *websocket.Conn, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return conn.Write(ctx, websocket.MessageText, msg)
}
