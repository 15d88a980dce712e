package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"dinercraft/internal/protocol"
	"dinercraft/internal/sim/dining"
)

// Server exposes the restaurant's read-only observer stream over websockets.
// Observers handshake with HELLO, get a WELCOME with the floor parameters,
// then receive one OBS frame per tick until they disconnect.
type Server struct {
	restaurant *dining.Restaurant
	log        *log.Logger

	upgrader websocket.Upgrader
}

func NewServer(r *dining.Restaurant, logger *log.Logger) *Server {
	return &Server{
		restaurant: r,
		log:        logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		sessionID, out := s.handshake(conn)
		if sessionID == "" {
			return
		}
		s.restaurant.ObserverJoin(dining.ObserverJoinRequest{SessionID: sessionID, Out: out})
		defer s.restaurant.ObserverLeave(sessionID)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Writer goroutine.
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case b, ok := <-out:
					if !ok {
						return
					}
					_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		// Reader loop: observers send nothing after HELLO; we read only to
		// notice the disconnect (and service ping/pong).
		for {
			_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}
}

func (s *Server) handshake(conn *websocket.Conn) (sessionID string, out chan []byte) {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return "", nil
	}

	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeHello {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected HELLO"),
			time.Now().Add(time.Second))
		return "", nil
	}
	var hello protocol.HelloMsg
	if err := json.Unmarshal(msg, &hello); err != nil {
		return "", nil
	}
	if hello.ProtocolVersion != protocol.Version {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "bad protocol_version"),
			time.Now().Add(time.Second))
		return "", nil
	}

	sessionID = uuid.NewString()
	cfg := s.restaurant.Config()
	welcome := protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		ObserverID:      sessionID,
		Params: protocol.RestaurantParams{
			RestaurantID: s.restaurant.ID(),
			TickRateHz:   s.restaurant.TickRateHz(),
			FloorSize:    [2]int{cfg.FloorW, cfg.FloorH},
			Seed:         cfg.Seed,
			Tables:       len(cfg.Tables),
			Stations:     len(cfg.Stations),
			MenuDigest:   s.restaurant.Menu().Digest,
		},
	}
	b, err := json.Marshal(welcome)
	if err != nil {
		return "", nil
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		return "", nil
	}
	if s.log != nil {
		s.log.Printf("observer %s joined (%s)", sessionID, hello.ObserverName)
	}

	// OBS frames queue shallow; the loop drops stale frames on overflow.
	return sessionID, make(chan []byte, 8)
}

// MetricsHandler serves the latest loop metrics sample as JSON.
func MetricsHandler(r *dining.Restaurant) http.HandlerFunc {
	return func(rw http.ResponseWriter, req *http.Request) {
		rw.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(rw).Encode(r.Metrics())
	}
}

// ShiftLister is implemented by the index database.
type ShiftLister interface {
	ListShifts(restaurantID string, limit int) ([]dining.ShiftSummary, error)
}

// ShiftsHandler serves recent shift summaries from the index.
func ShiftsHandler(r *dining.Restaurant, idx ShiftLister) http.HandlerFunc {
	return func(rw http.ResponseWriter, req *http.Request) {
		if idx == nil {
			http.Error(rw, "no index configured", http.StatusNotFound)
			return
		}
		shifts, err := idx.ListShifts(r.ID(), 50)
		if err != nil {
			http.Error(rw, err.Error(), http.StatusInternalServerError)
			return
		}
		rw.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(rw).Encode(shifts)
	}
}
