package stream

import (
	"errors"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ErrUnknownSource is returned by an OpenFunc for names it cannot serve
var ErrUnknownSource = errors.New("unknown source")

// Source produces one payload per step
type Source interface {
	// Next advances one step. ok is false once the source is exhausted.
	Next() (payload any, ok bool, err error)
}

// OpenFunc opens the source for a name taken from the request
type OpenFunc func(name string) (Source, error)

// Message is the envelope written to viewers
type Message struct {
	Type    string `json:"type"` // "frame", "end" or "error"
	Name    string `json:"name"`
	Seq     uint64 `json:"seq,omitempty"`
	Payload any    `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Config configures a Server
type Config struct {
	Open     OpenFunc
	Param    string        // query parameter naming the source, "name" if empty
	Interval time.Duration // pause between steps, zero runs flat out
	Logger   *log.Logger
}

type room struct {
	hub     *Hub
	src     Source
	started bool
}

// Server streams each named source to every viewer watching it. The first
// viewer of a name opens and starts the source; later viewers join the
// running stream.
type Server struct {
	open     OpenFunc
	param    string
	interval time.Duration
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	rooms map[string]*room
	done  chan struct{}
	once  sync.Once
	wg    sync.WaitGroup
}

// NewServer creates a server
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	param := cfg.Param
	if param == "" {
		param = "name"
	}
	return &Server{
		open:     cfg.Open,
		param:    param,
		interval: cfg.Interval,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		rooms: make(map[string]*room),
		done:  make(chan struct{}),
	}
}

// ServeHTTP upgrades the request and subscribes it to the named stream
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get(s.param)
	if name == "" {
		http.Error(w, "missing "+s.param, http.StatusBadRequest)
		return
	}

	rm, err := s.room(name)
	if err != nil {
		if errors.Is(err, ErrUnknownSource) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		s.logger.Printf("failed to open %s: %v", name, err)
		http.Error(w, "failed to open "+name, http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("upgrade failed for %s: %v", name, err)
		s.abandon(name, rm)
		return
	}

	sub, ok := rm.hub.Subscribe(conn)
	if !ok {
		s.abandon(name, rm)
		message := websocket.FormatCloseMessage(websocket.CloseGoingAway, "stream ended")
		_ = conn.WriteMessage(websocket.CloseMessage, message)
		_ = conn.Close()
		return
	}
	s.start(name, rm)

	// Reading keeps control frames flowing and notices the viewer leaving
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			rm.hub.Unsubscribe(sub)
			return
		}
	}
}

// room returns the stream for name, opening its source if none exists.
// Opening runs without the lock; when two viewers race, the first room
// registered wins and the other source is dropped unused.
func (s *Server) room(name string) (*room, error) {
	s.mu.Lock()
	rm, ok := s.rooms[name]
	s.mu.Unlock()
	if ok {
		return rm, nil
	}

	src, err := s.open(name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if rm, ok := s.rooms[name]; ok {
		return rm, nil
	}
	rm = &room{hub: NewHub(s.logger), src: src}
	s.rooms[name] = rm
	return rm, nil
}

// abandon forgets a room nobody got to watch
func (s *Server) abandon(name string, rm *room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rm.started || rm.hub.Len() > 0 {
		return
	}
	if s.rooms[name] == rm {
		delete(s.rooms, name)
	}
}

func (s *Server) start(name string, rm *room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rm.started {
		return
	}
	rm.started = true
	s.wg.Add(1)
	go s.run(name, rm)
}

func (s *Server) run(name string, rm *room) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		if s.rooms[name] == rm {
			delete(s.rooms, name)
		}
		s.mu.Unlock()
		rm.hub.Close("stream ended")
	}()

	var tick <-chan time.Time
	if s.interval > 0 {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for seq := uint64(1); ; seq++ {
		if tick != nil {
			select {
			case <-tick:
			case <-s.done:
				return
			}
		} else {
			select {
			case <-s.done:
				return
			default:
			}
		}

		payload, ok, err := rm.src.Next()
		switch {
		case err != nil:
			s.logger.Printf("stream %s failed at step %d: %v", name, seq, err)
			_, _ = rm.hub.Broadcast(Message{Type: "error", Name: name, Seq: seq, Error: err.Error()})
			return
		case !ok:
			_, _ = rm.hub.Broadcast(Message{Type: "end", Name: name, Seq: seq - 1})
			s.logger.Printf("stream %s finished after %d steps", name, seq-1)
			return
		}

		sent, err := rm.hub.Broadcast(Message{Type: "frame", Name: name, Seq: seq, Payload: payload})
		if err != nil {
			s.logger.Printf("stream %s: %v", name, err)
			return
		}
		if sent == 0 && rm.hub.Len() == 0 {
			s.logger.Printf("stream %s has no viewers left", name)
			return
		}
	}
}

// Active returns how many streams are running
func (s *Server) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}

// Close stops every stream and waits for them to finish
func (s *Server) Close() {
	s.once.Do(func() { close(s.done) })
	s.wg.Wait()
}
