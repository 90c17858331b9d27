package logging

import (
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"time"
)

// LogstashWriter mirrors log lines to a Logstash TCP input without ever
// blocking the caller. Lines go through a bounded queue drained by a single
// background goroutine; when the queue is full or Logstash is unreachable,
// lines are dropped.
type LogstashWriter struct {
	addr         string
	dialTimeout  time.Duration
	writeTimeout time.Duration
	retryBackoff time.Duration

	queue chan []byte
	done  chan struct{}

	closeOnce sync.Once
	closed    chan struct{}
}

type Option func(*LogstashWriter)

// WithDialTimeout overrides the TCP dial timeout. Defaults to 2 seconds.
func WithDialTimeout(d time.Duration) Option {
	return func(w *LogstashWriter) {
		w.dialTimeout = d
	}
}

// WithWriteTimeout overrides the TCP write timeout. Defaults to 1 second.
func WithWriteTimeout(d time.Duration) Option {
	return func(w *LogstashWriter) {
		w.writeTimeout = d
	}
}

// WithRetryBackoff overrides the wait before re-dialing after a failed
// connect or write. Defaults to 5 seconds.
func WithRetryBackoff(d time.Duration) Option {
	return func(w *LogstashWriter) {
		w.retryBackoff = d
	}
}

// WithQueueSize overrides the pending line buffer. Defaults to 1024.
func WithQueueSize(n int) Option {
	return func(w *LogstashWriter) {
		if n > 0 {
			w.queue = make(chan []byte, n)
		}
	}
}

func NewLogstashWriter(addr string, opts ...Option) (*LogstashWriter, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("logstash: empty address")
	}

	w := &LogstashWriter{
		addr:         addr,
		dialTimeout:  2 * time.Second,
		writeTimeout: time.Second,
		retryBackoff: 5 * time.Second,
		queue:        make(chan []byte, 1024),
		done:         make(chan struct{}),
		closed:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	go w.drain()
	return w, nil
}

// Write implements io.Writer. It never blocks and never surfaces network
// errors to the log package.
func (w *LogstashWriter) Write(p []byte) (int, error) {
	select {
	case <-w.closed:
		return 0, io.ErrClosedPipe
	default:
	}
	if len(p) == 0 {
		return 0, nil
	}

	line := make([]byte, len(p))
	copy(line, p)
	if line[len(line)-1] != '\n' {
		line = append(line, '\n')
	}

	select {
	case w.queue <- line:
	default:
		// Queue full. Dropping beats blocking a request goroutine.
	}
	return len(p), nil
}

// Close stops the drain goroutine and tears down the connection.
func (w *LogstashWriter) Close() error {
	w.closeOnce.Do(func() {
		close(w.closed)
		<-w.done
	})
	return nil
}

func (w *LogstashWriter) drain() {
	defer close(w.done)

	var conn net.Conn
	defer func() {
		if conn != nil {
			conn.Close()
		}
	}()

	for {
		select {
		case <-w.closed:
			return
		case line := <-w.queue:
			if conn == nil {
				c, err := net.DialTimeout("tcp", w.addr, w.dialTimeout)
				if err != nil {
					w.backoff()
					continue
				}
				conn = c
			}
			if w.writeTimeout > 0 {
				_ = conn.SetWriteDeadline(time.Now().Add(w.writeTimeout))
			}
			if _, err := conn.Write(line); err != nil {
				conn.Close()
				conn = nil
				w.backoff()
			}
		}
	}
}

func (w *LogstashWriter) backoff() {
	if w.retryBackoff <= 0 {
		return
	}
	select {
	case <-w.closed:
	case <-time.After(w.retryBackoff):
	}
}
