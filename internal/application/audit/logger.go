// Package audit registra las acciones administrativas de forma asíncrona y best-effort:
// un fallo al escribir el registro nunca llega al caso de uso que lo originó.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/domain/repository"
)

// Resultados reportados a Metrics.
const (
	OutcomeWritten       = "written"
	OutcomeFailed        = "failed"
	OutcomeDropped       = "dropped"
	OutcomePublishFailed = "publish_failed"
)

// Recorder puerto que usan los casos de uso. Record nunca bloquea ni devuelve error.
type Recorder interface {
	Record(entry entity.AdminLogEntry)
}

// Publisher destino opcional de los eventos (p. ej. Kafka).
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// Metrics contador opcional de resultados del registro.
type Metrics interface {
	AuditRecorded(outcome string)
}

// Config tamaño de la cola y timeout por escritura.
type Config struct {
	QueueSize    int
	WriteTimeout time.Duration
}

// Option configura dependencias opcionales del Logger.
type Option func(*Logger)

// WithPublisher publica cada entrada escrita además de persistirla.
func WithPublisher(p Publisher) Option {
	return func(l *Logger) { l.publisher = p }
}

// WithMetrics reporta escrituras, fallos y descartes.
func WithMetrics(m Metrics) Option {
	return func(l *Logger) { l.metrics = m }
}

// WithClock reemplaza la fuente de tiempo de CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) { l.now = now }
}

var _ Recorder = (*Logger)(nil)

// Logger cola acotada drenada por una goroutine que escribe en AdminLogRepository.
type Logger struct {
	repo         repository.AdminLogRepository
	log          zerolog.Logger
	breaker      *gobreaker.CircuitBreaker
	publisher    Publisher
	metrics      Metrics
	writeTimeout time.Duration
	now          func() time.Time

	mu     sync.RWMutex
	closed bool
	queue  chan entity.AdminLogEntry
	done   chan struct{}
}

// NewLogger crea el Logger y arranca su worker. Llamar Close al apagar para drenar la cola.
func NewLogger(repo repository.AdminLogRepository, log zerolog.Logger, cfg Config, opts ...Option) *Logger {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 5 * time.Second
	}
	l := &Logger{
		repo:         repo,
		log:          log,
		writeTimeout: cfg.WriteTimeout,
		now:          time.Now,
		queue:        make(chan entity.AdminLogEntry, cfg.QueueSize),
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.breaker = newBreaker(l.log)

	go l.run()
	return l
}

func newBreaker(log zerolog.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "admin_logs",
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.8
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("cambio de estado del circuit breaker de auditoría")
		},
	})
}

// Record encola la entrada. Si la cola está llena o el Logger está cerrado, la entrada se
// descarta y se deja constancia en el log operativo.
func (l *Logger) Record(entry entity.AdminLogEntry) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = l.now()
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		l.drop(entry, "logger cerrado")
		return
	}
	select {
	case l.queue <- entry:
	default:
		l.drop(entry, "cola llena")
	}
}

// Close deja de aceptar entradas y espera a que la cola se drene o a que ctx venza.
func (l *Logger) Close(ctx context.Context) error {
	l.mu.Lock()
	if !l.closed {
		l.closed = true
		close(l.queue)
	}
	l.mu.Unlock()

	select {
	case <-l.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Logger) run() {
	defer close(l.done)
	for entry := range l.queue {
		l.write(entry)
	}
}

func (l *Logger) write(entry entity.AdminLogEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), l.writeTimeout)
	defer cancel()

	_, err := l.breaker.Execute(func() (any, error) {
		return nil, l.repo.Insert(ctx, &entry)
	})
	if err != nil {
		l.log.Error().Err(err).
			Int64("admin_id", entry.AdminID).
			Str("action", entry.Action).
			Str("table", entry.TableName).
			Msg("no se pudo registrar la acción administrativa")
		l.count(OutcomeFailed)
		return
	}
	l.count(OutcomeWritten)

	if l.publisher == nil {
		return
	}
	if err := l.publisher.Publish(ctx, entry.TableName, NewEvent(entry)); err != nil {
		l.log.Warn().Err(err).Str("table", entry.TableName).Msg("no se pudo publicar la acción administrativa")
		l.count(OutcomePublishFailed)
	}
}

func (l *Logger) drop(entry entity.AdminLogEntry, reason string) {
	l.log.Warn().
		Int64("admin_id", entry.AdminID).
		Str("action", entry.Action).
		Str("table", entry.TableName).
		Str("reason", reason).
		Msg("acción administrativa descartada")
	l.count(OutcomeDropped)
}

func (l *Logger) count(outcome string) {
	if l.metrics != nil {
		l.metrics.AuditRecorded(outcome)
	}
}
