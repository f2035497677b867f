package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ANSI color codes for log levels
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
)

// Options configures the combined logger.
type Options struct {
	ServiceName  string
	LogDir       string
	BufferSize   int
	KafkaBrokers []string // empty disables Kafka shipping
	KafkaTopic   string
}

// formatAttrs renders handler and record attributes as " key=value" pairs.
func formatAttrs(handlerAttrs []slog.Attr, record slog.Record) string {
	var b strings.Builder
	write := func(a slog.Attr) bool {
		if a.Equal(slog.Attr{}) {
			return true
		}
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value.Resolve().Any())
		return true
	}
	for _, a := range handlerAttrs {
		write(a)
	}
	record.Attrs(write)
	return b.String()
}

func attrsToMap(handlerAttrs []slog.Attr, record slog.Record) map[string]any {
	fields := make(map[string]any, len(handlerAttrs)+record.NumAttrs())
	for _, a := range handlerAttrs {
		fields[a.Key] = a.Value.Resolve().Any()
	}
	record.Attrs(func(a slog.Attr) bool {
		v := a.Value.Resolve().Any()
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		fields[a.Key] = v
		return true
	})
	return fields
}

func appendAttrs(base, extra []slog.Attr) []slog.Attr {
	out := make([]slog.Attr, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}

// KafkaHandler sends logs to Kafka topic asynchronously.
type KafkaHandler struct {
	producer sarama.AsyncProducer
	topic    string
	service  string
	attrs    []slog.Attr
	logChan  chan slog.Record
	wg       *sync.WaitGroup
	quitChan chan struct{}
}

// NewKafkaHandler initializes a new KafkaHandler connected to the given brokers.
func NewKafkaHandler(brokers []string, topic, serviceName string, bufferSize int) (*KafkaHandler, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = false
	config.Producer.Return.Errors = true
	config.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewAsyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create async producer: %w", err)
	}
	return NewKafkaHandlerWithProducer(producer, topic, serviceName, bufferSize), nil
}

// NewKafkaHandlerWithProducer wraps an existing producer.
func NewKafkaHandlerWithProducer(producer sarama.AsyncProducer, topic, serviceName string, bufferSize int) *KafkaHandler {
	handler := &KafkaHandler{
		producer: producer,
		topic:    topic,
		service:  serviceName,
		logChan:  make(chan slog.Record, bufferSize),
		wg:       &sync.WaitGroup{},
		quitChan: make(chan struct{}),
	}

	handler.wg.Add(2)
	go handler.processLogs()
	go handler.handleProducerErrors()

	return handler
}

func (k *KafkaHandler) send(record slog.Record) {
	logEntry := map[string]any{
		"time":    record.Time.Format(time.RFC3339),
		"level":   record.Level.String(),
		"msg":     record.Message,
		"service": k.service,
	}
	if fields := attrsToMap(k.attrs, record); len(fields) > 0 {
		logEntry["attrs"] = fields
	}
	payload, err := json.Marshal(logEntry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal log entry: %v\n", err)
		return
	}

	k.producer.Input() <- &sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(k.service),
		Value: sarama.ByteEncoder(payload),
	}
}

// processLogs publishes queued records until Close, then drains what is left.
func (k *KafkaHandler) processLogs() {
	defer k.wg.Done()
	for {
		select {
		case record := <-k.logChan:
			k.send(record)
		case <-k.quitChan:
			for {
				select {
				case record := <-k.logChan:
					k.send(record)
				default:
					return
				}
			}
		}
	}
}

// handleProducerErrors processes producer errors.
func (k *KafkaHandler) handleProducerErrors() {
	defer k.wg.Done()
	for {
		select {
		case err, ok := <-k.producer.Errors():
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "failed to write message to kafka: %v\n", err)
		case <-k.quitChan:
			return
		}
	}
}

// Enabled checks if the level is enabled.
func (k *KafkaHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return true
}

// Handle sends logs into a channel for asynchronous processing.
func (k *KafkaHandler) Handle(ctx context.Context, record slog.Record) error {
	select {
	case k.logChan <- record:
	default:
		fmt.Fprintln(os.Stderr, "kafka log channel is full, dropping log message")
	}
	return nil
}

// WithAttrs returns a handler sharing the same producer with extra attributes.
func (k *KafkaHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *k
	clone.attrs = appendAttrs(k.attrs, attrs)
	return &clone
}

// WithGroup adds a group to the handler.
func (k *KafkaHandler) WithGroup(name string) slog.Handler {
	return k
}

// Close gracefully shuts down KafkaHandler.
func (k *KafkaHandler) Close() error {
	close(k.quitChan)
	k.wg.Wait()
	if err := k.producer.Close(); err != nil {
		return fmt.Errorf("failed to close producer: %w", err)
	}
	return nil
}

// FileHandler saves logs to a rotated file asynchronously.
type FileHandler struct {
	writer   io.WriteCloser
	attrs    []slog.Attr
	logChan  chan slog.Record
	wg       *sync.WaitGroup
	quitChan chan struct{}
}

// NewFileHandler initializes a new FileHandler writing to <logDir>/<serviceName>/app.log.
func NewFileHandler(logDir, serviceName string, bufferSize int) (*FileHandler, error) {
	dir := filepath.Join(logDir, serviceName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return NewFileHandlerWithWriter(&lumberjack.Logger{
		Filename:   filepath.Join(dir, "app.log"),
		MaxSize:    100, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   true,
	}, bufferSize), nil
}

// NewFileHandlerWithWriter wraps an arbitrary writer.
func NewFileHandlerWithWriter(w io.WriteCloser, bufferSize int) *FileHandler {
	handler := &FileHandler{
		writer:   w,
		logChan:  make(chan slog.Record, bufferSize),
		wg:       &sync.WaitGroup{},
		quitChan: make(chan struct{}),
	}

	handler.wg.Add(1)
	go handler.processLogs()

	return handler
}

func (f *FileHandler) write(record slog.Record) {
	line := fmt.Sprintf("[%s] - %s - %s%s\n",
		record.Level.String(),
		record.Time.Format(time.RFC3339),
		record.Message,
		formatAttrs(f.attrs, record),
	)
	if _, err := io.WriteString(f.writer, line); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write log file: %v\n", err)
	}
}

// processLogs reads log records from a channel and writes them to the file.
func (f *FileHandler) processLogs() {
	defer f.wg.Done()
	for {
		select {
		case record := <-f.logChan:
			f.write(record)
		case <-f.quitChan:
			for {
				select {
				case record := <-f.logChan:
					f.write(record)
				default:
					return
				}
			}
		}
	}
}

// Enabled checks if the level is enabled.
func (f *FileHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return true
}

// Handle sends logs into a channel for asynchronous processing.
func (f *FileHandler) Handle(ctx context.Context, record slog.Record) error {
	select {
	case f.logChan <- record:
	default:
		fmt.Fprintln(os.Stderr, "file log channel is full, dropping log message")
	}
	return nil
}

// WithAttrs returns a handler sharing the same file with extra attributes.
func (f *FileHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *f
	clone.attrs = appendAttrs(f.attrs, attrs)
	return &clone
}

// WithGroup adds a group to the handler.
func (f *FileHandler) WithGroup(name string) slog.Handler {
	return f
}

// Close gracefully shuts down FileHandler.
func (f *FileHandler) Close() error {
	close(f.quitChan)
	f.wg.Wait()
	return f.writer.Close()
}

// StdoutHandler writes colored lines synchronously.
type StdoutHandler struct {
	mu     *sync.Mutex
	writer io.Writer
	attrs  []slog.Attr
}

// NewStdoutHandler initializes a new StdoutHandler on os.Stdout.
func NewStdoutHandler() *StdoutHandler {
	return NewWriterHandler(os.Stdout)
}

// NewWriterHandler initializes a colored handler on an arbitrary writer.
func NewWriterHandler(w io.Writer) *StdoutHandler {
	return &StdoutHandler{mu: &sync.Mutex{}, writer: w}
}

// Enabled checks if the level is enabled.
func (s *StdoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return true
}

// Handle outputs the record with a level color.
func (s *StdoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var color string
	switch record.Level {
	case slog.LevelDebug:
		color = ColorBlue
	case slog.LevelInfo:
		color = ColorGreen
	case slog.LevelWarn:
		color = ColorYellow
	case slog.LevelError:
		color = ColorRed
	default:
		color = ColorReset
	}
	line := fmt.Sprintf("%s[%s]%s - %s - %s%s\n",
		color,
		record.Level.String(),
		ColorReset,
		record.Time.Format("2006-01-02 15:04:05"),
		record.Message,
		formatAttrs(s.attrs, record),
	)

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := io.WriteString(s.writer, line)
	return err
}

// WithAttrs returns a handler sharing the same writer with extra attributes.
func (s *StdoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &StdoutHandler{mu: s.mu, writer: s.writer, attrs: appendAttrs(s.attrs, attrs)}
}

// WithGroup adds a group to the handler.
func (s *StdoutHandler) WithGroup(name string) slog.Handler {
	return s
}

// Close is a no-op for synchronous handler.
func (s *StdoutHandler) Close() error {
	return nil
}

// MultiHandler combines multiple handlers.
type MultiHandler struct {
	handlers []slog.Handler
}

// NewMultiHandler initializes a new MultiHandler.
func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	return &MultiHandler{
		handlers: handlers,
	}
}

// Enabled checks if the level is enabled for any handler.
func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle adds the record to all handlers.
func (m *MultiHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, h := range m.handlers {
		if err := h.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// WithAttrs adds attributes to all handlers.
func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return NewMultiHandler(handlers...)
}

// WithGroup adds a group to all handlers.
func (m *MultiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return NewMultiHandler(handlers...)
}

// CloseAll closes all handlers that implement the Close method.
func (m *MultiHandler) CloseAll() {
	for _, h := range m.handlers {
		if closer, ok := h.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "failed to close log handler: %v\n", err)
			}
		}
	}
}

// NewLogger initializes the combined logger with Stdout, File and, when brokers
// are configured, Kafka handlers.
func NewLogger(opts Options) (*slog.Logger, error) {
	fileHandler, err := NewFileHandler(opts.LogDir, opts.ServiceName, opts.BufferSize)
	if err != nil {
		return nil, err
	}

	handlers := []slog.Handler{NewStdoutHandler(), fileHandler}

	if len(opts.KafkaBrokers) > 0 && opts.KafkaTopic != "" {
		kafkaHandler, err := NewKafkaHandler(opts.KafkaBrokers, opts.KafkaTopic, opts.ServiceName, opts.BufferSize)
		if err != nil {
			fileHandler.Close()
			return nil, err
		}
		handlers = append(handlers, kafkaHandler)
	}

	return slog.New(NewMultiHandler(handlers...)), nil
}

// Close flushes and closes every handler behind logger, if it was built by NewLogger.
func Close(logger *slog.Logger) {
	if multiHandler, ok := logger.Handler().(*MultiHandler); ok {
		multiHandler.CloseAll()
	}
}
