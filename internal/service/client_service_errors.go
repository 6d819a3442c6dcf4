package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/vault-browser/internal/adapter"
	"github.com/MKhiriev/vault-browser/internal/logger"
	"github.com/MKhiriev/vault-browser/internal/utils"
)

// ErrorReport is a failure prepared for display.
type ErrorReport struct {
	At time.Time
	// Summary is a one-line, human-readable headline.
	Summary string
	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int
	// Payload is the server's error body pretty-printed as JSON, or
	// {"error": "..."} when there is no body.
	Payload string
	Err     error
}

// FormatError builds the report for err without a timestamp.
func FormatError(err error) ErrorReport {
	report := ErrorReport{Summary: describeError(err), Err: err}

	var respErr *adapter.ResponseError
	if errors.As(err, &respErr) {
		report.StatusCode = respErr.StatusCode
		if len(respErr.Body) > 0 {
			report.Payload = utils.PrettyJSON(respErr.Body)
			return report
		}
	}

	payload, marshalErr := utils.MarshalPretty(map[string]string{"error": err.Error()})
	if marshalErr != nil {
		payload = err.Error()
	}
	report.Payload = payload
	return report
}

// ErrorSink fans reported errors out to subscribers and keeps the latest one.
// Cancellations are dropped.
type ErrorSink struct {
	logger *logger.Logger
	now    func() time.Time

	mu       sync.Mutex
	last     *ErrorReport
	nextID   int
	handlers map[int]func(ErrorReport)
}

// NewErrorSink returns an empty sink.
func NewErrorSink(log *logger.Logger) *ErrorSink {
	return &ErrorSink{
		logger:   log,
		now:      time.Now,
		handlers: make(map[int]func(ErrorReport)),
	}
}

// Report implements [ErrorReporter].
func (s *ErrorSink) Report(err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}

	report := FormatError(err)
	report.At = s.now()
	s.logger.Warn().Err(err).Int("status", report.StatusCode).Msg(report.Summary)

	s.mu.Lock()
	s.last = &report
	ids := make([]int, 0, len(s.handlers))
	for id := range s.handlers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	handlers := make([]func(ErrorReport), 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, s.handlers[id])
	}
	s.mu.Unlock()

	for _, h := range handlers {
		h(report)
	}
}

// Last returns the most recent report.
func (s *ErrorSink) Last() (ErrorReport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return ErrorReport{}, false
	}
	return *s.last, true
}

// Subscribe registers fn for subsequent reports and returns a function that
// removes it.
func (s *ErrorSink) Subscribe(fn func(ErrorReport)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.handlers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.handlers, id)
		s.mu.Unlock()
	}
}
