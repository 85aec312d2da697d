// Package audit keeps an append-only JSONL trail of every domain event.
package audit

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/nskaik/order-payment-api/kit/observability"
)

// Line is one audit record as written to the trail.
type Line struct {
	At      time.Time       `json:"at"`
	Event   string          `json:"event"`
	Key     string          `json:"key,omitempty"`
	Payload json.RawMessage `json:"payload"`
}

type Service struct {
	logger *observability.Logger
	fileMu sync.Mutex
	f      *os.File
}

func NewService(logger *observability.Logger) *Service {
	return &Service{logger: logger}
}

func NewServiceWithFile(logger *observability.Logger, path string) (*Service, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		if logger != nil {
			logger.Error("audit error", "layer", "service", "component", "audit", "method", "NewServiceWithFile", "path", path, "error", err.Error())
		}
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		if logger != nil {
			logger.Error("audit error", "layer", "service", "component", "audit", "method", "NewServiceWithFile", "path", path, "error", err.Error())
		}
		return nil, err
	}
	return &Service{logger: logger, f: f}, nil
}

func (s *Service) Close() error {
	s.fileMu.Lock()
	defer s.fileMu.Unlock()
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	if err != nil && s.logger != nil {
		s.logger.Error("audit error", "layer", "service", "component", "audit", "method", "Close", "error", err.Error())
	}
	s.f = nil
	return err
}

func (s *Service) Record(ctx context.Context, line Line) error {
	if s.logger != nil {
		s.logger.InfoContext(ctx, "audit", "event", line.Event, "key", line.Key)
	}

	s.fileMu.Lock()
	defer s.fileMu.Unlock()
	if s.f == nil {
		return nil
	}
	b, err := json.Marshal(line)
	if err != nil {
		return err
	}
	if _, err := s.f.Write(append(b, '\n')); err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "audit error", "layer", "service", "component", "audit", "method", "Record", "event", line.Event, "error", err.Error())
		}
		return err
	}
	return nil
}
