package db

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/nskaik/order-payment-api/kit/broker"
)

// Record is one journaled domain event.
type Record struct {
	AggregateID string          `json:"aggregate_id"`
	EventName   string          `json:"event_name"`
	Payload     json.RawMessage `json:"payload"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// Journal keeps an append-only stream of events per aggregate. With a file
// attached every record is also written as one JSON line and replayed on
// the next start.
type Journal struct {
	mu      sync.RWMutex
	streams map[string][]Record
	fileMu  sync.Mutex
	f       *os.File
	now     func() time.Time
}

func NewJournal() *Journal {
	return &Journal{streams: make(map[string][]Record), now: time.Now}
}

func NewJournalWithFile(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		slog.Error("journal open", "layer", "store", "component", "journal", "path", path, "err", err)
		return nil, errors.Join(ErrInternal, err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		slog.Error("journal open", "layer", "store", "component", "journal", "path", path, "err", err)
		return nil, errors.Join(ErrInternal, err)
	}

	j := NewJournal()
	j.f = f
	if err := j.replay(f); err != nil {
		_ = f.Close()
		slog.Error("journal replay", "layer", "store", "component", "journal", "path", path, "err", err)
		return nil, errors.Join(ErrInternal, err)
	}
	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		_ = f.Close()
		return nil, errors.Join(ErrInternal, err)
	}
	return j, nil
}

func (j *Journal) replay(r io.ReadSeeker) error {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return err
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	j.mu.Lock()
	defer j.mu.Unlock()
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return err
		}
		j.streams[rec.AggregateID] = append(j.streams[rec.AggregateID], rec)
	}
	return scanner.Err()
}

func (j *Journal) Close() error {
	j.fileMu.Lock()
	defer j.fileMu.Unlock()
	if j.f == nil {
		return nil
	}
	err := j.f.Close()
	j.f = nil
	return err
}

func (j *Journal) Append(ctx context.Context, aggregateID string, evt broker.Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		slog.ErrorContext(ctx, "journal append", "layer", "store", "component", "journal", "aggregate_id", aggregateID, "event", evt.Name(), "err", err)
		return errors.Join(ErrInternal, err)
	}
	rec := Record{AggregateID: aggregateID, EventName: evt.Name(), Payload: payload, OccurredAt: j.now().UTC()}

	j.mu.Lock()
	j.streams[aggregateID] = append(j.streams[aggregateID], rec)
	j.mu.Unlock()

	j.fileMu.Lock()
	defer j.fileMu.Unlock()
	if j.f == nil {
		return nil
	}
	line, err := json.Marshal(rec)
	if err != nil {
		return errors.Join(ErrInternal, err)
	}
	if _, err := j.f.Write(append(line, '\n')); err != nil {
		slog.ErrorContext(ctx, "journal write", "layer", "store", "component", "journal", "aggregate_id", aggregateID, "event", evt.Name(), "err", err)
		return errors.Join(ErrInternal, err)
	}
	return nil
}

// Load returns a copy of the aggregate's stream in append order.
func (j *Journal) Load(ctx context.Context, aggregateID string) []Record {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return append([]Record(nil), j.streams[aggregateID]...)
}
