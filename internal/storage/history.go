package storage

import (
	"bytes"
	"fmt"
	"time"

	"clickclick/internal/core/model"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

var sessionPrefix = []byte("session/")

type sessionRecord struct {
	ID       string    `yaml:"id"`
	Started  time.Time `yaml:"started"`
	Ended    time.Time `yaml:"ended"`
	X        int       `yaml:"x"`
	Y        int       `yaml:"y"`
	Clicks   uint64    `yaml:"clicks"`
	Failures uint64    `yaml:"failures"`
}

// Totals aggregates all recorded sessions.
type Totals struct {
	Sessions int
	Clicks   uint64
	Failures uint64
	Active   time.Duration
}

// History stores finished automation sessions in badger, ordered by start
// time.
type History struct {
	db *badger.DB
}

// OpenHistory opens or creates the history store in dir.
func OpenHistory(dir string) (*History, error) {
	options := badger.DefaultOptions(dir).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	return openHistory(options)
}

// OpenMemoryHistory opens a history store that lives only in memory.
func OpenMemoryHistory() (*History, error) {
	options := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil)
	return openHistory(options)
}

func openHistory(options badger.Options) (*History, error) {
	db, err := badger.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return &History{db: db}, nil
}

// Record stores session. Sessions without an ID get a fresh one.
func (history *History) Record(session model.Session) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	} else if _, err := uuid.Parse(session.ID); err != nil {
		return fmt.Errorf("record session: invalid id %q: %w", session.ID, err)
	}

	value, err := yaml.Marshal(sessionRecord{
		ID:       session.ID,
		Started:  session.Started,
		Ended:    session.Ended,
		X:        session.Position.X,
		Y:        session.Position.Y,
		Clicks:   session.Clicks,
		Failures: session.Failures,
	})
	if err != nil {
		return fmt.Errorf("record session: marshal: %w", err)
	}

	err = history.db.Update(func(txn *badger.Txn) error {
		return txn.Set(sessionKey(session), value)
	})
	if err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	return nil
}

// Recent returns up to limit sessions, newest first.
func (history *History) Recent(limit int) ([]model.Session, error) {
	if limit <= 0 {
		return nil, nil
	}
	sessions := make([]model.Session, 0, limit)
	err := history.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		options.Prefix = sessionPrefix
		it := txn.NewIterator(options)
		defer it.Close()

		seek := append(bytes.Clone(sessionPrefix), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(sessionPrefix) && len(sessions) < limit; it.Next() {
			session, err := decodeSession(it.Item())
			if err != nil {
				return err
			}
			sessions = append(sessions, session)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read recent sessions: %w", err)
	}
	return sessions, nil
}

// Totals sums every recorded session.
func (history *History) Totals() (Totals, error) {
	var totals Totals
	err := history.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Prefix = sessionPrefix
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			session, err := decodeSession(it.Item())
			if err != nil {
				return err
			}
			totals.Sessions++
			totals.Clicks += session.Clicks
			totals.Failures += session.Failures
			totals.Active += session.Duration()
		}
		return nil
	})
	if err != nil {
		return Totals{}, fmt.Errorf("read session totals: %w", err)
	}
	return totals, nil
}

// Close flushes and closes the store.
func (history *History) Close() error {
	if history == nil || history.db == nil {
		return nil
	}
	return history.db.Close()
}

func decodeSession(item *badger.Item) (model.Session, error) {
	var record sessionRecord
	err := item.Value(func(value []byte) error {
		return yaml.Unmarshal(value, &record)
	})
	if err != nil {
		return model.Session{}, fmt.Errorf("decode session %s: %w", item.Key(), err)
	}
	return model.Session{
		ID:       record.ID,
		Started:  record.Started,
		Ended:    record.Ended,
		Position: model.Point{X: record.X, Y: record.Y},
		Clicks:   record.Clicks,
		Failures: record.Failures,
	}, nil
}

func sessionKey(session model.Session) []byte {
	return []byte(fmt.Sprintf("%s%020d/%s", sessionPrefix, session.Started.UnixNano(), session.ID))
}
