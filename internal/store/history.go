package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"landctl/internal/types"
)

var bucketLandingRequests = []byte("landing_requests")

// LandingRecord is one submit attempt as recorded in history, whether
// the service accepted it or not.
type LandingRecord struct {
	Seq        uint64              `json:"seq"`
	Repo       string              `json:"repo"`
	PullNumber int                 `json:"pull_number"`
	HeadSHA    string              `json:"head_sha"`
	JobID      int                 `json:"job_id,omitempty"`
	Outcome    types.SubmitOutcome `json:"outcome"`
	Reason     string              `json:"reason,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

type HistoryStore interface {
	Append(ctx context.Context, record LandingRecord) (LandingRecord, error)
	List(ctx context.Context, limit int) ([]LandingRecord, error)
	Close() error
}

type bboltHistoryStore struct {
	db *bolt.DB
	mu sync.Mutex
}

func NewHistoryStore(path string) (HistoryStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("history db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := initHistorySchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &bboltHistoryStore{db: db}, nil
}

func initHistorySchema(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketLandingRequests)
		return err
	})
}

func (s *bboltHistoryStore) Append(ctx context.Context, record LandingRecord) (LandingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.Repo = strings.TrimSpace(record.Repo)
	if record.Repo == "" {
		return LandingRecord{}, errors.New("history record repo is required")
	}
	if record.PullNumber <= 0 {
		return LandingRecord{}, errors.New("history record pull number is required")
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketLandingRequests)
		if b == nil {
			return errors.New("landing_requests bucket missing")
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		record.Seq = seq
		raw, err := json.Marshal(record)
		if err != nil {
			return err
		}
		return b.Put(sequenceKey(seq), raw)
	})
	if err != nil {
		return LandingRecord{}, err
	}
	return record, nil
}

func (s *bboltHistoryStore) List(ctx context.Context, limit int) ([]LandingRecord, error) {
	out := make([]LandingRecord, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketLandingRequests)
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var record LandingRecord
			if err := json.Unmarshal(v, &record); err != nil {
				return err
			}
			out = append(out, record)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Seq > out[j].Seq
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *bboltHistoryStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func sequenceKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
