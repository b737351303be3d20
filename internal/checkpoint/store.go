package checkpoint

import (
	"errors"
	"fmt"
	json "github.com/goccy/go-json"
	"os"
	"path/filepath"
	"repopulse/internal/models"
	"repopulse/internal/providers"
	"repopulse/internal/structures"
	"sync"
	"time"
)

const corruptSuffix = ".corrupt"

// Store keeps every persisted repository history in memory and rewrites the
// whole checkpoint file on each Persist.
type Store struct {
	mu         sync.RWMutex
	path       string
	mode       os.FileMode
	histories  []models.RepositoryHealthHistory
	links      map[string]struct{}
	compressor CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewStore(conf *structures.Config, compressor CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *Store {
	return &Store{
		path:       conf.Persistence.FilePath,
		mode:       0644,
		histories:  make([]models.RepositoryHealthHistory, 0),
		links:      make(map[string]struct{}),
		compressor: compressor,
		logger:     logger,
		metrics:    metrics,
	}
}

// Load replaces the in-memory set with the content of the checkpoint file.
// A missing or unreadable checkpoint starts an empty set; a malformed one is
// copied aside first so the next Persist does not destroy it.
func (s *Store) Load() []models.RepositoryHealthHistory {
	histories, err := s.read()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warnf(providers.TypeCheckpoint, "Checkpoint %s is unusable, starting empty: %s", s.path, err)
		} else {
			s.logger.Infof(providers.TypeCheckpoint, "No checkpoint at %s, starting empty", s.path)
		}
		histories = make([]models.RepositoryHealthHistory, 0)
	}

	s.mu.Lock()
	s.histories = histories
	s.links = make(map[string]struct{}, len(histories))
	for _, h := range histories {
		s.links[h.GithubLink] = struct{}{}
	}
	s.mu.Unlock()

	s.metrics.SetHistoriesTotal(len(histories))
	s.logger.Infof(providers.TypeCheckpoint, "Loaded %d repository histories", len(histories))
	return s.Histories()
}

func (s *Store) read() ([]models.RepositoryHealthHistory, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	doc, err := s.compressor.Decompress(raw)
	if err != nil {
		s.backup(raw)
		return nil, fmt.Errorf("decompress: %w", err)
	}
	if err := validateDocument(doc); err != nil {
		s.backup(raw)
		return nil, err
	}

	var histories []models.RepositoryHealthHistory
	if err := json.Unmarshal(doc, &histories); err != nil {
		s.backup(raw)
		return nil, fmt.Errorf("decode: %w", err)
	}
	if histories == nil {
		histories = make([]models.RepositoryHealthHistory, 0)
	}
	return histories, nil
}

func (s *Store) backup(raw []byte) {
	target := s.path + corruptSuffix
	if err := os.WriteFile(target, raw, s.mode); err != nil {
		s.logger.Errorf(providers.TypeCheckpoint, "Unable to back up malformed checkpoint to %s: %s", target, err)
		return
	}
	s.logger.Warnf(providers.TypeCheckpoint, "Malformed checkpoint copied to %s", target)
}

func (s *Store) Has(link string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.links[link]
	return ok
}

// Append adds a history to the in-memory set. It is durable only after the
// next successful Persist.
func (s *Store) Append(history models.RepositoryHealthHistory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.histories = append(s.histories, history)
	s.links[history.GithubLink] = struct{}{}
}

// Persist atomically rewrites the checkpoint with the whole in-memory set.
func (s *Store) Persist() error {
	start := time.Now()

	s.mu.RLock()
	jsonData, err := json.Marshal(s.histories)
	count := len(s.histories)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode checkpoint: %w", err)
	}

	data, err := s.compressor.Compress(jsonData)
	if err != nil {
		return fmt.Errorf("compress checkpoint: %w", err)
	}
	if err := s.writeAtomic(data); err != nil {
		return fmt.Errorf("write checkpoint %s: %w", s.path, err)
	}

	s.metrics.ObservePersistenceDuration(time.Since(start))
	s.metrics.SetHistoriesTotal(count)
	s.logger.Debugf(providers.TypeCheckpoint, "Persisted %d repository histories to %s", count, s.path)
	return nil
}

func (s *Store) writeAtomic(data []byte) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmpFile := s.path + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, s.mode)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, s.path)
}

// Histories returns a copy of the in-memory set in persisted order.
func (s *Store) Histories() []models.RepositoryHealthHistory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.RepositoryHealthHistory, len(s.histories))
	copy(out, s.histories)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.histories)
}

func (s *Store) Find(link string) (models.RepositoryHealthHistory, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.histories {
		if h.GithubLink == link {
			return h, true
		}
	}
	return models.RepositoryHealthHistory{}, false
}

func (s *Store) Close() {
	s.compressor.Close()
}
