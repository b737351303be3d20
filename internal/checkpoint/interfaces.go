package checkpoint

import "repopulse/internal/models"

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	Close()
}

// StoreInterface is the set of persisted repository histories, keyed by link.
type StoreInterface interface {
	Load() []models.RepositoryHealthHistory
	Has(link string) bool
	Append(history models.RepositoryHealthHistory)
	Persist() error
	Histories() []models.RepositoryHealthHistory
	Len() int
	Find(link string) (models.RepositoryHealthHistory, bool)
	Close()
}
