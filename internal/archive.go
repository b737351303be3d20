package internal

import (
	"repopulse/internal/checkpoint"
	"repopulse/internal/providers"
)

// Archive is read access to the checkpoint outside of a pipeline run.
type Archive struct {
	Store  checkpoint.StoreInterface
	logger providers.Logger
}

func NewArchive(store checkpoint.StoreInterface, logger providers.Logger) *Archive {
	return &Archive{Store: store, logger: logger}
}

func (a *Archive) Close() {
	a.Store.Close()
	a.logger.Close()
}
