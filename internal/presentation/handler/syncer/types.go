package syncer

import "github.com/roach88/nyx/internal/domain"

type syncRequest struct {
	LocalChanges []domain.Change `json:"localChanges"`
}

type syncResponse struct {
	Status  string               `json:"status"`
	Results []domain.SyncOutcome `json:"results"`
}
