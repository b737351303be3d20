package controllers

import (
	json "github.com/goccy/go-json"
	"net/http"
	"repopulse/internal/checkpoint"
	"repopulse/internal/models"
	"repopulse/internal/providers"
	"strconv"
)

type HistoryController struct {
	logger providers.Logger
	store  checkpoint.StoreInterface
	cache  providers.CacheProviderInterface
}

type historySummary struct {
	GithubLink  string  `json:"github_link"`
	Months      int     `json:"months"`
	FinalStatus float64 `json:"final_status"`
	LatestMonth string  `json:"latest_month,omitempty"`
	LatestScore float64 `json:"latest_score"`
	LatestLabel string  `json:"latest_label"`
	Meaning     string  `json:"meaning"`
}

func NewHistoryController(logger providers.Logger, store checkpoint.StoreInterface, cache providers.CacheProviderInterface) *HistoryController {
	return &HistoryController{
		logger: logger,
		store:  store,
		cache:  cache,
	}
}

func writeJSON(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// serveFromCacheOrCompute answers from the cache when possible. Keys must
// identify immutable content: a persisted history never changes, and the
// listing key carries the number of histories.
func (hc *HistoryController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := hc.cache.Get(cacheKey); ok {
		writeJSON(w, data)
		return
	}

	result, err := compute()
	if err != nil {
		hc.logger.Errorf(providers.TypeHTTP, "Unable to build %s: %s", cacheKey, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		hc.logger.Errorf(providers.TypeHTTP, "Unable to encode %s: %s", cacheKey, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	hc.cache.Set(cacheKey, gson)
	writeJSON(w, gson)
}

func (hc *HistoryController) GetHistories(w http.ResponseWriter, r *http.Request) {
	histories := hc.store.Histories()
	hc.serveFromCacheOrCompute(w, "histories:"+strconv.Itoa(len(histories)), func() (any, error) {
		out := make([]historySummary, 0, len(histories))
		for _, h := range histories {
			out = append(out, summarize(h))
		}
		return out, nil
	})
}

func (hc *HistoryController) GetHistory(w http.ResponseWriter, r *http.Request) {
	link := r.URL.Query().Get("link")
	if link == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	history, ok := hc.store.Find(link)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	hc.serveFromCacheOrCompute(w, "history:"+link, func() (any, error) {
		return history, nil
	})
}

func summarize(h models.RepositoryHealthHistory) historySummary {
	s := historySummary{
		GithubLink:  h.GithubLink,
		Months:      len(h.MonthlyMetrics),
		FinalStatus: h.FinalStatus,
		LatestLabel: models.LabelDataInsufficient.String(),
		Meaning:     models.LabelDataInsufficient.Description(),
	}
	if latest, ok := h.Latest(); ok {
		s.LatestMonth = latest.Month
		s.LatestScore = latest.Score
		s.LatestLabel = latest.Label.String()
		s.Meaning = latest.Label.Description()
	}
	return s
}
