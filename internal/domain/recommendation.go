package domain

// RecommendationType identifies which engine produced a persisted score.
type RecommendationType string

const (
	RecTypeContentBased  RecommendationType = "content_based"
	RecTypeCollaborative RecommendationType = "collaborative"
	RecTypeHybrid        RecommendationType = "hybrid"
)

// Recommendation is the persisted scoring artifact. Unique key is
// (user_id, movie_id, type); writes are upserts, last write wins.
type Recommendation struct {
	UserID  int64              `json:"user_id"`
	MovieID int64              `json:"movie_id"`
	Score   float64            `json:"score"`
	Type    RecommendationType `json:"type"`
}

type RecommendationMeta struct {
	Engine      string `json:"engine"`
	CacheHit    bool   `json:"cache_hit"`
	GeneratedAt string `json:"generated_at"`
	TotalCount  int    `json:"total_count"`
}

type RecommendationResult struct {
	Movies   []Movie
	Engine   string
	CacheHit bool
}

type BatchStatus string

const (
	StatusSuccess BatchStatus = "success"
	StatusFailed  BatchStatus = "failed"
)

type BatchUserResult struct {
	UserID          int64       `json:"user_id"`
	Recommendations []Movie     `json:"recommendations,omitempty"`
	Status          BatchStatus `json:"status"`
	Error           string      `json:"error,omitempty"`
}

type BatchSummary struct {
	SuccessCount     int   `json:"success_count"`
	FailedCount      int   `json:"failed_count"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

type BatchResponse struct {
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalUsers int               `json:"total_users"`
	Results    []BatchUserResult `json:"results"`
	Summary    BatchSummary      `json:"summary"`
	Metadata   BatchMeta         `json:"metadata"`
}

type BatchMeta struct {
	GeneratedAt string `json:"generated_at"`
}
