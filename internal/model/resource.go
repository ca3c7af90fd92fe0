package model

const (
	ResourceTypeVideo   = "video"
	ResourceTypeArticle = "article"
	ResourceTypePDF     = "pdf"
	ResourceTypeLink    = "link"
	ResourceTypeOther   = "other"
)

// Resource is a learning resource shared by a student. The embedding is
// optional: a resource without one is stored normally but stays out of
// semantic search until the backfill job re-embeds it.
type Resource struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Type       string    `json:"type"`
	Link       string    `json:"link"`
	UploadedBy string    `json:"uploaded_by"`
	Embedding  []float32 `json:"-"`
	Ctime      int64     `json:"ctime"`
	Mtime      int64     `json:"mtime"`
}

// RankedResource is a resource annotated with its similarity score.
type RankedResource struct {
	Resource
	Score float64 `json:"score"`
}

func ValidResourceType(t string) bool {
	switch t {
	case ResourceTypeVideo, ResourceTypeArticle, ResourceTypePDF, ResourceTypeLink, ResourceTypeOther:
		return true
	}
	return false
}
