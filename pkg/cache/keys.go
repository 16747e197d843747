package cache

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// HTTPKey generates a key for cached HTTP responses.
	HTTPKey(namespace, key string) string

	// LayoutKey generates a key for a computed layout, derived from the
	// document content hash plus the layout options.
	LayoutKey(docHash string, opts LayoutKeyOpts) string
}

// LayoutKeyOpts are the layout parameters that affect the cache key.
// Two layouts with identical documents but different options must not
// share an entry.
type LayoutKeyOpts struct {
	View          string  `json:"view"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	Today         string  `json:"today"`
	RowHeight     float64 `json:"row_height"`
	Gap           float64 `json:"gap"`
	MaxLabelWidth float64 `json:"max_label_width"`
	PointBudget   float64 `json:"point_budget"`
	GanttBudget   float64 `json:"gantt_budget"`
	Highlight     string  `json:"highlight,omitempty"`
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
// Format: http:namespace:key
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// LayoutKey generates a key for layout caching.
// Format: layout:hash(docHash, opts)
func (k *DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
