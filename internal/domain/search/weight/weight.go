package weight

// Weight is the retrieval blending strategy.
type Weight string

// Retrieval weight constants.
const (
	// Mixed blends semantic and keyword matching by a configured percentage.
	Mixed    Weight = "Mixed"
	Semantic Weight = "Semantic"
	Keyword  Weight = "Keyword"
)

// IsValid checks if the weight is one of the supported values.
func (w Weight) IsValid() bool {
	return w == Mixed || w == Semantic || w == Keyword
}
