package tier

// Tier identifies which stage of the fallback policy produced a result list.
type Tier string

// Fallback tiers, tried in order.
const (
	// Scoped ranks the category-filtered catalog against the query.
	Scoped Tier = "scoped"
	// Widened ranks the whole catalog, ignoring the category.
	Widened Tier = "widened"
	// Unfiltered returns the whole catalog by descending rating.
	Unfiltered Tier = "unfiltered"
)

// Exact reports whether the results matched the query within the requested scope.
func (t Tier) Exact() bool { return t == Scoped }
