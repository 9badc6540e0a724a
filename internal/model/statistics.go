package model

// BatchStatistics summarizes one processed file. It is computed once, after
// every verdict for the file has been collected, never updated incrementally.
type BatchStatistics struct {
	TotalInput    int
	FilteredOut   int
	Processed     int
	FallbackCount int
	CountsByLabel map[Label]int
}
