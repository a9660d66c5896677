package kmem

import "github.com/launchdarkly/go-jsonstream/v3/jwriter"

// Statistics describes the current usage of a single Provider.
type Statistics struct {
	AllocationCount  int
	AllocationBytes  int
	MappedRangeCount int
	MappedBytes      int
}

func (s *Statistics) Clear() {
	s.AllocationCount = 0
	s.AllocationBytes = 0
	s.MappedRangeCount = 0
	s.MappedBytes = 0
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.AllocationCount += other.AllocationCount
	s.AllocationBytes += other.AllocationBytes
	s.MappedRangeCount += other.MappedRangeCount
	s.MappedBytes += other.MappedBytes
}

// StatisticsReporter is an optional interface a Provider may implement to
// participate in BuildStatsString.
type StatisticsReporter interface {
	// AddStatistics accumulates the provider's current usage into stats
	AddStatistics(stats *Statistics)
	// PrintDetailedMap writes a provider-defined breakdown of live
	// allocations and mappings into the provided json object
	PrintDetailedMap(json *jwriter.ObjectState)
}

// BuildStatsString builds a JSON report describing the provider's current
// usage. Providers that do not implement StatisticsReporter report their name
// only.
func BuildStatsString(p Provider) string {
	writer := jwriter.NewWriter()

	obj := writer.Object()
	obj.Name("Name").String(p.Name())

	if reporter, ok := p.(StatisticsReporter); ok {
		var stats Statistics
		stats.Clear()
		reporter.AddStatistics(&stats)

		statsJson := obj.Name("Statistics").Object()
		statsJson.Name("AllocationCount").Int(stats.AllocationCount)
		statsJson.Name("AllocationBytes").Int(stats.AllocationBytes)
		statsJson.Name("MappedRangeCount").Int(stats.MappedRangeCount)
		statsJson.Name("MappedBytes").Int(stats.MappedBytes)
		statsJson.End()

		detailJson := obj.Name("DetailedMap").Object()
		reporter.PrintDetailedMap(&detailJson)
		detailJson.End()
	}

	obj.End()
	return string(writer.Bytes())
}
