package pipeline

// Reporter receives progress events for user-facing output
type Reporter interface {
	DetectedDomain(url, domain string)
	ChangelogReached(url string)
	Extracted(url string, count int)
	Stored(out Outcome)
	Failed(out Outcome)
}

// NopReporter discards all events
type NopReporter struct{}

func (NopReporter) DetectedDomain(string, string) {}
func (NopReporter) ChangelogReached(string)       {}
func (NopReporter) Extracted(string, int)         {}
func (NopReporter) Stored(Outcome)                {}
func (NopReporter) Failed(Outcome)                {}
