package domain

// State is a stage of a validation run.
type State int

const (
	// StateInit is the state before any routes are derived.
	StateInit State = iota
	// StateRoutesBuilt means the route set is complete.
	StateRoutesBuilt
	// StateScanning means content files are being scanned for links.
	StateScanning
	// StateAllValid is terminal: every resolved link is a known route.
	StateAllValid
	// StateBrokenFound is terminal: at least one link is broken.
	StateBrokenFound
)

var stateNames = map[State]string{
	StateInit:        "init",
	StateRoutesBuilt: "routes_built",
	StateScanning:    "scanning",
	StateAllValid:    "all_valid",
	StateBrokenFound: "broken_found",
}

// String returns the snake_case name of the state.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether s ends a run.
func (s State) Terminal() bool {
	return s == StateAllValid || s == StateBrokenFound
}

// BrokenLink is a link whose resolved route is not in the route set.
type BrokenLink struct {
	File     string
	Href     string
	Resolved Route
}

// Accumulator collects broken links across a whole scan so that a run keeps
// going after the first failure.
type Accumulator struct {
	broken []BrokenLink
}

// Check records link as broken unless it was skipped or routes contains it.
// It reports whether the link was recorded.
func (a *Accumulator) Check(link ResolvedLink, routes RouteSet) bool {
	if !link.OK || routes.Has(link.Route) {
		return false
	}
	a.broken = append(a.broken, BrokenLink{
		File:     link.Reference.File.Path,
		Href:     link.Reference.Href,
		Resolved: link.Route,
	})
	return true
}

// Len returns the number of broken links recorded so far.
func (a *Accumulator) Len() int { return len(a.broken) }

// Report closes the scan and returns its terminal report.
func (a *Accumulator) Report(routeCount int) Report {
	state := StateAllValid
	if len(a.broken) > 0 {
		state = StateBrokenFound
	}
	broken := make([]BrokenLink, len(a.broken))
	copy(broken, a.broken)
	return Report{State: state, RouteCount: routeCount, Broken: broken}
}

// Report is the outcome of a validation run.
type Report struct {
	State      State
	RouteCount int
	Broken     []BrokenLink
}

// Valid reports whether no broken links were found.
func (r Report) Valid() bool { return len(r.Broken) == 0 }

// FileGroup holds the broken links of one content file.
type FileGroup struct {
	File  string
	Links []BrokenLink
}

// Groups returns broken links grouped by file, files in first-seen order.
func (r Report) Groups() []FileGroup {
	var groups []FileGroup
	index := make(map[string]int)
	for _, b := range r.Broken {
		i, ok := index[b.File]
		if !ok {
			i = len(groups)
			index[b.File] = i
			groups = append(groups, FileGroup{File: b.File})
		}
		groups[i].Links = append(groups[i].Links, b)
	}
	return groups
}
