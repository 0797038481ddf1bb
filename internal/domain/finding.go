package domain

// FindingSeverity indicates how severe a finding is.
type FindingSeverity string

const (
	// SeverityError indicates a finding that fails the run.
	SeverityError FindingSeverity = "error"
	// SeverityWarning indicates a finding that should be reviewed.
	SeverityWarning FindingSeverity = "warning"
)

// Finding type constants identify the kind of issue found.
const (
	FindingRouteCollision       = "route_collision"
	FindingMalformedFrontmatter = "malformed_frontmatter"
)

// Finding represents an issue discovered while inspecting the content tree.
type Finding struct {
	Type     string
	Severity FindingSeverity
	Message  string
	Path     string
}
