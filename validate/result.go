// Package validate cross-checks an instance graph against a fetched schema
// model and reports violations and warnings.
package validate

// Status is the overall outcome of a validation run. Only StatusFailed
// should fail the pipeline stage; warnings still report success.
type Status string

const (
	StatusPassed  Status = "PASSED"
	StatusWarning Status = "WARNING"
	StatusFailed  Status = "FAILED"
)

// IssueKind discriminates the validation findings.
type IssueKind string

const (
	// KindUndefinedClass flags a declared type missing from a non-empty
	// schema class set. Warning.
	KindUndefinedClass IssueKind = "undefined_class"

	// KindDomainMismatch flags a property whose declared domain class is not
	// among the instance's types. Warning.
	KindDomainMismatch IssueKind = "domain_mismatch"

	// KindCardinalityViolation flags an exact-cardinality=1 property with a
	// value count other than one. Violation.
	KindCardinalityViolation IssueKind = "cardinality_violation"

	// KindMinCardinalityViolation flags a property with fewer values than
	// its declared minimum. Violation.
	KindMinCardinalityViolation IssueKind = "min_cardinality_violation"
)

// Check names recorded in Result.ChecksPerformed.
const (
	CheckClassMembership = "class_membership"
	CheckPropertyDomains = "property_domains_ranges"
	CheckCardinality     = "cardinality_constraints"
)

// Issue is one validation finding. It is pure output; the graph is never
// mutated.
type Issue struct {
	Kind     IssueKind `json:"type"`
	Instance string    `json:"instance"`
	Class    string    `json:"class,omitempty"`
	Property string    `json:"property,omitempty"`

	// Expected and Actual describe exact-cardinality findings; MinExpected
	// replaces Expected for minimum-cardinality findings.
	Expected    int `json:"expected,omitempty"`
	MinExpected int `json:"min_expected,omitempty"`
	Actual      int `json:"actual,omitempty"`

	// ExpectedDomain and ActualTypes describe domain findings.
	ExpectedDomain string   `json:"expected_domain,omitempty"`
	ActualTypes    []string `json:"actual_types,omitempty"`

	Message string `json:"message"`
}

// Result is the outcome of one validation run.
type Result struct {
	Violations         []Issue  `json:"violations"`
	Warnings           []Issue  `json:"warnings"`
	ChecksPerformed    []string `json:"checks_performed"`
	InstancesValidated int      `json:"instances_validated"`
	TriplesValidated   int      `json:"triples_validated"`
}

// Status derives the overall outcome: FAILED on any violation, WARNING on
// any warning, PASSED otherwise.
func (r *Result) Status() Status {
	if len(r.Violations) > 0 {
		return StatusFailed
	}
	if len(r.Warnings) > 0 {
		return StatusWarning
	}
	return StatusPassed
}

// Instance is the aggregated view of all triples sharing one subject.
// Types preserves declaration order; Properties preserves value order and
// keeps duplicates.
type Instance struct {
	Types      []string
	Properties map[string][]string
}
