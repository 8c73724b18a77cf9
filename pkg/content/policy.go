package content

import (
	"fmt"
	"strings"

	"github.com/colorbulb/nexteliteweb2/pkg/models"
)

// Op is a kind of mutation.
type Op string

const (
	OpAdd     Op = "add"
	OpUpdate  Op = "update"
	OpRemove  Op = "remove"
	OpReplace Op = "replace"
	OpSet     Op = "set"
)

// FailurePolicy decides what a caller sees when a remote write fails.
type FailurePolicy int

const (
	// Propagate makes the caller wait for the remote write and return its error.
	Propagate FailurePolicy = iota
	// Swallow queues the remote write and returns at once; failures are logged.
	Swallow
)

func (p FailurePolicy) String() string {
	if p == Swallow {
		return "swallow"
	}
	return "propagate"
}

func parseFailurePolicy(s string) (FailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "propagate":
		return Propagate, nil
	case "swallow":
		return Swallow, nil
	}
	return 0, fmt.Errorf("unknown failure policy %q", s)
}

type policyKey struct {
	coll models.Collection
	op   Op
}

// Policy maps (collection, operation) to a FailurePolicy. Pairs that are not
// listed swallow failures.
type Policy map[policyKey]FailurePolicy

// DefaultPolicy surfaces failures only where an editor is waiting on the
// result: creating or editing courses, posts, announcements and list items.
func DefaultPolicy() Policy {
	return Policy{
		{models.CollectionCourses, OpAdd}:          Propagate,
		{models.CollectionCourses, OpUpdate}:       Propagate,
		{models.CollectionCourses, OpRemove}:       Swallow,
		{models.CollectionBlogPosts, OpAdd}:        Propagate,
		{models.CollectionBlogPosts, OpUpdate}:     Propagate,
		{models.CollectionBlogPosts, OpRemove}:     Swallow,
		{models.CollectionLeads, OpAdd}:            Swallow,
		{models.CollectionAnnouncements, OpAdd}:    Propagate,
		{models.CollectionAnnouncements, OpUpdate}: Propagate,
		{models.CollectionAnnouncements, OpRemove}: Propagate,
		{models.CollectionCategories, OpAdd}:       Propagate,
		{models.CollectionCategories, OpRemove}:    Propagate,
		{models.CollectionInstructors, OpAdd}:      Propagate,
		{models.CollectionInstructors, OpRemove}:   Propagate,
		{models.CollectionLevels, OpAdd}:           Propagate,
		{models.CollectionLevels, OpRemove}:        Propagate,
		{models.CollectionTeam, OpReplace}:         Swallow,
		{models.CollectionTestimonials, OpReplace}: Swallow,
		{models.CollectionSocialFeed, OpReplace}:   Swallow,
		{models.CollectionSettings, OpSet}:         Swallow,
		{models.CollectionPageContent, OpSet}:      Swallow,
	}
}

// For returns the policy for a collection and operation.
func (p Policy) For(coll models.Collection, op Op) FailurePolicy {
	if fp, ok := p[policyKey{coll, op}]; ok {
		return fp
	}
	return Swallow
}

// Set returns a copy of p with one entry changed.
func (p Policy) Set(coll models.Collection, op Op, fp FailurePolicy) Policy {
	out := p.clone()
	out[policyKey{coll, op}] = fp
	return out
}

func (p Policy) clone() Policy {
	out := make(Policy, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	return out
}

// ParsePolicy applies overrides of the form
// "courses.remove=propagate,leads.add=propagate" on top of base.
func ParsePolicy(overrides string, base Policy) (Policy, error) {
	out := base.clone()
	for _, entry := range strings.Split(overrides, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("invalid policy override %q: expected collection.op=policy", entry)
		}
		coll, op, ok := strings.Cut(strings.TrimSpace(key), ".")
		if !ok {
			return nil, fmt.Errorf("invalid policy key %q: expected collection.op", key)
		}
		fp, err := parseFailurePolicy(value)
		if err != nil {
			return nil, err
		}
		if !knownCollection(models.Collection(coll)) {
			return nil, fmt.Errorf("unknown collection %q in policy override", coll)
		}
		switch Op(op) {
		case OpAdd, OpUpdate, OpRemove, OpReplace, OpSet:
		default:
			return nil, fmt.Errorf("unknown operation %q in policy override", op)
		}
		out[policyKey{models.Collection(coll), Op(op)}] = fp
	}
	return out, nil
}

func knownCollection(coll models.Collection) bool {
	for _, c := range models.AllCollections() {
		if c == coll {
			return true
		}
	}
	return false
}
