package hierarchy

import "strings"

// Hierarchy is a type-safe representation of a logger's place in the log
// tree. Implementations return the fully joined dotted name.
type Hierarchy interface {
	// CanonicalName returns the dotted log hierarchy name, for example
	// "OpenRemote.controller.protocol".
	CanonicalName() string
}

// Name is the simplest Hierarchy implementation: the string is the canonical
// name. It is intended for declaring fixed log category sets as constants.
type Name string

// CanonicalName implements Hierarchy.
func (n Name) CanonicalName() string { return string(n) }

func (n Name) String() string { return string(n) }

// Composite joins a root hierarchy, an optional application segment and a
// category hierarchy into a single canonical name. Segment order is always
// root, application, category; empty segments are skipped.
//
// The application segment may be changed with SetApplication until the
// composite has been used to register a provider; after that the registry
// entry is keyed by the old name and a changed name addresses a different
// logger.
type Composite struct {
	root     string
	app      string
	category string
}

// NewComposite builds a composite hierarchy from root, application and
// category. Nil hierarchies contribute an empty segment.
func NewComposite(root Hierarchy, application string, category Hierarchy) *Composite {
	c := &Composite{app: application}

	if root != nil {
		c.root = root.CanonicalName()
	}
	if category != nil {
		c.category = category.CanonicalName()
	}

	return c
}

// CanonicalName implements Hierarchy. The result is deterministic given the
// three segment values.
func (c *Composite) CanonicalName() string {
	segments := make([]string, 0, 3)

	for _, s := range []string{c.root, c.app, c.category} {
		if s != "" {
			segments = append(segments, s)
		}
	}

	return strings.Join(segments, ".")
}

// SetApplication replaces the application segment of this composite.
func (c *Composite) SetApplication(application string) {
	c.app = application
}

func (c *Composite) String() string { return c.CanonicalName() }
