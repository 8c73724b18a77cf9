package academy

import "github.com/colorbulb/nexteliteweb2/pkg/content"

// Command is one CLI operation with its own options. Shared settings live in
// [Config].
type Command interface {
	// Name returns the sub-command name.
	Name() string
}

// RunCommand hydrates the content store and serves the HTTP API until the
// context is cancelled.
type RunCommand struct{}

func (c *RunCommand) Name() string {
	return "run"
}

// SeedCommand writes the bundled content into the document store. Without
// Force it leaves a store that already has courses untouched.
type SeedCommand struct {
	Force bool
}

func (c *SeedCommand) Name() string {
	return "seed"
}

// ExportCommand writes a snapshot of every collection read straight from the
// document store.
type ExportCommand struct {
	// Out is the output file; "-" writes to stdout.
	Out    string
	Format content.Format
}

func (c *ExportCommand) Name() string {
	return "export"
}

// MirrorCommand copies every collection from the configured backend to To.
type MirrorCommand struct {
	To Backend
}

func (c *MirrorCommand) Name() string {
	return "mirror"
}
