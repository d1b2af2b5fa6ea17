package entities

import "time"

// WorkspaceMetadata is ship's persisted record of a VCS workspace it created.
// The VCS is authoritative for whether the workspace exists; this record is
// authoritative for whether ship should manage its cleanup. The two views are
// reconciled by name equality and may disagree at any time.
type WorkspaceMetadata struct {
	Name      string    `yaml:"name"`
	Path      string    `yaml:"path"`
	StackName string    `yaml:"stack_name"`
	Bookmark  string    `yaml:"bookmark,omitempty"`
	TaskID    string    `yaml:"task_id,omitempty"`
	CreatedAt time.Time `yaml:"created_at"`
}

// WorkspacePresence says where a workspace of a given name is known: in the
// live VCS listing, in ship's metadata file, both, or neither. Every state is
// valid; none is an error.
type WorkspacePresence int

const (
	// PresenceNeither means the name is unknown everywhere.
	PresenceNeither WorkspacePresence = iota
	// PresenceMetadataOnly means ship has a record but the VCS workspace is gone.
	PresenceMetadataOnly
	// PresenceVCSOnly means the VCS has the workspace but ship never recorded it.
	PresenceVCSOnly
	// PresenceBoth means both views agree the workspace exists.
	PresenceBoth
)

// ResolvePresence derives the presence union from the two independent lookups.
func ResolvePresence(inMetadata, inVCS bool) WorkspacePresence {
	switch {
	case inMetadata && inVCS:
		return PresenceBoth
	case inMetadata:
		return PresenceMetadataOnly
	case inVCS:
		return PresenceVCSOnly
	default:
		return PresenceNeither
	}
}

func (p WorkspacePresence) String() string {
	switch p {
	case PresenceMetadataOnly:
		return "metadata-only"
	case PresenceVCSOnly:
		return "vcs-only"
	case PresenceBoth:
		return "both"
	default:
		return "neither"
	}
}
