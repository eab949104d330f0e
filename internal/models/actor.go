package models

// Actor kinds.
const (
	ActorSystem = "system"
	ActorUser   = "user"
)

// Actor identifies who performed a mutation: either the system itself
// (auto-generation, automated sync) or a specific user. Provenance
// fields like ChecklistItem.CompletedBy record the actor's Name().
type Actor struct {
	Kind string
	ID   string
}

// System returns the system actor used for automated operations.
func System() Actor {
	return Actor{Kind: ActorSystem}
}

// User returns an actor for the given user ID.
func User(id string) Actor {
	return Actor{Kind: ActorUser, ID: id}
}

// Name returns the value recorded in provenance fields.
func (a Actor) Name() string {
	if a.Kind == ActorUser && a.ID != "" {
		return a.ID
	}
	return ActorSystem
}

// IsSystem reports whether this is the system actor.
func (a Actor) IsSystem() bool {
	return a.Kind != ActorUser || a.ID == ""
}
