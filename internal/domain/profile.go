package domain

import "context"

// PersonaPaused is the reserved persona that disables all apply-type
// mutations for the user. Any other value is an ordinary operating mode.
const PersonaPaused = "PAUSED"

const PersonaDefault = "DEFAULT"

// UserProfile is owned by the settings flows; the core only ever reads it,
// and reads it fresh per invocation so the pause gate stays consistent
// across server instances.
type UserProfile struct {
	ID            string         `bson:"_id" json:"id"`
	ActivePersona string         `bson:"active_persona" json:"activePersona"`
	Stats         map[string]any `bson:"stats,omitempty" json:"stats,omitempty"`
}

func (p UserProfile) Paused() bool {
	return p.ActivePersona == PersonaPaused
}

type ProfileRepository interface {
	// Get returns the user's profile, or a default (unpaused) profile when
	// none is stored yet.
	Get(ctx context.Context, userID string) (UserProfile, error)
}
