package forum

import (
	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
	"github.com/google/uuid"
)

// ReactionKind is one of the fixed six reaction kinds
type ReactionKind string

const (
	ReactionLike  ReactionKind = "like"
	ReactionLove  ReactionKind = "love"
	ReactionHaha  ReactionKind = "haha"
	ReactionWow   ReactionKind = "wow"
	ReactionSad   ReactionKind = "sad"
	ReactionAngry ReactionKind = "angry"
)

// ReactionKinds lists every kind in enumeration order. The order is used to
// break ties when counts are sorted for display.
var ReactionKinds = []ReactionKind{
	ReactionLike,
	ReactionLove,
	ReactionHaha,
	ReactionWow,
	ReactionSad,
	ReactionAngry,
}

// Valid reports whether the kind is one of the six known kinds
func (k ReactionKind) Valid() bool {
	for _, known := range ReactionKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Rank returns the kind's position in enumeration order
func (k ReactionKind) Rank() int {
	for i, known := range ReactionKinds {
		if k == known {
			return i
		}
	}
	return len(ReactionKinds)
}

// Reaction records a single user's reaction to a post.
// At most one reaction exists per (post, user) pair.
type Reaction struct {
	shared.BaseEntity
	PostID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_reaction_post_user,priority:1"`
	UserID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_reaction_post_user,priority:2"`
	Kind   ReactionKind `gorm:"type:varchar(10);not null"`
}

// TableName returns the table name for GORM
func (Reaction) TableName() string {
	return "reactions"
}

// NewReaction creates a new reaction
func NewReaction(postID, userID uuid.UUID, kind ReactionKind) (*Reaction, error) {
	if userID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	if !kind.Valid() {
		return nil, shared.NewDomainError("INVALID_REACTION", "Unknown reaction kind")
	}

	return &Reaction{
		BaseEntity: shared.NewBaseEntity(),
		PostID:     postID,
		UserID:     userID,
		Kind:       kind,
	}, nil
}

// Replace switches the reaction to a different kind, keeping the identifier
func (r *Reaction) Replace(kind ReactionKind) error {
	if !kind.Valid() {
		return shared.NewDomainError("INVALID_REACTION", "Unknown reaction kind")
	}
	r.Kind = kind
	r.Touch()
	return nil
}
