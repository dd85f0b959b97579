package domain

import "time"

// ListingKind discriminates the two listing tables where a reference can
// point at either.
type ListingKind string

const (
	ListingKindCargo ListingKind = "cargo"
	ListingKindTruck ListingKind = "truck"
)

// Valid reports whether the kind is a known enum value.
func (k ListingKind) Valid() bool {
	return k == ListingKindCargo || k == ListingKindTruck
}

// Chat is a two-party thread about one listing: the initiator and the
// listing owner.
type Chat struct {
	ID          string
	ListingKind ListingKind
	ListingID   string
	InitiatorID string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ChatMessage is an append-only message inside a chat thread.
type ChatMessage struct {
	ID        string
	ChatID    string
	SenderID  string
	Body      string
	CreatedAt time.Time
}
