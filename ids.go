package tourneycore

import "github.com/google/uuid"

// IDSupplier mints fresh opaque, alphanumeric identifiers on demand.
// Uniqueness within a single tournament is the tournament's responsibility:
// it regenerates on collision rather than trusting the supplier blindly.
type IDSupplier interface {
	NewID() string
}

// UUIDSupplier is the default IDSupplier, wrapping google/uuid. Dashes are
// stripped so ids are plain alphanumeric strings.
type UUIDSupplier struct{}

func (UUIDSupplier) NewID() string {
	id := uuid.New()
	buf := make([]byte, 0, 32)
	for _, b := range id[:] {
		const hex = "0123456789abcdef"
		buf = append(buf, hex[b>>4], hex[b&0x0f])
	}
	return string(buf)
}

func (t *Tournament) newPlayerID() PlayerID {
	for {
		id := PlayerID(t.ids.NewID())
		if _, exists := t.players[id]; !exists && id != noneID {
			return id
		}
	}
}

func (t *Tournament) newMatchID() MatchID {
	for {
		id := MatchID(t.ids.NewID())
		if _, exists := t.matches[id]; !exists && id != noneID {
			return id
		}
	}
}
