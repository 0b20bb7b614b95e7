package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionCount(t *testing.T) {
	session := &Session{
		InitialNumber:     2,
		RequiredNumber:    4,
		Participants:      []string{"p1"},
		AddedParticipants: []string{"a1"},
	}

	// Added participants are already folded into InitialNumber
	assert.Equal(t, 3, session.Count())
	assert.False(t, session.IsFull())

	session.Participants = append(session.Participants, "p2")
	assert.Equal(t, 4, session.Count())
	assert.True(t, session.IsFull())
}

func TestSessionHasMember(t *testing.T) {
	session := &Session{
		AuthorID:          "author",
		Participants:      []string{"p1"},
		AddedParticipants: []string{"a1"},
	}

	assert.True(t, session.HasMember("author"))
	assert.True(t, session.HasMember("p1"))
	assert.True(t, session.HasMember("a1"))
	assert.False(t, session.HasMember("stranger"))
}

func TestSessionCloneDoesNotShareSlices(t *testing.T) {
	session := &Session{
		ID:           "session-id",
		Participants: []string{"p1"},
	}

	clone := session.Clone()
	clone.Participants = append(clone.Participants, "p2")
	clone.Participants[0] = "changed"

	assert.Equal(t, []string{"p1"}, session.Participants)
	assert.Equal(t, "session-id", clone.ID)
	assert.Nil(t, (*Session)(nil).Clone())
}
