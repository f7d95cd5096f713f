package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionNotesTotalForValidActions(t *testing.T) {
	for _, action := range []ActionType{ActionChill, ActionChat, ActionSongRequest, ActionPhotoUpload} {
		assert.True(t, action.Valid())
		assert.NotEmpty(t, action.Notes())
	}

	assert.False(t, ActionType("unknown_type").Valid())
	assert.Empty(t, ActionType("unknown_type").Notes())
}

func TestMeetsTier(t *testing.T) {
	assert.True(t, MeetsTier(TierGold, TierBronze))
	assert.True(t, MeetsTier(TierSilver, TierSilver))
	assert.False(t, MeetsTier(TierBronze, TierSilver))
	assert.False(t, MeetsTier(TierSilver, TierGold))
}
