package model

type ActionType string

const (
	ActionChill       ActionType = "chill"
	ActionChat        ActionType = "chat"
	ActionSongRequest ActionType = "song_request"
	ActionPhotoUpload ActionType = "photo_upload"
)

// actionNotes maps each recognized action to the ledger description written
// with the earn transaction. The rate limiter matches on the "chat"
// substring of the chat entry, so keep it stable.
var actionNotes = map[ActionType]string{
	ActionChill:       "Sit & Chill reward - took time to relax in the café",
	ActionChat:        "Community chat participation",
	ActionSongRequest: "Song request interaction",
	ActionPhotoUpload: "Photo contest participation",
}

func (a ActionType) Valid() bool {
	_, ok := actionNotes[a]
	return ok
}

// Notes returns the ledger description for the action. Total for every
// valid action; empty string otherwise.
func (a ActionType) Notes() string {
	return actionNotes[a]
}
