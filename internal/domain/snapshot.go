package domain

// Snapshot is the complete persisted state blob. It is read in full and
// written in full on every mutation; there is no partial update path.
type Snapshot struct {
	User         User          `json:"user"`
	Activities   []Activity    `json:"activities"`
	Battles      []Battle      `json:"battles"`
	GameSessions []GameSession `json:"gameSessions"`
}
