package domain

import "time"

// WalletConnection links a user-supplied wallet identifier to its derived
// mock address. It is persisted under its own storage key, apart from the
// main snapshot.
type WalletConnection struct {
	ID          string    `json:"id"`
	Address     string    `json:"address"`
	ConnectedAt time.Time `json:"connectedAt"`
}
