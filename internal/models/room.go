// internal/models/room.go
package models

// Player is one seat in a room. The id is assigned by the client and is
// stable across reconnects; money may go negative, overdraft is allowed.
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Money  int    `json:"money"`
	Joined bool   `json:"joined"`
}

// Transaction is an immutable record of a completed transfer. FromID/ToID
// hold a player id or the sentinel "bank"; Timestamp is Unix milliseconds.
type Transaction struct {
	ID        string `json:"id"`
	From      string `json:"from"`
	To        string `json:"to"`
	FromID    string `json:"from_id"`
	ToID      string `json:"to_id"`
	Amount    int    `json:"amount"`
	Timestamp int64  `json:"timestamp"`
}

// BankRequest is a pending withdrawal vote. It is removed from the room the
// moment either tally reaches the approval threshold.
type BankRequest struct {
	ID         string   `json:"id"`
	PlayerID   string   `json:"player_id"`
	Amount     int      `json:"amount"`
	Approvals  []string `json:"approvals"`
	Rejections []string `json:"rejections"`
}

// Room is the aggregate broadcast to subscribers after every mutation.
type Room struct {
	ID            string                  `json:"id"`
	Started       bool                    `json:"started"`
	Created       bool                    `json:"created"`
	StartingMoney int                     `json:"startingMoney"`
	PassGoMoney   int                     `json:"passGoMoney"`
	Players       []*Player               `json:"players"`
	Transactions  []Transaction           `json:"transactions"`
	BankRequests  map[string]*BankRequest `json:"bank_requests"`
}

// BankID is the sentinel recipient id for payments into the bank.
const BankID = "bank"

// BankName is the display name used on bank-side transaction legs.
const BankName = "Bank"

// FindPlayer returns the player with the given id, or nil.
func (r *Room) FindPlayer(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Clone deep-copies the room so callers can serialize it outside the room's
// critical section.
func (r *Room) Clone() *Room {
	out := &Room{
		ID:            r.ID,
		Started:       r.Started,
		Created:       r.Created,
		StartingMoney: r.StartingMoney,
		PassGoMoney:   r.PassGoMoney,
		Players:       make([]*Player, 0, len(r.Players)),
		Transactions:  append([]Transaction(nil), r.Transactions...),
		BankRequests:  make(map[string]*BankRequest, len(r.BankRequests)),
	}
	for _, p := range r.Players {
		cp := *p
		out.Players = append(out.Players, &cp)
	}
	for id, br := range r.BankRequests {
		out.BankRequests[id] = br.Clone()
	}
	return out
}

// Clone copies the request including both vote slices.
func (b *BankRequest) Clone() *BankRequest {
	cp := *b
	cp.Approvals = append([]string(nil), b.Approvals...)
	cp.Rejections = append([]string(nil), b.Rejections...)
	return &cp
}
