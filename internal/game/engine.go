// internal/game/engine.go
package game

import (
	"time"

	"github.com/google/uuid"

	"monopoly-bank-backend/internal/models"
)

// voteThreshold is the fixed number of approvals or rejections that resolves
// a bank request, independent of room size.
const voteThreshold = 2

// PaymentResult carries the post-payment snapshot plus the point-to-point
// notices for each leg. Received is nil when the money went to the bank.
type PaymentResult struct {
	Room     *models.Room
	Sent     models.PaymentNotice
	Received *models.PaymentNotice
}

// VoteOutcome is the state a bank request landed in after one vote.
type VoteOutcome int

const (
	VotePending VoteOutcome = iota
	VoteApproved
	VoteRejected
)

// VoteResult carries the post-vote snapshot, the outcome, and a copy of the
// request as it stood when the vote was recorded.
type VoteResult struct {
	Room    *models.Room
	Outcome VoteOutcome
	Request *models.BankRequest
}

// BankRequestResult carries the snapshot and the freshly created request.
type BankRequestResult struct {
	Room    *models.Room
	Request *models.BankRequest
}

// JoinGame adds a player to the room, or refreshes an existing one. Rejoin is
// idempotent and allowed after start; new players are rejected once the game
// has started.
func (r *Registry) JoinGame(roomID, playerID, name string) (*models.Room, error) {
	var snap *models.Room
	err := r.withRoom(roomID, func(room *models.Room) error {
		if p := room.FindPlayer(playerID); p != nil {
			p.Name = name
			p.Joined = true
			snap = room.Clone()
			return nil
		}
		if room.Started {
			return ErrGameStarted
		}
		room.Players = append(room.Players, &models.Player{
			ID:     playerID,
			Name:   name,
			Money:  room.StartingMoney,
			Joined: true,
		})
		snap = room.Clone()
		return nil
	})
	return snap, err
}

// Configure overwrites the room's money settings and marks it configured.
// Repeated calls before start are last-writer-wins.
func (r *Registry) Configure(roomID string, startingMoney, passGoMoney int) (*models.Room, error) {
	var snap *models.Room
	err := r.withRoom(roomID, func(room *models.Room) error {
		room.StartingMoney = startingMoney
		room.PassGoMoney = passGoMoney
		room.Created = true
		snap = room.Clone()
		return nil
	})
	return snap, err
}

// Start flips the one-way started flag. The room must be configured first.
func (r *Registry) Start(roomID string) (*models.Room, error) {
	var snap *models.Room
	err := r.withRoom(roomID, func(room *models.Room) error {
		if !room.Created {
			return ErrNotConfigured
		}
		if room.Started {
			return ErrGameStarted
		}
		room.Started = true
		snap = room.Clone()
		return nil
	})
	return snap, err
}

// Pay moves amount from one player to another, or into the bank when toID is
// the "bank" sentinel. Money paid to the bank is destroyed. Both parties are
// resolved before either balance changes, so a failed lookup mutates nothing.
// Balances may go negative.
func (r *Registry) Pay(roomID, fromID, toID string, amount int) (*PaymentResult, error) {
	res := &PaymentResult{}
	err := r.withRoom(roomID, func(room *models.Room) error {
		from := room.FindPlayer(fromID)
		if from == nil {
			return ErrUnknownPlayer
		}
		toName := models.BankName
		var to *models.Player
		if toID != models.BankID {
			if to = room.FindPlayer(toID); to == nil {
				return ErrUnknownPlayer
			}
			toName = to.Name
		}

		if to != nil {
			to.Money += amount
		}
		from.Money -= amount

		room.Transactions = append(room.Transactions, models.Transaction{
			ID:        uuid.New().String(),
			From:      from.Name,
			To:        toName,
			FromID:    fromID,
			ToID:      toID,
			Amount:    amount,
			Timestamp: time.Now().UnixMilli(),
		})

		res.Sent = models.PaymentNotice{From: from.Name, To: toName, Amount: amount}
		if to != nil {
			res.Received = &models.PaymentNotice{From: from.Name, To: to.Name, Amount: amount}
		}
		res.Room = room.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// RequestFromBank opens a pending withdrawal vote for the player.
func (r *Registry) RequestFromBank(roomID, playerID string, amount int) (*BankRequestResult, error) {
	res := &BankRequestResult{}
	err := r.withRoom(roomID, func(room *models.Room) error {
		if room.FindPlayer(playerID) == nil {
			return ErrUnknownPlayer
		}
		req := &models.BankRequest{
			ID:         uuid.New().String(),
			PlayerID:   playerID,
			Amount:     amount,
			Approvals:  make([]string, 0),
			Rejections: make([]string, 0),
		}
		room.BankRequests[req.ID] = req
		res.Request = req.Clone()
		res.Room = room.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// RespondToBankRequest records one vote and resolves the request if either
// tally reaches the threshold. Approvals are checked before rejections. A
// voter gets exactly one vote per request; a second vote fails with
// ErrAlreadyVoted and changes nothing. On approval the beneficiary is
// credited and a bank transaction is recorded; either terminal outcome
// removes the request from the pending set.
func (r *Registry) RespondToBankRequest(roomID, requestID, voterID string, approved bool) (*VoteResult, error) {
	res := &VoteResult{}
	err := r.withRoom(roomID, func(room *models.Room) error {
		req, ok := room.BankRequests[requestID]
		if !ok {
			return ErrUnknownRequest
		}
		if hasVoted(req, voterID) {
			return ErrAlreadyVoted
		}

		// Resolve the beneficiary up front so a vote that would disburse to
		// a missing player fails before any tally changes. Players are never
		// removed from a room, so this is unreachable in practice.
		beneficiary := room.FindPlayer(req.PlayerID)
		if approved && len(req.Approvals)+1 >= voteThreshold && beneficiary == nil {
			return ErrUnknownPlayer
		}

		if approved {
			req.Approvals = append(req.Approvals, voterID)
		} else {
			req.Rejections = append(req.Rejections, voterID)
		}

		switch {
		case len(req.Approvals) >= voteThreshold:
			beneficiary.Money += req.Amount
			room.Transactions = append(room.Transactions, models.Transaction{
				ID:        uuid.New().String(),
				From:      models.BankName,
				To:        beneficiary.Name,
				FromID:    models.BankID,
				ToID:      beneficiary.ID,
				Amount:    req.Amount,
				Timestamp: time.Now().UnixMilli(),
			})
			delete(room.BankRequests, requestID)
			res.Outcome = VoteApproved
		case len(req.Rejections) >= voteThreshold:
			delete(room.BankRequests, requestID)
			res.Outcome = VoteRejected
		default:
			res.Outcome = VotePending
		}

		res.Request = req.Clone()
		res.Room = room.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func hasVoted(req *models.BankRequest, voterID string) bool {
	for _, id := range req.Approvals {
		if id == voterID {
			return true
		}
	}
	for _, id := range req.Rejections {
		if id == voterID {
			return true
		}
	}
	return false
}
