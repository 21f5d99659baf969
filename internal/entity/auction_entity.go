// FILE: internal/entity/auction_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type AuctionStatus string

const (
	AuctionStatusDraft  AuctionStatus = "draft"
	AuctionStatusActive AuctionStatus = "active"
	AuctionStatusEnded  AuctionStatus = "ended"
)

// Auction is the referential-integrity boundary: the category core only ever
// counts non-draft auctions, the bidding lifecycle lives elsewhere.
type Auction struct {
	Id         uuid.UUID
	CategoryId uuid.UUID
	Title      string
	Status     AuctionStatus
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
