package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vote is a member's rating of a dupe or an original. Exactly one of DupeID
// and OriginalID is set. One vote per (subject, user): saving again
// overwrites the previous vote.
type Vote struct {
	ID             uuid.UUID
	DupeID         *uuid.UUID
	OriginalID     *uuid.UUID
	UserID         uuid.UUID
	Parecido       int
	GustoAlAplicar int
	GustoDespues   int
	Comentario     *string
	DisplayName    string
	PhotoURL       *string
	UpdatedAt      time.Time
}

// VoteAverages are the aggregate scores over a set of votes.
type VoteAverages struct {
	Parecido       float64
	GustoAlAplicar float64
	GustoDespues   float64
	Count          int
}

// AverageVotes folds a vote list into arithmetic means. An empty list yields
// all zeros, never NaN.
func AverageVotes(votes []Vote) VoteAverages {
	if len(votes) == 0 {
		return VoteAverages{}
	}

	var sumP, sumA, sumD int
	for _, v := range votes {
		sumP += v.Parecido
		sumA += v.GustoAlAplicar
		sumD += v.GustoDespues
	}

	n := float64(len(votes))
	return VoteAverages{
		Parecido:       float64(sumP) / n,
		GustoAlAplicar: float64(sumA) / n,
		GustoDespues:   float64(sumD) / n,
		Count:          len(votes),
	}
}
