package vote

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
)

// VotesView couples a subject's votes with the caller's own vote, if any,
// plus the averages computed over the full list.
type VotesView struct {
	Votes    []domain.Vote
	Own      *domain.Vote
	Averages domain.VoteAverages
}

// ListDupeVotes returns all votes on a dupe. Requires membership.
func (s *Service) ListDupeVotes(ctx context.Context, groupID, dupeID uuid.UUID) (*VotesView, error) {
	member, err := s.requireMember(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if _, err := s.dupes.GetByID(ctx, groupID, dupeID); err != nil {
		return nil, fmt.Errorf("get dupe: %w", err)
	}

	votes, err := s.votes.ListByDupe(ctx, dupeID)
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}

	return buildView(votes, member.UserID), nil
}

// ListOriginalVotes returns all votes on an original. Requires membership.
func (s *Service) ListOriginalVotes(ctx context.Context, groupID, originalID uuid.UUID) (*VotesView, error) {
	member, err := s.requireMember(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if _, err := s.originals.GetByID(ctx, groupID, originalID); err != nil {
		return nil, fmt.Errorf("get original: %w", err)
	}

	votes, err := s.votes.ListByOriginal(ctx, originalID)
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}

	return buildView(votes, member.UserID), nil
}

func buildView(votes []domain.Vote, userID uuid.UUID) *VotesView {
	view := &VotesView{
		Votes:    votes,
		Averages: domain.AverageVotes(votes),
	}
	for i := range votes {
		if votes[i].UserID == userID {
			view.Own = &votes[i]
			break
		}
	}
	return view
}
