package vote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
)

// SaveVoteInput is the input for SaveVote. Exactly one of DupeID and
// OriginalID must be set.
type SaveVoteInput struct {
	GroupID        uuid.UUID
	DupeID         *uuid.UUID
	OriginalID     *uuid.UUID
	Parecido       int
	GustoAlAplicar int
	GustoDespues   int
	Comentario     *string
}

// Validate checks the input fields. Scores are 0 to 10 inclusive.
func (in SaveVoteInput) Validate() error {
	var fields []domain.FieldError
	hasDupe := in.DupeID != nil && *in.DupeID != uuid.Nil
	hasOriginal := in.OriginalID != nil && *in.OriginalID != uuid.Nil
	if hasDupe == hasOriginal {
		fields = append(fields, domain.FieldError{Field: "subject", Message: "exactly one of dupeId and originalId must be set"})
	}
	for _, score := range []struct {
		name  string
		value int
	}{
		{"parecido", in.Parecido},
		{"gustoAlAplicar", in.GustoAlAplicar},
		{"gustoDespues", in.GustoDespues},
	} {
		if score.value < 0 || score.value > 10 {
			fields = append(fields, domain.FieldError{Field: score.name, Message: "must be between 0 and 10"})
		}
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

// SaveVote records the caller's vote on a dupe or an original, overwriting
// any previous vote on the same subject. For dupe votes the dupe's aggregate
// scores are recomputed afterwards; a failed recompute only logs a warning,
// since the vote itself is already stored.
func (s *Service) SaveVote(ctx context.Context, input SaveVoteInput) (*domain.Vote, error) {
	member, err := s.requireMember(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}
	if !member.CanVote() {
		return nil, fmt.Errorf("%w: %s", domain.ErrForbidden, "insufficient role")
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.DupeID != nil {
		if _, err := s.dupes.GetByID(ctx, input.GroupID, *input.DupeID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.NewValidationError("dupeId", "dupe does not exist in this group")
			}
			return nil, fmt.Errorf("get dupe: %w", err)
		}
	} else {
		if _, err := s.originals.GetByID(ctx, input.GroupID, *input.OriginalID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.NewValidationError("originalId", "original does not exist in this group")
			}
			return nil, fmt.Errorf("get original: %w", err)
		}
	}

	saved, err := s.votes.Upsert(ctx, &domain.Vote{
		DupeID:         input.DupeID,
		OriginalID:     input.OriginalID,
		UserID:         member.UserID,
		Parecido:       input.Parecido,
		GustoAlAplicar: input.GustoAlAplicar,
		GustoDespues:   input.GustoDespues,
		Comentario:     input.Comentario,
		DisplayName:    member.DisplayName,
		PhotoURL:       member.PhotoURL,
	})
	if err != nil {
		return nil, fmt.Errorf("save vote: %w", err)
	}

	if input.DupeID != nil {
		s.refreshDupeAggregates(ctx, input.GroupID, *input.DupeID)
	}

	s.log.InfoContext(ctx, "vote saved",
		slog.String("group_id", input.GroupID.String()),
		slog.String("user_id", member.UserID.String()))

	return saved, nil
}

// refreshDupeAggregates recomputes a dupe's averages from the full vote list
// and writes them back. Failures are logged, not returned.
func (s *Service) refreshDupeAggregates(ctx context.Context, groupID, dupeID uuid.UUID) {
	votes, err := s.votes.ListByDupe(ctx, dupeID)
	if err != nil {
		s.log.WarnContext(ctx, "aggregate refresh failed",
			slog.String("dupe_id", dupeID.String()),
			slog.String("error", err.Error()))
		return
	}

	avg := domain.AverageVotes(votes)
	if err := s.dupes.UpdateAverages(ctx, groupID, dupeID, avg); err != nil {
		s.log.WarnContext(ctx, "aggregate refresh failed",
			slog.String("dupe_id", dupeID.String()),
			slog.String("error", err.Error()))
	}
}
