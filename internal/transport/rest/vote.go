package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
	"github.com/sipalaciosv/dupe/internal/service/vote"
)

// voteService defines the minimal interface needed by VoteHandler.
type voteService interface {
	SaveVote(ctx context.Context, input vote.SaveVoteInput) (*domain.Vote, error)
	ListDupeVotes(ctx context.Context, groupID, dupeID uuid.UUID) (*vote.VotesView, error)
	ListOriginalVotes(ctx context.Context, groupID, originalID uuid.UUID) (*vote.VotesView, error)
}

// VoteHandler serves vote REST endpoints.
type VoteHandler struct {
	svc voteService
	log *slog.Logger
}

// NewVoteHandler creates a VoteHandler.
func NewVoteHandler(svc voteService, logger *slog.Logger) *VoteHandler {
	return &VoteHandler{svc: svc, log: logger.With("handler", "vote")}
}

type saveVoteRequest struct {
	Parecido       int     `json:"parecido"`
	GustoAlAplicar int     `json:"gustoAlAplicar"`
	GustoDespues   int     `json:"gustoDespues"`
	Comentario     *string `json:"comentario"`
}

type voteResponse struct {
	ID             string    `json:"id"`
	DupeID         *string   `json:"dupeId,omitempty"`
	OriginalID     *string   `json:"originalId,omitempty"`
	UserID         string    `json:"userId"`
	Parecido       int       `json:"parecido"`
	GustoAlAplicar int       `json:"gustoAlAplicar"`
	GustoDespues   int       `json:"gustoDespues"`
	Comentario     *string   `json:"comentario,omitempty"`
	DisplayName    string    `json:"displayName"`
	PhotoURL       *string   `json:"photoUrl,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type voteAveragesResponse struct {
	Parecido       float64 `json:"parecido"`
	GustoAlAplicar float64 `json:"gustoAlAplicar"`
	GustoDespues   float64 `json:"gustoDespues"`
	Count          int     `json:"count"`
}

type votesViewResponse struct {
	Votes    []voteResponse       `json:"votes"`
	Own      *voteResponse        `json:"own,omitempty"`
	Averages voteAveragesResponse `json:"averages"`
}

func uuidPtrString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toVoteResponse(v *domain.Vote) voteResponse {
	return voteResponse{
		ID:             v.ID.String(),
		DupeID:         uuidPtrString(v.DupeID),
		OriginalID:     uuidPtrString(v.OriginalID),
		UserID:         v.UserID.String(),
		Parecido:       v.Parecido,
		GustoAlAplicar: v.GustoAlAplicar,
		GustoDespues:   v.GustoDespues,
		Comentario:     v.Comentario,
		DisplayName:    v.DisplayName,
		PhotoURL:       v.PhotoURL,
		UpdatedAt:      v.UpdatedAt,
	}
}

func toVotesViewResponse(view *vote.VotesView) votesViewResponse {
	resp := votesViewResponse{
		Votes: make([]voteResponse, 0, len(view.Votes)),
		Averages: voteAveragesResponse{
			Parecido:       view.Averages.Parecido,
			GustoAlAplicar: view.Averages.GustoAlAplicar,
			GustoDespues:   view.Averages.GustoDespues,
			Count:          view.Averages.Count,
		},
	}
	for i := range view.Votes {
		resp.Votes = append(resp.Votes, toVoteResponse(&view.Votes[i]))
	}
	if view.Own != nil {
		own := toVoteResponse(view.Own)
		resp.Own = &own
	}
	return resp
}

// SaveDupeVote handles PUT /groups/{groupID}/dupes/{id}/vote.
func (h *VoteHandler) SaveDupeVote(w http.ResponseWriter, r *http.Request) {
	h.saveVote(w, r, true)
}

// SaveOriginalVote handles PUT /groups/{groupID}/originals/{id}/vote.
func (h *VoteHandler) SaveOriginalVote(w http.ResponseWriter, r *http.Request) {
	h.saveVote(w, r, false)
}

func (h *VoteHandler) saveVote(w http.ResponseWriter, r *http.Request, onDupe bool) {
	groupID, err := pathUUID(r, "groupID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req saveVoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := vote.SaveVoteInput{
		GroupID:        groupID,
		Parecido:       req.Parecido,
		GustoAlAplicar: req.GustoAlAplicar,
		GustoDespues:   req.GustoDespues,
		Comentario:     req.Comentario,
	}
	if onDupe {
		input.DupeID = &id
	} else {
		input.OriginalID = &id
	}

	v, err := h.svc.SaveVote(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toVoteResponse(v))
}

// ListDupeVotes handles GET /groups/{groupID}/dupes/{id}/votes.
func (h *VoteHandler) ListDupeVotes(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathUUID(r, "groupID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	view, err := h.svc.ListDupeVotes(r.Context(), groupID, id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toVotesViewResponse(view))
}

// ListOriginalVotes handles GET /groups/{groupID}/originals/{id}/votes.
func (h *VoteHandler) ListOriginalVotes(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathUUID(r, "groupID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	view, err := h.svc.ListOriginalVotes(r.Context(), groupID, id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toVotesViewResponse(view))
}
