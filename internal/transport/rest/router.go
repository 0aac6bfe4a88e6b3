package rest

import (
	"net/http"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth       *AuthHandler
	User       *UserHandler
	Group      *GroupHandler
	Original   *OriginalHandler
	Dupe       *DupeHandler
	Vote       *VoteHandler
	Offer      *OfferHandler
	Expedition *ExpeditionHandler
	Store      *StoreHandler
	Public     *PublicHandler
	Health     *HealthHandler
	Metrics    http.Handler
	BlobDir    string
}

// NewRouter builds the HTTP route table. Middleware is applied by the
// caller around the returned handler.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", h.Auth.Login)
	mux.HandleFunc("POST /auth/refresh", h.Auth.Refresh)
	mux.HandleFunc("POST /auth/logout", h.Auth.Logout)

	mux.HandleFunc("GET /me", h.User.Me)
	mux.HandleFunc("PATCH /me", h.User.UpdateMe)

	mux.HandleFunc("POST /groups", h.Group.Create)
	mux.HandleFunc("POST /groups/join", h.Group.Join)
	mux.HandleFunc("GET /groups", h.Group.List)
	mux.HandleFunc("GET /groups/{groupID}", h.Group.Get)
	mux.HandleFunc("GET /groups/{groupID}/members", h.Group.ListMembers)
	mux.HandleFunc("PATCH /groups/{groupID}/members/{userID}", h.Group.UpdateMemberRole)
	mux.HandleFunc("PATCH /groups/{groupID}/public-access", h.Group.PublicAccess)

	mux.HandleFunc("GET /groups/{groupID}/originals", h.Original.List)
	mux.HandleFunc("POST /groups/{groupID}/originals", h.Original.Create)
	mux.HandleFunc("GET /groups/{groupID}/originals/{id}", h.Original.Get)
	mux.HandleFunc("PATCH /groups/{groupID}/originals/{id}", h.Original.Update)
	mux.HandleFunc("DELETE /groups/{groupID}/originals/{id}", h.Original.Delete)
	mux.HandleFunc("PUT /groups/{groupID}/originals/{id}/image", h.Original.UploadImage)
	mux.HandleFunc("PUT /groups/{groupID}/originals/{id}/vote", h.Vote.SaveOriginalVote)
	mux.HandleFunc("GET /groups/{groupID}/originals/{id}/votes", h.Vote.ListOriginalVotes)

	mux.HandleFunc("GET /groups/{groupID}/dupes", h.Dupe.List)
	mux.HandleFunc("POST /groups/{groupID}/dupes", h.Dupe.Create)
	mux.HandleFunc("GET /groups/{groupID}/dupes/{id}", h.Dupe.Get)
	mux.HandleFunc("PATCH /groups/{groupID}/dupes/{id}", h.Dupe.Update)
	mux.HandleFunc("DELETE /groups/{groupID}/dupes/{id}", h.Dupe.Delete)
	mux.HandleFunc("PUT /groups/{groupID}/dupes/{id}/image", h.Dupe.UploadImage)
	mux.HandleFunc("PUT /groups/{groupID}/dupes/{id}/vote", h.Vote.SaveDupeVote)
	mux.HandleFunc("GET /groups/{groupID}/dupes/{id}/votes", h.Vote.ListDupeVotes)

	mux.HandleFunc("GET /groups/{groupID}/dupes/{id}/offers", h.Offer.List)
	mux.HandleFunc("POST /groups/{groupID}/dupes/{id}/offers", h.Offer.Create)
	mux.HandleFunc("DELETE /groups/{groupID}/offers/{offerID}", h.Offer.Delete)

	mux.HandleFunc("GET /groups/{groupID}/expeditions", h.Expedition.List)
	mux.HandleFunc("POST /groups/{groupID}/expeditions", h.Expedition.Create)
	mux.HandleFunc("GET /groups/{groupID}/expeditions/{id}", h.Expedition.Get)
	mux.HandleFunc("POST /groups/{groupID}/expeditions/{id}/close", h.Expedition.Close)
	mux.HandleFunc("GET /groups/{groupID}/expeditions/{id}/items", h.Expedition.ListItems)
	mux.HandleFunc("POST /groups/{groupID}/expeditions/{id}/items", h.Expedition.AddItem)
	mux.HandleFunc("PATCH /groups/{groupID}/expeditions/{id}/items/{itemID}", h.Expedition.UpdateItemStatus)

	mux.HandleFunc("GET /groups/{groupID}/stores", h.Store.List)
	mux.HandleFunc("POST /groups/{groupID}/stores", h.Store.Create)
	mux.HandleFunc("POST /groups/{groupID}/stores/resolve", h.Store.Resolve)
	mux.HandleFunc("PATCH /groups/{groupID}/stores/{id}", h.Store.Update)
	mux.HandleFunc("DELETE /groups/{groupID}/stores/{id}", h.Store.Delete)

	mux.HandleFunc("GET /public/{slug}", h.Public.Get)
	mux.HandleFunc("GET /public/{slug}/originals", h.Public.ListOriginals)
	mux.HandleFunc("GET /public/{slug}/dupes", h.Public.ListDupes)

	mux.HandleFunc("GET /healthz", h.Health.Live)
	mux.HandleFunc("GET /readyz", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	if h.Metrics != nil {
		mux.Handle("GET /metrics", h.Metrics)
	}
	if h.BlobDir != "" {
		mux.Handle("GET /blobs/", http.StripPrefix("/blobs/", http.FileServer(http.Dir(h.BlobDir))))
	}

	return mux
}
