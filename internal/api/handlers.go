package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"shareit/internal/models"
)

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// --- users ---

func (s *HTTPServer) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.services.Users.Create(r.Context(), &models.User{Name: req.Name, Email: req.Email})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *HTTPServer) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.services.Users.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *HTTPServer) handlePatchUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req patchUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.services.Users.Update(r.Context(), id, req.Name, req.Email)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *HTTPServer) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.services.Users.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.services.Users.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if users == nil {
		users = []*models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// --- items ---

func (s *HTTPServer) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req createItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item := &models.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		RequestID:   req.RequestID,
	}
	created, err := s.services.Items.Create(r.Context(), viewer, item)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *HTTPServer) handleGetItem(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := s.services.Items.Get(r.Context(), id, viewer)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *HTTPServer) handlePatchItem(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req patchItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	patch := &models.ItemPatch{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	}
	item, err := s.services.Items.Update(r.Context(), viewer, patch)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.services.Items.Delete(r.Context(), id, viewer); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) handleListItems(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	views, err := s.services.Items.ListByOwner(r.Context(), viewer)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if views == nil {
		views = []*models.ItemView{}
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *HTTPServer) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	items, err := s.services.Items.Search(r.Context(), r.URL.Query().Get("text"), limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *HTTPServer) handleAddComment(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req createCommentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := s.services.Comments.Add(r.Context(), viewer, id, req.Text, time.Now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

// --- bookings ---

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req createBookingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	start, end, err := req.parse(time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := s.services.Bookings.Create(r.Context(), req.ItemID, viewer, start, end)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (s *HTTPServer) handleDecideBooking(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "approved query parameter must be true or false")
		return
	}

	booking, err := s.services.Bookings.Decide(r.Context(), id, viewer, approved)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := s.services.Bookings.Get(r.Context(), id, viewer)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleListBookings(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, models.RoleBooker)
}

func (s *HTTPServer) handleListOwnerBookings(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, models.RoleOwner)
}

func (s *HTTPServer) listBookings(w http.ResponseWriter, r *http.Request, role string) {
	viewer, err := viewerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		state = models.StateAll
	}

	bookings, err := s.services.Bookings.ListForUser(r.Context(), viewer, role, state)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if bookings == nil {
		bookings = []*models.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

// --- requests ---

func (s *HTTPServer) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req createRequestRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	request, err := s.services.Requests.Create(r.Context(), viewer, req.Description, time.Now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, request)
}

func (s *HTTPServer) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := s.services.Requests.Get(r.Context(), id, viewer)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *HTTPServer) handleListOwnRequests(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	views, err := s.services.Requests.ListOwn(r.Context(), viewer)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if views == nil {
		views = []*models.RequestView{}
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *HTTPServer) handleListOtherRequests(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	limit, offset := pageParams(r)
	views, err := s.services.Requests.ListFromOthers(r.Context(), viewer, limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if views == nil {
		views = []*models.RequestView{}
	}
	writeJSON(w, http.StatusOK, views)
}
