package controllers

import (
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	h "eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/delivery/http/middleware"
	"eventplanner/internal/domain"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

const dateLayout = "2006-01-02"

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Title       string  `json:"title"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Time        string  `json:"time"` // HH:MM or HH:MM:SS
	Location    string  `json:"location"`
	Description *string `json:"description"`
}

// Validate implements Validator. Length bounds are enforced again by the
// service; this catches shape errors early.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(c.Location) == "" {
		errs = append(errs, "location is required")
	}
	if c.Date == "" {
		errs = append(errs, "date is required")
	} else if _, err := time.Parse(dateLayout, c.Date); err != nil {
		errs = append(errs, "date must be in YYYY-MM-DD format")
	}
	if strings.TrimSpace(c.Time) == "" {
		errs = append(errs, "time is required")
	}
	return errs
}

// InviteRequest is the request body for POST /events/{eventID}/invite.
type InviteRequest struct {
	UserID string `json:"user_id"`
}

// Validate implements Validator.
func (i InviteRequest) Validate() []string {
	if strings.TrimSpace(i.UserID) == "" {
		return []string{"user_id is required"}
	}
	if !uuidRegex.MatchString(i.UserID) {
		return []string{"user_id must be a valid UUID"}
	}
	return nil
}

// AttendanceStatusRequest is the request body for PUT /events/{eventID}/attendance.
type AttendanceStatusRequest struct {
	Status string `json:"status"`
}

// Validate implements Validator.
func (a AttendanceStatusRequest) Validate() []string {
	if strings.TrimSpace(a.Status) == "" {
		return []string{"status is required"}
	}
	return nil
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// eventIDFromPath extracts and validates the eventID path value. Writes a
// 400 and returns false when missing or malformed.
func eventIDFromPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing eventID")
		return "", false
	}
	if !uuidRegex.MatchString(eventID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid eventID")
		return "", false
	}
	return eventID, true
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Creates an event and its organizer membership row in a single transaction. The authenticated user becomes the organizer with attendance status pending.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the event with its attendee list"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	date, _ := time.Parse(dateLayout, req.Date)
	event, err := c.Service.CreateEvent(r.Context(), userID, domain.CreateEventInput{
		Title:       req.Title,
		Date:        date,
		Time:        req.Time,
		Location:    req.Location,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, event)
}

// InviteUser godoc
// @Summary Invite a user to an event
// @Description Adds the given user as an attendee with status pending. Only the event's organizer may invite; self-invites and already-invited users are rejected.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body InviteRequest true "User to invite"
// @Success 201 {object} helpers.APIResponse "data contains the new membership row"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not organizer)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (concurrent duplicate invite)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/invite [post]
func (c *EventController) InviteUser(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	var req InviteRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	inviterID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	attendee, err := c.Service.InviteUser(r.Context(), eventID, inviterID, req.UserID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, attendee)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes the event and, via storage-level cascade, all of its attendance rows. Only the organizer may delete.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 204 "No content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not organizer)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), eventID, userID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateAttendanceStatus godoc
// @Summary Update attendance status
// @Description Sets the authenticated user's RSVP status (pending, going, maybe, not_going) on an event they are a member of.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body AttendanceStatusRequest true "New status"
// @Success 200 {object} helpers.APIResponse "data contains event_id, user_id, and status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/attendance [put]
func (c *EventController) UpdateAttendanceStatus(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	var req AttendanceStatusRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.UpdateAttendanceStatus(r.Context(), eventID, userID, req.Status); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{
		"event_id": eventID,
		"user_id":  userID,
		"status":   strings.ToLower(strings.TrimSpace(req.Status)),
	})
}

// GetEventAttendees godoc
// @Summary List event attendees
// @Description Returns the full membership list with roles and statuses. The caller must be the organizer or an attendee of the event.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the attendee list"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not a member)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/attendees [get]
func (c *EventController) GetEventAttendees(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	attendees, err := c.Service.GetEventAttendees(r.Context(), eventID, userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, attendees)
}

// GetOrganizedEvents godoc
// @Summary List events organized by the current user
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains events with attendee lists"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/organized [get]
func (c *EventController) GetOrganizedEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	events, err := c.Service.GetOrganizedEvents(r.Context(), userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetInvitedEvents godoc
// @Summary List events the current user is invited to
// @Description Returns events where the user holds an attendee (not organizer) membership row.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains events with attendee lists"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/invited [get]
func (c *EventController) GetInvitedEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	events, err := c.Service.GetInvitedEvents(r.Context(), userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetSentInvitations godoc
// @Summary List invitations the current user has sent
// @Description Returns every invited user and their status across all events organized by the caller.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the invitation report"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/invitations/sent [get]
func (c *EventController) GetSentInvitations(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	invitations, err := c.Service.GetSentInvitations(r.Context(), userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, invitations)
}

// SearchEvents godoc
// @Summary Search events the current user is a member of
// @Description Filters by optional keyword (title or description substring, case-insensitive), date range, role, location substring, and attendance status.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param keyword query string false "Substring of title or description"
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Param role query string false "organizer or attendee"
// @Param location query string false "Location substring"
// @Param attendance_status query string false "pending, going, maybe, or not_going"
// @Success 200 {object} helpers.APIResponse "data contains matching events with attendee lists"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/search [get]
func (c *EventController) SearchEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	filter, ok := parseSearchFilter(w, r)
	if !ok {
		return
	}
	events, err := c.Service.SearchEvents(r.Context(), userID, filter)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, events)
}

// parseSearchFilter reads the optional query parameters. Writes a 400 and
// returns false when a date does not parse.
func parseSearchFilter(w http.ResponseWriter, r *http.Request) (domain.EventSearchFilter, bool) {
	var filter domain.EventSearchFilter
	q := r.URL.Query()

	strParam := func(name string) *string {
		if v := q.Get(name); v != "" {
			return &v
		}
		return nil
	}
	filter.Keyword = strParam("keyword")
	filter.Role = strParam("role")
	filter.Location = strParam("location")
	filter.Status = strParam("attendance_status")

	for name, dst := range map[string]**time.Time{"start_date": &filter.StartDate, "end_date": &filter.EndDate} {
		if v := q.Get(name); v != "" {
			t, err := time.Parse(dateLayout, v)
			if err != nil {
				h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, name+" must be in YYYY-MM-DD format")
				return filter, false
			}
			*dst = &t
		}
	}
	return filter, true
}
