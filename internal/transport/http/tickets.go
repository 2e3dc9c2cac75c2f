package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/openvenue/mintgate/internal/app"
	"github.com/openvenue/mintgate/internal/domain"
)

// TicketIssuer is the minimal interface needed to issue a ticket.
type TicketIssuer interface {
	IssueTicket(ctx context.Context, in app.IssueTicketInput) (domain.Ticket, error)
}

// TicketGetter is the minimal interface needed to load a minted ticket.
type TicketGetter interface {
	GetTicket(ctx context.Context, id string) (domain.Ticket, error)
}

// HandleIssueTicket returns an HTTP handler for the issuance operation.
func HandleIssueTicket(svc TicketIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req issueTicketRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if code, msg, ok := req.validate(); !ok {
			writeError(w, http.StatusBadRequest, code, msg)
			return
		}

		ticket, err := svc.IssueTicket(r.Context(), app.IssueTicketInput{
			CollectionID:    req.CollectionID,
			MarketplaceName: req.Marketplace,
			OrganizerID:     req.OrganizerID,
			BuyerID:         req.BuyerID,
			Name:            req.Name,
			URI:             req.URI,
			Price:           req.Price,
			VenueAuthority:  req.VenueAuthority,
			Row:             req.Row,
			Seat:            req.Seat,
			Screen:          req.Screen,
		})
		if err != nil {
			writeIssueError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(ticketToResponse(ticket))
	}
}

// HandleGetTicket returns an HTTP handler for reading a minted ticket.
func HandleGetTicket(svc TicketGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		id, ok := parseTicketPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		ticket, err := svc.GetTicket(r.Context(), id)
		if err != nil {
			if err == domain.ErrTicketNotFound {
				writeError(w, http.StatusNotFound, codeTicketNotFound, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ticketToResponse(ticket))
	}
}

func writeIssueError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrNameRequired:
		writeError(w, http.StatusBadRequest, codeNameRequired, err.Error())
	case domain.ErrURIRequired:
		writeError(w, http.StatusBadRequest, codeURIRequired, err.Error())
	case domain.ErrVenueAuthorityRequired:
		writeError(w, http.StatusBadRequest, codeVenueAuthorityRequired, err.Error())
	case domain.ErrCollectionNotFound:
		writeError(w, http.StatusNotFound, codeCollectionNotFound, err.Error())
	case domain.ErrMarketplaceNotFound:
		writeError(w, http.StatusNotFound, codeMarketplaceNotFound, err.Error())
	case domain.ErrManagerNotFound:
		writeError(w, http.StatusNotFound, codeManagerNotFound, err.Error())
	case domain.ErrAccountNotFound:
		writeError(w, http.StatusNotFound, codeAccountNotFound, err.Error())
	case domain.ErrMaximumTicketsReached:
		writeError(w, http.StatusConflict, codeMaximumTicketsReached, err.Error())
	case domain.ErrInsufficientFunds:
		writeError(w, http.StatusPaymentRequired, codeInsufficientFunds, err.Error())
	case domain.ErrMissingCapacityAttribute:
		writeError(w, http.StatusUnprocessableEntity, codeMissingCapacityAttribute, err.Error())
	case domain.ErrNumericalOverflow:
		writeError(w, http.StatusUnprocessableEntity, codeNumericalOverflow, err.Error())
	case domain.ErrAuthorityMismatch:
		writeError(w, http.StatusConflict, codeAuthorityMismatch, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func parseTicketPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 {
		return "", false
	}
	if parts[0] != "tickets" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

type issueTicketRequest struct {
	CollectionID   string `json:"collection_id"`
	Marketplace    string `json:"marketplace"`
	OrganizerID    string `json:"organizer_id"`
	BuyerID        string `json:"buyer_id"`
	Name           string `json:"name"`
	URI            string `json:"uri"`
	Price          uint64 `json:"price"`
	VenueAuthority string `json:"venue_authority"`
	Row            string `json:"row,omitempty"`
	Seat           string `json:"seat,omitempty"`
	Screen         string `json:"screen,omitempty"`
}

func (r issueTicketRequest) validate() (code, msg string, ok bool) {
	switch {
	case r.CollectionID == "" || r.Marketplace == "" || r.OrganizerID == "" || r.BuyerID == "":
		return codeInvalidID, "collection_id, marketplace, organizer_id and buyer_id are required", false
	case r.Name == "":
		return codeNameRequired, domain.ErrNameRequired.Error(), false
	case r.URI == "":
		return codeURIRequired, domain.ErrURIRequired.Error(), false
	case r.VenueAuthority == "":
		return codeVenueAuthorityRequired, domain.ErrVenueAuthorityRequired.Error(), false
	}
	return "", "", true
}

type attributeResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type delegateResponse struct {
	Kind   string `json:"kind"`
	Frozen bool   `json:"frozen,omitempty"`
}

type appDataResponse struct {
	DataAuthority string `json:"data_authority"`
	Schema        string `json:"schema"`
}

type ticketResponse struct {
	ID           string              `json:"id"`
	CollectionID string              `json:"collection_id"`
	Owner        string              `json:"owner"`
	Name         string              `json:"name"`
	URI          string              `json:"uri"`
	Attributes   []attributeResponse `json:"attributes"`
	Delegates    []delegateResponse  `json:"delegates"`
	AppData      []appDataResponse   `json:"app_data"`
	Frozen       bool                `json:"frozen"`
	CreatedAt    time.Time           `json:"created_at"`
}

func ticketToResponse(ticket domain.Ticket) ticketResponse {
	resp := ticketResponse{
		ID:           ticket.ID,
		CollectionID: ticket.CollectionID,
		Owner:        ticket.Owner,
		Name:         ticket.Name,
		URI:          ticket.URI,
		Frozen:       ticket.Frozen(),
		CreatedAt:    ticket.CreatedAt,
	}
	for _, a := range ticket.Attributes {
		resp.Attributes = append(resp.Attributes, attributeResponse{Key: a.Key, Value: a.Value})
	}
	for _, d := range ticket.Delegates {
		resp.Delegates = append(resp.Delegates, delegateResponse{Kind: string(d.Kind), Frozen: d.Frozen})
	}
	for _, reg := range ticket.AppData {
		resp.AppData = append(resp.AppData, appDataResponse{DataAuthority: reg.DataAuthority, Schema: string(reg.Schema)})
	}
	return resp
}
