package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/openvenue/mintgate/internal/app"
	"github.com/openvenue/mintgate/internal/domain"
)

// SetupService is the minimal interface needed for the admin bootstrap
// endpoints.
type SetupService interface {
	CreateMarketplace(ctx context.Context, in app.CreateMarketplaceInput) (domain.Marketplace, error)
	CreateManager(ctx context.Context, in app.CreateManagerInput) (domain.Manager, error)
	CreateCollection(ctx context.Context, in app.CreateCollectionInput) (domain.Collection, error)
	CreateAccount(ctx context.Context, in app.CreateAccountInput) (domain.Account, error)
}

// HandleAdminMarketplaces returns an HTTP handler for marketplace creation.
func HandleAdminMarketplaces(svc SetupService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createMarketplaceRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, codeNameRequired, domain.ErrNameRequired.Error())
			return
		}

		marketplace, err := svc.CreateMarketplace(r.Context(), app.CreateMarketplaceInput{
			Name:   req.Name,
			FeeBps: req.FeeBps,
		})
		if err != nil {
			writeAdminError(w, err)
			return
		}

		resp := marketplaceResponse{
			Name:       marketplace.Name,
			FeeBps:     marketplace.FeeBps,
			TreasuryID: marketplace.TreasuryID,
			CreatedAt:  marketplace.CreatedAt,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// HandleAdminManagers returns an HTTP handler for manager creation.
func HandleAdminManagers(svc SetupService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createManagerRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.OrganizerID == "" {
			writeError(w, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
			return
		}

		manager, err := svc.CreateManager(r.Context(), app.CreateManagerInput{OrganizerID: req.OrganizerID})
		if err != nil {
			writeAdminError(w, err)
			return
		}

		resp := managerResponse{
			OrganizerID: manager.OrganizerID,
			Authority:   manager.Authority,
			Bump:        manager.Bump,
			CreatedAt:   manager.CreatedAt,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// HandleAdminCollections returns an HTTP handler for event collection
// creation.
func HandleAdminCollections(svc SetupService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createCollectionRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.OrganizerID == "" {
			writeError(w, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
			return
		}
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, codeNameRequired, domain.ErrNameRequired.Error())
			return
		}
		if req.Capacity == 0 {
			writeError(w, http.StatusBadRequest, codeInvalidCapacity, domain.ErrInvalidCapacity.Error())
			return
		}

		attrs := make([]domain.Attribute, 0, len(req.Attributes))
		for _, a := range req.Attributes {
			attrs = append(attrs, domain.Attribute{Key: a.Key, Value: a.Value})
		}

		collection, err := svc.CreateCollection(r.Context(), app.CreateCollectionInput{
			OrganizerID:  req.OrganizerID,
			Name:         req.Name,
			URI:          req.URI,
			Capacity:     req.Capacity,
			Transferable: req.Transferable,
			Attributes:   attrs,
		})
		if err != nil {
			writeAdminError(w, err)
			return
		}

		resp := collectionResponse{ID: collection.ID}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// HandleAdminAccounts returns an HTTP handler for ledger account creation.
func HandleAdminAccounts(svc SetupService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createAccountRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.ID == "" {
			writeError(w, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
			return
		}

		account, err := svc.CreateAccount(r.Context(), app.CreateAccountInput{
			ID:      req.ID,
			Balance: req.Balance,
		})
		if err != nil {
			writeAdminError(w, err)
			return
		}

		resp := accountResponse{ID: account.ID, Balance: account.Balance}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return false
	}
	return true
}

func writeAdminError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrNameRequired:
		writeError(w, http.StatusBadRequest, codeNameRequired, err.Error())
	case domain.ErrInvalidID:
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case domain.ErrInvalidCapacity:
		writeError(w, http.StatusBadRequest, codeInvalidCapacity, err.Error())
	case domain.ErrManagerNotFound:
		writeError(w, http.StatusNotFound, codeManagerNotFound, err.Error())
	case domain.ErrMarketplaceAlreadyExists,
		domain.ErrManagerAlreadyExists,
		domain.ErrCollectionAlreadyExists,
		domain.ErrAccountAlreadyExists:
		writeError(w, http.StatusConflict, codeAlreadyExists, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

type createMarketplaceRequest struct {
	Name   string `json:"name"`
	FeeBps uint16 `json:"fee_bps,omitempty"`
}

type marketplaceResponse struct {
	Name       string    `json:"name"`
	FeeBps     uint16    `json:"fee_bps"`
	TreasuryID string    `json:"treasury_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type createManagerRequest struct {
	OrganizerID string `json:"organizer_id"`
}

type managerResponse struct {
	OrganizerID string    `json:"organizer_id"`
	Authority   string    `json:"authority"`
	Bump        uint8     `json:"bump"`
	CreatedAt   time.Time `json:"created_at"`
}

type attributeRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type createCollectionRequest struct {
	OrganizerID  string             `json:"organizer_id"`
	Name         string             `json:"name"`
	URI          string             `json:"uri,omitempty"`
	Capacity     uint32             `json:"capacity"`
	Transferable bool               `json:"transferable,omitempty"`
	Attributes   []attributeRequest `json:"attributes,omitempty"`
}

type collectionResponse struct {
	ID string `json:"id"`
}

type createAccountRequest struct {
	ID      string `json:"id"`
	Balance uint64 `json:"balance,omitempty"`
}

type accountResponse struct {
	ID      string `json:"id"`
	Balance uint64 `json:"balance"`
}
