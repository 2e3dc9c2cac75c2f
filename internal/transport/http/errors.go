package http

import (
	"encoding/json"
	"net/http"
)

const (
	codeMethodNotAllowed         = "method_not_allowed"
	codeNotFound                 = "not_found"
	codeInvalidRequestBody       = "invalid_request_body"
	codeNameRequired             = "name_required"
	codeURIRequired              = "uri_required"
	codeVenueAuthorityRequired   = "venue_authority_required"
	codeInvalidID                = "invalid_id"
	codeInvalidCapacity          = "invalid_capacity"
	codeMissingCapacityAttribute = "missing_capacity_attribute"
	codeNumericalOverflow        = "numerical_overflow"
	codeMaximumTicketsReached    = "maximum_tickets_reached"
	codeInsufficientFunds        = "insufficient_funds"
	codeCollectionNotFound       = "collection_not_found"
	codeMarketplaceNotFound      = "marketplace_not_found"
	codeManagerNotFound          = "manager_not_found"
	codeAccountNotFound          = "account_not_found"
	codeTicketNotFound           = "ticket_not_found"
	codeAuthorityMismatch        = "authority_mismatch"
	codeAlreadyExists            = "already_exists"
	codeForbidden                = "forbidden"
	codeInternalError            = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}
