// Package handler is the thin HTTP layer over the registry service. It
// parses requests, maps domain errors to status codes, and stays free of
// business logic.
package handler

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"custos/internal/registry/models"
	"custos/internal/registry/service"
	id "custos/pkg/domain"
	pkgerrors "custos/pkg/errors"
)

// ledgerHeader carries the calling share ledger's address; it stands in for
// the ledger identity the on-chain predecessor read from the call frame.
const ledgerHeader = "X-Ledger-Address"

type Handler struct {
	service *service.Service
	logger  *slog.Logger
}

func New(svc *service.Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// RegisterRoutes wires the ledger-facing endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/transfers/check", h.handleCheckTransfer)
	r.Post("/transfers", h.handleTransferShares)
	r.Post("/supply", h.handleModifySupply)
	r.Post("/supply/authorized", h.handleModifyAuthorizedSupply)

	r.Get("/members/{address}", h.handleIsRegistered)
	r.Get("/members/{address}/id", h.handleGetID)
	r.Get("/member-ids/{id}/verifier", h.handleGetVerifier)
	r.Get("/member-ids/{id}/document", h.handleGetDocument)
	r.Get("/counts", h.handleGetCounts)
	r.Get("/countries/{code}", h.handleGetCountry)
}

// RegisterAdmin wires the admin endpoints; callers must already be behind
// the admin token middleware.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Put("/admin/countries", h.handleSetCountries)
	r.Put("/admin/limits", h.handleSetMemberLimits)
	r.Put("/admin/verifiers", h.handleSetVerifier)
	r.Put("/admin/restrictions/entity", h.handleSetEntityRestriction)
	r.Put("/admin/restrictions/share", h.handleSetShareRestriction)
	r.Put("/admin/restrictions/global", h.handleSetGlobalRestriction)
	r.Post("/admin/custodians", h.handleAddCustodian)
	r.Post("/admin/shares", h.handleAddOrgShare)
	r.Post("/admin/modules", h.handleAttachModule)
	r.Delete("/admin/modules/{address}", h.handleDetachModule)
	r.Put("/admin/authorities", h.handleSetAuthority)
	r.Put("/admin/documents/{id}", h.handleSetDocument)
}

// AdminToken rejects admin calls without the expected token header.
func AdminToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" || r.Header.Get("X-Admin-Token") != token {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// --- transfers -------------------------------------------------------------

type transferRequest struct {
	Authority       string `json:"authority"`
	From            string `json:"from"`
	To              string `json:"to"`
	SenderZeroesOut bool   `json:"sender_zeroes_out"`
	// Remaining flags only matter for the mutating endpoint.
	ReceiverWasZero      bool `json:"receiver_was_zero"`
	CustodialSenderZero  bool `json:"custodial_sender_zero"`
	CustodialReceiverNew bool `json:"custodial_receiver_new"`
}

type transferResponse struct {
	AuthorityID string    `json:"authority_id"`
	SenderID    string    `json:"sender_id"`
	ReceiverID  string    `json:"receiver_id"`
	Ratings     [2]uint8  `json:"ratings"`
	Countries   [2]string `json:"countries"`
}

func (h *Handler) handleCheckTransfer(w http.ResponseWriter, r *http.Request) {
	caller, req, ok := h.transferInput(w, r)
	if !ok {
		return
	}
	result, err := h.service.CheckTransfer(r.Context(), caller,
		id.Address(req.Authority), id.Address(req.From), id.Address(req.To), req.SenderZeroesOut)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toTransferResponse(result))
}

func (h *Handler) handleTransferShares(w http.ResponseWriter, r *http.Request) {
	caller, req, ok := h.transferInput(w, r)
	if !ok {
		return
	}
	result, err := h.service.TransferShares(r.Context(), caller,
		id.Address(req.Authority), id.Address(req.From), id.Address(req.To),
		models.TransferZeroFlags{
			SenderZeroesOut:      req.SenderZeroesOut,
			ReceiverWasZero:      req.ReceiverWasZero,
			CustodialSenderZero:  req.CustodialSenderZero,
			CustodialReceiverNew: req.CustodialReceiverNew,
		})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toTransferResponse(result))
}

func (h *Handler) transferInput(w http.ResponseWriter, r *http.Request) (id.Address, *transferRequest, bool) {
	caller := id.Address(r.Header.Get(ledgerHeader))
	if caller.IsNil() {
		h.writeError(w, r, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing "+ledgerHeader+" header"))
		return "", nil, false
	}
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, pkgerrors.Wrap(err, pkgerrors.CodeBadRequest, "invalid request body"))
		return "", nil, false
	}
	if req.Authority == "" || req.From == "" || req.To == "" {
		h.writeError(w, r, pkgerrors.New(pkgerrors.CodeBadRequest, "authority, from, and to are required"))
		return "", nil, false
	}
	return caller, &req, true
}

func toTransferResponse(result *models.ComplianceResult) transferResponse {
	return transferResponse{
		AuthorityID: result.AuthorityID.String(),
		SenderID:    result.SenderID().String(),
		ReceiverID:  result.ReceiverID().String(),
		Ratings:     [2]uint8{uint8(result.Ratings[0]), uint8(result.Ratings[1])},
		Countries:   [2]string{result.Countries[0].String(), result.Countries[1].String()},
	}
}

// --- supply ----------------------------------------------------------------

type supplyRequest struct {
	Owner      string `json:"owner"`
	OldBalance uint64 `json:"old_balance"`
	NewBalance uint64 `json:"new_balance"`
}

func (h *Handler) handleModifySupply(w http.ResponseWriter, r *http.Request) {
	caller := id.Address(r.Header.Get(ledgerHeader))
	if caller.IsNil() {
		h.writeError(w, r, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing "+ledgerHeader+" header"))
		return
	}
	var req supplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, pkgerrors.Wrap(err, pkgerrors.CodeBadRequest, "invalid request body"))
		return
	}
	memberID, rating, country, err := h.service.ModifyShareTotalSupply(r.Context(), caller, id.Address(req.Owner), req.OldBalance, req.NewBalance)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"id":      memberID.String(),
		"rating":  uint8(rating),
		"country": country.String(),
	})
}

func (h *Handler) handleModifyAuthorizedSupply(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NewValue uint64 `json:"new_value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, pkgerrors.Wrap(err, pkgerrors.CodeBadRequest, "invalid request body"))
		return
	}
	approved, err := h.service.ModifyAuthorizedSupply(r.Context(), req.NewValue)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"approved": approved})
}

// --- read accessors --------------------------------------------------------

func (h *Handler) handleIsRegistered(w http.ResponseWriter, r *http.Request) {
	addr := id.Address(chi.URLParam(r, "address"))
	registered, err := h.service.IsRegisteredMember(r.Context(), addr)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"registered": registered})
}

func (h *Handler) handleGetID(w http.ResponseWriter, r *http.Request) {
	addr := id.Address(chi.URLParam(r, "address"))
	memberID, err := h.service.GetID(r.Context(), addr)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"id": memberID.String()})
}

func (h *Handler) handleGetVerifier(w http.ResponseWriter, r *http.Request) {
	memberID, ok := h.memberIDParam(w, r)
	if !ok {
		return
	}
	affinity, err := h.service.GetMemberVerifier(r.Context(), memberID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int{"verifier": affinity})
}

func (h *Handler) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	memberID, ok := h.memberIDParam(w, r)
	if !ok {
		return
	}
	hash, err := h.service.GetDocumentHash(r.Context(), memberID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"hash": hex.EncodeToString(hash[:])})
}

func (h *Handler) handleGetCounts(w http.ResponseWriter, r *http.Request) {
	table, err := h.service.GetMemberCounts(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"counts": table.Counts, "limits": table.Limits})
}

func (h *Handler) handleGetCountry(w http.ResponseWriter, r *http.Request) {
	code := id.CountryCode(chi.URLParam(r, "code"))
	record, err := h.service.GetCountry(r.Context(), code)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"code":       record.Code.String(),
		"permitted":  record.Permitted,
		"min_rating": uint8(record.MinRating),
		"counts":     record.Table.Counts,
		"limits":     record.Table.Limits,
	})
}

// --- admin -----------------------------------------------------------------

type countrySettingRequest struct {
	Code      string                   `json:"code"`
	Permitted bool                     `json:"permitted"`
	MinRating uint8                    `json:"min_rating"`
	Limits    [id.RatingBuckets]uint64 `json:"limits"`
}

func (h *Handler) handleSetCountries(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Countries []countrySettingRequest `json:"countries"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, pkgerrors.Wrap(err, pkgerrors.CodeBadRequest, "invalid request body"))
		return
	}
	settings := make([]service.CountrySetting, 0, len(req.Countries))
	for _, c := range req.Countries {
		rating, err := id.ParseRating(c.MinRating)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		settings = append(settings, service.CountrySetting{
			Code:      id.CountryCode(c.Code),
			Permitted: c.Permitted,
			MinRating: rating,
			Limits:    c.Limits,
		})
	}
	h.applied(w, r, func() (bool, error) {
		if len(settings) == 1 {
			return h.service.SetCountry(r.Context(), settings[0])
		}
		return h.service.SetCountries(r.Context(), settings)
	})
}

func (h *Handler) handleSetMemberLimits(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Limits [id.RatingBuckets]uint64 `json:"limits"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, pkgerrors.Wrap(err, pkgerrors.CodeBadRequest, "invalid request body"))
		return
	}
	h.applied(w, r, func() (bool, error) {
		return h.service.SetMemberLimits(r.Context(), req.Limits)
	})
}

func (h *Handler) handleSetVerifier(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index      int    `json:"index"`
		Key        string `json:"key"`
		Restricted bool   `json:"restricted"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, pkgerrors.Wrap(err, pkgerrors.CodeBadRequest, "invalid request body"))
		return
	}
	h.applied(w, r, func() (bool, error) {
		return h.service.SetVerifier(r.Context(), req.Index, req.Key, req.Restricted)
	})
}

func (h *Handler) handleSetEntityRestriction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Address    string `json:"address"`
		Restricted bool   `json:"restricted"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, pkgerrors.Wrap(err, pkgerrors.CodeBadRequest, "invalid request body"))
		return
	}
	h.applied(w, r, func() (bool, error) {
		return h.service.SetEntityRestriction(r.Context(), id.Address(req.Address), req.Restricted)
	})
}

func (h *Handler) handleSetShareRestriction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Address    string `json:"address"`
		Restricted bool   `json:"restricted"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, pkgerrors.Wrap(err, pkgerrors.CodeBadRequest, "invalid request body"))
		return
	}
	h.applied(w, r, func() (bool, error) {
		return h.service.SetOrgShareRestriction(r.Context(), id.Address(req.Address), req.Restricted)
	})
}

func (h *Handler) handleSetGlobalRestriction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Locked bool `json:"locked"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, pkgerrors.Wrap(err, pkgerrors.CodeBadRequest, "invalid request body"))
		return
	}
	h.applied(w, r, func() (bool, error) {
		return h.service.SetGlobalRestriction(r.Context(), req.Locked)
	})
}

func (h *Handler) handleAddCustodian(w http.ResponseWriter, r *http.Request) {
	h.addressAction(w, r, h.service.AddCustodian)
}

func (h *Handler) handleAddOrgShare(w http.ResponseWriter, r *http.Request) {
	h.addressAction(w, r, h.service.AddOrgShare)
}

func (h *Handler) handleAttachModule(w http.ResponseWriter, r *http.Request) {
	h.addressAction(w, r, h.service.AttachModule)
}

func (h *Handler) handleDetachModule(w http.ResponseWriter, r *http.Request) {
	addr := id.Address(chi.URLParam(r, "address"))
	h.applied(w, r, func() (bool, error) {
		return h.service.DetachModule(r.Context(), addr)
	})
}

func (h *Handler) handleSetAuthority(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Address   string    `json:"address"`
		Methods   uint8     `json:"methods"`
		NotBefore time.Time `json:"not_before"`
		NotAfter  time.Time `json:"not_after"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, pkgerrors.Wrap(err, pkgerrors.CodeBadRequest, "invalid request body"))
		return
	}
	h.applied(w, r, func() (bool, error) {
		return h.service.SetAuthority(r.Context(), id.Address(req.Address),
			models.AuthorityMethod(req.Methods), req.NotBefore, req.NotAfter)
	})
}

func (h *Handler) handleSetDocument(w http.ResponseWriter, r *http.Request) {
	memberID, ok := h.memberIDParam(w, r)
	if !ok {
		return
	}
	var req struct {
		Hash string `json:"hash"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, pkgerrors.Wrap(err, pkgerrors.CodeBadRequest, "invalid request body"))
		return
	}
	raw, err := hex.DecodeString(req.Hash)
	if err != nil || len(raw) != 32 {
		h.writeError(w, r, pkgerrors.New(pkgerrors.CodeBadRequest, "hash must be 32 hex-encoded bytes"))
		return
	}
	var hash [32]byte
	copy(hash[:], raw)
	h.applied(w, r, func() (bool, error) {
		return h.service.SetDocument(r.Context(), memberID, hash)
	})
}

// --- helpers ---------------------------------------------------------------

func (h *Handler) addressAction(w http.ResponseWriter, r *http.Request, action func(context.Context, id.Address) (bool, error)) {
	var req struct {
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, pkgerrors.Wrap(err, pkgerrors.CodeBadRequest, "invalid request body"))
		return
	}
	h.applied(w, r, func() (bool, error) {
		return action(r.Context(), id.Address(req.Address))
	})
}

// applied renders the admin fail-closed contract: ok=false with no error
// means the external authorization gate has not approved yet.
func (h *Handler) applied(w http.ResponseWriter, r *http.Request, action func() (bool, error)) {
	ok, err := action()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"applied": ok})
}

func (h *Handler) memberIDParam(w http.ResponseWriter, r *http.Request) (id.MemberID, bool) {
	memberID, err := id.ParseMemberID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return id.NilMemberID, false
	}
	return memberID, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch pkgerrors.CodeOf(err) {
	case pkgerrors.CodeBadRequest, pkgerrors.CodeInvalidInput:
		status = http.StatusBadRequest
	case pkgerrors.CodeNotFound:
		status = http.StatusNotFound
	case pkgerrors.CodeUnauthorized:
		status = http.StatusUnauthorized
	case pkgerrors.CodeForbidden:
		status = http.StatusForbidden
	case pkgerrors.CodeConflict:
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError && h.logger != nil {
		h.logger.ErrorContext(r.Context(), "internal error", "path", r.URL.Path, "error", err)
	}
	h.writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  string(pkgerrors.CodeOf(err)),
	})
}
