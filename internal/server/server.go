package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strconv"

	"github.com/gallerix/artwork-marketplace/internal/bank"
	"github.com/gallerix/artwork-marketplace/internal/entity"
	"github.com/gallerix/artwork-marketplace/internal/marketplace"
	"github.com/gallerix/artwork-marketplace/internal/metadata"
	"github.com/gallerix/artwork-marketplace/internal/repository"
	"github.com/gallerix/artwork-marketplace/internal/txn"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Server is the HTTP calling convention over the marketplace engine. The
// caller principal travels in the X-Caller header; amounts are decimal
// strings so arbitrary-width values survive JSON.
type Server struct {
	executor        *txn.Executor
	auditRepo       repository.AuditRepository
	metadataService metadata.Service
}

func NewServer(executor *txn.Executor, auditRepo repository.AuditRepository, metadataService metadata.Service) Server {
	return Server{executor, auditRepo, metadataService}
}

func (s Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods("GET")

	r.HandleFunc("/artworks", s.handleMint).Methods("POST")
	r.HandleFunc("/artworks/batch", s.handleMintBatch).Methods("POST")
	r.HandleFunc("/artworks/total", s.handleTotalMinted).Methods("GET")
	r.HandleFunc("/artworks/{tokenId}", s.handleGetListing).Methods("GET")
	r.HandleFunc("/artworks/{tokenId}/buy", s.handleBuy).Methods("POST")
	r.HandleFunc("/artworks/{tokenId}/price", s.handleUpdatePrice).Methods("PUT")
	r.HandleFunc("/artworks/{tokenId}/price", s.handleGetPrice).Methods("GET")
	r.HandleFunc("/artworks/{tokenId}/forsale", s.handleIsForSale).Methods("GET")
	r.HandleFunc("/artworks/{tokenId}/listing", s.handleDelist).Methods("DELETE")
	r.HandleFunc("/artworks/{tokenId}/uri", s.handleMetadataUri).Methods("GET")
	r.HandleFunc("/artworks/{tokenId}/metadata", s.handleMetadata).Methods("GET")
	r.HandleFunc("/artworks/{tokenId}/royalty", s.handleRoyaltyInfo).Methods("GET")
	r.HandleFunc("/artworks/{tokenId}/events", s.handleEvents).Methods("GET")

	r.HandleFunc("/admin/royalty-fee", s.handleSetRoyaltyFee).Methods("POST")
	r.HandleFunc("/admin/max-price", s.handleSetMaxPrice).Methods("POST")
	r.HandleFunc("/admin/admins", s.handleSetAdmin).Methods("POST")
	r.HandleFunc("/admin/pause", s.handlePause).Methods("POST")
	r.HandleFunc("/admin/unpause", s.handleUnpause).Methods("POST")

	r.HandleFunc("/accounts/{address}/deposit", s.handleDeposit).Methods("POST")
	r.HandleFunc("/accounts/{address}/balance", s.handleBalance).Methods("GET")

	return r
}

func (s Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

type mintRequest struct {
	Uri   string `json:"uri"`
	Price string `json:"price"`
}

func (s Server) handleMint(w http.ResponseWriter, r *http.Request) {
	var req mintRequest
	if !decodeBody(w, r, &req) {
		return
	}

	price, ok := parseAmount(w, req.Price)
	if !ok {
		return
	}

	id, err := s.executor.Mint(caller(r), req.Uri, price)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusCreated, map[string]interface{}{"tokenId": id})
}

type mintBatchRequest struct {
	Uris   []string `json:"uris"`
	Prices []string `json:"prices"`
}

func (s Server) handleMintBatch(w http.ResponseWriter, r *http.Request) {
	var req mintBatchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	prices := make([]*big.Int, len(req.Prices))
	for i, raw := range req.Prices {
		price, ok := parseAmount(w, raw)
		if !ok {
			return
		}
		prices[i] = price
	}

	ids, err := s.executor.MintBatch(caller(r), req.Uris, prices)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusCreated, map[string]interface{}{"tokenIds": ids})
}

type buyRequest struct {
	Payment string `json:"payment"`
}

func (s Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	tokenId, err := getTokenId(r)
	if err != nil {
		writeError(w, marketplace.ErrNotFound)
		return
	}

	var req buyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	payment, ok := parseAmount(w, req.Payment)
	if !ok {
		return
	}

	if err := s.executor.Buy(caller(r), tokenId, payment); err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, map[string]interface{}{"tokenId": tokenId, "buyer": caller(r)})
}

type priceRequest struct {
	Price string `json:"price"`
}

func (s Server) handleUpdatePrice(w http.ResponseWriter, r *http.Request) {
	tokenId, err := getTokenId(r)
	if err != nil {
		writeError(w, marketplace.ErrNotFound)
		return
	}

	var req priceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	price, ok := parseAmount(w, req.Price)
	if !ok {
		return
	}

	if err := s.executor.UpdatePrice(caller(r), tokenId, price); err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, map[string]interface{}{"tokenId": tokenId, "price": price.String()})
}

func (s Server) handleDelist(w http.ResponseWriter, r *http.Request) {
	tokenId, err := getTokenId(r)
	if err != nil {
		writeError(w, marketplace.ErrNotFound)
		return
	}

	if err := s.executor.Delist(caller(r), tokenId); err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, map[string]interface{}{"tokenId": tokenId, "forSale": false})
}

func (s Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	tokenId, err := getTokenId(r)
	if err != nil {
		writeError(w, marketplace.ErrNotFound)
		return
	}

	listing, err := s.executor.GetListing(tokenId)
	if err != nil {
		writeError(w, err)
		return
	}

	owner, _ := s.executor.OwnerOf(tokenId)

	writeJson(w, http.StatusOK, map[string]interface{}{
		"tokenId": tokenId,
		"price":   listing.Price.String(),
		"forSale": listing.ForSale,
		"artist":  listing.Artist,
		"uri":     listing.Uri,
		"owner":   owner,
	})
}

func (s Server) handleGetPrice(w http.ResponseWriter, r *http.Request) {
	tokenId, _ := getTokenId(r)

	writeJson(w, http.StatusOK, map[string]interface{}{"price": s.executor.GetPrice(tokenId).String()})
}

func (s Server) handleIsForSale(w http.ResponseWriter, r *http.Request) {
	tokenId, _ := getTokenId(r)

	writeJson(w, http.StatusOK, map[string]interface{}{"forSale": s.executor.IsForSale(tokenId)})
}

func (s Server) handleTotalMinted(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, map[string]interface{}{"totalMinted": s.executor.TotalMinted()})
}

func (s Server) handleMetadataUri(w http.ResponseWriter, r *http.Request) {
	tokenId, err := getTokenId(r)
	if err != nil {
		writeError(w, marketplace.ErrNotFound)
		return
	}

	uri, err := s.executor.MetadataURI(tokenId)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, map[string]interface{}{"uri": uri})
}

func (s Server) handleMetadata(w http.ResponseWriter, r *http.Request) {
	tokenId, err := getTokenId(r)
	if err != nil {
		writeError(w, marketplace.ErrNotFound)
		return
	}

	uri, err := s.executor.MetadataURI(tokenId)
	if err != nil {
		writeError(w, err)
		return
	}

	md, err := s.metadataService.GetMetadata(uri)
	if err != nil {
		zap.L().With(zap.Error(err), zap.Uint64("tokenId", tokenId)).Warn("Metadata not available")
		http.Error(w, "Metadata not available", http.StatusNotFound)
		return
	}

	writeJson(w, http.StatusOK, md)
}

func (s Server) handleRoyaltyInfo(w http.ResponseWriter, r *http.Request) {
	tokenId, _ := getTokenId(r)

	salePrice, ok := parseAmount(w, r.URL.Query().Get("salePrice"))
	if !ok {
		return
	}

	receiver, amount := s.executor.RoyaltyInfo(tokenId, salePrice)

	writeJson(w, http.StatusOK, map[string]interface{}{"receiver": receiver, "amount": amount.String()})
}

func (s Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	tokenId, err := getTokenId(r)
	if err != nil {
		writeError(w, marketplace.ErrNotFound)
		return
	}

	records, err := s.auditRepo.GetRecordsByTokenId(tokenId)
	if err != nil {
		zap.L().With(zap.Error(err), zap.Uint64("tokenId", tokenId)).Error("Failed to get audit records")
		http.Error(w, "Failed to get audit records", http.StatusInternalServerError)
		return
	}

	writeJson(w, http.StatusOK, records)
}

type royaltyFeeRequest struct {
	Bps uint64 `json:"bps"`
}

func (s Server) handleSetRoyaltyFee(w http.ResponseWriter, r *http.Request) {
	var req royaltyFeeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.executor.SetRoyaltyFee(caller(r), req.Bps); err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, map[string]interface{}{"bps": req.Bps})
}

type maxPriceRequest struct {
	Value string `json:"value"`
}

func (s Server) handleSetMaxPrice(w http.ResponseWriter, r *http.Request) {
	var req maxPriceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	value, ok := parseAmount(w, req.Value)
	if !ok {
		return
	}

	if err := s.executor.SetMaxPrice(caller(r), value); err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, map[string]interface{}{"value": value.String()})
}

type setAdminRequest struct {
	Account string `json:"account"`
	Flag    bool   `json:"flag"`
}

func (s Server) handleSetAdmin(w http.ResponseWriter, r *http.Request) {
	var req setAdminRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.executor.SetAdmin(caller(r), entity.NewAddress(req.Account), req.Flag); err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, map[string]interface{}{"account": entity.NewAddress(req.Account), "flag": req.Flag})
}

func (s Server) handlePause(w http.ResponseWriter, r *http.Request) {
	if err := s.executor.Pause(caller(r)); err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, map[string]interface{}{"paused": true})
}

func (s Server) handleUnpause(w http.ResponseWriter, r *http.Request) {
	if err := s.executor.Unpause(caller(r)); err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, map[string]interface{}{"paused": false})
}

type depositRequest struct {
	Amount string `json:"amount"`
}

func (s Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	address := entity.NewAddress(mux.Vars(r)["address"])

	var req depositRequest
	if !decodeBody(w, r, &req) {
		return
	}

	amount, ok := parseAmount(w, req.Amount)
	if !ok {
		return
	}

	if err := s.executor.Deposit(address, amount); err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, map[string]interface{}{"account": address, "balance": s.executor.Balance(address).String()})
}

func (s Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	address := entity.NewAddress(mux.Vars(r)["address"])

	writeJson(w, http.StatusOK, map[string]interface{}{"account": address, "balance": s.executor.Balance(address).String()})
}

func caller(r *http.Request) entity.Address {
	return entity.NewAddress(r.Header.Get("X-Caller"))
}

func getTokenId(r *http.Request) (uint64, error) {
	tokenId, ok := mux.Vars(r)["tokenId"]
	if !ok {
		return 0, errors.New("invalid parameters")
	}

	return strconv.ParseUint(tokenId, 10, 64)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJson(w, http.StatusBadRequest, map[string]interface{}{"error": "invalid request body"})
		return false
	}

	return true
}

func parseAmount(w http.ResponseWriter, raw string) (*big.Int, bool) {
	if raw == "" {
		writeJson(w, http.StatusBadRequest, map[string]interface{}{"error": "missing amount"})
		return nil, false
	}

	amount, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		writeJson(w, http.StatusBadRequest, map[string]interface{}{"error": "invalid amount"})
		return nil, false
	}

	return amount, true
}

func writeJson(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Every engine failure maps to a stable error string so clients can
// assert on cause, not just on status code.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusConflict

	switch {
	case errors.Is(err, marketplace.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, marketplace.ErrNotOwner), errors.Is(err, marketplace.ErrNotAdmin):
		status = http.StatusForbidden
	case errors.Is(err, marketplace.ErrPaused):
		status = http.StatusServiceUnavailable
	case errors.Is(err, marketplace.ErrInvalidPrice),
		errors.Is(err, marketplace.ErrPriceTooHigh),
		errors.Is(err, marketplace.ErrInvalidMetadata),
		errors.Is(err, marketplace.ErrInvalidRoyaltyFee),
		errors.Is(err, marketplace.ErrLengthMismatch),
		errors.Is(err, marketplace.ErrEmptyBatch),
		errors.Is(err, bank.ErrInvalidAmount):
		status = http.StatusBadRequest
	case errors.Is(err, marketplace.ErrWrongPayment), errors.Is(err, bank.ErrInsufficientFunds):
		status = http.StatusPaymentRequired
	}

	writeJson(w, status, map[string]interface{}{"error": err.Error()})
}
