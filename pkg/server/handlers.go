package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/allowlist"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/merkle"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/rootstore"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/types"
)

const (
	maxRequestBodyBytes = 4 << 20
	rootCheckTimeout    = 5 * time.Second

	errNotEligible = "address not eligible"
	errNoRoot      = "no allowlist root has been published"
)

// RootResponse describes the active allowlist version.
type RootResponse struct {
	Version      int64        `json:"version"`
	ID           string       `json:"id"`
	Label        string       `json:"label,omitempty"`
	Root         types.Digest `json:"root"`
	Count        int          `json:"count"`
	Depth        int          `json:"depth"`
	SortedLeaves bool         `json:"sortedLeaves"`
	CreatedAt    int64        `json:"createdAt"`
	CommittedTx  string       `json:"committedTx,omitempty"`
}

// ProofResponse carries everything safeMintWhiteList needs.
type ProofResponse struct {
	Address string         `json:"address"`
	Leaf    types.Digest   `json:"leaf"`
	Proof   []types.Digest `json:"proof"`
	Root    types.Digest   `json:"root"`
	Version int64          `json:"version"`
}

// VerifyRequest checks a proof. Root defaults to the active root when empty.
type VerifyRequest struct {
	Address string   `json:"address"`
	Proof   []string `json:"proof"`
	Root    string   `json:"root,omitempty"`
}

type VerifyResponse struct {
	Valid bool         `json:"valid"`
	Root  types.Digest `json:"root"`
}

// PublishRequest publishes a new allowlist version.
type PublishRequest struct {
	Addresses []string `json:"addresses"`
	Label     string   `json:"label"`
}

type ActivateRequest struct {
	Version int64 `json:"version"`
}

// CommitRequest records the setRoot transaction that put a version on chain.
type CommitRequest struct {
	Version int64  `json:"version"`
	TxHash  string `json:"txHash"`
}

type VersionsResponse struct {
	ActiveVersion int64                    `json:"activeVersion"`
	Versions      []*rootstore.RootVersion `json:"versions"`
}

type HealthResponse struct {
	Status        string        `json:"status"`
	ActiveVersion int64         `json:"activeVersion,omitempty"`
	Root          *types.Digest `json:"root,omitempty"`
	OnChainRoot   *types.Digest `json:"onChainRoot,omitempty"`
	RootMatches   *bool         `json:"rootMatches,omitempty"`
	Error         string        `json:"error,omitempty"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func newRootResponse(at *allowlist.ActiveTree) *RootResponse {
	return &RootResponse{
		Version:      at.Version.Version,
		ID:           at.Version.ID,
		Label:        at.Version.Label,
		Root:         at.Tree.Root(),
		Count:        at.Tree.Len(),
		Depth:        at.Tree.Depth(),
		SortedLeaves: at.Tree.SortedLeaves(),
		CreatedAt:    at.Version.CreatedAt,
		CommittedTx:  at.Version.CommittedTx,
	}
}

func (s *Server) handleGetRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, r, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	at := s.registry.Active()
	if at == nil {
		s.writeError(w, r, errNoRoot, http.StatusServiceUnavailable)
		return
	}

	s.writeJSON(w, r, http.StatusOK, newRootResponse(at))
}

func (s *Server) handleGetProof(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, r, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	raw := r.URL.Query().Get("address")
	if raw == "" {
		s.writeError(w, r, "address is required", http.StatusBadRequest)
		return
	}
	addr, err := types.ParseAddress(raw)
	if err != nil {
		s.writeError(w, r, err.Error(), http.StatusBadRequest)
		return
	}

	at, proof, err := s.registry.Proof(addr)
	switch {
	case errors.Is(err, allowlist.ErrNoActiveRoot):
		s.writeError(w, r, errNoRoot, http.StatusServiceUnavailable)
		return
	case errors.Is(err, merkle.ErrNotFound):
		s.recorder.ObserveNotEligible()
		s.writeError(w, r, errNotEligible, http.StatusNotFound)
		return
	case err != nil:
		s.logger.Sugar().Errorw("Failed to build proof", "address", addr.Hex(), "error", err)
		s.writeError(w, r, "Internal error", http.StatusInternalServerError)
		return
	}

	s.recorder.ObserveProofServed()
	s.writeJSON(w, r, http.StatusOK, &ProofResponse{
		Address: addr.Hex(),
		Leaf:    merkle.HashLeaf(addr),
		Proof:   proof,
		Root:    at.Tree.Root(),
		Version: at.Version.Version,
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, r, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req VerifyRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	addr, err := types.ParseAddress(req.Address)
	if err != nil {
		s.writeError(w, r, err.Error(), http.StatusBadRequest)
		return
	}

	var root types.Digest
	if req.Root != "" {
		root, err = types.ParseDigest(req.Root)
		if err != nil {
			s.writeError(w, r, "root: "+err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		at := s.registry.Active()
		if at == nil {
			s.writeError(w, r, errNoRoot, http.StatusServiceUnavailable)
			return
		}
		root = at.Tree.Root()
	}

	// A proof element that is not a 32-byte word can never hash to the root.
	valid := false
	if proof, err := types.ParseDigests(req.Proof); err == nil {
		valid = merkle.VerifyProof(root, addr, proof)
	}
	s.recorder.ObserveVerification(valid)
	s.writeJSON(w, r, http.StatusOK, &VerifyResponse{Valid: valid, Root: root})
}

func (s *Server) handleListVersions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, r, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	versions, err := s.registry.Versions()
	if err != nil {
		s.logger.Sugar().Errorw("Failed to list root versions", "error", err)
		s.writeError(w, r, "Internal error", http.StatusInternalServerError)
		return
	}

	resp := &VersionsResponse{Versions: versions}
	if at := s.registry.Active(); at != nil {
		resp.ActiveVersion = at.Version.Version
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, r, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snapshot, err := s.registry.Snapshot()
	if errors.Is(err, allowlist.ErrNoActiveRoot) {
		s.writeError(w, r, errNoRoot, http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		s.writeError(w, r, "Internal error", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, r, http.StatusOK, snapshot)
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, r, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req PublishRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	addrs, err := types.ParseAddresses(req.Addresses)
	if err != nil {
		s.recorder.ObservePublish(false)
		s.writeError(w, r, err.Error(), http.StatusBadRequest)
		return
	}

	at, err := s.registry.Publish(r.Context(), addrs, req.Label)
	if errors.Is(err, merkle.ErrEmptyInput) {
		s.recorder.ObservePublish(false)
		s.writeError(w, r, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		s.recorder.ObservePublish(false)
		s.logger.Sugar().Errorw("Failed to publish allowlist", "label", req.Label, "error", err)
		s.writeError(w, r, "Failed to publish allowlist", http.StatusInternalServerError)
		return
	}

	s.recorder.ObservePublish(true)
	s.recorder.SetActiveTree(at.Version.Version, at.Tree.Len(), at.Tree.Depth())
	s.writeJSON(w, r, http.StatusCreated, newRootResponse(at))
}

func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, r, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ActivateRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Version <= 0 {
		s.writeError(w, r, "version must be positive", http.StatusBadRequest)
		return
	}

	at, err := s.registry.Activate(req.Version)
	if errors.Is(err, allowlist.ErrVersionNotFound) {
		s.writeError(w, r, "version not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Sugar().Errorw("Failed to activate version", "version", req.Version, "error", err)
		s.writeError(w, r, "Failed to activate version", http.StatusInternalServerError)
		return
	}

	s.recorder.SetActiveTree(at.Version.Version, at.Tree.Len(), at.Tree.Depth())
	s.writeJSON(w, r, http.StatusOK, newRootResponse(at))
}

func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, r, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CommitRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Version <= 0 {
		s.writeError(w, r, "version must be positive", http.StatusBadRequest)
		return
	}
	txHash, err := types.ParseDigest(req.TxHash)
	if err != nil {
		s.writeError(w, r, "invalid txHash: "+err.Error(), http.StatusBadRequest)
		return
	}

	err = s.registry.MarkCommitted(req.Version, common.Hash(txHash))
	if errors.Is(err, allowlist.ErrVersionNotFound) {
		s.writeError(w, r, "version not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Sugar().Errorw("Failed to record commit", "version", req.Version, "error", err)
		s.writeError(w, r, "Failed to record commit", http.StatusInternalServerError)
		return
	}

	s.logger.Sugar().Infow("Recorded setRoot transaction", "version", req.Version, "txHash", req.TxHash)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, r, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := s.registry.HealthCheck(); err != nil {
		s.writeJSON(w, r, http.StatusServiceUnavailable, &HealthResponse{Status: "unhealthy", Error: err.Error()})
		return
	}

	resp := &HealthResponse{Status: "ok"}
	at := s.registry.Active()
	if at != nil {
		root := at.Tree.Root()
		resp.ActiveVersion = at.Version.Version
		resp.Root = &root
	}

	if s.rootReader != nil {
		ctx, cancel := context.WithTimeout(r.Context(), rootCheckTimeout)
		defer cancel()

		onChain, err := s.rootReader.Root(ctx)
		if err != nil {
			s.logger.Sugar().Warnw("Failed to read on-chain root", "error", err)
			resp.Status = "degraded"
			resp.Error = "failed to read on-chain root"
		} else {
			resp.OnChainRoot = &onChain
			if resp.Root != nil {
				matches := *resp.Root == onChain
				resp.RootMatches = &matches
				s.recorder.SetRootMismatch(!matches)
			}
		}
	}

	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, r, "Failed to parse request: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Sugar().Warnw("Failed to encode response", "path", r.URL.Path, "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, msg string, status int) {
	s.writeJSON(w, r, status, &errorResponse{Error: msg, RequestID: requestIDFrom(r.Context())})
}
