package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/mux"

	"github.com/Mohsinsiddi/abi-test/internal/codec"
	"github.com/Mohsinsiddi/abi-test/internal/config"
	"github.com/Mohsinsiddi/abi-test/internal/contract"
)

const maxBodyBytes = 1 << 20

var errUnknownContract = errors.New("unknown contract")

type callRequest struct {
	Inputs map[string]string `json:"inputs"`
	// Address overrides the configured address.
	Address string `json:"address,omitempty"`
}

type validateRequest struct {
	Contract string       `json:"contract,omitempty"`
	Function string       `json:"function,omitempty"`
	Input    string       `json:"input,omitempty"`
	Param    *codec.Param `json:"param,omitempty"`
	Value    string       `json:"value"`
}

type validateResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

type dateTimeRequest struct {
	Timestamp string `json:"timestamp,omitempty"`
	Date      string `json:"date,omitempty"`
	Time      string `json:"time,omitempty"`
}

type dateTimeResponse struct {
	Timestamp string `json:"timestamp"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

type calldataResponse struct {
	To        string `json:"to,omitempty"`
	Calldata  string `json:"calldata"`
	Selector  string `json:"selector"`
	Signature string `json:"signature"`
}

type errorResponse struct {
	Error  string       `json:"error"`
	Revert *revertError `json:"revert,omitempty"`
}

type revertError struct {
	Reason string `json:"reason,omitempty"`
	Data   string `json:"data,omitempty"`
}

func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.resolved)
}

func (s *Server) handleFunctions(w http.ResponseWriter, r *http.Request) {
	c, ok := s.lookupContract(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newFunctionsResponse(c, s.resolved.ChainID, s.resolved.BlockExplorerURL))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	writeJSON(w, http.StatusOK, map[string]any{"query": q, "matches": searchContracts(s.resolved.Contracts, q)})
}

func (s *Server) handleRead(w http.ResponseWriter, r *http.Request) {
	c, fn, ok := s.lookupFunction(w, r)
	if !ok {
		return
	}
	var req callRequest
	if !decodeBody(w, r, &req) {
		return
	}
	address, ok := s.callAddress(w, c, req.Address)
	if !ok {
		return
	}

	results, err := s.callers[c.Name].Call(r.Context(), address, fn, req.Inputs)
	if err != nil {
		s.log.Debug().Err(err).Str("contract", c.Name).Str("function", fn.Name).Msg("read failed")
		writeError(w, statusFor(err), err)
		return
	}
	views, err := newResultViews(results, s.resolved.BlockExplorerURL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": views})
}

func (s *Server) handleCalldata(w http.ResponseWriter, r *http.Request) {
	c, fn, ok := s.lookupFunction(w, r)
	if !ok {
		return
	}
	var req callRequest
	if !decodeBody(w, r, &req) {
		return
	}

	data, err := contract.Encode(fn, req.Inputs, c.Enums)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	to := req.Address
	if to == "" {
		to, _ = contract.ResolveAddress(c.Address, s.resolved.ChainID)
	}
	writeJSON(w, http.StatusOK, calldataResponse{
		To:        to,
		Calldata:  hexutil.Encode(data),
		Selector:  contract.SelectorHex(fn),
		Signature: contract.Signature(fn),
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var (
		param codec.Param
		enums codec.EnumMapping
	)
	switch {
	case req.Param != nil:
		param = *req.Param
		if c, ok := s.resolved.Contract(req.Contract); ok {
			enums = c.Enums
		}
	default:
		c, ok := s.resolved.Contract(req.Contract)
		if !ok {
			writeError(w, http.StatusNotFound, fmt.Errorf("%w: %q", errUnknownContract, req.Contract))
			return
		}
		fn, err := c.ABI.Function(req.Function)
		if err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
		found := false
		for i, p := range fn.Inputs {
			if p.Key(i) == req.Input {
				param, found = p, true
				break
			}
		}
		if !found {
			writeError(w, http.StatusNotFound, fmt.Errorf("%s has no input %q", fn.Name, req.Input))
			return
		}
		enums = c.Enums
	}

	resp := validateResponse{Valid: true}
	if err := codec.ValidateEnum(req.Value, param, enums); err != nil {
		resp = validateResponse{Valid: false, Error: err.Error()}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDateTime(w http.ResponseWriter, r *http.Request) {
	var req dateTimeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp := dateTimeResponse{Timestamp: req.Timestamp, Date: req.Date, Time: req.Time}
	if req.Timestamp != "" {
		resp.Date, resp.Time = codec.TimestampToDateTime(req.Timestamp)
	} else {
		resp.Timestamp = codec.DateTimeToTimestamp(req.Date, req.Time)
	}
	writeJSON(w, http.StatusOK, resp)
}

// lookupContract looks up the {contract} route variable, writing a 404 when it
// is unknown.
func (s *Server) lookupContract(w http.ResponseWriter, r *http.Request) (config.ResolvedContract, bool) {
	name := mux.Vars(r)["contract"]
	c, ok := s.resolved.Contract(name)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("%w: %q", errUnknownContract, name))
	}
	return c, ok
}

func (s *Server) lookupFunction(w http.ResponseWriter, r *http.Request) (config.ResolvedContract, contract.ABIEntry, bool) {
	c, ok := s.lookupContract(w, r)
	if !ok {
		return c, contract.ABIEntry{}, false
	}
	fn, err := c.ABI.Function(mux.Vars(r)["function"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return c, contract.ABIEntry{}, false
	}
	return c, fn, true
}

func (s *Server) callAddress(w http.ResponseWriter, c config.ResolvedContract, override string) (string, bool) {
	if override != "" {
		return override, true
	}
	addr, ok := contract.ResolveAddress(c.Address, s.resolved.ChainID)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%s has no address on chain %d", c.Name, s.resolved.ChainID))
	}
	return addr, ok
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

// statusFor maps call errors to HTTP status: unknown names are 404, bad
// input and reverts are 400, node failures are 502.
func statusFor(err error) int {
	var (
		inputErr *contract.InputError
		revert   *contract.RevertError
	)
	switch {
	case errors.Is(err, contract.ErrFunctionNotFound):
		return http.StatusNotFound
	case errors.As(err, &inputErr),
		errors.As(err, &revert),
		errors.Is(err, contract.ErrNotReadFunction),
		errors.Is(err, codec.ErrInvalidAddress):
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Error: err.Error()}
	var revert *contract.RevertError
	if errors.As(err, &revert) {
		resp.Revert = &revertError{Reason: revert.Reason, Data: revert.Data}
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(v) //nolint:errcheck
}
