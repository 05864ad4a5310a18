package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Configuration (CFG) ----

func ErrMarketplaceNotConfigured() *AppError {
	return New("CFG_001", "Marketplace is not configured. Set the marketplace object id for this network.", http.StatusServiceUnavailable)
}

func ErrPackageNotConfigured() *AppError {
	return New("CFG_002", "Marketplace package is not deployed on this network", http.StatusServiceUnavailable)
}

// ---- Contract aborts surfaced by the wallet (TX) ----

// GenericTxFailureMessage is shown when a wallet or contract error carries no known abort code.
const GenericTxFailureMessage = "Transaction failed. Please try again."

var abortMessages = map[int]string{
	1001: "This listing is no longer active",
	1002: "Invalid energy amount",
	1003: "Invalid price",
	2001: "You are not authorized",
	2002: "Insufficient payment",
	2003: "Invalid energy type",
}

// AbortMessage returns the user-facing message for a marketplace abort code.
func AbortMessage(code int) (string, bool) {
	msg, ok := abortMessages[code]
	return msg, ok
}

// ErrContractAbort maps a marketplace abort code to a TX error; unknown codes map to TX_000.
func ErrContractAbort(code int, err error) *AppError {
	if msg, ok := abortMessages[code]; ok {
		return Wrap(fmt.Sprintf("TX_%d", code), msg, http.StatusUnprocessableEntity, err)
	}
	return ErrTxFailed(err)
}

func ErrTxFailed(err error) *AppError {
	return Wrap("TX_000", GenericTxFailureMessage, http.StatusUnprocessableEntity, err)
}

// ---- Wallet (WAL) ----

func ErrWalletUnavailable(err error) *AppError {
	return Wrap("WAL_001", "Wallet is not reachable", http.StatusServiceUnavailable, err)
}

func ErrNoConnectedAccount() *AppError {
	return New("WAL_002", "No wallet account is connected", http.StatusConflict)
}

// ---- Finality (FIN) ----

const finalityFailureMessage = "Transaction failed during confirmation."

// ErrFinality reports a transaction that was submitted but could not be confirmed.
// reason, when known, is appended to the message.
func ErrFinality(reason string, err error) *AppError {
	msg := finalityFailureMessage
	if reason != "" {
		msg = fmt.Sprintf("%s %s", finalityFailureMessage, reason)
	}
	return Wrap("FIN_001", msg, http.StatusBadGateway, err)
}

// ---- Lifecycle (ACT) ----

func ErrActionInFlight() *AppError {
	return New("ACT_001", "Another transaction is still awaiting confirmation", http.StatusConflict)
}

// ---- Ledger (LED) ----

func ErrLedgerUnavailable(err error) *AppError {
	return Wrap("LED_001", "Ledger node request failed", http.StatusBadGateway, err)
}

// ---- Request (REQ) ----

func ErrNotFound(entity string) *AppError {
	return New("REQ_002", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrBodyTooLarge(limit int64) *AppError {
	return New("REQ_003", fmt.Sprintf("Request body exceeds %d bytes", limit), http.StatusRequestEntityTooLarge)
}

// ---- Session (SES) ----

func ErrInvalidToken() *AppError {
	return New("SES_001", "Invalid or expired session token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a REQ_001 validation error.
func Validation(message string) *AppError {
	return New("REQ_001", message, http.StatusBadRequest)
}
