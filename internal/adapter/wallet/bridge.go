// Package wallet connects to the user's wallet through a local JSON-RPC bridge.
package wallet

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"energy-marketplace/internal/core/domain"
	"energy-marketplace/internal/core/ports"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/blake2b"
)

// Signature scheme flags prepended to the public key when deriving an address.
var schemeFlags = map[string]byte{
	"ed25519":   0x00,
	"secp256k1": 0x01,
	"secp256r1": 0x02,
}

// ErrAddressMismatch is returned when the bridge reports an address that does not
// belong to the reported public key.
var ErrAddressMismatch = errors.New("wallet address does not match its public key")

type account struct {
	Address   string `json:"address"`
	PublicKey string `json:"publicKey"` // base64
	Scheme    string `json:"scheme"`
}

type signedTransaction struct {
	TxBytes   string `json:"txBytes"`
	Signature string `json:"signature"`
}

// Bridge implements ports.WalletConnector. The bridge signs; the ledger executes.
type Bridge struct {
	rpc      *rpc.Client
	executor ports.TransactionExecutor
	log      zerolog.Logger
}

// Dial connects to the wallet bridge at url.
func Dial(ctx context.Context, url string, executor ports.TransactionExecutor, log zerolog.Logger) (*Bridge, error) {
	c, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dialing wallet bridge: %w", err)
	}
	return NewBridge(c, executor, log), nil
}

// NewBridge wraps an existing RPC client.
func NewBridge(c *rpc.Client, executor ports.TransactionExecutor, log zerolog.Logger) *Bridge {
	return &Bridge{rpc: c, executor: executor, log: log}
}

// Close closes the bridge connection.
func (b *Bridge) Close() {
	b.rpc.Close()
}

// CurrentAccount returns the connected address, or "" when none is connected.
func (b *Bridge) CurrentAccount(ctx context.Context) (string, error) {
	var acct *account
	if err := b.rpc.CallContext(ctx, &acct, "wallet_account"); err != nil {
		return "", fmt.Errorf("wallet_account: %w", err)
	}
	if acct == nil || acct.Address == "" {
		return "", nil
	}
	if err := verifyAddress(acct); err != nil {
		b.log.Warn().Err(err).Str("address", acct.Address).Msg("wallet: rejected account")
		return "", err
	}
	return strings.ToLower(acct.Address), nil
}

// SignAndExecute asks the wallet to sign call and submits the signed bytes.
// Wallet errors are returned with their text intact so abort codes can be read from them.
func (b *Bridge) SignAndExecute(ctx context.Context, call domain.MoveCall) (string, error) {
	var signed signedTransaction
	if err := b.rpc.CallContext(ctx, &signed, "wallet_signTransaction", call); err != nil {
		return "", err
	}
	if signed.TxBytes == "" || signed.Signature == "" {
		return "", errors.New("wallet returned an empty signature")
	}
	return b.executor.ExecuteTransaction(ctx, signed.TxBytes, []string{signed.Signature})
}

// DeriveAddress computes the account address for a public key:
// 0x || hex(BLAKE2b-256(flag || publicKey)).
func DeriveAddress(scheme string, publicKey []byte) (string, error) {
	flag, ok := schemeFlags[strings.ToLower(scheme)]
	if !ok {
		return "", fmt.Errorf("unsupported signature scheme %q", scheme)
	}
	sum := blake2b.Sum256(append([]byte{flag}, publicKey...))
	return "0x" + hex.EncodeToString(sum[:]), nil
}

func verifyAddress(acct *account) error {
	key, err := base64.StdEncoding.DecodeString(acct.PublicKey)
	if err != nil {
		return fmt.Errorf("decode public key: %w", err)
	}
	want, err := DeriveAddress(acct.Scheme, key)
	if err != nil {
		return err
	}
	if !strings.EqualFold(want, acct.Address) {
		return ErrAddressMismatch
	}
	return nil
}
