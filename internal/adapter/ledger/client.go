// Package ledger is the JSON-RPC client for the ledger node.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"energy-marketplace/internal/core/domain"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// multiGetChunk is the most ids the node accepts in one multi-get.
const multiGetChunk = 50

// Config tunes the client.
type Config struct {
	RequestsPerSecond float64
	Burst             int
	PageSize          int           // items requested per page
	MaxPages          int           // pages followed per scan
	FinalityTimeout   time.Duration // WaitForTransaction gives up after this long
	PollInterval      time.Duration
}

func (c *Config) setDefaults() {
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = 20
	}
	if c.Burst <= 0 {
		c.Burst = 10
	}
	if c.PageSize <= 0 {
		c.PageSize = 50
	}
	if c.MaxPages <= 0 {
		c.MaxPages = 5
	}
	if c.FinalityTimeout <= 0 {
		c.FinalityTimeout = 60 * time.Second
	}
	if c.PollInterval <= 0 {
		c.PollInterval = time.Second
	}
}

// Client implements ports.LedgerClient over the node's JSON-RPC API.
// Every call waits on a shared rate limiter.
type Client struct {
	rpc     *rpc.Client
	limiter *rate.Limiter
	cfg     Config
	log     zerolog.Logger
}

// Dial connects to the node at url.
func Dial(ctx context.Context, url string, cfg Config, log zerolog.Logger) (*Client, error) {
	c, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dialing ledger node: %w", err)
	}
	log.Info().Str("url", url).Msg("Ledger RPC client created")
	return NewClient(c, cfg, log), nil
}

// NewClient wraps an existing RPC client.
func NewClient(c *rpc.Client, cfg Config, log zerolog.Logger) *Client {
	cfg.setDefaults()
	return &Client{
		rpc:     c,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		cfg:     cfg,
		log:     log,
	}
}

// Close closes the underlying connection.
func (c *Client) Close() {
	c.rpc.Close()
}

func (c *Client) call(ctx context.Context, result any, method string, args ...any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	if err := c.rpc.CallContext(ctx, result, method, args...); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	return nil
}

type objectOptions struct {
	ShowContent bool `json:"showContent"`
	ShowOwner   bool `json:"showOwner"`
	ShowType    bool `json:"showType"`
}

var fullObject = objectOptions{ShowContent: true, ShowOwner: true, ShowType: true}

type objectResponse struct {
	Data  *domain.ObjectRecord `json:"data"`
	Error json.RawMessage      `json:"error,omitempty"`
}

type objectQuery struct {
	Filter  map[string]string `json:"filter"`
	Options objectOptions     `json:"options"`
}

type objectPage struct {
	Data        []objectResponse `json:"data"`
	NextCursor  *string          `json:"nextCursor"`
	HasNextPage bool             `json:"hasNextPage"`
}

type eventPage struct {
	Data        []domain.EventEntry `json:"data"`
	NextCursor  json.RawMessage     `json:"nextCursor"`
	HasNextPage bool                `json:"hasNextPage"`
}

// GetObject returns nil, nil when the object does not exist.
func (c *Client) GetObject(ctx context.Context, id string) (*domain.ObjectRecord, error) {
	var resp objectResponse
	if err := c.call(ctx, &resp, "iota_getObject", id, fullObject); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, nil
	}
	return resp.Data, nil
}

// MultiGetObjects fetches ids in chunks and skips missing or deleted objects.
func (c *Client) MultiGetObjects(ctx context.Context, ids []string) ([]domain.ObjectRecord, error) {
	out := make([]domain.ObjectRecord, 0, len(ids))
	for start := 0; start < len(ids); start += multiGetChunk {
		end := min(start+multiGetChunk, len(ids))
		var resp []objectResponse
		if err := c.call(ctx, &resp, "iota_multiGetObjects", ids[start:end], fullObject); err != nil {
			return nil, err
		}
		out = appendObjects(out, resp)
	}
	return out, nil
}

// OwnedObjects lists owner's objects of structType.
func (c *Client) OwnedObjects(ctx context.Context, owner string, structType string) ([]domain.ObjectRecord, error) {
	q := objectQuery{Filter: map[string]string{"StructType": structType}, Options: fullObject}
	return c.objectPages(ctx, func(cursor *string, page *objectPage) error {
		return c.call(ctx, page, "iotax_getOwnedObjects", owner, q, cursor, c.cfg.PageSize)
	})
}

// ObjectsByType scans every object of structType.
func (c *Client) ObjectsByType(ctx context.Context, structType string) ([]domain.ObjectRecord, error) {
	q := objectQuery{Filter: map[string]string{"StructType": structType}, Options: fullObject}
	return c.objectPages(ctx, func(cursor *string, page *objectPage) error {
		return c.call(ctx, page, "iotax_queryObjects", q, cursor, c.cfg.PageSize)
	})
}

func (c *Client) objectPages(ctx context.Context, fetch func(*string, *objectPage) error) ([]domain.ObjectRecord, error) {
	var out []domain.ObjectRecord
	var cursor *string
	for page := 0; page < c.cfg.MaxPages; page++ {
		var p objectPage
		if err := fetch(cursor, &p); err != nil {
			return nil, err
		}
		out = appendObjects(out, p.Data)
		if !p.HasNextPage || p.NextCursor == nil {
			return out, nil
		}
		cursor = p.NextCursor
	}
	c.log.Debug().Int("pages", c.cfg.MaxPages).Msg("ledger: object scan truncated")
	return out, nil
}

func appendObjects(out []domain.ObjectRecord, resp []objectResponse) []domain.ObjectRecord {
	for _, r := range resp {
		if r.Data != nil {
			out = append(out, *r.Data)
		}
	}
	return out
}

// EventsByType returns up to limit events of eventType, newest first.
func (c *Client) EventsByType(ctx context.Context, eventType string, limit int) ([]domain.EventEntry, error) {
	return c.events(ctx, map[string]any{"MoveEventType": eventType}, limit)
}

// EventsByModule returns up to limit events emitted by the module, newest first.
func (c *Client) EventsByModule(ctx context.Context, packageID string, module string, limit int) ([]domain.EventEntry, error) {
	q := map[string]any{"MoveEventModule": map[string]string{"package": packageID, "module": module}}
	return c.events(ctx, q, limit)
}

func (c *Client) events(ctx context.Context, query map[string]any, limit int) ([]domain.EventEntry, error) {
	var out []domain.EventEntry
	var cursor any
	for len(out) < limit {
		var p eventPage
		if err := c.call(ctx, &p, "iotax_queryEvents", query, cursor, min(limit-len(out), c.cfg.PageSize), true); err != nil {
			return nil, err
		}
		out = append(out, p.Data...)
		if !p.HasNextPage || len(p.NextCursor) == 0 || string(p.NextCursor) == "null" || len(p.Data) == 0 {
			break
		}
		cursor = p.NextCursor
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type executeResponse struct {
	Digest string `json:"digest"`
}

// ExecuteTransaction submits signed transaction bytes and returns the digest.
func (c *Client) ExecuteTransaction(ctx context.Context, txBytes string, signatures []string) (string, error) {
	var resp executeResponse
	opts := map[string]bool{"showEffects": false}
	if err := c.call(ctx, &resp, "iota_executeTransactionBlock", txBytes, signatures, opts); err != nil {
		return "", err
	}
	if resp.Digest == "" {
		return "", errors.New("iota_executeTransactionBlock: empty digest")
	}
	return resp.Digest, nil
}

type objectRef struct {
	Reference struct {
		ObjectID string `json:"objectId"`
	} `json:"reference"`
}

type transactionResponse struct {
	Digest  string `json:"digest"`
	Effects *struct {
		Status  domain.ExecutionStatus `json:"status"`
		Created []objectRef            `json:"created"`
	} `json:"effects"`
}

// WaitForTransaction polls until the node reports effects for digest or the
// finality timeout passes.
func (c *Client) WaitForTransaction(ctx context.Context, digest string) (*domain.TransactionEffects, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.FinalityTimeout)
	defer cancel()

	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()

	var lastErr error
	for {
		var resp transactionResponse
		err := c.call(ctx, &resp, "iota_getTransactionBlock", digest, map[string]bool{"showEffects": true})
		if err == nil && resp.Effects != nil {
			effects := &domain.TransactionEffects{Digest: digest, Status: resp.Effects.Status}
			for _, ref := range resp.Effects.Created {
				effects.CreatedIDs = append(effects.CreatedIDs, ref.Reference.ObjectID)
			}
			return effects, nil
		}
		if err != nil && ctx.Err() == nil {
			// Not indexed yet; keep polling.
			lastErr = err
			c.log.Debug().Err(err).Str("digest", digest).Msg("ledger: transaction not yet available")
		}

		select {
		case <-ctx.Done():
			if lastErr != nil {
				return nil, fmt.Errorf("waiting for %s: %w (last error: %v)", digest, ctx.Err(), lastErr)
			}
			return nil, fmt.Errorf("waiting for %s: %w", digest, ctx.Err())
		case <-ticker.C:
		}
	}
}

// HealthCheck implements ports.HealthChecker for the ledger node.
type HealthCheck struct {
	client *Client
}

// NewHealthCheck creates a ledger health checker.
func NewHealthCheck(client *Client) *HealthCheck {
	return &HealthCheck{client: client}
}

// Ping asks the node for its chain identifier.
func (h *HealthCheck) Ping(ctx context.Context) error {
	var id string
	return h.client.call(ctx, &id, "iota_getChainIdentifier")
}

// Name returns the dependency name.
func (h *HealthCheck) Name() string {
	return "ledger"
}
