package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"energy-marketplace/internal/core/domain"
	"energy-marketplace/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// webhookRetryIntervals are the waits between delivery attempts.
var webhookRetryIntervals = []time.Duration{
	15 * time.Second,
	60 * time.Second,
	2 * time.Minute,
	5 * time.Minute,
	10 * time.Minute,
}

// Webhook event types
const (
	EventActionConfirmed = "ACTION_CONFIRMED"
	EventActionFailed    = "ACTION_FAILED"
)

// Headers carried by every delivery.
const (
	HeaderSignature = "X-Signature"
	HeaderTimestamp = "X-Timestamp"
)

// WebhookPayload is the JSON body posted to the configured webhook url.
type WebhookPayload struct {
	EventType string             `json:"event_type"`
	Data      WebhookPayloadData `json:"data"`
}

// WebhookPayloadData holds the settled action in the webhook.
type WebhookPayloadData struct {
	SessionID  string   `json:"session_id"`
	ActionID   string   `json:"action_id"`
	Action     string   `json:"action"`
	Account    string   `json:"account,omitempty"`
	ListingID  string   `json:"listing_id,omitempty"`
	Phase      string   `json:"phase"`
	TxDigest   string   `json:"tx_digest,omitempty"`
	ErrorCode  string   `json:"error_code,omitempty"`
	Reason     string   `json:"reason"`
	CreatedIDs []string `json:"created_ids,omitempty"`
	Timestamp  int64    `json:"timestamp"`
}

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WebhookNotifier implements ports.LifecycleNotifier by posting signed payloads.
type WebhookNotifier struct {
	url        string
	secret     string
	sigSvc     ports.SignatureService
	httpClient HTTPClient
	intervals  []time.Duration
	log        zerolog.Logger

	wg       sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
}

// NewWebhookNotifier creates a new webhook notifier. Deliveries run in the
// background; Close abandons pending retries and waits for them to return.
func NewWebhookNotifier(url, secret string, sigSvc ports.SignatureService, httpClient HTTPClient, log zerolog.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		url:        url,
		secret:     secret,
		sigSvc:     sigSvc,
		httpClient: httpClient,
		intervals:  webhookRetryIntervals,
		log:        log,
		stop:       make(chan struct{}),
	}
}

// Notify queues a delivery for a terminal state. Non-terminal states are ignored.
func (n *WebhookNotifier) Notify(ctx context.Context, sessionID uuid.UUID, account string, state domain.LifecycleState) error {
	if !state.IsTerminal() {
		return nil
	}

	eventType := EventActionConfirmed
	data := WebhookPayloadData{
		SessionID:  sessionID.String(),
		ActionID:   state.ActionID.String(),
		Action:     string(state.Action),
		Account:    account,
		ListingID:  state.ListingID,
		Phase:      string(state.Phase),
		TxDigest:   state.TxDigest,
		Reason:     state.Message,
		CreatedIDs: state.CreatedIDs,
		Timestamp:  time.Now().Unix(),
	}
	if state.Error != nil {
		eventType = EventActionFailed
		data.ErrorCode = state.Error.Code
	}

	body, err := json.Marshal(WebhookPayload{EventType: eventType, Data: data})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}
	signature := n.sigSvc.Sign(n.secret, BuildNotificationString(data.Timestamp, body))

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.deliverWithRetries(body, signature, data.Timestamp, data.ActionID)
	}()
	return nil
}

// Close stops retrying and waits for in-progress deliveries.
func (n *WebhookNotifier) Close() {
	n.stopOnce.Do(func() { close(n.stop) })
	n.wg.Wait()
}

// deliverWithRetries posts body until a 2xx response or the intervals run out.
func (n *WebhookNotifier) deliverWithRetries(body []byte, signature string, timestamp int64, actionID string) {
	for attempt := 0; attempt <= len(n.intervals); attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(n.intervals[attempt-1])
			select {
			case <-n.stop:
				timer.Stop()
				n.log.Warn().Str("action_id", actionID).Int("attempt", attempt).Msg("webhook: delivery abandoned on shutdown")
				return
			case <-timer.C:
			}
		}

		req, err := http.NewRequest(http.MethodPost, n.url, bytes.NewReader(body))
		if err != nil {
			n.log.Error().Err(err).Str("action_id", actionID).Msg("webhook: failed to create request")
			return
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(HeaderSignature, signature)
		req.Header.Set(HeaderTimestamp, fmt.Sprintf("%d", timestamp))

		resp, err := n.httpClient.Do(req)
		if err != nil {
			n.log.Warn().Err(err).Str("action_id", actionID).Int("attempt", attempt+1).Msg("webhook: delivery failed")
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			n.log.Info().Str("action_id", actionID).Int("attempt", attempt+1).Int("status", resp.StatusCode).Msg("webhook: delivered successfully")
			return
		}

		n.log.Warn().Str("action_id", actionID).Int("attempt", attempt+1).Int("status", resp.StatusCode).Msg("webhook: non-2xx response, retrying")
	}

	n.log.Error().Str("action_id", actionID).Msg("webhook: all retry attempts exhausted")
}
