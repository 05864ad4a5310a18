package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// OwnerKind distinguishes the ownership shapes a ledger object can report.
type OwnerKind string

const (
	OwnerNone      OwnerKind = ""
	OwnerAddress   OwnerKind = "AddressOwner"
	OwnerObject    OwnerKind = "ObjectOwner"
	OwnerShared    OwnerKind = "Shared"
	OwnerImmutable OwnerKind = "Immutable"
)

// Owner is the decoded object ownership descriptor. Address is only set for
// AddressOwner and ObjectOwner shapes.
type Owner struct {
	Kind    OwnerKind
	Address string
}

// UnmarshalJSON accepts the bare-string form ("Immutable") and the single-key
// object forms ({"AddressOwner": "0x.."}, {"Shared": {...}}).
func (o *Owner) UnmarshalJSON(data []byte) error {
	*o = Owner{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		o.Kind = OwnerKind(s)
		return nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("decode owner: %w", err)
	}
	for _, kind := range []OwnerKind{OwnerAddress, OwnerObject, OwnerShared, OwnerImmutable} {
		raw, ok := m[string(kind)]
		if !ok {
			continue
		}
		o.Kind = kind
		if kind == OwnerAddress || kind == OwnerObject {
			_ = json.Unmarshal(raw, &o.Address)
		}
		return nil
	}
	return nil
}

// MarshalJSON writes the owner back in the ledger's wire shape.
func (o Owner) MarshalJSON() ([]byte, error) {
	switch o.Kind {
	case OwnerNone:
		return []byte("null"), nil
	case OwnerAddress, OwnerObject:
		return json.Marshal(map[string]string{string(o.Kind): o.Address})
	case OwnerShared:
		return json.Marshal(map[string]any{string(o.Kind): map[string]any{}})
	default:
		return json.Marshal(string(o.Kind))
	}
}

// MoveContent is the parsed content of a ledger object. Fields stay untyped:
// numeric values may arrive as JSON strings or numbers depending on their Move type.
type MoveContent struct {
	DataType string         `json:"dataType"`
	Type     string         `json:"type,omitempty"`
	Fields   map[string]any `json:"fields,omitempty"`
}

// ObjectRecord is one object as returned by get/multi-get/owned/type queries.
type ObjectRecord struct {
	ObjectID string       `json:"objectId"`
	Version  string       `json:"version,omitempty"`
	Type     string       `json:"type,omitempty"`
	Owner    Owner        `json:"owner"`
	Content  *MoveContent `json:"content,omitempty"`
}

// EventEntry is one raw event log entry.
type EventEntry struct {
	TxDigest    string         `json:"txDigest"`
	EventSeq    string         `json:"eventSeq"`
	Type        string         `json:"type"`
	Sender      string         `json:"sender"`
	ParsedJSON  map[string]any `json:"parsedJson"`
	TimestampMs int64          `json:"timestampMs"`
}

// UnmarshalJSON flattens the event id and accepts timestampMs as a string or a number.
func (e *EventEntry) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID struct {
			TxDigest string `json:"txDigest"`
			EventSeq string `json:"eventSeq"`
		} `json:"id"`
		Type        string          `json:"type"`
		Sender      string          `json:"sender"`
		ParsedJSON  map[string]any  `json:"parsedJson"`
		TimestampMs json.RawMessage `json:"timestampMs"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*e = EventEntry{
		TxDigest:   wire.ID.TxDigest,
		EventSeq:   wire.ID.EventSeq,
		Type:       wire.Type,
		Sender:     wire.Sender,
		ParsedJSON: wire.ParsedJSON,
	}
	e.TimestampMs = parseLooseInt(wire.TimestampMs)
	return nil
}

// MarshalJSON mirrors UnmarshalJSON so entries round-trip through the node's wire shape.
func (e EventEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"id":          map[string]string{"txDigest": e.TxDigest, "eventSeq": e.EventSeq},
		"type":        e.Type,
		"sender":      e.Sender,
		"parsedJson":  e.ParsedJSON,
		"timestampMs": strconv.FormatInt(e.TimestampMs, 10),
	})
}

func parseLooseInt(raw json.RawMessage) int64 {
	raw = bytes.Trim(bytes.TrimSpace(raw), `"`)
	if len(raw) == 0 {
		return 0
	}
	n, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(string(raw), 64)
		if ferr != nil {
			return 0
		}
		return int64(f)
	}
	return n
}

// ExecutionStatus is the outcome the ledger reports for a finalized transaction.
type ExecutionStatus struct {
	Status string `json:"status"` // success, failure
	Error  string `json:"error,omitempty"`
}

// TransactionEffects is the subset of finalized effects the lifecycle needs.
type TransactionEffects struct {
	Digest     string          `json:"digest"`
	Status     ExecutionStatus `json:"status"`
	CreatedIDs []string        `json:"created,omitempty"`
}

// Succeeded reports whether the transaction executed without aborting.
func (e *TransactionEffects) Succeeded() bool {
	return e.Status.Status == "success"
}

// CallArgKind tells the wallet how to encode a Move call argument.
type CallArgKind string

const (
	ArgObject  CallArgKind = "object"
	ArgU64     CallArgKind = "u64"
	ArgU8      CallArgKind = "u8"
	ArgString  CallArgKind = "string"
	ArgPayment CallArgKind = "payment" // coin split from gas for Amount
)

// CallArg is one argument of a Move call.
type CallArg struct {
	Kind   CallArgKind `json:"kind"`
	Value  string      `json:"value,omitempty"`
	Amount int64       `json:"amount,omitempty"`
}

// MoveCall describes a single programmable-transaction Move call for the wallet to sign.
type MoveCall struct {
	Target    string    `json:"target"` // <package>::<module>::<function>
	Arguments []CallArg `json:"arguments"`
}
