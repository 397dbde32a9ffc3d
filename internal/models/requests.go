package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// WebhookRequest is the trading signal posted to /webhook
type WebhookRequest struct {
	Action string `json:"action"`
	Ticker string `json:"ticker"`
	Price  string `json:"price"`
}

// UnmarshalJSON requires all three keys to be present as strings. Empty
// strings are accepted; deciding what they mean is left to translation.
func (r *WebhookRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Action *string `json:"action"`
		Ticker *string `json:"ticker"`
		Price  *string `json:"price"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.Action == nil:
		return fmt.Errorf("missing field: action")
	case raw.Ticker == nil:
		return fmt.Errorf("missing field: ticker")
	case raw.Price == nil:
		return fmt.Errorf("missing field: price")
	}

	r.Action = *raw.Action
	r.Ticker = *raw.Ticker
	r.Price = *raw.Price
	return nil
}

// DecodeWebhookRequest decodes a complete webhook body. The body must be a
// single JSON object with no trailing data and no repeated keys.
func DecodeWebhookRequest(data []byte) (WebhookRequest, error) {
	var req WebhookRequest
	if err := checkDuplicateKeys(data); err != nil {
		return req, err
	}
	// json.Unmarshal rejects anything after the first value.
	if err := json.Unmarshal(data, &req); err != nil {
		return req, err
	}
	return req, nil
}

func checkDuplicateKeys(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected a JSON object")
	}

	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected an object key")
		}
		if seen[key] {
			return fmt.Errorf("duplicate field: %s", key)
		}
		seen[key] = true

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("unexpected data after JSON object")
	}
	return nil
}
