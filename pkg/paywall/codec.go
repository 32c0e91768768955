package paywall

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// recordSchema describes the durable shape of a Subscription.
const recordSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["tier", "isActive", "features"],
	"properties": {
		"tier": {"type": "string", "enum": ["free", "premium", "pro"]},
		"isActive": {"type": "boolean"},
		"expiresAt": {"type": "string", "format": "date-time"},
		"features": {"type": "array", "items": {"type": "string"}, "uniqueItems": true},
		"version": {"type": "integer", "minimum": 0}
	}
}`

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource("subscription.json", strings.NewReader(recordSchema)); err != nil {
		return nil, err
	}
	return compiler.Compile("subscription.json")
})

type record struct {
	Tier      Tier       `json:"tier"`
	IsActive  bool       `json:"isActive"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Features  []Feature  `json:"features"`
	Version   uint64     `json:"version,omitempty"`
}

// EncodeSubscription serializes sub into its persisted JSON form.
func EncodeSubscription(sub Subscription) ([]byte, error) {
	rec := record{
		Tier:      sub.Tier,
		IsActive:  sub.IsActive,
		ExpiresAt: sub.ExpiresAt,
		Features:  sub.Features,
		Version:   sub.Version,
	}
	if rec.Features == nil {
		rec.Features = []Feature{}
	}
	if rec.ExpiresAt != nil {
		exp := rec.ExpiresAt.UTC()
		rec.ExpiresAt = &exp
	}
	return json.Marshal(rec)
}

// DecodeSubscription parses and validates a persisted record.
// Any schema, parse or invariant failure is reported as ErrCorruptRecord.
func DecodeSubscription(data []byte) (Subscription, error) {
	schema, err := compiledSchema()
	if err != nil {
		return Subscription{}, errors.Join(ErrCorruptRecord, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return Subscription{}, errors.Join(ErrCorruptRecord, err)
	}
	if err := schema.Validate(doc); err != nil {
		return Subscription{}, errors.Join(ErrCorruptRecord, err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Subscription{}, errors.Join(ErrCorruptRecord, err)
	}

	sub := Subscription{
		Tier:      rec.Tier,
		IsActive:  rec.IsActive,
		ExpiresAt: rec.ExpiresAt,
		Features:  rec.Features,
		Version:   rec.Version,
	}
	if err := sub.Validate(); err != nil {
		return Subscription{}, errors.Join(ErrCorruptRecord, err)
	}
	return sub, nil
}
