package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// PayloadKind tags the action a pending verification confirms.
type PayloadKind string

const (
	PayloadRegistration PayloadKind = "registration"
	PayloadDeviceChange PayloadKind = "device_change"
)

// PendingPayload is either a RegistrationPayload or a DeviceChangePayload.
type PendingPayload interface {
	Kind() PayloadKind
}

// RegistrationPayload holds the sign-up fields until the email is confirmed.
// Password is plaintext and lives only as long as the pending record.
type RegistrationPayload struct {
	FullName string `json:"fullName"`
	Password string `json:"password"`
	DeviceID string `json:"deviceId"`
}

func (RegistrationPayload) Kind() PayloadKind { return PayloadRegistration }

// DeviceChangePayload holds the device a login challenge was raised for.
type DeviceChangePayload struct {
	DeviceID string `json:"deviceId"`
}

func (DeviceChangePayload) Kind() PayloadKind { return PayloadDeviceChange }

// PendingVerification is a single-use code bound to an email.
type PendingVerification struct {
	Email     string
	Code      string
	ExpiresAt time.Time
	Payload   PendingPayload
}

// Expired reports whether the code is past its expiry at now.
func (p PendingVerification) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

type pendingJSON struct {
	Email     string          `json:"email"`
	Code      string          `json:"code"`
	ExpiresAt time.Time       `json:"expiresAt"`
	Kind      PayloadKind     `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
}

func (p PendingVerification) MarshalJSON() ([]byte, error) {
	if p.Payload == nil {
		return nil, fmt.Errorf("pending verification for %s has no payload", p.Email)
	}
	raw, err := json.Marshal(p.Payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(pendingJSON{
		Email:     p.Email,
		Code:      p.Code,
		ExpiresAt: p.ExpiresAt,
		Kind:      p.Payload.Kind(),
		Payload:   raw,
	})
}

func (p *PendingVerification) UnmarshalJSON(data []byte) error {
	var doc pendingJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	switch doc.Kind {
	case PayloadRegistration:
		var reg RegistrationPayload
		if err := json.Unmarshal(doc.Payload, &reg); err != nil {
			return err
		}
		p.Payload = reg
	case PayloadDeviceChange:
		var dev DeviceChangePayload
		if err := json.Unmarshal(doc.Payload, &dev); err != nil {
			return err
		}
		p.Payload = dev
	default:
		return fmt.Errorf("unknown pending payload kind %q", doc.Kind)
	}
	p.Email = doc.Email
	p.Code = doc.Code
	p.ExpiresAt = doc.ExpiresAt
	return nil
}
