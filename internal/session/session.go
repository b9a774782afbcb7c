// Package session decodes the opaque session blob carried on every request.
package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// HeaderName is the request header carrying the session blob.
const HeaderName = "X-Session"

var (
	ErrMissing = errors.New("session_missing")
	ErrInvalid = errors.New("session_invalid")
)

// Session is the identity extracted from the request header: the tenant
// (company) the caller acts within and the acting member.
type Session struct {
	CompanyID  snowflake.ID
	MemberID   snowflake.ID
	MemberName string
}

type wirePayload struct {
	CompanyID  json.Number `json:"company_id"`
	MemberID   json.Number `json:"member_id"`
	MemberName string      `json:"member_name"`
}

// Decode parses a base64-encoded JSON session blob. Both identifiers must be
// present and non-zero; the member name is informational only.
func Decode(raw string) (*Session, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrMissing
	}

	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		// Some clients send URL-safe encoding.
		decoded, err = base64.URLEncoding.DecodeString(raw)
		if err != nil {
			return nil, ErrInvalid
		}
	}

	var payload wirePayload
	dec := json.NewDecoder(strings.NewReader(string(decoded)))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, ErrInvalid
	}

	companyID, err := parseID(payload.CompanyID)
	if err != nil {
		return nil, ErrInvalid
	}
	memberID, err := parseID(payload.MemberID)
	if err != nil {
		return nil, ErrInvalid
	}

	return &Session{
		CompanyID:  companyID,
		MemberID:   memberID,
		MemberName: strings.TrimSpace(payload.MemberName),
	}, nil
}

// Encode serializes a session the way clients transmit it. Used by tests and
// local tooling.
func Encode(s Session) string {
	payload := wirePayload{
		CompanyID:  json.Number(s.CompanyID.String()),
		MemberID:   json.Number(s.MemberID.String()),
		MemberName: s.MemberName,
	}
	b, _ := json.Marshal(payload)
	return base64.StdEncoding.EncodeToString(b)
}

func parseID(value json.Number) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value.String()))
	if err != nil || id == 0 {
		return 0, ErrInvalid
	}
	return id, nil
}
