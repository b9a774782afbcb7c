package session

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeRoundTrip(t *testing.T) {
	encoded := Encode(Session{
		CompanyID:  42,
		MemberID:   7,
		MemberName: "Dr. Sato",
	})

	got, err := Decode(encoded)
	require.NoError(t, err)
	require.EqualValues(t, 42, got.CompanyID)
	require.EqualValues(t, 7, got.MemberID)
	require.Equal(t, "Dr. Sato", got.MemberName)
}

func TestDecodeAcceptsURLSafeEncoding(t *testing.T) {
	payload := `{"company_id":"42","member_id":"7","member_name":"a"}`
	encoded := base64.URLEncoding.EncodeToString([]byte(payload))

	got, err := Decode(encoded)
	require.NoError(t, err)
	require.EqualValues(t, 42, got.CompanyID)
}

func TestDecodeAcceptsNumericIDs(t *testing.T) {
	payload := `{"company_id":42,"member_id":7}`
	encoded := base64.StdEncoding.EncodeToString([]byte(payload))

	got, err := Decode(encoded)
	require.NoError(t, err)
	require.EqualValues(t, 42, got.CompanyID)
	require.EqualValues(t, 7, got.MemberID)
}

func TestDecodeMissing(t *testing.T) {
	_, err := Decode("")
	require.ErrorIs(t, err, ErrMissing)

	_, err = Decode("   ")
	require.ErrorIs(t, err, ErrMissing)
}

func TestDecodeInvalid(t *testing.T) {
	cases := map[string]string{
		"not base64":      "%%%",
		"not json":        base64.StdEncoding.EncodeToString([]byte("hello")),
		"missing company": base64.StdEncoding.EncodeToString([]byte(`{"member_id":"7"}`)),
		"zero member":     base64.StdEncoding.EncodeToString([]byte(`{"company_id":"42","member_id":"0"}`)),
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(raw)
			require.ErrorIs(t, err, ErrInvalid)
		})
	}
}
