package mdsignature

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/errorx"
)

const testSecret = "shpss_test_secret"

func TestVerifier_Verify(t *testing.T) {
	body := []byte(`{"id":5521,"line_items":[]}`)
	v := NewVerifier(testSecret)
	valid := v.Sign(body)

	tests := []struct {
		name      string
		verifier  *Verifier
		body      []byte
		signature string
		wantErr   error
	}{
		{"valid", v, body, valid, nil},
		{"missing header", v, body, "", errorx.ErrMissingSignature},
		{"missing secret", NewVerifier(""), body, valid, errorx.ErrMissingSecret},
		{"mismatch", v, body, "bm90LWEtc2lnbmF0dXJl", errorx.ErrSignatureMismatch},
		{"reserialized body", v, []byte(`{"id": 5521, "line_items": []}`), valid, errorx.ErrSignatureMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.verifier.Verify(tt.body, tt.signature)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, errorx.ErrAuthentication)
		})
	}
}

func TestVerifier_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	v := NewVerifier(testSecret)

	properties.Property("signature is deterministic", prop.ForAll(
		func(body string) bool {
			raw := []byte(body)
			return v.Sign(raw) == v.Sign([]byte(body)) && v.Verify(raw, v.Sign(raw)) == nil
		},
		gen.AnyString(),
	))

	properties.Property("single byte mutation invalidates signature", prop.ForAll(
		func(body string, idx int, delta int) bool {
			if body == "" {
				return true
			}
			raw := []byte(body)
			signature := v.Sign(raw)
			raw[idx%len(raw)] ^= byte(delta)
			return v.Verify(raw, signature) != nil
		},
		gen.AlphaString(),
		gen.IntRange(0, 1<<16),
		gen.IntRange(1, 255),
	))

	properties.TestingRun(t)
}
