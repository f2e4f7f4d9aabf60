// Package identity resolves who is asking for quotes.
//
// HTTP requests carry a signed partner profile (an HS256 JWT issued by the
// gateway) and a plain associate identifier. Both are read once per request by
// the session middleware and stored on the request context, where
// ContextProvider turns them into a domain.Identity for the quote board.
package identity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jsamuelsen/associate-quotes/internal/domain"
)

// ErrInvalidProfile is returned for tokens that fail signature or claim checks.
var ErrInvalidProfile = errors.New("invalid partner profile")

// ProfileVerifier checks and decodes signed partner profiles.
type ProfileVerifier struct {
	secret []byte
	issuer string
}

// NewProfileVerifier creates a verifier for profiles signed with secret.
// When issuer is non-empty, tokens must carry a matching iss claim.
func NewProfileVerifier(secret, issuer string) *ProfileVerifier {
	return &ProfileVerifier{secret: []byte(secret), issuer: issuer}
}

type profileClaims struct {
	Companies []companyClaim `json:"Companies"`
	jwt.RegisteredClaims
}

type companyClaim struct {
	CompanyID   companyID `json:"CompanyID"`
	CompanyName string    `json:"CompanyName,omitempty"`
}

// companyID accepts both string and numeric identifiers.
type companyID string

func (c *companyID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*c = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = companyID(strings.TrimSpace(s))
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("CompanyID: %w", err)
		}
		*c = companyID(n.String())
	}

	return nil
}

// Parse verifies token and returns the profile it carries.
func (v *ProfileVerifier) Parse(token string) (*domain.PartnerProfile, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var claims profileClaims

	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}

	profile := &domain.PartnerProfile{Companies: make([]domain.PartnerCompany, 0, len(claims.Companies))}
	for _, c := range claims.Companies {
		profile.Companies = append(profile.Companies, domain.PartnerCompany{
			CompanyID:   string(c.CompanyID),
			CompanyName: c.CompanyName,
		})
	}

	return profile, nil
}

// Sign issues a profile token valid for ttl. Zero ttl means no expiry.
// The gateway normally does this; the service uses it for local sessions and tests.
func (v *ProfileVerifier) Sign(profile domain.PartnerProfile, ttl time.Duration) (string, error) {
	claims := profileClaims{
		Companies: make([]companyClaim, 0, len(profile.Companies)),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   v.issuer,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(ttl))
	}

	for _, c := range profile.Companies {
		claims.Companies = append(claims.Companies, companyClaim{
			CompanyID:   companyID(c.CompanyID),
			CompanyName: c.CompanyName,
		})
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
