package models

// Token kinds carried in the `kind` claim so an access token can never be
// substituted for a refresh token or vice versa.
const (
	TokenKindAccess  = "access"
	TokenKindRefresh = "refresh"
)

// TokenPair holds a signed access/refresh token pair. Tokens are stateless;
// validity is determined purely by signature and expiry.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
