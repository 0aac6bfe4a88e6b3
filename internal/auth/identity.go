package auth

// OAuthIdentity represents user information obtained from the OAuth provider.
type OAuthIdentity struct {
	Email       string
	DisplayName *string
	PhotoURL    *string
	ProviderID  string
}
