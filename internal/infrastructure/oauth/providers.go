package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/vinay2003/Airion-backend-sub001/domain"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// Provider names as they appear in routes and users.social_provider
const (
	Google = "google"
	GitHub = "github"
)

// Credentials configure one OAuth client
type Credentials struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type profileFetcher func(ctx context.Context, client *http.Client, baseURL string) (*domain.SocialProfile, error)

// Provider implements domain.OAuthProvider for an authorization-code flow
type Provider struct {
	name    string
	config  *oauth2.Config
	baseURL string
	fetch   profileFetcher
}

// NewGoogle creates the Google provider (OpenID Connect userinfo).
func NewGoogle(c Credentials) *Provider {
	return &Provider{
		name: Google,
		config: &oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			RedirectURL:  c.RedirectURL,
			Endpoint:     endpoints.Google,
			Scopes:       []string{"openid", "email", "profile"},
		},
		baseURL: "https://openidconnect.googleapis.com",
		fetch:   fetchGoogleProfile,
	}
}

// NewGitHub creates the GitHub provider.
func NewGitHub(c Credentials) *Provider {
	return &Provider{
		name: GitHub,
		config: &oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			RedirectURL:  c.RedirectURL,
			Endpoint:     endpoints.GitHub,
			Scopes:       []string{"read:user", "user:email"},
		},
		baseURL: "https://api.github.com",
		fetch:   fetchGitHubProfile,
	}
}

// Registry returns the providers that have client credentials configured.
func Registry(google, github Credentials) map[string]domain.OAuthProvider {
	providers := make(map[string]domain.OAuthProvider)
	if google.ClientID != "" && google.ClientSecret != "" {
		providers[Google] = NewGoogle(google)
	}
	if github.ClientID != "" && github.ClientSecret != "" {
		providers[GitHub] = NewGitHub(github)
	}
	return providers
}

// Name implements domain.OAuthProvider
func (p *Provider) Name() string { return p.name }

// AuthCodeURL implements domain.OAuthProvider
func (p *Provider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange implements domain.OAuthProvider
func (p *Provider) Exchange(ctx context.Context, code string) (*domain.SocialProfile, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOAuthExchange, err)
	}
	profile, err := p.fetch(ctx, p.config.Client(ctx, token), p.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOAuthExchange, err)
	}
	profile.Provider = p.name
	return profile, nil
}

func getJSON(ctx context.Context, client *http.Client, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

func fetchGoogleProfile(ctx context.Context, client *http.Client, baseURL string) (*domain.SocialProfile, error) {
	var info struct {
		Sub           string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
	}
	if err := getJSON(ctx, client, baseURL+"/v1/userinfo", &info); err != nil {
		return nil, err
	}
	if info.Sub == "" {
		return nil, fmt.Errorf("google userinfo without subject")
	}
	profile := &domain.SocialProfile{ID: info.Sub, Name: info.Name}
	if info.EmailVerified {
		profile.Email = info.Email
	}
	return profile, nil
}

func fetchGitHubProfile(ctx context.Context, client *http.Client, baseURL string) (*domain.SocialProfile, error) {
	var user struct {
		ID    int64  `json:"id"`
		Login string `json:"login"`
		Name  string `json:"name"`
	}
	if err := getJSON(ctx, client, baseURL+"/user", &user); err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("github user without id")
	}

	// the public profile email may be hidden, /user/emails lists verified ones
	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := getJSON(ctx, client, baseURL+"/user/emails", &emails); err != nil {
		return nil, err
	}

	profile := &domain.SocialProfile{ID: strconv.FormatInt(user.ID, 10), Name: user.Name}
	if profile.Name == "" {
		profile.Name = user.Login
	}
	for _, e := range emails {
		if e.Primary && e.Verified {
			profile.Email = e.Email
			break
		}
	}
	return profile, nil
}
