package brew

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// defaultFormulaeAPIURL is the public Homebrew formula API endpoint.
const defaultFormulaeAPIURL = "https://formulae.brew.sh"

// FormulaInfo is the subset of the formulae.brew.sh formula document this
// tool cares about.
type FormulaInfo struct {
	Name     string `json:"name"`
	Desc     string `json:"desc"`
	Homepage string `json:"homepage"`
	Versions struct {
		Stable string `json:"stable"`
	} `json:"versions"`
}

// CaskInfo is the subset of the formulae.brew.sh cask document this tool
// cares about.
type CaskInfo struct {
	Token    string `json:"token"`
	Desc     string `json:"desc"`
	Homepage string `json:"homepage"`
	Version  string `json:"version"`
}

// API is a small read-only client for the formulae.brew.sh JSON API, used to
// surface package descriptions before installs. Metadata lookups are the one
// place this tool talks to the network directly, so unlike exec'd installers
// they get a short timeout and a retry.
type API struct {
	client *resty.Client
}

// NewAPI creates a formulae.brew.sh client with sane timeouts and retries.
func NewAPI() *API {
	return NewAPIWithBase(defaultFormulaeAPIURL)
}

// NewAPIWithBase creates a client against a specific endpoint. Tests point
// this at a local server.
func NewAPIWithBase(base string) *API {
	client := resty.New().
		SetBaseURL(base).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("User-Agent", "mac-bootstrap").
		SetHeader("Accept", "application/json")

	return &API{client: client}
}

// FormulaInfo fetches metadata for a formula by name.
func (a *API) FormulaInfo(ctx context.Context, name string) (*FormulaInfo, error) {
	var info FormulaInfo
	resp, err := a.client.R().
		SetContext(ctx).
		SetResult(&info).
		SetPathParam("name", name).
		Get("/api/formula/{name}.json")
	if err != nil {
		return nil, fmt.Errorf("formulae API request for %s failed: %w", name, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("formulae API returned %s for formula %s", resp.Status(), name)
	}
	return &info, nil
}

// CaskInfo fetches metadata for a cask by token.
func (a *API) CaskInfo(ctx context.Context, token string) (*CaskInfo, error) {
	var info CaskInfo
	resp, err := a.client.R().
		SetContext(ctx).
		SetResult(&info).
		SetPathParam("token", token).
		Get("/api/cask/{token}.json")
	if err != nil {
		return nil, fmt.Errorf("formulae API request for %s failed: %w", token, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("formulae API returned %s for cask %s", resp.Status(), token)
	}
	return &info, nil
}
