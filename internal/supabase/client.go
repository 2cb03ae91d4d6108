package supabase

import (
	"strings"

	"github.com/supabase-community/supabase-go"
)

type Client struct {
	Supabase *supabase.Client
	URL      string
}

// NewClient connects with the service key so storage calls bypass row policies.
func NewClient(supabaseURL, serviceKey string) (*Client, error) {
	baseURL := strings.TrimSuffix(supabaseURL, "/")

	client, err := supabase.NewClient(baseURL, serviceKey, nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		Supabase: client,
		URL:      baseURL,
	}, nil
}
