package sms

import (
	"context"

	"github.com/go-resty/resty/v2"
	"github.com/smartbash/brgy_dispatch/internal/phone"
)

type genericPayload struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// GenericProvider posts {to, message} as JSON with a bearer token.
// It backs any provider name without a dedicated adapter.
type GenericProvider struct {
	client *resty.Client
	url    string
	apiKey string
}

func NewGenericProvider(client *resty.Client, url, apiKey string) *GenericProvider {
	return &GenericProvider{client: client, url: url, apiKey: apiKey}
}

func (p *GenericProvider) Name() string { return "generic" }

func (p *GenericProvider) FormatNumber(raw string) string { return phone.ToE164(raw) }

func (p *GenericProvider) Send(ctx context.Context, to, body string, _ SendOptions) error {
	if p.url == "" {
		return configError("generic: SMS_API_URL is not configured")
	}

	req := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(genericPayload{To: to, Message: body})
	if p.apiKey != "" {
		req.SetAuthToken(p.apiKey)
	}

	resp, err := req.Post(p.url)
	if err != nil {
		return transportError(err)
	}
	if !resp.IsSuccess() {
		return httpError(resp.StatusCode(), resp.String())
	}
	return nil
}
