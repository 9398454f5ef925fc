package sms

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/smartbash/brgy_dispatch/internal/phone"
)

const senderNameField = "sendername"

// SemaphoreProvider is the default provider: form POST with apikey, number,
// message and an optional sendername.
type SemaphoreProvider struct {
	client     *resty.Client
	url        string
	apiKey     string
	senderName string
}

func NewSemaphoreProvider(client *resty.Client, url, apiKey, senderName string) *SemaphoreProvider {
	return &SemaphoreProvider{client: client, url: url, apiKey: apiKey, senderName: senderName}
}

func (p *SemaphoreProvider) Name() string { return "semaphore" }

func (p *SemaphoreProvider) FormatNumber(raw string) string { return phone.ToLocal(raw) }

func (p *SemaphoreProvider) Send(ctx context.Context, to, body string, opts SendOptions) error {
	if p.apiKey == "" {
		return configError("semaphore: SEMAPHORE_API_KEY is not configured")
	}
	if p.url == "" {
		return configError("semaphore: SEMAPHORE_API_URL is not configured")
	}

	form := map[string]string{
		"apikey":  p.apiKey,
		"number":  to,
		"message": body,
	}
	withSenderName := false
	if p.senderName != "" && !opts.OmitSenderName {
		form[senderNameField] = p.senderName
		withSenderName = true
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetFormData(form).
		Post(p.url)
	if err != nil {
		return transportError(err)
	}
	if resp.IsSuccess() {
		return nil
	}

	perr := httpError(resp.StatusCode(), resp.String())
	// only a label we sent can be dropped on retry
	if withSenderName && rejectsSenderName(resp.Body()) {
		perr.Code = CodeSenderNameRejected
	}
	return perr
}

// rejectsSenderName reports whether a validation error body carries an error
// for the sendername field. The body is either an object keyed by field or a
// list of such objects.
func rejectsSenderName(body []byte) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err == nil {
		return hasSenderNameKey(fields)
	}
	var list []map[string]json.RawMessage
	if err := json.Unmarshal(body, &list); err == nil {
		for _, item := range list {
			if hasSenderNameKey(item) {
				return true
			}
		}
	}
	return false
}

func hasSenderNameKey(fields map[string]json.RawMessage) bool {
	for k := range fields {
		if strings.EqualFold(k, senderNameField) {
			return true
		}
	}
	return false
}
