package sms

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/smartbash/brgy_dispatch/internal/phone"
)

// TwilioProvider is the alternate token-authenticated provider
type TwilioProvider struct {
	client              *resty.Client
	baseURL             string
	accountSID          string
	authToken           string
	from                string
	messagingServiceSID string
}

func NewTwilioProvider(client *resty.Client, baseURL, accountSID, authToken, from, messagingServiceSID string) *TwilioProvider {
	return &TwilioProvider{
		client:              client,
		baseURL:             strings.TrimRight(baseURL, "/"),
		accountSID:          accountSID,
		authToken:           authToken,
		from:                from,
		messagingServiceSID: messagingServiceSID,
	}
}

func (p *TwilioProvider) Name() string { return "twilio" }

func (p *TwilioProvider) FormatNumber(raw string) string { return phone.ToE164(raw) }

func (p *TwilioProvider) Send(ctx context.Context, to, body string, _ SendOptions) error {
	if p.accountSID == "" || p.authToken == "" {
		return configError("twilio: TWILIO_ACCOUNT_SID and TWILIO_AUTH_TOKEN are required")
	}
	if p.from == "" && p.messagingServiceSID == "" {
		return configError("twilio: TWILIO_FROM_NUMBER or TWILIO_MESSAGING_SERVICE_SID is required")
	}

	form := map[string]string{
		"To":   to,
		"Body": body,
	}
	if p.messagingServiceSID != "" {
		form["MessagingServiceSid"] = p.messagingServiceSID
	} else {
		form["From"] = p.from
	}

	url := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", p.baseURL, p.accountSID)
	resp, err := p.client.R().
		SetContext(ctx).
		SetBasicAuth(p.accountSID, p.authToken).
		SetFormData(form).
		Post(url)
	if err != nil {
		return transportError(err)
	}
	if !resp.IsSuccess() {
		return httpError(resp.StatusCode(), resp.String())
	}
	return nil
}
