package sms

import (
	"context"
	"errors"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/smartbash/brgy_dispatch/internal/config"
	"github.com/smartbash/brgy_dispatch/internal/models"
)

const defaultTimeout = 10 * time.Second

// Result is the outcome of one alert to one service
type Result struct {
	Sent  bool
	Error string
}

// Dispatcher sends alerts through a single selected provider
type Dispatcher struct {
	provider Provider
	logger   *logrus.Logger
}

// NewDispatcher wraps an already built provider
func NewDispatcher(provider Provider, logger *logrus.Logger) *Dispatcher {
	return &Dispatcher{provider: provider, logger: logger}
}

// NewDispatcherFromConfig picks the provider named in cfg.Provider.
// Unknown or empty names fall back to the generic JSON sender.
func NewDispatcherFromConfig(cfg config.SMSConfig, logger *logrus.Logger) *Dispatcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	var provider Provider
	switch cfg.Provider {
	case config.SMSProviderSemaphore:
		provider = NewSemaphoreProvider(client, cfg.SemaphoreAPIURL, cfg.SemaphoreAPIKey, cfg.SemaphoreSenderName)
	case config.SMSProviderTwilio:
		provider = NewTwilioProvider(client, cfg.TwilioAPIURL, cfg.TwilioAccountSID, cfg.TwilioAuthToken,
			cfg.TwilioFromNumber, cfg.TwilioMessagingServiceSID)
	default:
		provider = NewGenericProvider(client, cfg.GenericAPIURL, cfg.GenericAPIKey)
	}
	return NewDispatcher(provider, logger)
}

// Provider returns the selected provider
func (d *Dispatcher) Provider() Provider {
	return d.provider
}

// Send delivers message to the service's contact number. It never returns an
// error: failures are reported in the Result so callers can record them.
func (d *Dispatcher) Send(ctx context.Context, svc *models.ResponseService, message string) Result {
	log := d.logger.WithFields(logrus.Fields{
		"component":  "sms",
		"provider":   d.provider.Name(),
		"service_id": svc.ID,
	})

	to := d.provider.FormatNumber(svc.ContactNumber)
	if to == "" {
		log.Warn("Service has no deliverable contact number")
		return Result{Error: "no contact number on file"}
	}

	err := d.provider.Send(ctx, to, message, SendOptions{})
	if d.shouldRetryWithoutSenderName(err) {
		log.WithError(err).Info("Sender name rejected, retrying without it")
		err = d.provider.Send(ctx, to, message, SendOptions{OmitSenderName: true})
	}
	if err != nil {
		log.WithError(err).Warn("SMS delivery failed")
		return Result{Error: truncate(err.Error(), maxErrorLen)}
	}

	log.Debug("SMS delivered")
	return Result{Sent: true}
}

func (d *Dispatcher) shouldRetryWithoutSenderName(err error) bool {
	if _, ok := d.provider.(*SemaphoreProvider); !ok {
		return false
	}
	var perr *ProviderError
	return errors.As(err, &perr) && perr.Code == CodeSenderNameRejected
}
