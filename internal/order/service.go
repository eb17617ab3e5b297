package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Simplici0/octozek/internal/mail"
	"github.com/Simplici0/octozek/internal/metrics"
	"github.com/Simplici0/octozek/internal/pricing"
)

const (
	defaultSenderName = "Octozek Props"
	defaultSubject    = "New Order Request — Octozek Props"
	testSubject       = "Test — Octozek Props server"
	testBody          = "<p>This is a test email from your server.</p>"
)

// ErrMailNotConfigured is returned by SendTest when no sender is available.
var ErrMailNotConfigured = errors.New("mail provider not configured")

// Outcome classifies what happened to one submission.
type Outcome string

const (
	OutcomeInvalid          Outcome = "invalid"
	OutcomeDelivered        Outcome = "delivered"
	OutcomeRejected         Outcome = "rejected"
	OutcomeTransportFailure Outcome = "transport_failure"
	OutcomeDryRun           Outcome = "dry_run"
)

// RatesSource supplies the current pricing rates for the price check.
type RatesSource interface {
	RatesOrDefault(ctx context.Context) (pricing.Rates, error)
}

// Config addresses the operator notification.
type Config struct {
	FromEmail  string
	ToEmail    string
	SenderName string
	Subject    string
}

// Result is the outcome of a validated submission. Err carries the provider
// failure, if any: a *mail.RejectionError or a transport error.
type Result struct {
	Outcome   Outcome
	Sent      bool
	MessageID string
	Err       error
}

// ProviderError returns the failure in the shape reported to the client:
// the structured rejection, the transport error text, or nil.
func (r Result) ProviderError() any {
	if r.Err == nil {
		return nil
	}
	var rej *mail.RejectionError
	if errors.As(r.Err, &rej) {
		return rej
	}
	return r.Err.Error()
}

// Service validates orders and relays them to the operator. It holds no
// per-request state and is safe for concurrent use.
type Service struct {
	sender mail.Sender
	rates  RatesSource
	cfg    Config
	logger *zap.Logger
	newKey func() string
}

// NewService builds a Service. A nil sender puts the service in dry mode:
// orders are validated and rendered but not sent. A nil rates source
// disables the price check.
func NewService(sender mail.Sender, rates RatesSource, cfg Config, logger *zap.Logger) *Service {
	if cfg.SenderName == "" {
		cfg.SenderName = defaultSenderName
	}
	if cfg.Subject == "" {
		cfg.Subject = defaultSubject
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		sender: sender,
		rates:  rates,
		cfg:    cfg,
		logger: logger,
		newKey: uuid.NewString,
	}
}

// Configured reports whether a mail sender is present.
func (s *Service) Configured() bool {
	return s.sender != nil
}

// Submit validates p, renders the summary and makes one delivery attempt.
// The returned error is ErrMissingContact or an internal failure; provider
// failures are reported through Result.
func (s *Service) Submit(ctx context.Context, p Payload) (Result, error) {
	if err := p.Validate(); err != nil {
		metrics.RecordOrder(string(OutcomeInvalid))
		return Result{Outcome: OutcomeInvalid}, err
	}

	html, err := RenderSummary(p, s.priceCheck(ctx, p))
	if err != nil {
		return Result{}, err
	}

	if s.sender == nil {
		s.logger.Info("order email not sent (no RESEND_API_KEY)")
		metrics.RecordOrder(string(OutcomeDryRun))
		return Result{Outcome: OutcomeDryRun}, nil
	}

	key := s.newKey()
	log := s.logger.With(zap.String("submission_id", key))
	log.Info("sending order email",
		zap.String("to", s.cfg.ToEmail),
		zap.String("from", s.cfg.FromEmail),
		zap.String("reply_to", p.Contact.Email.String()),
	)

	start := time.Now()
	id, err := s.sender.Send(ctx, mail.Message{
		From:           mail.Address(s.cfg.SenderName, s.cfg.FromEmail),
		To:             []string{s.cfg.ToEmail},
		ReplyTo:        p.Contact.Email.String(),
		Subject:        s.cfg.Subject,
		HTML:           html,
		IdempotencyKey: key,
	})
	metrics.ObserveMailSend(time.Since(start))

	res := classify(id, err)
	switch res.Outcome {
	case OutcomeDelivered:
		log.Info("order email accepted", zap.String("message_id", id))
	case OutcomeRejected:
		log.Error("order email rejected", zap.Error(err))
	default:
		log.Error("order email failed", zap.Error(err))
	}
	metrics.RecordOrder(string(res.Outcome))

	return res, nil
}

// SendTest sends the fixed test message to the operator.
func (s *Service) SendTest(ctx context.Context) (string, error) {
	if s.sender == nil {
		return "", ErrMailNotConfigured
	}
	id, err := s.sender.Send(ctx, mail.Message{
		From:    mail.Address(s.cfg.SenderName, s.cfg.FromEmail),
		To:      []string{s.cfg.ToEmail},
		Subject: testSubject,
		HTML:    testBody,
	})
	if err != nil {
		s.logger.Error("test email failed", zap.Error(err))
		return "", err
	}
	s.logger.Info("test email accepted", zap.String("message_id", id))
	return id, nil
}

func classify(id string, err error) Result {
	if err == nil {
		return Result{Outcome: OutcomeDelivered, Sent: true, MessageID: id}
	}
	var rej *mail.RejectionError
	if errors.As(err, &rej) {
		return Result{Outcome: OutcomeRejected, Err: err}
	}
	return Result{Outcome: OutcomeTransportFailure, Err: err}
}

// priceCheck recomputes the quote from the submitted dimensions. It returns
// a note for the operator when the submitted total differs, and "" when the
// totals agree or no rates are available. It never blocks delivery.
func (s *Service) priceCheck(ctx context.Context, p Payload) string {
	if s.rates == nil {
		return ""
	}
	rates, err := s.rates.RatesOrDefault(ctx)
	if err != nil {
		s.logger.Warn("price check skipped", zap.Error(err))
		return ""
	}

	result := pricing.Calculate(pricing.ParseInput(pricing.RawInput{
		WidthFeet:    p.Width.Feet.String(),
		WidthInches:  p.Width.Inches.String(),
		HeightFeet:   p.Height.Feet.String(),
		HeightInches: p.Height.Inches.String(),
		Thickness:    p.Options.ThicknessInches.String(),
	}), rates)
	want := pricing.FormatUSD(result.Breakdown.Total)

	got, ok := pricing.ParseUSD(p.Prices.Total.String())
	if !ok {
		return fmt.Sprintf("submitted total %q could not be read; recomputed total is %s", p.Prices.Total.String(), want)
	}
	if !got.Equal(result.Breakdown.Total) {
		s.logger.Warn("submitted total differs from recomputed total",
			zap.String("submitted", p.Prices.Total.String()),
			zap.String("recomputed", want),
		)
		return fmt.Sprintf("submitted total %s differs from recomputed total %s", pricing.FormatUSD(got), want)
	}
	return ""
}
