// Package billing suscripción del negocio al servicio y cobro vía proveedor de pagos.
package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/ports"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// PlanConfig plan único de suscripción.
type PlanConfig struct {
	Name            string
	Price           decimal.Decimal
	PeriodDays      int
	NotificationURL string
	SuccessURL      string
}

// SubscriptionUseCase alta de suscripciones y procesamiento de notificaciones de pago.
type SubscriptionUseCase struct {
	repo     repository.SubscriptionRepository
	tx       repository.TxRunner
	gateway  ports.PaymentGateway
	notifier ports.Notifier
	plan     PlanConfig
	log      *logger.Logger
	now      func() time.Time
}

// NewSubscriptionUseCase construye el caso de uso.
func NewSubscriptionUseCase(
	repo repository.SubscriptionRepository,
	tx repository.TxRunner,
	gateway ports.PaymentGateway,
	notifier ports.Notifier,
	plan PlanConfig,
	log *logger.Logger,
) *SubscriptionUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if plan.PeriodDays <= 0 {
		plan.PeriodDays = 30
	}
	return &SubscriptionUseCase{
		repo:     repo,
		tx:       tx,
		gateway:  gateway,
		notifier: notifier,
		plan:     plan,
		log:      log.Named("suscripciones"),
		now:      time.Now,
	}
}

// Create crea una suscripción pendiente y su checkout. El id de la suscripción viaja como
// external_reference para reconocerla cuando llegue la notificación del pago.
func (uc *SubscriptionUseCase) Create(ctx context.Context, negocioID string) (*dto.SubscriptionResponse, error) {
	if negocioID == "" {
		return nil, domain.ErrUnauthorized
	}
	if !uc.plan.Price.IsPositive() {
		return nil, fmt.Errorf("%w: precio del plan no configurado", domain.ErrInvalidInput)
	}
	now := uc.now()
	sub := &entity.Subscription{
		ID:        uuid.New().String(),
		NegocioID: negocioID,
		Plan:      uc.plan.Name,
		Amount:    uc.plan.Price,
		Status:    entity.SubscriptionPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	pref, err := uc.gateway.CreatePreference(ctx, ports.PreferenceRequest{
		Title:             "Suscripción " + uc.plan.Name,
		Amount:            sub.Amount,
		ExternalReference: sub.ID,
		NotificationURL:   uc.plan.NotificationURL,
		SuccessURL:        uc.plan.SuccessURL,
	})
	if err != nil {
		uc.log.Error().Err(err).Str("negocio_id", negocioID).Msg("no se pudo crear el checkout")
		return nil, err
	}
	sub.PreferenceID = pref.ID
	sub.InitPoint = pref.InitPoint
	if err := uc.repo.Create(ctx, sub); err != nil {
		return nil, err
	}
	out := dto.NewSubscriptionResponse(sub, now)
	return &out, nil
}

// Current última suscripción del negocio con el estado efectivo.
func (uc *SubscriptionUseCase) Current(ctx context.Context, negocioID string) (*dto.SubscriptionResponse, error) {
	sub, err := uc.repo.GetLatestByNegocio(ctx, negocioID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domain.NotFound("suscripción", negocioID)
	}
	out := dto.NewSubscriptionResponse(sub, uc.now())
	return &out, nil
}

// HandleWebhook consulta el pago notificado y, si está aprobado, activa la suscripción
// extendiendo el vencimiento un período desde max(ahora, vencimiento actual).
// Reintentos de la misma notificación no extienden dos veces.
func (uc *SubscriptionUseCase) HandleWebhook(ctx context.Context, in dto.PaymentWebhookRequest) (*dto.WebhookResponse, error) {
	if in.Type != "payment" && !strings.HasPrefix(in.Action, "payment.") {
		return &dto.WebhookResponse{Envelope: dto.Success(), Processed: false}, nil
	}
	paymentID := strings.TrimSpace(in.Data.ID)
	if paymentID == "" {
		return nil, fmt.Errorf("%w: data.id requerido", domain.ErrInvalidInput)
	}
	info, err := uc.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if info.Status != ports.PaymentStatusApproved {
		uc.log.Info().Str("payment_id", paymentID).Str("status", info.Status).Msg("pago no aprobado")
		return &dto.WebhookResponse{Envelope: dto.Success(), Processed: false, Status: info.Status}, nil
	}
	if info.ExternalReference == "" {
		return nil, fmt.Errorf("%w: pago %s sin external_reference", domain.ErrInvalidInput, paymentID)
	}

	var activated *entity.Subscription
	err = uc.tx.Run(ctx, func(r repository.TxRepos) error {
		sub, err := r.Subscriptions.GetByIDForUpdate(ctx, info.ExternalReference)
		if err != nil {
			return err
		}
		if sub == nil {
			return domain.NotFound("suscripción", info.ExternalReference)
		}
		fresh, err := r.Subscriptions.RecordPayment(ctx, sub.ID, info.ID, info.Amount)
		if err != nil {
			return err
		}
		if !fresh {
			return nil
		}
		now := uc.now()
		from := now
		if sub.ExpiresAt != nil && sub.ExpiresAt.After(now) {
			from = *sub.ExpiresAt
		}
		expires := from.AddDate(0, 0, uc.plan.PeriodDays)
		sub.ExpiresAt = &expires
		sub.Status = entity.SubscriptionActive
		sub.LastPaymentID = info.ID
		sub.UpdatedAt = now
		if err := r.Subscriptions.Update(ctx, sub); err != nil {
			return err
		}
		activated = sub
		return nil
	})
	if err != nil {
		var nf *domain.NotFoundError
		if errors.As(err, &nf) {
			uc.log.Warn().Str("payment_id", paymentID).Str("ref", info.ExternalReference).Msg("pago sin suscripción")
		}
		return nil, err
	}
	if activated == nil {
		return &dto.WebhookResponse{Envelope: dto.Success(), Processed: false, Status: info.Status}, nil
	}

	uc.log.Info().
		Str("subscription_id", activated.ID).
		Str("payment_id", info.ID).
		Time("expires_at", *activated.ExpiresAt).
		Msg("suscripción activada")
	msg := fmt.Sprintf("Suscripción %s activa hasta %s", activated.Plan, activated.ExpiresAt.Format("02/01/2006"))
	if err := uc.notifier.Notify(context.WithoutCancel(ctx), msg); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo enviar el aviso de suscripción")
	}
	return &dto.WebhookResponse{Envelope: dto.Success(), Processed: true, Status: info.Status}, nil
}
