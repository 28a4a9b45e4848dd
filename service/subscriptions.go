package service

import (
	"context"
	"time"

	"github.com/boogo/backend/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubscriptionService drives the subscription lifecycle: one
// subscription document per user, plan changes in place, read-time
// expiry, and one payment ledger row per successful subscribe.
type SubscriptionService struct {
	Subscriptions SubscriptionRepository
	Plans         PlanRepository
	Payments      PaymentRepository
	Tx            TxRunner
}

type CreatePlanInput struct {
	PlanType string   `json:"planType" validate:"required"`
	Details  []string `json:"details" validate:"required,min=1,dive,required"`
	Duration int      `json:"duration" validate:"required,gt=0"`
	Price    float64  `json:"price" validate:"gte=0"`
}

type UpdatePlanInput struct {
	PlanType *string  `json:"planType" validate:"omitempty,min=1"`
	Details  []string `json:"details" validate:"omitempty,min=1,dive,required"`
	Duration *int     `json:"duration" validate:"omitempty,gt=0"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
}

type SubscribeInput struct {
	PaymentInfo struct {
		Amount float64 `json:"amount" validate:"required,gt=0"`
	} `json:"payment_info" validate:"required"`
}

func (s *SubscriptionService) ListPlans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	plans, err := s.Plans.All(ctx)
	if err != nil {
		return nil, Internal("failed to list subscription plans", err)
	}
	return plans, nil
}

func (s *SubscriptionService) CreatePlan(ctx context.Context, in CreatePlanInput) (*models.SubscriptionPlan, error) {
	existing, err := s.Plans.ByType(ctx, in.PlanType)
	if err != nil {
		return nil, Internal("failed to check plan type", err)
	}
	if existing != nil {
		return nil, Conflict("Subscription plan with this type already exists")
	}
	plan := &models.SubscriptionPlan{
		PlanType: in.PlanType,
		Details:  in.Details,
		Duration: in.Duration,
		Price:    in.Price,
	}
	id, err := s.Plans.Insert(ctx, plan)
	if err != nil {
		if isDup(err) {
			return nil, Conflict("Subscription plan with this type already exists")
		}
		return nil, Internal("failed to create subscription plan", err)
	}
	plan.ID = id
	return plan, nil
}

func (s *SubscriptionService) UpdatePlan(ctx context.Context, id primitive.ObjectID, in UpdatePlanInput) (*models.SubscriptionPlan, error) {
	plan, err := s.planByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.PlanType != nil {
		plan.PlanType = *in.PlanType
	}
	if in.Details != nil {
		plan.Details = in.Details
	}
	if in.Duration != nil {
		plan.Duration = *in.Duration
	}
	if in.Price != nil {
		plan.Price = *in.Price
	}
	if err := s.Plans.Update(ctx, plan); err != nil {
		if isDup(err) {
			return nil, Conflict("Subscription plan with this type already exists")
		}
		return nil, Internal("failed to update subscription plan", err)
	}
	return plan, nil
}

func (s *SubscriptionService) DeletePlan(ctx context.Context, id primitive.ObjectID) (*models.SubscriptionPlan, error) {
	plan, err := s.planByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Plans.Delete(ctx, id); err != nil {
		return nil, Internal("failed to delete subscription plan", err)
	}
	return plan, nil
}

// Subscribe starts or replaces the caller's subscription. A plan change
// overwrites the existing document in place; only the payment ledger
// keeps history. The free-tier plan is refused once the user has ever
// held any subscription, active or not.
func (s *SubscriptionService) Subscribe(ctx context.Context, userID, planID primitive.ObjectID, in SubscribeInput) (*models.Subscription, error) {
	plan, err := s.planByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	sub, err := s.Subscriptions.ByUser(ctx, userID)
	if err != nil {
		return nil, Internal("failed to load subscription", err)
	}
	if sub != nil && plan.PlanType == models.PlanTypeFreeTier {
		return nil, Conflict("You've been subscribed before, so you can't access free plan")
	}

	now := time.Now()
	endDate := now.AddDate(0, 0, plan.Duration)
	creating := sub == nil
	if creating {
		sub = &models.Subscription{UserID: userID}
	}
	sub.PlanID = planID
	sub.StartDate = now
	sub.EndDate = endDate
	sub.IsActive = true

	err = s.Tx.InTransaction(ctx, func(ctx context.Context) error {
		if creating {
			id, err := s.Subscriptions.Insert(ctx, sub)
			if err != nil {
				return err
			}
			sub.ID = id
		} else if err := s.Subscriptions.Update(ctx, sub); err != nil {
			return err
		}
		_, err := s.Payments.Insert(ctx, &models.PaymentHistory{
			UserID:         userID,
			SubscriptionID: sub.ID,
			Reference:      uuid.New().String(),
			PaymentDate:    now,
			Amount:         in.PaymentInfo.Amount,
			Status:         "success",
		})
		return err
	})
	if err != nil {
		if isDup(err) {
			return nil, Conflict("You already have a subscription")
		}
		return nil, Internal("failed to subscribe", err)
	}
	return sub, nil
}

// Unsubscribe flips the caller's active subscription off atomically.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, userID primitive.ObjectID) (*models.Subscription, error) {
	sub, err := s.Subscriptions.Deactivate(ctx, userID, time.Now())
	if err != nil {
		return nil, Internal("failed to unsubscribe", err)
	}
	if sub == nil {
		return nil, NotFound("Active subscription not found")
	}
	return sub, nil
}

// HasActiveSubscription reports whether the user holds a subscription
// granting access right now. Expiry is evaluated here against endDate,
// not by a background job flipping isActive.
func (s *SubscriptionService) HasActiveSubscription(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	sub, err := s.Subscriptions.ByUser(ctx, userID)
	if err != nil {
		return false, Internal("failed to check subscription", err)
	}
	return sub != nil && sub.Grants(time.Now()), nil
}

func (s *SubscriptionService) planByID(ctx context.Context, id primitive.ObjectID) (*models.SubscriptionPlan, error) {
	plan, err := s.Plans.ByID(ctx, id)
	if err != nil {
		return nil, Internal("failed to load subscription plan", err)
	}
	if plan == nil {
		return nil, NotFound("Subscription plan not found")
	}
	return plan, nil
}
