package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanTypeFreeTier is the one-time plan: refused once the user has ever
// held any subscription, active or not.
const PlanTypeFreeTier = "1 week"

type Subscription struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	PlanID    primitive.ObjectID `bson:"plan_id" json:"plan_id"`
	StartDate time.Time          `bson:"startDate" json:"startDate"`
	EndDate   time.Time          `bson:"endDate" json:"endDate"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
}

// Grants reports whether the subscription grants access at time t.
// Expiry is evaluated here, at read time; no background job flips the
// stored flag.
func (s *Subscription) Grants(t time.Time) bool {
	return s.IsActive && s.EndDate.After(t)
}

type SubscriptionPlan struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlanType string             `bson:"planType" json:"planType"`
	Details  []string           `bson:"details" json:"details"`
	Duration int                `bson:"duration" json:"duration"` // days
	Price    float64            `bson:"price" json:"price"`
}

// PaymentHistory is an append-only ledger row; one is written per
// successful subscribe call.
type PaymentHistory struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"user_id" json:"user_id"`
	SubscriptionID primitive.ObjectID `bson:"subscription_id" json:"subscription_id"`
	Reference      string             `bson:"reference" json:"reference"`
	PaymentDate    time.Time          `bson:"paymentDate" json:"paymentDate"`
	Amount         float64            `bson:"amount" json:"amount"`
	Status         string             `bson:"status" json:"status"`
}
