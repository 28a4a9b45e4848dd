package store

import (
	"context"
	"time"

	"github.com/boogo/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SubscriptionRepo is the Mongo-backed subscription repository. The
// unique index on user_id keeps a user to one subscription document.
type SubscriptionRepo struct {
	db *DB
}

func (db *DB) SubscriptionRepo() *SubscriptionRepo { return &SubscriptionRepo{db: db} }

func (r *SubscriptionRepo) coll() *mongo.Collection { return r.db.Subscriptions() }

func (r *SubscriptionRepo) Insert(ctx context.Context, sub *models.Subscription) (primitive.ObjectID, error) {
	res, err := r.coll().InsertOne(ctx, sub)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *SubscriptionRepo) ByUser(ctx context.Context, userID primitive.ObjectID) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.coll().FindOne(ctx, bson.M{"user_id": userID}).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepo) Update(ctx context.Context, sub *models.Subscription) error {
	_, err := r.coll().ReplaceOne(ctx, bson.M{"_id": sub.ID}, sub)
	return err
}

// Deactivate atomically flips the user's active subscription off and
// stamps endDate. Returns (nil, nil) when the user has none active.
func (r *SubscriptionRepo) Deactivate(ctx context.Context, userID primitive.ObjectID, at time.Time) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.coll().FindOneAndUpdate(ctx,
		bson.M{"user_id": userID, "isActive": true},
		bson.M{"$set": bson.M{"isActive": false, "endDate": at}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// PlanRepo is the Mongo-backed subscription-plan repository.
type PlanRepo struct {
	db *DB
}

func (db *DB) PlanRepo() *PlanRepo { return &PlanRepo{db: db} }

func (r *PlanRepo) coll() *mongo.Collection { return r.db.SubscriptionPlans() }

func (r *PlanRepo) Insert(ctx context.Context, plan *models.SubscriptionPlan) (primitive.ObjectID, error) {
	res, err := r.coll().InsertOne(ctx, plan)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *PlanRepo) ByID(ctx context.Context, id primitive.ObjectID) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	err := r.coll().FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepo) ByType(ctx context.Context, planType string) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	err := r.coll().FindOne(ctx, bson.M{"planType": planType}).Decode(&plan)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepo) All(ctx context.Context) ([]models.SubscriptionPlan, error) {
	cur, err := r.coll().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var plans []models.SubscriptionPlan
	if err := cur.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *PlanRepo) Update(ctx context.Context, plan *models.SubscriptionPlan) error {
	_, err := r.coll().ReplaceOne(ctx, bson.M{"_id": plan.ID}, plan)
	return err
}

func (r *PlanRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll().DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// PaymentRepo is the Mongo-backed append-only payment ledger.
type PaymentRepo struct {
	db *DB
}

func (db *DB) PaymentRepo() *PaymentRepo { return &PaymentRepo{db: db} }

func (r *PaymentRepo) Insert(ctx context.Context, payment *models.PaymentHistory) (primitive.ObjectID, error) {
	res, err := r.db.Payments().InsertOne(ctx, payment)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}
