package store

import (
	"context"
	"log"
	"time"

	"github.com/boogo/backend/models"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDB(ctx context.Context, uri, dbName string) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "connect")
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "ping")
	}
	log.Println("Connected to MongoDB")
	return &DB{
		Client:   client,
		Database: client.Database(dbName),
	}, nil
}

func (db *DB) Users() *mongo.Collection {
	return db.Database.Collection("users")
}

func (db *DB) Books() *mongo.Collection {
	return db.Database.Collection("books")
}

func (db *DB) Authors() *mongo.Collection {
	return db.Database.Collection("authors")
}

func (db *DB) Genres() *mongo.Collection {
	return db.Database.Collection("genres")
}

func (db *DB) BookContents() *mongo.Collection {
	return db.Database.Collection("book_contents")
}

func (db *DB) Reviews() *mongo.Collection {
	return db.Database.Collection("reviews")
}

func (db *DB) Collections() *mongo.Collection {
	return db.Database.Collection("collections")
}

func (db *DB) Subscriptions() *mongo.Collection {
	return db.Database.Collection("subscriptions")
}

func (db *DB) SubscriptionPlans() *mongo.Collection {
	return db.Database.Collection("subscription_plans")
}

func (db *DB) Payments() *mongo.Collection {
	return db.Database.Collection("payment_history")
}

func (db *DB) ReadingProgress() *mongo.Collection {
	return db.Database.Collection("reading_progress")
}

func (db *DB) Blacklist() *mongo.Collection {
	return db.Database.Collection("blacklist")
}

// EnsureIndexes creates the unique and TTL indexes the invariants rely
// on. The compound unique indexes are the last line of defense against
// concurrent duplicate writes racing past the read-then-write checks;
// the TTL index is what makes blacklist entries self-expire.
func (db *DB) EnsureIndexes(ctx context.Context) error {
	type spec struct {
		coll *mongo.Collection
		mod  mongo.IndexModel
	}
	unique := options.Index().SetUnique(true)
	specs := []spec{
		{db.Users(), mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		{db.Books(), mongo.IndexModel{Keys: bson.D{{Key: "title", Value: 1}}, Options: unique}},
		{db.SubscriptionPlans(), mongo.IndexModel{Keys: bson.D{{Key: "planType", Value: 1}}, Options: unique}},
		{db.Subscriptions(), mongo.IndexModel{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: unique}},
		{db.Reviews(), mongo.IndexModel{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "book_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{db.ReadingProgress(), mongo.IndexModel{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "book_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{db.BookContents(), mongo.IndexModel{
			Keys:    bson.D{{Key: "book_id", Value: 1}, {Key: "chapter_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{db.Blacklist(), mongo.IndexModel{Keys: bson.D{{Key: "token", Value: 1}}, Options: options.Index().SetUnique(true)}},
		{db.Blacklist(), mongo.IndexModel{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(models.BlacklistTTL / time.Second)),
		}},
	}
	for _, s := range specs {
		if _, err := s.coll.Indexes().CreateOne(ctx, s.mod); err != nil {
			return errors.Wrapf(err, "index on %s", s.coll.Name())
		}
	}
	return nil
}

// InTransaction runs fn inside a session-scoped transaction: commit on
// nil, abort on error. All repository calls made with the callback's
// context join the transaction.
func (db *DB) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := db.Client.StartSession()
	if err != nil {
		return errors.Wrap(err, "start session")
	}
	defer session.EndSession(ctx)
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func (db *DB) Disconnect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return db.Client.Disconnect(ctx)
}

// IsDup reports whether err is a unique-index violation.
func IsDup(err error) bool {
	return mongo.IsDuplicateKeyError(errors.Cause(err))
}
