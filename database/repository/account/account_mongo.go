package accountRepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"portfolio/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	emailIndex  = "email_unique"
	deviceIndex = "deviceId_unique"
)

// MongoAccountRepo implements AccountRepository using MongoDB.
type MongoAccountRepo struct {
	coll *mongo.Collection
}

// NewMongoAccountRepo creates the repository and makes sure its indexes exist.
func NewMongoAccountRepo(ctx context.Context, db *mongo.Database) (*MongoAccountRepo, error) {
	repo := &MongoAccountRepo{coll: db.Collection("accounts")}
	if err := repo.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

// newContext bounds a single database call.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func (r *MongoAccountRepo) findOne(ctx context.Context, filter bson.M) (*models.Account, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var account models.Account
	if err := r.coll.FindOne(ctx, filter).Decode(&account); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// GetByEmail retrieves an account by its email.
func (r *MongoAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	account, err := r.findOne(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account with email %s: %w", email, err)
	}
	return account, nil
}

// GetByDeviceID retrieves the account bound to a device.
func (r *MongoAccountRepo) GetByDeviceID(ctx context.Context, deviceID string) (*models.Account, error) {
	account, err := r.findOne(ctx, bson.M{"deviceId": deviceID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account with device %s: %w", deviceID, err)
	}
	return account, nil
}

// Create inserts a new account document.
func (r *MongoAccountRepo) Create(ctx context.Context, account *models.Account) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, account); err != nil {
		return translateInsertError(err)
	}
	return nil
}

// UpdatePassword replaces the password hash of the account with the given email.
func (r *MongoAccountRepo) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"passwordHash": passwordHash, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return fmt.Errorf("failed to update password for %s: %w", email, err)
	}
	if result.MatchedCount == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// translateInsertError maps a duplicate-key write error onto the key that collided.
func translateInsertError(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to create account: %w", err)
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, deviceIndex), strings.Contains(msg, "{ deviceId:"):
		return ErrDeviceTaken
	case strings.Contains(msg, emailIndex), strings.Contains(msg, "{ email:"):
		return ErrEmailTaken
	default:
		return fmt.Errorf("failed to create account: %w", err)
	}
}
