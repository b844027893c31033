package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sparkconnect/directory/internal/core/domain"
	"github.com/sparkconnect/directory/internal/core/ports"
)

const (
	usersCollection    = "users"
	countersCollection = "counters"
)

// UserRepository persists listing accounts in MongoDB. Ids are small
// sequential integers allocated from a counters document, matching the
// public API contract.
type UserRepository struct {
	users    *mongo.Collection
	counters *mongo.Collection
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		users:    db.Collection(usersCollection),
		counters: db.Collection(countersCollection),
	}
}

// EnsureIndexes creates the unique email index and the name lookup index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	})
	return err
}

func (r *UserRepository) nextID(ctx context.Context) (int, error) {
	var counter struct {
		Seq int `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": usersCollection},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("allocate user id: %w", err)
	}
	return counter.Seq, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.Listing, error) {
	cursor, err := r.users.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var listings []domain.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	for i := range listings {
		normalize(&listings[i])
	}
	return listings, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int) (*domain.Listing, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByIdentifier matches the identifier against the email or the display
// name, case-insensitively. Emails are stored lowercased.
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*domain.Listing, error) {
	pattern := primitive.Regex{Pattern: "^" + regexp.QuoteMeta(identifier) + "$", Options: "i"}
	return r.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"email": identifier},
		bson.M{"name": pattern},
	}})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.Listing, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.Listing, error) {
	var l domain.Listing
	if err := r.users.FindOne(ctx, filter).Decode(&l); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	normalize(&l)
	return &l, nil
}

// Create allocates an id and inserts the account. A duplicate email maps to
// domain.ErrEmailExists.
func (r *UserRepository) Create(ctx context.Context, l *domain.Listing) (*domain.Listing, error) {
	if l.Email != "" {
		if _, err := r.FindByEmail(ctx, l.Email); err == nil {
			return nil, domain.ErrEmailExists
		}
	}

	id, err := r.nextID(ctx)
	if err != nil {
		return nil, err
	}
	created := *l
	created.ID = id
	if created.Gallery == nil {
		created.Gallery = []string{}
	}

	if _, err := r.users.InsertOne(ctx, created); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &created, nil
}

// Update applies the set fields of the whitelisted schema and returns the
// updated document.
func (r *UserRepository) Update(ctx context.Context, id int, update ports.ListingUpdate) (*domain.Listing, error) {
	set := bson.M{}
	assign := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	assign("name", update.Name)
	assign("specialty", update.Specialty)
	assign("location", update.Location)
	assign("state", update.State)
	assign("phone", update.Phone)
	assign("whatsapp", update.Whatsapp)
	assign("description", update.Description)
	assign("image", update.Image)
	assign("email", update.Email)
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	var l domain.Listing
	err := r.users.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&l)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	normalize(&l)
	return &l, nil
}

// Delete removes the account. Deleting an absent id is a no-op.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.users.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *UserRepository) SetReviews(ctx context.Context, id int, reviews []domain.Review, rating float64, count int) error {
	res, err := r.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"reviews_data": reviews,
		"rating":       rating,
		"reviews":      count,
	}})
	if err != nil {
		return fmt.Errorf("set reviews: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *UserRepository) SetGallery(ctx context.Context, id int, gallery []string) error {
	if gallery == nil {
		gallery = []string{}
	}
	res, err := r.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"gallery": gallery}})
	if err != nil {
		return fmt.Errorf("set gallery: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, id int, token string, expiry time.Time) error {
	res, err := r.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"reset_token":        token,
		"reset_token_expiry": expiry.Unix(),
	}})
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *UserRepository) ResetToken(ctx context.Context, id int) (string, time.Time, error) {
	var doc struct {
		Token  string `bson:"reset_token"`
		Expiry int64  `bson:"reset_token_expiry"`
	}
	err := r.users.FindOne(ctx, bson.M{"_id": id},
		options.FindOne().SetProjection(bson.M{"reset_token": 1, "reset_token_expiry": 1}),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", time.Time{}, domain.ErrListingNotFound
		}
		return "", time.Time{}, fmt.Errorf("read reset token: %w", err)
	}
	var expiry time.Time
	if doc.Expiry != 0 {
		expiry = time.Unix(doc.Expiry, 0).UTC()
	}
	return doc.Token, expiry, nil
}

// UpdatePassword stores the new hash and clears any pending reset token.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int, hash string) error {
	res, err := r.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set":   bson.M{"password_hash": hash},
		"$unset": bson.M{"reset_token": "", "reset_token_expiry": ""},
	})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

// normalize keeps optional slices non-nil so the JSON layer always renders
// arrays instead of null.
func normalize(l *domain.Listing) {
	if l.Gallery == nil {
		l.Gallery = []string{}
	}
}
