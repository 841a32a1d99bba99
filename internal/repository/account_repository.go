package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/noah-isme/automated-attendance/internal/models"
	appErrors "github.com/noah-isme/automated-attendance/pkg/errors"
)

type accountDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	IDNumber   string             `bson:"idNumber"`
	FullName   string             `bson:"fullName"`
	Password   string             `bson:"password"`
	Course     string             `bson:"course,omitempty"`
	Year       string             `bson:"year,omitempty"`
	Section    string             `bson:"section,omitempty"`
	Department string             `bson:"department,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

func (d accountDocument) toModel() models.Account {
	return models.Account{
		ID:           d.ID.Hex(),
		IDNumber:     d.IDNumber,
		FullName:     d.FullName,
		PasswordHash: d.Password,
		Course:       d.Course,
		Year:         d.Year,
		Section:      d.Section,
		Department:   d.Department,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// AccountRepository stores one class of account (students or instructors)
// in its own collection.
type AccountRepository struct {
	coll *mongo.Collection
	role models.Role
}

// NewAccountRepository binds the role's collection and ensures the unique
// idNumber index exists.
func NewAccountRepository(ctx context.Context, db *mongo.Database, role models.Role) (*AccountRepository, error) {
	coll := db.Collection(role.Collection())
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "idNumber", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("idNumber_unique"),
	})
	if err != nil {
		return nil, fmt.Errorf("ensure %s idNumber index: %w", role.Collection(), err)
	}
	return &AccountRepository{coll: coll, role: role}, nil
}

// Role reports which account class the repository holds.
func (r *AccountRepository) Role() models.Role {
	return r.role
}

// List returns all accounts ordered by creation time.
func (r *AccountRepository) List(ctx context.Context) ([]models.Account, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", r.role.Collection(), err)
	}
	defer cur.Close(ctx)

	var docs []accountDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.role.Collection(), err)
	}
	out := make([]models.Account, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

// Count returns the number of stored accounts.
func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", r.role.Collection(), err)
	}
	return n, nil
}

// FindByID looks an account up by its document id.
func (r *AccountRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, r.role.Label()+" not found")
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindByIDNumber looks an account up by its login identifier.
func (r *AccountRepository) FindByIDNumber(ctx context.Context, idNumber string) (*models.Account, error) {
	return r.findOne(ctx, bson.M{"idNumber": idNumber})
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*models.Account, error) {
	var doc accountDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, r.role.Label()+" not found")
		}
		return nil, fmt.Errorf("find %s: %w", r.role, err)
	}
	account := doc.toModel()
	return &account, nil
}

// Create inserts the account and fills in its generated id.
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	doc := accountDocument{
		IDNumber:   account.IDNumber,
		FullName:   account.FullName,
		Password:   account.PasswordHash,
		Course:     account.Course,
		Year:       account.Year,
		Section:    account.Section,
		Department: account.Department,
		CreatedAt:  account.CreatedAt,
		UpdatedAt:  account.UpdatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return appErrors.Clone(appErrors.ErrConflict, r.role.Label()+" ID already exists")
		}
		return fmt.Errorf("insert %s: %w", r.role, err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		account.ID = oid.Hex()
	}
	return nil
}

// UpdateIdentity rewrites idNumber and fullName and returns the stored account.
func (r *AccountRepository) UpdateIdentity(ctx context.Context, id, idNumber, fullName string, updatedAt time.Time) (*models.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, r.role.Label()+" not found")
	}
	update := bson.M{"$set": bson.M{"idNumber": idNumber, "fullName": fullName, "updatedAt": updatedAt}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc accountDocument
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, appErrors.Clone(appErrors.ErrNotFound, r.role.Label()+" not found")
		case mongo.IsDuplicateKeyError(err):
			return nil, appErrors.Clone(appErrors.ErrConflict, r.role.Label()+" ID already exists")
		}
		return nil, fmt.Errorf("update %s: %w", r.role, err)
	}
	account := doc.toModel()
	return &account, nil
}

// Delete removes the account by document id.
func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return appErrors.Clone(appErrors.ErrNotFound, r.role.Label()+" not found")
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.role, err)
	}
	if res.DeletedCount == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, r.role.Label()+" not found")
	}
	return nil
}
