// Package repository provides data access operations for the application.
package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	apperrors "moviestream/internal/errors"
	"moviestream/internal/models"
	appvalidator "moviestream/internal/validator"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks moviestream/internal/repository UserRepository,MovieRepository

// DocumentPtr constrains P to a pointer to T that implements models.Document.
type DocumentPtr[T any] interface {
	*T
	models.Document
}

// Schema describes how an entity is stored.
type Schema[T any] struct {
	// Entity names the document in validation errors ("user", "movie").
	Entity     string
	Collection string
	// NotFound is returned when a lookup matches nothing.
	NotFound error
	// Conflict is returned on a unique-index violation.
	Conflict error
	Indexes  []mongo.IndexModel
	// Validate runs after struct-tag validation.
	Validate func(doc *T) error
}

// Query narrows a GetAll call. A nil Sort orders by _id ascending.
type Query struct {
	Filter bson.M
	Sort   bson.D
	Limit  int64
}

// Repository is the generic CRUD contract shared by every collection.
type Repository[T any] interface {
	Create(ctx context.Context, doc *T) (*T, error)
	Read(ctx context.Context, id string) (*T, error)
	Update(ctx context.Context, id string, apply func(doc *T) error) (*T, error)
	Delete(ctx context.Context, id string) (*T, error)
	GetAll(ctx context.Context, q Query) ([]T, error)
	FindOne(ctx context.Context, filter bson.M) (*T, error)
	// UpdateFields applies a raw update document to the first match and
	// returns the document after the update.
	UpdateFields(ctx context.Context, filter, update bson.M) (*T, error)
	EnsureIndexes(ctx context.Context) error
}

// mongoRepository implements Repository using MongoDB
type mongoRepository[T any, P DocumentPtr[T]] struct {
	collection *mongo.Collection
	schema     Schema[T]
	validate   *validator.Validate
	now        func() time.Time
}

func newMongoRepository[T any, P DocumentPtr[T]](db *mongo.Database, schema Schema[T]) *mongoRepository[T, P] {
	return &mongoRepository[T, P]{
		collection: db.Collection(schema.Collection),
		schema:     schema,
		validate:   appvalidator.Instance(),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Create validates doc, stamps its timestamps and inserts it.
func (r *mongoRepository[T, P]) Create(ctx context.Context, doc *T) (*T, error) {
	p := P(doc)
	p.Touch(r.now(), true)
	if p.GetID().IsZero() {
		p.SetID(primitive.NewObjectID())
	}

	if err := r.check(doc); err != nil {
		return nil, err
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, r.mapWriteError(err)
	}
	return doc, nil
}

// Read finds a document by its hex id. Malformed ids are reported as not found.
func (r *mongoRepository[T, P]) Read(ctx context.Context, id string) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, r.schema.NotFound
	}
	return r.FindOne(ctx, bson.M{"_id": oid})
}

// FindOne returns the first document matching filter.
func (r *mongoRepository[T, P]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, r.schema.NotFound
		}
		return nil, err
	}
	return &doc, nil
}

// Update loads the document, lets apply modify it, re-validates it and
// writes back only the fields apply changed, so concurrent writes to other
// fields survive. The stored document is returned.
func (r *mongoRepository[T, P]) Update(ctx context.Context, id string, apply func(doc *T) error) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, r.schema.NotFound
	}

	doc, err := r.FindOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}
	before, err := toFieldMap(doc)
	if err != nil {
		return nil, err
	}

	if err := apply(doc); err != nil {
		return nil, err
	}
	p := P(doc)
	p.SetID(oid)
	p.Touch(r.now(), false)

	if err := r.check(doc); err != nil {
		return nil, err
	}

	after, err := toFieldMap(doc)
	if err != nil {
		return nil, err
	}
	update := diffFields(before, after)
	if len(update) == 0 {
		return r.FindOne(ctx, bson.M{"_id": oid})
	}

	var updated T
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, r.schema.NotFound
		}
		return nil, r.mapWriteError(err)
	}
	return &updated, nil
}

func (r *mongoRepository[T, P]) UpdateFields(ctx context.Context, filter, update bson.M) (*T, error) {
	var doc T
	err := r.collection.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, r.schema.NotFound
		}
		return nil, r.mapWriteError(err)
	}
	return &doc, nil
}

// Delete removes a document and returns it as it was before removal.
func (r *mongoRepository[T, P]) Delete(ctx context.Context, id string) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, r.schema.NotFound
	}

	var removed T
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&removed)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, r.schema.NotFound
		}
		return nil, err
	}
	return &removed, nil
}

// GetAll returns every document matching q. The result is never nil.
func (r *mongoRepository[T, P]) GetAll(ctx context.Context, q Query) ([]T, error) {
	filter := q.Filter
	if filter == nil {
		filter = bson.M{}
	}
	sort := q.Sort
	if sort == nil {
		sort = bson.D{{Key: "_id", Value: 1}}
	}

	opts := options.Find().SetSort(sort)
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// EnsureIndexes creates the schema's indexes. Existing indexes are left alone.
func (r *mongoRepository[T, P]) EnsureIndexes(ctx context.Context) error {
	if len(r.schema.Indexes) == 0 {
		return nil
	}
	if _, err := r.collection.Indexes().CreateMany(ctx, r.schema.Indexes); err != nil {
		return fmt.Errorf("create %s indexes: %w", r.schema.Collection, err)
	}
	return nil
}

// check runs struct-tag validation followed by the schema hook.
func (r *mongoRepository[T, P]) check(doc *T) error {
	if err := r.validate.Struct(doc); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			fields := make([]apperrors.FieldError, len(vErrs))
			for i, fe := range vErrs {
				fields[i] = apperrors.FieldError{Field: fe.Field(), Rule: fe.Tag()}
			}
			return apperrors.NewValidationError(r.schema.Entity, fields...)
		}
		return err
	}
	if r.schema.Validate != nil {
		return r.schema.Validate(doc)
	}
	return nil
}

func (r *mongoRepository[T, P]) mapWriteError(err error) error {
	if mongo.IsDuplicateKeyError(err) && r.schema.Conflict != nil {
		return r.schema.Conflict
	}
	return err
}

// toFieldMap marshals doc to its stored fields, dropping _id.
func toFieldMap(doc interface{}) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	delete(fields, "_id")
	return fields, nil
}

// diffFields builds an update that $sets fields added or changed between
// before and after and $unsets fields that were dropped.
func diffFields(before, after bson.M) bson.M {
	set := bson.M{}
	for k, v := range after {
		if old, ok := before[k]; !ok || !reflect.DeepEqual(old, v) {
			set[k] = v
		}
	}
	unset := bson.M{}
	for k := range before {
		if _, ok := after[k]; !ok {
			unset[k] = ""
		}
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}
