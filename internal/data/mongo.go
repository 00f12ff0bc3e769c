// internal/data/mongo.go
package data

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// bookDocument is the BSON shape of a book in the collection.
type bookDocument struct {
	ID              primitive.ObjectID `bson:"_id"`
	Title           string             `bson:"title"`
	Author          string             `bson:"author"`
	Genre           string             `bson:"genre"`
	PublicationDate time.Time          `bson:"publication_date"`
}

func newBookDocument(oid primitive.ObjectID, book *Book) bookDocument {
	return bookDocument{
		ID:              oid,
		Title:           book.Title,
		Author:          book.Author,
		Genre:           book.Genre,
		PublicationDate: book.PublicationDate,
	}
}

func (d bookDocument) book() *Book {
	return &Book{
		ID:              d.ID.Hex(),
		Title:           d.Title,
		Author:          d.Author,
		Genre:           d.Genre,
		PublicationDate: d.PublicationDate.UTC(),
	}
}

// MongoBookModel stores books as documents in a single MongoDB collection.
type MongoBookModel struct {
	Coll *mongo.Collection
}

// OpenMongo connects to MongoDB, pings the primary and returns a store bound
// to cfg.Database/cfg.Collection. cfg.Timeout bounds the connect and becomes
// the client-wide operation timeout.
func OpenMongo(ctx context.Context, cfg StoreConfig) (*MongoBookModel, error) {
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.Timeout > 0 {
		opts.SetTimeout(cfg.Timeout)

		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, errors.Join(err, client.Disconnect(context.Background()))
	}

	return NewMongoBookModel(client.Database(cfg.Database).Collection(cfg.Collection)), nil
}

// NewMongoBookModel wraps an existing collection handle.
func NewMongoBookModel(coll *mongo.Collection) *MongoBookModel {
	return &MongoBookModel{Coll: coll}
}

// objectID converts a hex id, treating anything unparsable as a missing record.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrRecordNotFound
	}
	return oid, nil
}

// GetAll returns every book in insertion order.
func (m *MongoBookModel) GetAll(ctx context.Context) ([]*Book, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cur, err := m.Coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []bookDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	books := make([]*Book, 0, len(docs))
	for _, d := range docs {
		books = append(books, d.book())
	}
	return books, nil
}

// Get returns the book with the given id or ErrRecordNotFound.
func (m *MongoBookModel) Get(ctx context.Context, id string) (*Book, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc bookDocument
	err = m.Coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return doc.book(), nil
}

// Insert stores a new document and writes the generated id back into book.
func (m *MongoBookModel) Insert(ctx context.Context, book *Book) error {
	oid := primitive.NewObjectID()

	_, err := m.Coll.InsertOne(ctx, newBookDocument(oid, book))
	if err != nil {
		return err
	}

	book.ID = oid.Hex()
	return nil
}

// Update replaces the stored document with the current field values of book.
func (m *MongoBookModel) Update(ctx context.Context, book *Book) error {
	oid, err := objectID(book.ID)
	if err != nil {
		return err
	}

	res, err := m.Coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: oid}}, newBookDocument(oid, book))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Delete removes the document with the given id.
func (m *MongoBookModel) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := m.Coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Ping checks that the primary is reachable.
func (m *MongoBookModel) Ping(ctx context.Context) error {
	return m.Coll.Database().Client().Ping(ctx, readpref.Primary())
}

// Close disconnects the underlying client.
func (m *MongoBookModel) Close(ctx context.Context) error {
	return m.Coll.Database().Client().Disconnect(ctx)
}
