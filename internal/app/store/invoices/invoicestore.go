// internal/app/store/invoices/invoicestore.go
package invoicestore

import (
	"context"
	"errors"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/talentgate/hirehub/internal/domain/models"
)

var (
	ErrNotFound  = errors.New("invoice not found")
	ErrDuplicate = errors.New("an invoice with this number already exists")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("invoices")}
}

func (s *Store) Create(ctx context.Context, inv models.Invoice) (models.Invoice, error) {
	now := time.Now().UTC()
	inv.ID = primitive.NewObjectID()
	inv.InvoiceNo = strings.TrimSpace(inv.InvoiceNo)
	if inv.Status == "" {
		inv.Status = models.InvoicePending
	}
	inv.CreatedAt = now
	inv.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, inv); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Invoice{}, ErrDuplicate
		}
		return models.Invoice{}, err
	}
	return inv, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Invoice, error) {
	var inv models.Invoice
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&inv)
	if err == mongo.ErrNoDocuments {
		return models.Invoice{}, ErrNotFound
	}
	if err != nil {
		return models.Invoice{}, err
	}
	return inv, nil
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Invoice, error) {
	set["updated_at"] = time.Now().UTC()
	var inv models.Invoice
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&inv)
	if err == mongo.ErrNoDocuments {
		return models.Invoice{}, ErrNotFound
	}
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Invoice{}, ErrDuplicate
		}
		return models.Invoice{}, err
	}
	return inv, nil
}

// SetStatus updates the invoice status field only.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (models.Invoice, error) {
	return s.Update(ctx, id, bson.M{"status": status})
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Invoice, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var invs []models.Invoice
	if err := cur.All(ctx, &invs); err != nil {
		return nil, err
	}
	return invs, nil
}

func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
