package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/admin-console/internal/core/domain"
	"github.com/99minutos/admin-console/internal/core/ports"
)

const auditCollection = "user_edits"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

var _ ports.AuditRepository = (*AuditRepository)(nil)

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

// EnsureIndexes creates the lookup index on user_id + at.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "at", Value: -1}},
		Options: options.Index().SetName("user_id_at"),
	})
	if err != nil {
		return fmt.Errorf("create audit index: %w", err)
	}
	return nil
}

type auditUser struct {
	Name    string `bson:"name"`
	Email   string `bson:"email"`
	Mobile  string `bson:"mobile"`
	RoleID  int    `bson:"role_id"`
	Status  int    `bson:"status"`
	StateID int64  `bson:"state_id"`
	CityID  int64  `bson:"city_id"`
}

type auditDoc struct {
	ID       string    `bson:"_id"`
	UserID   int64     `bson:"user_id"`
	Operator string    `bson:"operator,omitempty"`
	Before   auditUser `bson:"before"`
	After    auditUser `bson:"after"`
	Outcome  string    `bson:"outcome"`
	Message  string    `bson:"message,omitempty"`
	At       int64     `bson:"at"`
}

// Insert persists one audit entry. Passwords are never written.
func (r *AuditRepository) Insert(ctx context.Context, entry *ports.AuditEntry) error {
	doc := auditDoc{
		ID:       entry.ID,
		UserID:   int64(entry.UserID),
		Operator: entry.Operator,
		Before:   toAuditUser(entry.Before),
		After:    toAuditUser(entry.After),
		Outcome:  entry.Outcome,
		Message:  entry.Message,
		At:       entry.At.UTC().UnixMilli(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func toAuditUser(u domain.User) auditUser {
	return auditUser{
		Name:    u.Name,
		Email:   u.Email,
		Mobile:  u.Mobile,
		RoleID:  int(u.RoleID),
		Status:  int(u.Status),
		StateID: int64(u.StateID),
		CityID:  int64(u.CityID),
	}
}
