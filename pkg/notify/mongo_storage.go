package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/quickhelper/bookingkit/pkg/account"
)

// MongoStorage persists notifications in a MongoDB collection.
type MongoStorage struct {
	collection *mongo.Collection
}

// NewMongoStorage creates a storage backed by the given collection.
func NewMongoStorage(collection *mongo.Collection) *MongoStorage {
	return &MongoStorage{collection: collection}
}

// notificationDoc is the BSON shape of a stored notification. The
// notification id doubles as the document id.
type notificationDoc struct {
	ID           string    `bson:"_id"`
	ReceiverID   string    `bson:"receiver_id"`
	ReceiverRole string    `bson:"receiver_role"`
	Type         string    `bson:"type"`
	Title        string    `bson:"title"`
	Message      string    `bson:"message"`
	Read         bool       `bson:"read"`
	ReadAt       *time.Time `bson:"read_at,omitempty"`
	HighPriority bool       `bson:"high_priority"`
	BookingID    string     `bson:"booking_id,omitempty"`
	CreatedAt    time.Time  `bson:"created_at"`
}

func toDoc(n Notification) notificationDoc {
	return notificationDoc{
		ID:           n.ID,
		ReceiverID:   n.ReceiverID,
		ReceiverRole: string(n.ReceiverRole),
		Type:         string(n.Type),
		Title:        n.Title,
		Message:      n.Message,
		Read:         n.Read,
		ReadAt:       n.ReadAt,
		HighPriority: n.HighPriority,
		BookingID:    n.BookingID,
		CreatedAt:    n.CreatedAt,
	}
}

func (d notificationDoc) toNotification() Notification {
	return Notification{
		ID:           d.ID,
		ReceiverID:   d.ReceiverID,
		ReceiverRole: account.Role(d.ReceiverRole),
		Type:         EventType(d.Type),
		Title:        d.Title,
		Message:      d.Message,
		Read:         d.Read,
		ReadAt:       d.ReadAt,
		HighPriority: d.HighPriority,
		BookingID:    d.BookingID,
		CreatedAt:    d.CreatedAt,
	}
}

func receiverFilter(receiverID string, role account.Role) bson.M {
	return bson.M{"receiver_id": receiverID, "receiver_role": string(role)}
}

func (s *MongoStorage) Create(ctx context.Context, n Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	if _, err := s.collection.InsertOne(ctx, toDoc(n)); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (s *MongoStorage) Get(ctx context.Context, id string) (*Notification, error) {
	var doc notificationDoc
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("find notification: %w", err)
	}

	n := doc.toNotification()
	return &n, nil
}

func (s *MongoStorage) List(ctx context.Context, receiverID string, role account.Role, opts ListOptions) ([]Notification, error) {
	filter := receiverFilter(receiverID, role)
	if opts.OnlyUnread {
		filter["read"] = false
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if opts.Limit > 0 {
		findOpts.SetLimit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		findOpts.SetSkip(int64(opts.Offset))
	}

	cursor, err := s.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []notificationDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode notifications: %w", err)
	}

	result := make([]Notification, 0, len(docs))
	for _, doc := range docs {
		result = append(result, doc.toNotification())
	}
	return result, nil
}

func (s *MongoStorage) MarkRead(ctx context.Context, id string) error {
	// Match only unread documents so a repeated call keeps the first read
	// timestamp; an already-read notification is a no-op, not an error.
	res, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": id, "read": false},
		bson.M{"$set": bson.M{"read": true, "read_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if res.MatchedCount == 0 {
		count, err := s.collection.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return fmt.Errorf("mark notification read: %w", err)
		}
		if count == 0 {
			return ErrNotificationNotFound
		}
	}
	return nil
}

func (s *MongoStorage) MarkAllRead(ctx context.Context, receiverID string, role account.Role) error {
	filter := receiverFilter(receiverID, role)
	filter["read"] = false

	if _, err := s.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"read": true, "read_at": time.Now().UTC()}}); err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

func (s *MongoStorage) CountUnread(ctx context.Context, receiverID string, role account.Role) (int, error) {
	filter := receiverFilter(receiverID, role)
	filter["read"] = false

	count, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return int(count), nil
}

func (s *MongoStorage) Delete(ctx context.Context, id string) error {
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
