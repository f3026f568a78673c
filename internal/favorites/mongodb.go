// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package favorites

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDB implements Store on a MongoDB collection.
type MongoDB struct {
	client    *mongo.Client
	favorites *mongo.Collection
}

type favoriteDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Seq       int64              `bson:"seq"`
	Username  string             `bson:"username"`
	TMDBID    int                `bson:"tmdb_id"`
	MediaType string             `bson:"media_type"`
	CreatedAt time.Time          `bson:"created_at"`
}

// NewMongoDB connects to uri and ensures the indexes on database.favorites.
func NewMongoDB(ctx context.Context, uri, database string) (*MongoDB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	m := &MongoDB{
		client:    client,
		favorites: client.Database(database).Collection("favorites"),
	}
	if err := m.initIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}
	return m, nil
}

func (m *MongoDB) initIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "username", Value: 1},
				{Key: "tmdb_id", Value: 1},
				{Key: "media_type", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("favorites_username_media_uc"),
		},
		{Keys: bson.D{{Key: "username", Value: 1}, {Key: "seq", Value: 1}}},
	}
	_, err := m.favorites.Indexes().CreateMany(ctx, indexes)
	return err
}

// List implements Store.
func (m *MongoDB) List(ctx context.Context, username string) ([]Favorite, error) {
	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := m.favorites.Find(ctx, bson.D{{Key: "username", Value: username}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]Favorite, 0)
	for cursor.Next(ctx) {
		var doc favoriteDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode favorite: %w", err)
		}
		out = append(out, Favorite{
			ID:        doc.Seq,
			Username:  doc.Username,
			TMDBID:    doc.TMDBID,
			MediaType: doc.MediaType,
		})
	}
	return out, cursor.Err()
}

// Add implements Store.
func (m *MongoDB) Add(ctx context.Context, fav Favorite) (Favorite, error) {
	now := time.Now().UTC()
	doc := favoriteDoc{
		Seq:       now.UnixNano(),
		Username:  fav.Username,
		TMDBID:    fav.TMDBID,
		MediaType: fav.MediaType,
		CreatedAt: now,
	}
	if _, err := m.favorites.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Favorite{}, ErrDuplicate
		}
		return Favorite{}, fmt.Errorf("failed to insert favorite: %w", err)
	}
	fav.ID = doc.Seq
	return fav, nil
}

// Remove implements Store.
func (m *MongoDB) Remove(ctx context.Context, fav Favorite) error {
	res, err := m.favorites.DeleteOne(ctx, bson.D{
		{Key: "username", Value: fav.Username},
		{Key: "tmdb_id", Value: fav.TMDBID},
		{Key: "media_type", Value: fav.MediaType},
	})
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping implements Store.
func (m *MongoDB) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

// Close releases the underlying connection.
func (m *MongoDB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}
