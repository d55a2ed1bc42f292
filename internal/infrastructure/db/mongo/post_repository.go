package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkwell/blog-service/internal/core/domain"
	"github.com/inkwell/blog-service/internal/core/ports"
)

const postsCollection = "posts"

// PostRepository persists posts in MongoDB. Every read attaches the author
// summary so callers never expose full user records.
type PostRepository struct {
	db    *mongo.Database
	coll  *mongo.Collection
	users *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{
		db:    db,
		coll:  db.Collection(postsCollection),
		users: db.Collection(usersCollection),
	}
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, "posts")
	if err != nil {
		return nil, err
	}

	created := *post
	created.ID = id

	if _, err := r.coll.InsertOne(ctx, &created); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	if err := r.attachAuthor(ctx, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *PostRepository) FindByID(ctx context.Context, id int64) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var post domain.Post
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}

	if err := r.attachAuthor(ctx, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns a page of posts ordered by creation time descending, plus the
// total count matching the filter. Author summaries are joined in a single
// $lookup stage.
func (r *PostRepository) List(ctx context.Context, filter ports.ListPostsFilter) ([]*domain.Post, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	match := bson.M{}
	if filter.PublishedOnly {
		match["published"] = true
	}

	total, err := r.coll.CountDocuments(ctx, match)
	if err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	skip := int64(filter.Page-1) * int64(filter.PerPage)
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$skip", Value: skip}},
		{{Key: "$limit", Value: int64(filter.PerPage)}},
		{{Key: "$lookup", Value: bson.M{
			"from":         usersCollection,
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "author",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$author", "preserveNullAndEmptyArrays": true}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer cursor.Close(ctx)

	type postWithAuthor struct {
		domain.Post `bson:",inline"`
		Author      *domain.AuthorSummary `bson:"author"`
	}

	posts := make([]*domain.Post, 0, filter.PerPage)
	for cursor.Next(ctx) {
		var row postWithAuthor
		if err := cursor.Decode(&row); err != nil {
			return nil, 0, fmt.Errorf("decode post: %w", err)
		}
		post := row.Post
		post.Author = row.Author
		posts = append(posts, &post)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("list posts cursor: %w", err)
	}

	return posts, total, nil
}

// Update applies the non-nil fields and returns the post's new state.
func (r *PostRepository) Update(ctx context.Context, id int64, update ports.PostUpdate) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Content != nil {
		set["content"] = *update.Content
	}
	if update.Published != nil {
		set["published"] = *update.Published
	}

	var post domain.Post
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}

	if err := r.attachAuthor(ctx, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the feed query and owner lookups.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "published", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("ensure post indexes: %w", err)
	}
	return nil
}

func (r *PostRepository) attachAuthor(ctx context.Context, post *domain.Post) error {
	var author domain.AuthorSummary
	err := r.users.FindOne(ctx, bson.M{"_id": post.UserID}).Decode(&author)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Owner row missing is a data inconsistency, not a request error.
			return nil
		}
		return fmt.Errorf("attach author: %w", err)
	}
	post.Author = &author
	return nil
}
