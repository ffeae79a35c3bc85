package summaries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const defaultUsersCollection = "users"

// firestoreDoc is the wire shape of a summary document. Summaries live in a
// per-user subcollection: users/{userId}/summaries/{summaryId}.
type firestoreDoc struct {
	FileName   string    `firestore:"filename"`
	StorageKey string    `firestore:"storageKey,omitempty"`
	Summary    string    `firestore:"summary"`
	Timestamp  time.Time `firestore:"timestamp"`
}

// FirestoreRepo implements SummariesRepo on Cloud Firestore.
type FirestoreRepo struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreRepo connects to Firestore for the given project. credsFile may
// be empty, in which case application default credentials apply.
func NewFirestoreRepo(ctx context.Context, projectID, credsFile, collection string) (*FirestoreRepo, error) {
	if projectID == "" {
		return nil, fmt.Errorf("firestore project id is required")
	}
	if collection == "" {
		collection = defaultUsersCollection
	}

	var opts []option.ClientOption
	if credsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return &FirestoreRepo{client: client, collection: collection}, nil
}

// Close releases the underlying client.
func (r *FirestoreRepo) Close() error {
	return r.client.Close()
}

func (r *FirestoreRepo) summariesFor(userId string) *firestore.CollectionRef {
	return r.client.Collection(r.collection).Doc(userId).Collection("summaries")
}

// Create writes a summary document under the user's subcollection.
func (r *FirestoreRepo) Create(ctx context.Context, s Summary) error {
	doc := firestoreDoc{
		FileName:   s.FileName,
		StorageKey: s.StorageKey,
		Summary:    s.Summary,
		Timestamp:  s.CreatedAt,
	}
	_, err := r.summariesFor(s.UserID).Doc(s.ID).Set(ctx, doc)
	if err != nil {
		return fmt.Errorf("firestore create summary: %w", err)
	}
	return nil
}

// ListByUser returns summaries newest-first, honoring limit/offset.
func (r *FirestoreRepo) ListByUser(ctx context.Context, userId string, limit, offset int) ([]Summary, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	q := r.summariesFor(userId).
		OrderBy("timestamp", firestore.Desc).
		Offset(offset).
		Limit(limit)

	iter := q.Documents(ctx)
	defer iter.Stop()

	out := []Summary{}
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("firestore list summaries: %w", err)
		}
		var doc firestoreDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("firestore decode summary %s: %w", snap.Ref.ID, err)
		}
		out = append(out, Summary{
			ID:         snap.Ref.ID,
			UserID:     userId,
			FileName:   doc.FileName,
			StorageKey: doc.StorageKey,
			Summary:    doc.Summary,
			CreatedAt:  doc.Timestamp,
		})
	}
	return out, nil
}

// GetByID fetches one summary owned by the user.
func (r *FirestoreRepo) GetByID(ctx context.Context, userId, summaryID string) (Summary, error) {
	snap, err := r.summariesFor(userId).Doc(summaryID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return Summary{}, ErrNotFound
		}
		return Summary{}, fmt.Errorf("firestore get summary: %w", err)
	}
	var doc firestoreDoc
	if err := snap.DataTo(&doc); err != nil {
		return Summary{}, fmt.Errorf("firestore decode summary %s: %w", summaryID, err)
	}
	return Summary{
		ID:         snap.Ref.ID,
		UserID:     userId,
		FileName:   doc.FileName,
		StorageKey: doc.StorageKey,
		Summary:    doc.Summary,
		CreatedAt:  doc.Timestamp,
	}, nil
}

var _ SummariesRepo = (*FirestoreRepo)(nil)
