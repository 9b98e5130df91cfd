// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/pdiddy/tpadmin/pkg/types"
)

// EmulatorHostEnv is read by the Firestore client library at construction.
const EmulatorHostEnv = "FIRESTORE_EMULATOR_HOST"

// Firestore implements Store on Cloud Firestore.
type Firestore struct {
	client *firestore.Client
}

// OpenFirestore connects with the service account in creds. When
// FIRESTORE_EMULATOR_HOST is set the client talks to the emulator and the
// private key is not required.
func OpenFirestore(ctx context.Context, creds types.Credentials) (*Firestore, error) {
	projectID := creds.ProjectID
	var opts []option.ClientOption

	if os.Getenv(EmulatorHostEnv) != "" {
		if projectID == "" {
			projectID = types.EmulatorProjectID
		}
	} else {
		if !creds.IsComplete() {
			return nil, errors.New("firestore credentials incomplete: PROJECT_ID, PRIVATE_KEY and CLIENT_EMAIL are required")
		}
		data, err := serviceAccountJSON(creds)
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithCredentialsJSON(data))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}
	return &Firestore{client: client}, nil
}

// serviceAccountJSON builds the key file the Google auth library expects
// from the three environment values.
func serviceAccountJSON(creds types.Credentials) ([]byte, error) {
	key := map[string]string{
		"type":         "service_account",
		"project_id":   creds.ProjectID,
		"private_key":  strings.ReplaceAll(creds.PrivateKey, `\n`, "\n"),
		"client_email": creds.ClientEmail,
		"token_uri":    "https://oauth2.googleapis.com/token",
	}
	data, err := json.Marshal(key)
	if err != nil {
		return nil, fmt.Errorf("encoding service account: %w", err)
	}
	return data, nil
}

// ListDocuments implements Store. Missing documents with subcollections are
// included, the same as the admin SDK's listDocuments.
func (f *Firestore) ListDocuments(ctx context.Context, collection string) ([]string, error) {
	it := f.client.Collection(collection).DocumentRefs(ctx)
	var ids []string
	for {
		ref, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", collection, err)
		}
		ids = append(ids, ref.ID)
	}
	return ids, nil
}

// Commit implements Store.
func (f *Firestore) Commit(ctx context.Context, writes []Write) error {
	if len(writes) == 0 {
		return nil
	}

	batch := f.client.Batch()
	for _, w := range writes {
		ref := f.client.Collection(w.Collection).Doc(w.ID)
		switch w.Op {
		case OpSet:
			batch.Set(ref, w.Data)
		case OpDelete:
			batch.Delete(ref)
		default:
			return fmt.Errorf("unknown write op %v", w.Op)
		}
	}

	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("committing batch of %d writes: %w", len(writes), err)
	}
	return nil
}

// NewID implements Store.
func (f *Firestore) NewID(collection string) string {
	return f.client.Collection(collection).NewDoc().ID
}

// Set implements Store.
func (f *Firestore) Set(ctx context.Context, collection, id string, data any) error {
	if _, err := f.client.Collection(collection).Doc(id).Set(ctx, data); err != nil {
		return fmt.Errorf("setting %s/%s: %w", collection, id, err)
	}
	return nil
}

// Close releases the client connection.
func (f *Firestore) Close() error {
	return f.client.Close()
}
