package platform

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore implements DocStore on a Firestore client.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) Subscribe(ctx context.Context, collection string, onSnapshot SnapshotFunc, onError ErrorFunc) (func(), error) {
	if onSnapshot == nil {
		return nil, fmt.Errorf("nil snapshot callback for %s", collection)
	}

	lctx, cancel := context.WithCancel(ctx)
	iter := s.client.Collection(collection).Snapshots(lctx)

	go func() {
		defer iter.Stop()
		for {
			snap, err := iter.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled || errors.Is(err, context.Canceled) {
					return
				}
				if onError != nil {
					onError(mapStoreErr(err))
				}
				return
			}

			docsnaps, err := snap.Documents.GetAll()
			if err != nil {
				if onError != nil {
					onError(mapStoreErr(err))
				}
				continue
			}

			docs := make([]Document, 0, len(docsnaps))
			for _, ds := range docsnaps {
				docs = append(docs, Document{ID: ds.Ref.ID, Data: ds.Data()})
			}
			onSnapshot(docs)
		}
	}()

	return cancel, nil
}

func (s *FirestoreStore) Write(ctx context.Context, collection, id string, record interface{}) error {
	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, record); err != nil {
		return mapStoreErr(err)
	}
	return nil
}

func (s *FirestoreStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range fields {
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	if _, err := s.client.Collection(collection).Doc(id).Update(ctx, updates); err != nil {
		return mapStoreErr(err)
	}
	return nil
}

func (s *FirestoreStore) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.client.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return mapStoreErr(err)
	}
	return nil
}

func (s *FirestoreStore) ReadAllOnce(ctx context.Context, collection string) ([]Document, error) {
	docsnaps, err := s.client.Collection(collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, mapStoreErr(err)
	}

	docs := make([]Document, 0, len(docsnaps))
	for _, ds := range docsnaps {
		docs = append(docs, Document{ID: ds.Ref.ID, Data: ds.Data()})
	}
	return docs, nil
}

func (s *FirestoreStore) BatchWrite(ctx context.Context, docs []BatchDoc) error {
	bw := s.client.BulkWriter(ctx)

	jobs := make([]*firestore.BulkWriterJob, 0, len(docs))
	for _, d := range docs {
		ref := s.client.Collection(d.Collection).Doc(d.ID)
		job, err := bw.Set(ref, d.Record)
		if err != nil {
			bw.End()
			return mapStoreErr(err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return mapStoreErr(err)
		}
	}
	return nil
}

// mapStoreErr translates gRPC status codes into the closed error kinds.
func mapStoreErr(err error) error {
	code := status.Code(err)
	switch code {
	case codes.PermissionDenied, codes.Unauthenticated:
		return NewError(KindPermissionDenied, code.String(), err)
	case codes.NotFound:
		return NewError(KindNotFound, code.String(), err)
	case codes.Unavailable, codes.DeadlineExceeded:
		return NewError(KindUnavailable, code.String(), err)
	default:
		return NewError(KindInternal, code.String(), err)
	}
}
