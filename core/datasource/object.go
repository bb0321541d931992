package datasource

import (
	"context"
	"io"

	"langusta/core/storage"

	"github.com/minio/minio-go/v7"
)

// Object loads remote documents from an object storage bucket.
type Object struct {
	client storage.Client
	bucket string
	name   string
}

// NewObject creates an object storage remote source for bucket/name.
func NewObject(client storage.Client, bucket, name string) *Object {
	return &Object{client: client, bucket: bucket, name: name}
}

// LoadRemote implements RemoteSource. A missing object or bucket means no data.
func (o *Object) LoadRemote(ctx context.Context, _ Query) ([]byte, error) {
	obj, err := o.client.GetObject(ctx, o.bucket, o.name, minio.GetObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, nil
		}
		return nil, &TransportError{Source: "object", Err: err}
	}
	defer obj.Close()

	data, err := io.ReadAll(io.LimitReader(obj, maxDocumentBytes))
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, nil
		}
		return nil, &TransportError{Source: "object", Err: err}
	}
	return data, nil
}
