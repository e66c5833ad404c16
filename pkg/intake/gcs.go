package intake

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"google.golang.org/api/iterator"
)

// GCSScheme は Cloud Storage 参照の接頭辞です。
const GCSScheme = "gs://"

var _ remoteio.InputReader = (*GCSReader)(nil)

// GCSReader は Cloud Storage のオブジェクトを remoteio.InputReader として読み込みます。
type GCSReader struct {
	client *storage.Client
}

// NewGCSReader はアプリケーションデフォルト認証情報で GCSReader を生成します。
// 使い終わったら Close を呼んでください。
func NewGCSReader(ctx context.Context) (*GCSReader, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("GCSクライアントの作成に失敗しました: %w", err)
	}
	return &GCSReader{client: client}, nil
}

// Open は gs://bucket/object のリーダーを返します。
func (r *GCSReader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	bucket, object, err := ParseGCSURI(uri)
	if err != nil {
		return nil, err
	}
	if object == "" {
		return nil, fmt.Errorf("オブジェクト名がありません: %s", uri)
	}
	rc, err := r.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("GCSオブジェクトを開けません %s: %w", uri, err)
	}
	return rc, nil
}

// List は gs://bucket/prefix 配下のオブジェクトURIを fn に渡します。
func (r *GCSReader) List(ctx context.Context, uri string, fn func(string) error) error {
	bucket, prefix, err := ParseGCSURI(uri)
	if err != nil {
		return err
	}
	it := r.client.Bucket(bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("GCSオブジェクトの列挙に失敗しました: %w", err)
		}
		if err := fn(GCSScheme + bucket + "/" + attrs.Name); err != nil {
			return err
		}
	}
}

// Close はクライアントを解放します。
func (r *GCSReader) Close() error {
	return r.client.Close()
}

// ParseGCSURI は gs://bucket/path をバケット名とオブジェクトパスに分解します。
func ParseGCSURI(uri string) (bucket, object string, err error) {
	rest, ok := strings.CutPrefix(uri, GCSScheme)
	if !ok {
		return "", "", fmt.Errorf("gs:// 形式ではありません: %q", uri)
	}
	bucket, object, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("バケット名がありません: %q", uri)
	}
	return bucket, object, nil
}
