package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"slices"
	"strings"
	"time"

	"langusta/core/payload"
	"langusta/core/storage"
	"langusta/core/version"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

const (
	archivePrefix   = "archive/"
	jsonContentType = "application/json"
	maxDocumentSize = 16 << 20
)

var (
	// ErrNotPublished is returned when no document has been uploaded yet.
	ErrNotPublished = errors.New("no localization document has been published")
	// ErrNotNewer is returned when an upload does not supersede the published version.
	ErrNotNewer = errors.New("document version is not newer than the published one")
)

// Request describes what a client asks for.
type Request struct {
	Platform       string
	Language       string
	Version        string
	AcceptLanguage string
}

// Document is a filtered document ready to be served.
type Document struct {
	Version  string
	Language string
	Body     []byte
}

// Revision is an archived document.
type Revision struct {
	Version      string    `json:"version"`
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Published summarizes an accepted upload.
type Published struct {
	Version         string   `json:"version"`
	PreviousVersion string   `json:"previous_version,omitempty"`
	Languages       []string `json:"languages"`
	Archived        string   `json:"archived,omitempty"`
	Pruned          []string `json:"pruned,omitempty"`
}

// Service reads and writes published documents in object storage.
type Service struct {
	client      storage.Client
	bucket      string
	object      string
	keepHistory int
	logger      *zap.Logger
}

// NewService creates a publish service for bucket/object. keepHistory bounds the archive; zero
// keeps every revision.
func NewService(client storage.Client, bucket, object string, keepHistory int, logger *zap.Logger) *Service {
	return &Service{
		client:      client,
		bucket:      bucket,
		object:      object,
		keepHistory: keepHistory,
		logger:      logger,
	}
}

// Fetch returns the published document filtered for req, or nil when req.Version is already
// up to date.
func (s *Service) Fetch(ctx context.Context, req Request) (*Document, error) {
	data, err := s.read(ctx, s.object)
	if err != nil {
		return nil, err
	}

	current, err := payload.Decode(data, payload.PlatformUniversal)
	if err != nil {
		return nil, fmt.Errorf("published document is invalid: %w", err)
	}

	if req.Version != "" && !version.Newer(current.Version, req.Version) {
		return nil, nil
	}

	lang := req.Language
	if lang == "" && req.AcceptLanguage != "" {
		lang = MatchLanguage(req.AcceptLanguage, current.Localizations.Languages())
	}

	body, err := payload.Filter(data, req.Platform, lang)
	if err != nil {
		return nil, err
	}
	return &Document{Version: current.Version, Language: lang, Body: body}, nil
}

// Publish validates data and makes it the current document. The previous document is archived.
func (s *Service) Publish(ctx context.Context, data []byte, force bool) (*Published, error) {
	next, err := payload.Decode(data, payload.PlatformUniversal)
	if err != nil {
		return nil, err
	}

	result := &Published{Version: next.Version, Languages: next.Localizations.Languages()}

	previous, err := s.read(ctx, s.object)
	switch {
	case errors.Is(err, ErrNotPublished):
	case err != nil:
		return nil, err
	default:
		current, err := payload.Decode(previous, payload.PlatformUniversal)
		if err != nil {
			s.logger.Warn("Replacing invalid published document", zap.Error(err))
			break
		}
		result.PreviousVersion = current.Version
		if !force && !version.Newer(next.Version, current.Version) {
			return nil, fmt.Errorf("%w: %s <= %s", ErrNotNewer, next.Version, current.Version)
		}

		result.Archived = archiveKey(current.Version)
		if err := s.write(ctx, result.Archived, previous); err != nil {
			return nil, fmt.Errorf("failed to archive version %s: %w", current.Version, err)
		}
	}

	if err := s.write(ctx, s.object, data); err != nil {
		return nil, err
	}

	s.logger.Info("Published localizations",
		zap.String("version", next.Version),
		zap.String("previous_version", result.PreviousVersion),
	)

	if s.keepHistory > 0 {
		pruned, err := s.Prune(ctx, s.keepHistory)
		if err != nil {
			s.logger.Warn("Failed to prune archive", zap.Error(err))
		}
		result.Pruned = pruned
	}
	return result, nil
}

// History lists archived revisions, newest first.
func (s *Service) History(ctx context.Context) ([]Revision, error) {
	var revisions []Revision
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: archivePrefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list archive: %w", obj.Err)
		}
		ver, ok := archivedVersion(obj.Key)
		if !ok {
			continue
		}
		revisions = append(revisions, Revision{
			Version:      ver,
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}

	slices.SortFunc(revisions, func(a, b Revision) int {
		return version.Compare(b.Version, a.Version)
	})
	return revisions, nil
}

// archiveKey escapes v so a version containing '/' still maps to a single object.
func archiveKey(v string) string {
	return archivePrefix + url.PathEscape(v) + ".json"
}

func archivedVersion(key string) (string, bool) {
	name := strings.TrimPrefix(key, archivePrefix)
	if strings.Contains(name, "/") || !strings.HasSuffix(name, ".json") {
		return "", false
	}
	v, err := url.PathUnescape(strings.TrimSuffix(name, ".json"))
	if err != nil {
		return "", false
	}
	return v, true
}

// Prune removes all but the keep newest archived revisions and returns the removed keys.
func (s *Service) Prune(ctx context.Context, keep int) ([]string, error) {
	revisions, err := s.History(ctx)
	if err != nil {
		return nil, err
	}
	if keep < 0 || len(revisions) <= keep {
		return nil, nil
	}

	var removed []string
	for _, rev := range revisions[keep:] {
		if err := s.client.RemoveObject(ctx, s.bucket, rev.Key, minio.RemoveObjectOptions{}); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", rev.Key, err)
		}
		removed = append(removed, rev.Key)
	}
	return removed, nil
}

// MatchLanguage picks the best of available for an Accept-Language header, or "" when nothing
// matches.
func MatchLanguage(acceptLanguage string, available []string) string {
	if len(available) == 0 {
		return ""
	}
	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return ""
	}

	tags := make([]language.Tag, 0, len(available))
	codes := make([]string, 0, len(available))
	for _, code := range available {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		codes = append(codes, code)
	}
	if len(tags) == 0 {
		return ""
	}

	_, index, confidence := language.NewMatcher(tags).Match(desired...)
	if confidence == language.No {
		return ""
	}
	return codes[index]
}

func (s *Service) read(ctx context.Context, name string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, ErrNotPublished
		}
		return nil, fmt.Errorf("failed to get %s: %w", name, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(io.LimitReader(obj, maxDocumentSize))
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, ErrNotPublished
		}
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func (s *Service) write(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: jsonContentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return nil
}
