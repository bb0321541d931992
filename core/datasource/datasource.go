package datasource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
)

// Query parameters names sent with remote requests.
const (
	ParamPlatform = "platform"
	ParamLanguage = "language"
	ParamVersion  = "version"
)

// Query narrows a remote request. Empty fields mean "don't filter on this dimension".
type Query struct {
	Platform       string
	Language       string
	CurrentVersion string
}

// Values encodes the non-empty fields as URL query values.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Platform != "" {
		v.Set(ParamPlatform, q.Platform)
	}
	if q.Language != "" {
		v.Set(ParamLanguage, q.Language)
	}
	if q.CurrentVersion != "" {
		v.Set(ParamVersion, q.CurrentVersion)
	}
	return v
}

// BaselineSource reads the bundled document.
type BaselineSource interface {
	Baseline() ([]byte, error)
}

// RemoteSource fetches a remote document; nil bytes and nil error mean no data.
type RemoteSource interface {
	LoadRemote(ctx context.Context, q Query) ([]byte, error)
}

// DataSource is the collaborator consumed by the reconcile engine.
type DataSource interface {
	BaselineSource
	RemoteSource
}

// ErrTransport matches every TransportError.
var ErrTransport = errors.New("datasource: transport failed")

// TransportError wraps a failed remote fetch.
type TransportError struct {
	Source string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("datasource %s: %v", e.Source, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// Composite pairs a baseline reader with a remote loader.
type Composite struct {
	BaselineSource
	// Remote may be nil, in which case LoadRemote never has data.
	Remote RemoteSource
}

// NewComposite combines baseline and remote into a DataSource.
func NewComposite(baseline BaselineSource, remote RemoteSource) *Composite {
	return &Composite{BaselineSource: baseline, Remote: remote}
}

// LoadRemote implements RemoteSource.
func (c *Composite) LoadRemote(ctx context.Context, q Query) ([]byte, error) {
	if c.Remote == nil {
		return nil, nil
	}
	return c.Remote.LoadRemote(ctx, q)
}

// File reads the baseline from a path on disk.
type File string

// Baseline implements BaselineSource.
func (f File) Baseline() ([]byte, error) {
	data, err := os.ReadFile(string(f))
	if err != nil {
		return nil, fmt.Errorf("failed to read baseline %s: %w", string(f), err)
	}
	return data, nil
}

// Embedded reads the baseline from a file system, typically an embed.FS.
type Embedded struct {
	FS   fs.FS
	Name string
}

// Baseline implements BaselineSource.
func (e Embedded) Baseline() ([]byte, error) {
	data, err := fs.ReadFile(e.FS, e.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded baseline %s: %w", e.Name, err)
	}
	return data, nil
}

// Static is an in-memory baseline.
type Static []byte

// Baseline implements BaselineSource.
func (b Static) Baseline() ([]byte, error) {
	if len(b) == 0 {
		return nil, errors.New("empty baseline")
	}
	return []byte(b), nil
}
