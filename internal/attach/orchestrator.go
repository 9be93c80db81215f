package attach

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/foodlog/internal/logging"
	"github.com/dmitrijs2005/foodlog/internal/objectstore"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/dmitrijs2005/foodlog/internal/attach"

// Policy decides what a failed upload does to the surrounding mutation.
type Policy int

const (
	// PolicyDegrade persists the record without the new image and reports
	// the upload failure as Result.Warning.
	PolicyDegrade Policy = iota
	// PolicyAbort fails the whole operation with ErrUploadFailed.
	PolicyAbort
)

// ParsePolicy accepts "degrade" and "abort".
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "degrade", "":
		return PolicyDegrade, nil
	case "abort":
		return PolicyAbort, nil
	default:
		return 0, fmt.Errorf("unknown upload policy %q", s)
	}
}

func (p Policy) String() string {
	if p == PolicyAbort {
		return "abort"
	}
	return "degrade"
}

// Request describes one mutation. Existing is the reference currently on
// the record (nil for a create), File the replacement (nil for no change).
type Request struct {
	Bucket    string
	Namespace string
	Existing  *objectstore.Ref
	File      *File
}

// PersistFunc inserts or updates the record with the resolved reference.
type PersistFunc func(ctx context.Context, ref *objectstore.Ref) error

// Result is what was persisted. Warning is set when the upload failed under
// PolicyDegrade.
type Result struct {
	Ref     *objectstore.Ref
	Warning error
}

// Orchestrator links uploaded files to record mutations.
type Orchestrator struct {
	store  objectstore.Store
	policy Policy
	clock  *Clock
	logger logging.Logger
	tracer trace.Tracer
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithPolicy sets the upload failure policy. The default is PolicyDegrade.
func WithPolicy(p Policy) Option { return func(o *Orchestrator) { o.policy = p } }

// WithClock replaces the clock used for object paths.
func WithClock(c *Clock) Option { return func(o *Orchestrator) { o.clock = c } }

// WithLogger sets the logger for swallowed failures.
func WithLogger(l logging.Logger) Option {
	return func(o *Orchestrator) { o.logger = l.With("module", "attach") }
}

// WithTracer replaces the global otel tracer.
func WithTracer(t trace.Tracer) Option { return func(o *Orchestrator) { o.tracer = t } }

// New returns an Orchestrator over store.
func New(store objectstore.Store, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:  store,
		policy: PolicyDegrade,
		clock:  NewClock(nil),
		logger: logging.Nop{},
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Policy reports the configured upload failure policy.
func (o *Orchestrator) Policy() Policy { return o.policy }

// ObjectPath derives a fresh {namespace}/{millis}.{ext} path.
func (o *Orchestrator) ObjectPath(namespace, originalName, mediaType string) string {
	name := strconv.FormatInt(o.clock.Next(), 10) + "." + Extension(originalName, mediaType)
	if namespace == "" {
		return name
	}
	return namespace + "/" + name
}

// Link runs the upload-then-persist sequence described in the package doc.
func (o *Orchestrator) Link(ctx context.Context, req Request, persist PersistFunc) (*Result, error) {
	ctx, span := o.tracer.Start(ctx, "attach.Link", trace.WithAttributes(
		attribute.String("attach.bucket", req.Bucket),
		attribute.String("attach.namespace", req.Namespace),
		attribute.Bool("attach.has_file", req.File != nil),
		attribute.Bool("attach.has_existing", req.Existing != nil),
	))
	defer span.End()

	res, err := o.link(ctx, span, req, persist)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return res, err
}

func (o *Orchestrator) link(ctx context.Context, span trace.Span, req Request, persist PersistFunc) (*Result, error) {
	if req.File == nil {
		span.AddEvent("persist")
		if err := persist(ctx, req.Existing); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRecordPersistFailed, err)
		}
		return &Result{Ref: req.Existing}, nil
	}

	if err := Validate(req.File); err != nil {
		return nil, err
	}

	ref := req.Existing
	if req.Existing != nil {
		span.AddEvent("remove_existing")
		if o.Release(ctx, req.Bucket, req.Existing) {
			ref = nil
		}
	}

	path := o.ObjectPath(req.Namespace, req.File.Name, req.File.MediaType)
	span.AddEvent("upload", trace.WithAttributes(attribute.String("attach.path", path)))

	var warning error
	uploaded := false
	if err := o.store.Upload(ctx, req.Bucket, path, req.File.Data, normalizeMediaType(req.File.MediaType)); err != nil {
		upErr := fmt.Errorf("%w: %w", ErrUploadFailed, err)
		if o.policy == PolicyAbort {
			return nil, upErr
		}
		o.logger.Warn(ctx, "upload failed, saving without new image", "bucket", req.Bucket, "path", path, "error", err)
		warning = upErr
	} else {
		uploaded = true
		ref = &objectstore.Ref{URL: o.store.PublicURL(req.Bucket, path), Path: path}
	}

	span.AddEvent("persist")
	if err := persist(ctx, ref); err != nil {
		if uploaded {
			span.AddEvent("compensate")
			if rmErr := o.store.Remove(ctx, req.Bucket, path); rmErr != nil {
				o.logger.Warn(ctx, "compensating delete failed", "bucket", req.Bucket, "path", path, "error", rmErr)
			}
		}
		return nil, fmt.Errorf("%w: %w", ErrRecordPersistFailed, err)
	}

	return &Result{Ref: ref, Warning: warning}, nil
}

// Release makes a best-effort attempt to delete the object behind ref and
// reports whether it was removed. Failures are logged, never returned.
func (o *Orchestrator) Release(ctx context.Context, bucket string, ref *objectstore.Ref) bool {
	if ref == nil {
		return false
	}

	path := ref.Path
	if path == "" {
		p, ok := PathFromURL(bucket, ref.URL)
		if !ok {
			o.logger.Warn(ctx, "cannot recover object path from url", "bucket", bucket, "url", ref.URL)
			return false
		}
		path = p
	}

	if err := o.store.Remove(ctx, bucket, path); err != nil {
		o.logger.Warn(ctx, "removing previous object failed", "bucket", bucket, "path", path, "error", err)
		return false
	}
	return true
}
