// Package ingest turns uploaded files into audio records.
//
// Files whose declared content type is not the accepted MIME type are
// skipped silently and the rest of the batch carries on. Accepted files are
// read into data URLs either one at a time or with a bounded worker pool;
// either way the returned batch keeps the input order and is meant to be
// appended to the library in one step.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vincent-petithory/dataurl"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"audiodrop/internal/config"
	"audiodrop/internal/model"
)

// DefaultMIME is the only content type accepted unless configured otherwise.
const DefaultMIME = "audio/mpeg"

// ErrReadFailed wraps any failure to read an accepted file.
var ErrReadFailed = errors.New("read uploaded file")

var tracer = otel.Tracer("audiodrop/ingest")

// File is an uploaded file handle.
type File interface {
	Name() string
	Size() int64
	ContentType() string
	Open() (io.ReadCloser, error)
}

// Options configure an Ingester. Zero values pick the defaults.
type Options struct {
	AcceptedMIME string
	Strategy     string
	Workers      int
	NewID        func() string
	Now          func() time.Time
}

// Ingester validates and decodes uploaded files.
type Ingester struct {
	mime     string
	parallel bool
	workers  int
	newID    func() string
	now      func() time.Time
	log      logrus.FieldLogger
}

// New creates an Ingester.
func New(opts Options, log logrus.FieldLogger) *Ingester {
	in := &Ingester{
		mime:     opts.AcceptedMIME,
		parallel: opts.Strategy == config.StrategyParallel,
		workers:  opts.Workers,
		newID:    opts.NewID,
		now:      opts.Now,
		log:      log.WithField("component", "ingest"),
	}
	if in.mime == "" {
		in.mime = DefaultMIME
	}
	if in.workers <= 0 {
		in.workers = 1
	}
	if in.newID == nil {
		in.newID = uuid.NewString
	}
	if in.now == nil {
		in.now = time.Now
	}
	return in
}

// AcceptedMIME returns the content type files must declare.
func (in *Ingester) AcceptedMIME() string {
	return in.mime
}

// Accepts reports whether f declares exactly the accepted content type.
func (in *Ingester) Accepts(f File) bool {
	return f.ContentType() == in.mime
}

type pending struct {
	file   File
	record model.AudioRecord
}

// Ingest returns one record per accepted file, in input order. Any read
// failure or context cancellation fails the whole batch.
func (in *Ingester) Ingest(ctx context.Context, files []File) ([]model.AudioRecord, error) {
	ctx, span := tracer.Start(ctx, "ingest.batch")
	defer span.End()

	batch := make([]pending, 0, len(files))
	for _, f := range files {
		if !in.Accepts(f) {
			in.log.WithFields(logrus.Fields{
				"name":         f.Name(),
				"content_type": f.ContentType(),
			}).Debug("skipping file with unaccepted content type")
			continue
		}
		batch = append(batch, pending{
			file: f,
			record: model.AudioRecord{
				ID:         in.newID(),
				Name:       f.Name(),
				UploadedAt: model.Timestamp(in.now()),
				Size:       f.Size(),
			},
		})
	}
	span.SetAttributes(
		attribute.Int("ingest.files", len(files)),
		attribute.Int("ingest.accepted", len(batch)),
		attribute.Bool("ingest.parallel", in.parallel),
	)

	var err error
	if in.parallel {
		err = in.readParallel(ctx, batch)
	} else {
		err = in.readSequential(ctx, batch)
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	out := make([]model.AudioRecord, len(batch))
	for i, p := range batch {
		out[i] = p.record
	}
	return out, nil
}

func (in *Ingester) readSequential(ctx context.Context, batch []pending) error {
	for i := range batch {
		if err := ctx.Err(); err != nil {
			return err
		}
		url, err := in.encode(batch[i].file)
		if err != nil {
			return err
		}
		batch[i].record.URL = url
	}
	return nil
}

func (in *Ingester) readParallel(ctx context.Context, batch []pending) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(in.workers)
	for i := range batch {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			url, err := in.encode(batch[i].file)
			if err != nil {
				return err
			}
			batch[i].record.URL = url
			return nil
		})
	}
	return g.Wait()
}

func (in *Ingester) encode(f File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("%w %s: %v", ErrReadFailed, f.Name(), err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("%w %s: %v", ErrReadFailed, f.Name(), err)
	}
	return dataurl.New(b, in.mime).String(), nil
}

// multipartFile adapts a multipart upload part.
type multipartFile struct {
	fh *multipart.FileHeader
}

func (m multipartFile) Name() string                 { return m.fh.Filename }
func (m multipartFile) Size() int64                  { return m.fh.Size }
func (m multipartFile) ContentType() string          { return m.fh.Header.Get("Content-Type") }
func (m multipartFile) Open() (io.ReadCloser, error) { return m.fh.Open() }

// FromMultipart wraps multipart file headers, keeping their order.
func FromMultipart(fhs []*multipart.FileHeader) []File {
	out := make([]File, 0, len(fhs))
	for _, fh := range fhs {
		out = append(out, multipartFile{fh: fh})
	}
	return out
}
