package mailgun

import (
	"bytes"
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"path"
	"strings"

	"github.com/Abraxas-365/mailgun/pkg/fsx"
	"github.com/Abraxas-365/mailgun/pkg/fsx/fsxlocal"
)

// FormContentType is the content type of bodies without attachments.
const FormContentType = "application/x-www-form-urlencoded"

// FilePart describes one attachment written into a multipart body.
type FilePart struct {
	Field       string
	Path        string
	Filename    string
	ContentType string
	Size        int64
}

// Body is an encoded request body.
type Body struct {
	// ContentType is the exact Content-Type header for the request, including
	// the multipart boundary when there is one.
	ContentType string
	Params      []Param
	Files       []FilePart
	data        []byte
}

// Reader returns a fresh reader over the encoded bytes.
func (b *Body) Reader() io.Reader { return bytes.NewReader(b.data) }

// Bytes returns the encoded bytes.
func (b *Body) Bytes() []byte { return b.data }

// Len returns the body length in bytes.
func (b *Body) Len() int64 { return int64(len(b.data)) }

// IsMultipart reports whether the body is a multipart form.
func (b *Body) IsMultipart() bool { return b.ContentType != FormContentType }

// Encoder turns a Message into a request body, reading attachments through files.
type Encoder struct {
	files fsx.FileReader
}

// NewEncoder creates an Encoder. A nil files reads attachment paths from local disk.
func NewEncoder(files fsx.FileReader) *Encoder {
	if files == nil {
		files, _ = fsxlocal.NewLocalFileSystem("")
	}
	return &Encoder{files: files}
}

// Encode validates m and encodes it: URL-encoded when it has no attachments,
// multipart otherwise.
func (e *Encoder) Encode(ctx context.Context, m *Message) (*Body, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	params, err := m.WireParams()
	if err != nil {
		return nil, err
	}

	if !m.HasAttachments() {
		return &Body{
			ContentType: FormContentType,
			Params:      params,
			data:        []byte(EncodeForm(params)),
		}, nil
	}
	return e.encodeMultipart(ctx, m, params)
}

// EncodeForm percent-encodes params in the given order.
func EncodeForm(params []Param) string {
	var sb strings.Builder
	for i, p := range params {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.Name))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
	}
	return sb.String()
}

func (e *Encoder) encodeMultipart(ctx context.Context, m *Message, params []Param) (*Body, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, p := range params {
		if err := w.WriteField(p.Name, p.Value); err != nil {
			return nil, mailgunErrors.NewWithCause(ErrBodyConstruction, err).WithDetail("field", p.Name)
		}
	}

	files := make([]FilePart, 0, len(m.Attachments)+len(m.Inline))
	for _, list := range []AttachmentList{m.Attachments, m.Inline} {
		for _, a := range list {
			part, err := e.writeFile(ctx, w, a)
			if err != nil {
				return nil, mailgunErrors.NewWithCause(ErrBodyConstruction, err).
					WithDetail("field", a.Name).
					WithDetail("path", a.Path)
			}
			files = append(files, part)
		}
	}

	if err := w.Close(); err != nil {
		return nil, mailgunErrors.NewWithCause(ErrBodyConstruction, err)
	}

	return &Body{
		ContentType: w.FormDataContentType(),
		Params:      params,
		Files:       files,
		data:        buf.Bytes(),
	}, nil
}

func (e *Encoder) writeFile(ctx context.Context, w *multipart.Writer, a Attachment) (FilePart, error) {
	info, err := e.files.Stat(ctx, a.Path)
	if err != nil {
		return FilePart{}, err
	}
	contentType := info.ContentType
	if contentType == "" {
		contentType = fsx.DefaultContentType
	}

	rc, err := e.files.ReadFileStream(ctx, a.Path)
	if err != nil {
		return FilePart{}, err
	}
	defer rc.Close()

	filename := path.Base(strings.ReplaceAll(a.Path, "\\", "/"))
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
		"name":     a.Name,
		"filename": filename,
	}))
	h.Set("Content-Type", contentType)

	pw, err := w.CreatePart(h)
	if err != nil {
		return FilePart{}, err
	}
	n, err := io.Copy(pw, rc)
	if err != nil {
		return FilePart{}, err
	}

	return FilePart{
		Field:       a.Name,
		Path:        a.Path,
		Filename:    filename,
		ContentType: contentType,
		Size:        n,
	}, nil
}
