// Package envelope reads and writes S-DES encrypted streams.  Every byte of
// the (optionally compressed) input is encrypted as its own block and the
// result is written as raw binary, ASCII85 text or a PEM block, preceded by
// enough header information to decrypt it again.
package envelope

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bgallie/filters/ascii85"
	"github.com/bgallie/filters/flate"
	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"

	"github.com/bgallie/sdes/cryptors"
)

const (
	APILevel = 1
	PemType  = "SDES Encrypted Message"

	headerPrefix = "+SDES"
)

var (
	ErrAPILevel      = errors.New("envelope: api level mismatch")
	ErrBadHeader     = errors.New("envelope: malformed header")
	ErrBadFileName   = errors.New("envelope: file name cannot be stored")
	ErrMalformed     = errors.New("envelope: malformed message")
	ErrUnknownFormat = errors.New("envelope: unknown format")
)

type Format int

const (
	Binary Format = iota
	ASCII85
	PEM
)

func (f Format) String() string {
	switch f {
	case Binary:
		return "binary"
	case ASCII85:
		return "ascii85"
	case PEM:
		return "pem"
	default:
		return "unknown"
	}
}

// Options control how Seal writes its output.
type Options struct {
	Format   Format
	Compress bool
	FileName string // stored in the header so decryption can restore it
}

// Header is the information recorded ahead of the encrypted data.
type Header struct {
	APILevel   int
	FileName   string
	Format     Format
	Compressed bool
}

// Seal encrypts src with c and writes the envelope to dst.
func Seal(ctx context.Context, dst io.Writer, src io.Reader, c cryptors.Crypter, opts Options) error {
	fileName := ""
	if opts.FileName != "" && opts.FileName != "-" {
		fileName = filepath.Base(opts.FileName)
		if strings.ContainsAny(fileName, "|\r\n") {
			return fmt.Errorf("%w: %q", ErrBadFileName, fileName)
		}
	}

	var in io.Reader = src
	if opts.Compress {
		in = flate.ToFlate(src)
	}
	encOut := cipherHelper(ctx, in, c, true)
	defer encOut.Close()

	var err error
	switch opts.Format {
	case Binary, ASCII85:
		hdr := Header{APILevel: APILevel, FileName: fileName, Format: opts.Format, Compressed: opts.Compress}
		if _, err = io.WriteString(dst, hdr.line()); err != nil {
			return err
		}
		if opts.Format == Binary {
			_, err = io.Copy(dst, encOut)
		} else {
			_, err = io.Copy(dst, lines.SplitToLines(ascii85.ToASCII85(encOut)))
		}
	case PEM:
		var blck pem.Block
		blck.Type = PemType
		blck.Headers = make(map[string]string)
		blck.Headers["ApiLevel"] = strconv.Itoa(APILevel)
		if fileName != "" {
			blck.Headers["FileName"] = fileName
		}
		blck.Headers["Compression"] = strconv.FormatBool(opts.Compress)
		// the pem filter exits the process when its input fails, so it
		// only ever sees a clean end of data.
		src := &errLatch{r: encOut}
		pemRdr := pem.ToPem(src, blck)
		if _, err = io.Copy(dst, pemRdr); err != nil {
			encOut.Close()
			_, _ = io.Copy(io.Discard, pemRdr)
			return err
		}
		err = src.err
	default:
		return fmt.Errorf("%w: %d", ErrUnknownFormat, opts.Format)
	}
	return err
}

// Open reads an envelope written by Seal from src, decrypts it with c and
// writes the plaintext to dst.  The format is detected from the input.
func Open(ctx context.Context, dst io.Writer, src io.Reader, c cryptors.Crypter) (Header, error) {
	hdr, rdr, err := NewReader(ctx, src, c)
	if err != nil {
		return hdr, err
	}
	defer rdr.Close()
	_, err = io.Copy(dst, rdr)
	return hdr, err
}

// NewReader reads the envelope header from src and returns it together with
// a reader that yields the decrypted data.  The reader must be closed.
func NewReader(ctx context.Context, src io.Reader, c cryptors.Crypter) (Header, io.ReadCloser, error) {
	var hdr Header
	var aRdr io.Reader
	var closers []io.Closer

	bRdr := bufio.NewReader(src)
	b, err := bRdr.Peek(5)
	if err != nil && err != io.EOF {
		return hdr, nil, err
	}
	if string(b) == "-----" {
		data, err := io.ReadAll(bRdr)
		if err != nil {
			return hdr, nil, err
		}
		if err = checkPem(data); err != nil {
			return hdr, nil, err
		}
		pRdr, blck := pem.FromPem(bytes.NewReader(data))
		dRdr := drainCloser{pRdr}
		if hdr, err = pemHeader(blck); err != nil {
			dRdr.Close()
			return hdr, nil, err
		}
		closers = append(closers, dRdr)
		aRdr = pRdr
	} else {
		line, err := bRdr.ReadString('\n')
		if err != nil {
			return hdr, nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
		}
		if hdr, err = parseHeader(line); err != nil {
			return hdr, nil, err
		}
		if hdr.Format == ASCII85 {
			aRdr = ascii85.FromASCII85(lines.CombineLines(bRdr))
		} else {
			aRdr = bRdr
		}
	}

	decOut := cipherHelper(ctx, aRdr, c, false)
	closers = append([]io.Closer{decOut}, closers...)
	rdr := &readCloser{Reader: decOut, closers: closers}
	if hdr.Compressed {
		fRdr := flate.FromFlate(decOut)
		rdr.Reader = fRdr
		rdr.closers = append([]io.Closer{fRdr}, closers...)
	}
	return hdr, rdr, nil
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var err error
	for _, c := range r.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// drainCloser reads the rest of a pem filter's output before closing it.
// The filter exits the process if its reader goes away early; the input is
// already in memory so draining is bounded.
type drainCloser struct {
	r *io.PipeReader
}

func (d drainCloser) Close() error {
	_, _ = io.Copy(io.Discard, d.r)
	return d.r.Close()
}

// errLatch reports any read error as io.EOF and keeps it in err.
type errLatch struct {
	r   io.Reader
	err error
}

func (l *errLatch) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	if err != nil && err != io.EOF {
		l.err = err
		err = io.EOF
	}
	return n, err
}

// checkPem makes sure data holds one complete SDES PEM message whose body
// decodes.  Header lines come first and contain ": ".
func checkPem(data []byte) error {
	lns := strings.Split(strings.TrimRight(string(data), "\r\n"), "\n")
	if strings.TrimSpace(lns[0]) != "-----BEGIN "+PemType+"-----" {
		return fmt.Errorf("%w: pem type %q", ErrBadHeader, strings.TrimSpace(lns[0]))
	}
	if len(lns) < 2 || strings.TrimSpace(lns[len(lns)-1]) != "-----END "+PemType+"-----" {
		return fmt.Errorf("%w: missing pem END line", ErrMalformed)
	}
	var body strings.Builder
	inHeaders := true
	for _, l := range lns[1 : len(lns)-1] {
		if inHeaders && strings.Contains(l, ": ") {
			continue
		}
		inHeaders = false
		body.WriteString(strings.TrimSpace(l))
	}
	if _, err := base64.StdEncoding.DecodeString(body.String()); err != nil {
		return fmt.Errorf("%w: pem body: %v", ErrMalformed, err)
	}
	return nil
}

func (h Header) line() string {
	kind := "b"
	if h.Format == ASCII85 {
		kind = "a"
	}
	return fmt.Sprintf("%s|%d|%s|%s|%t\n", headerPrefix, h.APILevel, h.FileName, kind, h.Compressed)
}

func parseHeader(line string) (Header, error) {
	var hdr Header
	fields := strings.Split(strings.TrimSuffix(line, "\n"), "|")
	if len(fields) != 5 || fields[0] != headerPrefix {
		return hdr, fmt.Errorf("%w: %q", ErrBadHeader, line)
	}
	apiLevel, err := strconv.Atoi(fields[1])
	if err != nil {
		return hdr, fmt.Errorf("%w: api level %q", ErrBadHeader, fields[1])
	}
	if apiLevel != APILevel {
		return hdr, fmt.Errorf("%w: file %d, program %d", ErrAPILevel, apiLevel, APILevel)
	}
	hdr.APILevel = apiLevel
	hdr.FileName = fields[2]
	switch fields[3] {
	case "a":
		hdr.Format = ASCII85
	case "b":
		hdr.Format = Binary
	default:
		return hdr, fmt.Errorf("%w: format %q", ErrBadHeader, fields[3])
	}
	if hdr.Compressed, err = strconv.ParseBool(fields[4]); err != nil {
		return hdr, fmt.Errorf("%w: compression %q", ErrBadHeader, fields[4])
	}
	return hdr, nil
}

func pemHeader(blck pem.Block) (Header, error) {
	hdr := Header{Format: PEM}
	if blck.Type != PemType {
		return hdr, fmt.Errorf("%w: pem type %q", ErrBadHeader, blck.Type)
	}
	fal, exists := blck.Headers["ApiLevel"]
	if !exists {
		fal = "-1"
	}
	apiLevel, err := strconv.Atoi(fal)
	if err != nil {
		return hdr, fmt.Errorf("%w: api level %q", ErrBadHeader, fal)
	}
	if apiLevel != APILevel {
		return hdr, fmt.Errorf("%w: file %d, program %d", ErrAPILevel, apiLevel, APILevel)
	}
	hdr.APILevel = apiLevel
	hdr.FileName = blck.Headers["FileName"]
	if cmpr, ok := blck.Headers["Compression"]; ok {
		hdr.Compressed = cmpr == "true"
	}
	return hdr, nil
}

// cipherHelper pushes everything read from rdr through a crypter machine and
// makes the result available on the returned reader.
func cipherHelper(ctx context.Context, rdr io.Reader, c cryptors.Crypter, encrypt bool) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()
	var leftMost, rightMost chan cryptors.CypherBlock
	if encrypt {
		leftMost, rightMost = cryptors.CreateEncryptMachine(c)
	} else {
		leftMost, rightMost = cryptors.CreateDecryptMachine(c)
	}

	go func() {
		var err error
		defer func() {
			// shut the machine down by sending a zero length block.
			leftMost <- cryptors.CypherBlock{}
			<-rightMost
			rWrtr.CloseWithError(err)
		}()

		for {
			if err = ctx.Err(); err != nil {
				return
			}
			var blk cryptors.CypherBlock
			cnt, rerr := rdr.Read(blk.CypherBlock[:])
			if cnt > 0 {
				blk.Length = cnt
				leftMost <- blk
				blk = <-rightMost
				if _, err = rWrtr.Write(blk.Data()); err != nil {
					return
				}
			}
			if rerr != nil {
				if rerr != io.EOF {
					err = rerr
				}
				return
			}
		}
	}()

	return rRdr
}
