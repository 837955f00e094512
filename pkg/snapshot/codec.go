package snapshot

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/amplistack/amplistack/pkg/errors"
)

// MaxDecodedBytes bounds the JSON a share URL may expand to.
const MaxDecodedBytes = 4 << 20

// EncodeURL returns the URL-safe compact form of s: JSON, gzip, then
// base64url without padding.
func EncodeURL(s *Snapshot) (string, error) {
	data, err := Marshal(s)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return "", fmt.Errorf("compress snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("compress snapshot: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeURL parses a value produced by [EncodeURL]. Padded input is
// accepted, and a payload that is not gzip-compressed is read as plain
// JSON.
func DecodeURL(encoded string) (*Snapshot, error) {
	encoded = strings.TrimRight(strings.TrimSpace(encoded), "=")
	if encoded == "" {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "empty snapshot")
	}
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode snapshot")
	}
	data, err := inflate(raw)
	if err != nil {
		return nil, err
	}
	s, err := Unmarshal(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode snapshot")
	}
	return s, nil
}

// inflate returns the JSON inside raw: gunzipped when raw is a gzip stream,
// raw itself otherwise. The output is capped at [MaxDecodedBytes].
func inflate(raw []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return raw, nil
	}
	defer zr.Close()
	data, err := io.ReadAll(io.LimitReader(zr, MaxDecodedBytes+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decompress snapshot")
	}
	if len(data) > MaxDecodedBytes {
		return nil, errors.New(errors.ErrCodeInvalidInput, "snapshot expands beyond %d bytes", MaxDecodedBytes)
	}
	return data, nil
}

// ShareURL returns base with s encoded into the [URLParam] query
// parameter. Other query parameters of base are kept.
func ShareURL(base string, s *Snapshot) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "parse base url")
	}
	encoded, err := EncodeURL(s)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set(URLParam, encoded)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FromURL extracts and decodes the snapshot carried by a share URL.
func FromURL(raw string) (*Snapshot, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse url")
	}
	v := u.Query().Get(URLParam)
	if v == "" {
		return nil, errors.New(errors.ErrCodeNotFound, "url has no %q parameter", URLParam)
	}
	return DecodeURL(v)
}
