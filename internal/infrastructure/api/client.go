package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/mypos-admin/internal/domain/apierror"
	"github.com/jhoicas/mypos-admin/internal/infrastructure/transport"
	"github.com/jhoicas/mypos-admin/pkg/logger"
)

// Client es el cliente tipado del backend REST. Todas las peticiones pasan
// por el AuthTransport; todos los errores que salen de aquí son
// *apierror.Error.
type Client struct {
	base string
	http *http.Client
	log  *logger.Logger
}

// New construye el cliente sobre el RoundTripper dado (normalmente un
// *transport.AuthTransport).
func New(base string, rt http.RoundTripper, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Transport: rt, Timeout: timeout},
		log:  log,
	}
}

// do ejecuta una petición JSON. protected marca la petición para el
// interceptor; in nil = sin cuerpo; out nil = descarta la respuesta.
func (c *Client) do(ctx context.Context, method, path string, protected bool, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return apierror.Network(fmt.Errorf("serializar petición: %w", err))
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+"/"+strings.TrimLeft(path, "/"), body)
	if err != nil {
		return apierror.Network(err)
	}
	if protected {
		req.Header.Set(transport.HeaderRequiresAuth, "1")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// El interceptor ya emite errores normalizados; el resto de fallas
		// de red se normalizan aquí.
		var norm *apierror.Error
		if errors.As(err, &norm) {
			return norm
		}
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return apierror.Network(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apierror.Network(err)
	}

	if resp.StatusCode >= 400 {
		return apierror.FromResponse(resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apierror.FromResponse(resp.StatusCode, nil)
	}
	return nil
}

// pagePath agrega limit/offset al path.
func pagePath(path string, limit, offset int) string {
	if limit <= 0 {
		return path
	}
	return fmt.Sprintf("%s?limit=%d&offset=%d", path, limit, offset)
}
