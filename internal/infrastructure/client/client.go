package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/domain"
)

// Client base REST para los servicios remotos del backend (catálogo, pedidos,
// transacciones). Usa net/http de la stdlib; no requiere librerías de terceros.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// New construye el cliente base. timeout <= 0 usa 15 s.
func New(baseURL, apiToken string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiToken:   apiToken,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// errorBody forma estándar de los errores del backend.
type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// do ejecuta la petición JSON y decodifica la respuesta en out (out nil la
// descarta). Mapeo de errores:
//   - fallo de transporte → domain.ErrNetwork (mensaje genérico al usuario);
//   - 404 → domain.ErrNotFound;
//   - resto de no-2xx → domain.RejectionError con el mensaje del servidor tal
//     cual cuando viene, vacío si no (el caller muestra el genérico).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("serializar payload %s %s: %w", method, path, err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return fmt.Errorf("crear request %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // max 1 MB
	if err != nil {
		return fmt.Errorf("%w: leer respuesta de %s %s: %v", domain.ErrNetwork, method, path, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb) // mejor esfuerzo: sin mensaje queda el genérico
		return &domain.RejectionError{Message: eb.Message}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decodificar respuesta de %s %s: %w", method, path, err)
	}
	return nil
}
