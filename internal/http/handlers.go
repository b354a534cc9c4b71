package httpapi

import (
	"expvar"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/miguelzg1911/product-crud-client/internal/config"
	httpopenapi "github.com/miguelzg1911/product-crud-client/internal/http/openapi"
	"github.com/miguelzg1911/product-crud-client/internal/model"
	"github.com/miguelzg1911/product-crud-client/internal/obs"
	"github.com/miguelzg1911/product-crud-client/internal/store"
)

const maxRequestBody = 1 << 20

var (
	productsCreated = expvar.NewInt("products_created")
	productsUpdated = expvar.NewInt("products_updated")
	productsDeleted = expvar.NewInt("products_deleted")
)

// App serves the in-memory products collection.
type App struct {
	Cfg     config.Config
	Store   *store.Store
	Latency time.Duration
	started time.Time
}

// productBody is the accepted create/update payload.
type productBody struct {
	Name  string       `json:"name"`
	Price *model.Price `json:"price"`
}

func NewApp(cfg config.Config, st *store.Store) *App {
	return &App{Cfg: cfg, Store: st, started: time.Now()}
}

func (a *App) collectionHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, a.Store.List())
	case http.MethodPost:
		in, ok := decodeInput(w, r)
		if !ok {
			return
		}
		p := a.Store.Create(in)
		productsCreated.Add(1)
		obs.Logger.Info("product_created",
			"request_id", obs.RequestIDFromContext(r.Context()),
			"id", p.ID.String(),
			"name", p.Name,
			"price", p.Price.String(),
		)
		writeJSON(w, http.StatusCreated, p)
	default:
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
	}
}

func (a *App) itemHandler(w http.ResponseWriter, r *http.Request) {
	prefix := "/products/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		WriteJSONError(w, http.StatusNotFound, "not_found", "")
		return
	}
	id := strings.TrimPrefix(r.URL.Path, prefix)
	if id == "" {
		a.collectionHandler(w, r)
		return
	}
	if strings.Contains(id, "/") {
		WriteJSONError(w, http.StatusNotFound, "not_found", "")
		return
	}
	pid := model.ID(id)

	switch r.Method {
	case http.MethodGet:
		p, ok := a.Store.Get(pid)
		if !ok {
			WriteJSONError(w, http.StatusNotFound, "not_found", "")
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodPut:
		in, ok := decodeInput(w, r)
		if !ok {
			return
		}
		p, ok := a.Store.Replace(pid, in)
		if !ok {
			WriteJSONError(w, http.StatusNotFound, "not_found", "")
			return
		}
		productsUpdated.Add(1)
		obs.Logger.Info("product_updated",
			"request_id", obs.RequestIDFromContext(r.Context()),
			"id", p.ID.String(),
		)
		writeJSON(w, http.StatusOK, p)
	case http.MethodDelete:
		p, ok := a.Store.Delete(pid)
		if !ok {
			WriteJSONError(w, http.StatusNotFound, "not_found", "")
			return
		}
		productsDeleted.Add(1)
		obs.Logger.Info("product_deleted",
			"request_id", obs.RequestIDFromContext(r.Context()),
			"id", p.ID.String(),
		)
		writeJSON(w, http.StatusOK, p)
	default:
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
	}
}

func decodeInput(w http.ResponseWriter, r *http.Request) (model.ProductInput, bool) {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		WriteJSONError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "expected application/json")
		return model.ProductInput{}, false
	}
	var b productBody
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&b); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return model.ProductInput{}, false
	}
	name := strings.TrimSpace(b.Name)
	if name == "" {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "name is required")
		return model.ProductInput{}, false
	}
	if b.Price == nil {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "price is required")
		return model.ProductInput{}, false
	}
	if b.Price.IsNegative() {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "price must be >= 0")
		return model.ProductInput{}, false
	}
	return model.ProductInput{Name: name, Price: *b.Price}, true
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) metricsHandler(w http.ResponseWriter, r *http.Request) {
	m := map[string]any{
		"product_count":    a.Store.Len(),
		"products_created": productsCreated.Value(),
		"products_updated": productsUpdated.Value(),
		"products_deleted": productsDeleted.Value(),
		"uptime_sec":       time.Since(a.started).Seconds(),
	}
	writeJSON(w, http.StatusOK, m)
}

func (a *App) openapiHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(httpopenapi.YAML)
}

func (a *App) docsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	html := `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Products Sandbox API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui'
      });
    </script>
  </body>
</html>`
	_, _ = w.Write([]byte(html))
}
