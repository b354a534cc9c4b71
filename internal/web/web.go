// Package web serves the browser front-end: a single form page whose buttons
// submit an action that is dispatched through crud, after which the page is
// rendered again with a status message and, when relevant, the product list.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/miguelzg1911/product-crud-client/internal/crud"
	httpapi "github.com/miguelzg1911/product-crud-client/internal/http"
	"github.com/miguelzg1911/product-crud-client/internal/model"
	"github.com/miguelzg1911/product-crud-client/internal/obs"
)

//go:embed templates/index.html
var templatesFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

const maxFormBytes = 64 << 10

// actions maps the submitted button value to an intent.
var actions = map[string]crud.Intent{
	"add":    crud.IntentCreate,
	"update": crud.IntentUpdate,
	"show":   crud.IntentList,
	"delete": crud.IntentDelete,
}

type page struct {
	Message     string
	MessageKind string
	Products    []model.Product
	ListMessage string

	Name     string
	Price    string
	UpdateID string
	DeleteID string
}

// Server renders the product form.
type Server struct {
	d *crud.Dispatcher
}

func New(d *crud.Dispatcher) *Server {
	return &Server{d: d}
}

// Routes returns the front-end handler with request-id and access-log middleware.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.indexHandler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return httpapi.WithRequestID(httpapi.WithLogging(mux))
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		render(w, http.StatusOK, page{})
	case http.MethodPost:
		s.submit(w, r)
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		render(w, http.StatusBadRequest, page{Message: "Invalid form submission.", MessageKind: kindError})
		return
	}
	form := page{
		Name:     r.PostForm.Get("name"),
		Price:    r.PostForm.Get("price"),
		UpdateID: r.PostForm.Get("updateId"),
		DeleteID: r.PostForm.Get("idToDelete"),
	}
	intent, ok := actions[r.PostForm.Get("action")]
	if !ok {
		form.Message, form.MessageKind = "Unknown action.", kindError
		render(w, http.StatusBadRequest, form)
		return
	}

	in := inputFor(intent, form)
	out, err := s.d.Dispatch(r.Context(), intent, in)
	if err != nil {
		obs.Logger.Info("operation_failed",
			"intent", string(intent),
			"request_id", obs.RequestIDFromContext(r.Context()),
			"error", err,
		)
	}
	p := present(intent, in, out, err)
	if isValidation(err) {
		// Inputs are kept so the user can correct them; nothing was sent.
		p.Name, p.Price, p.UpdateID, p.DeleteID = form.Name, form.Price, form.UpdateID, form.DeleteID
		render(w, http.StatusOK, p)
		return
	}
	if crud.Mutates(intent) {
		s.refresh(r, &p)
	}
	render(w, http.StatusOK, p)
}

// refresh re-fetches the collection so the page reflects the remote state.
func (s *Server) refresh(r *http.Request, p *page) {
	out, err := s.d.Dispatch(r.Context(), crud.IntentList, crud.Input{})
	if err != nil {
		obs.Logger.Warn("refresh_failed",
			"request_id", obs.RequestIDFromContext(r.Context()),
			"error", err,
		)
		p.ListMessage = msgListFailed
		return
	}
	setProducts(p, out.Products)
}

func inputFor(intent crud.Intent, form page) crud.Input {
	switch intent {
	case crud.IntentCreate:
		return crud.Input{Name: form.Name, Price: form.Price}
	case crud.IntentUpdate:
		return crud.Input{ID: form.UpdateID, Name: form.Name, Price: form.Price}
	case crud.IntentDelete:
		return crud.Input{ID: form.DeleteID}
	}
	return crud.Input{}
}

func render(w http.ResponseWriter, status int, p page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTmpl.Execute(w, p); err != nil {
		obs.Logger.Error("render_failed", "error", err)
	}
}
