package productapi_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miguelzg1911/product-crud-client/internal/model"
	"github.com/miguelzg1911/product-crud-client/internal/obs"
	"github.com/miguelzg1911/product-crud-client/internal/productapi"
)

type recorded struct {
	Method      string
	Path        string
	ContentType string
	RequestID   string
	Body        string
}

type fakeAPI struct {
	mu       sync.Mutex
	requests []recorded
	status   int
	body     string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recorded{
		Method:      r.Method,
		Path:        r.URL.Path,
		ContentType: r.Header.Get("Content-Type"),
		RequestID:   r.Header.Get(obs.RequestIDHeader),
		Body:        string(b),
	})
	status, body := f.status, f.body
	f.mu.Unlock()
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (f *fakeAPI) calls() []recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recorded(nil), f.requests...)
}

func newClient(t *testing.T, f *fakeAPI) *productapi.Client {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	c, err := productapi.New(srv.URL+"/products/", productapi.WithTimeout(2*time.Second))
	require.NoError(t, err)
	return c
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := productapi.New("  ")
	require.Error(t, err)
	_, err = productapi.New("/products")
	require.Error(t, err)
}

func TestCreatePostsOnceWithJSONBody(t *testing.T) {
	f := &fakeAPI{status: http.StatusCreated, body: `{"id":7,"name":"Pen","price":1.5}`}
	c := newClient(t, f)
	in, err := model.ParseInput("Pen", "1.5")
	require.NoError(t, err)

	p, err := c.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, model.ID("7"), p.ID)
	assert.Equal(t, "Pen", p.Name)

	calls := f.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.Equal(t, "/products", calls[0].Path)
	assert.Equal(t, "application/json", calls[0].ContentType)
	assert.Equal(t, `{"name":"Pen","price":1.5}`, calls[0].Body)
	assert.NotEmpty(t, calls[0].RequestID)
}

func TestCreateUsesContextRequestID(t *testing.T) {
	f := &fakeAPI{body: `{"id":"x","name":"Pen","price":1}`}
	c := newClient(t, f)
	ctx := obs.ContextWithRequestID(context.Background(), "req-42")
	_, err := c.Create(ctx, model.ProductInput{Name: "Pen"})
	require.NoError(t, err)
	assert.Equal(t, "req-42", f.calls()[0].RequestID)
}

func TestListDecodesProducts(t *testing.T) {
	f := &fakeAPI{body: `[{"id":1,"name":"Pen","price":1.5},{"id":"b2","name":"Ink","price":3}]`}
	c := newClient(t, f)
	products, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, model.ID("1"), products[0].ID)
	assert.Equal(t, model.ID("b2"), products[1].ID)
	assert.Equal(t, "3", products[1].Price.String())

	calls := f.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodGet, calls[0].Method)
	assert.Empty(t, calls[0].Body)
}

func TestListEmpty(t *testing.T) {
	c := newClient(t, &fakeAPI{body: `[]`})
	products, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestListRejectsNonJSON(t *testing.T) {
	c := newClient(t, &fakeAPI{body: `<html>oops</html>`})
	_, err := c.List(context.Background())
	var derr *productapi.DecodeError
	require.ErrorAs(t, err, &derr)
}

func TestListRejectsProductsWithoutID(t *testing.T) {
	c := newClient(t, &fakeAPI{body: `[{"name":"Pen","price":1}]`})
	_, err := c.List(context.Background())
	var derr *productapi.DecodeError
	require.ErrorAs(t, err, &derr)
	assert.ErrorIs(t, err, model.ErrMissingID)
	assert.NotErrorIs(t, err, model.ErrInvalidInput)
}

func TestCreateRejectsEchoWithoutID(t *testing.T) {
	f := &fakeAPI{status: http.StatusCreated, body: `{"name":"Pen","price":1.5}`}
	c := newClient(t, f)
	in, err := model.ParseInput("Pen", "1.5")
	require.NoError(t, err)
	_, err = c.Create(context.Background(), in)
	var derr *productapi.DecodeError
	require.ErrorAs(t, err, &derr)
	assert.NotErrorIs(t, err, model.ErrInvalidInput)
	assert.Len(t, f.calls(), 1)
}

func TestListServerErrorIsHTTPError(t *testing.T) {
	c := newClient(t, &fakeAPI{status: http.StatusInternalServerError, body: `{"error":"boom"}`})
	_, err := c.List(context.Background())
	var herr *productapi.HTTPError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, http.StatusInternalServerError, herr.StatusCode)
	assert.False(t, errors.Is(err, productapi.ErrNotFound))
}

func TestUpdatePutsToResourceURL(t *testing.T) {
	f := &fakeAPI{body: `{"id":7,"name":"Pencil","price":2}`}
	c := newClient(t, f)
	in, err := model.ParseInput("Pencil", "2")
	require.NoError(t, err)
	p, err := c.Update(context.Background(), "7", in)
	require.NoError(t, err)
	assert.Equal(t, "Pencil", p.Name)

	calls := f.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPut, calls[0].Method)
	assert.Equal(t, "/products/7", calls[0].Path)
	assert.Equal(t, `{"name":"Pencil","price":2}`, calls[0].Body)
}

func TestUpdateMissingIsNotFound(t *testing.T) {
	c := newClient(t, &fakeAPI{status: http.StatusNotFound, body: `{}`})
	_, err := c.Update(context.Background(), "404", model.ProductInput{Name: "x"})
	require.ErrorIs(t, err, productapi.ErrNotFound)
	var herr *productapi.HTTPError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, http.StatusNotFound, herr.StatusCode)
}

func TestDeleteAcceptsEmptyBody(t *testing.T) {
	f := &fakeAPI{status: http.StatusNoContent}
	c := newClient(t, f)
	require.NoError(t, c.Delete(context.Background(), "7"))
	calls := f.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodDelete, calls[0].Method)
	assert.Equal(t, "/products/7", calls[0].Path)
}

func TestDeleteMissingIsNotFound(t *testing.T) {
	c := newClient(t, &fakeAPI{status: http.StatusNotFound})
	err := c.Delete(context.Background(), "7")
	require.ErrorIs(t, err, productapi.ErrNotFound)
}

func TestTransportFailureIsNotHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	c, err := productapi.New(url + "/products")
	require.NoError(t, err)

	err = c.Delete(context.Background(), "1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, productapi.ErrNotFound))
	var herr *productapi.HTTPError
	assert.False(t, errors.As(err, &herr))
}

func TestResourceURLEscapesID(t *testing.T) {
	c, err := productapi.New("http://localhost:3000/products")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/products/a%2Fb", c.ResourceURL("a/b"))
	assert.Equal(t, "http://localhost:3000/products", c.CollectionURL())
}
