// Package crud maps a named user intent to the single products API call that
// serves it. Both the console and the browser front-end dispatch through here.
package crud

import (
	"context"
	"errors"
	"fmt"

	"github.com/miguelzg1911/product-crud-client/internal/model"
)

// Intent names one user action.
type Intent string

const (
	IntentList   Intent = "list"
	IntentCreate Intent = "create"
	IntentUpdate Intent = "update"
	IntentDelete Intent = "delete"
)

// ErrUnknownIntent is returned by Dispatch for an intent with no handler.
var ErrUnknownIntent = errors.New("crud: unknown intent")

// API is the transport the dispatcher drives. *productapi.Client satisfies it.
type API interface {
	List(ctx context.Context) ([]model.Product, error)
	Create(ctx context.Context, in model.ProductInput) (model.Product, error)
	Update(ctx context.Context, id model.ID, in model.ProductInput) (model.Product, error)
	Delete(ctx context.Context, id model.ID) error
}

// Input is the raw text collected by a front-end. Fields an intent does not
// use are ignored.
type Input struct {
	ID    string
	Name  string
	Price string
}

// Outcome is the successful result of one dispatched intent.
type Outcome struct {
	Intent   Intent
	ID       model.ID
	Product  model.Product
	Products []model.Product
}

// Handler serves one intent.
type Handler func(ctx context.Context, in Input) (Outcome, error)

// Dispatcher routes intents to handlers.
type Dispatcher struct {
	api      API
	handlers map[Intent]Handler
}

// New builds the dispatch table over api.
func New(api API) *Dispatcher {
	d := &Dispatcher{api: api}
	d.handlers = map[Intent]Handler{
		IntentList:   d.list,
		IntentCreate: d.create,
		IntentUpdate: d.update,
		IntentDelete: d.delete,
	}
	return d
}

// Dispatch validates in for intent and, if it is valid, issues exactly one API call.
// Invalid input returns an error matching model.ErrInvalidInput without touching the API.
func (d *Dispatcher) Dispatch(ctx context.Context, intent Intent, in Input) (Outcome, error) {
	h, ok := d.handlers[intent]
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownIntent, intent)
	}
	out, err := h(ctx, in)
	out.Intent = intent
	return out, err
}

// Mutates reports whether intent changes the remote collection.
func Mutates(intent Intent) bool {
	switch intent {
	case IntentCreate, IntentUpdate, IntentDelete:
		return true
	}
	return false
}

func (d *Dispatcher) list(ctx context.Context, _ Input) (Outcome, error) {
	products, err := d.api.List(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("list products: %w", err)
	}
	return Outcome{Products: products}, nil
}

func (d *Dispatcher) create(ctx context.Context, in Input) (Outcome, error) {
	pin, err := model.ParseInput(in.Name, in.Price)
	if err != nil {
		return Outcome{}, err
	}
	p, err := d.api.Create(ctx, pin)
	if err != nil {
		return Outcome{}, fmt.Errorf("create product: %w", err)
	}
	return Outcome{ID: p.ID, Product: p}, nil
}

func (d *Dispatcher) update(ctx context.Context, in Input) (Outcome, error) {
	id, idErr := model.ParseID(in.ID)
	pin, inErr := model.ParseInput(in.Name, in.Price)
	if err := errors.Join(idErr, inErr); err != nil {
		return Outcome{ID: id}, err
	}
	p, err := d.api.Update(ctx, id, pin)
	if err != nil {
		return Outcome{ID: id}, fmt.Errorf("update product %s: %w", id, err)
	}
	return Outcome{ID: id, Product: p}, nil
}

func (d *Dispatcher) delete(ctx context.Context, in Input) (Outcome, error) {
	id, err := model.ParseID(in.ID)
	if err != nil {
		return Outcome{}, err
	}
	if err := d.api.Delete(ctx, id); err != nil {
		return Outcome{ID: id}, fmt.Errorf("delete product %s: %w", id, err)
	}
	return Outcome{ID: id}, nil
}
