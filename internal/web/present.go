package web

import (
	"errors"
	"fmt"
	"strings"

	"github.com/miguelzg1911/product-crud-client/internal/crud"
	"github.com/miguelzg1911/product-crud-client/internal/model"
	"github.com/miguelzg1911/product-crud-client/internal/productapi"
)

const (
	kindSuccess = "success"
	kindError   = "error"

	msgNoProducts = "No products found."
	msgListFailed = "Error loading products."
)

func isValidation(err error) bool {
	return errors.Is(err, model.ErrInvalidInput)
}

// present turns a dispatch result into the page message.
func present(intent crud.Intent, in crud.Input, out crud.Outcome, err error) page {
	id := strings.TrimSpace(in.ID)
	var p page
	ok := func(format string, args ...any) {
		p.Message, p.MessageKind = fmt.Sprintf(format, args...), kindSuccess
	}
	fail := func(format string, args ...any) {
		p.Message, p.MessageKind = fmt.Sprintf(format, args...), kindError
	}

	switch intent {
	case crud.IntentList:
		if err != nil {
			fail(msgListFailed)
			break
		}
		setProducts(&p, out.Products)
	case crud.IntentCreate:
		switch {
		case err == nil:
			ok("Product \"%s\" added successfully.", out.Product.Name)
		case isValidation(err):
			fail("Invalid data. Please complete all fields.")
		default:
			fail("Error adding the product.")
		}
	case crud.IntentUpdate:
		switch {
		case err == nil:
			ok("Product ID %s updated successfully.", id)
		case isValidation(err):
			fail("You must enter a valid ID, name, and price to update.")
		case errors.Is(err, productapi.ErrNotFound):
			fail("Product with ID %s not found or could not be updated.", id)
		default:
			fail("Error updating product with ID %s.", id)
		}
	case crud.IntentDelete:
		switch {
		case err == nil:
			ok("Product ID %s deleted.", id)
		case isValidation(err):
			fail("You must enter a valid ID to delete.")
		case errors.Is(err, productapi.ErrNotFound):
			fail("No product found with ID %s.", id)
		default:
			fail("Error deleting product with ID %s.", id)
		}
	}
	return p
}

func setProducts(p *page, products []model.Product) {
	p.Products = products
	p.ListMessage = ""
	if len(products) == 0 {
		p.ListMessage = msgNoProducts
	}
}
