package console

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/miguelzg1911/product-crud-client/internal/crud"
	"github.com/miguelzg1911/product-crud-client/internal/model"
	"github.com/miguelzg1911/product-crud-client/internal/obs"
	"github.com/miguelzg1911/product-crud-client/internal/productapi"
)

type messages struct {
	invalid  string
	failed   string
	notFound string // formatted with the product id
}

var operationMessages = map[crud.Intent]messages{
	crud.IntentList: {
		failed: "Error listing products.",
	},
	crud.IntentCreate: {
		invalid: "Invalid data. Please enter a valid name and price.",
		failed:  "Error creating the product.",
	},
	crud.IntentUpdate: {
		invalid:  "Invalid data. Please check the ID, name, and price.",
		failed:   "Error updating the product.",
		notFound: "Product with ID %s not found or could not be updated.",
	},
	crud.IntentDelete: {
		invalid:  "Invalid ID.",
		failed:   "Error deleting the product.",
		notFound: "Product with ID %s not found or could not be deleted.",
	},
}

func (c *Console) present(intent crud.Intent, out crud.Outcome, err error) {
	if err != nil {
		c.presentError(intent, out, err)
		return
	}
	switch intent {
	case crud.IntentList:
		c.printProducts(out.Products)
	case crud.IntentCreate:
		fmt.Fprintf(c.out, "\nProduct \"%s\" created successfully (ID: %s).\n", out.Product.Name, out.ID)
	case crud.IntentUpdate:
		fmt.Fprintf(c.out, "\nProduct updated: %s - $%s\n", out.Product.Name, out.Product.Price.String())
	case crud.IntentDelete:
		fmt.Fprintf(c.out, "\nProduct with ID %s deleted successfully.\n", out.ID)
	}
}

func (c *Console) presentError(intent crud.Intent, out crud.Outcome, err error) {
	msgs := operationMessages[intent]
	switch {
	case errors.Is(err, model.ErrInvalidInput) && msgs.invalid != "":
		fmt.Fprintf(c.out, "\n%s\n", msgs.invalid)
	case errors.Is(err, productapi.ErrNotFound) && msgs.notFound != "":
		fmt.Fprintf(c.out, "\n"+msgs.notFound+"\n", out.ID)
	default:
		obs.Logger.Warn("operation_failed", "intent", string(intent), "error", err)
		fmt.Fprintf(c.out, "\n%s\n", msgs.failed)
	}
}

func (c *Console) printProducts(products []model.Product) {
	if len(products) == 0 {
		c.println("\nNo products found.")
		return
	}
	c.println("\nProduct list:")
	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Name, p.Price.String())
	}
	_ = tw.Flush()
}
