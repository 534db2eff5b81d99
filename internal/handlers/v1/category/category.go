package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/service"
	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

type Category struct {
	ID    string `json:"id" doc:"Category id used on transactions"`
	Name  string `json:"name" doc:"Display name"`
	Group string `json:"group" doc:"Category group"`
	Type  string `json:"type" doc:"income or expense"`
}

type ListCategoriesInput struct {
	Type string `query:"type" enum:"income,expense" doc:"Only categories of this type"`
}

type ListCategoriesOutput struct {
	Body struct {
		Categories []Category `json:"categories"`
	}
}

// Handler handles GET /v1/category. The catalogue is fixed, so it needs no service.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/category",
		Summary:     "List categories",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *Handler) handle(_ context.Context, input *ListCategoriesInput) (*ListCategoriesOutput, error) {
	types := []sqlconfig.TransactionType{sqlconfig.TransactionTypeIncome, sqlconfig.TransactionTypeExpense}
	if input.Type != "" {
		types = []sqlconfig.TransactionType{sqlconfig.TransactionType(input.Type)}
	}

	out := &ListCategoriesOutput{}
	out.Body.Categories = []Category{}
	for _, t := range types {
		for _, c := range service.Categories(t) {
			out.Body.Categories = append(out.Body.Categories, Category{
				ID:    c.ID,
				Name:  c.Name,
				Group: c.Group,
				Type:  string(t),
			})
		}
	}
	return out, nil
}
