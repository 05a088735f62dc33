package dataset

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/datacat/database"
	"github.com/sahilchouksey/datacat/model"
	"github.com/sahilchouksey/datacat/schema"
	"github.com/sahilchouksey/datacat/utils/forms"
	"github.com/sahilchouksey/datacat/utils/markdown"
	"github.com/sahilchouksey/datacat/utils/middleware"
	"github.com/sahilchouksey/datacat/utils/response"
	"gorm.io/datatypes"
)

// DatasetHandler serves the catalogue pages and fragments. Every store
// call is scoped to the session identity set by the gate.
type DatasetHandler struct {
	store       database.Storage
	schema      *schema.Schema
	searchLimit int
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(store database.Storage, sch *schema.Schema, searchLimit int) *DatasetHandler {
	return &DatasetHandler{
		store:       store,
		schema:      sch,
		searchLimit: searchLimit,
	}
}

// Home renders the catalogue page shell; the result list loads itself
// through the search endpoint.
func (h *DatasetHandler) Home(c *fiber.Ctx) error {
	auth := middleware.Identity(c)
	return c.Render("index", fiber.Map{
		"Title": auth + "'s Data Catalogue: ",
		"Auth":  auth,
	}, "layouts/main")
}

// Search returns the result-list fragment for a substring query. An
// empty query returns the full scoped set in priority order.
func (h *DatasetHandler) Search(c *fiber.Ctx) error {
	auth := middleware.Identity(c)
	query := c.FormValue("query")

	limit := h.searchLimit
	if v := c.FormValue("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	datasets, err := h.store.ListDatasets(auth, query, limit)
	if err != nil {
		return err
	}

	return c.Render("partials/results", fiber.Map{
		"Datasets": datasets,
	})
}

// answersFromForm collects the schema-defined question values present in
// a submission.
func (h *DatasetHandler) answersFromForm(c *fiber.Ctx) datatypes.JSONMap {
	var answers datatypes.JSONMap
	for _, f := range h.schema.Fields {
		if v := c.FormValue(f.Name); v != "" {
			if answers == nil {
				answers = datatypes.JSONMap{}
			}
			answers[f.Name] = v
		}
	}
	return answers
}

// Create inserts a record owned by the current identity and returns the
// new item fragment plus a fresh add-input out of band.
func (h *DatasetHandler) Create(c *fiber.Ctx) error {
	auth := middleware.Identity(c)

	dataset := model.Dataset{
		Title:   c.FormValue("title"),
		Details: c.FormValue("details"),
		Owner:   auth,
		Answers: h.answersFromForm(c),
	}
	if err := h.store.CreateDataset(&dataset); err != nil {
		return err
	}

	return c.Render("partials/created", fiber.Map{
		"Dataset": dataset,
	})
}

// View renders the detail panel for one record, with details passed
// through the markdown renderer.
func (h *DatasetHandler) View(c *fiber.Ctx) error {
	auth := middleware.Identity(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.NotFoundPage(c)
	}

	dataset, err := h.store.GetDataset(auth, uint(id))
	if err != nil {
		return err
	}

	type answerView struct {
		Question string
		Value    interface{}
	}
	var answers []answerView
	for _, f := range h.schema.Fields {
		if v, ok := dataset.Answers[f.Name]; ok {
			answers = append(answers, answerView{Question: f.Question, Value: v})
		}
	}

	return c.Render("partials/dataset_detail", fiber.Map{
		"Dataset":     dataset,
		"DetailsHTML": markdown.Render(dataset.Details),
		"Answers":     answers,
	})
}

// EditForm renders the edit form pre-populated from the stored record,
// with one widget per schema question.
func (h *DatasetHandler) EditForm(c *fiber.Ctx) error {
	auth := middleware.Identity(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.NotFoundPage(c)
	}

	dataset, err := h.store.GetDataset(auth, uint(id))
	if err != nil {
		return err
	}

	fields := make([]forms.FieldView, 0, len(h.schema.Fields))
	for _, f := range h.schema.Fields {
		value := ""
		if v, ok := dataset.Answers[f.Name].(string); ok {
			value = v
		}
		fields = append(fields, forms.NewFieldView(f, value))
	}

	return c.Render("partials/edit_form", fiber.Map{
		"Dataset": dataset,
		"Fields":  fields,
	})
}

// Update overwrites a record in place from the full edit-form payload,
// stamping who last modified it. Responds with the re-rendered item and
// an out-of-band clear of the detail panel.
func (h *DatasetHandler) Update(c *fiber.Ctx) error {
	auth := middleware.Identity(c)
	id, err := strconv.Atoi(c.FormValue("id"))
	if err != nil || id <= 0 {
		return response.NotFoundPage(c)
	}

	done := c.FormValue("done")
	dataset := model.Dataset{
		ID:             uint(id),
		Title:          c.FormValue("title"),
		Details:        c.FormValue("details"),
		Done:           done == "true" || done == "on",
		Answers:        h.answersFromForm(c),
		LastModifiedBy: auth,
	}
	if err := h.store.UpdateDataset(auth, dataset); err != nil {
		return err
	}

	updated, err := h.store.GetDataset(auth, uint(id))
	if err != nil {
		return err
	}

	return c.Render("partials/updated", fiber.Map{
		"Dataset": updated,
	})
}

// Delete removes a record and clears any open detail panel for it
func (h *DatasetHandler) Delete(c *fiber.Ctx) error {
	auth := middleware.Identity(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.NotFoundPage(c)
	}

	if err := h.store.DeleteDataset(auth, uint(id)); err != nil {
		return err
	}

	return c.Render("partials/clear_details", fiber.Map{})
}

// Reorder rewrites the priority column to match the submitted id order
// and returns the re-ordered list fragment.
func (h *DatasetHandler) Reorder(c *fiber.Ctx) error {
	auth := middleware.Identity(c)

	raw := c.Request().PostArgs().PeekMulti("id")
	ids := make([]uint, 0, len(raw))
	for _, b := range raw {
		id, err := strconv.Atoi(string(b))
		if err != nil || id <= 0 {
			continue
		}
		ids = append(ids, uint(id))
	}

	if err := h.store.ReorderDatasets(auth, ids); err != nil {
		return err
	}

	datasets, err := h.store.ListDatasets(auth, "", 0)
	if err != nil {
		return err
	}

	return c.Render("partials/results", fiber.Map{
		"Datasets": datasets,
	})
}

// Slow is the artificial-delay demo endpoint
func (h *DatasetHandler) Slow(c *fiber.Ctx) error {
	time.Sleep(time.Second)
	return c.SendString("<div>That took a while.</div>")
}
