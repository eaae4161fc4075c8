package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/virada/rolelist/internal/rlerror"
	"github.com/virada/rolelist/internal/server/service"
)

// item contains all item handlers.
type item struct {
	items *service.ItemService
}

///// List
////
//

// List returns all items in display order.
// An optional category query param restricts the listing.
func (h *item) List(c echo.Context) error {
	items, err := h.items.List(c.QueryParam("category"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, items)
}

///// Get
////
//

// Get returns a single item, comments included.
func (h *item) Get(c echo.Context) error {
	item, err := h.items.Get(c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, item)
}

///// Create
////
//

// Create validates and persists a new item.
func (h *item) Create(c echo.Context) error {
	var params service.CreateItemParams
	if err := c.Bind(&params); err != nil {
		return rlerror.NewValidation("Could not get item params")
	}

	item, err := h.items.Create(params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, item)
}

///// ToggleDone
////
//

// ToggleDone sets the done flag of an item.
func (h *item) ToggleDone(c echo.Context) error {
	var params service.ToggleDoneParams
	if err := c.Bind(&params); err != nil {
		return rlerror.NewValidation("Could not get item params")
	}

	item, err := h.items.SetDone(c.Param("id"), params.Done)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, item)
}

///// Delete
////
//

// Delete removes an item and all its comments.
func (h *item) Delete(c echo.Context) error {
	if err := h.items.Delete(c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, service.M{
		"message": "Item deleted successfully",
	})
}

///// AddComment
////
//

// AddComment appends a comment to an item and returns the updated item.
func (h *item) AddComment(c echo.Context) error {
	var params service.AddCommentParams
	if err := c.Bind(&params); err != nil {
		return rlerror.NewValidation("Could not get comment params")
	}

	item, err := h.items.AddComment(c.Param("id"), params.Text)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, item)
}

///// DeleteComment
////
//

// DeleteComment removes a comment from an item and returns the updated item.
func (h *item) DeleteComment(c echo.Context) error {
	item, err := h.items.DeleteComment(c.Param("id"), c.Param("commentId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, item)
}
