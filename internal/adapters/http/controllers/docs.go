package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/storefront/internal/adapters/http/handlers"
	"github.com/swaggo/swag"
)

type DocsController struct{}

func NewDocsController() *DocsController {
	return &DocsController{}
}

// OpenAPI serves the document registered by the generated docs package.
func (dc *DocsController) OpenAPI(c *gin.Context) {
	doc, err := swag.ReadDoc()
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
}
