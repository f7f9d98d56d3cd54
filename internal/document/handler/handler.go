package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/datastore/internal/document"
	"github.com/gogotex/datastore/internal/document/service"
)

// RegisterDocumentRoutes mounts GET and POST /data on r.
func RegisterDocumentRoutes(r gin.IRoutes, svc service.Service) {
	r.GET("/data", func(c *gin.Context) {
		list, err := svc.ListAll(c.Request.Context())
		if err != nil {
			fail(c, fmt.Errorf("list documents: %w", err))
			return
		}
		c.JSON(http.StatusOK, list)
	})

	r.POST("/data", func(c *gin.Context) {
		d, err := document.Decode(c.Request.Body)
		if err != nil {
			fail(c, fmt.Errorf("decode document: %w", err))
			return
		}
		if err := svc.Insert(c.Request.Context(), d); err != nil {
			fail(c, fmt.Errorf("insert document: %w", err))
			return
		}
		c.JSON(http.StatusCreated, gin.H{"status": "Data inserted"})
	})
}

// fail records err for the request logger and answers with a bare 500.
// Clients never see the cause.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatus(http.StatusInternalServerError)
}
