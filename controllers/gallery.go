package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"soulpatterns-backend/cache"
	"soulpatterns-backend/models"
	"soulpatterns-backend/repositories"
	"soulpatterns-backend/store"
	"soulpatterns-backend/utils"
)

// AddGalleryItemInput defines the expected JSON structure for saving a design
type AddGalleryItemInput struct {
	Image string `json:"image"`
}

// GalleryController serves the artist's design gallery. The list endpoint
// reads from the view's mirror; writes go through the repository and patch
// the mirror optimistically.
type GalleryController struct {
	repo   *repositories.GalleryRepository
	mirror *cache.Mirror[models.GalleryItem]
}

func NewGalleryController(storage *store.StorageContext) (*GalleryController, error) {
	repo := repositories.NewGalleryRepository(storage)
	mirror, err := cache.NewMirror(context.Background(), repo.List, storage.Bus)
	if err != nil {
		return nil, err
	}
	return &GalleryController{repo: repo, mirror: mirror}, nil
}

// GetGallery returns every saved design, most recent first.
func (gc *GalleryController) GetGallery(c *gin.Context) {
	c.JSON(http.StatusOK, gc.mirror.Items())
}

// AddGalleryItem saves a design. The payload is opaque; an empty image is
// accepted because content validation belongs to the views.
func (gc *GalleryController) AddGalleryItem(c *gin.Context) {
	var input AddGalleryItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	id, err := gc.repo.Add(c.Request.Context(), input.Image)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}

	gc.mirror.Prepend(models.GalleryItem{ID: id, Image: input.Image},
		func(item models.GalleryItem) bool { return item.ID == id })
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// DeleteGalleryItem removes a design. Deleting an id that no longer exists
// still succeeds.
func (gc *GalleryController) DeleteGalleryItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid gallery item ID")
		return
	}

	if err := gc.repo.Remove(c.Request.Context(), uint(id)); err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}

	gc.mirror.Drop(func(item models.GalleryItem) bool { return item.ID == uint(id) })
	c.JSON(http.StatusOK, gin.H{"message": "Gallery item deleted successfully"})
}

// DownloadStencilPDF renders a design centered on an A4 page at the chosen
// print size in centimeters.
func (gc *GalleryController) DownloadStencilPDF(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid gallery item ID")
		return
	}

	size := 10.0
	if raw := c.Query("size"); raw != "" {
		size, err = strconv.ParseFloat(raw, 64)
		if err != nil || size <= 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid print size")
			return
		}
	}

	item, err := gc.repo.Get(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Gallery item not found")
		} else {
			utils.RespondWithStoreError(c, err)
		}
		return
	}

	pdf, err := utils.StencilPDF(item.Image, size)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnprocessableEntity, "Could not render PDF: "+err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=soulpatterns-design-%d.pdf", id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Close releases the view's mirror.
func (gc *GalleryController) Close() {
	gc.mirror.Close()
}
